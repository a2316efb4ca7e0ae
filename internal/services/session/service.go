// Package session resolves the Cursor session token and watches its
// backing file so a re-login in the browser propagates without a restart.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/averyn/cursorboard/internal/logger"
)

// Event represents a session service event.
type Event struct {
	Type  EventType
	Error error
}

// EventType defines the type of session event.
type EventType int

const (
	// EventTokenLoaded indicates the initial token was read.
	EventTokenLoaded EventType = iota
	// EventTokenChanged indicates the token file changed on disk.
	EventTokenChanged
	// EventError indicates a watcher error.
	EventError
)

// Service holds the current session token. When the token comes from a
// file the file is watched; a fixed token (e.g. from the environment)
// is never watched.
type Service struct {
	mu            sync.RWMutex
	token         string
	filePath      string
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// New creates a session service. A non-empty fixedToken wins over the
// file; otherwise the token is read from filePath and kept in sync with it.
func New(fixedToken, filePath string) (*Service, error) {
	s := &Service{
		token:     fixedToken,
		filePath:  filePath,
		eventChan: make(chan Event, 10),
		stopChan:  make(chan struct{}),
	}

	if fixedToken != "" {
		s.sendEvent(Event{Type: EventTokenLoaded})
		return s, nil
	}

	if filePath == "" {
		return nil, fmt.Errorf("no session token and no token file configured")
	}

	// A missing token file is not fatal; fetches will fail with a 401
	// until the user writes one, and the watcher picks it up then.
	s.loadToken()

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start token watcher: %w", err)
	}

	s.sendEvent(Event{Type: EventTokenLoaded})
	return s, nil
}

// Events returns the event channel for subscribing to token changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Token returns the current session token.
func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// loadToken reads and trims the token file.
func (s *Service) loadToken() {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read session token file", "path", s.filePath, "error", err)
		}
		return
	}

	s.mu.Lock()
	s.token = strings.TrimSpace(string(data))
	s.mu.Unlock()
}

// startWatcher starts the file system watcher.
func (s *Service) startWatcher() error {
	// Watch the directory to catch file creation, not just writes.
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, func() {
					s.handleFileChange()
				})
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

func (s *Service) handleFileChange() {
	old := s.Token()
	s.loadToken()

	if s.Token() != old {
		logger.Info("session token changed on disk")
		s.sendEvent(Event{Type: EventTokenChanged})
	}
}

// sendEvent sends an event without blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
	}
}

// Close stops the watcher and cleans up resources.
func (s *Service) Close() error {
	close(s.stopChan)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
