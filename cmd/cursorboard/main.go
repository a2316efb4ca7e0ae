// Package main is the entry point for the Cursorboard TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/averyn/cursorboard/internal/app"
	"github.com/averyn/cursorboard/internal/config"
	"github.com/averyn/cursorboard/internal/services"
	"github.com/averyn/cursorboard/internal/ui/tabs/activity"
	"github.com/averyn/cursorboard/internal/ui/tabs/info"
	"github.com/averyn/cursorboard/internal/ui/tabs/usage"
	"github.com/averyn/cursorboard/internal/version"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	// Run the application
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Initialize the service manager
	// This wires the session token source, the event cache and the two
	// data fetchers behind one event stream
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Ensure cleanup on exit
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// 3. Create the root Bubble Tea model
	model := app.NewModel(svcManager)

	// 4. Initialize tabs with shared state and services
	// Each tab receives the shared application state for consistent data access
	state := model.GetState()
	tabs := []app.Tab{
		activity.New(state),         // Tab 0: Activity - heatmaps and trends
		usage.New(state),            // Tab 1: Usage - token and cost charts
		info.New(state, svcManager), // Tab 2: Info - configuration and app info
	}
	model.SetTabs(tabs)

	// 5. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 6. Create and configure the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer (full terminal)
		tea.WithMouseCellMotion(), // Enable mouse support for selection
	)

	// 7. Handle signals in a separate goroutine
	go func() {
		<-sigChan
		// Send quit message to the program
		p.Send(tea.Quit())
	}()

	// 8. Run the TUI program
	// This blocks until the user quits or an error occurs
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Cursorboard - Cursor usage analytics in the terminal

Usage:
  cursorboard [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-3             Switch between tabs (Activity, Usage, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Scroll
  r               Refresh data
  R               Refresh, skip cache
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  CURSOR_SESSION_TOKEN       Session cookie value (overrides the token file)
  CURSOR_SESSION_TOKEN_PATH  File the session token is read and watched from
  CURSOR_API_BASE_URL        Dashboard API root
  CACHE_DB_PATH              SQLite event cache path (empty for in-memory)
  EVENTS_CACHE_TTL           Cached snapshot lifetime (default: 1h)
  EVENTS_PAGE_SIZE           Usage-event page size (default: 600)
  USAGE_WINDOW_DAYS          Trailing chart window (default: 14)
  COST_ALERT_CENTS           Daily usage-based spend alert threshold (0 = off)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/cursorboard/.env
  - ~/.cursorboard/.env`)
}
