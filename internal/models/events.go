package models

// Usage event kinds as they appear on the wire. Only the three billing
// classifications below feed the token/cost charts; any other kind is
// decoded but contributes to neither bucket.
const (
	KindIncludedInPro   = "USAGE_EVENT_KIND_INCLUDED_IN_PRO"
	KindIncludedInUltra = "USAGE_EVENT_KIND_INCLUDED_IN_ULTRA"
	KindUsageBased      = "USAGE_EVENT_KIND_USAGE_BASED"
)

// TokenUsage holds the per-event token detail and cost when the backend
// reports them. Absent counts are zero.
type TokenUsage struct {
	InputTokens      int `json:"inputTokens,omitempty"`
	OutputTokens     int `json:"outputTokens,omitempty"`
	CacheWriteTokens int `json:"cacheWriteTokens,omitempty"`
	CacheReadTokens  int `json:"cacheReadTokens,omitempty"`
	TotalCents       int `json:"totalCents,omitempty"`
}

// TotalTokens returns the sum of all four token counters.
func (t *TokenUsage) TotalTokens() int {
	if t == nil {
		return 0
	}
	return t.InputTokens + t.OutputTokens + t.CacheReadTokens + t.CacheWriteTokens
}

// UsageEvent is one billable model invocation from the usage-events feed.
// Events are immutable once fetched.
type UsageEvent struct {
	// Timestamp is a millisecond-epoch timestamp encoded as a decimal string.
	Timestamp        string      `json:"timestamp"`
	Model            string      `json:"model"`
	Kind             string      `json:"kind"`
	RequestsCosts    float64     `json:"requestsCosts,omitempty"`
	UsageBasedCosts  string      `json:"usageBasedCosts,omitempty"`
	IsTokenBasedCall bool        `json:"isTokenBasedCall"`
	TokenUsage       *TokenUsage `json:"tokenUsage,omitempty"`
	OwningUser       string      `json:"owningUser"`
}

// IsSubscription reports whether the event is included in a subscription
// tier (Pro or Ultra).
func (e *UsageEvent) IsSubscription() bool {
	return e.Kind == KindIncludedInPro || e.Kind == KindIncludedInUltra
}

// IsUsageBased reports whether the event is billed per use.
func (e *UsageEvent) IsUsageBased() bool {
	return e.Kind == KindUsageBased
}

// UsageEventsPage is one page of the paginated usage-events feed. The
// total count is authoritative only on the first page.
type UsageEventsPage struct {
	TotalUsageEventsCount int          `json:"totalUsageEventsCount"`
	UsageEventsDisplay    []UsageEvent `json:"usageEventsDisplay"`
}

// CachedEventSnapshot is the persisted form of a completed sweep:
// the full event list plus the capture time used for TTL checks.
type CachedEventSnapshot struct {
	Timestamp int64        `json:"timestamp"`
	Events    []UsageEvent `json:"events"`
}
