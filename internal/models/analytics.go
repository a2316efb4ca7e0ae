// Package models defines data structures and domain types.
package models

// NamedCount is a generic name/count pair used by the per-day breakdowns
// (model usage, extension usage, client versions).
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DailyMetric is one calendar day's aggregate counters as returned by the
// analytics endpoint. Every counter is optional on the wire; an absent
// counter and a zero counter mean the same thing everywhere downstream.
type DailyMetric struct {
	// Date is a millisecond-epoch timestamp encoded as a decimal string.
	Date string `json:"date"`

	ActiveUsers              int `json:"activeUsers,omitempty"`
	LinesAdded               int `json:"linesAdded,omitempty"`
	LinesDeleted             int `json:"linesDeleted,omitempty"`
	AcceptedLinesAdded       int `json:"acceptedLinesAdded,omitempty"`
	AcceptedLinesDeleted     int `json:"acceptedLinesDeleted,omitempty"`
	TotalApplies             int `json:"totalApplies,omitempty"`
	TotalAccepts             int `json:"totalAccepts,omitempty"`
	TotalRejects             int `json:"totalRejects,omitempty"`
	TotalTabsShown           int `json:"totalTabsShown,omitempty"`
	TotalTabsAccepted        int `json:"totalTabsAccepted,omitempty"`
	AgentRequests            int `json:"agentRequests,omitempty"`
	SubscriptionIncludedReqs int `json:"subscriptionIncludedReqs,omitempty"`
	UsageBasedReqs           int `json:"usageBasedReqs,omitempty"`
	ChatRequests             int `json:"chatRequests,omitempty"`
	CmdkUsages               int `json:"cmdkUsages,omitempty"`

	ModelUsage         []NamedCount `json:"modelUsage,omitempty"`
	ExtensionUsage     []NamedCount `json:"extensionUsage,omitempty"`
	TabExtensionUsage  []NamedCount `json:"tabExtensionUsage,omitempty"`
	ClientVersionUsage []NamedCount `json:"clientVersionUsage,omitempty"`
}

// Period is the date range a set of daily metrics was requested for.
type Period struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// AnalyticsData is the full response of the get-user-analytics endpoint.
// It is immutable once received and superseded wholesale by the next
// fetch; entry order carries no meaning.
type AnalyticsData struct {
	DailyMetrics       []DailyMetric `json:"dailyMetrics"`
	Period             Period        `json:"period"`
	TotalMembersInTeam int           `json:"totalMembersInTeam"`
}
