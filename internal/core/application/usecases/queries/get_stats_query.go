package queries

import "time"

// GetStatsQuery retrieves the back-office overview: settled revenue and
// collected weight for the reporting window, plus counters the operators
// watch. When the current day has no settled orders the window widens to the
// last seven days so the dashboard never shows an empty card.
type GetStatsQuery struct {
	now time.Time
}

// NewGetStatsQuery creates a stats query anchored at the given instant.
// A zero instant means time.Now at execution.
func NewGetStatsQuery(now time.Time) GetStatsQuery {
	return GetStatsQuery{now: now}
}

// Now returns the anchor instant of the reporting window.
func (q GetStatsQuery) Now() time.Time {
	return q.now
}

// Reporting window labels.
const (
	WindowToday  = "today"
	WindowWeekly = "last 7 days"
)

// GetStatsQueryResponse is the back-office overview read model.
type GetStatsQueryResponse struct {
	Revenue            float64
	Weight             float64
	Window             string
	PendingWithdrawals int64

	TotalAccounts   int64
	TotalCollectors int64
	TotalOrders     int64
	CompletedOrders int64
	PendingOrders   int64
	TotalRevenue    float64
	TotalWeight     float64

	CategoryWeights []CategoryWeight
}

// CategoryWeight is the settled weight collected for one material category.
type CategoryWeight struct {
	Category string
	Weight   float64
}
