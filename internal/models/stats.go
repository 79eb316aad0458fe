package models

// Stats is the dashboard summary, computed from current state on every
// request. Active counts by the administrative flag; expired counts by the
// clock, so a subscriber can be both active and expired.
type Stats struct {
	TotalSubscribers   int        `json:"total_subscribers"`
	ActiveSubscribers  int        `json:"active_subscribers"`
	ExpiredSubscribers int        `json:"expired_subscribers"`
	TotalEndpoints     int        `json:"total_endpoints"`
	TotalRevenue       float64    `json:"total_revenue"`
	RecentPayments     []*Payment `json:"recent_payments"`
}
