package model

// AnalyticsSummary is the server-computed overview of the records workflow.
type AnalyticsSummary struct {
	TotalRequests     int     `json:"total_requests"`
	OpenRequests      int     `json:"open_requests"`
	FulfilledRequests int     `json:"fulfilled_requests"`
	DeniedRequests    int     `json:"denied_requests"`
	SuccessRate       float64 `json:"success_rate"`
	AvgResponseDays   float64 `json:"avg_response_days"`
	PublishedVideos   int     `json:"published_videos"`
	TotalViews        int64   `json:"total_views"`
	RevenueCents      int64   `json:"revenue_cents"`
}

// RevenuePoint is one month of pipeline revenue and viewership.
type RevenuePoint struct {
	// Month is formatted "2026-01".
	Month        string `json:"month"`
	Views        int64  `json:"views"`
	RevenueCents int64  `json:"revenue_cents"`
	VideoCount   int    `json:"video_count"`
}
