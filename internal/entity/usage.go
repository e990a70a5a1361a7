package entity

// UsageStats holds a tenant's cumulative API usage counters. Counters are
// monotonically non-decreasing.
type UsageStats struct {
	TotalAPICalls     int64   `json:"totalApiCalls"`
	TotalInputTokens  int64   `json:"totalInputTokens"`
	TotalOutputTokens int64   `json:"totalOutputTokens"`
	TotalCost         float64 `json:"totalCost"`
	LastUpdated       int64   `json:"lastUpdated"`
}
