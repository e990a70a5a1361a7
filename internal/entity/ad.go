package entity

// AdEntry is a tenant-owned ad whose prompt content may be interleaved into
// generation prompts.
type AdEntry struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	Name          string  `json:"name"`
	BidPrice      float64 `json:"bidPrice"`
	PromptContent string  `json:"promptContent"`
}
