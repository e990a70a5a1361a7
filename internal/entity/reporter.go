package entity

// Reporter is a configured persona that autonomously generates events and
// articles within its beats.
type Reporter struct {
	ID      string   `json:"id"`
	Beats   []string `json:"beats"`
	Prompt  string   `json:"prompt"`
	Enabled bool     `json:"enabled"`
}
