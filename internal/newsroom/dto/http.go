package dto

import "golang-ai-newsroom/internal/entity"

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateUserRequest registers a new account.
type CreateUserRequest struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Role         string `json:"role"`
}

// SaveReporterRequest creates or updates a reporter persona.
type SaveReporterRequest struct {
	ID      string   `json:"id"`
	Beats   []string `json:"beats"`
	Prompt  string   `json:"prompt"`
	Enabled bool     `json:"enabled"`
}

// SaveEditorRequest creates or updates the tenant's editor configuration.
type SaveEditorRequest struct {
	Bio                            string  `json:"bio"`
	Prompt                         string  `json:"prompt"`
	ModelName                      string  `json:"modelName"`
	MessageSliceCount              int     `json:"messageSliceCount"`
	InputTokenCost                 float64 `json:"inputTokenCost"`
	OutputTokenCost                float64 `json:"outputTokenCost"`
	ArticleGenerationPeriodMinutes int     `json:"articleGenerationPeriodMinutes"`
	EventGenerationPeriodMinutes   int     `json:"eventGenerationPeriodMinutes"`
	EditionGenerationPeriodMinutes int     `json:"editionGenerationPeriodMinutes"`
}

// SaveAdRequest creates or updates an ad entry.
type SaveAdRequest struct {
	Name          string  `json:"name"`
	BidPrice      float64 `json:"bidPrice"`
	PromptContent string  `json:"promptContent"`
}

// EditionWithArticles is an edition with its article references resolved.
type EditionWithArticles struct {
	Edition  *entity.NewspaperEdition `json:"edition"`
	Articles []*entity.Article        `json:"articles"`
}

// DailyEditionWithEditions is a daily edition with its edition references
// resolved.
type DailyEditionWithEditions struct {
	DailyEdition *entity.DailyEdition       `json:"dailyEdition"`
	Editions     []*entity.NewspaperEdition `json:"editions"`
}

// KpiResponse is one KPI counter value.
type KpiResponse struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
