package entity

// Article is a generated news article. Immutable once created. Prompt holds
// the exact text sent to the model, for auditability.
type Article struct {
	ID             string   `json:"id"`
	ReporterID     string   `json:"reporterId"`
	Headline       string   `json:"headline"`
	Body           string   `json:"body"`
	GenerationTime int64    `json:"generationTime"`
	Prompt         string   `json:"prompt"`
	MessageIDs     []int    `json:"messageIds"`
	MessageTexts   []string `json:"messageTexts"`
	ModelName      string   `json:"modelName,omitempty"`
	InputTokens    int      `json:"inputTokenCount,omitempty"`
	OutputTokens   int      `json:"outputTokenCount,omitempty"`
}
