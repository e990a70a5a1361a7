package entity

// NewspaperEdition is a curated bundle of article references for a time
// window. Stories holds article ids, frozen at creation; the referenced
// articles may be deleted independently, so readers must tolerate dangling
// ids.
type NewspaperEdition struct {
	ID             string   `json:"id"`
	Stories        []string `json:"stories"`
	GenerationTime int64    `json:"generationTime"`
	Prompt         string   `json:"prompt"`
	ModelName      string   `json:"modelName,omitempty"`
	InputTokens    int      `json:"inputTokenCount,omitempty"`
	OutputTokens   int      `json:"outputTokenCount,omitempty"`
}
