package entity

// Event is an accumulating record of facts about an ongoing story. The facts
// list only grows across generation cycles; UpdatedTime is bumped on every
// append and is never earlier than CreatedTime.
type Event struct {
	ID           string   `json:"id"`
	ReporterID   string   `json:"reporterId"`
	Title        string   `json:"title"`
	CreatedTime  int64    `json:"createdTime"`
	UpdatedTime  int64    `json:"updatedTime"`
	Facts        []string `json:"facts"`
	Where        string   `json:"where,omitempty"`
	When         string   `json:"when,omitempty"`
	MessageIDs   []int    `json:"messageIds,omitempty"`
	MessageTexts []string `json:"messageTexts,omitempty"`
	ModelName    string   `json:"modelName,omitempty"`
	InputTokens  int      `json:"inputTokenCount,omitempty"`
	OutputTokens int      `json:"outputTokenCount,omitempty"`
}
