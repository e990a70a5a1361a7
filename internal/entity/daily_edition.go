package entity

// Topic is one structured topic section of a daily edition.
type Topic struct {
	Name                         string `json:"name"`
	Headline                     string `json:"headline"`
	NewsStoryFirstParagraph      string `json:"newsStoryFirstParagraph"`
	NewsStorySecondParagraph     string `json:"newsStorySecondParagraph"`
	OneLineSummary               string `json:"oneLineSummary"`
	SupportingSocialMediaMessage string `json:"supportingSocialMediaMessage"`
	SkepticalComment             string `json:"skepticalComment"`
	GullibleComment              string `json:"gullibleComment"`
}

// ModelFeedback carries the model's feedback about the editorial prompt.
type ModelFeedback struct {
	Positive string `json:"positive"`
	Negative string `json:"negative"`
}

// DailyEdition is the synthesized cross-edition summary. NewspaperName is
// derived deterministically from the generation date, not from the model.
type DailyEdition struct {
	ID                string        `json:"id"`
	Editions          []string      `json:"editions"`
	GenerationTime    int64         `json:"generationTime"`
	FrontPageHeadline string        `json:"frontPageHeadline"`
	FrontPageArticle  string        `json:"frontPageArticle"`
	Topics            []Topic       `json:"topics"`
	ModelFeedback     ModelFeedback `json:"modelFeedbackAboutThePrompt"`
	NewspaperName     string        `json:"newspaperName"`
	Prompt            string        `json:"prompt"`
	ModelName         string        `json:"modelName,omitempty"`
	InputTokens       int           `json:"inputTokenCount,omitempty"`
	OutputTokens      int           `json:"outputTokenCount,omitempty"`
}
