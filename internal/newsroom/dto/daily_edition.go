package dto

import (
	"fmt"
	"strings"

	"golang-ai-newsroom/internal/entity"
)

// DailyEditionContent is the structured daily newspaper payload returned by
// the model. Unlike article generation there is no fallback: an invalid
// payload fails the whole run.
type DailyEditionContent struct {
	FrontPageHeadline string               `json:"frontPageHeadline"`
	FrontPageArticle  string               `json:"frontPageArticle"`
	Topics            []entity.Topic       `json:"topics"`
	ModelFeedback     entity.ModelFeedback `json:"modelFeedbackAboutThePrompt"`
}

// Validate rejects payloads missing the front page or the topic coverage.
func (d *DailyEditionContent) Validate() error {
	if strings.TrimSpace(d.FrontPageHeadline) == "" {
		return fmt.Errorf("missing front page headline")
	}
	if strings.TrimSpace(d.FrontPageArticle) == "" {
		return fmt.Errorf("missing front page article")
	}
	if len(d.Topics) == 0 {
		return fmt.Errorf("missing topics")
	}
	for i, t := range d.Topics {
		if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.Headline) == "" {
			return fmt.Errorf("topic %d is incomplete", i+1)
		}
	}
	return nil
}
