package dto

import (
	"fmt"
	"strings"
)

// ReporterNotes captures the model's self-assessment of an article.
type ReporterNotes struct {
	ResearchQuality string `json:"researchQuality"`
	SourceDiversity string `json:"sourceDiversity"`
	FactualAccuracy string `json:"factualAccuracy"`
}

// GeneratedArticle is the structured article payload returned by the model.
// An article with an empty headline means the model found nothing relevant
// in the feed and must not be persisted.
type GeneratedArticle struct {
	Beat                string        `json:"beat"`
	Headline            string        `json:"headline"`
	LeadParagraph       string        `json:"leadParagraph"`
	Body                string        `json:"body"`
	KeyQuotes           []string      `json:"keyQuotes"`
	Sources             []string      `json:"sources"`
	SocialMediaSummary  string        `json:"socialMediaSummary"`
	ReporterNotes       ReporterNotes `json:"reporterNotes"`
	MessageIDs          []int         `json:"messageIds"`
	PotentialMessageIDs []int         `json:"potentialMessageIds"`
}

// Empty reports whether the model declined to write an article.
func (a *GeneratedArticle) Empty() bool {
	return strings.TrimSpace(a.Headline) == ""
}

// WordCount counts whitespace-separated words in the article body.
func (a *GeneratedArticle) WordCount() int {
	return len(strings.Fields(a.Body))
}

// Validate checks the payload of a non-empty article.
func (a *GeneratedArticle) Validate() error {
	if a.Empty() {
		return nil
	}
	if strings.TrimSpace(a.Body) == "" {
		return fmt.Errorf("article %q has no body", a.Headline)
	}
	return nil
}
