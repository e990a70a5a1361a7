package dto

import (
	"fmt"
	"strings"
)

// GeneratedEvent is one event record returned by the model. Index is the
// 1-based position of an existing event the model is extending; nil means a
// new event.
type GeneratedEvent struct {
	Index               *int     `json:"index"`
	Title               string   `json:"title"`
	Facts               []string `json:"facts"`
	Where               string   `json:"where"`
	When                string   `json:"when"`
	MessageIDs          []int    `json:"messageIds"`
	PotentialMessageIDs []int    `json:"potentialMessageIds"`
}

// Validate checks a single event record.
func (e *GeneratedEvent) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("event has no title")
	}
	if len(e.Facts) == 0 {
		return fmt.Errorf("event %q has no facts", e.Title)
	}
	return nil
}

// EventGenerationResponse is the structured event payload returned by the
// model, at most 5 events per run.
type EventGenerationResponse struct {
	Events []GeneratedEvent `json:"events"`
}

// Validate checks the full response.
func (r *EventGenerationResponse) Validate() error {
	if len(r.Events) > 5 {
		return fmt.Errorf("expected at most 5 events, got %d", len(r.Events))
	}
	for i := range r.Events {
		if err := r.Events[i].Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i+1, err)
		}
	}
	return nil
}
