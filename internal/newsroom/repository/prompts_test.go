package repository

import (
	"fmt"
	"strings"
	"testing"

	"golang-ai-newsroom/internal/entity"

	"github.com/stretchr/testify/assert"
)

func feedMessages(n int) []entity.FeedMessage {
	messages := make([]entity.FeedMessage, 0, n)
	for i := 0; i < n; i++ {
		messages = append(messages, entity.FeedMessage{
			Author: "author",
			Text:   fmt.Sprintf("message %d", i+1),
			Time:   int64(i),
		})
	}
	return messages
}

func TestFormatSocialMediaContextNumbering(t *testing.T) {
	out := FormatSocialMediaContext(feedMessages(3), false, nil)

	assert.True(t, strings.HasPrefix(out, "\n\nRecent social media discussions:\n"))
	assert.Contains(t, out, `1. "message 1"`)
	assert.Contains(t, out, `3. "message 3"`)
}

func TestFormatSocialMediaContextEmpty(t *testing.T) {
	assert.Equal(t, "", FormatSocialMediaContext(nil, true, &entity.AdEntry{PromptContent: "ad"}))
}

func TestFormatSocialMediaContextAdInterleave(t *testing.T) {
	ad := &entity.AdEntry{PromptContent: "Drink Soda."}

	out := FormatSocialMediaContext(feedMessages(45), true, ad)
	// Inserted after the 20th and 40th message only.
	assert.Equal(t, 2, strings.Count(out, "Drink Soda."))

	// No ad without the flag, even when one exists.
	out = FormatSocialMediaContext(feedMessages(45), false, ad)
	assert.NotContains(t, out, "Drink Soda.")

	// Fewer than 20 messages never triggers the insert.
	out = FormatSocialMediaContext(feedMessages(19), true, ad)
	assert.NotContains(t, out, "Drink Soda.")
}

func TestFormatMessagesPlain(t *testing.T) {
	out := FormatMessagesPlain(feedMessages(2))
	assert.Equal(t, "1. \"message 1\"\n2. \"message 2\"", out)

	assert.Equal(t, "No social media messages available.", FormatMessagesPlain(nil))
}

func TestFormatEventsContext(t *testing.T) {
	events := []*entity.Event{
		{ID: "event_1", Title: "Storm", Facts: []string{"roads closed", "power out"}, CreatedTime: 1700000000000},
		{ID: "event_2", Title: "Rally", Facts: []string{"downtown"}, CreatedTime: 1700000100000},
	}

	out := FormatEventsContext(events)
	assert.Contains(t, out, "Event 1:\nTitle: Storm\nFacts: roads closed, power out\nCreated: ")
	assert.Contains(t, out, "Event 2:\nTitle: Rally")

	assert.Equal(t, "No previous events available.", FormatEventsContext(nil))
}

func TestFormatArticlesContext(t *testing.T) {
	articles := []*entity.Article{
		{ID: "a1", Headline: "First"},
		{ID: "a2", Headline: "Second"},
	}

	out := FormatArticlesContext(articles)
	assert.Equal(t, "Article 1: \"First\"\nArticle 2: \"Second\"", out)

	assert.Equal(t, "No previous articles available for this reporter.", FormatArticlesContext(nil))
}

func TestFormatArticlesTextExcerpt(t *testing.T) {
	long := strings.Repeat("x", 500)
	articles := []*entity.Article{{ID: "a1", Headline: "H", Body: long}}

	out := FormatArticlesText(articles)
	assert.Contains(t, out, "Article 1:\nHeadline: H\nContent: ")
	assert.Contains(t, out, strings.Repeat("x", 300)+"...")
	assert.NotContains(t, out, strings.Repeat("x", 301))
}

func TestFormatEditionsTextFirstParagraph(t *testing.T) {
	editions := []EditionArticles{
		{
			ID: "edition_1",
			Articles: []*entity.Article{
				{ID: "a1", Headline: "Multi", Body: "First paragraph.\nSecond paragraph."},
			},
		},
	}

	out := FormatEditionsText(editions)
	assert.Contains(t, out, "Edition 1 (ID: edition_1):")
	assert.Contains(t, out, "First Paragraph: First paragraph.")
	assert.NotContains(t, out, "Second paragraph.")
}

func TestFullPrompt(t *testing.T) {
	assert.Equal(t, "System: sys\n\nUser: usr", FullPrompt("sys", "usr"))
}
