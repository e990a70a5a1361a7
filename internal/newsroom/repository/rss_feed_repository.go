package repository

import (
	"bytes"
	"context"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/config"
	"golang-ai-newsroom/pkg/logger"
)

type rssFeedRepository struct {
	feedURLs []string
	logger   *logger.Logger
}

// NewRSSFeedRepository creates a FeedRepository that aggregates RSS feeds
// into the same message shape the generation prompts consume. Item
// descriptions are stripped of HTML markup.
func NewRSSFeedRepository(cfg *config.Config, log *logger.Logger) FeedRepository {
	return &rssFeedRepository{
		feedURLs: cfg.Feed.RSSFeedURLs,
		logger:   log,
	}
}

func (r *rssFeedRepository) FetchLatestMessages(ctx context.Context, limit int) ([]entity.FeedMessage, error) {
	var messages []entity.FeedMessage

	for _, url := range r.feedURLs {
		fp := gofeed.NewParser()
		feed, err := fp.ParseURLWithContext(url, ctx)
		if err != nil {
			r.logger.Error("Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("url", url))
			continue
		}
		for _, item := range feed.Items {
			text := item.Title
			if desc := stripHTML(item.Description); desc != "" {
				text = text + ": " + desc
			}
			var published int64
			if item.PublishedParsed != nil {
				published = item.PublishedParsed.UnixMilli()
			}
			messages = append(messages, entity.FeedMessage{
				Author: feed.Title,
				Text:   text,
				Time:   published,
			})
		}
	}

	// Newest first across all feeds, then cap at limit.
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].Time > messages[j].Time
	})
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

func stripHTML(content string) string {
	if content == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(content)))
	if err != nil {
		return strings.TrimSpace(content)
	}
	text := strings.TrimSpace(doc.Text())
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\t", " ")
	return strings.Join(strings.Fields(text), " ")
}
