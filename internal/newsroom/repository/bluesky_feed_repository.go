package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/config"
	"golang-ai-newsroom/pkg/logger"
)

type blueskyPost struct {
	DID  string `json:"did"`
	Text string `json:"text"`
	Time int64  `json:"time"`
}

type blueskyFeedRepository struct {
	client  *http.Client
	baseURL string
	logger  *logger.Logger
}

// NewBlueskyFeedRepository creates a FeedRepository reading a Bluesky-style
// message endpoint that returns a JSON array of {did, text, time} posts.
func NewBlueskyFeedRepository(cfg *config.Config, log *logger.Logger) (FeedRepository, error) {
	timeout, err := time.ParseDuration(cfg.Feed.FetchTimeout)
	if err != nil {
		timeout = 30 * time.Second
	}
	return &blueskyFeedRepository{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.Feed.BaseURL,
		logger:  log,
	}, nil
}

func (r *blueskyFeedRepository) FetchLatestMessages(ctx context.Context, limit int) ([]entity.FeedMessage, error) {
	url := fmt.Sprintf("%s?limit=%d", r.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed messages: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from feed",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("url", r.baseURL),
		)
		return nil, fmt.Errorf("received non-OK response from feed: %d - %s", resp.StatusCode, string(body))
	}

	var posts []blueskyPost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}

	if limit > 0 && len(posts) > limit {
		posts = posts[len(posts)-limit:]
	}
	messages := make([]entity.FeedMessage, 0, len(posts))
	for _, post := range posts {
		messages = append(messages, entity.FeedMessage{
			Author: post.DID,
			Text:   post.Text,
			Time:   post.Time,
		})
	}
	return messages, nil
}
