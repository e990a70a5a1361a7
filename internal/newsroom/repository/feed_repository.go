package repository

import (
	"context"

	"golang-ai-newsroom/internal/entity"
)

// FeedRepository fetches recent social feed messages. Implementations
// return up to limit messages, newest last as delivered by the source. A
// fetch failure is non-fatal for article generation; callers continue with
// an empty slice.
type FeedRepository interface {
	FetchLatestMessages(ctx context.Context, limit int) ([]entity.FeedMessage, error)
}
