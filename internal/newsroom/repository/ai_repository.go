package repository

import (
	"context"

	"golang-ai-newsroom/internal/newsroom/dto"
)

// AIRepository sends chat completion requests to a model provider. Content
// generation is non-deterministic; callers validate the returned payload
// against their expected structure before persisting anything.
type AIRepository interface {
	ChatCompletion(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}
