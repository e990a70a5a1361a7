package repository

import (
	"context"
	"fmt"
	"time"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/storage"
	"golang-ai-newsroom/pkg/utils"
)

// UsageRepository tracks per-tenant API usage counters, both per day and
// cumulative.
type UsageRepository interface {
	LogUsage(ctx context.Context, userID string, apiCalls, inputTokens, outputTokens int64, cost float64) error
	GetStats(ctx context.Context, userID string) (*entity.UsageStats, error)
}

type usageRepository struct {
	store storage.Store
}

// NewUsageRepository creates a new usage repository.
func NewUsageRepository(store storage.Store) UsageRepository {
	return &usageRepository{store: store}
}

func (r *usageRepository) LogUsage(ctx context.Context, userID string, apiCalls, inputTokens, outputTokens int64, cost float64) error {
	now := time.Now()
	day := utils.DayKey(now)

	type incr struct {
		key   string
		delta int64
	}
	for _, inc := range []incr{
		{keyUsageAPICalls(userID, day), apiCalls},
		{keyUsageInputTokens(userID, day), inputTokens},
		{keyUsageOutputTokens(userID, day), outputTokens},
		{keyUsageTotalAPICalls(userID), apiCalls},
		{keyUsageTotalInputTokens(userID), inputTokens},
		{keyUsageTotalOutputTokens(userID), outputTokens},
	} {
		if _, err := r.store.IncrBy(ctx, inc.key, inc.delta); err != nil {
			return fmt.Errorf("failed to log usage for user %s: %w", userID, err)
		}
	}
	if _, err := r.store.IncrByFloat(ctx, keyUsageCost(userID, day), cost); err != nil {
		return fmt.Errorf("failed to log usage for user %s: %w", userID, err)
	}
	if _, err := r.store.IncrByFloat(ctx, keyUsageTotalCost(userID), cost); err != nil {
		return fmt.Errorf("failed to log usage for user %s: %w", userID, err)
	}
	return nil
}

func (r *usageRepository) GetStats(ctx context.Context, userID string) (*entity.UsageStats, error) {
	apiCalls, err := r.store.Get(ctx, keyUsageTotalAPICalls(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats for user %s: %w", userID, err)
	}
	inputTokens, _ := r.store.Get(ctx, keyUsageTotalInputTokens(userID))
	outputTokens, _ := r.store.Get(ctx, keyUsageTotalOutputTokens(userID))
	cost, _ := r.store.Get(ctx, keyUsageTotalCost(userID))

	return &entity.UsageStats{
		TotalAPICalls:     parseInt64Or(apiCalls, 0),
		TotalInputTokens:  parseInt64Or(inputTokens, 0),
		TotalOutputTokens: parseInt64Or(outputTokens, 0),
		TotalCost:         parseFloatOr(cost, 0),
		LastUpdated:       time.Now().UnixMilli(),
	}, nil
}
