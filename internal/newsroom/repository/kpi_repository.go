package repository

import (
	"context"
	"fmt"
	"time"

	"golang-ai-newsroom/internal/newsroom/storage"
)

// KpiRepository tracks per-tenant named KPI counters.
type KpiRepository interface {
	GetValue(ctx context.Context, userID, name string) (float64, error)
	Increment(ctx context.Context, userID, name string, delta float64) error
}

type kpiRepository struct {
	store storage.Store
}

// NewKpiRepository creates a new KPI repository.
func NewKpiRepository(store storage.Store) KpiRepository {
	return &kpiRepository{store: store}
}

func (r *kpiRepository) GetValue(ctx context.Context, userID, name string) (float64, error) {
	value, err := r.store.Get(ctx, keyKpiValue(userID, name))
	if err != nil {
		return 0, fmt.Errorf("failed to get kpi %q for user %s: %w", name, userID, err)
	}
	return parseFloatOr(value, 0), nil
}

func (r *kpiRepository) Increment(ctx context.Context, userID, name string, delta float64) error {
	if _, err := r.store.IncrByFloat(ctx, keyKpiValue(userID, name), delta); err != nil {
		return fmt.Errorf("failed to increment kpi %q for user %s: %w", name, userID, err)
	}
	err := r.store.Set(ctx, keyKpiLastUpdated(userID, name), formatInt64(time.Now().UnixMilli()))
	if err != nil {
		return fmt.Errorf("failed to touch kpi %q for user %s: %w", name, userID, err)
	}
	return nil
}
