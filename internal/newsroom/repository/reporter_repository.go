package repository

import (
	"context"
	"fmt"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/storage"
)

// ReporterRepository persists tenant-scoped reporter personas.
type ReporterRepository interface {
	Save(ctx context.Context, userID string, reporter *entity.Reporter) error
	Get(ctx context.Context, userID, reporterID string) (*entity.Reporter, error)
	GetAll(ctx context.Context, userID string) ([]*entity.Reporter, error)
	Delete(ctx context.Context, userID, reporterID string) error
}

type reporterRepository struct {
	store storage.Store
}

// NewReporterRepository creates a new reporter repository.
func NewReporterRepository(store storage.Store) ReporterRepository {
	return &reporterRepository{store: store}
}

func (r *reporterRepository) Save(ctx context.Context, userID string, reporter *entity.Reporter) error {
	pairs := []storage.KV{
		{Key: keyReporterPrompt(userID, reporter.ID), Value: reporter.Prompt},
		{Key: keyReporterEnabled(userID, reporter.ID), Value: formatBool(reporter.Enabled)},
	}
	if err := r.store.MultiSet(ctx, pairs); err != nil {
		return fmt.Errorf("failed to save reporter %s: %w", reporter.ID, err)
	}
	if len(reporter.Beats) > 0 {
		if err := r.store.SAdd(ctx, keyReporterBeats(userID, reporter.ID), reporter.Beats...); err != nil {
			return fmt.Errorf("failed to save reporter %s beats: %w", reporter.ID, err)
		}
	}
	if err := r.store.SAdd(ctx, keyReporters(userID), reporter.ID); err != nil {
		return fmt.Errorf("failed to register reporter %s: %w", reporter.ID, err)
	}
	return nil
}

// Get returns nil when the reporter does not exist (no prompt stored).
func (r *reporterRepository) Get(ctx context.Context, userID, reporterID string) (*entity.Reporter, error) {
	prompt, err := r.store.Get(ctx, keyReporterPrompt(userID, reporterID))
	if err != nil {
		return nil, fmt.Errorf("failed to get reporter %s: %w", reporterID, err)
	}
	if prompt == "" {
		return nil, nil
	}
	beats, err := r.store.SMembers(ctx, keyReporterBeats(userID, reporterID))
	if err != nil {
		return nil, fmt.Errorf("failed to get reporter %s beats: %w", reporterID, err)
	}
	enabled, err := r.store.Get(ctx, keyReporterEnabled(userID, reporterID))
	if err != nil {
		return nil, fmt.Errorf("failed to get reporter %s: %w", reporterID, err)
	}
	return &entity.Reporter{
		ID:      reporterID,
		Beats:   beats,
		Prompt:  prompt,
		Enabled: enabled == "true",
	}, nil
}

func (r *reporterRepository) GetAll(ctx context.Context, userID string) ([]*entity.Reporter, error) {
	ids, err := r.store.SMembers(ctx, keyReporters(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list reporters: %w", err)
	}
	reporters := make([]*entity.Reporter, 0, len(ids))
	for _, id := range ids {
		reporter, err := r.Get(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if reporter != nil {
			reporters = append(reporters, reporter)
		}
	}
	return reporters, nil
}

func (r *reporterRepository) Delete(ctx context.Context, userID, reporterID string) error {
	if err := r.store.SRem(ctx, keyReporters(userID), reporterID); err != nil {
		return fmt.Errorf("failed to unregister reporter %s: %w", reporterID, err)
	}
	err := r.store.Del(ctx,
		keyReporterBeats(userID, reporterID),
		keyReporterPrompt(userID, reporterID),
		keyReporterEnabled(userID, reporterID),
	)
	if err != nil {
		return fmt.Errorf("failed to delete reporter %s: %w", reporterID, err)
	}
	return nil
}
