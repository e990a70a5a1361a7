package repository

import (
	"context"
	"fmt"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/storage"
)

// JobStatusRepository tracks run state per (tenant, job) pair.
type JobStatusRepository interface {
	Get(ctx context.Context, userID, jobName string) (*entity.JobStatus, error)
	SetRunning(ctx context.Context, userID, jobName string, running bool) error
	SetLastRun(ctx context.Context, userID, jobName string, timestamp int64) error
	SetLastSuccess(ctx context.Context, userID, jobName string, timestamp int64) error
}

type jobStatusRepository struct {
	store storage.Store
}

// NewJobStatusRepository creates a new job status repository.
func NewJobStatusRepository(store storage.Store) JobStatusRepository {
	return &jobStatusRepository{store: store}
}

func (r *jobStatusRepository) Get(ctx context.Context, userID, jobName string) (*entity.JobStatus, error) {
	running, err := r.store.Get(ctx, keyJobRunning(userID, jobName))
	if err != nil {
		return nil, fmt.Errorf("failed to get job status %s/%s: %w", userID, jobName, err)
	}
	lastRun, _ := r.store.Get(ctx, keyJobLastRun(userID, jobName))
	lastSuccess, _ := r.store.Get(ctx, keyJobLastSuccess(userID, jobName))

	return &entity.JobStatus{
		Running:     running == "true",
		LastRun:     parseInt64Or(lastRun, 0),
		LastSuccess: parseInt64Or(lastSuccess, 0),
	}, nil
}

func (r *jobStatusRepository) SetRunning(ctx context.Context, userID, jobName string, running bool) error {
	if err := r.store.Set(ctx, keyJobRunning(userID, jobName), formatBool(running)); err != nil {
		return fmt.Errorf("failed to set job running %s/%s: %w", userID, jobName, err)
	}
	return nil
}

func (r *jobStatusRepository) SetLastRun(ctx context.Context, userID, jobName string, timestamp int64) error {
	if err := r.store.Set(ctx, keyJobLastRun(userID, jobName), formatInt64(timestamp)); err != nil {
		return fmt.Errorf("failed to set job last run %s/%s: %w", userID, jobName, err)
	}
	return nil
}

func (r *jobStatusRepository) SetLastSuccess(ctx context.Context, userID, jobName string, timestamp int64) error {
	if err := r.store.Set(ctx, keyJobLastSuccess(userID, jobName), formatInt64(timestamp)); err != nil {
		return fmt.Errorf("failed to set job last success %s/%s: %w", userID, jobName, err)
	}
	return nil
}
