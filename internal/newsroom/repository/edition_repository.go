package repository

import (
	"context"
	"fmt"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/storage"
)

// EditionRepository persists tenant-scoped newspaper editions in a sorted
// set scored by generation time.
type EditionRepository interface {
	Save(ctx context.Context, userID string, edition *entity.NewspaperEdition) error
	Get(ctx context.Context, userID, editionID string) (*entity.NewspaperEdition, error)
	GetAll(ctx context.Context, userID string, limit int) ([]*entity.NewspaperEdition, error)
	GetInTimeRange(ctx context.Context, userID string, startTime, endTime int64) ([]*entity.NewspaperEdition, error)
}

type editionRepository struct {
	store storage.Store
}

// NewEditionRepository creates a new newspaper edition repository.
func NewEditionRepository(store storage.Store) EditionRepository {
	return &editionRepository{store: store}
}

func (r *editionRepository) Save(ctx context.Context, userID string, edition *entity.NewspaperEdition) error {
	pairs := []storage.KV{
		{Key: keyEditionStories(userID, edition.ID), Value: marshalList(edition.Stories)},
		{Key: keyEditionTime(userID, edition.ID), Value: formatInt64(edition.GenerationTime)},
		{Key: keyEditionPrompt(userID, edition.ID), Value: edition.Prompt},
	}
	if err := r.store.MultiSet(ctx, pairs); err != nil {
		return fmt.Errorf("failed to save edition %s: %w", edition.ID, err)
	}
	err := r.store.ZAdd(ctx, keyEditions(userID), float64(edition.GenerationTime), edition.ID)
	if err != nil {
		return fmt.Errorf("failed to index edition %s: %w", edition.ID, err)
	}
	return nil
}

// Get returns nil when the stories list or generation time is missing.
func (r *editionRepository) Get(ctx context.Context, userID, editionID string) (*entity.NewspaperEdition, error) {
	stories, err := r.store.Get(ctx, keyEditionStories(userID, editionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get edition %s: %w", editionID, err)
	}
	timeStr, err := r.store.Get(ctx, keyEditionTime(userID, editionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get edition %s: %w", editionID, err)
	}
	if stories == "" || timeStr == "" {
		return nil, nil
	}
	prompt, _ := r.store.Get(ctx, keyEditionPrompt(userID, editionID))

	return &entity.NewspaperEdition{
		ID:             editionID,
		Stories:        unmarshalStrings(stories),
		GenerationTime: parseInt64Or(timeStr, 0),
		Prompt:         prompt,
	}, nil
}

// GetAll returns editions newest first, up to limit. A limit <= 0 returns
// all.
func (r *editionRepository) GetAll(ctx context.Context, userID string, limit int) ([]*entity.NewspaperEdition, error) {
	key := keyEditions(userID)
	var ids []string
	var err error
	if limit <= 0 {
		ids, err = r.store.ZRangeByScore(ctx, key, 0, float64(1<<62))
		if err == nil {
			for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	} else {
		ids, err = r.store.ZRevRangeN(ctx, key, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read edition index: %w", err)
	}
	return r.resolve(ctx, userID, ids)
}

// GetInTimeRange returns editions with generation time inside the window,
// oldest first.
func (r *editionRepository) GetInTimeRange(ctx context.Context, userID string, startTime, endTime int64) ([]*entity.NewspaperEdition, error) {
	ids, err := r.store.ZRangeByScore(ctx, keyEditions(userID), float64(startTime), float64(endTime))
	if err != nil {
		return nil, fmt.Errorf("failed to query editions in range: %w", err)
	}
	return r.resolve(ctx, userID, ids)
}

func (r *editionRepository) resolve(ctx context.Context, userID string, ids []string) ([]*entity.NewspaperEdition, error) {
	editions := make([]*entity.NewspaperEdition, 0, len(ids))
	for _, id := range ids {
		edition, err := r.Get(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if edition != nil {
			editions = append(editions, edition)
		}
	}
	return editions, nil
}
