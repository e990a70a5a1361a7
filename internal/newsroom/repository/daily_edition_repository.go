package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/storage"
)

// DailyEditionRepository persists tenant-scoped daily editions in a sorted
// set scored by generation time.
type DailyEditionRepository interface {
	Save(ctx context.Context, userID string, dailyEdition *entity.DailyEdition) error
	Get(ctx context.Context, userID, dailyEditionID string) (*entity.DailyEdition, error)
	GetAll(ctx context.Context, userID string, limit int) ([]*entity.DailyEdition, error)
}

type dailyEditionRepository struct {
	store storage.Store
}

// NewDailyEditionRepository creates a new daily edition repository.
func NewDailyEditionRepository(store storage.Store) DailyEditionRepository {
	return &dailyEditionRepository{store: store}
}

func (r *dailyEditionRepository) Save(ctx context.Context, userID string, dailyEdition *entity.DailyEdition) error {
	topics, err := json.Marshal(dailyEdition.Topics)
	if err != nil {
		return fmt.Errorf("failed to encode daily edition %s topics: %w", dailyEdition.ID, err)
	}
	pairs := []storage.KV{
		{Key: keyDailyEditionEditions(userID, dailyEdition.ID), Value: marshalList(dailyEdition.Editions)},
		{Key: keyDailyEditionTime(userID, dailyEdition.ID), Value: formatInt64(dailyEdition.GenerationTime)},
		{Key: keyDailyEditionFrontPageHeadline(userID, dailyEdition.ID), Value: dailyEdition.FrontPageHeadline},
		{Key: keyDailyEditionFrontPageArticle(userID, dailyEdition.ID), Value: dailyEdition.FrontPageArticle},
		{Key: keyDailyEditionTopics(userID, dailyEdition.ID), Value: string(topics)},
		{Key: keyDailyEditionFeedbackPositive(userID, dailyEdition.ID), Value: dailyEdition.ModelFeedback.Positive},
		{Key: keyDailyEditionFeedbackNegative(userID, dailyEdition.ID), Value: dailyEdition.ModelFeedback.Negative},
		{Key: keyDailyEditionNewspaperName(userID, dailyEdition.ID), Value: dailyEdition.NewspaperName},
		{Key: keyDailyEditionPrompt(userID, dailyEdition.ID), Value: dailyEdition.Prompt},
	}
	if err := r.store.MultiSet(ctx, pairs); err != nil {
		return fmt.Errorf("failed to save daily edition %s: %w", dailyEdition.ID, err)
	}
	err = r.store.ZAdd(ctx, keyDailyEditions(userID), float64(dailyEdition.GenerationTime), dailyEdition.ID)
	if err != nil {
		return fmt.Errorf("failed to index daily edition %s: %w", dailyEdition.ID, err)
	}
	return nil
}

// Get returns nil when the edition list, generation time, front page or
// topics are missing.
func (r *dailyEditionRepository) Get(ctx context.Context, userID, dailyEditionID string) (*entity.DailyEdition, error) {
	editions, err := r.store.Get(ctx, keyDailyEditionEditions(userID, dailyEditionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily edition %s: %w", dailyEditionID, err)
	}
	timeStr, err := r.store.Get(ctx, keyDailyEditionTime(userID, dailyEditionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily edition %s: %w", dailyEditionID, err)
	}
	frontPageHeadline, err := r.store.Get(ctx, keyDailyEditionFrontPageHeadline(userID, dailyEditionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily edition %s: %w", dailyEditionID, err)
	}
	frontPageArticle, err := r.store.Get(ctx, keyDailyEditionFrontPageArticle(userID, dailyEditionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily edition %s: %w", dailyEditionID, err)
	}
	topicsStr, err := r.store.Get(ctx, keyDailyEditionTopics(userID, dailyEditionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily edition %s: %w", dailyEditionID, err)
	}
	if editions == "" || timeStr == "" || frontPageHeadline == "" || frontPageArticle == "" || topicsStr == "" {
		return nil, nil
	}

	var topics []entity.Topic
	if err := json.Unmarshal([]byte(topicsStr), &topics); err != nil {
		return nil, fmt.Errorf("failed to decode daily edition %s topics: %w", dailyEditionID, err)
	}

	positive, _ := r.store.Get(ctx, keyDailyEditionFeedbackPositive(userID, dailyEditionID))
	negative, _ := r.store.Get(ctx, keyDailyEditionFeedbackNegative(userID, dailyEditionID))
	newspaperName, _ := r.store.Get(ctx, keyDailyEditionNewspaperName(userID, dailyEditionID))
	prompt, _ := r.store.Get(ctx, keyDailyEditionPrompt(userID, dailyEditionID))

	return &entity.DailyEdition{
		ID:                dailyEditionID,
		Editions:          unmarshalStrings(editions),
		GenerationTime:    parseInt64Or(timeStr, 0),
		FrontPageHeadline: frontPageHeadline,
		FrontPageArticle:  frontPageArticle,
		Topics:            topics,
		ModelFeedback:     entity.ModelFeedback{Positive: positive, Negative: negative},
		NewspaperName:     newspaperName,
		Prompt:            prompt,
	}, nil
}

// GetAll returns daily editions newest first, up to limit. A limit <= 0
// returns all.
func (r *dailyEditionRepository) GetAll(ctx context.Context, userID string, limit int) ([]*entity.DailyEdition, error) {
	key := keyDailyEditions(userID)
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
		return nil, fmt.Errorf("failed to read daily edition index: %w", err)
	}

	dailyEditions := make([]*entity.DailyEdition, 0, len(ids))
	for _, id := range ids {
		dailyEdition, err := r.Get(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if dailyEdition != nil {
			dailyEditions = append(dailyEditions, dailyEdition)
		}
	}
	return dailyEditions, nil
}
