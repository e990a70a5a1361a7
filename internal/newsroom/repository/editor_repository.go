package repository

import (
	"context"
	"fmt"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/storage"
	"golang-ai-newsroom/pkg/common"
)

// EditorRepository persists the per-tenant editor configuration.
type EditorRepository interface {
	Save(ctx context.Context, userID string, editor *entity.Editor) error
	Get(ctx context.Context, userID string) (*entity.Editor, error)
	SetLastGenerationTime(ctx context.Context, userID, jobName string, timestamp int64) error
}

type editorRepository struct {
	store storage.Store
}

// NewEditorRepository creates a new editor repository.
func NewEditorRepository(store storage.Store) EditorRepository {
	return &editorRepository{store: store}
}

func (r *editorRepository) Save(ctx context.Context, userID string, editor *entity.Editor) error {
	if err := editor.Validate(); err != nil {
		return err
	}

	pairs := []storage.KV{
		{Key: keyEditorBio(userID), Value: editor.Bio},
		{Key: keyEditorPrompt(userID), Value: editor.Prompt},
		{Key: keyEditorModelName(userID), Value: editor.ModelName},
		{Key: keyEditorMessageSliceCount(userID), Value: formatInt(editor.MessageSliceCount)},
		{Key: keyEditorInputTokenCost(userID), Value: formatFloat(editor.InputTokenCost)},
		{Key: keyEditorOutputTokenCost(userID), Value: formatFloat(editor.OutputTokenCost)},
		{Key: keyUserArticlePeriodMinutes(userID), Value: formatInt(editor.ArticleGenerationPeriodMinutes)},
		{Key: keyUserEventPeriodMinutes(userID), Value: formatInt(editor.EventGenerationPeriodMinutes)},
		{Key: keyUserEditionPeriodMinutes(userID), Value: formatInt(editor.EditionGenerationPeriodMinutes)},
	}
	if editor.LastArticleGenerationTime > 0 {
		pairs = append(pairs, storage.KV{Key: keyLastArticleGenerationTime(userID), Value: formatInt64(editor.LastArticleGenerationTime)})
	}
	if editor.LastEventGenerationTime > 0 {
		pairs = append(pairs, storage.KV{Key: keyLastEventGenerationTime(userID), Value: formatInt64(editor.LastEventGenerationTime)})
	}
	if editor.LastEditionGenerationTime > 0 {
		pairs = append(pairs, storage.KV{Key: keyLastEditionGenerationTime(userID), Value: formatInt64(editor.LastEditionGenerationTime)})
	}

	if err := r.store.MultiSet(ctx, pairs); err != nil {
		return fmt.Errorf("failed to save editor for user %s: %w", userID, err)
	}
	return nil
}

// Get returns nil when the editor has never been configured (no bio or no
// prompt). All other fields fall back to defaults when missing.
func (r *editorRepository) Get(ctx context.Context, userID string) (*entity.Editor, error) {
	bio, err := r.store.Get(ctx, keyEditorBio(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get editor for user %s: %w", userID, err)
	}
	prompt, err := r.store.Get(ctx, keyEditorPrompt(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get editor for user %s: %w", userID, err)
	}
	if bio == "" || prompt == "" {
		return nil, nil
	}

	modelName, err := r.store.Get(ctx, keyEditorModelName(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get editor for user %s: %w", userID, err)
	}
	if modelName == "" {
		modelName = entity.DefaultModelName
	}

	sliceCount, _ := r.store.Get(ctx, keyEditorMessageSliceCount(userID))
	inputCost, _ := r.store.Get(ctx, keyEditorInputTokenCost(userID))
	outputCost, _ := r.store.Get(ctx, keyEditorOutputTokenCost(userID))
	articlePeriod, _ := r.store.Get(ctx, keyUserArticlePeriodMinutes(userID))
	lastArticle, _ := r.store.Get(ctx, keyLastArticleGenerationTime(userID))
	eventPeriod, _ := r.store.Get(ctx, keyUserEventPeriodMinutes(userID))
	lastEvent, _ := r.store.Get(ctx, keyLastEventGenerationTime(userID))
	editionPeriod, _ := r.store.Get(ctx, keyUserEditionPeriodMinutes(userID))
	lastEdition, _ := r.store.Get(ctx, keyLastEditionGenerationTime(userID))

	return &entity.Editor{
		Bio:                            bio,
		Prompt:                         prompt,
		ModelName:                      modelName,
		MessageSliceCount:              parseIntOr(sliceCount, entity.DefaultMessageSliceCount),
		InputTokenCost:                 parseFloatOr(inputCost, entity.DefaultInputTokenCost),
		OutputTokenCost:                parseFloatOr(outputCost, entity.DefaultOutputTokenCost),
		ArticleGenerationPeriodMinutes: parseIntOr(articlePeriod, entity.DefaultArticleGenerationPeriodMinutes),
		LastArticleGenerationTime:      parseInt64Or(lastArticle, 0),
		EventGenerationPeriodMinutes:   parseIntOr(eventPeriod, entity.DefaultEventGenerationPeriodMinutes),
		LastEventGenerationTime:        parseInt64Or(lastEvent, 0),
		EditionGenerationPeriodMinutes: parseIntOr(editionPeriod, entity.DefaultEditionGenerationPeriodMinutes),
		LastEditionGenerationTime:      parseInt64Or(lastEdition, 0),
	}, nil
}

// SetLastGenerationTime records the completion time that gates the next run
// of the given job for this tenant.
func (r *editorRepository) SetLastGenerationTime(ctx context.Context, userID, jobName string, timestamp int64) error {
	var key string
	switch jobName {
	case common.JobReporterArticles, common.JobArticlesFromEvents:
		key = keyLastArticleGenerationTime(userID)
	case common.JobReporterEvents:
		key = keyLastEventGenerationTime(userID)
	case common.JobNewspaperEdition:
		key = keyLastEditionGenerationTime(userID)
	default:
		return fmt.Errorf("job %s has no generation time gate", jobName)
	}
	if err := r.store.Set(ctx, key, formatInt64(timestamp)); err != nil {
		return fmt.Errorf("failed to set last generation time for user %s job %s: %w", userID, jobName, err)
	}
	return nil
}
