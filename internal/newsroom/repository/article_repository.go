package repository

import (
	"context"
	"fmt"
	"sort"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/storage"
)

// ArticleRepository persists tenant-scoped articles. Articles are indexed
// per reporter in a sorted set scored by generation time.
type ArticleRepository interface {
	Save(ctx context.Context, userID string, article *entity.Article) error
	Get(ctx context.Context, userID, articleID string) (*entity.Article, error)
	GetByReporter(ctx context.Context, userID, reporterID string, limit int) ([]*entity.Article, error)
	GetInTimeRange(ctx context.Context, userID, reporterID string, startTime, endTime int64) ([]*entity.Article, error)
	GetAll(ctx context.Context, userID string, limit int) ([]*entity.Article, error)
}

type articleRepository struct {
	store        storage.Store
	reporterRepo ReporterRepository
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(store storage.Store, reporterRepo ReporterRepository) ArticleRepository {
	return &articleRepository{store: store, reporterRepo: reporterRepo}
}

func (r *articleRepository) Save(ctx context.Context, userID string, article *entity.Article) error {
	pairs := []storage.KV{
		{Key: keyArticleHeadline(userID, article.ID), Value: article.Headline},
		{Key: keyArticleBody(userID, article.ID), Value: article.Body},
		{Key: keyArticleTime(userID, article.ID), Value: formatInt64(article.GenerationTime)},
		{Key: keyArticlePrompt(userID, article.ID), Value: article.Prompt},
		{Key: keyArticleMessageIDs(userID, article.ID), Value: marshalList(article.MessageIDs)},
		{Key: keyArticleMessageTexts(userID, article.ID), Value: marshalList(article.MessageTexts)},
		{Key: keyArticleReporterID(userID, article.ID), Value: article.ReporterID},
	}
	if err := r.store.MultiSet(ctx, pairs); err != nil {
		return fmt.Errorf("failed to save article %s: %w", article.ID, err)
	}
	err := r.store.ZAdd(ctx, keyArticlesByReporter(userID, article.ReporterID),
		float64(article.GenerationTime), article.ID)
	if err != nil {
		return fmt.Errorf("failed to index article %s: %w", article.ID, err)
	}
	return nil
}

// Get returns nil when any required field (headline, body, time, reporter
// id) is missing. Optional fields default to empty values.
func (r *articleRepository) Get(ctx context.Context, userID, articleID string) (*entity.Article, error) {
	headline, err := r.store.Get(ctx, keyArticleHeadline(userID, articleID))
	if err != nil {
		return nil, fmt.Errorf("failed to get article %s: %w", articleID, err)
	}
	body, err := r.store.Get(ctx, keyArticleBody(userID, articleID))
	if err != nil {
		return nil, fmt.Errorf("failed to get article %s: %w", articleID, err)
	}
	timeStr, err := r.store.Get(ctx, keyArticleTime(userID, articleID))
	if err != nil {
		return nil, fmt.Errorf("failed to get article %s: %w", articleID, err)
	}
	reporterID, err := r.store.Get(ctx, keyArticleReporterID(userID, articleID))
	if err != nil {
		return nil, fmt.Errorf("failed to get article %s: %w", articleID, err)
	}
	if headline == "" || body == "" || timeStr == "" || reporterID == "" {
		return nil, nil
	}

	prompt, _ := r.store.Get(ctx, keyArticlePrompt(userID, articleID))
	messageIDs, _ := r.store.Get(ctx, keyArticleMessageIDs(userID, articleID))
	messageTexts, _ := r.store.Get(ctx, keyArticleMessageTexts(userID, articleID))

	return &entity.Article{
		ID:             articleID,
		ReporterID:     reporterID,
		Headline:       headline,
		Body:           body,
		GenerationTime: parseInt64Or(timeStr, 0),
		Prompt:         prompt,
		MessageIDs:     unmarshalInts(messageIDs),
		MessageTexts:   unmarshalStrings(messageTexts),
	}, nil
}

// GetByReporter returns the reporter's articles newest first, up to limit.
// A limit <= 0 returns all. Dangling index entries are skipped.
func (r *articleRepository) GetByReporter(ctx context.Context, userID, reporterID string, limit int) ([]*entity.Article, error) {
	n := limit
	if n <= 0 {
		n = -1
	}
	ids, err := r.zrevIDs(ctx, keyArticlesByReporter(userID, reporterID), n)
	if err != nil {
		return nil, err
	}
	return r.resolve(ctx, userID, ids)
}

// GetInTimeRange returns the reporter's articles with startTime <=
// generationTime <= endTime, oldest first.
func (r *articleRepository) GetInTimeRange(ctx context.Context, userID, reporterID string, startTime, endTime int64) ([]*entity.Article, error) {
	ids, err := r.store.ZRangeByScore(ctx, keyArticlesByReporter(userID, reporterID),
		float64(startTime), float64(endTime))
	if err != nil {
		return nil, fmt.Errorf("failed to query articles in range: %w", err)
	}
	return r.resolve(ctx, userID, ids)
}

// GetAll returns articles across every reporter of the tenant, newest
// first, up to limit.
func (r *articleRepository) GetAll(ctx context.Context, userID string, limit int) ([]*entity.Article, error) {
	reporters, err := r.reporterRepo.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	var all []*entity.Article
	for _, reporter := range reporters {
		articles, err := r.GetByReporter(ctx, userID, reporter.ID, limit)
		if err != nil {
			return nil, err
		}
		all = append(all, articles...)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].GenerationTime > all[j].GenerationTime
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *articleRepository) zrevIDs(ctx context.Context, key string, limit int) ([]string, error) {
	if limit < 0 {
		// No limit: read the whole index via an unbounded score range, then
		// reverse to newest first.
		ids, err := r.store.ZRangeByScore(ctx, key, 0, float64(1<<62))
		if err != nil {
			return nil, fmt.Errorf("failed to read article index: %w", err)
		}
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
		return ids, nil
	}
	ids, err := r.store.ZRevRangeN(ctx, key, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read article index: %w", err)
	}
	return ids, nil
}

func (r *articleRepository) resolve(ctx context.Context, userID string, ids []string) ([]*entity.Article, error) {
	articles := make([]*entity.Article, 0, len(ids))
	for _, id := range ids {
		article, err := r.Get(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if article != nil {
			articles = append(articles, article)
		}
	}
	return articles, nil
}
