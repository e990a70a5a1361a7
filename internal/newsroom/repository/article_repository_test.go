package repository

import (
	"context"
	"testing"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArticleFixture(id, reporterID string, generationTime int64) *entity.Article {
	return &entity.Article{
		ID:             id,
		ReporterID:     reporterID,
		Headline:       "Headline " + id,
		Body:           "Body of " + id,
		GenerationTime: generationTime,
		Prompt:         "System: s\n\nUser: u",
		MessageIDs:     []int{1, 3},
		MessageTexts:   []string{"first", "third"},
	}
}

func TestArticleRepositorySaveGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	reporterRepo := NewReporterRepository(store)
	repo := NewArticleRepository(store, reporterRepo)

	article := newArticleFixture("article_1", "reporter_1", 1000)
	require.NoError(t, repo.Save(ctx, "u1", article))

	got, err := repo.Get(ctx, "u1", "article_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, article.Headline, got.Headline)
	assert.Equal(t, article.Body, got.Body)
	assert.Equal(t, article.ReporterID, got.ReporterID)
	assert.Equal(t, article.GenerationTime, got.GenerationTime)
	assert.Equal(t, []int{1, 3}, got.MessageIDs)
	assert.Equal(t, []string{"first", "third"}, got.MessageTexts)
}

func TestArticleRepositoryGetMissing(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewArticleRepository(store, NewReporterRepository(store))

	got, err := repo.Get(ctx, "u1", "article_none")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestArticleRepositoryEmptyMessageDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewArticleRepository(store, NewReporterRepository(store))

	article := newArticleFixture("article_2", "reporter_1", 1000)
	article.MessageIDs = nil
	article.MessageTexts = nil
	require.NoError(t, repo.Save(ctx, "u1", article))

	got, err := repo.Get(ctx, "u1", "article_2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotNil(t, got.MessageIDs)
	assert.Empty(t, got.MessageIDs)
	assert.NotNil(t, got.MessageTexts)
	assert.Empty(t, got.MessageTexts)
}

func TestArticleRepositoryGetByReporterNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewArticleRepository(store, NewReporterRepository(store))

	for i, id := range []string{"article_a", "article_b", "article_c"} {
		require.NoError(t, repo.Save(ctx, "u1", newArticleFixture(id, "reporter_1", int64(1000+i))))
	}

	articles, err := repo.GetByReporter(ctx, "u1", "reporter_1", 2)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "article_c", articles[0].ID)
	assert.Equal(t, "article_b", articles[1].ID)

	all, err := repo.GetByReporter(ctx, "u1", "reporter_1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestArticleRepositoryGetInTimeRange(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewArticleRepository(store, NewReporterRepository(store))

	require.NoError(t, repo.Save(ctx, "u1", newArticleFixture("article_old", "reporter_1", 100)))
	require.NoError(t, repo.Save(ctx, "u1", newArticleFixture("article_in", "reporter_1", 500)))
	require.NoError(t, repo.Save(ctx, "u1", newArticleFixture("article_new", "reporter_1", 900)))

	articles, err := repo.GetInTimeRange(ctx, "u1", "reporter_1", 200, 800)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "article_in", articles[0].ID)
}

func TestArticleRepositoryToleratesDanglingIndex(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewArticleRepository(store, NewReporterRepository(store))

	require.NoError(t, repo.Save(ctx, "u1", newArticleFixture("article_live", "reporter_1", 100)))
	require.NoError(t, repo.Save(ctx, "u1", newArticleFixture("article_gone", "reporter_1", 200)))

	// Simulate a deleted article whose index entry survived.
	require.NoError(t, store.Del(ctx, keyArticleHeadline("u1", "article_gone")))

	articles, err := repo.GetByReporter(ctx, "u1", "reporter_1", 0)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "article_live", articles[0].ID)
}

func TestArticleRepositoryTenantIsolation(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewArticleRepository(store, NewReporterRepository(store))

	require.NoError(t, repo.Save(ctx, "u1", newArticleFixture("article_x", "reporter_1", 100)))

	got, err := repo.Get(ctx, "u2", "article_x")
	require.NoError(t, err)
	assert.Nil(t, got)
}
