package service

import (
	"context"
	"testing"
	"time"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/dto"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/internal/newsroom/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCuratorAI struct {
	selectStories func(ctx context.Context, userID string, editor *entity.Editor, candidates []*entity.Article) (*StorySelection, error)
	dailyEdition  func(ctx context.Context, userID string, editor *entity.Editor, editions []repository.EditionArticles) (*DailyEditionGeneration, error)
}

func (f *fakeCuratorAI) GenerateArticle(ctx context.Context, userID string, reporter *entity.Reporter) (*entity.Article, error) {
	return nil, nil
}

func (f *fakeCuratorAI) GenerateEvents(ctx context.Context, userID string, reporter *entity.Reporter, lastEvents []*entity.Event) (*EventGeneration, error) {
	return &EventGeneration{}, nil
}

func (f *fakeCuratorAI) GenerateArticleFromEvents(ctx context.Context, userID string, reporter *entity.Reporter, events []*entity.Event, recentArticles []*entity.Article) (*entity.Article, error) {
	return nil, nil
}

func (f *fakeCuratorAI) SelectNewsworthyStories(ctx context.Context, userID string, editor *entity.Editor, candidates []*entity.Article) (*StorySelection, error) {
	return f.selectStories(ctx, userID, editor, candidates)
}

func (f *fakeCuratorAI) GenerateDailyEdition(ctx context.Context, userID string, editor *entity.Editor, editions []repository.EditionArticles) (*DailyEditionGeneration, error) {
	return f.dailyEdition(ctx, userID, editor, editions)
}

type editorFixture struct {
	svc              EditorService
	store            storage.Store
	reporterRepo     repository.ReporterRepository
	articleRepo      repository.ArticleRepository
	editionRepo      repository.EditionRepository
	dailyEditionRepo repository.DailyEditionRepository
	editorRepo       repository.EditorRepository
	ai               *fakeCuratorAI
}

func newEditorFixture(t *testing.T) *editorFixture {
	t.Helper()
	store := storage.NewMemoryStore()

	editorRepo := repository.NewEditorRepository(store)
	reporterRepo := repository.NewReporterRepository(store)
	articleRepo := repository.NewArticleRepository(store, reporterRepo)
	editionRepo := repository.NewEditionRepository(store)
	dailyEditionRepo := repository.NewDailyEditionRepository(store)
	ai := &fakeCuratorAI{}

	svc := NewEditorService(editorRepo, reporterRepo, articleRepo, editionRepo, dailyEditionRepo, ai, testLogger(t))

	return &editorFixture{
		svc:              svc,
		store:            store,
		reporterRepo:     reporterRepo,
		articleRepo:      articleRepo,
		editionRepo:      editionRepo,
		dailyEditionRepo: dailyEditionRepo,
		editorRepo:       editorRepo,
		ai:               ai,
	}
}

func (f *editorFixture) saveEditor(t *testing.T) {
	t.Helper()
	require.NoError(t, f.editorRepo.Save(context.Background(), "u1", &entity.Editor{
		Bio:                            "curates local news",
		Prompt:                         "pick the important stories",
		ArticleGenerationPeriodMinutes: 60,
		EventGenerationPeriodMinutes:   30,
		EditionGenerationPeriodMinutes: 1440,
	}))
}

func (f *editorFixture) saveReporter(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.reporterRepo.Save(context.Background(), "u1", &entity.Reporter{
		ID:      id,
		Prompt:  "cover the city",
		Enabled: true,
	}))
}

func (f *editorFixture) saveArticle(t *testing.T, reporterID, id string, generationTime int64) *entity.Article {
	t.Helper()
	article := &entity.Article{
		ID:             id,
		ReporterID:     reporterID,
		Headline:       "headline " + id,
		Body:           "body " + id,
		GenerationTime: generationTime,
	}
	require.NoError(t, f.articleRepo.Save(context.Background(), "u1", article))
	return article
}

func TestGenerateHourlyEditionNoReporters(t *testing.T) {
	f := newEditorFixture(t)

	_, err := f.svc.GenerateHourlyEdition(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNoReporters)
}

func TestGenerateHourlyEditionNoArticlesInWindow(t *testing.T) {
	f := newEditorFixture(t)
	f.saveReporter(t, "reporter_1")

	// An article older than the 3 hour window must not count.
	f.saveArticle(t, "reporter_1", "article_old", time.Now().Add(-4*time.Hour).UnixMilli())

	_, err := f.svc.GenerateHourlyEdition(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNoArticlesInWindow)
}

func TestGenerateHourlyEditionNoEditor(t *testing.T) {
	f := newEditorFixture(t)
	f.saveReporter(t, "reporter_1")
	f.saveArticle(t, "reporter_1", "article_1", time.Now().UnixMilli())

	_, err := f.svc.GenerateHourlyEdition(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNoEditor)
}

func TestGenerateHourlyEditionPersistsSelection(t *testing.T) {
	f := newEditorFixture(t)
	f.saveEditor(t)
	f.saveReporter(t, "reporter_1")
	f.saveReporter(t, "reporter_2")

	now := time.Now().UnixMilli()
	f.saveArticle(t, "reporter_1", "article_1", now)
	f.saveArticle(t, "reporter_2", "article_2", now)
	f.saveArticle(t, "reporter_2", "article_3", time.Now().Add(-5*time.Hour).UnixMilli())

	var sawCandidates []string
	f.ai.selectStories = func(ctx context.Context, userID string, editor *entity.Editor, candidates []*entity.Article) (*StorySelection, error) {
		for _, c := range candidates {
			sawCandidates = append(sawCandidates, c.ID)
		}
		return &StorySelection{
			ArticleIDs: []string{"article_2"},
			FullPrompt: "System: s\n\nUser: u",
			ModelName:  "gpt-5-nano",
			Usage:      dto.TokenUsage{PromptTokens: 40, CompletionTokens: 8},
		}, nil
	}

	edition, err := f.svc.GenerateHourlyEdition(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, edition)

	// Only in-window articles reach the selection.
	assert.ElementsMatch(t, []string{"article_1", "article_2"}, sawCandidates)

	assert.Equal(t, []string{"article_2"}, edition.Stories)
	assert.Equal(t, "gpt-5-nano", edition.ModelName)
	assert.Equal(t, 40, edition.InputTokens)
	assert.Equal(t, 8, edition.OutputTokens)

	stored, err := f.editionRepo.Get(context.Background(), "u1", edition.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, edition.Stories, stored.Stories)
}

func TestGenerateDailyEditionNoEditionsInWindow(t *testing.T) {
	f := newEditorFixture(t)
	f.saveEditor(t)

	require.NoError(t, f.editionRepo.Save(context.Background(), "u1", &entity.NewspaperEdition{
		ID:             "edition_stale",
		GenerationTime: time.Now().Add(-25 * time.Hour).UnixMilli(),
	}))

	_, err := f.svc.GenerateDailyEdition(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNoEditionsInWindow)

	dailies, err := f.dailyEditionRepo.GetAll(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, dailies)
}

func TestGenerateDailyEditionFiltersDanglingStories(t *testing.T) {
	f := newEditorFixture(t)
	f.saveEditor(t)
	f.saveReporter(t, "reporter_1")

	now := time.Now().UnixMilli()
	f.saveArticle(t, "reporter_1", "article_live", now)

	require.NoError(t, f.editionRepo.Save(context.Background(), "u1", &entity.NewspaperEdition{
		ID:             "edition_1",
		Stories:        []string{"article_live", "article_gone"},
		GenerationTime: now,
	}))

	var sawEditions []repository.EditionArticles
	f.ai.dailyEdition = func(ctx context.Context, userID string, editor *entity.Editor, editions []repository.EditionArticles) (*DailyEditionGeneration, error) {
		sawEditions = editions
		return &DailyEditionGeneration{
			Content: dto.DailyEditionContent{
				FrontPageHeadline: "City carries on",
				FrontPageArticle:  "A long look back at the day.",
				Topics: []entity.Topic{{
					Name:           "civics",
					Headline:       "Council passes budget",
					OneLineSummary: "The council passed the budget.",
				}},
				ModelFeedback: entity.ModelFeedback{Positive: "clear", Negative: "long"},
			},
			FullPrompt: "System: s\n\nUser: u",
			ModelName:  "gpt-5-nano",
			Usage:      dto.TokenUsage{PromptTokens: 100, CompletionTokens: 50},
		}, nil
	}

	dailyEdition, err := f.svc.GenerateDailyEdition(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, dailyEdition)

	// The dangling article is dropped from the synthesis context but the
	// edition reference itself is kept.
	require.Len(t, sawEditions, 1)
	assert.Equal(t, "edition_1", sawEditions[0].ID)
	require.Len(t, sawEditions[0].Articles, 1)
	assert.Equal(t, "article_live", sawEditions[0].Articles[0].ID)

	assert.Equal(t, []string{"edition_1"}, dailyEdition.Editions)
	assert.Equal(t, "City carries on", dailyEdition.FrontPageHeadline)
	assert.NotEmpty(t, dailyEdition.NewspaperName)
	assert.Contains(t, dailyEdition.NewspaperName, time.Now().Weekday().String())

	stored, err := f.dailyEditionRepo.Get(context.Background(), "u1", dailyEdition.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, dailyEdition.FrontPageHeadline, stored.FrontPageHeadline)
}

func TestGetEditionWithArticlesDropsDangling(t *testing.T) {
	f := newEditorFixture(t)
	f.saveReporter(t, "reporter_1")

	now := time.Now().UnixMilli()
	f.saveArticle(t, "reporter_1", "article_1", now)

	require.NoError(t, f.editionRepo.Save(context.Background(), "u1", &entity.NewspaperEdition{
		ID:             "edition_1",
		Stories:        []string{"article_1", "article_missing"},
		GenerationTime: now,
	}))

	edition, articles, err := f.svc.GetEditionWithArticles(context.Background(), "u1", "edition_1")
	require.NoError(t, err)
	require.NotNil(t, edition)
	require.Len(t, articles, 1)
	assert.Equal(t, "article_1", articles[0].ID)
}

func TestGetLatestEditionEmpty(t *testing.T) {
	f := newEditorFixture(t)

	edition, err := f.svc.GetLatestEdition(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, edition)

	dailyEdition, err := f.svc.GetLatestDailyEdition(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, dailyEdition)
}
