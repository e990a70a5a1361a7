package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/dto"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/internal/newsroom/storage"
	"golang-ai-newsroom/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReporterAI struct {
	article           func(ctx context.Context, userID string, reporter *entity.Reporter) (*entity.Article, error)
	events            func(ctx context.Context, userID string, reporter *entity.Reporter, lastEvents []*entity.Event) (*EventGeneration, error)
	articleFromEvents func(ctx context.Context, userID string, reporter *entity.Reporter, events []*entity.Event, recentArticles []*entity.Article) (*entity.Article, error)
}

func (f *fakeReporterAI) GenerateArticle(ctx context.Context, userID string, reporter *entity.Reporter) (*entity.Article, error) {
	return f.article(ctx, userID, reporter)
}

func (f *fakeReporterAI) GenerateEvents(ctx context.Context, userID string, reporter *entity.Reporter, lastEvents []*entity.Event) (*EventGeneration, error) {
	return f.events(ctx, userID, reporter, lastEvents)
}

func (f *fakeReporterAI) GenerateArticleFromEvents(ctx context.Context, userID string, reporter *entity.Reporter, events []*entity.Event, recentArticles []*entity.Article) (*entity.Article, error) {
	return f.articleFromEvents(ctx, userID, reporter, events, recentArticles)
}

func (f *fakeReporterAI) SelectNewsworthyStories(ctx context.Context, userID string, editor *entity.Editor, candidates []*entity.Article) (*StorySelection, error) {
	return &StorySelection{}, nil
}

func (f *fakeReporterAI) GenerateDailyEdition(ctx context.Context, userID string, editor *entity.Editor, editions []repository.EditionArticles) (*DailyEditionGeneration, error) {
	return &DailyEditionGeneration{}, nil
}

type reporterFixture struct {
	svc          ReporterService
	reporterRepo repository.ReporterRepository
	articleRepo  repository.ArticleRepository
	eventRepo    repository.EventRepository
	ai           *fakeReporterAI
}

func newReporterFixture(t *testing.T) *reporterFixture {
	t.Helper()
	store := storage.NewMemoryStore()

	reporterRepo := repository.NewReporterRepository(store)
	articleRepo := repository.NewArticleRepository(store, reporterRepo)
	eventRepo := repository.NewEventRepository(store, reporterRepo)
	ai := &fakeReporterAI{}

	svc := NewReporterService(reporterRepo, articleRepo, eventRepo, ai, testLogger(t))

	return &reporterFixture{
		svc:          svc,
		reporterRepo: reporterRepo,
		articleRepo:  articleRepo,
		eventRepo:    eventRepo,
		ai:           ai,
	}
}

func (f *reporterFixture) saveReporter(t *testing.T, id string, enabled bool) {
	t.Helper()
	require.NoError(t, f.reporterRepo.Save(context.Background(), "u1", &entity.Reporter{
		ID:      id,
		Prompt:  "cover the harbor",
		Enabled: enabled,
	}))
}

func TestGenerateAllArticlesSkipsDisabledReporters(t *testing.T) {
	f := newReporterFixture(t)
	f.saveReporter(t, "reporter_on", true)
	f.saveReporter(t, "reporter_off", false)

	var asked []string
	f.ai.article = func(ctx context.Context, userID string, reporter *entity.Reporter) (*entity.Article, error) {
		asked = append(asked, reporter.ID)
		return &entity.Article{
			ID:             utils.GenerateID("article"),
			ReporterID:     reporter.ID,
			Headline:       "h",
			Body:           "b",
			GenerationTime: time.Now().UnixMilli(),
		}, nil
	}

	count, err := f.svc.GenerateAllArticles(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"reporter_on"}, asked)
}

func TestGenerateAllArticlesIsolatesFailures(t *testing.T) {
	f := newReporterFixture(t)
	f.saveReporter(t, "reporter_1", true)
	f.saveReporter(t, "reporter_2", true)

	f.ai.article = func(ctx context.Context, userID string, reporter *entity.Reporter) (*entity.Article, error) {
		if reporter.ID == "reporter_1" {
			return nil, errors.New("model timeout")
		}
		return &entity.Article{
			ID:             utils.GenerateID("article"),
			ReporterID:     reporter.ID,
			Headline:       "h",
			Body:           "b",
			GenerationTime: time.Now().UnixMilli(),
		}, nil
	}

	count, err := f.svc.GenerateAllArticles(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	saved, err := f.articleRepo.GetByReporter(context.Background(), "u1", "reporter_2", 0)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestGenerateAllArticlesNilArticleNotCounted(t *testing.T) {
	f := newReporterFixture(t)
	f.saveReporter(t, "reporter_1", true)

	f.ai.article = func(ctx context.Context, userID string, reporter *entity.Reporter) (*entity.Article, error) {
		return nil, nil
	}

	count, err := f.svc.GenerateAllArticles(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGenerateAllEventsCreatesNewEvents(t *testing.T) {
	f := newReporterFixture(t)
	f.saveReporter(t, "reporter_1", true)

	f.ai.events = func(ctx context.Context, userID string, reporter *entity.Reporter, lastEvents []*entity.Event) (*EventGeneration, error) {
		assert.Empty(t, lastEvents)
		return &EventGeneration{
			Events: []dto.GeneratedEvent{{
				Title:      "Bridge closure",
				Facts:      []string{"closed at noon"},
				Where:      "north span",
				When:       "today",
				MessageIDs: []int{1, 2, 99},
			}},
			Messages: []entity.FeedMessage{
				{Author: "a", Text: "first"},
				{Author: "b", Text: "second"},
			},
			ModelName: "gpt-5-nano",
			Usage:     dto.TokenUsage{PromptTokens: 7, CompletionTokens: 3},
		}, nil
	}

	count, err := f.svc.GenerateAllEvents(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	events, err := f.eventRepo.GetByReporter(context.Background(), "u1", "reporter_1", 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Bridge closure", events[0].Title)
	// Out of range message references are dropped during text resolution.
	assert.Equal(t, []string{"first", "second"}, events[0].MessageTexts)
	assert.Equal(t, []int{1, 2, 99}, events[0].MessageIDs)
	assert.NotZero(t, events[0].CreatedTime)
	assert.Equal(t, events[0].CreatedTime, events[0].UpdatedTime)
}

func TestGenerateAllEventsAppendsFactsByIndex(t *testing.T) {
	f := newReporterFixture(t)
	f.saveReporter(t, "reporter_1", true)

	existing := &entity.Event{
		ID:          "event_1",
		ReporterID:  "reporter_1",
		Title:       "Bridge closure",
		CreatedTime: 100,
		UpdatedTime: 100,
		Facts:       []string{"closed at noon"},
	}
	require.NoError(t, f.eventRepo.Save(context.Background(), "u1", existing))

	one := 1
	f.ai.events = func(ctx context.Context, userID string, reporter *entity.Reporter, lastEvents []*entity.Event) (*EventGeneration, error) {
		require.Len(t, lastEvents, 1)
		return &EventGeneration{
			Events: []dto.GeneratedEvent{{
				Index: &one,
				Title: "Bridge closure",
				Facts: []string{"reopened at six"},
			}},
		}, nil
	}

	count, err := f.svc.GenerateAllEvents(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	events, err := f.eventRepo.GetByReporter(context.Background(), "u1", "reporter_1", 0)
	require.NoError(t, err)
	require.Len(t, events, 1, "index continuation must not create a second event")
	assert.Equal(t, []string{"closed at noon", "reopened at six"}, events[0].Facts)
	assert.Greater(t, events[0].UpdatedTime, int64(100))
	assert.Equal(t, int64(100), events[0].CreatedTime)
}

func TestGenerateAllEventsOutOfRangeIndexCreatesNew(t *testing.T) {
	f := newReporterFixture(t)
	f.saveReporter(t, "reporter_1", true)

	require.NoError(t, f.eventRepo.Save(context.Background(), "u1", &entity.Event{
		ID:         "event_1",
		ReporterID: "reporter_1",
		Title:      "Bridge closure",
		Facts:      []string{"closed at noon"},
	}))

	nine := 9
	f.ai.events = func(ctx context.Context, userID string, reporter *entity.Reporter, lastEvents []*entity.Event) (*EventGeneration, error) {
		return &EventGeneration{
			Events: []dto.GeneratedEvent{{
				Index: &nine,
				Title: "Ferry strike",
				Facts: []string{"crews walked out"},
			}},
		}, nil
	}

	count, err := f.svc.GenerateAllEvents(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	events, err := f.eventRepo.GetByReporter(context.Background(), "u1", "reporter_1", 0)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestGenerateAllArticlesFromEventsSkipsReporterWithoutEvents(t *testing.T) {
	f := newReporterFixture(t)
	f.saveReporter(t, "reporter_1", true)

	called := false
	f.ai.articleFromEvents = func(ctx context.Context, userID string, reporter *entity.Reporter, events []*entity.Event, recentArticles []*entity.Article) (*entity.Article, error) {
		called = true
		return nil, nil
	}

	count, err := f.svc.GenerateAllArticlesFromEvents(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.False(t, called)
}

func TestGenerateAllArticlesFromEventsPersists(t *testing.T) {
	f := newReporterFixture(t)
	f.saveReporter(t, "reporter_1", true)

	require.NoError(t, f.eventRepo.Save(context.Background(), "u1", &entity.Event{
		ID:         "event_1",
		ReporterID: "reporter_1",
		Title:      "Bridge closure",
		Facts:      []string{"closed at noon"},
	}))

	f.ai.articleFromEvents = func(ctx context.Context, userID string, reporter *entity.Reporter, events []*entity.Event, recentArticles []*entity.Article) (*entity.Article, error) {
		require.Len(t, events, 1)
		return &entity.Article{
			ID:             utils.GenerateID("article"),
			ReporterID:     reporter.ID,
			Headline:       "Bridge reopens",
			Body:           "b",
			GenerationTime: time.Now().UnixMilli(),
		}, nil
	}

	count, err := f.svc.GenerateAllArticlesFromEvents(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	articles, err := f.articleRepo.GetByReporter(context.Background(), "u1", "reporter_1", 0)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Bridge reopens", articles[0].Headline)
}
