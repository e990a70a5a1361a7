package service

import (
	"context"
	"errors"
	"testing"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/config"
	"golang-ai-newsroom/internal/newsroom/dto"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/internal/newsroom/storage"
	"golang-ai-newsroom/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAIRepo struct {
	content string
	usage   dto.TokenUsage
	err     error
	calls   int
	lastReq *dto.ChatRequest
}

func (f *fakeAIRepo) ChatCompletion(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ChatResponse{Content: f.content, Usage: f.usage, Raw: []byte(`{}`)}, nil
}

type fakeFeedRepo struct {
	messages []entity.FeedMessage
	err      error
}

func (f *fakeFeedRepo) FetchLatestMessages(ctx context.Context, limit int) ([]entity.FeedMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.messages) > limit {
		return f.messages[:limit], nil
	}
	return f.messages, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func newTestAIService(t *testing.T, aiRepo repository.AIRepository, feedRepo repository.FeedRepository) AIService {
	t.Helper()
	store := storage.NewMemoryStore()
	log := testLogger(t)

	cfg := &config.Config{}
	cfg.OpenAI.Model = "gpt-5-nano"

	editorRepo := repository.NewEditorRepository(store)
	userRepo := repository.NewUserRepository(store)
	adRepo := repository.NewAdRepository(store)
	usageRepo := repository.NewUsageRepository(store)
	kpiRepo := repository.NewKpiRepository(store)
	auditRepo, err := repository.NewFileAuditRepository(t.TempDir())
	require.NoError(t, err)

	kpiSvc := NewKpiService(kpiRepo, usageRepo, editorRepo, log)
	return NewAIService(cfg, aiRepo, feedRepo, adRepo, editorRepo, userRepo, auditRepo, kpiSvc, log)
}

func candidateArticles(n int) []*entity.Article {
	articles := make([]*entity.Article, 0, n)
	for i := 0; i < n; i++ {
		articles = append(articles, &entity.Article{
			ID:       "article_" + string(rune('a'+i)),
			Headline: "Headline",
			Body:     "Body",
		})
	}
	return articles
}

func TestSelectNewsworthyStoriesZeroCandidates(t *testing.T) {
	aiRepo := &fakeAIRepo{content: "1,2"}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{})

	selection, err := svc.SelectNewsworthyStories(context.Background(), "u1", &entity.Editor{Prompt: "p"}, nil)
	require.NoError(t, err)
	assert.Empty(t, selection.ArticleIDs)
	assert.Empty(t, selection.FullPrompt)
	assert.Zero(t, aiRepo.calls, "no model call expected for zero candidates")
}

func TestSelectNewsworthyStoriesParsesIndices(t *testing.T) {
	aiRepo := &fakeAIRepo{content: "2, 1, 9, 2"}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{})

	candidates := candidateArticles(3)
	selection, err := svc.SelectNewsworthyStories(context.Background(), "u1", &entity.Editor{Prompt: "p"}, candidates)
	require.NoError(t, err)

	// Out-of-range and duplicate indices are dropped, order preserved.
	assert.Equal(t, []string{candidates[1].ID, candidates[0].ID}, selection.ArticleIDs)
	assert.NotEmpty(t, selection.FullPrompt)
}

func TestSelectNewsworthyStoriesFallbackOnError(t *testing.T) {
	aiRepo := &fakeAIRepo{err: errors.New("model down")}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{})

	selection, err := svc.SelectNewsworthyStories(context.Background(), "u1", &entity.Editor{Prompt: "p"}, candidateArticles(10))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(selection.ArticleIDs), 3)
	assert.LessOrEqual(t, len(selection.ArticleIDs), 5)
}

func TestSelectNewsworthyStoriesFallbackSmallPool(t *testing.T) {
	aiRepo := &fakeAIRepo{err: errors.New("model down")}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{})

	// Fewer than 3 candidates: the fallback takes all of them.
	selection, err := svc.SelectNewsworthyStories(context.Background(), "u1", &entity.Editor{Prompt: "p"}, candidateArticles(2))
	require.NoError(t, err)
	assert.Len(t, selection.ArticleIDs, 2)
}

func TestSelectNewsworthyStoriesFallbackOnGarbage(t *testing.T) {
	aiRepo := &fakeAIRepo{content: "none of these are worth printing"}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{})

	selection, err := svc.SelectNewsworthyStories(context.Background(), "u1", &entity.Editor{Prompt: "p"}, candidateArticles(10))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(selection.ArticleIDs), 3)
	assert.LessOrEqual(t, len(selection.ArticleIDs), 5)
}

func TestGenerateArticleFeedFailureTolerated(t *testing.T) {
	aiRepo := &fakeAIRepo{content: `{"headline":"Big News","body":"Something happened.","messageIds":[]}`}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{err: errors.New("feed down")})

	article, err := svc.GenerateArticle(context.Background(), "u1", &entity.Reporter{ID: "r1", Prompt: "p", Enabled: true})
	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Equal(t, "Big News", article.Headline)
	assert.Empty(t, article.MessageIDs)
}

func TestGenerateArticleEmptyHeadline(t *testing.T) {
	aiRepo := &fakeAIRepo{content: `{"headline":"","body":""}`}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{})

	article, err := svc.GenerateArticle(context.Background(), "u1", &entity.Reporter{ID: "r1", Prompt: "p", Enabled: true})
	require.NoError(t, err)
	assert.Nil(t, article)
}

func TestGenerateArticleResolvesMessageTexts(t *testing.T) {
	aiRepo := &fakeAIRepo{
		content: `{"headline":"H","body":"B","messageIds":[2,99]}`,
		usage:   dto.TokenUsage{PromptTokens: 10, CompletionTokens: 5},
	}
	feedRepo := &fakeFeedRepo{messages: []entity.FeedMessage{
		{Text: "first"},
		{Text: "second"},
	}}
	svc := newTestAIService(t, aiRepo, feedRepo)

	article, err := svc.GenerateArticle(context.Background(), "u1", &entity.Reporter{ID: "r1", Prompt: "p", Enabled: true})
	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Equal(t, []int{2}, article.MessageIDs)
	assert.Equal(t, []string{"second"}, article.MessageTexts)
	assert.Equal(t, 10, article.InputTokens)
	assert.Equal(t, 5, article.OutputTokens)
}

func TestGenerateArticleHandlesFencedJSON(t *testing.T) {
	aiRepo := &fakeAIRepo{content: "```json\n{\"headline\":\"H\",\"body\":\"B\"}\n```"}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{})

	article, err := svc.GenerateArticle(context.Background(), "u1", &entity.Reporter{ID: "r1", Prompt: "p", Enabled: true})
	require.NoError(t, err)
	require.NotNil(t, article)
	assert.Equal(t, "H", article.Headline)
}

func TestGenerateEventsModelFailureReturnsEmpty(t *testing.T) {
	aiRepo := &fakeAIRepo{err: errors.New("model down")}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{})

	generation, err := svc.GenerateEvents(context.Background(), "u1", &entity.Reporter{ID: "r1", Prompt: "p", Enabled: true}, nil)
	require.NoError(t, err)
	require.NotNil(t, generation)
	assert.Empty(t, generation.Events)
}

func TestGenerateEventsParsesResponse(t *testing.T) {
	aiRepo := &fakeAIRepo{content: `{"events":[{"index":1,"title":"Storm","facts":["roads closed"]},{"title":"New thing","facts":["happened"]}]}`}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{})

	generation, err := svc.GenerateEvents(context.Background(), "u1", &entity.Reporter{ID: "r1", Prompt: "p", Enabled: true}, nil)
	require.NoError(t, err)
	require.Len(t, generation.Events, 2)
	require.NotNil(t, generation.Events[0].Index)
	assert.Equal(t, 1, *generation.Events[0].Index)
	assert.Nil(t, generation.Events[1].Index)
}

func TestGenerateArticleFromEventsFailureSkips(t *testing.T) {
	aiRepo := &fakeAIRepo{err: errors.New("model down")}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{})

	article, err := svc.GenerateArticleFromEvents(context.Background(), "u1", &entity.Reporter{ID: "r1", Prompt: "p", Enabled: true}, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, article)
}

func TestGenerateDailyEditionStrictOnInvalidPayload(t *testing.T) {
	aiRepo := &fakeAIRepo{content: `{"frontPageHeadline":"","frontPageArticle":"","topics":[]}`}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{})

	editions := []repository.EditionArticles{{ID: "edition_1"}}
	_, err := svc.GenerateDailyEdition(context.Background(), "u1", &entity.Editor{Prompt: "p"}, editions)
	assert.Error(t, err)
}

func TestGenerateDailyEditionNoEditions(t *testing.T) {
	aiRepo := &fakeAIRepo{}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{})

	_, err := svc.GenerateDailyEdition(context.Background(), "u1", &entity.Editor{Prompt: "p"}, nil)
	assert.Error(t, err)
	assert.Zero(t, aiRepo.calls)
}

func TestGenerateDailyEditionSuccess(t *testing.T) {
	aiRepo := &fakeAIRepo{content: `{
		"frontPageHeadline": "The Big Story",
		"frontPageArticle": "It was a day to remember.",
		"topics": [{"name": "Weather", "headline": "Storm passes", "oneLineSummary": "All clear."}],
		"modelFeedbackAboutThePrompt": {"positive": "clear", "negative": "long"}
	}`}
	svc := newTestAIService(t, aiRepo, &fakeFeedRepo{})

	editions := []repository.EditionArticles{{ID: "edition_1"}}
	generation, err := svc.GenerateDailyEdition(context.Background(), "u1", &entity.Editor{Prompt: "p"}, editions)
	require.NoError(t, err)
	assert.Equal(t, "The Big Story", generation.Content.FrontPageHeadline)
	require.Len(t, generation.Content.Topics, 1)
	assert.Equal(t, "Weather", generation.Content.Topics[0].Name)
	assert.Equal(t, "clear", generation.Content.ModelFeedback.Positive)
}
