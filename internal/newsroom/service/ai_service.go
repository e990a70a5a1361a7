package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/config"
	"golang-ai-newsroom/internal/newsroom/dto"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/pkg/common"
	"golang-ai-newsroom/pkg/logger"
	"golang-ai-newsroom/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
)

// StorySelection is the outcome of newsworthy story selection for one
// edition.
type StorySelection struct {
	ArticleIDs []string
	FullPrompt string
	ModelName  string
	Usage      dto.TokenUsage
}

// EventGeneration is the outcome of one event generation call for a
// reporter. Events reference the context events by 1-based index; Messages
// holds the feed slice the model saw, for message id resolution.
type EventGeneration struct {
	Events     []dto.GeneratedEvent
	Messages   []entity.FeedMessage
	FullPrompt string
	ModelName  string
	Usage      dto.TokenUsage
}

// DailyEditionGeneration is the outcome of daily edition synthesis.
type DailyEditionGeneration struct {
	Content    dto.DailyEditionContent
	FullPrompt string
	ModelName  string
	Usage      dto.TokenUsage
}

/// AIService drives all model interactions: prompt assembly, completion
// calls, response parsing, usage accounting and raw response auditing.
type AIService interface {
	GenerateArticle(ctx context.Context, userID string, reporter *entity.Reporter) (*entity.Article, error)
	GenerateEvents(ctx context.Context, userID string, reporter *entity.Reporter, lastEvents []*entity.Event) (*EventGeneration, error)
	GenerateArticleFromEvents(ctx context.Context, userID string, reporter *entity.Reporter, events []*entity.Event, recentArticles []*entity.Article) (*entity.Article, error)
	SelectNewsworthyStories(ctx context.Context, userID string, editor *entity.Editor, candidates []*entity.Article) (*StorySelection, error)
	GenerateDailyEdition(ctx context.Context, userID string, editor *entity.Editor, editions []repository.EditionArticles) (*DailyEditionGeneration, error)
}

// NewAIService creates a new AI service.
func NewAIService(
	cfg *config.Config,
	aiRepo repository.AIRepository,
	feedRepo repository.FeedRepository,
	adRepo repository.AdRepository,
	editorRepo repository.EditorRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	kpiService KpiService,
	logger *logger.Logger,
) AIService {
	return &aiService{
		cfg:        cfg,
		aiRepo:     aiRepo,
		feedRepo:   feedRepo,
		adRepo:     adRepo,
		editorRepo: editorRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		kpiService: kpiService,
		logger:     logger,
		cache:      gocache.New(5*time.Minute, 10*time.Minute),
	}
}

type aiService struct {
	cfg        *config.Config
	aiRepo     repository.AIRepository
	feedRepo   repository.FeedRepository
	adRepo     repository.AdRepository
	editorRepo repository.EditorRepository
	userRepo   repository.UserRepository
	auditRepo  repository.AuditRepository
	kpiService KpiService
	logger     *logger.Logger
	cache      *gocache.Cache
}

// GenerateArticle runs the article-from-feed path for one reporter. A nil
// article with a nil error means the model found nothing relevant in the
// feed; nothing should be persisted in that case.
func (s *aiService) GenerateArticle(ctx context.Context, userID string, reporter *entity.Reporter) (*entity.Article, error) {
	messages := s.fetchMessages(ctx, userID)
	ad := s.mostRecentAd(ctx, userID)

	socialContext := repository.FormatSocialMediaContext(messages, true, ad)
	systemPrompt, userPrompt := repository.BuildArticlePrompts(reporter, socialContext)

	resp, err := s.chat(ctx, userID, common.AuditPurposeArticle, systemPrompt, userPrompt, "news_article")
	if err != nil {
		return nil, fmt.Errorf("failed to generate article for reporter %s: %w", reporter.ID, err)
	}

	var generated dto.GeneratedArticle
	if err := unmarshalModelJSON(resp.Content, &generated); err != nil {
		return nil, fmt.Errorf("failed to parse article response for reporter %s: %w", reporter.ID, err)
	}
	if err := generated.Validate(); err != nil {
		return nil, fmt.Errorf("invalid article response for reporter %s: %w", reporter.ID, err)
	}
	if generated.Empty() {
		s.logger.Info("model found no newsworthy messages",
			logger.StringField("user_id", userID),
			logger.StringField("reporter_id", reporter.ID),
		)
		return nil, nil
	}

	return s.buildArticle(ctx, userID, reporter, &generated, messages, systemPrompt, userPrompt, resp), nil
}

// GenerateEvents runs the event generation path for one reporter. Model or
// parse failures degrade to an empty result so one reporter cannot stall a
// whole cycle.
func (s *aiService) GenerateEvents(ctx context.Context, userID string, reporter *entity.Reporter, lastEvents []*entity.Event) (*EventGeneration, error) {
	messages := s.fetchMessages(ctx, userID)

	eventsContext := repository.FormatEventsContext(lastEvents)
	socialContext := repository.FormatMessagesPlain(messages)
	systemPrompt, userPrompt := repository.BuildEventsPrompts(reporter, eventsContext, socialContext)

	result := &EventGeneration{
		Messages:   messages,
		FullPrompt: repository.FullPrompt(systemPrompt, userPrompt),
		ModelName:  s.resolveModel(ctx, userID),
	}

	resp, err := s.chat(ctx, userID, common.AuditPurposeEvents, systemPrompt, userPrompt, "events")
	if err != nil {
		s.logger.Warn("event generation failed, continuing with no events",
			logger.StringField("user_id", userID),
			logger.StringField("reporter_id", reporter.ID),
			logger.ErrorField(err),
		)
		return result, nil
	}

	var parsed dto.EventGenerationResponse
	if err := unmarshalModelJSON(resp.Content, &parsed); err != nil {
		s.logger.Warn("event response unparseable, continuing with no events",
			logger.StringField("user_id", userID),
			logger.StringField("reporter_id", reporter.ID),
			logger.ErrorField(err),
		)
		return result, nil
	}
	if err := parsed.Validate(); err != nil {
		s.logger.Warn("event response invalid, continuing with no events",
			logger.StringField("user_id", userID),
			logger.StringField("reporter_id", reporter.ID),
			logger.ErrorField(err),
		)
		return result, nil
	}

	result.Events = parsed.Events
	result.Usage = resp.Usage
	return result, nil
}

// GenerateArticleFromEvents runs the article-from-events path for one
// reporter. Ads are never interleaved here. Returns nil without error when
// the model fails or declines, so the caller skips the reporter.
func (s *aiService) GenerateArticleFromEvents(ctx context.Context, userID string, reporter *entity.Reporter, events []*entity.Event, recentArticles []*entity.Article) (*entity.Article, error) {
	messages := s.fetchMessages(ctx, userID)

	eventsContext := repository.FormatEventsContext(events)
	articlesContext := repository.FormatArticlesContext(recentArticles)
	socialContext := repository.FormatSocialMediaContext(messages, false, nil)
	systemPrompt, userPrompt := repository.BuildArticleFromEventsPrompts(reporter, eventsContext, articlesContext, socialContext)

	resp, err := s.chat(ctx, userID, common.AuditPurposeArticleFromEvents, systemPrompt, userPrompt, "news_article")
	if err != nil {
		s.logger.Warn("article from events generation failed, skipping reporter",
			logger.StringField("user_id", userID),
			logger.StringField("reporter_id", reporter.ID),
			logger.ErrorField(err),
		)
		return nil, nil
	}

	var generated dto.GeneratedArticle
	if err := unmarshalModelJSON(resp.Content, &generated); err != nil {
		s.logger.Warn("article from events response unparseable, skipping reporter",
			logger.StringField("user_id", userID),
			logger.StringField("reporter_id", reporter.ID),
			logger.ErrorField(err),
		)
		return nil, nil
	}
	if generated.Empty() {
		return nil, nil
	}

	return s.buildArticle(ctx, userID, reporter, &generated, messages, systemPrompt, userPrompt, resp), nil
}

// SelectNewsworthyStories asks the editor model to pick the most newsworthy
// candidates. Zero candidates short-circuit without a model call. A failed
// call or an empty selection falls back to a random pick of 3 to 5 articles
// (all of them when fewer than 3 exist).
func (s *aiService) SelectNewsworthyStories(ctx context.Context, userID string, editor *entity.Editor, candidates []*entity.Article) (*StorySelection, error) {
	if len(candidates) == 0 {
		return &StorySelection{ArticleIDs: []string{}}, nil
	}

	articlesText := repository.FormatArticlesText(candidates)
	systemPrompt, userPrompt := repository.BuildStorySelectionPrompts(articlesText, editor.Prompt)

	selection := &StorySelection{
		FullPrompt: repository.FullPrompt(systemPrompt, userPrompt),
		ModelName:  s.resolveModel(ctx, userID),
	}

	resp, err := s.chat(ctx, userID, common.AuditPurposeStorySelection, systemPrompt, userPrompt, "")
	if err != nil {
		s.logger.Warn("story selection failed, falling back to random pick",
			logger.StringField("user_id", userID),
			logger.ErrorField(err),
		)
		selection.ArticleIDs = randomStoryPick(candidates)
		return selection, nil
	}
	selection.Usage = resp.Usage

	selected := parseSelectedIndices(resp.Content, len(candidates))
	if len(selected) == 0 {
		s.logger.Warn("story selection returned no valid indices, falling back to random pick",
			logger.StringField("user_id", userID),
			logger.StringField("content", resp.Content),
		)
		selection.ArticleIDs = randomStoryPick(candidates)
		return selection, nil
	}

	for _, idx := range selected {
		selection.ArticleIDs = append(selection.ArticleIDs, candidates[idx-1].ID)
	}
	return selection, nil
}

// GenerateDailyEdition synthesizes the daily edition content from the
// resolved editions. There is no fallback: any model, parse or validation
// failure is returned so nothing half-formed is persisted.
func (s *aiService) GenerateDailyEdition(ctx context.Context, userID string, editor *entity.Editor, editions []repository.EditionArticles) (*DailyEditionGeneration, error) {
	if len(editions) == 0 {
		return nil, fmt.Errorf("no editions to synthesize for user %s", userID)
	}

	editionsText := repository.FormatEditionsText(editions)
	systemPrompt, userPrompt := repository.BuildDailyEditionPrompts(editionsText, editor.Prompt)

	resp, err := s.chat(ctx, userID, common.AuditPurposeDailyEdition, systemPrompt, userPrompt, "daily_edition")
	if err != nil {
		return nil, fmt.Errorf("failed to generate daily edition for user %s: %w", userID, err)
	}

	var content dto.DailyEditionContent
	if err := unmarshalModelJSON(resp.Content, &content); err != nil {
		return nil, fmt.Errorf("failed to parse daily edition response for user %s: %w", userID, err)
	}
	if err := content.Validate(); err != nil {
		return nil, fmt.Errorf("invalid daily edition response for user %s: %w", userID, err)
	}

	return &DailyEditionGeneration{
		Content:    content,
		FullPrompt: repository.FullPrompt(systemPrompt, userPrompt),
		ModelName:  s.resolveModel(ctx, userID),
		Usage:      resp.Usage,
	}, nil
}

// chat resolves the tenant's model and credentials, runs the completion and
// handles the bookkeeping shared by every path: raw response auditing and
// usage accounting, both best-effort.
func (s *aiService) chat(ctx context.Context, userID, purpose, systemPrompt, userPrompt, responseFormatName string) (*dto.ChatResponse, error) {
	model, override := s.resolveProvider(ctx, userID)

	resp, err := s.aiRepo.ChatCompletion(ctx, &dto.ChatRequest{
		Model:              model,
		SystemPrompt:       systemPrompt,
		UserPrompt:         userPrompt,
		ResponseFormatName: responseFormatName,
		Override:           override,
	})
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().UnixMilli()
	if err := s.auditRepo.SaveResponse(ctx, userID, purpose, timestamp, resp.Raw); err != nil {
		s.logger.Warn("failed to persist raw model response",
			logger.StringField("user_id", userID),
			logger.StringField("purpose", purpose),
			logger.ErrorField(err),
		)
	}
	if err := s.kpiService.RecordAIUsage(ctx, userID, resp.Usage); err != nil {
		s.logger.Warn("failed to record AI usage",
			logger.StringField("user_id", userID),
			logger.ErrorField(err),
		)
	}

	return resp, nil
}

func (s *aiService) buildArticle(ctx context.Context, userID string, reporter *entity.Reporter, generated *dto.GeneratedArticle, messages []entity.FeedMessage, systemPrompt, userPrompt string, resp *dto.ChatResponse) *entity.Article {
	body := generated.Body
	if lead := strings.TrimSpace(generated.LeadParagraph); lead != "" && !strings.HasPrefix(body, lead) {
		body = lead + "\n\n" + body
	}

	messageIDs := make([]int, 0, len(generated.MessageIDs))
	messageTexts := make([]string, 0, len(generated.MessageIDs))
	for _, id := range generated.MessageIDs {
		if id < 1 || id > len(messages) {
			continue
		}
		messageIDs = append(messageIDs, id)
		messageTexts = append(messageTexts, messages[id-1].Text)
	}

	return &entity.Article{
		ID:             utils.GenerateID("article"),
		ReporterID:     reporter.ID,
		Headline:       generated.Headline,
		Body:           body,
		GenerationTime: time.Now().UnixMilli(),
		Prompt:         repository.FullPrompt(systemPrompt, userPrompt),
		MessageIDs:     messageIDs,
		MessageTexts:   messageTexts,
		ModelName:      s.resolveModel(ctx, userID),
		InputTokens:    resp.Usage.PromptTokens,
		OutputTokens:   resp.Usage.CompletionTokens,
	}
}

// resolveProvider returns the model to use for a tenant plus any per-tenant
// credential overrides, preferring the editor's model choice, then the
// tenant AI config, then the process default.
func (s *aiService) resolveProvider(ctx context.Context, userID string) (string, dto.ProviderOverride) {
	aiCfg := s.tenantAIConfig(ctx, userID)
	override := dto.ProviderOverride{}
	model := s.cfg.OpenAI.Model
	if aiCfg != nil {
		override.APIKey = aiCfg.APIKey
		override.BaseURL = aiCfg.BaseURL
		if aiCfg.ModelName != "" {
			model = aiCfg.ModelName
		}
	}
	if editor := s.editor(ctx, userID); editor != nil && editor.ModelName != "" {
		model = editor.ModelName
	}
	if model == "" {
		model = entity.DefaultModelName
	}
	override.Model = model
	return model, override
}

func (s *aiService) resolveModel(ctx context.Context, userID string) string {
	model, _ := s.resolveProvider(ctx, userID)
	return model
}

// editor returns the tenant's editor, cached briefly so repeated prompt
// builds inside one cycle do not hammer the store. Nil when unconfigured.
func (s *aiService) editor(ctx context.Context, userID string) *entity.Editor {
	cacheKey := "editor:" + userID
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*entity.Editor)
	}
	editor, err := s.editorRepo.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load editor config",
			logger.StringField("user_id", userID),
			logger.ErrorField(err),
		)
		return nil
	}
	s.cache.Set(cacheKey, editor, gocache.DefaultExpiration)
	return editor
}

func (s *aiService) tenantAIConfig(ctx context.Context, userID string) *entity.AIConfig {
	cacheKey := "ai_config:" + userID
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*entity.AIConfig)
	}
	aiCfg, err := s.userRepo.GetAIConfig(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load tenant AI config",
			logger.StringField("user_id", userID),
			logger.ErrorField(err),
		)
		return nil
	}
	s.cache.Set(cacheKey, aiCfg, gocache.DefaultExpiration)
	return aiCfg
}

// fetchMessages pulls the latest feed slice for a tenant. Feed outages are
// tolerated: generation proceeds on an empty slice.
func (s *aiService) fetchMessages(ctx context.Context, userID string) []entity.FeedMessage {
	limit := entity.DefaultMessageSliceCount
	if editor := s.editor(ctx, userID); editor != nil && editor.MessageSliceCount > 0 {
		limit = editor.MessageSliceCount
	}
	messages, err := s.feedRepo.FetchLatestMessages(ctx, limit)
	if err != nil {
		s.logger.Warn("feed fetch failed, continuing with empty message slice",
			logger.StringField("user_id", userID),
			logger.ErrorField(err),
		)
		return nil
	}
	return messages
}

func (s *aiService) mostRecentAd(ctx context.Context, userID string) *entity.AdEntry {
	ad, err := s.adRepo.GetMostRecent(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load most recent ad",
			logger.StringField("user_id", userID),
			logger.ErrorField(err),
		)
		return nil
	}
	return ad
}

// unmarshalModelJSON decodes a model response body that may be wrapped in
// markdown code fences.
func unmarshalModelJSON(content string, v interface{}) error {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		if idx := strings.Index(trimmed, "\n"); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}
	return json.Unmarshal([]byte(trimmed), v)
}

// parseSelectedIndices parses a comma-separated list of 1-based article
// numbers, dropping duplicates and out-of-range values.
func parseSelectedIndices(content string, max int) []int {
	seen := make(map[int]bool)
	var indices []int
	for _, part := range strings.Split(content, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > max || seen[n] {
			continue
		}
		seen[n] = true
		indices = append(indices, n)
	}
	return indices
}

// randomStoryPick selects a uniform-random count of 3 to 5 article ids, or
// all of them when fewer than 3 candidates exist.
func randomStoryPick(candidates []*entity.Article) []string {
	n := 3 + rand.Intn(3)
	if n > len(candidates) {
		n = len(candidates)
	}

	shuffled := make([]*entity.Article, len(candidates))
	copy(shuffled, candidates)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	ids := make([]string, 0, n)
	for _, article := range shuffled[:n] {
		ids = append(ids, article.ID)
	}
	return ids
}
