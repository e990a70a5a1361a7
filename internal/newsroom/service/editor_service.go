package service

import (
	"context"
	"errors"
	"time"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/pkg/logger"
	"golang-ai-newsroom/pkg/utils"
)

// Time windows gathered into editions.
const (
	hourlyEditionWindow = 3 * time.Hour
	dailyEditionWindow  = 24 * time.Hour
)

var (
	// ErrNoReporters is returned when a tenant has no reporters configured.
	ErrNoReporters = errors.New("no reporters configured")

	// ErrNoEditor is returned when a tenant has no editor configured.
	ErrNoEditor = errors.New("no editor configured")

	// ErrNoArticlesInWindow is returned when no articles exist in the
	// hourly edition window.
	ErrNoArticlesInWindow = errors.New("no articles found in the last 3 hours")

	// ErrNoEditionsInWindow is returned when no editions exist in the daily
	// edition window.
	ErrNoEditionsInWindow = errors.New("no editions found in the last 24 hours")
)

// EditorService curates generated articles into hourly newspaper editions
// and synthesizes daily editions from them.
type EditorService interface {
	GenerateHourlyEdition(ctx context.Context, userID string) (*entity.NewspaperEdition, error)
	GenerateDailyEdition(ctx context.Context, userID string) (*entity.DailyEdition, error)
	GetLatestEdition(ctx context.Context, userID string) (*entity.NewspaperEdition, error)
	GetLatestDailyEdition(ctx context.Context, userID string) (*entity.DailyEdition, error)
	GetEditionWithArticles(ctx context.Context, userID, editionID string) (*entity.NewspaperEdition, []*entity.Article, error)
	GetDailyEditionWithEditions(ctx context.Context, userID, dailyEditionID string) (*entity.DailyEdition, []*entity.NewspaperEdition, error)
}

// NewEditorService creates a new editor service.
func NewEditorService(
	editorRepo repository.EditorRepository,
	reporterRepo repository.ReporterRepository,
	articleRepo repository.ArticleRepository,
	editionRepo repository.EditionRepository,
	dailyEditionRepo repository.DailyEditionRepository,
	aiService AIService,
	logger *logger.Logger,
) EditorService {
	return &editorService{
		editorRepo:       editorRepo,
		reporterRepo:     reporterRepo,
		articleRepo:      articleRepo,
		editionRepo:      editionRepo,
		dailyEditionRepo: dailyEditionRepo,
		aiService:        aiService,
		logger:           logger,
	}
}

type editorService struct {
	editorRepo       repository.EditorRepository
	reporterRepo     repository.ReporterRepository
	articleRepo      repository.ArticleRepository
	editionRepo      repository.EditionRepository
	dailyEditionRepo repository.DailyEditionRepository
	aiService        AIService
	logger           *logger.Logger
}

// GenerateHourlyEdition gathers every reporter's articles from the last 3
// hours, has the editor model select the newsworthy ones and persists the
// result as a frozen list of article references.
func (s *editorService) GenerateHourlyEdition(ctx context.Context, userID string) (*entity.NewspaperEdition, error) {
	reporters, err := s.reporterRepo.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(reporters) == 0 {
		return nil, ErrNoReporters
	}

	now := time.Now()
	start := now.Add(-hourlyEditionWindow).UnixMilli()
	end := now.UnixMilli()

	var candidates []*entity.Article
	for _, reporter := range reporters {
		articles, err := s.articleRepo.GetInTimeRange(ctx, userID, reporter.ID, start, end)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, articles...)
	}
	if len(candidates) == 0 {
		return nil, ErrNoArticlesInWindow
	}

	editor, err := s.editorRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if editor == nil {
		return nil, ErrNoEditor
	}

	selection, err := s.aiService.SelectNewsworthyStories(ctx, userID, editor, candidates)
	if err != nil {
		return nil, err
	}

	edition := &entity.NewspaperEdition{
		ID:             utils.GenerateID("edition"),
		Stories:        selection.ArticleIDs,
		GenerationTime: now.UnixMilli(),
		Prompt:         selection.FullPrompt,
		ModelName:      selection.ModelName,
		InputTokens:    selection.Usage.PromptTokens,
		OutputTokens:   selection.Usage.CompletionTokens,
	}
	if err := s.editionRepo.Save(ctx, userID, edition); err != nil {
		return nil, err
	}

	s.logger.Info("hourly edition generated",
		logger.StringField("user_id", userID),
		logger.StringField("edition_id", edition.ID),
		logger.IntField("stories", len(edition.Stories)),
	)
	return edition, nil
}

// GenerateDailyEdition synthesizes every edition from the last 24 hours
// into a daily edition. Articles referenced by an edition but since removed
// are silently dropped from the synthesis context. The newspaper name is
// derived from the date, never taken from the model.
func (s *editorService) GenerateDailyEdition(ctx context.Context, userID string) (*entity.DailyEdition, error) {
	now := time.Now()
	cutoff := now.Add(-dailyEditionWindow).UnixMilli()

	allEditions, err := s.editionRepo.GetAll(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	var editions []*entity.NewspaperEdition
	for _, edition := range allEditions {
		if edition.GenerationTime >= cutoff {
			editions = append(editions, edition)
		}
	}
	if len(editions) == 0 {
		return nil, ErrNoEditionsInWindow
	}

	editor, err := s.editorRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if editor == nil {
		return nil, ErrNoEditor
	}

	resolved := make([]repository.EditionArticles, 0, len(editions))
	editionIDs := make([]string, 0, len(editions))
	for _, edition := range editions {
		editionIDs = append(editionIDs, edition.ID)
		articles := make([]*entity.Article, 0, len(edition.Stories))
		for _, articleID := range edition.Stories {
			article, err := s.articleRepo.Get(ctx, userID, articleID)
			if err != nil {
				return nil, err
			}
			if article == nil {
				continue
			}
			articles = append(articles, article)
		}
		resolved = append(resolved, repository.EditionArticles{ID: edition.ID, Articles: articles})
	}

	generation, err := s.aiService.GenerateDailyEdition(ctx, userID, editor, resolved)
	if err != nil {
		return nil, err
	}

	dailyEdition := &entity.DailyEdition{
		ID:                utils.GenerateID("daily"),
		Editions:          editionIDs,
		GenerationTime:    now.UnixMilli(),
		FrontPageHeadline: generation.Content.FrontPageHeadline,
		FrontPageArticle:  generation.Content.FrontPageArticle,
		Topics:            generation.Content.Topics,
		ModelFeedback:     generation.Content.ModelFeedback,
		NewspaperName:     utils.NewspaperName(now),
		Prompt:            generation.FullPrompt,
		ModelName:         generation.ModelName,
		InputTokens:       generation.Usage.PromptTokens,
		OutputTokens:      generation.Usage.CompletionTokens,
	}
	if err := s.dailyEditionRepo.Save(ctx, userID, dailyEdition); err != nil {
		return nil, err
	}

	s.logger.Info("daily edition generated",
		logger.StringField("user_id", userID),
		logger.StringField("daily_edition_id", dailyEdition.ID),
		logger.IntField("editions", len(dailyEdition.Editions)),
	)
	return dailyEdition, nil
}

// GetLatestEdition returns the most recent newspaper edition, nil when none
// exists.
func (s *editorService) GetLatestEdition(ctx context.Context, userID string) (*entity.NewspaperEdition, error) {
	editions, err := s.editionRepo.GetAll(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(editions) == 0 {
		return nil, nil
	}
	return editions[0], nil
}

// GetLatestDailyEdition returns the most recent daily edition, nil when
// none exists.
func (s *editorService) GetLatestDailyEdition(ctx context.Context, userID string) (*entity.DailyEdition, error) {
	dailyEditions, err := s.dailyEditionRepo.GetAll(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(dailyEditions) == 0 {
		return nil, nil
	}
	return dailyEditions[0], nil
}

// GetEditionWithArticles resolves an edition's article references, dropping
// any that no longer exist.
func (s *editorService) GetEditionWithArticles(ctx context.Context, userID, editionID string) (*entity.NewspaperEdition, []*entity.Article, error) {
	edition, err := s.editionRepo.Get(ctx, userID, editionID)
	if err != nil {
		return nil, nil, err
	}
	if edition == nil {
		return nil, nil, nil
	}

	articles := make([]*entity.Article, 0, len(edition.Stories))
	for _, articleID := range edition.Stories {
		article, err := s.articleRepo.Get(ctx, userID, articleID)
		if err != nil {
			return nil, nil, err
		}
		if article == nil {
			continue
		}
		articles = append(articles, article)
	}
	return edition, articles, nil
}

// GetDailyEditionWithEditions resolves a daily edition's edition
// references, dropping any that no longer exist.
func (s *editorService) GetDailyEditionWithEditions(ctx context.Context, userID, dailyEditionID string) (*entity.DailyEdition, []*entity.NewspaperEdition, error) {
	dailyEdition, err := s.dailyEditionRepo.Get(ctx, userID, dailyEditionID)
	if err != nil {
		return nil, nil, err
	}
	if dailyEdition == nil {
		return nil, nil, nil
	}

	editions := make([]*entity.NewspaperEdition, 0, len(dailyEdition.Editions))
	for _, editionID := range dailyEdition.Editions {
		edition, err := s.editionRepo.Get(ctx, userID, editionID)
		if err != nil {
			return nil, nil, err
		}
		if edition == nil {
			continue
		}
		editions = append(editions, edition)
	}
	return dailyEdition, editions, nil
}
