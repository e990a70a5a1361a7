package service

import (
	"context"
	"time"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/pkg/logger"
	"golang-ai-newsroom/pkg/utils"
)

// How many recent events and articles feed the generation context.
const (
	eventContextSize   = 5
	articleContextSize = 5
)

// ReporterService runs the per-tenant generation cycles across all enabled
// reporters. One reporter's failure never aborts the cycle for the rest.
type ReporterService interface {
	GenerateAllArticles(ctx context.Context, userID string) (int, error)
	GenerateAllEvents(ctx context.Context, userID string) (int, error)
	GenerateAllArticlesFromEvents(ctx context.Context, userID string) (int, error)
}

// NewReporterService creates a new reporter service.
func NewReporterService(
	reporterRepo repository.ReporterRepository,
	articleRepo repository.ArticleRepository,
	eventRepo repository.EventRepository,
	aiService AIService,
	logger *logger.Logger,
) ReporterService {
	return &reporterService{
		reporterRepo: reporterRepo,
		articleRepo:  articleRepo,
		eventRepo:    eventRepo,
		aiService:    aiService,
		logger:       logger,
	}
}

type reporterService struct {
	reporterRepo repository.ReporterRepository
	articleRepo  repository.ArticleRepository
	eventRepo    repository.EventRepository
	aiService    AIService
	logger       *logger.Logger
}

// GenerateAllArticles runs the article-from-feed path for every enabled
// reporter and returns the number of articles persisted.
func (s *reporterService) GenerateAllArticles(ctx context.Context, userID string) (int, error) {
	reporters, err := s.reporterRepo.GetAll(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, reporter := range reporters {
		if !reporter.Enabled {
			continue
		}

		article, err := s.aiService.GenerateArticle(ctx, userID, reporter)
		if err != nil {
			s.logger.Error("article generation failed for reporter",
				logger.StringField("user_id", userID),
				logger.StringField("reporter_id", reporter.ID),
				logger.ErrorField(err),
			)
			continue
		}
		if article == nil {
			continue
		}

		if err := s.articleRepo.Save(ctx, userID, article); err != nil {
			s.logger.Error("failed to save generated article",
				logger.StringField("user_id", userID),
				logger.StringField("article_id", article.ID),
				logger.ErrorField(err),
			)
			continue
		}
		count++
	}
	return count, nil
}

// GenerateAllEvents runs the event generation path for every enabled
// reporter. Candidates referencing an existing context event by index grow
// that event's facts; the rest become new events. Returns the number of
// events created or updated.
func (s *reporterService) GenerateAllEvents(ctx context.Context, userID string) (int, error) {
	reporters, err := s.reporterRepo.GetAll(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, reporter := range reporters {
		if !reporter.Enabled {
			continue
		}

		lastEvents, err := s.eventRepo.GetByReporter(ctx, userID, reporter.ID, eventContextSize)
		if err != nil {
			s.logger.Error("failed to load recent events for reporter",
				logger.StringField("user_id", userID),
				logger.StringField("reporter_id", reporter.ID),
				logger.ErrorField(err),
			)
			continue
		}

		generation, err := s.aiService.GenerateEvents(ctx, userID, reporter, lastEvents)
		if err != nil {
			s.logger.Error("event generation failed for reporter",
				logger.StringField("user_id", userID),
				logger.StringField("reporter_id", reporter.ID),
				logger.ErrorField(err),
			)
			continue
		}

		now := time.Now().UnixMilli()
		for i := range generation.Events {
			candidate := &generation.Events[i]

			if candidate.Index != nil && *candidate.Index >= 1 && *candidate.Index <= len(lastEvents) {
				existing := lastEvents[*candidate.Index-1]
				facts := append(append([]string{}, existing.Facts...), candidate.Facts...)
				if err := s.eventRepo.UpdateFacts(ctx, userID, existing.ID, facts, now); err != nil {
					s.logger.Error("failed to append facts to event",
						logger.StringField("user_id", userID),
						logger.StringField("event_id", existing.ID),
						logger.ErrorField(err),
					)
					continue
				}
				count++
				continue
			}

			event := &entity.Event{
				ID:           utils.GenerateID("event"),
				ReporterID:   reporter.ID,
				Title:        candidate.Title,
				CreatedTime:  now,
				UpdatedTime:  now,
				Facts:        candidate.Facts,
				Where:        candidate.Where,
				When:         candidate.When,
				MessageIDs:   candidate.MessageIDs,
				MessageTexts: resolveMessageTexts(candidate.MessageIDs, generation.Messages),
				ModelName:    generation.ModelName,
				InputTokens:  generation.Usage.PromptTokens,
				OutputTokens: generation.Usage.CompletionTokens,
			}
			if err := s.eventRepo.Save(ctx, userID, event); err != nil {
				s.logger.Error("failed to save generated event",
					logger.StringField("user_id", userID),
					logger.StringField("event_id", event.ID),
					logger.ErrorField(err),
				)
				continue
			}
			count++
		}
	}
	return count, nil
}

// GenerateAllArticlesFromEvents runs the article-from-events path for every
// enabled reporter: one article per reporter per cycle, fed by the
// reporter's most recently updated events and recent headlines.
func (s *reporterService) GenerateAllArticlesFromEvents(ctx context.Context, userID string) (int, error) {
	reporters, err := s.reporterRepo.GetAll(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, reporter := range reporters {
		if !reporter.Enabled {
			continue
		}

		events, err := s.eventRepo.GetByReporter(ctx, userID, reporter.ID, eventContextSize)
		if err != nil {
			s.logger.Error("failed to load events for reporter",
				logger.StringField("user_id", userID),
				logger.StringField("reporter_id", reporter.ID),
				logger.ErrorField(err),
			)
			continue
		}
		if len(events) == 0 {
			continue
		}

		recentArticles, err := s.articleRepo.GetByReporter(ctx, userID, reporter.ID, articleContextSize)
		if err != nil {
			s.logger.Error("failed to load recent articles for reporter",
				logger.StringField("user_id", userID),
				logger.StringField("reporter_id", reporter.ID),
				logger.ErrorField(err),
			)
			continue
		}

		article, err := s.aiService.GenerateArticleFromEvents(ctx, userID, reporter, events, recentArticles)
		if err != nil {
			s.logger.Error("article from events generation failed for reporter",
				logger.StringField("user_id", userID),
				logger.StringField("reporter_id", reporter.ID),
				logger.ErrorField(err),
			)
			continue
		}
		if article == nil {
			continue
		}

		if err := s.articleRepo.Save(ctx, userID, article); err != nil {
			s.logger.Error("failed to save article from events",
				logger.StringField("user_id", userID),
				logger.StringField("article_id", article.ID),
				logger.ErrorField(err),
			)
			continue
		}
		count++
	}
	return count, nil
}

func resolveMessageTexts(messageIDs []int, messages []entity.FeedMessage) []string {
	texts := make([]string, 0, len(messageIDs))
	for _, id := range messageIDs {
		if id < 1 || id > len(messages) {
			continue
		}
		texts = append(texts, messages[id-1].Text)
	}
	return texts
}
