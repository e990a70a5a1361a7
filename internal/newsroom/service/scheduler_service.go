package service

import (
	"context"
	"fmt"
	"time"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/config"
	"golang-ai-newsroom/internal/newsroom/dto"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/pkg/common"
	"golang-ai-newsroom/pkg/logger"
	"golang-ai-newsroom/pkg/telegram"

	"github.com/robfig/cron/v3"
)

const defaultJobTimeout = 10 * time.Minute

// SchedulerService runs the generation jobs across all tenants, either on
// their cron schedules or on demand via RunJob.
type SchedulerService interface {
	Start() error
	Stop()
	RunJob(ctx context.Context, jobName string) (*dto.JobReport, error)
}

// NewSchedulerService creates a new scheduler service. The notifier may be
// nil, in which case no Telegram messages are sent.
func NewSchedulerService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	editorRepo repository.EditorRepository,
	jobStatusRepo repository.JobStatusRepository,
	reporterService ReporterService,
	editorService EditorService,
	notifier telegram.Notifier,
	logger *logger.Logger,
) SchedulerService {
	return &schedulerService{
		cfg:             cfg,
		userRepo:        userRepo,
		editorRepo:      editorRepo,
		jobStatusRepo:   jobStatusRepo,
		reporterService: reporterService,
		editorService:   editorService,
		notifier:        notifier,
		logger:          logger,
		cron:            cron.New(),
	}
}

type schedulerService struct {
	cfg             *config.Config
	userRepo        repository.UserRepository
	editorRepo      repository.EditorRepository
	jobStatusRepo   repository.JobStatusRepository
	reporterService ReporterService
	editorService   EditorService
	notifier        telegram.Notifier
	logger          *logger.Logger
	cron            *cron.Cron
}

// Start registers the configured cron schedules and starts the runner.
func (s *schedulerService) Start() error {
	schedules := []struct {
		job  string
		expr string
	}{
		{common.JobReporterArticles, s.cfg.Scheduler.ArticlesCron},
		{common.JobReporterEvents, s.cfg.Scheduler.EventsCron},
		{common.JobArticlesFromEvents, s.cfg.Scheduler.ArticlesFromEventsCron},
		{common.JobNewspaperEdition, s.cfg.Scheduler.EditionCron},
		{common.JobDailyEdition, s.cfg.Scheduler.DailyCron},
	}

	for _, schedule := range schedules {
		if schedule.expr == "" {
			continue
		}
		job := schedule.job
		if _, err := s.cron.AddFunc(schedule.expr, func() {
			if _, err := s.RunJob(context.Background(), job); err != nil {
				s.logger.Error("scheduled job run failed",
					logger.StringField("job", job),
					logger.ErrorField(err),
				)
			}
		}); err != nil {
			return fmt.Errorf("failed to schedule job %s: %w", schedule.job, err)
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started")
	return nil
}

// Stop halts the cron runner, waiting for in-flight runs to finish.
func (s *schedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunJob executes one generation job for every registered tenant. A
// tenant's failure or gate skip never aborts the batch; the report carries
// one result per tenant.
func (s *schedulerService) RunJob(ctx context.Context, jobName string) (*dto.JobReport, error) {
	switch jobName {
	case common.JobReporterArticles, common.JobReporterEvents, common.JobArticlesFromEvents,
		common.JobNewspaperEdition, common.JobDailyEdition:
	default:
		return nil, fmt.Errorf("unknown job %q", jobName)
	}

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for job %s: %w", jobName, err)
	}

	report := &dto.JobReport{Job: jobName}
	for _, user := range users {
		result := s.runForUser(ctx, jobName, user.ID)
		report.Results = append(report.Results, result)

		if result.Error != "" && s.notifier != nil {
			if err := s.notifier.SendMessage(telegram.FormatJobFailureMessage(jobName, user.ID, result.Error)); err != nil {
				s.logger.Warn("failed to send job failure notification", logger.ErrorField(err))
			}
		}
	}
	return report, nil
}

func (s *schedulerService) runForUser(ctx context.Context, jobName, userID string) dto.TenantJobResult {
	result := dto.TenantJobResult{UserID: userID}

	status, err := s.jobStatusRepo.Get(ctx, userID, jobName)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if status.Running {
		result.Skipped = true
		result.Reason = "job already running"
		return result
	}

	if skip, reason := s.checkGate(ctx, jobName, userID); skip {
		result.Skipped = true
		result.Reason = reason
		return result
	}

	now := time.Now()
	if err := s.jobStatusRepo.SetRunning(ctx, userID, jobName, true); err != nil {
		result.Error = err.Error()
		return result
	}
	if err := s.jobStatusRepo.SetLastRun(ctx, userID, jobName, now.UnixMilli()); err != nil {
		result.Error = err.Error()
		return result
	}

	runCtx, cancel := context.WithTimeout(ctx, s.jobTimeout())
	defer cancel()

	runErr := s.execute(runCtx, jobName, userID, &result)

	if err := s.jobStatusRepo.SetRunning(ctx, userID, jobName, false); err != nil {
		s.logger.Error("failed to clear running flag",
			logger.StringField("user_id", userID),
			logger.StringField("job", jobName),
			logger.ErrorField(err),
		)
	}

	if runErr != nil {
		result.Error = runErr.Error()
		s.logger.Error("job failed for tenant",
			logger.StringField("user_id", userID),
			logger.StringField("job", jobName),
			logger.ErrorField(runErr),
		)
		return result
	}

	finished := time.Now().UnixMilli()
	if err := s.jobStatusRepo.SetLastSuccess(ctx, userID, jobName, finished); err != nil {
		s.logger.Error("failed to record job success",
			logger.StringField("user_id", userID),
			logger.StringField("job", jobName),
			logger.ErrorField(err),
		)
	}
	if hasGate(jobName) {
		if err := s.editorRepo.SetLastGenerationTime(ctx, userID, jobName, finished); err != nil {
			s.logger.Error("failed to record generation time",
				logger.StringField("user_id", userID),
				logger.StringField("job", jobName),
				logger.ErrorField(err),
			)
		}
	}
	return result
}

func (s *schedulerService) execute(ctx context.Context, jobName, userID string, result *dto.TenantJobResult) error {
	switch jobName {
	case common.JobReporterArticles:
		count, err := s.reporterService.GenerateAllArticles(ctx, userID)
		result.Count = count
		return err
	case common.JobReporterEvents:
		count, err := s.reporterService.GenerateAllEvents(ctx, userID)
		result.Count = count
		return err
	case common.JobArticlesFromEvents:
		count, err := s.reporterService.GenerateAllArticlesFromEvents(ctx, userID)
		result.Count = count
		return err
	case common.JobNewspaperEdition:
		edition, err := s.editorService.GenerateHourlyEdition(ctx, userID)
		if err != nil {
			return err
		}
		result.EditionID = edition.ID
		result.Count = len(edition.Stories)
		return nil
	case common.JobDailyEdition:
		dailyEdition, err := s.editorService.GenerateDailyEdition(ctx, userID)
		if err != nil {
			return err
		}
		result.EditionID = dailyEdition.ID
		result.Count = len(dailyEdition.Editions)
		s.notifyDailyEdition(dailyEdition)
		return nil
	}
	return fmt.Errorf("unknown job %q", jobName)
}

// checkGate applies the per-tenant generation period gate. Daily editions
// and articles from events carry no gate; a tenant without an editor or
// without a prior generation time always proceeds.
func (s *schedulerService) checkGate(ctx context.Context, jobName, userID string) (bool, string) {
	if !hasGate(jobName) {
		return false, ""
	}

	editor, err := s.editorRepo.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load editor for gate check, proceeding",
			logger.StringField("user_id", userID),
			logger.ErrorField(err),
		)
		return false, ""
	}
	if editor == nil {
		return false, ""
	}

	var last int64
	var period int
	switch jobName {
	case common.JobReporterArticles:
		last, period = editor.LastArticleGenerationTime, editor.ArticleGenerationPeriodMinutes
	case common.JobReporterEvents:
		last, period = editor.LastEventGenerationTime, editor.EventGenerationPeriodMinutes
	case common.JobNewspaperEdition:
		last, period = editor.LastEditionGenerationTime, editor.EditionGenerationPeriodMinutes
	}
	if last <= 0 || period <= 0 {
		return false, ""
	}

	elapsed := (time.Now().UnixMilli() - last) / 60_000
	if elapsed < int64(period) {
		remaining := int64(period) - elapsed
		return true, fmt.Sprintf("generated %dm ago, next run in %dm", elapsed, remaining)
	}
	return false, ""
}

func (s *schedulerService) jobTimeout() time.Duration {
	if d, err := time.ParseDuration(s.cfg.Scheduler.JobTimeout); err == nil && d > 0 {
		return d
	}
	return defaultJobTimeout
}

func (s *schedulerService) notifyDailyEdition(dailyEdition *entity.DailyEdition) {
	if s.notifier == nil {
		return
	}
	summaries := make([]string, 0, len(dailyEdition.Topics))
	for _, topic := range dailyEdition.Topics {
		summaries = append(summaries, topic.OneLineSummary)
	}
	msg := telegram.FormatDailyEditionMessage(dailyEdition.NewspaperName, dailyEdition.FrontPageHeadline, summaries)
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Warn("failed to send daily edition notification", logger.ErrorField(err))
	}
}

func hasGate(jobName string) bool {
	switch jobName {
	case common.JobReporterArticles, common.JobReporterEvents, common.JobNewspaperEdition:
		return true
	}
	return false
}
