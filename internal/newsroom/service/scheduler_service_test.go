package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/config"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/internal/newsroom/storage"
	"golang-ai-newsroom/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReporterService struct {
	articles           func(ctx context.Context, userID string) (int, error)
	events             func(ctx context.Context, userID string) (int, error)
	articlesFromEvents func(ctx context.Context, userID string) (int, error)
}

func (f *fakeReporterService) GenerateAllArticles(ctx context.Context, userID string) (int, error) {
	if f.articles == nil {
		return 0, nil
	}
	return f.articles(ctx, userID)
}

func (f *fakeReporterService) GenerateAllEvents(ctx context.Context, userID string) (int, error) {
	if f.events == nil {
		return 0, nil
	}
	return f.events(ctx, userID)
}

func (f *fakeReporterService) GenerateAllArticlesFromEvents(ctx context.Context, userID string) (int, error) {
	if f.articlesFromEvents == nil {
		return 0, nil
	}
	return f.articlesFromEvents(ctx, userID)
}

type fakeEditorService struct {
	hourly func(ctx context.Context, userID string) (*entity.NewspaperEdition, error)
	daily  func(ctx context.Context, userID string) (*entity.DailyEdition, error)
}

func (f *fakeEditorService) GenerateHourlyEdition(ctx context.Context, userID string) (*entity.NewspaperEdition, error) {
	if f.hourly == nil {
		return &entity.NewspaperEdition{ID: "edition_1"}, nil
	}
	return f.hourly(ctx, userID)
}

func (f *fakeEditorService) GenerateDailyEdition(ctx context.Context, userID string) (*entity.DailyEdition, error) {
	if f.daily == nil {
		return &entity.DailyEdition{ID: "daily_1"}, nil
	}
	return f.daily(ctx, userID)
}

func (f *fakeEditorService) GetLatestEdition(ctx context.Context, userID string) (*entity.NewspaperEdition, error) {
	return nil, nil
}

func (f *fakeEditorService) GetLatestDailyEdition(ctx context.Context, userID string) (*entity.DailyEdition, error) {
	return nil, nil
}

func (f *fakeEditorService) GetEditionWithArticles(ctx context.Context, userID, editionID string) (*entity.NewspaperEdition, []*entity.Article, error) {
	return nil, nil, nil
}

func (f *fakeEditorService) GetDailyEditionWithEditions(ctx context.Context, userID, dailyEditionID string) (*entity.DailyEdition, []*entity.NewspaperEdition, error) {
	return nil, nil, nil
}

type schedulerFixture struct {
	svc           SchedulerService
	userID        string
	store         storage.Store
	editorRepo    repository.EditorRepository
	jobStatusRepo repository.JobStatusRepository
	reporters     *fakeReporterService
	editors       *fakeEditorService
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	t.Helper()
	store := storage.NewMemoryStore()
	log := testLogger(t)

	userRepo := repository.NewUserRepository(store)
	editorRepo := repository.NewEditorRepository(store)
	jobStatusRepo := repository.NewJobStatusRepository(store)

	user, err := userRepo.Create(context.Background(), &entity.User{
		Email:        "tenant@example.com",
		PasswordHash: "h",
		Role:         entity.RoleUser,
	})
	require.NoError(t, err)

	reporters := &fakeReporterService{}
	editors := &fakeEditorService{}

	cfg := &config.Config{}
	svc := NewSchedulerService(cfg, userRepo, editorRepo, jobStatusRepo, reporters, editors, nil, log)

	return &schedulerFixture{
		svc:           svc,
		userID:        user.ID,
		store:         store,
		editorRepo:    editorRepo,
		jobStatusRepo: jobStatusRepo,
		reporters:     reporters,
		editors:       editors,
	}
}

func (f *schedulerFixture) saveEditor(t *testing.T, lastArticleTime int64) {
	t.Helper()
	editor := &entity.Editor{
		Bio:                            "bio",
		Prompt:                         "prompt",
		ArticleGenerationPeriodMinutes: 60,
		EventGenerationPeriodMinutes:   30,
		EditionGenerationPeriodMinutes: 1440,
		LastArticleGenerationTime:      lastArticleTime,
	}
	require.NoError(t, f.editorRepo.Save(context.Background(), f.userID, editor))
}

func TestRunJobUnknownName(t *testing.T) {
	f := newSchedulerFixture(t)

	_, err := f.svc.RunJob(context.Background(), "launder")
	assert.Error(t, err)
}

func TestRunJobGateSkipsRecentRun(t *testing.T) {
	f := newSchedulerFixture(t)

	// Last run 30 minutes ago with a 60 minute period.
	f.saveEditor(t, time.Now().Add(-30*time.Minute).UnixMilli())

	called := false
	f.reporters.articles = func(ctx context.Context, userID string) (int, error) {
		called = true
		return 1, nil
	}

	report, err := f.svc.RunJob(context.Background(), common.JobReporterArticles)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Skipped)
	assert.NotEmpty(t, report.Results[0].Reason)
	assert.False(t, called)
}

func TestRunJobGateProceedsAfterPeriod(t *testing.T) {
	f := newSchedulerFixture(t)

	before := time.Now().Add(-61 * time.Minute).UnixMilli()
	f.saveEditor(t, before)

	f.reporters.articles = func(ctx context.Context, userID string) (int, error) {
		return 2, nil
	}

	report, err := f.svc.RunJob(context.Background(), common.JobReporterArticles)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].Skipped)
	assert.Equal(t, 2, report.Results[0].Count)
	assert.Empty(t, report.Results[0].Error)

	// Gate timestamp advanced past the stale one.
	editor, err := f.editorRepo.Get(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Greater(t, editor.LastArticleGenerationTime, before)

	status, err := f.jobStatusRepo.Get(context.Background(), f.userID, common.JobReporterArticles)
	require.NoError(t, err)
	assert.False(t, status.Running)
	assert.NotZero(t, status.LastRun)
	assert.NotZero(t, status.LastSuccess)
}

func TestRunJobNoPriorTimeProceeds(t *testing.T) {
	f := newSchedulerFixture(t)
	f.saveEditor(t, 0)

	called := false
	f.reporters.articles = func(ctx context.Context, userID string) (int, error) {
		called = true
		return 0, nil
	}

	report, err := f.svc.RunJob(context.Background(), common.JobReporterArticles)
	require.NoError(t, err)
	assert.False(t, report.Results[0].Skipped)
	assert.True(t, called)
}

func TestRunJobRunningFlagSkips(t *testing.T) {
	f := newSchedulerFixture(t)

	require.NoError(t, f.jobStatusRepo.SetRunning(context.Background(), f.userID, common.JobReporterEvents, true))

	called := false
	f.reporters.events = func(ctx context.Context, userID string) (int, error) {
		called = true
		return 0, nil
	}

	report, err := f.svc.RunJob(context.Background(), common.JobReporterEvents)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Skipped)
	assert.Equal(t, "job already running", report.Results[0].Reason)
	assert.False(t, called)
}

func TestRunJobFailureState(t *testing.T) {
	f := newSchedulerFixture(t)

	before := time.Now().Add(-61 * time.Minute).UnixMilli()
	f.saveEditor(t, before)

	f.reporters.articles = func(ctx context.Context, userID string) (int, error) {
		return 0, errors.New("model exploded")
	}

	report, err := f.svc.RunJob(context.Background(), common.JobReporterArticles)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Contains(t, report.Results[0].Error, "model exploded")

	status, err := f.jobStatusRepo.Get(context.Background(), f.userID, common.JobReporterArticles)
	require.NoError(t, err)
	assert.False(t, status.Running, "running flag must clear on failure")
	assert.NotZero(t, status.LastRun)
	assert.Zero(t, status.LastSuccess, "failure must not record a success")

	// The gate timestamp stays put so the next tick retries.
	editor, err := f.editorRepo.Get(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, before, editor.LastArticleGenerationTime)
}

func TestRunJobDailyHasNoGate(t *testing.T) {
	f := newSchedulerFixture(t)

	// Stale edition gate must not block the daily job.
	editor := &entity.Editor{
		Bio:                            "bio",
		Prompt:                         "prompt",
		ArticleGenerationPeriodMinutes: 60,
		EventGenerationPeriodMinutes:   30,
		EditionGenerationPeriodMinutes: 1440,
		LastEditionGenerationTime:      time.Now().UnixMilli(),
	}
	require.NoError(t, f.editorRepo.Save(context.Background(), f.userID, editor))

	report, err := f.svc.RunJob(context.Background(), common.JobDailyEdition)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].Skipped)
	assert.Equal(t, "daily_1", report.Results[0].EditionID)
}

func TestRunJobOneTenantFailureDoesNotAbortBatch(t *testing.T) {
	f := newSchedulerFixture(t)

	// Second tenant.
	userRepo := repository.NewUserRepository(f.store)
	other, err := userRepo.Create(context.Background(), &entity.User{
		Email:        "other@example.com",
		PasswordHash: "h",
		Role:         entity.RoleUser,
	})
	require.NoError(t, err)

	f.reporters.articles = func(ctx context.Context, userID string) (int, error) {
		if userID == f.userID {
			return 0, errors.New("boom")
		}
		return 3, nil
	}

	report, err := f.svc.RunJob(context.Background(), common.JobReporterArticles)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	byUser := map[string]int{}
	for i, r := range report.Results {
		byUser[r.UserID] = i
	}
	assert.Contains(t, report.Results[byUser[f.userID]].Error, "boom")
	assert.Equal(t, 3, report.Results[byUser[other.ID]].Count)
	assert.Empty(t, report.Results[byUser[other.ID]].Error)
}
