package service

import (
	"context"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/dto"
	"golang-ai-newsroom/internal/newsroom/repository"
	"golang-ai-newsroom/pkg/logger"
)

// Cost rates applied when a tenant has no configured editor.
const (
	fallbackInputTokenCost  = 0.050
	fallbackOutputTokenCost = 0.400
)

// KpiService tracks per-tenant AI usage: token KPIs, spend and the daily
// usage counters.
type KpiService interface {
	RecordAIUsage(ctx context.Context, userID string, usage dto.TokenUsage) error
	GetKpi(ctx context.Context, userID, name string) (float64, error)
	GetUsageStats(ctx context.Context, userID string) (*entity.UsageStats, error)
}

// NewKpiService creates a new KPI service.
func NewKpiService(
	kpiRepo repository.KpiRepository,
	usageRepo repository.UsageRepository,
	editorRepo repository.EditorRepository,
	logger *logger.Logger,
) KpiService {
	return &kpiService{
		kpiRepo:    kpiRepo,
		usageRepo:  usageRepo,
		editorRepo: editorRepo,
		logger:     logger,
	}
}

type kpiService struct {
	kpiRepo    repository.KpiRepository
	usageRepo  repository.UsageRepository
	editorRepo repository.EditorRepository
	logger     *logger.Logger
}

// RecordAIUsage increments the token KPIs and the spend KPI for one
// completed model call, and logs the call into the usage counters. Spend is
// derived from the tenant's per-million-token rates.
func (s *kpiService) RecordAIUsage(ctx context.Context, userID string, usage dto.TokenUsage) error {
	inputCost, outputCost := fallbackInputTokenCost, fallbackOutputTokenCost
	editor, err := s.editorRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if editor != nil {
		inputCost, outputCost = editor.InputTokenCost, editor.OutputTokenCost
	}

	cost := (float64(usage.PromptTokens)/1_000_000)*inputCost +
		(float64(usage.CompletionTokens)/1_000_000)*outputCost

	if err := s.kpiRepo.Increment(ctx, userID, entity.KpiTotalTextInputTokens, float64(usage.PromptTokens)); err != nil {
		return err
	}
	if err := s.kpiRepo.Increment(ctx, userID, entity.KpiTotalTextOutputTokens, float64(usage.CompletionTokens)); err != nil {
		return err
	}
	if err := s.kpiRepo.Increment(ctx, userID, entity.KpiTotalAISpend, cost); err != nil {
		return err
	}

	return s.usageRepo.LogUsage(ctx, userID, 1, int64(usage.PromptTokens), int64(usage.CompletionTokens), cost)
}

// GetKpi returns the current value of one KPI counter.
func (s *kpiService) GetKpi(ctx context.Context, userID, name string) (float64, error) {
	return s.kpiRepo.GetValue(ctx, userID, name)
}

// GetUsageStats returns the tenant's cumulative usage counters.
func (s *kpiService) GetUsageStats(ctx context.Context, userID string) (*entity.UsageStats, error) {
	return s.usageRepo.GetStats(ctx, userID)
}
