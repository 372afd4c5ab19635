package services

import (
	"context"
	"errors"
	"time"

	"github.com/alitto/pond/v2"

	"proptoken/internal/analytics"
	"proptoken/internal/logger"
)

// topPerformerCount is how many properties the ranking section reports.
const topPerformerCount = 3

// analyticsService orchestrates the ROI analytics pipeline: it draws a
// fresh synthetic history, filters it, and runs the three model stages
// on a bounded worker pool.
type analyticsService struct {
	market       MarketDataServicer
	pool         pond.Pool
	stageTimeout time.Duration
}

// NewAnalyticsService creates a new AnalyticsServicer. The pool bounds
// concurrent model fitting across all in-flight reports; stageTimeout is
// the fitting deadline applied to each stage separately.
func NewAnalyticsService(market MarketDataServicer, workers int, stageTimeout time.Duration) AnalyticsServicer {
	return &analyticsService{
		market:       market,
		pool:         pond.NewPool(workers),
		stageTimeout: stageTimeout,
	}
}

// RunReport generates a full analytics report over a freshly drawn
// history restricted by the given criteria. Stages that lack their
// minimum sample size are flagged and skipped; the report itself always
// succeeds unless the request context is done.
func (s *analyticsService) RunReport(ctx context.Context, criteria analytics.FilterCriteria) (*AnalyticsReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	obs := analytics.Filter(s.market.GenerateHistory(), criteria)

	report := &AnalyticsReport{
		Observations:  len(obs),
		TopProperties: analytics.RankTop(obs, topPerformerCount),
		LocationStats: analytics.StatsByLocation(obs),
	}

	// Each stage writes its own report section; Wait orders the writes
	// before the return.
	forecast := s.pool.Submit(func() {
		report.Forecast = s.runForecast(ctx, obs)
	})
	boosted := s.pool.Submit(func() {
		report.Boosted = s.runBoosted(ctx, obs)
	})
	linear := s.pool.Submit(func() {
		report.Linear = s.runLinear(ctx, obs)
	})

	forecast.Wait()
	boosted.Wait()
	linear.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *analyticsService) runForecast(ctx context.Context, obs []analytics.Observation) ForecastStage {
	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()

	series := analytics.MonthlyMeans(obs)
	model, err := analytics.FitForecast(stageCtx, series)
	if err != nil {
		return ForecastStage{Status: stageStatusFor("forecast", err)}
	}
	return ForecastStage{
		Status:      StageCompleted,
		Points:      model.Predict(analytics.ForecastHorizon),
		ResidualStd: model.ResidualStd(),
	}
}

func (s *analyticsService) runBoosted(ctx context.Context, obs []analytics.Observation) BoostedStage {
	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()

	result, err := analytics.FitBoosted(stageCtx, obs, analytics.DefaultBoostedConfig())
	if err != nil {
		return BoostedStage{Status: stageStatusFor("boosted", err)}
	}
	return BoostedStage{Status: StageCompleted, Result: result}
}

func (s *analyticsService) runLinear(ctx context.Context, obs []analytics.Observation) LinearStage {
	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()

	result, err := analytics.FitLinear(stageCtx, obs)
	if err != nil {
		return LinearStage{Status: stageStatusFor("linear", err)}
	}
	return LinearStage{Status: StageCompleted, Result: result}
}

// stageStatusFor maps a stage error to its report status. Insufficient
// data is an expected outcome; anything else is logged.
func stageStatusFor(stage string, err error) StageStatus {
	if errors.Is(err, analytics.ErrInsufficientData) {
		return StageInsufficientData
	}
	logger.Get().Warnw("analytics stage failed", "stage", stage, "error", err)
	return StageFailed
}
