package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/egelife/insight/internal/advisory"
	"github.com/egelife/insight/internal/catalog"
	"github.com/egelife/insight/internal/finance"
	"github.com/egelife/insight/internal/observability"
)

// FinanceWarmer loads the cached dashboard aggregates.
type FinanceWarmer interface {
	KPISummary(ctx context.Context, year int) (finance.KPI, error)
	StrategicDecisions(ctx context.Context, year int) ([]advisory.Decision, error)
}

// CatalogWarmer loads the cached filter dropdown lists.
type CatalogWarmer interface {
	Hotels(ctx context.Context) ([]catalog.Hotel, error)
	Years(ctx context.Context) ([]int, error)
}

// KPIWarmupJob pre-populates the Redis caches the dashboard reads on every
// page load, so the first morning request does not pay the aggregation cost.
type KPIWarmupJob struct {
	Finance FinanceWarmer
	Catalog CatalogWarmer
	Logger  *slog.Logger
	Metrics *observability.JobMetrics
}

// NewKPIWarmupJob wires dependencies for the warmup handler.
func NewKPIWarmupJob(fin FinanceWarmer, cat CatalogWarmer, logger *slog.Logger, metrics *observability.JobMetrics) *KPIWarmupJob {
	return &KPIWarmupJob{Finance: fin, Catalog: cat, Logger: logger, Metrics: metrics}
}

// Handle processes TaskKPIWarmup tasks.
func (j *KPIWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("kpi warmup: handler not configured")
	}
	var payload KPIWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Year <= 0 {
		payload.Year = catalog.DefaultYear
	}

	tracker := j.metrics().Track(TaskKPIWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.Int("year", payload.Year))
	logger.Info("starting kpi warmup")
	start := time.Now()

	if resultErr = j.warm(ctx, payload.Year); resultErr != nil {
		logger.Error("kpi warmup failed", slog.Any("error", resultErr))
		return resultErr
	}

	logger.Info("completed kpi warmup", slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *KPIWarmupJob) warm(ctx context.Context, year int) error {
	warmCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if j.Finance != nil {
		if _, err := j.Finance.KPISummary(warmCtx, year); err != nil {
			return err
		}
		if _, err := j.Finance.StrategicDecisions(warmCtx, year); err != nil {
			return err
		}
	}
	if j.Catalog != nil {
		if _, err := j.Catalog.Hotels(warmCtx); err != nil {
			return err
		}
		if _, err := j.Catalog.Years(warmCtx); err != nil {
			return err
		}
	}
	return nil
}

func (j *KPIWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskKPIWarmup))
	}
	return slog.Default().With(slog.String("job", TaskKPIWarmup))
}

func (j *KPIWarmupJob) metrics() *observability.JobMetrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return observability.NewJobMetrics(nil)
}
