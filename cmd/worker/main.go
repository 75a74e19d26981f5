package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/egelife/insight/internal/app"
	"github.com/egelife/insight/internal/catalog"
	"github.com/egelife/insight/internal/customers"
	"github.com/egelife/insight/internal/finance"
	"github.com/egelife/insight/internal/observability"
	"github.com/egelife/insight/internal/platform/cache"
	"github.com/egelife/insight/internal/platform/db"
	"github.com/egelife/insight/internal/platform/source"
	"github.com/egelife/insight/internal/satisfaction"
	"github.com/egelife/insight/jobs"
)

type customerCountsProxy struct {
	svc *customers.Service
}

func (p *customerCountsProxy) MonthlyCustomerTotals(ctx context.Context, year, hotelID int) ([12]int, error) {
	return p.svc.MonthlyCustomerTotals(ctx, year, hotelID)
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := cache.NewClient(cfg.RedisAddr)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	cacheStore := cache.New(redisClient, cfg.CacheTTL)
	cascade := source.New(logger)

	catalogService := catalog.NewService(catalog.NewPGRepository(pool), cacheStore)
	satisfactionService := satisfaction.NewService(satisfaction.NewPGRepository(pool, cascade))

	countsProxy := &customerCountsProxy{}
	financeService := finance.NewService(finance.NewPGRepository(pool), cacheStore, countsProxy, satisfactionService, logger)
	countsProxy.svc = customers.NewService(customers.NewPGRepository(pool, cascade), financeService, satisfactionService, logger)

	warmupJob := jobs.NewKPIWarmupJob(financeService, catalogService, logger, observability.NewJobMetrics(nil))

	warmupTask, err := jobs.NewKPIWarmupTask(catalog.DefaultYear)
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}

	// Warm the caches once at boot so a worker restart never leaves the
	// dashboard cold until the next cron window.
	client := jobs.NewClient(redisOpts)
	if _, err := client.EnqueueKPIWarmup(ctx, catalog.DefaultYear); err != nil {
		logger.Warn("enqueue startup warmup", slog.Any("error", err))
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: redisOpts,
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskKPIWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.WarmupCron, Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
