package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/egelife/insight/internal/app"
	"github.com/egelife/insight/internal/auth"
	"github.com/egelife/insight/internal/campaigns"
	"github.com/egelife/insight/internal/catalog"
	"github.com/egelife/insight/internal/customers"
	"github.com/egelife/insight/internal/finance"
	"github.com/egelife/insight/internal/observability"
	"github.com/egelife/insight/internal/pages"
	"github.com/egelife/insight/internal/platform/cache"
	"github.com/egelife/insight/internal/platform/db"
	"github.com/egelife/insight/internal/platform/source"
	"github.com/egelife/insight/internal/rooms"
	"github.com/egelife/insight/internal/satisfaction"
	"github.com/egelife/insight/internal/shared"
	"github.com/egelife/insight/internal/view"
	"github.com/egelife/insight/web"
)

// customerCountsProxy breaks the construction cycle between the finance
// and customers services. The finance service only calls through after
// both services exist.
type customerCountsProxy struct {
	svc *customers.Service
}

func (p *customerCountsProxy) MonthlyCustomerTotals(ctx context.Context, year, hotelID int) ([12]int, error) {
	return p.svc.MonthlyCustomerTotals(ctx, year, hotelID)
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	sessionManager := shared.NewSessionManager(redisClient, "insight_session", cfg.SessionTTL, cfg.IsProduction())
	cacheStore := cache.New(redisClient, cfg.CacheTTL)
	cascade := source.New(logger)

	templateFS, err := fs.Sub(web.Templates, "templates/pages")
	if err != nil {
		logger.Error("template filesystem", slog.Any("error", err))
		os.Exit(1)
	}
	views := view.NewEngine(templateFS, logger)

	catalogService := catalog.NewService(catalog.NewPGRepository(pool), cacheStore)
	satisfactionService := satisfaction.NewService(satisfaction.NewPGRepository(pool, cascade))

	countsProxy := &customerCountsProxy{}
	financeService := finance.NewService(finance.NewPGRepository(pool), cacheStore, countsProxy, satisfactionService, logger)
	customersService := customers.NewService(customers.NewPGRepository(pool, cascade), financeService, satisfactionService, logger)
	countsProxy.svc = customersService

	roomsService := rooms.NewService(rooms.NewPGRepository(pool))
	campaignsService := campaigns.NewService(campaigns.NewPGRepository(pool))

	authHandler := auth.NewHandler(auth.NewService(auth.NewPGRepository(pool)), views, sessionManager, logger)
	pagesHandler := pages.NewHandler(views, catalogService, financeService, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		SessionManager:      sessionManager,
		AuthHandler:         authHandler,
		PagesHandler:        pagesHandler,
		FinanceHandler:      finance.NewHandler(financeService, catalogService, logger),
		CustomersHandler:    customers.NewHandler(customersService, logger),
		RoomsHandler:        rooms.NewHandler(roomsService, logger),
		CampaignsHandler:    campaigns.NewHandler(campaignsService, logger),
		SatisfactionHandler: satisfaction.NewHandler(satisfactionService, logger),
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
