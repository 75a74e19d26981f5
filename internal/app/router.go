package app

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/egelife/insight/internal/auth"
	"github.com/egelife/insight/internal/campaigns"
	"github.com/egelife/insight/internal/customers"
	"github.com/egelife/insight/internal/finance"
	"github.com/egelife/insight/internal/observability"
	"github.com/egelife/insight/internal/pages"
	"github.com/egelife/insight/internal/rooms"
	"github.com/egelife/insight/internal/satisfaction"
	"github.com/egelife/insight/internal/shared"
	"github.com/egelife/insight/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	SessionManager      *shared.SessionManager
	AuthHandler         *auth.Handler
	PagesHandler        *pages.Handler
	FinanceHandler      *finance.Handler
	CustomersHandler    *customers.Handler
	RoomsHandler        *rooms.Handler
	CampaignsHandler    *campaigns.Handler
	SatisfactionHandler *satisfaction.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router serving pages and chart APIs.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.AuthHandler != nil {
		params.AuthHandler.MountRoutes(r)
	}
	if params.PagesHandler != nil {
		params.PagesHandler.MountRoutes(r)
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(httprate.Limit(120, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		if params.FinanceHandler != nil {
			params.FinanceHandler.MountRoutes(api)
		}
		if params.CustomersHandler != nil {
			params.CustomersHandler.MountRoutes(api)
		}
		if params.RoomsHandler != nil {
			params.RoomsHandler.MountRoutes(api)
		}
		if params.CampaignsHandler != nil {
			params.CampaignsHandler.MountRoutes(api)
		}
		if params.SatisfactionHandler != nil {
			params.SatisfactionHandler.MountRoutes(api)
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	r.NotFound(notFoundPage)

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

func notFoundPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, `<html>
    <body>
        <h1>404 - Sayfa Bulunamadı</h1>
        <p>Aradığınız sayfa bulunamadı: %s</p>
        <a href="/login">Login sayfasına git</a>
    </body>
</html>`, r.URL.Path)
}
