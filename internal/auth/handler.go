package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/egelife/insight/internal/shared"
	"github.com/egelife/insight/internal/view"
)

// Error strings rendered inline on the login page.
const (
	msgMissingCredentials = "Kullanıcı adı ve şifre gereklidir!"
	msgInvalidCredentials = "Kullanıcı adı veya şifre hatalı!"
	msgDatabaseError      = "Veritabanı bağlantı hatası! Lütfen tekrar deneyin."
)

// Handler serves the login flow.
type Handler struct {
	svc      *Service
	views    *view.Engine
	sessions *shared.SessionManager
	logger   *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, views *view.Engine, sessions *shared.SessionManager, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, views: views, sessions: sessions, logger: logger}
}

// MountRoutes registers the login routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Post("/login", h.doLogin)
	r.Get("/cikis", h.logout)
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, "login", map[string]any{})
}

func (h *Handler) doLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, msgMissingCredentials)
		return
	}
	username := r.PostFormValue("kullanici_adi")
	password := r.PostFormValue("sifre")

	admin, err := h.svc.Login(r.Context(), username, password)
	switch {
	case errors.Is(err, ErrMissingCredentials):
		h.renderError(w, msgMissingCredentials)
	case errors.Is(err, ErrInvalidCredentials):
		h.renderError(w, msgInvalidCredentials)
	case err != nil:
		h.logger.Error("login lookup failed", "error", err, "username", username)
		h.renderError(w, msgDatabaseError)
	default:
		if sess := shared.SessionFromContext(r.Context()); sess != nil {
			sess.SetUser(strconv.Itoa(admin.ID))
			sess.Set("kullanici_adi", admin.Username)
		}
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	}
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		h.sessions.Destroy(sess)
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handler) renderError(w http.ResponseWriter, msg string) {
	h.views.Render(w, "login", map[string]any{"hata": msg})
}
