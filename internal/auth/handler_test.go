package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egelife/insight/internal/shared"
	"github.com/egelife/insight/internal/view"
)

type stubRepo struct {
	admin Admin
	err   error
}

func (s stubRepo) Authenticate(ctx context.Context, username, password string) (Admin, error) {
	return s.admin, s.err
}

func testViews(t *testing.T) *view.Engine {
	t.Helper()
	fsys := fstest.MapFS{
		"login.html": {Data: []byte(`<form>{{#if hata}}<p class="hata">{{hata}}</p>{{/if}}</form>`)},
	}
	return view.NewEngine(fsys, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestRouter(t *testing.T, repo Repository) chi.Router {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	sessions := shared.NewSessionManager(client, "insight_session", time.Hour, false)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := NewHandler(NewService(repo), testViews(t), sessions, logger)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sess, err := sessions.Load(req.Context(), req)
			require.NoError(t, err)
			ctx := shared.ContextWithSession(req.Context(), sess)
			wrapped := &commitWriter{ResponseWriter: w, commit: func() {
				require.NoError(t, sessions.Commit(ctx, w, sess))
			}}
			next.ServeHTTP(wrapped, req.WithContext(ctx))
		})
	})
	h.MountRoutes(r)
	return r
}

// commitWriter persists the session right before the first header write,
// the same ordering the application middleware uses.
type commitWriter struct {
	http.ResponseWriter
	commit func()
	done   bool
}

func (w *commitWriter) WriteHeader(statusCode int) {
	if !w.done {
		w.done = true
		w.commit()
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *commitWriter) Write(data []byte) (int, error) {
	if !w.done {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(data)
}

func postLogin(router chi.Router, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginPageRendersWithoutError(t *testing.T) {
	router := newTestRouter(t, stubRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hata")
}

func TestLoginRequiresBothFields(t *testing.T) {
	router := newTestRouter(t, stubRepo{})

	rec := postLogin(router, url.Values{"kullanici_adi": {"admin"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kullanıcı adı ve şifre gereklidir!")
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	router := newTestRouter(t, stubRepo{err: ErrInvalidCredentials})

	rec := postLogin(router, url.Values{"kullanici_adi": {"admin"}, "sifre": {"wrong"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kullanıcı adı veya şifre hatalı!")
}

func TestLoginRedirectsToDashboard(t *testing.T) {
	router := newTestRouter(t, stubRepo{admin: Admin{ID: 1, Username: "admin"}})

	rec := postLogin(router, url.Values{"kullanici_adi": {"admin"}, "sifre": {"secret"}})

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "a session cookie is issued on success")
	assert.Equal(t, "insight_session", cookies[0].Name)
}

func TestLoginSurfacesDatabaseError(t *testing.T) {
	router := newTestRouter(t, stubRepo{err: errors.New("connection refused")})

	rec := postLogin(router, url.Values{"kullanici_adi": {"admin"}, "sifre": {"secret"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Veritabanı bağlantı hatası!")
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	router := newTestRouter(t, stubRepo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cikis", nil)
	req.AddCookie(&http.Cookie{Name: "insight_session", Value: "some-session-id"})
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
