package satisfaction

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	stubRepo
}

func (f *failingRepo) Correlation(ctx context.Context, hotelID, year int) ([]CorrelationPoint, error) {
	return nil, errors.New("connection reset")
}

func (f *failingRepo) CategoryDistribution(ctx context.Context, year, hotelID int) ([]CategoryRow, error) {
	return nil, errors.New("boom")
}

type correlationRepo struct {
	stubRepo
}

func (c *correlationRepo) Correlation(ctx context.Context, hotelID, year int) ([]CorrelationPoint, error) {
	return []CorrelationPoint{{Month: 7, Average: 4.3, Reviews: 120}}, nil
}

func newTestRouter(repo Repository) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(NewService(repo), logger)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestCorrelationRequiresBothParams(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	for _, path := range []string{
		"/memnuniyet/korelasyon",
		"/memnuniyet/korelasyon?yil=2025",
		"/memnuniyet/korelasyon?otel_id=1",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.JSONEq(t, `{"error":"Eksik parametre","message":"otel_id ve yil parametreleri gerekli"}`, rec.Body.String(), path)
	}
}

func TestCorrelationServesPoints(t *testing.T) {
	router := newTestRouter(&correlationRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/memnuniyet/korelasyon?otel_id=1&yil=2025", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"ay":7,"ortalama_puan":4.3,"yorum_sayisi":120}]`, rec.Body.String())
}

func TestCorrelationForwardsErrorMessage(t *testing.T) {
	router := newTestRouter(&failingRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/memnuniyet/korelasyon?otel_id=1&yil=2025", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Veritabanı hatası","message":"connection reset"}`, rec.Body.String())
}

func TestDetailedAnalysisUsesShortMissingParamBody(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/memnuniyet/detayli-analiz?yil=2025", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Eksik parametre"}`, rec.Body.String())
}

func TestCategoriesReportDatabaseLabel(t *testing.T) {
	router := newTestRouter(&failingRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/memnuniyet-kategori-dagilimi?yil=2025", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Veritabanı hatası"}`, rec.Body.String())
}
