package rooms

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

func (f *failingRepo) MonthlyOccupancyCounts(ctx context.Context, year, hotelID int) ([]OccupancyCount, error) {
	return nil, errors.New("boom")
}

func (f *failingRepo) CapacityAnalysis(ctx context.Context, year, hotelID int) ([]CapacityStats, error) {
	return nil, errors.New("relation missing")
}

func (f *failingRepo) YearlyMargins(ctx context.Context, year, hotelID int) ([]MarginRow, error) {
	return nil, errors.New("syntax error at or near \"ORDER\"")
}

func newTestRouter(repo Repository) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(NewService(repo), logger)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestOccupancyReportsDatabaseLabel(t *testing.T) {
	router := newTestRouter(&failingRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oda-doluluk-orani?yil=2025", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Veritabanı hatası"}`, rec.Body.String())
}

func TestOccupancyServesRates(t *testing.T) {
	router := newTestRouter(&stubRepo{counts: []OccupancyCount{{Month: 6, Guests: 20, RoomTypes: 4}}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oda-doluluk-orani?yil=2025&otel_id=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"ay":6,"yil":null,"toplam_musteri":20,"doluluk_orani":50}]`, rec.Body.String())
}

func TestTreemapRequiresNumericSegments(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oda/treemap/abc/1", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"Yıl ve otel ID parametreleri gerekli"}`, rec.Body.String())
}

func TestTreemapWrapsData(t *testing.T) {
	router := newTestRouter(&stubRepo{margins: []MarginRow{{RoomType: "Suit", Total: 38.5}}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oda/treemap/2025/1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"oda_tipi_adi":"Suit","toplam":38.5}]}`, rec.Body.String())
}

func TestTreemapSurfacesRepositoryError(t *testing.T) {
	router := newTestRouter(&failingRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oda/treemap/2025/1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"syntax error at or near \"ORDER\""}`, rec.Body.String())
}

func TestMonthlyDistributionRoute(t *testing.T) {
	router := newTestRouter(&stubRepo{totals: []MonthlyTypeTotal{{Month: 1, RoomTypeID: 2, RoomType: "Deluxe", Total: 7}}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oda/aylik/2025/3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"aylar":["Ocak"`)
	assert.Contains(t, rec.Body.String(), `"oda_tipi_adi":"Deluxe"`)
}

func TestTypeTrendRequiresNumericID(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oda/trend/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"Oda tipi ID parametresi gerekli"}`, rec.Body.String())
}

func TestTypeTrendServesYearlyTotals(t *testing.T) {
	router := newTestRouter(&stubRepo{trend: []TrendPoint{{Year: 2023, Total: 340}, {Year: 2024, Total: 410}}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oda/trend/2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"yil":2023,"toplam":340},{"yil":2024,"toplam":410}]`, rec.Body.String())
}

func TestCapacityDecisionRequiresBothParams(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oda/kapasite-karari?yil=2025", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Eksik parametre"}`, rec.Body.String())
}

func TestCapacityDecisionForwardsErrorText(t *testing.T) {
	router := newTestRouter(&failingRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oda/kapasite-karari?yil=2025&otel_id=1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"relation missing"}`, rec.Body.String())
}
