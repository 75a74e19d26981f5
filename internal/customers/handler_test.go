package customers

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

func (f *failingRepo) TypeDistribution(ctx context.Context, year int) ([]TypeCount, error) {
	return nil, errors.New("boom")
}

func newTestHandler(repo Repository) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(NewService(repo, stubFinance{}, stubSatisfaction{}, logger), logger)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestDomesticForeignRequiresYear(t *testing.T) {
	router := newTestHandler(&stubRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/musteri/yerli-yabanci", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"Yıl parametresi gereklidir"}`, rec.Body.String())
}

func TestDomesticForeignServesSplit(t *testing.T) {
	router := newTestHandler(&stubRepo{split: DomesticForeign{Domestic: 12345, Foreign: 6789}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/musteri/yerli-yabanci?yil=2024", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"yerli":12345,"yabanci":6789}`, rec.Body.String())
}

func TestTypeDistributionDegradesToZeros(t *testing.T) {
	router := newTestHandler(&failingRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/musteri-tipi-dagilimi?yil=2025", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"tip":"Yerli","sayi":0,"yil":null},{"tip":"Yabancı","sayi":0,"yil":null}]`, rec.Body.String())
}

func TestSegmentDistributionWrapsBreakdown(t *testing.T) {
	router := newTestHandler(&stubRepo{segments: []TypeDistribution{
		{Type: "Yerli Turist", TypeID: 1, Total: 4200},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/musteri/tur-dagilimi?yil=2025", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"turler":[{"tur_id":1,"ad":"Yerli Turist","sayi":4200}]}`, rec.Body.String())
}

func TestTrendRequiresHotel(t *testing.T) {
	router := newTestHandler(&stubRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/musteri/aylik-trend?yil=2025", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"Otel ID parametresi gereklidir"}`, rec.Body.String())
}

func TestCampaignImpactWithoutCampaignReturnsEmptyChart(t *testing.T) {
	router := newTestHandler(&stubRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/musteri/kampanya-etkisi?yil=2025", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"labels":[],"datasets":[]}`, rec.Body.String())
}

func TestTacticalDecisionsDefaultYear(t *testing.T) {
	router := newTestHandler(&stubRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/musteri/taktiksel-kararlar", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	// Default target year is the planning year, so the capacity note fires.
	assert.Contains(t, rec.Body.String(), `"badge":"PLANLAMA"`)
}

func TestMonthlyTypesDefaultsYearWindow(t *testing.T) {
	router := newTestHandler(&stubRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/aylik-musteri-tipleri", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestParseYearList(t *testing.T) {
	assert.Equal(t, []int{2023, 2024, 2025}, parseYearList(""))
	assert.Equal(t, []int{2024, 2025}, parseYearList("2024, 2025"))
	assert.Equal(t, []int{2024}, parseYearList("2024,abc"))
}
