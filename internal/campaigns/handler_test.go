package campaigns

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

func (f *failingRepo) TypeDistribution(ctx context.Context, year int) ([]TypeDistributionRow, error) {
	return nil, errors.New("boom")
}

func (f *failingRepo) AnalysisCount(ctx context.Context, filter TableFilter) (int, error) {
	return 0, errors.New("count failed")
}

func newTestRouter(repo Repository) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(NewService(repo), logger)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestTypeDistributionReportsDatabaseLabel(t *testing.T) {
	router := newTestRouter(&failingRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/kampanya-turu-dagilimi?yil=2025", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Veritabanı hatası"}`, rec.Body.String())
}

func TestAnalysisTableForwardsErrorMessage(t *testing.T) {
	router := newTestRouter(&failingRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/kampanya/analiz", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Veritabanı hatası","message":"count failed"}`, rec.Body.String())
}

func TestAnalysisTableServesPage(t *testing.T) {
	repo := &stubRepo{
		total: 1,
		rows: []AnalysisRow{{
			Name: "Erken Rezervasyon", Hotel: "EgeLife Bodrum",
			Period: "01.06.2025 - 30.06.2025", Discount: 25,
			PriorGuests: 100, PostGuests: 130, Growth: ptr(30), Impact: "Yüksek",
		}},
	}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/kampanya/analiz?kampanya_adi=Erken&etki_seviyesi=Yüksek&otel_id=1&page=2&limit=4", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"data": [{
			"kampanya_adi": "Erken Rezervasyon",
			"otel_adi": "EgeLife Bodrum",
			"donem": "01.06.2025 - 30.06.2025",
			"indirim_orani": 25,
			"onceki_musteri_sayisi": 100,
			"sonraki_musteri_sayisi": 130,
			"artis_yuzde": 30,
			"etki_seviyesi": "Yüksek",
			"yorum": "Başarılı kampanya"
		}],
		"total": 1,
		"page": 2,
		"limit": 4,
		"totalPages": 1
	}`, rec.Body.String())
	assert.Equal(t, TableFilter{Name: "Erken", Impact: "Yüksek", HotelID: 1, Page: 2, Limit: 4}, repo.lastFilter)
}

func TestMonthlyRevenueServesRows(t *testing.T) {
	router := newTestRouter(&fixedMonthlyRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/aylik-kampanya-gelirleri?yil=2025", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"ay":6,"kampanya_sayisi":2,"rezervasyon_sayisi":310,"toplam_gelir":125000}]`, rec.Body.String())
}

type fixedMonthlyRepo struct {
	stubRepo
}

func (f *fixedMonthlyRepo) MonthlyRevenue(ctx context.Context, year, hotelID int) ([]MonthlyRevenueRow, error) {
	return []MonthlyRevenueRow{{Month: 6, Campaigns: 2, Reservations: 310, Revenue: 125000}}, nil
}
