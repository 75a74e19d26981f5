package campaigns

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/egelife/insight/internal/platform/httpx"
)

// Handler exposes the campaign analytics endpoints.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// MountRoutes registers the campaign endpoints on the API router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/kampanya/analiz", h.analysisTable)

	r.Get("/kampanya-performansi", h.performance)
	r.Get("/aylik-kampanya-gelirleri", h.monthlyRevenue)
	r.Get("/kampanya-turu-dagilimi", h.typeDistribution)
}

func (h *Handler) performance(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)
	hotelID, _ := httpx.HotelParam(r)

	rows, err := h.svc.Performance(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("campaign performance failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) monthlyRevenue(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)
	hotelID, _ := httpx.HotelParam(r)

	rows, err := h.svc.MonthlyRevenue(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("monthly campaign revenue failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) typeDistribution(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)

	rows, err := h.svc.TypeDistribution(r.Context(), year)
	if err != nil {
		h.logger.Error("campaign type distribution failed", "error", err, "year", year)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) analysisTable(w http.ResponseWriter, r *http.Request) {
	hotelID, _ := httpx.HotelParam(r)
	filter := TableFilter{
		Name:    r.URL.Query().Get("kampanya_adi"),
		Impact:  r.URL.Query().Get("etki_seviyesi"),
		HotelID: hotelID,
		Page:    httpx.IntQuery(r, "page", 1),
		Limit:   httpx.IntQuery(r, "limit", 8),
	}

	page, err := h.svc.AnalysisTable(r.Context(), filter)
	if err != nil {
		h.logger.Error("campaign analysis table failed", "error", err, "filter", filter)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}
