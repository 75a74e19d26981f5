package finance

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/egelife/insight/internal/catalog"
	"github.com/egelife/insight/internal/platform/httpx"
)

// Handler exposes the financial chart endpoints.
type Handler struct {
	svc     *Service
	catalog *catalog.Service
	logger  *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, catalogSvc *catalog.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, catalog: catalogSvc, logger: logger}
}

// MountRoutes registers the finance endpoints on the API router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/yillara-gore-gelir-gider-kar", h.yearlyFinancials)
	r.Get("/otellerin-yillara-gore-kar", h.hotelProfitByYear)
	r.Get("/otellerin-detayli-finansal-verisi", h.hotelFinancials)
	r.Get("/otellerin-aylik-finansal-verisi", h.hotelMonthlyFinancials)
	r.Get("/oteller", h.hotels)
	r.Get("/kpi-2025", h.kpi)
	r.Get("/personel-verimlilik", h.staffProductivity)
}

func (h *Handler) yearlyFinancials(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.YearlyFinancials(r.Context())
	if err != nil {
		h.logger.Error("yearly financials failed", "error", err)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) hotelProfitByYear(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.HotelProfitByYear(r.Context())
	if err != nil {
		h.logger.Error("hotel profit by year failed", "error", err)
		httpx.ServerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) hotelFinancials(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.HotelFinancialsByYear(r.Context())
	if err != nil {
		h.logger.Error("hotel financials failed", "error", err)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) hotelMonthlyFinancials(w http.ResponseWriter, r *http.Request) {
	year, ok := httpx.YearParam(r)
	if !ok {
		year = catalog.DefaultYear
	}
	rows, err := h.svc.HotelMonthlyFinancials(r.Context(), year)
	if err != nil {
		h.logger.Error("hotel monthly financials failed", "error", err, "year", year)
		httpx.ServerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) hotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.catalog.Hotels(r.Context())
	if err != nil {
		h.logger.Error("hotel list failed", "error", err)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, hotels)
}

func (h *Handler) kpi(w http.ResponseWriter, r *http.Request) {
	kpi, err := h.svc.KPISummary(r.Context(), catalog.DefaultYear)
	if err != nil {
		h.logger.Error("kpi summary failed", "error", err)
		httpx.FailWith(w, http.StatusInternalServerError, "KPI verileri alınamadı", err)
		return
	}
	httpx.JSON(w, http.StatusOK, kpi)
}

func (h *Handler) staffProductivity(w http.ResponseWriter, r *http.Request) {
	year, ok := httpx.YearParam(r)
	if !ok {
		httpx.FailWith(w, http.StatusBadRequest, "Yıl parametresi gereklidir", nil)
		return
	}
	hotelID, _ := httpx.HotelParam(r)

	rows, err := h.svc.StaffProductivity(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("staff productivity failed", "error", err, "year", year, "hotel_id", hotelID)
		var src *SourceError
		if errors.As(err, &src) {
			httpx.FailWith(w, http.StatusInternalServerError, src.Label, nil)
			return
		}
		httpx.ServerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}
