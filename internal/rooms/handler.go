package rooms

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/egelife/insight/internal/platform/httpx"
)

// Handler exposes the room analytics endpoints.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// MountRoutes registers the room endpoints on the API router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/oda", func(r chi.Router) {
		r.Get("/treemap/{yil}/{otel}", h.yearlyMargins)
		r.Get("/aylik/{yil}/{otel}", h.monthlyDistribution)
		r.Get("/trend/{tip}", h.typeTrend)
		r.Get("/kapasite-karari", h.capacityDecision)
	})

	r.Get("/oda-doluluk-orani", h.occupancy)
	r.Get("/oda-tipi-dagilimi", h.typeDistribution)
	r.Get("/otellere-gore-doluluk", h.hotelOccupancy)
}

func (h *Handler) occupancy(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)
	hotelID, _ := httpx.HotelParam(r)

	rows, err := h.svc.Occupancy(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("occupancy failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) typeDistribution(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)
	hotelID, _ := httpx.HotelParam(r)

	rows, err := h.svc.TypeDistribution(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("type distribution failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) hotelOccupancy(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)

	rows, err := h.svc.HotelOccupancy(r.Context(), year)
	if err != nil {
		h.logger.Error("hotel occupancy failed", "error", err, "year", year)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) yearlyMargins(w http.ResponseWriter, r *http.Request) {
	year, hotelID, ok := pathPair(r)
	if !ok {
		httpx.JSON(w, http.StatusBadRequest, httpx.APIError{Error: true, Message: "Yıl ve otel ID parametreleri gerekli"})
		return
	}

	rows, err := h.svc.YearlyMargins(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("yearly margins failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.ServerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

func (h *Handler) monthlyDistribution(w http.ResponseWriter, r *http.Request) {
	year, hotelID, ok := pathPair(r)
	if !ok {
		httpx.JSON(w, http.StatusBadRequest, httpx.APIError{Error: true, Message: "Yıl ve otel ID parametreleri gerekli"})
		return
	}

	dist, err := h.svc.MonthlyDistribution(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("monthly distribution failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.ServerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dist)
}

func (h *Handler) typeTrend(w http.ResponseWriter, r *http.Request) {
	roomTypeID, err := strconv.Atoi(chi.URLParam(r, "tip"))
	if err != nil || roomTypeID < 1 {
		httpx.JSON(w, http.StatusBadRequest, httpx.APIError{Error: true, Message: "Oda tipi ID parametresi gerekli"})
		return
	}

	rows, err := h.svc.TypeTrend(r.Context(), roomTypeID)
	if err != nil {
		h.logger.Error("type trend failed", "error", err, "room_type_id", roomTypeID)
		httpx.ServerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) capacityDecision(w http.ResponseWriter, r *http.Request) {
	year, yearOK := httpx.YearParam(r)
	hotelID, hotelOK := httpx.HotelParam(r)
	if !yearOK || !hotelOK {
		httpx.FailWith(w, http.StatusBadRequest, "Eksik parametre", nil)
		return
	}

	rows, err := h.svc.CapacityDecision(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("capacity decision failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.FailWith(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

// pathPair reads the yil/otel URL segments; both must be positive integers.
func pathPair(r *http.Request) (year, hotelID int, ok bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "yil"))
	if err != nil || year == 0 {
		return 0, 0, false
	}
	hotelID, err = strconv.Atoi(chi.URLParam(r, "otel"))
	if err != nil || hotelID == 0 {
		return 0, 0, false
	}
	return year, hotelID, true
}
