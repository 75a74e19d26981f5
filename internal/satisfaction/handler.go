package satisfaction

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/egelife/insight/internal/platform/httpx"
)

// Handler exposes the satisfaction analytics endpoints.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// MountRoutes registers the satisfaction endpoints on the API router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/memnuniyet", func(r chi.Router) {
		r.Get("/korelasyon", h.correlation)
		r.Get("/trend", h.trend)
		r.Get("/detayli-analiz", h.detailedAnalysis)
	})

	r.Get("/memnuniyet-skorlari", h.scores)
	r.Get("/otellere-gore-memnuniyet", h.hotelScores)
	r.Get("/memnuniyet-kategori-dagilimi", h.categories)
}

func (h *Handler) scores(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)
	hotelID, _ := httpx.HotelParam(r)

	rows, err := h.svc.Scores(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("satisfaction scores failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) hotelScores(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)

	rows, err := h.svc.HotelScores(r.Context(), year)
	if err != nil {
		h.logger.Error("hotel satisfaction failed", "error", err, "year", year)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)
	hotelID, _ := httpx.HotelParam(r)

	rows, err := h.svc.Categories(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("satisfaction categories failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) correlation(w http.ResponseWriter, r *http.Request) {
	hotelID, year, ok := requiredPair(r)
	if !ok {
		missingPairError(w)
		return
	}

	points, err := h.svc.Correlation(r.Context(), hotelID, year)
	if err != nil {
		h.logger.Error("satisfaction correlation failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", err)
		return
	}
	httpx.JSON(w, http.StatusOK, points)
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	hotelID, year, ok := requiredPair(r)
	if !ok {
		missingPairError(w)
		return
	}

	rows, err := h.svc.Trend(r.Context(), hotelID, year)
	if err != nil {
		h.logger.Error("review trend failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) detailedAnalysis(w http.ResponseWriter, r *http.Request) {
	hotelID, year, ok := requiredPair(r)
	if !ok {
		httpx.FailWith(w, http.StatusBadRequest, "Eksik parametre", nil)
		return
	}

	analysis, err := h.svc.DetailedAnalysis(r.Context(), hotelID, year)
	if err != nil {
		h.logger.Error("detailed analysis failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, analysis)
}

func requiredPair(r *http.Request) (hotelID, year int, ok bool) {
	hotelID, hotelOK := httpx.HotelParam(r)
	year, yearOK := httpx.YearParam(r)
	return hotelID, year, hotelOK && yearOK
}

func missingPairError(w http.ResponseWriter) {
	httpx.JSON(w, http.StatusBadRequest, httpx.APIError{
		Error:   "Eksik parametre",
		Message: "otel_id ve yil parametreleri gerekli",
	})
}
