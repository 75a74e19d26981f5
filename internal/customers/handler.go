package customers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/egelife/insight/internal/catalog"
	"github.com/egelife/insight/internal/platform/httpx"
)

// Handler exposes the customer analytics endpoints.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// MountRoutes registers the customer endpoints on the API router: the
// /musteri subtree plus the flat legacy paths the deployed client still
// calls.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/musteri", func(r chi.Router) {
		r.Get("/yerli-yabanci", h.domesticForeign)
		r.Get("/tur-dagilimi", h.segmentDistribution)
		r.Get("/aylik-musteri-turleri", h.monthlyMatrix)
		r.Get("/aylik-trend", h.trend)
		r.Get("/otel-karsilastirma", h.hotelComparison)
		r.Get("/kampanya-etkisi", h.campaignImpact)
		r.Get("/oda-tercihleri", h.roomPreferences)
		r.Get("/taktiksel-kararlar", h.tacticalDecisions)
		r.Get("/karlilik-analizi", h.profitability)
	})

	r.Get("/musteri-tipi-dagilimi", h.typeDistribution)
	r.Get("/aylik-musteri-tipleri", h.monthlyTypes)
	r.Get("/yerli-yabanci-dagilimi", h.domesticForeignDistribution)
	r.Get("/genel-musteri-dagilimi", h.generalDistribution)
	r.Get("/musteri-analizi", h.analysis)
	r.Get("/musteri-tur", h.segmentLabels)
	r.Get("/musteri-tur-yil", h.legacyYearSplit)
	r.Get("/musteri-tur-otel", h.legacyHotelSplit)
}

// typeDistribution degrades to a zeroed classification on any failure so
// the pie chart always renders.
func (h *Handler) typeDistribution(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)
	rows, err := h.svc.TypeDistribution(r.Context(), year)
	if err != nil {
		h.logger.Error("type distribution failed", "error", err, "year", year)
		httpx.JSON(w, http.StatusOK, []TypeCount{{Type: "Yerli"}, {Type: "Yabancı"}})
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) monthlyTypes(w http.ResponseWriter, r *http.Request) {
	years := parseYearList(r.URL.Query().Get("yillar"))
	if len(years) == 0 {
		httpx.JSON(w, http.StatusOK, []MonthlyTypeRow{})
		return
	}
	hotelID, _ := httpx.HotelParam(r)

	rows, err := h.svc.MonthlyTypes(r.Context(), years, hotelID)
	if err != nil {
		h.logger.Error("monthly types failed", "error", err, "years", years)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) domesticForeign(w http.ResponseWriter, r *http.Request) {
	year, ok := httpx.YearParam(r)
	if !ok {
		httpx.MissingParam(w, "Yıl")
		return
	}
	split, err := h.svc.DomesticForeign(r.Context(), year)
	if err != nil {
		h.logger.Error("domestic/foreign split failed", "error", err, "year", year)
		httpx.ServerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, split)
}

func (h *Handler) segmentDistribution(w http.ResponseWriter, r *http.Request) {
	year, ok := httpx.YearParam(r)
	if !ok {
		httpx.MissingParam(w, "Yıl")
		return
	}
	hotelID, _ := httpx.HotelParam(r)

	var (
		breakdown []SegmentBreakdown
		err       error
	)
	if hotelID > 0 {
		breakdown, err = h.svc.SegmentsByHotel(r.Context(), year, hotelID)
	} else {
		breakdown, err = h.svc.SegmentsByYear(r.Context(), year)
	}
	if err != nil {
		h.logger.Error("segment distribution failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.ServerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"turler": breakdown})
}

func (h *Handler) monthlyMatrix(w http.ResponseWriter, r *http.Request) {
	year, ok := httpx.YearParam(r)
	if !ok {
		httpx.MissingParam(w, "Yıl")
		return
	}
	hotelID, _ := httpx.HotelParam(r)

	matrix, err := h.svc.MonthlyMatrix(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("monthly matrix failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.ServerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, matrix)
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	year, ok := httpx.YearParam(r)
	if !ok {
		httpx.MissingParam(w, "Yıl")
		return
	}
	hotelID, ok := httpx.HotelParam(r)
	if !ok {
		httpx.MissingParam(w, "Otel ID")
		return
	}

	trend, err := h.svc.Trend(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("monthly trend failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.ServerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, trend)
}

func (h *Handler) hotelComparison(w http.ResponseWriter, r *http.Request) {
	year, ok := httpx.YearParam(r)
	if !ok {
		httpx.MissingParam(w, "Yıl")
		return
	}
	comparison, err := h.svc.HotelComparison(r.Context(), year)
	if err != nil {
		h.logger.Error("hotel comparison failed", "error", err, "year", year)
		httpx.ServerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, comparison)
}

// campaignImpact serves the per-campaign radar. Without a campaign filter
// there is nothing to compare, so an empty chart is returned.
func (h *Handler) campaignImpact(w http.ResponseWriter, r *http.Request) {
	campaignID := httpx.IntQuery(r, "kampanyaId", 0)
	if campaignID == 0 {
		httpx.JSON(w, http.StatusOK, RadarChart{Labels: []string{}, Datasets: []RadarDataset{}})
		return
	}
	year, _ := httpx.YearParam(r)

	chart, err := h.svc.CampaignImpactRadar(r.Context(), year, campaignID)
	if err != nil {
		h.logger.Error("campaign impact failed", "error", err, "year", year, "campaign_id", campaignID)
		httpx.ServerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, chart)
}

func (h *Handler) roomPreferences(w http.ResponseWriter, r *http.Request) {
	year, ok := httpx.YearParam(r)
	if !ok {
		httpx.MissingParam(w, "Yıl")
		return
	}
	hotelID, _ := httpx.HotelParam(r)

	chart, err := h.svc.RoomPreferenceChart(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("room preferences failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.ServerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, chart)
}

func (h *Handler) tacticalDecisions(w http.ResponseWriter, r *http.Request) {
	year, ok := httpx.YearParam(r)
	if !ok {
		year = catalog.DefaultYear
	}
	hotelID, _ := httpx.HotelParam(r)

	decisions := h.svc.TacticalDecisions(r.Context(), year, hotelID)
	httpx.JSON(w, http.StatusOK, decisions)
}

func (h *Handler) profitability(w http.ResponseWriter, r *http.Request) {
	year, ok := httpx.YearParam(r)
	if !ok {
		httpx.MissingParam(w, "Yıl")
		return
	}
	rows, err := h.svc.Profitability(r.Context(), year)
	if err != nil {
		h.logger.Error("profitability failed", "error", err, "year", year)
		httpx.FailWith(w, http.StatusInternalServerError, "Veri alınamadı.", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) domesticForeignDistribution(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)
	split, err := h.svc.DomesticForeignDistribution(r.Context(), year)
	if err != nil {
		h.logger.Error("domestic/foreign distribution failed", "error", err, "year", year)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", err)
		return
	}
	httpx.JSON(w, http.StatusOK, split)
}

func (h *Handler) generalDistribution(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)
	rows, err := h.svc.GeneralDistribution(r.Context(), year)
	if err != nil {
		h.logger.Error("general distribution failed", "error", err, "year", year)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", err)
		return
	}

	type generalRow struct {
		Type  string `json:"musteri_tipi"`
		Total int    `json:"toplam"`
	}
	response := make([]generalRow, 0, len(rows))
	for _, row := range rows {
		response = append(response, generalRow{Type: row.Type, Total: row.Total})
	}
	httpx.JSON(w, http.StatusOK, response)
}

func (h *Handler) analysis(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)
	hotelID, _ := httpx.HotelParam(r)

	data, err := h.svc.Analysis(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("customer analysis failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", err)
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}

func (h *Handler) segmentLabels(w http.ResponseWriter, r *http.Request) {
	year, _ := httpx.YearParam(r)
	hotelID, _ := httpx.HotelParam(r)

	data, err := h.svc.SegmentLabels(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("segment labels failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", err)
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}

func (h *Handler) legacyYearSplit(w http.ResponseWriter, r *http.Request) {
	year, ok := httpx.YearParam(r)
	if !ok {
		httpx.FailWith(w, http.StatusBadRequest, "Yıl parametresi gereklidir", nil)
		return
	}
	split, err := h.svc.DomesticForeign(r.Context(), year)
	if err != nil {
		h.logger.Error("legacy year split failed", "error", err, "year", year)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", err)
		return
	}
	httpx.JSON(w, http.StatusOK, split)
}

func (h *Handler) legacyHotelSplit(w http.ResponseWriter, r *http.Request) {
	year, ok := httpx.YearParam(r)
	if !ok {
		httpx.FailWith(w, http.StatusBadRequest, "Yıl parametresi gereklidir", nil)
		return
	}
	hotelID, ok := httpx.HotelParam(r)
	if !ok {
		httpx.FailWith(w, http.StatusBadRequest, "Otel ID parametresi gereklidir", nil)
		return
	}

	breakdown, err := h.svc.SegmentsByHotel(r.Context(), year, hotelID)
	if err != nil {
		h.logger.Error("legacy hotel split failed", "error", err, "year", year, "hotel_id", hotelID)
		httpx.FailWith(w, http.StatusInternalServerError, "Veritabanı hatası", err)
		return
	}

	data := LabelsData{Labels: make([]string, 0, len(breakdown)), Data: make([]int, 0, len(breakdown))}
	for _, b := range breakdown {
		data.Labels = append(data.Labels, b.Name)
		data.Data = append(data.Data, b.Count)
	}
	httpx.JSON(w, http.StatusOK, data)
}

func parseYearList(raw string) []int {
	if strings.TrimSpace(raw) == "" {
		return []int{2023, 2024, 2025}
	}
	years := []int{}
	for _, part := range strings.Split(raw, ",") {
		year, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	return years
}
