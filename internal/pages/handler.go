// Package pages renders the server-side report pages over the placeholder
// template engine.
package pages

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/egelife/insight/internal/advisory"
	"github.com/egelife/insight/internal/catalog"
	"github.com/egelife/insight/internal/finance"
	"github.com/egelife/insight/internal/view"
)

// FinanceProvider supplies the dashboard KPI block and advisory records.
type FinanceProvider interface {
	KPISummary(ctx context.Context, year int) (finance.KPI, error)
	StrategicDecisions(ctx context.Context, year int) ([]advisory.Decision, error)
}

// CatalogProvider supplies the filter dropdown data.
type CatalogProvider interface {
	Hotels(ctx context.Context) ([]catalog.Hotel, error)
	Years(ctx context.Context) ([]int, error)
}

// Handler serves the report pages.
type Handler struct {
	views   *view.Engine
	catalog CatalogProvider
	finance FinanceProvider
	logger  *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(views *view.Engine, cat CatalogProvider, fin FinanceProvider, logger *slog.Logger) *Handler {
	return &Handler{views: views, catalog: cat, finance: fin, logger: logger}
}

// MountRoutes registers the page routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.dashboard)
	r.Get("/dashboard", h.dashboard)
	r.Get("/musteri-analizi", h.section("musteri"))
	r.Get("/oda-analizi", h.section("oda"))
	r.Get("/kampanya-raporu", h.section("kampanya"))
	r.Get("/memnuniyet-raporu", h.section("memnuniyet"))
}

// dashboard renders the KPI overview. Dropdown lookups degrade to empty
// lists; a failed KPI or advisory load fails the whole page.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kpi, err := h.finance.KPISummary(ctx, catalog.DefaultYear)
	if err != nil {
		h.renderFailure(w, err)
		return
	}
	decisions, err := h.finance.StrategicDecisions(ctx, catalog.DefaultYear)
	if err != nil {
		h.renderFailure(w, err)
		return
	}

	data := h.filterContext(ctx)
	data["kpi2025"] = kpiContext(kpi)
	data["hasKpi"] = true
	data["decisions"] = decisionContext(decisions)
	data["hasDecisions"] = len(decisions) > 0

	h.views.Render(w, "dashboard", data)
}

func (h *Handler) section(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := h.filterContext(r.Context())
		data["activeSection"] = name
		h.views.Render(w, "dashboard", data)
	}
}

// filterContext gathers the dropdown data shared by every page. Failures
// are logged and leave the lists empty so the page still renders.
func (h *Handler) filterContext(ctx context.Context) map[string]any {
	hotels, err := h.catalog.Hotels(ctx)
	if err != nil {
		h.logger.Error("page hotel lookup failed", "error", err)
		hotels = nil
	}
	years, err := h.catalog.Years(ctx)
	if err != nil {
		h.logger.Error("page year lookup failed", "error", err)
		years = nil
	}

	hotelItems := make([]map[string]any, 0, len(hotels))
	for _, hotel := range hotels {
		hotelItems = append(hotelItems, map[string]any{
			"otel_id":           hotel.ID,
			"otel_adi":          hotel.Name,
			"toplam_oda_sayisi": hotel.RoomCount,
		})
	}
	yearItems := make([]map[string]any, 0, len(years))
	for _, year := range years {
		yearItems = append(yearItems, map[string]any{"yil": year})
	}

	return map[string]any{
		"oteller": hotelItems,
		"yillar":  yearItems,
	}
}

func (h *Handler) renderFailure(w http.ResponseWriter, err error) {
	h.logger.Error("dashboard render failed", "error", err)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("Sayfa yüklenirken bir hata oluştu: " + err.Error()))
}

func kpiContext(kpi finance.KPI) map[string]any {
	return map[string]any{
		"yil":           kpi.Year,
		"toplamKar":     kpi.TotalProfit,
		"toplamGelir":   kpi.TotalRevenue,
		"toplamMaliyet": kpi.TotalCost,
		"enKarliOtel":   kpi.BestHotel,
		"enAzKarliOtel": kpi.WorstHotel,
	}
}

func decisionContext(decisions []advisory.Decision) []map[string]any {
	items := make([]map[string]any, 0, len(decisions))
	for _, d := range decisions {
		items = append(items, map[string]any{
			"type":            d.Type,
			"icon":            d.Icon,
			"title":           d.Title,
			"target":          d.Target,
			"reason":          d.Reason,
			"action":          d.Action,
			"impact":          d.Impact,
			"borderColor":     d.BorderColor,
			"bgColor":         d.BgColor,
			"badgeColor":      d.BadgeColor,
			"badgeText":       d.BadgeText,
			"btnColor":        d.BtnColor,
			"borderLeftColor": d.BorderLeftColor,
			"containerBorder": d.ContainerBorder,
		})
	}
	return items
}
