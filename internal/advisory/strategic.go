// Package advisory generates threshold-based decision records from already
// aggregated KPIs. Every rule is evaluated independently; none short-circuit
// another. Thresholds and comparison directions are fixed business
// constants.
package advisory

import (
	"fmt"
	"sort"
)

// Decision is one strategic advisory record as the dashboard renders it,
// presentation hints included.
type Decision struct {
	Type            string `json:"type"`
	Icon            string `json:"icon"`
	Title           string `json:"title"`
	Target          string `json:"target"`
	Reason          string `json:"reason"`
	Action          string `json:"action"`
	Impact          string `json:"impact"`
	BorderColor     string `json:"borderColor"`
	BgColor         string `json:"bgColor"`
	BadgeColor      string `json:"badgeColor"`
	BadgeText       string `json:"badgeText"`
	BtnColor        string `json:"btnColor"`
	BorderLeftColor string `json:"borderLeftColor"`
	ContainerBorder string `json:"containerBorder"`
}

// KPISummary carries the chain-wide totals for one year.
type KPISummary struct {
	Year        int     `json:"yil"`
	TotalProfit float64 `json:"toplamKar"`
	TotalGross  float64 `json:"toplamGelir"`
	TotalCost   float64 `json:"toplamMaliyet"`
}

// HotelPerformance is a hotel's profit margin input for the margin rules.
type HotelPerformance struct {
	Name   string  `json:"otel_adi"`
	Margin float64 `json:"karMarji"`
}

// Strategic evaluates the dashboard decision rules: a critical audit for the
// worst margin under 15, an opportunity for the best margin over 35, and a
// budget warning when cost growth outpaces revenue growth.
func Strategic(current, previous KPISummary, hotels []HotelPerformance) []Decision {
	decisions := []Decision{}

	if len(hotels) > 0 {
		sorted := make([]HotelPerformance, len(hotels))
		copy(sorted, hotels)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Margin < sorted[j].Margin })
		worst := sorted[0]
		best := sorted[len(sorted)-1]

		if worst.Margin < 15 {
			decisions = append(decisions, Decision{
				Type:            "critical",
				Icon:            "🚨",
				Title:           "Acil Operasyonel Denetim",
				Target:          worst.Name,
				Reason:          fmt.Sprintf("%s şubesi %%%.1f kâr marjı ile kritik seviyede (Hedef: %%20+).", worst.Name, worst.Margin),
				Action:          "Bağımsız denetçi atanması ve tedarikçi sözleşmelerinin askıya alınarak yeniden müzakere edilmesi.",
				Impact:          "Tahmini aylık maliyet tasarrufu: %5-8",
				BorderColor:     "#d13438",
				BgColor:         "#fff",
				BadgeColor:      "#d13438",
				BadgeText:       "ACİL",
				BtnColor:        "#d13438",
				BorderLeftColor: "#d13438",
				ContainerBorder: "1px solid #fde7e9",
			})
		}

		if best.Margin > 35 {
			decisions = append(decisions, Decision{
				Type:            "opportunity",
				Icon:            "🏆",
				Title:           "Verimlilik Modelini Yaygınlaştırma",
				Target:          best.Name,
				Reason:          fmt.Sprintf("%s şubesi %%%.1f ile verimlilik lideri.", best.Name, best.Margin),
				Action:          fmt.Sprintf("%s Genel Müdürü tarafından oluşturulacak 'Verimlilik Rehberi'nin diğer şubelerde uygulanması.", best.Name),
				Impact:          "Grup genelinde kârlılık artışı: %2-3",
				BorderColor:     "#107c10",
				BgColor:         "#fff",
				BadgeColor:      "#107c10",
				BadgeText:       "FIRSAT",
				BtnColor:        "#0078d4",
				BorderLeftColor: "#107c10",
				ContainerBorder: "1px solid #dff6dd",
			})
		}
	}

	if previous.TotalGross > 0 && previous.TotalCost > 0 {
		revenueGrowth := (current.TotalGross - previous.TotalGross) / previous.TotalGross * 100
		costGrowth := (current.TotalCost - previous.TotalCost) / previous.TotalCost * 100

		if costGrowth > revenueGrowth {
			decisions = append(decisions, Decision{
				Type:            "warning",
				Icon:            "⚠️",
				Title:           "Bütçe Revizyonu ve Sıkılaştırma",
				Target:          "Tüm Zincir",
				Reason:          fmt.Sprintf("Gider artış hızı (%%%.1f), gelir artış hızını (%%%.1f) geçti. Sürdürülebilirlik riski var.", costGrowth, revenueGrowth),
				Action:          `2026 yatırım bütçesinin dondurulması ve "Zorunlu Olmayan Giderler" genelgesinin yayınlanması.`,
				Impact:          "Nakit akışı dengelenmesi",
				BorderColor:     "#ffb900",
				BgColor:         "#fff",
				BadgeColor:      "#ffb900",
				BadgeText:       "UYARI",
				BtnColor:        "#0078d4",
				BorderLeftColor: "#ffb900",
				ContainerBorder: "1px solid #fff4ce",
			})
		}
	}

	return decisions
}
