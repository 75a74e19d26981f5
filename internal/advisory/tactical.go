package advisory

import "fmt"

// TacticalDecision is one customer-analysis advisory record.
type TacticalDecision struct {
	Icon   string `json:"icon"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
	Action string `json:"action"`
	Impact string `json:"impact"`
	Color  string `json:"color"`
	Badge  string `json:"badge"`
}

// SegmentCount is a customer segment total feeding the tactical rules.
type SegmentCount struct {
	Segment string `json:"musteri_tipi"`
	Total   int    `json:"toplam"`
}

// TacticalInput gathers the three independent datasets the rules read.
type TacticalInput struct {
	TargetYear          int
	Segments            []SegmentCount
	Financials          KPISummary
	AverageSatisfaction float64
}

// Tactical evaluates the customer-page decision rules over the gathered
// segment mix, financial summary and satisfaction average.
func Tactical(in TacticalInput) []TacticalDecision {
	decisions := []TacticalDecision{}

	// The denominator seeds at 1, matching the deployed share calculation.
	total := 1
	for _, s := range in.Segments {
		total += s.Total
	}

	foreignShare := segmentShare(in.Segments, "Yabancı Turist", total)
	if foreignShare > 35 {
		decisions = append(decisions, TacticalDecision{
			Icon:   "🌍",
			Title:  "Dinamik Döviz Fiyatlandırması",
			Reason: fmt.Sprintf("Yabancı turist oranı %%%.1f ile baskın segment.", foreignShare),
			Action: "Avrupa pazarı için oda fiyatlarını EUR bazında güncelleyerek kur riskini minimize edin.",
			Impact: "Net Kâr Artışı: %5-7",
			Color:  "#0078d4",
			Badge:  "STRATEJİK",
		})
	}

	familyShare := segmentShare(in.Segments, "Aile (Çocuklu)", total)
	if in.AverageSatisfaction < 3.8 && familyShare > 20 {
		decisions = append(decisions, TacticalDecision{
			Icon:   "🧸",
			Title:  "Aile Odaklı Hizmet Revizyonu",
			Reason: fmt.Sprintf("Düşük memnuniyet puanı (%.1f) ve yüksek aile oranı (%%%.1f) korelasyonu.", in.AverageSatisfaction, familyShare),
			Action: "Çocuk aktiviteleri ve restoran menüsünü aile geri bildirimlerine göre güncelleyin.",
			Impact: "Gelecek Sezon Tekrar Geliş Oranı: +%12",
			Color:  "#d13438",
			Badge:  "KALİTE",
		})
	}

	tourShare := segmentShare(in.Segments, "Tur Grubu", total)
	if in.Financials.TotalGross > 0 {
		margin := in.Financials.TotalProfit / in.Financials.TotalGross * 100
		if margin < 25 && tourShare > 25 {
			decisions = append(decisions, TacticalDecision{
				Icon:   "📉",
				Title:  "Satış Kanalı Optimizasyonu",
				Reason: fmt.Sprintf("Düşük kâr marjı (%%%.1f) ve yüksek Tur Grubu (%%%.1f) bağımlılığı.", margin, tourShare),
				Action: "Düşük kâr marjlı turlar yerine dijital kanallar üzerinden bireysel satışlara (%15 indirimle) odaklanın.",
				Impact: "Marj İyileşmesi: +%4",
				Color:  "#ffb900",
				Badge:  "VERİMLİLİK",
			})
		}
	}

	if in.TargetYear == 2025 {
		decisions = append(decisions, TacticalDecision{
			Icon:   "🚀",
			Title:  "2026 Kapasite Hazırlığı",
			Reason: "2026 tahminleri toplam müşteri sayısında %6 büyüme öngörüyor.",
			Action: "Yüksek sezona girmeden önce oda bakım ve yenileme çalışmalarını Mart ayına kadar tamamlayın.",
			Impact: "Operasyonel Hazırlık: %100",
			Color:  "#107c10",
			Badge:  "PLANLAMA",
		})
	}

	return decisions
}

func segmentShare(segments []SegmentCount, name string, total int) float64 {
	for _, s := range segments {
		if s.Segment == name {
			return float64(s.Total) / float64(total) * 100
		}
	}
	return 0
}
