// Package customers serves the guest segmentation and demand analytics
// behind the customer report charts.
package customers

import "strconv"

// SegmentNames maps the seven fixed segment ids to their display names.
// Used when a fallback table carries only the numeric id.
var SegmentNames = map[int]string{
	1: "Yerli Turist",
	2: "Yabancı Turist",
	3: "Aile (Çocuklu)",
	4: "Çift",
	5: "Kurumsal / İş",
	6: "Tur Grubu",
	7: "Bireysel",
}

// SegmentName resolves a segment id to its display name.
func SegmentName(id int) string {
	if name, ok := SegmentNames[id]; ok {
		return name
	}
	return "Tip " + strconv.Itoa(id)
}

// TypeCount is one row of the domestic/foreign classification chart. Year
// is only present in the all-years variant.
type TypeCount struct {
	Type  string `json:"tip"`
	Count int    `json:"sayi"`
	Year  *int   `json:"yil"`
}

// MonthlyTypeRow is one month of one segment for the multi-year column
// chart.
type MonthlyTypeRow struct {
	Year  int    `json:"yil"`
	Month int    `json:"ay"`
	Type  string `json:"musteri_tipi"`
	Count int    `json:"musteri_sayisi"`
}

// TypeDistribution is a segment total with its id, the building block of
// the pie charts and the tactical rule engine.
type TypeDistribution struct {
	Type   string `json:"musteri_tipi"`
	TypeID int    `json:"musteri_tipi_id"`
	Total  int    `json:"toplam"`
}

// SegmentBreakdown is the per-hotel segment response shape.
type SegmentBreakdown struct {
	ID    int    `json:"tur_id"`
	Name  string `json:"ad"`
	Count int    `json:"sayi"`
}

// DomesticForeign is the two-value split used by the main pie chart.
type DomesticForeign struct {
	Domestic int `json:"yerli"`
	Foreign  int `json:"yabanci"`
}

// MonthlyMatrix is the stacked bar payload, one 12-value series per
// segment name.
type MonthlyMatrix struct {
	Months []string         `json:"aylar"`
	Series map[string][]int `json:"veriler"`
}

// TrendSeries is the line chart payload with the staffing overlay.
type TrendSeries struct {
	Months []string `json:"aylar"`
	Values []int    `json:"degerler"`
	Staff  []int    `json:"personel_degerler"`
}

// HotelComparison is the per-hotel totals bar chart payload.
type HotelComparison struct {
	Hotels []string `json:"oteller"`
	Totals []int    `json:"toplamlar"`
}

// LabelsData is the generic labels/data pie payload.
type LabelsData struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// PieSlice is one aggregated segment of the combined analysis response.
type PieSlice struct {
	Type  string `json:"musteri_tipi"`
	Total int    `json:"toplam_sayi"`
}

// BarGroup is one month of the combined analysis response.
type BarGroup struct {
	Year  int            `json:"yil"`
	Month int            `json:"ay"`
	Types map[string]int `json:"musteri_tipleri"`
}

// AnalysisData bundles the pie and bar shapes of the combined endpoint.
type AnalysisData struct {
	PieChart []PieSlice `json:"pieChart"`
	BarChart []BarGroup `json:"barChart"`
}

// AnalysisRow is one raw month/segment observation.
type AnalysisRow struct {
	Year   int
	Month  int
	TypeID int
	Type   string
	Count  int
}

// MonthTypeTotal is one month's total for one segment name.
type MonthTypeTotal struct {
	Month int
	Type  string
	Total int
}

// MonthTotal is one month's combined guest total.
type MonthTotal struct {
	Month int
	Total int
}

// HotelTotal is one hotel's guest total for a year.
type HotelTotal struct {
	ID    int
	Name  string
	Total int
}

// ImpactRow is one campaign impact observation per hotel and segment.
type ImpactRow struct {
	Hotel string
	Type  string
	Score float64
}

// RadarDataset is one hotel's series in the campaign impact radar.
type RadarDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// RadarChart is the campaign impact payload.
type RadarChart struct {
	Labels   []string       `json:"labels"`
	Datasets []RadarDataset `json:"datasets"`
}

// PreferenceRow is one segment/room-type preference score.
type PreferenceRow struct {
	Type     string
	RoomType string
	Score    int
}

// BarDataset is one room type's series in the preference chart, carrying
// the chart.js presentation hints the client renders directly.
type BarDataset struct {
	Label           string `json:"label"`
	Data            []int  `json:"data"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	BorderWidth     int    `json:"borderWidth"`
}

// GroupedBar is the room preference payload.
type GroupedBar struct {
	Labels   []string     `json:"labels"`
	Datasets []BarDataset `json:"datasets"`
}

// ProfitabilityRow is one segment's margin and volume.
type ProfitabilityRow struct {
	Type      string  `json:"musteri_tipi"`
	Margin    float64 `json:"kar_marji"`
	Customers int     `json:"toplam_musteri"`
}

// chartPalette colors the grouped bar datasets, cycled in order.
var chartPalette = []string{
	"#0078d4", "#107c10", "#d83b01", "#5B2D91", "#b40000", "#00bcf2", "#004b50", "#ffb900",
}
