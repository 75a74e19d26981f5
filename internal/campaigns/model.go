package campaigns

import "time"

// PerformanceRow compares a campaign's revenue against its pre-campaign
// baseline.
type PerformanceRow struct {
	Name         string    `json:"kampanya_adi"`
	Start        time.Time `json:"baslangic_tarihi"`
	End          time.Time `json:"bitis_tarihi"`
	Discount     float64   `json:"indirim_orani"`
	Reservations int       `json:"rezervasyon_sayisi"`
	Revenue      float64   `json:"toplam_gelir"`
	PriorRevenue float64   `json:"onceki_gelir"`
	RevenueGain  float64   `json:"gelir_artisi"`
}

// MonthlyRevenueRow aggregates campaign revenue per launch month.
type MonthlyRevenueRow struct {
	Month        int     `json:"ay"`
	Campaigns    int     `json:"kampanya_sayisi"`
	Reservations int     `json:"rezervasyon_sayisi"`
	Revenue      float64 `json:"toplam_gelir"`
}

// TypeDistributionRow groups campaigns into discount buckets.
type TypeDistributionRow struct {
	Type         string  `json:"kampanya_turu"`
	Campaigns    int     `json:"kampanya_sayisi"`
	Reservations int     `json:"rezervasyon_sayisi"`
	Revenue      float64 `json:"toplam_gelir"`
}

// AnalysisRow is a raw campaign analysis record. Growth is nil when the
// pre-campaign guest count was zero.
type AnalysisRow struct {
	Name        string
	Hotel       string
	Period      string
	Discount    float64
	PriorGuests int
	PostGuests  int
	Growth      *float64
	Impact      string
}

// TableRow is one row of the paginated analysis table.
type TableRow struct {
	Name        string   `json:"kampanya_adi"`
	Hotel       string   `json:"otel_adi"`
	Period      string   `json:"donem"`
	Discount    float64  `json:"indirim_orani"`
	PriorGuests int      `json:"onceki_musteri_sayisi"`
	PostGuests  int      `json:"sonraki_musteri_sayisi"`
	Growth      *float64 `json:"artis_yuzde"`
	Impact      string   `json:"etki_seviyesi"`
	Comment     string   `json:"yorum"`
}

// TableFilter narrows the analysis table. Zero values mean no filter.
type TableFilter struct {
	Name    string
	Impact  string
	HotelID int
	Page    int
	Limit   int
}

// TablePage is one page of the analysis table.
type TablePage struct {
	Data       []TableRow `json:"data"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}
