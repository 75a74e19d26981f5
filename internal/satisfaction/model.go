package satisfaction

// ScoreRow is a monthly satisfaction aggregate. The per-category scores
// mirror the overall average because the source table only carries one
// score per record.
type ScoreRow struct {
	Month       int     `json:"ay"`
	Average     float64 `json:"ortalama_puan"`
	Reviews     int     `json:"degerlendirme_sayisi"`
	Cleanliness float64 `json:"temizlik_puani"`
	Service     float64 `json:"hizmet_puani"`
	Location    float64 `json:"konum_puani"`
	Price       float64 `json:"fiyat_puani"`
}

// HotelScoreRow is one hotel's satisfaction aggregate.
type HotelScoreRow struct {
	Hotel       string  `json:"otel_adi"`
	Average     float64 `json:"ortalama_puan"`
	Reviews     int     `json:"degerlendirme_sayisi"`
	Cleanliness float64 `json:"temizlik_puani"`
	Service     float64 `json:"hizmet_puani"`
	Location    float64 `json:"konum_puani"`
	Price       float64 `json:"fiyat_puani"`
}

// CategoryRow counts reviews per satisfaction bucket.
type CategoryRow struct {
	Category string `json:"kategori"`
	Count    int    `json:"sayi"`
}

// CorrelationPoint pairs a month's score with its review volume for the
// scatter chart.
type CorrelationPoint struct {
	Month   int     `json:"ay"`
	Average float64 `json:"ortalama_puan"`
	Reviews int     `json:"yorum_sayisi"`
}

// TrendStat is a raw monthly review aggregate.
type TrendStat struct {
	Month   int
	Reviews int
	Average float64
}

// TrendRow is a monthly review trend point with the Turkish month label.
type TrendRow struct {
	Month   string  `json:"ay"`
	Reviews int     `json:"yorum_sayisi"`
	Average float64 `json:"ortalama_puan"`
}

// CategoryScores holds the per-category satisfaction averages.
type CategoryScores struct {
	Overall     float64 `json:"genel_puan"`
	Cleanliness float64 `json:"temizlik"`
	Service     float64 `json:"hizmet"`
	Location    float64 `json:"konum"`
	Value       float64 `json:"fiyat_fayda"`
}

// DetailedAnalysis compares one hotel's category scores against the chain
// benchmark.
type DetailedAnalysis struct {
	Hotel CategoryScores `json:"otel"`
	Group CategoryScores `json:"grup"`
}
