package rooms

// OccupancyCount is a raw monthly aggregate from the room analysis table.
// Year is only populated when no year filter was applied.
type OccupancyCount struct {
	Month     int
	Year      *int
	Guests    int
	RoomTypes int
}

// OccupancyRow is a monthly occupancy point. The rate is a normalized
// guests-per-room-type score capped at 100.
type OccupancyRow struct {
	Month  int     `json:"ay"`
	Year   *int    `json:"yil"`
	Guests int     `json:"toplam_musteri"`
	Rate   float64 `json:"doluluk_orani"`
}

// TypeDistributionRow counts reservations per room type across hotels.
type TypeDistributionRow struct {
	RoomType     string `json:"oda_tipi_adi"`
	Reservations int    `json:"rezervasyon_sayisi"`
	Hotels       int    `json:"otel_sayisi"`
}

// HotelOccupancyRow is the average occupancy score of one hotel.
type HotelOccupancyRow struct {
	Hotel     string  `json:"otel_adi"`
	Guests    int     `json:"toplam_musteri"`
	RoomTypes int     `json:"oda_tipi_sayisi"`
	Rate      float64 `json:"doluluk_orani"`
}

// MarginRow is a room type with its yearly profit margin percentage.
type MarginRow struct {
	RoomType string  `json:"oda_tipi_adi"`
	Total    float64 `json:"toplam"`
}

// MonthlyTypeTotal is a raw month/room-type guest count.
type MonthlyTypeTotal struct {
	Month      int
	RoomTypeID int
	RoomType   string
	Total      int
}

// StackedSeries is one room type's twelve-month series for the stacked bar.
type StackedSeries struct {
	RoomTypeID int    `json:"oda_tipi_id"`
	RoomType   string `json:"oda_tipi_adi"`
	Data       []int  `json:"data"`
}

// MonthlyDistribution is the stacked-bar payload for one year and hotel.
type MonthlyDistribution struct {
	Months   []string        `json:"aylar"`
	Datasets []StackedSeries `json:"datasets"`
}

// TrendPoint is a yearly guest total for one room type.
type TrendPoint struct {
	Year  int `json:"yil"`
	Total int `json:"toplam"`
}

// CapacityStats is the raw capacity/profitability aggregate per room type.
type CapacityStats struct {
	RoomType   string
	Demand     int
	Preference float64
	Margin     float64
}

// CapacityRow is the capacity decision row with one-decimal percentages
// rendered as strings.
type CapacityRow struct {
	RoomType   string `json:"oda_tipi"`
	Preference string `json:"tercih_orani"`
	Margin     string `json:"kar_orani"`
}
