package finance

// usdRate converts stored lira aggregates to the USD figures the charts
// display. Fixed business constant, matching the deployed dashboard.
const usdRate = 0.03

// YearlyTotals is one year's chain-wide revenue, cost and profit. Profit is
// stored independently of revenue and cost and is never recomputed here.
type YearlyTotals struct {
	Year    int
	Revenue float64
	Cost    float64
	Profit  float64
}

// HotelYearProfit is a hotel's total profit for one year.
type HotelYearProfit struct {
	Hotel  string
	Year   int
	Profit float64
}

// HotelYearFinancials adds revenue and cost to the per-hotel-per-year view.
type HotelYearFinancials struct {
	Hotel   string
	Year    int
	Revenue float64
	Cost    float64
	Profit  float64
}

// HotelMonthFinancials is one hotel's profit and cost for one month.
type HotelMonthFinancials struct {
	Hotel  string
	Month  int
	Year   int
	Profit float64
	Cost   float64
}

// HotelTotals carries the per-hotel sums feeding the strategic decision
// rules.
type HotelTotals struct {
	Hotel   string
	Revenue float64
	Cost    float64
	Profit  float64
}

// MonthStaff is the staff headcount for one month.
type MonthStaff struct {
	Month int
	Staff int
}

// KPI is the dashboard summary for one year.
type KPI struct {
	Year         int    `json:"yil"`
	TotalProfit  int    `json:"toplamKar"`
	TotalRevenue int    `json:"toplamGelir"`
	TotalCost    int    `json:"toplamMaliyet"`
	BestHotel    string `json:"enKarliOtel"`
	WorstHotel   string `json:"enAzKarliOtel"`
}

// ProductivityRow is one month of the staff-productivity report.
type ProductivityRow struct {
	Month        string   `json:"ay"`
	Customers    int      `json:"musteri_sayisi"`
	Staff        int      `json:"personel_sayisi"`
	Workload     float64  `json:"is_yuku"`
	Satisfaction *float64 `json:"memnuniyet_puani"`
}
