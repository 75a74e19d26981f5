package finance

import (
	"context"
	"log/slog"
	"math"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/egelife/insight/internal/advisory"
	"github.com/egelife/insight/internal/platform/cache"
	"github.com/egelife/insight/internal/shared"
)

// CustomerCounts supplies monthly customer totals for the productivity
// report. Implemented by the customers service.
type CustomerCounts interface {
	MonthlyCustomerTotals(ctx context.Context, year, hotelID int) ([12]int, error)
}

// SatisfactionScores supplies monthly satisfaction averages for the
// productivity report. Implemented by the satisfaction service.
type SatisfactionScores interface {
	MonthlyAverageScores(ctx context.Context, year, hotelID int) ([12]float64, error)
}

// SourceError tags a failure with the data source label the productivity
// endpoint reports to the client.
type SourceError struct {
	Label string
	Err   error
}

func (e *SourceError) Error() string { return e.Label + ": " + e.Err.Error() }

func (e *SourceError) Unwrap() error { return e.Err }

// Service shapes financial aggregates into the chart payloads.
type Service struct {
	repo         Repository
	cache        *cache.Cache
	customers    CustomerCounts
	satisfaction SatisfactionScores
	logger       *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, c *cache.Cache, customers CustomerCounts, satisfaction SatisfactionScores, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: c, customers: customers, satisfaction: satisfaction, logger: logger}
}

// YearlyFinancialRow is the USD-converted chart row for chain-wide totals.
type YearlyFinancialRow struct {
	Year    int    `json:"yil"`
	Revenue string `json:"gelir"`
	Cost    string `json:"gider"`
	Profit  string `json:"kar"`
}

// HotelProfitRow is one hotel-year profit point.
type HotelProfitRow struct {
	Hotel  string `json:"otel_adi"`
	Year   int    `json:"yil"`
	Profit string `json:"toplam_kar"`
}

// HotelFinancialsRow is the detailed per-hotel-per-year view.
type HotelFinancialsRow struct {
	Hotel   string `json:"otel_adi"`
	Year    int    `json:"yil"`
	Revenue string `json:"gelir"`
	Cost    string `json:"gider"`
	Profit  string `json:"kar"`
}

// HotelMonthlyRow is one hotel's profit and cost for one month.
type HotelMonthlyRow struct {
	Hotel  string `json:"otel_adi"`
	Month  int    `json:"ay"`
	Year   int    `json:"yil"`
	Profit string `json:"kar"`
	Cost   string `json:"maliyet"`
}

// YearlyFinancials returns the chain totals per year in USD.
func (s *Service) YearlyFinancials(ctx context.Context) ([]YearlyFinancialRow, error) {
	totals, err := s.repo.YearlyTotals(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]YearlyFinancialRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, YearlyFinancialRow{
			Year:    t.Year,
			Revenue: usd(t.Revenue),
			Cost:    usd(t.Cost),
			Profit:  usd(t.Profit),
		})
	}
	return rows, nil
}

// HotelProfitByYear returns the per-hotel profit series in USD.
func (s *Service) HotelProfitByYear(ctx context.Context) ([]HotelProfitRow, error) {
	profits, err := s.repo.HotelProfitByYear(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]HotelProfitRow, 0, len(profits))
	for _, p := range profits {
		rows = append(rows, HotelProfitRow{Hotel: p.Hotel, Year: p.Year, Profit: usd(p.Profit)})
	}
	return rows, nil
}

// HotelFinancialsByYear returns the detailed per-hotel financials in USD.
func (s *Service) HotelFinancialsByYear(ctx context.Context) ([]HotelFinancialsRow, error) {
	fin, err := s.repo.HotelFinancialsByYear(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]HotelFinancialsRow, 0, len(fin))
	for _, f := range fin {
		rows = append(rows, HotelFinancialsRow{
			Hotel:   f.Hotel,
			Year:    f.Year,
			Revenue: usd(f.Revenue),
			Cost:    usd(f.Cost),
			Profit:  usd(f.Profit),
		})
	}
	return rows, nil
}

// HotelMonthlyFinancials returns per-hotel monthly profit and cost in USD.
func (s *Service) HotelMonthlyFinancials(ctx context.Context, year int) ([]HotelMonthlyRow, error) {
	fin, err := s.repo.HotelMonthlyFinancials(ctx, year)
	if err != nil {
		return nil, err
	}
	rows := make([]HotelMonthlyRow, 0, len(fin))
	for _, f := range fin {
		rows = append(rows, HotelMonthlyRow{
			Hotel:  f.Hotel,
			Month:  f.Month,
			Year:   f.Year,
			Profit: usd(f.Profit),
			Cost:   usd(f.Cost),
		})
	}
	return rows, nil
}

// KPISummary loads the dashboard summary for one year. The five underlying
// aggregates are independent and fetched concurrently; the result is
// cached.
func (s *Service) KPISummary(ctx context.Context, year int) (KPI, error) {
	key, err := s.cache.BuildKey(ctx, "finance", "kpi", strconv.Itoa(year))
	if err != nil {
		return KPI{}, err
	}
	var kpi KPI
	err = s.cache.FetchJSON(ctx, key, &kpi, func(ctx context.Context) (any, error) {
		return s.loadKPI(ctx, year)
	})
	return kpi, err
}

func (s *Service) loadKPI(ctx context.Context, year int) (KPI, error) {
	var (
		profit, revenue, cost float64
		best, worst           string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profit, err = s.repo.TotalProfit(gctx, year)
		return err
	})
	g.Go(func() (err error) {
		revenue, err = s.repo.TotalRevenue(gctx, year)
		return err
	})
	g.Go(func() (err error) {
		cost, err = s.repo.TotalCost(gctx, year)
		return err
	})
	g.Go(func() (err error) {
		best, err = s.repo.MostProfitableHotel(gctx, year)
		return err
	})
	g.Go(func() (err error) {
		worst, err = s.repo.LeastProfitableHotel(gctx, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return KPI{}, err
	}
	return KPI{
		Year:         year,
		TotalProfit:  int(math.Round(profit)),
		TotalRevenue: int(math.Round(revenue)),
		TotalCost:    int(math.Round(cost)),
		BestHotel:    best,
		WorstHotel:   worst,
	}, nil
}

// StrategicDecisions runs the dashboard decision rules for the target year
// against the previous year and the per-hotel margins.
func (s *Service) StrategicDecisions(ctx context.Context, year int) ([]advisory.Decision, error) {
	var (
		current, previous KPI
		totals            []HotelTotals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		current, err = s.KPISummary(gctx, year)
		return err
	})
	g.Go(func() (err error) {
		previous, err = s.KPISummary(gctx, year-1)
		return err
	})
	g.Go(func() (err error) {
		totals, err = s.repo.HotelTotals(gctx, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	performances := make([]advisory.HotelPerformance, 0, len(totals))
	for _, t := range totals {
		if t.Revenue <= 0 {
			continue
		}
		performances = append(performances, advisory.HotelPerformance{
			Name:   t.Hotel,
			Margin: t.Profit / t.Revenue * 100,
		})
	}

	return advisory.Strategic(kpiSummary(current), kpiSummary(previous), performances), nil
}

// FinancialSummary exposes the raw totals for the tactical rule engine.
func (s *Service) FinancialSummary(ctx context.Context, year int) (advisory.KPISummary, error) {
	kpi, err := s.KPISummary(ctx, year)
	if err != nil {
		return advisory.KPISummary{}, err
	}
	return kpiSummary(kpi), nil
}

// StaffProductivity combines staff headcounts, customer totals and
// satisfaction averages into the 12-month productivity report. The three
// lookups are independent and gathered concurrently.
func (s *Service) StaffProductivity(ctx context.Context, year, hotelID int) ([]ProductivityRow, error) {
	var (
		staff     []MonthStaff
		customers [12]int
		scores    [12]float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if staff, err = s.repo.MonthlyStaffCounts(gctx, year, hotelID); err != nil {
			return &SourceError{Label: "Veritabanı hatası (Personel)", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if customers, err = s.customers.MonthlyCustomerTotals(gctx, year, hotelID); err != nil {
			return &SourceError{Label: "Veritabanı hatası (Müşteri)", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if scores, err = s.satisfaction.MonthlyAverageScores(gctx, year, hotelID); err != nil {
			return &SourceError{Label: "Veritabanı hatası (Memnuniyet)", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	staffByMonth := make(map[int]int, len(staff))
	for _, m := range staff {
		staffByMonth[m.Month] = m.Staff
	}

	rows := make([]ProductivityRow, 0, 12)
	for month := 1; month <= 12; month++ {
		headcount := staffByMonth[month]
		guests := customers[month-1]

		workload := 0.0
		if headcount > 0 {
			workload = math.Round(float64(guests)/float64(headcount)*10) / 10
		}

		var satisfaction *float64
		if score := scores[month-1]; score > 0 {
			rounded := math.Round(score*10) / 10
			satisfaction = &rounded
		}

		rows = append(rows, ProductivityRow{
			Month:        shared.MonthName(month),
			Customers:    guests,
			Staff:        headcount,
			Workload:     workload,
			Satisfaction: satisfaction,
		})
	}
	return rows, nil
}

func kpiSummary(k KPI) advisory.KPISummary {
	return advisory.KPISummary{
		Year:        k.Year,
		TotalProfit: float64(k.TotalProfit),
		TotalGross:  float64(k.TotalRevenue),
		TotalCost:   float64(k.TotalCost),
	}
}

func usd(v float64) string {
	return strconv.FormatFloat(v*usdRate, 'f', 2, 64)
}
