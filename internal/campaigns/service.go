package campaigns

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Service shapes the campaign analytics results.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Performance returns the campaign performance rows.
func (s *Service) Performance(ctx context.Context, year, hotelID int) ([]PerformanceRow, error) {
	return s.repo.Performance(ctx, year, hotelID)
}

// MonthlyRevenue returns campaign revenue per launch month.
func (s *Service) MonthlyRevenue(ctx context.Context, year, hotelID int) ([]MonthlyRevenueRow, error) {
	return s.repo.MonthlyRevenue(ctx, year, hotelID)
}

// TypeDistribution returns the discount bucket breakdown.
func (s *Service) TypeDistribution(ctx context.Context, year int) ([]TypeDistributionRow, error) {
	return s.repo.TypeDistribution(ctx, year)
}

// AnalysisTable returns one page of the campaign analysis table with a
// growth comment attached to each row. Count and page rows are fetched
// concurrently.
func (s *Service) AnalysisTable(ctx context.Context, filter TableFilter) (TablePage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 8
	}

	var (
		total int
		rows  []AnalysisRow
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.AnalysisCount(ctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.repo.AnalysisRows(ctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return TablePage{}, err
	}

	data := make([]TableRow, 0, len(rows))
	for _, row := range rows {
		growth := 0.0
		if row.Growth != nil {
			growth = *row.Growth
		}
		data = append(data, TableRow{
			Name:        row.Name,
			Hotel:       row.Hotel,
			Period:      row.Period,
			Discount:    row.Discount,
			PriorGuests: row.PriorGuests,
			PostGuests:  row.PostGuests,
			Growth:      row.Growth,
			Impact:      row.Impact,
			Comment:     growthComment(growth),
		})
	}

	return TablePage{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
	}, nil
}

func growthComment(growth float64) string {
	switch {
	case growth > 20:
		return "Başarılı kampanya"
	case growth >= 5:
		return "Orta düzey etki"
	case growth > 0:
		return "Sınırlı etki"
	default:
		return "Negatif etki"
	}
}
