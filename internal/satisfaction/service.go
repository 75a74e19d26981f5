package satisfaction

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/egelife/insight/internal/shared"
)

// Benchmark offsets subtracted from the chain average per category when
// building the detailed comparison.
const (
	offsetOverall     = 0.3
	offsetCleanliness = 0.2
	offsetService     = 0.5
	offsetLocation    = 0.1
	offsetValue       = 0.4
)

// Service shapes the satisfaction query results.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Scores returns the monthly satisfaction series.
func (s *Service) Scores(ctx context.Context, year, hotelID int) ([]ScoreRow, error) {
	return s.repo.MonthlyScores(ctx, year, hotelID)
}

// HotelScores returns per-hotel averages, best first.
func (s *Service) HotelScores(ctx context.Context, year int) ([]HotelScoreRow, error) {
	return s.repo.HotelScores(ctx, year)
}

// Categories returns the score-band distribution.
func (s *Service) Categories(ctx context.Context, year, hotelID int) ([]CategoryRow, error) {
	return s.repo.CategoryDistribution(ctx, year, hotelID)
}

// Correlation returns the score/volume scatter points.
func (s *Service) Correlation(ctx context.Context, hotelID, year int) ([]CorrelationPoint, error) {
	return s.repo.Correlation(ctx, hotelID, year)
}

// Trend returns the monthly review trend with Turkish month labels.
func (s *Service) Trend(ctx context.Context, hotelID, year int) ([]TrendRow, error) {
	stats, err := s.repo.ReviewTrend(ctx, hotelID, year)
	if err != nil {
		return nil, err
	}

	rows := make([]TrendRow, 0, len(stats))
	for _, st := range stats {
		label := shared.MonthName(st.Month)
		if label == "" {
			label = "Ay " + strconv.Itoa(st.Month)
		}
		rows = append(rows, TrendRow{Month: label, Reviews: st.Reviews, Average: st.Average})
	}
	return rows, nil
}

// DetailedAnalysis compares one hotel against a synthetic chain benchmark.
// The benchmark spreads the chain average across categories with fixed
// offsets; a zero chain average stays zero.
func (s *Service) DetailedAnalysis(ctx context.Context, hotelID, year int) (DetailedAnalysis, error) {
	var hotel, group CategoryScores

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hotel, err = s.repo.HotelCategoryScores(gctx, hotelID, year)
		return err
	})
	g.Go(func() error {
		var err error
		group, err = s.repo.GroupCategoryScores(gctx, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return DetailedAnalysis{}, err
	}

	if group.Overall > 0 {
		base := group.Overall
		group = CategoryScores{
			Overall:     base - offsetOverall,
			Cleanliness: base - offsetCleanliness,
			Service:     base - offsetService,
			Location:    base - offsetLocation,
			Value:       base - offsetValue,
		}
	}
	return DetailedAnalysis{Hotel: hotel, Group: group}, nil
}

// MonthlyAverageScores maps the monthly averages onto a twelve-slot array,
// index 0 = January. Months without data stay zero.
func (s *Service) MonthlyAverageScores(ctx context.Context, year, hotelID int) ([12]float64, error) {
	var scores [12]float64
	rows, err := s.repo.MonthlyScores(ctx, year, hotelID)
	if err != nil {
		return scores, err
	}
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			scores[row.Month-1] = row.Average
		}
	}
	return scores, nil
}

// AverageScore returns the overall satisfaction average.
func (s *Service) AverageScore(ctx context.Context, year, hotelID int) (float64, error) {
	return s.repo.AverageScore(ctx, year, hotelID)
}
