package rooms

import (
	"context"
	"sort"
	"strconv"

	"github.com/egelife/insight/internal/shared"
)

// Service shapes the room analytics query results into chart payloads.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Occupancy returns the monthly occupancy series. The rate normalizes
// guests against the distinct room type count and caps at 100.
func (s *Service) Occupancy(ctx context.Context, year, hotelID int) ([]OccupancyRow, error) {
	counts, err := s.repo.MonthlyOccupancyCounts(ctx, year, hotelID)
	if err != nil {
		return nil, err
	}

	rows := make([]OccupancyRow, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, OccupancyRow{
			Month:  c.Month,
			Year:   c.Year,
			Guests: c.Guests,
			Rate:   occupancyRate(c.Guests, c.RoomTypes),
		})
	}
	return rows, nil
}

func occupancyRate(guests, roomTypes int) float64 {
	if roomTypes < 1 {
		roomTypes = 1
	}
	rate := float64(guests) / float64(roomTypes) * 10
	if rate > 100 {
		return 100
	}
	return rate
}

// TypeDistribution returns reservation counts per room type.
func (s *Service) TypeDistribution(ctx context.Context, year, hotelID int) ([]TypeDistributionRow, error) {
	return s.repo.TypeDistribution(ctx, year, hotelID)
}

// HotelOccupancy returns the average occupancy score per hotel.
func (s *Service) HotelOccupancy(ctx context.Context, year int) ([]HotelOccupancyRow, error) {
	return s.repo.HotelOccupancy(ctx, year)
}

// YearlyMargins returns the per-room-type profit margins for the bar chart.
func (s *Service) YearlyMargins(ctx context.Context, year, hotelID int) ([]MarginRow, error) {
	rows, err := s.repo.YearlyMargins(ctx, year, hotelID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].RoomType == "" {
			rows[i].RoomType = "-"
		}
	}
	return rows, nil
}

// MonthlyDistribution builds the stacked-bar payload: twelve Turkish month
// labels and one zero-filled series per room type, ordered by type id.
func (s *Service) MonthlyDistribution(ctx context.Context, year, hotelID int) (MonthlyDistribution, error) {
	totals, err := s.repo.MonthlyTypeTotals(ctx, year, hotelID)
	if err != nil {
		return MonthlyDistribution{}, err
	}

	series := map[int]*StackedSeries{}
	for _, t := range totals {
		entry, ok := series[t.RoomTypeID]
		if !ok {
			name := t.RoomType
			if name == "" {
				name = "Oda Tipi " + strconv.Itoa(t.RoomTypeID)
			}
			entry = &StackedSeries{RoomTypeID: t.RoomTypeID, RoomType: name, Data: make([]int, 12)}
			series[t.RoomTypeID] = entry
		}
		if t.Month >= 1 && t.Month <= 12 {
			entry.Data[t.Month-1] = t.Total
		}
	}

	ids := make([]int, 0, len(series))
	for id := range series {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	datasets := make([]StackedSeries, 0, len(ids))
	for _, id := range ids {
		datasets = append(datasets, *series[id])
	}
	return MonthlyDistribution{Months: shared.MonthNames[:], Datasets: datasets}, nil
}

// TypeTrend returns the yearly guest totals of one room type.
func (s *Service) TypeTrend(ctx context.Context, roomTypeID int) ([]TrendPoint, error) {
	return s.repo.TypeTrend(ctx, roomTypeID)
}

// CapacityDecision formats the capacity/profitability analysis with
// one-decimal percentage strings, preference share descending.
func (s *Service) CapacityDecision(ctx context.Context, year, hotelID int) ([]CapacityRow, error) {
	stats, err := s.repo.CapacityAnalysis(ctx, year, hotelID)
	if err != nil {
		return nil, err
	}

	rows := make([]CapacityRow, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, CapacityRow{
			RoomType:   st.RoomType,
			Preference: strconv.FormatFloat(st.Preference, 'f', 1, 64),
			Margin:     strconv.FormatFloat(st.Margin, 'f', 1, 64),
		})
	}
	return rows, nil
}
