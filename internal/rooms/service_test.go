package rooms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	Repository

	counts   []OccupancyCount
	totals   []MonthlyTypeTotal
	stats    []CapacityStats
	margins  []MarginRow
	trend    []TrendPoint
	occYear  int
	occHotel int
}

func (s *stubRepo) MonthlyOccupancyCounts(ctx context.Context, year, hotelID int) ([]OccupancyCount, error) {
	s.occYear = year
	s.occHotel = hotelID
	return s.counts, nil
}

func (s *stubRepo) MonthlyTypeTotals(ctx context.Context, year, hotelID int) ([]MonthlyTypeTotal, error) {
	return s.totals, nil
}

func (s *stubRepo) CapacityAnalysis(ctx context.Context, year, hotelID int) ([]CapacityStats, error) {
	return s.stats, nil
}

func (s *stubRepo) YearlyMargins(ctx context.Context, year, hotelID int) ([]MarginRow, error) {
	return s.margins, nil
}

func (s *stubRepo) TypeTrend(ctx context.Context, roomTypeID int) ([]TrendPoint, error) {
	return s.trend, nil
}

func TestOccupancyCapsRateAtHundred(t *testing.T) {
	repo := &stubRepo{counts: []OccupancyCount{
		{Month: 7, Guests: 120, RoomTypes: 4},
		{Month: 8, Guests: 20, RoomTypes: 4},
		{Month: 9, Guests: 5, RoomTypes: 0},
	}}
	svc := NewService(repo)

	rows, err := svc.Occupancy(context.Background(), 2025, 1)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 100.0, rows[0].Rate, "120 guests over 4 types saturates")
	assert.Equal(t, 50.0, rows[1].Rate)
	assert.Equal(t, 50.0, rows[2].Rate, "zero type count falls back to one")
	assert.Equal(t, 2025, repo.occYear)
	assert.Equal(t, 1, repo.occHotel)
}

func TestOccupancyKeepsPerYearRows(t *testing.T) {
	year := 2024
	repo := &stubRepo{counts: []OccupancyCount{{Month: 3, Year: &year, Guests: 30, RoomTypes: 3}}}
	svc := NewService(repo)

	rows, err := svc.Occupancy(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Year)
	assert.Equal(t, 2024, *rows[0].Year)
	assert.Equal(t, 100.0, rows[0].Rate)
}

func TestMonthlyDistributionBuildsStackedSeries(t *testing.T) {
	repo := &stubRepo{totals: []MonthlyTypeTotal{
		{Month: 1, RoomTypeID: 3, RoomType: "Suit", Total: 12},
		{Month: 1, RoomTypeID: 1, RoomType: "Standart", Total: 40},
		{Month: 7, RoomTypeID: 3, RoomType: "Suit", Total: 25},
		{Month: 13, RoomTypeID: 3, RoomType: "Suit", Total: 99},
	}}
	svc := NewService(repo)

	dist, err := svc.MonthlyDistribution(context.Background(), 2025, 2)
	require.NoError(t, err)

	require.Len(t, dist.Months, 12)
	assert.Equal(t, "Ocak", dist.Months[0])
	assert.Equal(t, "Aralık", dist.Months[11])

	require.Len(t, dist.Datasets, 2)
	assert.Equal(t, "Standart", dist.Datasets[0].RoomType, "series are ordered by room type id")
	assert.Equal(t, 40, dist.Datasets[0].Data[0])
	assert.Equal(t, 12, dist.Datasets[1].Data[0])
	assert.Equal(t, 25, dist.Datasets[1].Data[6])
	assert.Zero(t, dist.Datasets[1].Data[11], "out-of-range months are dropped")
}

func TestMonthlyDistributionNamesUnknownTypes(t *testing.T) {
	repo := &stubRepo{totals: []MonthlyTypeTotal{{Month: 2, RoomTypeID: 9, Total: 5}}}
	svc := NewService(repo)

	dist, err := svc.MonthlyDistribution(context.Background(), 2025, 1)
	require.NoError(t, err)
	require.Len(t, dist.Datasets, 1)
	assert.Equal(t, "Oda Tipi 9", dist.Datasets[0].RoomType)
}

func TestCapacityDecisionFormatsOneDecimal(t *testing.T) {
	repo := &stubRepo{stats: []CapacityStats{
		{RoomType: "Suit", Demand: 300, Preference: 33.333, Margin: 41.0},
		{RoomType: "Standart", Demand: 600, Preference: 66.666, Margin: 0},
	}}
	svc := NewService(repo)

	rows, err := svc.CapacityDecision(context.Background(), 2025, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, CapacityRow{RoomType: "Suit", Preference: "33.3", Margin: "41.0"}, rows[0])
	assert.Equal(t, CapacityRow{RoomType: "Standart", Preference: "66.7", Margin: "0.0"}, rows[1])
}

func TestYearlyMarginsReplaceEmptyNames(t *testing.T) {
	repo := &stubRepo{margins: []MarginRow{{RoomType: "", Total: 18.5}}}
	svc := NewService(repo)

	rows, err := svc.YearlyMargins(context.Background(), 2025, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, MarginRow{RoomType: "-", Total: 18.5}, rows[0])
}
