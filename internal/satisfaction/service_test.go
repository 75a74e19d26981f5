package satisfaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	Repository

	scores []ScoreRow
	stats  []TrendStat
	hotel  CategoryScores
	group  CategoryScores
}

func (s *stubRepo) MonthlyScores(ctx context.Context, year, hotelID int) ([]ScoreRow, error) {
	return s.scores, nil
}

func (s *stubRepo) ReviewTrend(ctx context.Context, hotelID, year int) ([]TrendStat, error) {
	return s.stats, nil
}

func (s *stubRepo) HotelCategoryScores(ctx context.Context, hotelID, year int) (CategoryScores, error) {
	return s.hotel, nil
}

func (s *stubRepo) GroupCategoryScores(ctx context.Context, year int) (CategoryScores, error) {
	return s.group, nil
}

func TestTrendUsesTurkishMonthLabels(t *testing.T) {
	repo := &stubRepo{stats: []TrendStat{
		{Month: 1, Reviews: 42, Average: 4.2},
		{Month: 8, Reviews: 77, Average: 4.6},
		{Month: 13, Reviews: 5, Average: 3.0},
	}}
	svc := NewService(repo)

	rows, err := svc.Trend(context.Background(), 1, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, TrendRow{Month: "Ocak", Reviews: 42, Average: 4.2}, rows[0])
	assert.Equal(t, "Ağustos", rows[1].Month)
	assert.Equal(t, "Ay 13", rows[2].Month, "unknown months keep a numeric label")
}

func TestDetailedAnalysisSpreadsBenchmarkOffsets(t *testing.T) {
	repo := &stubRepo{
		hotel: CategoryScores{Overall: 4.4, Cleanliness: 4.4, Service: 4.4, Location: 4.4, Value: 4.4},
		group: CategoryScores{Overall: 4.0, Cleanliness: 4.0, Service: 4.0, Location: 4.0, Value: 4.0},
	}
	svc := NewService(repo)

	analysis, err := svc.DetailedAnalysis(context.Background(), 1, 2025)
	require.NoError(t, err)

	assert.Equal(t, 4.4, analysis.Hotel.Overall)
	assert.InDelta(t, 3.7, analysis.Group.Overall, 1e-9)
	assert.InDelta(t, 3.8, analysis.Group.Cleanliness, 1e-9)
	assert.InDelta(t, 3.5, analysis.Group.Service, 1e-9)
	assert.InDelta(t, 3.9, analysis.Group.Location, 1e-9)
	assert.InDelta(t, 3.6, analysis.Group.Value, 1e-9)
}

func TestDetailedAnalysisKeepsZeroBenchmark(t *testing.T) {
	svc := NewService(&stubRepo{})

	analysis, err := svc.DetailedAnalysis(context.Background(), 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, CategoryScores{}, analysis.Group, "empty chain data is not offset below zero")
}

func TestMonthlyAverageScoresFillsArray(t *testing.T) {
	repo := &stubRepo{scores: []ScoreRow{
		{Month: 2, Average: 4.1},
		{Month: 12, Average: 3.9},
	}}
	svc := NewService(repo)

	scores, err := svc.MonthlyAverageScores(context.Background(), 2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.1, scores[1])
	assert.Equal(t, 3.9, scores[11])
	assert.Zero(t, scores[0], "months without data stay zero")
}
