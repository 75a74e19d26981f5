package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	hotels []Hotel
	years  []int
	calls  int
}

func (s *stubRepo) Hotels(context.Context) ([]Hotel, error) {
	s.calls++
	return s.hotels, nil
}

func (s *stubRepo) FirstHotel(context.Context) (Hotel, error) {
	if len(s.hotels) == 0 {
		return Hotel{}, nil
	}
	return s.hotels[0], nil
}

func (s *stubRepo) Years(context.Context) ([]int, error) {
	s.calls++
	return s.years, nil
}

func (s *stubRepo) RoomTypes(context.Context) ([]RoomType, error) {
	return nil, nil
}

func TestLatestYearDefaultsWhenEmpty(t *testing.T) {
	svc := NewService(&stubRepo{}, nil)
	year, err := svc.LatestYear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultYear, year)
}

func TestLatestYearPicksNewest(t *testing.T) {
	svc := NewService(&stubRepo{years: []int{2025, 2024, 2023}}, nil)
	year, err := svc.LatestYear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
}

func TestHotelsPassThroughWithoutCache(t *testing.T) {
	repo := &stubRepo{hotels: []Hotel{{ID: 1, Name: "EgeLife Bodrum"}}}
	svc := NewService(repo, nil)

	hotels, err := svc.Hotels(context.Background())
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, "EgeLife Bodrum", hotels[0].Name)
}
