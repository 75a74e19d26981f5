package catalog

import (
	"context"

	"github.com/egelife/insight/internal/platform/cache"
)

// Service exposes cached reference data to pages and report handlers.
type Service struct {
	repo  Repository
	cache *cache.Cache
}

// NewService constructs a Service.
func NewService(repo Repository, c *cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

// Hotels returns the hotel list.
func (s *Service) Hotels(ctx context.Context) ([]Hotel, error) {
	key, err := s.cache.BuildKey(ctx, "catalog", "hotels")
	if err != nil {
		return nil, err
	}
	var hotels []Hotel
	err = s.cache.FetchJSON(ctx, key, &hotels, func(ctx context.Context) (any, error) {
		return s.repo.Hotels(ctx)
	})
	return hotels, err
}

// FirstHotel returns the default hotel selection for report pages.
func (s *Service) FirstHotel(ctx context.Context) (Hotel, error) {
	return s.repo.FirstHotel(ctx)
}

// Years returns the known statistic years, newest first.
func (s *Service) Years(ctx context.Context) ([]int, error) {
	key, err := s.cache.BuildKey(ctx, "catalog", "years")
	if err != nil {
		return nil, err
	}
	var years []int
	err = s.cache.FetchJSON(ctx, key, &years, func(ctx context.Context) (any, error) {
		return s.repo.Years(ctx)
	})
	return years, err
}

// LatestYear returns the newest statistic year, or DefaultYear when the
// store is empty.
func (s *Service) LatestYear(ctx context.Context) (int, error) {
	years, err := s.Years(ctx)
	if err != nil {
		return 0, err
	}
	if len(years) == 0 {
		return DefaultYear, nil
	}
	return years[0], nil
}

// RoomTypes returns the room-type catalog.
func (s *Service) RoomTypes(ctx context.Context) ([]RoomType, error) {
	key, err := s.cache.BuildKey(ctx, "catalog", "room_types")
	if err != nil {
		return nil, err
	}
	var types []RoomType
	err = s.cache.FetchJSON(ctx, key, &types, func(ctx context.Context) (any, error) {
		return s.repo.RoomTypes(ctx)
	})
	return types, err
}
