package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/egelife/insight/internal/shared"
)

// Repository loads reference data.
type Repository interface {
	Hotels(ctx context.Context) ([]Hotel, error)
	FirstHotel(ctx context.Context) (Hotel, error)
	Years(ctx context.Context) ([]int, error)
	RoomTypes(ctx context.Context) ([]RoomType, error)
}

// PGRepository implements Repository against PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PGRepository)(nil)

// NewPGRepository constructs a PGRepository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Hotels returns every hotel ordered by display name.
func (r *PGRepository) Hotels(ctx context.Context) ([]Hotel, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT otel_id, otel_adi, COALESCE(toplam_oda_sayisi, 0)
		FROM oteller
		ORDER BY otel_adi ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hotels := make([]Hotel, 0)
	for rows.Next() {
		var h Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.RoomCount); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

// FirstHotel returns the hotel with the lowest identifier, the page default.
func (r *PGRepository) FirstHotel(ctx context.Context) (Hotel, error) {
	var h Hotel
	err := r.pool.QueryRow(ctx, `
		SELECT otel_id, otel_adi, COALESCE(toplam_oda_sayisi, 0)
		FROM oteller
		ORDER BY otel_id ASC
		LIMIT 1`).Scan(&h.ID, &h.Name, &h.RoomCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return Hotel{}, shared.ErrNotFound
	}
	return h, err
}

// Years returns the distinct statistic years, newest first.
func (r *PGRepository) Years(ctx context.Context) ([]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT yil
		FROM aylik_istatistik
		ORDER BY yil DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := make([]int, 0)
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// RoomTypes returns the room-type catalog alphabetically.
func (r *PGRepository) RoomTypes(ctx context.Context) ([]RoomType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT oda_tipi_id, oda_tipi_adi
		FROM oda_tipleri
		ORDER BY oda_tipi_adi ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]RoomType, 0)
	for rows.Next() {
		var rt RoomType
		if err := rows.Scan(&rt.ID, &rt.Name); err != nil {
			return nil, err
		}
		types = append(types, rt)
	}
	return types, rows.Err()
}
