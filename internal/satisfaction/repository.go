package satisfaction

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/egelife/insight/internal/platform/source"
)

// Repository runs the satisfaction queries.
type Repository interface {
	MonthlyScores(ctx context.Context, year, hotelID int) ([]ScoreRow, error)
	HotelScores(ctx context.Context, year int) ([]HotelScoreRow, error)
	CategoryDistribution(ctx context.Context, year, hotelID int) ([]CategoryRow, error)
	Correlation(ctx context.Context, hotelID, year int) ([]CorrelationPoint, error)
	ReviewTrend(ctx context.Context, hotelID, year int) ([]TrendStat, error)
	HotelCategoryScores(ctx context.Context, hotelID, year int) (CategoryScores, error)
	GroupCategoryScores(ctx context.Context, year int) (CategoryScores, error)
	AverageScore(ctx context.Context, year, hotelID int) (float64, error)
}

// PGRepository implements Repository against PostgreSQL.
type PGRepository struct {
	pool    *pgxpool.Pool
	cascade *source.Cascade
}

var _ Repository = (*PGRepository)(nil)

// NewPGRepository constructs a PGRepository.
func NewPGRepository(pool *pgxpool.Pool, cascade *source.Cascade) *PGRepository {
	return &PGRepository{pool: pool, cascade: cascade}
}

// MonthlyScores averages the satisfaction score per month. The category
// columns repeat the overall average, the finest grain the table stores.
func (r *PGRepository) MonthlyScores(ctx context.Context, year, hotelID int) ([]ScoreRow, error) {
	sql := `
		SELECT EXTRACT(MONTH FROM m.tarih)::int AS ay,
		       COALESCE(AVG(m.ortalama_puan), 0),
		       COALESCE(SUM(m.yorum_sayisi), 0)
		FROM memnuniyet m
		WHERE 1=1`
	args := []any{}
	if year > 0 {
		args = append(args, year)
		sql += clause(` AND EXTRACT(YEAR FROM m.tarih) = `, len(args))
	}
	if hotelID > 0 {
		args = append(args, hotelID)
		sql += clause(` AND m.otel_id = `, len(args))
	}
	sql += ` GROUP BY ay ORDER BY ay ASC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ScoreRow, 0)
	for rows.Next() {
		var s ScoreRow
		if err := rows.Scan(&s.Month, &s.Average, &s.Reviews); err != nil {
			return nil, err
		}
		s.Cleanliness, s.Service, s.Location, s.Price = s.Average, s.Average, s.Average, s.Average
		result = append(result, s)
	}
	return result, rows.Err()
}

// HotelScores averages satisfaction per hotel, best first.
func (r *PGRepository) HotelScores(ctx context.Context, year int) ([]HotelScoreRow, error) {
	sql := `
		SELECT o.otel_adi,
		       COALESCE(AVG(m.ortalama_puan), 0) AS ortalama_puan,
		       COALESCE(SUM(m.yorum_sayisi), 0)
		FROM memnuniyet m
		INNER JOIN oteller o ON m.otel_id = o.otel_id
		WHERE 1=1`
	args := []any{}
	if year > 0 {
		args = append(args, year)
		sql += clause(` AND EXTRACT(YEAR FROM m.tarih) = `, len(args))
	}
	sql += ` GROUP BY o.otel_id, o.otel_adi ORDER BY ortalama_puan DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]HotelScoreRow, 0)
	for rows.Next() {
		var h HotelScoreRow
		if err := rows.Scan(&h.Hotel, &h.Average, &h.Reviews); err != nil {
			return nil, err
		}
		h.Cleanliness, h.Service, h.Location, h.Price = h.Average, h.Average, h.Average, h.Average
		result = append(result, h)
	}
	return result, rows.Err()
}

// CategoryDistribution buckets review volume by score band, most satisfied
// first.
func (r *PGRepository) CategoryDistribution(ctx context.Context, year, hotelID int) ([]CategoryRow, error) {
	sql := `
		SELECT CASE
		           WHEN m.ortalama_puan >= 4.5 THEN 'Çok Memnun'
		           WHEN m.ortalama_puan >= 3.5 THEN 'Memnun'
		           WHEN m.ortalama_puan >= 2.5 THEN 'Orta'
		           WHEN m.ortalama_puan >= 1.5 THEN 'Memnun Değil'
		           ELSE 'Çok Memnun Değil'
		       END AS kategori,
		       COALESCE(SUM(m.yorum_sayisi), 0)
		FROM memnuniyet m
		WHERE 1=1`
	args := []any{}
	if year > 0 {
		args = append(args, year)
		sql += clause(` AND EXTRACT(YEAR FROM m.tarih) = `, len(args))
	}
	if hotelID > 0 {
		args = append(args, hotelID)
		sql += clause(` AND m.otel_id = `, len(args))
	}
	sql += `
		GROUP BY kategori
		ORDER BY CASE kategori
		    WHEN 'Çok Memnun' THEN 1
		    WHEN 'Memnun' THEN 2
		    WHEN 'Orta' THEN 3
		    WHEN 'Memnun Değil' THEN 4
		    WHEN 'Çok Memnun Değil' THEN 5
		END`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]CategoryRow, 0)
	for rows.Next() {
		var c CategoryRow
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// Correlation returns the month/score/volume points for one hotel and year
// in date order.
func (r *PGRepository) Correlation(ctx context.Context, hotelID, year int) ([]CorrelationPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(MONTH FROM tarih)::int,
		       ortalama_puan,
		       yorum_sayisi
		FROM memnuniyet
		WHERE otel_id = $1 AND EXTRACT(YEAR FROM tarih) = $2
		ORDER BY tarih`, hotelID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]CorrelationPoint, 0)
	for rows.Next() {
		var p CorrelationPoint
		if err := rows.Scan(&p.Month, &p.Average, &p.Reviews); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// ReviewTrend reads monthly review counts and averages, preferring the
// per-review table and falling back to the monthly satisfaction table when
// it is absent.
func (r *PGRepository) ReviewTrend(ctx context.Context, hotelID, year int) ([]TrendStat, error) {
	var stats []TrendStat

	collect := func(sql string) func(ctx context.Context) (int, error) {
		return func(ctx context.Context) (int, error) {
			rows, err := r.pool.Query(ctx, sql, hotelID, year)
			if err != nil {
				return 0, err
			}
			defer rows.Close()

			found := make([]TrendStat, 0)
			for rows.Next() {
				var t TrendStat
				if err := rows.Scan(&t.Month, &t.Reviews, &t.Average); err != nil {
					return 0, err
				}
				found = append(found, t)
			}
			if err := rows.Err(); err != nil {
				return 0, err
			}
			stats = found
			return len(found), nil
		}
	}

	err := r.cascade.Run(ctx, "satisfaction.review_trend",
		source.Strategy{
			Name: "musteri_yorumlari",
			Run: collect(`
				SELECT EXTRACT(MONTH FROM tarih)::int AS ay_num,
				       COUNT(*),
				       COALESCE(AVG(puan), 0)
				FROM musteri_yorumlari
				WHERE otel_id = $1 AND EXTRACT(YEAR FROM tarih) = $2
				GROUP BY ay_num
				ORDER BY ay_num ASC`),
		},
		source.Strategy{
			Name: "memnuniyet",
			Run: collect(`
				SELECT EXTRACT(MONTH FROM tarih)::int AS ay_num,
				       COALESCE(SUM(yorum_sayisi), 0),
				       COALESCE(AVG(ortalama_puan), 0)
				FROM memnuniyet
				WHERE otel_id = $1 AND EXTRACT(YEAR FROM tarih) = $2
				GROUP BY ay_num
				ORDER BY ay_num ASC`),
		},
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// HotelCategoryScores averages one hotel's scores for a year. Every
// category repeats the overall average.
func (r *PGRepository) HotelCategoryScores(ctx context.Context, hotelID, year int) (CategoryScores, error) {
	var overall float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(ortalama_puan), 0)
		FROM memnuniyet
		WHERE otel_id = $1 AND EXTRACT(YEAR FROM tarih) = $2`, hotelID, year).Scan(&overall)
	if err != nil {
		return CategoryScores{}, err
	}
	return uniformScores(overall), nil
}

// GroupCategoryScores averages the whole chain's scores for a year.
func (r *PGRepository) GroupCategoryScores(ctx context.Context, year int) (CategoryScores, error) {
	var overall float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(ortalama_puan), 0)
		FROM memnuniyet
		WHERE EXTRACT(YEAR FROM tarih) = $1`, year).Scan(&overall)
	if err != nil {
		return CategoryScores{}, err
	}
	return uniformScores(overall), nil
}

// AverageScore averages the satisfaction score, optionally filtered by
// year and hotel.
func (r *PGRepository) AverageScore(ctx context.Context, year, hotelID int) (float64, error) {
	sql := `SELECT COALESCE(AVG(ortalama_puan), 0) FROM memnuniyet WHERE 1=1`
	args := []any{}
	if year > 0 {
		args = append(args, year)
		sql += clause(` AND EXTRACT(YEAR FROM tarih) = `, len(args))
	}
	if hotelID > 0 {
		args = append(args, hotelID)
		sql += clause(` AND otel_id = `, len(args))
	}

	var avg float64
	err := r.pool.QueryRow(ctx, sql, args...).Scan(&avg)
	return avg, err
}

func uniformScores(overall float64) CategoryScores {
	return CategoryScores{
		Overall:     overall,
		Cleanliness: overall,
		Service:     overall,
		Location:    overall,
		Value:       overall,
	}
}

func clause(prefix string, n int) string {
	return prefix + "$" + strconv.Itoa(n)
}
