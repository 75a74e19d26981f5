package rooms

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the room analytics queries.
type Repository interface {
	MonthlyOccupancyCounts(ctx context.Context, year, hotelID int) ([]OccupancyCount, error)
	TypeDistribution(ctx context.Context, year, hotelID int) ([]TypeDistributionRow, error)
	HotelOccupancy(ctx context.Context, year int) ([]HotelOccupancyRow, error)
	YearlyMargins(ctx context.Context, year, hotelID int) ([]MarginRow, error)
	MonthlyTypeTotals(ctx context.Context, year, hotelID int) ([]MonthlyTypeTotal, error)
	TypeTrend(ctx context.Context, roomTypeID int) ([]TrendPoint, error)
	CapacityAnalysis(ctx context.Context, year, hotelID int) ([]CapacityStats, error)
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

// MonthlyOccupancyCounts sums guests and counts distinct room types per
// month. Year 0 keeps every year and reports it per row; hotelID 0 keeps
// every hotel.
func (r *PGRepository) MonthlyOccupancyCounts(ctx context.Context, year, hotelID int) ([]OccupancyCount, error) {
	sql := `
		SELECT oa.ay,
		       COALESCE(SUM(oa.musteri_sayisi), 0),
		       COUNT(DISTINCT oa.oda_tipi_id)
		FROM oda_analizi oa
		WHERE 1=1`
	group := ` GROUP BY oa.ay ORDER BY oa.ay ASC`
	args := []any{}
	if year == 0 {
		sql = `
		SELECT oa.ay, oa.yil,
		       COALESCE(SUM(oa.musteri_sayisi), 0),
		       COUNT(DISTINCT oa.oda_tipi_id)
		FROM oda_analizi oa
		WHERE 1=1`
		group = ` GROUP BY oa.yil, oa.ay ORDER BY oa.yil ASC, oa.ay ASC`
	} else {
		args = append(args, year)
		sql += ` AND oa.yil = $1`
	}
	if hotelID > 0 {
		args = append(args, hotelID)
		sql += placeholder(` AND oa.otel_id = `, len(args))
	}

	rows, err := r.pool.Query(ctx, sql+group, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]OccupancyCount, 0)
	for rows.Next() {
		var c OccupancyCount
		var scanErr error
		if year == 0 {
			var y int
			scanErr = rows.Scan(&c.Month, &y, &c.Guests, &c.RoomTypes)
			c.Year = &y
		} else {
			scanErr = rows.Scan(&c.Month, &c.Guests, &c.RoomTypes)
		}
		if scanErr != nil {
			return nil, scanErr
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// TypeDistribution counts reservations per room type, busiest first.
func (r *PGRepository) TypeDistribution(ctx context.Context, year, hotelID int) ([]TypeDistributionRow, error) {
	sql := `
		SELECT ot.oda_tipi_adi,
		       COALESCE(SUM(oa.musteri_sayisi), 0),
		       COUNT(DISTINCT oa.otel_id)
		FROM oda_analizi oa
		INNER JOIN oda_tipleri ot ON oa.oda_tipi_id = ot.oda_tipi_id
		WHERE 1=1`
	args := []any{}
	if year > 0 {
		args = append(args, year)
		sql += placeholder(` AND oa.yil = `, len(args))
	}
	if hotelID > 0 {
		args = append(args, hotelID)
		sql += placeholder(` AND oa.otel_id = `, len(args))
	}
	sql += ` GROUP BY ot.oda_tipi_id, ot.oda_tipi_adi ORDER BY 2 DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]TypeDistributionRow, 0)
	for rows.Next() {
		var d TypeDistributionRow
		if err := rows.Scan(&d.RoomType, &d.Reservations, &d.Hotels); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// HotelOccupancy returns the average occupancy score per hotel, highest
// first. Year 0 aggregates over all years.
func (r *PGRepository) HotelOccupancy(ctx context.Context, year int) ([]HotelOccupancyRow, error) {
	sql := `
		SELECT o.otel_adi,
		       COALESCE(SUM(oa.musteri_sayisi), 0) AS toplam_musteri,
		       COUNT(DISTINCT oa.oda_tipi_id) AS oda_tipi_sayisi,
		       ROUND(COALESCE(SUM(oa.musteri_sayisi), 0)::numeric
		             / GREATEST(COUNT(DISTINCT oa.oda_tipi_id), 1) * 10, 2) AS doluluk_orani
		FROM oda_analizi oa
		INNER JOIN oteller o ON oa.otel_id = o.otel_id`
	args := []any{}
	if year > 0 {
		sql += ` WHERE oa.yil = $1`
		args = append(args, year)
	}
	sql += ` GROUP BY o.otel_id, o.otel_adi ORDER BY doluluk_orani DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]HotelOccupancyRow, 0)
	for rows.Next() {
		var h HotelOccupancyRow
		if err := rows.Scan(&h.Hotel, &h.Guests, &h.RoomTypes, &h.Rate); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

// yearlyMarginsSQL deduplicates in a subquery so the outer ORDER BY
// random() stays legal; Postgres rejects DISTINCT with an ORDER BY
// expression outside the select list (42P10).
const yearlyMarginsSQL = `
	SELECT oda_tipi_adi, kar_marji
	FROM (
		SELECT DISTINCT ot.oda_tipi_adi, kv.kar_marji
		FROM oda_karlilik_verileri kv
		JOIN oda_tipleri ot ON ot.oda_tipi_id = kv.oda_tipi_id
		WHERE kv.yil = $1 AND kv.otel_id = $2
	) marjlar
	ORDER BY random()`

// YearlyMargins returns the profit margin per room type for one hotel and
// year. The random order is part of the chart contract and is kept.
func (r *PGRepository) YearlyMargins(ctx context.Context, year, hotelID int) ([]MarginRow, error) {
	rows, err := r.pool.Query(ctx, yearlyMarginsSQL, year, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]MarginRow, 0)
	for rows.Next() {
		var m MarginRow
		if err := rows.Scan(&m.RoomType, &m.Total); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// MonthlyTypeTotals sums guests per month and room type for one hotel and
// year, month ascending.
func (r *PGRepository) MonthlyTypeTotals(ctx context.Context, year, hotelID int) ([]MonthlyTypeTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.ay, ot.oda_tipi_id, ot.oda_tipi_adi,
		       COALESCE(SUM(a.musteri_sayisi), 0)
		FROM oda_analizi a
		JOIN oda_tipleri ot ON ot.oda_tipi_id = a.oda_tipi_id
		WHERE a.yil = $1 AND a.otel_id = $2
		GROUP BY a.ay, ot.oda_tipi_id, ot.oda_tipi_adi
		ORDER BY a.ay ASC`, year, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]MonthlyTypeTotal, 0)
	for rows.Next() {
		var t MonthlyTypeTotal
		if err := rows.Scan(&t.Month, &t.RoomTypeID, &t.RoomType, &t.Total); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// TypeTrend sums guests per year for one room type, oldest first.
func (r *PGRepository) TypeTrend(ctx context.Context, roomTypeID int) ([]TrendPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT yil, COALESCE(SUM(musteri_sayisi), 0)
		FROM oda_analizi
		WHERE oda_tipi_id = $1
		GROUP BY yil
		ORDER BY yil ASC`, roomTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]TrendPoint, 0)
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Year, &p.Total); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func placeholder(clause string, n int) string {
	return clause + "$" + strconv.Itoa(n)
}

// CapacityAnalysis joins room demand against profitability, preference
// share first. The CTE total guards against empty hotels via NULLIF.
func (r *PGRepository) CapacityAnalysis(ctx context.Context, year, hotelID int) ([]CapacityStats, error) {
	rows, err := r.pool.Query(ctx, `
		WITH toplam AS (
			SELECT NULLIF(SUM(musteri_sayisi), 0) AS genel_toplam
			FROM oda_analizi
			WHERE yil = $1 AND otel_id = $2
		)
		SELECT ot.oda_tipi_adi,
		       COALESCE(SUM(oa.musteri_sayisi), 0) AS toplam_talep,
		       COALESCE(SUM(oa.musteri_sayisi)::numeric
		                / (SELECT genel_toplam FROM toplam) * 100, 0) AS tercih_orani,
		       COALESCE(kv.kar_marji, 0) AS kar_orani
		FROM oda_analizi oa
		JOIN oda_tipleri ot ON oa.oda_tipi_id = ot.oda_tipi_id
		LEFT JOIN oda_karlilik_verileri kv
		       ON ot.oda_tipi_id = kv.oda_tipi_id AND kv.yil = $1
		WHERE oa.yil = $1 AND oa.otel_id = $2
		GROUP BY ot.oda_tipi_id, ot.oda_tipi_adi, kv.kar_marji
		ORDER BY tercih_orani DESC`, year, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]CapacityStats, 0)
	for rows.Next() {
		var s CapacityStats
		if err := rows.Scan(&s.RoomType, &s.Demand, &s.Preference, &s.Margin); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
