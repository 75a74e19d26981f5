package finance

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the financial aggregation queries.
type Repository interface {
	YearlyTotals(ctx context.Context) ([]YearlyTotals, error)
	HotelProfitByYear(ctx context.Context) ([]HotelYearProfit, error)
	HotelFinancialsByYear(ctx context.Context) ([]HotelYearFinancials, error)
	HotelMonthlyFinancials(ctx context.Context, year int) ([]HotelMonthFinancials, error)
	TotalProfit(ctx context.Context, year int) (float64, error)
	TotalRevenue(ctx context.Context, year int) (float64, error)
	TotalCost(ctx context.Context, year int) (float64, error)
	MostProfitableHotel(ctx context.Context, year int) (string, error)
	LeastProfitableHotel(ctx context.Context, year int) (string, error)
	HotelTotals(ctx context.Context, year int) ([]HotelTotals, error)
	MonthlyStaffCounts(ctx context.Context, year, hotelID int) ([]MonthStaff, error)
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

// YearlyTotals sums revenue, cost and profit per year, oldest first.
func (r *PGRepository) YearlyTotals(ctx context.Context) ([]YearlyTotals, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT yil,
		       COALESCE(SUM(gelir), 0),
		       COALESCE(SUM(maliyet), 0),
		       COALESCE(SUM(kar), 0)
		FROM aylik_istatistik
		WHERE yil IS NOT NULL
		GROUP BY yil
		ORDER BY yil ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]YearlyTotals, 0)
	for rows.Next() {
		var t YearlyTotals
		if err := rows.Scan(&t.Year, &t.Revenue, &t.Cost, &t.Profit); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// HotelProfitByYear sums profit per hotel per year, year then hotel name.
func (r *PGRepository) HotelProfitByYear(ctx context.Context) ([]HotelYearProfit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.otel_adi, a.yil, COALESCE(SUM(a.kar), 0)
		FROM aylik_istatistik a
		INNER JOIN oteller o ON a.otel_id = o.otel_id
		WHERE a.yil IS NOT NULL
		GROUP BY o.otel_id, o.otel_adi, a.yil
		ORDER BY a.yil ASC, o.otel_adi ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]HotelYearProfit, 0)
	for rows.Next() {
		var p HotelYearProfit
		if err := rows.Scan(&p.Hotel, &p.Year, &p.Profit); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// HotelFinancialsByYear returns revenue, cost and profit per hotel per year.
func (r *PGRepository) HotelFinancialsByYear(ctx context.Context) ([]HotelYearFinancials, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.otel_adi, a.yil,
		       COALESCE(SUM(a.gelir), 0),
		       COALESCE(SUM(a.maliyet), 0),
		       COALESCE(SUM(a.kar), 0)
		FROM aylik_istatistik a
		INNER JOIN oteller o ON a.otel_id = o.otel_id
		WHERE a.yil IS NOT NULL
		GROUP BY o.otel_id, o.otel_adi, a.yil
		ORDER BY a.yil ASC, o.otel_adi ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]HotelYearFinancials, 0)
	for rows.Next() {
		var f HotelYearFinancials
		if err := rows.Scan(&f.Hotel, &f.Year, &f.Revenue, &f.Cost, &f.Profit); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

// HotelMonthlyFinancials returns per-hotel monthly profit and cost for one
// year, hotel name then month.
func (r *PGRepository) HotelMonthlyFinancials(ctx context.Context, year int) ([]HotelMonthFinancials, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.otel_adi, a.ay, a.yil,
		       COALESCE(SUM(a.kar), 0),
		       COALESCE(SUM(a.maliyet), 0)
		FROM aylik_istatistik a
		INNER JOIN oteller o ON a.otel_id = o.otel_id
		WHERE a.yil = $1
		GROUP BY o.otel_id, o.otel_adi, a.yil, a.ay
		ORDER BY o.otel_adi ASC, a.ay ASC`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]HotelMonthFinancials, 0)
	for rows.Next() {
		var f HotelMonthFinancials
		if err := rows.Scan(&f.Hotel, &f.Month, &f.Year, &f.Profit, &f.Cost); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

// TotalProfit sums profit for a year.
func (r *PGRepository) TotalProfit(ctx context.Context, year int) (float64, error) {
	return r.sumColumn(ctx, "kar", year)
}

// TotalRevenue sums revenue for a year.
func (r *PGRepository) TotalRevenue(ctx context.Context, year int) (float64, error) {
	return r.sumColumn(ctx, "gelir", year)
}

// TotalCost sums cost for a year.
func (r *PGRepository) TotalCost(ctx context.Context, year int) (float64, error) {
	return r.sumColumn(ctx, "maliyet", year)
}

func (r *PGRepository) sumColumn(ctx context.Context, column string, year int) (float64, error) {
	// column is one of the fixed aggregate names above, never user input.
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(`+column+`), 0) FROM aylik_istatistik WHERE yil = $1`, year).Scan(&total)
	return total, err
}

// MostProfitableHotel returns the name of the hotel with the highest total
// profit for the year; "-" when no rows match. On equal totals the first
// row in query order wins.
func (r *PGRepository) MostProfitableHotel(ctx context.Context, year int) (string, error) {
	return r.extremumHotel(ctx, year, "DESC")
}

// LeastProfitableHotel mirrors MostProfitableHotel for the lowest total.
func (r *PGRepository) LeastProfitableHotel(ctx context.Context, year int) (string, error) {
	return r.extremumHotel(ctx, year, "ASC")
}

func (r *PGRepository) extremumHotel(ctx context.Context, year int, direction string) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx, `
		SELECT o.otel_adi
		FROM aylik_istatistik a
		INNER JOIN oteller o ON a.otel_id = o.otel_id
		WHERE a.yil = $1
		GROUP BY a.otel_id, o.otel_adi
		ORDER BY SUM(a.kar) `+direction+`
		LIMIT 1`, year).Scan(&name)
	if err == pgx.ErrNoRows {
		return "-", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

// HotelTotals sums revenue, cost and profit per hotel for one year.
func (r *PGRepository) HotelTotals(ctx context.Context, year int) ([]HotelTotals, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.otel_adi,
		       COALESCE(SUM(a.gelir), 0),
		       COALESCE(SUM(a.maliyet), 0),
		       COALESCE(SUM(a.kar), 0)
		FROM aylik_istatistik a
		INNER JOIN oteller o ON a.otel_id = o.otel_id
		WHERE a.yil = $1
		GROUP BY o.otel_id, o.otel_adi
		ORDER BY o.otel_adi ASC`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]HotelTotals, 0)
	for rows.Next() {
		var t HotelTotals
		if err := rows.Scan(&t.Hotel, &t.Revenue, &t.Cost, &t.Profit); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// MonthlyStaffCounts sums staff headcounts per month for a year, optionally
// filtered to one hotel (hotelID 0 means all).
func (r *PGRepository) MonthlyStaffCounts(ctx context.Context, year, hotelID int) ([]MonthStaff, error) {
	sql := `
		SELECT ay, COALESCE(SUM(personel_sayisi), 0)
		FROM aylik_istatistik
		WHERE yil = $1`
	args := []any{year}
	if hotelID > 0 {
		sql += ` AND otel_id = $2`
		args = append(args, hotelID)
	}
	sql += ` GROUP BY ay ORDER BY ay ASC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]MonthStaff, 0)
	for rows.Next() {
		var m MonthStaff
		if err := rows.Scan(&m.Month, &m.Staff); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
