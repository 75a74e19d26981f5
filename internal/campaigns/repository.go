package campaigns

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Repository runs the campaign analytics queries.
type Repository interface {
	Performance(ctx context.Context, year, hotelID int) ([]PerformanceRow, error)
	MonthlyRevenue(ctx context.Context, year, hotelID int) ([]MonthlyRevenueRow, error)
	TypeDistribution(ctx context.Context, year int) ([]TypeDistributionRow, error)
	AnalysisCount(ctx context.Context, filter TableFilter) (int, error)
	AnalysisRows(ctx context.Context, filter TableFilter) ([]AnalysisRow, error)
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

// Performance lists campaigns with their post/pre revenue delta, highest
// revenue first. Year filters on the launch date.
func (r *PGRepository) Performance(ctx context.Context, year, hotelID int) ([]PerformanceRow, error) {
	sql := `
		SELECT k.kampanya_adi,
		       k.baslangic_tarihi,
		       k.bitis_tarihi,
		       k.indirim_orani,
		       COALESCE(ka.sonraki_musteri_sayisi, 0),
		       COALESCE(ka.sonraki_gelir, 0),
		       COALESCE(ka.onceki_gelir, 0),
		       COALESCE(ka.sonraki_gelir, 0) - COALESCE(ka.onceki_gelir, 0)
		FROM kampanyalar k
		LEFT JOIN kampanya_analiz ka ON k.kampanya_id = ka.kampanya_id
		WHERE 1=1`
	args := []any{}
	if year > 0 {
		args = append(args, year)
		sql += clause(` AND EXTRACT(YEAR FROM k.baslangic_tarihi) = `, len(args))
	}
	if hotelID > 0 {
		args = append(args, hotelID)
		sql += clause(` AND k.otel_id = `, len(args))
	}
	sql += ` ORDER BY 6 DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]PerformanceRow, 0)
	for rows.Next() {
		var p PerformanceRow
		if err := rows.Scan(&p.Name, &p.Start, &p.End, &p.Discount,
			&p.Reservations, &p.Revenue, &p.PriorRevenue, &p.RevenueGain); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// MonthlyRevenue aggregates campaign counts and revenue per launch month.
func (r *PGRepository) MonthlyRevenue(ctx context.Context, year, hotelID int) ([]MonthlyRevenueRow, error) {
	sql := `
		SELECT EXTRACT(MONTH FROM k.baslangic_tarihi)::int AS ay,
		       COUNT(DISTINCT k.kampanya_id),
		       COALESCE(SUM(COALESCE(ka.sonraki_musteri_sayisi, 0)), 0),
		       COALESCE(SUM(COALESCE(ka.sonraki_gelir, 0)), 0)
		FROM kampanyalar k
		LEFT JOIN kampanya_analiz ka ON k.kampanya_id = ka.kampanya_id
		WHERE 1=1`
	args := []any{}
	if year > 0 {
		args = append(args, year)
		sql += clause(` AND EXTRACT(YEAR FROM k.baslangic_tarihi) = `, len(args))
	}
	if hotelID > 0 {
		args = append(args, hotelID)
		sql += clause(` AND k.otel_id = `, len(args))
	}
	sql += ` GROUP BY ay ORDER BY ay ASC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]MonthlyRevenueRow, 0)
	for rows.Next() {
		var m MonthlyRevenueRow
		if err := rows.Scan(&m.Month, &m.Campaigns, &m.Reservations, &m.Revenue); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// TypeDistribution buckets campaigns by discount depth, highest revenue
// bucket first.
func (r *PGRepository) TypeDistribution(ctx context.Context, year int) ([]TypeDistributionRow, error) {
	sql := `
		SELECT CASE
		           WHEN k.indirim_orani >= 50 THEN 'Yüksek İndirim (50%+)'
		           WHEN k.indirim_orani >= 30 THEN 'Orta İndirim (30-49%)'
		           WHEN k.indirim_orani >= 10 THEN 'Düşük İndirim (10-29%)'
		           ELSE 'Minimal İndirim (<10%)'
		       END AS kampanya_turu,
		       COUNT(DISTINCT k.kampanya_id),
		       COALESCE(SUM(COALESCE(ka.sonraki_musteri_sayisi, 0)), 0),
		       COALESCE(SUM(COALESCE(ka.sonraki_gelir, 0)), 0) AS toplam_gelir
		FROM kampanyalar k
		LEFT JOIN kampanya_analiz ka ON k.kampanya_id = ka.kampanya_id
		WHERE 1=1`
	args := []any{}
	if year > 0 {
		args = append(args, year)
		sql += clause(` AND EXTRACT(YEAR FROM k.baslangic_tarihi) = `, len(args))
	}
	sql += ` GROUP BY kampanya_turu ORDER BY toplam_gelir DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]TypeDistributionRow, 0)
	for rows.Next() {
		var d TypeDistributionRow
		if err := rows.Scan(&d.Type, &d.Campaigns, &d.Reservations, &d.Revenue); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// AnalysisCount counts the analysis rows matching the filter.
func (r *PGRepository) AnalysisCount(ctx context.Context, filter TableFilter) (int, error) {
	where, args := analysisWhere(filter)
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM kampanyalar k
		JOIN kampanya_analiz ka ON ka.kampanya_id = k.kampanya_id
		JOIN oteller o ON o.otel_id = k.otel_id`+where, args...).Scan(&total)
	return total, err
}

// AnalysisRows returns one page of analysis rows, newest launch first. The
// period is preformatted dd.mm.yyyy and growth stays NULL when the prior
// guest count was zero.
func (r *PGRepository) AnalysisRows(ctx context.Context, filter TableFilter) ([]AnalysisRow, error) {
	where, args := analysisWhere(filter)
	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	limitPos := len(args) - 1

	rows, err := r.pool.Query(ctx, `
		SELECT k.kampanya_adi,
		       o.otel_adi,
		       to_char(k.baslangic_tarihi, 'DD.MM.YYYY') || ' - ' || to_char(k.bitis_tarihi, 'DD.MM.YYYY'),
		       k.indirim_orani,
		       ka.onceki_musteri_sayisi,
		       ka.sonraki_musteri_sayisi,
		       ROUND((ka.sonraki_musteri_sayisi - ka.onceki_musteri_sayisi)::numeric
		             / NULLIF(ka.onceki_musteri_sayisi, 0) * 100, 2),
		       ka.etki_seviyesi
		FROM kampanyalar k
		JOIN kampanya_analiz ka ON ka.kampanya_id = k.kampanya_id
		JOIN oteller o ON o.otel_id = k.otel_id`+where+`
		ORDER BY k.baslangic_tarihi DESC
		LIMIT $`+strconv.Itoa(limitPos)+` OFFSET $`+strconv.Itoa(limitPos+1), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]AnalysisRow, 0)
	for rows.Next() {
		var a AnalysisRow
		if err := rows.Scan(&a.Name, &a.Hotel, &a.Period, &a.Discount,
			&a.PriorGuests, &a.PostGuests, &a.Growth, &a.Impact); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// analysisWhere builds the shared filter clause. The impact level is
// matched case-insensitively with Turkish casing rules.
func analysisWhere(filter TableFilter) (string, []any) {
	conditions := []string{}
	args := []any{}

	if name := strings.TrimSpace(filter.Name); name != "" {
		args = append(args, "%"+name+"%")
		conditions = append(conditions, clause(`k.kampanya_adi LIKE `, len(args)))
	}
	if impact := strings.TrimSpace(filter.Impact); impact != "" && impact != "all" && impact != "Tümü" {
		lowered := cases.Lower(language.Turkish).String(impact)
		args = append(args, "%"+lowered+"%")
		conditions = append(conditions, clause(`LOWER(TRIM(ka.etki_seviyesi)) LIKE `, len(args)))
	}
	if filter.HotelID > 0 {
		args = append(args, filter.HotelID)
		conditions = append(conditions, clause(`k.otel_id = `, len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return ` WHERE ` + strings.Join(conditions, " AND "), args
}

func clause(prefix string, n int) string {
	return prefix + "$" + strconv.Itoa(n)
}
