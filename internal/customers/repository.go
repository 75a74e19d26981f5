package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/egelife/insight/internal/platform/source"
)

// Repository runs the guest segmentation queries.
type Repository interface {
	TypeDistribution(ctx context.Context, year int) ([]TypeCount, error)
	MonthlyTypes(ctx context.Context, years []int, hotelID int) ([]MonthlyTypeRow, error)
	DomesticForeignSplit(ctx context.Context, year int) (DomesticForeign, error)
	DomesticForeignTotals(ctx context.Context, year int) ([]TypeDistribution, error)
	GeneralDistribution(ctx context.Context, year int) ([]TypeDistribution, error)
	SegmentTotals(ctx context.Context, hotelID, year int) ([]TypeDistribution, error)
	SegmentTotalsByYear(ctx context.Context, year int) ([]TypeDistribution, error)
	SegmentBreakdown(ctx context.Context, year, hotelID int) ([]SegmentBreakdown, error)
	AnalysisRows(ctx context.Context, year, hotelID int) ([]AnalysisRow, error)
	MonthlySegmentTotals(ctx context.Context, year, hotelID int) ([]MonthTypeTotal, error)
	MonthlyGuestTotals(ctx context.Context, year, hotelID int) ([]MonthTotal, error)
	MonthlyStaffCounts(ctx context.Context, year, hotelID int) ([]MonthTotal, error)
	HotelComparisonTotals(ctx context.Context, year int) ([]HotelTotal, error)
	CampaignImpact(ctx context.Context, year, campaignID int) ([]ImpactRow, error)
	RoomPreferences(ctx context.Context, year, hotelID int) ([]PreferenceRow, error)
	Profitability(ctx context.Context, year int) ([]ProfitabilityRow, error)
}

// PGRepository implements Repository against PostgreSQL. Operations backed
// by tables that differ between deployments run through the source cascade.
type PGRepository struct {
	pool    *pgxpool.Pool
	cascade *source.Cascade
}

var _ Repository = (*PGRepository)(nil)

// NewPGRepository constructs a PGRepository.
func NewPGRepository(pool *pgxpool.Pool, cascade *source.Cascade) *PGRepository {
	return &PGRepository{pool: pool, cascade: cascade}
}

// TypeDistribution classifies guests as domestic or foreign. The primary
// source is the reservation ledger; deployments without it fall back to
// the monthly statistics table, then to its per-type count columns. Year 0
// returns the all-years breakdown.
func (r *PGRepository) TypeDistribution(ctx context.Context, year int) ([]TypeCount, error) {
	var result []TypeCount

	reservations := source.Strategy{
		Name: "rezervasyonlar",
		Run: func(ctx context.Context) (int, error) {
			sql := `
				SELECT ` + classifyGuest + ` AS tip, COUNT(*) AS sayi
				FROM rezervasyonlar r
				LEFT JOIN musteriler m ON r.musteri_id = m.musteri_id
				WHERE EXTRACT(YEAR FROM r.rezervasyon_tarihi)::int = $1
				   OR EXTRACT(YEAR FROM r.giris_tarihi)::int = $1
				GROUP BY 1`
			args := []any{year}
			if year == 0 {
				sql = `
					SELECT COALESCE(EXTRACT(YEAR FROM r.rezervasyon_tarihi), EXTRACT(YEAR FROM r.giris_tarihi))::int AS yil,
					       ` + classifyGuest + ` AS tip, COUNT(*) AS sayi
					FROM rezervasyonlar r
					LEFT JOIN musteriler m ON r.musteri_id = m.musteri_id
					WHERE r.rezervasyon_tarihi IS NOT NULL OR r.giris_tarihi IS NOT NULL
					GROUP BY 1, 2
					ORDER BY yil DESC`
				args = nil
			}
			rows, err := r.pool.Query(ctx, sql, args...)
			if err != nil {
				return 0, err
			}
			defer rows.Close()

			out := make([]TypeCount, 0)
			for rows.Next() {
				var t TypeCount
				if year == 0 {
					t.Year = new(int)
					if err := rows.Scan(t.Year, &t.Type, &t.Count); err != nil {
						return 0, err
					}
				} else if err := rows.Scan(&t.Type, &t.Count); err != nil {
					return 0, err
				}
				out = append(out, t)
			}
			if err := rows.Err(); err != nil {
				return 0, err
			}
			result = out
			return len(out), nil
		},
	}

	statistics := source.Strategy{
		Name:    "aylik_istatistik.musteri_tipi",
		MinRows: 1,
		Run: func(ctx context.Context) (int, error) {
			sql := `
				SELECT CASE WHEN musteri_tipi IN ('Yerli', 'yerli') THEN 'Yerli' ELSE 'Yabancı' END AS tip,
				       COUNT(*) AS sayi
				FROM aylik_istatistik
				WHERE yil = $1 AND musteri_tipi IS NOT NULL
				GROUP BY 1`
			args := []any{year}
			if year == 0 {
				sql = `
					SELECT yil,
					       CASE WHEN musteri_tipi IN ('Yerli', 'yerli') THEN 'Yerli' ELSE 'Yabancı' END AS tip,
					       COUNT(*) AS sayi
					FROM aylik_istatistik
					WHERE yil IS NOT NULL AND musteri_tipi IS NOT NULL
					GROUP BY yil, 2
					ORDER BY yil DESC`
				args = nil
			}
			rows, err := r.pool.Query(ctx, sql, args...)
			if err != nil {
				return 0, err
			}
			defer rows.Close()

			out := make([]TypeCount, 0)
			for rows.Next() {
				var t TypeCount
				if year == 0 {
					t.Year = new(int)
					if err := rows.Scan(t.Year, &t.Type, &t.Count); err != nil {
						return 0, err
					}
				} else if err := rows.Scan(&t.Type, &t.Count); err != nil {
					return 0, err
				}
				out = append(out, t)
			}
			if err := rows.Err(); err != nil {
				return 0, err
			}
			if len(out) > 0 {
				result = out
			}
			return len(out), nil
		},
	}

	counters := source.Strategy{
		Name:    "aylik_istatistik.sayilar",
		MinRows: 1,
		Run: func(ctx context.Context) (int, error) {
			sql := `
				SELECT 'Yerli' AS tip, COALESCE(SUM(GREATEST(yerli_musteri_sayisi, 0)), 0)::int AS sayi
				FROM aylik_istatistik WHERE yil = $1
				UNION ALL
				SELECT 'Yabancı' AS tip, COALESCE(SUM(GREATEST(yabanci_musteri_sayisi, 0)), 0)::int AS sayi
				FROM aylik_istatistik WHERE yil = $1`
			args := []any{year}
			if year == 0 {
				sql = `
					SELECT yil, 'Yerli' AS tip, COALESCE(SUM(GREATEST(yerli_musteri_sayisi, 0)), 0)::int AS sayi
					FROM aylik_istatistik WHERE yil IS NOT NULL GROUP BY yil
					UNION ALL
					SELECT yil, 'Yabancı' AS tip, COALESCE(SUM(GREATEST(yabanci_musteri_sayisi, 0)), 0)::int AS sayi
					FROM aylik_istatistik WHERE yil IS NOT NULL GROUP BY yil
					ORDER BY yil DESC`
				args = nil
			}
			rows, err := r.pool.Query(ctx, sql, args...)
			if err != nil {
				return 0, err
			}
			defer rows.Close()

			out := make([]TypeCount, 0)
			for rows.Next() {
				var t TypeCount
				if year == 0 {
					t.Year = new(int)
					if err := rows.Scan(t.Year, &t.Type, &t.Count); err != nil {
						return 0, err
					}
				} else if err := rows.Scan(&t.Type, &t.Count); err != nil {
					return 0, err
				}
				out = append(out, t)
			}
			if err := rows.Err(); err != nil {
				return 0, err
			}
			if len(out) > 0 {
				result = out
			}
			return len(out), nil
		},
	}

	err := r.cascade.Run(ctx, "customers.type_distribution", reservations, statistics, counters)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		result = []TypeCount{{Type: "Yerli"}, {Type: "Yabancı"}}
	}
	return result, nil
}

// classifyGuest is the shared domestic/foreign CASE over the reservation
// ledger and the joined guest record.
const classifyGuest = `CASE
	WHEN r.musteri_tipi IN ('Yerli', 'yerli')
	  OR r.ulke IN ('Türkiye', 'Turkey', 'TR')
	  OR m.ulke IN ('Türkiye', 'Turkey')
	THEN 'Yerli' ELSE 'Yabancı' END`

// MonthlyTypes returns per-month segment counts for a set of years,
// optionally filtered to one hotel.
func (r *PGRepository) MonthlyTypes(ctx context.Context, years []int, hotelID int) ([]MonthlyTypeRow, error) {
	if len(years) == 0 {
		return []MonthlyTypeRow{}, nil
	}

	sql := `
		SELECT mta.yil, mta.ay, mt.musteri_tipi, mta.musteri_sayisi
		FROM musteri_turleri_analizi mta
		INNER JOIN musteri_turleri mt ON mta.musteri_tipi_id = mt.musteri_tipi_id
		WHERE mta.yil = ANY($1)`
	args := []any{years}
	if hotelID > 0 {
		sql += ` AND mta.otel_id = $2`
		args = append(args, hotelID)
	}
	sql += ` ORDER BY mta.yil ASC, mta.ay ASC, mt.musteri_tipi ASC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]MonthlyTypeRow, 0)
	for rows.Next() {
		var m MonthlyTypeRow
		if err := rows.Scan(&m.Year, &m.Month, &m.Type, &m.Count); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// DomesticForeignSplit sums segment ids 1 and 2 for one year, falling back
// to the legacy per-type count table.
func (r *PGRepository) DomesticForeignSplit(ctx context.Context, year int) (DomesticForeign, error) {
	var split DomesticForeign

	primary := source.Strategy{
		Name: "musteri_turleri_analizi",
		Run: func(ctx context.Context) (int, error) {
			err := r.pool.QueryRow(ctx, `
				SELECT COALESCE(SUM(CASE WHEN musteri_tipi_id = 1 THEN musteri_sayisi ELSE 0 END), 0)::int,
				       COALESCE(SUM(CASE WHEN musteri_tipi_id = 2 THEN musteri_sayisi ELSE 0 END), 0)::int
				FROM musteri_turleri_analizi
				WHERE yil = $1`, year).Scan(&split.Domestic, &split.Foreign)
			if err != nil {
				return 0, err
			}
			return 1, nil
		},
	}

	legacy := source.Strategy{
		Name: "musteri_tur_analizi",
		Run: func(ctx context.Context) (int, error) {
			err := r.pool.QueryRow(ctx, `
				SELECT COALESCE(SUM(CASE WHEN tur_id = 1 THEN sayi ELSE 0 END), 0)::int,
				       COALESCE(SUM(CASE WHEN tur_id = 2 THEN sayi ELSE 0 END), 0)::int
				FROM musteri_tur_analizi
				WHERE yil = $1`, year).Scan(&split.Domestic, &split.Foreign)
			if err != nil {
				return 0, err
			}
			return 1, nil
		},
	}

	if err := r.cascade.Run(ctx, "customers.domestic_foreign", primary, legacy); err != nil {
		return DomesticForeign{}, err
	}
	return split, nil
}

// DomesticForeignTotals returns the id 1 and 2 totals as distribution rows.
// Year 0 spans all years.
func (r *PGRepository) DomesticForeignTotals(ctx context.Context, year int) ([]TypeDistribution, error) {
	sql := `
		SELECT t.musteri_tipi, t.musteri_tipi_id, COALESCE(SUM(a.musteri_sayisi), 0)::int AS toplam
		FROM musteri_turleri_analizi a
		INNER JOIN musteri_turleri t ON a.musteri_tipi_id = t.musteri_tipi_id
		WHERE a.musteri_tipi_id IN (1, 2)`
	args := []any{}
	if year > 0 {
		sql += ` AND a.yil = $1`
		args = append(args, year)
	}
	sql += ` GROUP BY t.musteri_tipi_id, t.musteri_tipi`
	return r.queryDistribution(ctx, sql, args...)
}

// GeneralDistribution returns every segment's total, largest first. Year 0
// spans all years.
func (r *PGRepository) GeneralDistribution(ctx context.Context, year int) ([]TypeDistribution, error) {
	sql := `
		SELECT t.musteri_tipi, t.musteri_tipi_id, COALESCE(SUM(a.musteri_sayisi), 0)::int AS toplam
		FROM musteri_turleri_analizi a
		INNER JOIN musteri_turleri t ON a.musteri_tipi_id = t.musteri_tipi_id`
	args := []any{}
	if year > 0 {
		sql += ` WHERE a.yil = $1`
		args = append(args, year)
	}
	sql += ` GROUP BY t.musteri_tipi_id, t.musteri_tipi ORDER BY toplam DESC`
	return r.queryDistribution(ctx, sql, args...)
}

// SegmentTotals returns segment totals with optional hotel and year
// filters (0 means no filter).
func (r *PGRepository) SegmentTotals(ctx context.Context, hotelID, year int) ([]TypeDistribution, error) {
	conditions := []string{}
	args := []any{}
	if hotelID > 0 {
		args = append(args, hotelID)
		conditions = append(conditions, fmt.Sprintf("mta.otel_id = $%d", len(args)))
	}
	if year > 0 {
		args = append(args, year)
		conditions = append(conditions, fmt.Sprintf("mta.yil = $%d", len(args)))
	}

	sql := `
		SELECT mt.musteri_tipi, mt.musteri_tipi_id, COALESCE(SUM(mta.musteri_sayisi), 0)::int AS toplam
		FROM musteri_turleri_analizi mta
		INNER JOIN musteri_turleri mt ON mta.musteri_tipi_id = mt.musteri_tipi_id`
	if len(conditions) > 0 {
		sql += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	sql += ` GROUP BY mt.musteri_tipi_id, mt.musteri_tipi ORDER BY toplam DESC`
	return r.queryDistribution(ctx, sql, args...)
}

// SegmentTotalsByYear returns a year's segment totals. Fewer than three
// segments in the primary table triggers the legacy fallback; a thin
// primary result is still served when the fallback is unavailable.
func (r *PGRepository) SegmentTotalsByYear(ctx context.Context, year int) ([]TypeDistribution, error) {
	var result []TypeDistribution

	primary := source.Strategy{
		Name:    "musteri_turleri_analizi",
		MinRows: 3,
		Run: func(ctx context.Context) (int, error) {
			out, err := r.queryDistribution(ctx, `
				SELECT mt.musteri_tipi, mt.musteri_tipi_id, COALESCE(SUM(mta.musteri_sayisi), 0)::int AS toplam
				FROM musteri_turleri_analizi mta
				INNER JOIN musteri_turleri mt ON mta.musteri_tipi_id = mt.musteri_tipi_id
				WHERE mta.yil = $1
				GROUP BY mt.musteri_tipi_id, mt.musteri_tipi
				ORDER BY toplam DESC`, year)
			if err != nil {
				return 0, err
			}
			result = out
			return len(out), nil
		},
	}

	legacy := source.Strategy{
		Name: "musteri_tur_analizi",
		Run: func(ctx context.Context) (int, error) {
			rows, err := r.pool.Query(ctx, `
				SELECT tur_id, COALESCE(SUM(sayi), 0)::int AS toplam
				FROM musteri_tur_analizi
				WHERE yil = $1
				GROUP BY tur_id
				ORDER BY toplam DESC`, year)
			if err != nil {
				return 0, err
			}
			defer rows.Close()

			out := make([]TypeDistribution, 0)
			for rows.Next() {
				var d TypeDistribution
				if err := rows.Scan(&d.TypeID, &d.Total); err != nil {
					return 0, err
				}
				d.Type = SegmentName(d.TypeID)
				out = append(out, d)
			}
			if err := rows.Err(); err != nil {
				return 0, err
			}
			result = out
			return len(out), nil
		},
	}

	if err := r.cascade.Run(ctx, "customers.segment_totals", primary, legacy); err != nil {
		return nil, err
	}
	return result, nil
}

// SegmentBreakdown returns the seven segment counts for one hotel and
// year, falling back to the legacy count table.
func (r *PGRepository) SegmentBreakdown(ctx context.Context, year, hotelID int) ([]SegmentBreakdown, error) {
	var result []SegmentBreakdown

	scan := func(ctx context.Context, sql string) (int, error) {
		rows, err := r.pool.Query(ctx, sql, year, hotelID)
		if err != nil {
			return 0, err
		}
		defer rows.Close()

		out := make([]SegmentBreakdown, 0)
		for rows.Next() {
			var b SegmentBreakdown
			if err := rows.Scan(&b.ID, &b.Count); err != nil {
				return 0, err
			}
			b.Name = SegmentName(b.ID)
			out = append(out, b)
		}
		if err := rows.Err(); err != nil {
			return 0, err
		}
		result = out
		return len(out), nil
	}

	primary := source.Strategy{
		Name: "musteri_turleri_analizi",
		Run: func(ctx context.Context) (int, error) {
			return scan(ctx, `
				SELECT musteri_tipi_id, COALESCE(SUM(musteri_sayisi), 0)::int AS toplam
				FROM musteri_turleri_analizi
				WHERE yil = $1 AND otel_id = $2 AND musteri_tipi_id BETWEEN 1 AND 7
				GROUP BY musteri_tipi_id
				ORDER BY musteri_tipi_id`)
		},
	}

	legacy := source.Strategy{
		Name: "musteri_tur_analizi",
		Run: func(ctx context.Context) (int, error) {
			return scan(ctx, `
				SELECT tur_id, COALESCE(SUM(sayi), 0)::int AS toplam
				FROM musteri_tur_analizi
				WHERE yil = $1 AND otel_id = $2 AND tur_id BETWEEN 1 AND 7
				GROUP BY tur_id
				ORDER BY tur_id`)
		},
	}

	if err := r.cascade.Run(ctx, "customers.segment_breakdown", primary, legacy); err != nil {
		return nil, err
	}
	return result, nil
}

// AnalysisRows returns the raw month/segment observations for the combined
// analysis endpoint, with optional year and hotel filters.
func (r *PGRepository) AnalysisRows(ctx context.Context, year, hotelID int) ([]AnalysisRow, error) {
	conditions := []string{}
	args := []any{}
	if year > 0 {
		args = append(args, year)
		conditions = append(conditions, fmt.Sprintf("mta.yil = $%d", len(args)))
	}
	if hotelID > 0 {
		args = append(args, hotelID)
		conditions = append(conditions, fmt.Sprintf("mta.otel_id = $%d", len(args)))
	}

	sql := `
		SELECT mta.yil, mta.ay, mt.musteri_tipi_id, mt.musteri_tipi, mta.musteri_sayisi
		FROM musteri_turleri_analizi mta
		INNER JOIN musteri_turleri mt ON mta.musteri_tipi_id = mt.musteri_tipi_id`
	if len(conditions) > 0 {
		sql += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	sql += ` ORDER BY mta.yil ASC, mta.ay ASC, mt.musteri_tipi ASC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]AnalysisRow, 0)
	for rows.Next() {
		var a AnalysisRow
		if err := rows.Scan(&a.Year, &a.Month, &a.TypeID, &a.Type, &a.Count); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// MonthlySegmentTotals returns per-month totals per segment for the
// stacked chart, falling back to the legacy count table.
func (r *PGRepository) MonthlySegmentTotals(ctx context.Context, year, hotelID int) ([]MonthTypeTotal, error) {
	var result []MonthTypeTotal

	primary := source.Strategy{
		Name: "musteri_turleri_analizi",
		Run: func(ctx context.Context) (int, error) {
			sql := `
				SELECT mta.ay, mt.musteri_tipi, COALESCE(SUM(mta.musteri_sayisi), 0)::int AS toplam
				FROM musteri_turleri_analizi mta
				INNER JOIN musteri_turleri mt ON mta.musteri_tipi_id = mt.musteri_tipi_id
				WHERE mta.yil = $1`
			args := []any{year}
			if hotelID > 0 {
				sql += ` AND mta.otel_id = $2`
				args = append(args, hotelID)
			}
			sql += ` GROUP BY mta.ay, mt.musteri_tipi ORDER BY mta.ay, mt.musteri_tipi`

			rows, err := r.pool.Query(ctx, sql, args...)
			if err != nil {
				return 0, err
			}
			defer rows.Close()

			out := make([]MonthTypeTotal, 0)
			for rows.Next() {
				var m MonthTypeTotal
				if err := rows.Scan(&m.Month, &m.Type, &m.Total); err != nil {
					return 0, err
				}
				out = append(out, m)
			}
			if err := rows.Err(); err != nil {
				return 0, err
			}
			result = out
			return len(out), nil
		},
	}

	legacy := source.Strategy{
		Name: "musteri_tur_analizi",
		Run: func(ctx context.Context) (int, error) {
			sql := `
				SELECT ay, tur_id, COALESCE(SUM(sayi), 0)::int AS toplam
				FROM musteri_tur_analizi
				WHERE yil = $1`
			args := []any{year}
			if hotelID > 0 {
				sql += ` AND otel_id = $2`
				args = append(args, hotelID)
			}
			sql += ` GROUP BY ay, tur_id ORDER BY ay, tur_id`

			rows, err := r.pool.Query(ctx, sql, args...)
			if err != nil {
				return 0, err
			}
			defer rows.Close()

			out := make([]MonthTypeTotal, 0)
			for rows.Next() {
				var m MonthTypeTotal
				var id int
				if err := rows.Scan(&m.Month, &id, &m.Total); err != nil {
					return 0, err
				}
				m.Type = SegmentName(id)
				out = append(out, m)
			}
			if err := rows.Err(); err != nil {
				return 0, err
			}
			result = out
			return len(out), nil
		},
	}

	if err := r.cascade.Run(ctx, "customers.monthly_segments", primary, legacy); err != nil {
		return nil, err
	}
	return result, nil
}

// MonthlyGuestTotals sums all segments per month, optionally for one hotel.
func (r *PGRepository) MonthlyGuestTotals(ctx context.Context, year, hotelID int) ([]MonthTotal, error) {
	sql := `
		SELECT ay, COALESCE(SUM(musteri_sayisi), 0)::int AS toplam
		FROM musteri_turleri_analizi
		WHERE yil = $1`
	args := []any{year}
	if hotelID > 0 {
		sql += ` AND otel_id = $2`
		args = append(args, hotelID)
	}
	sql += ` GROUP BY ay ORDER BY ay`
	return r.queryMonthTotals(ctx, sql, args...)
}

// MonthlyStaffCounts sums staff headcounts per month from the statistics
// table, optionally for one hotel.
func (r *PGRepository) MonthlyStaffCounts(ctx context.Context, year, hotelID int) ([]MonthTotal, error) {
	sql := `
		SELECT ay, COALESCE(SUM(personel_sayisi), 0)::int AS personel_sayisi
		FROM aylik_istatistik
		WHERE yil = $1`
	args := []any{year}
	if hotelID > 0 {
		sql += ` AND otel_id = $2`
		args = append(args, hotelID)
	}
	sql += ` GROUP BY ay ORDER BY ay`
	return r.queryMonthTotals(ctx, sql, args...)
}

// HotelComparisonTotals returns every hotel's guest total for one year,
// keeping hotels with no data at zero.
func (r *PGRepository) HotelComparisonTotals(ctx context.Context, year int) ([]HotelTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.otel_id, o.otel_adi, COALESCE(SUM(mta.musteri_sayisi), 0)::int AS toplam
		FROM oteller o
		LEFT JOIN musteri_turleri_analizi mta ON o.otel_id = mta.otel_id AND mta.yil = $1
		GROUP BY o.otel_id, o.otel_adi
		ORDER BY o.otel_adi`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]HotelTotal, 0)
	for rows.Next() {
		var h HotelTotal
		if err := rows.Scan(&h.ID, &h.Name, &h.Total); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

// CampaignImpact returns per-hotel per-segment impact scores, optionally
// filtered by year and campaign (0 means no filter).
func (r *PGRepository) CampaignImpact(ctx context.Context, year, campaignID int) ([]ImpactRow, error) {
	conditions := []string{}
	args := []any{}
	if year > 0 {
		args = append(args, year)
		conditions = append(conditions, fmt.Sprintf("mea.yil = $%d", len(args)))
	}
	if campaignID > 0 {
		args = append(args, campaignID)
		conditions = append(conditions, fmt.Sprintf("mea.kampanya_id = $%d", len(args)))
	}

	sql := `
		SELECT o.otel_adi, mt.musteri_tipi, mea.etki_puani
		FROM kampanya_musteri_etki_analizi mea
		JOIN oteller o ON o.otel_id = mea.otel_id
		JOIN musteri_turleri mt ON mt.musteri_tipi_id = mea.musteri_tipi_id`
	if len(conditions) > 0 {
		sql += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	sql += ` ORDER BY o.otel_adi, mt.musteri_tipi`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ImpactRow, 0)
	for rows.Next() {
		var i ImpactRow
		if err := rows.Scan(&i.Hotel, &i.Type, &i.Score); err != nil {
			return nil, err
		}
		result = append(result, i)
	}
	return result, rows.Err()
}

// RoomPreferences returns summed preference scores per segment and room
// type for one year, optionally for one hotel.
func (r *PGRepository) RoomPreferences(ctx context.Context, year, hotelID int) ([]PreferenceRow, error) {
	sql := `
		SELECT mt.musteri_tipi, ot.oda_tipi_adi, COALESCE(SUM(mota.tercih_skoru), 0)::int AS toplam_skor
		FROM musteri_oda_tercih_analizi mota
		JOIN musteri_turleri mt ON mt.musteri_tipi_id = mota.musteri_tipi_id
		JOIN oda_tipleri ot ON ot.oda_tipi_id = mota.oda_tipi_id
		WHERE mota.yil = $1`
	args := []any{year}
	if hotelID > 0 {
		sql += ` AND mota.otel_id = $2`
		args = append(args, hotelID)
	}
	sql += ` GROUP BY mt.musteri_tipi_id, mt.musteri_tipi, ot.oda_tipi_id, ot.oda_tipi_adi
		ORDER BY mt.musteri_tipi, toplam_skor DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]PreferenceRow, 0)
	for rows.Next() {
		var p PreferenceRow
		if err := rows.Scan(&p.Type, &p.RoomType, &p.Score); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// Profitability returns each segment's stored margin with its guest
// volume for one year, highest margin first.
func (r *PGRepository) Profitability(ctx context.Context, year int) ([]ProfitabilityRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT mt.musteri_tipi, mk.kar_marji, COALESCE(SUM(mta.musteri_sayisi), 0)::int AS toplam_musteri
		FROM musteri_karlilik_verileri mk
		JOIN musteri_turleri mt ON mk.musteri_tipi_id = mt.musteri_tipi_id
		LEFT JOIN musteri_turleri_analizi mta ON mt.musteri_tipi_id = mta.musteri_tipi_id AND mta.yil = mk.yil
		WHERE mk.yil = $1
		GROUP BY mt.musteri_tipi_id, mt.musteri_tipi, mk.kar_marji
		ORDER BY mk.kar_marji DESC`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ProfitabilityRow, 0)
	for rows.Next() {
		var p ProfitabilityRow
		if err := rows.Scan(&p.Type, &p.Margin, &p.Customers); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *PGRepository) queryDistribution(ctx context.Context, sql string, args ...any) ([]TypeDistribution, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]TypeDistribution, 0)
	for rows.Next() {
		var d TypeDistribution
		if err := rows.Scan(&d.Type, &d.TypeID, &d.Total); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *PGRepository) queryMonthTotals(ctx context.Context, sql string, args ...any) ([]MonthTotal, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]MonthTotal, 0)
	for rows.Next() {
		var m MonthTotal
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
