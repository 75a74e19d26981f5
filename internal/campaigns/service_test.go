package campaigns

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	Repository

	total      int
	rows       []AnalysisRow
	lastFilter TableFilter
}

func (s *stubRepo) AnalysisCount(ctx context.Context, filter TableFilter) (int, error) {
	return s.total, nil
}

func (s *stubRepo) AnalysisRows(ctx context.Context, filter TableFilter) ([]AnalysisRow, error) {
	s.lastFilter = filter
	return s.rows, nil
}

func ptr(v float64) *float64 { return &v }

func TestAnalysisTableAttachesComments(t *testing.T) {
	repo := &stubRepo{
		total: 4,
		rows: []AnalysisRow{
			{Name: "Erken Rezervasyon", Growth: ptr(32.5), Impact: "Yüksek"},
			{Name: "Yaz Fırsatı", Growth: ptr(12.0), Impact: "Orta"},
			{Name: "Hafta Sonu", Growth: ptr(2.4), Impact: "Düşük"},
			{Name: "Kış Paketi", Growth: nil, Impact: "Düşük"},
		},
	}
	svc := NewService(repo)

	page, err := svc.AnalysisTable(context.Background(), TableFilter{Page: 1, Limit: 8})
	require.NoError(t, err)

	require.Len(t, page.Data, 4)
	assert.Equal(t, "Başarılı kampanya", page.Data[0].Comment)
	assert.Equal(t, "Orta düzey etki", page.Data[1].Comment)
	assert.Equal(t, "Sınırlı etki", page.Data[2].Comment)
	assert.Equal(t, "Negatif etki", page.Data[3].Comment, "missing growth counts as zero")
	assert.Nil(t, page.Data[3].Growth)
}

func TestAnalysisTablePagination(t *testing.T) {
	repo := &stubRepo{total: 17}
	svc := NewService(repo)

	page, err := svc.AnalysisTable(context.Background(), TableFilter{Page: 0, Limit: 0})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page, "page defaults to one")
	assert.Equal(t, 8, page.Limit, "limit defaults to eight")
	assert.Equal(t, 17, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []TableRow{}, page.Data)
}

func TestGrowthCommentBoundaries(t *testing.T) {
	assert.Equal(t, "Başarılı kampanya", growthComment(20.01))
	assert.Equal(t, "Orta düzey etki", growthComment(20))
	assert.Equal(t, "Orta düzey etki", growthComment(5))
	assert.Equal(t, "Sınırlı etki", growthComment(4.99))
	assert.Equal(t, "Negatif etki", growthComment(0))
	assert.Equal(t, "Negatif etki", growthComment(-3))
}

func TestAnalysisWhereNormalizesImpact(t *testing.T) {
	where, args := analysisWhere(TableFilter{Impact: "  YÜKSEK "})
	require.Len(t, args, 1)
	assert.Equal(t, "%yüksek%", args[0])
	assert.Contains(t, where, "LOWER(TRIM(ka.etki_seviyesi)) LIKE $1")
}

func TestAnalysisWhereSkipsCatchAllValues(t *testing.T) {
	for _, v := range []string{"", "all", "Tümü"} {
		where, args := analysisWhere(TableFilter{Impact: v})
		assert.Empty(t, where)
		assert.Empty(t, args)
	}
}
