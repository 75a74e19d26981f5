package customers

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/egelife/insight/internal/advisory"
	"github.com/egelife/insight/internal/catalog"
	"github.com/egelife/insight/internal/forecast"
	"github.com/egelife/insight/internal/shared"
)

// Projections are served for the year after the latest observed one,
// always extrapolated from the base year's actuals.
const (
	baseYear     = catalog.DefaultYear
	forecastYear = baseYear + 1
)

// FinancialSummary supplies the chain totals the tactical rules check.
// Implemented by the finance service.
type FinancialSummary interface {
	FinancialSummary(ctx context.Context, year int) (advisory.KPISummary, error)
}

// SatisfactionAverage supplies the mean satisfaction score for the
// tactical rules. Implemented by the satisfaction service.
type SatisfactionAverage interface {
	AverageScore(ctx context.Context, year, hotelID int) (float64, error)
}

// Service shapes segmentation aggregates into the chart payloads and
// applies the forecast layer for the projection year.
type Service struct {
	repo         Repository
	finance      FinancialSummary
	satisfaction SatisfactionAverage
	logger       *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, finance FinancialSummary, satisfaction SatisfactionAverage, logger *slog.Logger) *Service {
	return &Service{repo: repo, finance: finance, satisfaction: satisfaction, logger: logger}
}

// TypeDistribution returns the domestic/foreign classification rows.
func (s *Service) TypeDistribution(ctx context.Context, year int) ([]TypeCount, error) {
	return s.repo.TypeDistribution(ctx, year)
}

// MonthlyTypes returns per-month segment counts for the requested years.
func (s *Service) MonthlyTypes(ctx context.Context, years []int, hotelID int) ([]MonthlyTypeRow, error) {
	return s.repo.MonthlyTypes(ctx, years, hotelID)
}

// DomesticForeign returns the two-value split for a year. The projection
// year is extrapolated from the base year's actuals.
func (s *Service) DomesticForeign(ctx context.Context, year int) (DomesticForeign, error) {
	if year == forecastYear {
		base, err := s.repo.DomesticForeignSplit(ctx, baseYear)
		if err != nil {
			return DomesticForeign{}, err
		}
		return DomesticForeign{
			Domestic: forecast.Domestic(base.Domestic),
			Foreign:  forecast.Foreign(base.Foreign),
		}, nil
	}
	return s.repo.DomesticForeignSplit(ctx, year)
}

// DomesticForeignDistribution returns the id 1 and 2 totals as a
// {yerli, yabanci} pair. Year 0 spans all years.
func (s *Service) DomesticForeignDistribution(ctx context.Context, year int) (DomesticForeign, error) {
	rows, err := s.repo.DomesticForeignTotals(ctx, year)
	if err != nil {
		return DomesticForeign{}, err
	}
	var split DomesticForeign
	for _, row := range rows {
		switch row.TypeID {
		case 1:
			split.Domestic = row.Total
		case 2:
			split.Foreign = row.Total
		}
	}
	return split, nil
}

// GeneralDistribution returns every segment's total as chart rows.
func (s *Service) GeneralDistribution(ctx context.Context, year int) ([]TypeDistribution, error) {
	return s.repo.GeneralDistribution(ctx, year)
}

// SegmentsByYear returns the chain-wide segment breakdown for a year,
// extrapolating the projection year from the base year.
func (s *Service) SegmentsByYear(ctx context.Context, year int) ([]SegmentBreakdown, error) {
	queryYear := year
	if year == forecastYear {
		queryYear = baseYear
	}
	totals, err := s.repo.SegmentTotalsByYear(ctx, queryYear)
	if err != nil {
		return nil, err
	}

	breakdown := make([]SegmentBreakdown, 0, len(totals))
	for _, t := range totals {
		count := t.Total
		if year == forecastYear {
			count = forecast.Segment(t.Type, count)
		}
		breakdown = append(breakdown, SegmentBreakdown{ID: t.TypeID, Name: t.Type, Count: count})
	}
	return breakdown, nil
}

// SegmentsByHotel returns the seven segment counts for one hotel and year.
func (s *Service) SegmentsByHotel(ctx context.Context, year, hotelID int) ([]SegmentBreakdown, error) {
	return s.repo.SegmentBreakdown(ctx, year, hotelID)
}

// SegmentLabels returns the labels/data pie payload, using the year-wide
// totals when no hotel filter applies.
func (s *Service) SegmentLabels(ctx context.Context, year, hotelID int) (LabelsData, error) {
	var (
		totals []TypeDistribution
		err    error
	)
	if hotelID == 0 && year > 0 {
		totals, err = s.repo.SegmentTotalsByYear(ctx, year)
	} else {
		totals, err = s.repo.SegmentTotals(ctx, hotelID, year)
	}
	if err != nil {
		return LabelsData{}, err
	}

	data := LabelsData{Labels: make([]string, 0, len(totals)), Data: make([]int, 0, len(totals))}
	for _, t := range totals {
		data.Labels = append(data.Labels, t.Type)
		data.Data = append(data.Data, t.Total)
	}
	return data, nil
}

// MonthlyMatrix returns the stacked bar payload for one year, one
// 12-value series per segment.
func (s *Service) MonthlyMatrix(ctx context.Context, year, hotelID int) (MonthlyMatrix, error) {
	totals, err := s.repo.MonthlySegmentTotals(ctx, year, hotelID)
	if err != nil {
		return MonthlyMatrix{}, err
	}

	matrix := MonthlyMatrix{Months: shared.MonthNames[:], Series: map[string][]int{}}
	for _, t := range totals {
		if t.Month < 1 || t.Month > 12 {
			continue
		}
		if _, ok := matrix.Series[t.Type]; !ok {
			matrix.Series[t.Type] = make([]int, 12)
		}
		matrix.Series[t.Type][t.Month-1] = t.Total
	}
	return matrix, nil
}

// Trend returns the 12-month guest totals with the staffing overlay. A
// failed staff lookup degrades to a zero overlay instead of failing the
// chart.
func (s *Service) Trend(ctx context.Context, year, hotelID int) (TrendSeries, error) {
	guests, err := s.repo.MonthlyGuestTotals(ctx, year, hotelID)
	if err != nil {
		return TrendSeries{}, err
	}

	trend := TrendSeries{
		Months: shared.MonthNames[:],
		Values: make([]int, 12),
		Staff:  make([]int, 12),
	}
	for _, g := range guests {
		if g.Month >= 1 && g.Month <= 12 {
			trend.Values[g.Month-1] = g.Total
		}
	}

	staff, err := s.repo.MonthlyStaffCounts(ctx, year, hotelID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("staff overlay unavailable", "error", err, "year", year, "hotel_id", hotelID)
		}
		return trend, nil
	}
	for _, m := range staff {
		if m.Month >= 1 && m.Month <= 12 {
			trend.Staff[m.Month-1] = m.Total
		}
	}
	return trend, nil
}

// MonthlyCustomerTotals folds the trend totals into a fixed 12-month
// array for the productivity report.
func (s *Service) MonthlyCustomerTotals(ctx context.Context, year, hotelID int) ([12]int, error) {
	var totals [12]int
	guests, err := s.repo.MonthlyGuestTotals(ctx, year, hotelID)
	if err != nil {
		return totals, err
	}
	for _, g := range guests {
		if g.Month >= 1 && g.Month <= 12 {
			totals[g.Month-1] = g.Total
		}
	}
	return totals, nil
}

// HotelComparison returns every hotel's guest total for a year. The
// projection year compounds each hotel's regional factor on the base
// year's totals.
func (s *Service) HotelComparison(ctx context.Context, year int) (HotelComparison, error) {
	queryYear := year
	if year == forecastYear {
		queryYear = baseYear
	}
	totals, err := s.repo.HotelComparisonTotals(ctx, queryYear)
	if err != nil {
		return HotelComparison{}, err
	}

	comparison := HotelComparison{
		Hotels: make([]string, 0, len(totals)),
		Totals: make([]int, 0, len(totals)),
	}
	for _, t := range totals {
		total := t.Total
		if year == forecastYear {
			total = forecast.HotelTotal(t.Name, total)
		}
		comparison.Hotels = append(comparison.Hotels, t.Name)
		comparison.Totals = append(comparison.Totals, total)
	}
	return comparison, nil
}

// Analysis returns the combined pie and monthly bar payload. Slice and
// group order follows the first appearance in the month-ordered rows.
func (s *Service) Analysis(ctx context.Context, year, hotelID int) (AnalysisData, error) {
	rows, err := s.repo.AnalysisRows(ctx, year, hotelID)
	if err != nil {
		return AnalysisData{}, err
	}

	pieTotals := map[string]int{}
	pieOrder := []string{}
	groups := map[[2]int]*BarGroup{}
	groupOrder := [][2]int{}

	for _, row := range rows {
		if _, ok := pieTotals[row.Type]; !ok {
			pieOrder = append(pieOrder, row.Type)
		}
		pieTotals[row.Type] += row.Count

		key := [2]int{row.Year, row.Month}
		group, ok := groups[key]
		if !ok {
			group = &BarGroup{Year: row.Year, Month: row.Month, Types: map[string]int{}}
			groups[key] = group
			groupOrder = append(groupOrder, key)
		}
		group.Types[row.Type] += row.Count
	}

	data := AnalysisData{PieChart: make([]PieSlice, 0, len(pieOrder)), BarChart: make([]BarGroup, 0, len(groupOrder))}
	for _, name := range pieOrder {
		data.PieChart = append(data.PieChart, PieSlice{Type: name, Total: pieTotals[name]})
	}
	for _, key := range groupOrder {
		data.BarChart = append(data.BarChart, *groups[key])
	}
	return data, nil
}

// CampaignImpactRadar returns the per-hotel impact radar for one campaign.
func (s *Service) CampaignImpactRadar(ctx context.Context, year, campaignID int) (RadarChart, error) {
	rows, err := s.repo.CampaignImpact(ctx, year, campaignID)
	if err != nil {
		return RadarChart{}, err
	}

	labelSet := map[string]bool{}
	byHotel := map[string]map[string]float64{}
	hotelOrder := []string{}
	for _, row := range rows {
		labelSet[row.Type] = true
		if _, ok := byHotel[row.Hotel]; !ok {
			byHotel[row.Hotel] = map[string]float64{}
			hotelOrder = append(hotelOrder, row.Hotel)
		}
		byHotel[row.Hotel][row.Type] = row.Score
	}

	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	chart := RadarChart{Labels: labels, Datasets: make([]RadarDataset, 0, len(hotelOrder))}
	for _, hotel := range hotelOrder {
		data := make([]float64, len(labels))
		for i, label := range labels {
			data[i] = byHotel[hotel][label]
		}
		chart.Datasets = append(chart.Datasets, RadarDataset{Label: hotel, Data: data})
	}
	return chart, nil
}

// RoomPreferenceChart returns the grouped bar of room-type preference
// scores per segment, one colored dataset per room type.
func (s *Service) RoomPreferenceChart(ctx context.Context, year, hotelID int) (GroupedBar, error) {
	rows, err := s.repo.RoomPreferences(ctx, year, hotelID)
	if err != nil {
		return GroupedBar{}, err
	}

	segmentSet := map[string]bool{}
	roomSet := map[string]bool{}
	scores := map[string]map[string]int{}
	for _, row := range rows {
		segmentSet[row.Type] = true
		roomSet[row.RoomType] = true
		if _, ok := scores[row.Type]; !ok {
			scores[row.Type] = map[string]int{}
		}
		scores[row.Type][row.RoomType] = row.Score
	}

	labels := make([]string, 0, len(segmentSet))
	for name := range segmentSet {
		labels = append(labels, name)
	}
	sort.Strings(labels)

	rooms := make([]string, 0, len(roomSet))
	for name := range roomSet {
		rooms = append(rooms, name)
	}
	sort.Strings(rooms)

	chart := GroupedBar{Labels: labels, Datasets: make([]BarDataset, 0, len(rooms))}
	for i, room := range rooms {
		data := make([]int, len(labels))
		for j, label := range labels {
			data[j] = scores[label][room]
		}
		chart.Datasets = append(chart.Datasets, BarDataset{
			Label:           room,
			Data:            data,
			BackgroundColor: chartPalette[i%len(chartPalette)],
			BorderColor:     "white",
			BorderWidth:     1,
		})
	}
	return chart, nil
}

// Profitability returns each segment's stored margin and volume.
func (s *Service) Profitability(ctx context.Context, year int) ([]ProfitabilityRow, error) {
	return s.repo.Profitability(ctx, year)
}

// TacticalDecisions gathers the segment mix, chain financials and the
// mean satisfaction score, then runs the tactical rule set. Each source
// degrades to its zero value so one missing input never silences the
// other rules.
func (s *Service) TacticalDecisions(ctx context.Context, year, hotelID int) []advisory.TacticalDecision {
	var (
		segments     []TypeDistribution
		financials   advisory.KPISummary
		satisfaction float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := s.repo.SegmentTotals(gctx, hotelID, year)
		if err != nil {
			s.warn("tactical segments unavailable", err, year, hotelID)
			return nil
		}
		segments = data
		return nil
	})
	g.Go(func() error {
		data, err := s.finance.FinancialSummary(gctx, year)
		if err != nil {
			s.warn("tactical financials unavailable", err, year, hotelID)
			return nil
		}
		financials = data
		return nil
	})
	g.Go(func() error {
		score, err := s.satisfaction.AverageScore(gctx, year, hotelID)
		if err != nil {
			s.warn("tactical satisfaction unavailable", err, year, hotelID)
			return nil
		}
		satisfaction = score
		return nil
	})
	_ = g.Wait()

	counts := make([]advisory.SegmentCount, 0, len(segments))
	for _, seg := range segments {
		counts = append(counts, advisory.SegmentCount{Segment: seg.Type, Total: seg.Total})
	}

	return advisory.Tactical(advisory.TacticalInput{
		TargetYear:          year,
		Segments:            counts,
		Financials:          financials,
		AverageSatisfaction: satisfaction,
	})
}

func (s *Service) warn(msg string, err error, year, hotelID int) {
	if s.logger != nil {
		s.logger.Warn(msg, "error", err, "year", year, "hotel_id", hotelID)
	}
}
