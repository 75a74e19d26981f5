package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategicMarginRules(t *testing.T) {
	hotels := []HotelPerformance{
		{Name: "EgeLife Marmaris", Margin: 10.5},
		{Name: "EgeLife Bodrum", Margin: 42.0},
		{Name: "Diğerleri", Margin: 25.0},
	}

	decisions := Strategic(KPISummary{}, KPISummary{}, hotels)

	require.Len(t, decisions, 2)
	assert.Equal(t, "critical", decisions[0].Type)
	assert.Equal(t, "EgeLife Marmaris", decisions[0].Target)
	assert.Contains(t, decisions[0].Reason, "10.5")
	assert.Equal(t, "ACİL", decisions[0].BadgeText)

	assert.Equal(t, "opportunity", decisions[1].Type)
	assert.Equal(t, "EgeLife Bodrum", decisions[1].Target)
	assert.Contains(t, decisions[1].Reason, "42.0")
}

func TestStrategicMarginBoundaries(t *testing.T) {
	// 15 and 35 are strict thresholds; neither fires on the boundary.
	decisions := Strategic(KPISummary{}, KPISummary{}, []HotelPerformance{
		{Name: "A", Margin: 15.0},
		{Name: "B", Margin: 35.0},
	})
	assert.Empty(t, decisions)
}

func TestStrategicBudgetWarning(t *testing.T) {
	current := KPISummary{TotalGross: 110, TotalCost: 120}
	previous := KPISummary{TotalGross: 100, TotalCost: 100}

	decisions := Strategic(current, previous, nil)

	require.Len(t, decisions, 1)
	assert.Equal(t, "warning", decisions[0].Type)
	assert.Equal(t, "Tüm Zincir", decisions[0].Target)
	assert.Contains(t, decisions[0].Reason, "20.0")
	assert.Contains(t, decisions[0].Reason, "10.0")
}

func TestStrategicNoWarningWhenRevenueKeepsPace(t *testing.T) {
	current := KPISummary{TotalGross: 120, TotalCost: 110}
	previous := KPISummary{TotalGross: 100, TotalCost: 100}

	assert.Empty(t, Strategic(current, previous, nil))
}

func TestTacticalForeignShareRule(t *testing.T) {
	in := TacticalInput{
		TargetYear: 2024,
		Segments: []SegmentCount{
			{Segment: "Yabancı Turist", Total: 500},
			{Segment: "Yerli Turist", Total: 400},
		},
	}

	decisions := Tactical(in)

	require.Len(t, decisions, 1)
	assert.Equal(t, "Dinamik Döviz Fiyatlandırması", decisions[0].Title)
	assert.Equal(t, "STRATEJİK", decisions[0].Badge)
}

func TestTacticalQualityRuleNeedsBothConditions(t *testing.T) {
	segments := []SegmentCount{
		{Segment: "Aile (Çocuklu)", Total: 300},
		{Segment: "Yerli Turist", Total: 700},
	}

	low := Tactical(TacticalInput{TargetYear: 2024, Segments: segments, AverageSatisfaction: 3.5})
	require.Len(t, low, 1)
	assert.Equal(t, "KALİTE", low[0].Badge)

	high := Tactical(TacticalInput{TargetYear: 2024, Segments: segments, AverageSatisfaction: 4.2})
	assert.Empty(t, high)
}

func TestTacticalCostPressureRule(t *testing.T) {
	in := TacticalInput{
		TargetYear: 2024,
		Segments: []SegmentCount{
			{Segment: "Tur Grubu", Total: 400},
			{Segment: "Bireysel", Total: 600},
		},
		Financials: KPISummary{TotalProfit: 20, TotalGross: 100},
	}

	decisions := Tactical(in)

	require.Len(t, decisions, 1)
	assert.Equal(t, "VERİMLİLİK", decisions[0].Badge)
	assert.Contains(t, decisions[0].Reason, "20.0")
}

func TestTacticalCapacityNoteOnlyFor2025(t *testing.T) {
	with := Tactical(TacticalInput{TargetYear: 2025})
	require.Len(t, with, 1)
	assert.Equal(t, "PLANLAMA", with[0].Badge)

	without := Tactical(TacticalInput{TargetYear: 2026})
	assert.Empty(t, without)
}

func TestTacticalRulesDoNotShortCircuit(t *testing.T) {
	in := TacticalInput{
		TargetYear: 2025,
		Segments: []SegmentCount{
			{Segment: "Yabancı Turist", Total: 500},
			{Segment: "Tur Grubu", Total: 400},
			{Segment: "Bireysel", Total: 100},
		},
		Financials:          KPISummary{TotalProfit: 10, TotalGross: 100},
		AverageSatisfaction: 4.5,
	}

	decisions := Tactical(in)

	badges := make([]string, 0, len(decisions))
	for _, d := range decisions {
		badges = append(badges, d.Badge)
	}
	assert.Equal(t, []string{"STRATEJİK", "VERİMLİLİK", "PLANLAMA"}, badges)
}
