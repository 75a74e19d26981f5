// Package forecast extrapolates the next year from the latest observed
// aggregates using fixed multiplicative growth factors. It never reads the
// data store and never mutates its inputs.
package forecast

import "math"

// Growth factors are fixed business constants; do not tune them here.
const (
	DomesticGrowth = 1.04
	ForeignGrowth  = 1.08

	// GlobalTourismGrowth compounds on top of the regional factor for
	// per-hotel totals.
	GlobalTourismGrowth = 0.025

	DefaultSegmentGrowth  = 1.03
	DefaultRegionalGrowth = 0.06
)

var segmentGrowth = map[string]float64{
	"Yerli Turist":   1.04,
	"Yabancı Turist": 1.08,
	"Aile (Çocuklu)": 1.05,
	"Çift":           1.03,
	"Kurumsal / İş":  1.06,
	"Tur Grubu":      1.02,
	"Bireysel":       1.03,
}

var regionalGrowth = map[string]float64{
	"EgeLife Bodrum":    0.075,
	"EgeLife Kuşadası":  0.062,
	"EgeLife Marmaris":  0.058,
	"EgeLife Çeşme":     0.068,
	"EgeLife Pamukkale": 0.045,
	"EgeLife Fethiye":   0.082,
}

// Domestic projects a domestic-tourist count one year ahead.
func Domestic(base int) int {
	return round(float64(base) * DomesticGrowth)
}

// Foreign projects a foreign-tourist count one year ahead.
func Foreign(base int) int {
	return round(float64(base) * ForeignGrowth)
}

// Segment projects a customer-segment count using the per-segment factor
// table; unknown segments use the default factor.
func Segment(name string, base int) int {
	factor, ok := segmentGrowth[name]
	if !ok {
		factor = DefaultSegmentGrowth
	}
	return round(float64(base) * factor)
}

// HotelTotal projects a per-hotel customer total by compounding the hotel's
// regional factor with the global tourism factor, in that order.
func HotelTotal(hotel string, base int) int {
	regional, ok := regionalGrowth[hotel]
	if !ok {
		regional = DefaultRegionalGrowth
	}
	return round(float64(base) * (1 + regional) * (1 + GlobalTourismGrowth))
}

func round(v float64) int {
	return int(math.Round(v))
}
