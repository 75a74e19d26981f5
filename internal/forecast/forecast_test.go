package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomesticAndForeign(t *testing.T) {
	assert.Equal(t, 10400, Domestic(10000))
	assert.Equal(t, 5400, Foreign(5000))
}

func TestSegmentFactors(t *testing.T) {
	assert.Equal(t, 1040, Segment("Yerli Turist", 1000))
	assert.Equal(t, 1080, Segment("Yabancı Turist", 1000))
	assert.Equal(t, 1050, Segment("Aile (Çocuklu)", 1000))
	assert.Equal(t, 1020, Segment("Tur Grubu", 1000))
	assert.Equal(t, 1030, Segment("Tanımsız Segment", 1000), "unknown segments use the default factor")
}

func TestHotelTotalCompoundsTwoFactors(t *testing.T) {
	// round(1000 * 1.075 * 1.025) = 1102
	assert.Equal(t, 1102, HotelTotal("EgeLife Bodrum", 1000))
	// Unknown hotel: round(1000 * 1.06 * 1.025) = 1087
	assert.Equal(t, 1087, HotelTotal("EgeLife Yok", 1000))
}

func TestRoundingToNearestInteger(t *testing.T) {
	assert.Equal(t, 104, Domestic(100))
	assert.Equal(t, 0, Domestic(0))
}
