package httpx

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYearParam(t *testing.T) {
	cases := []struct {
		query string
		want  int
		ok    bool
	}{
		{"/x?yil=2025", 2025, true},
		{"/x?yil=all", 0, false},
		{"/x?yil=", 0, false},
		{"/x", 0, false},
		{"/x?yil=abc", 0, false},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", tc.query, nil)
		got, ok := YearParam(r)
		assert.Equal(t, tc.want, got, tc.query)
		assert.Equal(t, tc.ok, ok, tc.query)
	}
}

func TestHotelParamAcceptsBothSpellings(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?otel_id=3", nil)
	id, ok := HotelParam(r)
	assert.True(t, ok)
	assert.Equal(t, 3, id)

	r = httptest.NewRequest("GET", "/x?otelId=7", nil)
	id, ok = HotelParam(r)
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	r = httptest.NewRequest("GET", "/x?otel_id=all", nil)
	_, ok = HotelParam(r)
	assert.False(t, ok)
}

func TestMissingParamBody(t *testing.T) {
	rec := httptest.NewRecorder()
	MissingParam(rec, "Yıl")
	assert.Equal(t, 400, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"Yıl parametresi gereklidir"}`, rec.Body.String())
}
