package httpx

import (
	"net/http"
	"strconv"
)

// YearParam reads the yil query parameter. The second return value is false
// when the parameter is empty, "all", or not numeric, meaning no year filter.
func YearParam(r *http.Request) (int, bool) {
	return intParam(r, "yil")
}

// HotelParam reads the hotel filter. Both otel_id and the older otelId
// spelling are accepted.
func HotelParam(r *http.Request) (int, bool) {
	if id, ok := intParam(r, "otel_id"); ok {
		return id, true
	}
	return intParam(r, "otelId")
}

// IntQuery reads a positive integer query parameter with a default.
func IntQuery(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}

func intParam(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" || raw == "all" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
