package catalog

// Hotel is a read-only reference entity seeded out of band.
type Hotel struct {
	ID        int    `json:"otel_id"`
	Name      string `json:"otel_adi"`
	RoomCount int    `json:"toplam_oda_sayisi"`
}

// RoomType is a reference room category.
type RoomType struct {
	ID   int    `json:"oda_tipi_id"`
	Name string `json:"oda_tipi_adi"`
}

// DefaultYear is assumed when the statistics tables carry no rows yet.
const DefaultYear = 2025
