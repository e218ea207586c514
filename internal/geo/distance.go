package geo

import (
	"fmt"
	"math"

	"github.com/Veraticus/soko/internal/model"
)

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance between a and b in kilometres.
func Distance(a, b model.Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// FormatDistance renders "850 m away" or "3.2 km away".
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0f m away", km*1000)
	}
	return fmt.Sprintf("%.1f km away", km)
}

// DistanceLabel returns the distance from center to the listing, or ""
// when the listing has no position.
func DistanceLabel(center model.Coordinate, item model.Listing) string {
	pos, ok := item.Position()
	if !ok {
		return ""
	}
	return FormatDistance(Distance(center, pos))
}
