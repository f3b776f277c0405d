// Package qibla computes the direction and distance toward the Kaaba.
package qibla

import (
	"fmt"
	"math"
)

// Kaaba coordinates in Makkah.
const (
	KaabaLatitude  = 21.4225
	KaabaLongitude = 39.8262
)

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers from the given
// point to the Kaaba (haversine formula).
func Distance(lat, lon float64) float64 {
	return haversine(lat, lon, KaabaLatitude, KaabaLongitude)
}

// Bearing returns the initial great-circle bearing in degrees from north
// toward the Kaaba.
func Bearing(lat, lon float64) float64 {
	phi1 := radians(lat)
	phi2 := radians(KaabaLatitude)
	dLambda := radians(KaabaLongitude - lon)

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	bearing := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}

// FormatDistance renders a distance the way the widget displays it.
func FormatDistance(km float64) string {
	switch {
	case km < 1:
		return fmt.Sprintf("%d м", int(math.Round(km*1000)))
	case km < 1000:
		return fmt.Sprintf("%d км", int(math.Round(km)))
	default:
		return fmt.Sprintf("%d тыс. км", int(math.Round(km/1000)))
	}
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
