package utils

import (
	"math"
)

// meanEarthRadiusKm is the IUGG mean radius
const meanEarthRadiusKm = 6371.0088

// Point is a position in decimal degrees
type Point struct {
	Lat float64
	Lng float64
}

// DistanceKm returns the great-circle distance between two points using the
// haversine formula. The result is symmetric and zero for identical points.
func DistanceKm(from, to Point) float64 {
	fromLat, toLat := radians(from.Lat), radians(to.Lat)
	h := hav(toLat-fromLat) + math.Cos(fromLat)*math.Cos(toLat)*hav(radians(to.Lng-from.Lng))

	// rounding can push h a hair above 1 for antipodal points
	return 2 * meanEarthRadiusKm * math.Asin(math.Sqrt(math.Min(1, h)))
}

func hav(theta float64) float64 {
	s := math.Sin(theta / 2)
	return s * s
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Clamp limits a value between lo and hi
func Clamp(value, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, value))
}

// RoundTenths rounds to one decimal place, the precision of every chart value
func RoundTenths(value float64) float64 {
	return math.Round(value*10) / 10
}
