package datastructure

import "math"

// EuclideanDistance treats lon/lat degrees as a flat plane. Only meaningful for small networks.
func EuclideanDistance(a, b Coordinate) float64 {
	dx := a.lon - b.lon
	dy := a.lat - b.lat
	return math.Sqrt(dx*dx + dy*dy)
}

// PolylineLength sum of planar lengths of consecutive points.
func PolylineLength(coords []Coordinate) float64 {
	length := 0.0
	for i := 1; i < len(coords); i++ {
		length += EuclideanDistance(coords[i-1], coords[i])
	}
	return length
}
