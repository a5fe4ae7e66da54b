package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
)

const (
	earthRadiusM = 6371007
)

// PathLengthMeters great-circle length of the path. the planar cost used for routing is only an approximation of this.
func PathLengthMeters(path []datastructure.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		from := s2.LatLngFromDegrees(path[i-1].Lat(), path[i-1].Lon())
		to := s2.LatLngFromDegrees(path[i].Lat(), path[i].Lon())
		total += from.Distance(to).Radians() * earthRadiusM
	}
	return total
}
