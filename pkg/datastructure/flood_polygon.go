package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/flood-evac-router/pkg"
)

// FloodPolygon closed ring (first == last) of a hazard area.
// the ring is assumed non self-intersecting, it is not validated.
type FloodPolygon struct {
	ring []Coordinate
}

// NewFloodPolygon closes the ring if the last point differs from the first.
func NewFloodPolygon(ring []Coordinate) (FloodPolygon, error) {
	if len(ring) < 3 {
		return FloodPolygon{}, fmt.Errorf("%w: flood polygon ring has %d points, need at least 3",
			pkg.ErrMalformedInput, len(ring))
	}

	closed := make([]Coordinate, len(ring), len(ring)+1)
	copy(closed, ring)
	if closed[0] != closed[len(closed)-1] {
		closed = append(closed, closed[0])
	}
	return FloodPolygon{ring: closed}, nil
}

func (p FloodPolygon) Ring() []Coordinate {
	ring := make([]Coordinate, len(p.ring))
	copy(ring, p.ring)
	return ring
}

func (p FloodPolygon) NumberOfPoints() int {
	return len(p.ring)
}

func (p FloodPolygon) PointAt(i int) Coordinate {
	return p.ring[i]
}
