package datastructure

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/flood-evac-router/pkg"
)

// RoadSegment is one road polyline. Immutable once constructed.
type RoadSegment struct {
	id       string
	geometry []Coordinate
	cost     float64
	flooded  bool // static flag set at load time
}

func NewRoadSegment(id string, geometry []Coordinate, cost float64, flooded bool) (RoadSegment, error) {
	if len(geometry) < 2 {
		return RoadSegment{}, fmt.Errorf("%w: road segment %q has %d points, need at least 2",
			pkg.ErrMalformedInput, id, len(geometry))
	}
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 {
		return RoadSegment{}, fmt.Errorf("%w: road segment %q has invalid cost %v", pkg.ErrMalformedInput, id, cost)
	}

	geom := make([]Coordinate, len(geometry))
	copy(geom, geometry)
	return RoadSegment{
		id:       id,
		geometry: geom,
		cost:     cost,
		flooded:  flooded,
	}, nil
}

// NewRoadSegmentWithLength uses the planar polyline length as the traversal cost.
func NewRoadSegmentWithLength(id string, geometry []Coordinate, flooded bool) (RoadSegment, error) {
	return NewRoadSegment(id, geometry, PolylineLength(geometry), flooded)
}

func (s RoadSegment) ID() string {
	return s.id
}

func (s RoadSegment) Cost() float64 {
	return s.cost
}

func (s RoadSegment) IsFlooded() bool {
	return s.flooded
}

// Geometry returns a copy of the polyline points.
func (s RoadSegment) Geometry() []Coordinate {
	geom := make([]Coordinate, len(s.geometry))
	copy(geom, s.geometry)
	return geom
}

func (s RoadSegment) NumberOfPoints() int {
	return len(s.geometry)
}

func (s RoadSegment) PointAt(i int) Coordinate {
	return s.geometry[i]
}

func (s RoadSegment) StartPoint() Coordinate {
	return s.geometry[0]
}

func (s RoadSegment) EndPoint() Coordinate {
	return s.geometry[len(s.geometry)-1]
}

func (s RoadSegment) ForEachPoint(handle func(i int, c Coordinate)) {
	for i, c := range s.geometry {
		handle(i, c)
	}
}
