package routing

import (
	"math"
	"sort"

	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
)

type cellKey struct {
	x int64
	y int64
}

// spatialIndex grid over the distinct waypoints of all segments, cell size = proximity tolerance.
// two points closer than the tolerance always lie in the same or adjacent cells.
type spatialIndex struct {
	tolerance float64
	points    []datastructure.Coordinate // in order of first appearance
	cells     map[cellKey][]int
}

func newSpatialIndex(segments []datastructure.RoadSegment, tolerance float64) *spatialIndex {
	si := &spatialIndex{
		tolerance: tolerance,
		points:    make([]datastructure.Coordinate, 0),
		cells:     make(map[cellKey][]int),
	}

	seen := make(map[datastructure.Coordinate]struct{})
	for _, seg := range segments {
		seg.ForEachPoint(func(_ int, c datastructure.Coordinate) {
			if _, ok := seen[c]; ok {
				return
			}
			seen[c] = struct{}{}

			key := si.cellOf(c)
			si.cells[key] = append(si.cells[key], len(si.points))
			si.points = append(si.points, c)
		})
	}
	return si
}

func (si *spatialIndex) cellOf(c datastructure.Coordinate) cellKey {
	return cellKey{
		x: int64(math.Floor(c.X() / si.tolerance)),
		y: int64(math.Floor(c.Y() / si.tolerance)),
	}
}

// neighborsOf every distinct waypoint p != c with euclidean distance(p, c) < tolerance,
// in order of first appearance.
func (si *spatialIndex) neighborsOf(c datastructure.Coordinate) []datastructure.Coordinate {
	center := si.cellOf(c)

	candidates := make([]int, 0)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			candidates = append(candidates, si.cells[cellKey{x: center.x + dx, y: center.y + dy}]...)
		}
	}
	sort.Ints(candidates)

	neighbors := make([]datastructure.Coordinate, 0, len(candidates))
	for _, idx := range candidates {
		p := si.points[idx]
		if p == c {
			continue
		}
		if datastructure.EuclideanDistance(p, c) < si.tolerance {
			neighbors = append(neighbors, p)
		}
	}
	return neighbors
}
