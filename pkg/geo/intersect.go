package geo

import (
	"fmt"
	"sort"

	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	PLANAR_INTERSECTOR = "planar"
	GEOS_INTERSECTOR   = "geos"
)

// Intersector answers whether a road polyline touches any of the flood polygons it was built from
// (interior or boundary).
type Intersector interface {
	Intersects(seg datastructure.RoadSegment) bool
}

type IntersectorFactory func(polygons []datastructure.FloodPolygon) (Intersector, error)

var intersectorFactories = map[string]IntersectorFactory{
	PLANAR_INTERSECTOR: func(polygons []datastructure.FloodPolygon) (Intersector, error) {
		return NewPlanarIntersector(polygons), nil
	},
}

func GetIntersectorFactory(name string) (IntersectorFactory, error) {
	factory, ok := intersectorFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown flood intersector %q (available: %v)", name, AvailableIntersectors())
	}
	return factory, nil
}

func AvailableIntersectors() []string {
	names := make([]string, 0, len(intersectorFactories))
	for name := range intersectorFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type planarZone struct {
	ring  orb.Ring
	bound orb.Bound
}

// PlanarIntersector treats lon/lat as a flat plane, same as the path finders.
type PlanarIntersector struct {
	zones []planarZone
}

func NewPlanarIntersector(polygons []datastructure.FloodPolygon) *PlanarIntersector {
	zones := make([]planarZone, 0, len(polygons))
	for _, p := range polygons {
		ring := make(orb.Ring, p.NumberOfPoints())
		for i := 0; i < p.NumberOfPoints(); i++ {
			ring[i] = toOrbPoint(p.PointAt(i))
		}
		zones = append(zones, planarZone{ring: ring, bound: ring.Bound()})
	}
	return &PlanarIntersector{zones: zones}
}

func toOrbPoint(c datastructure.Coordinate) orb.Point {
	return orb.Point{c.X(), c.Y()}
}

func toOrbLineString(seg datastructure.RoadSegment) orb.LineString {
	ls := make(orb.LineString, seg.NumberOfPoints())
	seg.ForEachPoint(func(i int, c datastructure.Coordinate) {
		ls[i] = toOrbPoint(c)
	})
	return ls
}

func (pi *PlanarIntersector) Intersects(seg datastructure.RoadSegment) bool {
	line := toOrbLineString(seg)
	lineBound := line.Bound()
	for _, zone := range pi.zones {
		if !zone.bound.Intersects(lineBound) {
			continue
		}
		if LineIntersectsRing(line, zone.ring) {
			return true
		}
	}
	return false
}

// LineIntersectsRing true if the polyline has a vertex inside/on the ring or any of its edges
// touches a ring edge.
func LineIntersectsRing(line orb.LineString, ring orb.Ring) bool {
	for _, p := range line {
		if planar.RingContains(ring, p) {
			return true
		}
	}

	for i := 1; i < len(line); i++ {
		for j := 1; j < len(ring); j++ {
			if SegmentsIntersect(line[i-1], line[i], ring[j-1], ring[j]) {
				return true
			}
		}
	}
	return false
}

// orientation of three points
// 0 -> p, q and r are collinear
// 1 -> counterclockwise
// -1 -> clockwise
func orientation(p, q, r orb.Point) int {
	val := (q[0]-p[0])*(r[1]-p[1]) - (q[1]-p[1])*(r[0]-p[0])
	if val == 0 {
		return 0
	}
	if val > 0 {
		return 1
	}
	return -1
}

// onSegment r collinear with p-q, check r lies within the bounding box of p-q
func onSegment(p, q, r orb.Point) bool {
	return r[0] <= max(p[0], q[0]) && r[0] >= min(p[0], q[0]) &&
		r[1] <= max(p[1], q[1]) && r[1] >= min(p[1], q[1])
}

// SegmentsIntersect closed segments p1-p2 and q1-q2 share at least one point.
func SegmentsIntersect(p1, p2, q1, q2 orb.Point) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, p2, q2) {
		return true
	}
	if o3 == 0 && onSegment(q1, q2, p1) {
		return true
	}
	if o4 == 0 && onSegment(q1, q2, p2) {
		return true
	}
	return false
}
