//go:build geos

package geo

import (
	"fmt"

	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	"github.com/twpayne/go-geos"
)

func init() {
	intersectorFactories[GEOS_INTERSECTOR] = func(polygons []datastructure.FloodPolygon) (Intersector, error) {
		return NewGeosIntersector(polygons)
	}
}

// GeosIntersector delegates to libgeos prepared geometries. needs cgo and libgeos at build time.
type GeosIntersector struct {
	zones []*geos.PrepGeom
}

func NewGeosIntersector(polygons []datastructure.FloodPolygon) (*GeosIntersector, error) {
	zones := make([]*geos.PrepGeom, 0, len(polygons))
	for i, p := range polygons {
		wkt := PolygonWKT(p)
		geom, err := geos.NewGeomFromWKT(wkt)
		if err != nil {
			return nil, fmt.Errorf("flood polygon %d: %w, wkt: %v", i, err, wkt)
		}
		zones = append(zones, geom.Prepare())
	}
	return &GeosIntersector{zones: zones}, nil
}

func (gi *GeosIntersector) Intersects(seg datastructure.RoadSegment) bool {
	line, err := geos.NewGeomFromWKT(LineStringWKT(seg))
	if err != nil {
		// geometry of a constructed segment is always valid wkt
		panic(err)
	}
	for _, zone := range gi.zones {
		if zone.Intersects(line) {
			return true
		}
	}
	return false
}
