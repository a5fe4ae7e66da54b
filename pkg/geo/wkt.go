package geo

import (
	"strconv"
	"strings"

	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
)

func formatWKTPoint(c datastructure.Coordinate) string {
	return strconv.FormatFloat(c.X(), 'f', -1, 64) + " " + strconv.FormatFloat(c.Y(), 'f', -1, 64)
}

// LineStringWKT LINESTRING(x y, x y, ...) with full float64 precision
func LineStringWKT(seg datastructure.RoadSegment) string {
	coords := make([]string, 0, seg.NumberOfPoints())
	seg.ForEachPoint(func(_ int, c datastructure.Coordinate) {
		coords = append(coords, formatWKTPoint(c))
	})
	return "LINESTRING(" + strings.Join(coords, ", ") + ")"
}

// PolygonWKT POLYGON((x y, ...)) of the exterior ring
func PolygonWKT(p datastructure.FloodPolygon) string {
	coords := make([]string, 0, p.NumberOfPoints())
	for i := 0; i < p.NumberOfPoints(); i++ {
		coords = append(coords, formatWKTPoint(p.PointAt(i)))
	}
	return "POLYGON((" + strings.Join(coords, ", ") + "))"
}
