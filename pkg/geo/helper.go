package geo

import (
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	geojson "github.com/paulmach/go.geojson"
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords google encoded polyline of the path (lat,lon order, precision 5)
func PolylineFromCoords(path []datastructure.Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat(), p.Lon()})
	}
	return string(polyline.EncodeCoords(coords))
}

// MakeGeojsonLineString geojson feature of the path, coordinates in [lon, lat] order
func MakeGeojsonLineString(path []datastructure.Coordinate) *geojson.Feature {
	geojsonPoints := make([][]float64, 0, len(path))
	for _, coordinate := range path {
		geojsonPoints = append(
			geojsonPoints,
			[]float64{coordinate.Lon(), coordinate.Lat()},
		)
	}
	return geojson.NewLineStringFeature(geojsonPoints)
}
