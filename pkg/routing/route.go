package routing

import (
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	"github.com/lintang-b-s/flood-evac-router/pkg/geo"
	geojson "github.com/paulmach/go.geojson"
)

// Route summary of a computed path. Steps are [lat, lon] pairs.
type Route struct {
	Strategy     string       `json:"strategy"`
	Found        bool         `json:"found"`
	Steps        [][2]float64 `json:"steps"`
	PlanarLength float64      `json:"planar_length"`
	LengthMeters float64      `json:"length_meters"`
	Polyline     string       `json:"polyline"`

	path []datastructure.Coordinate
}

func NewRoute(strategy string, path []datastructure.Coordinate) *Route {
	steps := make([][2]float64, 0, len(path))
	for _, c := range path {
		steps = append(steps, [2]float64{c.Lat(), c.Lon()})
	}

	return &Route{
		Strategy:     strategy,
		Found:        len(path) > 0,
		Steps:        steps,
		PlanarLength: datastructure.PolylineLength(path),
		LengthMeters: geo.PathLengthMeters(path),
		Polyline:     geo.PolylineFromCoords(path),
		path:         path,
	}
}

func (r *Route) Path() []datastructure.Coordinate {
	return r.path
}

// GeoJSON LineString feature of the route, nil when no route was found.
func (r *Route) GeoJSON() *geojson.Feature {
	if !r.Found {
		return nil
	}
	feature := geo.MakeGeojsonLineString(r.path)
	feature.SetProperty("strategy", r.Strategy)
	feature.SetProperty("length_meters", r.LengthMeters)
	return feature
}
