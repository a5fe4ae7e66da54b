package roadloader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/flood-evac-router/pkg"
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	geojson "github.com/paulmach/go.geojson"
	"go.uber.org/zap"
)

const (
	COST_PROPERTY    = "cost"
	FLOODED_PROPERTY = "flooded"
)

type GeoJSONRoadLoader struct {
	logger *zap.Logger
}

func NewGeoJSONRoadLoader(logger *zap.Logger) *GeoJSONRoadLoader {
	return &GeoJSONRoadLoader{logger: logger}
}

// LoadFile reads a road FeatureCollection, files ending in .bz2 are decompressed on the fly.
func (l *GeoJSONRoadLoader) LoadFile(path string) ([]datastructure.RoadSegment, error) {
	l.logger.Info("loading road geojson", zap.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening road file %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(r, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	segments, err := l.Parse(data)
	if err != nil {
		return nil, err
	}

	l.logger.Info("loaded road segments", zap.Int("count", len(segments)))
	return segments, nil
}

// Parse only LineString features become road segments, everything else is skipped.
func (l *GeoJSONRoadLoader) Parse(data []byte) ([]datastructure.RoadSegment, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid road geojson: %v", pkg.ErrMalformedInput, err)
	}
	if fc.Features == nil {
		return nil, fmt.Errorf("%w: invalid road geojson, missing 'features'", pkg.ErrMalformedInput)
	}

	segments := make([]datastructure.RoadSegment, 0, len(fc.Features))
	for i, feature := range fc.Features {
		if feature == nil || feature.Geometry == nil || !feature.Geometry.IsLineString() {
			continue
		}

		seg, err := roadSegmentFromFeature(i, feature)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	skipped := len(fc.Features) - len(segments)
	if skipped > 0 {
		l.logger.Debug("skipped non LineString road features", zap.Int("skipped", skipped))
	}
	return segments, nil
}

func roadSegmentFromFeature(index int, feature *geojson.Feature) (datastructure.RoadSegment, error) {
	id := fmt.Sprintf("road-%d", index)
	if feature.ID != nil {
		id = fmt.Sprint(feature.ID)
	}

	geometry := make([]datastructure.Coordinate, 0, len(feature.Geometry.LineString))
	for _, pos := range feature.Geometry.LineString {
		if len(pos) < 2 {
			return datastructure.RoadSegment{}, fmt.Errorf("%w: road %s has a position with %d values",
				pkg.ErrMalformedInput, id, len(pos))
		}
		geometry = append(geometry, datastructure.NewCoordinate(pos[1], pos[0]))
	}

	flooded := false
	if _, ok := feature.Properties[FLOODED_PROPERTY]; ok {
		var err error
		flooded, err = feature.PropertyBool(FLOODED_PROPERTY)
		if err != nil {
			return datastructure.RoadSegment{}, fmt.Errorf("%w: road %s: %v", pkg.ErrMalformedInput, id, err)
		}
	}

	if _, ok := feature.Properties[COST_PROPERTY]; ok {
		cost, err := feature.PropertyFloat64(COST_PROPERTY)
		if err != nil {
			return datastructure.RoadSegment{}, fmt.Errorf("%w: road %s: %v", pkg.ErrMalformedInput, id, err)
		}
		return datastructure.NewRoadSegment(id, geometry, cost, flooded)
	}
	return datastructure.NewRoadSegmentWithLength(id, geometry, flooded)
}
