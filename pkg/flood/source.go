package flood

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lintang-b-s/flood-evac-router/pkg"
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// PolygonSource supplies the flood hazard polygons. failures must wrap pkg.ErrUpstreamUnavailable
// or pkg.ErrNoPolygons.
type PolygonSource interface {
	FetchPolygons(ctx context.Context) ([]datastructure.FloodPolygon, error)
}

// HTTPSource downloads a geojson FeatureCollection of Polygon/MultiPolygon features.
type HTTPSource struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewHTTPSource(url string, timeout time.Duration, logger *zap.Logger) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (s *HTTPSource) FetchPolygons(ctx context.Context) ([]datastructure.FloodPolygon, error) {
	s.logger.Info("downloading flood zones from backend", zap.String("url", s.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: backend responded %s", pkg.ErrUpstreamUnavailable, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", pkg.ErrUpstreamUnavailable, err)
	}

	polygons, err := ParsePolygons(body)
	if err != nil {
		return nil, err
	}

	s.logger.Info("loaded flood polygons", zap.Int("count", len(polygons)))
	return polygons, nil
}

// ParsePolygons decodes a FeatureCollection. only the exterior ring of every polygon is kept,
// each member of a MultiPolygon becomes its own FloodPolygon.
func ParsePolygons(data []byte) ([]datastructure.FloodPolygon, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("%w: empty flood response from backend", pkg.ErrUpstreamUnavailable)
	}

	var collection struct {
		Features []*geojson.Feature `json:"features"`
	}
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("%w: invalid flood json: %v", pkg.ErrUpstreamUnavailable, err)
	}
	if collection.Features == nil {
		return nil, fmt.Errorf("%w: invalid flood json structure, missing 'features'", pkg.ErrUpstreamUnavailable)
	}

	polygons := make([]datastructure.FloodPolygon, 0, len(collection.Features))
	for i, f := range collection.Features {
		if f == nil || f.Geometry == nil {
			return nil, fmt.Errorf("%w: feature %d has no geometry", pkg.ErrUpstreamUnavailable, i)
		}

		switch g := f.Geometry.(type) {
		case orb.Polygon:
			p, err := polygonFromOrb(g)
			if err != nil {
				return nil, fmt.Errorf("%w: feature %d: %v", pkg.ErrUpstreamUnavailable, i, err)
			}
			polygons = append(polygons, p)
		case orb.MultiPolygon:
			for _, member := range g {
				p, err := polygonFromOrb(member)
				if err != nil {
					return nil, fmt.Errorf("%w: feature %d: %v", pkg.ErrUpstreamUnavailable, i, err)
				}
				polygons = append(polygons, p)
			}
		default:
			return nil, fmt.Errorf("%w: invalid flood geometry type %s, expected Polygon",
				pkg.ErrUpstreamUnavailable, f.Geometry.GeoJSONType())
		}
	}

	if len(polygons) == 0 {
		return nil, pkg.ErrNoPolygons
	}
	return polygons, nil
}

func polygonFromOrb(p orb.Polygon) (datastructure.FloodPolygon, error) {
	if len(p) == 0 {
		return datastructure.FloodPolygon{}, fmt.Errorf("polygon missing coordinates")
	}
	exterior := p[0]
	ring := make([]datastructure.Coordinate, 0, len(exterior))
	for _, pt := range exterior {
		ring = append(ring, datastructure.NewCoordinate(pt.Lat(), pt.Lon()))
	}
	return datastructure.NewFloodPolygon(ring)
}
