package flood

import (
	"context"
	"fmt"
	"os"

	"github.com/lintang-b-s/flood-evac-router/pkg"
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	"go.uber.org/zap"
)

// StaticSource serves a fixed set of polygons.
type StaticSource struct {
	polygons []datastructure.FloodPolygon
}

func NewStaticSource(polygons []datastructure.FloodPolygon) *StaticSource {
	return &StaticSource{polygons: polygons}
}

func (s *StaticSource) FetchPolygons(ctx context.Context) ([]datastructure.FloodPolygon, error) {
	if len(s.polygons) == 0 {
		return nil, pkg.ErrNoPolygons
	}
	return s.polygons, nil
}

// FileSource reads the same FeatureCollection HTTPSource downloads, from a local file.
type FileSource struct {
	path   string
	logger *zap.Logger
}

func NewFileSource(path string, logger *zap.Logger) *FileSource {
	return &FileSource{path: path, logger: logger}
}

func (s *FileSource) FetchPolygons(ctx context.Context) ([]datastructure.FloodPolygon, error) {
	s.logger.Info("reading flood zones from file", zap.String("path", s.path))

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrUpstreamUnavailable, err)
	}

	polygons, err := ParsePolygons(data)
	if err != nil {
		return nil, err
	}

	s.logger.Info("loaded flood polygons", zap.Int("count", len(polygons)))
	return polygons, nil
}
