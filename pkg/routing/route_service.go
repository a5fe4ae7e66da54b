package routing

import (
	"context"
	"time"

	"github.com/lintang-b-s/flood-evac-router/pkg"
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	"go.uber.org/zap"
)

// SegmentFilter drops the segments that are unsafe to route over.
type SegmentFilter interface {
	FilterSafe(ctx context.Context, segments []datastructure.RoadSegment) ([]datastructure.RoadSegment, error)
}

// RouteService filters the road segments, then runs the selected path finder on the safe ones.
type RouteService struct {
	filter   SegmentFilter
	astar    *AStar
	dijkstra *Dijkstra
	logger   *zap.Logger
}

func NewRouteService(filter SegmentFilter, logger *zap.Logger) *RouteService {
	return &RouteService{
		filter:   filter,
		astar:    NewAStar(),
		dijkstra: NewDijkstra(),
		logger:   logger,
	}
}

func (rs *RouteService) finderFor(kind pkg.StrategyKind) PathFinder {
	switch kind {
	case pkg.ASTAR:
		return rs.astar
	default:
		return rs.dijkstra
	}
}

// ComputeRoute returns the path unchanged from the path finder, an empty path is not an error.
func (rs *RouteService) ComputeRoute(ctx context.Context, segments []datastructure.RoadSegment,
	start, end datastructure.Coordinate, kind pkg.StrategyKind) ([]datastructure.Coordinate, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if err := end.Validate(); err != nil {
		return nil, err
	}

	safe, err := rs.filter.FilterSafe(ctx, segments)
	if err != nil {
		return nil, err
	}

	finder := rs.finderFor(kind)
	now := time.Now()
	path := finder.FindPath(safe, start, end)

	rs.logger.Info("route computed",
		zap.String("strategy", finder.Kind().String()),
		zap.Int("segments", len(segments)),
		zap.Int("safe_segments", len(safe)),
		zap.Int("path_size", len(path)),
		zap.Duration("elapsed", time.Since(now)))
	return path, nil
}

// Plan ComputeRoute with the strategy picked by name, summarized as a Route.
func (rs *RouteService) Plan(ctx context.Context, segments []datastructure.RoadSegment,
	start, end datastructure.Coordinate, strategy string) (*Route, error) {
	kind := ParseStrategy(strategy)
	path, err := rs.ComputeRoute(ctx, segments, start, end, kind)
	if err != nil {
		return nil, err
	}
	return NewRoute(kind.String(), path), nil
}
