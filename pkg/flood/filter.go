package flood

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lintang-b-s/flood-evac-router/pkg"
	"github.com/lintang-b-s/flood-evac-router/pkg/concurrent"
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	"github.com/lintang-b-s/flood-evac-router/pkg/geo"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const loadKey = "flood-zones"

// zoneCache read-only once published.
type zoneCache struct {
	polygons    []datastructure.FloodPolygon
	intersector geo.Intersector
}

// SafetyFilter removes road segments that intersect any flood polygon. the polygons are fetched on
// first use and cached for the lifetime of the filter, concurrent cold-start callers share one fetch.
type SafetyFilter struct {
	source         PolygonSource
	newIntersector geo.IntersectorFactory
	numWorkers     int
	logger         *zap.Logger

	mu    sync.RWMutex
	cache *zoneCache
	group singleflight.Group
}

func NewSafetyFilter(source PolygonSource, newIntersector geo.IntersectorFactory, numWorkers int,
	logger *zap.Logger) *SafetyFilter {
	return &SafetyFilter{
		source:         source,
		newIntersector: newIntersector,
		numWorkers:     numWorkers,
		logger:         logger,
	}
}

// FilterSafe keeps, in input order, the segments that intersect none of the flood polygons.
func (f *SafetyFilter) FilterSafe(ctx context.Context, segments []datastructure.RoadSegment) ([]datastructure.RoadSegment, error) {
	if len(segments) == 0 {
		return nil, pkg.ErrEmptyInput
	}

	zones, err := f.zones(ctx)
	if err != nil {
		return nil, err
	}

	safe := f.classify(zones.intersector, segments)

	filtered := make([]datastructure.RoadSegment, 0, len(segments))
	for i, seg := range segments {
		if safe[i] {
			filtered = append(filtered, seg)
		}
	}

	f.logger.Debug("flood filter applied",
		zap.Int("input", len(segments)),
		zap.Int("safe", len(filtered)),
		zap.Int("polygons", len(zones.polygons)))
	return filtered, nil
}

// IsSafe single segment version of FilterSafe.
func (f *SafetyFilter) IsSafe(ctx context.Context, seg datastructure.RoadSegment) (bool, error) {
	zones, err := f.zones(ctx)
	if err != nil {
		return false, err
	}
	return !zones.intersector.Intersects(seg), nil
}

// Reload fetches the polygons again and swaps the cache. the previous cache stays in place if the fetch fails.
func (f *SafetyFilter) Reload(ctx context.Context) error {
	_, err := f.do(ctx, func() (*zoneCache, error) {
		return f.load(ctx)
	})
	return err
}

// Polygons currently cached polygons, nil before the first load.
func (f *SafetyFilter) Polygons() []datastructure.FloodPolygon {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.cache == nil {
		return nil
	}
	return f.cache.polygons
}

func (f *SafetyFilter) cached() *zoneCache {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cache
}

func (f *SafetyFilter) zones(ctx context.Context) (*zoneCache, error) {
	if c := f.cached(); c != nil {
		return c, nil
	}

	f.logger.Warn("flood polygon cache is empty, loading...")
	return f.do(ctx, func() (*zoneCache, error) {
		// a caller that lost the race arrives after the winner published
		if c := f.cached(); c != nil {
			return c, nil
		}
		return f.load(ctx)
	})
}

// do runs fn once for all concurrent callers. the shared fetch is detached from the caller that
// started it, a waiting caller still returns early when its own ctx is done.
func (f *SafetyFilter) do(ctx context.Context, fn func() (*zoneCache, error)) (*zoneCache, error) {
	ch := f.group.DoChan(loadKey, func() (interface{}, error) {
		return fn()
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", pkg.ErrUpstreamUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*zoneCache), nil
	}
}

func (f *SafetyFilter) load(ctx context.Context) (*zoneCache, error) {
	polygons, err := f.source.FetchPolygons(context.WithoutCancel(ctx))
	if err == nil && len(polygons) == 0 {
		err = pkg.ErrNoPolygons
	}
	if err != nil {
		if !errors.Is(err, pkg.ErrNoPolygons) && !errors.Is(err, pkg.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %v", pkg.ErrUpstreamUnavailable, err)
		}
		f.logger.Error("failed to load flood zones", zap.Error(err))
		return nil, err
	}

	intersector, err := f.newIntersector(polygons)
	if err != nil {
		err = fmt.Errorf("%w: %v", pkg.ErrUpstreamUnavailable, err)
		f.logger.Error("failed to prepare flood zones", zap.Error(err))
		return nil, err
	}

	c := &zoneCache{polygons: polygons, intersector: intersector}
	f.mu.Lock()
	f.cache = c
	f.mu.Unlock()

	f.logger.Info("flood zones cached", zap.Int("polygons", len(polygons)))
	return c, nil
}

type classifyJob struct {
	index int
	seg   datastructure.RoadSegment
}

type classifyResult struct {
	index int
	safe  bool
}

func (f *SafetyFilter) classify(intersector geo.Intersector, segments []datastructure.RoadSegment) []bool {
	safe := make([]bool, len(segments))

	if len(segments) < pkg.PARALLEL_FILTER_THRESHOLD || f.numWorkers <= 1 {
		for i, seg := range segments {
			safe[i] = !intersector.Intersects(seg)
		}
		return safe
	}

	wp := concurrent.NewWorkerPool[classifyJob, classifyResult](f.numWorkers, len(segments))
	wp.Start(func(job classifyJob) classifyResult {
		return classifyResult{index: job.index, safe: !intersector.Intersects(job.seg)}
	})
	for i, seg := range segments {
		wp.AddJob(classifyJob{index: i, seg: seg})
	}
	wp.Close()
	wp.Wait()

	for res := range wp.CollectResults() {
		safe[res.index] = res.safe
	}
	return safe
}
