package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lintang-b-s/flood-evac-router/pkg/config"
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	"github.com/lintang-b-s/flood-evac-router/pkg/flood"
	"github.com/lintang-b-s/flood-evac-router/pkg/geo"
	"github.com/lintang-b-s/flood-evac-router/pkg/logger"
	"github.com/lintang-b-s/flood-evac-router/pkg/osmparser"
	"github.com/lintang-b-s/flood-evac-router/pkg/roadloader"
	"github.com/lintang-b-s/flood-evac-router/pkg/routing"
	"go.uber.org/zap"
)

func main() {
	if err := config.Init(); err != nil {
		panic(err)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	segments, err := loadRoads(ctx, cfg.RoadsPath, logger)
	if err != nil {
		logger.Fatal("failed to load road network", zap.String("path", cfg.RoadsPath), zap.Error(err))
	}

	newIntersector, err := geo.GetIntersectorFactory(cfg.FloodIntersector)
	if err != nil {
		logger.Fatal("invalid flood intersector", zap.Error(err))
	}

	var source flood.PolygonSource
	if cfg.FloodPolygonsPath != "" {
		source = flood.NewFileSource(cfg.FloodPolygonsPath, logger)
	} else {
		source = flood.NewHTTPSource(cfg.FloodBackendURL, cfg.FloodFetchTimeout, logger)
	}
	filter := flood.NewSafetyFilter(source, newIntersector, cfg.FilterWorkers, logger)

	routeService := routing.NewRouteService(filter, logger)
	route, err := routeService.Plan(ctx, segments, cfg.RouteStart, cfg.RouteEnd, cfg.RoutingStrategy)
	if err != nil {
		logger.Fatal("failed to compute route", zap.Error(err))
	}
	if !route.Found {
		logger.Warn("no safe route found",
			zap.Stringer("start", cfg.RouteStart), zap.Stringer("end", cfg.RouteEnd))
	}

	out, err := json.MarshalIndent(route, "", "  ")
	if err != nil {
		logger.Fatal("failed to encode route", zap.Error(err))
	}
	fmt.Println(string(out))

	if cfg.RouteOutputGeoJSON != "" && route.Found {
		if err := writeRouteGeoJSON(cfg.RouteOutputGeoJSON, route); err != nil {
			logger.Fatal("failed to write route geojson", zap.Error(err))
		}
		logger.Info("route geojson written", zap.String("path", cfg.RouteOutputGeoJSON))
	}
}

func loadRoads(ctx context.Context, path string, logger *zap.Logger) ([]datastructure.RoadSegment, error) {
	if strings.HasSuffix(path, ".osm.pbf") {
		return osmparser.NewOSMParser(logger).LoadFile(ctx, path)
	}
	return roadloader.NewGeoJSONRoadLoader(logger).LoadFile(path)
}

func writeRouteGeoJSON(path string, route *routing.Route) error {
	data, err := route.GeoJSON().MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
