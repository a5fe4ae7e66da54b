package config

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/lintang-b-s/flood-evac-router/pkg"
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	"github.com/spf13/viper"
)

const (
	ROUTING_STRATEGY     = "ROUTING_STRATEGY"
	ROADS_PATH           = "ROADS_PATH"
	FLOOD_BACKEND_URL    = "FLOOD_BACKEND_URL"
	FLOOD_POLYGONS_PATH  = "FLOOD_POLYGONS_PATH"
	FLOOD_FETCH_TIMEOUT  = "FLOOD_FETCH_TIMEOUT"
	FLOOD_INTERSECTOR    = "FLOOD_INTERSECTOR"
	ROUTE_START          = "ROUTE_START"
	ROUTE_END            = "ROUTE_END"
	ROUTE_OUTPUT_GEOJSON = "ROUTE_OUTPUT_GEOJSON"
	FILTER_WORKERS       = "FILTER_WORKERS"
)

var ErrMissingSetting = errors.New("missing required setting")

type Configuration struct {
	RoutingStrategy    string
	RoadsPath          string
	FloodBackendURL    string
	FloodPolygonsPath  string
	FloodFetchTimeout  time.Duration
	FloodIntersector   string
	RouteStart         datastructure.Coordinate
	RouteEnd           datastructure.Coordinate
	RouteOutputGeoJSON string
	FilterWorkers      int
}

// Init reads config.yaml from the given directories (the working directory when none) into the
// global viper, environment variables take precedence. a missing file is not an error.
func Init(configPaths ...string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if len(configPaths) == 0 {
		configPaths = []string{"."}
	}
	for _, p := range configPaths {
		viper.AddConfigPath(p)
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

func Load() (Configuration, error) {
	viper.SetDefault(ROUTING_STRATEGY, pkg.DIJKSTRA_STRATEGY_NAME)
	viper.SetDefault(FLOOD_FETCH_TIMEOUT, 10*time.Second)
	viper.SetDefault(FLOOD_INTERSECTOR, "planar")
	viper.SetDefault(FILTER_WORKERS, runtime.NumCPU())

	cfg := Configuration{
		RoutingStrategy:    viper.GetString(ROUTING_STRATEGY),
		RoadsPath:          viper.GetString(ROADS_PATH),
		FloodBackendURL:    viper.GetString(FLOOD_BACKEND_URL),
		FloodPolygonsPath:  viper.GetString(FLOOD_POLYGONS_PATH),
		FloodFetchTimeout:  viper.GetDuration(FLOOD_FETCH_TIMEOUT),
		FloodIntersector:   viper.GetString(FLOOD_INTERSECTOR),
		RouteOutputGeoJSON: viper.GetString(ROUTE_OUTPUT_GEOJSON),
		FilterWorkers:      viper.GetInt(FILTER_WORKERS),
	}

	var err error
	if cfg.RouteStart, err = parseRequiredCoordinate(ROUTE_START); err != nil {
		return Configuration{}, err
	}
	if cfg.RouteEnd, err = parseRequiredCoordinate(ROUTE_END); err != nil {
		return Configuration{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

func parseRequiredCoordinate(key string) (datastructure.Coordinate, error) {
	raw := viper.GetString(key)
	if raw == "" {
		return datastructure.Coordinate{}, fmt.Errorf("%w: %s", ErrMissingSetting, key)
	}
	c, err := datastructure.ParseCoordinate(raw)
	if err != nil {
		return datastructure.Coordinate{}, fmt.Errorf("%s: %w", key, err)
	}
	return c, nil
}

func (c Configuration) Validate() error {
	if c.RoadsPath == "" {
		return fmt.Errorf("%w: %s", ErrMissingSetting, ROADS_PATH)
	}
	if c.FloodBackendURL == "" && c.FloodPolygonsPath == "" {
		return fmt.Errorf("%w: one of %s or %s", ErrMissingSetting, FLOOD_BACKEND_URL, FLOOD_POLYGONS_PATH)
	}
	if c.FloodFetchTimeout <= 0 {
		return fmt.Errorf("%s must be positive, got %v", FLOOD_FETCH_TIMEOUT, c.FloodFetchTimeout)
	}
	if c.FilterWorkers < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", FILTER_WORKERS, c.FilterWorkers)
	}
	return nil
}
