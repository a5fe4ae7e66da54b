package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lintang-b-s/flood-evac-router/pkg"
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv(ROADS_PATH, "roads.geojson")
	t.Setenv(FLOOD_BACKEND_URL, "http://localhost:8080/flood")
	t.Setenv(ROUTE_START, "-6.2,106.8")
	t.Setenv(ROUTE_END, "-6.21, 106.81")
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	setRequired(t)
	require.NoError(t, Init(t.TempDir()))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, pkg.DIJKSTRA_STRATEGY_NAME, cfg.RoutingStrategy)
	assert.Equal(t, "roads.geojson", cfg.RoadsPath)
	assert.Equal(t, 10*time.Second, cfg.FloodFetchTimeout)
	assert.Equal(t, "planar", cfg.FloodIntersector)
	assert.GreaterOrEqual(t, cfg.FilterWorkers, 1)
	assert.Equal(t, datastructure.NewCoordinate(-6.2, 106.8), cfg.RouteStart)
	assert.Equal(t, datastructure.NewCoordinate(-6.21, 106.81), cfg.RouteEnd)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	yaml := []byte("ROUTING_STRATEGY: astar\nFLOOD_FETCH_TIMEOUT: 3s\nFILTER_WORKERS: 2\nROADS_PATH: from-file.geojson\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	setRequired(t)
	t.Setenv(FILTER_WORKERS, "4")
	require.NoError(t, Init(dir))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "astar", cfg.RoutingStrategy)
	assert.Equal(t, 3*time.Second, cfg.FloodFetchTimeout)
	// env wins over the file
	assert.Equal(t, 4, cfg.FilterWorkers)
	assert.Equal(t, "roads.geojson", cfg.RoadsPath)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{"missing start", map[string]string{ROUTE_START: ""}, ErrMissingSetting},
		{"malformed end", map[string]string{ROUTE_END: "106.8"}, pkg.ErrMalformedInput},
		{"out of range start", map[string]string{ROUTE_START: "95,10"}, pkg.ErrMalformedInput},
		{"missing roads", map[string]string{ROADS_PATH: ""}, ErrMissingSetting},
		{"missing flood source", map[string]string{FLOOD_BACKEND_URL: ""}, ErrMissingSetting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			require.NoError(t, Init(t.TempDir()))

			_, err := Load()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Configuration{
		RoadsPath:         "roads.geojson",
		FloodPolygonsPath: "zones.geojson",
		FloodFetchTimeout: time.Second,
		FilterWorkers:     1,
	}
	assert.NoError(t, cfg.Validate())

	cfg.FilterWorkers = 0
	assert.Error(t, cfg.Validate())

	cfg.FilterWorkers = 1
	cfg.FloodFetchTimeout = 0
	assert.Error(t, cfg.Validate())
}
