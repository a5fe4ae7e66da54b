package osmparser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWay(id osm.WayID, nodeIDs []osm.NodeID, tags ...osm.Tag) *osm.Way {
	nodes := make(osm.WayNodes, 0, len(nodeIDs))
	for _, n := range nodeIDs {
		nodes = append(nodes, osm.WayNode{ID: n})
	}
	return &osm.Way{ID: id, Nodes: nodes, Tags: osm.Tags(tags)}
}

func highway(value string) osm.Tag {
	return osm.Tag{Key: "highway", Value: value}
}

func TestAcceptOsmWay(t *testing.T) {
	tests := []struct {
		name string
		tags []osm.Tag
		want bool
	}{
		{"residential", []osm.Tag{highway("residential")}, true},
		{"footway", []osm.Tag{highway("footway")}, false},
		{"junction only", []osm.Tag{{Key: "junction", Value: "roundabout"}}, true},
		{"building", []osm.Tag{{Key: "building", Value: "yes"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, acceptOsmWay(newWay(1, []osm.NodeID{1, 2}, tt.tags...)))
		})
	}
}

func TestGetWayDirection(t *testing.T) {
	assert.Equal(t, wayDirection{forward: true, backward: true},
		getWayDirection(newWay(1, nil, highway("primary"))))
	assert.Equal(t, wayDirection{forward: true},
		getWayDirection(newWay(1, nil, highway("primary"), osm.Tag{Key: "oneway", Value: "yes"})))
	assert.Equal(t, wayDirection{backward: true},
		getWayDirection(newWay(1, nil, highway("primary"), osm.Tag{Key: "oneway", Value: "-1"})))
	assert.Equal(t, wayDirection{forward: true},
		getWayDirection(newWay(1, nil, highway("primary"), osm.Tag{Key: "junction", Value: "roundabout"})))
	assert.Equal(t, wayDirection{backward: true},
		getWayDirection(newWay(1, nil, highway("primary"), osm.Tag{Key: "vehicle:forward", Value: "no"})))
}

// two ways crossing at node 3:
//
//	1 - 2 - 3 - 4
//	        |
//	        5
func crossingParser(t *testing.T) (*OsmParser, *osm.Way, *osm.Way) {
	t.Helper()
	p := NewOSMParser(zap.NewNop())

	east := newWay(10, []osm.NodeID{1, 2, 3, 4}, highway("residential"), osm.Tag{Key: "oneway", Value: "yes"})
	south := newWay(11, []osm.NodeID{3, 5}, highway("service"))
	p.markWayNodes(east)
	p.markWayNodes(south)

	coords := map[osm.NodeID][2]float64{
		1: {0, 0}, 2: {0, 1}, 3: {0, 2}, 4: {0, 3}, 5: {-1, 2},
	}
	for id, c := range coords {
		p.processNode(&osm.Node{ID: id, Lat: c[0], Lon: c[1]})
	}
	return p, east, south
}

func TestMarkWayNodes(t *testing.T) {
	p, _, _ := crossingParser(t)

	assert.Equal(t, END_NODE, p.wayNodeMap[1])
	assert.Equal(t, BETWEEN_NODE, p.wayNodeMap[2])
	assert.Equal(t, JUNCTION_NODE, p.wayNodeMap[3])
	assert.Equal(t, END_NODE, p.wayNodeMap[5])
	assert.True(t, p.isJunctionNode(3))
}

func TestProcessWaySplitsAtJunction(t *testing.T) {
	p, east, south := crossingParser(t)

	segments, err := p.processWay(east)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, "way-10-0", segments[0].ID())
	assert.Equal(t, []datastructure.Coordinate{
		datastructure.NewCoordinate(0, 0),
		datastructure.NewCoordinate(0, 1),
		datastructure.NewCoordinate(0, 2),
	}, segments[0].Geometry())
	assert.InDelta(t, 2.0, segments[0].Cost(), 1e-12)
	assert.False(t, segments[0].IsFlooded())

	assert.Equal(t, "way-10-1", segments[1].ID())
	assert.Equal(t, segments[0].EndPoint(), segments[1].StartPoint())
	assert.Equal(t, datastructure.NewCoordinate(0, 3), segments[1].EndPoint())

	// two way road yields both directions
	segments, err = p.processWay(south)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "way-11-0", segments[0].ID())
	assert.Equal(t, "way-11-0"+REVERSE_SUFFIX, segments[1].ID())
	assert.Equal(t, segments[0].StartPoint(), segments[1].EndPoint())
	assert.Equal(t, segments[0].EndPoint(), segments[1].StartPoint())
}

func TestProcessWayBarrier(t *testing.T) {
	p, east, _ := crossingParser(t)
	p.processNode(&osm.Node{ID: 2, Lat: 0, Lon: 1, Tags: osm.Tags{
		{Key: "barrier", Value: "gate"},
		{Key: "access", Value: "no"},
	}})

	segments, err := p.processWay(east)
	require.NoError(t, err)

	// 1 is cut off by the gate, 3 - 4 survives
	require.Len(t, segments, 1)
	assert.Equal(t, datastructure.NewCoordinate(0, 2), segments[0].StartPoint())
	assert.Equal(t, datastructure.NewCoordinate(0, 3), segments[0].EndPoint())
}

func TestProcessWayMissingNodes(t *testing.T) {
	p := NewOSMParser(zap.NewNop())
	way := newWay(7, []osm.NodeID{1, 2}, highway("primary"))
	p.markWayNodes(way)
	p.processNode(&osm.Node{ID: 1, Lat: 1, Lon: 1})

	segments, err := p.processWay(way)
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestLoadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.osm.pbf")

	_, err := NewOSMParser(zap.NewNop()).LoadFile(context.Background(), path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, path)
}
