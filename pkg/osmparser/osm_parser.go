package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type nodeCoord struct {
	lat float64
	lon float64
}

type wayDirection struct {
	forward  bool
	backward bool
}

// OsmParser turns the drivable ways of an .osm.pbf extract into road segments.
// Ways are split at junction nodes so that connected roads share segment endpoints.
type OsmParser struct {
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]nodeCoord
	barrierNodes    map[int64]bool
	logger          *zap.Logger
}

func NewOSMParser(logger *zap.Logger) *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]nodeCoord),
		barrierNodes:    make(map[int64]bool),
		logger:          logger,
	}
}

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	acceptedHighway = map[string]struct{}{
		"motorway":         struct{}{},
		"motorway_link":    struct{}{},
		"trunk":            struct{}{},
		"trunk_link":       struct{}{},
		"primary":          struct{}{},
		"primary_link":     struct{}{},
		"secondary":        struct{}{},
		"secondary_link":   struct{}{},
		"residential":      struct{}{},
		"residential_link": struct{}{},
		"service":          struct{}{},
		"tertiary":         struct{}{},
		"tertiary_link":    struct{}{},
		"road":             struct{}{},
		"track":            struct{}{},
		"unclassified":     struct{}{},
		"undefined":        struct{}{},
		"unknown":          struct{}{},
		"living_street":    struct{}{},
		"private":          struct{}{},
		"motorroad":        struct{}{},
	}

	//https://wiki.openstreetmap.org/wiki/Key:barrier
	// a barrier node with access=no cuts the way into 2 disconnected segments
	acceptedBarrierType = map[string]struct{}{
		"bollard":    struct{}{},
		"swing_gate": struct{}{},

		"jersey_barrier": struct{}{},
		"lift_gate":      struct{}{},
		"block":          struct{}{},
		"gate":           struct{}{},
	}
)

// LoadFile scans the extract twice: first to find which nodes the accepted ways use
// and where ways meet, then to collect node coordinates and emit the segments.
func (p *OsmParser) LoadFile(ctx context.Context, mapFile string) ([]datastructure.RoadSegment, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, fmt.Errorf("opening osm file %s: %w", mapFile, err)
	}
	defer f.Close()

	countWays, err := p.scanWayNodes(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("scanning ways of %s: %w", mapFile, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	segments, err := p.buildSegments(ctx, f, countWays)
	if err != nil {
		return nil, fmt.Errorf("building road segments of %s: %w", mapFile, err)
	}

	p.logger.Info("loaded openstreetmap road segments", zap.Int("ways", countWays),
		zap.Int("segments", len(segments)))
	return segments, nil
}

func (p *OsmParser) scanWayNodes(ctx context.Context, r io.Reader) (int, error) {
	scanner := osmpbf.New(ctx, r, 0)
	// must not be parallel
	defer scanner.Close()
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%PROGRESS_LOG_INTERVAL == 0 {
			p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		p.markWayNodes(way)
	}
	return countWays, scanner.Err()
}

func (p *OsmParser) markWayNodes(way *osm.Way) {
	for i, node := range way.Nodes {
		if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
			if i == 0 || i == len(way.Nodes)-1 {
				p.wayNodeMap[int64(node.ID)] = END_NODE
			} else {
				p.wayNodeMap[int64(node.ID)] = BETWEEN_NODE
			}
		} else {
			p.wayNodeMap[int64(node.ID)] = JUNCTION_NODE
		}
	}
}

func (p *OsmParser) buildSegments(ctx context.Context, r io.Reader, countWays int) ([]datastructure.RoadSegment, error) {
	scanner := osmpbf.New(ctx, r, 0)
	// must not be parallel
	defer scanner.Close()
	scanner.SkipRelations = true

	segments := make([]datastructure.RoadSegment, 0, countWays)
	countWays = 0
	countNodes := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			if (countNodes+1)%PROGRESS_LOG_INTERVAL == 0 {
				p.logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
			}
			countNodes++
			p.processNode(o)
		case *osm.Way:
			if len(o.Nodes) < 2 || !acceptOsmWay(o) {
				continue
			}
			if (countWays+1)%PROGRESS_LOG_INTERVAL == 0 {
				p.logger.Sugar().Infof("processing openstreetmap ways: %d...", countWays+1)
			}
			countWays++

			waySegments, err := p.processWay(o)
			if err != nil {
				return nil, err
			}
			segments = append(segments, waySegments...)
		}
	}
	return segments, scanner.Err()
}

func (p *OsmParser) processNode(node *osm.Node) {
	if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
		return
	}
	p.acceptedNodeMap[int64(node.ID)] = nodeCoord{
		lat: node.Lat,
		lon: node.Lon,
	}

	accessType := node.Tags.Find("access")
	barrierType := node.Tags.Find("barrier")
	if _, ok := acceptedBarrierType[barrierType]; ok && accessType == "no" {
		p.barrierNodes[int64(node.ID)] = true
	}
}

// processWay splits the way at junction nodes. Nodes missing from the extract and
// closed barriers end the current piece without starting a connected one.
func (p *OsmParser) processWay(way *osm.Way) ([]datastructure.RoadSegment, error) {
	direction := getWayDirection(way)

	segments := make([]datastructure.RoadSegment, 0, 2)
	piece := make([]datastructure.Coordinate, 0, len(way.Nodes))
	part := 0

	flush := func() error {
		defer func() { piece = piece[:0] }()
		if len(piece) < 2 || (len(piece) == 2 && piece[0] == piece[1]) {
			return nil
		}
		pieceSegments, err := newWaySegments(int64(way.ID), part, piece, direction)
		if err != nil {
			return err
		}
		segments = append(segments, pieceSegments...)
		part++
		return nil
	}

	for _, wayNode := range way.Nodes {
		nodeID := int64(wayNode.ID)
		coord, ok := p.acceptedNodeMap[nodeID]
		if !ok || p.barrierNodes[nodeID] {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		c := datastructure.NewCoordinate(coord.lat, coord.lon)
		piece = append(piece, c)
		if p.isJunctionNode(nodeID) && len(piece) > 1 {
			if err := flush(); err != nil {
				return nil, err
			}
			piece = append(piece, c)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return segments, nil
}

func newWaySegments(wayID int64, part int, piece []datastructure.Coordinate,
	direction wayDirection) ([]datastructure.RoadSegment, error) {
	id := fmt.Sprintf("way-%d-%d", wayID, part)
	segments := make([]datastructure.RoadSegment, 0, 2)

	if direction.forward {
		seg, err := datastructure.NewRoadSegmentWithLength(id, piece, false)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	if direction.backward {
		reversed := make([]datastructure.Coordinate, len(piece))
		for i, c := range piece {
			reversed[len(piece)-1-i] = c
		}
		seg, err := datastructure.NewRoadSegmentWithLength(id+REVERSE_SUFFIX, reversed, false)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func isRestricted(value string) bool {
	if value == "no" || value == "restricted" {
		return true
	}
	return false
}

func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vehicleForward := way.Tags.Find("vehicle:forward")
	motorVehicleForward := way.Tags.Find("motor_vehicle:forward")
	vehicleBackward := way.Tags.Find("vehicle:backward")
	motorVehicleBackward := way.Tags.Find("motor_vehicle:backward")
	return isRestricted(vehicleForward), isRestricted(motorVehicleForward), isRestricted(vehicleBackward), isRestricted(motorVehicleBackward)
}

func getWayDirection(way *osm.Way) wayDirection {
	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	oneWayTag := way.Tags.Find("oneway")

	oneWay := oneWayTag == "yes" || oneWayTag == "-1" || okvf || okmvf || okvb || okmvb ||
		way.Tags.Find("junction") == "roundabout"
	if !oneWay {
		return wayDirection{forward: true, backward: true}
	}

	// okvf / omvf = restricted/not allowed forward.
	if oneWayTag == "-1" || okvf || okmvf {
		return wayDirection{forward: false, backward: true}
	}
	return wayDirection{forward: true, backward: false}
}

func (p *OsmParser) isJunctionNode(nodeID int64) bool {
	return p.wayNodeMap[nodeID] == JUNCTION_NODE
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	junction := way.Tags.Find("junction")
	if highway != "" {
		if _, ok := acceptedHighway[highway]; ok {
			return true
		}
	} else if junction != "" {
		return true
	}
	return false
}
