package pkg

import "math"

// enum of routing strategy
type StrategyKind uint8

const (
	DIJKSTRA StrategyKind = iota
	ASTAR
)

const (
	ASTAR_STRATEGY_NAME    = "astar"
	DIJKSTRA_STRATEGY_NAME = "dijkstra"
)

func (k StrategyKind) String() string {
	switch k {
	case ASTAR:
		return ASTAR_STRATEGY_NAME
	default:
		return DIJKSTRA_STRATEGY_NAME
	}
}

const (
	// neighbour radius of the proximity graph, in coordinate units (degrees treated as a flat plane)
	PROXIMITY_TOLERANCE = 0.0003
	// path costs closer than this are treated as equal by a*
	COST_RESOLUTION = 1e-12

	INF_WEIGHT = math.MaxFloat64

	// below this many segments the flood filter runs on the caller goroutine
	PARALLEL_FILTER_THRESHOLD = 512
)
