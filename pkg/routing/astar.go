package routing

import (
	"math"

	"github.com/lintang-b-s/flood-evac-router/pkg"
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
)

// AStar searches the implicit proximity graph: every distinct waypoint is a vertex and two
// waypoints closer than the tolerance are connected, cost = euclidean distance.
// The flooded flag of a segment is not consulted here, only the flood filter removes segments.
type AStar struct {
	tolerance float64
}

func NewAStar() *AStar {
	return &AStar{tolerance: pkg.PROXIMITY_TOLERANCE}
}

func (as *AStar) Kind() pkg.StrategyKind {
	return pkg.ASTAR
}

func (as *AStar) sealed() {}

// quantizeCost rounds to COST_RESOLUTION so that routes of equal length compare equal
// regardless of summation order.
func quantizeCost(cost float64) float64 {
	return math.Round(cost/pkg.COST_RESOLUTION) * pkg.COST_RESOLUTION
}

// FindPath open set ordered by quantized f = g + h, then lower g, then insertion order.
func (as *AStar) FindPath(segments []datastructure.RoadSegment, start, end datastructure.Coordinate) []datastructure.Coordinate {
	index := newSpatialIndex(segments, as.tolerance)

	openSet := datastructure.NewMinHeap[datastructure.Coordinate]()
	gScore := map[datastructure.Coordinate]float64{start: 0}
	parent := make(map[datastructure.Coordinate]datastructure.Coordinate)
	closed := make(map[datastructure.Coordinate]struct{})

	openSet.Insert(datastructure.NewPriorityQueueNodeWithTieBreak(
		quantizeCost(datastructure.EuclideanDistance(start, end)), 0, start))

	for openSet.Size() > 0 {
		node, _ := openSet.ExtractMin()
		current := node.GetItem()

		if current == end {
			return reconstructPath(parent, current)
		}
		closed[current] = struct{}{}

		for _, neighbor := range index.neighborsOf(current) {
			if _, ok := closed[neighbor]; ok {
				continue
			}

			tentativeG := gScore[current] + datastructure.EuclideanDistance(current, neighbor)
			if oldG, ok := gScore[neighbor]; ok && quantizeCost(tentativeG) > quantizeCost(oldG) {
				continue
			}
			gScore[neighbor] = tentativeG
			parent[neighbor] = current

			f := quantizeCost(tentativeG + datastructure.EuclideanDistance(neighbor, end))
			pqNode := datastructure.NewPriorityQueueNodeWithTieBreak(f, tentativeG, neighbor)
			if openSet.Contains(neighbor) {
				openSet.Update(pqNode)
			} else {
				openSet.Insert(pqNode)
			}
		}
	}

	return []datastructure.Coordinate{}
}
