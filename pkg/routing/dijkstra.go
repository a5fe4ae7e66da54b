package routing

import (
	"github.com/lintang-b-s/flood-evac-router/pkg"
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
)

// Dijkstra searches the directed graph with one edge per non flooded segment,
// first point -> last point, weight = segment cost.
type Dijkstra struct{}

func NewDijkstra() *Dijkstra {
	return &Dijkstra{}
}

func (d *Dijkstra) Kind() pkg.StrategyKind {
	return pkg.DIJKSTRA
}

func (d *Dijkstra) sealed() {}

// buildAdjacency outgoing segments per start point, in input order. flooded segments are left out.
func buildAdjacency(segments []datastructure.RoadSegment) map[datastructure.Coordinate][]datastructure.RoadSegment {
	adjacency := make(map[datastructure.Coordinate][]datastructure.RoadSegment)
	for _, seg := range segments {
		if seg.IsFlooded() {
			continue
		}
		from := seg.StartPoint()
		adjacency[from] = append(adjacency[from], seg)
	}
	return adjacency
}

func initializeDistanceMap(adjacency map[datastructure.Coordinate][]datastructure.RoadSegment,
	start datastructure.Coordinate) map[datastructure.Coordinate]float64 {
	dist := make(map[datastructure.Coordinate]float64, len(adjacency)+1)
	for from, edges := range adjacency {
		dist[from] = pkg.INF_WEIGHT
		for _, e := range edges {
			dist[e.EndPoint()] = pkg.INF_WEIGHT
		}
	}
	dist[start] = 0
	return dist
}

// relaxEdges only a strictly shorter distance replaces the current one.
func relaxEdges(u datastructure.Coordinate, edges []datastructure.RoadSegment,
	dist map[datastructure.Coordinate]float64, prev map[datastructure.Coordinate]datastructure.Coordinate,
	pq *datastructure.MinHeap[datastructure.Coordinate]) {
	for _, e := range edges {
		v := e.EndPoint()
		newDist := dist[u] + e.Cost()
		if newDist >= dist[v] {
			continue
		}
		dist[v] = newDist
		prev[v] = u

		pqNode := datastructure.NewPriorityQueueNode(newDist, v)
		if pq.Contains(v) {
			pq.DecreaseKey(pqNode)
		} else {
			pq.Insert(pqNode)
		}
	}
}

// FindPath stops as soon as end leaves the queue. equal distances leave the queue in insertion order.
func (d *Dijkstra) FindPath(segments []datastructure.RoadSegment, start, end datastructure.Coordinate) []datastructure.Coordinate {
	adjacency := buildAdjacency(segments)
	dist := initializeDistanceMap(adjacency, start)
	prev := make(map[datastructure.Coordinate]datastructure.Coordinate)

	pq := datastructure.NewMinHeap[datastructure.Coordinate]()
	pq.Insert(datastructure.NewPriorityQueueNode(0, start))

	for pq.Size() > 0 {
		node, _ := pq.ExtractMin()
		u := node.GetItem()
		if u == end {
			break
		}
		relaxEdges(u, adjacency[u], dist, prev, pq)
	}

	if _, reached := prev[end]; !reached && start != end {
		return []datastructure.Coordinate{}
	}
	return reconstructPath(prev, end)
}
