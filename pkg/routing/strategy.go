package routing

import (
	"strings"

	"github.com/lintang-b-s/flood-evac-router/pkg"
	"github.com/lintang-b-s/flood-evac-router/pkg/datastructure"
)

// PathFinder is implemented by AStar and Dijkstra only.
// An empty path means the end is unreachable, it is not an error.
type PathFinder interface {
	FindPath(segments []datastructure.RoadSegment, start, end datastructure.Coordinate) []datastructure.Coordinate
	Kind() pkg.StrategyKind
	sealed()
}

// ParseStrategy "astar" in any letter case selects a*, every other value (including "") dijkstra.
func ParseStrategy(name string) pkg.StrategyKind {
	if strings.EqualFold(name, pkg.ASTAR_STRATEGY_NAME) {
		return pkg.ASTAR
	}
	return pkg.DIJKSTRA
}

// reconstructPath walks the parent links back from end and reverses them.
func reconstructPath(parent map[datastructure.Coordinate]datastructure.Coordinate,
	end datastructure.Coordinate) []datastructure.Coordinate {
	path := []datastructure.Coordinate{end}
	current := end
	for {
		prev, ok := parent[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
