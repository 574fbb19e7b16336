package graph

import "github.com/aretw0/minimaxviz/pkg/domain"

// Levels returns the BFS depth of every node reachable from the starting
// nodes. A node keeps the level at which it was first discovered.
func Levels(adj *AdjacencyList) map[string]int {
	levels := make(map[string]int, adj.Len())
	queue := FindStartingNodes(adj)
	for _, id := range queue {
		levels[id] = 0
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range SortedChildren(adj.Successors(id)) {
			if _, seen := levels[child]; seen {
				continue
			}
			levels[child] = levels[id] + 1
			queue = append(queue, child)
		}
	}
	return levels
}

// AssignLevels returns a copy of nodes where IsMax is true on even BFS
// levels. Nodes unreachable from any starting node keep their declared IsMax.
func AssignLevels(nodes []domain.GraphNode) []domain.GraphNode {
	levels := Levels(BuildAdjacencyList(nodes))

	out := make([]domain.GraphNode, len(nodes))
	for i, n := range nodes {
		if lvl, ok := levels[n.ID]; ok {
			n.IsMax = lvl%2 == 0
		}
		out[i] = n
	}
	return out
}

// Unreachable returns, in key order, the IDs no starting node leads to. They
// only exist when part of the graph hangs off a cycle with no entry point.
func Unreachable(adj *AdjacencyList) []string {
	levels := Levels(adj)
	var out []string
	for _, id := range adj.Keys() {
		if _, ok := levels[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
