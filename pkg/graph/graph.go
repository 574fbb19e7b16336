package graph

import (
	"maps"
	"slices"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// AdjacencyList is re-exported for callers that only deal with graph utilities.
type AdjacencyList = domain.AdjacencyList

// BuildAdjacencyList returns an adjacency list with an entry for every ID seen
// as a source or as a target. Keys follow declaration order: the node's own ID
// first, then its targets as they are first encountered.
//
// Duplicate IDs merge their edges into the same successor set. Self references
// are kept as edges.
func BuildAdjacencyList(nodes []domain.GraphNode) *AdjacencyList {
	adj := domain.NewAdjacencyList()
	for _, n := range nodes {
		adj.AddNode(n.ID)
		for _, to := range n.Edges {
			adj.AddEdge(n.ID, to)
		}
	}
	return adj
}

// FindStartingNodes returns the IDs with in-degree zero, in key order.
func FindStartingNodes(adj *AdjacencyList) []string {
	incoming := make(map[string]bool, adj.Len())
	for _, id := range adj.Keys() {
		for to := range adj.Successors(id) {
			incoming[to] = true
		}
	}

	var starts []string
	for _, id := range adj.Keys() {
		if !incoming[id] {
			starts = append(starts, id)
		}
	}
	return starts
}

// InvertGraph returns a new list with every edge reversed. Every key of adj is
// present in the result, in the same order, so the starting nodes of the
// inverse are exactly the sinks of adj.
func InvertGraph(adj *AdjacencyList) *AdjacencyList {
	inv := domain.NewAdjacencyList()
	keys := adj.Keys()
	for _, id := range keys {
		inv.AddNode(id)
	}
	for _, id := range keys {
		for _, to := range SortedChildren(adj.Successors(id)) {
			inv.AddEdge(to, id)
		}
	}
	return inv
}

// SortedChildren returns the members of set in lexicographic order.
// It is the only way engines iterate over successors.
func SortedChildren(set domain.IDSet) []string {
	return slices.Sorted(maps.Keys(set))
}
