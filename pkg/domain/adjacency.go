package domain

import (
	"encoding/json"
	"maps"
	"slices"
)

// IDSet is an unordered set of node IDs.
// Consumers must sort it before iterating (see graph.SortedChildren).
type IDSet map[string]struct{}

// Has reports whether id belongs to the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Equal reports whether both sets hold exactly the same IDs.
func (s IDSet) Equal(other IDSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// AdjacencyList maps a node ID to the set of its successor IDs.
// Keys keep their insertion order, which for lists built from a node slice is
// the declaration order of the graph. An AdjacencyList is built once and must
// not be modified while a traversal is using it.
type AdjacencyList struct {
	order []string
	succ  map[string]IDSet
}

// NewAdjacencyList creates an empty adjacency list.
func NewAdjacencyList() *AdjacencyList {
	return &AdjacencyList{succ: make(map[string]IDSet)}
}

// AddNode registers id as a key if it is not present yet.
func (a *AdjacencyList) AddNode(id string) {
	if _, ok := a.succ[id]; ok {
		return
	}
	a.order = append(a.order, id)
	a.succ[id] = make(IDSet)
}

// AddEdge registers both endpoints (from first) and records from -> to.
func (a *AdjacencyList) AddEdge(from, to string) {
	a.AddNode(from)
	a.AddNode(to)
	a.succ[from][to] = struct{}{}
}

// Keys returns the node IDs in insertion order.
func (a *AdjacencyList) Keys() []string {
	return slices.Clone(a.order)
}

// Len returns the number of nodes.
func (a *AdjacencyList) Len() int {
	return len(a.order)
}

// Has reports whether id is a key of the list.
func (a *AdjacencyList) Has(id string) bool {
	_, ok := a.succ[id]
	return ok
}

// Successors returns the successor set of id, or nil when id is unknown.
// The returned set is shared with the list and must be treated as read-only.
func (a *AdjacencyList) Successors(id string) IDSet {
	return a.succ[id]
}

// Equal compares keys and per-node edge sets. Key order is ignored.
func (a *AdjacencyList) Equal(other *AdjacencyList) bool {
	if a.Len() != other.Len() {
		return false
	}
	for id, set := range a.succ {
		o, ok := other.succ[id]
		if !ok || !set.Equal(o) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the list as an object of sorted successor arrays.
func (a *AdjacencyList) MarshalJSON() ([]byte, error) {
	out := make(map[string][]string, len(a.succ))
	for id, set := range a.succ {
		out[id] = slices.Sorted(maps.Keys(set))
	}
	return json.Marshal(out)
}
