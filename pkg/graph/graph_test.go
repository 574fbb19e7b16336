package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/samples"
)

func mustSample(t *testing.T, name string) []domain.GraphNode {
	t.Helper()
	nodes, err := samples.Load(name)
	require.NoError(t, err)
	return nodes
}

func TestBuildAdjacencyList(t *testing.T) {
	adj := BuildAdjacencyList([]domain.GraphNode{
		{ID: "a", Edges: []string{"c", "b"}},
		{ID: "b", Edges: []string{"d"}},
	})

	assert.Equal(t, []string{"a", "c", "b", "d"}, adj.Keys())
	assert.Equal(t, []string{"b", "c"}, SortedChildren(adj.Successors("a")))
	assert.Empty(t, adj.Successors("c"), "targets get an entry even without edges")
	assert.Empty(t, adj.Successors("d"))
}

func TestBuildAdjacencyList_Duplicates(t *testing.T) {
	adj := BuildAdjacencyList([]domain.GraphNode{
		{ID: "a", Edges: []string{"b"}},
		{ID: "a", Edges: []string{"c"}},
	})
	assert.Equal(t, []string{"b", "c"}, SortedChildren(adj.Successors("a")))
	assert.Equal(t, 3, adj.Len())
}

func TestBuildAdjacencyList_SelfLoop(t *testing.T) {
	adj := BuildAdjacencyList([]domain.GraphNode{{ID: "a", Edges: []string{"a", "t"}}})
	assert.True(t, adj.Successors("a").Has("a"))
}

func TestFindStartingNodes(t *testing.T) {
	assert.Equal(t, []string{"1"}, FindStartingNodes(BuildAdjacencyList(mustSample(t, "noCycles"))))
	assert.Equal(t, []string{"1"}, FindStartingNodes(BuildAdjacencyList(mustSample(t, "withCycle"))))

	adj := BuildAdjacencyList([]domain.GraphNode{
		{ID: "z", Edges: []string{"x"}},
		{ID: "y", Edges: []string{"x"}},
	})
	assert.Equal(t, []string{"z", "y"}, FindStartingNodes(adj), "declaration order, not sorted")
}

func TestInvertGraph(t *testing.T) {
	adj := BuildAdjacencyList(mustSample(t, "noCycles"))
	inv := InvertGraph(adj)

	assert.Equal(t, adj.Keys(), inv.Keys())
	assert.Equal(t, []string{"2", "4"}, SortedChildren(inv.Successors("8")))
	assert.Empty(t, inv.Successors("1"))

	// Sources of the inverse are the sinks of the original, in key order.
	assert.Equal(t, []string{"1", "2", "3", "4", "7", "8", "5", "6", "10", "12", "11"}, adj.Keys())
	assert.Equal(t, []string{"8", "5", "10", "12", "11"}, FindStartingNodes(inv))
}

func TestInvertGraph_RoundTrip(t *testing.T) {
	for _, name := range samples.Names() {
		adj := BuildAdjacencyList(mustSample(t, name))
		assert.True(t, adj.Equal(InvertGraph(InvertGraph(adj))), name)
	}

	loop := BuildAdjacencyList([]domain.GraphNode{{ID: "a", Edges: []string{"a", "b"}}})
	assert.True(t, loop.Equal(InvertGraph(InvertGraph(loop))))
}

func TestSortedChildren(t *testing.T) {
	set := domain.IDSet{"10": {}, "9": {}, "2": {}, "b": {}}
	assert.Equal(t, []string{"10", "2", "9", "b"}, SortedChildren(set))
	assert.Empty(t, SortedChildren(nil))
}

func TestAssignLevels(t *testing.T) {
	nodes := AssignLevels(mustSample(t, "withCycle"))
	want := map[string]bool{
		"1":  true,
		"90": false, "4": false, "14": false,
		"7": true, "9": true, "10": true,
		"11": false, "15": false,
		"12": true, "16": true,
		"13": false, "17": false,
	}
	for _, n := range nodes {
		assert.Equal(t, want[n.ID], n.IsMax, "node %s", n.ID)
	}

	levels := Levels(BuildAdjacencyList(nodes))
	assert.Equal(t, 1, levels["14"], "first-discovered level wins over the deeper path through 13")
}

func TestAssignLevels_Unreachable(t *testing.T) {
	in := []domain.GraphNode{
		{ID: "r", Edges: []string{"t"}},
		{ID: "t", Score: domain.ScoreOf(1)},
		{ID: "c1", Edges: []string{"c2"}, IsMax: true},
		{ID: "c2", Edges: []string{"c1"}},
	}
	out := AssignLevels(in)
	assert.True(t, out[0].IsMax)
	assert.False(t, out[1].IsMax)
	assert.True(t, out[2].IsMax, "unreachable nodes keep their declared orientation")
	assert.False(t, in[1].IsMax)
	assert.True(t, in[2].IsMax, "input is not modified")
}

func TestUnreachable(t *testing.T) {
	for _, name := range samples.Names() {
		assert.Empty(t, Unreachable(BuildAdjacencyList(mustSample(t, name))), name)
	}

	rootless := BuildAdjacencyList([]domain.GraphNode{
		{ID: "A", Edges: []string{"B"}},
		{ID: "B", Edges: []string{"A", "T"}},
		{ID: "T", Score: domain.ScoreOf(1)},
	})
	assert.Equal(t, []string{"A", "B", "T"}, Unreachable(rootless))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []domain.GraphNode
		wantErr string
	}{
		{name: "sample", nodes: mustSample(t, "withCycle")},
		{name: "empty", nodes: nil, wantErr: "no nodes"},
		{
			name:    "terminal without score",
			nodes:   []domain.GraphNode{{ID: "a", Edges: []string{"b"}}, {ID: "b"}},
			wantErr: `terminal node "b" has no score`,
		},
		{
			name:    "undeclared target",
			nodes:   []domain.GraphNode{{ID: "a", Edges: []string{"ghost"}}},
			wantErr: `"ghost" is referenced but never declared`,
		},
		{
			name:    "missing id",
			nodes:   []domain.GraphNode{{Score: domain.ScoreOf(0)}},
			wantErr: "required",
		},
		{
			name:    "blank edge",
			nodes:   []domain.GraphNode{{ID: "a", Edges: []string{""}}, {ID: "", Score: domain.ScoreOf(0)}},
			wantErr: "GraphNode.Edges[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.nodes)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrMalformedGraph)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
