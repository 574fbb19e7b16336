package graph_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/minimaxviz"
	"github.com/aretw0/minimaxviz/internal/presentation/graph"
	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/dsl"
)

func tiny(t *testing.T) *minimaxviz.Engine {
	t.Helper()
	b := dsl.New()
	b.Add("root").To("a", "b").At(0, 0)
	b.Add("a").Score(1).At(-100, 100)
	b.Add("b").Score(-1).At(100, 100)
	eng, err := minimaxviz.New(b.Nodes())
	require.NoError(t, err)
	return eng
}

func TestGenerateMermaid_Plain(t *testing.T) {
	got := graph.GenerateMermaid(tiny(t).Nodes(), nil)

	for _, want := range []string{
		"graph TD\n",
		`root(("?"))`,
		`a(("1"))`,
		`b(("-1"))`,
		"root --> a",
		"root --> b",
		"linkStyle 0 stroke:green;",
	} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	eng := tiny(t)
	state := eng.Start()
	for state.ShowNodeChildren == "" {
		require.NoError(t, eng.Step(context.Background(), state))
	}

	got := graph.GenerateMermaid(eng.Nodes(), state)
	assert.Contains(t, got, "classDef max_wins fill:green")
	assert.Contains(t, got, "class root process_children;")
	assert.Contains(t, got, "stroke-dasharray", "edges out of the expanded node are dashed")
	assert.Contains(t, got, "class root selected;")

	require.NoError(t, eng.Run(context.Background(), state))
	got = graph.GenerateMermaid(eng.Nodes(), state)
	assert.Contains(t, got, `root(("1"))`)
	assert.Contains(t, got, "class root max_wins;")
	assert.Contains(t, got, "class b min_wins;")
	assert.NotContains(t, got, "stroke-dasharray")
}

func TestGenerateMermaid_Sanitize(t *testing.T) {
	nodes := []domain.GraphNode{
		{ID: "path/to-node.x", Edges: []string{"42"}},
		{ID: "42", Score: domain.ScoreOf(0)},
	}
	got := graph.GenerateMermaid(nodes, nil)
	assert.Contains(t, got, "path_to_node_x --> n42")
	assert.Equal(t, 1, strings.Count(got, "linkStyle"))
	assert.Contains(t, got, "linkStyle 0 stroke:red;")
}
