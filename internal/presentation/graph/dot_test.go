package graph_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/minimaxviz/internal/presentation/graph"
	"github.com/aretw0/minimaxviz/pkg/domain"
)

func TestGenerateDOT_Plain(t *testing.T) {
	got := graph.GenerateDOT("tiny", tiny(t).Nodes(), nil)

	assert.True(t, strings.HasPrefix(got, "digraph \"tiny\" {\n"))
	assert.True(t, strings.HasSuffix(got, "}\n"))
	assert.Contains(t, got, `"root" [label="?", fillcolor="white", color="gray", tooltip="[max] Node root: Unvisited", pos="0,0!"];`)
	assert.Contains(t, got, `"a" [label="1"`)
	assert.Contains(t, got, `"root" -> "a" [color="green"];`)
}

func TestGenerateDOT_Overlay(t *testing.T) {
	eng := tiny(t)
	state, err := eng.Solve(context.Background())
	require.NoError(t, err)

	got := graph.GenerateDOT("", eng.Nodes(), state)
	assert.Contains(t, got, `digraph "minimax"`)
	assert.Contains(t, got, `"root" [label="1", fillcolor="green", color="green", tooltip="[max] Node root: Max wins"`)
	assert.Contains(t, got, `"b" [label="-1", fillcolor="red"`)
}

func TestGenerateDOT_Quoting(t *testing.T) {
	nodes := []domain.GraphNode{{ID: `say "hi"`, Score: domain.ScoreOf(0)}}
	got := graph.GenerateDOT(`q"`, nodes, nil)
	assert.Contains(t, got, `digraph "q\"" {`)
	assert.Contains(t, got, `"say \"hi\"" [label="0"`)
}
