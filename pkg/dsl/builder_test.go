package dsl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/dsl"
)

func TestBuilder_DeclarationOrder(t *testing.T) {
	b := dsl.New()
	b.Add("root").To("a", "b")
	b.Add("b").Score(-1)
	b.Add("a").Score(1).At(10, 20)

	nodes := b.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "root", nodes[0].ID)
	assert.Equal(t, []string{"a", "b"}, nodes[0].Edges)
	assert.Equal(t, "b", nodes[1].ID)
	assert.Equal(t, "a", nodes[2].ID)
	require.NotNil(t, nodes[2].Position)
	assert.Equal(t, domain.Position{X: 10, Y: 20}, *nodes[2].Position)
	assert.Equal(t, 1.0, *nodes[2].Score)
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := dsl.New()
	b.Add("root").To("a")
	b.Add("root").To("b").Max()

	nodes := b.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, []string{"a", "b"}, nodes[0].Edges)
	assert.True(t, nodes[0].IsMax)

	b.Add("root").Min().Terminal()
	node := b.Nodes()[0]
	assert.False(t, node.IsMax)
	assert.True(t, node.IsTerminal())
}

func TestNodeBuilder_BuildIsACopy(t *testing.T) {
	b := dsl.New()
	nb := b.Add("root").To("a").Score(3)

	built := nb.Build()
	built.Edges[0] = "changed"
	*built.Score = 99

	again := nb.Build()
	assert.Equal(t, []string{"a"}, again.Edges)
	assert.Equal(t, 3.0, *again.Score)
}

func TestBuilder_Build(t *testing.T) {
	b := dsl.New()
	b.Add("root").To("a", "b")
	b.Add("a").Score(1)
	b.Add("b").Score(-1)

	loader, err := b.Build("tiny")
	require.NoError(t, err)

	names, err := loader.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tiny"}, names)

	doc, err := loader.Load(context.Background(), "tiny")
	require.NoError(t, err)
	assert.Equal(t, b.Nodes(), doc.Nodes)
}

func TestBuilder_Build_Invalid(t *testing.T) {
	b := dsl.New()
	b.Add("root").To("a")

	_, err := b.Build("broken")
	assert.ErrorIs(t, err, domain.ErrMalformedGraph)
}
