package minimaxviz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/minimaxviz"
	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/dsl"
	"github.com/aretw0/minimaxviz/pkg/samples"
)

func TestInitializeTraversal(t *testing.T) {
	nodes, err := samples.Load("noCycles")
	require.NoError(t, err)

	state, err := minimaxviz.InitializeTraversal(nodes)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInit, state.Status)
	assert.Len(t, state.NodeStates, len(nodes))
	for id, st := range state.NodeStates {
		assert.Equal(t, domain.Unvisited, st, id)
		assert.Nil(t, state.NodeScores[id], id)
	}
	assert.True(t, state.IsMax("1"))
	assert.False(t, state.IsMax("2"))
	assert.Empty(t, state.Stack)
}

func TestInitializeTraversal_Malformed(t *testing.T) {
	_, err := minimaxviz.InitializeTraversal([]domain.GraphNode{
		{ID: "1", Edges: []string{"2"}},
		{ID: "2"},
	})
	assert.ErrorIs(t, err, domain.ErrMalformedGraph)
}

func TestStep(t *testing.T) {
	nodes, err := samples.Load("noCycles")
	require.NoError(t, err)
	state, err := minimaxviz.InitializeTraversal(nodes)
	require.NoError(t, err)

	for !state.Finished() {
		require.NoError(t, minimaxviz.Step("regular", state))
	}
	// node "2" (min over 7 and 8) and node "1" (max over 2, 3 and 4)
	assert.Equal(t, -1.0, *state.NodeScores["2"])
	assert.Equal(t, 0.0, *state.NodeScores["1"])

	assert.ErrorIs(t, minimaxviz.Step("negamax", state), domain.ErrUnknownAlgorithm)
}

func TestEngine(t *testing.T) {
	nodes, err := samples.Load("withCycle")
	require.NoError(t, err)

	var resolved int
	eng, err := minimaxviz.New(nodes,
		minimaxviz.WithAlgorithm(domain.AlgorithmCycleDetection),
		minimaxviz.WithName("withCycle"),
		minimaxviz.WithLifecycleHooks(domain.LifecycleHooks{
			OnNodeResolved: func(context.Context, *domain.NodeEvent) { resolved++ },
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, domain.AlgorithmCycleDetection, eng.Algorithm())
	assert.Len(t, eng.Nodes(), len(nodes))

	state, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Finished())
	assert.Equal(t, -1.0, *state.NodeScores["1"])
	assert.Equal(t, len(nodes), resolved)

	// Restart is a fresh state; the old one is untouched.
	fresh := eng.Start()
	assert.Equal(t, domain.StatusInit, fresh.Status)
	assert.True(t, state.Finished())
}

func TestEngine_WithoutLevels(t *testing.T) {
	b := dsl.New()
	b.Add("R").To("A")
	b.Add("A").To("A", "T").Max()
	b.Add("T").Score(1)

	eng, err := minimaxviz.New(b.Nodes(),
		minimaxviz.WithAlgorithm(domain.AlgorithmCycleDetection),
		minimaxviz.WithoutLevels(),
	)
	require.NoError(t, err)

	state, err := eng.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, *state.NodeScores["A"])
	assert.Equal(t, 1.0, *state.NodeScores["R"])
}

func TestNew_Errors(t *testing.T) {
	_, err := minimaxviz.New(nil)
	assert.ErrorIs(t, err, domain.ErrMalformedGraph)

	nodes, _ := samples.Load("noCycles")
	_, err = minimaxviz.New(nodes, minimaxviz.WithAlgorithm("bogus"))
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)

	b := dsl.New()
	b.Add("A").To("B")
	b.Add("B").To("A", "T")
	b.Add("T").Score(1)
	_, err = minimaxviz.New(b.Nodes())
	assert.ErrorIs(t, err, domain.ErrMalformedGraph, "regular needs every node reachable from a root")

	_, err = minimaxviz.New(b.Nodes(), minimaxviz.WithAlgorithm(domain.AlgorithmCycleDetection))
	assert.NoError(t, err)
}

func TestStep_AlgorithmCannotChange(t *testing.T) {
	nodes, err := samples.Load("noCycles")
	require.NoError(t, err)
	state, err := minimaxviz.InitializeTraversal(nodes)
	require.NoError(t, err)

	for range 6 {
		require.NoError(t, minimaxviz.Step("regular", state))
	}
	before := state.Snapshot()
	assert.ErrorIs(t, minimaxviz.Step("cycleDetection", state), domain.ErrInvariantViolation)
	assert.Equal(t, before, state)
}
