package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/minimaxviz/internal/runtime"
	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/graph"
	"github.com/aretw0/minimaxviz/pkg/samples"
)

func newState(t *testing.T, nodes []domain.GraphNode) *domain.TraversalState {
	t.Helper()
	require.NoError(t, graph.Validate(nodes))
	nodes = graph.AssignLevels(nodes)
	return domain.NewTraversalState(nodes, graph.BuildAdjacencyList(nodes))
}

func sample(t *testing.T, name string) *domain.TraversalState {
	t.Helper()
	nodes, err := samples.Load(name)
	require.NoError(t, err)
	return newState(t, nodes)
}

// runAll steps until finished and returns the description of every step.
func runAll(t *testing.T, alg domain.Algorithm, s *domain.TraversalState) []string {
	t.Helper()
	var descs []string
	for i := 0; !s.Finished(); i++ {
		require.Less(t, i, 10_000, "traversal did not terminate")
		require.NoError(t, runtime.Step(alg, s))
		descs = append(descs, s.Description)
	}
	return descs
}

func scores(s *domain.TraversalState) map[string]float64 {
	out := make(map[string]float64, len(s.NodeScores))
	for id, v := range s.NodeScores {
		if v != nil {
			out[id] = *v
		}
	}
	return out
}

func TestStep_NoCycles(t *testing.T) {
	want := map[string]float64{
		"1": 0, "2": -1, "3": 0, "4": -1,
		"5": 0, "6": 1, "7": 0, "8": -1,
		"10": 1, "11": 0, "12": 1,
	}
	for _, alg := range domain.Algorithms {
		t.Run(string(alg), func(t *testing.T) {
			s := sample(t, "noCycles")
			runAll(t, alg, s)

			assert.Equal(t, want, scores(s))
			for id, st := range s.NodeStates {
				assert.Equal(t, domain.Visited, st, "node %s", id)
			}
			assert.Empty(t, s.SelectedNode)
			assert.Empty(t, s.ShowNodeChildren)
			assert.Empty(t, s.ShowNodeParent)
			assert.Equal(t, "Finished", s.Description)
		})
	}
}

func TestStep_WithCycle(t *testing.T) {
	t.Run("cycleDetection", func(t *testing.T) {
		s := sample(t, "withCycle")
		runAll(t, domain.AlgorithmCycleDetection, s)
		assert.Equal(t, map[string]float64{
			"1": -1, "4": -1, "7": -1, "9": -1, "11": -1, "12": -1,
			"13": -1, "14": -1, "90": -1,
			"10": 0, "15": 0, "16": 0, "17": 0,
		}, scores(s))
	})

	// The regular engine scores cycle members as draws and may disagree
	// with the retrograde result on nodes that reach a cycle.
	t.Run("regular", func(t *testing.T) {
		s := sample(t, "withCycle")
		runAll(t, domain.AlgorithmRegular, s)
		got := scores(s)
		assert.Len(t, got, 13)
		assert.Equal(t, -1.0, got["9"])
		assert.Equal(t, -1.0, got["4"])
		assert.Equal(t, 0.0, got["10"])
		assert.Equal(t, 0.0, got["1"])
	})
}

func TestStep_TerminalScoresUnchanged(t *testing.T) {
	for _, name := range samples.Names() {
		nodes, err := samples.Load(name)
		require.NoError(t, err)
		for _, alg := range domain.Algorithms {
			s := sample(t, name)
			runAll(t, alg, s)
			for _, n := range nodes {
				if n.IsTerminal() {
					require.NotNil(t, s.NodeScores[n.ID])
					assert.Equal(t, *n.Score, *s.NodeScores[n.ID], "%s/%s node %s", name, alg, n.ID)
				}
			}
		}
	}
}

func TestStep_Deterministic(t *testing.T) {
	for _, name := range samples.Names() {
		for _, alg := range domain.Algorithms {
			a, b := sample(t, name), sample(t, name)
			assert.Equal(t, runAll(t, alg, a), runAll(t, alg, b), "%s/%s", name, alg)
			assert.Equal(t, scores(a), scores(b))
			assert.Equal(t, a.Steps, b.Steps)
		}
	}
}

func TestStep_IdempotentAfterFinish(t *testing.T) {
	for _, alg := range domain.Algorithms {
		s := sample(t, "withCycle")
		runAll(t, alg, s)
		before := s.Snapshot()

		require.NoError(t, runtime.Step(alg, s))
		require.NoError(t, runtime.Step(alg, s))
		assert.Equal(t, before, s)
	}
}

func TestStep_SelfLoop(t *testing.T) {
	nodes := []domain.GraphNode{
		{ID: "R", Edges: []string{"A"}},
		{ID: "A", Edges: []string{"A", "T"}},
		{ID: "T", Score: domain.ScoreOf(1)},
	}

	t.Run("regular scores the loop as a draw", func(t *testing.T) {
		s := newState(t, nodes)
		runAll(t, domain.AlgorithmRegular, s)
		assert.Equal(t, 0.0, scores(s)["A"])
	})

	t.Run("cycleDetection draws when nothing is forced", func(t *testing.T) {
		s := newState(t, nodes)
		require.False(t, s.IsMax("A"))
		runAll(t, domain.AlgorithmCycleDetection, s)
		assert.Equal(t, 0.0, scores(s)["A"])
	})

	t.Run("cycleDetection propagates a forced win", func(t *testing.T) {
		maxA := []domain.GraphNode{nodes[0], {ID: "A", Edges: []string{"A", "T"}, IsMax: true}, nodes[2]}
		s := domain.NewTraversalState(maxA, graph.BuildAdjacencyList(maxA))
		runAll(t, domain.AlgorithmCycleDetection, s)
		assert.Equal(t, 1.0, scores(s)["A"])
	})
}

func TestStep_CrossValidation(t *testing.T) {
	// Acyclic graphs with shared children and {-1, 0, 1} payoffs.
	graphs := map[string][]domain.GraphNode{
		"diamond": {
			{ID: "a", Edges: []string{"b", "c"}},
			{ID: "b", Edges: []string{"d", "e"}},
			{ID: "c", Edges: []string{"d", "f"}},
			{ID: "d", Edges: []string{"e", "f"}},
			{ID: "e", Score: domain.ScoreOf(1)},
			{ID: "f", Score: domain.ScoreOf(-1)},
		},
		"two roots": {
			{ID: "r1", Edges: []string{"x", "y"}},
			{ID: "r2", Edges: []string{"y", "z"}},
			{ID: "x", Edges: []string{"z"}},
			{ID: "y", Score: domain.ScoreOf(0)},
			{ID: "z", Score: domain.ScoreOf(-1)},
		},
	}
	for name, nodes := range graphs {
		t.Run(name, func(t *testing.T) {
			reg, cyc := newState(t, nodes), newState(t, nodes)
			runAll(t, domain.AlgorithmRegular, reg)
			runAll(t, domain.AlgorithmCycleDetection, cyc)
			assert.Equal(t, scores(reg), scores(cyc))
		})
	}
}

func TestStep_Narration(t *testing.T) {
	s := sample(t, "noCycles")
	descs := runAll(t, domain.AlgorithmRegular, s)
	require.GreaterOrEqual(t, len(descs), 6)
	assert.Equal(t, []string{
		"Push the initial node into the stack",
		"Queued node: 1",
		"Ready to start navigating the graph",
		"Popped node 1 from the stack",
		"Process node children 2,3,4",
		"Node 2 not visited yet so it's pushed into the stack",
	}, descs[:6])

	c := sample(t, "noCycles")
	descs = runAll(t, domain.AlgorithmCycleDetection, c)
	assert.Equal(t, "Find all terminal nodes and set their scores", descs[0])
	assert.Equal(t, "Terminal node 8 with value: -1", descs[1])
	assert.Contains(t, descs, "The rest of the nodes can't force a win/lose state, so we can mark them as a draw")
}

func TestStep_Halts(t *testing.T) {
	s := sample(t, "noCycles")
	for range 5 {
		require.NoError(t, runtime.Step(domain.AlgorithmRegular, s))
	}
	// Corrupt the state: the node about to be expanded is already processing
	// its children when it is popped again.
	s.Stack = append(s.Stack, "1")
	s.NodeStates["1"] = domain.ProcessChildren
	s.Cursor.Phase = 3

	err := runtime.Step(domain.AlgorithmRegular, s)
	require.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.True(t, s.Cursor.Halted())

	snap := s.Snapshot()
	err = runtime.Step(domain.AlgorithmRegular, s)
	require.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.Equal(t, snap, s, "halted state is not modified")
}

func TestStep_UnknownAlgorithm(t *testing.T) {
	err := runtime.Step("alphaBeta", sample(t, "noCycles"))
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
}

func TestStep_ResumeFromSnapshot(t *testing.T) {
	for _, alg := range domain.Algorithms {
		full := sample(t, "withCycle")
		runAll(t, alg, full)

		s := sample(t, "withCycle")
		for range 20 {
			require.NoError(t, runtime.Step(alg, s))
		}
		resumed := s.Snapshot()
		runAll(t, alg, resumed)
		assert.Equal(t, scores(full), scores(resumed), string(alg))
		assert.Equal(t, full.Steps, resumed.Steps)
	}
}

func TestStep_AlgorithmIsBoundByFirstStep(t *testing.T) {
	s := sample(t, "noCycles")
	for range 6 {
		require.NoError(t, runtime.Step(domain.AlgorithmRegular, s))
	}
	assert.Equal(t, domain.AlgorithmRegular, s.Algorithm)

	snap := s.Snapshot()
	err := runtime.Step(domain.AlgorithmCycleDetection, s)
	require.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.Equal(t, snap, s, "state is not modified")
	assert.False(t, s.Cursor.Halted(), "the traversal can still go on with its own algorithm")

	runAll(t, domain.AlgorithmRegular, s)
	assert.Equal(t, -1.0, scores(s)["8"])
	assert.Equal(t, 1.0, scores(s)["10"])

	t.Run("a finished traversal still rejects the other algorithm", func(t *testing.T) {
		assert.ErrorIs(t, runtime.Step(domain.AlgorithmCycleDetection, s), domain.ErrInvariantViolation)
	})

	t.Run("restart unbinds", func(t *testing.T) {
		fresh := s.Restart()
		assert.Empty(t, fresh.Algorithm)
		runAll(t, domain.AlgorithmCycleDetection, fresh)
		assert.Equal(t, domain.AlgorithmCycleDetection, fresh.Algorithm)
	})
}

func TestStep_RegularRejectsRootlessCycle(t *testing.T) {
	nodes := []domain.GraphNode{
		{ID: "A", Edges: []string{"B"}},
		{ID: "B", Edges: []string{"A", "T"}},
		{ID: "T", Score: domain.ScoreOf(1)},
	}

	s := newState(t, nodes)
	err := runtime.Step(domain.AlgorithmRegular, s)
	require.ErrorIs(t, err, domain.ErrMalformedGraph)
	assert.True(t, s.Cursor.Halted())
	assert.Equal(t, 0, s.Steps)
	assert.False(t, s.Finished())

	c := newState(t, nodes)
	runAll(t, domain.AlgorithmCycleDetection, c)
	assert.Equal(t, 1.0, scores(c)["T"])
}
