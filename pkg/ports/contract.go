package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

func contractSession(id string) *domain.Session {
	adj := domain.NewAdjacencyList()
	adj.AddEdge("1", "2")
	nodes := []domain.GraphNode{
		{ID: "1", Edges: []string{"2"}, IsMax: true},
		{ID: "2", Score: domain.ScoreOf(1)},
	}
	now := time.Now()
	return &domain.Session{
		ID:        id,
		Graph:     "contract",
		Algorithm: domain.AlgorithmRegular,
		CreatedAt: now,
		UpdatedAt: now,
		State:     domain.NewTraversalState(nodes, adj),
	}
}

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		sess := contractSession(sessionID)
		sess.State.NodeStates["2"] = domain.Visited
		sess.State.SetScore("2", 1)

		require.NoError(t, store.Save(ctx, sess), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sess.Graph, loaded.Graph)
		assert.Equal(t, sess.Algorithm, loaded.Algorithm)
		assert.Equal(t, domain.Visited, loaded.State.NodeStates["2"])
		require.NotNil(t, loaded.State.NodeScores["2"])
		assert.Equal(t, 1.0, *loaded.State.NodeScores["2"])
	})

	t.Run("Copy On Read", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, contractSession(sessionID)))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.State.NodeStates["1"] = domain.Queued

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.Unvisited, again.State.NodeStates["1"], "mutating a loaded session must not leak into the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, contractSession(sessionID)))

		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, contractSession(id1))
		_ = store.Save(ctx, contractSession(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunGraphLoaderContract verifies a GraphLoader. The loader must expose at
// least one graph and must not know a graph called "does-not-exist".
func RunGraphLoaderContract(t *testing.T, loader GraphLoader) {
	ctx := context.Background()

	names, err := loader.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, names, "loader should expose at least one graph")
	assert.IsNonDecreasing(t, names, "names should be sorted")

	for _, name := range names {
		doc, err := loader.Load(ctx, name)
		require.NoError(t, err, "Load(%q)", name)
		assert.Equal(t, name, doc.Name)
		assert.NotEmpty(t, doc.Nodes, "graph %q has no nodes", name)
	}

	_, err = loader.Load(ctx, "does-not-exist")
	assert.ErrorIs(t, err, domain.ErrGraphNotFound)
}
