package samples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/graph"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"noCycles", "withCycle"}, Names())
}

func TestLoad(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			nodes, err := Load(name)
			require.NoError(t, err)
			require.NotEmpty(t, nodes)
			assert.NoError(t, graph.Validate(nodes))
			for _, n := range nodes {
				assert.NotNil(t, n.Position, "node %s has no position", n.ID)
			}
		})
	}
}

func TestLoad_Order(t *testing.T) {
	nodes, err := Load("noCycles")
	require.NoError(t, err)

	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "10", "11", "12"}, ids)
	assert.Equal(t, -1.0, *nodes[7].Score)
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("tictactoe")
	require.ErrorIs(t, err, domain.ErrGraphNotFound)
	assert.Contains(t, err.Error(), "noCycles, withCycle")
}
