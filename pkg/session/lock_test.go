package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/minimaxviz/pkg/adapters/memory"
	"github.com/aretw0/minimaxviz/pkg/domain"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	count := 1000

	nodes := []domain.GraphNode{{ID: "1", Edges: []string{"2"}}, {ID: "2", Score: domain.ScoreOf(1)}}

	// 1. Create, step and delete many sessions
	for i := 0; i < count; i++ {
		sess, err := mgr.Create(ctx, fmt.Sprintf("g-%d", i), nodes, domain.AlgorithmRegular)
		if !assert.NoError(t, err) {
			return
		}
		_, _, _ = mgr.Step(ctx, sess.ID, 1)
		_ = mgr.Delete(ctx, sess.ID)
	}

	// 2. Nothing may remain in the lock or engine maps
	assert.Empty(t, mgr.locks, "locks leaked after Delete")
	assert.Empty(t, mgr.engines, "engines leaked after Delete")
}
