package runtime

import (
	"context"
	"time"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

func (e *Engine) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Algorithm: e.algorithm,
	}
}

func (e *Engine) stepEvent(t domain.EventType, s *domain.TraversalState) *domain.StepEvent {
	return &domain.StepEvent{
		EventBase:   e.base(t),
		Step:        s.Steps,
		Status:      s.Status,
		Description: s.Description,
		Selected:    s.SelectedNode,
	}
}

func (e *Engine) emitStep(ctx context.Context, s *domain.TraversalState) {
	if e.hooks.OnStep != nil {
		e.hooks.OnStep(ctx, e.stepEvent(domain.EventStep, s))
	}
}

func (e *Engine) emitFinish(ctx context.Context, s *domain.TraversalState) {
	if e.hooks.OnFinish != nil {
		e.hooks.OnFinish(ctx, e.stepEvent(domain.EventFinish, s))
	}
}

func (e *Engine) emitError(ctx context.Context, s *domain.TraversalState, err error) {
	if e.hooks.OnError != nil {
		e.hooks.OnError(ctx, &domain.ErrorEvent{
			EventBase: e.base(domain.EventError),
			Step:      s.Steps,
			Err:       err,
		})
	}
}

// emitResolved fires OnNodeResolved for every node that became Visited,
// in key order.
func (e *Engine) emitResolved(ctx context.Context, s *domain.TraversalState, before map[string]domain.NodeState) {
	if e.hooks.OnNodeResolved == nil {
		return
	}
	for _, id := range s.Order {
		if s.NodeStates[id] != domain.Visited || before[id] == domain.Visited {
			continue
		}
		score := s.NodeScores[id]
		ev := &domain.NodeEvent{
			EventBase: e.base(domain.EventNodeResolved),
			NodeID:    id,
			Verdict:   domain.Verdict(domain.Visited, score),
		}
		if score != nil {
			ev.Score = *score
		}
		e.hooks.OnNodeResolved(ctx, ev)
	}
}
