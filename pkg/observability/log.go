package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// LogHooks returns lifecycle hooks writing one structured line per event.
// Steps are logged at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"algorithm", string(e.Algorithm),
				"step", e.Step,
				"selected", e.Selected,
				"description", e.Description,
			)
		},
		OnNodeResolved: func(ctx context.Context, e *domain.NodeEvent) {
			logger.InfoContext(ctx, "node_resolved",
				"algorithm", string(e.Algorithm),
				"node_id", e.NodeID,
				"score", e.Score,
				"verdict", e.Verdict,
			)
		},
		OnFinish: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, "traversal_finished", "algorithm", string(e.Algorithm), "steps", e.Step)
		},
		OnError: func(ctx context.Context, e *domain.ErrorEvent) {
			logger.ErrorContext(ctx, "step_failed", "algorithm", string(e.Algorithm), "step", e.Step, "error", e.Err)
		},
	}
}
