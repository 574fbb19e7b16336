package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// stepper advances a traversal to its next yield point.
// Implementations only read and write the state they are given; every
// register they need between two calls lives in state.Cursor.
type stepper interface {
	advance(s *domain.TraversalState) error
	phaseName(p domain.Phase) string
}

func stepperFor(alg domain.Algorithm) (stepper, error) {
	switch alg {
	case domain.AlgorithmRegular:
		return acyclic{}, nil
	case domain.AlgorithmCycleDetection:
		return cyclic{}, nil
	}
	return nil, fmt.Errorf("%w %q", domain.ErrUnknownAlgorithm, alg)
}

// Step advances state by exactly one micro-step using the given algorithm.
//
// Stepping a finished traversal is a no-op. An invariant violation halts the
// traversal: the error is recorded in the cursor and every later call returns
// it again without touching the state. A traversal is bound to the algorithm
// of its first step; stepping it with another one fails with
// domain.ErrInvariantViolation and leaves the state as it was.
func Step(alg domain.Algorithm, state *domain.TraversalState) error {
	st, err := stepperFor(alg)
	if err != nil {
		return err
	}
	return step(alg, st, state)
}

func step(alg domain.Algorithm, st stepper, s *domain.TraversalState) error {
	if s.Cursor.Halted() {
		return fmt.Errorf("%w: traversal halted: %s", domain.ErrInvariantViolation, s.Cursor.Fault)
	}
	if s.Algorithm != "" && s.Algorithm != alg {
		return fmt.Errorf("%w: traversal belongs to %q, cannot step it with %q", domain.ErrInvariantViolation, s.Algorithm, alg)
	}
	if s.Finished() {
		return nil
	}
	s.Algorithm = alg
	if err := st.advance(s); err != nil {
		s.Cursor.Fault = err.Error()
		return err
	}
	s.Steps++
	return nil
}

func invariant(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvariantViolation, fmt.Sprintf(format, args...))
}

// Engine wraps a stepper with logging and lifecycle hooks.
type Engine struct {
	algorithm domain.Algorithm
	stepper   stepper
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine for the given algorithm.
func NewEngine(alg domain.Algorithm, opts ...EngineOption) (*Engine, error) {
	st, err := stepperFor(alg)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		algorithm: alg,
		stepper:   st,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("algorithm", string(alg))
	return e, nil
}

// Algorithm returns the algorithm the engine was built for.
func (e *Engine) Algorithm() domain.Algorithm {
	return e.algorithm
}

// Step advances state by one micro-step and fires the matching hooks.
func (e *Engine) Step(ctx context.Context, state *domain.TraversalState) error {
	if state.Finished() && !state.Cursor.Halted() {
		return nil
	}

	var before map[string]domain.NodeState
	if e.hooks.OnNodeResolved != nil {
		before = maps.Clone(state.NodeStates)
	}

	if err := step(e.algorithm, e.stepper, state); err != nil {
		e.logger.Error("step failed", "step", state.Steps, "node", state.Cursor.Node, "error", err)
		e.emitError(ctx, state, err)
		return err
	}

	e.logger.Debug("step",
		"step", state.Steps,
		"phase", e.stepper.phaseName(state.Cursor.Phase),
		"node", state.SelectedNode,
		"status", state.Status.String(),
		"description", state.Description,
	)

	e.emitResolved(ctx, state, before)
	e.emitStep(ctx, state)
	if state.Finished() {
		e.logger.Info("traversal finished", "steps", state.Steps)
		e.emitFinish(ctx, state)
	}
	return nil
}

// Run steps state until it is finished or ctx is cancelled.
func (e *Engine) Run(ctx context.Context, state *domain.TraversalState) error {
	for !state.Finished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Step(ctx, state); err != nil {
			return err
		}
	}
	return nil
}
