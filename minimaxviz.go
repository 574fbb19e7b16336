package minimaxviz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/aretw0/minimaxviz/internal/runtime"
	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/graph"
)

// InitializeTraversal validates nodes, assigns max/min levels and returns a
// fresh traversal state. Construction fails with domain.ErrMalformedGraph
// when a terminal node has no score.
func InitializeTraversal(nodes []domain.GraphNode) (*domain.TraversalState, error) {
	if err := graph.Validate(nodes); err != nil {
		return nil, err
	}
	leveled := graph.AssignLevels(nodes)
	return domain.NewTraversalState(leveled, graph.BuildAdjacencyList(leveled)), nil
}

// Step advances state by exactly one micro-step with the named algorithm
// ("regular" or "cycleDetection").
func Step(algorithm string, state *domain.TraversalState) error {
	alg, err := domain.ParseAlgorithm(algorithm)
	if err != nil {
		return err
	}
	return runtime.Step(alg, state)
}

// Engine is the high-level entry point of the library.
// It binds a graph to one algorithm and produces fresh traversals of it.
type Engine struct {
	runtime   *runtime.Engine
	nodes     []domain.GraphNode
	adj       *domain.AdjacencyList
	algorithm domain.Algorithm
	keepRoles bool
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	Name      string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithAlgorithm selects the traversal algorithm (default: regular).
func WithAlgorithm(alg domain.Algorithm) Option {
	return func(e *Engine) {
		e.algorithm = alg
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithName labels the graph in logs.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// WithoutLevels keeps the IsMax flags as declared instead of deriving them
// from BFS depth.
func WithoutLevels() Option {
	return func(e *Engine) {
		e.keepRoles = true
	}
}

// New validates nodes and builds an Engine for them.
func New(nodes []domain.GraphNode, opts ...Option) (*Engine, error) {
	eng := &Engine{algorithm: domain.AlgorithmRegular}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.algorithm == "" {
		eng.algorithm = domain.AlgorithmRegular
	}
	if err := graph.Validate(nodes); err != nil {
		return nil, err
	}
	if eng.keepRoles {
		eng.nodes = slices.Clone(nodes)
	} else {
		eng.nodes = graph.AssignLevels(nodes)
	}
	eng.adj = graph.BuildAdjacencyList(eng.nodes)
	if eng.algorithm == domain.AlgorithmRegular {
		if lost := graph.Unreachable(eng.adj); len(lost) > 0 {
			return nil, fmt.Errorf("%w: nodes %s cannot be reached from a starting node, use %s", domain.ErrMalformedGraph, strings.Join(lost, ","), domain.AlgorithmCycleDetection)
		}
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("graph", eng.Name)
	}

	rt, err := runtime.NewEngine(eng.algorithm,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	eng.runtime = rt
	return eng, nil
}

// Start returns a fresh traversal state. Restarting a session is calling
// Start again and dropping the old state.
func (e *Engine) Start() *domain.TraversalState {
	return domain.NewTraversalState(e.nodes, e.adj)
}

// Step advances state by one micro-step.
func (e *Engine) Step(ctx context.Context, state *domain.TraversalState) error {
	return e.runtime.Step(ctx, state)
}

// Run steps state until it is finished or ctx is cancelled.
func (e *Engine) Run(ctx context.Context, state *domain.TraversalState) error {
	return e.runtime.Run(ctx, state)
}

// Solve runs a fresh traversal to completion and returns it.
func (e *Engine) Solve(ctx context.Context) (*domain.TraversalState, error) {
	state := e.Start()
	if err := e.Run(ctx, state); err != nil {
		return state, err
	}
	return state, nil
}

// Nodes returns the graph with its resolved max/min roles.
func (e *Engine) Nodes() []domain.GraphNode {
	return slices.Clone(e.nodes)
}

// Adjacency returns the adjacency list shared by every traversal.
func (e *Engine) Adjacency() *domain.AdjacencyList {
	return e.adj
}

// Algorithm returns the selected algorithm.
func (e *Engine) Algorithm() domain.Algorithm {
	return e.algorithm
}
