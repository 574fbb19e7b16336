package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep         EventType = "step"
	EventNodeResolved EventType = "node_resolved"
	EventFinish       EventType = "finish"
	EventError        EventType = "error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Algorithm Algorithm `json:"algorithm"`
}

// StepEvent describes one micro-step that just happened.
type StepEvent struct {
	EventBase
	Step        int    `json:"step"`
	Status      Status `json:"status"`
	Description string `json:"description"`
	Selected    string `json:"selected,omitempty"`
}

// NodeEvent is emitted when a node becomes Visited with its final score.
type NodeEvent struct {
	EventBase
	NodeID  string  `json:"node_id"`
	Score   float64 `json:"score"`
	Verdict string  `json:"verdict"`
}

// ErrorEvent reports a failed step.
type ErrorEvent struct {
	EventBase
	Step int   `json:"step"`
	Err  error `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStep         func(context.Context, *StepEvent)
	OnNodeResolved func(context.Context, *NodeEvent)
	OnFinish       func(context.Context, *StepEvent)
	OnError        func(context.Context, *ErrorEvent)
}

// Empty reports whether no hook is set.
func (h LifecycleHooks) Empty() bool {
	return h.OnStep == nil && h.OnNodeResolved == nil && h.OnFinish == nil && h.OnError == nil
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep:         chain(h.OnStep, other.OnStep),
		OnNodeResolved: chain(h.OnNodeResolved, other.OnNodeResolved),
		OnFinish:       chain(h.OnFinish, other.OnFinish),
		OnError:        chain(h.OnError, other.OnError),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
