package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventDecision  EventType = "decision"
	EventMutation  EventType = "mutation"
	EventCrossover EventType = "crossover"
	EventSimplify  EventType = "simplify"
	EventGenerate  EventType = "generate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// NewEventBase stamps an event of the given type with the current time.
func NewEventBase(t EventType) EventBase {
	return EventBase{Timestamp: time.Now(), Type: t}
}

// DecisionEvent reports one action visited while executing a tree.
type DecisionEvent struct {
	EventBase
	Action Action `json:"action"`
	Depth  int    `json:"depth"`
	// Branch is "left" or "right" for conditionals, empty for terminals.
	Branch string `json:"branch,omitempty"`
}

// MutationEvent reports a node whose action was re-rolled during cloning.
type MutationEvent struct {
	EventBase
	From Action `json:"from"`
	To   Action `json:"to"`
}

// Crossover sides.
const (
	SideLeft  = "left"
	SideRight = "right"
	SideNone  = "none"
)

// CrossoverEvent reports which root branch of the first parent was replaced.
type CrossoverEvent struct {
	EventBase
	Side  string `json:"side"`
	Level int    `json:"level"`
}

// SimplifyEvent reports how many nodes a simplification removed.
type SimplifyEvent struct {
	EventBase
	Removed int `json:"removed"`
	Level   int `json:"level"`
}

// GenerateEvent reports a randomly generated tree.
type GenerateEvent struct {
	EventBase
	MinLevel int `json:"min_level"`
	MaxLevel int `json:"max_level"`
	Level    int `json:"level"`
	Size     int `json:"size"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnDecision  func(context.Context, *DecisionEvent)
	OnMutation  func(context.Context, *MutationEvent)
	OnCrossover func(context.Context, *CrossoverEvent)
	OnSimplify  func(context.Context, *SimplifyEvent)
	OnGenerate  func(context.Context, *GenerateEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnDecision:  chain(h.OnDecision, other.OnDecision),
		OnMutation:  chain(h.OnMutation, other.OnMutation),
		OnCrossover: chain(h.OnCrossover, other.OnCrossover),
		OnSimplify:  chain(h.OnSimplify, other.OnSimplify),
		OnGenerate:  chain(h.OnGenerate, other.OnGenerate),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
