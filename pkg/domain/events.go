package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventLoad   EventType = "load"
	EventLookup EventType = "lookup"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// LoadEvent is emitted after an automaton was read (or failed to be read).
type LoadEvent struct {
	EventBase
	Name     string        `json:"name"`
	States   int           `json:"states"`
	Arcs     int           `json:"arcs"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LookupEvent is emitted once a lookup has stopped pulling results.
type LookupEvent struct {
	EventBase
	Name       string        `json:"name"`
	Word       string        `json:"word"`
	Direction  Direction     `json:"direction"`
	Results    int           `json:"results"`
	Expansions int           `json:"expansions"`
	CacheHit   bool          `json:"cache_hit,omitempty"`
	Truncated  bool          `json:"truncated,omitempty"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnLoad   func(context.Context, *LoadEvent)
	OnLookup func(context.Context, *LookupEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnLoad:   chain(h.OnLoad, other.OnLoad),
		OnLookup: chain(h.OnLookup, other.OnLookup),
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
