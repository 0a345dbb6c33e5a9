package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventDefinitionFetch EventType = "definition_fetch"
	EventPathSearch      EventType = "path_search"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// FetchEvent describes a definition load.
type FetchEvent struct {
	EventBase
	Key      string        `json:"key"`
	Source   string        `json:"source"`
	CacheHit bool          `json:"cache_hit"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// SearchEvent describes a completed path search.
type SearchEvent struct {
	EventBase
	SearchID string `json:"search_id"`
	Key      string `json:"key"`
	Start    string `json:"from"`
	End      string `json:"to"`
	Found    bool   `json:"found"`
	Hops     int    `json:"hops"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnFetch  func(context.Context, *FetchEvent)
	OnSearch func(context.Context, *SearchEvent)
}
