package ports

import (
	"context"

	"github.com/aretw0/bpmnpath/pkg/domain"
)

// DefinitionSource defines how the engine retrieves process definitions.
type DefinitionSource interface {
	// Fetch retrieves the definition deployed under key.
	// Returns domain.ErrDefinitionNotFound if the source has no such key.
	Fetch(ctx context.Context, key string) (*domain.Definition, error)
}

// Watchable defines an interface for sources that can notify about backend changes.
type Watchable interface {
	// Watch returns a channel that receives the key of every definition that changed.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
