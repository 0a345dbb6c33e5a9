package ports

import (
	"context"

	"github.com/aretw0/bpmnpath/pkg/domain"
)

// DefinitionCache keeps fetched definitions so repeated searches skip the source.
type DefinitionCache interface {
	// Get returns the cached definition.
	// Returns domain.ErrCacheMiss if nothing is cached under key.
	Get(ctx context.Context, key string) (*domain.Definition, error)

	// Put stores the definition under key.
	Put(ctx context.Context, key string, def *domain.Definition) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
