package ports

import (
	"context"

	"github.com/aretw0/bpmnpath/pkg/domain"
)

// PathEngine is the engine surface used by the driving adapters (HTTP, MCP).
type PathEngine interface {
	// FindPath searches the process deployed under key.
	// A missing path is a Path with no nodes, not an error.
	FindPath(ctx context.Context, key string, q domain.Query) (*domain.Path, error)

	// Graph returns the parsed graph of the process deployed under key.
	Graph(ctx context.Context, key string) (*domain.Graph, error)
}
