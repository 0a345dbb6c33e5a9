package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/bpmnpath/pkg/domain"
)

// Source implements ports.DefinitionSource using an in-memory map.
type Source struct {
	mu   sync.RWMutex
	defs map[string]domain.Definition
}

// NewSource creates a Source serving the provided raw XML documents by key.
func NewSource(data map[string]string) *Source {
	defs := make(map[string]domain.Definition, len(data))
	for key, xml := range data {
		defs[key] = domain.Definition{ID: key, Key: key, XML: xml}
	}
	return &Source{defs: defs}
}

// Set adds or replaces the document for key.
func (s *Source) Set(key, xml string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defs[key] = domain.Definition{ID: key, Key: key, XML: xml}
}

// Fetch returns the definition stored under key.
func (s *Source) Fetch(ctx context.Context, key string) (*domain.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.defs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, key)
	}
	return &def, nil
}

// List returns all available keys.
func (s *Source) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.defs))
	for k := range s.defs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys
}

// String names the source for logs and metrics.
func (s *Source) String() string {
	return "memory"
}
