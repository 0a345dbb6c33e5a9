package domain

import (
	"fmt"
	"strings"
)

// Query asks for a path from Start to End.
type Query struct {
	Start string `json:"from"`
	End   string `json:"to"`
}

// Validate checks that both ends are present.
// Ids that do not exist in the graph are valid; they simply yield no path.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Start) == "" {
		return fmt.Errorf("%w: start node is required", ErrInvalidQuery)
	}
	if strings.TrimSpace(q.End) == "" {
		return fmt.Errorf("%w: end node is required", ErrInvalidQuery)
	}
	return nil
}

// Path is the result of a search. Nodes is empty when no path exists.
type Path struct {
	Start string   `json:"from"`
	End   string   `json:"to"`
	Nodes []string `json:"path"`
}

// Found reports whether the search connected Start to End.
func (p Path) Found() bool {
	return len(p.Nodes) > 0
}

// Hops is the number of sequence flows walked, or -1 when no path exists.
func (p Path) Hops() int {
	if !p.Found() {
		return -1
	}
	return len(p.Nodes) - 1
}

// String renders the node ids as "[a, b, c]".
func (p Path) String() string {
	return "[" + strings.Join(p.Nodes, ", ") + "]"
}
