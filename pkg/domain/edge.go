package domain

// Edge is a directed sequence flow. Source and Target are node ids.
type Edge struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`

	// Condition holds the text of a conditionExpression, if any.
	// It is informational only; the search ignores it.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// EdgeSet is an unordered, read-only collection of edges.
// Duplicates are allowed.
type EdgeSet []Edge

// NewEdgeSet builds an EdgeSet from (source, target) pairs.
// It panics if pairs has an odd length.
func NewEdgeSet(pairs ...string) EdgeSet {
	if len(pairs)%2 != 0 {
		panic("domain: NewEdgeSet requires source/target pairs")
	}
	edges := make(EdgeSet, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		edges = append(edges, Edge{Source: pairs[i], Target: pairs[i+1]})
	}
	return edges
}

// Incoming indexes the edge set by target, keeping the edge order of each bucket.
func (s EdgeSet) Incoming() map[string][]string {
	idx := make(map[string][]string)
	for _, e := range s {
		idx[e.Target] = append(idx[e.Target], e.Source)
	}
	return idx
}

// Has reports whether a forward edge source -> target exists.
func (s EdgeSet) Has(source, target string) bool {
	for _, e := range s {
		if e.Source == source && e.Target == target {
			return true
		}
	}
	return false
}
