package search_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/bpmnpath/internal/search"
	"github.com/aretw0/bpmnpath/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPath(t *testing.T) {
	tests := []struct {
		name  string
		edges domain.EdgeSet
		start string
		end   string
		want  []string
	}{
		{
			name:  "Linear chain",
			edges: domain.NewEdgeSet("A", "B", "B", "C"),
			start: "A",
			end:   "C",
			want:  []string{"A", "B", "C"},
		},
		{
			name:  "Wrong direction",
			edges: domain.NewEdgeSet("A", "B", "B", "C"),
			start: "C",
			end:   "A",
			want:  nil,
		},
		{
			name:  "Unreachable end",
			edges: domain.NewEdgeSet("A", "B"),
			start: "A",
			end:   "Z",
			want:  nil,
		},
		{
			name:  "Unknown start",
			edges: domain.NewEdgeSet("A", "B"),
			start: "Z",
			end:   "B",
			want:  nil,
		},
		{
			name:  "Same node on empty graph",
			edges: domain.EdgeSet{},
			start: "A",
			end:   "A",
			want:  []string{"A"},
		},
		{
			name:  "Same node inside a graph",
			edges: domain.NewEdgeSet("A", "B", "B", "A"),
			start: "B",
			end:   "B",
			want:  []string{"B"},
		},
		{
			name:  "Two node cycle",
			edges: domain.NewEdgeSet("A", "B", "B", "A"),
			start: "A",
			end:   "B",
			want:  []string{"A", "B"},
		},
		{
			name:  "Self loop is ignored",
			edges: domain.NewEdgeSet("A", "A", "A", "B"),
			start: "A",
			end:   "B",
			want:  []string{"A", "B"},
		},
		{
			name:  "Duplicate edges",
			edges: domain.NewEdgeSet("A", "B", "A", "B", "B", "C"),
			start: "A",
			end:   "C",
			want:  []string{"A", "B", "C"},
		},
		{
			name:  "Shortcut wins over long branch",
			edges: domain.NewEdgeSet("A", "B", "B", "C", "C", "D", "A", "D"),
			start: "A",
			end:   "D",
			want:  []string{"A", "D"},
		},
		{
			name: "Gateway loop back",
			edges: domain.NewEdgeSet(
				"start", "approve",
				"approve", "gw",
				"gw", "review",
				"review", "approve",
				"gw", "end",
			),
			start: "start",
			end:   "end",
			want:  []string{"start", "approve", "gw", "end"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := search.FindPath(tt.edges, tt.start, tt.end)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindPath_DiamondIsMinimal(t *testing.T) {
	edges := domain.NewEdgeSet("A", "B", "A", "C", "C", "D", "B", "D")

	got := search.FindPath(edges, "A", "D")
	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0])
	assert.Equal(t, "D", got[2])
	assert.Contains(t, []string{"B", "C"}, got[1])
	assertWalk(t, edges, got)
}

func TestFindPath_Deterministic(t *testing.T) {
	edges := domain.NewEdgeSet("A", "B", "A", "C", "C", "D", "B", "D")

	first := search.FindPath(edges, "A", "D")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, search.FindPath(edges, "A", "D"))
	}
}

func TestFindPath_LargeCycles(t *testing.T) {
	// A ring of n nodes with a chord every 10 nodes back to the first.
	const n = 500
	var pairs []string
	for i := 0; i < n; i++ {
		from := fmt.Sprintf("n%d", i)
		to := fmt.Sprintf("n%d", (i+1)%n)
		pairs = append(pairs, from, to)
		if i%10 == 0 {
			pairs = append(pairs, from, "n0")
		}
	}
	edges := domain.NewEdgeSet(pairs...)

	got := search.FindPath(edges, "n0", fmt.Sprintf("n%d", n-1))
	require.Len(t, got, n)
	assertWalk(t, edges, got)
	assertNoDuplicates(t, got)

	assert.Nil(t, search.FindPath(edges, "n0", "missing"))
}

func assertWalk(t *testing.T, edges domain.EdgeSet, path []string) {
	t.Helper()
	for i := 0; i+1 < len(path); i++ {
		assert.True(t, edges.Has(path[i], path[i+1]), "missing edge %s -> %s", path[i], path[i+1])
	}
}

func assertNoDuplicates(t *testing.T, path []string) {
	t.Helper()
	seen := make(map[string]bool)
	for _, id := range path {
		assert.False(t, seen[id], "duplicate node %s", id)
		seen[id] = true
	}
}
