package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/bpmnpath/pkg/domain"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// ValidateGraph checks a process graph for broken sequence flows and flow
// nodes that no start event can reach.
// Flows inside a sub-process start at the sub-process's own start event, so
// those nodes count as reachable too.
func ValidateGraph(g *domain.Graph) error {
	var errors []string

	starts := g.NodesOfType(domain.NodeTypeStartEvent)
	if len(starts) == 0 {
		errors = append(errors, "No start event")
	}

	// 1. Index nodes
	dg := simple.NewDirectedGraph()
	ids := make(map[string]graph.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			errors = append(errors, fmt.Sprintf("Flow node of type '%s' has no id", n.Type))
			continue
		}
		if _, dup := ids[n.ID]; dup {
			errors = append(errors, fmt.Sprintf("Duplicate flow node id: '%s'", n.ID))
			continue
		}
		gn := dg.NewNode()
		dg.AddNode(gn)
		ids[n.ID] = gn
	}

	// 2. Check flows
	for _, e := range g.Edges {
		from, okFrom := ids[e.Source]
		to, okTo := ids[e.Target]
		if !okFrom {
			errors = append(errors, fmt.Sprintf("Sequence flow '%s' has unknown source: '%s'", e.ID, e.Source))
		}
		if !okTo {
			errors = append(errors, fmt.Sprintf("Sequence flow '%s' has unknown target: '%s'", e.ID, e.Target))
		}
		if !okFrom || !okTo || from.ID() == to.ID() {
			continue
		}
		dg.SetEdge(dg.NewEdge(from, to))
	}

	// 3. Crawl from every start event
	if len(starts) > 0 {
		var bf traverse.BreadthFirst
		for _, s := range starts {
			if n, ok := ids[s.ID]; ok && !bf.Visited(n) {
				bf.Walk(dg, n, nil)
			}
		}

		var unreachable []string
		for id, n := range ids {
			if !bf.Visited(n) {
				unreachable = append(unreachable, id)
			}
		}
		sort.Strings(unreachable)
		for _, id := range unreachable {
			errors = append(errors, fmt.Sprintf("Unreachable node: '%s'", id))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}
