// Package search finds a path between two flow nodes.
//
// The search runs breadth-first over the reversed graph: it starts at the end
// node and follows sequence flows from target back to source until it reaches
// the start node. Each discovered node keeps a link to the node it was reached
// from, so the chain read from the start node onwards is already head-to-tail.
package search

import "github.com/aretw0/bpmnpath/pkg/domain"

// pathNode is a node id plus the node that led to it during the backward
// search. The end node has no next.
type pathNode struct {
	id   string
	next *pathNode
}

// FindPath returns the node ids of a path from start to end, both inclusive,
// or nil when end cannot be reached from start.
//
// The first path found uses the fewest sequence flows. When several such paths
// exist, the one returned depends on the order of edges. A query whose start
// equals its end yields the single-node path, whether or not the node appears
// in edges.
func FindPath(edges domain.EdgeSet, start, end string) []string {
	incoming := edges.Incoming()

	queue := []*pathNode{{id: end}}
	queued := map[string]bool{end: true}
	closed := make(map[string]bool)

	var found *pathNode
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.id == start {
			found = current
			break
		}

		for _, source := range incoming[current.id] {
			if queued[source] || closed[source] {
				continue
			}
			queue = append(queue, &pathNode{id: source, next: current})
			queued[source] = true
		}

		delete(queued, current.id)
		closed[current.id] = true
	}

	if found == nil {
		return nil
	}

	var path []string
	for n := found; n != nil; n = n.next {
		path = append(path, n.id)
	}
	return path
}
