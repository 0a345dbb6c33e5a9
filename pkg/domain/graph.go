package domain

// Graph is the flow-node graph of a single process definition.
type Graph struct {
	ProcessID string  `json:"process_id"`
	Nodes     []Node  `json:"nodes"`
	Edges     EdgeSet `json:"edges"`
}

// Node returns the flow node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodesOfType returns every node of the given type, in document order.
func (g *Graph) NodesOfType(t NodeType) []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}
