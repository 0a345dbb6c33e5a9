package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/bpmnpath/pkg/domain"
)

// GraphOverlay highlights a found path on the diagram.
type GraphOverlay struct {
	PathNodes []string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a process graph.
// It applies semantic styling:
// - Events: ((Circle))
// - Gateways: {Rhombus}
// - Sub-processes and call activities: [[Subroutine]]
// - Default: [Rectangle]
// Overlay nodes, and the flows between consecutive overlay nodes, are highlighted.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, node := range g.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch {
		case node.Type.IsEvent():
			opener, closer = "((", "))"
		case node.Type.IsGateway():
			opener, closer = "{", "}"
		case node.Type == domain.NodeTypeSubProcess || node.Type == "callActivity":
			opener, closer = "[[", "]]"
		}

		label := node.ID
		if node.Name != "" {
			label = node.Name
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(label), closer))
	}

	// Mermaid numbers links in declaration order; linkStyle needs those indexes.
	onPath := pathLinks(overlay)
	var highlighted []int
	for i, e := range g.Edges {
		arrow := "-->"
		if e.Name != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escapeLabel(e.Name))
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(e.Source), arrow, sanitizeMermaidID(e.Target)))
		if onPath[e.Source+"\x00"+e.Target] {
			highlighted = append(highlighted, i)
			// Duplicate flows would be highlighted twice otherwise.
			delete(onPath, e.Source+"\x00"+e.Target)
		}
	}

	if overlay != nil && len(overlay.PathNodes) > 0 {
		sb.WriteString("\n    %% Path Overlay\n")
		sb.WriteString("    classDef path fill:#ffeb3b,stroke:#fbc02d,stroke-width:3px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.PathNodes {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s path;\n", safeID))
			}
		}
		for _, i := range highlighted {
			sb.WriteString(fmt.Sprintf("    linkStyle %d stroke:#fbc02d,stroke-width:3px;\n", i))
		}
	}

	return sb.String()
}

func pathLinks(overlay *GraphOverlay) map[string]bool {
	links := make(map[string]bool)
	if overlay == nil {
		return links
	}
	for i := 0; i+1 < len(overlay.PathNodes); i++ {
		links[overlay.PathNodes[i]+"\x00"+overlay.PathNodes[i+1]] = true
	}
	return links
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.ReplaceAll(s, "\n", " ")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
