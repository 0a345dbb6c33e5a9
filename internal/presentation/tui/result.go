package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/bpmnpath/pkg/domain"
)

// Messages printed by the find command.
const (
	MsgNotFound = "Path not found"
	MsgError    = "There was an error"
)

// FormatResult renders a search outcome as the single line the CLI prints.
func FormatResult(p *domain.Path) string {
	if p == nil || !p.Found() {
		return MsgNotFound
	}
	return fmt.Sprintf("The path from %s to %s is: %s", p.Start, p.End, p.String())
}

// FormatReport renders a search outcome as markdown, one numbered step per node.
func FormatReport(p *domain.Path, g *domain.Graph) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s → %s\n\n", p.Start, p.End)
	if !p.Found() {
		sb.WriteString("_" + MsgNotFound + "_\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "**%d hops**\n\n", p.Hops())
	for i, id := range p.Nodes {
		line := fmt.Sprintf("%d. `%s`", i+1, id)
		if g != nil {
			if n, ok := g.Node(id); ok {
				if n.Name != "" {
					line += " " + n.Name
				}
				line += fmt.Sprintf(" _(%s)_", n.Type)
			}
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}
