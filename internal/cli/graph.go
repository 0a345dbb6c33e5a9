package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/bpmnpath/internal/presentation/graph"
	"github.com/aretw0/bpmnpath/internal/validator"
	"github.com/aretw0/bpmnpath/pkg/domain"
)

// RunGraph prints the process as a Mermaid flowchart, or as JSON when format is "json".
// When from and to are both set, the path between them is highlighted.
func RunGraph(ctx context.Context, rt *Runtime, key, from, to, format string, w io.Writer) error {
	g, err := rt.Engine.Graph(ctx, key)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	var overlay *graph.GraphOverlay
	if from != "" && to != "" {
		path, err := rt.Engine.FindPath(ctx, key, domain.Query{Start: from, End: to})
		if err != nil {
			return err
		}
		overlay = &graph.GraphOverlay{PathNodes: path.Nodes}
	}

	_, err = fmt.Fprint(w, graph.GenerateMermaid(g, overlay))
	return err
}

// RunValidate loads the process and checks its structure.
func RunValidate(ctx context.Context, rt *Runtime, key string) error {
	g, err := rt.Engine.Graph(ctx, key)
	if err != nil {
		return err
	}
	return validator.ValidateGraph(g)
}
