package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/bpmnpath/internal/presentation/tui"
	"github.com/aretw0/bpmnpath/pkg/domain"
)

// FindOptions controls how a search result is printed.
type FindOptions struct {
	Key    string
	Start  string
	End    string
	Report bool
	// Render turns markdown into terminal output; nil prints markdown as is.
	Render func(string) (string, error)
}

// RunFind searches for a path and prints the outcome to w.
// It reports whether a path was found; errors are returned unprinted.
func RunFind(ctx context.Context, rt *Runtime, opts FindOptions, w io.Writer) (bool, error) {
	path, err := rt.Engine.FindPath(ctx, opts.Key, domain.Query{Start: opts.Start, End: opts.End})
	if err != nil {
		return false, err
	}

	if !opts.Report {
		fmt.Fprintln(w, tui.FormatResult(path))
		return path.Found(), nil
	}

	g, err := rt.Engine.Graph(ctx, opts.Key)
	if err != nil {
		return false, err
	}
	out := tui.FormatReport(path, g)
	if opts.Render != nil {
		rendered, err := opts.Render(out)
		if err == nil {
			out = rendered
		} else {
			rt.Logger.Warn("markdown render failed", "err", err)
		}
	}
	fmt.Fprint(w, out)
	return path.Found(), nil
}
