package cli

import (
	"context"
	"fmt"
	"io"
)

// RunWatch re-validates definitions as they change at the source until ctx is done.
func RunWatch(ctx context.Context, rt *Runtime, w io.Writer) error {
	changes, err := rt.Engine.Watch(ctx)
	if err != nil {
		return err
	}

	rt.Logger.Info("Starting Watcher", "key", rt.Engine.DefaultKey())
	report(ctx, rt, rt.Engine.DefaultKey(), w)

	for {
		select {
		case <-ctx.Done():
			return nil
		case key, ok := <-changes:
			if !ok {
				return nil
			}
			rt.Logger.Info("definition changed", "key", key)
			report(ctx, rt, key, w)
		}
	}
}

func report(ctx context.Context, rt *Runtime, key string, w io.Writer) {
	if err := RunValidate(ctx, rt, key); err != nil {
		fmt.Fprintf(w, "✗ %s: %v\n", key, err)
		return
	}
	fmt.Fprintf(w, "✓ %s is valid\n", key)
}
