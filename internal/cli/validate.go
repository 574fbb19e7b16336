package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/minimaxviz/pkg/graph"
)

// Validate checks the named graphs, or every known graph when names is
// empty. Each result is printed; the returned error joins the failures.
func (a *App) Validate(ctx context.Context, names []string) error {
	if len(names) == 0 {
		var err error
		if names, err = a.Loader.List(ctx); err != nil {
			return err
		}
	}

	var errs []error
	for _, name := range names {
		doc, err := a.Loader.Load(ctx, name)
		if err == nil {
			err = graph.Validate(doc.Nodes)
		}
		if err != nil {
			fmt.Fprintf(a.Out, "✗ %s: %v\n", name, err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		fmt.Fprintf(a.Out, "✓ %s (%d nodes)\n", name, len(doc.Nodes))
	}
	return errors.Join(errs...)
}

// Graphs prints the names of the known graphs.
func (a *App) Graphs(ctx context.Context) error {
	names, err := a.Loader.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(a.Out, name)
	}
	return nil
}
