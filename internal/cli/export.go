package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/minimaxviz/internal/presentation/graph"
	"github.com/aretw0/minimaxviz/pkg/domain"
)

// Export prints the configured graph as mermaid, dot or json. With solved
// set the drawing is coloured by the finished traversal.
func (a *App) Export(ctx context.Context, format string, solved bool) error {
	eng, doc, err := a.Engine(ctx)
	if err != nil {
		return err
	}

	var state *domain.TraversalState
	if solved {
		if state, err = eng.Solve(ctx); err != nil {
			return err
		}
	}

	switch format {
	case "", "mermaid":
		_, err = io.WriteString(a.Out, graph.GenerateMermaid(eng.Nodes(), state))
	case "dot":
		_, err = io.WriteString(a.Out, graph.GenerateDOT(doc.Name, eng.Nodes(), state))
	case "json":
		doc.Nodes = eng.Nodes()
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	default:
		return fmt.Errorf("unknown format %q (expected mermaid, dot or json)", format)
	}
	return err
}
