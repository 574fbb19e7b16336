package ports

import (
	"context"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// GraphLoader defines where named graphs come from.
// This allows the source (embedded samples, a directory, memory) to be decoupled.
type GraphLoader interface {
	// Load returns the graph called name.
	// Returns domain.ErrGraphNotFound if there is no such graph.
	Load(ctx context.Context, name string) (domain.GraphDocument, error)

	// List returns the names of the available graphs, sorted.
	List(ctx context.Context) ([]string, error)
}
