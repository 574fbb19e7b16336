package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that nodes describe a graph both engines can traverse:
// every node has an ID, no edge is blank and every terminal node (declared
// or only referenced as a target) carries a score.
// All problems are reported at once, wrapped in domain.ErrMalformedGraph.
func Validate(nodes []domain.GraphNode) error {
	if len(nodes) == 0 {
		return fmt.Errorf("%w: graph has no nodes", domain.ErrMalformedGraph)
	}

	var problems []string
	for i, n := range nodes {
		if err := validate.Struct(n); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					problems = append(problems, fmt.Sprintf("node #%d (%q): field %s failed %q", i, n.ID, fe.Namespace(), fe.Tag()))
				}
				continue
			}
			problems = append(problems, fmt.Sprintf("node #%d: %v", i, err))
		}
	}

	declared := make(map[string]domain.GraphNode, len(nodes))
	for _, n := range nodes {
		declared[n.ID] = n
	}

	adj := BuildAdjacencyList(nodes)
	for _, id := range adj.Keys() {
		if len(adj.Successors(id)) > 0 {
			continue
		}
		n, ok := declared[id]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("node %q is referenced but never declared, so it has no score", id))
		case n.Score == nil:
			problems = append(problems, fmt.Sprintf("terminal node %q has no score", id))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: found %d errors:\n- %s", domain.ErrMalformedGraph, len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}
