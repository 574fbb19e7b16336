package domain

import "strconv"

// Position is a layout hint carried through for renderers. The engines ignore it.
type Position struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
}

// GraphNode represents one board state of the game graph.
type GraphNode struct {
	ID string `json:"id" yaml:"id" mapstructure:"id" validate:"required"`

	// Edges lists the successor node IDs (outgoing moves) in declaration order.
	// Cycles are allowed.
	Edges []string `json:"edges" yaml:"edges" mapstructure:"edges" validate:"dive,required"`

	// IsMax marks a maximizing turn. It is normally assigned from BFS depth
	// parity (even depth = max) and not declared by hand.
	IsMax bool `json:"isMax" yaml:"isMax,omitempty" mapstructure:"isMax"`

	// Score is the fixed payoff of a terminal node (no outgoing edges).
	// It is required for terminal nodes and ignored for the others.
	Score *float64 `json:"score,omitempty" yaml:"score,omitempty" mapstructure:"score"`

	Position *Position `json:"position,omitempty" yaml:"position,omitempty" mapstructure:"position"`
}

// IsTerminal reports whether the node has no outgoing edges.
func (n GraphNode) IsTerminal() bool {
	return len(n.Edges) == 0
}

// Role returns "max" or "min" depending on whose turn the node represents.
func (n GraphNode) Role() string {
	if n.IsMax {
		return "max"
	}
	return "min"
}

// ScoreOf is a small helper to build terminal nodes in code.
func ScoreOf(v float64) *float64 {
	return &v
}

// FormatScore renders a score the way descriptions and renderers print it.
// A nil score is shown as "?".
func FormatScore(s *float64) string {
	if s == nil {
		return "?"
	}
	return strconv.FormatFloat(*s, 'g', -1, 64)
}

// GraphDocument is the on-disk form of a graph: a named node list.
type GraphDocument struct {
	Name        string      `json:"name" yaml:"name" mapstructure:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Nodes       []GraphNode `json:"nodes" yaml:"nodes" mapstructure:"nodes"`
}
