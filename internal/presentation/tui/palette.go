package tui

import "github.com/aretw0/minimaxviz/pkg/domain"

// Colour returns the terminal colour of a node, by lifecycle tag or outcome.
func Colour(state domain.NodeState, score *float64) string {
	switch state {
	case domain.Unvisited:
		return "#9ca3af"
	case domain.Queued:
		return "#d1d5db"
	case domain.StartProcessing, domain.ProcessChildren:
		return "#6495ed"
	case domain.CalculateScore, domain.EndProcessing:
		return "#3b82f6"
	case domain.Visited:
		switch {
		case score == nil:
			return "#ffffff"
		case *score > 0:
			return "#22c55e"
		case *score < 0:
			return "#ef4444"
		}
		return "#f4a460"
	}
	return "#ffffff"
}
