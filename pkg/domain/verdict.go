package domain

// Verdict returns the short human label of a node for tooltips and legends:
// its lifecycle stage while in progress, or who wins once it is visited.
func Verdict(state NodeState, score *float64) string {
	switch state {
	case Unvisited:
		return "Unvisited"
	case Queued:
		return "Queued"
	case StartProcessing:
		return "Start processing"
	case ProcessChildren:
		return "Processing children"
	case CalculateScore, EndProcessing:
		return "Waiting for children results"
	case Visited:
		switch {
		case score == nil:
			return "Visited"
		case *score > 0:
			return "Max wins"
		case *score < 0:
			return "Min wins"
		default:
			return "Draw"
		}
	default:
		return state.String()
	}
}
