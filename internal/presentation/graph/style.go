package graph

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// view is what a renderer needs to know about one node at one step.
type view struct {
	node     domain.GraphNode
	state    domain.NodeState
	score    *float64
	selected bool
}

func (v view) label() string {
	return domain.FormatScore(v.score)
}

func (v view) tooltip() string {
	return fmt.Sprintf("[%s] Node %s: %s", v.node.Role(), v.node.ID, domain.Verdict(v.state, v.score))
}

// class names a node style: the lifecycle tag, or the outcome once visited.
func (v view) class() string {
	if v.state != domain.Visited || v.score == nil {
		return v.state.String()
	}
	switch {
	case *v.score > 0:
		return "max_wins"
	case *v.score < 0:
		return "min_wins"
	}
	return "draw"
}

// palette maps classes to fill and border colours.
var palette = map[string][2]string{
	"unvisited":        {"white", "gray"},
	"queued":           {"gainsboro", "gray"},
	"start_processing": {"gainsboro", "cornflowerblue"},
	"process_children": {"white", "cornflowerblue"},
	"calculate_score":  {"cornflowerblue", "cornflowerblue"},
	"end_processing":   {"cornflowerblue", "cornflowerblue"},
	"visited":          {"white", "black"},
	"max_wins":         {"green", "green"},
	"min_wins":         {"red", "red"},
	"draw":             {"sandybrown", "sienna"},
}

// classOrder fixes the order classDefs are written in.
var classOrder = []string{
	"unvisited", "queued", "start_processing", "process_children",
	"calculate_score", "end_processing", "visited", "max_wins", "min_wins", "draw",
}

func views(nodes []domain.GraphNode, state *domain.TraversalState) []view {
	out := make([]view, 0, len(nodes))
	for _, n := range nodes {
		v := view{node: n, score: n.Score}
		if state != nil {
			v.state = state.NodeStates[n.ID]
			if v.score == nil {
				v.score = state.NodeScores[n.ID]
			}
			v.selected = state.SelectedNode == n.ID
		}
		out = append(out, v)
	}
	return out
}

// edgeColour follows the player moving out of from.
func edgeColour(from domain.GraphNode) string {
	if from.IsMax {
		return "green"
	}
	return "red"
}

// animated reports whether the edge from -> to is being walked right now.
func animated(state *domain.TraversalState, from, to string) bool {
	if state == nil {
		return false
	}
	return (state.ShowNodeChildren != "" && state.ShowNodeChildren == from) ||
		(state.ShowNodeParent != "" && state.ShowNodeParent == to)
}

func sanitizeID(id string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, id)
	if s == "" || unicode.IsDigit(rune(s[0])) {
		s = "n" + s
	}
	return s
}
