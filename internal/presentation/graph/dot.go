package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// GenerateDOT produces a Graphviz digraph of nodes, with the same overlay
// rules as GenerateMermaid. Declared positions become pinned neato
// coordinates (y grows downwards, as in the graph documents).
func GenerateDOT(name string, nodes []domain.GraphNode, state *domain.TraversalState) string {
	var sb strings.Builder

	if name == "" {
		name = "minimax"
	}
	fmt.Fprintf(&sb, "digraph %s {\n", quote(name))
	sb.WriteString("  node [shape=circle, style=filled, penwidth=3, fontname=\"Helvetica\"];\n")
	sb.WriteString("  edge [arrowhead=normal];\n\n")

	vs := views(nodes, state)
	for _, v := range vs {
		c := palette[v.class()]
		attrs := []string{
			"label=" + quote(v.label()),
			"fillcolor=" + quote(c[0]),
			"color=" + quote(c[1]),
			"tooltip=" + quote(v.tooltip()),
		}
		if v.selected {
			attrs = append(attrs, "peripheries=2")
		}
		if p := v.node.Position; p != nil {
			attrs = append(attrs, "pos="+quote(fmt.Sprintf("%s,%s!", num(p.X/72), num(0-p.Y/72))))
		}
		fmt.Fprintf(&sb, "  %s [%s];\n", quote(v.node.ID), strings.Join(attrs, ", "))
	}
	sb.WriteString("\n")

	for _, v := range vs {
		for _, to := range v.node.Edges {
			attrs := []string{"color=" + quote(edgeColour(v.node))}
			if animated(state, v.node.ID, to) {
				attrs = append(attrs, "style=dashed", "penwidth=2")
			}
			fmt.Fprintf(&sb, "  %s -> %s [%s];\n", quote(v.node.ID), quote(to), strings.Join(attrs, ", "))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
