package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of nodes. Every node is a
// circle labelled with its score ("?" while unknown); edges are green out of
// max nodes and red out of min nodes.
//
// If state is not nil it is used as an overlay: nodes get one class per
// lifecycle tag (or outcome once visited), the selected node is outlined and
// the edges being walked are dashed.
func GenerateMermaid(nodes []domain.GraphNode, state *domain.TraversalState) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	vs := views(nodes, state)
	for _, v := range vs {
		fmt.Fprintf(&sb, "    %s((\"%s\"))\n", sanitizeID(v.node.ID), v.label())
	}

	var links []string
	for _, v := range vs {
		for _, to := range v.node.Edges {
			fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeID(v.node.ID), sanitizeID(to))
			style := fmt.Sprintf("stroke:%s", edgeColour(v.node))
			if animated(state, v.node.ID, to) {
				style += ",stroke-width:3px,stroke-dasharray:5 5"
			}
			links = append(links, style)
		}
	}

	sb.WriteString("\n")
	for i, style := range links {
		fmt.Fprintf(&sb, "    linkStyle %d %s;\n", i, style)
	}

	if state == nil {
		return sb.String()
	}

	sb.WriteString("\n    %% Overlay Styles\n")
	for _, name := range classOrder {
		c := palette[name]
		fmt.Fprintf(&sb, "    classDef %s fill:%s,stroke:%s,stroke-width:3px,color:#000;\n", name, c[0], c[1])
	}
	sb.WriteString("    classDef selected stroke:#fbc02d,stroke-width:6px;\n")

	for _, v := range vs {
		fmt.Fprintf(&sb, "    class %s %s;\n", sanitizeID(v.node.ID), v.class())
	}
	for _, v := range vs {
		if v.selected {
			fmt.Fprintf(&sb, "    class %s selected;\n", sanitizeID(v.node.ID))
		}
	}
	return sb.String()
}
