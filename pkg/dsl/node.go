package dsl

import (
	"slices"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.GraphNode
	builder *Builder
}

// To adds outgoing edges. Targets do not need to be declared yet.
func (n *NodeBuilder) To(targets ...string) *NodeBuilder {
	n.node.Edges = append(n.node.Edges, targets...)
	return n
}

// Score sets the payoff of a terminal node.
func (n *NodeBuilder) Score(v float64) *NodeBuilder {
	n.node.Score = domain.ScoreOf(v)
	return n
}

// Max marks the node as a maximizing turn. Levels assigned by the engine
// take precedence unless it is built WithoutLevels.
func (n *NodeBuilder) Max() *NodeBuilder {
	n.node.IsMax = true
	return n
}

// Min marks the node as a minimizing turn.
func (n *NodeBuilder) Min() *NodeBuilder {
	n.node.IsMax = false
	return n
}

// At sets the layout hint used by renderers.
func (n *NodeBuilder) At(x, y float64) *NodeBuilder {
	n.node.Position = &domain.Position{X: x, Y: y}
	return n
}

// Terminal drops every edge of the node.
func (n *NodeBuilder) Terminal() *NodeBuilder {
	n.node.Edges = []string{}
	return n
}

// Build returns a copy of the underlying domain.GraphNode.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.GraphNode {
	node := n.node
	node.Edges = slices.Clone(n.node.Edges)
	if n.node.Score != nil {
		node.Score = domain.ScoreOf(*n.node.Score)
	}
	if n.node.Position != nil {
		p := *n.node.Position
		node.Position = &p
	}
	return node
}
