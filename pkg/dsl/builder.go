package dsl

import (
	"fmt"

	"github.com/aretw0/minimaxviz/pkg/adapters/memory"
	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/graph"
)

// Builder manages the graph construction.
type Builder struct {
	order []string
	nodes map[string]*NodeBuilder
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add declares a node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    domain.GraphNode{ID: id, Edges: []string{}},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Nodes returns the declared nodes in declaration order.
func (b *Builder) Nodes() []domain.GraphNode {
	nodes := make([]domain.GraphNode, 0, len(b.order))
	for _, id := range b.order {
		nodes = append(nodes, b.nodes[id].Build())
	}
	return nodes
}

// Build validates the graph and compiles it into a memory loader under name.
func (b *Builder) Build(name string) (*memory.Loader, error) {
	nodes := b.Nodes()
	if err := graph.Validate(nodes); err != nil {
		return nil, err
	}

	loader, err := memory.NewFromNodes(name, nodes...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
