package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/samples"
)

// Loader implements ports.GraphLoader using an in-memory map.
type Loader struct {
	mu     sync.RWMutex
	graphs map[string]domain.GraphDocument
}

// NewLoader creates a loader holding the given documents.
func NewLoader(docs ...domain.GraphDocument) *Loader {
	l := &Loader{graphs: make(map[string]domain.GraphDocument)}
	for _, d := range docs {
		l.Add(d)
	}
	return l
}

// NewFromNodes creates a loader with a single graph.
// This improves DX for tests and DSL-built graphs.
func NewFromNodes(name string, nodes ...domain.GraphNode) (*Loader, error) {
	if name == "" {
		return nil, fmt.Errorf("graph missing name")
	}
	return NewLoader(domain.GraphDocument{Name: name, Nodes: nodes}), nil
}

// NewSamples creates a loader preloaded with the embedded sample graphs.
func NewSamples() (*Loader, error) {
	l := NewLoader()
	for _, name := range samples.Names() {
		doc, err := samples.Document(name)
		if err != nil {
			return nil, err
		}
		l.Add(doc)
	}
	return l, nil
}

// Add registers or replaces a graph.
func (l *Loader) Add(doc domain.GraphDocument) {
	doc.Nodes = slices.Clone(doc.Nodes)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.graphs[doc.Name] = doc
}

// Load returns a copy of the named graph.
func (l *Loader) Load(ctx context.Context, name string) (domain.GraphDocument, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	doc, ok := l.graphs[name]
	if !ok {
		return domain.GraphDocument{}, fmt.Errorf("%w: %q, expected any of %s", domain.ErrGraphNotFound, name, strings.Join(l.names(), ", "))
	}
	doc.Nodes = slices.Clone(doc.Nodes)
	return doc, nil
}

// List returns all graph names, sorted.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.names(), nil
}

func (l *Loader) names() []string {
	keys := make([]string, 0, len(l.graphs))
	for k := range l.graphs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys
}
