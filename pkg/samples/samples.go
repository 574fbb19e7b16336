// Package samples embeds the demo graphs shipped with the visualiser.
package samples

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// Default is the graph used when none is configured.
const Default = "noCycles"

//go:embed data/*.yaml
var data embed.FS

// Names returns the names of the embedded graphs, sorted.
func Names() []string {
	entries, _ := fs.ReadDir(data, "data")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	slices.Sort(names)
	return names
}

// Document returns the embedded graph document called name.
func Document(name string) (domain.GraphDocument, error) {
	var doc domain.GraphDocument
	raw, err := data.ReadFile(path.Join("data", name+".yaml"))
	if err != nil {
		return doc, fmt.Errorf("%w: %q, expected any of %s", domain.ErrGraphNotFound, name, strings.Join(Names(), ", "))
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse sample %s: %w", name, err)
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return doc, nil
}

// Load returns the node list of the embedded graph called name.
func Load(name string) ([]domain.GraphNode, error) {
	doc, err := Document(name)
	if err != nil {
		return nil, err
	}
	return doc.Nodes, nil
}
