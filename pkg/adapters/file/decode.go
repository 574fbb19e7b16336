package file

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// Decode parses a graph document. raw may be YAML or JSON and may hold
// either a full document (name, description, nodes) or a bare list of nodes.
// Numeric IDs and edges are accepted and read as strings.
func Decode(raw []byte) (domain.GraphDocument, error) {
	var doc domain.GraphDocument

	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return doc, fmt.Errorf("%w: %v", domain.ErrMalformedGraph, err)
	}

	switch v := generic.(type) {
	case []any:
		generic = map[string]any{"nodes": v}
	case map[string]any:
	case nil:
		return doc, fmt.Errorf("%w: empty document", domain.ErrMalformedGraph)
	default:
		return doc, fmt.Errorf("%w: expected a node list or a document, got %T", domain.ErrMalformedGraph, v)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return doc, err
	}
	if err := decoder.Decode(generic); err != nil {
		return doc, fmt.Errorf("%w: %v", domain.ErrMalformedGraph, err)
	}
	for i := range doc.Nodes {
		if doc.Nodes[i].Edges == nil {
			doc.Nodes[i].Edges = []string{}
		}
	}
	return doc, nil
}
