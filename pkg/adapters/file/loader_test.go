package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/minimaxviz/pkg/adapters/file"
	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/ports"
)

const documentYAML = `
name: ignored
description: two moves
nodes:
  - id: root
    edges: [a, b]
    position: {x: 1, y: 2}
  - id: a
    score: 1
  - id: b
    score: -1
`

const bareJSON = `[
  {"id": 1, "edges": [2]},
  {"id": 2, "edges": [], "score": 0.5}
]`

func writeGraphs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.yaml"), []byte(documentYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bare.json"), []byte(bareJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# not a graph"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))
	return dir
}

func TestLoader_Contract(t *testing.T) {
	ports.RunGraphLoaderContract(t, file.NewLoader(writeGraphs(t)))
}

func TestLoader_List(t *testing.T) {
	names, err := file.NewLoader(writeGraphs(t)).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bare", "doc"}, names)
}

func TestLoader_Document(t *testing.T) {
	doc, err := file.NewLoader(writeGraphs(t)).Load(context.Background(), "doc")
	require.NoError(t, err)

	assert.Equal(t, "doc", doc.Name, "name follows the file")
	assert.Equal(t, "two moves", doc.Description)
	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, []string{"a", "b"}, doc.Nodes[0].Edges)
	require.NotNil(t, doc.Nodes[0].Position)
	assert.Equal(t, domain.Position{X: 1, Y: 2}, *doc.Nodes[0].Position)
	assert.Equal(t, -1.0, *doc.Nodes[2].Score)
	assert.Equal(t, []string{}, doc.Nodes[1].Edges)
}

func TestLoader_BareList(t *testing.T) {
	doc, err := file.NewLoader(writeGraphs(t)).Load(context.Background(), "bare")
	require.NoError(t, err)

	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "1", doc.Nodes[0].ID)
	assert.Equal(t, []string{"2"}, doc.Nodes[0].Edges)
	assert.Equal(t, 0.5, *doc.Nodes[1].Score)
}

func TestLoader_NotFound(t *testing.T) {
	loader := file.NewLoader(writeGraphs(t))

	_, err := loader.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrGraphNotFound)
	assert.Contains(t, err.Error(), "bare, doc")

	_, err = loader.Load(context.Background(), "../doc")
	assert.ErrorIs(t, err, domain.ErrGraphNotFound)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"scalar", "42"},
		{"syntax", "nodes: [a"},
		{"unknown field", "nodes:\n  - id: a\n    colour: red\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := file.Decode([]byte(tt.raw))
			assert.ErrorIs(t, err, domain.ErrMalformedGraph)
		})
	}
}
