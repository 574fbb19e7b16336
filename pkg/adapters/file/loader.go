package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

var extensions = []string{".yaml", ".yml", ".json"}

// Loader implements ports.GraphLoader over a directory of graph documents.
// A graph is named after its file, without the extension.
type Loader struct {
	Dir string
}

// NewLoader creates a loader reading graphs from dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load reads and decodes the named graph. The document name always matches
// the file name.
func (l *Loader) Load(ctx context.Context, name string) (domain.GraphDocument, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return domain.GraphDocument{}, fmt.Errorf("%w: invalid name %q", domain.ErrGraphNotFound, name)
	}

	for _, ext := range extensions {
		raw, err := os.ReadFile(filepath.Join(l.Dir, name+ext))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return domain.GraphDocument{}, fmt.Errorf("failed to read graph %s: %w", name, err)
		}
		doc, err := Decode(raw)
		if err != nil {
			return doc, fmt.Errorf("graph %s: %w", name, err)
		}
		doc.Name = name
		return doc, nil
	}

	names, _ := l.List(ctx)
	return domain.GraphDocument{}, fmt.Errorf("%w: %q, expected any of %s", domain.ErrGraphNotFound, name, strings.Join(names, ", "))
}

// List returns the graph names found in the directory, sorted.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list graphs: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || !slices.Contains(extensions, ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}
