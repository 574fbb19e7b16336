package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/minimaxviz/internal/config"
	"github.com/aretw0/minimaxviz/internal/logging"
	"github.com/aretw0/minimaxviz/pkg/adapters/file"
	"github.com/aretw0/minimaxviz/pkg/adapters/memory"
	"github.com/aretw0/minimaxviz/pkg/runner"
)

func newApp(t *testing.T, cfg config.Config, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	app, err := NewApp(cfg, strings.NewReader(input), &out)
	require.NoError(t, err)
	app.Logger = logging.NewNop()
	return app, &out
}

func TestNewApp_Sources(t *testing.T) {
	app, _ := newApp(t, config.Default(), "")
	assert.IsType(t, &memory.Loader{}, app.Loader)
	assert.IsType(t, &memory.Store{}, app.Store())

	cfg := config.Default()
	cfg.GraphsDir = t.TempDir()
	app, _ = newApp(t, cfg, "")
	assert.IsType(t, &file.Loader{}, app.Loader)

	cfg = config.Default()
	cfg.LogFormat = "xml"
	_, err := NewApp(cfg, nil, nil)
	assert.Error(t, err)
}

func TestApp_SolveJSON(t *testing.T) {
	app, out := newApp(t, config.Default(), "")
	require.NoError(t, app.Solve(context.Background(), true))

	var sol Solution
	require.NoError(t, json.Unmarshal(out.Bytes(), &sol))
	assert.Equal(t, "noCycles", sol.Graph)
	assert.Len(t, sol.Nodes, 11)
	assert.Equal(t, "Draw", sol.Verdicts["1"])
	assert.Equal(t, "Min wins", sol.Verdicts["2"])
	assert.Equal(t, "max", sol.Nodes[0].Role)
}

func TestApp_SolveTable(t *testing.T) {
	cfg := config.Default()
	cfg.Graph = "withCycle"
	cfg.Algorithm = "cycleDetection"
	app, out := newApp(t, cfg, "")
	require.NoError(t, app.Solve(context.Background(), false))

	text := out.String()
	assert.Contains(t, text, "withCycle solved with cycleDetection")
	assert.Contains(t, text, "VERDICT")
	assert.Contains(t, text, "Min wins")
}

func TestApp_Export(t *testing.T) {
	ctx := context.Background()

	app, out := newApp(t, config.Default(), "")
	require.NoError(t, app.Export(ctx, "mermaid", false))
	assert.True(t, strings.HasPrefix(out.String(), "graph TD"))
	assert.NotContains(t, out.String(), "classDef")

	app, out = newApp(t, config.Default(), "")
	require.NoError(t, app.Export(ctx, "dot", true))
	assert.True(t, strings.HasPrefix(out.String(), `digraph "noCycles"`))

	app, out = newApp(t, config.Default(), "")
	require.NoError(t, app.Export(ctx, "json", false))
	assert.Contains(t, out.String(), `"isMax": true`)

	app, _ = newApp(t, config.Default(), "")
	assert.Error(t, app.Export(ctx, "svg", false))
}

func TestApp_ValidateAndGraphs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.yaml"), []byte(`
nodes:
  - id: r
    edges: [t]
  - id: t
    score: 1
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(`
nodes:
  - id: r
    edges: [t]
  - id: t
`), 0o644))

	cfg := config.Default()
	cfg.GraphsDir = dir
	app, out := newApp(t, cfg, "")

	require.NoError(t, app.Graphs(context.Background()))
	assert.Equal(t, "bad\ngood\n", out.String())

	out.Reset()
	err := app.Validate(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.Contains(t, out.String(), "✓ good (2 nodes)")
	assert.Contains(t, out.String(), "✗ bad")

	out.Reset()
	assert.NoError(t, app.Validate(context.Background(), []string{"good"}))
}

func TestApp_RunHeadless(t *testing.T) {
	app, out := newApp(t, config.Default(), "")
	require.NoError(t, app.Run(context.Background(), RunOptions{Headless: true}))

	text := out.String()
	assert.Contains(t, text, "[step 0]")
	assert.Contains(t, text, "1 = 0 (Draw)")
	assert.Contains(t, text, ">>> Finished after")
}

func TestApp_RunJSONCommands(t *testing.T) {
	app, out := newApp(t, config.Default(), "step\nstep\nq\n")
	require.NoError(t, app.Run(context.Background(), RunOptions{JSON: true}))

	var frames []runner.JSONFrame
	dec := json.NewDecoder(out)
	for dec.More() {
		var f runner.JSONFrame
		require.NoError(t, dec.Decode(&f))
		frames = append(frames, f)
	}
	require.Len(t, frames, 3)
	assert.Equal(t, 2, frames[2].Diff.Step)
}
