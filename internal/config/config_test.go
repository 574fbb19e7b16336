package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "minimaxviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWithEnv("", env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, string(domain.AlgorithmRegular), cfg.Algorithm)
	assert.Equal(t, "noCycles", cfg.Graph)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
algorithm: cycleDetection
graph: withCycle
graphs_dir: ./graphs
autoplay_interval: 2s
addr: ":9000"
`)
	cfg, err := LoadWithEnv(path, env(map[string]string{
		"MINIMAX_ADDR":      ":7000",
		"MINIMAX_LOG_LEVEL": "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "cycleDetection", cfg.Algorithm)
	assert.Equal(t, "withCycle", cfg.Graph)
	assert.Equal(t, "./graphs", cfg.GraphsDir)
	assert.Equal(t, 2*time.Second, cfg.AutoplayInterval)
	assert.Equal(t, ":7000", cfg.Addr, "env wins over the file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "untouched keys keep their default")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "unknown key", file: "colour: red\n"},
		{name: "bad algorithm", env: map[string]string{"MINIMAX_ALGORITHM": "alphaBeta"}},
		{name: "bad level", env: map[string]string{"MINIMAX_LOG_LEVEL": "loud"}},
		{name: "bad format", file: "log_format: xml\n"},
		{name: "bad interval", env: map[string]string{"MINIMAX_AUTOPLAY_INTERVAL": "soon"}},
		{name: "zero interval", file: "autoplay_interval: 0s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}
			_, err := LoadWithEnv(path, env(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"), env(nil))
	assert.Error(t, err)
}

func TestConfig_Logger(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "json"
	assert.NotNil(t, cfg.Logger())
}
