package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/minimaxviz"
	"github.com/aretw0/minimaxviz/internal/config"
	"github.com/aretw0/minimaxviz/pkg/adapters/file"
	"github.com/aretw0/minimaxviz/pkg/adapters/memory"
	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/observability"
	"github.com/aretw0/minimaxviz/pkg/ports"
)

// App bundles what every command needs: settings, logger, graph source and
// the standard streams.
type App struct {
	Config config.Config
	Logger *slog.Logger
	Loader ports.GraphLoader
	In     io.Reader
	Out    io.Writer
}

// NewApp wires the graph loader and logger described by cfg. Graphs come
// from cfg.GraphsDir when set, otherwise from the embedded samples.
func NewApp(cfg config.Config, in io.Reader, out io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app := &App{
		Config: cfg,
		Logger: cfg.Logger(),
		In:     in,
		Out:    out,
	}
	if cfg.GraphsDir != "" {
		app.Loader = file.NewLoader(cfg.GraphsDir)
	} else {
		loader, err := memory.NewSamples()
		if err != nil {
			return nil, fmt.Errorf("failed to load samples: %w", err)
		}
		app.Loader = loader
	}
	return app, nil
}

// Store returns the session store. Sessions live as long as the process.
func (a *App) Store() ports.SessionStore {
	return memory.NewStore()
}

// Graph loads the configured graph.
func (a *App) Graph(ctx context.Context) (domain.GraphDocument, error) {
	return a.Loader.Load(ctx, a.Config.Graph)
}

// Engine builds an engine for the configured graph and algorithm. Lifecycle
// events are logged; extra hooks run after the logging ones.
func (a *App) Engine(ctx context.Context, hooks ...domain.LifecycleHooks) (*minimaxviz.Engine, domain.GraphDocument, error) {
	doc, err := a.Graph(ctx)
	if err != nil {
		return nil, doc, err
	}
	alg, err := domain.ParseAlgorithm(a.Config.Algorithm)
	if err != nil {
		return nil, doc, err
	}

	all := observability.LogHooks(a.Logger)
	for _, h := range hooks {
		all = all.Merge(h)
	}
	eng, err := minimaxviz.New(doc.Nodes,
		minimaxviz.WithAlgorithm(alg),
		minimaxviz.WithName(doc.Name),
		minimaxviz.WithLogger(a.Logger),
		minimaxviz.WithLifecycleHooks(all),
	)
	if err != nil {
		return nil, doc, fmt.Errorf("error initializing engine: %w", err)
	}
	return eng, doc, nil
}

// printSystemMessage prints a standardized system message.
func (a *App) printSystemMessage(format string, args ...any) {
	fmt.Fprintf(a.Out, ">>> %s\n", fmt.Sprintf(format, args...))
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, tea.ErrProgramKilled) ||
		errors.Is(err, tea.ErrInterrupted)
}

// handleExecutionError maps interruptions to a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
