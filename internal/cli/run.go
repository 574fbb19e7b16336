package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/minimaxviz/internal/logging"
	"github.com/aretw0/minimaxviz/internal/presentation/tui"
	"github.com/aretw0/minimaxviz/pkg/runner"
)

// RunOptions selects how the run command drives a traversal.
type RunOptions struct {
	// Interactive uses the full-screen stepper. Callers set it when stdin
	// and stdout are terminals.
	Interactive bool
	Headless    bool
	JSON        bool
	// Snapshots adds the full state to every JSON frame.
	Snapshots bool
	Autoplay  bool
}

// Run steps the configured graph until it is finished or the user quits.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	interactive := opts.Interactive && !opts.JSON && !opts.Headless
	if interactive {
		// Log lines would tear the full-screen view.
		a.Logger = logging.NewNop()
	}
	eng, doc, err := a.Engine(ctx)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s (%s)", doc.Name, eng.Algorithm())
	a.Logger.Info("run started", "graph", doc.Name, "algorithm", string(eng.Algorithm()))

	if interactive {
		return handleExecutionError(tui.Run(ctx, eng, title, a.Config.AutoplayInterval))
	}

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(a.In, a.Out, opts.Snapshots)
	} else {
		handler = runner.NewTextHandler(a.In, a.Out)
	}
	runOpts := []runner.Option{
		runner.WithLogger(a.Logger),
		runner.WithInputHandler(handler),
		runner.WithHeadless(opts.Headless),
		runner.WithTitle(title),
	}
	if opts.Autoplay {
		runOpts = append(runOpts, runner.WithAutoplay(a.Config.AutoplayInterval))
	}
	if !opts.JSON && !opts.Headless {
		tui.PrintBanner(a.Out)
	}

	state, err := runner.NewRunner(runOpts...).Run(ctx, eng, eng.Start())
	if err = handleExecutionError(err); err != nil {
		return err
	}
	if state != nil && !opts.JSON && state.Finished() {
		a.printSystemMessage("Finished after %d steps.", state.Steps)
	}
	return nil
}
