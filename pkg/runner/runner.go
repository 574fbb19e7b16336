package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/minimaxviz"
	"github.com/aretw0/minimaxviz/pkg/domain"
)

// Runner handles the stepping loop using a pluggable IOHandler.
type Runner struct {
	Handler IOHandler
	Logger  *slog.Logger

	// Headless runs to the end without reading any input.
	Headless bool

	// Autoplay, when positive, steps on a timer instead of waiting for input.
	Autoplay time.Duration

	Title string
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithHeadless sets the runner to headless mode.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}

// WithAutoplay steps every interval until the traversal is finished.
func WithAutoplay(interval time.Duration) Option {
	return func(r *Runner) {
		r.Autoplay = interval
	}
}

// WithTitle labels frames.
func WithTitle(title string) Option {
	return func(r *Runner) {
		r.Title = title
	}
}

// NewRunner creates a Runner writing text to Stdout and reading Stdin.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

// Run drives state (a fresh traversal of engine when nil) and returns the
// last state shown. It stops when the traversal is finished in headless or
// autoplay mode, when the user quits, when input is exhausted, when ctx is
// cancelled or when a step fails.
func (r *Runner) Run(ctx context.Context, engine *minimaxviz.Engine, state *domain.TraversalState) (*domain.TraversalState, error) {
	if state == nil {
		state = engine.Start()
	}
	prev := (*domain.TraversalState)(nil)
	running := r.Headless

	for {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		if err := r.Handler.Output(ctx, Frame{Title: r.Title, State: state, Diff: domain.Diff(prev, state)}); err != nil {
			return state, fmt.Errorf("output error: %w", err)
		}
		prev = state.Snapshot()

		if state.Finished() && (r.Headless || r.Autoplay > 0) {
			return state, nil
		}

		cmd, err := r.next(ctx, running)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return state, nil
			}
			return state, err
		}

		switch cmd {
		case CommandQuit:
			r.Logger.Debug("runner quit", "step", state.Steps)
			return state, nil
		case CommandRestart:
			r.Logger.Debug("runner restart", "step", state.Steps)
			state = engine.Start()
			prev = nil
			running = r.Headless
			continue
		case CommandContinue:
			running = true
		}

		if state.Finished() {
			if err := r.Handler.SystemOutput(ctx, "Traversal finished (r=restart, q=quit)"); err != nil {
				return state, err
			}
			// Nothing changed, so the next frame would be a repeat.
			for {
				cmd, err := r.Handler.Input(ctx)
				if err != nil {
					if errors.Is(err, io.EOF) {
						return state, nil
					}
					return state, err
				}
				if cmd == CommandQuit {
					return state, nil
				}
				if cmd == CommandRestart {
					state = engine.Start()
					prev = nil
					running = r.Headless
					break
				}
			}
			continue
		}

		if err := engine.Step(ctx, state); err != nil {
			_ = r.Handler.SystemOutput(ctx, "Error: "+err.Error())
			return state, err
		}
	}
}

// next decides the following command without asking when running or
// autoplaying.
func (r *Runner) next(ctx context.Context, running bool) (Command, error) {
	if running {
		return CommandStep, nil
	}
	if r.Autoplay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.Autoplay):
			return CommandStep, nil
		}
	}
	return r.Handler.Input(ctx)
}
