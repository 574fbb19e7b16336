package runner

import (
	"context"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// Frame is what a handler shows after each step.
type Frame struct {
	Title string
	State *domain.TraversalState
	// Diff against the previous frame; the full state for the first frame
	// and after a restart.
	Diff *domain.StateDiff
}

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (line mode) and JSON (NDJSON) modes.
type IOHandler interface {
	// Output presents a frame.
	Output(ctx context.Context, frame Frame) error

	// Input reads the next command. It returns io.EOF once the input is
	// exhausted.
	Input(ctx context.Context) (Command, error)

	// SystemOutput presents a meta-message (errors, hints), distinct from
	// frames.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms rendered text before it is written, e.g. to
// turn markdown into ANSI.
type ContentRenderer func(string) (string, error)

// FrameFormatter turns a frame into text for the TextHandler.
type FrameFormatter func(Frame) string
