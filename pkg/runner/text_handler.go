package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// TextHandler implements the line-mode interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Format   FrameFormatter
	Renderer ContentRenderer

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithFormatter replaces the one-line default frame format.
func WithFormatter(f FrameFormatter) TextHandlerOption {
	return func(h *TextHandler) {
		h.Format = f
	}
}

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		Format: FormatLine,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// FormatLine renders a frame as "[step N] description", plus the nodes
// that were resolved by this step.
func FormatLine(f Frame) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[step %d] %s", f.State.Steps, f.State.Description)
	if f.Diff != nil {
		for _, id := range f.State.Order {
			if st, ok := f.Diff.NodeStates[id]; ok && st == domain.Visited && f.State.Steps > 0 {
				score := f.State.NodeScores[id]
				fmt.Fprintf(&sb, "\n    %s = %s (%s)", id, domain.FormatScore(score), domain.Verdict(st, score))
			}
		}
	}
	return sb.String()
}

// Reads happen on a separate goroutine so Input can honour ctx.
func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			close(h.inputChan)
			return
		}
	}
}

func (h *TextHandler) Output(ctx context.Context, frame Frame) error {
	output := h.Format(frame)
	if h.Renderer != nil {
		if rendered, err := h.Renderer(output); err == nil {
			output = rendered
		}
	}
	_, err := fmt.Fprintln(h.Writer, strings.TrimRight(output, "\n"))
	return err
}

func (h *TextHandler) Input(ctx context.Context) (Command, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Writer, "> ")
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			cmd, err := ParseCommand(res.text)
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v\n", err)
				continue
			}
			return cmd, nil
		}
	}
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "--- %s ---\n", msg)
	return err
}
