package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// JSONFrame is the NDJSON line written per frame. Full is only set when
// the handler is configured to emit complete snapshots.
type JSONFrame struct {
	Type  string                 `json:"type"`
	Title string                 `json:"title,omitempty"`
	Diff  *domain.StateDiff      `json:"diff,omitempty"`
	Full  *domain.TraversalState `json:"state,omitempty"`
}

// JSONMessage is the NDJSON line written for system messages.
type JSONMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Reader    *bufio.Reader
	Writer    io.Writer
	Encoder   *json.Encoder
	Snapshots bool
}

// NewJSONHandler creates a handler for JSON IO. With snapshots set every
// line also carries the full state, not only the diff.
func NewJSONHandler(r io.Reader, w io.Writer, snapshots bool) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:    bufio.NewReader(r),
		Writer:    w,
		Encoder:   json.NewEncoder(w),
		Snapshots: snapshots,
	}
}

func (h *JSONHandler) Output(ctx context.Context, frame Frame) error {
	line := JSONFrame{Type: "frame", Title: frame.Title, Diff: frame.Diff}
	if h.Snapshots {
		line.Full = frame.State
	}
	return h.Encoder.Encode(line)
}

// Input accepts either a JSON string ("step") or raw text per line.
func (h *JSONHandler) Input(ctx context.Context) (Command, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := h.Reader.ReadString('\n')
		if err != nil && (err != io.EOF || text == "") {
			return "", err
		}
		text = strings.TrimSpace(text)

		var val string
		if jerr := json.Unmarshal([]byte(text), &val); jerr == nil {
			text = val
		}

		cmd, perr := ParseCommand(text)
		if perr != nil {
			if oerr := h.SystemOutput(ctx, perr.Error()); oerr != nil {
				return "", oerr
			}
			if err == io.EOF {
				return "", err
			}
			continue
		}
		return cmd, nil
	}
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(JSONMessage{Type: "system", Message: msg})
}
