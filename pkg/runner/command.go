package runner

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Command is what the user asks the runner to do next.
type Command string

const (
	CommandStep     Command = "step"
	CommandRestart  Command = "restart"
	CommandContinue Command = "continue"
	CommandQuit     Command = "quit"
)

// MaxCommandSize bounds a single line of input.
const MaxCommandSize = 256

var (
	ErrInputTooLarge  = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8    = errors.New("input contains invalid UTF-8 sequences")
	ErrUnknownCommand = errors.New("unknown command")
)

// ParseCommand maps a line of input to a command. An empty line steps.
// Control characters are stripped before matching.
func ParseCommand(input string) (Command, error) {
	if len(input) > MaxCommandSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), MaxCommandSize)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	clean := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)

	switch strings.ToLower(strings.TrimSpace(clean)) {
	case "", "s", "n", "step", "next":
		return CommandStep, nil
	case "r", "restart":
		return CommandRestart, nil
	case "c", "continue":
		return CommandContinue, nil
	case "q", "quit", "exit":
		return CommandQuit, nil
	}
	return "", fmt.Errorf("%w %q (Enter=step, r=restart, c=continue, q=quit)", ErrUnknownCommand, strings.TrimSpace(clean))
}
