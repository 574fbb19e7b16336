package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// StepMarkdown describes state as a markdown document: the step header, the
// narration and one table row per node in key order.
func StepMarkdown(title string, state *domain.TraversalState) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "## %s\n\n", title)
	}
	fmt.Fprintf(&sb, "**Step %d** · `%s`\n\n", state.Steps, state.Status)
	if state.Description != "" {
		fmt.Fprintf(&sb, "> %s\n\n", state.Description)
	}
	if len(state.Stack) > 0 {
		fmt.Fprintf(&sb, "Stack: `%s`\n\n", strings.Join(state.Stack, " "))
	}

	sb.WriteString("| Node | Role | State | Score | |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, id := range state.Order {
		st := state.NodeStates[id]
		score := state.NodeScores[id]
		marker := ""
		if state.SelectedNode == id {
			marker = "◀"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			id, state.Nodes[id].Role(), domain.Verdict(st, score), domain.FormatScore(score), marker)
	}
	return sb.String()
}
