package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aretw0/minimaxviz/pkg/domain"
)

// Solution is the machine-readable result of solve.
type Solution struct {
	Graph     string            `json:"graph"`
	Algorithm domain.Algorithm  `json:"algorithm"`
	Steps     int               `json:"steps"`
	Nodes     []SolvedNode      `json:"nodes"`
	Verdicts  map[string]string `json:"verdicts"`
}

// SolvedNode is one row of a Solution.
type SolvedNode struct {
	ID      string   `json:"id"`
	Role    string   `json:"role"`
	Score   *float64 `json:"score"`
	Verdict string   `json:"verdict"`
}

// Solve runs the configured graph to completion and prints every node's
// value, as a table or as JSON.
func (a *App) Solve(ctx context.Context, asJSON bool) error {
	eng, doc, err := a.Engine(ctx)
	if err != nil {
		return err
	}
	state, err := eng.Solve(ctx)
	if err != nil {
		return err
	}

	sol := Solution{
		Graph:     doc.Name,
		Algorithm: eng.Algorithm(),
		Steps:     state.Steps,
		Verdicts:  map[string]string{},
	}
	for _, n := range eng.Nodes() {
		score := state.NodeScores[n.ID]
		verdict := domain.Verdict(state.NodeStates[n.ID], score)
		sol.Nodes = append(sol.Nodes, SolvedNode{ID: n.ID, Role: n.Role(), Score: score, Verdict: verdict})
		sol.Verdicts[n.ID] = verdict
	}

	if asJSON {
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(sol)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NODE", "ROLE", "SCORE", "VERDICT")
	for _, n := range sol.Nodes {
		t.Row(n.ID, n.Role, domain.FormatScore(n.Score), n.Verdict)
	}
	fmt.Fprintf(a.Out, "%s solved with %s in %d steps\n", sol.Graph, sol.Algorithm, sol.Steps)
	fmt.Fprintln(a.Out, t.String())
	return nil
}
