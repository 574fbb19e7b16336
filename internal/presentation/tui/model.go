package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/minimaxviz"
	"github.com/aretw0/minimaxviz/pkg/domain"
)

// tickMsg drives autoplay. gen ties it to the autoplay run that scheduled
// it; ticks of an earlier run are dropped.
type tickMsg struct {
	at  time.Time
	gen int
}

func tick(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg{at: t, gen: gen} })
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa"))
	descStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("252"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Model is the interactive stepper: one key press, one micro-step.
//
// Keys: space/enter/n step, r restart, a toggle autoplay, q quit.
type Model struct {
	engine   *minimaxviz.Engine
	state    *domain.TraversalState
	title    string
	interval time.Duration
	autoplay bool
	gen      int // autoplay run
	err      error
	quitting bool
}

// NewModel creates a model over a fresh traversal of eng.
func NewModel(eng *minimaxviz.Engine, title string, interval time.Duration) Model {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return Model{
		engine:   eng,
		state:    eng.Start(),
		title:    title,
		interval: interval,
	}
}

// State returns the traversal being shown.
func (m Model) State() *domain.TraversalState {
	return m.state
}

// Autoplay reports whether the model steps on its own.
func (m Model) Autoplay() bool {
	return m.autoplay
}

// Err returns the error of the last failed step.
func (m Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) step() {
	if m.state.Finished() || m.err != nil {
		m.autoplay = false
		return
	}
	if err := m.engine.Step(context.Background(), m.state); err != nil {
		m.err = err
		m.autoplay = false
		return
	}
	if m.state.Finished() {
		m.autoplay = false
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ", "enter", "n":
			m.step()
		case "r":
			m.state = m.engine.Start()
			m.err = nil
			m.autoplay = false
			m.gen++
		case "a":
			if m.state.Finished() || m.err != nil {
				return m, nil
			}
			m.autoplay = !m.autoplay
			m.gen++
			if m.autoplay {
				return m, tick(m.interval, m.gen)
			}
		}
	case tickMsg:
		if !m.autoplay || msg.gen != m.gen {
			return m, nil
		}
		m.step()
		if m.autoplay {
			return m, tick(m.interval, m.gen)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	header := fmt.Sprintf("%s · %s · step %d · %s", m.title, m.engine.Algorithm(), m.state.Steps, m.state.Status)
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(descStyle.Render(m.state.Description))
	b.WriteString("\n\n")

	var rows []string
	for _, id := range m.state.Order {
		st := m.state.NodeStates[id]
		score := m.state.NodeScores[id]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(Colour(st, score)))
		marker := "  "
		if id == m.state.SelectedNode {
			marker = "▶ "
			style = style.Bold(true)
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-6s %-3s %-4s %s",
			marker, id, m.state.Nodes[id].Role(), domain.FormatScore(score), domain.Verdict(st, score))))
	}
	b.WriteString(boxStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	if len(m.state.Stack) > 0 {
		b.WriteString(helpStyle.Render("stack: " + strings.Join(m.state.Stack, " ")))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	help := "space step · r restart · a autoplay · q quit"
	if m.autoplay {
		help = "autoplay on · " + help
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")
	return b.String()
}

// Run starts the interactive stepper and blocks until the user quits.
func Run(ctx context.Context, eng *minimaxviz.Engine, title string, interval time.Duration, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(NewModel(eng, title, interval), opts...).Run()
	return err
}
