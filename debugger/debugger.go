// Package debugger is the --debug terminal UI: a single-step inspector
// over a Grid, modeled on the teacher pack's only debugging surface. It
// never changes tick semantics; it only decides when Grid.Step runs.
package debugger

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/sarchlab/tis100/config"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	// currentStyle highlights a node with a live offer outstanding this tick.
	currentStyle = lipgloss.NewStyle().Reverse(true)
)

type model struct {
	grid *config.Grid
	err  error
	done bool
}

// Run opens the interactive debugger over grid. It blocks until the user
// quits (q or ctrl+c). Once the grid halts (a source node hits EOF), step
// keys are ignored and the halting error is shown; Run then returns it.
func Run(grid *config.Grid) error {
	m, err := tea.NewProgram(model{grid: grid}).Run()
	if err != nil {
		return err
	}
	if final, ok := m.(model); ok && final.err != nil {
		return final.err
	}
	return nil
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "j":
		if m.done {
			return m, nil
		}
		m.grid.Step()
		if err := m.grid.Halted(); err != nil {
			m.err = err
			m.done = true
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tick %d\n\n", m.grid.Ticks())
	b.WriteString(m.table())
	b.WriteString("\n\n[space/j] step  [q] quit\n")
	if m.err != nil {
		fmt.Fprintf(&b, "halted: %v\n", m.err)
	}
	return b.String()
}

func (m model) table() string {
	snap := m.grid.Snapshot()
	sort.Slice(snap, func(i, j int) bool {
		if snap[i].Position.Y != snap[j].Position.Y {
			return snap[i].Position.Y < snap[j].Position.Y
		}
		return snap[i].Position.X < snap[j].Position.X
	})

	header := headerStyle.Render(fmt.Sprintf("%-10s %-18s %-18s %-18s", "pos", "kind", "acc/bak", "give"))
	rows := []string{header}

	for _, s := range snap {
		regs := ""
		if s.Accumulator != nil {
			regs = fmt.Sprintf("%d/%d", *s.Accumulator, *s.Backup)
		}
		give := s.Give
		if s.GivingTo != nil {
			give += "->" + *s.GivingTo
		}
		row := fmt.Sprintf("%-10s %-18s %-18s %-18s", s.Position.String(), s.Kind, regs, give)
		if s.Give != "None" {
			row = currentStyle.Render(row)
		}
		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}

// Dump is a development helper for inspecting a raw NodeSnapshot slice
// outside the TUI (e.g. from a test or a future non-interactive flag).
func Dump(snap []config.NodeSnapshot) string {
	return spew.Sdump(snap)
}
