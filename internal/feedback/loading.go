package feedback

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Gate is the busy/idle spinner. It is not reference counted: one Hide
// clears any number of Show calls.
type Gate struct {
	busy    bool
	spinner spinner.Model
}

// NewGate returns an idle gate.
func NewGate() *Gate {
	return &Gate{spinner: spinner.New(spinner.WithSpinner(spinner.Dot))}
}

// Show marks the gate busy. The returned command starts the spinner when
// the gate was idle and is nil otherwise.
func (g *Gate) Show() tea.Cmd {
	if g.busy {
		return nil
	}
	g.busy = true
	return g.spinner.Tick
}

// Hide marks the gate idle.
func (g *Gate) Hide() {
	g.busy = false
}

// Busy reports the current state.
func (g *Gate) Busy() bool {
	return g.busy
}

// Update advances the spinner while busy. Ticks arriving while idle are
// dropped, which stops the animation loop.
func (g *Gate) Update(msg tea.Msg) tea.Cmd {
	if !g.busy {
		return nil
	}
	var cmd tea.Cmd
	g.spinner, cmd = g.spinner.Update(msg)
	return cmd
}

// View renders the spinner frame, or nothing when idle.
func (g *Gate) View() string {
	if !g.busy {
		return ""
	}
	return g.spinner.View()
}
