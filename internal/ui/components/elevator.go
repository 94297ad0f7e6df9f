package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stacks/internal/floors"
	"github.com/abhisek/stacks/internal/selector"
	"github.com/abhisek/stacks/internal/ui/theme"
)

// ElevatorPanel draws the floor picker. It implements selector.Renderer and
// only keeps the latest View, so redrawing never rebuilds panel state.
type ElevatorPanel struct {
	view    selector.View
	updates int
}

var _ selector.Renderer = (*ElevatorPanel)(nil)

// Update stores the selector state for the next render.
func (p *ElevatorPanel) Update(v selector.View) {
	p.view = v
	p.updates++
}

// State returns the last state received.
func (p *ElevatorPanel) State() selector.View {
	return p.view
}

// Updates returns how many states the panel has received.
func (p *ElevatorPanel) Updates() int {
	return p.updates
}

// View renders the panel, or "" while the selector is closed.
func (p *ElevatorPanel) View(width int) string {
	if !p.view.Open {
		return ""
	}

	rows := make([]string, 0, len(p.view.Floors)+2)
	rows = append(rows, theme.Title.Width(width-4).Render("ELEVATOR"), "")
	for i, f := range p.view.Floors {
		rows = append(rows, p.row(f, i == p.view.SelectedIndex, width-4))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1).
		Width(width).
		Render(strings.Join(rows, "\n"))
}

func (p *ElevatorPanel) row(f floors.Floor, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	var badge string
	switch {
	case f.Number == p.view.CurrentFloorNumber:
		badge = " ◆"
	case !f.Accessible:
		badge = " ✕"
	}

	label := lipgloss.NewStyle().Width(3).Render(f.Label())
	name := Truncate(f.Name, width-lipgloss.Width(cursor)-3-lipgloss.Width(badge)-1)
	line := cursor + label + name + badge

	palette := theme.Status(f.Progress.Category)
	style := lipgloss.NewStyle().Foreground(palette.Secondary)
	switch {
	case !f.Accessible:
		style = theme.Disabled
	case selected:
		style = theme.Selected
	case f.IsLobby():
		style = theme.Unselected
	}
	return style.Render(line)
}

// Truncate shortens s to at most n display columns, ending in an ellipsis
// when it had to cut. Runes are never split.
func Truncate(s string, n int) string {
	if n <= 1 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
