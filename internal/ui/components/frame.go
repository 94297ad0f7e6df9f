package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stacks/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for floor sections.
// All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for building border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// BuildingFrame draws the building walls around a floor, filling width x
// height and centring content inside. Content taller than the walls is
// clipped.
func BuildingFrame(content string, width, height int) string {
	if width < 4 || height < 3 {
		return content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width).
		Height(height).
		MaxHeight(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int, accent color.Color) string {
	if accent == nil {
		accent = theme.Border
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(cw-2).
		Padding(0, 1).
		Render(content)
}

// Plaque renders a centered floor sign.
func Plaque(label string, accent color.Color, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(accent).
		Padding(0, 1).
		Render(label)
}
