// Package layout draws the chrome around every screen: a one-line header
// bar, the footer of key hints, and the fallback for tiny terminals.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stacks/internal/ui/theme"
)

// Smallest terminal the building is drawn in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// CompactHeight is the content height below which floors drop their detail
// sections.
const CompactHeight = 22

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// IsCompact reports whether a content area of the given height should use
// the condensed floor view.
func IsCompact(contentHeight int) bool {
	return contentHeight < CompactHeight
}

// RenderMinSizeMessage asks the learner to enlarge the window.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("The building does not fit.\n\nNeed %d×%d, have %d×%d.",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Body.Align(lipgloss.Center).Render(body))
}

// RenderHeader draws the header bar: brand on the left, the screen title in
// the middle and status (usually the floor) on the right.
func RenderHeader(title, status string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▤ Stacks")
	name := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	where := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := width - theme.Header.GetHorizontalFrameSize()
	return theme.Header.Width(width).Render(spread(inner, brand, name, where))
}

// RenderFooter draws the key hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	sep := lipgloss.NewStyle().Foreground(theme.Border).Render(" · ")
	return theme.Footer.Width(width).Render(strings.Join(parts, sep))
}

// RenderFrame stacks header, content and footer, sizing the content to fill
// whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if rest < 0 {
		rest = 0
	}
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// spread lays out left, centre and right within width, keeping the centre
// text centred when there is room.
func spread(width int, left, centre, right string) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(centre), lipgloss.Width(right)

	gapL := (width-cw)/2 - lw
	if gapL < 1 {
		gapL = 1
	}
	gapR := width - lw - gapL - cw - rw
	if gapR < 1 {
		gapR = 1
	}
	return left + strings.Repeat(" ", gapL) + centre + strings.Repeat(" ", gapR) + right
}
