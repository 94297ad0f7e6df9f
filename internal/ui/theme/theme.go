package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stacks/internal/progress"
)

// Color palette: warm library wood and brass on a dark stairwell.
var (
	Primary   = lipgloss.Color("#D4A373") // Brass
	Secondary = lipgloss.Color("#2A9D8F") // Teal
	Accent    = lipgloss.Color("#E9C46A") // Lamp yellow
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#14110F") // Ink
	BgCard    = lipgloss.Color("#231E1A") // Walnut
	Border    = lipgloss.Color("#4A3F35") // Oak
)

// StatusPalette is the primary/secondary colour pair of a module status.
type StatusPalette struct {
	Primary   color.Color
	Secondary color.Color
}

var statusPalettes = map[progress.Category]StatusPalette{
	progress.CategoryCompleted:  {Primary: lipgloss.Color("#4CAF50"), Secondary: lipgloss.Color("#81C784")},
	progress.CategoryInProgress: {Primary: lipgloss.Color("#FFC107"), Secondary: lipgloss.Color("#FFD54F")},
	progress.CategoryLocked:     {Primary: lipgloss.Color("#9E9E9E"), Secondary: lipgloss.Color("#BDBDBD")},
	progress.CategoryNotStarted: {Primary: lipgloss.Color("#2196F3"), Secondary: lipgloss.Color("#64B5F6")},
}

// Status returns the palette for a module status category.
func Status(c progress.Category) StatusPalette {
	if p, ok := statusPalettes[c]; ok {
		return p
	}
	return statusPalettes[progress.CategoryNotStarted]
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Bars
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Foreground(TextDim).
		Padding(0, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim).
			Faint(true)

	Done = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)
)
