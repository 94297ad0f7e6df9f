package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stacks/internal/router"
	"github.com/abhisek/stacks/internal/screen"
	"github.com/abhisek/stacks/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const buildingArt = `    ┌───────────┐
    │ ▪ ▪ ▪ ▪ ▪ │
    │ ▪ ▪ ▪ ▪ ▪ │
    │ ▪ ▪ ▪ ▪ ▪ │
    │ ▪ ▪ ▪ ▪ ▪ │
    │   ┌───┐   │
  ──┴───┴───┴───┴──`

// lamp frames flicker beside the entrance
var lampFrames = []string{"✦", "✧"}

type tickMsg time.Time

// WelcomeScreen shows the building entrance before replacing itself with
// the library.
type WelcomeScreen struct {
	courseName   string
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen for courseName that will transition to the
// screen produced by next.
func New(courseName string, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		courseName: courseName,
		next:       next,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyPressMsg:
		// Any key walks in, even mid-animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(buildingArt)

	// Phase 2+: lamps beside the door
	if w.elapsed >= phase1End {
		lamp := lampFrames[w.tickCount%len(lampFrames)]
		lit := lipgloss.NewStyle().Foreground(theme.Accent).Render(lamp)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 5 {
			lines[5] = lit + " " + lines[5] + " " + lit
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	// Phase 3+: banner, course name and hint
	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")

		name := w.courseName
		if name == "" {
			name = "Welcome to the library"
		}
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(name))

		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to enter"))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
