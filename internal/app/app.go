package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/stacks/internal/config"
	"github.com/abhisek/stacks/internal/router"
	"github.com/abhisek/stacks/internal/screen"
	libraryscreen "github.com/abhisek/stacks/internal/screens/library"
	"github.com/abhisek/stacks/internal/screens/welcome"
	"github.com/abhisek/stacks/internal/source"
	"github.com/abhisek/stacks/internal/ui/layout"
)

// Options holds dependencies injected into the app.
type Options struct {
	Fetcher    source.Fetcher
	CourseID   string
	CourseName string
	Config     config.Config
	Logger     *zap.Logger

	// Now overrides the clock used to derive floor status. Nil means time.Now.
	Now func() time.Time

	// SkipWelcome starts directly in the library.
	SkipWelcome bool

	// Changes, when set, reloads the library whenever it delivers.
	Changes <-chan struct{}
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the building entrance.
func newAppModel(opts Options) AppModel {
	library := func() screen.Screen {
		return libraryscreen.New(libraryscreen.Options{
			Fetcher:  opts.Fetcher,
			CourseID: opts.CourseID,
			Config:   opts.Config,
			Logger:   opts.Logger,
			Now:      opts.Now,
			Changes:  opts.Changes,
		})
	}

	var initial screen.Screen
	if opts.SkipWelcome {
		initial = library()
	} else {
		initial = welcome.New(opts.CourseName, library)
	}
	return AppModel{
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.KeyboardEnhancements.ReportEventTypes = true
	v.ReportFocus = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders header, active screen and footer at the current size.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and tears every screen down on exit.
func Run(opts Options) error {
	m := newAppModel(opts)
	defer m.router.CloseAll()

	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
