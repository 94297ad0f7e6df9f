// Package library is the main screen: one floor of the course building at a
// time, with the elevator panel layered on top when it is called.
package library

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/stacks/internal/config"
	"github.com/abhisek/stacks/internal/floors"
	"github.com/abhisek/stacks/internal/keymap"
	lib "github.com/abhisek/stacks/internal/library"
	"github.com/abhisek/stacks/internal/screen"
	"github.com/abhisek/stacks/internal/source"
	"github.com/abhisek/stacks/internal/transition"
	"github.com/abhisek/stacks/internal/ui/components"
	"github.com/abhisek/stacks/internal/ui/layout"
	"github.com/abhisek/stacks/internal/ui/theme"
)

// Options configures a library screen.
type Options struct {
	Fetcher  source.Fetcher
	CourseID string
	Config   config.Config
	Logger   *zap.Logger
	Now      func() time.Time

	// Changes, when set, triggers a reload each time it delivers.
	Changes <-chan struct{}
}

const elevatorWidth = 32

// LibraryScreen shows the current floor and hosts the elevator.
type LibraryScreen struct {
	scene   *lib.Scene
	fader   *tickFader
	panel   *components.ElevatorPanel
	keys    keymap.Map
	edges   *keymap.Edges
	spinner spinner.Model
	log     *zap.Logger
	changes <-chan struct{}

	pending []tea.Cmd

	loaded    bool
	reloading bool
	stale     bool
	err       error
	closed    bool

	floor   floors.Floor
	arrival *transition.Point
	last    *transition.Result
}

var (
	_ screen.Screen          = (*LibraryScreen)(nil)
	_ screen.KeyHintProvider = (*LibraryScreen)(nil)
	_ screen.StatusProvider  = (*LibraryScreen)(nil)
	_ screen.Closer          = (*LibraryScreen)(nil)
	_ transition.Renderer    = (*LibraryScreen)(nil)
)

// New creates the library screen. Records are fetched when the screen is
// initialised.
func New(opts Options) *LibraryScreen {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &LibraryScreen{
		panel:   &components.ElevatorPanel{},
		keys:    keymap.Default(),
		log:     log,
		changes: opts.Changes,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
	s.edges = keymap.NewEdges(s.keys)
	s.fader = newTickFader(opts.Config.Fade.Frame, s.enqueue)
	s.scene = lib.New(lib.Deps{
		Fetcher:          opts.Fetcher,
		CourseID:         opts.CourseID,
		Fader:            s.fader,
		Renderer:         s,
		SelectorRenderer: s.panel,
		Transition:       lib.TransitionConfig(opts.Config),
		OnSettled:        s.settled,
		Logger:           log,
		Now:              opts.Now,
	})
	return s
}

func (s *LibraryScreen) Init() tea.Cmd {
	return tea.Batch(s.spinnerTick(), s.fetch(), s.watch())
}

func (s *LibraryScreen) Title() string {
	return "Library"
}

// Status labels the floor the learner is on.
func (s *LibraryScreen) Status() string {
	if !s.loaded {
		return ""
	}
	if s.floor.IsLobby() {
		return floors.LobbyName
	}
	return "Floor " + s.floor.Label()
}

func (s *LibraryScreen) KeyHints() []layout.KeyHint {
	if s.err != nil {
		return []layout.KeyHint{{Key: "q", Description: "Quit"}}
	}
	return s.keys.Hints(s.scene.SelectorView().Open)
}

func (s *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		s.reloading = false
		if err := s.scene.Loaded(lib.LoadResult(msg)); err != nil {
			s.err = err
			return s, nil
		}
		if s.scene.Ready() {
			s.loaded = true
		}
		return s, tea.Batch(s.drain(), s.catchUp())

	case sourceChangedMsg:
		if s.closed {
			return s, nil
		}
		s.log.Info("course source changed")
		s.stale = true
		return s, tea.Batch(s.catchUp(), s.watch())

	case spinner.TickMsg:
		if s.loaded && !s.reloading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case fadeFrameMsg:
		s.fader.advance(msg)
		return s, tea.Batch(s.drain(), s.catchUp())

	case tea.KeyReleaseMsg:
		s.edges.Release(msg)
		return s, nil

	case tea.FocusMsg, tea.BlurMsg:
		s.edges.Reset()
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	return s, nil
}

func (s *LibraryScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, s.keys.Quit) {
		return tea.Quit
	}
	if s.err != nil {
		return nil
	}
	if key.Matches(msg, s.keys.Refresh) && !msg.IsRepeat {
		return s.reload()
	}

	sig, ok := s.edges.Edge(msg)
	if !ok {
		return nil
	}
	s.scene.HandleSignal(sig)
	return s.drain()
}

func (s *LibraryScreen) reload() tea.Cmd {
	if !s.scene.Ready() || s.scene.Transition().InFlight {
		return nil
	}
	s.reloading = true
	return tea.Batch(s.spinnerTick(), s.fetch())
}

// catchUp reloads once the scene is idle if the source changed meanwhile.
func (s *LibraryScreen) catchUp() tea.Cmd {
	if !s.stale || s.err != nil {
		return nil
	}
	cmd := s.reload()
	if cmd != nil {
		s.stale = false
	}
	return cmd
}

func (s *LibraryScreen) watch() tea.Cmd {
	if s.changes == nil {
		return nil
	}
	ch := s.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return sourceChangedMsg{}
	}
}

func (s *LibraryScreen) fetch() tea.Cmd {
	fetch := s.scene.Activate()
	return func() tea.Msg {
		return recordsLoadedMsg(fetch())
	}
}

func (s *LibraryScreen) spinnerTick() tea.Cmd {
	sp := s.spinner
	return func() tea.Msg {
		return sp.Tick()
	}
}

func (s *LibraryScreen) enqueue(cmd tea.Cmd) {
	s.pending = append(s.pending, cmd)
}

func (s *LibraryScreen) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// RenderFloor shows f as the current floor.
func (s *LibraryScreen) RenderFloor(f floors.Floor) {
	if s.closed {
		return
	}
	s.floor = f
}

// Reposition records the learner's arrival point.
func (s *LibraryScreen) Reposition(x, y int) {
	if s.closed {
		return
	}
	s.arrival = &transition.Point{X: x, Y: y}
}

func (s *LibraryScreen) settled(r transition.Result) {
	s.last = &r
}

// Close tears the scene down.
func (s *LibraryScreen) Close() {
	if s.closed {
		return
	}
	s.scene.Close()
	s.closed = true
}

func (s *LibraryScreen) View(width, height int) string {
	if s.err != nil {
		return s.viewError(width, height)
	}
	if !s.loaded {
		msg := s.spinner.View() + " " + theme.Body.Render("Fetching course…")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	compact := layout.IsCompact(height)
	panel := s.panel.View(elevatorWidth)
	avail := width
	if panel != "" {
		avail -= lipgloss.Width(panel) + 2
	}

	cw := components.ContentWidth(avail)
	var content string
	if s.floor.IsLobby() {
		content = renderLobby(s.scene.Catalog().Floors(), cw, compact)
	} else {
		content = renderModule(s.floor, s.scene.Catalog().Records(), cw, compact)
	}
	content = s.applyFade(content, cw)
	content += "\n\n" + s.statusLine()

	if panel != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Center, content, "  ", panel)
	}

	return components.BuildingFrame(content, width, height)
}

func (s *LibraryScreen) applyFade(content string, cw int) string {
	o := s.fader.Opacity()
	switch {
	case o >= 1:
		return content
	case o <= 0:
		lines := lipgloss.Height(content)
		doors := theme.Disabled.Render(strings.Repeat("▒", cw))
		return strings.TrimSuffix(strings.Repeat(doors+"\n", lines), "\n")
	default:
		return theme.Disabled.Render(content)
	}
}

func (s *LibraryScreen) statusLine() string {
	var parts []string
	if s.reloading {
		parts = append(parts, s.spinner.View()+" reloading")
	}
	if st := s.scene.Transition(); st.InFlight {
		parts = append(parts, fmt.Sprintf("riding to floor %d", st.Target))
	} else if s.last != nil && s.last.Cancelled {
		parts = append(parts, "ride cancelled")
	}
	if s.arrival != nil {
		parts = append(parts, fmt.Sprintf("arrived at the elevator (%d, %d)", s.arrival.X, s.arrival.Y))
	}
	return theme.Hint.Render(strings.Join(parts, " · "))
}

func (s *LibraryScreen) viewError(width, height int) string {
	body := theme.Failure.Render("Could not open the library") + "\n\n" +
		theme.Body.Render(s.err.Error()) + "\n\n" +
		theme.Hint.Render("Press q to quit")
	card := components.Card(body, components.ContentWidth(width), theme.Error)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
