// Package selector implements the elevator floor picker as an input-driven
// state machine. It never touches the catalog it reads from; rendering is
// delegated to a Renderer that receives a pure View on every change.
package selector

import (
	"go.uber.org/zap"

	"github.com/abhisek/stacks/internal/floors"
)

// FloorSource supplies the floor list snapshotted when the selector opens.
// *floors.Catalog satisfies it.
type FloorSource interface {
	Floors() []floors.Floor
	CurrentNumber() int
}

// View is the render state of the selector.
type View struct {
	Open               bool
	Floors             []floors.Floor
	SelectedIndex      int
	CurrentFloorNumber int
}

// Selected returns the highlighted floor. ok is false when the selector is
// closed.
func (v View) Selected() (floors.Floor, bool) {
	if !v.Open || v.SelectedIndex < 0 || v.SelectedIndex >= len(v.Floors) {
		return floors.Floor{}, false
	}
	return v.Floors[v.SelectedIndex], true
}

// Renderer redraws the selector from its state.
type Renderer interface {
	Update(v View)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(View)

func (f RendererFunc) Update(v View) { f(v) }

// Option configures a Selector.
type Option func(*Selector)

// WithRenderer sets the collaborator notified on every state change.
func WithRenderer(r Renderer) Option {
	return func(s *Selector) { s.renderer = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Selector) { s.log = l }
}

// Selector is the Closed/Open floor picker.
//
// While open, 0 <= selected < len(snapshot) always holds.
type Selector struct {
	source   FloorSource
	onSelect func(floor int)
	renderer Renderer
	log      *zap.Logger

	open     bool
	snapshot []floors.Floor
	selected int
	current  int
}

// New creates a closed selector reading floors from source. onSelect is
// invoked with the chosen floor number when a CONFIRM leads to a different,
// accessible floor.
func New(source FloorSource, onSelect func(floor int), opts ...Option) *Selector {
	s := &Selector{
		source:   source,
		onSelect: onSelect,
		current:  source.CurrentNumber(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// IsOpen reports whether the picker is showing.
func (s *Selector) IsOpen() bool {
	return s.open
}

// CurrentFloor returns the floor number the selector believes is current.
func (s *Selector) CurrentFloor() int {
	return s.current
}

// View returns the current render state. The floor slice is shared with the
// selector and must not be modified.
func (s *Selector) View() View {
	if !s.open {
		return View{CurrentFloorNumber: s.current}
	}
	return View{
		Open:               true,
		Floors:             s.snapshot,
		SelectedIndex:      s.selected,
		CurrentFloorNumber: s.current,
	}
}

// Handle dispatches a signal to the matching event.
func (s *Selector) Handle(sig Signal) {
	switch sig {
	case SignalOpen:
		s.Open()
	case SignalNavigateUp:
		s.Navigate(-1)
	case SignalNavigateDown:
		s.Navigate(1)
	case SignalConfirm:
		s.Confirm()
	case SignalCancel:
		s.Cancel()
	}
}

// Open snapshots the source's floors and highlights the current floor.
// Opening an already-open selector does nothing. It returns whether the
// selector transitioned to open.
func (s *Selector) Open() bool {
	if s.open {
		return false
	}
	snap := s.source.Floors()
	if len(snap) == 0 {
		s.log.Warn("selector not opened: empty floor list")
		return false
	}

	s.open = true
	s.snapshot = snap
	s.selected = clampIndex(s.current, len(snap))
	s.render()
	return true
}

// Navigate moves the highlight by delta with cyclic wraparound. It does
// nothing while closed.
func (s *Selector) Navigate(delta int) {
	if !s.open {
		return
	}
	n := len(s.snapshot)
	s.selected = ((s.selected+delta)%n + n) % n
	s.render()
}

// Confirm acts on the highlighted floor. Inaccessible floors are rejected
// and leave the selector open; the current floor closes it without a
// transition; any other floor closes it and invokes the select callback.
func (s *Selector) Confirm() ConfirmResult {
	if !s.open {
		return ConfirmIgnored
	}

	f := s.snapshot[s.selected]
	if !f.Accessible {
		s.log.Debug("confirm rejected: floor not accessible",
			zap.Int("floor", f.Number),
			zap.String("name", f.Name),
		)
		return ConfirmRejected
	}

	if f.Number == s.current {
		s.close()
		return ConfirmStayed
	}

	s.close()
	if s.onSelect != nil {
		s.onSelect(f.Number)
	}
	return ConfirmSelected
}

// Cancel closes the selector without selecting anything. It returns false
// when the selector was already closed.
func (s *Selector) Cancel() bool {
	if !s.open {
		return false
	}
	s.close()
	return true
}

// UpdateCurrentFloor records the floor the learner is now on.
func (s *Selector) UpdateCurrentFloor(n int) {
	s.current = n
	if s.open {
		s.render()
	}
}

// Refresh re-snapshots the floor list while open, keeping the selector open
// and re-highlighting the current floor. It does nothing while closed, since
// the next Open snapshots afresh.
func (s *Selector) Refresh() {
	if !s.open {
		return
	}
	snap := s.source.Floors()
	if len(snap) == 0 {
		s.close()
		return
	}
	s.snapshot = snap
	s.selected = clampIndex(s.current, len(snap))
	s.render()
}

func (s *Selector) close() {
	s.open = false
	s.snapshot = nil
	s.selected = 0
	s.render()
}

func (s *Selector) render() {
	if s.renderer != nil {
		s.renderer.Update(s.View())
	}
}

func clampIndex(i, n int) int {
	if i < 0 || i >= n {
		return 0
	}
	return i
}
