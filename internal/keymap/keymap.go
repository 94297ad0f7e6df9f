// Package keymap turns terminal key events into selector signals. Only the
// leading edge of a key press produces a signal; auto-repeat is dropped.
package keymap

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stacks/internal/selector"
	"github.com/abhisek/stacks/internal/ui/layout"
)

// Map holds the bindings of the library screen.
type Map struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// Default returns the standard bindings.
func Default() Map {
	return Map{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "Down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("e", "Elevator"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Close"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// Hints returns footer hints for the given selector state.
func (m Map) Hints(open bool) []layout.KeyHint {
	if open {
		return []layout.KeyHint{
			hint(m.Up),
			hint(m.Down),
			{Key: m.Confirm.Help().Key, Description: "Go"},
			hint(m.Cancel),
		}
	}
	return []layout.KeyHint{hint(m.Confirm), hint(m.Refresh), hint(m.Quit)}
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

// Edges converts key events into selector signals, one per physical press.
//
// Terminals that report key releases let Edges track held keys directly;
// the rest rely on the IsRepeat flag of the press event.
type Edges struct {
	keys        Map
	held        map[string]bool
	seenRelease bool
}

// NewEdges creates an edge detector over m.
func NewEdges(m Map) *Edges {
	return &Edges{keys: m, held: make(map[string]bool)}
}

// Edge maps a key press to a signal. ok is false for repeats, for keys
// still held down, and for unbound keys.
//
// Only the most recent press is tracked as held: a press of a different
// key forgets the rest, so a release lost to another window cannot block
// a key for good.
func (e *Edges) Edge(msg tea.KeyPressMsg) (sig selector.Signal, ok bool) {
	if msg.IsRepeat {
		return 0, false
	}
	k := msg.String()
	if e.seenRelease {
		if e.held[k] {
			return 0, false
		}
		clear(e.held)
		e.held[k] = true
	}

	switch {
	case key.Matches(msg, e.keys.Up):
		return selector.SignalNavigateUp, true
	case key.Matches(msg, e.keys.Down):
		return selector.SignalNavigateDown, true
	case key.Matches(msg, e.keys.Confirm):
		return selector.SignalConfirm, true
	case key.Matches(msg, e.keys.Cancel):
		return selector.SignalCancel, true
	}
	return 0, false
}

// Reset forgets every held key. Call it when the terminal gains or loses
// focus, since releases are not delivered while unfocused.
func (e *Edges) Reset() {
	clear(e.held)
}

// Release records that a key went up.
func (e *Edges) Release(msg tea.KeyReleaseMsg) {
	e.seenRelease = true
	delete(e.held, msg.String())
}
