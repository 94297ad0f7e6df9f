package keymap

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/stacks/internal/selector"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestEdgeMapping(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
		want selector.Signal
	}{
		{"arrow up", specialKey(tea.KeyUp), selector.SignalNavigateUp},
		{"w", keyPress('w'), selector.SignalNavigateUp},
		{"arrow down", specialKey(tea.KeyDown), selector.SignalNavigateDown},
		{"s", keyPress('s'), selector.SignalNavigateDown},
		{"enter", specialKey(tea.KeyEnter), selector.SignalConfirm},
		{"e", keyPress('e'), selector.SignalConfirm},
		{"esc", specialKey(tea.KeyEscape), selector.SignalCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEdges(Default())
			sig, ok := e.Edge(tt.msg)
			assert.True(t, ok)
			assert.Equal(t, tt.want, sig)
		})
	}
}

func TestEdgeIgnoresUnboundKeys(t *testing.T) {
	e := NewEdges(Default())
	_, ok := e.Edge(keyPress('x'))
	assert.False(t, ok)
}

func TestEdgeDropsRepeats(t *testing.T) {
	e := NewEdges(Default())
	repeat := specialKey(tea.KeyDown)
	repeat.IsRepeat = true

	_, ok := e.Edge(repeat)
	assert.False(t, ok)

	_, ok = e.Edge(specialKey(tea.KeyDown))
	assert.True(t, ok)
}

func TestEdgeWithoutReleaseReportingFiresEveryPress(t *testing.T) {
	e := NewEdges(Default())
	for range 3 {
		_, ok := e.Edge(keyPress('s'))
		assert.True(t, ok)
	}
}

func TestEdgeTracksHeldKeysOnceReleasesSeen(t *testing.T) {
	e := NewEdges(Default())
	e.Release(tea.KeyReleaseMsg{Code: 'w', Text: "w"})

	_, ok := e.Edge(keyPress('s'))
	assert.True(t, ok, "first press")

	_, ok = e.Edge(keyPress('s'))
	assert.False(t, ok, "still held")

	e.Release(tea.KeyReleaseMsg{Code: 's', Text: "s"})
	_, ok = e.Edge(keyPress('s'))
	assert.True(t, ok, "pressed again after release")
}

func TestEdgeLostReleaseDoesNotBlockKey(t *testing.T) {
	e := NewEdges(Default())
	e.Release(tea.KeyReleaseMsg{Code: 'w', Text: "w"})

	_, ok := e.Edge(keyPress('s'))
	require.True(t, ok)
	// The release of s never arrives; another key is pressed instead.
	_, ok = e.Edge(keyPress('w'))
	require.True(t, ok)

	sig, ok := e.Edge(keyPress('s'))
	assert.True(t, ok, "s fires again once another key was pressed")
	assert.Equal(t, selector.SignalNavigateDown, sig)
}

func TestEdgeResetOnFocusChange(t *testing.T) {
	e := NewEdges(Default())
	e.Release(tea.KeyReleaseMsg{Code: 'w', Text: "w"})

	_, ok := e.Edge(keyPress('e'))
	require.True(t, ok)
	e.Reset()

	_, ok = e.Edge(keyPress('e'))
	assert.True(t, ok)
}

func TestHints(t *testing.T) {
	m := Default()

	closed := m.Hints(false)
	assert.Len(t, closed, 3)
	assert.Equal(t, "Elevator", closed[0].Description)

	open := m.Hints(true)
	assert.Len(t, open, 4)
	assert.Equal(t, "Go", open[2].Description)
}
