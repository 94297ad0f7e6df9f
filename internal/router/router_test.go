package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stacks/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	closed  int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) Close()                                  { s.closed++ }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
	if s2.closed != 1 {
		t.Errorf("expected popped screen closed once, got %d", s2.closed)
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
	if s1.closed != 0 {
		t.Error("bottom screen should not be closed")
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "splash"}
	r := New(s1)

	s2 := &stubScreen{title: "library"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "library" {
		t.Errorf("expected active 'library', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replacement screen")
	}
	if s1.closed != 1 {
		t.Errorf("expected replaced screen closed once, got %d", s1.closed)
	}
}

func TestCloseAll(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	s2 := &stubScreen{title: "second"}
	r := New(s1)
	r.Push(s2)

	r.CloseAll()

	if s1.closed != 1 || s2.closed != 1 {
		t.Errorf("expected every screen closed once, got %d and %d", s1.closed, s2.closed)
	}
}
