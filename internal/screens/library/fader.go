package library

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stacks/internal/transition"
)

const defaultFrame = 40 * time.Millisecond

// tickFader runs fades as a chain of tick commands on the event loop.
// Commands are handed to enqueue; the screen returns them from Update.
type tickFader struct {
	frame   time.Duration
	enqueue func(tea.Cmd)

	id      uint64
	dir     int // -1 fading out, +1 fading in
	dur     time.Duration
	elapsed time.Duration
	opacity float64
	done    func()
}

var _ transition.Fader = (*tickFader)(nil)

func newTickFader(frame time.Duration, enqueue func(tea.Cmd)) *tickFader {
	if frame <= 0 {
		frame = defaultFrame
	}
	return &tickFader{frame: frame, enqueue: enqueue, opacity: 1}
}

func (f *tickFader) FadeOut(d time.Duration, done func()) {
	f.begin(-1, d, done)
}

func (f *tickFader) FadeIn(d time.Duration, done func()) {
	f.begin(1, d, done)
}

// Opacity is the scene visibility, 0 (black) to 1.
func (f *tickFader) Opacity() float64 {
	return f.opacity
}

// Fading reports whether a fade is running.
func (f *tickFader) Fading() bool {
	return f.done != nil
}

func (f *tickFader) begin(dir int, d time.Duration, done func()) {
	f.id++
	f.dir = dir
	f.dur = d
	f.elapsed = 0
	f.done = done
	if d <= 0 {
		f.finish()
		return
	}
	f.enqueue(f.tick())
}

func (f *tickFader) tick() tea.Cmd {
	id := f.id
	return tea.Tick(f.frame, func(time.Time) tea.Msg {
		return fadeFrameMsg{id: id}
	})
}

// advance handles one frame. Frames of superseded fades are ignored.
func (f *tickFader) advance(msg fadeFrameMsg) {
	if msg.id != f.id || f.done == nil {
		return
	}
	f.elapsed += f.frame
	if f.elapsed >= f.dur {
		f.finish()
		return
	}

	p := float64(f.elapsed) / float64(f.dur)
	if f.dir < 0 {
		f.opacity = 1 - p
	} else {
		f.opacity = p
	}
	f.enqueue(f.tick())
}

func (f *tickFader) finish() {
	if f.dir < 0 {
		f.opacity = 0
	} else {
		f.opacity = 1
	}
	done := f.done
	f.done = nil
	done()
}
