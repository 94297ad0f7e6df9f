// Package transition choreographs a floor switch: fade out, swap the current
// floor, re-render and reposition, then fade in. At most one switch is in
// flight at a time; overlapping requests are dropped.
package transition

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/stacks/internal/floors"
)

// Default fade durations.
const (
	DefaultFadeOut = 200 * time.Millisecond
	DefaultFadeIn  = 200 * time.Millisecond
)

// Fader runs a timed fade and calls done when it finishes. Implementations
// may call done more than once or late; the coordinator only honours the
// first call for the phase it is waiting on.
type Fader interface {
	FadeOut(d time.Duration, done func())
	FadeIn(d time.Duration, done func())
}

// Renderer draws the landed floor and moves the learner to the arrival
// point. Both must be safe to call on a torn-down scene.
type Renderer interface {
	RenderFloor(f floors.Floor)
	Reposition(x, y int)
}

// FloorListener is told the new current floor after a swap.
type FloorListener interface {
	UpdateCurrentFloor(n int)
}

// Catalog is the part of *floors.Catalog the coordinator writes to.
type Catalog interface {
	SetCurrentFloor(n int) error
	CurrentFloor() floors.Floor
	CurrentNumber() int
}

// Point is a position in scene coordinates.
type Point struct {
	X, Y int
}

// Config holds the timing and arrival anchor of a transition.
type Config struct {
	FadeOut time.Duration
	FadeIn  time.Duration
	Anchor  Point
}

// DefaultConfig returns the stock fade timings with the anchor at the
// elevator doors.
func DefaultConfig() Config {
	return Config{
		FadeOut: DefaultFadeOut,
		FadeIn:  DefaultFadeIn,
		Anchor:  Point{X: 650, Y: 300},
	}
}

// Result is reported once a transition settles back to idle.
type Result struct {
	Target    int
	Swapped   bool
	Cancelled bool
}

// State is a snapshot of the coordinator's state machine.
type State struct {
	InFlight bool
	Target   int
}

type phase int

const (
	phaseIdle phase = iota
	phaseFadingOut
	phaseFadingIn
)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithListener registers the collaborator told about the new current floor.
func WithListener(l FloorListener) Option {
	return func(c *Coordinator) { c.listener = l }
}

// WithSettled registers a hook run when a transition returns to idle.
func WithSettled(fn func(Result)) Option {
	return func(c *Coordinator) { c.settled = fn }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// Coordinator is the sole writer of the catalog's current floor.
type Coordinator struct {
	catalog  Catalog
	fader    Fader
	renderer Renderer
	listener FloorListener
	settled  func(Result)
	cfg      Config
	log      *zap.Logger

	phase     phase
	target    int
	ctx       context.Context
	swapped   bool
	cancelled bool
	gen       uint64
}

// New creates an idle coordinator.
func New(catalog Catalog, fader Fader, renderer Renderer, cfg Config, opts ...Option) *Coordinator {
	c := &Coordinator{
		catalog:  catalog,
		fader:    fader,
		renderer: renderer,
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// State reports whether a transition is in flight and its target.
func (c *Coordinator) State() State {
	if c.phase == phaseIdle {
		return State{}
	}
	return State{InFlight: true, Target: c.target}
}

// InFlight reports whether a transition is running.
func (c *Coordinator) InFlight() bool {
	return c.phase != phaseIdle
}

// Request starts a transition to floor target. It returns false, doing
// nothing, when another transition is in flight or ctx is already done.
//
// ctx is checked when the fade-out completes: if it has been cancelled by
// then the swap is skipped and the scene fades back in on the old floor.
// Once the swap has happened the transition always runs to completion.
// Pass context.Background() for a ride that can never be abandoned.
func (c *Coordinator) Request(ctx context.Context, target int) bool {
	if c.phase != phaseIdle {
		c.log.Debug("transition rejected: already in flight",
			zap.Int("requested", target),
			zap.Int("in_flight", c.target),
		)
		return false
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		c.log.Debug("transition rejected: context done", zap.Int("requested", target))
		return false
	}

	c.phase = phaseFadingOut
	c.target = target
	c.ctx = ctx
	c.swapped = false
	c.cancelled = false

	c.log.Debug("transition started",
		zap.Int("from", c.catalog.CurrentNumber()),
		zap.Int("to", target),
	)
	c.fader.FadeOut(c.cfg.FadeOut, c.oneShot(phaseFadingOut, c.fadeOutDone))
	return true
}

// oneShot wraps next so that it runs at most once, and only while the
// coordinator is still in the phase that subscribed.
func (c *Coordinator) oneShot(want phase, next func()) func() {
	c.gen++
	gen := c.gen
	fired := false
	return func() {
		if fired {
			c.log.Debug("duplicate fade completion ignored", zap.Int("target", c.target))
			return
		}
		fired = true
		if gen != c.gen || c.phase != want {
			c.log.Debug("stale fade completion ignored", zap.Int("target", c.target))
			return
		}
		next()
	}
}

func (c *Coordinator) fadeOutDone() {
	if err := c.ctx.Err(); err != nil {
		c.log.Info("transition cancelled before swap",
			zap.Int("target", c.target),
			zap.Error(err),
		)
		c.cancelled = true
		c.fadeIn()
		return
	}

	if err := c.catalog.SetCurrentFloor(c.target); err != nil {
		c.log.Warn("transition target ignored", zap.Error(err))
	} else {
		c.swapped = true
	}

	if c.renderer != nil {
		c.renderer.RenderFloor(c.catalog.CurrentFloor())
		c.renderer.Reposition(c.cfg.Anchor.X, c.cfg.Anchor.Y)
	}
	if c.listener != nil {
		c.listener.UpdateCurrentFloor(c.catalog.CurrentNumber())
	}
	c.fadeIn()
}

func (c *Coordinator) fadeIn() {
	c.phase = phaseFadingIn
	c.fader.FadeIn(c.cfg.FadeIn, c.oneShot(phaseFadingIn, c.fadeInDone))
}

func (c *Coordinator) fadeInDone() {
	res := Result{
		Target:    c.target,
		Swapped:   c.swapped,
		Cancelled: c.cancelled,
	}

	c.phase = phaseIdle
	c.ctx = nil
	c.swapped = false
	c.cancelled = false

	c.log.Debug("transition settled",
		zap.Int("target", res.Target),
		zap.Bool("swapped", res.Swapped),
		zap.Bool("cancelled", res.Cancelled),
	)
	if c.settled != nil {
		c.settled(res)
	}
}
