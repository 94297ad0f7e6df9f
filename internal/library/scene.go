// Package library runs one visit to the course building: it fetches the
// course records once per activation, builds the floor catalog, and wires
// the elevator selector to the transition coordinator.
package library

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/stacks/internal/config"
	"github.com/abhisek/stacks/internal/course"
	"github.com/abhisek/stacks/internal/floors"
	"github.com/abhisek/stacks/internal/selector"
	"github.com/abhisek/stacks/internal/source"
	"github.com/abhisek/stacks/internal/transition"
)

// Deps are the collaborators of a Scene.
type Deps struct {
	Fetcher  source.Fetcher
	CourseID string

	Fader            transition.Fader
	Renderer         transition.Renderer
	SelectorRenderer selector.Renderer
	Transition       transition.Config

	// OnSettled, if set, is told when each transition returns to idle.
	OnSettled func(transition.Result)

	Logger *zap.Logger
	Now    func() time.Time
}

// LoadResult is the outcome of an activation's fetch.
type LoadResult struct {
	Activation string
	Records    []course.ProgressRecord
	Err        error
}

// FetchFunc performs an activation's fetch. It may block and is safe to run
// off the event loop; only the first call fetches.
type FetchFunc func() LoadResult

// Scene owns the catalog, selector and coordinator of a visit. All methods
// except the returned FetchFunc must be called from the event loop.
type Scene struct {
	deps Deps
	log  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	activation string
	ready      bool
	closed     bool

	catalog  *floors.Catalog
	selector *selector.Selector
	coord    *transition.Coordinator
}

// New creates an inactive scene.
func New(deps Deps) *Scene {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scene{
		deps:    deps,
		log:     deps.Logger,
		ctx:     ctx,
		cancel:  cancel,
		catalog: floors.NewCatalog(deps.Logger),
	}
}

// TransitionConfig converts the runtime configuration into coordinator
// settings.
func TransitionConfig(c config.Config) transition.Config {
	return transition.Config{
		FadeOut: c.Fade.Out,
		FadeIn:  c.Fade.In,
		Anchor:  transition.Point{X: c.Portal.X, Y: c.Portal.Y},
	}
}

// Activate starts a new activation and disables navigation until its
// records are loaded. The returned FetchFunc must be run and its result
// passed to Loaded. Results of earlier activations are discarded.
func (s *Scene) Activate() FetchFunc {
	id := uuid.New().String()
	s.activation = id
	s.ready = false

	if s.closed {
		return func() LoadResult {
			return LoadResult{Activation: id, Err: context.Canceled}
		}
	}

	ctx := s.ctx
	fetcher := s.deps.Fetcher
	courseID := s.deps.CourseID
	log := s.log.With(zap.String("activation", id))

	var once sync.Once
	var res LoadResult
	return func() LoadResult {
		once.Do(func() {
			log.Debug("fetching course records", zap.String("course_id", courseID))
			recs, err := fetcher.FetchRecords(ctx, courseID)
			res = LoadResult{Activation: id, Records: recs, Err: err}
		})
		return res
	}
}

// Loaded completes an activation. A failed fetch is returned as
// *source.ErrFetch and leaves the scene not ready. Results for a stale
// activation or a closed scene are ignored.
func (s *Scene) Loaded(r LoadResult) error {
	if s.closed || r.Activation != s.activation {
		s.log.Debug("stale load result ignored", zap.String("activation", r.Activation))
		return nil
	}
	if r.Err != nil {
		err := &source.ErrFetch{CourseID: s.deps.CourseID, Err: r.Err}
		s.log.Error("course fetch failed",
			zap.String("activation", r.Activation),
			zap.Error(err),
		)
		return err
	}

	s.catalog.Build(r.Records, s.deps.Now())
	if s.selector == nil {
		s.wire()
	} else {
		s.selector.UpdateCurrentFloor(s.catalog.CurrentNumber())
		s.selector.Refresh()
	}

	if s.deps.Renderer != nil {
		s.deps.Renderer.RenderFloor(s.catalog.CurrentFloor())
	}
	s.ready = true
	s.log.Info("scene ready",
		zap.String("activation", r.Activation),
		zap.Int("floors", s.catalog.Len()),
	)
	return nil
}

func (s *Scene) wire() {
	s.selector = selector.New(s.catalog, s.requestTransition,
		selector.WithRenderer(s.deps.SelectorRenderer),
		selector.WithLogger(s.log),
	)

	opts := []transition.Option{
		transition.WithListener(s.selector),
		transition.WithLogger(s.log),
	}
	if s.deps.OnSettled != nil {
		opts = append(opts, transition.WithSettled(s.deps.OnSettled))
	}
	s.coord = transition.New(s.catalog, s.deps.Fader, s.deps.Renderer, s.deps.Transition, opts...)
}

func (s *Scene) requestTransition(floor int) {
	s.coord.Request(s.ctx, floor)
}

// HandleSignal routes an input edge to the selector. A CONFIRM while the
// selector is closed calls the elevator. It reports whether the signal was
// accepted; everything is dropped until the scene is ready.
func (s *Scene) HandleSignal(sig selector.Signal) bool {
	if !s.ready || s.closed {
		return false
	}
	if sig == selector.SignalConfirm && !s.selector.IsOpen() {
		sig = selector.SignalOpen
	}
	s.selector.Handle(sig)
	return true
}

// Ready reports whether navigation is enabled.
func (s *Scene) Ready() bool {
	return s.ready && !s.closed
}

// ActivationID returns the id of the latest activation.
func (s *Scene) ActivationID() string {
	return s.activation
}

// Catalog returns the scene's floor catalog.
func (s *Scene) Catalog() *floors.Catalog {
	return s.catalog
}

// SelectorView returns the elevator panel state.
func (s *Scene) SelectorView() selector.View {
	if s.selector == nil {
		return selector.View{CurrentFloorNumber: s.catalog.CurrentNumber()}
	}
	return s.selector.View()
}

// Transition reports the coordinator state.
func (s *Scene) Transition() transition.State {
	if s.coord == nil {
		return transition.State{}
	}
	return s.coord.State()
}

// Close tears the scene down. Input is no longer accepted, pending fetches
// are cancelled and any transition that has not yet swapped floors is
// abandoned at its next phase boundary. Close is idempotent.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.ready = false
	s.cancel()
	if s.selector != nil {
		s.selector.Cancel()
	}
	s.log.Debug("scene closed", zap.String("activation", s.activation))
}
