package library

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/stacks/internal/config"
	"github.com/abhisek/stacks/internal/course"
	"github.com/abhisek/stacks/internal/floors"
	"github.com/abhisek/stacks/internal/selector"
	"github.com/abhisek/stacks/internal/source"
	"github.com/abhisek/stacks/internal/transition"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeFetcher struct {
	records []course.ProgressRecord
	err     error
	calls   int
}

func (f *fakeFetcher) FetchRecords(_ context.Context, _ string) ([]course.ProgressRecord, error) {
	f.calls++
	return f.records, f.err
}

func (f *fakeFetcher) FetchRecord(_ context.Context, _, id string) (course.ProgressRecord, error) {
	return source.Find(f.records, id)
}

type manualFader struct {
	outs []func()
	ins  []func()
}

func (f *manualFader) FadeOut(_ time.Duration, done func()) { f.outs = append(f.outs, done) }
func (f *manualFader) FadeIn(_ time.Duration, done func())  { f.ins = append(f.ins, done) }

type recordingRenderer struct {
	rendered []int
	moves    int
}

func (r *recordingRenderer) RenderFloor(f floors.Floor) { r.rendered = append(r.rendered, f.Number) }
func (r *recordingRenderer) Reposition(_, _ int)        { r.moves++ }

type harness struct {
	scene   *Scene
	fetcher *fakeFetcher
	fader   *manualFader
	render  *recordingRenderer
	views   []selector.View
	settled []transition.Result
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		fetcher: &fakeFetcher{records: source.DemoRecords(now)},
		fader:   &manualFader{},
		render:  &recordingRenderer{},
	}
	h.scene = New(Deps{
		Fetcher:          h.fetcher,
		CourseID:         "demo-course",
		Fader:            h.fader,
		Renderer:         h.render,
		SelectorRenderer: selector.RendererFunc(func(v selector.View) { h.views = append(h.views, v) }),
		Transition:       transition.DefaultConfig(),
		OnSettled:        func(r transition.Result) { h.settled = append(h.settled, r) },
		Now:              func() time.Time { return now },
	})
	return h
}

func (h *harness) load(t *testing.T) {
	t.Helper()
	fetch := h.scene.Activate()
	require.NoError(t, h.scene.Loaded(fetch()))
}

func TestSceneNotReadyBeforeLoad(t *testing.T) {
	h := newHarness(t)
	h.scene.Activate()

	assert.False(t, h.scene.Ready())
	assert.False(t, h.scene.HandleSignal(selector.SignalConfirm))
	assert.Empty(t, h.views)
	assert.Equal(t, 0, h.fetcher.calls)
}

func TestSceneLoadBuildsCatalogAndRendersOnce(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	assert.True(t, h.scene.Ready())
	assert.Equal(t, 6, h.scene.Catalog().Len())
	assert.Equal(t, []int{0}, h.render.rendered)
	assert.Equal(t, 0, h.render.moves)
	assert.NotEmpty(t, h.scene.ActivationID())
}

func TestSceneFetchRunsOncePerActivation(t *testing.T) {
	h := newHarness(t)
	fetch := h.scene.Activate()
	fetch()
	fetch()
	assert.Equal(t, 1, h.fetcher.calls)
}

func TestSceneFetchFailureIsFatal(t *testing.T) {
	h := newHarness(t)
	h.fetcher.err = errors.New("network down")

	fetch := h.scene.Activate()
	err := h.scene.Loaded(fetch())

	var fe *source.ErrFetch
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "demo-course", fe.CourseID)
	assert.False(t, h.scene.Ready())
	assert.Empty(t, h.render.rendered)
}

func TestSceneIgnoresStaleActivation(t *testing.T) {
	h := newHarness(t)
	first := h.scene.Activate()
	second := h.scene.Activate()

	require.NoError(t, h.scene.Loaded(first()))
	assert.False(t, h.scene.Ready())

	require.NoError(t, h.scene.Loaded(second()))
	assert.True(t, h.scene.Ready())
}

func TestSceneRideToAccessibleFloor(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	// Confirm while closed calls the elevator.
	require.True(t, h.scene.HandleSignal(selector.SignalConfirm))
	require.True(t, h.scene.SelectorView().Open)

	h.scene.HandleSignal(selector.SignalNavigateDown)
	h.scene.HandleSignal(selector.SignalNavigateDown)
	h.scene.HandleSignal(selector.SignalConfirm)

	assert.False(t, h.scene.SelectorView().Open)
	assert.True(t, h.scene.Transition().InFlight)
	assert.Equal(t, 2, h.scene.Transition().Target)
	require.Len(t, h.fader.outs, 1)

	h.fader.outs[0]()
	assert.Equal(t, 2, h.scene.Catalog().CurrentNumber())
	assert.Equal(t, []int{0, 2}, h.render.rendered)
	assert.Equal(t, 1, h.render.moves)

	require.Len(t, h.fader.ins, 1)
	h.fader.ins[0]()
	assert.False(t, h.scene.Transition().InFlight)
	require.Len(t, h.settled, 1)
	assert.True(t, h.settled[0].Swapped)
	assert.Equal(t, 2, h.scene.SelectorView().CurrentFloorNumber)
}

func TestSceneLockedFloorRejected(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.scene.HandleSignal(selector.SignalConfirm)
	h.scene.HandleSignal(selector.SignalNavigateUp) // wraps to floor 5, locked
	h.scene.HandleSignal(selector.SignalConfirm)

	assert.True(t, h.scene.SelectorView().Open)
	assert.Empty(t, h.fader.outs)
}

func TestSceneReloadKeepsCurrentFloor(t *testing.T) {
	h := newHarness(t)
	h.load(t)
	require.NoError(t, h.scene.Catalog().SetCurrentFloor(3))

	h.scene.HandleSignal(selector.SignalConfirm)
	h.load(t)

	assert.Equal(t, 3, h.scene.Catalog().CurrentNumber())
	v := h.scene.SelectorView()
	assert.True(t, v.Open)
	assert.Equal(t, 3, v.SelectedIndex)
	assert.Equal(t, 2, h.fetcher.calls)
}

func TestSceneCloseAbandonsTransitionBeforeSwap(t *testing.T) {
	h := newHarness(t)
	h.load(t)

	h.scene.HandleSignal(selector.SignalConfirm)
	h.scene.HandleSignal(selector.SignalNavigateDown)
	h.scene.HandleSignal(selector.SignalConfirm)
	require.Len(t, h.fader.outs, 1)

	h.scene.Close()
	h.scene.Close()
	assert.False(t, h.scene.Ready())
	assert.False(t, h.scene.HandleSignal(selector.SignalConfirm))

	h.fader.outs[0]()
	h.fader.ins[0]()
	assert.Equal(t, 0, h.scene.Catalog().CurrentNumber())
	require.Len(t, h.settled, 1)
	assert.True(t, h.settled[0].Cancelled)
}

func TestSceneLoadedAfterCloseIgnored(t *testing.T) {
	h := newHarness(t)
	fetch := h.scene.Activate()
	h.scene.Close()

	require.NoError(t, h.scene.Loaded(fetch()))
	assert.False(t, h.scene.Ready())
}

func TestTransitionConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Portal = config.Point{X: 10, Y: 20}

	tc := TransitionConfig(cfg)
	assert.Equal(t, cfg.Fade.Out, tc.FadeOut)
	assert.Equal(t, cfg.Fade.In, tc.FadeIn)
	assert.Equal(t, transition.Point{X: 10, Y: 20}, tc.Anchor)
}
