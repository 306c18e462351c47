package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/brush"
	"github.com/Carmen-Shannon/oxy-lit/engine/event"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-lit/engine/material"
	"github.com/Carmen-Shannon/oxy-lit/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource returns one batch of events per Poll, then nothing.
type scriptedSource struct {
	batches [][]event.Event
	polls   int
}

func (s *scriptedSource) Poll() []event.Event {
	s.polls++
	if len(s.batches) == 0 {
		return nil
	}
	b := s.batches[0]
	s.batches = s.batches[1:]
	return b
}

type harness struct {
	r       *gputest.Recorder
	source  *scriptedSource
	scene   *scene.Scene
	objects brush.ObjectBrush
	lamps   brush.LampBrush
	mesh    gpu.Handle
	mat     material.Handle
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	r := gputest.NewRecorder()
	mesh, err := scene.NewCubeMesh(r)
	require.NoError(t, err)
	tex, err := r.CreateTexture("white", common.SolidTexture(1, 1, [4]byte{255, 255, 255, 255}))
	require.NoError(t, err)
	arena := material.NewArena(r)
	mat, err := arena.Add(material.Material{Name: "plain", Diffuse: tex, Specular: tex, Shininess: 32})
	require.NoError(t, err)
	s, err := scene.DemoScene(mesh, mat)
	require.NoError(t, err)
	objects, err := brush.NewObjectBrush(r, arena)
	require.NoError(t, err)
	lamps, err := brush.NewLampBrush(r)
	require.NoError(t, err)
	r.Reset()
	return &harness{r: r, source: &scriptedSource{}, scene: s, objects: objects, lamps: lamps, mesh: mesh, mat: mat}
}

func (h *harness) engine(t *testing.T, options ...EngineBuilderOption) Engine {
	t.Helper()
	options = append([]EngineBuilderOption{
		WithScene(h.scene),
		WithObjectBrush(h.objects),
		WithLampBrush(h.lamps),
		WithViewport(800, 600),
	}, options...)
	e, err := NewEngine(h.source, h.r, options...)
	require.NoError(t, err)
	return e
}

func TestNewEngineRequiresCollaborators(t *testing.T) {
	_, err := NewEngine(nil, gputest.NewRecorder())
	assert.Error(t, err)
	_, err = NewEngine(&scriptedSource{}, nil)
	assert.Error(t, err)
}

func TestTickOrder(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	require.Equal(t, StateRunning, e.Tick(0.016))

	ops := h.r.Ops()
	require.NotEmpty(t, ops)
	assert.Equal(t, gputest.OpBeginFrame, ops[0])
	assert.Equal(t, gputest.OpPresent, ops[len(ops)-1])
	assert.Equal(t, len(h.scene.Objects)+len(h.scene.Lamps), h.r.Count(gputest.OpSubmitDraw))
	assert.Equal(t, 1, h.source.polls)

	for i, d := range h.r.Draws {
		if i < len(h.scene.Objects) {
			assert.Equal(t, h.objects.Pipeline(), d.Call.Pipeline, "draw %d", i)
		} else {
			assert.Equal(t, h.lamps.Pipeline(), d.Call.Pipeline, "draw %d", i)
		}
	}
	assert.Equal(t, []gpu.Color{gpu.Black}, h.r.Clears)
	assert.Equal(t, uint64(1), e.Context().Frame)
	assert.Equal(t, 0, h.r.Live(gpu.KindTarget))
}

func TestResizeAppliedBeforeDraw(t *testing.T) {
	h := newHarness(t)
	h.source.batches = [][]event.Event{{event.Resize(1000, 500)}}
	e := h.engine(t)

	e.Tick(0.016)

	ops := h.r.Ops()
	require.GreaterOrEqual(t, len(ops), 2)
	assert.Equal(t, gputest.OpResize, ops[0])
	assert.Equal(t, gputest.OpBeginFrame, ops[1])
	assert.Equal(t, [][2]int{{1000, 500}}, h.r.Resizes)
	assert.InDelta(t, 2.0, e.Context().Camera.Aspect(), 1e-6)

	w, ht := e.Context().Input.Viewport()
	assert.Equal(t, 1000, w)
	assert.Equal(t, 500, ht)

	h.r.Reset()
	e.Tick(0.016)
	assert.Zero(t, h.r.Count(gputest.OpResize))
}

func TestQuitTakesEffectAtTopOfNextTick(t *testing.T) {
	h := newHarness(t)
	h.source.batches = [][]event.Event{{event.Close()}}
	e := h.engine(t)

	assert.Equal(t, StateRunning, e.Tick(0.016))
	assert.Equal(t, 1, h.r.Count(gputest.OpPresent))

	h.r.Reset()
	assert.Equal(t, StateStopped, e.Tick(0.016))
	assert.Empty(t, h.r.Ops())
	assert.Equal(t, 1, h.source.polls)

	assert.Equal(t, StateStopped, e.Tick(0.016))
	assert.Equal(t, StateStopped, e.State())
}

func TestEscapeQuits(t *testing.T) {
	h := newHarness(t)
	h.source.batches = [][]event.Event{{event.Key(common.KeyEsc, true)}}
	e := h.engine(t)

	e.Tick(0.016)
	assert.Equal(t, StateStopped, e.Tick(0.016))
}

func TestQuitMethod(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)
	e.Quit()
	assert.Equal(t, StateStopped, e.Tick(0.016))
	assert.Empty(t, h.r.Ops())
}

func TestMalformedEventsAreIgnored(t *testing.T) {
	h := newHarness(t)
	h.source.batches = [][]event.Event{{
		event.Resize(0, 0),
		event.MouseMove(math.NaN(), 1),
		event.Key(common.KeyW, true),
	}}
	e := h.engine(t)

	assert.Equal(t, StateRunning, e.Tick(0.5))
	assert.Zero(t, h.r.Count(gputest.OpResize))
	assert.Equal(t, 1, h.r.Count(gputest.OpPresent))
	assert.True(t, e.Context().Input.IsPressed(common.KeyW))
}

func TestControllerMovesCameraWithDelta(t *testing.T) {
	h := newHarness(t)
	h.source.batches = [][]event.Event{{event.Key(common.KeyW, true)}}
	e := h.engine(t)

	e.Tick(1.0)

	pos := e.Context().Camera.Position()
	assert.InDelta(t, 0, pos.X(), 1e-5)
	assert.InDelta(t, 0, pos.Y(), 1e-5)
	assert.InDelta(t, 0.5, pos.Z(), 1e-5)
	assert.Equal(t, float32(1.0), e.Context().Delta)
}

func TestFailedDrawIsSkipped(t *testing.T) {
	h := newHarness(t)
	h.scene.Objects = []scene.RenderObject{
		{Mesh: h.mesh, Model: mgl32.Ident4(), Material: h.mat},
		{Mesh: h.mesh, Model: mgl32.Ident4()},
		{Mesh: h.mesh, Model: mgl32.Ident4(), Material: h.mat},
	}
	h.scene.Lamps = nil
	e := h.engine(t)

	assert.Equal(t, StateRunning, e.Tick(0.016))
	assert.Equal(t, 2, h.r.Count(gputest.OpSubmitDraw))
	assert.Equal(t, 1, h.r.Count(gputest.OpPresent))
}

func TestBeginFrameFailureSkipsFrame(t *testing.T) {
	h := newHarness(t)
	h.r.BeginFrameErr = errors.New("surface lost")
	e := h.engine(t)

	assert.Equal(t, StateRunning, e.Tick(0.016))
	assert.Zero(t, h.r.Count(gputest.OpSubmitDraw))
	assert.Zero(t, h.r.Count(gputest.OpPresent))
	assert.Zero(t, e.Context().Frame)
}

func TestClearColorAndUpdateCallback(t *testing.T) {
	h := newHarness(t)
	var seen []uint64
	e := h.engine(t,
		WithClearColor(gpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}),
		WithUpdateCallback(func(ctx *Context) { seen = append(seen, ctx.Frame) }),
	)

	e.Tick(0.016)
	e.Tick(0.016)

	assert.Equal(t, []gpu.Color{{R: 0.1, G: 0.2, B: 0.3, A: 1}, {R: 0.1, G: 0.2, B: 0.3, A: 1}}, h.r.Clears)
	assert.Equal(t, []uint64{0, 1}, seen)
}

func TestRunStopsOnClose(t *testing.T) {
	h := newHarness(t)
	h.source.batches = [][]event.Event{nil, nil, {event.Close()}}
	e := h.engine(t)

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, StateStopped, e.State())
	assert.Equal(t, 3, h.r.Count(gputest.OpPresent))
}

func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, e.Run(ctx), context.Canceled)
	assert.Equal(t, StateStopped, e.State())
	assert.Zero(t, h.r.Count(gputest.OpPresent))
}
