// Package engine drives the frame loop: it polls events into the input state, updates the
// camera, then clears, draws and presents one frame per tick.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-lit/engine/brush"
	"github.com/Carmen-Shannon/oxy-lit/engine/camera"
	"github.com/Carmen-Shannon/oxy-lit/engine/event"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/Carmen-Shannon/oxy-lit/engine/input"
	"github.com/Carmen-Shannon/oxy-lit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-lit/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// State is the lifecycle state of an Engine.
type State int

const (
	StateRunning State = iota
	StateStopped
)

func (s State) String() string {
	if s == StateStopped {
		return "stopped"
	}
	return "running"
}

// Context is the per-frame state handed to every system. It replaces global frame state.
type Context struct {
	Input  *input.State
	Camera camera.Camera
	// Delta is the elapsed time since the previous tick, in seconds.
	Delta float32
	// Frame counts ticks that reached the draw stage.
	Frame uint64
}

// engine implements the Engine interface.
type engine struct {
	logger *slog.Logger

	source  event.Source
	surface gpu.Surface

	translator  *event.Translator
	controller  camera.CameraController
	objectBrush brush.ObjectBrush
	lampBrush   brush.LampBrush
	scene       *scene.Scene
	profiler    *profiler.Profiler

	ctx        Context
	clearColor gpu.Color
	width      int
	height     int
	frameLimit time.Duration
	onUpdate   func(ctx *Context)

	state State
}

// Engine runs the frame loop.
type Engine interface {
	// Tick runs one frame in strict order: poll and dispatch events, apply a pending resize,
	// update the camera, clear, draw every object then every lamp, present.
	// A quit requested during a tick takes effect at the top of the next one.
	// Per-draw errors are logged and that draw is skipped.
	//
	// Parameters:
	//   - dt: elapsed time since the previous tick, in seconds
	//
	// Returns:
	//   - State: the state after the tick
	Tick(dt float32) State

	// Run calls Tick with wall-clock deltas until the engine stops or ctx is cancelled.
	//
	// Returns:
	//   - error: ctx.Err() if cancelled, nil on a normal stop
	Run(ctx context.Context) error

	// Quit requests a stop. It takes effect at the top of the next tick.
	Quit()

	// State returns the current lifecycle state.
	State() State

	// Context returns the frame context. It is owned by the engine; callers must not retain
	// it across ticks.
	Context() *Context
}

var _ Engine = &engine{}

// NewEngine creates a running engine fed by source and presenting to surface.
//
// Parameters:
//   - source: the window's event source
//   - surface: the presentable GPU surface
//   - options: functional options
//
// Returns:
//   - Engine: the engine
//   - error: error if source or surface is missing
func NewEngine(source event.Source, surface gpu.Surface, options ...EngineBuilderOption) (Engine, error) {
	if source == nil || surface == nil {
		return nil, errors.New("engine: an event source and a surface are required")
	}
	e := &engine{
		logger:     slog.Default(),
		source:     source,
		surface:    surface,
		clearColor: gpu.Black,
		width:      1280,
		height:     720,
		state:      StateRunning,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.translator == nil {
		e.translator = event.NewTranslator(event.WithLogger(e.logger))
	}
	if e.controller == nil {
		e.controller = camera.NewController()
	}
	if e.scene == nil {
		e.scene = &scene.Scene{}
	}
	e.ctx.Input = input.NewState(e.width, e.height)
	if e.ctx.Camera == nil {
		e.ctx.Camera = camera.NewCamera(
			camera.WithPosition(mgl32.Vec3{0, 0, 3}),
			camera.WithViewport(e.width, e.height),
		)
	}
	return e, nil
}

func (e *engine) Tick(dt float32) State {
	if e.state == StateStopped {
		return e.state
	}
	in := e.ctx.Input
	if !in.Running() {
		e.state = StateStopped
		e.logger.Info("engine stopped", "frames", e.ctx.Frame)
		return e.state
	}

	e.translator.Dispatch(in, e.source.Poll())

	// Size-dependent targets must match the viewport before anything is drawn.
	if w, h, ok := in.TakeResize(); ok {
		if err := e.surface.Resize(w, h); err != nil {
			e.logger.Error("resize failed", "width", w, "height", h, "error", err)
		}
		e.ctx.Camera.SetAspect(float32(w) / float32(h))
		e.logger.Debug("viewport resized", "width", w, "height", h)
	}

	e.ctx.Delta = dt
	e.controller.Update(e.ctx.Camera, in, dt)
	if e.onUpdate != nil {
		e.onUpdate(&e.ctx)
	}

	target, err := e.surface.BeginFrame(e.clearColor)
	if err != nil {
		e.logger.Warn("skipping frame", "error", err)
		return e.state
	}
	e.ctx.Frame++
	e.draw(target)
	if err := e.surface.Present(target); err != nil {
		e.logger.Warn("present failed", "frame", e.ctx.Frame, "error", err)
	}
	return e.state
}

// draw issues every object draw, then every lamp draw, into target.
func (e *engine) draw(target gpu.Handle) {
	s := e.scene
	if e.objectBrush != nil {
		points := s.PointLights.All()
		for i, obj := range s.Objects {
			if err := e.objectBrush.Draw(target, obj, s.DirLight, points, e.ctx.Camera); err != nil {
				e.logger.Warn("skipping object draw", "frame", e.ctx.Frame, "object", i, "error", err)
			}
		}
	}
	if e.lampBrush != nil {
		for i, lamp := range s.Lamps {
			if err := e.lampBrush.Draw(target, lamp, e.ctx.Camera); err != nil {
				e.logger.Warn("skipping lamp draw", "frame", e.ctx.Frame, "lamp", i, "error", err)
			}
		}
	}
}

func (e *engine) Run(ctx context.Context) error {
	last := time.Now()
	for e.state == StateRunning {
		select {
		case <-ctx.Done():
			e.state = StateStopped
			return ctx.Err()
		default:
		}

		start := time.Now()
		dt := float32(start.Sub(last).Seconds())
		last = start

		e.Tick(dt)

		frameTime := time.Since(start)
		if e.profiler != nil {
			e.profiler.Tick(frameTime)
		}
		if e.frameLimit > 0 {
			if remaining := e.frameLimit - frameTime; remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
	return nil
}

func (e *engine) Quit() {
	e.ctx.Input.Stop()
}

func (e *engine) State() State {
	return e.state
}

func (e *engine) Context() *Context {
	return &e.ctx
}
