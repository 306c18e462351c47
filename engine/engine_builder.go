package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-lit/engine/brush"
	"github.com/Carmen-Shannon/oxy-lit/engine/camera"
	"github.com/Carmen-Shannon/oxy-lit/engine/event"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/Carmen-Shannon/oxy-lit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-lit/engine/scene"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithScene sets the scene drawn every frame.
//
// Parameters:
//   - s: the scene; brushes read it and never mutate it
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s *scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithObjectBrush sets the brush that draws the scene's lit objects.
func WithObjectBrush(b brush.ObjectBrush) EngineBuilderOption {
	return func(e *engine) {
		e.objectBrush = b
	}
}

// WithLampBrush sets the brush that draws the scene's lamps.
func WithLampBrush(b brush.LampBrush) EngineBuilderOption {
	return func(e *engine) {
		e.lampBrush = b
	}
}

// WithController replaces the default free-fly camera controller.
func WithController(c camera.CameraController) EngineBuilderOption {
	return func(e *engine) {
		e.controller = c
	}
}

// WithCamera sets the camera. Defaults to a camera at (0, 0, 3) matching the viewport aspect.
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.ctx.Camera = c
	}
}

// WithViewport sets the initial viewport size in pixels.
//
// Parameters:
//   - width, height: the framebuffer size
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewport(width, height int) EngineBuilderOption {
	return func(e *engine) {
		if width > 0 && height > 0 {
			e.width, e.height = width, height
		}
	}
}

// WithClearColor sets the color each frame is cleared to. Defaults to opaque black.
func WithClearColor(c gpu.Color) EngineBuilderOption {
	return func(e *engine) {
		e.clearColor = c
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTranslator replaces the default event translator.
func WithTranslator(t *event.Translator) EngineBuilderOption {
	return func(e *engine) {
		e.translator = t
	}
}

// WithProfiler enables per-frame statistics in Run.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithFrameLimit sets an optional frame rate cap in frames per second for Run.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.frameLimit = 0
			return
		}
		e.frameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithUpdateCallback registers a function called every tick after the camera update and
// before drawing. Use it to animate scene data.
func WithUpdateCallback(fn func(ctx *Context)) EngineBuilderOption {
	return func(e *engine) {
		e.onUpdate = fn
	}
}
