// Command oxy-lit opens a window and renders the lit demo scene: ten textured cubes, one
// directional light, four point lights and their lamp cubes, explored with a free-fly camera.
//
// Controls: WASD to move, Space/Left Shift to rise and sink, mouse to look, scroll to zoom,
// Escape to quit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine"
	"github.com/Carmen-Shannon/oxy-lit/engine/brush"
	"github.com/Carmen-Shannon/oxy-lit/engine/camera"
	"github.com/Carmen-Shannon/oxy-lit/engine/config"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/Carmen-Shannon/oxy-lit/engine/material"
	"github.com/Carmen-Shannon/oxy-lit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-lit/engine/renderer"
	"github.com/Carmen-Shannon/oxy-lit/engine/scene"
	"github.com/Carmen-Shannon/oxy-lit/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"github.com/xlab/closer"
)

func init() {
	// GLFW and the WebGPU surface must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	fs := pflag.NewFlagSet("oxy-lit", pflag.ExitOnError)
	flags := config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := flags.Resolve()
	if err != nil {
		fatal(err)
	}
	logger := newLogger(flags, cfg)
	slog.SetDefault(logger)

	// On a signal, closer cancels the loop and waits for the main thread to tear down.
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	closer.Bind(func() {
		cancel()
		<-done
	})

	err = run(ctx, cfg, logger)
	close(done)
	if err != nil {
		fatal(err)
	}
	closer.Close()
}

func newLogger(flags *config.Flags, cfg config.Config) *slog.Logger {
	level := common.LevelFromFlags(flags.Debug, flags.Verbose, flags.Quiet)
	if !flags.Debug && !flags.Verbose && !flags.Quiet {
		// Validate already rejected unknown names.
		level, _ = common.ParseLevel(cfg.LogLevel)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func fatal(err error) {
	out := termenv.NewOutput(os.Stderr)
	fmt.Fprintln(os.Stderr, out.String("oxy-lit:").Bold().Foreground(out.Color("1")).String(), err)
	closer.Exit(1)
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	mode, ok := renderer.ParsePresentMode(cfg.Window.PresentMode)
	if !ok {
		return fmt.Errorf("%w: present_mode %q (want vsync or uncapped)", config.ErrInvalid, cfg.Window.PresentMode)
	}
	bg, err := cfg.Scene.ClearRGBA()
	if err != nil {
		return err
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}
	defer win.Close()
	width, height := win.FramebufferSize()

	rendererOptions := []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithLogger(logger),
	}
	if cfg.Window.MSAA {
		rendererOptions = append(rendererOptions, renderer.WithMSAA(renderer.MSAA4x))
	}
	rend, err := renderer.NewRenderer(win.SurfaceDescriptor(), width, height, rendererOptions...)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer rend.Destroy()

	arena := material.NewArena(rend)
	defer arena.Release()
	handles, err := material.NewLoader(rend, material.WithLogger(logger)).Load(ctx, arena, []material.Spec{{
		Name:         "container",
		DiffusePath:  cfg.Scene.DiffuseTexture,
		SpecularPath: cfg.Scene.SpecularTexture,
		Shininess:    cfg.Scene.Shininess,
	}})
	if err != nil {
		return err
	}

	cube, err := scene.NewCubeMesh(rend)
	if err != nil {
		return err
	}
	defer rend.Release(cube)
	demo, err := scene.DemoScene(cube, handles[0])
	if err != nil {
		return err
	}

	objects, err := brush.NewObjectBrush(rend, arena)
	if err != nil {
		return err
	}
	defer objects.Release()
	lamps, err := brush.NewLampBrush(rend)
	if err != nil {
		return err
	}
	defer lamps.Release()

	pos := cfg.Camera.Position
	cam := camera.NewCamera(
		camera.WithPosition(mgl32.Vec3{pos[0], pos[1], pos[2]}),
		camera.WithViewport(width, height),
		camera.WithFov(cfg.Camera.Fov),
	)
	eng, err := engine.NewEngine(win, rend,
		engine.WithScene(demo),
		engine.WithObjectBrush(objects),
		engine.WithLampBrush(lamps),
		engine.WithCamera(cam),
		engine.WithController(camera.NewController(
			camera.WithSpeed(cfg.Camera.Speed),
			camera.WithSensitivity(cfg.Camera.Sensitivity),
		)),
		engine.WithViewport(width, height),
		engine.WithClearColor(gpu.Color{R: bg[0], G: bg[1], B: bg[2], A: bg[3]}),
		engine.WithFrameLimit(cfg.Window.FrameLimit),
		engine.WithLogger(logger),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithLogger(logger))),
	)
	if err != nil {
		return err
	}

	logger.Info("running", "objects", len(demo.Objects), "lamps", len(demo.Lamps), "width", width, "height", height)
	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
