// Package renderer implements the gpu backend contract on WebGPU.
package renderer

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer is a WebGPU device bound to one window surface.
//
// Every gpu.Backend draw is encoded as its own render pass and submitted immediately, so a
// uniform write issued after a draw can never be observed by that draw. BeginFrame clears the
// surface and depth attachment; Present shows the frame and releases the surface texture.
type Renderer interface {
	gpu.Device

	// SetPresentMode changes how frames are delivered. It takes effect at the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Viewport returns the configured surface size in pixels.
	Viewport() (int, int)

	// Destroy frees every resource still alive, the depth attachment, the device and the surface.
	Destroy()
}

// renderer holds the pre-creation configuration collected from builder options.
type renderer struct {
	logger               *slog.Logger
	presentMode          PresentMode
	sampleCount          MSAASampleCount
	clearDepth           float32
	forceFallbackAdapter bool
}

// NewRenderer creates the WebGPU instance, adapter, device and surface for a window and
// configures the surface at the given size. It must be called on the thread that owns the window.
//
// Parameters:
//   - surfaceDescriptor: the platform surface, e.g. from window.Window.SurfaceDescriptor
//   - width, height: the initial framebuffer size in pixels
//   - options: functional options
//
// Returns:
//   - Renderer: the renderer
//   - error: error if no adapter or device is available or the surface cannot be configured
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		logger:      slog.Default(),
		presentMode: PresentModeVSync,
		sampleCount: MSAAOff,
		clearDepth:  1.0,
	}
	for _, option := range options {
		option(r)
	}
	return newWGPURendererBackend(surfaceDescriptor, width, height, r)
}
