// Package window owns the GLFW window and converts its callbacks into event.Event records.
package window

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-lit/engine/event"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is a platform window that doubles as the engine's event.Source.
// All methods must be called from the thread that created the window.
type Window interface {
	event.Source

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if the window is closed
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// FramebufferSize returns the drawable size in pixels, which differs from the window size
	// on high-DPI displays.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	FramebufferSize() (int, int)

	// IsRunning reports whether the window is open and has not been asked to close.
	IsRunning() bool

	// Close destroys the window and terminates GLFW.
	//
	// Returns:
	//   - error: error if the window was already closed
	Close() error
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	minWidth, minHeight int
	maxWidth, maxHeight int

	// width and height track the framebuffer size in pixels.
	width, height int

	captureCursor bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	mu sync.Mutex
	// pending holds events queued by callbacks since the last Poll.
	pending []event.Event
	// closeSent is set once a close request has been emitted.
	closeSent bool
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
//   - error: error if GLFW cannot be initialized or the window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:         "oxy-lit",
		minWidth:      320,
		minHeight:     200,
		maxWidth:      -1,
		maxHeight:     -1,
		width:         1280,
		height:        720,
		captureCursor: true,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// push queues an event for the next Poll. Safe to call from platform callbacks.
func (w *engineWindow) push(e event.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, e)
}

// drain returns the queued events and a close request if the window has been asked to close.
// The close request is emitted once.
func (w *engineWindow) drain(shouldClose bool) []event.Event {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := w.pending
	w.pending = nil
	if shouldClose && !w.closeSent {
		w.closeSent = true
		out = append(out, event.Close())
	}
	return out
}

func (w *engineWindow) Poll() []event.Event {
	shouldClose := platformProcessMessages(w)
	return w.drain(shouldClose)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) FramebufferSize() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}
