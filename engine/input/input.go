// Package input holds the per-frame input and window state that the event translator
// writes and the camera controller and frame driver read.
package input

import "github.com/Carmen-Shannon/oxy-lit/common"

// State aggregates keyboard, pointer, scroll, focus and viewport state for one window.
// It performs no I/O and is not safe for concurrent use; the frame loop owns it.
type State struct {
	keys map[common.KeyCode]bool

	mouseX, mouseY float64
	deltaX, deltaY float64
	firstMouse     bool

	scroll float64

	focused bool

	width, height int
	resized       bool

	running bool
}

// NewState creates a running State for a viewport of the given size.
// The first pointer sample never produces a delta.
//
// Parameters:
//   - width: initial viewport width in pixels
//   - height: initial viewport height in pixels
//
// Returns:
//   - *State: the new state
func NewState(width, height int) *State {
	return &State{
		keys:       make(map[common.KeyCode]bool),
		firstMouse: true,
		width:      width,
		height:     height,
		running:    true,
	}
}

// UpdateKey records the pressed state of a key. The last write wins.
func (s *State) UpdateKey(code common.KeyCode, pressed bool) {
	s.keys[code] = pressed
}

// IsPressed reports whether the key is currently held.
func (s *State) IsPressed(code common.KeyCode) bool {
	return s.keys[code]
}

// UpdateMousePos records an absolute pointer position and accumulates the delta
// against the previous sample. When the first-sample flag is set the position is
// recorded without a delta and the flag clears.
//
// Parameters:
//   - x, y: pointer position in window coordinates
func (s *State) UpdateMousePos(x, y float64) {
	if s.firstMouse {
		s.firstMouse = false
	} else {
		s.deltaX += x - s.mouseX
		s.deltaY += y - s.mouseY
	}
	s.mouseX, s.mouseY = x, y
}

// MousePosition returns the last reported pointer position.
func (s *State) MousePosition() (float64, float64) {
	return s.mouseX, s.mouseY
}

// ConsumeMouseDelta returns the pointer movement accumulated since the last call and resets it.
func (s *State) ConsumeMouseDelta() (dx, dy float64) {
	dx, dy = s.deltaX, s.deltaY
	s.deltaX, s.deltaY = 0, 0
	return dx, dy
}

// UpdateScroll accumulates a vertical scroll delta for the current frame.
func (s *State) UpdateScroll(dy float64) {
	s.scroll += dy
}

// ConsumeScroll returns the scroll accumulated since the last call and resets it.
func (s *State) ConsumeScroll() float64 {
	v := s.scroll
	s.scroll = 0
	return v
}

// MarkFocused records that the window gained focus. The next pointer sample re-seeds
// the previous position instead of producing a jump.
func (s *State) MarkFocused() {
	s.focused = true
	s.firstMouse = true
}

// SetUnfocused records that the window lost focus. Held keys are released since
// their release events go to another window.
func (s *State) SetUnfocused() {
	s.focused = false
	clear(s.keys)
}

// Focused reports whether the window currently has focus.
func (s *State) Focused() bool {
	return s.focused
}

// MarkMouseEntered records that the pointer entered the window.
func (s *State) MarkMouseEntered() {
	s.firstMouse = true
}

// Resize stores the new viewport size and raises the resize signal for the frame driver.
func (s *State) Resize(width, height int) {
	s.width, s.height = width, height
	s.resized = true
}

// Viewport returns the current viewport size in pixels.
func (s *State) Viewport() (int, int) {
	return s.width, s.height
}

// TakeResize returns the pending viewport size and clears the resize signal.
//
// Returns:
//   - int, int: the viewport size
//   - bool: false when no resize happened since the last call
func (s *State) TakeResize() (int, int, bool) {
	if !s.resized {
		return s.width, s.height, false
	}
	s.resized = false
	return s.width, s.height, true
}

// Stop clears the running flag. The frame driver observes it at the top of its next tick.
func (s *State) Stop() {
	s.running = false
}

// Running reports whether the loop should keep going.
func (s *State) Running() bool {
	return s.running
}
