package camera

import "github.com/Carmen-Shannon/oxy-lit/engine/input"

// CameraController drives a Camera from per-frame input state.
//
// Each Update applies, in this order: look (mouse delta to yaw/pitch), movement
// (held keys along the freshly rotated basis) and zoom (scroll to field of view).
// Look runs first so that a frame's movement follows the orientation the user sees
// that frame. Diagonal movement is the plain sum of the held axes and is not
// re-normalized, so holding forward and strafe moves about 1.41x faster.
type CameraController interface {
	// Update consumes the frame's mouse delta and scroll from state and mutates cam.
	// A negative, NaN or infinite dt produces no movement; look and zoom still apply.
	//
	// Parameters:
	//   - cam: the camera to mutate
	//   - state: the frame's input state
	//   - dt: elapsed time since the previous frame, in seconds
	Update(cam Camera, state *input.State, dt float32)

	// Speed returns the movement speed in world units per second.
	Speed() float32

	// Sensitivity returns the degrees of rotation per pixel of mouse movement.
	Sensitivity() float32

	// ZoomRange returns the field of view bounds in degrees.
	//
	// Returns:
	//   - minFov: the narrowest field of view
	//   - maxFov: the widest field of view
	ZoomRange() (minFov, maxFov float32)

	// Bindings returns the movement key bindings.
	Bindings() KeyBindings

	// SetSpeed sets the movement speed. Non-positive values are ignored.
	//
	// Parameters:
	//   - speed: world units per second
	SetSpeed(speed float32)

	// SetSensitivity sets the mouse sensitivity. Non-positive values are ignored.
	//
	// Parameters:
	//   - sensitivity: degrees per pixel
	SetSensitivity(sensitivity float32)
}
