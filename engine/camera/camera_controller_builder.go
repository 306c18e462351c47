package camera

import "github.com/Carmen-Shannon/oxy-lit/common"

// KeyBindings maps each movement direction to a key.
type KeyBindings struct {
	Forward  common.KeyCode
	Backward common.KeyCode
	Left     common.KeyCode
	Right    common.KeyCode
	Up       common.KeyCode
	Down     common.KeyCode
}

// DefaultKeyBindings returns WASD for planar movement, Space for up and Left Shift for down.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Forward:  common.KeyW,
		Backward: common.KeyS,
		Left:     common.KeyA,
		Right:    common.KeyD,
		Up:       common.KeySpace,
		Down:     common.KeyLeftShift,
	}
}

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithSpeed sets the movement speed in world units per second.
//
// Parameters:
//   - speed: movement speed
//
// Returns:
//   - CameraControllerOption: functional option to set the speed
func WithSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if speed > 0 {
			cc.speed = speed
		}
	}
}

// WithSensitivity sets the mouse sensitivity in degrees per pixel.
//
// Parameters:
//   - sensitivity: degrees of rotation per pixel
//
// Returns:
//   - CameraControllerOption: functional option to set the sensitivity
func WithSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if sensitivity > 0 {
			cc.sensitivity = sensitivity
		}
	}
}

// WithZoomRange sets the field of view bounds in degrees. Ranges that are empty or
// fall outside (0, 180) are ignored.
//
// Parameters:
//   - minFov: narrowest field of view
//   - maxFov: widest field of view
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom range
func WithZoomRange(minFov, maxFov float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if minFov > 0 && maxFov < 180 && minFov <= maxFov {
			cc.minFov = minFov
			cc.maxFov = maxFov
		}
	}
}

// WithKeyBindings replaces the movement key bindings.
//
// Parameters:
//   - bindings: the key for each direction
//
// Returns:
//   - CameraControllerOption: functional option to set the bindings
func WithKeyBindings(bindings KeyBindings) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.bindings = bindings
	}
}
