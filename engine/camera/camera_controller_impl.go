package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	defaultSpeed       float32 = 2.5
	defaultSensitivity float32 = 0.1
	defaultMinFov      float32 = 1.0
	defaultMaxFov      float32 = 45.0
)

// cameraControllerImpl is the free-fly implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	speed       float32
	sensitivity float32

	minFov float32
	maxFov float32

	bindings KeyBindings
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewController creates a free-fly controller moving at 2.5 units per second with a
// sensitivity of 0.1 degrees per pixel and a 1 to 45 degree zoom range.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:          &sync.Mutex{},
		speed:       defaultSpeed,
		sensitivity: defaultSensitivity,
		minFov:      defaultMinFov,
		maxFov:      defaultMaxFov,
		bindings:    DefaultKeyBindings(),
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Update(cam Camera, state *input.State, dt float32) {
	cc.mu.Lock()
	speed, sensitivity := cc.speed, cc.sensitivity
	minFov, maxFov := cc.minFov, cc.maxFov
	bindings := cc.bindings
	cc.mu.Unlock()

	if dx, dy := state.ConsumeMouseDelta(); dx != 0 || dy != 0 {
		cam.Rotate(float32(dx)*sensitivity, -float32(dy)*sensitivity)
	}

	if common.IsFinite(dt) && dt > 0 {
		if dir := movementAxis(cam, state, bindings); dir != (mgl32.Vec3{}) {
			cam.Translate(dir.Mul(speed * dt))
		}
	}

	if scroll := float32(state.ConsumeScroll()); scroll != 0 && common.IsFinite(scroll) {
		cam.SetFov(mgl32.Clamp(cam.Fov()-scroll, minFov, maxFov))
	}
}

// movementAxis sums the camera-local unit axes of every held direction.
func movementAxis(cam Camera, state *input.State, b KeyBindings) mgl32.Vec3 {
	var dir mgl32.Vec3
	front, right, up := cam.Front(), cam.Right(), cam.Up()
	if state.IsPressed(b.Forward) {
		dir = dir.Add(front)
	}
	if state.IsPressed(b.Backward) {
		dir = dir.Sub(front)
	}
	if state.IsPressed(b.Left) {
		dir = dir.Sub(right)
	}
	if state.IsPressed(b.Right) {
		dir = dir.Add(right)
	}
	if state.IsPressed(b.Up) {
		dir = dir.Add(up)
	}
	if state.IsPressed(b.Down) {
		dir = dir.Sub(up)
	}
	return dir
}

func (cc *cameraControllerImpl) Speed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.speed
}

func (cc *cameraControllerImpl) Sensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.sensitivity
}

func (cc *cameraControllerImpl) ZoomRange() (float32, float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minFov, cc.maxFov
}

func (cc *cameraControllerImpl) Bindings() KeyBindings {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.bindings
}

func (cc *cameraControllerImpl) SetSpeed(speed float32) {
	if speed <= 0 {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.speed = speed
}

func (cc *cameraControllerImpl) SetSensitivity(sensitivity float32) {
	if sensitivity <= 0 {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.sensitivity = sensitivity
}
