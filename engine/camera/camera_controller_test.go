package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func newFlyCamera() Camera {
	return NewCamera(WithPosition(mgl32.Vec3{0, 0, 3}), WithWorldUp(mgl32.Vec3{0, 1, 0}))
}

func TestForwardMovementIsExact(t *testing.T) {
	cam := newFlyCamera()
	ctrl := NewController()
	state := input.NewState(800, 600)
	state.UpdateKey(common.KeyW, true)

	ctrl.Update(cam, state, 1)

	p := cam.Position()
	assert.InDelta(t, 0, p.X(), eps)
	assert.InDelta(t, 0, p.Y(), eps)
	assert.InDelta(t, 0.5, p.Z(), eps)
}

func TestOpposingKeysCancel(t *testing.T) {
	cam := newFlyCamera()
	ctrl := NewController()
	state := input.NewState(800, 600)
	state.UpdateKey(common.KeyW, true)
	state.UpdateKey(common.KeyS, true)
	state.UpdateKey(common.KeyA, true)
	state.UpdateKey(common.KeyD, true)

	ctrl.Update(cam, state, 1)

	assert.Equal(t, mgl32.Vec3{0, 0, 3}, cam.Position())
}

func TestDiagonalMovementIsNotRenormalized(t *testing.T) {
	cam := newFlyCamera()
	ctrl := NewController()
	state := input.NewState(800, 600)
	state.UpdateKey(common.KeyW, true)
	state.UpdateKey(common.KeyD, true)

	ctrl.Update(cam, state, 1)

	p := cam.Position()
	assert.InDelta(t, 2.5, p.X(), eps)
	assert.InDelta(t, 0.5, p.Z(), eps)
}

func TestVerticalMovementFollowsCameraUp(t *testing.T) {
	cam := newFlyCamera()
	cam.SetOrientation(-90, 45)
	up := cam.Up()
	ctrl := NewController()
	state := input.NewState(800, 600)
	state.UpdateKey(common.KeySpace, true)

	ctrl.Update(cam, state, 1)

	moved := cam.Position().Sub(mgl32.Vec3{0, 0, 3})
	want := up.Mul(2.5)
	assert.InDelta(t, want.X(), moved.X(), eps)
	assert.InDelta(t, want.Y(), moved.Y(), eps)
	assert.InDelta(t, want.Z(), moved.Z(), eps)
	assert.InDelta(t, 1.767767, moved.Y(), 1e-4)
	assert.InDelta(t, 1.767767, moved.Z(), 1e-4)

	state.UpdateKey(common.KeySpace, false)
	state.UpdateKey(common.KeyLeftShift, true)
	ctrl.Update(cam, state, 1)

	p := cam.Position()
	assert.InDelta(t, 0, p.Y(), eps)
	assert.InDelta(t, 3, p.Z(), eps)
}

func TestMalformedDtMeansNoMovement(t *testing.T) {
	var zero float32
	for _, dt := range []float32{-1, zero / zero, 1 / zero} {
		cam := newFlyCamera()
		state := input.NewState(800, 600)
		state.UpdateKey(common.KeyW, true)

		NewController().Update(cam, state, dt)

		assert.Equal(t, mgl32.Vec3{0, 0, 3}, cam.Position(), "dt %v", dt)
	}
}

func TestLookAppliesSensitivityAndInvertsY(t *testing.T) {
	cam := newFlyCamera()
	state := input.NewState(800, 600)
	state.UpdateMousePos(100, 100)
	state.UpdateMousePos(150, 120)

	NewController().Update(cam, state, 0)

	assert.InDelta(t, 275, cam.Yaw(), eps)
	assert.InDelta(t, -2, cam.Pitch(), eps)

	dx, dy := state.ConsumeMouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestLookPitchClampsAtBoundary(t *testing.T) {
	cam := newFlyCamera()
	ctrl := NewController()
	state := input.NewState(800, 600)
	state.UpdateMousePos(0, 5000)

	y := 5000.0
	for range 10 {
		y -= 400
		state.UpdateMousePos(0, y)
		ctrl.Update(cam, state, 0)
	}

	assert.Equal(t, MaxPitch, cam.Pitch())
}

func TestLookAppliesBeforeMovement(t *testing.T) {
	cam := newFlyCamera()
	state := input.NewState(800, 600)
	state.UpdateMousePos(0, 0)
	state.UpdateMousePos(900, 0) // +90 degrees of yaw: now facing +X
	state.UpdateKey(common.KeyW, true)

	NewController().Update(cam, state, 1)

	p := cam.Position()
	assert.InDelta(t, 2.5, p.X(), eps)
	assert.InDelta(t, 3, p.Z(), eps)
}

func TestZoomClampsAndIsMonotonic(t *testing.T) {
	cam := newFlyCamera()
	ctrl := NewController()
	state := input.NewState(800, 600)

	prev := cam.Fov()
	for range 10 {
		state.UpdateScroll(2)
		ctrl.Update(cam, state, 0)
		assert.Less(t, cam.Fov(), prev)
		prev = cam.Fov()
	}

	state.UpdateScroll(500)
	ctrl.Update(cam, state, 0)
	assert.Equal(t, float32(1), cam.Fov())

	state.UpdateScroll(3)
	ctrl.Update(cam, state, 0)
	assert.Equal(t, float32(1), cam.Fov())

	state.UpdateScroll(-5)
	ctrl.Update(cam, state, 0)
	assert.Equal(t, float32(6), cam.Fov())

	state.UpdateScroll(-500)
	ctrl.Update(cam, state, 0)
	assert.Equal(t, float32(45), cam.Fov())
}

func TestControllerOptions(t *testing.T) {
	bindings := DefaultKeyBindings()
	bindings.Forward = common.KeyUp

	ctrl := NewController(
		WithSpeed(5),
		WithSensitivity(0.2),
		WithZoomRange(10, 60),
		WithKeyBindings(bindings),
	)

	assert.Equal(t, float32(5), ctrl.Speed())
	assert.Equal(t, float32(0.2), ctrl.Sensitivity())
	minFov, maxFov := ctrl.ZoomRange()
	assert.Equal(t, float32(10), minFov)
	assert.Equal(t, float32(60), maxFov)
	assert.Equal(t, common.KeyUp, ctrl.Bindings().Forward)

	ctrl.SetSpeed(-1)
	assert.Equal(t, float32(5), ctrl.Speed())
}
