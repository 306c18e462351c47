package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxPitch bounds the pitch angle in degrees. Looking straight up or down would make
	// front parallel to world-up and collapse the right vector.
	MaxPitch float32 = 89.0

	defaultYaw  float32 = -90.0
	defaultFov  float32 = 45.0
	defaultNear float32 = 0.1
	defaultFar  float32 = 100.0
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	worldUp  mgl32.Vec3

	yaw   float32
	pitch float32

	front mgl32.Vec3
	right mgl32.Vec3
	up    mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
}

// Camera defines the interface for a free-fly perspective camera.
// Orientation is held as yaw/pitch in degrees; the front, right and up basis vectors
// are re-derived and normalized whenever either angle changes.
// Matrices are column-major and use the WebGPU clip depth range [0, 1].
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// Front returns the unit view direction.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized front vector
	Front() mgl32.Vec3

	// Right returns the unit right vector (front x world-up).
	//
	// Returns:
	//   - mgl32.Vec3: the normalized right vector
	Right() mgl32.Vec3

	// Up returns the unit camera-local up vector (right x front).
	//
	// Returns:
	//   - mgl32.Vec3: the normalized up vector
	Up() mgl32.Vec3

	// WorldUp returns the world up direction the basis is derived against.
	//
	// Returns:
	//   - mgl32.Vec3: the world up vector
	WorldUp() mgl32.Vec3

	// Yaw returns the yaw angle in degrees. -90 faces -Z.
	Yaw() float32

	// Pitch returns the pitch angle in degrees, always within [-MaxPitch, MaxPitch].
	Pitch() float32

	// Fov returns the vertical field of view in degrees.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns look-at(position, position+front, up).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns perspective(fov, aspect, near, far).
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// SetPosition moves the camera to an absolute position.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)

	// Translate moves the camera by a world-space offset.
	//
	// Parameters:
	//   - delta: the offset to add to the position
	Translate(delta mgl32.Vec3)

	// Rotate adds to yaw and pitch (degrees), wraps yaw into [0, 360), clamps pitch and
	// rebuilds the basis.
	//
	// Parameters:
	//   - dYaw: yaw change in degrees
	//   - dPitch: pitch change in degrees
	Rotate(dYaw, dPitch float32)

	// SetOrientation sets yaw and pitch (degrees), clamps pitch and rebuilds the basis.
	//
	// Parameters:
	//   - yaw: yaw in degrees
	//   - pitch: pitch in degrees
	SetOrientation(yaw, pitch float32)

	// SetFov sets the vertical field of view in degrees. Values outside (0, 180) or
	// non-finite values are ignored.
	//
	// Parameters:
	//   - fov: field of view in degrees
	SetFov(fov float32)

	// SetAspect sets the aspect ratio. Non-positive values are ignored.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the origin facing -Z with +Y world up,
// a 45 degree field of view, 1:1 aspect and clip planes at 0.1 and 100.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:      &sync.Mutex{},
		worldUp: mgl32.Vec3{0, 1, 0},
		yaw:     defaultYaw,
		fov:     defaultFov,
		aspect:  1.0,
		near:    defaultNear,
		far:     defaultFar,
	}
	for _, option := range options {
		option(c)
	}
	c.pitch = clampPitch(c.pitch)
	c.updateVectors()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Front() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.front
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.right
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) WorldUp() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.worldUp
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix.Mul4(c.viewMatrix)
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) Translate(delta mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = c.position.Add(delta)
	c.updateMatrices()
}

func (c *cameraImpl) Rotate(dYaw, dPitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw = wrapYaw(c.yaw + dYaw)
	c.pitch = clampPitch(c.pitch + dPitch)
	c.updateVectors()
}

func (c *cameraImpl) SetOrientation(yaw, pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw = yaw
	c.pitch = clampPitch(pitch)
	c.updateVectors()
}

func (c *cameraImpl) SetFov(fov float32) {
	if !common.IsFinite(fov) || fov <= 0 || fov >= 180 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if !common.IsFinite(aspect) || aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

// wrapYaw maps yaw into [0, 360).
func wrapYaw(yaw float32) float32 {
	yaw = math32.Mod(yaw, 360)
	if yaw < 0 {
		yaw += 360
	}
	if yaw >= 360 {
		yaw = 0
	}
	return yaw
}

// updateVectors re-derives front, right and up from yaw and pitch, then the matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)

	c.front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()

	c.updateMatrices()
}

// updateMatrices recalculates the view and projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
	c.projectionMatrix = common.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -MaxPitch, MaxPitch)
}
