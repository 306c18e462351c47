package common

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Perspective creates a right-handed perspective projection matrix that maps view-space
// depth into the WebGPU clip range [0, 1] (mgl32.Perspective targets OpenGL's [-1, 1]).
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// ModelMatrix composes translation * rotation(axis, angle) * uniform scale.
// A zero axis is treated as no rotation.
//
// Parameters:
//   - position: translation in world space
//   - axis: rotation axis (need not be normalized)
//   - angle: rotation angle in radians
//   - scale: uniform scale factor
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func ModelMatrix(position, axis mgl32.Vec3, angle, scale float32) mgl32.Mat4 {
	m := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	if axis.Len() > 0 && angle != 0 {
		m = m.Mul4(mgl32.HomogRotate3D(angle, axis.Normalize()))
	}
	return m.Mul4(mgl32.Scale3D(scale, scale, scale))
}

// NormalMatrix returns the inverse-transpose of the model matrix, used to carry
// normals into world space under non-uniform scale. A singular model yields identity.
//
// Parameters:
//   - model: the model matrix
//
// Returns:
//   - mgl32.Mat4: the normal matrix
func NormalMatrix(model mgl32.Mat4) mgl32.Mat4 {
	if model.Det() == 0 {
		return mgl32.Ident4()
	}
	return model.Inv().Transpose()
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// PutMat4 writes a column-major matrix as 16 little-endian float32 values.
//
// Parameters:
//   - buf: destination slice (must be at least 64 bytes)
//   - m: the matrix to write
func PutMat4(buf []byte, m mgl32.Mat4) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
}

// PutVec4 writes xyz followed by w as four little-endian float32 values.
//
// Parameters:
//   - buf: destination slice (must be at least 16 bytes)
//   - v: the xyz components
//   - w: the fourth component
func PutVec4(buf []byte, v [3]float32, w float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(w))
}
