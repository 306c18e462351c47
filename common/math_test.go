package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPerspectiveMapsNearAndFarToZeroOne(t *testing.T) {
	near, far := float32(0.1), float32(100)
	p := Perspective(mgl32.DegToRad(45), 1, near, far)

	onNear := p.Mul4x1(mgl32.Vec4{0, 0, -near, 1})
	onFar := p.Mul4x1(mgl32.Vec4{0, 0, -far, 1})

	assert.InDelta(t, 0, onNear.Z()/onNear.W(), 1e-5)
	assert.InDelta(t, 1, onFar.Z()/onFar.W(), 1e-5)
}

func TestModelMatrixTranslatesAndScales(t *testing.T) {
	m := ModelMatrix(mgl32.Vec3{1.2, 1, 2}, mgl32.Vec3{}, 0, 0.2)
	p := m.Mul4x1(mgl32.Vec4{1, 1, 1, 1})

	assert.InDelta(t, 1.4, p.X(), 1e-5)
	assert.InDelta(t, 1.2, p.Y(), 1e-5)
	assert.InDelta(t, 2.2, p.Z(), 1e-5)
}

func TestNormalMatrixOfRotationIsRotation(t *testing.T) {
	m := ModelMatrix(mgl32.Vec3{3, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.DegToRad(90), 1)
	n := NormalMatrix(m)
	rotated := n.Mul4x1(mgl32.Vec4{1, 0, 0, 0})

	assert.InDelta(t, 0, rotated.X(), 1e-5)
	assert.InDelta(t, -1, rotated.Z(), 1e-5)
}

func TestNormalMatrixSingularFallsBackToIdentity(t *testing.T) {
	assert.Equal(t, mgl32.Ident4(), NormalMatrix(mgl32.Mat4{}))
}

func TestPutMat4WritesColumnMajor(t *testing.T) {
	buf := make([]byte, 64)
	PutMat4(buf, mgl32.Translate3D(1, 2, 3))

	// column 3 starts at float index 12
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, buf[48:52])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x40}, buf[52:56])
}

func TestIsFinite(t *testing.T) {
	var zero float32
	assert.True(t, IsFinite(1.5))
	assert.False(t, IsFinite(zero/zero))
	assert.False(t, IsFinite(1/zero))
}
