package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float32At(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
}

func TestPointLightsRejectsFifth(t *testing.T) {
	var lights PointLights
	for i := range MaxPointLights {
		require.NoError(t, lights.Add(NewPointLight(WithPosition(mgl32.Vec3{float32(i), 0, 0}))))
	}

	err := lights.Add(NewPointLight(WithPosition(mgl32.Vec3{99, 0, 0})))
	assert.ErrorIs(t, err, ErrTooManyPointLights)
	assert.Equal(t, MaxPointLights, lights.Len())
	for i, l := range lights.All() {
		assert.Equal(t, float32(i), l.Position.X())
	}
}

func TestNewPointLightsCapacity(t *testing.T) {
	five := make([]PointLight, 5)
	_, err := NewPointLights(five...)
	assert.ErrorIs(t, err, ErrTooManyPointLights)

	four, err := NewPointLights(five[:4]...)
	require.NoError(t, err)
	assert.Equal(t, 4, four.Len())
}

func TestPointLightsSetAndClear(t *testing.T) {
	lights, err := NewPointLights(NewPointLight())
	require.NoError(t, err)

	require.NoError(t, lights.Set(0, NewPointLight(WithPosition(mgl32.Vec3{1, 2, 3}))))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, lights.All()[0].Position)
	assert.Error(t, lights.Set(1, NewPointLight()))

	lights.Clear()
	assert.Zero(t, lights.Len())
	assert.NoError(t, lights.Add(NewPointLight()))
}

func TestAllReturnsCopy(t *testing.T) {
	lights, err := NewPointLights(NewPointLight())
	require.NoError(t, err)

	all := lights.All()
	all[0].Position = mgl32.Vec3{9, 9, 9}
	assert.Equal(t, mgl32.Vec3{}, lights.All()[0].Position)
}

func TestAttenuation(t *testing.T) {
	a := Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032}
	require.NoError(t, a.Validate())
	assert.InDelta(t, 1.0, a.At(0), 1e-6)
	assert.InDelta(t, 1.0/(1+0.9+3.2), a.At(10), 1e-6)

	assert.ErrorIs(t, Attenuation{}.Validate(), ErrInvalidAttenuation)
	assert.ErrorIs(t, Attenuation{Constant: 1, Linear: -1}.Validate(), ErrInvalidAttenuation)
}

func TestAttenuationForRange(t *testing.T) {
	assert.Equal(t, Attenuation{1, 0.09, 0.032}, AttenuationForRange(50))
	assert.Equal(t, Attenuation{1, 0.7, 1.8}, AttenuationForRange(1))
	assert.Equal(t, Attenuation{1, 0.0014, 0.000007}, AttenuationForRange(1e6))
}

func TestPhongFromColor(t *testing.T) {
	p := PhongFromColor(mgl32.Vec3{1, 1, 1}, 0.1, 0.5)
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 0.1}, p.Ambient)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, p.Diffuse)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, p.Specular)
}

func TestDirectionalLightNormalizedOnUpload(t *testing.T) {
	l := NewDirectionalLight(WithDirection(mgl32.Vec3{0, -3, 4}))
	assert.Equal(t, mgl32.Vec3{0, -3, 4}, l.Direction)

	g := NewGPUDirectionalLight(l)
	buf := g.Marshal()
	require.Len(t, buf, GPUDirectionalLightSize)
	assert.InDelta(t, 0, float32At(buf, 48), 1e-6)
	assert.InDelta(t, -0.6, float32At(buf, 52), 1e-6)
	assert.InDelta(t, 0.8, float32At(buf, 56), 1e-6)
	assert.Equal(t, float32(0), float32At(buf, 60))
}

func TestDirectionalLightZeroDirection(t *testing.T) {
	g := NewGPUDirectionalLight(DirectionalLight{})
	assert.Equal(t, [3]float32{0, -1, 0}, g.Direction)
}

func TestPointLightMarshalLayout(t *testing.T) {
	l := NewPointLight(
		WithPosition(mgl32.Vec3{1.2, 1, 2}),
		WithAttenuation(1, 0.09, 0.032),
	)
	g := NewGPUPointLight(l)
	buf := g.Marshal()

	require.Len(t, buf, GPUPointLightSize)
	assert.Equal(t, float32(1.2), float32At(buf, 48))
	assert.Equal(t, float32(1), float32At(buf, 60))
	assert.Equal(t, float32(1), float32At(buf, 64))
	assert.Equal(t, float32(0.09), float32At(buf, 68))
	assert.Equal(t, float32(0.032), float32At(buf, 72))
}

func TestGPUPointLightsZeroesUnusedSlots(t *testing.T) {
	g, err := NewGPUPointLights([]PointLight{NewPointLight(WithPosition(mgl32.Vec3{5, 5, 5}))})
	require.NoError(t, err)

	buf := g.Marshal()
	require.Len(t, buf, GPUPointLightsSize)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[0:4]))
	assert.Equal(t, float32(5), float32At(buf, 16+48))
	assert.Equal(t, make([]byte, 3*GPUPointLightSize), buf[16+GPUPointLightSize:])
}

func TestGPUPointLightsRejectsOverflow(t *testing.T) {
	_, err := NewGPUPointLights(make([]PointLight, MaxPointLights+1))
	assert.ErrorIs(t, err, ErrTooManyPointLights)
}
