package scene

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-lit/engine/light"
	"github.com/Carmen-Shannon/oxy-lit/engine/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeVertices(t *testing.T) {
	vertices := CubeVertices()
	require.Len(t, vertices, CubeVertexCount)

	for i := 0; i < len(vertices); i += 3 {
		a := mgl32.Vec3(vertices[i].Position)
		b := mgl32.Vec3(vertices[i+1].Position)
		c := mgl32.Vec3(vertices[i+2].Position)
		n := mgl32.Vec3(vertices[i].Normal)

		// counter-clockwise seen from outside
		assert.InDelta(t, 1, b.Sub(a).Cross(c.Sub(a)).Normalize().Dot(n), 1e-6, "triangle %d", i/3)
		for _, v := range vertices[i : i+3] {
			assert.Greater(t, mgl32.Vec3(v.Position).Dot(n), float32(0))
			assert.GreaterOrEqual(t, v.TexCoord[0], float32(0))
			assert.LessOrEqual(t, v.TexCoord[1], float32(1))
		}
	}
}

func TestMarshalVertices(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{0.5, 0.25}}
	assert.Equal(t, GPUVertexSize, v.Size())

	buf := MarshalVertices([]GPUVertex{{}, v})
	require.Len(t, buf, 2*GPUVertexSize)
	second := buf[GPUVertexSize:]
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(second[8:12])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(second[28:32])))
	assert.Equal(t, v.Marshal(), second)

	assert.Equal(t, uint64(GPUVertexSize), VertexLayout().Stride)
}

func TestNewCubeMesh(t *testing.T) {
	r := gputest.NewRecorder()
	h, err := NewCubeMesh(r)
	require.NoError(t, err)
	assert.Equal(t, gpu.KindMesh, h.Kind())
	assert.Equal(t, 1, r.Count(gputest.OpCreateVertexBuffer))
}

func TestDemoScene(t *testing.T) {
	r := gputest.NewRecorder()
	mesh, err := NewCubeMesh(r)
	require.NoError(t, err)
	tex, err := r.CreateTexture("crate", common.SolidTexture(1, 1, [4]byte{255, 255, 255, 255}))
	require.NoError(t, err)
	arena := material.NewArena(r)
	mat, err := arena.Add(material.Material{Name: "crate", Diffuse: tex, Specular: tex, Shininess: 32})
	require.NoError(t, err)

	s, err := DemoScene(mesh, mat)
	require.NoError(t, err)

	require.Len(t, s.Objects, len(DemoCubePositions))
	assert.Equal(t, light.MaxPointLights, s.PointLights.Len())
	require.Len(t, s.Lamps, light.MaxPointLights)
	assert.Equal(t, mgl32.Vec3{-0.2, -1.0, -0.3}, s.DirLight.Direction)

	for i, obj := range s.Objects {
		assert.Equal(t, mat, obj.Material)
		assert.True(t, obj.Model.Col(3).Vec3().ApproxEqual(DemoCubePositions[i]), "object %d", i)
	}
	assert.True(t, s.Objects[0].Model.ApproxEqual(mgl32.Ident4()))

	for i, l := range s.PointLights.All() {
		assert.Equal(t, light.Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032}, l.Attenuation)
		lamp := s.Lamps[i]
		assert.Equal(t, l.Position, lamp.Model.Col(3).Vec3())
		assert.InDelta(t, DemoLampScale, lamp.Model.At(0, 0), 1e-6)
		assert.Equal(t, mesh, lamp.Mesh)
	}
}

func TestScenePointLightCapacity(t *testing.T) {
	s, err := NewScene()
	require.NoError(t, err)
	for i := 0; i < light.MaxPointLights; i++ {
		require.NoError(t, s.AddPointLight(light.NewPointLight(), gpu.Handle{}, 1))
	}
	assert.ErrorIs(t, s.AddPointLight(light.NewPointLight(), gpu.Handle{}, 1), light.ErrTooManyPointLights)
	assert.Equal(t, light.MaxPointLights, s.PointLights.Len())
	assert.Empty(t, s.Lamps)

	_, err = NewScene(
		WithPointLight(light.NewPointLight(), gpu.Handle{}, 1),
		WithPointLight(light.NewPointLight(), gpu.Handle{}, 1),
		WithPointLight(light.NewPointLight(), gpu.Handle{}, 1),
		WithPointLight(light.NewPointLight(), gpu.Handle{}, 1),
		WithPointLight(light.NewPointLight(), gpu.Handle{}, 1),
	)
	assert.ErrorIs(t, err, light.ErrTooManyPointLights)
}
