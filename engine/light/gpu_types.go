package light

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPULightsSource is the canonical WGSL definition of the DirLight, PointLight and
// PointLights structs. Matches the layouts below exactly (uniform address space).
// The point-light array is sized by MaxPointLightsConstant, which the including shader
// must define as MaxPointLights.
//
//go:embed assets/lights.wgsl
var GPULightsSource string

// MaxPointLightsConstant is the WGSL constant GPULightsSource sizes its point-light array by.
const MaxPointLightsConstant = "MAX_POINT_LIGHTS"

// GPUDirectionalLightSize is the size in bytes of a marshaled GPUDirectionalLight.
const GPUDirectionalLightSize = 64

// GPUPointLightSize is the size in bytes of a marshaled GPUPointLight.
const GPUPointLightSize = 80

// GPUPointLightsSize is the size in bytes of a marshaled GPUPointLights: a 16-byte
// count header followed by MaxPointLights slots.
const GPUPointLightsSize = 16 + MaxPointLights*GPUPointLightSize

// defaultDirection replaces a zero direction, which has no normalized form.
var defaultDirection = mgl32.Vec3{0, -1, 0}

// GPUDirectionalLight is the GPU-aligned representation of a DirectionalLight.
// Size: 64 bytes.
type GPUDirectionalLight struct {
	Ambient   [3]float32 // offset  0 (w = 0)
	Diffuse   [3]float32 // offset 16 (w = 0)
	Specular  [3]float32 // offset 32 (w = 0)
	Direction [3]float32 // offset 48: normalized, w = 0
}

// NewGPUDirectionalLight converts a DirectionalLight, normalizing its direction.
// A zero direction becomes straight down.
//
// Parameters:
//   - l: the light
//
// Returns:
//   - GPUDirectionalLight: the GPU record
func NewGPUDirectionalLight(l DirectionalLight) GPUDirectionalLight {
	dir := l.Direction
	if dir.Len() == 0 {
		dir = defaultDirection
	}
	return GPUDirectionalLight{
		Ambient:   l.Ambient,
		Diffuse:   l.Diffuse,
		Specular:  l.Specular,
		Direction: dir.Normalize(),
	}
}

// Size returns the size of the GPUDirectionalLight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUDirectionalLight) Size() int {
	return GPUDirectionalLightSize
}

// Marshal serializes the GPUDirectionalLight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPUDirectionalLight) Marshal() []byte {
	buf := make([]byte, GPUDirectionalLightSize)
	common.PutVec4(buf[0:16], g.Ambient, 0)
	common.PutVec4(buf[16:32], g.Diffuse, 0)
	common.PutVec4(buf[32:48], g.Specular, 0)
	common.PutVec4(buf[48:64], g.Direction, 0)
	return buf
}

// GPUPointLight is the GPU-aligned representation of a PointLight.
// Size: 80 bytes.
type GPUPointLight struct {
	Ambient   [3]float32 // offset  0 (w = 0)
	Diffuse   [3]float32 // offset 16 (w = 0)
	Specular  [3]float32 // offset 32 (w = 0)
	Position  [3]float32 // offset 48: w = 1
	Constant  float32    // offset 64: a0
	Linear    float32    // offset 68: a1
	Quadratic float32    // offset 72: a2
	_pad      float32    // offset 76
}

// NewGPUPointLight converts a PointLight.
func NewGPUPointLight(l PointLight) GPUPointLight {
	return GPUPointLight{
		Ambient:   l.Ambient,
		Diffuse:   l.Diffuse,
		Specular:  l.Specular,
		Position:  l.Position,
		Constant:  l.Attenuation.Constant,
		Linear:    l.Attenuation.Linear,
		Quadratic: l.Attenuation.Quadratic,
	}
}

// Size returns the size of the GPUPointLight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUPointLight) Size() int {
	return GPUPointLightSize
}

// Marshal serializes the GPUPointLight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (g *GPUPointLight) Marshal() []byte {
	buf := make([]byte, GPUPointLightSize)
	g.marshalInto(buf)
	return buf
}

func (g *GPUPointLight) marshalInto(buf []byte) {
	common.PutVec4(buf[0:16], g.Ambient, 0)
	common.PutVec4(buf[16:32], g.Diffuse, 0)
	common.PutVec4(buf[32:48], g.Specular, 0)
	common.PutVec4(buf[48:64], g.Position, 1)
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(g.Constant))
	binary.LittleEndian.PutUint32(buf[68:72], math.Float32bits(g.Linear))
	binary.LittleEndian.PutUint32(buf[72:76], math.Float32bits(g.Quadratic))
	binary.LittleEndian.PutUint32(buf[76:80], 0) // padding
}

// GPUPointLights is the GPU-aligned point-light array with its active count.
// Slots at or beyond Count are zeroed. Size: 336 bytes.
type GPUPointLights struct {
	Count  uint32                        // offset  0, padded to 16
	Lights [MaxPointLights]GPUPointLight // offset 16
}

// NewGPUPointLights converts an ordered slice of point lights.
//
// Parameters:
//   - lights: the lights in order
//
// Returns:
//   - GPUPointLights: the GPU record
//   - error: ErrTooManyPointLights when len(lights) > MaxPointLights; nothing is converted
func NewGPUPointLights(lights []PointLight) (GPUPointLights, error) {
	if len(lights) > MaxPointLights {
		return GPUPointLights{}, fmt.Errorf("%w: got %d", ErrTooManyPointLights, len(lights))
	}
	g := GPUPointLights{Count: uint32(len(lights))}
	for i, l := range lights {
		g.Lights[i] = NewGPUPointLight(l)
	}
	return g, nil
}

// Size returns the size of the GPUPointLights struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (336)
func (g *GPUPointLights) Size() int {
	return GPUPointLightsSize
}

// Marshal serializes the GPUPointLights struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 336-byte buffer ready for GPU upload
func (g *GPUPointLights) Marshal() []byte {
	buf := make([]byte, GPUPointLightsSize)
	binary.LittleEndian.PutUint32(buf[0:4], g.Count)
	for i := range g.Lights {
		if uint32(i) >= g.Count {
			break
		}
		off := 16 + i*GPUPointLightSize
		g.Lights[i].marshalInto(buf[off : off+GPUPointLightSize])
	}
	return buf
}
