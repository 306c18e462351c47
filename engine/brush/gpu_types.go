package brush

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/camera"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/Carmen-Shannon/oxy-lit/engine/light"
	"github.com/Carmen-Shannon/oxy-lit/engine/scene"
	"github.com/Carmen-Shannon/oxy-lit/engine/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUTransformSource is the canonical WGSL definition of the Transform struct.
// Matches GPUTransform layout exactly (272 bytes).
//
//go:embed assets/transform.wgsl
var GPUTransformSource string

//go:embed assets/object.wgsl
var objectShader string

//go:embed assets/lamp.wgsl
var lampShader string

// ObjectShaderSource expands the lit object pipeline's WGSL module and checks its binding
// declarations against ObjectLayout.
//
// Returns:
//   - string: the complete WGSL module
//   - error: error if expansion fails or the declarations disagree with the layout
func ObjectShaderSource() (string, error) {
	return expandShader("object", objectShader, ObjectLayout())
}

// LampShaderSource expands the flat-color lamp pipeline's WGSL module and checks its binding
// declarations against LampLayout.
func LampShaderSource() (string, error) {
	return expandShader("lamp", lampShader, LampLayout())
}

func expandShader(label, source string, layout gpu.PipelineLayout) (string, error) {
	p := shader.NewPreProcessor(
		shader.WithInclude("vertex", scene.GPUVertexSource),
		shader.WithInclude("lights", light.GPULightsSource),
		shader.WithInclude("transform", GPUTransformSource),
		shader.WithConstant(light.MaxPointLightsConstant, "u32", fmt.Sprintf("%du", light.MaxPointLights)),
	)
	out, err := p.Process(source)
	if err != nil {
		return "", fmt.Errorf("%s shader: %w", label, err)
	}
	if err := checkDeclarations(layout, p.Declarations()); err != nil {
		return "", fmt.Errorf("%s shader: %w", label, err)
	}
	return out, nil
}

// checkDeclarations verifies that a shader declares exactly the layout's bindings in group 0
// with a matching address space for each.
func checkDeclarations(layout gpu.PipelineLayout, decls []shader.Annotation) error {
	if len(decls) != len(layout.Bindings) {
		return fmt.Errorf("%w: shader declares %d bindings, layout has %d", gpu.ErrInvalidDescriptor, len(decls), len(layout.Bindings))
	}
	for i, b := range layout.Bindings {
		d := decls[i]
		want := shader.AddressSpaceHandle
		if b.Type == gpu.BindingUniform {
			want = shader.AddressSpaceUniform
		}
		if d.Group != 0 || d.Binding != int(b.Binding) || d.AddressSpace != want {
			return fmt.Errorf("%w: declaration %q (line %d) does not match layout binding %d", gpu.ErrInvalidDescriptor, d.Name, d.Line, b.Binding)
		}
	}
	return nil
}

const (
	// GPUTransformSize is the size in bytes of a marshaled GPUTransform.
	GPUTransformSize = 4*64 + 16
	// GPUMaterialSize is the size in bytes of a marshaled GPUMaterial.
	GPUMaterialSize = 16
	// GPULampColorSize is the size in bytes of a marshaled GPULampColor.
	GPULampColorSize = 16
)

// GPUTransform is the per-draw transform block shared by both pipelines.
// Size: 272 bytes.
type GPUTransform struct {
	Model      mgl32.Mat4 // offset   0
	View       mgl32.Mat4 // offset  64
	Projection mgl32.Mat4 // offset 128
	Normal     mgl32.Mat4 // offset 192: inverse-transpose of Model
	Eye        mgl32.Vec3 // offset 256: camera position, w = 1
}

// NewGPUTransform captures the camera's current matrices for a model matrix.
//
// Parameters:
//   - model: the object's model matrix
//   - cam: the viewing camera
//
// Returns:
//   - GPUTransform: the transform block
func NewGPUTransform(model mgl32.Mat4, cam camera.Camera) GPUTransform {
	return GPUTransform{
		Model:      model,
		View:       cam.ViewMatrix(),
		Projection: cam.ProjectionMatrix(),
		Normal:     common.NormalMatrix(model),
		Eye:        cam.Position(),
	}
}

// Size returns the size of the GPUTransform struct in bytes.
func (g *GPUTransform) Size() int {
	return GPUTransformSize
}

// Marshal serializes the GPUTransform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 272-byte buffer ready for GPU upload
func (g *GPUTransform) Marshal() []byte {
	buf := make([]byte, GPUTransformSize)
	common.PutMat4(buf[0:64], g.Model)
	common.PutMat4(buf[64:128], g.View)
	common.PutMat4(buf[128:192], g.Projection)
	common.PutMat4(buf[192:256], g.Normal)
	common.PutVec4(buf[256:272], g.Eye, 1)
	return buf
}

// GPUMaterial holds the scalar material parameters. Size: 16 bytes.
type GPUMaterial struct {
	Shininess float32 // offset 0, padded to 16
}

// Size returns the size of the GPUMaterial struct in bytes.
func (g *GPUMaterial) Size() int {
	return GPUMaterialSize
}

// Marshal serializes the GPUMaterial struct into a byte buffer suitable for GPU upload.
func (g *GPUMaterial) Marshal() []byte {
	buf := make([]byte, GPUMaterialSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Shininess))
	return buf
}

// GPULampColor is the flat color of a lamp. Size: 16 bytes.
type GPULampColor struct {
	Color mgl32.Vec3 // offset 0, w = 1
}

// Size returns the size of the GPULampColor struct in bytes.
func (g *GPULampColor) Size() int {
	return GPULampColorSize
}

// Marshal serializes the GPULampColor struct into a byte buffer suitable for GPU upload.
func (g *GPULampColor) Marshal() []byte {
	buf := make([]byte, GPULampColorSize)
	common.PutVec4(buf, g.Color, 1)
	return buf
}
