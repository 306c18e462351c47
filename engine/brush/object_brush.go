// Package brush separates one-time pipeline setup from per-frame uniform updates.
// A brush compiles its pipeline and allocates its uniform slots once, then every Draw
// rewrites each uniform the draw depends on before submitting it.
package brush

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-lit/engine/camera"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/Carmen-Shannon/oxy-lit/engine/light"
	"github.com/Carmen-Shannon/oxy-lit/engine/material"
	"github.com/Carmen-Shannon/oxy-lit/engine/scene"
)

// ObjectBrush draws Phong-lit, textured render objects.
type ObjectBrush interface {
	// Draw uploads the transform, the lights and the material of obj, then submits one draw.
	// Nothing is uploaded or drawn when the light count exceeds light.MaxPointLights or the
	// material is unknown.
	//
	// Parameters:
	//   - target: the frame target from gpu.Surface.BeginFrame
	//   - obj: the object to draw
	//   - dir: the directional light
	//   - points: the point lights, at most light.MaxPointLights
	//   - cam: the viewing camera
	//
	// Returns:
	//   - error: light.ErrTooManyPointLights, material.ErrUnknownMaterial or a backend error
	Draw(target gpu.Handle, obj scene.RenderObject, dir light.DirectionalLight, points []light.PointLight, cam camera.Camera) error

	// Pipeline returns the compiled pipeline handle.
	Pipeline() gpu.Handle

	// Release frees the pipeline, the uniform buffers and the sampler. Drawing afterwards panics.
	Release()
}

// objectBrushImpl implements the ObjectBrush interface.
type objectBrushImpl struct {
	mu       sync.Mutex
	backend  gpu.Backend
	arena    *material.Arena
	label    string
	sampler  gpu.SamplerDescriptor
	cullMode gpu.CullMode

	pipeline       gpu.Handle
	transformBuf   gpu.Handle
	dirLightBuf    gpu.Handle
	pointLightsBuf gpu.Handle
	materialBuf    gpu.Handle
	samplerHandle  gpu.Handle

	released bool
}

var _ ObjectBrush = &objectBrushImpl{}

// ObjectLayout is the binding layout of the lit object pipeline.
func ObjectLayout() gpu.PipelineLayout {
	return gpu.PipelineLayout{
		Vertex: scene.VertexLayout(),
		Bindings: []gpu.BindingLayout{
			{Binding: 0, Type: gpu.BindingUniform, Visibility: gpu.StageVertex | gpu.StageFragment, Size: GPUTransformSize},
			{Binding: 1, Type: gpu.BindingUniform, Visibility: gpu.StageFragment, Size: light.GPUDirectionalLightSize},
			{Binding: 2, Type: gpu.BindingUniform, Visibility: gpu.StageFragment, Size: light.GPUPointLightsSize},
			{Binding: 3, Type: gpu.BindingUniform, Visibility: gpu.StageFragment, Size: GPUMaterialSize},
			{Binding: 4, Type: gpu.BindingTexture, Visibility: gpu.StageFragment},
			{Binding: 5, Type: gpu.BindingTexture, Visibility: gpu.StageFragment},
			{Binding: 6, Type: gpu.BindingSampler, Visibility: gpu.StageFragment},
		},
	}
}

// NewObjectBrush compiles the lit pipeline and allocates its uniform slots and sampler.
// This is setup work and must not run per frame.
//
// Parameters:
//   - backend: the GPU backend
//   - arena: the arena objects' material handles resolve against
//   - options: functional options
//
// Returns:
//   - ObjectBrush: the brush
//   - error: error if compilation or allocation fails; partial resources are released
func NewObjectBrush(backend gpu.Backend, arena *material.Arena, options ...ObjectBrushBuilderOption) (ObjectBrush, error) {
	b := &objectBrushImpl{
		backend:  backend,
		arena:    arena,
		label:    "object",
		cullMode: gpu.CullBack,
	}
	for _, option := range options {
		option(b)
	}

	var created []gpu.Handle
	fail := func(err error) (ObjectBrush, error) {
		for _, h := range created {
			backend.Release(h)
		}
		return nil, fmt.Errorf("failed to create %s brush: %w", b.label, err)
	}

	source, err := ObjectShaderSource()
	if err != nil {
		return fail(err)
	}
	pipeline, err := backend.CompilePipeline(gpu.PipelineDescriptor{
		Label:          b.label,
		VertexSource:   source,
		VertexEntry:    "vs_main",
		FragmentSource: source,
		FragmentEntry:  "fs_main",
		Layout:         ObjectLayout(),
		DepthCompare:   gpu.CompareLessEqual,
		DepthWrite:     true,
		CullMode:       b.cullMode,
	})
	if err != nil {
		return fail(err)
	}
	created = append(created, pipeline)
	b.pipeline = pipeline

	slots := []struct {
		dst  *gpu.Handle
		name string
		size int
	}{
		{&b.transformBuf, "transform", GPUTransformSize},
		{&b.dirLightBuf, "dir-light", light.GPUDirectionalLightSize},
		{&b.pointLightsBuf, "point-lights", light.GPUPointLightsSize},
		{&b.materialBuf, "material", GPUMaterialSize},
	}
	for _, s := range slots {
		h, err := backend.CreateUniformBuffer(b.label+"-"+s.name, s.size)
		if err != nil {
			return fail(err)
		}
		created = append(created, h)
		*s.dst = h
	}

	sampler, err := backend.CreateSampler(b.label+"-sampler", b.sampler)
	if err != nil {
		return fail(err)
	}
	b.samplerHandle = sampler

	return b, nil
}

func (b *objectBrushImpl) Draw(target gpu.Handle, obj scene.RenderObject, dir light.DirectionalLight, points []light.PointLight, cam camera.Camera) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		panic(fmt.Sprintf("brush: %s drawn after release", b.label))
	}

	gpuPoints, err := light.NewGPUPointLights(points)
	if err != nil {
		return err
	}
	mat, err := b.arena.Get(obj.Material)
	if err != nil {
		return err
	}

	transform := NewGPUTransform(obj.Model, cam)
	gpuDir := light.NewGPUDirectionalLight(dir)
	gpuMat := GPUMaterial{Shininess: mat.Shininess}

	uploads := []struct {
		h    gpu.Handle
		data []byte
	}{
		{b.transformBuf, transform.Marshal()},
		{b.dirLightBuf, gpuDir.Marshal()},
		{b.pointLightsBuf, gpuPoints.Marshal()},
		{b.materialBuf, gpuMat.Marshal()},
	}
	for _, u := range uploads {
		if err := b.backend.UpdateUniform(u.h, u.data); err != nil {
			return fmt.Errorf("%s brush upload: %w", b.label, err)
		}
	}

	return b.backend.SubmitDraw(target, gpu.DrawCall{
		Pipeline: b.pipeline,
		Mesh:     obj.Mesh,
		Resources: []gpu.Handle{
			b.transformBuf,
			b.dirLightBuf,
			b.pointLightsBuf,
			b.materialBuf,
			mat.Diffuse,
			mat.Specular,
			b.samplerHandle,
		},
	})
}

func (b *objectBrushImpl) Pipeline() gpu.Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pipeline
}

func (b *objectBrushImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return
	}
	b.released = true
	for _, h := range []gpu.Handle{b.transformBuf, b.dirLightBuf, b.pointLightsBuf, b.materialBuf, b.samplerHandle, b.pipeline} {
		b.backend.Release(h)
	}
}
