package brush

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-lit/engine/camera"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/Carmen-Shannon/oxy-lit/engine/scene"
)

// LampBrush draws unlit lamps in a flat color.
type LampBrush interface {
	// Draw uploads the lamp's transform and color, then submits one draw.
	//
	// Parameters:
	//   - target: the frame target from gpu.Surface.BeginFrame
	//   - lamp: the lamp to draw
	//   - cam: the viewing camera
	//
	// Returns:
	//   - error: a backend error
	Draw(target gpu.Handle, lamp scene.Lamp, cam camera.Camera) error

	// Pipeline returns the compiled pipeline handle.
	Pipeline() gpu.Handle

	// Release frees the pipeline and the uniform buffers. Drawing afterwards panics.
	Release()
}

// lampBrushImpl implements the LampBrush interface.
type lampBrushImpl struct {
	mu      sync.Mutex
	backend gpu.Backend
	label   string

	pipeline     gpu.Handle
	transformBuf gpu.Handle
	colorBuf     gpu.Handle

	released bool
}

var _ LampBrush = &lampBrushImpl{}

// LampLayout is the binding layout of the lamp pipeline.
func LampLayout() gpu.PipelineLayout {
	return gpu.PipelineLayout{
		Vertex: scene.VertexLayout(),
		Bindings: []gpu.BindingLayout{
			{Binding: 0, Type: gpu.BindingUniform, Visibility: gpu.StageVertex | gpu.StageFragment, Size: GPUTransformSize},
			{Binding: 1, Type: gpu.BindingUniform, Visibility: gpu.StageFragment, Size: GPULampColorSize},
		},
	}
}

// NewLampBrush compiles the lamp pipeline and allocates its uniform slots.
//
// Parameters:
//   - backend: the GPU backend
//   - options: functional options
//
// Returns:
//   - LampBrush: the brush
//   - error: error if compilation or allocation fails; partial resources are released
func NewLampBrush(backend gpu.Backend, options ...LampBrushBuilderOption) (LampBrush, error) {
	b := &lampBrushImpl{backend: backend, label: "lamp"}
	for _, option := range options {
		option(b)
	}

	source, err := LampShaderSource()
	if err != nil {
		return nil, fmt.Errorf("failed to create %s brush: %w", b.label, err)
	}
	pipeline, err := backend.CompilePipeline(gpu.PipelineDescriptor{
		Label:          b.label,
		VertexSource:   source,
		VertexEntry:    "vs_main",
		FragmentSource: source,
		FragmentEntry:  "fs_main",
		Layout:         LampLayout(),
		DepthCompare:   gpu.CompareLessEqual,
		DepthWrite:     true,
		CullMode:       gpu.CullNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s brush: %w", b.label, err)
	}
	transform, err := backend.CreateUniformBuffer(b.label+"-transform", GPUTransformSize)
	if err != nil {
		backend.Release(pipeline)
		return nil, fmt.Errorf("failed to create %s brush: %w", b.label, err)
	}
	color, err := backend.CreateUniformBuffer(b.label+"-color", GPULampColorSize)
	if err != nil {
		backend.Release(transform)
		backend.Release(pipeline)
		return nil, fmt.Errorf("failed to create %s brush: %w", b.label, err)
	}

	b.pipeline, b.transformBuf, b.colorBuf = pipeline, transform, color
	return b, nil
}

func (b *lampBrushImpl) Draw(target gpu.Handle, lamp scene.Lamp, cam camera.Camera) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		panic(fmt.Sprintf("brush: %s drawn after release", b.label))
	}

	transform := NewGPUTransform(lamp.Model, cam)
	color := GPULampColor{Color: lamp.Color}
	if err := b.backend.UpdateUniform(b.transformBuf, transform.Marshal()); err != nil {
		return fmt.Errorf("%s brush upload: %w", b.label, err)
	}
	if err := b.backend.UpdateUniform(b.colorBuf, color.Marshal()); err != nil {
		return fmt.Errorf("%s brush upload: %w", b.label, err)
	}

	return b.backend.SubmitDraw(target, gpu.DrawCall{
		Pipeline:  b.pipeline,
		Mesh:      lamp.Mesh,
		Resources: []gpu.Handle{b.transformBuf, b.colorBuf},
	})
}

func (b *lampBrushImpl) Pipeline() gpu.Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pipeline
}

func (b *lampBrushImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return
	}
	b.released = true
	b.backend.Release(b.transformBuf)
	b.backend.Release(b.colorBuf)
	b.backend.Release(b.pipeline)
}
