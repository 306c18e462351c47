// Package gpu defines the contract between draw orchestration and a GPU backend:
// typed resource handles, pipeline and sampler descriptors, and the Backend and
// Surface interfaces implemented by the WebGPU renderer and by gputest.Recorder.
package gpu

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-lit/common"
)

var (
	// ErrUniformOverflow is returned when uniform data exceeds the buffer's capacity.
	ErrUniformOverflow = errors.New("uniform data exceeds buffer capacity")
	// ErrInvalidDescriptor is returned for malformed pipeline, buffer or sampler descriptions.
	ErrInvalidDescriptor = errors.New("invalid descriptor")
	// ErrBindingMismatch is returned when a draw's resources do not match the pipeline layout.
	ErrBindingMismatch = errors.New("draw resources do not match pipeline layout")
)

// VertexFormat is the element type of a vertex attribute.
type VertexFormat int

const (
	VertexFormatFloat32x2 VertexFormat = iota
	VertexFormatFloat32x3
	VertexFormatFloat32x4
)

// VertexAttribute describes one attribute within an interleaved vertex.
type VertexAttribute struct {
	Location uint32
	Offset   uint64
	Format   VertexFormat
}

// VertexLayout describes the single interleaved vertex buffer a pipeline reads.
type VertexLayout struct {
	Stride     uint64
	Attributes []VertexAttribute
}

// BindingType is the kind of resource bound at a slot.
type BindingType int

const (
	BindingUniform BindingType = iota
	BindingTexture
	BindingSampler
)

// Kind returns the resource kind a binding of this type accepts.
func (b BindingType) Kind() Kind {
	switch b {
	case BindingUniform:
		return KindUniformBuffer
	case BindingTexture:
		return KindTexture
	case BindingSampler:
		return KindSampler
	default:
		return kindInvalid
	}
}

// ShaderStage is a bit set of shader stages.
type ShaderStage uint8

const (
	StageVertex ShaderStage = 1 << iota
	StageFragment
)

// BindingLayout declares one resource slot of a pipeline's bind group.
type BindingLayout struct {
	Binding    uint32
	Type       BindingType
	Visibility ShaderStage
	// Size is the uniform block size in bytes. Only used for BindingUniform.
	Size uint64
}

// PipelineLayout is the fixed vertex and resource layout of a pipeline.
type PipelineLayout struct {
	Vertex   VertexLayout
	Bindings []BindingLayout
}

// CompareFunction is a depth comparison.
type CompareFunction int

const (
	CompareLess CompareFunction = iota
	CompareLessEqual
	CompareAlways
)

// CullMode selects which faces are discarded.
type CullMode int

const (
	CullNone CullMode = iota
	CullBack
	CullFront
)

// PipelineDescriptor is everything needed to compile a render pipeline.
type PipelineDescriptor struct {
	Label          string
	VertexSource   string
	VertexEntry    string
	FragmentSource string
	FragmentEntry  string
	Layout         PipelineLayout
	DepthCompare   CompareFunction
	DepthWrite     bool
	CullMode       CullMode
}

// Validate checks that both shader stages are present and binding slots are unique.
//
// Returns:
//   - error: wraps ErrInvalidDescriptor on failure
func (d PipelineDescriptor) Validate() error {
	if d.VertexSource == "" || d.FragmentSource == "" {
		return fmt.Errorf("%w: pipeline %q needs both vertex and fragment sources", ErrInvalidDescriptor, d.Label)
	}
	if d.VertexEntry == "" || d.FragmentEntry == "" {
		return fmt.Errorf("%w: pipeline %q needs both entry points", ErrInvalidDescriptor, d.Label)
	}
	if d.Layout.Vertex.Stride == 0 {
		return fmt.Errorf("%w: pipeline %q has a zero vertex stride", ErrInvalidDescriptor, d.Label)
	}
	seen := make(map[uint32]bool, len(d.Layout.Bindings))
	for _, b := range d.Layout.Bindings {
		if seen[b.Binding] {
			return fmt.Errorf("%w: pipeline %q declares binding %d twice", ErrInvalidDescriptor, d.Label, b.Binding)
		}
		seen[b.Binding] = true
		if b.Type == BindingUniform && b.Size == 0 {
			return fmt.Errorf("%w: pipeline %q uniform binding %d has no size", ErrInvalidDescriptor, d.Label, b.Binding)
		}
	}
	return nil
}

// AddressMode controls texture coordinate wrapping.
type AddressMode int

const (
	AddressRepeat AddressMode = iota
	AddressClampToEdge
	AddressMirrorRepeat
)

// FilterMode controls texel filtering.
type FilterMode int

const (
	FilterLinear FilterMode = iota
	FilterNearest
)

// SamplerDescriptor configures a texture sampler. The zero value is a repeating linear sampler.
type SamplerDescriptor struct {
	AddressMode AddressMode
	MagFilter   FilterMode
	MinFilter   FilterMode
}

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float64
}

// Black is opaque black.
var Black = Color{A: 1}

// DrawCall is one indexed draw. Resources[i] is bound at Layout.Bindings[i] of the pipeline.
type DrawCall struct {
	Pipeline  Handle
	Mesh      Handle
	Resources []Handle
}

// CheckResources verifies that resources match layout slot for slot by kind.
//
// Parameters:
//   - layout: the pipeline layout
//   - resources: the handles to bind
//
// Returns:
//   - error: wraps ErrBindingMismatch on failure
func CheckResources(layout PipelineLayout, resources []Handle) error {
	if len(resources) != len(layout.Bindings) {
		return fmt.Errorf("%w: %d resources for %d bindings", ErrBindingMismatch, len(resources), len(layout.Bindings))
	}
	for i, b := range layout.Bindings {
		if resources[i].Kind() != b.Type.Kind() {
			return fmt.Errorf("%w: binding %d wants a %s, got %v", ErrBindingMismatch, b.Binding, b.Type.Kind(), resources[i])
		}
	}
	return nil
}

// Backend is an opaque GPU resource factory and draw submitter.
// Every Create call returns a handle owned by the caller, who must Release it.
type Backend interface {
	// CreateVertexBuffer uploads immutable interleaved vertex data and optional 16-bit indices.
	// Without indices the mesh is drawn as a plain vertex list.
	//
	// Parameters:
	//   - label: debug label
	//   - vertices: interleaved vertex bytes
	//   - vertexCount: number of vertices in vertices
	//   - indices: optional index list
	//
	// Returns:
	//   - Handle: a KindMesh handle
	//   - error: error if creation fails
	CreateVertexBuffer(label string, vertices []byte, vertexCount uint32, indices []uint16) (Handle, error)

	// CreateUniformBuffer allocates a zeroed uniform buffer of the given capacity in bytes.
	//
	// Returns:
	//   - Handle: a KindUniformBuffer handle
	//   - error: error if creation fails
	CreateUniformBuffer(label string, capacity int) (Handle, error)

	// CreateTexture uploads RGBA pixel data into a sampled 2D texture.
	//
	// Returns:
	//   - Handle: a KindTexture handle
	//   - error: error if the data is malformed or creation fails
	CreateTexture(label string, data common.TextureStagingData) (Handle, error)

	// CreateSampler creates a texture sampler.
	//
	// Returns:
	//   - Handle: a KindSampler handle
	//   - error: error if creation fails
	CreateSampler(label string, desc SamplerDescriptor) (Handle, error)

	// CompilePipeline compiles a vertex/fragment shader pair against a fixed layout.
	// It is expensive and must only run during setup.
	//
	// Returns:
	//   - Handle: a KindPipeline handle
	//   - error: error if validation or shader compilation fails
	CompilePipeline(desc PipelineDescriptor) (Handle, error)

	// UpdateUniform overwrites the start of a uniform buffer. The write is visible to
	// every draw submitted after it and to none submitted before it.
	//
	// Returns:
	//   - error: wraps ErrUniformOverflow when data exceeds the capacity
	UpdateUniform(h Handle, data []byte) error

	// SubmitDraw issues one draw against target's color and depth attachments.
	//
	// Returns:
	//   - error: wraps ErrBindingMismatch when resources do not fit the pipeline layout
	SubmitDraw(target Handle, call DrawCall) error

	// Release frees a resource. Using h afterwards panics.
	Release(h Handle)
}

// Surface is the presentable side of a backend.
type Surface interface {
	// BeginFrame acquires the next frame target and clears its color and depth.
	//
	// Parameters:
	//   - clear: the clear color
	//
	// Returns:
	//   - Handle: a KindTarget handle valid until Present
	//   - error: error if the surface could not be acquired
	BeginFrame(clear Color) (Handle, error)

	// Present shows target and reclaims the frame's transient resources. target is released.
	Present(target Handle) error

	// Resize recreates size-dependent attachments for the new viewport.
	Resize(width, height int) error
}

// Device is a Backend that can also present frames.
type Device interface {
	Backend
	Surface
}
