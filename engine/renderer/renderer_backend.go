package renderer

import (
	"encoding/binary"

	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return "unknown"
	}
}

// ParsePresentMode maps "vsync" or "uncapped" to a PresentMode.
func ParsePresentMode(name string) (PresentMode, bool) {
	switch name {
	case "vsync", "fifo":
		return PresentModeVSync, true
	case "uncapped", "immediate":
		return PresentModeUncapped, true
	}
	return PresentModeVSync, false
}

func (m PresentMode) wgpu() wgpu.PresentMode {
	if m == PresentModeUncapped {
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeFifo
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1). This is the default.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4
)

// depthFormat is the format of the size-dependent depth attachment.
const depthFormat = wgpu.TextureFormatDepth24Plus

func vertexFormat(f gpu.VertexFormat) wgpu.VertexFormat {
	switch f {
	case gpu.VertexFormatFloat32x2:
		return wgpu.VertexFormatFloat32x2
	case gpu.VertexFormatFloat32x4:
		return wgpu.VertexFormatFloat32x4
	default:
		return wgpu.VertexFormatFloat32x3
	}
}

func compareFunction(c gpu.CompareFunction) wgpu.CompareFunction {
	switch c {
	case gpu.CompareLessEqual:
		return wgpu.CompareFunctionLessEqual
	case gpu.CompareAlways:
		return wgpu.CompareFunctionAlways
	default:
		return wgpu.CompareFunctionLess
	}
}

func cullMode(c gpu.CullMode) wgpu.CullMode {
	switch c {
	case gpu.CullBack:
		return wgpu.CullModeBack
	case gpu.CullFront:
		return wgpu.CullModeFront
	default:
		return wgpu.CullModeNone
	}
}

func addressMode(a gpu.AddressMode) wgpu.AddressMode {
	switch a {
	case gpu.AddressClampToEdge:
		return wgpu.AddressModeClampToEdge
	case gpu.AddressMirrorRepeat:
		return wgpu.AddressModeMirrorRepeat
	default:
		return wgpu.AddressModeRepeat
	}
}

func filterMode(f gpu.FilterMode) wgpu.FilterMode {
	if f == gpu.FilterNearest {
		return wgpu.FilterModeNearest
	}
	return wgpu.FilterModeLinear
}

func shaderStage(s gpu.ShaderStage) wgpu.ShaderStage {
	var out wgpu.ShaderStage
	if s&gpu.StageVertex != 0 {
		out |= wgpu.ShaderStageVertex
	}
	if s&gpu.StageFragment != 0 {
		out |= wgpu.ShaderStageFragment
	}
	return out
}

// bindGroupLayoutEntries translates a pipeline layout into wgpu layout entries.
func bindGroupLayoutEntries(layout gpu.PipelineLayout) []wgpu.BindGroupLayoutEntry {
	entries := make([]wgpu.BindGroupLayoutEntry, len(layout.Bindings))
	for i, b := range layout.Bindings {
		entry := wgpu.BindGroupLayoutEntry{
			Binding:    b.Binding,
			Visibility: shaderStage(b.Visibility),
		}
		switch b.Type {
		case gpu.BindingUniform:
			entry.Buffer.Type = wgpu.BufferBindingTypeUniform
			entry.Buffer.MinBindingSize = b.Size
		case gpu.BindingTexture:
			entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
			entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
		case gpu.BindingSampler:
			entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
		}
		entries[i] = entry
	}
	return entries
}

// vertexBufferLayout translates the single interleaved vertex buffer of a pipeline.
func vertexBufferLayout(layout gpu.VertexLayout) wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, len(layout.Attributes))
	for i, a := range layout.Attributes {
		attrs[i] = wgpu.VertexAttribute{
			Format:         vertexFormat(a.Format),
			Offset:         a.Offset,
			ShaderLocation: a.Location,
		}
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: layout.Stride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// align4 pads data with zeros to a multiple of 4 bytes, as queue writes require.
func align4(data []byte) []byte {
	if len(data)%4 == 0 {
		return data
	}
	out := make([]byte, len(data)+4-len(data)%4)
	copy(out, data)
	return out
}

// roundUp16 rounds n up to the uniform buffer alignment.
func roundUp16(n int) int {
	return (n + 15) &^ 15
}

func indexBytes(indices []uint16) []byte {
	buf := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return align4(buf)
}
