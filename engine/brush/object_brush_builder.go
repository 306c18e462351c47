package brush

import "github.com/Carmen-Shannon/oxy-lit/engine/gpu"

// ObjectBrushBuilderOption is a functional option for configuring an ObjectBrush.
type ObjectBrushBuilderOption func(b *objectBrushImpl)

// WithObjectLabel sets the debug label used for the pipeline and its buffers.
//
// Parameters:
//   - label: the label prefix
//
// Returns:
//   - ObjectBrushBuilderOption: option function to apply
func WithObjectLabel(label string) ObjectBrushBuilderOption {
	return func(b *objectBrushImpl) {
		if label != "" {
			b.label = label
		}
	}
}

// WithSampler configures how the material maps are sampled. Defaults to repeating linear filtering.
func WithSampler(desc gpu.SamplerDescriptor) ObjectBrushBuilderOption {
	return func(b *objectBrushImpl) {
		b.sampler = desc
	}
}

// WithObjectCullMode overrides back-face culling for lit objects.
func WithObjectCullMode(mode gpu.CullMode) ObjectBrushBuilderOption {
	return func(b *objectBrushImpl) {
		b.cullMode = mode
	}
}
