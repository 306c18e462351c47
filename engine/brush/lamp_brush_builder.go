package brush

// LampBrushBuilderOption is a functional option for configuring a LampBrush.
type LampBrushBuilderOption func(b *lampBrushImpl)

// WithLampLabel sets the debug label used for the pipeline and its buffers.
func WithLampLabel(label string) LampBrushBuilderOption {
	return func(b *lampBrushImpl) {
		if label != "" {
			b.label = label
		}
	}
}
