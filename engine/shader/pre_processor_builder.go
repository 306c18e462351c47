package shader

// PreProcessorBuilderOption is a functional option for configuring a PreProcessor.
type PreProcessorBuilderOption func(*preProcessor)

// WithInclude registers WGSL source under an include key.
//
// Parameters:
//   - key: the name used in //@oxy:include <key>
//   - source: the WGSL struct source to splice in
//
// Returns:
//   - PreProcessorBuilderOption: a function that applies the include to a preProcessor
func WithInclude(key, source string) PreProcessorBuilderOption {
	return func(p *preProcessor) {
		p.includes[key] = source
	}
}

// WithConstant emits a module-scope `const name: wgslType = value;` ahead of the processed
// source, so sizes owned by Go code reach the shader without being repeated as literals.
//
// Parameters:
//   - name: the WGSL identifier, e.g. MAX_POINT_LIGHTS
//   - wgslType: the WGSL scalar type, e.g. u32
//   - value: the WGSL literal, e.g. 4u
//
// Returns:
//   - PreProcessorBuilderOption: a function that applies the constant to a preProcessor
func WithConstant(name, wgslType, value string) PreProcessorBuilderOption {
	return func(p *preProcessor) {
		p.constants = append(p.constants, constant{name: name, wgslType: wgslType, value: value})
	}
}
