package shader

import (
	"fmt"
	"regexp"
	"strings"
)

// structPattern finds WGSL struct declarations in processed output.
var structPattern = regexp.MustCompile(`(?m)^\s*struct\s+([A-Za-z_][A-Za-z0-9_]*)`)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// includes maps include keys to their WGSL source.
	includes map[string]string

	// constants are emitted in registration order before the processed source.
	constants []constant

	// declarations holds the group annotations of the last Process call in source order.
	declarations []Annotation
}

type constant struct {
	name, wgslType, value string
}

// PreProcessor expands @oxy: annotations in WGSL source.
type PreProcessor interface {
	// Process emits registered constants, then replaces include annotations with their
	// registered source and group annotations with generated binding declarations. Each key is included at most once; repeats are dropped.
	//
	// Parameters:
	//   - source: WGSL source containing annotations
	//
	// Returns:
	//   - string: the expanded WGSL module
	//   - error: error if an annotation is malformed, names an unknown include, declares a
	//     binding slot twice, or a uniform binding references a struct that is never declared
	Process(source string) (string, error)

	// Declarations returns the group annotations collected by the most recent Process call.
	//
	// Returns:
	//   - []Annotation: the declarations in source order
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the given include registrations.
//
// Parameters:
//   - options: functional options, typically one WithInclude per struct source
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor(options ...PreProcessorBuilderOption) PreProcessor {
	p := &preProcessor{includes: make(map[string]string)}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = nil

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines)+len(p.constants))
	names := make(map[string]bool, len(p.constants))
	for _, c := range p.constants {
		if names[c.name] {
			return "", fmt.Errorf("constant %q registered twice", c.name)
		}
		names[c.name] = true
		out = append(out, fmt.Sprintf("const %s: %s = %s;", c.name, c.wgslType, c.value))
	}
	included := make(map[string]bool)
	slots := make(map[[2]int]int)

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case AnnotationTypeInclude:
			src, ok := p.includes[a.Key]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy include key %q", a.Line, a.Key)
			}
			if included[a.Key] {
				continue
			}
			included[a.Key] = true
			out = append(out, strings.TrimRight(src, "\n"))
		case AnnotationTypeBindingGroup:
			slot := [2]int{a.Group, a.Binding}
			if prev, ok := slots[slot]; ok {
				return "", fmt.Errorf("line %d: @group(%d) @binding(%d) already declared on line %d", a.Line, a.Group, a.Binding, prev)
			}
			slots[slot] = a.Line
			out = append(out, a.Declaration())
			p.declarations = append(p.declarations, *a)
		}
	}

	result := strings.Join(out, "\n")
	declared := make(map[string]bool)
	for _, m := range structPattern.FindAllStringSubmatch(result, -1) {
		declared[m[1]] = true
	}
	for _, a := range p.declarations {
		if a.AddressSpace == AddressSpaceUniform && !declared[a.WGSLType] {
			return "", fmt.Errorf("line %d: uniform %q uses undeclared struct %q", a.Line, a.Name, a.WGSLType)
		}
	}
	return result, nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
