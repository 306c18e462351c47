// annotations.go defines the @oxy: annotations understood by the WGSL pre-processor.
// Annotations are single-line WGSL comments that either splice a registered struct
// source into the module or generate a @group/@binding declaration.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix marks an annotation inside a WGSL comment line.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// AnnotationTypeInclude splices the WGSL source registered under a key.
	//
	// Syntax: //@oxy:include <key>
	AnnotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a @group/@binding variable declaration and is
	// recorded in the pre-processor's declarations list.
	//
	// Syntax: //@oxy:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@oxy:group 0 1 uniform dir_light DirLight
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// AddressSpace is the storage class of a generated binding declaration.
type AddressSpace string

const (
	// AddressSpaceUniform declares a var<uniform> buffer binding.
	AddressSpaceUniform AddressSpace = "uniform"

	// AddressSpaceHandle declares a texture or sampler binding, which takes no address space.
	AddressSpaceHandle AddressSpace = "handle"
)

var validAddressSpaces = []AddressSpace{AddressSpaceUniform, AddressSpaceHandle}

// Annotation is one parsed @oxy: annotation.
type Annotation struct {
	Type AnnotationType

	// Line is the 1-based source line of the annotation.
	Line int

	// Key is the include key. Empty for group annotations.
	Key string

	// The remaining fields are set for group annotations only.
	Group        int
	Binding      int
	AddressSpace AddressSpace
	Name         string
	WGSLType     string
}

// Declaration renders a group annotation as WGSL.
func (a Annotation) Declaration() string {
	if a.AddressSpace == AddressSpaceUniform {
		return fmt.Sprintf("@group(%d) @binding(%d) var<uniform> %s: %s;", a.Group, a.Binding, a.Name, a.WGSLType)
	}
	return fmt.Sprintf("@group(%d) @binding(%d) var %s: %s;", a.Group, a.Binding, a.Name, a.WGSLType)
}

// parseAnnotation parses a single source line. Lines without the prefix yield nil and no error.
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case AnnotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include annotation requires exactly one argument", lineNum)
		}
		return &Annotation{Type: AnnotationTypeInclude, Line: lineNum, Key: args[1]}, nil
	case AnnotationTypeBindingGroup:
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @oxy group annotation requires five arguments (group, binding, address space, name, type)", lineNum)
		}
		group, err := strconv.Atoi(args[1])
		if err != nil || group < 0 {
			return nil, fmt.Errorf("line %d: invalid group number %q in @oxy group annotation", lineNum, args[1])
		}
		binding, err := strconv.Atoi(args[2])
		if err != nil || binding < 0 {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @oxy group annotation", lineNum, args[2])
		}
		space := AddressSpace(args[3])
		if !slices.Contains(validAddressSpaces, space) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @oxy group annotation", lineNum, args[3])
		}
		return &Annotation{
			Type:         AnnotationTypeBindingGroup,
			Line:         lineNum,
			Group:        group,
			Binding:      binding,
			AddressSpace: space,
			Name:         args[4],
			WGSLType:     args[5],
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}
