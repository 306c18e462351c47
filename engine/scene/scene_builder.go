package scene

import (
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/Carmen-Shannon/oxy-lit/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *Scene) error

// WithObjects appends render objects to the scene.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...RenderObject) SceneBuilderOption {
	return func(s *Scene) error {
		s.Objects = append(s.Objects, objects...)
		return nil
	}
}

// WithLamps appends free-standing lamps to the scene.
func WithLamps(lamps ...Lamp) SceneBuilderOption {
	return func(s *Scene) error {
		s.Lamps = append(s.Lamps, lamps...)
		return nil
	}
}

// WithDirectionalLight replaces the scene's directional light.
//
// Parameters:
//   - l: the light
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDirectionalLight(l light.DirectionalLight) SceneBuilderOption {
	return func(s *Scene) error {
		s.DirLight = l
		return nil
	}
}

// WithPointLight adds a point light and a lamp marking it. Pass the zero mesh for no lamp.
//
// Parameters:
//   - l: the light
//   - lampMesh: the lamp mesh
//   - lampScale: the lamp's uniform scale
//
// Returns:
//   - SceneBuilderOption: option function to apply; it fails when the scene already has light.MaxPointLights lights
func WithPointLight(l light.PointLight, lampMesh gpu.Handle, lampScale float32) SceneBuilderOption {
	return func(s *Scene) error {
		return s.AddPointLight(l, lampMesh, lampScale)
	}
}
