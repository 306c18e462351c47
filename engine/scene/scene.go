// Package scene holds the plain data a frame draws: lit render objects, flat-colored
// lamps and the lights that illuminate them.
package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/Carmen-Shannon/oxy-lit/engine/light"
	"github.com/Carmen-Shannon/oxy-lit/engine/material"
	"github.com/go-gl/mathgl/mgl32"
)

// RenderObject is a lit mesh instance. Materials may be shared between objects.
type RenderObject struct {
	Mesh     gpu.Handle
	Model    mgl32.Mat4
	Material material.Handle
}

// Lamp is an unlit mesh drawn in a flat color, typically marking a point light.
type Lamp struct {
	Mesh  gpu.Handle
	Model mgl32.Mat4
	Color mgl32.Vec3
}

// Scene is everything drawn in one frame. Brushes read it and never mutate it.
type Scene struct {
	Objects     []RenderObject
	Lamps       []Lamp
	DirLight    light.DirectionalLight
	PointLights light.PointLights
}

// NewScene creates an empty scene lit by the default directional light.
//
// Parameters:
//   - options: functional options applied in order
//
// Returns:
//   - *Scene: the scene
//   - error: error if an option fails, e.g. more than light.MaxPointLights point lights
func NewScene(options ...SceneBuilderOption) (*Scene, error) {
	s := &Scene{DirLight: light.NewDirectionalLight()}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AddPointLight appends a point light and, when lampMesh is not zero, a lamp cube at its position.
//
// Parameters:
//   - l: the point light
//   - lampMesh: the mesh drawn as the lamp, or the zero handle for none
//   - lampScale: uniform scale of the lamp
//
// Returns:
//   - error: light.ErrTooManyPointLights when the scene is full
func (s *Scene) AddPointLight(l light.PointLight, lampMesh gpu.Handle, lampScale float32) error {
	if err := s.PointLights.Add(l); err != nil {
		return fmt.Errorf("add point light at %v: %w", l.Position, err)
	}
	if !lampMesh.IsZero() {
		s.Lamps = append(s.Lamps, Lamp{
			Mesh:  lampMesh,
			Model: common.ModelMatrix(l.Position, mgl32.Vec3{0, 1, 0}, 0, lampScale),
			Color: l.Specular,
		})
	}
	return nil
}

// DemoCubePositions are the world positions of the demo scene's ten crates.
var DemoCubePositions = [10]mgl32.Vec3{
	{0.0, 0.0, 0.0},
	{2.0, 5.0, -15.0},
	{-1.5, -2.2, -2.5},
	{-3.8, -2.0, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3.0, -7.5},
	{1.3, -2.0, -2.5},
	{1.5, 2.0, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1.0, -1.5},
}

// DemoPointLightPositions are the positions of the demo scene's four point lights.
var DemoPointLightPositions = [light.MaxPointLights]mgl32.Vec3{
	{0.7, 0.2, 2.0},
	{2.3, -3.3, -4.0},
	{-4.0, 2.0, -12.0},
	{0.0, 0.0, -3.0},
}

// DemoLampScale is the uniform scale of the demo scene's lamp cubes.
const DemoLampScale = 0.2

// DemoScene builds the classic multiple-lights scene: ten crates rotated 20 degrees
// apart about (1, 0.3, 0.5), four white point lights with (1, 0.09, 0.032) falloff,
// each marked by a lamp cube, and a dim directional light.
//
// Parameters:
//   - mesh: the cube mesh shared by crates and lamps
//   - mat: the crate material
//
// Returns:
//   - *Scene: the scene
//   - error: error if the scene cannot be assembled
func DemoScene(mesh gpu.Handle, mat material.Handle) (*Scene, error) {
	options := []SceneBuilderOption{
		WithDirectionalLight(light.NewDirectionalLight(light.WithDirection(mgl32.Vec3{-0.2, -1.0, -0.3}))),
	}
	axis := mgl32.Vec3{1.0, 0.3, 0.5}
	for i, pos := range DemoCubePositions {
		options = append(options, WithObjects(RenderObject{
			Mesh:     mesh,
			Model:    common.ModelMatrix(pos, axis, mgl32.DegToRad(20*float32(i)), 1),
			Material: mat,
		}))
	}
	for _, pos := range DemoPointLightPositions {
		options = append(options, WithPointLight(light.NewPointLight(
			light.WithPosition(pos),
			light.WithAttenuation(1.0, 0.09, 0.032),
		), mesh, DemoLampScale))
	}
	return NewScene(options...)
}
