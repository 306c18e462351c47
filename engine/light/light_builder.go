package light

import "github.com/go-gl/mathgl/mgl32"

// DirectionalLightOption configures a DirectionalLight during construction.
type DirectionalLightOption func(*DirectionalLight)

// PointLightOption configures a PointLight during construction.
type PointLightOption func(*PointLight)

// NewDirectionalLight creates a dim white directional light pointing at (-0.2, -1, -0.3).
//
// Parameters:
//   - opts: options applied in order
//
// Returns:
//   - DirectionalLight: the light
func NewDirectionalLight(opts ...DirectionalLightOption) DirectionalLight {
	l := DirectionalLight{
		Phong: Phong{
			Ambient:  mgl32.Vec3{0.05, 0.05, 0.05},
			Diffuse:  mgl32.Vec3{0.4, 0.4, 0.4},
			Specular: mgl32.Vec3{0.5, 0.5, 0.5},
		},
		Direction: mgl32.Vec3{-0.2, -1.0, -0.3},
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// WithDirection sets the direction of a directional light. It is stored unnormalized.
//
// Parameters:
//   - dir: the direction the light travels in
//
// Returns:
//   - DirectionalLightOption: a function that applies the direction
func WithDirection(dir mgl32.Vec3) DirectionalLightOption {
	return func(l *DirectionalLight) {
		l.Direction = dir
	}
}

// WithDirectionalPhong sets the colors of a directional light.
//
// Parameters:
//   - p: ambient, diffuse and specular colors
//
// Returns:
//   - DirectionalLightOption: a function that applies the colors
func WithDirectionalPhong(p Phong) DirectionalLightOption {
	return func(l *DirectionalLight) {
		l.Phong = p
	}
}

// NewPointLight creates a white point light at the origin with a falloff covering
// roughly 50 units (1, 0.09, 0.032).
//
// Parameters:
//   - opts: options applied in order
//
// Returns:
//   - PointLight: the light
func NewPointLight(opts ...PointLightOption) PointLight {
	l := PointLight{
		Phong: Phong{
			Ambient:  mgl32.Vec3{0.05, 0.05, 0.05},
			Diffuse:  mgl32.Vec3{0.8, 0.8, 0.8},
			Specular: mgl32.Vec3{1, 1, 1},
		},
		Attenuation: AttenuationForRange(50),
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// WithPosition sets the world-space position of a point light.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - PointLightOption: a function that applies the position
func WithPosition(p mgl32.Vec3) PointLightOption {
	return func(l *PointLight) {
		l.Position = p
	}
}

// WithPointPhong sets the colors of a point light.
func WithPointPhong(p Phong) PointLightOption {
	return func(l *PointLight) {
		l.Phong = p
	}
}

// WithAttenuation sets explicit falloff coefficients.
//
// Parameters:
//   - constant, linear, quadratic: the a0, a1, a2 coefficients
//
// Returns:
//   - PointLightOption: a function that applies the attenuation
func WithAttenuation(constant, linear, quadratic float32) PointLightOption {
	return func(l *PointLight) {
		l.Attenuation = Attenuation{Constant: constant, Linear: linear, Quadratic: quadratic}
	}
}

// WithRange picks falloff coefficients for the given reach.
func WithRange(distance float32) PointLightOption {
	return func(l *PointLight) {
		l.Attenuation = AttenuationForRange(distance)
	}
}

// attenuationTable is the widely used Ogre3D falloff table, ordered by range.
var attenuationTable = []struct {
	distance float32
	a        Attenuation
}{
	{7, Attenuation{1, 0.7, 1.8}},
	{13, Attenuation{1, 0.35, 0.44}},
	{20, Attenuation{1, 0.22, 0.20}},
	{32, Attenuation{1, 0.14, 0.07}},
	{50, Attenuation{1, 0.09, 0.032}},
	{65, Attenuation{1, 0.07, 0.017}},
	{100, Attenuation{1, 0.045, 0.0075}},
	{160, Attenuation{1, 0.027, 0.0028}},
	{200, Attenuation{1, 0.022, 0.0019}},
	{325, Attenuation{1, 0.014, 0.0007}},
	{600, Attenuation{1, 0.007, 0.0002}},
	{3250, Attenuation{1, 0.0014, 0.000007}},
}

// AttenuationForRange returns the coefficients of the smallest table entry whose
// range covers distance, or the largest entry when distance exceeds them all.
//
// Parameters:
//   - distance: the desired reach in world units
//
// Returns:
//   - Attenuation: the coefficients
func AttenuationForRange(distance float32) Attenuation {
	for _, e := range attenuationTable {
		if distance <= e.distance {
			return e.a
		}
	}
	return attenuationTable[len(attenuationTable)-1].a
}
