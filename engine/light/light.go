package light

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointLights is the number of point-light slots in the lit pipeline's uniform
// layout. The fragment shader declares a fixed array of this length, so a scene
// can never submit more.
const MaxPointLights = 4

// ErrTooManyPointLights is returned when more than MaxPointLights point lights are
// added or uploaded.
var ErrTooManyPointLights = fmt.Errorf("more than %d point lights", MaxPointLights)

// ErrInvalidAttenuation is returned for attenuation coefficients that would make
// the falloff undefined or increasing with distance.
var ErrInvalidAttenuation = errors.New("invalid attenuation coefficients")

// Phong holds the ambient, diffuse and specular colors of a light.
// Components are conceptually within [0, 1].
type Phong struct {
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// PhongFromColor derives light colors from a single base color the way the
// classic demo scenes do: ambient and diffuse are scaled copies, specular is the color.
//
// Parameters:
//   - color: the base RGB color
//   - ambient: ambient scale factor
//   - diffuse: diffuse scale factor
//
// Returns:
//   - Phong: the derived colors
func PhongFromColor(color mgl32.Vec3, ambient, diffuse float32) Phong {
	return Phong{
		Ambient:  color.Mul(ambient),
		Diffuse:  color.Mul(diffuse),
		Specular: color,
	}
}

// DirectionalLight is a light with no position, only direction.
// Direction is stored as given; it is normalized when marshaled for the GPU.
type DirectionalLight struct {
	Phong
	Direction mgl32.Vec3
}

// Attenuation holds the inverse-quadratic falloff coefficients of a point light:
// intensity(d) = 1 / (Constant + Linear*d + Quadratic*d^2).
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// Validate reports whether the coefficients are non-negative and not all zero.
func (a Attenuation) Validate() error {
	if a.Constant < 0 || a.Linear < 0 || a.Quadratic < 0 {
		return fmt.Errorf("%w: negative coefficient (%v, %v, %v)", ErrInvalidAttenuation, a.Constant, a.Linear, a.Quadratic)
	}
	if a.Constant == 0 && a.Linear == 0 && a.Quadratic == 0 {
		return fmt.Errorf("%w: all coefficients are zero", ErrInvalidAttenuation)
	}
	return nil
}

// At evaluates the falloff factor at distance d.
func (a Attenuation) At(d float32) float32 {
	return 1.0 / (a.Constant + a.Linear*d + a.Quadratic*d*d)
}

// PointLight is a light emitting in all directions from a position, with distance falloff.
type PointLight struct {
	Phong
	Position    mgl32.Vec3
	Attenuation Attenuation
}

// PointLights is an ordered, fixed-capacity sequence of point lights.
// The zero value is an empty sequence ready for use.
type PointLights struct {
	lights [MaxPointLights]PointLight
	n      int
}

// NewPointLights builds a sequence from lights, failing if there are more than MaxPointLights.
//
// Parameters:
//   - lights: the lights in draw order
//
// Returns:
//   - PointLights: the sequence
//   - error: ErrTooManyPointLights when the capacity is exceeded
func NewPointLights(lights ...PointLight) (PointLights, error) {
	var p PointLights
	for _, l := range lights {
		if err := p.Add(l); err != nil {
			return PointLights{}, err
		}
	}
	return p, nil
}

// Add appends a light. The sequence is left unchanged when it is full.
//
// Parameters:
//   - l: the light to append
//
// Returns:
//   - error: ErrTooManyPointLights when the sequence already holds MaxPointLights lights
func (p *PointLights) Add(l PointLight) error {
	if p.n == MaxPointLights {
		return ErrTooManyPointLights
	}
	p.lights[p.n] = l
	p.n++
	return nil
}

// Set replaces the light at index i.
func (p *PointLights) Set(i int, l PointLight) error {
	if i < 0 || i >= p.n {
		return fmt.Errorf("point light index %d out of range [0, %d)", i, p.n)
	}
	p.lights[i] = l
	return nil
}

// Len returns the number of lights in the sequence.
func (p *PointLights) Len() int {
	return p.n
}

// All returns a copy of the lights in order.
func (p *PointLights) All() []PointLight {
	out := make([]PointLight, p.n)
	copy(out, p.lights[:p.n])
	return out
}

// Clear empties the sequence.
func (p *PointLights) Clear() {
	p.lights = [MaxPointLights]PointLight{}
	p.n = 0
}
