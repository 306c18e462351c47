// Package material holds Phong surface materials and the arena that owns their textures.
package material

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
)

var (
	// ErrUnknownMaterial is returned when a Handle does not name a live material.
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrInvalidMaterial is returned for materials that fail validation.
	ErrInvalidMaterial = errors.New("invalid material")
)

// DefaultShininess is the specular exponent used when a material does not set one.
const DefaultShininess float32 = 32

// Material is an immutable Phong surface: a diffuse map, a specular map and a shininess exponent.
type Material struct {
	Name      string
	Diffuse   gpu.Handle
	Specular  gpu.Handle
	Shininess float32
}

// New builds a validated Material.
//
// Parameters:
//   - name: debug name
//   - diffuse: texture handle sampled for diffuse and ambient color
//   - specular: texture handle sampled for specular intensity
//   - shininess: specular exponent, must be finite and > 0
//
// Returns:
//   - Material: the material
//   - error: wraps ErrInvalidMaterial on failure
func New(name string, diffuse, specular gpu.Handle, shininess float32) (Material, error) {
	m := Material{Name: name, Diffuse: diffuse, Specular: specular, Shininess: shininess}
	return m, m.Validate()
}

// Validate checks the texture kinds and the shininess exponent.
func (m Material) Validate() error {
	if !common.IsFinite(m.Shininess) || m.Shininess <= 0 {
		return fmt.Errorf("%w: %q shininess %v must be > 0", ErrInvalidMaterial, m.Name, m.Shininess)
	}
	if m.Diffuse.Kind() != gpu.KindTexture || m.Specular.Kind() != gpu.KindTexture {
		return fmt.Errorf("%w: %q needs diffuse and specular textures", ErrInvalidMaterial, m.Name)
	}
	return nil
}

// Handle addresses a material inside an Arena. The zero Handle is never valid.
type Handle struct {
	index uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.index == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("material#%d", h.index)
}

// Arena stores materials and owns the textures they reference.
// Materials can be shared by any number of render objects through their Handle.
type Arena struct {
	mu        sync.RWMutex
	backend   gpu.Backend
	materials []Material
	released  bool
}

// NewArena creates an empty arena whose textures are released through backend.
func NewArena(backend gpu.Backend) *Arena {
	return &Arena{backend: backend}
}

// Add validates m and stores it. The arena takes ownership of m's textures.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - Handle: the material's handle
//   - error: error if m is invalid or the arena was released
func (a *Arena) Add(m Material) (Handle, error) {
	if err := m.Validate(); err != nil {
		return Handle{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.released {
		return Handle{}, fmt.Errorf("add %q: arena released", m.Name)
	}
	a.materials = append(a.materials, m)
	return Handle{index: uint32(len(a.materials))}, nil
}

// Get returns the material for h.
//
// Returns:
//   - Material: the material
//   - error: wraps ErrUnknownMaterial if h is zero, out of range or the arena was released
func (a *Arena) Get(h Handle) (Material, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.released || h.index == 0 || int(h.index) > len(a.materials) {
		return Material{}, fmt.Errorf("%w: %v", ErrUnknownMaterial, h)
	}
	return a.materials[h.index-1], nil
}

// Len returns the number of stored materials.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.released {
		return 0
	}
	return len(a.materials)
}

// Release frees every texture owned by the arena once, even when materials share one.
// Lookups fail afterwards. Calling Release twice is a no-op.
func (a *Arena) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.released {
		return
	}
	a.released = true
	seen := make(map[gpu.Handle]struct{}, len(a.materials)*2)
	for _, m := range a.materials {
		for _, tex := range []gpu.Handle{m.Diffuse, m.Specular} {
			if _, ok := seen[tex]; ok {
				continue
			}
			seen[tex] = struct{}{}
			a.backend.Release(tex)
		}
	}
	a.materials = nil
}
