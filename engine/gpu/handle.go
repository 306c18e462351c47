package gpu

import (
	"fmt"
	"sync"
)

// Kind identifies the resource type a Handle refers to.
type Kind uint8

const (
	kindInvalid Kind = iota
	KindMesh
	KindUniformBuffer
	KindTexture
	KindSampler
	KindPipeline
	KindTarget
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindUniformBuffer:
		return "uniform-buffer"
	case KindTexture:
		return "texture"
	case KindSampler:
		return "sampler"
	case KindPipeline:
		return "pipeline"
	case KindTarget:
		return "target"
	default:
		return "invalid"
	}
}

// Handle is an opaque reference to a backend resource. The zero Handle refers to nothing.
// Handles carry a generation so that a handle to a released slot is never confused
// with a newer resource occupying the same slot.
type Handle struct {
	kind       Kind
	index      uint32
	generation uint32
}

// Kind returns the resource type of the handle.
func (h Handle) Kind() Kind {
	return h.kind
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

func (h Handle) String() string {
	return fmt.Sprintf("%s#%d.%d", h.kind, h.index, h.generation)
}

type slot[T any] struct {
	value      T
	generation uint32
	live       bool
}

// ResourceTable maps Handles of one Kind to backend resources.
// Resolving a released, foreign or zero handle panics: a draw referencing a freed
// resource is a programming defect, not a recoverable condition.
type ResourceTable[T any] struct {
	mu    sync.Mutex
	kind  Kind
	slots []slot[T]
	free  []uint32
	live  int
}

// NewResourceTable creates an empty table issuing handles of the given kind.
func NewResourceTable[T any](kind Kind) *ResourceTable[T] {
	return &ResourceTable[T]{kind: kind}
}

// Insert stores v and returns its handle.
//
// Parameters:
//   - v: the resource
//
// Returns:
//   - Handle: a handle valid until Remove
func (t *ResourceTable[T]) Insert(v T) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.slots = append(t.slots, slot[T]{})
		idx = uint32(len(t.slots) - 1)
	}
	s := &t.slots[idx]
	s.value = v
	s.generation++
	s.live = true
	t.live++
	return Handle{kind: t.kind, index: idx, generation: s.generation}
}

// Get resolves h. It panics if h was released or belongs to another kind.
//
// Parameters:
//   - h: the handle to resolve
//
// Returns:
//   - T: the resource
func (t *ResourceTable[T]) Get(h Handle) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.slotFor(h).value
}

// Lookup resolves h without panicking.
//
// Returns:
//   - T: the resource, or the zero value
//   - bool: false when h is not live in this table
func (t *ResourceTable[T]) Lookup(h Handle) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.valid(h) {
		var zero T
		return zero, false
	}
	return t.slots[h.index].value, true
}

// Remove releases h and returns the resource it held. It panics on a double release.
func (t *ResourceTable[T]) Remove(h Handle) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.slotFor(h)
	v := s.value
	var zero T
	s.value = zero
	s.live = false
	t.free = append(t.free, h.index)
	t.live--
	return v
}

// Len returns the number of live resources.
func (t *ResourceTable[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live
}

// Drain removes every live resource, calling fn on each.
func (t *ResourceTable[T]) Drain(fn func(Handle, T)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.slots {
		s := &t.slots[i]
		if !s.live {
			continue
		}
		fn(Handle{kind: t.kind, index: uint32(i), generation: s.generation}, s.value)
		var zero T
		s.value = zero
		s.live = false
		t.free = append(t.free, uint32(i))
	}
	t.live = 0
}

func (t *ResourceTable[T]) valid(h Handle) bool {
	return h.kind == t.kind &&
		int(h.index) < len(t.slots) &&
		t.slots[h.index].live &&
		t.slots[h.index].generation == h.generation
}

func (t *ResourceTable[T]) slotFor(h Handle) *slot[T] {
	if !t.valid(h) {
		panic(fmt.Sprintf("gpu: %v used after release or with the wrong resource table (%s)", h, t.kind))
	}
	return &t.slots[h.index]
}
