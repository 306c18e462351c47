package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceTableInsertGetRemove(t *testing.T) {
	table := NewResourceTable[string](KindTexture)
	a := table.Insert("a")
	b := table.Insert("b")

	assert.Equal(t, KindTexture, a.Kind())
	assert.False(t, a.IsZero())
	assert.Equal(t, "a", table.Get(a))
	assert.Equal(t, "b", table.Get(b))
	assert.Equal(t, 2, table.Len())

	assert.Equal(t, "a", table.Remove(a))
	assert.Equal(t, 1, table.Len())
	_, ok := table.Lookup(a)
	assert.False(t, ok)
}

func TestResourceTableUseAfterReleasePanics(t *testing.T) {
	table := NewResourceTable[int](KindUniformBuffer)
	h := table.Insert(1)
	table.Remove(h)

	assert.Panics(t, func() { table.Get(h) })
	assert.Panics(t, func() { table.Remove(h) })
}

func TestResourceTableReusedSlotRejectsStaleHandle(t *testing.T) {
	table := NewResourceTable[int](KindMesh)
	old := table.Insert(1)
	table.Remove(old)
	fresh := table.Insert(2)

	assert.NotEqual(t, old, fresh)
	assert.Equal(t, 2, table.Get(fresh))
	assert.Panics(t, func() { table.Get(old) })
}

func TestResourceTableRejectsForeignKind(t *testing.T) {
	textures := NewResourceTable[int](KindTexture)
	samplers := NewResourceTable[int](KindSampler)
	h := samplers.Insert(1)

	assert.Panics(t, func() { textures.Get(h) })
	assert.Panics(t, func() { textures.Get(Handle{}) })
}

func TestResourceTableDrain(t *testing.T) {
	table := NewResourceTable[int](KindSampler)
	a := table.Insert(1)
	table.Insert(2)

	sum := 0
	table.Drain(func(_ Handle, v int) { sum += v })

	assert.Equal(t, 3, sum)
	assert.Zero(t, table.Len())
	assert.Panics(t, func() { table.Get(a) })
}

func TestPipelineDescriptorValidate(t *testing.T) {
	valid := PipelineDescriptor{
		Label:          "lit",
		VertexSource:   "vs",
		VertexEntry:    "vs_main",
		FragmentSource: "fs",
		FragmentEntry:  "fs_main",
		Layout: PipelineLayout{
			Vertex: VertexLayout{Stride: 32},
			Bindings: []BindingLayout{
				{Binding: 0, Type: BindingUniform, Size: 64},
				{Binding: 1, Type: BindingSampler},
			},
		},
	}
	assert.NoError(t, valid.Validate())

	noFragment := valid
	noFragment.FragmentSource = ""
	assert.ErrorIs(t, noFragment.Validate(), ErrInvalidDescriptor)

	dup := valid
	dup.Layout.Bindings = []BindingLayout{{Binding: 1, Type: BindingSampler}, {Binding: 1, Type: BindingTexture}}
	assert.ErrorIs(t, dup.Validate(), ErrInvalidDescriptor)

	sizeless := valid
	sizeless.Layout.Bindings = []BindingLayout{{Binding: 0, Type: BindingUniform}}
	assert.ErrorIs(t, sizeless.Validate(), ErrInvalidDescriptor)
}

func TestCheckResources(t *testing.T) {
	layout := PipelineLayout{Bindings: []BindingLayout{
		{Binding: 0, Type: BindingUniform, Size: 16},
		{Binding: 1, Type: BindingTexture},
	}}
	uniforms := NewResourceTable[int](KindUniformBuffer)
	textures := NewResourceTable[int](KindTexture)
	u, tex := uniforms.Insert(0), textures.Insert(0)

	assert.NoError(t, CheckResources(layout, []Handle{u, tex}))
	assert.ErrorIs(t, CheckResources(layout, []Handle{tex, u}), ErrBindingMismatch)
	assert.ErrorIs(t, CheckResources(layout, []Handle{u}), ErrBindingMismatch)
}
