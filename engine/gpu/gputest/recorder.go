// Package gputest provides an in-memory gpu.Device that records every call, for tests.
package gputest

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
)

// Op names a recorded backend call.
type Op string

const (
	OpCreateVertexBuffer  Op = "create-vertex-buffer"
	OpCreateUniformBuffer Op = "create-uniform-buffer"
	OpCreateTexture       Op = "create-texture"
	OpCreateSampler       Op = "create-sampler"
	OpCompilePipeline     Op = "compile-pipeline"
	OpUpdateUniform       Op = "update-uniform"
	OpSubmitDraw          Op = "submit-draw"
	OpRelease             Op = "release"
	OpBeginFrame          Op = "begin-frame"
	OpPresent             Op = "present"
	OpResize              Op = "resize"
)

// Call is one recorded backend call.
type Call struct {
	Op     Op
	Handle gpu.Handle
	Label  string
}

// Draw is one recorded submission with a snapshot of every bound uniform buffer.
type Draw struct {
	Target gpu.Handle
	Call   gpu.DrawCall
	// Uniforms[i] holds the contents of Call.Resources[i] when it is a uniform buffer, else nil.
	Uniforms [][]byte
}

type mesh struct {
	label       string
	vertexCount uint32
	indexCount  int
}

type uniform struct {
	label string
	data  []byte
}

// Recorder implements gpu.Device without a GPU.
type Recorder struct {
	mu sync.Mutex

	Calls   []Call
	Draws   []Draw
	Clears  []gpu.Color
	Resizes [][2]int

	// CompileErr, when set, is returned by CompilePipeline.
	CompileErr error
	// BeginFrameErr, when set, is returned by BeginFrame.
	BeginFrameErr error

	meshes    *gpu.ResourceTable[mesh]
	uniforms  *gpu.ResourceTable[*uniform]
	textures  *gpu.ResourceTable[common.TextureStagingData]
	samplers  *gpu.ResourceTable[gpu.SamplerDescriptor]
	pipelines *gpu.ResourceTable[gpu.PipelineDescriptor]
	targets   *gpu.ResourceTable[int]

	frames int
}

var _ gpu.Device = &Recorder{}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		meshes:    gpu.NewResourceTable[mesh](gpu.KindMesh),
		uniforms:  gpu.NewResourceTable[*uniform](gpu.KindUniformBuffer),
		textures:  gpu.NewResourceTable[common.TextureStagingData](gpu.KindTexture),
		samplers:  gpu.NewResourceTable[gpu.SamplerDescriptor](gpu.KindSampler),
		pipelines: gpu.NewResourceTable[gpu.PipelineDescriptor](gpu.KindPipeline),
		targets:   gpu.NewResourceTable[int](gpu.KindTarget),
	}
}

func (r *Recorder) record(op Op, h gpu.Handle, label string) {
	r.Calls = append(r.Calls, Call{Op: op, Handle: h, Label: label})
}

func (r *Recorder) CreateVertexBuffer(label string, vertices []byte, vertexCount uint32, indices []uint16) (gpu.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(vertices) == 0 || vertexCount == 0 {
		return gpu.Handle{}, fmt.Errorf("%w: mesh %q is empty", gpu.ErrInvalidDescriptor, label)
	}
	h := r.meshes.Insert(mesh{label: label, vertexCount: vertexCount, indexCount: len(indices)})
	r.record(OpCreateVertexBuffer, h, label)
	return h, nil
}

func (r *Recorder) CreateUniformBuffer(label string, capacity int) (gpu.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if capacity <= 0 {
		return gpu.Handle{}, fmt.Errorf("%w: uniform buffer %q has capacity %d", gpu.ErrInvalidDescriptor, label, capacity)
	}
	h := r.uniforms.Insert(&uniform{label: label, data: make([]byte, capacity)})
	r.record(OpCreateUniformBuffer, h, label)
	return h, nil
}

func (r *Recorder) CreateTexture(label string, data common.TextureStagingData) (gpu.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := data.Validate(); err != nil {
		return gpu.Handle{}, fmt.Errorf("texture %q: %w", label, err)
	}
	h := r.textures.Insert(data)
	r.record(OpCreateTexture, h, label)
	return h, nil
}

func (r *Recorder) CreateSampler(label string, desc gpu.SamplerDescriptor) (gpu.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.samplers.Insert(desc)
	r.record(OpCreateSampler, h, label)
	return h, nil
}

func (r *Recorder) CompilePipeline(desc gpu.PipelineDescriptor) (gpu.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := desc.Validate(); err != nil {
		return gpu.Handle{}, err
	}
	if r.CompileErr != nil {
		return gpu.Handle{}, r.CompileErr
	}
	h := r.pipelines.Insert(desc)
	r.record(OpCompilePipeline, h, desc.Label)
	return h, nil
}

func (r *Recorder) UpdateUniform(h gpu.Handle, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.uniforms.Get(h)
	if len(data) > len(u.data) {
		return fmt.Errorf("%w: %d bytes into %q (%d)", gpu.ErrUniformOverflow, len(data), u.label, len(u.data))
	}
	copy(u.data, data)
	r.record(OpUpdateUniform, h, u.label)
	return nil
}

func (r *Recorder) SubmitDraw(target gpu.Handle, call gpu.DrawCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets.Get(target)
	desc := r.pipelines.Get(call.Pipeline)
	r.meshes.Get(call.Mesh)
	if err := gpu.CheckResources(desc.Layout, call.Resources); err != nil {
		return err
	}

	d := Draw{
		Target:   target,
		Call:     gpu.DrawCall{Pipeline: call.Pipeline, Mesh: call.Mesh, Resources: append([]gpu.Handle(nil), call.Resources...)},
		Uniforms: make([][]byte, len(call.Resources)),
	}
	for i, res := range call.Resources {
		switch res.Kind() {
		case gpu.KindUniformBuffer:
			d.Uniforms[i] = append([]byte(nil), r.uniforms.Get(res).data...)
		case gpu.KindTexture:
			r.textures.Get(res)
		case gpu.KindSampler:
			r.samplers.Get(res)
		}
	}
	r.Draws = append(r.Draws, d)
	r.record(OpSubmitDraw, call.Pipeline, desc.Label)
	return nil
}

func (r *Recorder) Release(h gpu.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch h.Kind() {
	case gpu.KindMesh:
		r.meshes.Remove(h)
	case gpu.KindUniformBuffer:
		r.uniforms.Remove(h)
	case gpu.KindTexture:
		r.textures.Remove(h)
	case gpu.KindSampler:
		r.samplers.Remove(h)
	case gpu.KindPipeline:
		r.pipelines.Remove(h)
	case gpu.KindTarget:
		r.targets.Remove(h)
	default:
		panic(fmt.Sprintf("gputest: release of %v", h))
	}
	r.record(OpRelease, h, "")
}

func (r *Recorder) BeginFrame(clear gpu.Color) (gpu.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.BeginFrameErr != nil {
		return gpu.Handle{}, r.BeginFrameErr
	}
	r.frames++
	h := r.targets.Insert(r.frames)
	r.Clears = append(r.Clears, clear)
	r.record(OpBeginFrame, h, "")
	return h, nil
}

func (r *Recorder) Present(target gpu.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets.Remove(target)
	r.record(OpPresent, target, "")
	return nil
}

func (r *Recorder) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", gpu.ErrInvalidDescriptor, width, height)
	}
	r.Resizes = append(r.Resizes, [2]int{width, height})
	r.record(OpResize, gpu.Handle{}, "")
	return nil
}

// Uniform returns a copy of the current contents of a uniform buffer.
func (r *Recorder) Uniform(h gpu.Handle) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]byte(nil), r.uniforms.Get(h).data...)
}

// Pipeline returns the descriptor a pipeline was compiled from.
func (r *Recorder) Pipeline(h gpu.Handle) gpu.PipelineDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelines.Get(h)
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Ops returns the recorded operation sequence.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]Op, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Live returns the number of live resources of a kind.
func (r *Recorder) Live(kind gpu.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch kind {
	case gpu.KindMesh:
		return r.meshes.Len()
	case gpu.KindUniformBuffer:
		return r.uniforms.Len()
	case gpu.KindTexture:
		return r.textures.Len()
	case gpu.KindSampler:
		return r.samplers.Len()
	case gpu.KindPipeline:
		return r.pipelines.Len()
	case gpu.KindTarget:
		return r.targets.Len()
	}
	return 0
}

// Reset forgets recorded calls and draws but keeps live resources.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = nil
	r.Draws = nil
	r.Clears = nil
	r.Resizes = nil
}
