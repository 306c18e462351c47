package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuMesh struct {
	vertex      *wgpu.Buffer
	index       *wgpu.Buffer
	vertexCount uint32
	indexCount  uint32
}

type wgpuUniform struct {
	label    string
	buffer   *wgpu.Buffer
	capacity int
}

type wgpuTexture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

type wgpuPipeline struct {
	label           string
	layout          gpu.PipelineLayout
	modules         []*wgpu.ShaderModule
	bindGroupLayout *wgpu.BindGroupLayout
	pipelineLayout  *wgpu.PipelineLayout
	pipeline        *wgpu.RenderPipeline
}

type wgpuTarget struct {
	surface *wgpu.Texture
	view    *wgpu.TextureView
}

// cachedBindGroup is a bind group built for one pipeline and one exact resource list.
type cachedBindGroup struct {
	pipeline  gpu.Handle
	resources []gpu.Handle
	group     *wgpu.BindGroup
}

type wgpuRendererBackendImpl struct {
	mu     sync.Mutex
	logger *slog.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	presentMode   PresentMode
	sampleCount   MSAASampleCount
	clearDepth    float32
	width, height int

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView
	msaaTexture  *wgpu.Texture
	msaaView     *wgpu.TextureView

	meshes    *gpu.ResourceTable[*wgpuMesh]
	uniforms  *gpu.ResourceTable[*wgpuUniform]
	textures  *gpu.ResourceTable[*wgpuTexture]
	samplers  *gpu.ResourceTable[*wgpu.Sampler]
	pipelines *gpu.ResourceTable[*wgpuPipeline]
	targets   *gpu.ResourceTable[*wgpuTarget]

	bindGroups []cachedBindGroup
	frameHeld  bool
}

var _ Renderer = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, cfg *renderer) (Renderer, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("renderer: nil surface descriptor")
	}
	runtime.LockOSThread()

	b := &wgpuRendererBackendImpl{
		logger:      cfg.logger,
		instance:    wgpu.CreateInstance(nil),
		presentMode: cfg.presentMode,
		sampleCount: cfg.sampleCount,
		clearDepth:  cfg.clearDepth,
		meshes:      gpu.NewResourceTable[*wgpuMesh](gpu.KindMesh),
		uniforms:    gpu.NewResourceTable[*wgpuUniform](gpu.KindUniformBuffer),
		textures:    gpu.NewResourceTable[*wgpuTexture](gpu.KindTexture),
		samplers:    gpu.NewResourceTable[*wgpu.Sampler](gpu.KindSampler),
		pipelines:   gpu.NewResourceTable[*wgpuPipeline](gpu.KindPipeline),
		targets:     gpu.NewResourceTable[*wgpuTarget](gpu.KindTarget),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: cfg.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.releaseCore()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "Main Device"})
	if err != nil {
		b.releaseCore()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	if err := b.Resize(width, height); err != nil {
		b.releaseCore()
		return nil, err
	}
	b.logger.Info("renderer ready",
		"width", width,
		"height", height,
		"present_mode", b.presentMode,
		"msaa", uint32(b.sampleCount),
	)
	return b, nil
}

// configureSurface reconfigures the swapchain and rebuilds the size-dependent attachments.
// Callers hold b.mu.
func (b *wgpuRendererBackendImpl) configureSurface(width, height int) error {
	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		return errors.New("surface is not supported by the adapter")
	}
	b.surfaceFormat = capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode.wgpu(),
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseAttachments()
	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	if b.sampleCount > 1 {
		msaa, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   uint32(b.sampleCount),
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("failed to create MSAA texture: %w", err)
		}
		b.msaaTexture = msaa
		if b.msaaView, err = msaa.CreateView(nil); err != nil {
			return fmt.Errorf("failed to create MSAA view: %w", err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depth, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   uint32(b.sampleCount),
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("failed to create depth texture: %w", err)
	}
	b.depthTexture = depth
	if b.depthView, err = depth.CreateView(nil); err != nil {
		return fmt.Errorf("failed to create depth view: %w", err)
	}

	b.width, b.height = width, height
	return nil
}

func (b *wgpuRendererBackendImpl) releaseAttachments() {
	if b.msaaView != nil {
		b.msaaView.Release()
		b.msaaView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthView != nil {
		b.depthView.Release()
		b.depthView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) CreateVertexBuffer(label string, vertices []byte, vertexCount uint32, indices []uint16) (gpu.Handle, error) {
	if len(vertices) == 0 || vertexCount == 0 {
		return gpu.Handle{}, fmt.Errorf("%w: mesh %q is empty", gpu.ErrInvalidDescriptor, label)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	vertexData := align4(vertices)
	vbuf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Vertex Buffer",
		Size:             uint64(len(vertexData)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return gpu.Handle{}, fmt.Errorf("failed to create vertex buffer %q: %w", label, err)
	}
	b.queue.WriteBuffer(vbuf, 0, vertexData)

	m := &wgpuMesh{vertex: vbuf, vertexCount: vertexCount}
	if len(indices) > 0 {
		indexData := indexBytes(indices)
		ibuf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            label + " Index Buffer",
			Size:             uint64(len(indexData)),
			Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			vbuf.Release()
			return gpu.Handle{}, fmt.Errorf("failed to create index buffer %q: %w", label, err)
		}
		b.queue.WriteBuffer(ibuf, 0, indexData)
		m.index = ibuf
		m.indexCount = uint32(len(indices))
	}
	return b.meshes.Insert(m), nil
}

func (b *wgpuRendererBackendImpl) CreateUniformBuffer(label string, capacity int) (gpu.Handle, error) {
	if capacity <= 0 {
		return gpu.Handle{}, fmt.Errorf("%w: uniform buffer %q has capacity %d", gpu.ErrInvalidDescriptor, label, capacity)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Uniform Buffer",
		Size:  uint64(roundUp16(capacity)),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return gpu.Handle{}, fmt.Errorf("failed to create uniform buffer %q: %w", label, err)
	}
	return b.uniforms.Insert(&wgpuUniform{label: label, buffer: buf, capacity: capacity}), nil
}

func (b *wgpuRendererBackendImpl) CreateTexture(label string, data common.TextureStagingData) (gpu.Handle, error) {
	if err := data.Validate(); err != nil {
		return gpu.Handle{}, fmt.Errorf("texture %q: %w", label, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	size := wgpu.Extent3D{Width: data.Width, Height: data.Height, DepthOrArrayLayers: 1}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label + " Texture",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return gpu.Handle{}, fmt.Errorf("failed to create texture %q: %w", label, err)
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * 4,
			RowsPerImage: data.Height,
		},
		&size,
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return gpu.Handle{}, fmt.Errorf("failed to create view for texture %q: %w", label, err)
	}
	return b.textures.Insert(&wgpuTexture{texture: tex, view: view}), nil
}

func (b *wgpuRendererBackendImpl) CreateSampler(label string, desc gpu.SamplerDescriptor) (gpu.Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	mode := addressMode(desc.AddressMode)
	mipmap := wgpu.MipmapFilterModeLinear
	if desc.MinFilter == gpu.FilterNearest {
		mipmap = wgpu.MipmapFilterModeNearest
	}
	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label + " Sampler",
		AddressModeU:  mode,
		AddressModeV:  mode,
		AddressModeW:  mode,
		MagFilter:     filterMode(desc.MagFilter),
		MinFilter:     filterMode(desc.MinFilter),
		MipmapFilter:  mipmap,
		LodMinClamp:   0.0,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return gpu.Handle{}, fmt.Errorf("failed to create sampler %q: %w", label, err)
	}
	return b.samplers.Insert(samp), nil
}

func (b *wgpuRendererBackendImpl) CompilePipeline(desc gpu.PipelineDescriptor) (gpu.Handle, error) {
	if err := desc.Validate(); err != nil {
		return gpu.Handle{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	p := &wgpuPipeline{label: desc.Label, layout: desc.Layout}
	fail := func(err error) (gpu.Handle, error) {
		p.release()
		return gpu.Handle{}, fmt.Errorf("failed to compile pipeline %q: %w", desc.Label, err)
	}

	vs, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          desc.Label + " Vertex Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: desc.VertexSource},
	})
	if err != nil {
		return fail(err)
	}
	p.modules = append(p.modules, vs)

	fs := vs
	if desc.FragmentSource != desc.VertexSource {
		fs, err = b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
			Label:          desc.Label + " Fragment Shader",
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: desc.FragmentSource},
		})
		if err != nil {
			return fail(err)
		}
		p.modules = append(p.modules, fs)
	}

	p.bindGroupLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   desc.Label + " Bind Group Layout",
		Entries: bindGroupLayoutEntries(desc.Layout),
	})
	if err != nil {
		return fail(err)
	}

	p.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            desc.Label,
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.bindGroupLayout},
	})
	if err != nil {
		return fail(err)
	}

	p.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  desc.Label + " Render Pipeline",
		Layout: p.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: desc.VertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout(desc.Layout.Vertex)},
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: desc.FragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    b.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cullMode(desc.CullMode),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: desc.DepthWrite,
			DepthCompare:      compareFunction(desc.DepthCompare),
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fail(err)
	}

	b.logger.Debug("compiled pipeline", "label", desc.Label, "bindings", len(desc.Layout.Bindings))
	return b.pipelines.Insert(p), nil
}

func (p *wgpuPipeline) release() {
	if p.pipeline != nil {
		p.pipeline.Release()
	}
	if p.pipelineLayout != nil {
		p.pipelineLayout.Release()
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
	}
	for _, m := range p.modules {
		m.Release()
	}
}

func (b *wgpuRendererBackendImpl) UpdateUniform(h gpu.Handle, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	u := b.uniforms.Get(h)
	if len(data) > u.capacity {
		return fmt.Errorf("%w: %d bytes into %q (%d)", gpu.ErrUniformOverflow, len(data), u.label, u.capacity)
	}
	b.queue.WriteBuffer(u.buffer, 0, align4(data))
	return nil
}

// bindGroup returns the cached bind group for resources, creating it on first use.
// Callers hold b.mu.
func (b *wgpuRendererBackendImpl) bindGroup(pipeline gpu.Handle, p *wgpuPipeline, resources []gpu.Handle) (*wgpu.BindGroup, error) {
	for _, c := range b.bindGroups {
		if c.pipeline == pipeline && slices.Equal(c.resources, resources) {
			return c.group, nil
		}
	}

	entries := make([]wgpu.BindGroupEntry, len(resources))
	for i, res := range resources {
		binding := p.layout.Bindings[i].Binding
		switch res.Kind() {
		case gpu.KindUniformBuffer:
			entries[i] = wgpu.BindGroupEntry{
				Binding: binding,
				Buffer:  b.uniforms.Get(res).buffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			}
		case gpu.KindTexture:
			entries[i] = wgpu.BindGroupEntry{Binding: binding, TextureView: b.textures.Get(res).view}
		case gpu.KindSampler:
			entries[i] = wgpu.BindGroupEntry{Binding: binding, Sampler: b.samplers.Get(res)}
		}
	}

	group, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   p.label + " Bind Group",
		Layout:  p.bindGroupLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bind group for %q: %w", p.label, err)
	}
	b.bindGroups = append(b.bindGroups, cachedBindGroup{
		pipeline:  pipeline,
		resources: slices.Clone(resources),
		group:     group,
	})
	return group, nil
}

// evictBindGroups drops cached bind groups that reference h. Callers hold b.mu.
func (b *wgpuRendererBackendImpl) evictBindGroups(h gpu.Handle) {
	b.bindGroups = slices.DeleteFunc(b.bindGroups, func(c cachedBindGroup) bool {
		if c.pipeline == h || slices.Contains(c.resources, h) {
			c.group.Release()
			return true
		}
		return false
	})
}

// colorAttachment returns the attachment drawing into view, resolving through the MSAA
// texture when multisampling is enabled.
func (b *wgpuRendererBackendImpl) colorAttachment(view *wgpu.TextureView, load wgpu.LoadOp, clear gpu.Color) wgpu.RenderPassColorAttachment {
	att := wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     load,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: wgpu.Color{R: clear.R, G: clear.G, B: clear.B, A: clear.A},
	}
	if b.msaaView != nil {
		att.View = b.msaaView
		att.ResolveTarget = view
	}
	return att
}

// submitPass encodes one render pass with fn and submits it. Callers hold b.mu.
func (b *wgpuRendererBackendImpl) submitPass(desc *wgpu.RenderPassDescriptor, fn func(pass *wgpu.RenderPassEncoder)) error {
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(desc)
	if fn != nil {
		fn(pass)
	}
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackendImpl) SubmitDraw(target gpu.Handle, call gpu.DrawCall) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := b.targets.Get(target)
	p := b.pipelines.Get(call.Pipeline)
	m := b.meshes.Get(call.Mesh)
	if err := gpu.CheckResources(p.layout, call.Resources); err != nil {
		return fmt.Errorf("draw with %q: %w", p.label, err)
	}
	group, err := b.bindGroup(call.Pipeline, p, call.Resources)
	if err != nil {
		return err
	}

	return b.submitPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{b.colorAttachment(t.view, wgpu.LoadOpLoad, gpu.Color{})},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:         b.depthView,
			DepthLoadOp:  wgpu.LoadOpLoad,
			DepthStoreOp: wgpu.StoreOpStore,
		},
	}, func(pass *wgpu.RenderPassEncoder) {
		pass.SetPipeline(p.pipeline)
		pass.SetBindGroup(0, group, nil)
		pass.SetVertexBuffer(0, m.vertex, 0, wgpu.WholeSize)
		if m.index != nil {
			pass.SetIndexBuffer(m.index, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
			pass.DrawIndexed(m.indexCount, 1, 0, 0, 0)
		} else {
			pass.Draw(m.vertexCount, 1, 0, 0)
		}
	})
}

func (b *wgpuRendererBackendImpl) Release(h gpu.Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.evictBindGroups(h)
	switch h.Kind() {
	case gpu.KindMesh:
		m := b.meshes.Remove(h)
		m.vertex.Release()
		if m.index != nil {
			m.index.Release()
		}
	case gpu.KindUniformBuffer:
		b.uniforms.Remove(h).buffer.Release()
	case gpu.KindTexture:
		t := b.textures.Remove(h)
		t.view.Release()
		t.texture.Release()
	case gpu.KindSampler:
		b.samplers.Remove(h).Release()
	case gpu.KindPipeline:
		b.pipelines.Remove(h).release()
	case gpu.KindTarget:
		b.releaseTarget(b.targets.Remove(h))
	default:
		panic(fmt.Sprintf("renderer: release of %v", h))
	}
}

func (b *wgpuRendererBackendImpl) releaseTarget(t *wgpuTarget) {
	t.view.Release()
	t.surface.Release()
	b.frameHeld = false
}

func (b *wgpuRendererBackendImpl) BeginFrame(clear gpu.Color) (gpu.Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Acquiring a second surface image before presenting the first is a wgpu validation error.
	if b.frameHeld {
		return gpu.Handle{}, errors.New("previous frame not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return gpu.Handle{}, fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return gpu.Handle{}, fmt.Errorf("failed to create surface view: %w", err)
	}

	err = b.submitPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{b.colorAttachment(view, wgpu.LoadOpClear, clear)},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: b.clearDepth,
		},
	}, nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return gpu.Handle{}, err
	}

	b.frameHeld = true
	return b.targets.Insert(&wgpuTarget{surface: surfaceTexture, view: view}), nil
}

func (b *wgpuRendererBackendImpl) Present(target gpu.Handle) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := b.targets.Remove(target)
	b.surface.Present()
	b.releaseTarget(t)
	return nil
}

func (b *wgpuRendererBackendImpl) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", gpu.ErrInvalidDescriptor, width, height)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.configureSurface(width, height); err != nil {
		return fmt.Errorf("failed to resize surface to %dx%d: %w", width, height, err)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *wgpuRendererBackendImpl) Viewport() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *wgpuRendererBackendImpl) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range b.bindGroups {
		c.group.Release()
	}
	b.bindGroups = nil

	leaked := b.meshes.Len() + b.uniforms.Len() + b.textures.Len() + b.samplers.Len() + b.pipelines.Len()
	if leaked > 0 {
		b.logger.Warn("releasing renderer with live resources", "count", leaked)
	}
	b.targets.Drain(func(_ gpu.Handle, t *wgpuTarget) { b.releaseTarget(t) })
	b.meshes.Drain(func(_ gpu.Handle, m *wgpuMesh) {
		m.vertex.Release()
		if m.index != nil {
			m.index.Release()
		}
	})
	b.uniforms.Drain(func(_ gpu.Handle, u *wgpuUniform) { u.buffer.Release() })
	b.textures.Drain(func(_ gpu.Handle, t *wgpuTexture) {
		t.view.Release()
		t.texture.Release()
	})
	b.samplers.Drain(func(_ gpu.Handle, s *wgpu.Sampler) { s.Release() })
	b.pipelines.Drain(func(_ gpu.Handle, p *wgpuPipeline) { p.release() })

	b.releaseAttachments()
	b.releaseCore()
}

// releaseCore frees the queue, device, adapter, surface and instance in reverse creation order.
func (b *wgpuRendererBackendImpl) releaseCore() {
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
