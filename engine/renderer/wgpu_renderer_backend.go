package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-prims/engine/command"
	"github.com/Carmen-Shannon/oxy-prims/engine/mesh"
	"github.com/Carmen-Shannon/oxy-prims/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-prims/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// instanceStride is the byte size of one marshaled command.Instance.
var instanceStride = uint64(new(command.Instance).Size())

// gpuInstanceBuffer is a per-pass instance buffer and the instance count it was allocated for.
type gpuInstanceBuffer struct {
	buffer   *wgpu.Buffer
	capacity int
}

// gpuMesh holds the GPU buffers of one mesh type.
type gpuMesh struct {
	vertexBuffer    *wgpu.Buffer
	indexBuffer     *wgpu.Buffer
	edgeIndexBuffer *wgpu.Buffer
	indexCount      int
	edgeIndexCount  int
	instances       [2]gpuInstanceBuffer
}

func (m *gpuMesh) release() {
	for _, buf := range []*wgpu.Buffer{m.vertexBuffer, m.indexBuffer, m.edgeIndexBuffer, m.instances[PassSolid].buffer, m.instances[PassOutline].buffer} {
		if buf != nil {
			buf.Release()
		}
	}
	*m = gpuMesh{}
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	width, height        int
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass
	clearColor  wgpu.Color

	cameraBuffer          *wgpu.Buffer
	cameraBindGroupLayout *wgpu.BindGroupLayout
	cameraBindGroup       *wgpu.BindGroup

	meshes map[mesh.MeshType]*gpuMesh

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, clearColor wgpu.Color) *wgpuRendererBackendImpl {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		clearColor:  clearColor,
		meshes:      make(map[mesh.MeshType]*gpuMesh),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	// the pipelines are created before the first resize, so the target format is needed up front
	capabilities := w.surface.GetCapabilities(w.adapter)
	w.surfaceFormat = &capabilities.Formats[0]

	return w
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseTargets()
	if width <= 0 || height <= 0 {
		b.width, b.height = 0, 0
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// the render pass draws into the MSAA texture and resolves into the swapchain view
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        pipeline.DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	b.width, b.height = width, height
}

// releaseTargets releases the size-dependent render targets.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
	b.renderPassDescriptor = nil
}

func (b *wgpuRendererBackendImpl) SurfaceConfigured() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width > 0 && b.height > 0
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil || fragmentShader == nil {
		return pipeline.ErrMissingShader
	}

	vs, err := b.device.CreateShaderModule(vertexShader.Module())
	if err != nil {
		return err
	}
	defer vs.Release()
	fs, err := b.device.CreateShaderModule(fragmentShader.Module())
	if err != nil {
		return err
	}
	defer fs.Release()

	merged := pipeline.MergeBindGroupLayouts(p)
	bindGroupLayouts := make([]*wgpu.BindGroupLayout, len(merged))
	for g := range merged {
		layout, layoutErr := b.device.CreateBindGroupLayout(&merged[g])
		if layoutErr != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		defer layout.Release()
		bindGroupLayouts[g] = layout
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	desc, err := pipeline.Descriptor(p, pipelineLayout, vs, fs, *b.surfaceFormat, uint32(b.sampleCount))
	if err != nil {
		return err
	}
	created, err := b.device.CreateRenderPipeline(desc)
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) InitCameraBuffer(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	merged := pipeline.MergeBindGroupLayouts(p)
	if len(merged) == 0 || len(merged[0].Entries) == 0 {
		return errors.New("pipeline declares no camera binding at group 0")
	}
	descriptor := merged[0]
	entry := descriptor.Entries[0]

	layout, err := b.device.CreateBindGroupLayout(&descriptor)
	if err != nil {
		return err
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Uniform Buffer",
		Size:  entry.Buffer.MinBindingSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		layout.Release()
		return err
	}
	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: entry.Binding,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		buf.Release()
		layout.Release()
		return err
	}

	b.cameraBindGroupLayout = layout
	b.cameraBuffer = buf
	b.cameraBindGroup = bindGroup
	return nil
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(meshType mesh.MeshType, geometry mesh.Geometry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.meshes[meshType]; ok {
		old.release()
	}

	m := &gpuMesh{
		indexCount:     len(geometry.Indices),
		edgeIndexCount: len(geometry.EdgeIndices),
	}
	uploads := []struct {
		target **wgpu.Buffer
		label  string
		usage  wgpu.BufferUsage
		data   []byte
	}{
		{&m.vertexBuffer, "Vertex Buffer", wgpu.BufferUsageVertex, mesh.MarshalVertices(geometry.Vertices)},
		{&m.indexBuffer, "Index Buffer", wgpu.BufferUsageIndex, mesh.MarshalIndices(geometry.Indices)},
		{&m.edgeIndexBuffer, "Edge Index Buffer", wgpu.BufferUsageIndex, mesh.MarshalIndices(geometry.EdgeIndices)},
	}
	for _, u := range uploads {
		if len(u.data) == 0 {
			continue
		}
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: meshType.String() + " " + u.label,
			Size:  uint64(len(u.data)),
			Usage: u.usage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			m.release()
			return err
		}
		b.queue.WriteBuffer(buf, 0, u.data)
		*u.target = buf
	}

	b.meshes[meshType] = m
	return nil
}

func (b *wgpuRendererBackendImpl) EnsureInstanceCapacity(pass Pass, meshType mesh.MeshType, capacity int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.meshes[meshType]
	if !ok {
		return fmt.Errorf("no GPU buffers for %s", meshType)
	}
	slot := &m.instances[pass]
	if slot.buffer != nil && capacity <= slot.capacity {
		return nil
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: fmt.Sprintf("%s %s Instance Buffer", meshType, pass),
		Size:  uint64(capacity) * instanceStride,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	if slot.buffer != nil {
		slot.buffer.Release()
	}
	slot.buffer = buf
	slot.capacity = capacity
	return nil
}

func (b *wgpuRendererBackendImpl) WriteInstances(pass Pass, meshType mesh.MeshType, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.meshes[meshType]
	if !ok || m.instances[pass].buffer == nil || len(data) == 0 {
		return
	}
	b.queue.WriteBuffer(m.instances[pass].buffer, 0, data)
}

func (b *wgpuRendererBackendImpl) WriteCamera(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cameraBuffer == nil {
		return
	}
	b.queue.WriteBuffer(b.cameraBuffer, 0, data)
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return ErrSurfaceNotConfigured
	}
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	// With MSAA the swapchain view is the resolve target, otherwise it is drawn to directly.
	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetBindGroup(0, b.cameraBindGroup, nil)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) DrawCall(p pipeline.Pipeline, pass Pass, meshType mesh.MeshType, instanceCount uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.meshes[meshType]
	if !ok || b.framePass == nil || instanceCount == 0 {
		return
	}
	instances := m.instances[pass].buffer
	indexBuffer, indexCount := m.indexBuffer, m.indexCount
	if pass == PassOutline {
		indexBuffer, indexCount = m.edgeIndexBuffer, m.edgeIndexCount
	}
	if instances == nil || indexBuffer == nil || p.RenderPipeline() == nil {
		return
	}

	b.framePass.SetPipeline(p.RenderPipeline())
	b.framePass.SetVertexBuffer(0, m.vertexBuffer, 0, wgpu.WholeSize)
	b.framePass.SetVertexBuffer(1, instances, 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(indexCount), instanceCount, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrameSurface()
		return
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrameSurface()
}

// releaseFrameSurface drops the swapchain texture and view acquired by BeginFrame.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseFrameSurface() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrameSurface()
	b.releaseTargets()
	for t, m := range b.meshes {
		m.release()
		delete(b.meshes, t)
	}
	if b.cameraBindGroup != nil {
		b.cameraBindGroup.Release()
		b.cameraBindGroup = nil
	}
	if b.cameraBindGroupLayout != nil {
		b.cameraBindGroupLayout.Release()
		b.cameraBindGroupLayout = nil
	}
	if b.cameraBuffer != nil {
		b.cameraBuffer.Release()
		b.cameraBuffer = nil
	}
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
