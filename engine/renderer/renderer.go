package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-prims/engine/camera"
	"github.com/Carmen-Shannon/oxy-prims/engine/command"
	"github.com/Carmen-Shannon/oxy-prims/engine/mesh"
	"github.com/Carmen-Shannon/oxy-prims/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-prims/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrSurfaceNotConfigured is returned by Render while the surface has a zero width or height.
var ErrSurfaceNotConfigured = errors.New("surface is not configured")

// DefaultClearColor is the background the main render pass clears to.
var DefaultClearColor = wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	store   mesh.Store
	logger  *log.Logger
	batcher *batcher
	pending command.List

	instancesDrawn int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	clearColor           wgpu.Color
	outlineEnabled       bool
	outlineScale         float32
	outlineColor         [4]float32
}

// Renderer defines the interface for the rendering system.
//
// Callers submit draw commands during a frame and then call Render once. Render groups the
// commands by mesh type, grows instance buffers as needed, and draws every mesh twice: once
// filled and once as a slightly enlarged wireframe outline.
type Renderer interface {
	// Submit queues draw commands for the next Render call.
	//
	// Parameters:
	//   - cmds: the commands to draw
	Submit(cmds ...command.DrawCommand)

	// Render draws every command submitted since the previous Render and clears the queue.
	// The queue is cleared even when the frame is skipped.
	//
	// Parameters:
	//   - cam: the view and projection to draw with
	//
	// Returns:
	//   - error: ErrSurfaceNotConfigured while the surface has no size, or a wrapped GPU error
	Render(cam camera.Transform) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Store returns the mesh store the renderer draws from.
	Store() mesh.Store

	// Pipeline retrieves the cached Pipeline associated with the given key, or nil if not found.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// InstancesDrawn returns the number of solid instances drawn by the last completed frame.
	InstancesDrawn() int

	// Release releases the pipelines and every GPU resource held by the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type, drawing into the
// given window's surface. Panics if the GPU device, pipelines, or mesh buffers cannot be created.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := newRenderer(backendType, options...)

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	var backend RendererBackend
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa, r.clearColor)
	}

	if err := r.init(backend, win.Width(), win.Height()); err != nil {
		panic(err)
	}
	return r
}

// newRenderer applies options over the defaults without touching any GPU state.
func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:             &sync.Mutex{},
		pipelineCache:  make(map[string]pipeline.Pipeline),
		backendType:    backendType,
		logger:         log.Default(),
		clearColor:     DefaultClearColor,
		outlineEnabled: true,
		outlineScale:   DefaultOutlineScale,
		outlineColor:   DefaultOutlineColor,
	}
	for _, opt := range options {
		opt(r)
	}
	if r.store == nil {
		r.store = mesh.NewStore(mesh.WithStoreLogger(r.logger))
	}

	r.batcher = newBatcher(r.store, r.logger)
	r.batcher.outlineEnabled = r.outlineEnabled
	r.batcher.outlineScale = r.outlineScale
	r.batcher.outlineColor = r.outlineColor
	return r
}

// init binds the backend, configures the surface, registers the pipelines and uploads every
// mesh in the store.
func (r *renderer) init(backend RendererBackend, width, height int) error {
	r.backend = backend
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.ConfigureSurface(width, height)

	for _, p := range defaultPipelines() {
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("failed to register %s pipeline: %w", p.PipelineKey(), err)
		}
		r.pipelineCache[p.PipelineKey()] = p
	}

	if err := r.backend.InitCameraBuffer(r.pipelineCache[SolidPipelineKey]); err != nil {
		return fmt.Errorf("failed to create camera buffer: %w", err)
	}

	for _, t := range r.store.Types() {
		m, _ := r.store.Mesh(t)
		if err := r.backend.InitMeshBuffers(t, m.Geometry()); err != nil {
			return fmt.Errorf("failed to upload %s mesh: %w", t, err)
		}
	}
	return nil
}

func (r *renderer) Submit(cmds ...command.DrawCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending.Push(cmds...)
}

func (r *renderer) Render(cam camera.Transform) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.pending.Reset()

	if !r.backend.SurfaceConfigured() {
		return ErrSurfaceNotConfigured
	}

	batches := r.batcher.batch(r.pending.Commands())

	for _, b := range batches {
		if err := r.upload(PassSolid, b.Mesh, b.Mesh.SolidInstances(), b.Solid); err != nil {
			return err
		}
		if err := r.upload(PassOutline, b.Mesh, b.Mesh.EdgeInstances(), b.Outline); err != nil {
			return err
		}
	}

	uniform := camera.NewGPUCameraUniform(cam)
	r.backend.WriteCamera(uniform.Marshal())

	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}

	drawn := 0
	solid := r.pipelineCache[SolidPipelineKey]
	for _, b := range batches {
		r.backend.DrawCall(solid, PassSolid, b.Mesh.Type(), uint32(len(b.Solid)))
		drawn += len(b.Solid)
	}
	outline := r.pipelineCache[OutlinePipelineKey]
	for _, b := range batches {
		if len(b.Outline) == 0 {
			continue
		}
		r.backend.DrawCall(outline, PassOutline, b.Mesh.Type(), uint32(len(b.Outline)))
	}

	r.backend.EndFrame()
	r.backend.Present()
	r.instancesDrawn = drawn
	return nil
}

// upload grows the GPU buffer to the store's capacity and writes the pass's instances.
// Caller must hold the mutex.
func (r *renderer) upload(pass Pass, m mesh.Mesh, buf *mesh.InstanceBuffer, instances []command.Instance) error {
	if len(instances) == 0 {
		return nil
	}
	if err := r.backend.EnsureInstanceCapacity(pass, m.Type(), buf.Capacity()); err != nil {
		return fmt.Errorf("failed to grow %s %s instance buffer: %w", m.Type(), pass, err)
	}
	r.backend.WriteInstances(pass, m.Type(), command.MarshalInstances(instances))
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Store() mesh.Store {
	return r.store
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) InstancesDrawn() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.instancesDrawn
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	if r.backend != nil {
		r.backend.Release()
	}
}
