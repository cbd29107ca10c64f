package renderer

import (
	"github.com/Carmen-Shannon/oxy-prims/engine/mesh"
	"github.com/Carmen-Shannon/oxy-prims/engine/renderer/pipeline"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4
)

// Pass selects which of a mesh's two draw paths a buffer or draw call belongs to.
type Pass int

const (
	// PassSolid draws the triangle index buffer with the solid instances.
	PassSolid Pass = iota

	// PassOutline draws the edge index buffer with the derived outline instances.
	PassOutline
)

func (p Pass) String() string {
	if p == PassOutline {
		return "outline"
	}
	return "solid"
}

// RendererBackend is the GPU-facing half of the Renderer. The renderer decides what to draw;
// the backend owns every GPU handle and turns those decisions into commands.
type RendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when calling Configure on a surface.
	// A zero width or height leaves the surface unconfigured until the next non-zero size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SurfaceConfigured reports whether the surface currently has a drawable size.
	SurfaceConfigured() bool

	// SetPresentMode sets the present mode used by the next ConfigureSurface call.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the shader modules, pipeline layout and GPU pipeline for p
	// and stores the result on it via SetRenderPipeline.
	//
	// Parameters:
	//   - p: the pipeline object containing the shaders and configuration for the pipeline
	//
	// Returns:
	//   - error: an error if the pipeline could not be created, otherwise nil
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitCameraBuffer creates the camera uniform buffer and its bind group at group 0.
	//
	// Parameters:
	//   - p: a registered pipeline whose merged group 0 layout describes the uniform binding
	//
	// Returns:
	//   - error: an error if the buffer or bind group could not be created
	InitCameraBuffer(p pipeline.Pipeline) error

	// InitMeshBuffers uploads a mesh's immutable vertex, index and edge index buffers.
	//
	// Parameters:
	//   - meshType: the mesh the buffers belong to
	//   - geometry: the generated geometry to upload
	//
	// Returns:
	//   - error: an error if the buffers could not be created
	InitMeshBuffers(meshType mesh.MeshType, geometry mesh.Geometry) error

	// EnsureInstanceCapacity reallocates the instance buffer for a mesh and pass whenever capacity
	// exceeds the currently allocated instance count. Existing contents are not preserved.
	//
	// Parameters:
	//   - pass: the draw path the buffer feeds
	//   - meshType: the mesh the buffer belongs to
	//   - capacity: the required capacity in instances
	//
	// Returns:
	//   - error: an error if the buffer could not be created
	EnsureInstanceCapacity(pass Pass, meshType mesh.MeshType, capacity int) error

	// WriteInstances uploads marshaled instances at the start of a mesh's instance buffer.
	// The buffer handle is looked up at call time, after any reallocation.
	//
	// Parameters:
	//   - pass: the draw path the buffer feeds
	//   - meshType: the mesh the buffer belongs to
	//   - data: the marshaled instance records
	WriteInstances(pass Pass, meshType mesh.MeshType, data []byte)

	// WriteCamera uploads the camera uniform.
	//
	// Parameters:
	//   - data: the marshaled camera uniform
	WriteCamera(data []byte)

	// BeginFrame acquires the next swapchain texture, creates a command encoder, and begins
	// the main render pass. Must be paired with EndFrame after all DrawCall invocations.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall encodes one indexed, instanced draw of a mesh within the current render pass.
	//
	// Parameters:
	//   - p: the registered pipeline to draw with
	//   - pass: selects the triangle or edge index buffer and the matching instance buffer
	//   - meshType: the mesh to draw
	//   - instanceCount: the number of instances to draw
	DrawCall(p pipeline.Pipeline, pass Pass, meshType mesh.MeshType, instanceCount uint32)

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Release releases every GPU resource held by the backend.
	Release()
}
