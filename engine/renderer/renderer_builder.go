package renderer

import (
	"log"

	"github.com/Carmen-Shannon/oxy-prims/engine/mesh"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithStore sets the mesh store the renderer uploads and draws from.
// When not specified, a store with the default mesh types is generated.
//
// Parameters:
//   - store: the mesh store to render from
//
// Returns:
//   - RendererBuilderOption: a function that applies the store option to a renderer
func WithStore(store mesh.Store) RendererBuilderOption {
	return func(r *renderer) {
		r.store = store
	}
}

// WithLogger sets the logger used for renderer diagnostics. A nil logger is ignored.
//
// Parameters:
//   - logger: the logger to write to
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *log.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithOutline enables or disables the wireframe outline pass. Enabled by default.
//
// Parameters:
//   - enabled: false to draw solids only
//
// Returns:
//   - RendererBuilderOption: a function that applies the outline option to a renderer
func WithOutline(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.outlineEnabled = enabled
	}
}

// WithOutlineStyle overrides the outline scale and color.
// Defaults to DefaultOutlineScale and DefaultOutlineColor.
//
// Parameters:
//   - scale: the uniform model-space scale of the outline relative to the solid
//   - color: the RGBA outline color
//
// Returns:
//   - RendererBuilderOption: a function that applies the outline style to a renderer
func WithOutlineStyle(scale float32, color [4]float32) RendererBuilderOption {
	return func(r *renderer) {
		r.outlineScale = scale
		r.outlineColor = color
	}
}

// WithClearColor sets the background color of the main render pass.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(color wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
//
// Parameters:
//   - count: the MSAASampleCount to use (MSAAOff or MSAA4x)
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
