package pipeline

import (
	"github.com/Carmen-Shannon/oxy-prims/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithShaders sets both shader stages. Either may be nil, but Descriptor needs both.
//
// Parameters:
//   - vs: the vertex shader
//   - fs: the fragment shader
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithShaders(vs, fs shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = vs
		p.fragmentShader = fs
	}
}

// WithPass resets the topology, culling and depth state to those of pass.
// Options that adjust individual state should come after it.
//
// Parameters:
//   - pass: PassSolid or PassOutline
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithPass(pass Pass) PipelineBuilderOption {
	return func(p *pipeline) {
		if state, ok := passStates[pass]; ok {
			p.pass = pass
			p.state = state
		}
	}
}

// WithAlphaBlending turns straight alpha blending on the color target on or off.
func WithAlphaBlending(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blend = enabled
	}
}

// WithCullMode overrides the pass's cull mode.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.cullMode = mode
	}
}

// WithDepthCompare overrides the pass's depth test.
func WithDepthCompare(compare wgpu.CompareFunction) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.depthCompare = compare
	}
}
