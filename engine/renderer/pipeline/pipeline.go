package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-prims/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pass names one of the two draws every mesh goes through each frame.
type Pass int

const (
	// PassSolid draws filled, back-face culled triangles that write depth.
	PassSolid Pass = iota

	// PassOutline draws the edge list over the solid pass without writing depth.
	PassOutline
)

// String returns the pass name.
func (p Pass) String() string {
	switch p {
	case PassSolid:
		return "solid"
	case PassOutline:
		return "outline"
	default:
		return fmt.Sprintf("Pass(%d)", int(p))
	}
}

// passState is the fixed-function state a Pass starts from.
type passState struct {
	topology     wgpu.PrimitiveTopology
	cullMode     wgpu.CullMode
	depthWrite   bool
	depthCompare wgpu.CompareFunction
}

var passStates = map[Pass]passState{
	PassSolid: {
		topology:     wgpu.PrimitiveTopologyTriangleList,
		cullMode:     wgpu.CullModeBack,
		depthWrite:   true,
		depthCompare: wgpu.CompareFunctionLess,
	},
	PassOutline: {
		topology:     wgpu.PrimitiveTopologyLineList,
		cullMode:     wgpu.CullModeBack,
		depthWrite:   false,
		depthCompare: wgpu.CompareFunctionLess,
	},
}

// alphaBlend is straight alpha over the target color, keeping the source alpha.
var alphaBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorZero,
		Operation: wgpu.BlendOperationAdd,
	},
}

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string
	pass        Pass
	state       passState
	blend       bool

	vertexShader, fragmentShader shader.Shader

	// renderPipeline is nil until the backend registers the pipeline
	renderPipeline *wgpu.RenderPipeline
}

// Pipeline is a vertex and fragment shader pair drawn as one Pass. It carries the depth, cull,
// topology and blend state the backend needs to create the GPU object.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Pass returns the pass the pipeline draws.
	Pass() Pass

	// Shader retrieves the shader associated with the specified stage if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the stage of shader to retrieve
	//
	// Returns:
	//   - shader.Shader: the shader for the stage, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// RenderPipeline returns the GPU pipeline, or nil if the pipeline has not been registered.
	RenderPipeline() *wgpu.RenderPipeline

	DepthWriteEnabled() bool
	DepthCompare() wgpu.CompareFunction
	CullMode() wgpu.CullMode
	Topology() wgpu.PrimitiveTopology

	// BlendState returns the color target blend state.
	//
	// Returns:
	//   - *wgpu.BlendState: straight alpha blending, or nil when blending is off
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the created GPU pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release releases the GPU pipeline if one has been set.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline. Without options it is an opaque
// PassSolid pipeline with no shaders.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey: pipelineKey,
		pass:        PassSolid,
		state:       passStates[PassSolid],
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Pass() Pass {
	return p.pass
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.state.depthWrite
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	return p.state.depthCompare
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.state.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.state.topology
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	if !p.blend {
		return nil
	}
	b := alphaBlend
	return &b
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
