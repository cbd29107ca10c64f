package pipeline

import (
	"errors"
	"sort"

	"github.com/Carmen-Shannon/oxy-prims/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// DepthFormat is the depth attachment format shared by every render pipeline and the main depth texture.
const DepthFormat = wgpu.TextureFormatDepth24Plus

// ErrMissingShader is returned when a pipeline is described without both of its shader stages.
var ErrMissingShader = errors.New("both vertex and fragment shaders must be set to create a render pipeline")

// Descriptor assembles the wgpu.RenderPipelineDescriptor for a pipeline from its pass state and
// already-compiled shader modules. Vertex buffer layouts come from the vertex shader in slot order.
// Front faces wind counter-clockwise and every color channel is written.
//
// Parameters:
//   - p: the pipeline whose configuration is described
//   - layout: the pipeline layout holding the merged bind group layouts
//   - vs: the compiled vertex shader module
//   - fs: the compiled fragment shader module
//   - targetFormat: the surface color format
//   - sampleCount: the MSAA sample count of the render targets
//
// Returns:
//   - *wgpu.RenderPipelineDescriptor: the descriptor ready for Device.CreateRenderPipeline
//   - error: ErrMissingShader if either stage is unset
func Descriptor(p Pipeline, layout *wgpu.PipelineLayout, vs, fs *wgpu.ShaderModule, targetFormat wgpu.TextureFormat, sampleCount uint32) (*wgpu.RenderPipelineDescriptor, error) {
	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil || fragmentShader == nil {
		return nil, ErrMissingShader
	}

	target := wgpu.ColorTargetState{
		Format:    targetFormat,
		WriteMask: wgpu.ColorWriteMaskAll,
		Blend:     p.BlendState(),
	}

	return &wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " " + p.Pass().String() + " pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexShader.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      p.DepthCompare(),
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	}, nil
}

// MergeBindGroupLayouts combines the bind group layouts declared by the two stages of a pipeline.
// A binding declared by both stages keeps one entry with the visibilities OR'd together.
//
// Parameters:
//   - p: the pipeline whose shader layouts are merged
//
// Returns:
//   - []wgpu.BindGroupLayoutDescriptor: one descriptor per group index from 0 to the highest declared group
func MergeBindGroupLayouts(p Pipeline) []wgpu.BindGroupLayoutDescriptor {
	byGroup := make(map[int]map[uint32]wgpu.BindGroupLayoutEntry)
	maxGroup := -1
	for _, st := range []shader.ShaderType{shader.ShaderTypeVertex, shader.ShaderTypeFragment} {
		s := p.Shader(st)
		if s == nil {
			continue
		}
		for g, desc := range s.BindGroupLayoutDescriptors() {
			maxGroup = max(maxGroup, g)
			if byGroup[g] == nil {
				byGroup[g] = make(map[uint32]wgpu.BindGroupLayoutEntry)
			}
			for _, e := range desc.Entries {
				if existing, ok := byGroup[g][e.Binding]; ok {
					existing.Visibility |= e.Visibility
					e = existing
				}
				byGroup[g][e.Binding] = e
			}
		}
	}

	merged := make([]wgpu.BindGroupLayoutDescriptor, maxGroup+1)
	for g, entries := range byGroup {
		flat := make([]wgpu.BindGroupLayoutEntry, 0, len(entries))
		for _, e := range entries {
			flat = append(flat, e)
		}
		sort.Slice(flat, func(i, j int) bool {
			return flat[i].Binding < flat[j].Binding
		})
		merged[g] = wgpu.BindGroupLayoutDescriptor{
			Label:   p.PipelineKey(),
			Entries: flat,
		}
	}
	return merged
}
