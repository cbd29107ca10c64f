package renderer

import (
	_ "embed"
	"strings"

	"github.com/Carmen-Shannon/oxy-prims/engine/camera"
	"github.com/Carmen-Shannon/oxy-prims/engine/command"
	"github.com/Carmen-Shannon/oxy-prims/engine/mesh"
	"github.com/Carmen-Shannon/oxy-prims/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-prims/engine/renderer/shader"
)

const (
	// SolidPipelineKey is the cache key of the filled triangle pipeline.
	SolidPipelineKey = "solid"

	// OutlinePipelineKey is the cache key of the wireframe edge pipeline.
	OutlinePipelineKey = "outline"
)

var (
	//go:embed assets/solid_vert.wgsl
	solidVertexBody string

	//go:embed assets/solid_frag.wgsl
	solidFragmentSource string

	//go:embed assets/outline_frag.wgsl
	outlineFragmentSource string
)

// solidVertexSource prepends the shared struct definitions the vertex entry point reads.
func solidVertexSource() string {
	return strings.Join([]string{
		camera.GPUCameraUniformSource,
		mesh.GPUVertexSource,
		command.GPUInstanceSource,
		solidVertexBody,
	}, "\n")
}

// defaultPipelines builds the solid and outline pipelines. Both share one vertex shader.
func defaultPipelines() []pipeline.Pipeline {
	vs := shader.NewShader("solid_vert", shader.ShaderTypeVertex, solidVertexSource())
	solidFS := shader.NewShader("solid_frag", shader.ShaderTypeFragment, solidFragmentSource)
	outlineFS := shader.NewShader("outline_frag", shader.ShaderTypeFragment, outlineFragmentSource)

	solid := pipeline.NewPipeline(SolidPipelineKey,
		pipeline.WithShaders(vs, solidFS),
		pipeline.WithPass(pipeline.PassSolid),
		pipeline.WithAlphaBlending(true),
	)
	outline := pipeline.NewPipeline(OutlinePipelineKey,
		pipeline.WithShaders(vs, outlineFS),
		pipeline.WithPass(pipeline.PassOutline),
		pipeline.WithAlphaBlending(true),
	)
	return []pipeline.Pipeline{solid, outline}
}
