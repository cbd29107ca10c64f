package command

import (
	"github.com/Carmen-Shannon/oxy-prims/common"
	"github.com/Carmen-Shannon/oxy-prims/engine/mesh"
)

// DrawCommand pairs a primitive type with one packed instance.
// Commands carry no identity; they are built, submitted and discarded every frame.
type DrawCommand struct {
	MeshType mesh.MeshType
	Instance Instance
}

// placement is the builder state turned into an Instance by NewDrawCommand.
type placement struct {
	position [3]float32
	rotation common.Mat3
	scale    float32
	color    [4]float32
}

// NewDrawCommand builds a DrawCommand for one placement of a primitive.
// Defaults are the origin, identity rotation, unit scale and opaque white.
// The model matrix is composed as M = T * R * S from the rotation matrix converted to a unit quaternion.
//
// Parameters:
//   - t: the primitive type to draw
//   - options: functional options describing the placement
//
// Returns:
//   - DrawCommand: the packed command
func NewDrawCommand(t mesh.MeshType, options ...DrawCommandBuilderOption) DrawCommand {
	p := &placement{
		rotation: common.Identity3(),
		scale:    1,
		color:    [4]float32{1, 1, 1, 1},
	}
	for _, option := range options {
		option(p)
	}

	cmd := DrawCommand{MeshType: t}
	cmd.Instance.Color = p.color
	common.ScaleRotationTranslation(
		cmd.Instance.Model[:],
		[3]float32{p.scale, p.scale, p.scale},
		common.QuatFromMat3(p.rotation),
		p.position,
	)
	return cmd
}
