package command

import "github.com/Carmen-Shannon/oxy-prims/common"

// DrawCommandBuilderOption is a functional option for configuring a DrawCommand via NewDrawCommand.
type DrawCommandBuilderOption func(*placement)

// WithPosition is an option builder that sets the world-space position of the placement.
//
// Parameters:
//   - position: the translation
//
// Returns:
//   - DrawCommandBuilderOption: a function that applies the position option
func WithPosition(position [3]float32) DrawCommandBuilderOption {
	return func(p *placement) {
		p.position = position
	}
}

// WithRotation is an option builder that sets the orientation of the placement.
//
// Parameters:
//   - rotation: a column-major rotation matrix
//
// Returns:
//   - DrawCommandBuilderOption: a function that applies the rotation option
func WithRotation(rotation common.Mat3) DrawCommandBuilderOption {
	return func(p *placement) {
		p.rotation = rotation
	}
}

// WithScale is an option builder that sets the uniform scale of the placement.
//
// Parameters:
//   - scale: the uniform scale factor
//
// Returns:
//   - DrawCommandBuilderOption: a function that applies the scale option
func WithScale(scale float32) DrawCommandBuilderOption {
	return func(p *placement) {
		p.scale = scale
	}
}

// WithColor is an option builder that sets the color from normalized [0, 1] channels.
//
// Parameters:
//   - r, g, b, a: the color channels
//
// Returns:
//   - DrawCommandBuilderOption: a function that applies the color option
func WithColor(r, g, b, a float32) DrawCommandBuilderOption {
	return func(p *placement) {
		p.color = [4]float32{r, g, b, a}
	}
}

// WithColorU8 is an option builder that sets the color from 8-bit channels.
// Each channel is divided by 255, so 255 maps to exactly 1.0.
//
// Parameters:
//   - r, g, b, a: the color channels in [0, 255]
//
// Returns:
//   - DrawCommandBuilderOption: a function that applies the color option
func WithColorU8(r, g, b, a uint8) DrawCommandBuilderOption {
	return func(p *placement) {
		p.color = [4]float32{
			float32(r) / 255,
			float32(g) / 255,
			float32(b) / 255,
			float32(a) / 255,
		}
	}
}
