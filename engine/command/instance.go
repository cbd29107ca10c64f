package command

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-prims/common"
)

// GPUInstanceSource is the canonical WGSL definition of the InstanceInput struct.
// The model matrix is split into four vec4 columns at locations 3..6, followed by the color at location 7.
//
//go:embed assets/instance.wgsl
var GPUInstanceSource string

// Instance is the packed per-placement record uploaded to the instance buffers.
// Size: 80 bytes, no padding.
type Instance struct {
	Model [16]float32 // offset  0: column-major model matrix (4 x vec4<f32>)
	Color [4]float32  // offset 64: RGBA color (vec4<f32>)
}

// Size returns the size of the Instance struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (in *Instance) Size() int {
	return int(unsafe.Sizeof(*in))
}

// Marshal serializes the Instance into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer
func (in *Instance) Marshal() []byte {
	buf := make([]byte, in.Size())
	in.marshalInto(buf)
	return buf
}

func (in *Instance) marshalInto(buf []byte) {
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(in.Model[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(in.Color[i]))
	}
}

// MarshalInstances serializes instances into one contiguous buffer.
//
// Parameters:
//   - instances: the instances to serialize
//
// Returns:
//   - []byte: len(instances) * 80 bytes
func MarshalInstances(instances []Instance) []byte {
	if len(instances) == 0 {
		return nil
	}
	stride := instances[0].Size()
	buf := make([]byte, len(instances)*stride)
	for i := range instances {
		instances[i].marshalInto(buf[i*stride:])
	}
	return buf
}

// SetPosition replaces the translation column of the model matrix.
//
// Parameters:
//   - position: the new world-space position
func (in *Instance) SetPosition(position [3]float32) {
	in.Model[12] = position[0]
	in.Model[13] = position[1]
	in.Model[14] = position[2]
}

// Position returns the translation column of the model matrix.
func (in *Instance) Position() [3]float32 {
	return [3]float32{in.Model[12], in.Model[13], in.Model[14]}
}

// Outline derives the outline-pass instance: the color is replaced and the model matrix is
// post-multiplied by a uniform scale, so the wireframe sits slightly outside the solid surface.
//
// Parameters:
//   - scale: the uniform scale applied in model space
//   - color: the outline color
//
// Returns:
//   - Instance: the derived instance; the receiver is unchanged
func (in *Instance) Outline(scale float32, color [4]float32) Instance {
	var s [16]float32
	common.Scaling(s[:], scale, scale, scale)
	out := Instance{Color: color}
	common.Mul4(out.Model[:], in.Model[:], s[:])
	return out
}
