package shader

import (
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgslType describes a WGSL type the engine's shaders use: its vertex attribute format, if it can
// be one, and its uniform buffer size and alignment.
//
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
type wgslType struct {
	format wgpu.VertexFormat
	size   uint64
	align  uint64
}

var wgslTypes = map[string]wgslType{
	"f32":         {wgpu.VertexFormatFloat32, 4, 4},
	"u32":         {wgpu.VertexFormatUint32, 4, 4},
	"vec2<f32>":   {wgpu.VertexFormatFloat32x2, 8, 8},
	"vec3<f32>":   {wgpu.VertexFormatFloat32x3, 12, 16},
	"vec4<f32>":   {wgpu.VertexFormatFloat32x4, 16, 16},
	"mat4x4<f32>": {wgpu.VertexFormatUndefined, 64, 16},
}

// shorthand maps the predeclared aliases onto their long form.
var shorthand = strings.NewReplacer("vec2f", "vec2<f32>", "vec3f", "vec3<f32>", "vec4f", "vec4<f32>", "mat4x4f", "mat4x4<f32>")

func lookupType(name string) (wgslType, bool) {
	t, ok := wgslTypes[shorthand.Replace(strings.ReplaceAll(name, " ", ""))]
	return t, ok
}

func alignUp(align, v uint64) uint64 {
	if align == 0 {
		return v
	}
	return (v + align - 1) / align * align
}

// uniformLayout returns the host-shareable size and alignment of typeName. Struct members are laid
// out at their aligned offsets and the struct is padded to its largest alignment; structs may
// nest but not recurse.
//
// Parameters:
//   - typeName: a built-in type or a struct name from structs
//   - structs: the parsed structs of the shader keyed by name
//
// Returns:
//   - uint64: the size in bytes
//   - uint64: the alignment in bytes
//   - bool: false when a member type is unknown
func uniformLayout(typeName string, structs map[string]wgslStruct) (uint64, uint64, bool) {
	return layoutOf(typeName, structs, map[string]bool{})
}

func layoutOf(typeName string, structs map[string]wgslStruct, visiting map[string]bool) (uint64, uint64, bool) {
	if t, ok := lookupType(typeName); ok {
		return t.size, t.align, true
	}
	st, ok := structs[typeName]
	if !ok || visiting[typeName] {
		return 0, 0, false
	}
	visiting[typeName] = true
	defer delete(visiting, typeName)

	offset, structAlign := uint64(0), uint64(1)
	for _, f := range st.fields {
		if f.builtin {
			continue
		}
		size, align, ok := layoutOf(f.typeName, structs, visiting)
		if !ok {
			return 0, 0, false
		}
		offset = alignUp(align, offset) + size
		structAlign = max(structAlign, align)
	}
	return alignUp(structAlign, offset), structAlign, true
}
