package shader

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// Vertex buffer slots are assigned by struct name: slot 0 advances per vertex and slot 1 per instance.
const (
	VertexInputStruct   = "VertexInput"
	InstanceInputStruct = "InstanceInput"
)

var (
	blockCommentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRegex  = regexp.MustCompile(`//[^\n]*`)

	structRegex   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	fieldRegex    = regexp.MustCompile(`^((?:@\w+\([^)]*\)\s*)*)(\w+)\s*:\s*(.+)$`)
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	// uniformRegex matches declarations like: @group(0) @binding(0) var<uniform> camera: CameraUniform;
	uniformRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var<uniform>\s+(\w+)\s*:\s*([^;]+?)\s*;`)

	entryRegex = map[ShaderType]*regexp.Regexp{
		ShaderTypeVertex:   regexp.MustCompile(`@vertex\s+fn\s+(\w+)`),
		ShaderTypeFragment: regexp.MustCompile(`@fragment\s+fn\s+(\w+)`),
	}
)

type wgslField struct {
	name     string
	typeName string
	location int
	builtin  bool
}

type wgslStruct struct {
	name   string
	fields []wgslField
}

// reflection is what the engine reads back from one WGSL stage.
type reflection struct {
	entryPoint    string
	vertexLayouts []wgpu.VertexBufferLayout
	bindGroups    map[int]wgpu.BindGroupLayoutDescriptor
}

// reflectSource parses source for the entry point of shaderType, the VertexInput and InstanceInput
// buffer layouts of a vertex stage, and every var<uniform> binding.
//
// Parameters:
//   - source: the complete WGSL source
//   - shaderType: the stage being compiled
//
// Returns:
//   - reflection: the parsed metadata
//   - error: a missing entry point, a vertex input of an unsupported type, or an unsized uniform
func reflectSource(source string, shaderType ShaderType) (reflection, error) {
	src := stripComments(source)
	structs := parseStructs(src)

	var r reflection
	if re, ok := entryRegex[shaderType]; ok {
		if m := re.FindStringSubmatch(src); m != nil {
			r.entryPoint = m[1]
		}
	}
	if r.entryPoint == "" {
		return r, fmt.Errorf("no @%s entry point", shaderType)
	}

	visibility := wgpu.ShaderStageFragment
	if shaderType == ShaderTypeVertex {
		visibility = wgpu.ShaderStageVertex
		layouts, err := vertexLayouts(structs)
		if err != nil {
			return r, err
		}
		r.vertexLayouts = layouts
	}

	groups, err := uniformBindGroups(src, structs, visibility)
	if err != nil {
		return r, err
	}
	r.bindGroups = groups
	return r, nil
}

func stripComments(source string) string {
	return lineCommentRegex.ReplaceAllString(blockCommentRegex.ReplaceAllString(source, ""), "")
}

func parseStructs(src string) map[string]wgslStruct {
	structs := make(map[string]wgslStruct)
	for _, m := range structRegex.FindAllStringSubmatch(src, -1) {
		st := wgslStruct{name: m[1]}
		for _, line := range strings.Split(m[2], ",") {
			fm := fieldRegex.FindStringSubmatch(strings.TrimSpace(line))
			if fm == nil {
				continue
			}
			f := wgslField{
				name:     fm[2],
				typeName: strings.TrimSpace(fm[3]),
				location: -1,
				builtin:  strings.Contains(fm[1], "@builtin"),
			}
			if lm := locationRegex.FindStringSubmatch(fm[1]); lm != nil {
				f.location, _ = strconv.Atoi(lm[1])
			}
			st.fields = append(st.fields, f)
		}
		structs[st.name] = st
	}
	return structs
}

// vertexLayouts packs the attributes of VertexInput and InstanceInput tightly in declaration order.
// A shader may declare either, both or neither; the slice holds them in slot order.
func vertexLayouts(structs map[string]wgslStruct) ([]wgpu.VertexBufferLayout, error) {
	var layouts []wgpu.VertexBufferLayout
	for _, slot := range []struct {
		name string
		step wgpu.VertexStepMode
	}{
		{VertexInputStruct, wgpu.VertexStepModeVertex},
		{InstanceInputStruct, wgpu.VertexStepModeInstance},
	} {
		st, ok := structs[slot.name]
		if !ok {
			continue
		}
		layout := wgpu.VertexBufferLayout{StepMode: slot.step}
		for _, f := range st.fields {
			t, ok := lookupType(f.typeName)
			if !ok || t.format == wgpu.VertexFormatUndefined || f.location < 0 {
				return nil, fmt.Errorf("%s.%s: unsupported vertex attribute %q", st.name, f.name, f.typeName)
			}
			layout.Attributes = append(layout.Attributes, wgpu.VertexAttribute{
				Format:         t.format,
				Offset:         layout.ArrayStride,
				ShaderLocation: uint32(f.location),
			})
			layout.ArrayStride += t.size
		}
		layouts = append(layouts, layout)
	}
	return layouts, nil
}

// uniformBindGroups builds one layout descriptor per @group, entries sorted by binding, with
// MinBindingSize taken from the uniform's type.
func uniformBindGroups(src string, structs map[string]wgslStruct, visibility wgpu.ShaderStage) (map[int]wgpu.BindGroupLayoutDescriptor, error) {
	entries := make(map[int][]wgpu.BindGroupLayoutEntry)
	for _, m := range uniformRegex.FindAllStringSubmatch(src, -1) {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		size, _, ok := uniformLayout(m[4], structs)
		if !ok {
			return nil, fmt.Errorf("uniform %s: cannot size type %q", m[3], m[4])
		}
		entries[group] = append(entries[group], wgpu.BindGroupLayoutEntry{
			Binding:    uint32(binding),
			Visibility: visibility,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: size,
			},
		})
	}

	groups := make(map[int]wgpu.BindGroupLayoutDescriptor, len(entries))
	for g, es := range entries {
		sort.Slice(es, func(i, j int) bool { return es[i].Binding < es[j].Binding })
		groups[g] = wgpu.BindGroupLayoutDescriptor{Entries: es}
	}
	return groups, nil
}
