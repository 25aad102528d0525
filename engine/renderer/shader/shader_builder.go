package shader

import (
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the default entry point name for this shader.
//
// Parameters:
//   - name: the WGSL entry point function name
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point for this shader
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}

// WithBindGroupLayout declares the bind group layout for a group index. Entries are sorted
// by binding index before the descriptor is stored. Declaring the same group twice replaces
// the earlier declaration.
//
// Parameters:
//   - group: the bind group index the layout applies to
//   - entries: the layout entries for each binding in the group
//
// Returns:
//   - ShaderBuilderOption: a function that declares the bind group layout for this shader
func WithBindGroupLayout(group int, entries ...wgpu.BindGroupLayoutEntry) ShaderBuilderOption {
	return func(s *shader) {
		sorted := make([]wgpu.BindGroupLayoutEntry, len(entries))
		copy(sorted, entries)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Binding < sorted[j].Binding
		})
		s.bindGroupLayoutDescriptors[group] = wgpu.BindGroupLayoutDescriptor{
			Entries: sorted,
		}
	}
}

// WithVertexLayouts declares the vertex buffer layouts for this shader in slot order.
// Only meaningful for vertex shaders.
//
// Parameters:
//   - layouts: the vertex buffer layouts, one per vertex buffer slot
//
// Returns:
//   - ShaderBuilderOption: a function that sets the vertex layouts for this shader
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = layouts
	}
}

// WithSourcePrelude prepends canonical WGSL blocks to the loaded source, in order. This is
// how the GPU struct definitions that live beside their Go counterparts (for example
// camera.GPUCameraUniformSource) are spliced into a shader file, so the file itself only
// declares bindings and entry points.
//
// Parameters:
//   - sources: WGSL source blocks to prepend ahead of the file contents
//
// Returns:
//   - ShaderBuilderOption: a function that appends prelude blocks for this shader
func WithSourcePrelude(sources ...string) ShaderBuilderOption {
	return func(s *shader) {
		s.prelude = append(s.prelude, sources...)
	}
}
