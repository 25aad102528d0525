package shader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primshapes/prim-go/engine/mesh"
)

func writeShaderFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestNewShaderDefaults(t *testing.T) {
	src := "@vertex fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(0.0); }"
	s := NewShader("test_vert", ShaderTypeVertex, writeShaderFile(t, src))

	assert.Equal(t, "test_vert", s.Key())
	assert.Equal(t, ShaderTypeVertex, s.ShaderType())
	assert.Equal(t, "vs_main", s.EntryPoint())
	assert.Equal(t, src, s.Source())
	require.NotNil(t, s.Module())
	assert.Equal(t, "test_vert", s.Module().Label)
	require.NotNil(t, s.Module().WGSLDescriptor)
	assert.Equal(t, src, s.Module().WGSLDescriptor.Code)
}

func TestNewShaderFragmentDefaultEntryPoint(t *testing.T) {
	s := NewShader("test_frag", ShaderTypeFragment, writeShaderFile(t, "@fragment fn fs_main() {}"))
	assert.Equal(t, "fs_main", s.EntryPoint())
}

func TestNewShaderEntryPointOverride(t *testing.T) {
	s := NewShader("test_frag", ShaderTypeFragment, writeShaderFile(t, "@fragment fn shade() {}"),
		WithEntryPoint("shade"))
	assert.Equal(t, "shade", s.EntryPoint())
}

func TestNewShaderPanicsOnEmptyPath(t *testing.T) {
	assert.Panics(t, func() {
		NewShader("broken", ShaderTypeVertex, "")
	})
}

func TestNewShaderPanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() {
		NewShader("broken", ShaderTypeVertex, filepath.Join(t.TempDir(), "missing.wgsl"))
	})
}

func TestWithSourcePreludePrepends(t *testing.T) {
	s := NewShader("test_vert", ShaderTypeVertex, writeShaderFile(t, "fn body() {}"),
		WithSourcePrelude("struct A { x: f32, };", "struct B { y: f32, };"))

	assert.Equal(t, "struct A { x: f32, };\nstruct B { y: f32, };\nfn body() {}", s.Source())
	assert.Equal(t, s.Source(), s.Module().WGSLDescriptor.Code)
}

func TestWithBindGroupLayoutSortsEntries(t *testing.T) {
	s := NewShader("test_vert", ShaderTypeVertex, writeShaderFile(t, "fn body() {}"),
		WithBindGroupLayout(0,
			UniformLayoutEntry(2, wgpu.ShaderStageVertex, 16),
			UniformLayoutEntry(0, wgpu.ShaderStageVertex, 80),
		))

	desc := s.BindGroupLayoutDescriptor(0)
	require.Len(t, desc.Entries, 2)
	assert.Equal(t, uint32(0), desc.Entries[0].Binding)
	assert.Equal(t, uint32(2), desc.Entries[1].Binding)

	all := s.BindGroupLayoutDescriptors()
	require.Contains(t, all, 0)
	assert.Empty(t, s.BindGroupLayoutDescriptor(1).Entries)
}

func TestWithVertexLayouts(t *testing.T) {
	s := NewShader("test_vert", ShaderTypeVertex, writeShaderFile(t, "fn body() {}"),
		WithVertexLayouts(MeshVertexLayout()...))

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 1)
	assert.Equal(t, uint64(mesh.VertexStride), layouts[0].ArrayStride)
}

func TestMeshVertexLayout(t *testing.T) {
	layouts := MeshVertexLayout()
	require.Len(t, layouts, 1)

	layout := layouts[0]
	assert.Equal(t, uint64(32), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layout.StepMode)
	require.Len(t, layout.Attributes, 3)

	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout.Attributes[0].Format)
	assert.Equal(t, uint64(0), layout.Attributes[0].Offset)
	assert.Equal(t, uint32(0), layout.Attributes[0].ShaderLocation)

	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout.Attributes[1].Format)
	assert.Equal(t, uint64(12), layout.Attributes[1].Offset)
	assert.Equal(t, uint32(1), layout.Attributes[1].ShaderLocation)

	assert.Equal(t, wgpu.VertexFormatFloat32x2, layout.Attributes[2].Format)
	assert.Equal(t, uint64(24), layout.Attributes[2].Offset)
	assert.Equal(t, uint32(2), layout.Attributes[2].ShaderLocation)
}

func TestUniformLayoutEntry(t *testing.T) {
	entry := UniformLayoutEntry(1, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, 80)
	assert.Equal(t, uint32(1), entry.Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, entry.Visibility)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, entry.Buffer.Type)
	assert.Equal(t, uint64(80), entry.Buffer.MinBindingSize)
}

func TestShaderTypeVisibility(t *testing.T) {
	assert.Equal(t, wgpu.ShaderStageVertex, ShaderTypeVertex.Visibility())
	assert.Equal(t, wgpu.ShaderStageFragment, ShaderTypeFragment.Visibility())
}
