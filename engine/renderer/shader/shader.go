package shader

import (
	"fmt"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/primshapes/prim-go/engine/mesh"
)

// ShaderType identifies the render pipeline stage a shader is compiled for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation and resource binding.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayouts              []wgpu.VertexBufferLayout
	prelude                    []string
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a loaded WGSL shader. It exposes the shader's unique key,
// source code, entry point, bind group layout descriptors, and vertex buffer layouts needed
// for pipeline creation and resource wiring. Layouts are declared up front through the builder
// options rather than recovered from the source text.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code, including any prepended prelude blocks.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a specific group index.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor declared for the group, or an empty descriptor if not set
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all declared bind group layout descriptors.
	// These are the CPU-side descriptors the renderer uses to create the actual
	// wgpu.BindGroupLayout GPU objects.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// VertexLayouts retrieves the vertex buffer layouts declared for this shader, in slot order.
	// Only vertex shaders carry layouts.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the declared vertex buffer layouts, or nil if none were declared
	VertexLayouts() []wgpu.VertexBufferLayout

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor for this shader, which is built from the NewShader function.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// ShaderType returns the type of the shader (vertex or fragment).
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType
}

var _ Shader = &shader{}

// NewShader creates a new Shader instance with all specified options applied and the WGSL
// source loaded from sourcePath. Bind group layouts and vertex layouts are declared through
// the builder options; the entry point defaults to "vs_main" for vertex shaders and
// "fs_main" for fragment shaders unless overridden with WithEntryPoint.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the type of shader (vertex or fragment), used for visibility and pipeline setup
//   - sourcePath: the file path to read WGSL source from
//   - options: optional ShaderBuilderOption functions declaring layouts, preludes, or the entry point
//
// Returns:
//   - Shader: a new Shader instance with the provided configuration
func NewShader(key string, shaderType ShaderType, sourcePath string, options ...ShaderBuilderOption) Shader {
	if sourcePath == "" {
		panic(fmt.Sprintf("shader: %s must have a valid source path", key))
	}
	s := &shader{
		key:                        key,
		shaderType:                 shaderType,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		entryPoint:                 defaultEntryPoint(shaderType),
	}
	for _, opt := range options {
		opt(s)
	}
	s.loadSource(sourcePath)
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

// loadSource reads the WGSL source file, prepends any declared prelude blocks, and builds
// the shader module descriptor. Panics if the file cannot be read so a missing shader asset
// fails loudly at startup rather than producing a blank pipeline later.
func (s *shader) loadSource(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("shader: failed to read source file %q: %v", path, err))
	}
	if len(s.prelude) > 0 {
		s.source = strings.Join(s.prelude, "\n") + "\n" + string(data)
	} else {
		s.source = string(data)
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
}

// defaultEntryPoint returns the conventional WGSL entry point name for a shader stage.
func defaultEntryPoint(shaderType ShaderType) string {
	if shaderType == ShaderTypeFragment {
		return "fs_main"
	}
	return "vs_main"
}

// Visibility returns the wgpu shader stage flag corresponding to the shader's type.
//
// Returns:
//   - wgpu.ShaderStage: ShaderStageVertex or ShaderStageFragment
func (t ShaderType) Visibility() wgpu.ShaderStage {
	if t == ShaderTypeFragment {
		return wgpu.ShaderStageFragment
	}
	return wgpu.ShaderStageVertex
}

// MeshVertexLayout returns the vertex buffer layout matching the interleaved mesh.Vertex
// format: position (vec3) at location 0, normal (vec3) at location 1, and UV (vec2) at
// location 2, with a 32-byte stride.
//
// Returns:
//   - []wgpu.VertexBufferLayout: a single-slot layout for mesh.Vertex data
func MeshVertexLayout() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: mesh.VertexStride,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			},
		},
	}
}

// UniformLayoutEntry returns a bind group layout entry for a uniform buffer binding visible
// to the given shader stages. minBindingSize should be the marshaled size of the uniform
// struct bound at this slot.
//
// Parameters:
//   - binding: the binding index within the group
//   - visibility: the shader stages that read the binding
//   - minBindingSize: the minimum buffer size the binding requires, in bytes
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the uniform buffer layout entry
func UniformLayoutEntry(binding uint32, visibility wgpu.ShaderStage, minBindingSize uint64) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	entry.Buffer.MinBindingSize = minBindingSize
	return entry
}
