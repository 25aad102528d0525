package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when no longer needed. They are populated by the Renderer during initialization, not by user-creation.

	// bindGroup is the GPU bind group created for this provider, or nil if not initialized with the Renderer.
	bindGroup *wgpu.BindGroup
	// bindGroupLayout is the GPU bind group layout created for this provider, or nil if not initialized with the Renderer.
	bindGroupLayout *wgpu.BindGroupLayout
	// buffers holds the GPU buffers created for this provider, keyed by binding index.
	buffers map[int]*wgpu.Buffer

	// The following fields are specific to mesh geometry providers. They describe the GPU
	// vertex/index buffers and the draw parameters derived from the mesh that filled them.

	// vertexBuffer is the GPU vertex buffer created for this provider, or nil if not initialized with the Renderer.
	vertexBuffer *wgpu.Buffer
	// indexBuffer is the GPU index buffer created for this provider, or nil for non-indexed meshes.
	indexBuffer *wgpu.Buffer
	// vertexCount is the number of vertices for non-indexed draw calls.
	vertexCount int
	// indexCount is the number of indices for indexed draw calls.
	indexCount int
	// vertexCapacity is the allocation size of the vertex buffer in bytes. Updates that fit
	// inside the capacity reuse the buffer; larger updates reallocate.
	vertexCapacity uint64
	// indexCapacity is the allocation size of the index buffer in bytes.
	indexCapacity uint64
	// topology is the primitive topology of the staged mesh data, used to validate draw calls
	// against the pipeline they are issued with.
	topology wgpu.PrimitiveTopology
}

// BindGroupProvider defines the interface for components that require GPU bind group resources.
// Components (Camera, scene objects, etc.) hold a BindGroupProvider to describe their GPU binding
// requirements. The Renderer then uses this provider to initialize and update GPU resources.
//
// Usage pattern:
//  1. Component creates a BindGroupProvider with a unique label
//  2. Scene/Renderer calls Renderer.InitBindGroup(provider) or Renderer.InitMeshBuffers(provider) to create GPU resources
//  3. Scene/Renderer calls Renderer.WriteBuffers() or Renderer.UpdateMeshBuffers() to update GPU data
//  4. The Renderer reads the provider's resources during draw calls
type BindGroupProvider interface {
	// Release releases any GPU resources held by this provider.
	// It will clean up all buffers and bind groups, and remove them from the map or slice they belonged to.
	Release()

	// Label returns the debug label for this provider.
	// Used for debugging and profiling purposes.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the created bind group layout for this provider.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the created uniform buffer for data writes.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// Buffers returns a map of all buffers associated with this provider, keyed by binding index.
	// This allows providers to manage multiple buffers if needed.
	//
	// Returns:
	//   - map[int]*wgpu.Buffer: a map of buffers keyed by binding index
	Buffers() map[int]*wgpu.Buffer

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil for non-indexed meshes.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// VertexCount returns the number of vertices for non-indexed draw calls.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexCount returns the number of indices for indexed draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// VertexCapacity returns the allocation size of the vertex buffer in bytes.
	//
	// Returns:
	//   - uint64: the vertex buffer capacity in bytes
	VertexCapacity() uint64

	// IndexCapacity returns the allocation size of the index buffer in bytes.
	//
	// Returns:
	//   - uint64: the index buffer capacity in bytes
	IndexCapacity() uint64

	// Topology returns the primitive topology of the staged mesh data.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the topology of the mesh data held by this provider
	Topology() wgpu.PrimitiveTopology

	// SetBindGroup sets the bind group after GPU initialization.
	// Called by Renderer.InitBindGroup().
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout sets the bind group layout after GPU initialization.
	// Called by Renderer.InitBindGroup().
	//
	// Parameters:
	//   - bgl: the created bind group layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer sets the uniform buffer after GPU initialization.
	// Called by Renderer.InitBindGroup().
	//
	// Parameters:
	//   - buf: the created buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetBuffers sets multiple buffers at once after GPU initialization.
	// This is a convenience method for providers that manage multiple buffers.
	//
	// Parameters:
	//   - buffers: a map of buffers keyed by binding index
	SetBuffers(buffers map[int]*wgpu.Buffer)

	// SetVertexBuffer stores the GPU vertex buffer after creation by InitMeshBuffers.
	//
	// Parameters:
	//   - buf: the created vertex buffer
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer stores the GPU index buffer after creation by InitMeshBuffers.
	//
	// Parameters:
	//   - buf: the created index buffer
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetVertexCount sets the number of vertices for non-indexed draw calls.
	//
	// Parameters:
	//   - count: the vertex count
	SetVertexCount(count int)

	// SetIndexCount sets the number of indices for indexed draw calls.
	//
	// Parameters:
	//   - count: the index count
	SetIndexCount(count int)

	// SetVertexCapacity records the allocation size of the vertex buffer in bytes.
	//
	// Parameters:
	//   - capacity: the vertex buffer capacity in bytes
	SetVertexCapacity(capacity uint64)

	// SetIndexCapacity records the allocation size of the index buffer in bytes.
	//
	// Parameters:
	//   - capacity: the index buffer capacity in bytes
	SetIndexCapacity(capacity uint64)

	// SetTopology records the primitive topology of the staged mesh data.
	//
	// Parameters:
	//   - topology: the topology of the mesh data held by this provider
	SetTopology(topology wgpu.PrimitiveTopology)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: a debug label for the provider
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:    label,
		buffers:  make(map[int]*wgpu.Buffer),
		topology: wgpu.PrimitiveTopologyTriangleList,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Buffers() map[int]*wgpu.Buffer {
	return p.buffers
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) VertexCount() int {
	return p.vertexCount
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) VertexCapacity() uint64 {
	return p.vertexCapacity
}

func (p *bindGroupProvider) IndexCapacity() uint64 {
	return p.indexCapacity
}

func (p *bindGroupProvider) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = make(map[int]*wgpu.Buffer)
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetBuffers(buffers map[int]*wgpu.Buffer) {
	p.buffers = buffers
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetVertexCount(count int) {
	p.vertexCount = count
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) SetVertexCapacity(capacity uint64) {
	p.vertexCapacity = capacity
}

func (p *bindGroupProvider) SetIndexCapacity(capacity uint64) {
	p.indexCapacity = capacity
}

func (p *bindGroupProvider) SetTopology(topology wgpu.PrimitiveTopology) {
	p.topology = topology
}

func (p *bindGroupProvider) Release() {
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
			delete(p.buffers, i)
		}
	}

	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.vertexCount = 0
	p.indexCount = 0
	p.vertexCapacity = 0
	p.indexCapacity = 0
}
