package renderer

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"

	"github.com/primshapes/prim-go/engine/mesh"
	"github.com/primshapes/prim-go/engine/renderer/bind_group_provider"
	"github.com/primshapes/prim-go/engine/renderer/pipeline"
	"github.com/primshapes/prim-go/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	logger *zap.Logger

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and idiomatic flow.
// The Renderer manages a cache of pipelines, allowing for easy retrieval and management of these resources.
// The Renderer also implements a backend which allows for multiple backend API implementations to exist.
//
// Draw-time misuse (missing provider, empty geometry, topology mismatch, out-of-range sub-range)
// is logged and skipped rather than returned as an error, so one bad object cannot take down a frame.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves the entire cache of Pipelines.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a map of pipeline keys to their corresponding Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines registers one or more pipelines by creating the corresponding GPU
	// pipeline objects via the backend, then caching them by PipelineKey.
	// Pipelines whose keys are already registered are skipped to avoid duplicate GPU resource creation.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// SetPipeline adds or updates a Pipeline in the cache with the given key.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to add or update in the cache
	//   - p: the Pipeline to add or update in the cache
	SetPipeline(key string, p pipeline.Pipeline)

	// SetPipelines replaces the entire pipeline cache with the provided map of Pipelines.
	//
	// Parameters:
	//   - pipelines: a map of pipeline keys to their corresponding Pipeline objects to set as the new cache
	SetPipelines(pipelines map[string]pipeline.Pipeline)

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// InitMeshBuffers creates GPU vertex and index buffers from the mesh and stores them on
	// the given BindGroupProvider for later use in draw calls. The provider's counts, buffer
	// capacities, and topology are taken from the mesh. Meshes without indices produce no
	// index buffer and are drawn non-indexed.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - buf: the mesh whose vertex and index data is uploaded
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, buf *mesh.Buffer) error

	// UpdateMeshBuffers re-uploads mesh data into the provider's existing GPU buffers.
	// Buffers are reallocated only when the new data exceeds the recorded capacity, so a
	// regenerating mesh that stays at or below its previous size reuses its allocations.
	//
	// Parameters:
	//   - provider: the BindGroupProvider holding the buffers to update
	//   - buf: the mesh whose vertex and index data is uploaded
	//
	// Returns:
	//   - error: an error if buffer reallocation fails
	UpdateMeshBuffers(provider bind_group_provider.BindGroupProvider, buf *mesh.Buffer) error

	// InitBindGroup creates GPU buffers and a bind group from a layout descriptor and stores them
	// on the given BindGroupProvider. Buffer usage and size can be overridden per binding.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - descriptor: the layout descriptor defining the bind group entries
	//   - bufferUsageOverrides: additional buffer usage flags to OR into the derived usage, keyed by binding index (nil safe)
	//   - bufferSizeOverrides: custom buffer sizes to use instead of MinBindingSize, keyed by binding index (nil safe)
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	// Each BufferWrite targets a specific buffer on a BindGroupProvider at a given binding and offset.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	// Must be paired with EndFrame after all DrawCall invocations within a single frame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall encodes a single instanced draw command within the current render pass.
	// Multiple DrawCall invocations can be made between BeginFrame and EndFrame.
	//
	// A nil subRange draws the full mesh. A non-nil subRange restricts the draw to the given
	// span of indices (or vertices for non-indexed meshes). Draws whose provider is missing,
	// empty, out of range, or whose topology does not match the pipeline's are logged and
	// skipped without returning an error.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached render Pipeline to use
	//   - meshProvider: the BindGroupProvider holding vertex and index buffers
	//   - subRange: an optional span restricting the draw, or nil for the full mesh
	//   - instanceCount: the number of instances to draw
	//   - bindGroups: a slice of BindGroupProviders whose BindGroups will be set on the render pass
	//
	// Returns:
	//   - error: an error if the pipeline is not found
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, subRange *mesh.SubRange, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface. Call Present() after EndFrame to display the frame.
	// Must be called after BeginFrame and all DrawCall invocations within a single frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type and window.
// The window provides the platform-specific surface descriptor for GPU surface creation.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window whose surface the renderer draws into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		logger:        zap.NewNop(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x // default
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) SetPipeline(key string, p pipeline.Pipeline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pipelineCache[key] = p
}

func (r *renderer) SetPipelines(pipelines map[string]pipeline.Pipeline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pipelineCache = pipelines
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, buf *mesh.Buffer) error {
	if provider == nil || buf == nil {
		r.logger.Warn("mesh buffer init skipped",
			zap.Bool("nil_provider", provider == nil),
			zap.Bool("nil_mesh", buf == nil))
		return nil
	}
	return r.backend.InitMeshBuffers(provider, buf)
}

func (r *renderer) UpdateMeshBuffers(provider bind_group_provider.BindGroupProvider, buf *mesh.Buffer) error {
	if provider == nil || buf == nil {
		r.logger.Warn("mesh buffer update skipped",
			zap.Bool("nil_provider", provider == nil),
			zap.Bool("nil_mesh", buf == nil))
		return nil
	}
	return r.backend.UpdateMeshBuffers(provider, buf)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferUsageOverrides, bufferSizeOverrides)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, subRange *mesh.SubRange, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}

	if !r.validDrawCall(p, meshProvider, subRange) {
		return nil
	}

	r.backend.DrawCall(p, meshProvider, subRange, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

// validDrawCall verifies a draw call's preconditions. Violations are logged through the
// renderer's logger and cause the draw to be skipped so a single bad object cannot abort
// or corrupt the rest of the frame.
func (r *renderer) validDrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, subRange *mesh.SubRange) bool {
	if meshProvider == nil {
		r.logger.Warn("draw call skipped: nil mesh provider",
			zap.String("pipeline", p.PipelineKey()))
		return false
	}
	if meshProvider.VertexBuffer() == nil {
		r.logger.Warn("draw call skipped: mesh buffers not initialized",
			zap.String("pipeline", p.PipelineKey()),
			zap.String("provider", meshProvider.Label()))
		return false
	}

	count := meshProvider.IndexCount()
	if meshProvider.IndexBuffer() == nil {
		count = meshProvider.VertexCount()
	}
	if count == 0 {
		r.logger.Warn("draw call skipped: empty mesh",
			zap.String("pipeline", p.PipelineKey()),
			zap.String("provider", meshProvider.Label()))
		return false
	}

	if meshProvider.Topology() != p.Topology() {
		r.logger.Warn("draw call skipped: topology mismatch",
			zap.String("pipeline", p.PipelineKey()),
			zap.String("provider", meshProvider.Label()),
			zap.Uint32("pipeline_topology", uint32(p.Topology())),
			zap.Uint32("mesh_topology", uint32(meshProvider.Topology())))
		return false
	}

	if subRange != nil {
		if subRange.Count == 0 || uint64(subRange.Offset)+uint64(subRange.Count) > uint64(count) {
			r.logger.Warn("draw call skipped: sub-range out of bounds",
				zap.String("pipeline", p.PipelineKey()),
				zap.String("provider", meshProvider.Label()),
				zap.Uint32("offset", subRange.Offset),
				zap.Uint32("count", subRange.Count),
				zap.Int("available", count))
			return false
		}
	}

	return true
}
