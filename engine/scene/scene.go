package scene

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/chewxy/math32"
	"github.com/primshapes/prim-go/common"
	"github.com/primshapes/prim-go/engine/camera"
	"github.com/primshapes/prim-go/engine/mesh"
	"github.com/primshapes/prim-go/engine/renderer"
	"github.com/primshapes/prim-go/engine/renderer/bind_group_provider"
	"github.com/primshapes/prim-go/engine/renderer/shader"
	"github.com/primshapes/prim-go/engine/shape"
	"go.uber.org/zap"
)

// Bind group indices shared by every shape pipeline: group 0 carries the
// camera uniform and group 1 the per-object uniform.
const (
	CameraGroup = 0
	ObjectGroup = 1
)

// Scene manages a registry of shape Objects with a Camera and Renderer for
// rendering. Static objects generate and upload their mesh once when added;
// live objects regenerate and re-upload whenever their generator parameters
// change. Scenes can be hot-swapped via the Active flag to switch between
// different views. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer
	SetRenderer(r renderer.Renderer)

	// Count returns the number of Objects in the scene's registry.
	//
	// Returns:
	//   - int: count of registered Objects
	Count() int

	// Add adds an Object to the scene. The scene's Renderer must be attached.
	// The object's mesh is generated if it has not been yet, its vertex and
	// index buffers are uploaded, and its uniform bind group is initialized
	// from the scene's vertex shader layout. Upload failures are logged and
	// the object is skipped at draw time until a later update succeeds.
	//
	// Panics if the scene has no Renderer.
	//
	// Parameters:
	//   - obj: the Object to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj Object) uint64

	// Get retrieves an Object by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - Object: the object or nil
	Get(id uint64) Object

	// Remove removes an Object from the registry by ID and releases its GPU
	// resources.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Clear removes all objects from the scene.
	// Does not release GPU resources.
	Clear()

	// Objects returns the registered Objects sorted by ID.
	//
	// Returns:
	//   - []Object: the scene's objects in ID order
	Objects() []Object

	// Update advances object transforms, regenerates live meshes whose
	// generator parameters changed, re-uploads their buffers, and stages the
	// camera and per-object uniform writes for the frame.
	// Must be called before DrawCalls each frame.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Update(deltaTime float32)

	// CullingDisabled returns whether frustum culling is explicitly disabled
	// for this scene. When true, every enabled object is drawn regardless of
	// its position relative to the camera frustum.
	//
	// Returns:
	//   - bool: true if culling is disabled
	CullingDisabled() bool

	// SetCullingDisabled enables or disables frustum culling for this scene.
	//
	// Parameters:
	//   - disabled: true to disable culling, false to enable it
	SetCullingDisabled(disabled bool)

	// DrawCalls issues one draw call per enabled, visible object.
	// Must be called within a BeginFrame/EndFrame block on the renderer.
	//
	// Returns:
	//   - error: error if a draw call fails
	DrawCalls() error

	// DrawShapeLines switches an object to wireframe drawing by ID.
	//
	// Deprecated: set the wireframe flag on the object instead, e.g.
	// obj.SetWireframe(true). This shim warns once per object name and remains
	// only for callers of the old line-drawing entry points.
	//
	// Parameters:
	//   - id: the object's unique ID
	DrawShapeLines(id uint64)
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	registry map[uint64]Object
	nextID   uint64

	cam camera.Camera
	r   renderer.Renderer

	// vertexShader provides the bind group layouts the scene initializes
	// object uniform providers from.
	vertexShader shader.Shader

	cullingDisabled bool
	frustum         common.Frustum
	hasFrustum      bool

	warnings *shape.Warnings
	logger   *zap.Logger

	// Pre-allocated slices reused each frame to avoid per-frame allocations.
	writePool          []bind_group_provider.BufferWrite       // reusable coalesced buffer write slice
	drawBindGroupsPool []bind_group_provider.BindGroupProvider // reusable bind group slice for DrawCalls
	drawOrderPool      []uint64                                // reusable sorted ID slice for DrawCalls
	regenPool          []Object                                // reusable regenerated-object slice for Update

	// buildPool manages a bounded set of reusable goroutines for the parallel
	// CPU phase of Update and the initial static build. Workers persist across
	// frames, avoiding per-frame goroutine spawn/teardown overhead.
	buildPool    worker.DynamicWorkerPool
	buildWorkers int // stored so we can log/inspect the configured count
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera, renderer, and a vertex
// shader used to discover the camera and object bind group layouts. All three
// are required and NewScene panics if any of them is nil. Objects supplied via
// WithObjects have their meshes generated in parallel on the scene's worker
// pool, then uploaded to the GPU in ID order.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - vertexShader: a vertex shader declaring the camera and object uniform layouts (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, vertexShader shader.Shader, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}
	if vertexShader == nil {
		panic("scene: NewScene requires a non-nil vertex shader for bind group init")
	}

	s := &scene{
		mu:                 &sync.RWMutex{},
		name:               name,
		active:             false,
		cam:                cam,
		r:                  r,
		vertexShader:       vertexShader,
		registry:           make(map[uint64]Object),
		nextID:             1,
		logger:             zap.NewNop(),
		buildWorkers:       max(runtime.NumCPU()-1, 1),
		drawBindGroupsPool: make([]bind_group_provider.BindGroupProvider, 0, 2),
	}

	for _, option := range options {
		option(s)
	}

	if s.warnings == nil {
		s.warnings = shape.NewWarnings(s.logger)
	}

	// Initialize the build pool after options so WithBuildWorkers can override the default.
	// Queue size of 256 accommodates typical object counts with headroom.
	s.buildPool = worker.NewDynamicWorkerPool(s.buildWorkers, 256, 1*time.Second)

	// Initialize the camera's bind group on the GPU using the layout from the vertex shader.
	if bgp := cam.BindGroupProvider(); bgp != nil {
		if err := r.InitBindGroup(bgp, vertexShader.BindGroupLayoutDescriptor(CameraGroup), nil, nil); err != nil {
			panic(fmt.Sprintf("scene: failed to init camera bind group: %v", err))
		}
	}

	// Generate meshes for the initial objects in parallel, then upload them
	// serially in ID order since buffer creation requires GPU access.
	if len(s.registry) > 0 {
		var wg sync.WaitGroup
		taskID := 0
		for _, obj := range s.registry {
			wg.Add(1)
			oCap := obj // capture for closure
			id := taskID
			taskID++
			s.buildPool.SubmitTask(worker.Task{
				ID: id,
				Do: func() (any, error) {
					defer wg.Done()
					oCap.RegenerateIfChanged()
					return nil, nil
				},
			})
		}
		wg.Wait()

		for _, id := range s.sortedIDs() {
			s.uploadObject(s.registry[id])
		}
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) CullingDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj Object) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		panic("scene: cannot Add without a Renderer attached")
	}

	if obj.ID() == 0 {
		obj.SetID(atomic.AddUint64(&s.nextID, 1) - 1)
	}
	s.registry[obj.ID()] = obj

	obj.RegenerateIfChanged()
	s.uploadObject(obj)

	return obj.ID()
}

func (s *scene) Get(id uint64) Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, exists := s.registry[id]
	if !exists {
		return
	}

	delete(s.registry, id)

	obj.MeshProvider().Release()
	obj.WireMeshProvider().Release()
	obj.UniformProvider().Release()
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registry = make(map[uint64]Object)
}

func (s *scene) Objects() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects := make([]Object, 0, len(s.registry))
	for _, id := range s.sortedIDs() {
		objects = append(objects, s.registry[id])
	}
	return objects
}

func (s *scene) Update(deltaTime float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return
	}

	// Update camera matrices and stage the camera uniform write once per frame.
	allWrites := s.writePool[:0]
	s.hasFrustum = false
	if s.cam != nil {
		s.cam.Update()
		vpMat := s.cam.ViewProjectionMatrix()
		if camBGP := s.cam.BindGroupProvider(); camBGP != nil {
			camUniform := camera.GPUCameraUniform{ViewProj: vpMat}
			if ctrl := s.cam.Controller(); ctrl != nil {
				camUniform.CameraPosition[0], camUniform.CameraPosition[1], camUniform.CameraPosition[2] = ctrl.Position()
			}
			allWrites = append(allWrites, bind_group_provider.BufferWrite{
				Provider: camBGP,
				Binding:  0,
				Offset:   0,
				Data:     camUniform.Marshal(),
			})
		}

		// Extract frustum planes from the VP matrix for CPU-side culling in DrawCalls.
		s.frustum = common.ExtractFrustumFromMatrix(vpMat[:])
		s.hasFrustum = !s.cullingDisabled
	}

	// Process all objects in two phases:
	// Phase 1 (parallel): fan out CPU-only work across goroutines.
	// Phase 2 (serial): re-upload regenerated meshes and coalesce uniform writes.

	// Phase 1: parallel CPU prep — advance transforms and regenerate live
	// meshes whose generator parameters changed since the last build. Workers
	// are reused across frames (no goroutine spawn overhead). A WaitGroup
	// provides per-frame barrier sync since pool.Wait() blocks until workers
	// idle-exit which is unsuitable for frame-rate workloads.
	regenerated := s.regenPool[:0]
	var regenMu sync.Mutex
	var wg sync.WaitGroup
	taskID := 0
	for _, obj := range s.registry {
		if !obj.Enabled() {
			continue
		}

		wg.Add(1)
		oCap := obj // capture for closure
		id := taskID
		taskID++
		s.buildPool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				oCap.Advance(deltaTime)
				if oCap.Live() && oCap.RegenerateIfChanged() {
					regenMu.Lock()
					regenerated = append(regenerated, oCap)
					regenMu.Unlock()
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
	s.regenPool = regenerated

	// Phase 2: serial GPU submission — re-upload meshes that regenerated this
	// frame, lazily build wireframe buffers, and collect all uniform writes
	// into a single slice submitted once to the renderer. This reduces mutex
	// acquisitions from N to 1 for writes.
	for _, obj := range regenerated {
		if err := s.r.UpdateMeshBuffers(obj.MeshProvider(), obj.Buffer()); err != nil {
			s.logger.Error("failed to update mesh buffers",
				zap.String("scene", s.name),
				zap.String("object", obj.Name()),
				zap.Error(err))
			continue
		}
		if obj.Wireframe() && obj.WireMeshProvider().VertexBuffer() != nil {
			if wire := obj.WireBuffer(); wire != nil {
				if err := s.r.UpdateMeshBuffers(obj.WireMeshProvider(), wire); err != nil {
					s.logger.Error("failed to update wireframe buffers",
						zap.String("scene", s.name),
						zap.String("object", obj.Name()),
						zap.Error(err))
				}
			}
		}
	}
	if len(regenerated) > 0 {
		s.logger.Debug("regenerated live meshes",
			zap.String("scene", s.name),
			zap.Int("count", len(regenerated)))
	}

	for _, obj := range s.registry {
		if !obj.Enabled() {
			continue
		}

		// Wireframe buffers are derived on demand the first time an object
		// draws as lines, so solid-only objects never pay for the edge set.
		if obj.Wireframe() && obj.Buffer() != nil && obj.WireMeshProvider().VertexBuffer() == nil {
			if wire := obj.WireBuffer(); wire != nil {
				if err := s.r.InitMeshBuffers(obj.WireMeshProvider(), wire); err != nil {
					s.logger.Error("failed to init wireframe buffers",
						zap.String("scene", s.name),
						zap.String("object", obj.Name()),
						zap.Error(err))
				}
			}
		}

		uniform := obj.UniformData()
		allWrites = append(allWrites, bind_group_provider.BufferWrite{
			Provider: obj.UniformProvider(),
			Binding:  0,
			Offset:   0,
			Data:     uniform.Marshal(),
		})
	}
	s.writePool = allWrites

	if len(allWrites) > 0 {
		s.r.WriteBuffers(allWrites)
	}
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.name)
	}

	var camBGP bind_group_provider.BindGroupProvider
	if s.cam != nil {
		camBGP = s.cam.BindGroupProvider()
	}
	if camBGP == nil {
		return fmt.Errorf("scene %q has no camera bind group to draw with", s.name)
	}

	for _, id := range s.sortedIDs() {
		obj := s.registry[id]
		if !obj.Enabled() {
			continue
		}

		meshProvider := obj.MeshProvider()
		pipelineKey := obj.PipelineKey()
		var subRange *mesh.SubRange

		if obj.Wireframe() {
			// Wireframe draws cover the whole edge set; sub-ranges index into
			// the triangle buffer and do not apply to the derived line list.
			meshProvider = obj.WireMeshProvider()
			pipelineKey = obj.WirePipelineKey()
		} else if name := obj.SubRange(); name != "" {
			buf := obj.Buffer()
			if buf == nil {
				continue
			}
			r, ok := buf.Range(name)
			if !ok {
				s.logger.Warn("unknown sub-range for object",
					zap.String("scene", s.name),
					zap.String("object", obj.Name()),
					zap.String("subRange", name))
				continue
			}
			subRange = &r
		}

		if pipelineKey == "" {
			continue
		}

		if s.hasFrustum && !s.intersectsFrustum(obj) {
			continue
		}

		bindGroups := s.drawBindGroupsPool[:0]
		bindGroups = append(bindGroups, camBGP, obj.UniformProvider())

		if err := s.r.DrawCall(pipelineKey, meshProvider, subRange, 1, bindGroups); err != nil {
			return fmt.Errorf("draw call failed for object %q in scene %q: %w", obj.Name(), s.name, err)
		}
	}

	return nil
}

func (s *scene) DrawShapeLines(id uint64) {
	s.mu.RLock()
	obj := s.registry[id]
	warnings := s.warnings
	s.mu.RUnlock()

	if obj == nil {
		return
	}

	warnings.Deprecated(obj.Name(), "Scene.DrawShapeLines", "Object.SetWireframe(true)")
	obj.SetWireframe(true)
}

// uploadObject creates the GPU mesh buffers and the uniform bind group for an
// object. Failures are logged and leave the object's providers uninitialized,
// so the renderer skips it at draw time. Caller must hold s.mu.
func (s *scene) uploadObject(obj Object) {
	buf := obj.Buffer()
	if buf == nil {
		s.logger.Warn("object has no mesh to upload",
			zap.String("scene", s.name),
			zap.String("object", obj.Name()))
		return
	}

	if err := s.r.InitMeshBuffers(obj.MeshProvider(), buf); err != nil {
		s.logger.Error("failed to init mesh buffers",
			zap.String("scene", s.name),
			zap.String("object", obj.Name()),
			zap.Error(err))
		return
	}

	if err := s.r.InitBindGroup(obj.UniformProvider(), s.vertexShader.BindGroupLayoutDescriptor(ObjectGroup), nil, nil); err != nil {
		s.logger.Error("failed to init object bind group",
			zap.String("scene", s.name),
			zap.String("object", obj.Name()),
			zap.Error(err))
	}
}

// sortedIDs returns the registry keys in ascending order for a stable draw
// and upload order. Caller must hold s.mu.
func (s *scene) sortedIDs() []uint64 {
	ids := s.drawOrderPool[:0]
	for id := range s.registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	s.drawOrderPool = ids
	return ids
}

// intersectsFrustum tests the object's bounding sphere, scaled by the largest
// transform axis, against the frame's frustum planes.
func (s *scene) intersectsFrustum(obj Object) bool {
	radius := obj.BoundingRadius()
	if radius <= 0 {
		return true
	}

	sx, sy, sz := obj.Scale()
	radius *= max(math32.Abs(sx), math32.Abs(sy), math32.Abs(sz))

	px, py, pz := obj.Position()
	return s.frustum.IntersectsSphere(px, py, pz, radius)
}
