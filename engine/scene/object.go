package scene

import (
	"sync"
	"sync/atomic"

	"github.com/primshapes/prim-go/common"
	"github.com/primshapes/prim-go/engine/mesh"
	"github.com/primshapes/prim-go/engine/renderer/bind_group_provider"
	"github.com/primshapes/prim-go/engine/shape"
)

type sceneObject struct {
	mu *sync.Mutex

	id      uint64
	name    string
	enabled atomic.Bool
	live    bool

	generator     shape.Generator
	lastGenerated shape.Generator
	buffer        *mesh.Buffer
	radius        float32

	position      [3]float32
	rotation      [3]float32
	rotationSpeed [3]float32
	scale         [3]float32
	color         [4]float32

	pipelineKey     string
	wirePipelineKey string
	wireframe       bool
	subRangeName    string

	meshProvider    bind_group_provider.BindGroupProvider
	wireProvider    bind_group_provider.BindGroupProvider
	uniformProvider bind_group_provider.BindGroupProvider
}

// Object is a shape instance placed in a Scene: a Generator (or a pre-built
// mesh buffer), a transform, a color, and the GPU resource providers the
// scene renders it through. Live objects re-run their generator whenever its
// parameters change; static objects keep the buffer built when the scene
// first uploaded them.
type Object interface {
	// ID returns the object's unique identifier within its scene.
	//
	// Returns:
	//   - uint64: the object ID, 0 until assigned by a Scene
	ID() uint64

	// Name returns the object's display name, used for provider labels and logs.
	//
	// Returns:
	//   - string: the object name
	Name() string

	// Enabled returns whether this object is updated and drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Live returns whether the scene re-checks this object's generator every
	// frame and regenerates the mesh when its parameters have changed.
	//
	// Returns:
	//   - bool: true if the object regenerates on parameter changes
	Live() bool

	// Generator returns the shape generator backing this object, or nil when
	// the object was built from a static buffer.
	//
	// Returns:
	//   - shape.Generator: the generator or nil
	Generator() shape.Generator

	// Buffer returns the most recently generated mesh buffer, or nil if the
	// object has not been generated yet.
	//
	// Returns:
	//   - *mesh.Buffer: the current mesh buffer or nil
	Buffer() *mesh.Buffer

	// WireBuffer derives the line-list wireframe form of the current buffer.
	//
	// Returns:
	//   - *mesh.Buffer: the wireframe buffer, or nil if no mesh exists yet
	WireBuffer() *mesh.Buffer

	// BoundingRadius returns the radius of the bounding sphere around the
	// object's local origin, before transform scaling.
	//
	// Returns:
	//   - float32: the bounding radius, 0 if no mesh exists yet
	BoundingRadius() float32

	// PipelineKey returns the pipeline key used for solid draws.
	//
	// Returns:
	//   - string: the pipeline key, empty to skip solid draws
	PipelineKey() string

	// WirePipelineKey returns the pipeline key used for wireframe draws.
	//
	// Returns:
	//   - string: the pipeline key, empty to skip wireframe draws
	WirePipelineKey() string

	// Wireframe returns whether the object draws as a line-list wireframe
	// instead of solid triangles.
	//
	// Returns:
	//   - bool: true if drawing wireframe
	Wireframe() bool

	// SubRange returns the name of the buffer sub-range drawn for this object.
	//
	// Returns:
	//   - string: the sub-range name, empty to draw the whole mesh
	SubRange() string

	// Color returns the object's flat RGBA color.
	//
	// Returns:
	//   - [4]float32: the color components in 0..1
	Color() [4]float32

	// Position returns the object's current position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the object's current rotation in radians.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// RotationSpeed returns the object's rotation speed in radians per second.
	//
	// Returns:
	//   - rx, ry, rz: rotation speed values
	RotationSpeed() (rx, ry, rz float32)

	// Scale returns the object's scale factors.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// MeshProvider returns the provider holding the solid mesh GPU buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the solid mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// WireMeshProvider returns the provider holding the wireframe GPU buffers.
	// The scene initializes it lazily the first time the object draws wireframe.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the wireframe mesh provider
	WireMeshProvider() bind_group_provider.BindGroupProvider

	// UniformProvider returns the provider holding the per-object uniform
	// buffer and its bind group.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the uniform provider
	UniformProvider() bind_group_provider.BindGroupProvider

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is updated and drawn.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetGenerator replaces the object's generator. For live objects the scene
	// picks up the change on the next Update and regenerates the mesh.
	// Generators are compared by value to detect changes, so implementations
	// must be comparable value types.
	//
	// Parameters:
	//   - g: the new generator
	SetGenerator(g shape.Generator)

	// SetWireframe toggles between solid and wireframe drawing.
	//
	// Parameters:
	//   - wireframe: true to draw as a line-list wireframe
	SetWireframe(wireframe bool)

	// SetSubRange restricts solid draws to a named sub-range of the mesh.
	// Wireframe draws always cover the whole edge set; sub-range names are
	// only valid for the parameters the buffer was generated with.
	//
	// Parameters:
	//   - name: the sub-range name, empty to draw the whole mesh
	SetSubRange(name string)

	// SetColor sets the object's flat RGBA color.
	//
	// Parameters:
	//   - r, g, b, a: color components in 0..1
	SetColor(r, g, b, a float32)

	// SetPosition sets the object's position.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetRotation sets the object's rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: rotation angles
	SetRotation(rx, ry, rz float32)

	// SetRotationSpeed sets the object's rotation speed in radians per second.
	//
	// Parameters:
	//   - rx, ry, rz: rotation speed values
	SetRotationSpeed(rx, ry, rz float32)

	// SetScale sets the object's scale factors.
	//
	// Parameters:
	//   - sx, sy, sz: scale components
	SetScale(sx, sy, sz float32)

	// Advance integrates the object's rotation by its rotation speed.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Advance(dt float32)

	// RegenerateIfChanged re-runs the generator when its parameters differ
	// from the last generated snapshot, or when no mesh exists yet. Objects
	// without a generator never regenerate.
	//
	// Returns:
	//   - bool: true if a new mesh buffer was produced
	RegenerateIfChanged() bool

	// UniformData builds the per-object uniform from the current transform
	// and color.
	//
	// Returns:
	//   - GPUObjectUniform: the uniform snapshot for this frame
	UniformData() GPUObjectUniform
}

var _ Object = &sceneObject{}

// NewObject creates a new scene Object configured with the given options.
// Objects default to enabled, unit scale, and opaque white.
//
// Parameters:
//   - name: display name, also used to label the object's GPU resources
//   - options: functional options to configure the object
//
// Returns:
//   - Object: the newly created object
func NewObject(name string, options ...ObjectBuilderOption) Object {
	o := &sceneObject{
		mu:    &sync.Mutex{},
		name:  name,
		scale: [3]float32{1, 1, 1},
		color: [4]float32{1, 1, 1, 1},
	}
	o.enabled.Store(true)
	for _, option := range options {
		option(o)
	}
	o.meshProvider = bind_group_provider.NewBindGroupProvider(name + "_mesh")
	o.wireProvider = bind_group_provider.NewBindGroupProvider(name + "_wireframe")
	o.uniformProvider = bind_group_provider.NewBindGroupProvider(name + "_uniform")
	return o
}

func (o *sceneObject) ID() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.id
}

func (o *sceneObject) Name() string {
	return o.name
}

func (o *sceneObject) Enabled() bool {
	return o.enabled.Load()
}

func (o *sceneObject) Live() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.live
}

func (o *sceneObject) Generator() shape.Generator {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.generator
}

func (o *sceneObject) Buffer() *mesh.Buffer {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buffer
}

func (o *sceneObject) WireBuffer() *mesh.Buffer {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.buffer == nil {
		return nil
	}
	wire := o.buffer.Wireframe()
	return &wire
}

func (o *sceneObject) BoundingRadius() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.radius
}

func (o *sceneObject) PipelineKey() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pipelineKey
}

func (o *sceneObject) WirePipelineKey() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.wirePipelineKey
}

func (o *sceneObject) Wireframe() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.wireframe
}

func (o *sceneObject) SubRange() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.subRangeName
}

func (o *sceneObject) Color() [4]float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.color
}

func (o *sceneObject) Position() (x, y, z float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.position[0], o.position[1], o.position[2]
}

func (o *sceneObject) Rotation() (rx, ry, rz float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rotation[0], o.rotation[1], o.rotation[2]
}

func (o *sceneObject) RotationSpeed() (rx, ry, rz float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rotationSpeed[0], o.rotationSpeed[1], o.rotationSpeed[2]
}

func (o *sceneObject) Scale() (sx, sy, sz float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.scale[0], o.scale[1], o.scale[2]
}

func (o *sceneObject) MeshProvider() bind_group_provider.BindGroupProvider {
	return o.meshProvider
}

func (o *sceneObject) WireMeshProvider() bind_group_provider.BindGroupProvider {
	return o.wireProvider
}

func (o *sceneObject) UniformProvider() bind_group_provider.BindGroupProvider {
	return o.uniformProvider
}

func (o *sceneObject) SetID(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.id = id
}

func (o *sceneObject) SetEnabled(enabled bool) {
	o.enabled.Store(enabled)
}

func (o *sceneObject) SetGenerator(g shape.Generator) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.generator = g
}

func (o *sceneObject) SetWireframe(wireframe bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.wireframe = wireframe
}

func (o *sceneObject) SetSubRange(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subRangeName = name
}

func (o *sceneObject) SetColor(r, g, b, a float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.color = [4]float32{r, g, b, a}
}

func (o *sceneObject) SetPosition(x, y, z float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.position = [3]float32{x, y, z}
}

func (o *sceneObject) SetRotation(rx, ry, rz float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rotation = [3]float32{rx, ry, rz}
}

func (o *sceneObject) SetRotationSpeed(rx, ry, rz float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rotationSpeed = [3]float32{rx, ry, rz}
}

func (o *sceneObject) SetScale(sx, sy, sz float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.scale = [3]float32{sx, sy, sz}
}

func (o *sceneObject) Advance(dt float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rotation[0] += o.rotationSpeed[0] * dt
	o.rotation[1] += o.rotationSpeed[1] * dt
	o.rotation[2] += o.rotationSpeed[2] * dt
}

func (o *sceneObject) RegenerateIfChanged() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.generator == nil {
		return false
	}
	if o.buffer != nil && o.generator == o.lastGenerated {
		return false
	}

	buf := o.generator.Generate()
	o.buffer = &buf
	o.lastGenerated = o.generator
	o.radius = buf.BoundingRadius()
	return true
}

func (o *sceneObject) UniformData() GPUObjectUniform {
	o.mu.Lock()
	defer o.mu.Unlock()

	var u GPUObjectUniform
	common.BuildModelMatrix(
		u.Model[:],
		o.position[0], o.position[1], o.position[2],
		o.rotation[0], o.rotation[1], o.rotation[2],
		o.scale[0], o.scale[1], o.scale[2],
	)
	u.Color = o.color
	return u
}
