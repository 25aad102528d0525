package scene

import (
	"github.com/primshapes/prim-go/engine/mesh"
	"github.com/primshapes/prim-go/engine/shape"
)

// ObjectBuilderOption is a functional option for configuring an Object during construction.
type ObjectBuilderOption func(*sceneObject)

// WithGenerator sets the shape generator backing the Object. The scene
// generates the mesh when the object is added, and live objects regenerate
// whenever the generator's parameters change.
//
// Parameters:
//   - g: the generator to back the object with
//
// Returns:
//   - ObjectBuilderOption: functional option to set the generator
func WithGenerator(g shape.Generator) ObjectBuilderOption {
	return func(o *sceneObject) {
		o.generator = g
	}
}

// WithBuffer sets a pre-built mesh buffer on the Object instead of a
// generator. The object keeps this buffer until a generator is assigned.
//
// Parameters:
//   - buf: the mesh buffer to draw
//
// Returns:
//   - ObjectBuilderOption: functional option to set the static buffer
func WithBuffer(buf mesh.Buffer) ObjectBuilderOption {
	return func(o *sceneObject) {
		o.buffer = &buf
		o.radius = buf.BoundingRadius()
	}
}

// WithLive marks the Object as live. The scene re-checks a live object's
// generator every frame and regenerates its mesh when the parameters have
// changed since the last build.
//
// Parameters:
//   - live: true to regenerate on parameter changes
//
// Returns:
//   - ObjectBuilderOption: functional option to set the live flag
func WithLive(live bool) ObjectBuilderOption {
	return func(o *sceneObject) {
		o.live = live
	}
}

// WithEnabled sets whether the Object is updated and drawn. Objects default
// to enabled.
//
// Parameters:
//   - enabled: true to update and draw the object
//
// Returns:
//   - ObjectBuilderOption: functional option to set the enabled state
func WithEnabled(enabled bool) ObjectBuilderOption {
	return func(o *sceneObject) {
		o.enabled.Store(enabled)
	}
}

// WithPipelineKey sets the pipeline key used for the Object's solid draws.
//
// Parameters:
//   - key: the pipeline key, empty to skip solid draws
//
// Returns:
//   - ObjectBuilderOption: functional option to set the solid pipeline key
func WithPipelineKey(key string) ObjectBuilderOption {
	return func(o *sceneObject) {
		o.pipelineKey = key
	}
}

// WithWirePipelineKey sets the pipeline key used for the Object's wireframe
// draws.
//
// Parameters:
//   - key: the pipeline key, empty to skip wireframe draws
//
// Returns:
//   - ObjectBuilderOption: functional option to set the wireframe pipeline key
func WithWirePipelineKey(key string) ObjectBuilderOption {
	return func(o *sceneObject) {
		o.wirePipelineKey = key
	}
}

// WithWireframe sets whether the Object draws as a line-list wireframe
// instead of solid triangles.
//
// Parameters:
//   - wireframe: true to draw wireframe
//
// Returns:
//   - ObjectBuilderOption: functional option to set the wireframe flag
func WithWireframe(wireframe bool) ObjectBuilderOption {
	return func(o *sceneObject) {
		o.wireframe = wireframe
	}
}

// WithSubRange restricts the Object's solid draws to a named sub-range of
// its mesh buffer.
//
// Parameters:
//   - name: the sub-range name, empty to draw the whole mesh
//
// Returns:
//   - ObjectBuilderOption: functional option to set the sub-range name
func WithSubRange(name string) ObjectBuilderOption {
	return func(o *sceneObject) {
		o.subRangeName = name
	}
}

// WithColor sets the Object's flat RGBA color.
//
// Parameters:
//   - r, g, b, a: color components in 0..1
//
// Returns:
//   - ObjectBuilderOption: functional option to set the color
func WithColor(r, g, b, a float32) ObjectBuilderOption {
	return func(o *sceneObject) {
		o.color = [4]float32{r, g, b, a}
	}
}

// WithPosition sets the initial position of the Object.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - ObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) ObjectBuilderOption {
	return func(o *sceneObject) {
		o.position = [3]float32{x, y, z}
	}
}

// WithRotation sets the initial rotation of the Object in radians.
//
// Parameters:
//   - rx: the x rotation angle
//   - ry: the y rotation angle
//   - rz: the z rotation angle
//
// Returns:
//   - ObjectBuilderOption: functional option to set the rotation
func WithRotation(rx, ry, rz float32) ObjectBuilderOption {
	return func(o *sceneObject) {
		o.rotation = [3]float32{rx, ry, rz}
	}
}

// WithRotationSpeed sets the rotation speed of the Object in radians per
// second. The scene integrates it into the rotation every update.
//
// Parameters:
//   - rx: the x rotation speed
//   - ry: the y rotation speed
//   - rz: the z rotation speed
//
// Returns:
//   - ObjectBuilderOption: functional option to set the rotation speed
func WithRotationSpeed(rx, ry, rz float32) ObjectBuilderOption {
	return func(o *sceneObject) {
		o.rotationSpeed = [3]float32{rx, ry, rz}
	}
}

// WithScale sets the scale factors of the Object.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - ObjectBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) ObjectBuilderOption {
	return func(o *sceneObject) {
		o.scale = [3]float32{sx, sy, sz}
	}
}
