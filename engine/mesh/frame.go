package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// degenerateEpsilon is the squared-length floor below which a vector is
// treated as zero during normalization and frame propagation.
const degenerateEpsilon = 1e-6

// Frame is an orthonormal local frame along a centerline. Cross-sections of
// curve-swept shapes are laid out in the Normal/Binormal plane.
type Frame struct {
	// Tangent points along the centerline.
	Tangent mgl32.Vec3

	// Normal is the frame's local x direction, propagated twist-free.
	Normal mgl32.Vec3

	// Binormal completes the right-handed triple, Tangent × Normal.
	Binormal mgl32.Vec3
}

// FirstFrame seeds a frame for the given tangent from a fixed reference
// direction. When the reference is (anti)parallel to the tangent it is
// replaced by a world axis orthogonal enough to the tangent, so the seed
// never degenerates.
//
// Parameters:
//   - tangent: the unit centerline tangent at the first point
//   - reference: the preferred direction the binormal is derived from
//
// Returns:
//   - Frame: the seeded orthonormal frame
func FirstFrame(tangent, reference mgl32.Vec3) Frame {
	binormal := tangent.Cross(reference)
	if binormal.Len() < degenerateEpsilon {
		reference = mgl32.Vec3{0, 1, 0}
		if math32.Abs(tangent.Y()) > math32.Abs(tangent.X()) {
			reference = mgl32.Vec3{1, 0, 0}
		}
		binormal = tangent.Cross(reference)
	}
	binormal = binormal.Normalize()
	normal := binormal.Cross(tangent).Normalize()
	return Frame{Tangent: tangent, Normal: normal, Binormal: binormal}
}

// Advance carries the frame onto the next tangent by rotating the normal
// through the minimal rotation mapping the previous tangent onto the new one:
// axis = prev × next, angle = acos(clamp(prev·next, −1, 1)). Recomputing from
// a fixed reference instead would twist the tube whenever a tangent aligns
// with that reference. Near-parallel tangents skip the rotation and carry the
// normal unchanged.
//
// Parameters:
//   - tangent: the unit centerline tangent at the next point
//
// Returns:
//   - Frame: the propagated frame at the next point
func (f Frame) Advance(tangent mgl32.Vec3) Frame {
	axis := f.Tangent.Cross(tangent)
	normal := f.Normal
	if axis.Len() > degenerateEpsilon {
		angle := math32.Acos(mgl32.Clamp(f.Tangent.Dot(tangent), -1, 1))
		normal = mgl32.QuatRotate(angle, axis.Normalize()).Rotate(normal)
	}
	binormal := tangent.Cross(normal)
	if l := binormal.Len(); l > degenerateEpsilon {
		binormal = binormal.Mul(1 / l)
	}
	return Frame{Tangent: tangent, Normal: normal, Binormal: binormal}
}

// PropagateFrames produces one frame per tangent, seeding the first from the
// reference direction and advancing each subsequent frame from its
// predecessor.
//
// Parameters:
//   - tangents: unit centerline tangents, one per sample point
//   - reference: the seed direction for the first frame
//
// Returns:
//   - []Frame: one orthonormal frame per tangent
func PropagateFrames(tangents []mgl32.Vec3, reference mgl32.Vec3) []Frame {
	frames := make([]Frame, len(tangents))
	if len(tangents) == 0 {
		return frames
	}
	frames[0] = FirstFrame(tangents[0], reference)
	for i := 1; i < len(tangents); i++ {
		frames[i] = frames[i-1].Advance(tangents[i])
	}
	return frames
}

// CenterlineTangents estimates unit tangents for a sampled centerline using
// central differences, falling back to one-sided differences at the
// endpoints. Coincident samples carry the previous tangent forward.
//
// Parameters:
//   - points: the sampled centerline
//
// Returns:
//   - []mgl32.Vec3: one unit tangent per point
func CenterlineTangents(points []mgl32.Vec3) []mgl32.Vec3 {
	n := len(points)
	tangents := make([]mgl32.Vec3, n)
	for i := range points {
		var d mgl32.Vec3
		switch {
		case n == 1:
			d = mgl32.Vec3{0, 0, 1}
		case i == 0:
			d = points[1].Sub(points[0])
		case i == n-1:
			d = points[n-1].Sub(points[n-2])
		default:
			d = points[i+1].Sub(points[i-1])
		}
		if l := d.Len(); l > degenerateEpsilon {
			tangents[i] = d.Mul(1 / l)
		} else if i > 0 {
			tangents[i] = tangents[i-1]
		} else {
			tangents[i] = mgl32.Vec3{0, 0, 1}
		}
	}
	return tangents
}

// SafeNormalize returns v normalized, or fallback when v is too short to
// normalize. Generators use it wherever a degenerate input parameter could
// otherwise produce a NaN normal.
//
// Parameters:
//   - v: the vector to normalize
//   - fallback: the direction substituted for near-zero input
//
// Returns:
//   - mgl32.Vec3: the unit vector
func SafeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if l := v.Len(); l > degenerateEpsilon {
		return v.Mul(1 / l)
	}
	return fallback
}
