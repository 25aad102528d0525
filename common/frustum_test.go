package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testViewProj builds a view-projection matrix for a camera at (0, 0, 10)
// looking at the origin with a 90 degree vertical field of view.
func testViewProj() []float32 {
	view := make([]float32, 16)
	proj := make([]float32, 16)
	vp := make([]float32, 16)
	LookAt(view, 0, 0, 10, 0, 0, 0, 0, 1, 0)
	Perspective(proj, 1.5708, 1.0, 0.1, 100.0)
	Mul4(vp, proj, view)
	return vp
}

func TestFrustumSphereCulling(t *testing.T) {
	f := ExtractFrustumFromMatrix(testViewProj())

	// Dead center of the view volume.
	assert.True(t, f.IntersectsSphere(0, 0, 0, 1))

	// Behind the camera.
	assert.False(t, f.IntersectsSphere(0, 0, 50, 1))

	// Beyond the far plane (camera at z=10, far=100).
	assert.False(t, f.IntersectsSphere(0, 0, -200, 1))

	// Far off to the side at the target depth.
	assert.False(t, f.IntersectsSphere(500, 0, 0, 1))
}

func TestFrustumSphereRadiusStraddlesPlane(t *testing.T) {
	f := ExtractFrustumFromMatrix(testViewProj())

	// With a 90 degree fov the left plane passes through x = -10 at z = 0.
	// A point just outside is culled, but a sphere large enough to reach
	// back across the plane survives.
	assert.False(t, f.IntersectsSphere(-12, 0, 0, 0.5))
	assert.True(t, f.IntersectsSphere(-12, 0, 0, 5))
}

func TestFrustumPlanesNormalized(t *testing.T) {
	f := ExtractFrustumFromMatrix(testViewProj())
	for i, p := range f.Planes {
		lenSq := p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2]
		assert.InDelta(t, 1.0, lenSq, 1e-4, "plane %d normal should be unit length", i)
	}
}
