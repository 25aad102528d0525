package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mulPoint transforms a point by a column-major 4x4 matrix and returns the
// homogeneous result.
func mulPoint(m [16]float32, x, y, z float32) (ox, oy, oz, ow float32) {
	ox = m[0]*x + m[4]*y + m[8]*z + m[12]
	oy = m[1]*x + m[5]*y + m[9]*z + m[13]
	oz = m[2]*x + m[6]*y + m[10]*z + m[14]
	ow = m[3]*x + m[7]*y + m[11]*z + m[15]
	return
}

func TestControllerSphericalPosition(t *testing.T) {
	ctrl := NewOrbitController(
		WithRadius(100),
		WithAzimuth(0),
		WithElevation(0.5),
	)

	x, y, z := ctrl.Position()
	assert.InDelta(t, 0.0, x, 1e-4)
	assert.InDelta(t, 100*math.Sin(0.5), float64(y), 1e-3)
	assert.InDelta(t, 100*math.Cos(0.5), float64(z), 1e-3)

	// Rotating a quarter turn moves the camera onto the +X axis.
	ctrl.SetAzimuth(float32(math.Pi / 2))
	x, y2, z := ctrl.Position()
	assert.InDelta(t, 100*math.Cos(0.5), float64(x), 1e-3)
	assert.InDelta(t, float64(y), float64(y2), 1e-4)
	assert.InDelta(t, 0.0, z, 1e-3)
}

func TestZoomClampsRadius(t *testing.T) {
	ctrl := NewOrbitController(WithRadius(30))

	// Default zoom speed is 15, min radius 20: one positive tick hits the floor.
	ctrl.Zoom(10)
	assert.InDelta(t, ctrl.MinRadius(), ctrl.Radius(), 1e-6)

	ctrl.Zoom(-1000)
	assert.InDelta(t, ctrl.MaxRadius(), ctrl.Radius(), 1e-6)

	ctrl.SetRadius(5)
	assert.InDelta(t, ctrl.MinRadius(), ctrl.Radius(), 1e-6)
}

func TestElevationClamps(t *testing.T) {
	ctrl := NewOrbitController()

	ctrl.SetElevation(10)
	assert.InDelta(t, ctrl.MaxElevation(), ctrl.Elevation(), 1e-6)

	ctrl.SetElevation(-10)
	assert.InDelta(t, ctrl.MinElevation(), ctrl.Elevation(), 1e-6)

	// Holding the orbit key never pushes past the limit.
	for range 500 {
		ctrl.OrbitUp()
	}
	assert.InDelta(t, ctrl.MaxElevation(), ctrl.Elevation(), 1e-6)
}

func TestPanPreservesOrbitDistance(t *testing.T) {
	ctrl := NewOrbitController(
		WithRadius(100),
		WithAzimuth(0),
		WithElevation(0.5),
	)

	ctrl.PanRight(5)
	ctrl.PanUp(-3)
	ctrl.PanForward(7)

	px, py, pz := ctrl.Position()
	tx, ty, tz := ctrl.Target()
	dx, dy, dz := px-tx, py-ty, pz-tz
	dist := math.Sqrt(float64(dx*dx + dy*dy + dz*dz))
	assert.InDelta(t, 100.0, dist, 1e-2, "panning must translate position and target together")

	// With azimuth 0 the local right axis is +X, so PanRight moved the target along X.
	assert.InDelta(t, 5.0, tx, 1e-3)
}

func TestCameraProjectsTargetToCenter(t *testing.T) {
	cam := NewCamera(
		WithAspect(16.0/9.0),
		WithFar(500),
		WithController(NewOrbitController(
			WithRadius(50),
			WithAzimuth(0.7),
			WithElevation(0.4),
			WithTarget(3, 1, -2),
		)),
	)

	vp := cam.ViewProjectionMatrix()
	x, y, _, w := mulPoint(vp, 3, 1, -2)
	require.Greater(t, w, float32(0))

	// The orbit target sits on the view axis, so it lands at clip-space center.
	assert.InDelta(t, 0.0, float64(x/w), 1e-4)
	assert.InDelta(t, 0.0, float64(y/w), 1e-4)
}

func TestCameraUpdateTracksController(t *testing.T) {
	ctrl := NewOrbitController(WithRadius(100))
	cam := NewCamera(WithController(ctrl))

	before := cam.ViewProjectionMatrix()
	ctrl.Zoom(1)
	assert.Equal(t, before, cam.ViewProjectionMatrix(), "matrices refresh on Update, not on controller changes")

	cam.Update()
	assert.NotEqual(t, before, cam.ViewProjectionMatrix())
}

func TestCameraWithoutController(t *testing.T) {
	cam := NewCamera()
	require.Nil(t, cam.Controller())

	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	cam.Update()
	assert.Equal(t, identity, cam.ViewMatrix())
	assert.Equal(t, identity, cam.ViewProjectionMatrix())
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	u := GPUCameraUniform{
		CameraPosition: [3]float32{1.5, -2.5, 3.5},
	}
	for i := range u.ViewProj {
		u.ViewProj[i] = float32(i)
	}

	require.Equal(t, 80, u.Size())
	buf := u.Marshal()
	require.Len(t, buf, 80)

	readFloat := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
	}
	assert.Equal(t, float32(0), readFloat(0))
	assert.Equal(t, float32(15), readFloat(60))
	assert.Equal(t, float32(1.5), readFloat(64))
	assert.Equal(t, float32(3.5), readFloat(72))
	assert.Equal(t, float32(0), readFloat(76))
}
