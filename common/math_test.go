package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// transformPoint multiplies a column-major 4x4 matrix by a point with w = 1.
func transformPoint(m []float32, x, y, z float32) (ox, oy, oz, ow float32) {
	ox = m[0]*x + m[4]*y + m[8]*z + m[12]
	oy = m[1]*x + m[5]*y + m[9]*z + m[13]
	oz = m[2]*x + m[6]*y + m[10]*z + m[14]
	ow = m[3]*x + m[7]*y + m[11]*z + m[15]
	return
}

func TestMul4Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)

	m := []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	out := make([]float32, 16)
	Mul4(out, id, m)
	assert.Equal(t, m, out)

	// Mul4 must tolerate aliased output.
	Mul4(m, id, m)
	assert.Equal(t, out, m)
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	view := make([]float32, 16)
	LookAt(view, 3, 4, 5, 0, 0, 0, 0, 1, 0)

	x, y, z, w := transformPoint(view, 3, 4, 5)
	assert.InDelta(t, 0.0, x, 1e-5)
	assert.InDelta(t, 0.0, y, 1e-5)
	assert.InDelta(t, 0.0, z, 1e-5)
	assert.InDelta(t, 1.0, w, 1e-5)

	// The look target lands on the -Z view axis at eye distance.
	dist := float32(math.Sqrt(3*3 + 4*4 + 5*5))
	x, y, z, _ = transformPoint(view, 0, 0, 0)
	assert.InDelta(t, 0.0, x, 1e-4)
	assert.InDelta(t, 0.0, y, 1e-4)
	assert.InDelta(t, float64(-dist), float64(z), 1e-4)
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := make([]float32, 16)
	near, far := float32(0.1), float32(100.0)
	Perspective(proj, 0.8, 1.5, near, far)

	// WebGPU clip space: near plane maps to depth 0, far plane to depth 1.
	_, _, z, w := transformPoint(proj, 0, 0, -near)
	assert.InDelta(t, 0.0, float64(z/w), 1e-5)

	_, _, z, w = transformPoint(proj, 0, 0, -far)
	assert.InDelta(t, 1.0, float64(z/w), 1e-4)
}

func TestBuildModelMatrix(t *testing.T) {
	out := make([]float32, 16)

	// Pure translation.
	BuildModelMatrix(out, 7, -2, 3, 0, 0, 0, 1, 1, 1)
	x, y, z, _ := transformPoint(out, 0, 0, 0)
	assert.Equal(t, []float32{7, -2, 3}, []float32{x, y, z})

	// Uniform scale doubles distances before translation applies.
	BuildModelMatrix(out, 0, 0, 0, 0, 0, 0, 2, 2, 2)
	x, y, z, _ = transformPoint(out, 1, 1, 1)
	assert.Equal(t, []float32{2, 2, 2}, []float32{x, y, z})

	// Quarter turn about Y carries +X into -Z.
	BuildModelMatrix(out, 0, 0, 0, 0, float32(math.Pi/2), 0, 1, 1, 1)
	x, y, z, _ = transformPoint(out, 1, 0, 0)
	assert.InDelta(t, 0.0, x, 1e-6)
	assert.InDelta(t, 0.0, y, 1e-6)
	assert.InDelta(t, -1.0, z, 1e-6)
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes[float32](nil))

	data := []float32{1.0, 2.0}
	raw := SliceToBytes(data)
	require.Len(t, raw, 8)
	// 1.0f little-endian = 0x3f800000
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, raw[:4])
}

func TestStructToBytes(t *testing.T) {
	v := struct {
		A float32
		B float32
	}{A: 1.0, B: 2.0}
	raw := StructToBytes(&v)
	require.Len(t, raw, 8)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, raw[:4])
}
