package mesh

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cylinderSampler lays rings of unit radius along +Y, revolution angle
// advancing as (cos, sin). The standard orientation every generator uses.
func cylinderSampler(cols int) GridSampler {
	return func(i, j int) Vertex {
		a := 2 * math32.Pi * float32(j) / float32(cols)
		return Vertex{
			Position: mgl32.Vec3{math32.Cos(a), float32(i), math32.Sin(a)},
			Normal:   mgl32.Vec3{math32.Cos(a), 0, math32.Sin(a)},
		}
	}
}

func TestLatticeCounts(t *testing.T) {
	open := Lattice{Rows: 3, Cols: 5}
	assert.Equal(t, 15, open.VertexCount())
	assert.Equal(t, 6*2*4, open.IndexCount())

	closed := Lattice{Rows: 3, Cols: 5, Closed: true}
	assert.Equal(t, 15, closed.VertexCount())
	assert.Equal(t, 6*2*5, closed.IndexCount())
}

func TestLatticeBuild(t *testing.T) {
	l := Lattice{Rows: 2, Cols: 3}
	b := l.Build(func(i, j int) Vertex {
		return Vertex{Position: mgl32.Vec3{float32(j), float32(i), 0}}
	})
	require.Equal(t, 6, b.VertexCount())
	require.Equal(t, 12, b.IndexCount())
	assert.Equal(t, TriangleList, b.Topology)
	assert.NoError(t, b.Validate())

	// Row-major layout: row 0 first, then row 1.
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, b.Vertices[2].Position)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, b.Vertices[3].Position)

	// First quad: (0,3,1),(1,3,4).
	assert.Equal(t, []uint32{0, 3, 1, 1, 3, 4}, b.Indices[:6])
}

func TestLatticeClosedWrapsSeam(t *testing.T) {
	l := Lattice{Rows: 2, Cols: 4, Closed: true}
	b := l.Build(cylinderSampler(4))
	require.NoError(t, b.Validate())

	// The last column's quad must reference column 0 of both rows.
	last := b.Indices[len(b.Indices)-6:]
	assert.Contains(t, last, uint32(0))
	assert.Contains(t, last, uint32(4))
	// No index reaches past the Rows×Cols grid; the wrap reuses the seam
	// vertices instead of duplicating them.
	for _, idx := range b.Indices {
		assert.Less(t, idx, uint32(8))
	}
}

func TestLatticeOpenLeavesSeam(t *testing.T) {
	l := Lattice{Rows: 2, Cols: 4}
	b := l.Build(cylinderSampler(4))
	require.NoError(t, b.Validate())
	assert.Equal(t, 6*1*3, b.IndexCount())

	// Column 3 appears only as the right edge of the final quad; nothing
	// stitches it back to column 0.
	for i := 0; i+2 < len(b.Indices); i += 3 {
		tri := b.Indices[i : i+3]
		hasFirst := tri[0]%4 == 0 || tri[1]%4 == 0 || tri[2]%4 == 0
		hasLast := tri[0]%4 == 3 || tri[1]%4 == 3 || tri[2]%4 == 3
		assert.False(t, hasFirst && hasLast, "seam columns stitched together in triangle %v", tri)
	}
}

// latticeWindingSum accumulates face normal · vertex normal over the shell.
// Positive means the stitched winding agrees with the outward normals.
func latticeWindingSum(b *Buffer) float32 {
	var sum float32
	b.EachTriangle(func(v0, v1, v2 Vertex) {
		face := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position))
		sum += face.Dot(v0.Normal.Add(v1.Normal).Add(v2.Normal))
	})
	return sum
}

func TestLatticeWindingOutward(t *testing.T) {
	l := Lattice{Rows: 3, Cols: 8, Closed: true}
	b := l.Build(cylinderSampler(8))
	assert.Greater(t, latticeWindingSum(&b), float32(0))
}

func TestLatticeFlipReversesWinding(t *testing.T) {
	sample := cylinderSampler(8)
	normal := Lattice{Rows: 3, Cols: 8, Closed: true}.Build(sample)
	flipped := Lattice{Rows: 3, Cols: 8, Closed: true, Flip: true}.Build(sample)
	assert.InDelta(t, latticeWindingSum(&normal), -latticeWindingSum(&flipped), 1e-4)
}

func TestAppendIndicesBaseOffset(t *testing.T) {
	l := Lattice{Rows: 2, Cols: 2}
	indices := l.AppendIndices(nil, 10)
	require.Len(t, indices, 6)
	for _, idx := range indices {
		assert.GreaterOrEqual(t, idx, uint32(10))
		assert.Less(t, idx, uint32(14))
	}
}

func TestAppendFan(t *testing.T) {
	wrapped := AppendFan(nil, 0, 1, 4, true, false)
	require.Len(t, wrapped, 12)
	// Last wrapped triangle closes back to rim vertex 1.
	assert.Equal(t, []uint32{0, 1, 4}, wrapped[9:])

	open := AppendFan(nil, 0, 1, 4, false, false)
	require.Len(t, open, 9)
	assert.Equal(t, []uint32{0, 4, 3}, open[6:])

	// Flip swaps the two rim corners of every triangle.
	flipped := AppendFan(nil, 0, 1, 4, true, true)
	assert.Equal(t, []uint32{0, 1, 2}, flipped[:3])
	assert.Equal(t, []uint32{0, 2, 1}, wrapped[:3])
}
