package shape

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primshapes/prim-go/engine/mesh"
)

// rangeTriangles resolves the triangles of a named sub-range.
func rangeTriangles(t *testing.T, b mesh.Buffer, name string) [][3]mesh.Vertex {
	t.Helper()
	r, ok := b.Range(name)
	require.True(t, ok, "missing sub-range %q", name)
	var tris [][3]mesh.Vertex
	for i := r.Offset; i+2 < r.Offset+r.Count; i += 3 {
		tris = append(tris, [3]mesh.Vertex{
			b.Vertices[b.Indices[i]],
			b.Vertices[b.Indices[i+1]],
			b.Vertices[b.Indices[i+2]],
		})
	}
	return tris
}

func geometricNormal(tri [3]mesh.Vertex) mgl32.Vec3 {
	return tri[1].Position.Sub(tri[0].Position).
		Cross(tri[2].Position.Sub(tri[0].Position)).Normalize()
}

func TestBoxFaces(t *testing.T) {
	b := Box{Width: 2, Height: 4, Depth: 6}.Generate()
	require.NoError(t, b.Validate())
	assert.Equal(t, 24, b.VertexCount())
	assert.Equal(t, 36, b.IndexCount())

	// Every corner lands on the half-extent lattice.
	for _, v := range b.Vertices {
		assert.InDelta(t, 1, math32.Abs(v.Position.X()), 1e-6)
		assert.InDelta(t, 2, math32.Abs(v.Position.Y()), 1e-6)
		assert.InDelta(t, 3, math32.Abs(v.Position.Z()), 1e-6)
	}

	faces := map[string]mgl32.Vec3{
		"front face":  {0, 0, 1},
		"back face":   {0, 0, -1},
		"left face":   {-1, 0, 0},
		"right face":  {1, 0, 0},
		"top face":    {0, 1, 0},
		"bottom face": {0, -1, 0},
	}
	for name, want := range faces {
		for _, tri := range rangeTriangles(t, b, name) {
			assert.InDelta(t, 1, geometricNormal(tri).Dot(want), 1e-5, name)
			for _, v := range tri {
				assert.Equal(t, want, v.Normal, name)
			}
		}
	}
}

func TestPlaneFacesUp(t *testing.T) {
	p := Plane{Width: 4, Depth: 2}.Generate()
	require.NoError(t, p.Validate())
	assert.Equal(t, 4, p.VertexCount())
	assert.Equal(t, 6, p.IndexCount())

	up := mgl32.Vec3{0, 1, 0}
	p.EachTriangle(func(v0, v1, v2 mesh.Vertex) {
		face := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position))
		assert.Positive(t, face.Dot(up))
	})
	for _, v := range p.Vertices {
		assert.Equal(t, up, v.Normal)
		assert.Zero(t, v.Position.Y())
		assert.InDelta(t, 2, math32.Abs(v.Position.X()), 1e-6)
		assert.InDelta(t, 1, math32.Abs(v.Position.Z()), 1e-6)
	}
}

func TestPrismFaces(t *testing.T) {
	b := Prism{Width: 1, Height: 1, Depth: 1}.Generate()
	require.NoError(t, b.Validate())
	assert.Equal(t, 18, b.VertexCount())
	assert.Equal(t, 24, b.IndexCount())

	wantRanges := map[string]mesh.SubRange{
		"back face":   {Offset: 0, Count: 6},
		"bottom face": {Offset: 6, Count: 3},
		"left face":   {Offset: 9, Count: 6},
		"right face":  {Offset: 15, Count: 6},
		"top face":    {Offset: 21, Count: 3},
	}
	for name, want := range wantRanges {
		r, ok := b.Range(name)
		require.True(t, ok, name)
		assert.Equal(t, want, r, name)
	}

	// Slanted walls lean outward symmetrically.
	left := rangeTriangles(t, b, "left face")[0][0].Normal
	right := rangeTriangles(t, b, "right face")[0][0].Normal
	assert.InDelta(t, -0.894427, left.X(), 1e-5)
	assert.InDelta(t, 0.447214, left.Z(), 1e-5)
	assert.InDelta(t, -left.X(), right.X(), 1e-6)
	assert.InDelta(t, left.Z(), right.Z(), 1e-6)

	// Geometric winding matches the stored flat normals on every face.
	for name := range wantRanges {
		for _, tri := range rangeTriangles(t, b, name) {
			assert.InDelta(t, 1, geometricNormal(tri).Dot(tri[0].Normal), 1e-5, name)
		}
	}
}

func TestPyramidsAreNonIndexed(t *testing.T) {
	p3 := Pyramid3{}.Generate()
	require.NoError(t, p3.Validate())
	assert.Equal(t, 12, p3.VertexCount())
	assert.Zero(t, p3.IndexCount())
	assert.Equal(t, 4, p3.TriangleCount())

	p4 := Pyramid4{BaseSize: 1, Height: 1}.Generate()
	require.NoError(t, p4.Validate())
	assert.Equal(t, 18, p4.VertexCount())
	assert.Zero(t, p4.IndexCount())
	assert.Equal(t, 6, p4.TriangleCount())
}

func TestPyramid4Extents(t *testing.T) {
	p := Pyramid4{BaseSize: 2, Height: 4}.Generate()

	minY, maxY := math32.Inf(1), math32.Inf(-1)
	for _, v := range p.Vertices {
		minY = min(minY, v.Position.Y())
		maxY = max(maxY, v.Position.Y())
	}
	// Base sits at -BaseSize/2, apex at +Height/2.
	assert.InDelta(t, -1, minY, 1e-6)
	assert.InDelta(t, 2, maxY, 1e-6)

	// Side normals tilt up and outward.
	for i := 6; i < 18; i += 3 {
		n := p.Vertices[i].Normal
		assert.Positive(t, n.Y())
		assert.InDelta(t, 1, n.Len(), 1e-5)
	}
}

func TestFinFaces(t *testing.T) {
	f := Fin{BaseLength: 1, TopLength: 0.6, Height: 1, Thickness: 0.1}.Generate()
	require.NoError(t, f.Validate())
	assert.Equal(t, 24, f.VertexCount())
	assert.Equal(t, 36, f.IndexCount())

	front, ok := f.Range("front face")
	require.True(t, ok)
	assert.Equal(t, mesh.SubRange{Offset: 0, Count: 6}, front)
	back, ok := f.Range("back face")
	require.True(t, ok)
	assert.Equal(t, mesh.SubRange{Offset: 6, Count: 6}, back)
	sides, ok := f.Range("untextured sides")
	require.True(t, ok)
	assert.Equal(t, mesh.SubRange{Offset: 12, Count: 24}, sides)

	// Broad faces are textured over the unit square, rim faces are not.
	for _, tri := range rangeTriangles(t, f, "front face") {
		for _, v := range tri {
			assert.Negative(t, v.Normal.Z())
		}
	}
	seenUV := false
	for _, tri := range rangeTriangles(t, f, "back face") {
		for _, v := range tri {
			if v.UV != (mgl32.Vec2{}) {
				seenUV = true
			}
		}
	}
	assert.True(t, seenUV)
	for _, tri := range rangeTriangles(t, f, "untextured sides") {
		for _, v := range tri {
			assert.Equal(t, mgl32.Vec2{}, v.UV)
		}
	}

	// Top edge is shorter than the base edge.
	maxBase, maxTop := float32(0), float32(0)
	for _, v := range f.Vertices {
		if v.Position.Y() == 0 {
			maxBase = max(maxBase, v.Position.X())
		} else {
			maxTop = max(maxTop, v.Position.X())
		}
	}
	assert.InDelta(t, 1, maxBase, 1e-6)
	assert.InDelta(t, 0.6, maxTop, 1e-6)
}
