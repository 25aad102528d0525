package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quadBuffer() *Buffer {
	return &Buffer{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{1, 0, 0}},
			{Position: mgl32.Vec3{1, 1, 0}},
			{Position: mgl32.Vec3{0, 1, 0}},
		},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
		Topology: TriangleList,
	}
}

func TestTopologyString(t *testing.T) {
	assert.Equal(t, "triangle-list", TriangleList.String())
	assert.Equal(t, "triangle-strip", TriangleStrip.String())
	assert.Equal(t, "triangle-fan", TriangleFan.String())
	assert.Equal(t, "line-list", LineList.String())
	assert.Equal(t, "topology(7)", Topology(7).String())
}

func TestTriangleCount(t *testing.T) {
	tests := []struct {
		name     string
		buffer   Buffer
		expected int
	}{
		{"indexed list", *quadBuffer(), 2},
		{"non-indexed list", Buffer{Vertices: make([]Vertex, 9), Topology: TriangleList}, 3},
		{"strip", Buffer{Vertices: make([]Vertex, 10), Topology: TriangleStrip}, 8},
		{"fan", Buffer{Vertices: make([]Vertex, 5), Topology: TriangleFan}, 3},
		{"strip too short", Buffer{Vertices: make([]Vertex, 2), Topology: TriangleStrip}, 0},
		{"empty", Buffer{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.buffer.TriangleCount())
		})
	}
}

func TestBufferCounts(t *testing.T) {
	b := quadBuffer()
	assert.Equal(t, 4, b.VertexCount())
	assert.Equal(t, 6, b.IndexCount())
	assert.True(t, b.Indexed())

	strip := Buffer{Vertices: make([]Vertex, 4), Topology: TriangleStrip}
	assert.False(t, strip.Indexed())
}

func TestBufferByteViews(t *testing.T) {
	b := quadBuffer()
	assert.Len(t, b.VertexBytes(), 4*VertexStride)
	assert.Len(t, b.IndexBytes(), 6*4)

	empty := Buffer{}
	assert.Empty(t, empty.VertexBytes())
	assert.Empty(t, empty.IndexBytes())
}

func TestBoundingRadius(t *testing.T) {
	b := quadBuffer()
	assert.InDelta(t, 1.4142135, b.BoundingRadius(), 1e-6)
	assert.Zero(t, (&Buffer{}).BoundingRadius())
}

func TestSubRanges(t *testing.T) {
	b := quadBuffer()
	_, ok := b.Range("front")
	assert.False(t, ok)

	b.SetRange("front", 0, 3)
	b.SetRange("back", 3, 3)
	r, ok := b.Range("front")
	require.True(t, ok)
	assert.Equal(t, SubRange{Offset: 0, Count: 3}, r)
	r, ok = b.Range("back")
	require.True(t, ok)
	assert.Equal(t, SubRange{Offset: 3, Count: 3}, r)
}

func TestValidate(t *testing.T) {
	b := quadBuffer()
	assert.NoError(t, b.Validate())

	outOfRange := quadBuffer()
	outOfRange.Indices[5] = 9
	assert.Error(t, outOfRange.Validate())

	ragged := quadBuffer()
	ragged.Indices = ragged.Indices[:5]
	assert.Error(t, ragged.Validate())

	badRange := quadBuffer()
	badRange.SetRange("sides", 3, 6)
	assert.Error(t, badRange.Validate())

	vertexRange := Buffer{Vertices: make([]Vertex, 6), Topology: TriangleStrip}
	vertexRange.SetRange("all", 0, 6)
	assert.NoError(t, vertexRange.Validate())
	vertexRange.SetRange("all", 0, 7)
	assert.Error(t, vertexRange.Validate())
}

func TestEachTriangleIndexedList(t *testing.T) {
	b := quadBuffer()
	var got [][3]mgl32.Vec3
	b.EachTriangle(func(v0, v1, v2 Vertex) {
		got = append(got, [3]mgl32.Vec3{v0.Position, v1.Position, v2.Position})
	})
	require.Len(t, got, 2)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, got[0][0])
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, got[0][1])
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, got[0][2])
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, got[1][2])
}

func TestEachTriangleStripWinding(t *testing.T) {
	// A flat strip in the XY plane. With alternating winding corrected, every
	// expanded triangle must face +Z.
	b := Buffer{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{0, 1, 0}},
			{Position: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{1, 1, 0}},
			{Position: mgl32.Vec3{1, 0, 0}},
			{Position: mgl32.Vec3{2, 1, 0}},
			{Position: mgl32.Vec3{2, 0, 0}},
		},
		Topology: TriangleStrip,
	}
	count := 0
	b.EachTriangle(func(v0, v1, v2 Vertex) {
		n := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position))
		assert.Greater(t, n.Z(), float32(0), "triangle %d flipped", count)
		count++
	})
	assert.Equal(t, 4, count)
}

func TestEachTriangleFan(t *testing.T) {
	b := Buffer{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{1, 0, 0}},
			{Position: mgl32.Vec3{0, 1, 0}},
			{Position: mgl32.Vec3{-1, 0, 0}},
		},
		Topology: TriangleFan,
	}
	var centers []mgl32.Vec3
	count := 0
	b.EachTriangle(func(v0, v1, v2 Vertex) {
		centers = append(centers, v0.Position)
		count++
	})
	require.Equal(t, 2, count)
	for _, c := range centers {
		assert.Equal(t, mgl32.Vec3{0, 0, 0}, c)
	}
}

func TestEdgeIndicesDeduplicates(t *testing.T) {
	b := quadBuffer()

	edges := b.EdgeIndices()
	// Two triangles sharing the 0-2 diagonal: 5 unique edges.
	assert.Equal(t, []uint32{0, 1, 1, 2, 2, 0, 2, 3, 3, 0}, edges)
}

func TestEdgeIndicesNonIndexed(t *testing.T) {
	b := Buffer{Vertices: make([]Vertex, 6), Topology: TriangleList}

	edges := b.EdgeIndices()
	assert.Equal(t, []uint32{0, 1, 1, 2, 2, 0, 3, 4, 4, 5, 5, 3}, edges)
}

func TestEdgeIndicesStrip(t *testing.T) {
	b := Buffer{Vertices: make([]Vertex, 4), Topology: TriangleStrip}

	// Triangles (0,1,2) and (1,2,3) share the 1-2 edge: 5 unique edges.
	edges := b.EdgeIndices()
	assert.Len(t, edges, 10)
}

func TestWireframe(t *testing.T) {
	b := quadBuffer()

	w := b.Wireframe()
	assert.Equal(t, LineList, w.Topology)
	assert.Equal(t, b.Vertices, w.Vertices)
	assert.Len(t, w.Indices, 10)
	assert.Equal(t, 0, w.TriangleCount())
	assert.Empty(t, w.SubRanges)
	require.NoError(t, w.Validate())

	w.EachTriangle(func(v0, v1, v2 Vertex) {
		t.Fatal("line-list buffers assemble no triangles")
	})
}

func TestValidateLineList(t *testing.T) {
	odd := Buffer{
		Vertices: make([]Vertex, 3),
		Indices:  []uint32{0, 1, 2},
		Topology: LineList,
	}
	assert.Error(t, odd.Validate())

	even := Buffer{
		Vertices: make([]Vertex, 3),
		Indices:  []uint32{0, 1, 1, 2},
		Topology: LineList,
	}
	assert.NoError(t, even.Validate())
}
