// package mesh defines the interleaved vertex/index buffer format produced by the
// shape generators and consumed by the rendering backend, together with the shared
// lattice and frame-propagation algorithms the generators are built on.
package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/common"
)

// Vertex is a single interleaved mesh vertex: position, normal, and texture
// coordinate packed as 8 contiguous float32 fields (32 bytes, no padding).
// The layout matches the vertex buffer stride the renderer declares, so a
// []Vertex can be uploaded to the GPU without repacking.
type Vertex struct {
	// Position is the vertex position in model space.
	Position mgl32.Vec3

	// Normal is the vertex normal. Unit length within numerical tolerance,
	// except at pole singularities where it is the normalized result of an
	// accumulated area-weighted average.
	Normal mgl32.Vec3

	// UV is the texture coordinate. The revolution coordinate of swept shapes
	// maps linearly to [0, 1].
	UV mgl32.Vec2
}

// VertexStride is the size of one Vertex in bytes (8 float32 fields).
const VertexStride = 32

// Topology identifies how a Buffer's vertices assemble into triangles.
type Topology int

const (
	// TriangleList assembles every 3 consecutive (indexed) vertices into an
	// independent triangle. This is the default for all indexed generators.
	TriangleList Topology = iota

	// TriangleStrip assembles each vertex after the second into a triangle
	// with its two predecessors, alternating winding.
	TriangleStrip

	// TriangleFan assembles each vertex after the second into a triangle with
	// the first vertex and its predecessor.
	TriangleFan

	// LineList assembles every 2 consecutive (indexed) vertices into an
	// independent line segment. Produced by EdgeIndices for wireframe draws.
	LineList
)

// String returns the topology name for logs and error messages.
func (t Topology) String() string {
	switch t {
	case TriangleList:
		return "triangle-list"
	case TriangleStrip:
		return "triangle-strip"
	case TriangleFan:
		return "triangle-fan"
	case LineList:
		return "line-list"
	default:
		return fmt.Sprintf("topology(%d)", int(t))
	}
}

// SubRange names a contiguous slice of a Buffer for partial draws, e.g. a
// cylinder's "top cap" or one box face. For indexed buffers Offset and Count
// are in indices; for non-indexed buffers they are in vertices.
type SubRange struct {
	// Offset is the first index (or vertex) of the range.
	Offset uint32

	// Count is the number of indices (or vertices) in the range.
	Count uint32
}

// Buffer is a generated mesh: an interleaved vertex sequence, an optional
// 32-bit index sequence, a topology tag, and named sub-ranges for partial
// draws. Generators produce one Buffer per invocation; the rendering backend
// only borrows its contents for the duration of an upload.
type Buffer struct {
	// Vertices is the interleaved vertex data.
	Vertices []Vertex

	// Indices is the triangle index data. Empty for shapes drawn non-indexed
	// (strip and fan tables, and the fixed pyramid tables).
	Indices []uint32

	// Topology is how vertices assemble into triangles.
	Topology Topology

	// SubRanges maps range names ("sides", "top cap", "front", ...) to their
	// draw offsets. Ranges are only valid for the segment counts the buffer
	// was generated with; callers must re-fetch them after regeneration.
	SubRanges map[string]SubRange
}

// VertexCount returns the number of vertices in the buffer.
//
// Returns:
//   - int: the vertex count
func (b *Buffer) VertexCount() int {
	return len(b.Vertices)
}

// IndexCount returns the number of indices in the buffer.
//
// Returns:
//   - int: the index count, 0 for non-indexed buffers
func (b *Buffer) IndexCount() int {
	return len(b.Indices)
}

// Indexed reports whether the buffer carries an index sequence.
//
// Returns:
//   - bool: true if the buffer is drawn indexed
func (b *Buffer) Indexed() bool {
	return len(b.Indices) > 0
}

// TriangleCount returns the number of triangles the buffer assembles into,
// accounting for topology and for indexed versus non-indexed draws.
//
// Returns:
//   - int: the triangle count
func (b *Buffer) TriangleCount() int {
	n := len(b.Indices)
	if n == 0 {
		n = len(b.Vertices)
	}
	switch b.Topology {
	case TriangleStrip, TriangleFan:
		if n < 3 {
			return 0
		}
		return n - 2
	case LineList:
		return 0
	default:
		return n / 3
	}
}

// VertexBytes returns the interleaved vertex data as a little-endian byte view
// suitable for direct GPU upload. The returned slice shares memory with the
// buffer; do not retain it past the upload.
//
// Returns:
//   - []byte: the raw vertex bytes, or nil if the buffer is empty
func (b *Buffer) VertexBytes() []byte {
	return common.SliceToBytes(b.Vertices)
}

// IndexBytes returns the index data as a little-endian byte view suitable for
// direct GPU upload. The returned slice shares memory with the buffer.
//
// Returns:
//   - []byte: the raw index bytes, or nil for non-indexed buffers
func (b *Buffer) IndexBytes() []byte {
	return common.SliceToBytes(b.Indices)
}

// BoundingRadius returns the bounding sphere radius of the buffer, measured as
// the maximum vertex distance from the origin. Used by frustum culling.
//
// Returns:
//   - float32: the maximum distance from the origin
func (b *Buffer) BoundingRadius() float32 {
	var maxDistSq float32
	for i := range b.Vertices {
		p := b.Vertices[i].Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}

// Range retrieves a named sub-range.
//
// Parameters:
//   - name: the sub-range name
//
// Returns:
//   - SubRange: the range, zero-valued if absent
//   - bool: true if the range exists
func (b *Buffer) Range(name string) (SubRange, bool) {
	r, ok := b.SubRanges[name]
	return r, ok
}

// SetRange records a named sub-range, allocating the map on first use.
//
// Parameters:
//   - name: the sub-range name
//   - offset: first index (or vertex, for non-indexed buffers) of the range
//   - count: number of indices (or vertices) in the range
func (b *Buffer) SetRange(name string, offset, count uint32) {
	if b.SubRanges == nil {
		b.SubRanges = make(map[string]SubRange)
	}
	b.SubRanges[name] = SubRange{Offset: offset, Count: count}
}

// Validate checks the buffer invariants: every index is below the vertex
// count, indexed triangle lists carry a multiple of 3 indices, and every
// sub-range lies within the drawn element count. Generators always emit valid
// buffers; this exists for tests and offline tooling.
//
// Returns:
//   - error: the first violated invariant, or nil
func (b *Buffer) Validate() error {
	limit := uint32(len(b.Vertices))
	for i, idx := range b.Indices {
		if idx >= limit {
			return fmt.Errorf("index %d at position %d out of range for %d vertices", idx, i, limit)
		}
	}
	if b.Topology == TriangleList && len(b.Indices) > 0 && len(b.Indices)%3 != 0 {
		return fmt.Errorf("triangle-list index count %d is not a multiple of 3", len(b.Indices))
	}
	if b.Topology == LineList && len(b.Indices) > 0 && len(b.Indices)%2 != 0 {
		return fmt.Errorf("line-list index count %d is not a multiple of 2", len(b.Indices))
	}
	elements := uint32(len(b.Indices))
	if elements == 0 {
		elements = limit
	}
	for name, r := range b.SubRanges {
		if r.Offset+r.Count > elements {
			return fmt.Errorf("sub-range %q (%d+%d) exceeds element count %d", name, r.Offset, r.Count, elements)
		}
	}
	return nil
}

// EachTriangle invokes fn once per assembled triangle, in draw order, with the
// three corner vertices resolved through the index sequence if present. Strips
// and fans are expanded. Zero-area triangles are not filtered.
//
// Parameters:
//   - fn: callback receiving the three corner vertices of each triangle
func (b *Buffer) EachTriangle(fn func(v0, v1, v2 Vertex)) {
	at := func(i int) Vertex {
		if len(b.Indices) > 0 {
			return b.Vertices[b.Indices[i]]
		}
		return b.Vertices[i]
	}
	n := len(b.Indices)
	if n == 0 {
		n = len(b.Vertices)
	}

	switch b.Topology {
	case TriangleStrip:
		for i := 2; i < n; i++ {
			// Alternate winding so every triangle faces the same way.
			if i%2 == 0 {
				fn(at(i-2), at(i-1), at(i))
			} else {
				fn(at(i-1), at(i-2), at(i))
			}
		}
	case TriangleFan:
		for i := 2; i < n; i++ {
			fn(at(0), at(i-1), at(i))
		}
	case LineList:
		return
	default:
		for i := 0; i+2 < n; i += 3 {
			fn(at(i), at(i+1), at(i+2))
		}
	}
}

// EdgeIndices returns a line-list index sequence covering each unique triangle
// edge once, in first-seen order. The indices reference the buffer's own
// vertices, so a wireframe buffer can reuse the solid mesh's vertex data
// unchanged. Non-indexed buffers use vertex positions as implicit indices.
// Seam-duplicated vertices produce their edges once per index pair, which
// overdraws coincident lines but never drops one.
//
// Returns:
//   - []uint32: pairs of vertex indices, two per edge
func (b *Buffer) EdgeIndices() []uint32 {
	at := func(i int) uint32 {
		if len(b.Indices) > 0 {
			return b.Indices[i]
		}
		return uint32(i)
	}
	n := len(b.Indices)
	if n == 0 {
		n = len(b.Vertices)
	}

	seen := make(map[uint64]struct{}, n)
	edges := make([]uint32, 0, n*2)
	addEdge := func(a, c uint32) {
		key := uint64(min(a, c))<<32 | uint64(max(a, c))
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		edges = append(edges, a, c)
	}
	addTriangle := func(i0, i1, i2 uint32) {
		addEdge(i0, i1)
		addEdge(i1, i2)
		addEdge(i2, i0)
	}

	switch b.Topology {
	case TriangleStrip:
		for i := 2; i < n; i++ {
			addTriangle(at(i-2), at(i-1), at(i))
		}
	case TriangleFan:
		for i := 2; i < n; i++ {
			addTriangle(at(0), at(i-1), at(i))
		}
	case LineList:
		for i := 0; i+1 < n; i += 2 {
			addEdge(at(i), at(i+1))
		}
	default:
		for i := 0; i+2 < n; i += 3 {
			addTriangle(at(i), at(i+1), at(i+2))
		}
	}
	return edges
}

// Wireframe returns a line-list view of the buffer for wireframe rendering.
// The returned buffer shares this buffer's vertex slice and carries EdgeIndices
// as its index sequence. Sub-ranges are not carried over since their offsets
// are meaningless in edge index space.
//
// Returns:
//   - Buffer: a LineList buffer sharing this buffer's vertices
func (b *Buffer) Wireframe() Buffer {
	return Buffer{
		Vertices: b.Vertices,
		Indices:  b.EdgeIndices(),
		Topology: LineList,
	}
}
