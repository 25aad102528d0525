package mesh

// Lattice stitches an (M+1)×N grid of per-vertex samples into a triangulated
// shell. It is the shared core of the revolved and doubly-parametrized shape
// generators: rows follow the sweep parameter (height, latitude, arc length),
// columns follow the revolution parameter. A Lattice is transient — build it,
// take the Buffer, and let it go.
//
// Seam handling follows two conventions, chosen per shape:
//   - Closed: column index wraps modulo Cols, so the last column stitches back
//     to the first. Used when rings share a single seam vertex (helix and
//     spiral cross-sections).
//   - Open: the final column is left unstitched. Shapes that need a duplicated
//     seam for texture continuity (sphere, torus) sample Cols = N+1 columns
//     where the last repeats the first position; partial arcs simply stop.
type Lattice struct {
	// Rows is the number of sampled rings, sweep steps + 1.
	Rows int

	// Cols is the number of sampled vertices per ring.
	Cols int

	// Closed wraps the column index modulo Cols when stitching.
	Closed bool

	// Flip reverses the winding of every emitted triangle, for sweeps whose
	// row direction runs against the standard outward orientation (downward
	// latitude sweeps, inner tube walls).
	Flip bool
}

// GridSampler returns the vertex at sweep row i and revolution column j.
type GridSampler func(i, j int) Vertex

// VertexCount returns the number of vertices Build will emit.
//
// Returns:
//   - int: Rows × Cols
func (l Lattice) VertexCount() int {
	return l.Rows * l.Cols
}

// IndexCount returns the number of indices Build will emit.
//
// Returns:
//   - int: 6 indices per stitched quad
func (l Lattice) IndexCount() int {
	return 6 * (l.Rows - 1) * l.quadCols()
}

func (l Lattice) quadCols() int {
	if l.Closed {
		return l.Cols
	}
	return l.Cols - 1
}

// Build samples every (row, column) pair in row-major order and stitches each
// band of quads into two triangles with outward winding: for a ring laid out
// with the revolution angle advancing as (cos, sin) and rows advancing along
// the sweep axis, the surface faces away from the generatrix.
//
// Parameters:
//   - sample: the per-(i, j) vertex function
//
// Returns:
//   - Buffer: a TriangleList buffer of Rows×Cols vertices and the stitched quads
func (l Lattice) Build(sample GridSampler) Buffer {
	b := Buffer{
		Vertices: make([]Vertex, 0, l.VertexCount()),
		Indices:  make([]uint32, 0, l.IndexCount()),
		Topology: TriangleList,
	}
	for i := 0; i < l.Rows; i++ {
		for j := 0; j < l.Cols; j++ {
			b.Vertices = append(b.Vertices, sample(i, j))
		}
	}
	b.Indices = l.AppendIndices(b.Indices, 0)
	return b
}

// AppendIndices appends the lattice's stitching indices for vertices already
// laid out row-major starting at base. Used by generators that assemble
// several lattices (walls, caps) into one buffer.
//
// Parameters:
//   - indices: the index slice to append to
//   - base: index of the lattice's first vertex within the buffer
//
// Returns:
//   - []uint32: the extended index slice
func (l Lattice) AppendIndices(indices []uint32, base uint32) []uint32 {
	cols := uint32(l.Cols)
	for i := 0; i < l.Rows-1; i++ {
		rowStart := base + uint32(i)*cols
		for j := 0; j < l.quadCols(); j++ {
			jNext := uint32(j + 1)
			if l.Closed {
				jNext %= cols
			}
			curr := rowStart + uint32(j)
			next := curr + cols
			currRight := rowStart + jNext
			nextRight := currRight + cols

			if l.Flip {
				indices = append(indices, curr, currRight, next)
				indices = append(indices, currRight, nextRight, next)
			} else {
				indices = append(indices, curr, next, currRight)
				indices = append(indices, currRight, next, nextRight)
			}
		}
	}
	return indices
}

// AppendFan appends a triangle fan sharing one center vertex, used for pole
// and cap triangulation: the degenerate ring at a cone apex or sphere pole
// collapses to the single center index instead of a zero-area ring.
//
// Parameters:
//   - indices: the index slice to append to
//   - center: index of the shared fan center vertex
//   - rimStart: index of the first rim vertex
//   - rimCount: number of rim vertices
//   - wrap: stitch the last rim vertex back to the first (no duplicated rim seam)
//   - flip: reverse winding, for caps facing the negative sweep direction
//
// Returns:
//   - []uint32: the extended index slice
func AppendFan(indices []uint32, center, rimStart uint32, rimCount int, wrap, flip bool) []uint32 {
	n := uint32(rimCount)
	segs := n - 1
	if wrap {
		segs = n
	}
	for i := uint32(0); i < segs; i++ {
		curr := rimStart + i
		next := rimStart + (i+1)%n
		if !wrap {
			next = rimStart + i + 1
		}
		if flip {
			indices = append(indices, center, curr, next)
		} else {
			indices = append(indices, center, next, curr)
		}
	}
	return indices
}
