package shape

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// Fin generates a right-angled trapezoid slab: the base edge runs from the
// origin along +X, the top edge is shorter, and the slab extends half the
// thickness to either side of the XY plane. Only the two broad faces carry
// texture coordinates; the four rim faces map to a single texel.
type Fin struct {
	BaseLength float32
	TopLength  float32
	Height     float32
	Thickness  float32
}

var _ Generator = Fin{}

// Generate builds the fin mesh.
//
// Returns:
//   - mesh.Buffer: 24 vertices and 36 indices; sub-ranges "front face",
//     "back face" and "untextured sides" address the textured and rim faces
func (f Fin) Generate() mesh.Buffer {
	base := clampScale(f.BaseLength)
	top := clampScale(f.TopLength)
	height := clampScale(f.Height)
	ht := clampScale(f.Thickness) / 2

	// Corner layout, front slab at -Z: 0..3 front, 4..7 back, each ordered
	// bottom-left, bottom-right, top-left, top-right.
	corners := [8]mgl32.Vec3{
		{0, 0, -ht}, {base, 0, -ht}, {0, height, -ht}, {top, height, -ht},
		{0, 0, ht}, {base, 0, ht}, {0, height, ht}, {top, height, ht},
	}

	buf := mesh.Buffer{
		Topology: mesh.TriangleList,
		Vertices: make([]mesh.Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}

	quadUVs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	textured := func(normal mgl32.Vec3, ids [4]int) {
		for k, id := range ids {
			buf.Vertices = append(buf.Vertices, mesh.Vertex{Position: corners[id], Normal: normal, UV: quadUVs[k]})
		}
	}
	untextured := func(normal mgl32.Vec3, ids [4]int) {
		for _, id := range ids {
			buf.Vertices = append(buf.Vertices, mesh.Vertex{Position: corners[id], Normal: normal})
		}
	}

	textured(mgl32.Vec3{0, 0, -1}, [4]int{0, 1, 2, 3})   // front
	textured(mgl32.Vec3{0, 0, 1}, [4]int{4, 5, 6, 7})    // back
	untextured(mgl32.Vec3{0, 1, 0}, [4]int{2, 3, 6, 7})  // top
	untextured(mgl32.Vec3{0, -1, 0}, [4]int{0, 1, 4, 5}) // bottom
	untextured(mgl32.Vec3{-1, 0, 0}, [4]int{0, 2, 4, 6}) // left
	untextured(mgl32.Vec3{1, 0, 0}, [4]int{1, 3, 5, 7})  // right

	buf.Indices = append(buf.Indices,
		0, 2, 1, 1, 2, 3, // front
		4, 5, 6, 5, 7, 6, // back
		8, 10, 9, 9, 10, 11, // top
		12, 13, 14, 13, 15, 14, // bottom
		16, 18, 17, 17, 18, 19, // left
		20, 21, 22, 21, 23, 22, // right
	)

	buf.SetRange("front face", 0, 6)
	buf.SetRange("back face", 6, 6)
	buf.SetRange("untextured sides", 12, 24)
	return buf
}
