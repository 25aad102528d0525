package shape

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// Pyramid3 generates a fixed-size tetrahedron: a triangular base half a
// unit below the origin with the apex half a unit above it. Both buffers
// are non-indexed; every face owns its three vertices.
type Pyramid3 struct{}

var _ Generator = Pyramid3{}

// Generate builds the tetrahedron mesh.
//
// Returns:
//   - mesh.Buffer: 12 non-indexed vertices forming four flat faces
func (Pyramid3) Generate() mesh.Buffer {
	const halfBase, halfHeight = 0.5, 0.5

	top := mgl32.Vec3{0, halfHeight, 0}
	frontLeft := mgl32.Vec3{-halfBase, -halfHeight, halfBase}
	frontRight := mgl32.Vec3{halfBase, -halfHeight, halfBase}
	back := mgl32.Vec3{0, -halfHeight, -halfBase}

	buf := mesh.Buffer{
		Topology: mesh.TriangleList,
		Vertices: make([]mesh.Vertex, 0, 12),
	}

	// Side faces share the apex; each normal comes from its own plane.
	side := func(b1, b2 mgl32.Vec3) {
		normal := b1.Sub(top).Cross(b2.Sub(top)).Normalize()
		buf.Vertices = append(buf.Vertices,
			mesh.Vertex{Position: top, Normal: normal, UV: mgl32.Vec2{0.5, 1}},
			mesh.Vertex{Position: b1, Normal: normal, UV: mgl32.Vec2{0, 0}},
			mesh.Vertex{Position: b2, Normal: normal, UV: mgl32.Vec2{1, 0}},
		)
	}
	side(back, frontLeft)       // left
	side(frontRight, back)      // right
	side(frontLeft, frontRight) // front

	down := mgl32.Vec3{0, -1, 0}
	buf.Vertices = append(buf.Vertices,
		mesh.Vertex{Position: frontLeft, Normal: down, UV: mgl32.Vec2{0, 1}},
		mesh.Vertex{Position: back, Normal: down, UV: mgl32.Vec2{0.5, 0}},
		mesh.Vertex{Position: frontRight, Normal: down, UV: mgl32.Vec2{1, 1}},
	)
	return buf
}

// Pyramid4 generates a square-based pyramid. The base sits at
// y = -BaseSize/2 and the apex at y = Height/2, matching the slightly
// asymmetric placement long-standing callers position against.
type Pyramid4 struct {
	BaseSize float32
	Height   float32
}

var _ Generator = Pyramid4{}

// Generate builds the pyramid mesh.
//
// Returns:
//   - mesh.Buffer: 18 non-indexed vertices forming four sides and a base
func (p Pyramid4) Generate() mesh.Buffer {
	hb := clampScale(p.BaseSize) / 2
	top := mgl32.Vec3{0, clampScale(p.Height) / 2, 0}

	frontLeft := mgl32.Vec3{-hb, -hb, hb}
	frontRight := mgl32.Vec3{hb, -hb, hb}
	backLeft := mgl32.Vec3{-hb, -hb, -hb}
	backRight := mgl32.Vec3{hb, -hb, -hb}

	buf := mesh.Buffer{
		Topology: mesh.TriangleList,
		Vertices: make([]mesh.Vertex, 0, 18),
	}

	down := mgl32.Vec3{0, -1, 0}
	buf.Vertices = append(buf.Vertices,
		mesh.Vertex{Position: frontLeft, Normal: down, UV: mgl32.Vec2{0, 1}},
		mesh.Vertex{Position: backLeft, Normal: down, UV: mgl32.Vec2{0, 0}},
		mesh.Vertex{Position: backRight, Normal: down, UV: mgl32.Vec2{1, 0}},
		mesh.Vertex{Position: frontLeft, Normal: down, UV: mgl32.Vec2{0, 1}},
		mesh.Vertex{Position: backRight, Normal: down, UV: mgl32.Vec2{1, 0}},
		mesh.Vertex{Position: frontRight, Normal: down, UV: mgl32.Vec2{1, 1}},
	)

	side := func(bl, br mgl32.Vec3) {
		normal := br.Sub(bl).Cross(top.Sub(bl)).Normalize()
		buf.Vertices = append(buf.Vertices,
			mesh.Vertex{Position: top, Normal: normal, UV: mgl32.Vec2{0.5, 1}},
			mesh.Vertex{Position: bl, Normal: normal, UV: mgl32.Vec2{0, 0}},
			mesh.Vertex{Position: br, Normal: normal, UV: mgl32.Vec2{1, 0}},
		)
	}
	side(backLeft, frontLeft)   // left
	side(backRight, backLeft)   // back
	side(frontRight, backRight) // right
	side(frontLeft, frontRight) // front

	return buf
}
