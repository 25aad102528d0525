package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// Cone generates an upright cone: a fanned bottom cap at y=0 and flat-shaded
// side slices meeting at a single apex vertex at y=Height.
type Cone struct {
	Radius float32
	Height float32
	Slices int
}

var _ Generator = Cone{}

// Generate builds the cone mesh.
//
// Returns:
//   - mesh.Buffer: 3n+2 vertices and 6n indices for n slices, with
//     "bottom cap" and "sides" sub-ranges
func (c Cone) Generate() mesh.Buffer {
	n := clampSegments(c.Slices)
	radius := clampScale(c.Radius)
	height := clampScale(c.Height)
	step := 2 * math32.Pi / float32(n)

	buf := mesh.Buffer{
		Topology: mesh.TriangleList,
		Vertices: make([]mesh.Vertex, 0, 3*n+2),
		Indices:  make([]uint32, 0, 6*n),
	}

	// Bottom cap: shared center, one rim vertex per slice, wrapped fan.
	down := mgl32.Vec3{0, -1, 0}
	buf.Vertices = append(buf.Vertices, mesh.Vertex{Normal: down, UV: mgl32.Vec2{0.5, 0.5}})
	for i := 0; i < n; i++ {
		cos := math32.Cos(float32(i) * step)
		sin := math32.Sin(float32(i) * step)
		buf.Vertices = append(buf.Vertices, mesh.Vertex{
			Position: mgl32.Vec3{radius * cos, 0, radius * sin},
			Normal:   down,
			UV:       mgl32.Vec2{0.5 + 0.5*cos, 0.5 + 0.5*sin},
		})
	}
	buf.SetRange("bottom cap", 0, uint32(3*n))
	buf.Indices = mesh.AppendFan(buf.Indices, 0, 1, n, true, true)

	// Sides: one shared apex, then a rim pair per slice carrying that
	// slice's averaged normal for near-flat shading.
	apex := uint32(len(buf.Vertices))
	buf.Vertices = append(buf.Vertices, mesh.Vertex{
		Position: mgl32.Vec3{0, height, 0},
		Normal:   mgl32.Vec3{0, 1, 0},
		UV:       mgl32.Vec2{0.5, 0.5},
	})
	buf.SetRange("sides", uint32(len(buf.Indices)), uint32(3*n))
	for i := 0; i < n; i++ {
		p0 := rimPoint(radius, float32(i)*step)
		p1 := rimPoint(radius, float32((i+1)%n)*step)
		normal := mgl32.Vec3{(p0.X() + p1.X()) / 2, height / 2, (p0.Z() + p1.Z()) / 2}.Normalize()

		base := uint32(len(buf.Vertices))
		buf.Vertices = append(buf.Vertices,
			mesh.Vertex{Position: p0, Normal: normal, UV: mgl32.Vec2{float32(i) / float32(n), 1}},
			mesh.Vertex{Position: p1, Normal: normal, UV: mgl32.Vec2{float32(i+1) / float32(n), 1}},
		)
		buf.Indices = append(buf.Indices, apex, base+1, base)
	}
	return buf
}

func rimPoint(radius, angle float32) mgl32.Vec3 {
	return mgl32.Vec3{radius * math32.Cos(angle), 0, radius * math32.Sin(angle)}
}
