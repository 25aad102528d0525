package shape

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// Plane generates a flat quad in the XZ plane, facing +Y, centered on the
// origin.
type Plane struct {
	Width float32
	Depth float32
}

var _ Generator = Plane{}

// Generate builds the plane mesh.
//
// Returns:
//   - mesh.Buffer: 4 vertices and 6 indices forming two triangles
func (p Plane) Generate() mesh.Buffer {
	hw := clampScale(p.Width) / 2
	hd := clampScale(p.Depth) / 2

	up := mgl32.Vec3{0, 1, 0}
	return mesh.Buffer{
		Topology: mesh.TriangleList,
		Vertices: []mesh.Vertex{
			{Position: mgl32.Vec3{-hw, 0, hd}, Normal: up, UV: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{hw, 0, hd}, Normal: up, UV: mgl32.Vec2{1, 0}},
			{Position: mgl32.Vec3{hw, 0, -hd}, Normal: up, UV: mgl32.Vec2{1, 1}},
			{Position: mgl32.Vec3{-hw, 0, -hd}, Normal: up, UV: mgl32.Vec2{0, 1}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}
