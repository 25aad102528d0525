package shape

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// Prism generates a triangular prism centered on the origin: a rectangular
// back face at -Z, a ridge edge running along Y at +Z, two slanted walls
// and triangular top/bottom caps.
type Prism struct {
	Width  float32
	Height float32
	Depth  float32
}

var _ Generator = Prism{}

// Generate builds the prism mesh.
//
// Returns:
//   - mesh.Buffer: 18 vertices and 24 indices across five flat faces
func (p Prism) Generate() mesh.Buffer {
	hw := clampScale(p.Width) / 2
	hh := clampScale(p.Height) / 2
	hd := clampScale(p.Depth) / 2

	buf := mesh.Buffer{
		Topology: mesh.TriangleList,
		Vertices: make([]mesh.Vertex, 0, 18),
		Indices:  make([]uint32, 0, 24),
	}

	quad := func(name string, normal mgl32.Vec3, corners [4]mgl32.Vec3, uvs [4]mgl32.Vec2) {
		base := uint32(len(buf.Vertices))
		for k, pos := range corners {
			buf.Vertices = append(buf.Vertices, mesh.Vertex{Position: pos, Normal: normal, UV: uvs[k]})
		}
		buf.SetRange(name, uint32(len(buf.Indices)), 6)
		buf.Indices = append(buf.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	tri := func(name string, normal mgl32.Vec3, corners [3]mgl32.Vec3, uvs [3]mgl32.Vec2) {
		base := uint32(len(buf.Vertices))
		for k, pos := range corners {
			buf.Vertices = append(buf.Vertices, mesh.Vertex{Position: pos, Normal: normal, UV: uvs[k]})
		}
		buf.SetRange(name, uint32(len(buf.Indices)), 3)
		buf.Indices = append(buf.Indices, base, base+1, base+2)
	}

	// Base corners at -Z, ridge edge at +Z.
	leftBottom := mgl32.Vec3{-hw, -hh, -hd}
	leftTop := mgl32.Vec3{-hw, hh, -hd}
	rightBottom := mgl32.Vec3{hw, -hh, -hd}
	rightTop := mgl32.Vec3{hw, hh, -hd}
	ridgeBottom := mgl32.Vec3{0, -hh, hd}
	ridgeTop := mgl32.Vec3{0, hh, hd}

	leftNormal := mgl32.Vec3{-2 * hd, 0, hw}.Normalize()
	rightNormal := mgl32.Vec3{2 * hd, 0, hw}.Normalize()

	quad("back face", mgl32.Vec3{0, 0, -1},
		[4]mgl32.Vec3{rightTop, rightBottom, leftBottom, leftTop},
		[4]mgl32.Vec2{{0, 1}, {0, 0}, {1, 0}, {1, 1}})
	tri("bottom face", mgl32.Vec3{0, -1, 0},
		[3]mgl32.Vec3{leftBottom, rightBottom, ridgeBottom},
		[3]mgl32.Vec2{{0, 1}, {1, 1}, {0.5, 0}})
	quad("left face", leftNormal,
		[4]mgl32.Vec3{leftBottom, ridgeBottom, ridgeTop, leftTop},
		[4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	quad("right face", rightNormal,
		[4]mgl32.Vec3{ridgeBottom, rightBottom, rightTop, ridgeTop},
		[4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	tri("top face", mgl32.Vec3{0, 1, 0},
		[3]mgl32.Vec3{leftTop, ridgeTop, rightTop},
		[3]mgl32.Vec2{{0, 0}, {0.5, 1}, {1, 0}})

	return buf
}
