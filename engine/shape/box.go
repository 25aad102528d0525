package shape

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// Box generates an axis-aligned cuboid centered on the origin. Each of the
// six faces carries its own four vertices so normals stay flat, and each is
// addressable through a named sub-range ("front face", "back face", ...).
type Box struct {
	Width  float32
	Height float32
	Depth  float32
}

var _ Generator = Box{}

// Generate builds the box mesh.
//
// Returns:
//   - mesh.Buffer: 24 vertices and 36 indices across six quad faces
func (b Box) Generate() mesh.Buffer {
	w := clampScale(b.Width) / 2
	h := clampScale(b.Height) / 2
	d := clampScale(b.Depth) / 2

	buf := mesh.Buffer{
		Topology: mesh.TriangleList,
		Vertices: make([]mesh.Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}

	// Shared texture orientation for every face.
	uvs := [4]mgl32.Vec2{{0, 1}, {0, 0}, {1, 0}, {1, 1}}
	face := func(name string, normal mgl32.Vec3, corners [4]mgl32.Vec3) {
		base := uint32(len(buf.Vertices))
		for k, p := range corners {
			buf.Vertices = append(buf.Vertices, mesh.Vertex{Position: p, Normal: normal, UV: uvs[k]})
		}
		buf.SetRange(name, uint32(len(buf.Indices)), 6)
		buf.Indices = append(buf.Indices, base, base+1, base+2, base+2, base+3, base)
	}

	face("back face", mgl32.Vec3{0, 0, -1},
		[4]mgl32.Vec3{{w, h, -d}, {w, -h, -d}, {-w, -h, -d}, {-w, h, -d}})
	face("bottom face", mgl32.Vec3{0, -1, 0},
		[4]mgl32.Vec3{{-w, -h, d}, {-w, -h, -d}, {w, -h, -d}, {w, -h, d}})
	face("left face", mgl32.Vec3{-1, 0, 0},
		[4]mgl32.Vec3{{-w, h, -d}, {-w, -h, -d}, {-w, -h, d}, {-w, h, d}})
	face("right face", mgl32.Vec3{1, 0, 0},
		[4]mgl32.Vec3{{w, h, d}, {w, -h, d}, {w, -h, -d}, {w, h, -d}})
	face("top face", mgl32.Vec3{0, 1, 0},
		[4]mgl32.Vec3{{-w, h, -d}, {-w, h, d}, {w, h, d}, {w, h, -d}})
	face("front face", mgl32.Vec3{0, 0, 1},
		[4]mgl32.Vec3{{-w, h, d}, {-w, -h, d}, {w, -h, d}, {w, h, d}})

	return buf
}
