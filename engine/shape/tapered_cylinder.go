package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// TaperedCylinder generates a conical frustum between y=0 and y=Height.
// The wall normal tilts by the taper slope (bottom-top)/height so lighting
// follows the surface instead of the axis.
type TaperedCylinder struct {
	BottomRadius float32
	TopRadius    float32
	Height       float32
	Slices       int
}

var _ Generator = TaperedCylinder{}

// Generate builds the frustum mesh.
//
// Returns:
//   - mesh.Buffer: buffer with "bottom cap", "top cap" and "sides"
//     sub-ranges of 3n, 3n and 6n indices for n slices
func (t TaperedCylinder) Generate() mesh.Buffer {
	n := clampSegments(t.Slices)
	bottom := clampScale(t.BottomRadius)
	top := clampScale(t.TopRadius)
	height := clampScale(t.Height)
	step := 2 * math32.Pi / float32(n)
	slope := (bottom - top) / height

	buf := mesh.Buffer{
		Topology: mesh.TriangleList,
		Vertices: make([]mesh.Vertex, 0, 4*n+4),
		Indices:  make([]uint32, 0, 12*n),
	}

	endCap := func(radius, y float32, normal mgl32.Vec3, flip bool) {
		center := uint32(len(buf.Vertices))
		buf.Vertices = append(buf.Vertices, mesh.Vertex{
			Position: mgl32.Vec3{0, y, 0},
			Normal:   normal,
			UV:       mgl32.Vec2{0.5, 0.5},
		})
		for i := 0; i < n; i++ {
			cos := math32.Cos(float32(i) * step)
			sin := math32.Sin(float32(i) * step)
			buf.Vertices = append(buf.Vertices, mesh.Vertex{
				Position: mgl32.Vec3{radius * cos, y, radius * sin},
				Normal:   normal,
				UV:       mgl32.Vec2{0.5 + 0.5*cos, 0.5 + 0.5*sin},
			})
		}
		buf.Indices = mesh.AppendFan(buf.Indices, center, center+1, n, true, flip)
	}

	buf.SetRange("bottom cap", 0, uint32(3*n))
	endCap(bottom, 0, mgl32.Vec3{0, -1, 0}, true)
	buf.SetRange("top cap", uint32(3*n), uint32(3*n))
	endCap(top, height, mgl32.Vec3{0, 1, 0}, false)

	wall := mesh.Lattice{Rows: 2, Cols: n + 1}
	base := uint32(len(buf.Vertices))
	buf.SetRange("sides", uint32(len(buf.Indices)), uint32(wall.IndexCount()))
	buf.Indices = wall.AppendIndices(buf.Indices, base)
	radii := [2]float32{bottom, top}
	for i := 0; i < 2; i++ {
		for j := 0; j <= n; j++ {
			angle := float32(j%n) * step
			cos := math32.Cos(angle)
			sin := math32.Sin(angle)
			buf.Vertices = append(buf.Vertices, mesh.Vertex{
				Position: mgl32.Vec3{radii[i] * cos, float32(i) * height, radii[i] * sin},
				Normal:   mgl32.Vec3{cos, slope, sin}.Normalize(),
				UV:       mgl32.Vec2{float32(j) / float32(n), float32(1 - i)},
			})
		}
	}
	return buf
}
