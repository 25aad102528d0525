package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// Tube generates a hollow cylinder between y=0 and y=Height: an outer wall,
// an inner wall with inverted normals, and two annular caps stitched from
// paired outer/inner rim rings.
type Tube struct {
	OuterRadius float32
	InnerRadius float32
	Height      float32
	Slices      int
}

var _ Generator = Tube{}

// Generate builds the tube mesh.
//
// Returns:
//   - mesh.Buffer: 8(n+1) vertices and 24n indices for n slices, with
//     "outer wall", "inner wall", "bottom cap" and "top cap" sub-ranges
func (t Tube) Generate() mesh.Buffer {
	n := clampSegments(t.Slices)
	outer := clampScale(t.OuterRadius)
	inner := clampScale(t.InnerRadius)
	height := clampScale(t.Height)
	step := 2 * math32.Pi / float32(n)

	buf := mesh.Buffer{
		Topology: mesh.TriangleList,
		Vertices: make([]mesh.Vertex, 0, 8*(n+1)),
		Indices:  make([]uint32, 0, 24*n),
	}

	band := mesh.Lattice{Rows: 2, Cols: n + 1}
	// Each band is a two-ring lattice; sample maps (ring, column) to a
	// vertex and flip orients the winding outward for that band.
	addBand := func(name string, flip bool, sample func(i, j int, cos, sin float32) mesh.Vertex) {
		band.Flip = flip
		base := uint32(len(buf.Vertices))
		buf.SetRange(name, uint32(len(buf.Indices)), uint32(band.IndexCount()))
		buf.Indices = band.AppendIndices(buf.Indices, base)
		for i := 0; i < 2; i++ {
			for j := 0; j <= n; j++ {
				angle := float32(j%n) * step
				buf.Vertices = append(buf.Vertices, sample(i, j, math32.Cos(angle), math32.Sin(angle)))
			}
		}
	}

	wallUV := func(i, j int) mgl32.Vec2 {
		return mgl32.Vec2{float32(j) / float32(n), float32(1 - i)}
	}

	addBand("outer wall", false, func(i, j int, cos, sin float32) mesh.Vertex {
		return mesh.Vertex{
			Position: mgl32.Vec3{outer * cos, float32(i) * height, outer * sin},
			Normal:   mgl32.Vec3{cos, 0, sin},
			UV:       wallUV(i, j),
		}
	})
	addBand("inner wall", true, func(i, j int, cos, sin float32) mesh.Vertex {
		return mesh.Vertex{
			Position: mgl32.Vec3{inner * cos, float32(i) * height, inner * sin},
			Normal:   mgl32.Vec3{-cos, 0, -sin},
			UV:       wallUV(i, j),
		}
	})

	// Caps run outer rim to inner rim so v=1 maps to the outer edge.
	radii := [2]float32{outer, inner}
	addBand("bottom cap", true, func(i, j int, cos, sin float32) mesh.Vertex {
		return mesh.Vertex{
			Position: mgl32.Vec3{radii[i] * cos, 0, radii[i] * sin},
			Normal:   mgl32.Vec3{0, -1, 0},
			UV:       wallUV(i, j),
		}
	})
	addBand("top cap", false, func(i, j int, cos, sin float32) mesh.Vertex {
		return mesh.Vertex{
			Position: mgl32.Vec3{radii[i] * cos, height, radii[i] * sin},
			Normal:   mgl32.Vec3{0, 1, 0},
			UV:       wallUV(i, j),
		}
	})
	return buf
}
