package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// PartialCone generates the uncapped side surface of a cone swept through
// an arc centered on +X. The arc never wraps: the first and last rim edges
// stay independent even at a full 360 degrees, and the cross-section faces
// are left open.
type PartialCone struct {
	Radius     float32
	Height     float32
	Slices     int
	ArcDegrees float32
}

var _ Generator = PartialCone{}

// Generate builds the partial cone mesh.
//
// Returns:
//   - mesh.Buffer: 2(n+1) vertices and 6n indices for n slices
func (p PartialCone) Generate() mesh.Buffer {
	n := clampSegments(p.Slices)
	radius := clampScale(p.Radius)
	height := clampScale(p.Height)
	arc := mgl32.DegToRad(min(max(p.ArcDegrees, 0), 360))

	halfArc := arc / 2
	step := arc / float32(n)
	slope := radius / height

	grid := mesh.Lattice{Rows: 2, Cols: n + 1}
	buf := grid.Build(func(i, j int) mesh.Vertex {
		angle := -halfArc + float32(j)*step
		cos := math32.Cos(angle)
		sin := math32.Sin(angle)

		v := mesh.Vertex{
			Normal: mgl32.Vec3{cos, slope, sin}.Normalize(),
			UV:     mgl32.Vec2{float32(j) / float32(n), float32(1 - i)},
		}
		if i == 0 {
			v.Position = mgl32.Vec3{radius * cos, 0, radius * sin}
		} else {
			v.Position = mgl32.Vec3{0, height, 0}
		}
		return v
	})
	return buf
}
