package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// CurvedCone generates a cone whose axis bends along a circular arc in the
// XY plane. The arc length equals Height, so BendRadius controls how far the
// tip curls over without changing the cone's size.
type CurvedCone struct {
	Slices     int
	CurveSteps int
	Radius     float32
	Height     float32
	BendRadius float32
}

var _ Generator = CurvedCone{}

// Generate builds the curved cone mesh.
//
// Returns:
//   - mesh.Buffer: (steps+1)x(slices+1) vertices, radius tapering to the tip
func (c CurvedCone) Generate() mesh.Buffer {
	slices := clampSegments(c.Slices)
	steps := max(c.CurveSteps, 1)
	radius := clampScale(c.Radius)
	height := clampScale(c.Height)
	bendRadius := clampScale(c.BendRadius)

	bendAngle := height / bendRadius

	centers := make([]mgl32.Vec3, steps+1)
	for i := range centers {
		arc := float32(i) / float32(steps) * bendAngle
		centers[i] = mgl32.Vec3{
			bendRadius * math32.Sin(arc),
			bendRadius * (1 - math32.Cos(arc)),
			0,
		}
	}
	frames := mesh.PropagateFrames(mesh.CenterlineTangents(centers), mgl32.Vec3{0, 1, 0})

	step := 2 * math32.Pi / float32(slices)
	grid := mesh.Lattice{Rows: steps + 1, Cols: slices + 1, Flip: true}
	return grid.Build(func(i, j int) mesh.Vertex {
		t := float32(i) / float32(steps)
		f := frames[i]
		phi := float32(j%slices) * step
		ringRadius := radius * (1 - t)
		offset := f.Normal.Mul(ringRadius * math32.Cos(phi)).Add(f.Binormal.Mul(ringRadius * math32.Sin(phi)))
		return mesh.Vertex{
			Position: centers[i].Add(offset),
			// The tip ring collapses to a point, so fall back to the
			// centerline tangent there.
			Normal: mesh.SafeNormalize(offset, f.Tangent),
			UV:     mgl32.Vec2{float32(j) / float32(slices), t},
		}
	})
}
