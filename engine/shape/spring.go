package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// Spring generates a helical coil climbing +Z, one full turn per main
// segment. Cross-sections are oriented by propagated frames along the
// centerline, so the tube never twists against the helix pitch.
type Spring struct {
	MainRadius   float32
	TubeRadius   float32
	MainSegments int
	TubeSegments int
	Length       float32
}

var _ Generator = Spring{}

// Generate builds the spring mesh.
//
// Returns:
//   - mesh.Buffer: (coils*tube+1)x(tube+1) vertices along the helix
func (s Spring) Generate() mesh.Buffer {
	coils := max(s.MainSegments, 1)
	tube := max(s.TubeSegments, 8)
	mainRadius := clampScale(s.MainRadius)
	tubeRadius := max(s.TubeRadius, minScale)
	length := clampScale(s.Length)

	// One centerline sample per tube segment keeps ring spacing matched to
	// the cross-section resolution.
	rings := coils*tube + 1
	angleStep := 2 * math32.Pi / float32(tube)
	heightStep := length / float32(coils*tube)

	centers := make([]mgl32.Vec3, rings)
	for i := range centers {
		theta := float32(i) * angleStep
		centers[i] = mgl32.Vec3{
			mainRadius * math32.Cos(theta),
			mainRadius * math32.Sin(theta),
			float32(i) * heightStep,
		}
	}
	frames := mesh.PropagateFrames(mesh.CenterlineTangents(centers), mgl32.Vec3{0, 0, 1})

	tubeStep := 2 * math32.Pi / float32(tube)
	grid := mesh.Lattice{Rows: rings, Cols: tube + 1, Flip: true}
	return grid.Build(func(i, j int) mesh.Vertex {
		f := frames[i]
		phi := float32(j%tube) * tubeStep
		radial := f.Normal.Mul(math32.Cos(phi)).Add(f.Binormal.Mul(math32.Sin(phi)))
		return mesh.Vertex{
			Position: centers[i].Add(radial.Mul(tubeRadius)),
			Normal:   radial.Normalize(),
			UV: mgl32.Vec2{
				float32(i) / float32(rings-1),
				float32(j) / float32(tube),
			},
		}
	})
}
