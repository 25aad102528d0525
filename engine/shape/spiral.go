package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// Spiral generates a flat Archimedean spiral tube in the XY plane. The
// centerline radius grows linearly with sweep angle at LoopSpacing per loop,
// starting half a turn out from the origin so the innermost rings do not
// overlap. FlattenFactor squashes the tube cross-section toward a ribbon,
// and the open inner end is closed with a rounded cap.
type Spiral struct {
	TubeRadius     float32
	FlattenFactor  float32
	LoopSpacing    float32
	Loops          float32
	TubeSegments   int
	SpiralSegments int
}

var _ Generator = Spiral{}

// spiralCapRings is the number of latitude steps in the rounded end cap,
// pole included. The cap equator coincides with the first tube ring.
const spiralCapRings = 8

// Generate builds the spiral mesh. Fewer than two centerline rings (Loops
// too small for the segment count) yields an empty buffer.
//
// Returns:
//   - mesh.Buffer: tube rings plus an end cap, with "tube" and "cap" sub-ranges
func (s Spiral) Generate() mesh.Buffer {
	tubeSegs := clampSegments(s.TubeSegments)
	spiralSegs := clampSegments(s.SpiralSegments)
	tubeRadius := max(s.TubeRadius, minScale)
	spacing := clampScale(s.LoopSpacing)
	flatten := min(max(s.FlattenFactor, 0), 1)

	totalAngle := s.Loops * 2 * math32.Pi
	if totalAngle <= 0 {
		return mesh.Buffer{Topology: mesh.TriangleList}
	}
	spiralStep := totalAngle / float32(spiralSegs)

	centers := make([]mgl32.Vec3, 0, spiralSegs+1)
	for i := int(math32.Pi / spiralStep); i <= spiralSegs; i++ {
		theta := float32(i) * spiralStep
		if theta > totalAngle {
			break
		}
		radius := spacing * theta / (2 * math32.Pi)
		centers = append(centers, mgl32.Vec3{
			radius * math32.Cos(theta),
			radius * math32.Sin(theta),
			0,
		})
	}
	rings := len(centers)
	if rings < 2 {
		return mesh.Buffer{Topology: mesh.TriangleList}
	}

	frames := mesh.PropagateFrames(mesh.CenterlineTangents(centers), mgl32.Vec3{1, 0, 0})

	tubeStep := 2 * math32.Pi / float32(tubeSegs)
	crossSection := func(f mesh.Frame, phi float32) mgl32.Vec3 {
		return f.Normal.Mul(math32.Cos(phi) * (1 - flatten)).Add(f.Binormal.Mul(math32.Sin(phi)))
	}

	grid := mesh.Lattice{Rows: rings, Cols: tubeSegs, Closed: true, Flip: true}
	buf := mesh.Buffer{
		Topology: mesh.TriangleList,
		Vertices: make([]mesh.Vertex, 0, rings*tubeSegs+1+(spiralCapRings-1)*tubeSegs),
		Indices:  make([]uint32, 0, grid.IndexCount()+spiralCapRings*tubeSegs*6),
	}
	for i, c := range centers {
		f := frames[i]
		for j := 0; j < tubeSegs; j++ {
			radial := crossSection(f, float32(j)*tubeStep)
			buf.Vertices = append(buf.Vertices, mesh.Vertex{
				Position: c.Add(radial.Mul(tubeRadius)),
				Normal:   mesh.SafeNormalize(radial, f.Normal),
				UV: mgl32.Vec2{
					float32(j) / float32(tubeSegs),
					float32(i) / float32(rings-1),
				},
			})
		}
	}
	buf.SetRange("tube", 0, uint32(grid.IndexCount()))
	buf.Indices = grid.AppendIndices(buf.Indices, 0)

	// Rounded cap over the inner end: a pole vertex behind the first ring
	// center, latitude rings shrinking toward it, and a final band stitched
	// onto tube ring 0, which doubles as the cap equator.
	f0, c0 := frames[0], centers[0]
	capStart := uint32(len(buf.Vertices))
	back := f0.Tangent.Mul(-1)
	buf.Vertices = append(buf.Vertices, mesh.Vertex{
		Position: c0.Add(back.Mul(tubeRadius)),
		Normal:   back,
		UV:       mgl32.Vec2{0.5, -1},
	})
	for i := 1; i < spiralCapRings; i++ {
		lat := float32(i) * (math32.Pi / 2) / spiralCapRings
		ringR := math32.Sin(lat)
		depth := math32.Cos(lat)
		for j := 0; j < tubeSegs; j++ {
			radial := crossSection(f0, float32(j)*tubeStep)
			offset := radial.Mul(ringR).Add(back.Mul(depth))
			buf.Vertices = append(buf.Vertices, mesh.Vertex{
				Position: c0.Add(offset.Mul(tubeRadius)),
				Normal:   mesh.SafeNormalize(offset, back),
				UV:       mgl32.Vec2{float32(j) / float32(tubeSegs), -depth},
			})
		}
	}

	capIndexStart := uint32(len(buf.Indices))
	buf.Indices = mesh.AppendFan(buf.Indices, capStart, capStart+1, tubeSegs, true, false)
	capBands := mesh.Lattice{Rows: spiralCapRings - 1, Cols: tubeSegs, Closed: true, Flip: true}
	buf.Indices = capBands.AppendIndices(buf.Indices, capStart+1)
	lastRing := capStart + 1 + uint32((spiralCapRings-2)*tubeSegs)
	for j := 0; j < tubeSegs; j++ {
		jn := (j + 1) % tubeSegs
		a := lastRing + uint32(j)
		an := lastRing + uint32(jn)
		b := uint32(j)
		bn := uint32(jn)
		buf.Indices = append(buf.Indices, a, an, b, an, bn, b)
	}
	buf.SetRange("cap", capIndexStart, uint32(len(buf.Indices))-capIndexStart)
	return buf
}
