package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// Torus generates a ring torus in the XY plane: the main angle sweeps the
// ring, the tube angle sweeps the cross-section, and +Z is the tube's "up".
type Torus struct {
	MainRadius   float32
	TubeRadius   float32
	MainSegments int
	TubeSegments int
}

var _ Generator = Torus{}

// Generate builds the torus mesh.
//
// Returns:
//   - mesh.Buffer: (main+1)x(tube+1) vertices with a "first half" sub-range
//     covering half the ring's index run
func (t Torus) Generate() mesh.Buffer {
	main := clampSegments(t.MainSegments)
	tube := clampSegments(t.TubeSegments)
	mainRadius := clampScale(t.MainRadius)
	tubeRadius := max(t.TubeRadius, minScale)

	grid := mesh.Lattice{Rows: main + 1, Cols: tube + 1}
	buf := grid.Build(func(i, j int) mesh.Vertex {
		theta := float32(i%main) * 2 * math32.Pi / float32(main)
		phi := float32(j%tube) * 2 * math32.Pi / float32(tube)

		ringCenter := mgl32.Vec3{mainRadius * math32.Cos(theta), mainRadius * math32.Sin(theta), 0}
		position := mgl32.Vec3{
			(mainRadius + tubeRadius*math32.Cos(phi)) * math32.Cos(theta),
			(mainRadius + tubeRadius*math32.Cos(phi)) * math32.Sin(theta),
			tubeRadius * math32.Sin(phi),
		}
		return mesh.Vertex{
			Position: position,
			Normal:   position.Sub(ringCenter).Normalize(),
			UV: mgl32.Vec2{
				float32(i) / float32(main),
				float32(j) / float32(tube),
			},
		}
	})
	buf.SetRange("first half", 0, uint32(grid.IndexCount()/2))
	return buf
}

// TaperedTorus generates a torus section whose tube radius interpolates
// linearly from start to end across the sweep. The sweep is a finite arc:
// even a full-circle sweep keeps distinct end rings rather than wrapping.
type TaperedTorus struct {
	MainRadius      float32
	TubeRadiusStart float32
	TubeRadiusEnd   float32
	MainSegments    int
	TubeSegments    int
	// SweepAngle is the arc swept by the main ring, in radians, clamped
	// to [0, 2*pi].
	SweepAngle float32
}

var _ Generator = TaperedTorus{}

// Generate builds the tapered torus mesh.
//
// Returns:
//   - mesh.Buffer: (main+1)x(tube+1) vertices over the swept arc
func (t TaperedTorus) Generate() mesh.Buffer {
	main := clampSegments(t.MainSegments)
	tube := clampSegments(t.TubeSegments)
	mainRadius := clampScale(t.MainRadius)
	startRadius := max(t.TubeRadiusStart, minScale)
	endRadius := max(t.TubeRadiusEnd, minScale)
	sweep := min(max(t.SweepAngle, 0), 2*math32.Pi)

	grid := mesh.Lattice{Rows: main + 1, Cols: tube + 1}
	return grid.Build(func(i, j int) mesh.Vertex {
		sweepT := float32(i) / float32(main)
		theta := sweepT * sweep
		phi := float32(j%tube) * 2 * math32.Pi / float32(tube)
		tubeRadius := startRadius + (endRadius-startRadius)*sweepT

		normal := mgl32.Vec3{
			math32.Cos(phi) * math32.Cos(theta),
			math32.Cos(phi) * math32.Sin(theta),
			math32.Sin(phi),
		}
		ringCenter := mgl32.Vec3{mainRadius * math32.Cos(theta), mainRadius * math32.Sin(theta), 0}
		return mesh.Vertex{
			Position: ringCenter.Add(normal.Mul(tubeRadius)),
			Normal:   normal,
			UV:       mgl32.Vec2{float32(j) / float32(tube), sweepT},
		}
	})
}

// TorusSurface generates a fixed-resolution unit torus closed in both
// directions by index wrapping, with no duplicated seam column. Thickness
// sets the tube radius and falls back to 0.1 outside (0, 1].
type TorusSurface struct {
	Thickness float32
}

var _ Generator = TorusSurface{}

const torusSurfaceSegments = 30

// Generate builds the closed torus mesh.
//
// Returns:
//   - mesh.Buffer: 900 vertices and 5400 indices wrapped modulo in both
//     the ring and tube directions
func (t TorusSurface) Generate() mesh.Buffer {
	const segs = torusSurfaceSegments
	const mainRadius = 1

	tubeRadius := float32(0.1)
	if t.Thickness > 0 && t.Thickness <= 1 {
		tubeRadius = t.Thickness
	}

	buf := mesh.Buffer{
		Topology: mesh.TriangleList,
		Vertices: make([]mesh.Vertex, 0, segs*segs),
		Indices:  make([]uint32, 0, segs*segs*6),
	}
	step := 2 * math32.Pi / float32(segs)
	for i := 0; i < segs; i++ {
		theta := float32(i) * step
		ringCenter := mgl32.Vec3{mainRadius * math32.Cos(theta), mainRadius * math32.Sin(theta), 0}
		for j := 0; j < segs; j++ {
			phi := float32(j) * step
			position := mgl32.Vec3{
				(mainRadius + tubeRadius*math32.Cos(phi)) * math32.Cos(theta),
				(mainRadius + tubeRadius*math32.Cos(phi)) * math32.Sin(theta),
				tubeRadius * math32.Sin(phi),
			}
			buf.Vertices = append(buf.Vertices, mesh.Vertex{
				Position: position,
				Normal:   position.Sub(ringCenter).Normalize(),
				UV:       mgl32.Vec2{float32(i) / segs, float32(j) / segs},
			})
		}
	}

	for i := 0; i < segs; i++ {
		for j := 0; j < segs; j++ {
			curr := uint32(i*segs + j)
			next := uint32(((i+1)%segs)*segs + j)
			currRight := uint32(i*segs + (j+1)%segs)
			nextRight := uint32(((i+1)%segs)*segs + (j+1)%segs)
			buf.Indices = append(buf.Indices,
				curr, next, currRight,
				currRight, next, nextRight,
			)
		}
	}
	return buf
}
