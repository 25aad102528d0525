package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// Sphere generates a latitude/longitude sphere centered on the origin.
// The seam column repeats the first column's position exactly so the wrap
// is watertight while u still spans the full texture width.
type Sphere struct {
	LatitudeSegments  int
	LongitudeSegments int
	Radius            float32
}

var _ Generator = Sphere{}

// Generate builds the sphere mesh.
//
// Returns:
//   - mesh.Buffer: (lat+1)x(lon+1) vertices with an "upper half" sub-range
//     covering the northern hemisphere's index run
func (s Sphere) Generate() mesh.Buffer {
	// Latitude of 2 is the minimum that produces volume; both counts only
	// need to stay positive to keep the grid well formed.
	lat := max(s.LatitudeSegments, 1)
	lon := max(s.LongitudeSegments, 1)
	radius := clampScale(s.Radius)

	grid := mesh.Lattice{Rows: lat + 1, Cols: lon + 1, Flip: true}
	buf := grid.Build(func(i, j int) mesh.Vertex {
		theta := float32(i) * math32.Pi / float32(lat)
		phi := float32(j%lon) * 2 * math32.Pi / float32(lon)
		sinTheta := math32.Sin(theta)

		normal := mgl32.Vec3{
			sinTheta * math32.Cos(phi),
			math32.Cos(theta),
			sinTheta * math32.Sin(phi),
		}
		return mesh.Vertex{
			Position: normal.Mul(radius),
			Normal:   normal,
			UV: mgl32.Vec2{
				1 - float32(j)/float32(lon),
				1 - float32(i)/float32(lat),
			},
		}
	})
	buf.SetRange("upper half", 0, uint32(grid.IndexCount()/2))
	return buf
}

// Hemisphere generates the upper half of a sphere as an open dome: the
// equator rim is left unclosed. Latitude resolution matches what the same
// segment count would produce on a full sphere.
type Hemisphere struct {
	LatitudeSegments  int
	LongitudeSegments int
	Radius            float32
}

var _ Generator = Hemisphere{}

// Generate builds the dome mesh.
//
// Returns:
//   - mesh.Buffer: (lat/2+1)x(lon+1) vertices covering polar angles 0..pi/2
func (h Hemisphere) Generate() mesh.Buffer {
	lat := max(h.LatitudeSegments, 2)
	lon := max(h.LongitudeSegments, 1)
	radius := clampScale(h.Radius)
	rows := lat / 2

	grid := mesh.Lattice{Rows: rows + 1, Cols: lon + 1, Flip: true}
	return grid.Build(func(i, j int) mesh.Vertex {
		// The divisor stays the full-sphere latitude count so the dome's
		// bands line up with the matching sphere's upper half.
		theta := float32(i) * math32.Pi / float32(lat)
		phi := float32(j%lon) * 2 * math32.Pi / float32(lon)
		sinTheta := math32.Sin(theta)

		normal := mgl32.Vec3{
			sinTheta * math32.Cos(phi),
			math32.Cos(theta),
			sinTheta * math32.Sin(phi),
		}
		return mesh.Vertex{
			Position: normal.Mul(radius),
			Normal:   normal,
			UV: mgl32.Vec2{
				1 - float32(j)/float32(lon),
				1 - float32(i)/float32(rows),
			},
		}
	})
}
