package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// SineCone generates a horn along +X whose radius tapers to a tip and whose
// vertical profile undulates with a sine wave. FlattenFactor squashes the
// cross-section toward an ellipse; amplitude, frequency and phase shape the
// wave. Normals are accumulated from face normals because the surface has no
// closed-form gradient.
type SineCone struct {
	BaseRadius     float32
	Height         float32
	FlattenFactor  float32
	SineAmplitude  float32
	SineFrequency  float32
	SinePhase      float32
	RadialSegments int
	HeightSegments int
}

var _ Generator = SineCone{}

// Generate builds the sine cone mesh.
//
// Returns:
//   - mesh.Buffer: (heightSegs+1)x(radial+1) vertices with smoothed normals
func (s SineCone) Generate() mesh.Buffer {
	radial := clampSegments(s.RadialSegments)
	heightSegs := max(s.HeightSegments, 1)
	baseRadius := clampScale(s.BaseRadius)
	height := clampScale(s.Height)
	flatten := min(max(s.FlattenFactor, 0), 1)

	cols := radial + 1
	rows := heightSegs + 1
	step := 2 * math32.Pi / float32(radial)

	positions := make([]mgl32.Vec3, rows*cols)
	for i := 0; i < rows; i++ {
		h := float32(i) * height / float32(heightSegs)
		t := float32(i) / float32(heightSegs)
		ringRadius := baseRadius * math32.Pow(1-t, 0.65)
		sineOffset := s.SineAmplitude * math32.Sin(s.SineFrequency*t*2*math32.Pi+s.SinePhase)
		for j := 0; j < cols; j++ {
			theta := float32(j%radial) * step
			positions[i*cols+j] = mgl32.Vec3{
				h,
				math32.Cos(theta)*ringRadius*(1-flatten) + sineOffset,
				math32.Sin(theta) * ringRadius,
			}
		}
	}

	// Accumulate area-weighted face normals per vertex; the two triangles of
	// each cell contribute their blend to the shared diagonal corners.
	normals := make([]mgl32.Vec3, len(positions))
	indices := make([]uint32, 0, heightSegs*radial*6)
	for i := 0; i < heightSegs; i++ {
		for j := 0; j < radial; j++ {
			i0 := i*cols + j
			i1 := (i+1)*cols + j
			i2 := i0 + 1
			i3 := i1 + 1

			p0, p1, p2, p3 := positions[i0], positions[i1], positions[i2], positions[i3]
			n0 := p2.Sub(p0).Cross(p1.Sub(p0))
			n1 := p3.Sub(p2).Cross(p1.Sub(p2))
			a0 := n0.Len()
			a1 := n1.Len()
			blend := n0.Add(n1).Mul(0.5 * (a0 + a1))

			normals[i0] = normals[i0].Add(n0.Mul(a0))
			normals[i1] = normals[i1].Add(blend)
			normals[i2] = normals[i2].Add(blend)
			normals[i3] = normals[i3].Add(n1.Mul(a1))

			indices = append(indices,
				uint32(i0), uint32(i2), uint32(i1),
				uint32(i2), uint32(i3), uint32(i1))
		}
	}

	// Weld the duplicated seam column so both copies carry the full-circle
	// accumulation.
	for i := 0; i < rows; i++ {
		first := i * cols
		last := first + radial
		welded := normals[first].Add(normals[last])
		normals[first] = welded
		normals[last] = welded
	}

	buf := mesh.Buffer{
		Topology: mesh.TriangleList,
		Vertices: make([]mesh.Vertex, 0, len(positions)),
		Indices:  indices,
	}
	for idx, p := range positions {
		i := idx / cols
		j := idx % cols
		theta := float32(j%radial) * step
		radialDir := mgl32.Vec3{0, math32.Cos(theta), math32.Sin(theta)}
		buf.Vertices = append(buf.Vertices, mesh.Vertex{
			Position: p,
			Normal:   mesh.SafeNormalize(normals[idx], radialDir),
			UV: mgl32.Vec2{
				float32(j) / float32(radial),
				float32(i) / float32(heightSegs),
			},
		})
	}
	return buf
}
