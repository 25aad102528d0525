package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/primshapes/prim-go/engine/mesh"
)

// Superellipsoid generates the superquadric family: exponents of 1 give an
// ellipsoid, values toward 0 square the silhouette into a rounded box, and
// values above 1 pinch it toward an octahedron. Axis scales and exponents
// that are zero or negative fall back to 0.1 rather than producing a
// degenerate surface.
type Superellipsoid struct {
	ScaleX             float32
	ScaleY             float32
	ScaleZ             float32
	VerticalExponent   float32
	HorizontalExponent float32
	USegments          int
	VSegments          int
}

var _ Generator = Superellipsoid{}

// Generate builds the superellipsoid mesh.
//
// Returns:
//   - mesh.Buffer: (uSegs+1)x(vSegs+1) vertices with analytic normals
func (s Superellipsoid) Generate() mesh.Buffer {
	uSegs := clampSegments(s.USegments)
	vSegs := clampSegments(s.VSegments)
	sx := positiveOr(s.ScaleX, 0.1)
	sy := positiveOr(s.ScaleY, 0.1)
	sz := positiveOr(s.ScaleZ, 0.1)
	e1 := positiveOr(s.VerticalExponent, 0.1)
	e2 := positiveOr(s.HorizontalExponent, 0.1)

	cosU := make([]float32, uSegs+1)
	sinU := make([]float32, uSegs+1)
	for i := 0; i <= uSegs; i++ {
		u := -math32.Pi/2 + float32(i)/float32(uSegs)*math32.Pi
		cosU[i] = math32.Cos(u)
		sinU[i] = math32.Sin(u)
	}
	cosV := make([]float32, vSegs+1)
	sinV := make([]float32, vSegs+1)
	for j := 0; j <= vSegs; j++ {
		v := -math32.Pi + float32(j)/float32(vSegs)*2*math32.Pi
		cosV[j] = math32.Cos(v)
		sinV[j] = math32.Sin(v)
	}
	// The seam column repeats the first column exactly.
	cosV[vSegs], sinV[vSegs] = cosV[0], sinV[0]

	grid := mesh.Lattice{Rows: uSegs + 1, Cols: vSegs + 1, Flip: true}
	return grid.Build(func(i, j int) mesh.Vertex {
		cu := signedPow(cosU[i], e1)
		su := signedPow(sinU[i], e1)
		cv := signedPow(cosV[j], e2)
		sv := signedPow(sinV[j], e2)
		return mesh.Vertex{
			Position: mgl32.Vec3{sx * cu * cv, sy * cu * sv, sz * su},
			Normal:   mgl32.Vec3{cu * cv / sx, cu * sv / sy, su / sz}.Normalize(),
			UV: mgl32.Vec2{
				float32(j) / float32(vSegs),
				float32(i) / float32(uSegs),
			},
		}
	})
}

// signedPow is the superquadric exponentiation sgn(x)*|x|^e.
func signedPow(x, e float32) float32 {
	switch {
	case x > 0:
		return math32.Pow(x, e)
	case x < 0:
		return -math32.Pow(-x, e)
	}
	return 0
}

func positiveOr(v, fallback float32) float32 {
	if v <= 0 {
		return fallback
	}
	return v
}
