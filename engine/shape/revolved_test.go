package shape

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primshapes/prim-go/engine/mesh"
)

func TestConeLayout(t *testing.T) {
	c := Cone{Radius: 0.5, Height: 1, Slices: 8}.Generate()
	require.NoError(t, c.Validate())
	assert.Equal(t, 3*8+2, c.VertexCount())
	assert.Equal(t, 6*8, c.IndexCount())

	bottom, ok := c.Range("bottom cap")
	require.True(t, ok)
	assert.Equal(t, mesh.SubRange{Offset: 0, Count: 24}, bottom)
	sides, ok := c.Range("sides")
	require.True(t, ok)
	assert.Equal(t, mesh.SubRange{Offset: 24, Count: 24}, sides)

	// Cap triangles face straight down, side triangles never do.
	for _, tri := range rangeTriangles(t, c, "bottom cap") {
		assert.InDelta(t, -1, geometricNormal(tri).Y(), 1e-5)
	}
	for _, tri := range rangeTriangles(t, c, "sides") {
		assert.Positive(t, geometricNormal(tri).Y())
	}
}

func TestConeClampsDegenerateParameters(t *testing.T) {
	tiny := Cone{Radius: -1, Height: 0, Slices: 1}.Generate()
	floor := Cone{Radius: 0.01, Height: 0.01, Slices: 3}.Generate()
	assert.Equal(t, floor.VertexBytes(), tiny.VertexBytes())
	assert.Equal(t, floor.IndexBytes(), tiny.IndexBytes())
}

func TestCylinderLayout(t *testing.T) {
	c := Cylinder{Radius: 1, Height: 2, Slices: 8}.Generate()
	require.NoError(t, c.Validate())
	assert.Equal(t, 4*9, c.VertexCount())
	assert.Equal(t, 12*8, c.IndexCount())

	bottom, _ := c.Range("bottom cap")
	top, _ := c.Range("top cap")
	sides, _ := c.Range("sides")
	assert.Equal(t, mesh.SubRange{Offset: 0, Count: 24}, bottom)
	assert.Equal(t, mesh.SubRange{Offset: 24, Count: 24}, top)
	assert.Equal(t, mesh.SubRange{Offset: 48, Count: 48}, sides)

	for _, tri := range rangeTriangles(t, c, "bottom cap") {
		assert.InDelta(t, -1, geometricNormal(tri).Y(), 1e-5)
		for _, v := range tri {
			assert.Zero(t, v.Position.Y())
		}
	}
	for _, tri := range rangeTriangles(t, c, "top cap") {
		assert.InDelta(t, 1, geometricNormal(tri).Y(), 1e-5)
		for _, v := range tri {
			assert.Equal(t, float32(2), v.Position.Y())
		}
	}
	// Wall normals are radial and never vertical.
	for _, tri := range rangeTriangles(t, c, "sides") {
		for _, v := range tri {
			assert.Zero(t, v.Normal.Y())
			assert.InDelta(t, 1, v.Normal.Len(), 1e-5)
		}
	}
}

func TestCylinderWallSeamIsExact(t *testing.T) {
	c := Cylinder{Radius: 1, Height: 1, Slices: 6}.Generate()
	wallBase := 2 * 7 // two caps of center + 6 rim vertices
	for i := 0; i < 2; i++ {
		first := c.Vertices[wallBase+i*7]
		last := c.Vertices[wallBase+i*7+6]
		assert.Equal(t, first.Position, last.Position, "row %d", i)
		assert.Equal(t, first.Normal, last.Normal, "row %d", i)
		assert.NotEqual(t, first.UV, last.UV, "row %d", i)
	}
}

func TestTaperedCylinderRadii(t *testing.T) {
	c := TaperedCylinder{BottomRadius: 1, TopRadius: 0.25, Height: 2, Slices: 8}.Generate()
	require.NoError(t, c.Validate())
	assert.Equal(t, 4*9, c.VertexCount())
	assert.Equal(t, 12*8, c.IndexCount())

	for _, name := range []string{"bottom cap", "top cap", "sides"} {
		_, ok := c.Range(name)
		assert.True(t, ok, name)
	}

	// Wall rows carry their own radius; slope tilts the normals upward.
	wallBase := 2 * 9
	for j := 0; j <= 8; j++ {
		b := c.Vertices[wallBase+j]
		tp := c.Vertices[wallBase+9+j]
		assert.InDelta(t, 1, xzRadius(b.Position), 1e-5)
		assert.InDelta(t, 0.25, xzRadius(tp.Position), 1e-5)
		assert.Positive(t, b.Normal.Y())
		assert.Equal(t, b.Normal, tp.Normal, "shared column normal")
	}
}

func xzRadius(p mgl32.Vec3) float32 {
	return math32.Sqrt(p.X()*p.X() + p.Z()*p.Z())
}

func TestTubeWallsAndCaps(t *testing.T) {
	tb := Tube{OuterRadius: 1, InnerRadius: 0.5, Height: 1, Slices: 8}.Generate()
	require.NoError(t, tb.Validate())
	assert.Equal(t, 8*9, tb.VertexCount())
	assert.Equal(t, 24*8, tb.IndexCount())

	for _, name := range []string{"outer wall", "inner wall", "bottom cap", "top cap"} {
		r, ok := tb.Range(name)
		require.True(t, ok, name)
		assert.Equal(t, uint32(48), r.Count, name)
	}

	// Outer wall faces away from the axis, inner wall into the hole.
	for _, tri := range rangeTriangles(t, tb, "outer wall") {
		for _, v := range tri {
			radial := mgl32.Vec3{v.Position.X(), 0, v.Position.Z()}
			assert.Positive(t, v.Normal.Dot(radial))
		}
	}
	for _, tri := range rangeTriangles(t, tb, "inner wall") {
		for _, v := range tri {
			radial := mgl32.Vec3{v.Position.X(), 0, v.Position.Z()}
			assert.Negative(t, v.Normal.Dot(radial))
		}
	}
	for _, tri := range rangeTriangles(t, tb, "bottom cap") {
		assert.InDelta(t, -1, geometricNormal(tri).Y(), 1e-5)
	}
	for _, tri := range rangeTriangles(t, tb, "top cap") {
		assert.InDelta(t, 1, geometricNormal(tri).Y(), 1e-5)
	}
}

func TestPartialConeNeverWraps(t *testing.T) {
	p := PartialCone{Radius: 1, Height: 1, Slices: 4, ArcDegrees: 180}.Generate()
	require.NoError(t, p.Validate())
	assert.Equal(t, 10, p.VertexCount())
	assert.Equal(t, 24, p.IndexCount())
	assert.Empty(t, p.SubRanges)

	// Half arc: rim endpoints sit on the Z axis, arc center faces +X.
	assert.InDelta(t, 0, p.Vertices[0].Position.X(), 1e-5)
	assert.InDelta(t, 0, p.Vertices[4].Position.X(), 1e-5)
	assert.NotEqual(t, p.Vertices[0].Position, p.Vertices[4].Position)

	// A full sweep still keeps the seam columns as distinct vertices.
	full := PartialCone{Radius: 1, Height: 1, Slices: 4, ArcDegrees: 360}.Generate()
	assert.Equal(t, 10, full.VertexCount())
	assert.InDelta(t, float64(full.Vertices[0].Position.X()), float64(full.Vertices[4].Position.X()), 1e-5)
	assert.NotEqual(t, full.Vertices[0].UV, full.Vertices[4].UV)
}

func TestPartialConeArcClamp(t *testing.T) {
	over := PartialCone{Radius: 1, Height: 1, Slices: 6, ArcDegrees: 720}.Generate()
	full := PartialCone{Radius: 1, Height: 1, Slices: 6, ArcDegrees: 360}.Generate()
	assert.Equal(t, full.VertexBytes(), over.VertexBytes())

	under := PartialCone{Radius: 1, Height: 1, Slices: 6, ArcDegrees: -90}.Generate()
	zero := PartialCone{Radius: 1, Height: 1, Slices: 6, ArcDegrees: 0}.Generate()
	assert.Equal(t, zero.VertexBytes(), under.VertexBytes())
}
