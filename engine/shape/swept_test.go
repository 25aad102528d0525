package shape

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primshapes/prim-go/engine/mesh"
)

// ringCenter averages one cross-section ring of a lattice-built tube. The
// duplicated seam column is excluded so the average lands on the centerline.
func ringCenter(vertices []mesh.Vertex, row, cols, segs int) mgl32.Vec3 {
	var sum mgl32.Vec3
	for j := 0; j < segs; j++ {
		sum = sum.Add(vertices[row*cols+j].Position)
	}
	return sum.Mul(1 / float32(segs))
}

func TestSpringGeometry(t *testing.T) {
	s := Spring{MainRadius: 0.5, TubeRadius: 0.1, MainSegments: 2, TubeSegments: 8, Length: 1}.Generate()
	require.NoError(t, s.Validate())

	rings := 2*8 + 1
	cols := 9
	assert.Equal(t, rings*cols, s.VertexCount())
	assert.Equal(t, (rings-1)*8*6, s.IndexCount())

	// Centerline starts on +X at z=0 and ends two full turns later at the
	// top of the coil.
	first := ringCenter(s.Vertices, 0, cols, 8)
	assert.InDelta(t, 0.5, first.X(), 1e-4)
	assert.InDelta(t, 0, first.Z(), 1e-4)
	last := ringCenter(s.Vertices, rings-1, cols, 8)
	assert.InDelta(t, 0.5, last.X(), 1e-3)
	assert.InDelta(t, 0, last.Y(), 1e-3)
	assert.InDelta(t, 1, last.Z(), 1e-4)

	// Cross-sections keep the tube radius everywhere.
	for _, row := range []int{0, 7, rings - 1} {
		center := ringCenter(s.Vertices, row, cols, 8)
		for j := 0; j < cols; j++ {
			v := s.Vertices[row*cols+j]
			assert.InDelta(t, 0.1, v.Position.Sub(center).Len(), 1e-4)
			assert.InDelta(t, 1, v.Normal.Len(), 1e-5)
		}
	}
}

func TestSpringClampsTubeSegments(t *testing.T) {
	low := Spring{MainRadius: 0.5, TubeRadius: 0.1, MainSegments: 2, TubeSegments: 3, Length: 1}.Generate()
	floor := Spring{MainRadius: 0.5, TubeRadius: 0.1, MainSegments: 2, TubeSegments: 8, Length: 1}.Generate()
	assert.Equal(t, floor.VertexBytes(), low.VertexBytes())
}

func TestSpiralEmptyWhenTooShort(t *testing.T) {
	// Loops=0.4 sweeps less than the half-turn lead-in, leaving no rings.
	s := Spiral{TubeRadius: 0.1, LoopSpacing: 0.25, Loops: 0.4, TubeSegments: 8, SpiralSegments: 10}.Generate()
	assert.Zero(t, s.VertexCount())
	assert.Zero(t, s.IndexCount())
	assert.NoError(t, s.Validate())

	neg := Spiral{TubeRadius: 0.1, LoopSpacing: 0.25, Loops: -1, TubeSegments: 8, SpiralSegments: 10}.Generate()
	assert.Zero(t, neg.VertexCount())
}

func TestSpiralTubeAndCap(t *testing.T) {
	sp := Spiral{
		TubeRadius:     0.1,
		FlattenFactor:  0,
		LoopSpacing:    0.3,
		Loops:          2,
		TubeSegments:   8,
		SpiralSegments: 64,
	}.Generate()
	require.NoError(t, sp.Validate())

	// Rings run from the half-turn lead-in to the final segment.
	rings := 49
	tubeVerts := rings * 8
	assert.Equal(t, tubeVerts+1+(spiralCapRings-1)*8, sp.VertexCount())

	tube, ok := sp.Range("tube")
	require.True(t, ok)
	endCap, ok := sp.Range("cap")
	require.True(t, ok)
	assert.Equal(t, uint32(0), tube.Offset)
	assert.Equal(t, uint32(rings-1)*8*6, tube.Count)
	assert.Equal(t, tube.Count, endCap.Offset)
	assert.Equal(t, uint32(sp.IndexCount()), tube.Count+endCap.Count)

	// Cap vertices wrap the first ring center at the tube radius, and the
	// junction band reuses tube ring 0 rather than duplicating it.
	c0 := mgl32.Vec3{-0.15, 0, 0}
	for _, v := range sp.Vertices[tubeVerts:] {
		assert.InDelta(t, 0.1, v.Position.Sub(c0).Len(), 1e-4)
	}
	stitched := false
	for _, idx := range sp.Indices[endCap.Offset:] {
		if idx < 8 {
			stitched = true
			break
		}
	}
	assert.True(t, stitched)
}

func TestCurvedConeBendsAndTapers(t *testing.T) {
	cc := CurvedCone{Slices: 8, CurveSteps: 4, Radius: 0.3, Height: 1.5, BendRadius: 1}.Generate()
	require.NoError(t, cc.Validate())
	cols := 9
	assert.Equal(t, 5*cols, cc.VertexCount())
	assert.Equal(t, 4*8*6, cc.IndexCount())

	// Base ring circles the origin at full radius.
	for j := 0; j < cols; j++ {
		assert.InDelta(t, 0.3, cc.Vertices[j].Position.Len(), 1e-4)
	}

	// Tip row collapses onto the end of the bend arc.
	tip := mgl32.Vec3{math32.Sin(1.5), 1 - math32.Cos(1.5), 0}
	for j := 0; j < cols; j++ {
		v := cc.Vertices[4*cols+j].Position
		assert.InDelta(t, 0, v.Sub(tip).Len(), 1e-5)
	}
}

func TestSineConeProfile(t *testing.T) {
	sc := SineCone{
		BaseRadius:     0.5,
		Height:         2,
		RadialSegments: 8,
		HeightSegments: 4,
	}.Generate()
	require.NoError(t, sc.Validate())
	cols := 9
	assert.Equal(t, 5*cols, sc.VertexCount())
	assert.Equal(t, 4*8*6, sc.IndexCount())

	// Zero amplitude leaves a plain taper: rings in the YZ plane shrinking
	// as (1-t)^0.65 while X climbs the height.
	for i := 0; i <= 4; i++ {
		ft := float32(i) / 4
		want := 0.5 * math32.Pow(1-ft, 0.65)
		for j := 0; j < cols; j++ {
			v := sc.Vertices[i*cols+j].Position
			assert.InDelta(t, float32(i)*0.5, v.X(), 1e-5)
			assert.InDelta(t, want, math32.Sqrt(v.Y()*v.Y()+v.Z()*v.Z()), 1e-5)
		}
	}

	// Seam columns share both position and welded normal.
	for i := 0; i <= 4; i++ {
		first := sc.Vertices[i*cols]
		last := sc.Vertices[i*cols+8]
		assert.Equal(t, first.Position, last.Position, "row %d", i)
		assert.Equal(t, first.Normal, last.Normal, "row %d", i)
	}
}

func TestSineConeWaveShiftsRings(t *testing.T) {
	sc := SineCone{
		BaseRadius:     0.5,
		Height:         2,
		SineAmplitude:  0.2,
		SineFrequency:  1,
		RadialSegments: 8,
		HeightSegments: 4,
	}.Generate()
	cols := 9

	// At t=0.25 the wave peaks: the ring's Y center shifts by the full
	// amplitude while Z stays put.
	var sumY float32
	for j := 0; j < 8; j++ {
		sumY += sc.Vertices[cols+j].Position.Y()
	}
	assert.InDelta(t, 0.2, sumY/8, 1e-4)
}
