package shape

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereSegmentCounts(t *testing.T) {
	s := Sphere{LatitudeSegments: 2, LongitudeSegments: 4, Radius: 1}.Generate()
	require.NoError(t, s.Validate())
	assert.Equal(t, 15, s.VertexCount())
	assert.Equal(t, 48, s.IndexCount())
}

func TestSphereSeamIsExact(t *testing.T) {
	s := Sphere{LatitudeSegments: 6, LongitudeSegments: 8, Radius: 0.5}.Generate()
	cols := 9
	for i := 0; i <= 6; i++ {
		first := s.Vertices[i*cols]
		last := s.Vertices[i*cols+8]
		assert.Equal(t, first.Position, last.Position, "row %d", i)
		assert.Equal(t, first.Normal, last.Normal, "row %d", i)
		assert.NotEqual(t, first.UV, last.UV, "row %d", i)
	}
}

func TestSphereRadiusAndUpperHalf(t *testing.T) {
	s := Sphere{LatitudeSegments: 10, LongitudeSegments: 12, Radius: 2}.Generate()
	require.NoError(t, s.Validate())
	for _, v := range s.Vertices {
		assert.InDelta(t, 2, v.Position.Len(), 1e-5)
		assert.InDelta(t, 1, v.Normal.Len(), 1e-5)
	}

	upper, ok := s.Range("upper half")
	require.True(t, ok)
	assert.Equal(t, uint32(0), upper.Offset)
	assert.Equal(t, uint32(s.IndexCount()/2), upper.Count)
	// The first half of the index stream stays at or above the equator.
	for _, idx := range s.Indices[:upper.Count] {
		assert.GreaterOrEqual(t, s.Vertices[idx].Position.Y(), float32(-1e-5))
	}
}

func TestSphereClampsSegments(t *testing.T) {
	tiny := Sphere{LatitudeSegments: 0, LongitudeSegments: -3, Radius: 1}.Generate()
	floor := Sphere{LatitudeSegments: 1, LongitudeSegments: 1, Radius: 1}.Generate()
	assert.Equal(t, floor.VertexBytes(), tiny.VertexBytes())
	assert.Equal(t, floor.IndexBytes(), tiny.IndexBytes())
}

func TestHemisphereSpansPoleToEquator(t *testing.T) {
	h := Hemisphere{LatitudeSegments: 8, LongitudeSegments: 12, Radius: 1}.Generate()
	require.NoError(t, h.Validate())
	rows := 8/2 + 1
	assert.Equal(t, rows*13, h.VertexCount())
	assert.Equal(t, (rows-1)*12*6, h.IndexCount())

	minY, maxY := math32.Inf(1), math32.Inf(-1)
	for _, v := range h.Vertices {
		assert.InDelta(t, 1, v.Position.Len(), 1e-5)
		minY = min(minY, v.Position.Y())
		maxY = max(maxY, v.Position.Y())
	}
	assert.InDelta(t, 0, minY, 1e-6)
	assert.InDelta(t, 1, maxY, 1e-6)

	// Latitude step matches the full sphere's, so the dome is a true half.
	full := Sphere{LatitudeSegments: 8, LongitudeSegments: 12, Radius: 1}.Generate()
	for i := 0; i < rows*13; i++ {
		assert.Equal(t, full.Vertices[i].Position, h.Vertices[i].Position, "vertex %d", i)
	}
}
