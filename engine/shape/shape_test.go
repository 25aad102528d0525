package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primshapes/prim-go/engine/mesh"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	disc := func() Generator { return Cone{Radius: 1, Height: 0.01, Slices: 12} }

	require.NoError(t, r.Register("disc", disc))
	assert.Error(t, r.Register("disc", disc), "duplicate name")
	assert.Error(t, r.Register("", disc), "empty name")
	assert.Error(t, r.Register("broken", nil), "nil factory")

	_, ok := r.Lookup("disc")
	assert.True(t, ok)
	gen, ok := r.New("disc")
	require.True(t, ok)
	assert.NotNil(t, gen)
	_, ok = r.New("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"disc"}, r.Names())
}

func TestDefaultRegistryNames(t *testing.T) {
	want := []string{
		"box", "cone", "curved-cone", "cylinder", "fin", "hemisphere",
		"partial-cone", "plane", "prism", "pyramid3", "pyramid4",
		"sine-cone", "sphere", "spiral", "spring", "superellipsoid",
		"tapered-cylinder", "tapered-torus", "torus", "torus-surface",
		"tube",
	}
	assert.Equal(t, want, DefaultRegistry().Names())
}

// Every registered shape must produce a buffer whose indices are in bounds,
// whose sub-ranges stay inside the index stream on triangle boundaries, and
// that actually contains geometry.
func TestAllShapesGenerateValidBuffers(t *testing.T) {
	reg := DefaultRegistry()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			gen, ok := reg.New(name)
			require.True(t, ok)

			b := gen.Generate()
			require.NoError(t, b.Validate())
			assert.Greater(t, b.VertexCount(), 0)
			assert.Greater(t, b.TriangleCount(), 0)
			assert.Greater(t, b.BoundingRadius(), float32(0))

			for rangeName, r := range b.SubRanges {
				assert.LessOrEqual(t, r.Offset+r.Count, uint32(b.IndexCount()),
					"sub-range %q exceeds index stream", rangeName)
				assert.Zero(t, r.Count%3, "sub-range %q not triangle aligned", rangeName)
			}
		})
	}
}

// Generating twice from the same parameters must hand back byte-identical
// buffers; the live-shape path relies on this to skip redundant uploads.
func TestGenerateIsDeterministic(t *testing.T) {
	reg := DefaultRegistry()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			gen, ok := reg.New(name)
			require.True(t, ok)

			first := gen.Generate()
			second := gen.Generate()
			assert.Equal(t, first.VertexBytes(), second.VertexBytes())
			assert.Equal(t, first.IndexBytes(), second.IndexBytes())
			assert.Equal(t, first.SubRanges, second.SubRanges)
		})
	}
}

// Triangle winding must agree with the stored vertex normals on every shape,
// otherwise backface culling eats the surface. Degenerate triangles at poles
// and apexes are skipped.
func TestWindingMatchesStoredNormals(t *testing.T) {
	reg := DefaultRegistry()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			gen, ok := reg.New(name)
			require.True(t, ok)
			b := gen.Generate()

			checked, flipped := 0, 0
			b.EachTriangle(func(v0, v1, v2 mesh.Vertex) {
				face := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position))
				if face.Len() < 1e-8 {
					return
				}
				checked++
				if face.Dot(v0.Normal.Add(v1.Normal).Add(v2.Normal)) <= 0 {
					flipped++
				}
			})
			assert.Greater(t, checked, 0)
			assert.Zero(t, flipped, "%d of %d triangles wound against their normals", flipped, checked)
		})
	}
}
