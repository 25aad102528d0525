package shape

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGallery(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gallery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadPresets(t *testing.T) {
	path := writeGallery(t, `presets:
  - name: tall spring
    shape: spring
    main_segments: 8
    length: 3.0
  - name: stock box
    shape: box
`)
	presets, err := LoadPresets(path)
	require.NoError(t, err)
	require.Len(t, presets, 2)
	assert.Equal(t, "tall spring", presets[0].Name)
	assert.Equal(t, "spring", presets[0].Shape)

	gen, err := presets[0].Build(DefaultRegistry())
	require.NoError(t, err)
	spring, ok := gen.(Spring)
	require.True(t, ok)
	assert.Equal(t, 8, spring.MainSegments)
	assert.InDelta(t, 3, spring.Length, 1e-6)
	// Untouched parameters keep the registry defaults.
	assert.InDelta(t, 0.4, spring.MainRadius, 1e-6)
	assert.Equal(t, 24, spring.TubeSegments)

	gen, err = presets[1].Build(nil)
	require.NoError(t, err)
	assert.Equal(t, Box{Width: 1, Height: 1, Depth: 1}, gen)
}

func TestLoadPresetsErrors(t *testing.T) {
	_, err := LoadPresets(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadPresets(writeGallery(t, "presets: ["))
	assert.Error(t, err, "unparseable yaml")

	_, err = LoadPresets(writeGallery(t, `presets:
  - name: nameless wonder
    width: 3
`))
	assert.Error(t, err, "preset without a shape")
}

func TestPresetBuildUnknownShape(t *testing.T) {
	p := Preset{Name: "mystery", Shape: "dodecahedron"}
	_, err := p.Build(DefaultRegistry())
	assert.Error(t, err)
}

func TestPresetIgnoresUnknownParams(t *testing.T) {
	p := Preset{Shape: "box", Params: map[string]float64{"width": 2, "wobble": 9}}
	gen, err := p.Build(DefaultRegistry())
	require.NoError(t, err)
	assert.Equal(t, Box{Width: 2, Height: 1, Depth: 1}, gen)
}

func TestPresetCountsTruncate(t *testing.T) {
	p := Preset{Shape: "cylinder", Params: map[string]float64{"slices": 12.9}}
	gen, err := p.Build(DefaultRegistry())
	require.NoError(t, err)
	assert.Equal(t, 12, gen.(Cylinder).Slices)
}
