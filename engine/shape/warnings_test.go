package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWarningsFireOncePerShape(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	w := NewWarnings(zap.New(core))

	w.Deprecated("cone", "DrawConeMeshLines()", "DrawConeMesh(true)")
	w.Deprecated("cone", "DrawConeMeshLines()", "DrawConeMesh(true)")
	w.Deprecated("torus", "DrawTorusMeshLines()", "DrawTorusMesh(true)")

	assert.Equal(t, 2, logs.Len())
	assert.True(t, w.Warned("cone"))
	assert.True(t, w.Warned("torus"))
	assert.False(t, w.Warned("sphere"))

	entry := logs.All()[0]
	assert.Equal(t, "deprecated call", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "cone", fields["shape"])
	assert.Equal(t, "DrawConeMeshLines()", fields["deprecated"])
	assert.Equal(t, "DrawConeMesh(true)", fields["replacement"])
}

func TestWarnOnceSharesKeySpaceWithDeprecated(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	w := NewWarnings(zap.New(core))

	w.WarnOnce("fin", "zero-area front face")
	w.WarnOnce("fin", "zero-area front face")
	w.Deprecated("fin", "old", "new")

	assert.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "zero-area front face", entry.Message)
	assert.Equal(t, "fin", entry.ContextMap()["shape"])
}

func TestWarningsReset(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	w := NewWarnings(zap.New(core))

	w.Deprecated("box", "old", "new")
	w.Reset()
	assert.False(t, w.Warned("box"))
	w.Deprecated("box", "old", "new")
	assert.Equal(t, 2, logs.Len())
}

func TestWarningsNilSafe(t *testing.T) {
	var w *Warnings
	assert.NotPanics(t, func() {
		w.Deprecated("box", "old", "new")
		w.Reset()
	})
	assert.False(t, w.Warned("box"))

	fromNil := NewWarnings(nil)
	assert.NotPanics(t, func() { fromNil.Deprecated("box", "old", "new") })
	assert.True(t, fromNil.Warned("box"))
}
