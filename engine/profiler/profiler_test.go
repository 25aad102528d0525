package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestProfilerReportsAfterInterval(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewProfiler(zap.New(core))
	p.SetUpdateInterval(10 * time.Millisecond)

	assert.False(t, p.Tick())
	assert.Equal(t, 0, logs.Len())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, p.Tick())
	require.Equal(t, 1, logs.Len())

	fields := logs.All()[0].ContextMap()
	assert.Contains(t, fields, "fps")
	assert.Contains(t, fields, "heap_mb")
	assert.Contains(t, fields, "alloc_rate_mb_s")
}

func TestProfilerNilLogger(t *testing.T) {
	p := NewProfiler(nil)
	p.SetUpdateInterval(0)
	assert.Equal(t, time.Second, p.updateInterval)
	assert.NotPanics(t, func() { p.Tick() })
}
