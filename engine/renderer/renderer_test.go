package renderer

import (
	"sync"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/primshapes/prim-go/engine/mesh"
	"github.com/primshapes/prim-go/engine/renderer/bind_group_provider"
	"github.com/primshapes/prim-go/engine/renderer/pipeline"
)

// newTestRenderer builds a renderer without a GPU backend. Only the pipeline
// cache and draw call validation are reachable in this state.
func newTestRenderer() *renderer {
	return &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		logger:        zap.NewNop(),
	}
}

// initializedProvider returns a provider that looks like InitMeshBuffers ran on
// a non-indexed triangle list with the given vertex count.
func initializedProvider(vertexCount int) bind_group_provider.BindGroupProvider {
	p := bind_group_provider.NewBindGroupProvider("test mesh")
	p.SetVertexBuffer(&wgpu.Buffer{})
	p.SetVertexCount(vertexCount)
	return p
}

func TestPipelineCache(t *testing.T) {
	r := newTestRenderer()

	assert.Nil(t, r.Pipeline("solid"))

	p := pipeline.NewPipeline("solid")
	r.SetPipeline("solid", p)
	assert.Equal(t, p, r.Pipeline("solid"))
	assert.Len(t, r.Pipelines(), 1)

	replacement := map[string]pipeline.Pipeline{
		"wire": pipeline.NewPipeline("wire"),
	}
	r.SetPipelines(replacement)
	assert.Nil(t, r.Pipeline("solid"))
	assert.Equal(t, replacement["wire"], r.Pipeline("wire"))
}

func TestDrawCallUnknownPipeline(t *testing.T) {
	r := newTestRenderer()

	err := r.DrawCall("missing", initializedProvider(3), nil, 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestValidDrawCall(t *testing.T) {
	r := newTestRenderer()
	p := pipeline.NewPipeline("solid")

	t.Run("nil provider", func(t *testing.T) {
		assert.False(t, r.validDrawCall(p, nil, nil))
	})

	t.Run("uninitialized buffers", func(t *testing.T) {
		provider := bind_group_provider.NewBindGroupProvider("test mesh")
		assert.False(t, r.validDrawCall(p, provider, nil))
	})

	t.Run("empty mesh", func(t *testing.T) {
		assert.False(t, r.validDrawCall(p, initializedProvider(0), nil))
	})

	t.Run("topology mismatch", func(t *testing.T) {
		provider := initializedProvider(6)
		provider.SetTopology(wgpu.PrimitiveTopologyLineList)
		assert.False(t, r.validDrawCall(p, provider, nil))

		wire := pipeline.NewPipeline("wire", pipeline.WithTopology(wgpu.PrimitiveTopologyLineList))
		assert.True(t, r.validDrawCall(wire, provider, nil))
	})

	t.Run("full draw", func(t *testing.T) {
		assert.True(t, r.validDrawCall(p, initializedProvider(6), nil))
	})

	t.Run("indexed count", func(t *testing.T) {
		provider := initializedProvider(4)
		provider.SetIndexBuffer(&wgpu.Buffer{})
		provider.SetIndexCount(6)
		assert.True(t, r.validDrawCall(p, provider, &mesh.SubRange{Offset: 3, Count: 3}))
		assert.False(t, r.validDrawCall(p, provider, &mesh.SubRange{Offset: 3, Count: 6}))
	})

	t.Run("sub-range", func(t *testing.T) {
		provider := initializedProvider(9)
		assert.True(t, r.validDrawCall(p, provider, &mesh.SubRange{Offset: 0, Count: 9}))
		assert.True(t, r.validDrawCall(p, provider, &mesh.SubRange{Offset: 6, Count: 3}))
		assert.False(t, r.validDrawCall(p, provider, &mesh.SubRange{Offset: 6, Count: 6}))
		assert.False(t, r.validDrawCall(p, provider, &mesh.SubRange{Offset: 0, Count: 0}))
	})
}

func TestPrimitiveTopologyMapping(t *testing.T) {
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, primitiveTopology(mesh.TriangleList))
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleStrip, primitiveTopology(mesh.TriangleStrip))
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, primitiveTopology(mesh.LineList))

	// WebGPU has no fan primitive; fans draw as index-triangulated lists.
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, primitiveTopology(mesh.TriangleFan))
}
