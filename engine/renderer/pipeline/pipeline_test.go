package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primshapes/prim-go/engine/renderer/shader"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("solid")

	assert.Equal(t, "solid", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.Nil(t, p.RenderPipeline())
	require.NotNil(t, p.BlendState())
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, p.BlendState().Color.SrcFactor)
}

func TestNewPipelineOptions(t *testing.T) {
	p := NewPipeline("wireframe",
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithCullMode(wgpu.CullModeBack),
		WithDepthWriteEnabled(false),
		WithDepthBias(2, 1.5),
		WithBlendEnabled(true),
		WithFrontFace(wgpu.FrontFaceCW),
	)

	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, int32(2), p.DepthBias())
	assert.Equal(t, float32(1.5), p.DepthBiasSlopeScale())
	assert.True(t, p.BlendEnabled())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
}

func TestPipelineShaderLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.wgsl")
	require.NoError(t, os.WriteFile(path, []byte("fn body() {}"), 0o644))
	vert := shader.NewShader("vert", shader.ShaderTypeVertex, path)
	frag := shader.NewShader("frag", shader.ShaderTypeFragment, path)

	p := NewPipeline("solid", WithVertexShader(vert), WithFragmentShader(frag))
	assert.Equal(t, vert, p.Shader(shader.ShaderTypeVertex))
	assert.Equal(t, frag, p.Shader(shader.ShaderTypeFragment))

	bare := NewPipeline("bare")
	assert.Nil(t, bare.Shader(shader.ShaderTypeVertex))
	assert.Nil(t, bare.Shader(shader.ShaderTypeFragment))
}
