package scene

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUObjectUniformSource is the canonical WGSL definition of the ObjectUniform struct.
// Matches GPUObjectUniform layout exactly (80 bytes, std430 aligned).
//
//go:embed assets/object_uniform.wgsl
var GPUObjectUniformSource string

// GPUObjectUniform is the GPU-aligned representation of a single object's uniform buffer.
// Matches the WGSL ObjectUniform struct layout exactly (see GPUObjectUniformSource).
// Size: 80 bytes (std430 / WGSL aligned).
type GPUObjectUniform struct {
	Model [16]float32 // offset  0: model-to-world transform matrix (mat4x4<f32>)
	Color [4]float32  // offset 64: RGBA display color (vec4<f32>)
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Color[i]))
	}
	return buf
}
