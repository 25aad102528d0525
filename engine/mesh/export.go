package mesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WriteSTL writes the buffer's triangles as a binary little-endian STL stream:
// an 80-byte name header, a uint32 triangle count, then 50 bytes per triangle
// (face normal, three corners, zero attribute word). Strips and fans are
// expanded; face normals are recomputed from the triangle plane since STL has
// no per-vertex normals.
//
// Parameters:
//   - w: the destination stream
//   - name: a label stored in the header, truncated to 80 bytes
//   - b: the buffer to export
//
// Returns:
//   - error: the first write error, or nil
func WriteSTL(w io.Writer, name string, b *Buffer) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], name)
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("stl header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(b.TriangleCount())); err != nil {
		return fmt.Errorf("stl triangle count: %w", err)
	}

	var record [50]byte
	var writeErr error
	b.EachTriangle(func(v0, v1, v2 Vertex) {
		if writeErr != nil {
			return
		}
		n := faceNormal(v0.Position, v1.Position, v2.Position)
		putVec3(record[0:], n)
		putVec3(record[12:], v0.Position)
		putVec3(record[24:], v1.Position)
		putVec3(record[36:], v2.Position)
		record[48], record[49] = 0, 0
		if _, err := bw.Write(record[:]); err != nil {
			writeErr = fmt.Errorf("stl triangle: %w", err)
		}
	})
	if writeErr != nil {
		return writeErr
	}
	return bw.Flush()
}

// faceNormal returns the unit plane normal of a triangle, or the zero vector
// for degenerate (zero-area) triangles, which STL permits.
func faceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Len(); l > degenerateEpsilon {
		return n.Mul(1 / l)
	}
	return mgl32.Vec3{}
}

func putVec3(dst []byte, v mgl32.Vec3) {
	binary.LittleEndian.PutUint32(dst[0:4], math.Float32bits(v.X()))
	binary.LittleEndian.PutUint32(dst[4:8], math.Float32bits(v.Y()))
	binary.LittleEndian.PutUint32(dst[8:12], math.Float32bits(v.Z()))
}
