// ABOUTME: Fixed-dimension float32 vector <-> blob codec and cosine similarity
// ABOUTME: Adapted from harperreed-memory's embeddings.go, float64/8-byte -> float32/4-byte per spec
package vector

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/memexlabs/memex/internal/memerr"
)

// EncodeVector packs v into a little-endian float32 blob. Pure function: the
// inverse of DecodeVector.
func EncodeVector(v []float32) []byte {
	blob := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(f))
	}
	return blob
}

// DecodeVector unpacks a little-endian float32 blob into dimensions values.
// It fails with ErrCorruptEmbedding if the blob length is not 4*dimensions.
func DecodeVector(blob []byte, dimensions int) ([]float32, error) {
	if len(blob) != dimensions*4 {
		return nil, fmt.Errorf("blob length %d, want %d for %d dimensions: %w",
			len(blob), dimensions*4, dimensions, memerr.ErrCorruptEmbedding)
	}
	v := make([]float32, dimensions)
	for i := range v {
		bits := binary.LittleEndian.Uint32(blob[i*4:])
		v[i] = math.Float32frombits(bits)
	}
	return v, nil
}

// CosineSimilarity is the inner product divided by the product of L2 norms.
// Dimension mismatch is a programmer error per §4.4 and panics rather than
// silently returning zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("vector.CosineSimilarity: dimension mismatch %d != %d", len(a), len(b)))
	}
	var dot, normA, normB float64
	for i := range a {
		af, bf := float64(a[i]), float64(b[i])
		dot += af * bf
		normA += af * af
		normB += bf * bf
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
