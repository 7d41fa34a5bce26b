// Package mock provides a deterministic embedder for tests and offline
// development. Embeddings are seeded from a hash of the text, so equal
// texts always map to equal vectors, but there is no real semantic
// similarity between different texts.
package mock

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/driftlock/recall/memory"
)

// Embedder generates hash-seeded embeddings.
type Embedder struct {
	dimensions int
}

var _ memory.Embedder = (*Embedder)(nil)

// New creates a mock embedder. dimensions <= 0 selects 384, matching
// all-MiniLM-L6-v2.
func New(dimensions int) *Embedder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &Embedder{dimensions: dimensions}
}

// Embed creates a deterministic embedding from text.
func (m *Embedder) Embed(ctx context.Context, text string) (memory.Embedding, error) {
	h := fnv.New64a()
	h.Write([]byte(text))

	// Use the hash as seed for an LCG over the components
	seed := h.Sum64()
	vec := make([]float32, m.dimensions)
	for i := 0; i < m.dimensions; i++ {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float32(int64(seed)) / float32(math.MaxInt64)
	}

	return memory.NewEmbedding(normalize(vec)), nil
}

// Dimensions returns the embedding size.
func (m *Embedder) Dimensions() int {
	return m.dimensions
}

// normalize converts the vector to unit length.
func normalize(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}

	if norm == 0 {
		return vec
	}

	norm = float32(math.Sqrt(float64(norm)))
	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = v / norm
	}

	return normalized
}
