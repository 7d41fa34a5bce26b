package memory

// Embedding is an ordered vector of float32 components placing a piece of
// content in the embedding space. It is immutable once constructed: both
// the constructor and Vector copy the slice, so neither the caller nor the
// holder can mutate the other's view.
//
// Embedding itself defines no similarity math and no dimensionality
// contract. Comparing vectors and enforcing an expected dimension are the
// store's and the embedder's business.
type Embedding struct {
	values []float32
}

// NewEmbedding creates an embedding from the given vector components.
// Any length is accepted, including zero.
func NewEmbedding(values []float32) Embedding {
	if len(values) == 0 {
		return Embedding{}
	}
	copied := make([]float32, len(values))
	copy(copied, values)
	return Embedding{values: copied}
}

// Vector returns a copy of the vector components.
func (e Embedding) Vector() []float32 {
	if len(e.values) == 0 {
		return nil
	}
	copied := make([]float32, len(e.values))
	copy(copied, e.values)
	return copied
}

// Dimensions returns the number of vector components.
func (e Embedding) Dimensions() int {
	return len(e.values)
}

// IsEmpty reports whether the embedding has no components.
func (e Embedding) IsEmpty() bool {
	return len(e.values) == 0
}
