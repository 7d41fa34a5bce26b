package memory

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when no record exists under the
// given key in the given collection.
var ErrNotFound = errors.New("record not found")

// SearchResult pairs a reconstructed record with its similarity score.
type SearchResult struct {
	Record *Record
	// Score is the similarity to the query embedding, higher is closer.
	// The scale is backend-defined (cosine similarity for chromem).
	Score float32
}

// Store is the vector storage backend interface.
//
// Implementations persist a record as the five-entry metadata bag
// produced by Record.ToMetadata plus the embedding vector, and
// reconstruct records by replaying the bag into a blank record and
// re-attaching the embedding. They never inspect the typed fields
// directly; the bag is the persistence contract.
//
// Implementations: chromem.Store (embedded, local), cached.Store
// (ristretto read-through wrapper).
type Store interface {
	// Upsert persists a record under its ID, replacing any previous
	// record with the same ID in the collection.
	Upsert(ctx context.Context, collection string, rec *Record) error

	// Get retrieves the record stored under key. Returns ErrNotFound
	// when the key is absent.
	Get(ctx context.Context, collection string, key string) (*Record, error)

	// Search retrieves up to limit records by vector similarity, sorted
	// by score (highest first). Results below minScore are dropped.
	Search(ctx context.Context, collection string, embedding Embedding, limit int, minScore float32) ([]SearchResult, error)

	// Remove deletes the record stored under key. Removing an absent key
	// is not an error.
	Remove(ctx context.Context, collection string, key string) error

	// Close releases resources.
	Close() error
}

// Embedder converts text to embedding vectors.
// Implementations: mock.Embedder (testing), onnx.Embedder (local model).
type Embedder interface {
	// Embed converts a single text to its embedding.
	Embed(ctx context.Context, text string) (Embedding, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}
