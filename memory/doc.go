// Package memory defines the durable record format for a vector-memory
// subsystem: a piece of content (or a pointer to content living in an
// external system) together with its embedding vector.
//
// The schema is persisted and backward-compatibility-sensitive. Scalar
// fields travel through a flat string-keyed metadata bag so that any
// storage engine can persist them without understanding the typed record;
// the embedding always travels through a separate channel (typically the
// engine's native vector column).
//
// Architecture:
//   - Record: the persisted entity (local text or external reference)
//   - Embedding: immutable float32 vector attached to a record
//   - Store: vector storage backend (chromem-go for local, anything
//     bag-capable for production)
//   - Embedder: text-to-vector conversion (ONNX model locally, API-based
//     in production)
//   - Bank: orchestrates saving, lookup and similarity search
//
// Store and Embedder are interfaces on purpose: the record format is the
// contract, the backends are swappable.
package memory
