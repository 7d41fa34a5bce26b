package memory

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// Bank orchestrates record ingestion and retrieval on top of a Store and
// an Embedder. It is the convenience layer: producers that already hold
// embeddings can talk to a Store directly with records built through the
// factories.
type Bank struct {
	store    Store
	embedder Embedder
	config   *Config
}

// NewBank creates a Bank. A nil config selects DefaultConfig.
func NewBank(store Store, embedder Embedder, config *Config) *Bank {
	if config == nil {
		config = DefaultConfig
	}
	return &Bank{
		store:    store,
		embedder: embedder,
		config:   config,
	}
}

// SaveText embeds text and persists it as a local record. When key is
// empty a fresh one is minted. Returns the key the record was stored
// under.
func (b *Bank) SaveText(ctx context.Context, collection string, key string, text string, description string) (string, error) {
	if !b.config.Enabled {
		return "", nil
	}

	if key == "" {
		key = uuid.New().String()
	}

	embedding, err := b.embedder.Embed(ctx, text)
	if err != nil {
		return "", fmt.Errorf("embed text: %w", err)
	}

	rec := NewLocalRecord(key, text, description, embedding)
	if err := b.store.Upsert(ctx, collection, rec); err != nil {
		return "", fmt.Errorf("upsert record: %w", err)
	}

	log.Printf("[MEMORY] Saved local record: collection=%s, key=%s", collection, key)
	return key, nil
}

// SaveReference persists a pointer to content owned by an external system.
// The embedding is produced from description, falling back to externalID
// when no description is given (a reference record carries no inline
// text to embed). Returns the key the record was stored under, which is
// always externalID.
func (b *Bank) SaveReference(ctx context.Context, collection string, externalID string, sourceName string, description string) (string, error) {
	if !b.config.Enabled {
		return "", nil
	}

	embedText := description
	if embedText == "" {
		embedText = externalID
	}
	embedding, err := b.embedder.Embed(ctx, embedText)
	if err != nil {
		return "", fmt.Errorf("embed reference: %w", err)
	}

	rec := NewReferenceRecord(externalID, sourceName, description, embedding)
	if err := b.store.Upsert(ctx, collection, rec); err != nil {
		return "", fmt.Errorf("upsert record: %w", err)
	}

	log.Printf("[MEMORY] Saved reference record: collection=%s, key=%s, source=%s", collection, externalID, sourceName)
	return externalID, nil
}

// Get retrieves the record stored under key.
func (b *Bank) Get(ctx context.Context, collection string, key string) (*Record, error) {
	if !b.config.Enabled {
		return nil, ErrNotFound
	}
	return b.store.Get(ctx, collection, key)
}

// Search embeds query and returns the closest records, highest score
// first. limit <= 0 selects Config.DefaultLimit; results below
// Config.MinRelevance are dropped.
func (b *Bank) Search(ctx context.Context, collection string, query string, limit int) ([]SearchResult, error) {
	if !b.config.Enabled {
		return nil, nil
	}

	if limit <= 0 {
		limit = b.config.DefaultLimit
	}

	embedding, err := b.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := b.store.Search(ctx, collection, embedding, limit, b.config.MinRelevance)
	if err != nil {
		return nil, fmt.Errorf("search store: %w", err)
	}

	log.Printf("[MEMORY] Search: collection=%s, limit=%d, results=%d", collection, limit, len(results))
	return results, nil
}

// Remove deletes the record stored under key.
func (b *Bank) Remove(ctx context.Context, collection string, key string) error {
	if !b.config.Enabled {
		return nil
	}
	return b.store.Remove(ctx, collection, key)
}

// Config holds Bank configuration.
type Config struct {
	// Enabled toggles the bank on/off. When disabled every operation is
	// a no-op, which lets callers wire memory unconditionally and flip
	// it per deployment.
	Enabled bool

	// MinRelevance is the minimum similarity for search results
	// [0.0-1.0].
	// Note: tiny local models (all-MiniLM-L6-v2) produce lower scores
	// (~0.35 for similar text) than API models (0.7-0.85 range), so the
	// default keeps everything and lets callers filter.
	MinRelevance float32

	// DefaultLimit is the result count used when Search is called with
	// limit <= 0.
	DefaultLimit int
}

// DefaultConfig returns sensible defaults for local use.
var DefaultConfig = &Config{
	Enabled:      true,
	MinRelevance: 0.0,
	DefaultLimit: 10,
}
