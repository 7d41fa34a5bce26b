// Package cached wraps a memory.Store with a ristretto read-through
// cache, so hot Get lookups skip the backing store's reconstruction work.
package cached

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto"

	"github.com/driftlock/recall/memory"
)

// Store caches reconstructed records by collection and key. Upsert and
// Remove invalidate; Search always passes through, similarity results
// cannot be keyed.
type Store struct {
	inner memory.Store
	cache *ristretto.Cache
}

var _ memory.Store = (*Store)(nil)

// New wraps inner with a cache holding up to maxRecords records.
func New(inner memory.Store, maxRecords int64) (*Store, error) {
	if maxRecords <= 0 {
		maxRecords = 1024
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxRecords * 10, // ristretto's recommended 10x ratio
		MaxCost:     maxRecords,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return &Store{inner: inner, cache: cache}, nil
}

func cacheKey(collection string, key string) string {
	return collection + "\x00" + key
}

// Upsert persists through to the backing store and invalidates the entry.
func (s *Store) Upsert(ctx context.Context, collection string, rec *memory.Record) error {
	if err := s.inner.Upsert(ctx, collection, rec); err != nil {
		return err
	}
	s.cache.Del(cacheKey(collection, rec.ID()))
	return nil
}

// Get returns the cached record or falls through to the backing store.
func (s *Store) Get(ctx context.Context, collection string, key string) (*memory.Record, error) {
	ck := cacheKey(collection, key)
	if cached, ok := s.cache.Get(ck); ok {
		return cached.(*memory.Record), nil
	}

	rec, err := s.inner.Get(ctx, collection, key)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ck, rec, 1)
	return rec, nil
}

// Search passes through to the backing store.
func (s *Store) Search(ctx context.Context, collection string, embedding memory.Embedding, limit int, minScore float32) ([]memory.SearchResult, error) {
	return s.inner.Search(ctx, collection, embedding, limit, minScore)
}

// Remove deletes from the backing store and invalidates the entry.
func (s *Store) Remove(ctx context.Context, collection string, key string) error {
	if err := s.inner.Remove(ctx, collection, key); err != nil {
		return err
	}
	s.cache.Del(cacheKey(collection, key))
	return nil
}

// Wait blocks until pending cache writes are applied. Ristretto admits
// entries asynchronously; tests use this to make hits deterministic.
func (s *Store) Wait() {
	s.cache.Wait()
}

// Close releases the cache and the backing store.
func (s *Store) Close() error {
	s.cache.Close()
	return s.inner.Close()
}
