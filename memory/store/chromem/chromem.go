// Package chromem implements memory.Store on top of chromem-go, a pure
// Go embedded vector database.
package chromem

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/driftlock/recall/memory"
)

// Store persists records in chromem-go collections. The scalar fields
// travel as the document metadata bag, the embedding as the document's
// native vector; chromem never sees the typed record.
//
// chromem-go does not expose lookup or deletion by ID, so the store keeps
// a side index of live documents per collection. Search results are
// filtered against the index, which is what makes Remove effective.
type Store struct {
	db          *chromem.DB
	mu          sync.RWMutex
	collections map[string]*chromem.Collection
	docs        map[string]map[string]chromem.Document
}

var _ memory.Store = (*Store)(nil)

// New creates a new chromem-based store.
func New() (*Store, error) {
	return &Store{
		db:          chromem.NewDB(),
		collections: make(map[string]*chromem.Collection),
		docs:        make(map[string]map[string]chromem.Document),
	}, nil
}

// getOrCreateCollection returns the chromem collection for a name,
// creating it on first use.
func (s *Store) getOrCreateCollection(name string) (*chromem.Collection, error) {
	s.mu.RLock()
	col, exists := s.collections[name]
	s.mu.RUnlock()

	if exists {
		return col, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if col, exists := s.collections[name]; exists {
		return col, nil
	}

	col, err := s.db.CreateCollection(
		name,
		nil, // No collection metadata
		nil, // No embedding func (we always provide embeddings)
	)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	s.collections[name] = col
	s.docs[name] = make(map[string]chromem.Document)
	return col, nil
}

// Upsert persists a record under its ID.
func (s *Store) Upsert(ctx context.Context, collection string, rec *memory.Record) error {
	col, err := s.getOrCreateCollection(collection)
	if err != nil {
		return err
	}

	log.Printf("[CHROMEM] Upserting record: collection=%s, id=%s, reference=%v",
		collection, rec.ID(), rec.IsReference())

	doc := chromem.Document{
		ID:        rec.ID(),
		Content:   rec.Text(),
		Embedding: rec.Embedding().Vector(),
		Metadata:  rec.ToMetadata(),
	}

	if err := col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document: %w", err)
	}

	s.mu.Lock()
	s.docs[collection][rec.ID()] = doc
	s.mu.Unlock()

	return nil
}

// Get retrieves the record stored under key.
func (s *Store) Get(ctx context.Context, collection string, key string) (*memory.Record, error) {
	s.mu.RLock()
	doc, exists := s.docs[collection][key]
	s.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("get %q from %q: %w", key, collection, memory.ErrNotFound)
	}

	return reconstruct(doc.Metadata, doc.Embedding)
}

// Search retrieves records by vector similarity.
func (s *Store) Search(ctx context.Context, collection string, embedding memory.Embedding, limit int, minScore float32) ([]memory.SearchResult, error) {
	col, err := s.getOrCreateCollection(collection)
	if err != nil {
		return nil, err
	}

	// chromem-go requires nResults <= collection size.
	// Retry with smaller limits if necessary.
	var results []chromem.Result
	for currentLimit := limit; currentLimit >= 1; currentLimit-- {
		var err error
		results, err = col.QueryEmbedding(ctx, embedding.Vector(), currentLimit, nil, nil)
		if err == nil {
			break
		}

		if isInsufficientDocsError(err) {
			if currentLimit == 1 {
				// Collection is empty
				return nil, nil
			}
			continue
		}

		return nil, fmt.Errorf("chromem query: %w", err)
	}

	var out []memory.SearchResult
	for i, result := range results {
		if result.Similarity < minScore {
			continue
		}

		// Removed documents stay inside chromem; drop them here.
		s.mu.RLock()
		_, live := s.docs[collection][result.ID]
		s.mu.RUnlock()
		if !live {
			continue
		}

		rec, err := reconstruct(result.Metadata, result.Embedding)
		if err != nil {
			log.Printf("[CHROMEM] Skipping result #%d: %v", i+1, err)
			continue
		}

		out = append(out, memory.SearchResult{Record: rec, Score: result.Similarity})
	}

	return out, nil
}

// Remove deletes the record stored under key. chromem-go keeps the
// document internally, but the side index makes it invisible to Get and
// Search, and a later Upsert under the same key replaces it.
func (s *Store) Remove(ctx context.Context, collection string, key string) error {
	s.mu.Lock()
	if docs, ok := s.docs[collection]; ok {
		delete(docs, key)
	}
	s.mu.Unlock()
	return nil
}

// Close releases resources. chromem-go keeps everything in memory,
// nothing to close.
func (s *Store) Close() error {
	return nil
}

// reconstruct replays a metadata bag into a blank record and re-attaches
// the embedding.
func reconstruct(meta map[string]string, embedding []float32) (*memory.Record, error) {
	rec := memory.NewBlankRecord()
	if err := rec.ApplyMetadata(meta); err != nil {
		return nil, fmt.Errorf("apply metadata: %w", err)
	}
	rec.SetEmbedding(memory.NewEmbedding(embedding))
	return rec, nil
}

// isInsufficientDocsError checks if error is due to insufficient documents.
func isInsufficientDocsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "nResults must be") || strings.Contains(msg, "number of documents")
}
