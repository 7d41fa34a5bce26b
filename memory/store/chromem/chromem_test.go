package chromem_test

import (
	"context"
	"errors"
	"testing"

	"github.com/driftlock/recall/memory"
	"github.com/driftlock/recall/memory/embedder/mock"
	"github.com/driftlock/recall/memory/store/chromem"
)

func embed(t *testing.T, text string) memory.Embedding {
	t.Helper()
	emb, err := mock.New(32).Embed(context.Background(), text)
	if err != nil {
		t.Fatalf("embed %q: %v", text, err)
	}
	return emb
}

func TestStoreRoundTripLocal(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New()
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer store.Close()

	original := memory.NewLocalRecord("r1", "hello world", "greeting", embed(t, "hello world"))
	if err := store.Upsert(ctx, "main", original); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	restored, err := store.Get(ctx, "main", "r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if restored.ID() != "r1" || restored.IsReference() ||
		restored.Text() != "hello world" || restored.Description() != "greeting" ||
		restored.ExternalSourceName() != "" {
		t.Errorf("restored record fields differ from the original: %+v", restored.ToMetadata())
	}

	want := original.Embedding().Vector()
	got := restored.Embedding().Vector()
	if len(got) != len(want) {
		t.Fatalf("embedding dimensions = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("embedding component %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStoreRoundTripReference(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New()
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer store.Close()

	original := memory.NewReferenceRecord("issue/42", "GitHub", "open bug", embed(t, "open bug"))
	if err := store.Upsert(ctx, "main", original); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	restored, err := store.Get(ctx, "main", "issue/42")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !restored.IsReference() {
		t.Error("reference flag lost in the store round trip")
	}
	if restored.ExternalSourceName() != "GitHub" {
		t.Errorf("ExternalSourceName = %q, want %q", restored.ExternalSourceName(), "GitHub")
	}
	if restored.Text() != "" {
		t.Errorf("Text = %q, want empty for a reference record", restored.Text())
	}
}

func TestStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New()
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer store.Close()

	if _, err := store.Get(ctx, "main", "nope"); !errors.Is(err, memory.ErrNotFound) {
		t.Errorf("Get missing key = %v, want ErrNotFound", err)
	}
}

func TestStoreUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New()
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer store.Close()

	first := memory.NewLocalRecord("r1", "first version", "", embed(t, "first version"))
	if err := store.Upsert(ctx, "main", first); err != nil {
		t.Fatalf("Upsert first: %v", err)
	}
	second := memory.NewLocalRecord("r1", "second version", "", embed(t, "second version"))
	if err := store.Upsert(ctx, "main", second); err != nil {
		t.Fatalf("Upsert second: %v", err)
	}

	restored, err := store.Get(ctx, "main", "r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if restored.Text() != "second version" {
		t.Errorf("Text = %q, want the replacing record", restored.Text())
	}
}

func TestStoreSearchLimitAboveSize(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New()
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer store.Close()

	rec := memory.NewLocalRecord("only", "a single record", "", embed(t, "a single record"))
	if err := store.Upsert(ctx, "main", rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// chromem rejects nResults > collection size; the store retries down.
	results, err := store.Search(ctx, "main", embed(t, "a single record"), 10, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Record.ID() != "only" {
		t.Errorf("result ID = %q, want %q", results[0].Record.ID(), "only")
	}
}

func TestStoreSearchMinScore(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New()
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer store.Close()

	if err := store.Upsert(ctx, "main",
		memory.NewLocalRecord("a", "alpha", "", embed(t, "alpha"))); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := store.Upsert(ctx, "main",
		memory.NewLocalRecord("b", "totally different text", "", embed(t, "totally different text"))); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// An exact-match query scores ~1.0; a threshold just below that keeps
	// only the exact match.
	results, err := store.Search(ctx, "main", embed(t, "alpha"), 10, 0.99)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Record.ID() != "a" {
		t.Errorf("results = %v, want only the exact match", results)
	}
}

func TestStoreRemove(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New()
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer store.Close()

	rec := memory.NewLocalRecord("r1", "ephemeral", "", embed(t, "ephemeral"))
	if err := store.Upsert(ctx, "main", rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := store.Remove(ctx, "main", "r1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Get(ctx, "main", "r1"); !errors.Is(err, memory.ErrNotFound) {
		t.Errorf("Get after Remove = %v, want ErrNotFound", err)
	}

	results, err := store.Search(ctx, "main", embed(t, "ephemeral"), 5, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("removed record still visible to search: %v", results)
	}

	// Removing an absent key is fine
	if err := store.Remove(ctx, "main", "never-existed"); err != nil {
		t.Errorf("Remove of absent key: %v", err)
	}
}

func TestStoreCollectionsIsolated(t *testing.T) {
	ctx := context.Background()
	store, err := chromem.New()
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer store.Close()

	rec := memory.NewLocalRecord("shared-key", "in collection a", "", embed(t, "in collection a"))
	if err := store.Upsert(ctx, "a", rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if _, err := store.Get(ctx, "b", "shared-key"); !errors.Is(err, memory.ErrNotFound) {
		t.Errorf("Get from another collection = %v, want ErrNotFound", err)
	}
}
