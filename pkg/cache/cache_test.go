package cache

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/pinboard/pkg/board"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("unexpected hit before Set")
	}

	// Round trip
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit || string(data) != "value" {
		t.Errorf("Get = (%q, %v), want (value, true)", data, hit)
	}

	// Expired entries are treated as a miss
	if err := c.Set(ctx, "fleeting", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "fleeting"); hit {
		t.Error("expired entry returned as hit")
	}

	// Delete, then miss
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("hit after delete")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete(absent): %v", err)
	}
}

func TestScopedIsolation(t *testing.T) {
	ctx := context.Background()
	backend, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	a := NewScoped(backend, "a:")
	b := NewScoped(backend, "b:")

	if err := a.Set(ctx, "key", []byte("for a"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := b.Get(ctx, "key"); hit {
		t.Error("scoped caches share keys")
	}
	if data, hit, _ := a.Get(ctx, "key"); !hit || string(data) != "for a" {
		t.Errorf("Get = (%q, %v)", data, hit)
	}
}

func TestScopedNilInner(t *testing.T) {
	c := NewScoped(nil, "prefix:")
	if err := c.Set(context.Background(), "key", []byte("x"), 0); err != nil {
		t.Errorf("Set on null fallback: %v", err)
	}
	if _, hit, _ := c.Get(context.Background(), "key"); hit {
		t.Error("null fallback stored data")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDocumentKey(t *testing.T) {
	if DocumentKey("plan") == DocumentKey("other") {
		t.Error("different documents share a key")
	}
	if DocumentKey("plan") != DocumentKey("plan") {
		t.Error("DocumentKey should be deterministic")
	}
}

func TestSaveLoadDocument(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	s := board.NewStore()
	s.CreateCard(board.TypeNote, 100, 100, board.WithContent("saved"))

	if err := SaveDocument(ctx, c, "plan", s.Document(), 0); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	doc, hit, err := LoadDocument(ctx, c, "plan")
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if !hit {
		t.Fatal("saved document missing")
	}
	if !doc.Equal(s.Document()) {
		t.Error("loaded document differs from the saved one")
	}

	// Unknown document name is a clean miss
	if _, hit, err := LoadDocument(ctx, c, "absent"); err != nil || hit {
		t.Errorf("LoadDocument(absent) = (hit=%v, err=%v)", hit, err)
	}

	// Corrupt payloads surface as errors, not silent misses
	if err := c.Set(ctx, DocumentKey("broken"), []byte("not json"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, _, err := LoadDocument(ctx, c, "broken"); err == nil {
		t.Error("corrupt autosave loaded without error")
	}

	if err := DropDocument(ctx, c, "plan"); err != nil {
		t.Fatalf("DropDocument: %v", err)
	}
	if _, hit, _ := LoadDocument(ctx, c, "plan"); hit {
		t.Error("document survived DropDocument")
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrNetwork
	})
	if err != ErrNetwork {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
