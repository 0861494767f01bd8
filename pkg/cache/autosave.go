package cache

import (
	"context"
	"time"

	"github.com/matzehuels/pinboard/pkg/board"
	boardio "github.com/matzehuels/pinboard/pkg/io"
	"github.com/matzehuels/pinboard/pkg/observability"
)

// Document-level autosave on top of the byte cache. Documents are stored in
// the io package's envelope format, so an autosave entry and an exported
// file are interchangeable.

// SaveDocument writes the document to the cache under the named document's
// key. Backend failures are retried with backoff when the backend marks them
// retryable.
func SaveDocument(ctx context.Context, c Cache, name string, doc *board.Document, ttl time.Duration) error {
	data, err := boardio.MarshalDocument(doc)
	if err != nil {
		return err
	}
	key := DocumentKey(name)
	err = RetryWithBackoff(ctx, func() error {
		return c.Set(ctx, key, data, ttl)
	})
	if err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, "document", len(data))
	return nil
}

// LoadDocument reads a document back from the cache. A miss returns
// (nil, false, nil); a stored payload that no longer parses is returned as
// an error rather than silently discarded, since autosave data is the
// user's work.
func LoadDocument(ctx context.Context, c Cache, name string) (*board.Document, bool, error) {
	data, hit, err := c.Get(ctx, DocumentKey(name))
	if err != nil {
		return nil, false, err
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "document")
		return nil, false, nil
	}
	observability.Cache().OnCacheHit(ctx, "document")

	doc, err := boardio.UnmarshalDocument(data)
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

// DropDocument removes the autosave entry for a named document.
func DropDocument(ctx context.Context, c Cache, name string) error {
	return c.Delete(ctx, DocumentKey(name))
}
