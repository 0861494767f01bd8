package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/pinboard/pkg/board"
)

func newTestServer(t *testing.T) (*Server, *board.Store) {
	t.Helper()
	s := board.NewStore()
	a := s.CreateCard(board.TypeNote, 0, 0, board.WithContent("alpha"))
	b := s.CreateCard(board.TypeNote, 400, 0)
	if _, err := s.Connect(a.ID, b.ID, board.AnchorRight, board.AnchorLeft, ""); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	s.CreateCard(board.TypeBoard, 0, 300, board.WithName("Sub"))
	return New(s, nil, nil), s
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestDocumentEndpoint(t *testing.T) {
	srv, s := newTestServer(t)
	rec := get(t, srv, "/api/document")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var env struct {
		Version int                        `json:"version"`
		Boards  map[string]json.RawMessage `json:"boards"`
		Cards   map[string]json.RawMessage `json:"cards"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Cards) != len(s.Document().Cards) {
		t.Errorf("%d cards in response, want %d", len(env.Cards), len(s.Document().Cards))
	}
	if env.Version == 0 {
		t.Error("envelope version missing")
	}
}

func TestBoardsList(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv, "/api/boards")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var list []boardSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("%d boards, want root plus sub", len(list))
	}

	var sawCurrent bool
	for _, b := range list {
		if b.Current {
			sawCurrent = true
			if b.Name != board.RootBoardName {
				t.Errorf("current board = %q, want root", b.Name)
			}
			if b.Cards != 3 || b.Connections != 1 {
				t.Errorf("root counts = %d cards, %d connections", b.Cards, b.Connections)
			}
		}
	}
	if !sawCurrent {
		t.Error("no board marked current")
	}
}

func TestBoardDetail(t *testing.T) {
	srv, s := newTestServer(t)
	rec := get(t, srv, "/api/boards/"+s.CurrentBoard().ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var detail boardDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(detail.CardList) != 3 {
		t.Errorf("%d cards, want 3", len(detail.CardList))
	}
	if len(detail.Breadcrumbs) != 1 || detail.Breadcrumbs[0] != board.RootBoardName {
		t.Errorf("breadcrumbs = %v", detail.Breadcrumbs)
	}
}

func TestBoardNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv, "/api/boards/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["code"] != "NOT_FOUND" {
		t.Errorf("code = %q", body["code"])
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	srv, s := newTestServer(t)
	rec := get(t, srv, "/api/boards/"+s.CurrentBoard().ID+"/snapshot.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty image body")
	}

	if rec := get(t, srv, "/api/boards/nope/snapshot.png"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown board snapshot status = %d, want 404", rec.Code)
	}
}

// countingCache wraps an in-memory store and counts traffic, so tests can
// tell a cached snapshot from a re-render.
type countingCache struct {
	entries map[string][]byte
	hits    int
	sets    int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: map[string][]byte{}}
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return data, ok, nil
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.entries[key] = data
	c.sets++
	return nil
}

func (c *countingCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *countingCache) Close() error { return nil }

func TestSnapshotServedFromCache(t *testing.T) {
	s := board.NewStore()
	s.CreateCard(board.TypeNote, 0, 0, board.WithContent("alpha"))
	cc := newCountingCache()
	srv := New(s, nil, cc)

	first := get(t, srv, "/api/boards/"+s.CurrentBoard().ID+"/snapshot.png")
	second := get(t, srv, "/api/boards/"+s.CurrentBoard().ID+"/snapshot.png")

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("status = %d, %d", first.Code, second.Code)
	}
	if cc.sets != 1 {
		t.Errorf("%d renders stored, want 1", cc.sets)
	}
	if cc.hits != 1 {
		t.Errorf("%d cache hits, want 1 for the second request", cc.hits)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached snapshot differs from the rendered one")
	}
}

func TestSnapshotCacheInvalidatesOnEdit(t *testing.T) {
	s := board.NewStore()
	c := s.CreateCard(board.TypeNote, 0, 0)
	cc := newCountingCache()
	srv := New(s, nil, cc)

	get(t, srv, "/api/boards/"+s.CurrentBoard().ID+"/snapshot.png")
	s.UpdateCard(c.ID, func(card *board.Card) { card.Content = "edited" })
	get(t, srv, "/api/boards/"+s.CurrentBoard().ID+"/snapshot.png")

	if cc.hits != 0 {
		t.Errorf("%d cache hits after an edit, want 0 (key must change)", cc.hits)
	}
	if cc.sets != 2 {
		t.Errorf("%d renders stored, want 2", cc.sets)
	}
}
