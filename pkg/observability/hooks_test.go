package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Board hooks
	b := NoopBoardHooks{}
	b.OnMutate("card.create", "abc")
	b.OnCheckpoint(1)
	b.OnUndo(0)
	b.OnRedo(0)
	b.OnNavigate("board-1")

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "document")
	c.OnCacheMiss(ctx, "document")
	c.OnCacheSet(ctx, "document", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/api/boards")
	h.OnResponse(ctx, "GET", "/api/boards", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Board().(NoopBoardHooks); !ok {
		t.Error("Board() should return NoopBoardHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customBoard := &testBoardHooks{}
	SetBoardHooks(customBoard)
	if Board() != customBoard {
		t.Error("SetBoardHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Board().(NoopBoardHooks); !ok {
		t.Error("Reset() should restore NoopBoardHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testBoardHooks{}
	SetBoardHooks(custom)

	// Setting nil should be ignored
	SetBoardHooks(nil)

	if Board() != custom {
		t.Error("SetBoardHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testBoardHooks struct{ NoopBoardHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
