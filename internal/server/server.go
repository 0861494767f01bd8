// Package server exposes a read-only HTTP API over a board document, used
// to embed live board views in dashboards and wikis. All endpoints are GET;
// mutation stays with the interactive surfaces.
package server

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/cache"
	"github.com/matzehuels/pinboard/pkg/observability"
)

// Server serves one document. The underlying store is never mutated by any
// handler, so concurrent requests need no locking.
type Server struct {
	store  *board.Store
	logger *log.Logger
	render cache.Cache
	router chi.Router
}

// New builds a server over the store. A nil logger discards request logs; a
// nil render cache disables snapshot caching.
func New(s *board.Store, logger *log.Logger, renderCache cache.Cache) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if renderCache == nil {
		renderCache = cache.NewNullCache()
	}
	srv := &Server{store: s, logger: logger, render: renderCache}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(srv.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", srv.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/document", srv.handleDocument)
		r.Get("/boards", srv.handleBoards)
		r.Get("/boards/{boardID}", srv.handleBoard)
		r.Get("/boards/{boardID}/snapshot.png", srv.handleSnapshot)
		r.Get("/tree.svg", srv.handleTree)
	})

	srv.router = r
	return srv
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

// logRequests emits one log line and one observability event per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed,
		)
	})
}
