package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/buildinfo"
	"github.com/matzehuels/pinboard/pkg/errors"
	boardio "github.com/matzehuels/pinboard/pkg/io"
	"github.com/matzehuels/pinboard/pkg/observability"
	"github.com/matzehuels/pinboard/pkg/render"
)

// boardSummary is the list-endpoint shape for one board.
type boardSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ParentID    string `json:"parentId,omitempty"`
	Cards       int    `json:"cards"`
	Connections int    `json:"connections"`
	Current     bool   `json:"current"`
}

// boardDetail adds the board's cards to the summary.
type boardDetail struct {
	boardSummary
	Breadcrumbs []string      `json:"breadcrumbs"`
	CardList    []*board.Card `json:"cardList"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	data, err := boardio.MarshalDocument(s.store.Document())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleBoards(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Document()
	out := make([]boardSummary, 0, len(doc.Boards))
	for _, b := range doc.Boards {
		out = append(out, s.summarize(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "boardID")
	b, ok := s.store.Board(id)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "board %q not found", id))
		return
	}

	detail := boardDetail{
		boardSummary: s.summarize(b),
		CardList:     s.store.CardsOn(b.ID),
		Breadcrumbs:  []string{},
	}
	for _, crumb := range s.store.PathTo(b.ID) {
		detail.Breadcrumbs = append(detail.Breadcrumbs, crumb.Name)
	}
	writeJSON(w, http.StatusOK, detail)
}

// snapshotTTL bounds how long a rendered board snapshot may be reused. The
// cache key carries the board's UpdatedAt, so edits invalidate immediately
// and the TTL only caps storage for boards that stop changing.
const snapshotTTL = time.Hour

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "boardID")
	b, ok := s.store.Board(id)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "board %q not found", id))
		return
	}

	ctx := r.Context()
	key := fmt.Sprintf("snapshot:%s:%d", id, b.UpdatedAt.UnixNano())
	if data, ok, err := s.render.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "snapshot")
		writePNG(w, data)
		return
	}
	observability.Cache().OnCacheMiss(ctx, "snapshot")

	data, err := render.SnapshotPNG(s.store, id, render.SnapshotOptions{Scale: 2})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.render.Set(ctx, key, data, snapshotTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "snapshot", len(data))
	}
	writePNG(w, data)
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	dot := render.BoardTreeDOT(s.store, render.TreeOptions{Detailed: r.URL.Query().Get("detailed") == "true"})
	svg, err := render.RenderSVG(dot)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (s *Server) summarize(b *board.Board) boardSummary {
	return boardSummary{
		ID:          b.ID,
		Name:        b.Name,
		ParentID:    b.ParentID,
		Cards:       len(s.store.CardsOn(b.ID)),
		Connections: len(b.Connections),
		Current:     b.ID == s.store.Document().CurrentBoardID,
	}
}

// writeError maps error codes onto HTTP statuses and logs the failure.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	}
	s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

