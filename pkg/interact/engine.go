// Package interact implements the selection and gesture engine that sits
// between a UI surface and the document store.
//
// The engine owns three things the store deliberately does not know about:
// the selection set, the card clipboard, and the gesture state machine that
// turns pointer press/move/release sequences into store mutations. It also
// owns the undo policy: a gesture checkpoints the pre-gesture document once,
// on release, so a forty-step drag costs one history slot.
//
// All pointer coordinates are canvas units. Converting from screen space is
// the caller's job via the geom package, since only the UI surface knows its
// viewport origin.
package interact

import (
	"sort"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/history"
	"github.com/matzehuels/pinboard/pkg/observability"
)

// Geometry limits for interactive manipulation, in canvas units.
const (
	MinCardWidth  = 120.0
	MinCardHeight = 60.0

	// GridSize is the snap grid pitch when grid snapping is enabled.
	GridSize = 20.0

	// clickSlop is how far the pointer may travel before a press stops
	// being a click and becomes a marquee or drag.
	clickSlop = 5.0

	// pasteNudge offsets keyboard pastes and duplicates so the copy does
	// not land exactly on the original.
	pasteNudge = 20.0
)

// Mode is the gesture the engine is currently in.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeResizing
	ModeMarquee
	ModeConnecting
)

// SizeFunc reports the rendered size of a card. UIs that measure text supply
// their own; the zero value falls back to the card's stored or default size.
type SizeFunc func(*board.Card) (w, h float64)

// Engine drives selection, clipboard, and gestures over one store.
// Like the store it belongs to a single goroutine.
type Engine struct {
	store *board.Store
	hist  *history.History
	size  SizeFunc

	sel  map[string]bool
	clip []*board.Card

	snapToGrid bool

	mode    Mode
	pending *board.Document // pre-gesture snapshot, pushed on commit
	press   geom.Point
	hover   geom.Point
	moved   bool

	dragStart map[string]geom.Point

	resizeID   string
	resizeBase geom.Point // width/height at gesture start

	connectFrom string

	marquee      geom.Rect
	marqueeShift bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSizeFunc installs a rendered-size callback.
func WithSizeFunc(f SizeFunc) Option {
	return func(e *Engine) { e.size = f }
}

// WithHistory shares an externally owned history instead of the default one.
func WithHistory(h *history.History) Option {
	return func(e *Engine) { e.hist = h }
}

// WithGridSnap enables grid snapping from the start.
func WithGridSnap(on bool) Option {
	return func(e *Engine) { e.snapToGrid = on }
}

// New returns an idle engine over the store.
func New(s *board.Store, opts ...Option) *Engine {
	e := &Engine{
		store: s,
		hist:  history.New(history.DefaultCapacity),
		sel:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store exposes the underlying store for read paths (rendering, export).
func (e *Engine) Store() *board.Store { return e.store }

// History exposes the undo history, mainly for depth display.
func (e *Engine) History() *history.History { return e.hist }

// Mode returns the current gesture mode.
func (e *Engine) Mode() Mode { return e.mode }

// SetGridSnap toggles grid snapping for subsequent drags.
func (e *Engine) SetGridSnap(on bool) { e.snapToGrid = on }

// GridSnap reports whether grid snapping is active.
func (e *Engine) GridSnap() bool { return e.snapToGrid }

// =============================================================================
// Geometry helpers
// =============================================================================

// CardSize resolves a card's rendered size through the size callback.
func (e *Engine) CardSize(c *board.Card) (w, h float64) {
	if e.size != nil {
		return e.size(c)
	}
	return c.Size()
}

// CardRect is the card's bounding rectangle in canvas units.
func (e *Engine) CardRect(c *board.Card) geom.Rect {
	w, h := e.CardSize(c)
	return geom.Rect{X: c.X, Y: c.Y, W: w, H: h}
}

// CardAt returns the topmost free card under the point on the current board,
// or nil. Contained cards are hit through their column, which the UI resolves
// itself since child layout inside a column is a rendering concern.
func (e *Engine) CardAt(p geom.Point) *board.Card {
	var hit *board.Card
	for _, c := range e.store.FreeCards(e.store.CurrentBoard().ID) {
		if !e.CardRect(c).Contains(p) {
			continue
		}
		if hit == nil || c.ZIndex > hit.ZIndex {
			hit = c
		}
	}
	return hit
}

// columnAt returns the topmost column card under the point, skipping the
// given ids (the cards being dragged).
func (e *Engine) columnAt(p geom.Point, skip map[string]geom.Point) *board.Card {
	var hit *board.Card
	for _, c := range e.store.FreeCards(e.store.CurrentBoard().ID) {
		if c.Type != board.TypeColumn {
			continue
		}
		if _, dragged := skip[c.ID]; dragged {
			continue
		}
		if !e.CardRect(c).Contains(p) {
			continue
		}
		if hit == nil || c.ZIndex > hit.ZIndex {
			hit = c
		}
	}
	return hit
}

// =============================================================================
// Selection
// =============================================================================

// Selection returns the selected card ids sorted for deterministic iteration.
func (e *Engine) Selection() []string {
	out := make([]string, 0, len(e.sel))
	for id := range e.sel {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsSelected reports whether the card is in the selection set.
func (e *Engine) IsSelected(id string) bool { return e.sel[id] }

// SelectOnly replaces the selection with the single card.
func (e *Engine) SelectOnly(id string) {
	e.sel = map[string]bool{id: true}
}

// ToggleSelect adds or removes one card from the selection.
func (e *Engine) ToggleSelect(id string) {
	if e.sel[id] {
		delete(e.sel, id)
	} else {
		e.sel[id] = true
	}
}

// SelectAll selects every free card on the current board.
func (e *Engine) SelectAll() {
	e.sel = make(map[string]bool)
	for _, c := range e.store.FreeCards(e.store.CurrentBoard().ID) {
		e.sel[c.ID] = true
	}
}

// ClearSelection empties the selection set.
func (e *Engine) ClearSelection() {
	e.sel = make(map[string]bool)
}

// pruneSelection drops selected ids that no longer exist, after deletes and
// history jumps.
func (e *Engine) pruneSelection() {
	for id := range e.sel {
		if _, ok := e.store.Card(id); !ok {
			delete(e.sel, id)
		}
	}
}

// =============================================================================
// History
// =============================================================================

// checkpoint pushes a pre-mutation snapshot and emits the mutation event.
func (e *Engine) checkpoint(pre *board.Document, op, subject string) {
	e.hist.Checkpoint(pre)
	observability.Board().OnCheckpoint(e.hist.Depth())
	observability.Board().OnMutate(op, subject)
}

// Undo restores the previous snapshot. The selection is cleared because the
// selected cards may not exist in the restored state. Returns whether a
// snapshot was applied.
func (e *Engine) Undo() bool {
	doc := e.hist.Undo(e.store.Document())
	if doc == nil {
		return false
	}
	e.store.Restore(doc)
	e.ClearSelection()
	observability.Board().OnUndo(e.hist.Depth())
	return true
}

// Redo reapplies the most recently undone snapshot.
func (e *Engine) Redo() bool {
	doc := e.hist.Redo(e.store.Document())
	if doc == nil {
		return false
	}
	e.store.Restore(doc)
	e.ClearSelection()
	observability.Board().OnRedo(e.hist.Depth())
	return true
}

// =============================================================================
// Non-gesture mutations
// =============================================================================

// CreateCard makes a new card, checkpoints, and selects it.
func (e *Engine) CreateCard(t board.CardType, x, y float64, opts ...board.CardOption) *board.Card {
	pre := e.store.Document().Clone()
	c := e.store.CreateCard(t, x, y, opts...)
	if c == nil {
		return nil
	}
	e.checkpoint(pre, "card.create", c.ID)
	e.SelectOnly(c.ID)
	return c
}

// DeleteSelection removes every selected card in one undo step.
func (e *Engine) DeleteSelection() {
	if len(e.sel) == 0 {
		return
	}
	pre := e.store.Document().Clone()
	for _, id := range e.Selection() {
		e.store.DeleteCard(id)
	}
	e.checkpoint(pre, "card.delete", "")
	e.ClearSelection()
	e.pruneSelection()
}

// Duplicate clones the selection with the standard nudge offset and selects
// the copies. One undo step regardless of selection size.
func (e *Engine) Duplicate() []*board.Card {
	ids := e.Selection()
	if len(ids) == 0 {
		return nil
	}
	pre := e.store.Document().Clone()
	var created []*board.Card
	for _, id := range ids {
		if dup := e.store.DuplicateCard(id); dup != nil {
			created = append(created, dup)
		}
	}
	if len(created) == 0 {
		return nil
	}
	e.checkpoint(pre, "card.duplicate", "")
	e.ClearSelection()
	for _, c := range created {
		e.sel[c.ID] = true
	}
	return created
}

// Disconnect removes a connection by id as one undo step.
func (e *Engine) Disconnect(connectionID string) {
	pre := e.store.Document().Clone()
	e.store.Disconnect(connectionID)
	e.checkpoint(pre, "connection.delete", connectionID)
}

// BringToFront raises the selection above everything else on the board.
func (e *Engine) BringToFront() {
	if len(e.sel) == 0 {
		return
	}
	pre := e.store.Document().Clone()
	for _, id := range e.Selection() {
		e.store.BringToFront(id)
	}
	e.checkpoint(pre, "card.front", "")
}

// SendToBack drops the selection below everything else on the board.
func (e *Engine) SendToBack() {
	if len(e.sel) == 0 {
		return
	}
	pre := e.store.Document().Clone()
	for _, id := range e.Selection() {
		e.store.SendToBack(id)
	}
	e.checkpoint(pre, "card.back", "")
}

// Navigate switches boards and drops the selection. Navigation is not an
// undoable mutation; only document structure rides the history.
func (e *Engine) Navigate(boardID string) bool {
	if !e.store.NavigateTo(boardID) {
		return false
	}
	e.ClearSelection()
	observability.Board().OnNavigate(boardID)
	return true
}

// =============================================================================
// Viewport
// =============================================================================

// Pan shifts the current board's view by a screen-space delta. View changes
// are never checkpointed.
func (e *Engine) Pan(dx, dy float64) {
	b := e.store.CurrentBoard()
	e.store.SetView(b.PanX+dx, b.PanY+dy, b.Zoom)
}

// ZoomAt rescales the view toward newZoom keeping the focal screen point
// fixed over the same canvas point. origin is the viewport's top-left in
// screen space.
func (e *Engine) ZoomAt(newZoom float64, focal, origin geom.Point) {
	b := e.store.CurrentBoard()
	pan, zoom := geom.ZoomAround(b.Zoom, newZoom, focal.Sub(origin), geom.Point{X: b.PanX, Y: b.PanY})
	e.store.SetView(pan.X, pan.Y, zoom)
}

// FitToContent frames every card on the current board inside the viewport.
func (e *Engine) FitToContent(viewportW, viewportH, padding float64) {
	bbox := e.store.BBox(e.store.CurrentBoard().ID)
	zoom, pan := geom.FitZoom(bbox, viewportW, viewportH, padding)
	e.store.SetView(pan.X, pan.Y, zoom)
}
