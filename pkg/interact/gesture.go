package interact

import (
	"math"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/route"
)

// heightResizable reports whether a variant's height follows the resize
// gesture. Only the list-shaped variants grow vertically; the other cards
// size their height to content and a resize adjusts width alone.
func heightResizable(t board.CardType) bool {
	return t == board.TypeColumn || t == board.TypeTodo
}

// Gesture state machine. Press starts a gesture, Move advances it, Release
// commits it. A gesture that mutated the document pushes exactly one history
// snapshot, taken before the first mutation, when it is released.

// Press begins a pointer gesture at a canvas point. Pressing a card starts a
// drag of the whole selection; shift-pressing toggles the card in and out of
// the selection first. Pressing empty canvas starts a marquee.
func (e *Engine) Press(p geom.Point, shift bool) {
	if e.mode != ModeIdle {
		return
	}
	e.press = p
	e.hover = p
	e.moved = false

	hit := e.CardAt(p)
	if hit == nil {
		e.mode = ModeMarquee
		e.marquee = geom.Rect{X: p.X, Y: p.Y}
		e.marqueeShift = shift
		return
	}

	if shift {
		e.ToggleSelect(hit.ID)
		if !e.sel[hit.ID] {
			// Deselected by the toggle; nothing to drag.
			return
		}
	} else if !e.sel[hit.ID] {
		e.SelectOnly(hit.ID)
	}

	e.pending = e.store.Document().Clone()
	e.mode = ModeDragging
	e.dragStart = make(map[string]geom.Point, len(e.sel))
	for id := range e.sel {
		if c, ok := e.store.Card(id); ok && c.InColumn == "" {
			e.dragStart[id] = geom.Point{X: c.X, Y: c.Y}
		}
	}
	e.store.BringToFront(hit.ID)
}

// StartResize begins a resize gesture on one card's corner handle.
func (e *Engine) StartResize(cardID string, p geom.Point) {
	if e.mode != ModeIdle {
		return
	}
	c, ok := e.store.Card(cardID)
	if !ok {
		return
	}
	w, h := e.CardSize(c)

	e.pending = e.store.Document().Clone()
	e.mode = ModeResizing
	e.press = p
	e.moved = false
	e.resizeID = cardID
	e.resizeBase = geom.Point{X: w, Y: h}
	e.SelectOnly(cardID)
}

// StartConnection begins dragging a new connection out of a card.
func (e *Engine) StartConnection(cardID string, p geom.Point) {
	if e.mode != ModeIdle {
		return
	}
	if _, ok := e.store.Card(cardID); !ok {
		return
	}
	e.mode = ModeConnecting
	e.press = p
	e.hover = p
	e.connectFrom = cardID
}

// Move advances the active gesture to a new canvas point.
func (e *Engine) Move(p geom.Point) {
	e.hover = p
	delta := p.Sub(e.press)
	// A gesture stays a click while the pointer is within the slop on both
	// axes; crossing it on either axis commits to a drag or marquee.
	if math.Abs(delta.X) > clickSlop || math.Abs(delta.Y) > clickSlop {
		e.moved = true
	}

	switch e.mode {
	case ModeDragging:
		for id, start := range e.dragStart {
			nx := start.X + delta.X
			ny := start.Y + delta.Y
			if e.snapToGrid {
				nx = geom.Snap(nx, GridSize)
				ny = geom.Snap(ny, GridSize)
			}
			e.store.UpdateCard(id, func(c *board.Card) {
				c.X = nx
				c.Y = ny
			})
		}

	case ModeResizing:
		w := geom.Clamp(e.resizeBase.X+delta.X, MinCardWidth, 1e9)
		h := geom.Clamp(e.resizeBase.Y+delta.Y, MinCardHeight, 1e9)
		e.store.UpdateCard(e.resizeID, func(c *board.Card) {
			c.Width = w
			if heightResizable(c.Type) {
				c.Height = h
			}
		})

	case ModeMarquee:
		e.marquee = geom.NormalizedRect(e.press, p)
	}
}

// Release commits the active gesture at the final canvas point.
func (e *Engine) Release(p geom.Point) {
	e.Move(p)
	mode := e.mode
	e.mode = ModeIdle

	switch mode {
	case ModeDragging:
		e.releaseDrag(p)
	case ModeResizing:
		if e.moved {
			e.checkpoint(e.pending, "card.resize", e.resizeID)
		}
		e.resizeID = ""
	case ModeMarquee:
		e.releaseMarquee(p)
	case ModeConnecting:
		e.releaseConnection(p)
	}
	e.pending = nil
	e.dragStart = nil
}

func (e *Engine) releaseDrag(p geom.Point) {
	if !e.moved {
		// A plain click: the card keeps its raised z, but selection and a
		// click-raise are not worth an undo slot.
		return
	}

	// A single dragged note released over a column is absorbed into it.
	if len(e.dragStart) == 1 {
		var dragged string
		for id := range e.dragStart {
			dragged = id
		}
		if c, ok := e.store.Card(dragged); ok && c.Type == board.TypeNote {
			// Absorption tests the card's center, not the pointer, so a
			// note grabbed off-center still lands where its body sits.
			center := e.CardRect(c).Center()
			if col := e.columnAt(center, e.dragStart); col != nil {
				e.store.AbsorbIntoColumn(dragged, col.ID)
			}
		}
	}

	e.checkpoint(e.pending, "card.move", "")
}

func (e *Engine) releaseMarquee(p geom.Point) {
	if !e.moved {
		// A click on empty canvas clears the selection unless extending.
		if !e.marqueeShift {
			e.ClearSelection()
		}
		return
	}

	if !e.marqueeShift {
		e.ClearSelection()
	}
	for _, c := range e.store.FreeCards(e.store.CurrentBoard().ID) {
		if geom.RectsOverlap(e.marquee, e.CardRect(c)) {
			e.sel[c.ID] = true
		}
	}
	e.marquee = geom.Rect{}
}

func (e *Engine) releaseConnection(p geom.Point) {
	from := e.connectFrom
	e.connectFrom = ""

	target := e.CardAt(p)
	if target == nil || target.ID == from {
		return
	}
	src, ok := e.store.Card(from)
	if !ok {
		return
	}

	fromRect := e.CardRect(src)
	toRect := e.CardRect(target)
	fromAnchor := route.NearestAnchor(fromRect, toRect.Center())
	toAnchor := route.NearestAnchor(toRect, fromRect.Center())

	pre := e.store.Document().Clone()
	conn, err := e.store.Connect(from, target.ID, fromAnchor, toAnchor, "")
	if err != nil {
		return
	}
	e.checkpoint(pre, "connection.create", conn.ID)
}

// Marquee returns the live marquee rectangle while one is being dragged.
func (e *Engine) Marquee() (geom.Rect, bool) {
	return e.marquee, e.mode == ModeMarquee && e.moved
}

// ConnectionDraft returns the in-progress connection endpoints for rendering.
func (e *Engine) ConnectionDraft() (fromID string, at geom.Point, ok bool) {
	return e.connectFrom, e.hover, e.mode == ModeConnecting
}

// Cancel aborts the active gesture, rolling back any live mutation it made.
func (e *Engine) Cancel() {
	if e.mode == ModeIdle {
		return
	}
	if e.pending != nil {
		e.store.Restore(e.pending)
		e.pruneSelection()
	}
	e.mode = ModeIdle
	e.pending = nil
	e.dragStart = nil
	e.resizeID = ""
	e.connectFrom = ""
	e.marquee = geom.Rect{}
}
