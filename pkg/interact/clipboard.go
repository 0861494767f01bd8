package interact

import (
	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/geom"
)

// Card clipboard. Copies are full templates (columns bring their children),
// held inside the engine rather than the system clipboard so paste works
// across boards within the document. The CLI bridges to the OS clipboard
// separately, at the document level.

// Copy snapshots the selection into the clipboard. Column children travel
// with their column. The selection itself is untouched.
func (e *Engine) Copy() int {
	ids := e.Selection()
	if len(ids) == 0 {
		return 0
	}
	e.clip = e.store.CopyTemplates(ids)
	return len(e.clip)
}

// Cut is Copy followed by deleting the selection, as one undo step.
func (e *Engine) Cut() int {
	n := e.Copy()
	if n == 0 {
		return 0
	}
	e.DeleteSelection()
	return n
}

// CanPaste reports whether the clipboard holds cards.
func (e *Engine) CanPaste() bool { return len(e.clip) > 0 }

// Paste inserts clipboard copies onto the current board with the standard
// nudge offset, selecting them. Returns the created cards.
func (e *Engine) Paste() []*board.Card {
	return e.paste(pasteNudge, pasteNudge)
}

// PasteAt inserts clipboard copies so that the group's bounding-box center
// lands on the given canvas point, preserving the cards' relative layout.
func (e *Engine) PasteAt(p geom.Point) []*board.Card {
	center := e.clipBounds().Center()
	return e.paste(p.X-center.X, p.Y-center.Y)
}

func (e *Engine) paste(dx, dy float64) []*board.Card {
	if len(e.clip) == 0 {
		return nil
	}
	pre := e.store.Document().Clone()
	created := e.store.ImportCards(e.clip, dx, dy)
	if len(created) == 0 {
		return nil
	}
	e.checkpoint(pre, "card.paste", "")

	e.ClearSelection()
	for _, c := range created {
		if c.InColumn == "" {
			e.sel[c.ID] = true
		}
	}
	return created
}

// clipBounds is the bounding box of the clipboard's free cards at their
// copied positions.
func (e *Engine) clipBounds() geom.Rect {
	var bbox geom.Rect
	first := true
	for _, tpl := range e.clip {
		if tpl.InColumn != "" {
			continue
		}
		r := e.CardRect(tpl)
		if first {
			bbox = r
			first = false
		} else {
			bbox = geom.Union(bbox, r)
		}
	}
	return bbox
}
