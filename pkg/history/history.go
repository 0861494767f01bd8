// Package history provides bounded snapshot undo/redo over board documents.
//
// The model is whole-document snapshots rather than operation diffs: before
// every undoable mutation the caller checkpoints the pre-mutation state, and
// undo swaps the live document for the most recent snapshot while parking the
// live state on the redo stack. Snapshots are structural deep copies, so a
// restored document shares no slices or records with any other snapshot.
package history

import "github.com/matzehuels/pinboard/pkg/board"

// DefaultCapacity bounds the undo stack. Once full, the oldest snapshot is
// evicted on each push.
const DefaultCapacity = 50

// History holds the undo and redo stacks for a single document. It is not
// safe for concurrent use; like the store it belongs to one goroutine.
type History struct {
	capacity int
	past     []*board.Document
	future   []*board.Document
}

// New returns an empty history with the given capacity. Capacities below one
// fall back to DefaultCapacity.
func New(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Checkpoint pushes a deep copy of the document onto the undo stack and
// clears the redo stack. Call it with the pre-mutation state, immediately
// before applying an undoable change. When the stack is at capacity the
// oldest snapshot is dropped.
func (h *History) Checkpoint(doc *board.Document) {
	if doc == nil {
		return
	}
	if len(h.past) >= h.capacity {
		n := copy(h.past, h.past[len(h.past)-h.capacity+1:])
		h.past = h.past[:n]
	}
	h.past = append(h.past, doc.Clone())
	h.future = h.future[:0]
}

// Undo exchanges the live document for the most recent snapshot. The live
// state moves to the redo stack. Returns nil when there is nothing to undo.
func (h *History) Undo(live *board.Document) *board.Document {
	if len(h.past) == 0 {
		return nil
	}
	snap := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, live.Clone())
	return snap
}

// Redo is the inverse of Undo: the most recently undone state comes back and
// the live state returns to the undo stack. Returns nil when the redo stack
// is empty.
func (h *History) Redo(live *board.Document) *board.Document {
	if len(h.future) == 0 {
		return nil
	}
	snap := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, live.Clone())
	return snap
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Depth returns the number of snapshots on the undo stack.
func (h *History) Depth() int { return len(h.past) }

// Clear drops both stacks, for example after importing a new document.
func (h *History) Clear() {
	h.past = h.past[:0]
	h.future = h.future[:0]
}
