// Package board implements the spatial entity model of the planning canvas:
// boards, typed cards, connections, column containment, and the nested-board
// tree. The [Store] is the only sanctioned mutation point; everything else in
// the repository consumes it through its methods.
//
// # Ownership model
//
// Boards form a tree via ParentID (root has ParentID == ""). A board owns the
// cards listed in its CardIDs and the connections in its Connections slice.
// Column cards own their contained cards through ChildCardIDs; a contained
// card is removed from its board's CardIDs for as long as it is contained.
// Board cards own exactly one sub-board through LinkedBoardID. All other
// references (ParentID, InColumn, LinkedBoardID as seen from the board) are
// weak: they are resolved through the central maps and never drive lifetime.
//
// # Concurrency
//
// The store is single-threaded by design: all mutations run synchronously in
// response to discrete user-intent events. It is not safe for concurrent use
// without external synchronization.
package board

import "time"

// Anchor is one of the four fixed attachment directions on a card's rendered
// boundary.
type Anchor string

// Connection anchors.
const (
	AnchorTop    Anchor = "top"
	AnchorBottom Anchor = "bottom"
	AnchorLeft   Anchor = "left"
	AnchorRight  Anchor = "right"
)

// Valid reports whether a is one of the four anchors.
func (a Anchor) Valid() bool {
	switch a {
	case AnchorTop, AnchorBottom, AnchorLeft, AnchorRight:
		return true
	default:
		return false
	}
}

// Connection is a directed, anchored curve between two cards on the same
// board. Both endpoints must exist in the owning board's card set; deleting
// either card removes the connection.
type Connection struct {
	ID         string `json:"id" bson:"id"`
	FromCardID string `json:"fromCardId" bson:"fromCardId"`
	ToCardID   string `json:"toCardId" bson:"toCardId"`
	FromAnchor Anchor `json:"fromAnchor" bson:"fromAnchor"`
	ToAnchor   Anchor `json:"toAnchor" bson:"toAnchor"`
	Color      string `json:"color" bson:"color"`
}

// Board is a named canvas instance owning an ordered set of cards and
// connections. PanX/PanY/Zoom are the board's persisted view state, restored
// when the board is navigated to.
type Board struct {
	ID          string       `json:"id" bson:"id"`
	Name        string       `json:"name" bson:"name"`
	ParentID    string       `json:"parentId,omitempty" bson:"parentId,omitempty"`
	CardIDs     []string     `json:"cardIds" bson:"cardIds"`
	Connections []Connection `json:"connections" bson:"connections"`
	PanX        float64      `json:"panX" bson:"panX"`
	PanY        float64      `json:"panY" bson:"panY"`
	Zoom        float64      `json:"zoom" bson:"zoom"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	out := *b
	out.CardIDs = make([]string, len(b.CardIDs))
	copy(out.CardIDs, b.CardIDs)
	out.Connections = make([]Connection, len(b.Connections))
	copy(out.Connections, b.Connections)
	return &out
}

// Document is the full persisted state: every board, every card, and which
// board is currently open. History snapshots are deep copies of this struct.
type Document struct {
	Boards         map[string]*Board `json:"boards" bson:"boards"`
	Cards          map[string]*Card  `json:"cards" bson:"cards"`
	CurrentBoardID string            `json:"currentBoardId" bson:"currentBoardId"`
	DarkMode       bool              `json:"darkMode" bson:"darkMode"`
}

// NewDocument returns an empty document with initialized maps.
func NewDocument() *Document {
	return &Document{
		Boards: make(map[string]*Board),
		Cards:  make(map[string]*Card),
	}
}

// Clone returns a deep copy of the document. Snapshot-based undo relies on
// clones being fully independent of the live document.
func (d *Document) Clone() *Document {
	out := &Document{
		Boards:         make(map[string]*Board, len(d.Boards)),
		Cards:          make(map[string]*Card, len(d.Cards)),
		CurrentBoardID: d.CurrentBoardID,
		DarkMode:       d.DarkMode,
	}
	for id, b := range d.Boards {
		out.Boards[id] = b.Clone()
	}
	for id, c := range d.Cards {
		out.Cards[id] = c.Clone()
	}
	return out
}

// Equal reports whether two documents hold the same state. Used by tests and
// by the history engine to skip no-op checkpoints.
func (d *Document) Equal(o *Document) bool {
	if d.CurrentBoardID != o.CurrentBoardID || d.DarkMode != o.DarkMode {
		return false
	}
	if len(d.Boards) != len(o.Boards) || len(d.Cards) != len(o.Cards) {
		return false
	}
	for id, b := range d.Boards {
		ob, ok := o.Boards[id]
		if !ok || !boardEqual(b, ob) {
			return false
		}
	}
	for id, c := range d.Cards {
		oc, ok := o.Cards[id]
		if !ok || !cardEqual(c, oc) {
			return false
		}
	}
	return true
}

func boardEqual(a, b *Board) bool {
	if a.ID != b.ID || a.Name != b.Name || a.ParentID != b.ParentID ||
		a.PanX != b.PanX || a.PanY != b.PanY || a.Zoom != b.Zoom ||
		len(a.CardIDs) != len(b.CardIDs) || len(a.Connections) != len(b.Connections) {
		return false
	}
	for i := range a.CardIDs {
		if a.CardIDs[i] != b.CardIDs[i] {
			return false
		}
	}
	for i := range a.Connections {
		if a.Connections[i] != b.Connections[i] {
			return false
		}
	}
	return true
}

func cardEqual(a, b *Card) bool {
	if a.ID != b.ID || a.Type != b.Type || a.BoardID != b.BoardID ||
		a.X != b.X || a.Y != b.Y || a.Color != b.Color ||
		a.Width != b.Width || a.Height != b.Height || a.ZIndex != b.ZIndex ||
		a.Content != b.Content || a.Title != b.Title ||
		a.ImageData != b.ImageData || a.Caption != b.Caption ||
		a.URL != b.URL || a.Description != b.Description ||
		a.Name != b.Name || a.LinkedBoardID != b.LinkedBoardID ||
		a.CoverImage != b.CoverImage || a.InColumn != b.InColumn ||
		len(a.Items) != len(b.Items) || len(a.ChildCardIDs) != len(b.ChildCardIDs) {
		return false
	}
	for i := range a.Items {
		if a.Items[i] != b.Items[i] {
			return false
		}
	}
	for i := range a.ChildCardIDs {
		if a.ChildCardIDs[i] != b.ChildCardIDs[i] {
			return false
		}
	}
	return true
}
