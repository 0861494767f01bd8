package board

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/geom"
)

// initialZIndex is the z-order counter's starting value. The counter only
// ever increases; values are never reused, so every new or fronted card lands
// above everything drawn before it.
const initialZIndex = 10

// backZIndex is the pinned value used by SendToBack.
const backZIndex = 1

// RootBoardName is the name given to the root board of a fresh document.
const RootBoardName = "Main Board"

// Store owns the document and its invariants. All mutations of boards, cards,
// and connections go through Store methods; direct field writes elsewhere are
// disallowed by contract.
//
// The z-order counter is process state owned by the store, deliberately
// outside history snapshots: undo never rolls it back, preserving the
// monotonic-increase contract.
type Store struct {
	doc      *Document
	zCounter int

	now   func() time.Time
	newID func() string
}

// NewStore creates a store with a fresh document containing one root board.
func NewStore() *Store {
	s := &Store{
		doc:      NewDocument(),
		zCounter: initialZIndex,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	root := s.newBoard(RootBoardName, "")
	s.doc.CurrentBoardID = root.ID
	return s
}

// Document returns the live document. Callers must treat it as read-only;
// pass it to Clone before keeping a reference across mutations.
func (s *Store) Document() *Document { return s.doc }

// Board returns the board with the given id.
func (s *Store) Board(id string) (*Board, bool) {
	b, ok := s.doc.Boards[id]
	return b, ok
}

// Card returns the card with the given id.
func (s *Store) Card(id string) (*Card, bool) {
	c, ok := s.doc.Cards[id]
	return c, ok
}

// CurrentBoard returns the board currently open.
func (s *Store) CurrentBoard() *Board {
	return s.doc.Boards[s.doc.CurrentBoardID]
}

// SetDarkMode stores the dark-mode flag on the document.
func (s *Store) SetDarkMode(on bool) { s.doc.DarkMode = on }

// Replace swaps the entire document, used by import. The incoming document is
// normalized: missing maps are initialized, a root board is created if the
// document has none, an invalid current-board id falls back to the root, and
// the z-order counter is re-seeded past the highest z-index present so new
// cards keep stacking on top.
func (s *Store) Replace(doc *Document) {
	if doc.Boards == nil {
		doc.Boards = make(map[string]*Board)
	}
	if doc.Cards == nil {
		doc.Cards = make(map[string]*Card)
	}
	s.doc = doc

	if len(doc.Boards) == 0 {
		root := s.newBoard(RootBoardName, "")
		doc.CurrentBoardID = root.ID
	}
	if _, ok := doc.Boards[doc.CurrentBoardID]; !ok {
		doc.CurrentBoardID = s.rootID()
	}

	maxZ := initialZIndex
	for _, c := range doc.Cards {
		if c.ZIndex >= maxZ {
			maxZ = c.ZIndex + 1
		}
	}
	s.zCounter = maxZ
}

// Restore swaps the document without normalization. Used by undo/redo, where
// the snapshot is known to be internally consistent. A nil document is a
// no-op so callers can feed it an exhausted undo stack directly.
func (s *Store) Restore(doc *Document) {
	if doc == nil {
		return
	}
	s.doc = doc
}

// =============================================================================
// Card lifecycle
// =============================================================================

// CardOption overrides a variant default during card creation.
type CardOption func(*Card)

// WithColor overrides the card color.
func WithColor(color string) CardOption { return func(c *Card) { c.Color = color } }

// WithSize overrides the card dimensions.
func WithSize(w, h float64) CardOption {
	return func(c *Card) { c.Width, c.Height = w, h }
}

// WithContent sets a note's rich-text content.
func WithContent(content string) CardOption { return func(c *Card) { c.Content = content } }

// WithTitle sets the title of a todo, link, or column card.
func WithTitle(title string) CardOption { return func(c *Card) { c.Title = title } }

// WithName sets a board card's name, which also names its sub-board.
func WithName(name string) CardOption { return func(c *Card) { c.Name = name } }

// WithURL sets a link card's target.
func WithURL(url string) CardOption { return func(c *Card) { c.URL = url } }

// WithImageData sets an image card's encoded bitmap.
func WithImageData(data string) CardOption { return func(c *Card) { c.ImageData = data } }

// WithLinkedBoard links a board card to an existing sub-board instead of
// creating a fresh one.
func WithLinkedBoard(boardID string) CardOption {
	return func(c *Card) { c.LinkedBoardID = boardID }
}

// CreateCard creates a card of the given type at (x, y) on the current board.
// Variant defaults are applied first, then the caller's overrides. The card
// receives a fresh monotonically increasing z-index. For board cards without
// a WithLinkedBoard override, an empty sub-board parented to the current
// board is created and linked atomically.
func (s *Store) CreateCard(t CardType, x, y float64, opts ...CardOption) *Card {
	if !t.Valid() {
		return nil
	}

	now := s.now()
	c := &Card{
		ID:        s.newID(),
		Type:      t,
		BoardID:   s.doc.CurrentBoardID,
		X:         x,
		Y:         y,
		ZIndex:    s.nextZ(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyDefaults(c)
	for _, opt := range opts {
		opt(c)
	}

	if c.Type == TypeBoard && c.LinkedBoardID == "" {
		sub := s.newBoard(c.Name, s.doc.CurrentBoardID)
		c.LinkedBoardID = sub.ID
	}

	s.doc.Cards[c.ID] = c
	if b := s.CurrentBoard(); b != nil {
		b.CardIDs = append(b.CardIDs, c.ID)
		s.touch(b)
	}
	return c
}

// UpdateCard applies mutate to the card and refreshes UpdatedAt. Unknown ids
// are a no-op. The mutator must not change identity or ownership fields
// (ID, BoardID, InColumn, ChildCardIDs); those move only through the
// dedicated operations.
func (s *Store) UpdateCard(id string, mutate func(*Card)) {
	c, ok := s.doc.Cards[id]
	if !ok {
		return
	}
	mutate(c)
	c.UpdatedAt = s.now()
	if b, ok := s.doc.Boards[c.BoardID]; ok {
		s.touch(b)
	}
}

// DeleteCard removes a card and everything it owns. Unknown ids are a no-op.
//
// Cascades:
//   - board cards delete their entire sub-board subtree (cards and boards)
//   - column cards delete all contained children
//   - contained cards are first removed from their column's child list
//
// Connections referencing any deleted card are stripped. The cascade is
// total: a missing board record skips that branch and the rest proceeds.
func (s *Store) DeleteCard(id string) {
	c, ok := s.doc.Cards[id]
	if !ok {
		return
	}

	if c.InColumn != "" {
		if col, ok := s.doc.Cards[c.InColumn]; ok {
			col.ChildCardIDs = removeString(col.ChildCardIDs, id)
		}
	}

	s.deleteCardTree(c)

	// The cascade may have taken the open board with it.
	if _, ok := s.doc.Boards[s.doc.CurrentBoardID]; !ok {
		s.doc.CurrentBoardID = s.rootID()
	}
}

// deleteCardTree removes c, its owned subtree, and all connections that
// reference it. It does not touch the column back-reference of c itself;
// DeleteCard handles that once at the top level.
func (s *Store) deleteCardTree(c *Card) {
	switch c.Type {
	case TypeColumn:
		for _, childID := range c.ChildCardIDs {
			if child, ok := s.doc.Cards[childID]; ok {
				s.deleteCardTree(child)
			}
		}
	case TypeBoard:
		s.deleteBoardTree(c.LinkedBoardID)
	case TypeNote, TypeTodo, TypeImage, TypeLink:
		// No owned children.
	}

	if b, ok := s.doc.Boards[c.BoardID]; ok {
		b.CardIDs = removeString(b.CardIDs, c.ID)
		s.stripConnections(b, c.ID)
		s.touch(b)
	}
	delete(s.doc.Cards, c.ID)
}

// deleteBoardTree removes a board, its cards, and all descendant boards.
// An unknown board id skips the branch so the surrounding cascade completes.
func (s *Store) deleteBoardTree(boardID string) {
	b, ok := s.doc.Boards[boardID]
	if !ok {
		return
	}
	// Snapshot ids: deleteCardTree mutates b.CardIDs while we iterate.
	ids := make([]string, len(b.CardIDs))
	copy(ids, b.CardIDs)
	for _, id := range ids {
		if c, ok := s.doc.Cards[id]; ok {
			s.deleteCardTree(c)
		}
	}
	// Contained cards are not in CardIDs; sweep any stragglers by BoardID.
	for id, c := range s.doc.Cards {
		if c.BoardID == boardID {
			delete(s.doc.Cards, id)
		}
	}
	delete(s.doc.Boards, boardID)
}

// DuplicateCard copies a card onto the current board, offset by (+20, +20).
// Identity, timestamps, and z-index are fresh; a duplicated board card gets a
// brand-new empty sub-board (contents are never copied) with a " (copy)"
// name suffix; a duplicated column deep-copies its contained children so no
// card ends up owned twice. Returns nil for unknown ids.
func (s *Store) DuplicateCard(id string) *Card {
	src, ok := s.doc.Cards[id]
	if !ok {
		return nil
	}

	templates := s.collectTemplates(src)
	created := s.ImportCards(templates, 20, 20)
	if len(created) == 0 {
		return nil
	}

	dup := created[0]
	if dup.Type == TypeBoard {
		s.UpdateCard(dup.ID, func(c *Card) { c.Name += " (copy)" })
		if sub, ok := s.doc.Boards[dup.LinkedBoardID]; ok {
			sub.Name = dup.Name
		}
	}
	return dup
}

// CopyTemplates gathers deep copies of the given cards for clipboard use.
// Columns bring their contained children along; duplicates in the input (a
// selected child whose column is also selected) collapse to one copy. The
// result feeds ImportCards on paste. Unknown ids are skipped.
func (s *Store) CopyTemplates(ids []string) []*Card {
	var out []*Card
	seen := make(map[string]bool)
	add := func(tpl *Card) {
		if !seen[tpl.ID] {
			seen[tpl.ID] = true
			out = append(out, tpl)
		}
	}
	for _, id := range ids {
		src, ok := s.doc.Cards[id]
		if !ok {
			continue
		}
		for _, tpl := range s.collectTemplates(src) {
			add(tpl)
		}
	}
	return out
}

// collectTemplates gathers deep copies of a card and, for columns, its
// contained children, preserving the containment relation inside the set.
func (s *Store) collectTemplates(src *Card) []*Card {
	templates := []*Card{src.Clone()}
	if src.Type == TypeColumn {
		for _, childID := range src.ChildCardIDs {
			if child, ok := s.doc.Cards[childID]; ok {
				templates = append(templates, child.Clone())
			}
		}
	}
	return templates
}

// ImportCards adopts a self-consistent set of card copies onto the current
// board: ids are regenerated, free cards are offset by (dx, dy), board cards
// get fresh empty sub-boards, and column/child relations are remapped within
// the set (references to cards outside the set are dropped). Cards arrive in
// input order, each with a fresh z-index. Returns the created cards in the
// same order as the input templates.
//
// This is the shared machinery behind duplicate and clipboard paste.
func (s *Store) ImportCards(templates []*Card, dx, dy float64) []*Card {
	if len(templates) == 0 {
		return nil
	}
	now := s.now()
	cur := s.CurrentBoard()

	idMap := make(map[string]string, len(templates))
	created := make([]*Card, 0, len(templates))

	for _, tpl := range templates {
		c := tpl.Clone()
		idMap[tpl.ID] = s.newID()
		c.ID = idMap[tpl.ID]
		c.BoardID = s.doc.CurrentBoardID
		c.ZIndex = s.nextZ()
		c.CreatedAt = now
		c.UpdatedAt = now

		if c.Type == TypeBoard {
			sub := s.newBoard(c.Name, s.doc.CurrentBoardID)
			c.LinkedBoardID = sub.ID
		}

		s.doc.Cards[c.ID] = c
		created = append(created, c)
	}

	for _, c := range created {
		if c.Type == TypeColumn {
			kept := c.ChildCardIDs[:0]
			for _, old := range c.ChildCardIDs {
				if mapped, ok := idMap[old]; ok {
					kept = append(kept, mapped)
				}
			}
			c.ChildCardIDs = kept
		}

		if mapped, ok := idMap[c.InColumn]; ok {
			c.InColumn = mapped
		} else {
			c.InColumn = ""
		}

		if c.InColumn == "" {
			c.X += dx
			c.Y += dy
			if cur != nil {
				cur.CardIDs = append(cur.CardIDs, c.ID)
			}
		}
	}

	if cur != nil {
		s.touch(cur)
	}
	return created
}

// =============================================================================
// Connections
// =============================================================================

// Connect creates a connection on the current board. Both endpoints must be
// cards on the current board; a connection from a card to itself is rejected
// with ErrCodeSelfConnection, and missing endpoints with ErrCodeNotFound.
func (s *Store) Connect(fromID, toID string, fromAnchor, toAnchor Anchor, color string) (*Connection, error) {
	if fromID == toID {
		return nil, errors.New(errors.ErrCodeSelfConnection, "card %s cannot connect to itself", fromID)
	}
	b := s.CurrentBoard()
	if b == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "no current board")
	}
	for _, id := range []string{fromID, toID} {
		c, ok := s.doc.Cards[id]
		if !ok || c.BoardID != b.ID {
			return nil, errors.New(errors.ErrCodeNotFound, "card %s is not on board %s", id, b.ID)
		}
	}

	conn := Connection{
		ID:         s.newID(),
		FromCardID: fromID,
		ToCardID:   toID,
		FromAnchor: fromAnchor,
		ToAnchor:   toAnchor,
		Color:      color,
	}
	b.Connections = append(b.Connections, conn)
	s.touch(b)
	return &b.Connections[len(b.Connections)-1], nil
}

// Disconnect removes a connection from the current board. Unknown ids are a
// no-op.
func (s *Store) Disconnect(connectionID string) {
	b := s.CurrentBoard()
	if b == nil {
		return
	}
	for i, conn := range b.Connections {
		if conn.ID == connectionID {
			b.Connections = append(b.Connections[:i], b.Connections[i+1:]...)
			s.touch(b)
			return
		}
	}
}

// stripConnections drops every connection on b referencing cardID.
func (s *Store) stripConnections(b *Board, cardID string) {
	kept := b.Connections[:0]
	for _, conn := range b.Connections {
		if conn.FromCardID != cardID && conn.ToCardID != cardID {
			kept = append(kept, conn)
		}
	}
	b.Connections = kept
}

// =============================================================================
// Z-order
// =============================================================================

// BringToFront assigns the card the next counter value, stacking it above
// every other card. Unknown ids are a no-op.
func (s *Store) BringToFront(id string) {
	if c, ok := s.doc.Cards[id]; ok {
		c.ZIndex = s.nextZ()
	}
}

// SendToBack pins the card below everything created since the document began.
// Unknown ids are a no-op.
func (s *Store) SendToBack(id string) {
	if c, ok := s.doc.Cards[id]; ok {
		c.ZIndex = backZIndex
	}
}

func (s *Store) nextZ() int {
	z := s.zCounter
	s.zCounter++
	return z
}

// =============================================================================
// Todo items
// =============================================================================

// AddTodoItem appends a checklist row to a todo card and returns its id.
// Non-todo or unknown cards are a no-op returning "".
func (s *Store) AddTodoItem(cardID, text string) string {
	c, ok := s.doc.Cards[cardID]
	if !ok || c.Type != TypeTodo {
		return ""
	}
	item := TodoItem{ID: s.newID(), Text: text}
	c.Items = append(c.Items, item)
	c.UpdatedAt = s.now()
	return item.ID
}

// ToggleTodoItem flips the done flag of a checklist row.
func (s *Store) ToggleTodoItem(cardID, itemID string) {
	c, ok := s.doc.Cards[cardID]
	if !ok || c.Type != TypeTodo {
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Done = !c.Items[i].Done
			c.UpdatedAt = s.now()
			return
		}
	}
}

// RemoveTodoItem deletes a checklist row.
func (s *Store) RemoveTodoItem(cardID, itemID string) {
	c, ok := s.doc.Cards[cardID]
	if !ok || c.Type != TypeTodo {
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = s.now()
			return
		}
	}
}

// =============================================================================
// Queries
// =============================================================================

// FreeCards returns the board's free-floating cards (contained cards are
// excluded) in card-list order.
func (s *Store) FreeCards(boardID string) []*Card {
	b, ok := s.doc.Boards[boardID]
	if !ok {
		return nil
	}
	out := make([]*Card, 0, len(b.CardIDs))
	for _, id := range b.CardIDs {
		if c, ok := s.doc.Cards[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// CardsOn returns every card living on the board, free and contained alike.
func (s *Store) CardsOn(boardID string) []*Card {
	var out []*Card
	for _, c := range s.FreeCards(boardID) {
		out = append(out, c)
		if c.Type == TypeColumn {
			for _, childID := range c.ChildCardIDs {
				if child, ok := s.doc.Cards[childID]; ok {
					out = append(out, child)
				}
			}
		}
	}
	return out
}

// BBox returns the canvas-space bounding box of the board's free cards, used
// by fit-to-content. The zero rect is returned for empty boards.
func (s *Store) BBox(boardID string) geom.Rect {
	cards := s.FreeCards(boardID)
	if len(cards) == 0 {
		return geom.Rect{}
	}
	w, h := cards[0].Size()
	box := geom.Rect{X: cards[0].X, Y: cards[0].Y, W: w, H: h}
	for _, c := range cards[1:] {
		w, h := c.Size()
		box = geom.Union(box, geom.Rect{X: c.X, Y: c.Y, W: w, H: h})
	}
	return box
}

// =============================================================================
// Internal helpers
// =============================================================================

func (s *Store) newBoard(name, parentID string) *Board {
	now := s.now()
	b := &Board{
		ID:          s.newID(),
		Name:        name,
		ParentID:    parentID,
		CardIDs:     []string{},
		Connections: []Connection{},
		Zoom:        1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.doc.Boards[b.ID] = b
	return b
}

func (s *Store) touch(b *Board) { b.UpdatedAt = s.now() }

// rootID returns the id of a root board (ParentID == ""), preferring the
// oldest one for determinism. Returns "" for a board-less document.
func (s *Store) rootID() string {
	var root *Board
	for _, b := range s.doc.Boards {
		if b.ParentID != "" {
			continue
		}
		if root == nil || b.CreatedAt.Before(root.CreatedAt) {
			root = b
		}
	}
	if root == nil {
		return ""
	}
	return root.ID
}

func removeString(list []string, v string) []string {
	for i, s := range list {
		if s == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
