package board

// Containment operations. Columns own their contained cards through
// ChildCardIDs; a contained card leaves the board's free list and carries the
// InColumn back-reference for the duration. Contained cards have no
// independent existence: removing one from its column deletes it.

// AddChildToColumn creates a new note card inside the column and appends it
// to the column's child list. Returns nil if columnID is not a column card.
func (s *Store) AddChildToColumn(columnID string) *Card {
	col, ok := s.doc.Cards[columnID]
	if !ok || col.Type != TypeColumn {
		return nil
	}

	now := s.now()
	c := &Card{
		ID:        s.newID(),
		Type:      TypeNote,
		BoardID:   col.BoardID,
		X:         col.X,
		Y:         col.Y,
		ZIndex:    s.nextZ(),
		CreatedAt: now,
		UpdatedAt: now,
		InColumn:  columnID,
	}
	applyDefaults(c)
	c.InColumn = columnID

	s.doc.Cards[c.ID] = c
	col.ChildCardIDs = append(col.ChildCardIDs, c.ID)
	col.UpdatedAt = now
	return c
}

// RemoveChildFromColumn strips the child from the column's list and deletes
// the card entirely. Unknown ids are a no-op.
func (s *Store) RemoveChildFromColumn(columnID, childID string) {
	col, ok := s.doc.Cards[columnID]
	if !ok || col.Type != TypeColumn {
		return
	}
	if !containsString(col.ChildCardIDs, childID) {
		return
	}
	col.ChildCardIDs = removeString(col.ChildCardIDs, childID)
	col.UpdatedAt = s.now()

	if child, ok := s.doc.Cards[childID]; ok {
		child.InColumn = "" // already detached from the list above
		s.deleteCardTree(child)
	}
}

// ReorderChild moves a contained card to targetIndex in the target column's
// list, removing it from the source column first. Source and target may be
// the same column (pure reorder) or different columns (cross-column move).
// targetIndex is clamped to the list bounds. Invalid ids are a no-op.
func (s *Store) ReorderChild(targetColumnID, childID, sourceColumnID string, targetIndex int) {
	target, ok := s.doc.Cards[targetColumnID]
	if !ok || target.Type != TypeColumn {
		return
	}
	source, ok := s.doc.Cards[sourceColumnID]
	if !ok || source.Type != TypeColumn {
		return
	}
	child, ok := s.doc.Cards[childID]
	if !ok || !containsString(source.ChildCardIDs, childID) {
		return
	}

	source.ChildCardIDs = removeString(source.ChildCardIDs, childID)

	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(target.ChildCardIDs) {
		targetIndex = len(target.ChildCardIDs)
	}
	target.ChildCardIDs = append(target.ChildCardIDs, "")
	copy(target.ChildCardIDs[targetIndex+1:], target.ChildCardIDs[targetIndex:])
	target.ChildCardIDs[targetIndex] = childID

	child.InColumn = targetColumnID

	now := s.now()
	source.UpdatedAt = now
	target.UpdatedAt = now
	child.UpdatedAt = now
}

// AbsorbIntoColumn moves a free note card into the column: the card leaves
// its board's free list, joins the column's child list, and gains the
// back-reference. Only free (non-contained) note cards on the column's board
// can be absorbed. Returns whether the card was absorbed.
func (s *Store) AbsorbIntoColumn(cardID, columnID string) bool {
	c, ok := s.doc.Cards[cardID]
	if !ok || c.Type != TypeNote || c.InColumn != "" {
		return false
	}
	col, ok := s.doc.Cards[columnID]
	if !ok || col.Type != TypeColumn || col.BoardID != c.BoardID {
		return false
	}

	if b, ok := s.doc.Boards[c.BoardID]; ok {
		b.CardIDs = removeString(b.CardIDs, cardID)
		s.touch(b)
	}
	col.ChildCardIDs = append(col.ChildCardIDs, cardID)
	c.InColumn = columnID

	now := s.now()
	col.UpdatedAt = now
	c.UpdatedAt = now
	return true
}

// DetachFromColumn is the inverse of absorption: the card leaves its column
// and returns to free-floating status at (x, y). No-op for cards that are
// not contained.
func (s *Store) DetachFromColumn(cardID string, x, y float64) {
	c, ok := s.doc.Cards[cardID]
	if !ok || c.InColumn == "" {
		return
	}
	if col, ok := s.doc.Cards[c.InColumn]; ok {
		col.ChildCardIDs = removeString(col.ChildCardIDs, cardID)
		col.UpdatedAt = s.now()
	}
	c.InColumn = ""
	c.X = x
	c.Y = y
	c.UpdatedAt = s.now()

	if b, ok := s.doc.Boards[c.BoardID]; ok {
		b.CardIDs = append(b.CardIDs, cardID)
		s.touch(b)
	}
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
