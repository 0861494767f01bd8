package board

// Board navigation. Boards form a tree via ParentID; ParentID is assigned
// once at creation and a board is never reparented, so path walks terminate
// structurally. The visited set below is belt-and-braces against corrupted
// imports.

// NavigateTo switches the current board. The outgoing board's pan/zoom stay
// in its own record (SetView writes them there live), so switching is just a
// pointer move; the destination's stored view is whatever its record holds,
// identity by default. Unknown ids are a no-op. Returns whether navigation
// happened.
func (s *Store) NavigateTo(boardID string) bool {
	if _, ok := s.doc.Boards[boardID]; !ok {
		return false
	}
	s.doc.CurrentBoardID = boardID
	return true
}

// SetView stores the current board's live pan/zoom. View writes are not
// checkpointed; they ride along in whatever snapshot is taken next.
func (s *Store) SetView(panX, panY, zoom float64) {
	b := s.CurrentBoard()
	if b == nil {
		return
	}
	b.PanX = panX
	b.PanY = panY
	b.Zoom = zoom
}

// SetBoardName renames a board. A board card linked to it keeps its own Name
// field; the two are edited together by the caller when that is wanted.
func (s *Store) SetBoardName(boardID, name string) {
	b, ok := s.doc.Boards[boardID]
	if !ok {
		return
	}
	b.Name = name
	s.touch(b)
}

// PathTo walks ParentID links from the board to the root and returns the
// breadcrumb sequence root-first. Unknown ids yield nil.
func (s *Store) PathTo(boardID string) []*Board {
	b, ok := s.doc.Boards[boardID]
	if !ok {
		return nil
	}

	var rev []*Board
	visited := make(map[string]bool)
	for b != nil && !visited[b.ID] {
		visited[b.ID] = true
		rev = append(rev, b)
		if b.ParentID == "" {
			break
		}
		b = s.doc.Boards[b.ParentID]
	}

	out := make([]*Board, len(rev))
	for i, bb := range rev {
		out[len(rev)-1-i] = bb
	}
	return out
}

// SubBoards returns the boards whose ParentID is the given board, in card
// order of the parent's board cards. Board records unreachable through a
// board card are appended last.
func (s *Store) SubBoards(boardID string) []*Board {
	var out []*Board
	seen := make(map[string]bool)
	for _, c := range s.FreeCards(boardID) {
		if c.Type != TypeBoard {
			continue
		}
		if sub, ok := s.doc.Boards[c.LinkedBoardID]; ok {
			out = append(out, sub)
			seen[sub.ID] = true
		}
	}
	for _, b := range s.doc.Boards {
		if b.ParentID == boardID && !seen[b.ID] {
			out = append(out, b)
		}
	}
	return out
}
