package board

import (
	"testing"
	"time"

	"github.com/matzehuels/pinboard/pkg/errors"
)

func TestNewStore(t *testing.T) {
	s := NewStore()

	root := s.CurrentBoard()
	if root == nil {
		t.Fatal("no current board after NewStore")
	}
	if root.Name != RootBoardName {
		t.Errorf("root name = %q, want %q", root.Name, RootBoardName)
	}
	if root.ParentID != "" {
		t.Errorf("root parent = %q, want empty", root.ParentID)
	}
	if root.Zoom != 1 {
		t.Errorf("root zoom = %v, want 1", root.Zoom)
	}
}

func TestCreateCard(t *testing.T) {
	tests := []struct {
		name  string
		typ   CardType
		opts  []CardOption
		check func(t *testing.T, c *Card)
	}{
		{
			name: "NoteDefaults",
			typ:  TypeNote,
			check: func(t *testing.T, c *Card) {
				if c.Width != 200 || c.Height != 120 {
					t.Errorf("size = %vx%v, want 200x120", c.Width, c.Height)
				}
				if c.Color == "" {
					t.Error("no default color applied")
				}
			},
		},
		{
			name: "OverridesBeatDefaults",
			typ:  TypeNote,
			opts: []CardOption{WithColor("#ff0000"), WithSize(300, 80), WithContent("hello")},
			check: func(t *testing.T, c *Card) {
				if c.Color != "#ff0000" || c.Width != 300 || c.Height != 80 {
					t.Errorf("overrides not applied: %+v", c)
				}
				if c.Content != "hello" {
					t.Errorf("content = %q", c.Content)
				}
			},
		},
		{
			name: "TodoStartsEmpty",
			typ:  TypeTodo,
			check: func(t *testing.T, c *Card) {
				if c.Items == nil || len(c.Items) != 0 {
					t.Errorf("items = %v, want empty non-nil", c.Items)
				}
			},
		},
		{
			name: "ColumnStartsEmpty",
			typ:  TypeColumn,
			check: func(t *testing.T, c *Card) {
				if c.ChildCardIDs == nil || len(c.ChildCardIDs) != 0 {
					t.Errorf("children = %v, want empty non-nil", c.ChildCardIDs)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			c := s.CreateCard(tt.typ, 10, 20, tt.opts...)
			if c == nil {
				t.Fatal("CreateCard returned nil")
			}
			if c.X != 10 || c.Y != 20 {
				t.Errorf("position = (%v, %v), want (10, 20)", c.X, c.Y)
			}
			if c.BoardID != s.CurrentBoard().ID {
				t.Error("card not owned by current board")
			}
			if !containsString(s.CurrentBoard().CardIDs, c.ID) {
				t.Error("card id not in board card list")
			}
			tt.check(t, c)
		})
	}
}

func TestCreateCardUnknownType(t *testing.T) {
	s := NewStore()
	if c := s.CreateCard(CardType("sticker"), 0, 0); c != nil {
		t.Errorf("CreateCard with unknown type = %+v, want nil", c)
	}
}

func TestZIndexMonotonic(t *testing.T) {
	s := NewStore()

	a := s.CreateCard(TypeNote, 0, 0)
	b := s.CreateCard(TypeNote, 0, 0)
	if b.ZIndex <= a.ZIndex {
		t.Fatalf("z-index not increasing: %d then %d", a.ZIndex, b.ZIndex)
	}

	s.BringToFront(a.ID)
	if a.ZIndex <= b.ZIndex {
		t.Errorf("BringToFront left a (%d) below b (%d)", a.ZIndex, b.ZIndex)
	}

	s.SendToBack(a.ID)
	if a.ZIndex != backZIndex {
		t.Errorf("SendToBack z = %d, want %d", a.ZIndex, backZIndex)
	}

	// The counter never reuses values, even after SendToBack.
	c := s.CreateCard(TypeNote, 0, 0)
	if c.ZIndex <= b.ZIndex {
		t.Errorf("counter regressed: %d after %d", c.ZIndex, b.ZIndex)
	}
}

func TestBoardCardCreatesSubBoard(t *testing.T) {
	s := NewStore()
	root := s.CurrentBoard()

	c := s.CreateCard(TypeBoard, 0, 0, WithName("Project"))
	if c.LinkedBoardID == "" {
		t.Fatal("board card has no linked board")
	}

	sub, ok := s.Board(c.LinkedBoardID)
	if !ok {
		t.Fatal("linked board record missing")
	}
	if sub.ParentID != root.ID {
		t.Errorf("sub-board parent = %q, want root", sub.ParentID)
	}
	if sub.Name != "Project" {
		t.Errorf("sub-board name = %q, want Project", sub.Name)
	}
	if len(sub.CardIDs) != 0 {
		t.Errorf("new sub-board has %d cards, want 0", len(sub.CardIDs))
	}
}

func TestUpdateCard(t *testing.T) {
	s := NewStore()
	c := s.CreateCard(TypeNote, 0, 0)
	before := c.UpdatedAt

	s.UpdateCard(c.ID, func(c *Card) { c.Content = "edited" })
	if c.Content != "edited" {
		t.Errorf("content = %q", c.Content)
	}
	if c.UpdatedAt.Before(before) {
		t.Error("UpdatedAt not refreshed")
	}

	// Unknown id must be a silent no-op.
	s.UpdateCard("missing", func(c *Card) { t.Error("mutator called for unknown id") })
}

func TestUpdateCardTouchesOwningBoard(t *testing.T) {
	s := NewStore()
	c := s.CreateCard(TypeNote, 0, 0)

	// A card edit must move the board's UpdatedAt, since consumers key
	// cached renders on it.
	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return stamp }
	s.UpdateCard(c.ID, func(card *Card) { card.Content = "edited" })

	if got := s.CurrentBoard().UpdatedAt; !got.Equal(stamp) {
		t.Errorf("board UpdatedAt = %v, want %v", got, stamp)
	}
}

func TestDeleteCardStripsConnections(t *testing.T) {
	s := NewStore()
	a := s.CreateCard(TypeNote, 0, 0)
	b := s.CreateCard(TypeNote, 300, 0)
	c := s.CreateCard(TypeNote, 600, 0)

	if _, err := s.Connect(a.ID, b.ID, AnchorRight, AnchorLeft, "#888"); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err := s.Connect(b.ID, c.ID, AnchorRight, AnchorLeft, "#888"); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	s.DeleteCard(b.ID)

	if _, ok := s.Card(b.ID); ok {
		t.Error("card not deleted")
	}
	if got := len(s.CurrentBoard().Connections); got != 0 {
		t.Errorf("%d connections survive, want 0", got)
	}

	// Unknown id is a no-op, not a panic.
	s.DeleteCard("missing")
}

func TestDeleteCardCascadesThroughSubBoards(t *testing.T) {
	s := NewStore()

	// Three levels: root board-card -> sub with 2 notes + board-card
	// -> sub-sub with 3 notes and a connection.
	top := s.CreateCard(TypeBoard, 0, 0, WithName("L1"))
	s.NavigateTo(top.LinkedBoardID)
	s.CreateCard(TypeNote, 0, 0)
	s.CreateCard(TypeNote, 100, 0)
	mid := s.CreateCard(TypeBoard, 200, 0, WithName("L2"))
	s.NavigateTo(mid.LinkedBoardID)
	n1 := s.CreateCard(TypeNote, 0, 0)
	n2 := s.CreateCard(TypeNote, 100, 0)
	s.CreateCard(TypeNote, 200, 0)
	if _, err := s.Connect(n1.ID, n2.ID, AnchorRight, AnchorLeft, ""); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	root := s.PathTo(s.CurrentBoard().ID)[0]
	s.NavigateTo(root.ID)
	s.DeleteCard(top.ID)

	// Only the root board survives, holding nothing.
	if got := len(s.Document().Boards); got != 1 {
		t.Errorf("%d boards survive, want 1", got)
	}
	if got := len(s.Document().Cards); got != 0 {
		t.Errorf("%d cards survive, want 0", got)
	}
	for _, b := range s.Document().Boards {
		if len(b.Connections) != 0 {
			t.Errorf("connections survive on %s", b.Name)
		}
	}
}

func TestDeleteCardWhileViewingDoomedBoard(t *testing.T) {
	s := NewStore()
	root := s.CurrentBoard()
	top := s.CreateCard(TypeBoard, 0, 0)
	s.NavigateTo(top.LinkedBoardID)

	// Deleting the board card from under ourselves must land us back on a
	// board that still exists.
	s.DeleteCard(top.ID)
	if s.CurrentBoard() == nil {
		t.Fatal("current board dangling after cascade")
	}
	if s.CurrentBoard().ID != root.ID {
		t.Errorf("current board = %q, want root", s.CurrentBoard().ID)
	}
}

func TestDuplicateCard(t *testing.T) {
	t.Run("OffsetsAndFreshIdentity", func(t *testing.T) {
		s := NewStore()
		src := s.CreateCard(TypeNote, 50, 60, WithContent("original"))

		dup := s.DuplicateCard(src.ID)
		if dup == nil {
			t.Fatal("DuplicateCard returned nil")
		}
		if dup.ID == src.ID {
			t.Error("duplicate shares id with original")
		}
		if dup.X != 70 || dup.Y != 80 {
			t.Errorf("duplicate at (%v, %v), want (70, 80)", dup.X, dup.Y)
		}
		if dup.Content != "original" {
			t.Errorf("content = %q", dup.Content)
		}
		if dup.ZIndex <= src.ZIndex {
			t.Error("duplicate not stacked above original")
		}
	})

	t.Run("BoardCardGetsEmptySubBoard", func(t *testing.T) {
		s := NewStore()
		src := s.CreateCard(TypeBoard, 0, 0, WithName("Plan"))
		s.NavigateTo(src.LinkedBoardID)
		s.CreateCard(TypeNote, 0, 0)
		s.CreateCard(TypeNote, 50, 0)
		s.NavigateTo(s.PathTo(s.CurrentBoard().ID)[0].ID)

		dup := s.DuplicateCard(src.ID)
		if dup.LinkedBoardID == src.LinkedBoardID {
			t.Fatal("duplicate shares linked board with original")
		}
		sub, ok := s.Board(dup.LinkedBoardID)
		if !ok {
			t.Fatal("duplicate linked board missing")
		}
		if len(sub.CardIDs) != 0 {
			t.Errorf("duplicated sub-board has %d cards, want 0", len(sub.CardIDs))
		}
		if dup.Name != "Plan (copy)" {
			t.Errorf("name = %q, want %q", dup.Name, "Plan (copy)")
		}
	})

	t.Run("ColumnCopiesChildrenAsFreshCards", func(t *testing.T) {
		s := NewStore()
		col := s.CreateCard(TypeColumn, 0, 0)
		child := s.AddChildToColumn(col.ID)
		s.UpdateCard(child.ID, func(c *Card) { c.Content = "task" })

		dup := s.DuplicateCard(col.ID)
		if len(dup.ChildCardIDs) != 1 {
			t.Fatalf("duplicate has %d children, want 1", len(dup.ChildCardIDs))
		}
		if dup.ChildCardIDs[0] == child.ID {
			t.Error("duplicate column owns the original child")
		}
		copyChild, ok := s.Card(dup.ChildCardIDs[0])
		if !ok {
			t.Fatal("copied child missing")
		}
		if copyChild.Content != "task" {
			t.Errorf("copied child content = %q", copyChild.Content)
		}
		if copyChild.InColumn != dup.ID {
			t.Errorf("copied child InColumn = %q, want %q", copyChild.InColumn, dup.ID)
		}
	})

	t.Run("UnknownID", func(t *testing.T) {
		s := NewStore()
		if dup := s.DuplicateCard("missing"); dup != nil {
			t.Errorf("DuplicateCard(missing) = %+v, want nil", dup)
		}
	})
}

func TestConnect(t *testing.T) {
	s := NewStore()
	a := s.CreateCard(TypeNote, 0, 0)
	b := s.CreateCard(TypeNote, 300, 0)

	conn, err := s.Connect(a.ID, b.ID, AnchorRight, AnchorLeft, "#555")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if conn.FromCardID != a.ID || conn.ToCardID != b.ID {
		t.Errorf("endpoints = %q -> %q", conn.FromCardID, conn.ToCardID)
	}

	t.Run("SelfLoopRejected", func(t *testing.T) {
		_, err := s.Connect(a.ID, a.ID, AnchorTop, AnchorBottom, "")
		if !errors.Is(err, errors.ErrCodeSelfConnection) {
			t.Errorf("err = %v, want SELF_CONNECTION", err)
		}
	})

	t.Run("MissingEndpoint", func(t *testing.T) {
		_, err := s.Connect(a.ID, "missing", AnchorTop, AnchorBottom, "")
		if !errors.Is(err, errors.ErrCodeNotFound) {
			t.Errorf("err = %v, want NOT_FOUND", err)
		}
	})

	t.Run("CrossBoardRejected", func(t *testing.T) {
		bc := s.CreateCard(TypeBoard, 0, 200)
		s.NavigateTo(bc.LinkedBoardID)
		other := s.CreateCard(TypeNote, 0, 0)
		_, err := s.Connect(a.ID, other.ID, AnchorRight, AnchorLeft, "")
		if !errors.Is(err, errors.ErrCodeNotFound) {
			t.Errorf("err = %v, want NOT_FOUND", err)
		}
	})
}

func TestDisconnect(t *testing.T) {
	s := NewStore()
	a := s.CreateCard(TypeNote, 0, 0)
	b := s.CreateCard(TypeNote, 300, 0)
	conn, _ := s.Connect(a.ID, b.ID, AnchorRight, AnchorLeft, "")

	s.Disconnect(conn.ID)
	if len(s.CurrentBoard().Connections) != 0 {
		t.Error("connection not removed")
	}
	s.Disconnect("missing") // no-op
}

func TestTodoItems(t *testing.T) {
	s := NewStore()
	todo := s.CreateCard(TypeTodo, 0, 0)

	id := s.AddTodoItem(todo.ID, "write tests")
	if id == "" {
		t.Fatal("AddTodoItem returned empty id")
	}
	if len(todo.Items) != 1 || todo.Items[0].Text != "write tests" {
		t.Fatalf("items = %+v", todo.Items)
	}

	s.ToggleTodoItem(todo.ID, id)
	if !todo.Items[0].Done {
		t.Error("item not toggled")
	}

	s.RemoveTodoItem(todo.ID, id)
	if len(todo.Items) != 0 {
		t.Error("item not removed")
	}

	// Non-todo cards ignore item operations.
	note := s.CreateCard(TypeNote, 0, 0)
	if got := s.AddTodoItem(note.ID, "nope"); got != "" {
		t.Errorf("AddTodoItem on note = %q, want empty", got)
	}
}

func TestReplace(t *testing.T) {
	t.Run("ReseedsZCounter", func(t *testing.T) {
		s := NewStore()
		doc := NewDocument()
		b := &Board{ID: "b1", Name: "Imported", CardIDs: []string{"c1"}, Connections: []Connection{}, Zoom: 1}
		doc.Boards["b1"] = b
		doc.Cards["c1"] = &Card{ID: "c1", Type: TypeNote, BoardID: "b1", ZIndex: 500}
		doc.CurrentBoardID = "b1"

		s.Replace(doc)
		c := s.CreateCard(TypeNote, 0, 0)
		if c.ZIndex <= 500 {
			t.Errorf("z-index %d not reseeded past imported max 500", c.ZIndex)
		}
	})

	t.Run("EmptyDocumentGetsRoot", func(t *testing.T) {
		s := NewStore()
		s.Replace(NewDocument())
		if s.CurrentBoard() == nil {
			t.Fatal("no current board after replacing with empty document")
		}
		if s.CurrentBoard().Name != RootBoardName {
			t.Errorf("root name = %q", s.CurrentBoard().Name)
		}
	})

	t.Run("InvalidCurrentFallsBackToRoot", func(t *testing.T) {
		s := NewStore()
		doc := NewDocument()
		doc.Boards["r"] = &Board{ID: "r", Name: "Root", CardIDs: []string{}, Connections: []Connection{}, Zoom: 1}
		doc.CurrentBoardID = "gone"
		s.Replace(doc)
		if s.CurrentBoard() == nil || s.CurrentBoard().ID != "r" {
			t.Error("current board did not fall back to root")
		}
	})
}

func TestBBox(t *testing.T) {
	s := NewStore()
	s.CreateCard(TypeNote, 0, 0, WithSize(100, 100))
	s.CreateCard(TypeNote, 200, 300, WithSize(100, 100))

	box := s.BBox(s.CurrentBoard().ID)
	if box.X != 0 || box.Y != 0 || box.W != 300 || box.H != 400 {
		t.Errorf("bbox = %+v, want {0 0 300 400}", box)
	}
}

func TestDocumentCloneIsIndependent(t *testing.T) {
	s := NewStore()
	todo := s.CreateCard(TypeTodo, 0, 0)
	s.AddTodoItem(todo.ID, "first")

	snap := s.Document().Clone()
	if !snap.Equal(s.Document()) {
		t.Fatal("clone not equal to source")
	}

	s.AddTodoItem(todo.ID, "second")
	s.CreateCard(TypeNote, 0, 0)

	if snap.Equal(s.Document()) {
		t.Fatal("clone tracked later mutations")
	}
	snapTodo := snap.Cards[todo.ID]
	if len(snapTodo.Items) != 1 {
		t.Errorf("snapshot items = %d, want 1", len(snapTodo.Items))
	}
}
