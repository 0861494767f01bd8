package board

import (
	"time"
)

// CardType identifies a card variant. The set is closed: every switch over
// CardType in this package handles all six variants, so adding a variant
// means visiting each of those switches.
type CardType string

// Card variants.
const (
	TypeNote   CardType = "note"
	TypeTodo   CardType = "todo"
	TypeImage  CardType = "image"
	TypeLink   CardType = "link"
	TypeColumn CardType = "column"
	TypeBoard  CardType = "board"
)

// Valid reports whether t is one of the known card variants.
func (t CardType) Valid() bool {
	switch t {
	case TypeNote, TypeTodo, TypeImage, TypeLink, TypeColumn, TypeBoard:
		return true
	default:
		return false
	}
}

// TodoItem is one checklist row of a todo card.
type TodoItem struct {
	ID   string `json:"id" bson:"id"`
	Text string `json:"text" bson:"text"`
	Done bool   `json:"done" bson:"done"`
}

// Card is a typed, positioned visual entity on a board.
//
// The struct is a tagged union: Type selects which of the variant fields are
// meaningful, and all variant behavior is implemented by switching on Type.
// Common fields are always valid. X/Y/Width/Height are in canvas units.
//
// InColumn is a weak back-reference: it names the column currently holding
// this card so lookups and removals are cheap, but ownership is always the
// column's ChildCardIDs list (and, for free cards, the board's CardIDs list).
// A card appears in exactly one of those two lists, never both.
type Card struct {
	ID        string    `json:"id" bson:"id"`
	Type      CardType  `json:"type" bson:"type"`
	BoardID   string    `json:"boardId" bson:"boardId"`
	X         float64   `json:"x" bson:"x"`
	Y         float64   `json:"y" bson:"y"`
	Color     string    `json:"color" bson:"color"`
	Width     float64   `json:"width" bson:"width"`
	Height    float64   `json:"height,omitempty" bson:"height,omitempty"`
	ZIndex    int       `json:"zIndex" bson:"zIndex"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`

	// note
	Content string `json:"content,omitempty" bson:"content,omitempty"`

	// todo (Title shared with link and column)
	Title string     `json:"title,omitempty" bson:"title,omitempty"`
	Items []TodoItem `json:"items,omitempty" bson:"items,omitempty"`

	// image
	ImageData string `json:"imageData,omitempty" bson:"imageData,omitempty"`
	Caption   string `json:"caption,omitempty" bson:"caption,omitempty"`

	// link
	URL         string `json:"url,omitempty" bson:"url,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`

	// column
	ChildCardIDs []string `json:"childCardIds,omitempty" bson:"childCardIds,omitempty"`

	// board
	Name          string `json:"name,omitempty" bson:"name,omitempty"`
	LinkedBoardID string `json:"linkedBoardId,omitempty" bson:"linkedBoardId,omitempty"`
	CoverImage    string `json:"coverImage,omitempty" bson:"coverImage,omitempty"`

	// Containment back-reference (weak, see type doc).
	InColumn string `json:"inColumn,omitempty" bson:"inColumn,omitempty"`
}

// Default card dimensions per variant, in canvas units.
// Width/height floors for resizing live in pkg/interact.
var defaultSizes = map[CardType][2]float64{
	TypeNote:   {200, 120},
	TypeTodo:   {220, 160},
	TypeImage:  {200, 160},
	TypeLink:   {220, 110},
	TypeColumn: {260, 320},
	TypeBoard:  {180, 120},
}

// Default card colors per variant.
var defaultColors = map[CardType]string{
	TypeNote:   "#fef3c7",
	TypeTodo:   "#dbeafe",
	TypeImage:  "#f3f4f6",
	TypeLink:   "#dcfce7",
	TypeColumn: "#e5e7eb",
	TypeBoard:  "#ede9fe",
}

// applyDefaults fills in the variant defaults a freshly created card needs.
// Caller overrides are applied afterwards, so everything here is overridable.
func applyDefaults(c *Card) {
	size := defaultSizes[c.Type]
	c.Width = size[0]
	c.Height = size[1]
	c.Color = defaultColors[c.Type]

	switch c.Type {
	case TypeNote:
		c.Content = ""
	case TypeTodo:
		c.Title = "Todo"
		c.Items = []TodoItem{}
	case TypeImage:
		c.ImageData = ""
	case TypeLink:
		c.Title = "Link"
	case TypeColumn:
		c.Title = "Column"
		c.ChildCardIDs = []string{}
	case TypeBoard:
		c.Name = "New Board"
	}
}

// Size returns the card's rendered dimensions, falling back to the variant
// default where Width or Height is unset.
func (c *Card) Size() (w, h float64) {
	def := defaultSizes[c.Type]
	w, h = c.Width, c.Height
	if w <= 0 {
		w = def[0]
	}
	if h <= 0 {
		h = def[1]
	}
	return w, h
}

// DisplayTitle returns the human-facing label for the card, whichever
// variant field carries it.
func (c *Card) DisplayTitle() string {
	switch c.Type {
	case TypeNote:
		return firstLine(c.Content)
	case TypeTodo, TypeLink, TypeColumn:
		return c.Title
	case TypeImage:
		return c.Caption
	case TypeBoard:
		return c.Name
	default:
		return ""
	}
}

// Clone returns a deep copy of the card.
func (c *Card) Clone() *Card {
	out := *c
	if c.Items != nil {
		out.Items = make([]TodoItem, len(c.Items))
		copy(out.Items, c.Items)
	}
	if c.ChildCardIDs != nil {
		out.ChildCardIDs = make([]string, len(c.ChildCardIDs))
		copy(out.ChildCardIDs, c.ChildCardIDs)
	}
	return &out
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
