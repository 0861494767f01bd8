// Package render produces static images of boards: raster snapshots of a
// single board's canvas, and Graphviz diagrams of the board tree.
package render

import (
	"bytes"
	"image"
	"image/png"
	"sort"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/route"
)

// SnapshotOptions configures board snapshot rendering.
type SnapshotOptions struct {
	// Padding is the margin around the content bounding box, canvas units.
	Padding float64

	// Scale is pixels per canvas unit. 2.0 gives a 2x image for
	// high-DPI displays.
	Scale float64
}

// Palette values for the two board themes.
type palette struct {
	background string
	cardStroke string
	text       string
	connection string
	childFill  string
}

var lightPalette = palette{
	background: "#f9fafb",
	cardStroke: "#9ca3af",
	text:       "#111827",
	connection: "#6b7280",
	childFill:  "#ffffff",
}

var darkPalette = palette{
	background: "#111827",
	cardStroke: "#4b5563",
	text:       "#f9fafb",
	connection: "#9ca3af",
	childFill:  "#1f2937",
}

const (
	cornerRadius    = 8.0
	columnHeaderH   = 34.0
	childRowH       = 40.0
	childRowGap     = 8.0
	childInset      = 10.0
	labelInsetX     = 12.0
	labelInsetY     = 22.0
	emptyBoardSpanW = 400.0
	emptyBoardSpanH = 300.0
)

// Snapshot renders one board to an image. The image is sized to the board's
// content bounding box plus padding; an empty board renders as a blank
// canvas of a nominal size.
func Snapshot(s *board.Store, boardID string, opts SnapshotOptions) (image.Image, error) {
	b, ok := s.Board(boardID)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "board %q not found", boardID)
	}
	if opts.Padding <= 0 {
		opts.Padding = 40
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	bbox := s.BBox(boardID)
	if bbox.W == 0 && bbox.H == 0 {
		bbox = geom.Rect{W: emptyBoardSpanW, H: emptyBoardSpanH}
	}

	w := int((bbox.W + 2*opts.Padding) * opts.Scale)
	h := int((bbox.H + 2*opts.Padding) * opts.Scale)
	dc := gg.NewContext(w, h)
	dc.SetFontFace(basicfont.Face7x13)

	pal := lightPalette
	if s.Document().DarkMode {
		pal = darkPalette
	}
	dc.SetHexColor(pal.background)
	dc.Clear()

	// Map canvas coordinates into the image.
	dc.Scale(opts.Scale, opts.Scale)
	dc.Translate(opts.Padding-bbox.X, opts.Padding-bbox.Y)

	cards := s.FreeCards(b.ID)
	sort.Slice(cards, func(i, j int) bool { return cards[i].ZIndex < cards[j].ZIndex })

	drawConnections(dc, s, b, pal)
	for _, c := range cards {
		drawCard(dc, s, c, pal)
	}
	return dc.Image(), nil
}

// SnapshotPNG renders one board and encodes it as PNG bytes.
func SnapshotPNG(s *board.Store, boardID string, opts SnapshotOptions) ([]byte, error) {
	img, err := Snapshot(s, boardID, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawCard(dc *gg.Context, s *board.Store, c *board.Card, pal palette) {
	w, h := c.Size()

	dc.SetHexColor(c.Color)
	dc.DrawRoundedRectangle(c.X, c.Y, w, h, cornerRadius)
	dc.Fill()
	dc.SetHexColor(pal.cardStroke)
	dc.SetLineWidth(1.5)
	dc.DrawRoundedRectangle(c.X, c.Y, w, h, cornerRadius)
	dc.Stroke()

	dc.SetHexColor(pal.text)
	dc.DrawString(truncate(c.DisplayTitle(), w-2*labelInsetX), c.X+labelInsetX, c.Y+labelInsetY)

	switch c.Type {
	case board.TypeColumn:
		drawColumnChildren(dc, s, c, pal)
	case board.TypeTodo:
		drawTodoItems(dc, c, pal)
	}
}

func drawColumnChildren(dc *gg.Context, s *board.Store, col *board.Card, pal palette) {
	w, _ := col.Size()
	y := col.Y + columnHeaderH
	for _, childID := range col.ChildCardIDs {
		child, ok := s.Card(childID)
		if !ok {
			continue
		}
		dc.SetHexColor(pal.childFill)
		dc.DrawRoundedRectangle(col.X+childInset, y, w-2*childInset, childRowH, cornerRadius/2)
		dc.Fill()
		dc.SetHexColor(pal.text)
		dc.DrawString(truncate(child.DisplayTitle(), w-2*childInset-2*labelInsetX), col.X+childInset+labelInsetX, y+labelInsetY)
		y += childRowH + childRowGap
	}
}

func drawTodoItems(dc *gg.Context, c *board.Card, pal palette) {
	w, h := c.Size()
	y := c.Y + columnHeaderH
	dc.SetHexColor(pal.text)
	for _, item := range c.Items {
		if y+labelInsetY > c.Y+h {
			break
		}
		mark := "[ ] "
		if item.Done {
			mark = "[x] "
		}
		dc.DrawString(truncate(mark+item.Text, w-2*labelInsetX), c.X+labelInsetX, y+labelInsetY)
		y += 18
	}
}

func drawConnections(dc *gg.Context, s *board.Store, b *board.Board, pal palette) {
	dc.SetLineWidth(2)
	for _, conn := range b.Connections {
		from, okF := s.Card(conn.FromCardID)
		to, okT := s.Card(conn.ToCardID)
		if !okF || !okT {
			continue
		}
		fw, fh := from.Size()
		tw, th := to.Size()
		curve := route.BuildCurve(
			geom.Rect{X: from.X, Y: from.Y, W: fw, H: fh}, conn.FromAnchor,
			geom.Rect{X: to.X, Y: to.Y, W: tw, H: th}, conn.ToAnchor,
		)

		color := conn.Color
		if color == "" {
			color = pal.connection
		}
		dc.SetHexColor(color)
		pts := curve.Flatten(32)
		dc.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
		dc.DrawCircle(curve.End.X, curve.End.Y, 4)
		dc.Fill()
	}
}

// truncate trims a label to fit a width under the fixed 7px glyph advance,
// with an ellipsis when anything was cut.
func truncate(text string, width float64) string {
	max := int(width / 7)
	if max < 1 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
