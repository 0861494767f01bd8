package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/errors"
)

// TreeOptions configures board-tree diagram rendering.
type TreeOptions struct {
	// Detailed includes card and connection counts in board labels.
	Detailed bool
}

// BoardTreeDOT converts the document's board hierarchy to Graphviz DOT
// format. Each board is a node, each parent/child link an edge, and the
// current board is highlighted. The resulting DOT string can be rendered
// with [RenderSVG].
func BoardTreeDOT(s *board.Store, opts TreeOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph boards {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	doc := s.Document()
	for _, b := range boardsInOrder(doc) {
		label := b.Name
		if opts.Detailed {
			label = fmt.Sprintf("%s\n%d cards, %d connections", b.Name, len(s.CardsOn(b.ID)), len(b.Connections))
		}
		attrs := fmt.Sprintf("label=%q", label)
		if b.ID == doc.CurrentBoardID {
			attrs += `, fillcolor="#ede9fe"`
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, attrs)
	}

	buf.WriteString("\n")
	for _, b := range boardsInOrder(doc) {
		if b.ParentID != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", b.ParentID, b.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// boardsInOrder returns boards sorted by creation time then id, so DOT
// output is deterministic.
func boardsInOrder(doc *board.Document) []*board.Board {
	out := make([]*board.Board, 0, len(doc.Boards))
	for _, b := range doc.Boards {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the diagram scales to
// its container instead of carrying Graphviz's absolute point sizes.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
