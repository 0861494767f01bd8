// Package route computes connection geometry between cards.
//
// Connections are rendered as cubic Bezier curves between anchor points on
// the card edges. The router is pure geometry: it knows nothing about boards
// or documents, only rectangles and anchors.
package route

import (
	"math"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/geom"
)

// Tension bounds for the control-point offset. The offset scales with the
// endpoint distance so short connections stay tight and long ones sweep.
const (
	minTension    = 40.0
	maxTension    = 250.0
	tensionFactor = 0.4
)

// Curve is a cubic Bezier in canvas coordinates.
type Curve struct {
	Start geom.Point
	C1    geom.Point
	C2    geom.Point
	End   geom.Point
}

// AnchorPoint returns the midpoint of the rectangle edge named by the anchor.
// Invalid anchors fall back to the rectangle center.
func AnchorPoint(r geom.Rect, a board.Anchor) geom.Point {
	switch a {
	case board.AnchorTop:
		return geom.Point{X: r.X + r.W/2, Y: r.Y}
	case board.AnchorBottom:
		return geom.Point{X: r.X + r.W/2, Y: r.Y + r.H}
	case board.AnchorLeft:
		return geom.Point{X: r.X, Y: r.Y + r.H/2}
	case board.AnchorRight:
		return geom.Point{X: r.X + r.W, Y: r.Y + r.H/2}
	default:
		return r.Center()
	}
}

// anchorNormal is the outward unit direction of an anchor's edge.
func anchorNormal(a board.Anchor) geom.Point {
	switch a {
	case board.AnchorTop:
		return geom.Point{Y: -1}
	case board.AnchorBottom:
		return geom.Point{Y: 1}
	case board.AnchorLeft:
		return geom.Point{X: -1}
	default:
		return geom.Point{X: 1}
	}
}

// BuildCurve routes a connection between two card rectangles. Each control
// point extends outward from its anchor edge by a tension proportional to the
// endpoint distance, clamped so curves neither collapse nor balloon.
func BuildCurve(from geom.Rect, fromAnchor board.Anchor, to geom.Rect, toAnchor board.Anchor) Curve {
	start := AnchorPoint(from, fromAnchor)
	end := AnchorPoint(to, toAnchor)

	tension := geom.Clamp(start.Dist(end)*tensionFactor, minTension, maxTension)

	return Curve{
		Start: start,
		C1:    start.Add(anchorNormal(fromAnchor).Scale(tension)),
		C2:    end.Add(anchorNormal(toAnchor).Scale(tension)),
		End:   end,
	}
}

// NearestAnchor picks the card edge whose normal best matches the vector
// from the rectangle center to the given point. Top or bottom win when the
// point is displaced more vertically than horizontally, left or right
// otherwise; ties go to the horizontal edges.
func NearestAnchor(r geom.Rect, p geom.Point) board.Anchor {
	c := r.Center()
	dx := p.X - c.X
	dy := p.Y - c.Y

	if math.Abs(dy) > math.Abs(dx) {
		if dy < 0 {
			return board.AnchorTop
		}
		return board.AnchorBottom
	}
	if dx < 0 {
		return board.AnchorLeft
	}
	return board.AnchorRight
}

// At evaluates the curve at t in [0, 1].
func (c Curve) At(t float64) geom.Point {
	u := 1 - t
	return geom.Point{
		X: u*u*u*c.Start.X + 3*u*u*t*c.C1.X + 3*u*t*t*c.C2.X + t*t*t*c.End.X,
		Y: u*u*u*c.Start.Y + 3*u*u*t*c.C1.Y + 3*u*t*t*c.C2.Y + t*t*t*c.End.Y,
	}
}

// Midpoint is the curve point at t = 0.5, where connection labels and delete
// handles sit.
func (c Curve) Midpoint() geom.Point { return c.At(0.5) }

// Flatten samples the curve into n+1 polyline points for renderers that
// cannot draw Beziers directly. n below 1 yields the two endpoints.
func (c Curve) Flatten(n int) []geom.Point {
	if n < 1 {
		return []geom.Point{c.Start, c.End}
	}
	pts := make([]geom.Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = c.At(float64(i) / float64(n))
	}
	return pts
}

// DistanceTo returns the shortest distance from p to the flattened curve,
// used for click hit-testing on connections.
func (c Curve) DistanceTo(p geom.Point) float64 {
	pts := c.Flatten(24)
	best := math.Inf(1)
	for i := 0; i < len(pts)-1; i++ {
		if d := distToSegment(p, pts[i], pts[i+1]); d < best {
			best = d
		}
	}
	return best
}

func distToSegment(p, a, b geom.Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := geom.Clamp(((p.X-a.X)*ab.X+(p.Y-a.Y)*ab.Y)/lenSq, 0, 1)
	return p.Dist(a.Add(ab.Scale(t)))
}
