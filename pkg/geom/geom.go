// Package geom provides the coordinate math for the infinite canvas.
//
// All functions are pure: they map between screen space (pixels, origin at the
// viewport's top-left) and canvas space (the board's own coordinate system),
// test rectangle overlap for marquee selection, and compute pan/zoom values
// that keep a focal point stable or fit content into a viewport.
//
// Screen and canvas space are related by
//
//	screen = canvas*zoom + pan + origin
//
// so a canvas point is recovered with [ScreenToCanvas]. Nothing in this
// package holds state; callers own pan and zoom.
package geom

import "math"

// Zoom limits for interactive zooming ([ZoomAround]).
const (
	MinZoom = 0.1
	MaxZoom = 3.0
)

// Zoom limits for fit-to-content ([FitZoom]). Tighter than the interactive
// range so "fit" never produces an unreadably small or pointlessly large view.
const (
	MinFitZoom = 0.2
	MaxFitZoom = 1.5
)

// Point is a position in either screen or canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p minus q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p with both coordinates multiplied by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned rectangle. W and H are never negative for rects
// produced by this package; use [NormalizedRect] to sanitize corner pairs.
type Rect struct {
	X, Y, W, H float64
}

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Contains reports whether p lies inside r. Points on the left/top edge are
// inside, points on the right/bottom edge are outside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// NormalizedRect builds a Rect from two opposite corners in any order.
func NormalizedRect(a, b Point) Rect {
	return Rect{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(a.X - b.X),
		H: math.Abs(a.Y - b.Y),
	}
}

// Union returns the smallest rectangle covering both r and s.
func Union(r, s Rect) Rect {
	minX := math.Min(r.X, s.X)
	minY := math.Min(r.Y, s.Y)
	maxX := math.Max(r.X+r.W, s.X+s.W)
	maxY := math.Max(r.Y+r.H, s.Y+s.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// ScreenToCanvas converts a screen-space point to canvas space given the
// viewport origin, the current pan offset, and the zoom factor.
func ScreenToCanvas(screen, origin, pan Point, zoom float64) Point {
	return Point{
		X: (screen.X - origin.X - pan.X) / zoom,
		Y: (screen.Y - origin.Y - pan.Y) / zoom,
	}
}

// CanvasToScreen is the inverse of [ScreenToCanvas].
func CanvasToScreen(canvas, origin, pan Point, zoom float64) Point {
	return Point{
		X: canvas.X*zoom + pan.X + origin.X,
		Y: canvas.Y*zoom + pan.Y + origin.Y,
	}
}

// RectsOverlap reports whether a and b overlap. Rectangles that merely touch
// along an edge do not overlap; the comparison is strict on all four
// separating axes, which is what marquee selection expects.
func RectsOverlap(a, b Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// ZoomAround computes the pan that keeps the canvas point under focal (a
// screen-space point relative to the viewport origin) stationary while the
// zoom changes from oldZoom to newZoom. newZoom is clamped to
// [MinZoom, MaxZoom]; the clamped value is returned alongside the new pan.
func ZoomAround(oldZoom, newZoom float64, focal, pan Point) (Point, float64) {
	newZoom = Clamp(newZoom, MinZoom, MaxZoom)
	canvas := Point{
		X: (focal.X - pan.X) / oldZoom,
		Y: (focal.Y - pan.Y) / oldZoom,
	}
	newPan := Point{
		X: focal.X - canvas.X*newZoom,
		Y: focal.Y - canvas.Y*newZoom,
	}
	return newPan, newZoom
}

// FitZoom computes a zoom and pan that fit bbox (the canvas-space bounding
// box of all content), expanded by padding on every side, into a viewport of
// the given size, centered. The zoom is clamped to [MinFitZoom, MaxFitZoom].
// An empty bbox yields zoom 1 with the bbox origin centered.
func FitZoom(bbox Rect, viewportW, viewportH, padding float64) (zoom float64, pan Point) {
	padded := Rect{
		X: bbox.X - padding,
		Y: bbox.Y - padding,
		W: bbox.W + 2*padding,
		H: bbox.H + 2*padding,
	}

	zoom = 1
	if padded.W > 0 && padded.H > 0 {
		zoom = math.Min(viewportW/padded.W, viewportH/padded.H)
	}
	zoom = Clamp(zoom, MinFitZoom, MaxFitZoom)

	center := padded.Center()
	pan = Point{
		X: viewportW/2 - center.X*zoom,
		Y: viewportH/2 - center.Y*zoom,
	}
	return zoom, pan
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Snap rounds v to the nearest multiple of grid. A non-positive grid returns
// v unchanged.
func Snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}
