package route

import (
	"math"
	"testing"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/geom"
)

func TestAnchorPoint(t *testing.T) {
	r := geom.Rect{X: 100, Y: 200, W: 200, H: 100}

	tests := []struct {
		anchor board.Anchor
		want   geom.Point
	}{
		{board.AnchorTop, geom.Point{X: 200, Y: 200}},
		{board.AnchorBottom, geom.Point{X: 200, Y: 300}},
		{board.AnchorLeft, geom.Point{X: 100, Y: 250}},
		{board.AnchorRight, geom.Point{X: 300, Y: 250}},
		{board.Anchor("bogus"), geom.Point{X: 200, Y: 250}},
	}
	for _, tt := range tests {
		if got := AnchorPoint(r, tt.anchor); got != tt.want {
			t.Errorf("AnchorPoint(%q) = %v, want %v", tt.anchor, got, tt.want)
		}
	}
}

func TestBuildCurveEndpoints(t *testing.T) {
	// Card A right edge at x=300, card B left edge at x=500.
	a := geom.Rect{X: 100, Y: 100, W: 200, H: 100}
	b := geom.Rect{X: 500, Y: 100, W: 200, H: 100}

	c := BuildCurve(a, board.AnchorRight, b, board.AnchorLeft)

	if c.Start != (geom.Point{X: 300, Y: 150}) {
		t.Errorf("start = %v, want (300, 150)", c.Start)
	}
	if c.End != (geom.Point{X: 500, Y: 150}) {
		t.Errorf("end = %v, want (500, 150)", c.End)
	}
	// Control points extend outward along each anchor's normal.
	if c.C1.X <= c.Start.X || c.C1.Y != c.Start.Y {
		t.Errorf("C1 = %v does not extend right of start", c.C1)
	}
	if c.C2.X >= c.End.X || c.C2.Y != c.End.Y {
		t.Errorf("C2 = %v does not extend left of end", c.C2)
	}
}

func TestBuildCurveTensionClamps(t *testing.T) {
	near := geom.Rect{X: 0, Y: 0, W: 10, H: 10}
	alsoNear := geom.Rect{X: 30, Y: 0, W: 10, H: 10}
	c := BuildCurve(near, board.AnchorRight, alsoNear, board.AnchorLeft)
	if got := c.C1.X - c.Start.X; got != minTension {
		t.Errorf("short-range tension = %v, want floor %v", got, minTension)
	}

	far := geom.Rect{X: 10000, Y: 0, W: 10, H: 10}
	c = BuildCurve(near, board.AnchorRight, far, board.AnchorLeft)
	if got := c.C1.X - c.Start.X; got != maxTension {
		t.Errorf("long-range tension = %v, want ceiling %v", got, maxTension)
	}
}

func TestNearestAnchor(t *testing.T) {
	r := geom.Rect{X: 0, Y: 0, W: 200, H: 100}

	tests := []struct {
		name string
		p    geom.Point
		want board.Anchor
	}{
		{"above", geom.Point{X: 100, Y: -50}, board.AnchorTop},
		{"below", geom.Point{X: 100, Y: 150}, board.AnchorBottom},
		{"leftOf", geom.Point{X: -80, Y: 50}, board.AnchorLeft},
		{"rightOf", geom.Point{X: 280, Y: 50}, board.AnchorRight},
		// Off-axis picks compare raw |dx| against |dy|, with no
		// normalization by the card's aspect.
		{"wideCardAbove", geom.Point{X: 160, Y: -20}, board.AnchorTop},
		{"wideCardRightDown", geom.Point{X: 160, Y: 90}, board.AnchorRight},
		{"tieGoesHorizontal", geom.Point{X: 150, Y: 100}, board.AnchorRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearestAnchor(r, tt.p); got != tt.want {
				t.Errorf("NearestAnchor(%v) = %q, want %q", tt.p, got, tt.want)
			}
		})
	}
}

func TestCurveAt(t *testing.T) {
	c := BuildCurve(
		geom.Rect{X: 0, Y: 0, W: 100, H: 100},
		board.AnchorRight,
		geom.Rect{X: 400, Y: 0, W: 100, H: 100},
		board.AnchorLeft,
	)

	if got := c.At(0); got != c.Start {
		t.Errorf("At(0) = %v, want start %v", got, c.Start)
	}
	if got := c.At(1); got != c.End {
		t.Errorf("At(1) = %v, want end %v", got, c.End)
	}

	// Symmetric horizontal curve: midpoint sits halfway between the edges.
	mid := c.Midpoint()
	if math.Abs(mid.X-250) > 1e-9 || math.Abs(mid.Y-50) > 1e-9 {
		t.Errorf("midpoint = %v, want (250, 50)", mid)
	}
}

func TestFlatten(t *testing.T) {
	c := BuildCurve(
		geom.Rect{X: 0, Y: 0, W: 100, H: 100},
		board.AnchorBottom,
		geom.Rect{X: 0, Y: 400, W: 100, H: 100},
		board.AnchorTop,
	)

	pts := c.Flatten(16)
	if len(pts) != 17 {
		t.Fatalf("Flatten(16) yields %d points, want 17", len(pts))
	}
	if pts[0] != c.Start || pts[16] != c.End {
		t.Error("flattened polyline does not span the endpoints")
	}

	if got := c.Flatten(0); len(got) != 2 {
		t.Errorf("Flatten(0) yields %d points, want 2", len(got))
	}
}

func TestDistanceTo(t *testing.T) {
	// A straight-line degenerate curve along y=0.
	c := Curve{
		Start: geom.Point{X: 0, Y: 0},
		C1:    geom.Point{X: 100, Y: 0},
		C2:    geom.Point{X: 200, Y: 0},
		End:   geom.Point{X: 300, Y: 0},
	}
	if d := c.DistanceTo(geom.Point{X: 150, Y: 40}); math.Abs(d-40) > 0.5 {
		t.Errorf("distance = %v, want about 40", d)
	}
	if d := c.DistanceTo(geom.Point{X: -50, Y: 0}); math.Abs(d-50) > 1e-9 {
		t.Errorf("distance past the endpoint = %v, want 50", d)
	}
}
