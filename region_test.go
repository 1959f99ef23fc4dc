package fontmatch

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

// square builds a region for an axis-aligned square with its lower-left
// corner at (x, y).
func square(x, y, side float64) Region {
	return RegionFromContours([][]Point{{
		{x, y}, {x + side, y}, {x + side, y + side}, {x, y + side},
	}})
}

func approx(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

func TestRegionBounds(t *testing.T) {
	r := square(2, 3, 10)
	b := r.Bounds()
	if b.MinX != 2 || b.MinY != 3 || b.MaxX != 12 || b.MaxY != 13 {
		t.Errorf("unexpected bounds: %+v", b)
	}
	if b.Width() != 10 || b.Height() != 10 {
		t.Errorf("unexpected extents: %v x %v", b.Width(), b.Height())
	}
}

func TestRegionAreaClockwiseContour(t *testing.T) {
	// TrueType winds outer contours clockwise; area must come out
	// positive regardless.
	r := RegionFromContours([][]Point{{
		{0, 0}, {0, 10}, {10, 10}, {10, 0},
	}})
	if !approx(r.Area(), 100) {
		t.Errorf("expected area 100, got %v", r.Area())
	}
}

// A ring-shaped glyph collapses to its outer boundary: unioning the outer
// and inner contours fills the hole. The counter of an 'O' disappears, and
// the area equals the outer contour's area, not outer minus inner.
func TestRegionRingCollapsesToOuterBoundary(t *testing.T) {
	r := RegionFromContours([][]Point{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		{{3, 3}, {7, 3}, {7, 7}, {3, 7}},
	})
	if !approx(r.Area(), 100) {
		t.Errorf("expected hole-collapsed area 100, got %v", r.Area())
	}
}

func TestRegionUnionOfDisjointContours(t *testing.T) {
	// Disconnected strokes combine into one region covering both.
	r := RegionFromContours([][]Point{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		{{5, 5}, {6, 5}, {6, 6}, {5, 6}},
	})
	if !approx(r.Area(), 2) {
		t.Errorf("expected area 2, got %v", r.Area())
	}
}

func TestRegionDegenerateContoursAreDropped(t *testing.T) {
	r := RegionFromContours([][]Point{
		{{0, 0}, {5, 0}}, // a bare segment encloses nothing
	})
	if !r.Empty() {
		t.Errorf("expected empty region, got area %v", r.Area())
	}
	if r.Area() != 0 {
		t.Errorf("expected zero area, got %v", r.Area())
	}
}

func TestScaleBetween(t *testing.T) {
	ref := square(0, 0, 10)
	cand := square(0, 0, 20)
	factor, err := ScaleBetween(ref, cand)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(factor.X, 0.5) || !approx(factor.Y, 0.5) {
		t.Errorf("expected factor (0.5, 0.5), got %+v", factor)
	}
}

func TestScaleBetweenDegenerateCandidate(t *testing.T) {
	ref := square(0, 0, 10)
	_, err := ScaleBetween(ref, Region{})
	if !errors.Is(err, ErrDegenerateRegion) {
		t.Errorf("expected ErrDegenerateRegion, got %v", err)
	}
}

// Scaling is anchored at the origin, not at the bounding-box center: a
// glyph whose ink sits away from the origin keeps a proportional offset.
// This preserves the reference behavior exactly, even though it may under-
// or over-correct for such glyphs.
func TestScaleIsOriginAnchored(t *testing.T) {
	r := square(10, 0, 10) // ink starts at x=10
	scaled := r.Scale(ScaleFactor{X: 0.5, Y: 1})
	b := scaled.Bounds()
	if !approx(b.MinX, 5) || !approx(b.MaxX, 10) {
		t.Errorf("expected x range [5, 10], got [%v, %v]", b.MinX, b.MaxX)
	}
	if !approx(b.MinY, 0) || !approx(b.MaxY, 10) {
		t.Errorf("expected y range [0, 10], got [%v, %v]", b.MinY, b.MaxY)
	}
}

func TestScaleIdentity(t *testing.T) {
	r := square(1, 2, 3)
	s := r.Scale(Identity)
	if !approx(s.Area(), r.Area()) {
		t.Errorf("identity scale changed area: %v != %v", s.Area(), r.Area())
	}
	if s.Bounds() != r.Bounds() {
		t.Errorf("identity scale changed bounds: %+v != %+v",
			s.Bounds(), r.Bounds())
	}
}

func TestRegionIntersectionAndUnion(t *testing.T) {
	a := square(0, 0, 10)
	b := square(5, 0, 10)

	if got := a.Union(b).Area(); !approx(got, 150) {
		t.Errorf("expected union area 150, got %v", got)
	}
	if got := a.Intersection(b).Area(); !approx(got, 50) {
		t.Errorf("expected intersection area 50, got %v", got)
	}

	var empty Region
	if got := a.Union(empty).Area(); !approx(got, 100) {
		t.Errorf("union with empty: expected 100, got %v", got)
	}
	if !a.Intersection(empty).Empty() {
		t.Error("intersection with empty region should be empty")
	}
}

// Results of one boolean op feed straight back into the next, so the
// narrowing from the algebra's interface result to the stored polygon has
// to round-trip cleanly through chained operations.
func TestRegionChainedBooleanOps(t *testing.T) {
	a := square(0, 0, 10)
	b := square(5, 0, 10)
	c := square(0, 5, 10)

	u := a.Union(b).Union(c)
	if got := u.Area(); !approx(got, 200) {
		t.Errorf("expected chained union area 200, got %v", got)
	}

	// (a ∪ b) ∩ c covers x in [0, 10], y in [5, 10].
	if got := a.Union(b).Intersection(c).Area(); !approx(got, 50) {
		t.Errorf("expected chained intersection area 50, got %v", got)
	}
}
