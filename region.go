package fontmatch

import (
	"fmt"

	"github.com/ctessum/geom"
)

// Point is a 2D coordinate in font design units. X increases to the right
// and Y increases upward, following font conventions rather than image
// conventions.
type Point struct {
	X, Y float64
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Region is the planar polygon for one character glyph. A Region is built
// by unioning all of a glyph's closed contours into a single shape, which
// deliberately absorbs interior holes: the counter of an 'O' is filled in.
// That is a documented lossy simplification inherited from the comparison
// model, not an accident.
//
// The polygon algebra is backed by github.com/ctessum/geom, but the backing
// library never leaks out of this type: callers see only union,
// intersection, area, bounds and scaling.
type Region struct {
	poly geom.Polygon
}

// RegionFromContours unions a set of closed polygonal contours into one
// Region. Contours with fewer than three points contribute no area and are
// dropped. Ring orientation does not matter; every contour is treated as a
// filled shape. TrueType winds outer contours clockwise, so each ring is
// reoriented counter-clockwise before it reaches the polygon algebra.
func RegionFromContours(contours [][]Point) Region {
	var acc Region
	for _, c := range contours {
		if len(c) < 3 {
			continue
		}
		poly := geom.Polygon{nil}
		for _, p := range c {
			poly[0] = append(poly[0], geom.Point{X: p.X, Y: p.Y})
		}
		if signedArea(c) < 0 {
			reverseRing(poly)
		}
		acc = acc.Union(Region{poly: poly})
	}
	return acc
}

// signedArea is the shoelace area of a closed ring: positive for
// counter-clockwise winding, negative for clockwise.
func signedArea(ring []Point) float64 {
	var sum float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func reverseRing(poly geom.Polygon) {
	ring := poly[0]
	for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
}

// Empty reports whether the region has no contours.
func (r Region) Empty() bool { return len(r.poly) == 0 }

// Contours returns the region's boundary rings.
func (r Region) Contours() [][]Point {
	out := make([][]Point, 0, len(r.poly))
	for _, ring := range r.poly {
		pts := make([]Point, len(ring))
		for i, p := range ring {
			pts[i] = Point{X: p.X, Y: p.Y}
		}
		out = append(out, pts)
	}
	return out
}

// Bounds returns the region's bounding box. The bounding box of an empty
// region is the zero Bounds.
func (r Region) Bounds() Bounds {
	var b Bounds
	first := true
	for _, ring := range r.poly {
		for _, p := range ring {
			if first {
				b = Bounds{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
				first = false
				continue
			}
			if p.X < b.MinX {
				b.MinX = p.X
			}
			if p.X > b.MaxX {
				b.MaxX = p.X
			}
			if p.Y < b.MinY {
				b.MinY = p.Y
			}
			if p.Y > b.MaxY {
				b.MaxY = p.Y
			}
		}
	}
	return b
}

// Area returns the area enclosed by the region.
func (r Region) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.poly.Area()
}

// Union returns the region covered by either r or o.
func (r Region) Union(o Region) Region {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Region{poly: asPolygon(r.poly.Union(o.poly))}
}

// Intersection returns the region covered by both r and o.
func (r Region) Intersection(o Region) Region {
	if r.Empty() || o.Empty() {
		return Region{}
	}
	return Region{poly: asPolygon(r.poly.Intersection(o.poly))}
}

// asPolygon narrows a Polygonal result back to the concrete Polygon the
// Region stores. Boolean ops on Polygon values yield Polygon in practice;
// any other Polygonal shape is flattened through its rings rather than
// trusted with an unchecked assertion.
func asPolygon(p geom.Polygonal) geom.Polygon {
	if p == nil {
		return nil
	}
	if poly, ok := p.(geom.Polygon); ok {
		return poly
	}
	var out geom.Polygon
	for _, poly := range p.Polygons() {
		out = append(out, poly...)
	}
	return out
}

// ScaleFactor is a per-axis scale transform anchored at the origin.
type ScaleFactor struct {
	X, Y float64
}

// Identity is the scale factor that leaves a region unchanged.
var Identity = ScaleFactor{X: 1, Y: 1}

// ScaleBetween computes the factor that rescales cand's bounding box to the
// width and height of ref's. Fonts are authored at different units-per-em,
// so without this step absolute size differences would swamp the shape
// signal. It fails with ErrDegenerateRegion when cand has no horizontal or
// vertical extent.
func ScaleBetween(ref, cand Region) (ScaleFactor, error) {
	rb, cb := ref.Bounds(), cand.Bounds()
	if cb.Width() == 0 || cb.Height() == 0 {
		return ScaleFactor{}, fmt.Errorf(
			"candidate bounding box %gx%g: %w",
			cb.Width(), cb.Height(), ErrDegenerateRegion)
	}
	return ScaleFactor{
		X: rb.Width() / cb.Width(),
		Y: rb.Height() / cb.Height(),
	}, nil
}

// Scale returns a copy of the region with every point mapped to
// (x*f.X, y*f.Y). The transform is anchored at the origin: translation is
// not corrected, only axis-wise scale. Glyphs whose ink sits far from the
// origin therefore keep that offset, which the scoring model preserves
// as-is.
func (r Region) Scale(f ScaleFactor) Region {
	if r.Empty() {
		return r
	}
	out := make(geom.Polygon, len(r.poly))
	for i, ring := range r.poly {
		out[i] = append(ring[:0:0], ring...)
		for j := range out[i] {
			out[i][j].X *= f.X
			out[i][j].Y *= f.Y
		}
	}
	return Region{poly: out}
}
