package fontmatch

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// quadSteps is the number of line segments used to flatten one quadratic
// Bézier arc. Glyph coordinates stay in font units, so at typical em sizes
// the approximation error is a small fraction of a unit and negligible next
// to the area-based score.
const quadSteps = 8

// Font is a TrueType-backed OutlineSource. It is safe for concurrent use:
// glyph loading state lives in a per-call buffer, never on the Font.
type Font struct {
	ttf  *truetype.Font
	name string
}

// ParseFont decodes TrueType font data. Containers without glyf outlines
// (CFF-flavored OpenType, WOFF, anything else) fail with
// ErrUnsupportedFormat; only glyf outlines decompose into the closed
// polygonal contours the comparison works on.
func ParseFont(name string, data []byte) (*Font, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", name, err, ErrUnsupportedFormat)
	}
	return &Font{ttf: ttf, name: name}, nil
}

// LoadFont reads and decodes a TrueType font file.
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFont(path, data)
}

// Name returns the label the font was loaded under.
func (f *Font) Name() string { return f.name }

// GlyphRegion extracts the outline of one character, flattens its curves,
// and unions the resulting contours into a single Region.
func (f *Font) GlyphRegion(c rune) (Region, error) {
	idx := f.ttf.Index(c)
	if idx == 0 {
		return Region{}, fmt.Errorf("%q in %s: %w", c, f.name, ErrGlyphNotFound)
	}

	// Loading at scale FUnitsPerEm keeps coordinates proportional to the
	// font's design units; the absolute scale cancels out during
	// normalization anyway.
	var buf truetype.GlyphBuf
	err := buf.Load(f.ttf, fixed.Int26_6(f.ttf.FUnitsPerEm()), idx, font.HintingNone)
	if err != nil {
		return Region{}, fmt.Errorf("glyph %q in %s: %v: %w",
			c, f.name, err, ErrUnsupportedFormat)
	}

	contours := make([][]Point, 0, len(buf.Ends))
	e0 := 0
	for _, e1 := range buf.Ends {
		if pts := decodeContour(buf.Points[e0:e1]); len(pts) >= 3 {
			contours = append(contours, pts)
		}
		e0 = e1
	}
	return RegionFromContours(contours), nil
}

// decodeContour converts one TrueType contour into a closed polyline.
// Contour points are in 26.6 fixed point and carry an on-curve flag in the
// low bit; off-curve points are quadratic Bézier controls, and two
// consecutive off-curve points imply an on-curve midpoint between them.
func decodeContour(pts []truetype.Point) []Point {
	var cb contourBuilder
	for _, p := range pts {
		cb.add(Point{
			X: float64(p.X) / 64,
			Y: float64(p.Y) / 64,
		}, p.Flags&0x01 != 0)
	}
	return cb.close()
}

// contourBuilder assembles a flattened polyline from a stream of on/off
// curve points. TrueType contours may begin with off-curve points, so the
// start of the outline is not known until the first on-curve point (real or
// implied) is seen; closing the contour has to stitch any pending controls
// back to that start.
type contourBuilder struct {
	pts      []Point
	firstOn  *Point
	firstOff *Point
	lastOff  *Point
}

func (cb *contourBuilder) move(p Point) {
	cb.pts = append(cb.pts, p)
}

func (cb *contourBuilder) line(p Point) {
	cb.pts = append(cb.pts, p)
}

// quad flattens the quadratic Bézier from the current point through ctrl to
// end into quadSteps line segments.
func (cb *contourBuilder) quad(ctrl, end Point) {
	start := cb.pts[len(cb.pts)-1]
	for i := 1; i <= quadSteps; i++ {
		t := float64(i) / quadSteps
		u := 1 - t
		cb.pts = append(cb.pts, Point{
			X: u*u*start.X + 2*u*t*ctrl.X + t*t*end.X,
			Y: u*u*start.Y + 2*u*t*ctrl.Y + t*t*end.Y,
		})
	}
}

// add consumes the next contour point.
func (cb *contourBuilder) add(p Point, onCurve bool) {
	if cb.firstOn == nil && cb.firstOff == nil && cb.lastOff == nil {
		if onCurve {
			cb.firstOn = &Point{p.X, p.Y}
			cb.move(p)
		} else {
			cb.firstOff = &Point{p.X, p.Y}
		}
		return
	}

	if cb.firstOn == nil {
		// The contour started off-curve and we are still looking for
		// its real starting point.
		if onCurve {
			cb.firstOn = &Point{p.X, p.Y}
			cb.move(p)
		} else {
			mid := midpoint(*cb.firstOff, p)
			cb.firstOn = &mid
			cb.move(mid)
			cb.lastOff = &Point{p.X, p.Y}
		}
		return
	}

	if cb.lastOff != nil {
		if onCurve {
			cb.quad(*cb.lastOff, p)
			cb.lastOff = nil
		} else {
			mid := midpoint(*cb.lastOff, p)
			cb.quad(*cb.lastOff, mid)
			cb.lastOff = &Point{p.X, p.Y}
		}
		return
	}

	if onCurve {
		cb.line(p)
	} else {
		cb.lastOff = &Point{p.X, p.Y}
	}
}

// close finishes the contour, stitching pending off-curve controls back to
// the starting point, and returns the polyline. The closing edge back to
// the first point is implicit; a trailing duplicate of the start is
// trimmed.
func (cb *contourBuilder) close() []Point {
	if cb.firstOn == nil {
		// A contour of nothing but off-curve points traces a closed
		// curve through implied midpoints; with a single off-curve
		// point there is nothing to draw.
		if cb.firstOff != nil && cb.lastOff != nil {
			mid := midpoint(*cb.firstOff, *cb.lastOff)
			cb.move(mid)
			cb.quad(*cb.lastOff, *cb.firstOff)
			cb.quad(*cb.firstOff, mid)
		}
		return cb.trimmed()
	}

	switch {
	case cb.lastOff != nil && cb.firstOff != nil:
		mid := midpoint(*cb.lastOff, *cb.firstOff)
		cb.quad(*cb.lastOff, mid)
		cb.quad(*cb.firstOff, *cb.firstOn)
	case cb.lastOff != nil:
		cb.quad(*cb.lastOff, *cb.firstOn)
	case cb.firstOff != nil:
		cb.quad(*cb.firstOff, *cb.firstOn)
	}
	return cb.trimmed()
}

// trimmed drops a trailing point that duplicates the contour start; rings
// are implicitly closed.
func (cb *contourBuilder) trimmed() []Point {
	pts := cb.pts
	if len(pts) > 1 && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
