package fontmatch

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// previewMargin is the fraction of the image left as padding around the
// rendered regions.
const previewMargin = 0.05

// RenderOverlay rasterizes two regions into one image for visual
// inspection of a match: the reference in red, the candidate in blue, with
// overlapping ink darkening toward purple. The candidate should already be
// scale-normalized onto the reference so the picture reflects what was
// scored. Glyph coordinates are Y-up, so the image is flipped vertically.
func RenderOverlay(ref, cand Region, size int) *image.RGBA {
	if size < 8 {
		size = 8
	}
	b := joinBounds(ref.Bounds(), cand.Bounds())

	extent := math.Max(b.Width(), b.Height())
	scale := 0.0
	if extent > 0 {
		scale = float64(size) * (1 - 2*previewMargin) / extent
	}
	pad := float64(size) * previewMargin

	refMask := rasterizeRegion(ref, b, size, scale, pad)
	candMask := rasterizeRegion(cand, b, size, scale, pad)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			ra := refMask.AlphaAt(x, y).A
			ca := candMask.AlphaAt(x, y).A
			o := img.PixOffset(x, y)
			// White paper; red ink knocks out green/blue, blue ink
			// knocks out red/green.
			img.Pix[o+0] = 255 - ca
			img.Pix[o+1] = 255 - clamp8(int(ra)+int(ca))
			img.Pix[o+2] = 255 - ra
			img.Pix[o+3] = 255
		}
	}
	return img
}

// rasterizeRegion fills a region's contours into an alpha mask mapped onto
// a size x size device square.
func rasterizeRegion(r Region, b Bounds, size int, scale, pad float64) *image.Alpha {
	ras := vector.NewRasterizer(size, size)
	for _, ring := range r.Contours() {
		if len(ring) < 3 {
			continue
		}
		ras.MoveTo(devCoords(ring[0], b, scale, pad, size))
		for _, p := range ring[1:] {
			ras.LineTo(devCoords(p, b, scale, pad, size))
		}
		ras.ClosePath()
	}
	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	ras.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

func devCoords(p Point, b Bounds, scale, pad float64, size int) (float32, float32) {
	x := pad + (p.X-b.MinX)*scale
	y := float64(size) - pad - (p.Y-b.MinY)*scale
	return float32(x), float32(y)
}

func joinBounds(a, b Bounds) Bounds {
	return Bounds{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}

func clamp8(v int) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
