package fontmatch

import (
	"image/color"
	"testing"
)

func TestRenderOverlayDimensions(t *testing.T) {
	img := RenderOverlay(square(0, 0, 10), square(0, 0, 10), 64)
	b := img.Bounds()
	if b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("expected 64x64 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderOverlayInkAndPaper(t *testing.T) {
	img := RenderOverlay(square(0, 0, 10), square(0, 0, 10), 64)

	// The corner sits in the padding and stays white paper.
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("expected white corner, got %+v", got)
	}

	// The center is covered by both regions: red and blue ink overlap,
	// so both channels are knocked down.
	center := img.RGBAAt(32, 32)
	if center.R == 255 || center.B == 255 {
		t.Errorf("expected overlapping ink at center, got %+v", center)
	}
}

func TestRenderOverlayDisjointRegions(t *testing.T) {
	// Reference on the left, candidate on the right.
	img := RenderOverlay(square(0, 0, 10), square(20, 0, 10), 100)

	// Joined bounds span x in [0, 30] and y in [0, 10]; with 5% padding
	// the squares land at device y in [65, 95].
	left := img.RGBAAt(15, 80)
	if left.G == 255 {
		t.Errorf("expected reference ink on the left, got %+v", left)
	}
	if left.R != 255 {
		t.Errorf("expected pure red ink on the left, got %+v", left)
	}

	right := img.RGBAAt(85, 80)
	if right.B != 255 {
		t.Errorf("expected pure blue ink on the right, got %+v", right)
	}
}

func TestRenderOverlayEmptyRegions(t *testing.T) {
	img := RenderOverlay(Region{}, Region{}, 32)
	if img.Bounds().Dx() != 32 {
		t.Fatalf("expected a 32x32 image, got %v", img.Bounds())
	}
	if got := img.RGBAAt(16, 16); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("expected blank paper, got %+v", got)
	}
}
