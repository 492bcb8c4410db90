package selection

import (
	"image"
	"image/color"
	"testing"

	"github.com/soocke/multiplier-advisor/domain/raster"
)

func solid(w, h int, c color.RGBA) *raster.Buffer {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return raster.FromImage(img)
}

func TestRender_DoesNotMutateBase(t *testing.T) {
	grey := color.RGBA{0x80, 0x80, 0x80, 0xFF}
	base := solid(12, 12, grey)
	pristine := raster.FromImage(base)
	out := Render(base, raster.Rect{X: 2, Y: 2, W: 6, H: 5}, DefaultOutline)
	if !base.Equal(pristine) {
		t.Fatalf("render mutated the base buffer")
	}
	if out.RGBAAt(2, 2) != DefaultOutline.Color {
		t.Fatalf("expected outline at corner, got %v", out.RGBAAt(2, 2))
	}
	if out.RGBAAt(8, 7) != DefaultOutline.Color {
		t.Fatalf("expected outline at far corner, got %v", out.RGBAAt(8, 7))
	}
	if out.RGBAAt(5, 5) != grey {
		t.Fatalf("interior should show base pixels, got %v", out.RGBAAt(5, 5))
	}
	if out.RGBAAt(0, 0) != grey {
		t.Fatalf("outside should show base pixels, got %v", out.RGBAAt(0, 0))
	}
}

func TestRender_RepeatedMovesAreIdempotent(t *testing.T) {
	base := solid(16, 16, color.RGBA{0x10, 0x20, 0x30, 0xFF})
	first := Render(base, raster.Rect{X: 1, Y: 1, W: 10, H: 10}, DefaultOutline)
	raster.Recycle(Render(base, raster.Rect{X: 4, Y: 4, W: 3, H: 3}, DefaultOutline))
	again := Render(base, raster.Rect{X: 1, Y: 1, W: 10, H: 10}, DefaultOutline)
	if !first.Equal(again) {
		t.Fatalf("same base and rect produced different display buffers")
	}
	// A stale outline from the intermediate move must not survive.
	if again.RGBAAt(4, 4) == DefaultOutline.Color {
		t.Fatalf("previous outline leaked into redraw")
	}
}

func TestRender_DegenerateRectDrawsLine(t *testing.T) {
	base := solid(8, 8, color.RGBA{A: 0xFF})
	out := Render(base, raster.Rect{X: 3, Y: 1, W: 0, H: 4}, OutlineStyle{Color: color.RGBA{G: 0xFF, A: 0xFF}, Width: 1})
	for y := 1; y <= 5; y++ {
		if out.RGBAAt(3, y).G != 0xFF {
			t.Fatalf("expected line pixel at (3,%d)", y)
		}
	}
	if out.RGBAAt(4, 3).G == 0xFF {
		t.Fatalf("line leaked sideways")
	}
}
