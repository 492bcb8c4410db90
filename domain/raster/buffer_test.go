package raster

import (
	"image"
	"image/color"
	"testing"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), uint8(x + y), 0xFF})
		}
	}
	return img
}

func TestRectFromPoints_Normalizes(t *testing.T) {
	r := RectFromPoints(Pt(5, 5), Pt(2, 9))
	if r != (Rect{X: 2, Y: 5, W: 3, H: 4}) {
		t.Fatalf("unexpected rect %v", r)
	}
	r = RectFromPoints(Pt(7, 1), Pt(7, 1))
	if !r.Empty() || r.X != 7 || r.Y != 1 {
		t.Fatalf("expected empty rect at 7,1 got %v", r)
	}
}

func TestPointClamp(t *testing.T) {
	if p := Pt(-3, 12).Clamp(10, 10); p != Pt(0, 9) {
		t.Fatalf("expected (0,9) got %v", p)
	}
	if p := Pt(4, 4).Clamp(10, 10); p != Pt(4, 4) {
		t.Fatalf("in-range point changed: %v", p)
	}
}

func TestRectWithin(t *testing.T) {
	cases := []struct {
		r    Rect
		want bool
	}{
		{Rect{0, 0, 10, 10}, true},
		{Rect{5, 5, 5, 5}, true},
		{Rect{5, 5, 6, 5}, false},
		{Rect{-1, 0, 2, 2}, false},
		{Rect{0, 0, 0, 0}, true},
	}
	for _, c := range cases {
		if got := c.r.Within(10, 10); got != c.want {
			t.Fatalf("Within(%v)=%v want %v", c.r, got, c.want)
		}
	}
}

func TestFromImage_CopiesInput(t *testing.T) {
	src := gradient(4, 3)
	b := FromImage(src)
	src.SetRGBA(1, 1, color.RGBA{0xAA, 0, 0, 0xFF})
	if got := b.RGBAAt(1, 1); got.R == 0xAA {
		t.Fatalf("buffer aliases its source")
	}
	if b.Width() != 4 || b.Height() != 3 {
		t.Fatalf("unexpected size %dx%d", b.Width(), b.Height())
	}
}

func TestFromImage_MovesOriginToZero(t *testing.T) {
	src := gradient(10, 10).SubImage(image.Rect(2, 3, 6, 8))
	b := FromImage(src)
	if b.Bounds() != image.Rect(0, 0, 4, 5) {
		t.Fatalf("unexpected bounds %v", b.Bounds())
	}
	if got := b.RGBAAt(0, 0); got.R != 2 || got.G != 3 {
		t.Fatalf("unexpected origin sample %v", got)
	}
}

func TestImage_ReturnsCopy(t *testing.T) {
	b := FromImage(gradient(3, 3))
	img := b.Image()
	img.SetRGBA(0, 0, color.RGBA{0xFF, 0xFF, 0xFF, 0xFF})
	if b.RGBAAt(0, 0) == (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Fatalf("Image() exposed the backing pixels")
	}
}

func TestCrop_IndependentCopy(t *testing.T) {
	b := FromImage(gradient(8, 8))
	c := b.Crop(Rect{X: 2, Y: 3, W: 3, H: 2})
	if c.Width() != 3 || c.Height() != 2 {
		t.Fatalf("unexpected crop size %dx%d", c.Width(), c.Height())
	}
	if got := c.RGBAAt(0, 0); got.R != 2 || got.G != 3 {
		t.Fatalf("unexpected crop origin %v", got)
	}
	if got := c.RGBAAt(2, 1); got.R != 4 || got.G != 4 {
		t.Fatalf("unexpected crop corner %v", got)
	}
}

func TestAcquireRecycle_ReusesBacking(t *testing.T) {
	img := Acquire(4, 4)
	if img.Rect != image.Rect(0, 0, 4, 4) || len(img.Pix) != 64 {
		t.Fatalf("unexpected scratch image %v len=%d", img.Rect, len(img.Pix))
	}
	b := Adopt(img)
	Recycle(b)
	if b.Width() != 0 {
		t.Fatalf("recycled buffer still exposes pixels")
	}
	small := Acquire(2, 2)
	if small.Stride != 8 || len(small.Pix) != 16 {
		t.Fatalf("stride/len not reset: stride=%d len=%d", small.Stride, len(small.Pix))
	}
	if empty := Acquire(0, 5); len(empty.Pix) != 0 {
		t.Fatalf("expected empty scratch image")
	}
}
