package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// Buffer is an immutable RGBA frame anchored at the origin. Every constructor
// copies its input, and every accessor handing out pixels returns a copy, so a
// Buffer never aliases memory owned by someone else.
//
// Buffer implements image.Image and can be passed to encoders directly.
type Buffer struct {
	img *image.RGBA
}

// New returns a transparent w x h buffer.
func New(w, h int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Buffer{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// FromImage copies any image into a new buffer with its top-left corner moved to (0,0).
func FromImage(src image.Image) *Buffer {
	if src == nil {
		return New(0, 0)
	}
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if rgba, ok := src.(*image.RGBA); ok {
		copyRows(out, rgba, b)
		return &Buffer{img: out}
	}
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return &Buffer{img: out}
}

// Adopt wraps img without copying. The caller hands over ownership and must
// not touch img afterwards. img must be anchored at the origin.
func Adopt(img *image.RGBA) *Buffer {
	if img == nil {
		return New(0, 0)
	}
	return &Buffer{img: img}
}

func (b *Buffer) Width() int {
	if b == nil || b.img == nil {
		return 0
	}
	return b.img.Rect.Dx()
}

func (b *Buffer) Height() int {
	if b == nil || b.img == nil {
		return 0
	}
	return b.img.Rect.Dy()
}

// Contains reports whether r lies fully inside the buffer.
func (b *Buffer) Contains(r Rect) bool { return r.Within(b.Width(), b.Height()) }

func (b *Buffer) ColorModel() color.Model { return color.RGBAModel }

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width(), b.Height())
}

func (b *Buffer) At(x, y int) color.Color { return b.RGBAAt(x, y) }

// RGBAAt returns the sample at (x, y), or transparent black outside the buffer.
func (b *Buffer) RGBAAt(x, y int) color.RGBA {
	if b == nil || b.img == nil {
		return color.RGBA{}
	}
	return b.img.RGBAAt(x, y)
}

// Image returns a mutable copy of the pixels.
func (b *Buffer) Image() *image.RGBA {
	out := image.NewRGBA(b.Bounds())
	if b != nil && b.img != nil {
		copy(out.Pix, b.img.Pix)
	}
	return out
}

// CopyInto writes the pixels into dst, which must have the same dimensions.
func (b *Buffer) CopyInto(dst *image.RGBA) bool {
	if b == nil || b.img == nil || dst == nil || dst.Rect.Dx() != b.Width() || dst.Rect.Dy() != b.Height() {
		return false
	}
	copyRows(dst, b.img, b.img.Rect)
	return true
}

// Crop copies the pixels covered by r into a new buffer. r is clipped to the
// buffer; callers that need strict containment check Contains first.
func (b *Buffer) Crop(r Rect) *Buffer {
	src := r.Rectangle().Intersect(b.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	if !src.Empty() {
		copyRows(out, b.img, src)
	}
	return &Buffer{img: out}
}

// Equal reports whether both buffers hold the same dimensions and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Width() != o.Width() || b.Height() != o.Height() {
		return false
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.RGBAAt(x, y) != o.RGBAAt(x, y) {
				return false
			}
		}
	}
	return true
}

// copyRows copies src's pixels in r row by row to dst starting at dst's origin.
func copyRows(dst, src *image.RGBA, r image.Rectangle) {
	rowLen := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		so := src.PixOffset(r.Min.X, r.Min.Y+y)
		do := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		copy(dst.Pix[do:do+rowLen], src.Pix[so:so+rowLen])
	}
}
