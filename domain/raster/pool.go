package raster

import (
	"image"
	"sync"
)

// Display buffers are redrawn on every pointer move over a full-size frame.
// Pooling their backing slices keeps a long drag from allocating a fresh
// frame per event. Only buffers handed out by Acquire may be recycled.

var framePool sync.Pool // stores *image.RGBA

// Acquire returns a scratch RGBA image of w x h anchored at the origin. Its
// contents are unspecified; callers overwrite every pixel.
func Acquire(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return &image.RGBA{}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := framePool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		return &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	}
	img.Stride = w * 4
	img.Rect = image.Rect(0, 0, w, h)
	img.Pix = img.Pix[:needed]
	return img
}

// Recycle returns a display buffer's pixels to the pool. The buffer must not
// be used after the call.
func Recycle(b *Buffer) {
	if b == nil || b.img == nil || b.img.Pix == nil {
		return
	}
	framePool.Put(b.img)
	b.img = nil
}
