package selection

import (
	"image"
	"image/color"

	"github.com/soocke/multiplier-advisor/domain/raster"
)

// OutlineStyle controls how the selection rectangle is stroked.
type OutlineStyle struct {
	Color color.RGBA
	Width int
}

// DefaultOutline is a 2px red stroke.
var DefaultOutline = OutlineStyle{Color: color.RGBA{R: 0xFF, A: 0xFF}, Width: 2}

// Render returns a display buffer showing base with rect outlined. base is
// never written; every call starts again from base, so the result depends only
// on its arguments. The outline covers the closed box [X,X+W] x [Y,Y+H] and
// grows inward with the stroke width. The returned buffer comes from the
// raster frame pool and may be handed back with raster.Recycle once displayed.
func Render(base *raster.Buffer, rect raster.Rect, style OutlineStyle) *raster.Buffer {
	w, h := base.Width(), base.Height()
	dst := raster.Acquire(w, h)
	if !base.CopyInto(dst) {
		return raster.New(w, h)
	}
	width := style.Width
	if width < 1 {
		width = 1
	}
	x0, y0 := rect.X, rect.Y
	x1, y1 := rect.X+rect.W, rect.Y+rect.H
	for t := 0; t < width; t++ {
		if x0+t > x1-t || y0+t > y1-t {
			break
		}
		hline(dst, x0+t, x1-t, y0+t, style.Color)
		hline(dst, x0+t, x1-t, y1-t, style.Color)
		vline(dst, x0+t, y0+t, y1-t, style.Color)
		vline(dst, x1-t, y0+t, y1-t, style.Color)
	}
	return raster.Adopt(dst)
}

func hline(img *image.RGBA, xa, xb, y int, c color.RGBA) {
	for x := xa; x <= xb; x++ {
		if (image.Point{X: x, Y: y}).In(img.Rect) {
			img.SetRGBA(x, y, c)
		}
	}
}

func vline(img *image.RGBA, x, ya, yb int, c color.RGBA) {
	for y := ya; y <= yb; y++ {
		if (image.Point{X: x, Y: y}).In(img.Rect) {
			img.SetRGBA(x, y, c)
		}
	}
}
