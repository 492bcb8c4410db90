package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/vova616/screenshot"

	"github.com/soocke/multiplier-advisor/domain/raster"
)

// ErrCaptureDenied reports that the platform declined to hand over a frame.
var ErrCaptureDenied = errors.New("capture denied")

// GrabFunc and GrabRectFunc acquire raw frames. The defaults call the
// screenshot library; tests substitute fakes.
type (
	GrabFunc     func() (*image.RGBA, error)
	GrabRectFunc func(image.Rectangle) (*image.RGBA, error)
)

// Grab returns a capture of the primary screen.
func Grab() (*raster.Buffer, error) { return grabWith(screenshot.CaptureScreen) }

// GrabSelection captures sel clipped to the screen.
func GrabSelection(sel raster.Rect) (*raster.Buffer, error) {
	return grabRectWith(screenshot.CaptureRect, screenshot.ScreenRect, sel)
}

func grabWith(fn GrabFunc) (*raster.Buffer, error) {
	img, err := fn()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureDenied, err)
	}
	if img == nil || img.Rect.Empty() {
		return nil, fmt.Errorf("%w: empty frame", ErrCaptureDenied)
	}
	return raster.FromImage(img), nil
}

func grabRectWith(fn GrabRectFunc, screenRect func() (image.Rectangle, error), sel raster.Rect) (*raster.Buffer, error) {
	if sel.Empty() {
		return nil, fmt.Errorf("%w: empty selection", ErrCaptureDenied)
	}
	r := sel.Rectangle()
	if screenRect != nil {
		screen, err := screenRect()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCaptureDenied, err)
		}
		r = r.Intersect(screen)
		if r.Empty() {
			return nil, fmt.Errorf("%w: selection %v outside screen %v", ErrCaptureDenied, sel, screen)
		}
	}
	return grabWith(func() (*image.RGBA, error) { return fn(r) })
}
