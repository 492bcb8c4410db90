package capture

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"testing"

	"github.com/soocke/multiplier-advisor/domain/raster"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type fakeScreen struct {
	full, rect int
	lastRect   image.Rectangle
	fail       error
}

func (f *fakeScreen) grab() (*image.RGBA, error) {
	f.full++
	if f.fail != nil {
		return nil, f.fail
	}
	return image.NewRGBA(image.Rect(0, 0, 64, 48)), nil
}

func (f *fakeScreen) grabRect(r image.Rectangle) (*image.RGBA, error) {
	f.rect++
	f.lastRect = r
	if f.fail != nil {
		return nil, f.fail
	}
	return image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())), nil
}

func TestCaptureService_FullScreen(t *testing.T) {
	fs := &fakeScreen{}
	svc := newCaptureServiceWith(discardLogger, fs.grab, fs.grabRect)
	frame, err := svc.Capture(context.Background())
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if frame.Width() != 64 || frame.Height() != 48 || fs.full != 1 || fs.rect != 0 {
		t.Fatalf("unexpected frame %dx%d full=%d rect=%d", frame.Width(), frame.Height(), fs.full, fs.rect)
	}
	if st := svc.Stats(); st.Captures != 1 || st.Failures != 0 || st.LastCapture.IsZero() {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestCaptureService_UsesSelection(t *testing.T) {
	fs := &fakeScreen{}
	svc := newCaptureServiceWith(discardLogger, fs.grab, fs.grabRect)
	sel := raster.Rect{X: 10, Y: 20, W: 30, H: 15}
	svc.SetSelectionProvider(func() *raster.Rect { return &sel })
	frame, err := svc.Capture(context.Background())
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if fs.rect != 1 || fs.full != 0 || fs.lastRect != image.Rect(10, 20, 40, 35) {
		t.Fatalf("selection not used: rect=%d full=%d last=%v", fs.rect, fs.full, fs.lastRect)
	}
	if frame.Width() != 30 || frame.Height() != 15 {
		t.Fatalf("unexpected frame %dx%d", frame.Width(), frame.Height())
	}
}

func TestCaptureService_DeniedWrapsError(t *testing.T) {
	fs := &fakeScreen{fail: errors.New("user cancelled")}
	svc := newCaptureServiceWith(discardLogger, fs.grab, fs.grabRect)
	if _, err := svc.Capture(context.Background()); !errors.Is(err, ErrCaptureDenied) {
		t.Fatalf("expected ErrCaptureDenied, got %v", err)
	}
	if st := svc.Stats(); st.Failures != 1 || st.Captures != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestCaptureService_CancelledContext(t *testing.T) {
	fs := &fakeScreen{}
	svc := newCaptureServiceWith(discardLogger, fs.grab, fs.grabRect)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Capture(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if fs.full != 0 {
		t.Fatalf("grabbed despite cancelled context")
	}
}

func TestGrabRect_RejectsEmptySelection(t *testing.T) {
	fs := &fakeScreen{}
	if _, err := grabRectWith(fs.grabRect, nil, raster.Rect{X: 1, Y: 1}); !errors.Is(err, ErrCaptureDenied) {
		t.Fatalf("expected ErrCaptureDenied, got %v", err)
	}
}

func TestGrabRect_ClipsToScreen(t *testing.T) {
	fs := &fakeScreen{}
	screen := func() (image.Rectangle, error) { return image.Rect(0, 0, 100, 100), nil }
	if _, err := grabRectWith(fs.grabRect, screen, raster.Rect{X: 90, Y: 90, W: 20, H: 20}); err != nil {
		t.Fatalf("grab: %v", err)
	}
	if fs.lastRect != image.Rect(90, 90, 100, 100) {
		t.Fatalf("expected clip to screen, got %v", fs.lastRect)
	}
	if _, err := grabRectWith(fs.grabRect, screen, raster.Rect{X: 200, Y: 200, W: 5, H: 5}); !errors.Is(err, ErrCaptureDenied) {
		t.Fatalf("expected ErrCaptureDenied for off-screen selection, got %v", err)
	}
}
