package capture

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/soocke/multiplier-advisor/domain/raster"
)

type captureService struct {
	selFn        func() *raster.Rect // persisted selection (optional)
	grab         func() (*raster.Buffer, error)
	grabRect     func(raster.Rect) (*raster.Buffer, error)
	logger       *slog.Logger
	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	last         atomic.Int64
}

// NewCaptureService returns a service backed by the screenshot library.
func NewCaptureService(logger *slog.Logger, selectionFn func() *raster.Rect) Service {
	return &captureService{selFn: selectionFn, grab: Grab, grabRect: GrabSelection, logger: logger}
}

// newCaptureServiceWith is NewCaptureService with injected frame sources.
func newCaptureServiceWith(logger *slog.Logger, full GrabFunc, rect GrabRectFunc) Service {
	return &captureService{
		logger:   logger,
		grab:     func() (*raster.Buffer, error) { return grabWith(full) },
		grabRect: func(sel raster.Rect) (*raster.Buffer, error) { return grabRectWith(rect, nil, sel) },
	}
}

func (s *captureService) SetSelectionProvider(fn func() *raster.Rect) { s.selFn = fn }

// Capture grabs the persisted selection when one is set and falls back to
// the full screen. Failures wrap ErrCaptureDenied.
func (s *captureService) Capture(ctx context.Context) (*raster.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	var (
		frame *raster.Buffer
		err   error
	)
	if s.selFn != nil {
		if r := s.selFn(); r != nil && !r.Empty() {
			frame, err = s.grabRect(*r)
			if err != nil && s.logger != nil {
				s.logger.Warn("capture selection", "rect", r.String(), "error", err)
			}
		}
	}
	if frame == nil {
		frame, err = s.grab()
	}
	if err != nil {
		s.failures.Add(1)
		if s.logger != nil {
			s.logger.Error("capture full", "error", err)
		}
		return nil, err
	}
	s.captureNanos.Add(uint64(time.Since(start).Nanoseconds()))
	s.captures.Add(1)
	s.last.Store(time.Now().UnixNano())
	if s.logger != nil {
		s.logger.Debug("capture.frame", "width", frame.Width(), "height", frame.Height(), "took", time.Since(start))
	}
	return frame, nil
}

func (s *captureService) Stats() Stats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	if captures > 0 {
		avg = time.Duration(total / captures)
	}
	var last time.Time
	if ns := s.last.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return Stats{Captures: captures, Failures: s.failures.Load(), AvgCapture: avg, LastCapture: last}
}
