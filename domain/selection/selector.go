package selection

import (
	"fmt"
	"log/slog"

	"github.com/soocke/multiplier-advisor/domain/raster"
)

// Selector turns pointer events over a w x h surface into a normalized
// rectangle. It is driven by a single consumer and holds no locks. Pointer
// positions are clamped to pixel indices, so the widest drag is
// (w-1) x (h-1).
type Selector struct {
	w, h    int
	state   State
	anchor  raster.Point
	current raster.Point
	rect    raster.Rect
	logger  *slog.Logger
	onState []StateListener
	onMove  []RectListener
	onReady []RegionReadyListener
}

// NewSelector returns an idle selector over a surface of the given size.
func NewSelector(w, h int, logger *slog.Logger) *Selector {
	return &Selector{w: w, h: h, logger: logger}
}

func (s *Selector) AddStateListener(l StateListener)       { s.onState = append(s.onState, l) }
func (s *Selector) AddMoveListener(l RectListener)         { s.onMove = append(s.onMove, l) }
func (s *Selector) AddReadyListener(l RegionReadyListener) { s.onReady = append(s.onReady, l) }
func (s *Selector) Current() State                         { return s.state }

// Rect returns the live rectangle while selecting and the final one once committed.
func (s *Selector) Rect() (raster.Rect, bool) {
	if s.state == StateIdle {
		return raster.Rect{}, false
	}
	return s.rect, true
}

// Resize points the selector at a new surface and drops any gesture in progress.
func (s *Selector) Resize(w, h int) {
	s.w, s.h = w, h
	s.anchor, s.current, s.rect = raster.Point{}, raster.Point{}, raster.Rect{}
	s.transition(StateIdle)
}

// Dispatch applies one input event.
func (s *Selector) Dispatch(ev Event) error {
	switch e := ev.(type) {
	case PointerDown:
		if s.state == StateSelecting {
			return s.reject("down")
		}
		s.anchor = e.At.Clamp(s.w, s.h)
		s.current = s.anchor
		s.rect = raster.RectFromPoints(s.anchor, s.current)
		s.transition(StateSelecting)
	case PointerMove:
		if s.state != StateSelecting {
			return s.reject("move")
		}
		s.current = e.At.Clamp(s.w, s.h)
		s.rect = raster.RectFromPoints(s.anchor, s.current)
		for _, l := range s.onMove {
			l(s.rect)
		}
	case PointerUp:
		if s.state != StateSelecting {
			return s.reject("up")
		}
		s.current = e.At.Clamp(s.w, s.h)
		s.rect = raster.RectFromPoints(s.anchor, s.current)
		s.transition(StateCommitted)
		for _, l := range s.onReady {
			l(s.rect)
		}
	case PointerCancel:
		if s.state != StateSelecting {
			return nil
		}
		s.rect = raster.Rect{}
		s.transition(StateIdle)
	default:
		return fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, ev)
	}
	return nil
}

func (s *Selector) Begin(p raster.Point) error { return s.Dispatch(PointerDown{At: p}) }
func (s *Selector) Move(p raster.Point) error  { return s.Dispatch(PointerMove{At: p}) }
func (s *Selector) End(p raster.Point) error   { return s.Dispatch(PointerUp{At: p}) }

// Cancel abandons a drag in progress. It is a no-op outside Selecting.
func (s *Selector) Cancel() { _ = s.Dispatch(PointerCancel{}) }

func (s *Selector) reject(event string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, event, s.state)
}

func (s *Selector) transition(next State) {
	prev := s.state
	if prev == next {
		return
	}
	s.state = next
	if s.logger != nil {
		s.logger.Debug("selection state transition", "from", prev.String(), "to", next.String(), "rect", s.rect.String())
	}
	for _, l := range s.onState {
		l(prev, next)
	}
}
