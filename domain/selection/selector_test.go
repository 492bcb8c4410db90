package selection

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/soocke/multiplier-advisor/domain/raster"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type transitionRecorder struct {
	seq   []State
	moves []raster.Rect
	ready []raster.Rect
}

func (r *transitionRecorder) attach(s *Selector) {
	s.AddStateListener(func(prev, next State) { r.seq = append(r.seq, next) })
	s.AddMoveListener(func(rect raster.Rect) { r.moves = append(r.moves, rect) })
	s.AddReadyListener(func(rect raster.Rect) { r.ready = append(r.ready, rect) })
}

func TestSelector_DragCommitsNormalizedRect(t *testing.T) {
	s := NewSelector(20, 20, discardLogger)
	r := &transitionRecorder{}
	r.attach(s)
	if err := s.Begin(raster.Pt(5, 5)); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.Move(raster.Pt(3, 8)); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := s.End(raster.Pt(2, 9)); err != nil {
		t.Fatalf("end: %v", err)
	}
	if s.Current() != StateCommitted {
		t.Fatalf("expected committed, got %v", s.Current())
	}
	want := raster.Rect{X: 2, Y: 5, W: 3, H: 4}
	if got, ok := s.Rect(); !ok || got != want {
		t.Fatalf("expected %v got %v (ok=%v)", want, got, ok)
	}
	if len(r.ready) != 1 || r.ready[0] != want {
		t.Fatalf("expected one regionReady with %v, got %v", want, r.ready)
	}
	if len(r.moves) != 1 || r.moves[0] != (raster.Rect{X: 3, Y: 5, W: 2, H: 3}) {
		t.Fatalf("unexpected live rects %v", r.moves)
	}
	if len(r.seq) != 2 || r.seq[0] != StateSelecting || r.seq[1] != StateCommitted {
		t.Fatalf("unexpected transitions %v", r.seq)
	}
}

func TestSelector_InvalidEventsLeaveStateUnchanged(t *testing.T) {
	s := NewSelector(10, 10, discardLogger)
	if err := s.Move(raster.Pt(1, 1)); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("move from idle: expected ErrInvalidTransition, got %v", err)
	}
	if err := s.End(raster.Pt(1, 1)); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("end from idle: expected ErrInvalidTransition, got %v", err)
	}
	if s.Current() != StateIdle {
		t.Fatalf("expected idle, got %v", s.Current())
	}
	_ = s.Begin(raster.Pt(1, 1))
	if err := s.Begin(raster.Pt(2, 2)); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("double begin: expected ErrInvalidTransition, got %v", err)
	}
	if s.Current() != StateSelecting {
		t.Fatalf("expected selecting, got %v", s.Current())
	}
	_ = s.End(raster.Pt(4, 4))
	if err := s.Move(raster.Pt(5, 5)); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("move after commit: expected ErrInvalidTransition, got %v", err)
	}
	if got, _ := s.Rect(); got != (raster.Rect{X: 1, Y: 1, W: 3, H: 3}) {
		t.Fatalf("committed rect changed: %v", got)
	}
}

func TestSelector_RebeginFromCommittedRestarts(t *testing.T) {
	s := NewSelector(10, 10, discardLogger)
	_ = s.Begin(raster.Pt(0, 0))
	_ = s.End(raster.Pt(5, 5))
	if err := s.Begin(raster.Pt(8, 8)); err != nil {
		t.Fatalf("re-begin: %v", err)
	}
	if s.Current() != StateSelecting {
		t.Fatalf("expected selecting, got %v", s.Current())
	}
	if got, _ := s.Rect(); got != (raster.Rect{X: 8, Y: 8}) {
		t.Fatalf("previous rect not discarded: %v", got)
	}
}

func TestSelector_DegenerateRectIsCommitted(t *testing.T) {
	s := NewSelector(10, 10, discardLogger)
	_ = s.Begin(raster.Pt(4, 4))
	if err := s.End(raster.Pt(4, 9)); err != nil {
		t.Fatalf("end: %v", err)
	}
	got, ok := s.Rect()
	if !ok || !got.Empty() || s.Current() != StateCommitted {
		t.Fatalf("expected committed empty rect, got %v state=%v", got, s.Current())
	}
}

func TestSelector_CancelAbandonsDrag(t *testing.T) {
	s := NewSelector(10, 10, discardLogger)
	r := &transitionRecorder{}
	r.attach(s)
	_ = s.Begin(raster.Pt(1, 1))
	_ = s.Move(raster.Pt(6, 6))
	s.Cancel()
	if s.Current() != StateIdle {
		t.Fatalf("expected idle after cancel, got %v", s.Current())
	}
	if _, ok := s.Rect(); ok {
		t.Fatalf("expected no rect after cancel")
	}
	if len(r.ready) != 0 {
		t.Fatalf("cancel must not emit regionReady")
	}
	s.Cancel()
	if s.Current() != StateIdle {
		t.Fatalf("cancel from idle changed state: %v", s.Current())
	}
}

func TestSelector_ClampsPointsOutsideSurface(t *testing.T) {
	s := NewSelector(10, 8, discardLogger)
	_ = s.Begin(raster.Pt(-4, 2))
	_ = s.End(raster.Pt(50, 50))
	got, _ := s.Rect()
	if got != (raster.Rect{X: 0, Y: 2, W: 9, H: 5}) {
		t.Fatalf("unexpected clamped rect %v", got)
	}
}

func TestSelector_FullDragSpansPixelIndices(t *testing.T) {
	s := NewSelector(10, 10, discardLogger)
	_ = s.Begin(raster.Pt(0, 0))
	_ = s.End(raster.Pt(10, 10))
	got, _ := s.Rect()
	if got != (raster.Rect{X: 0, Y: 0, W: 9, H: 9}) || !got.Within(10, 10) {
		t.Fatalf("corner-to-corner drag should end on the last pixel, got %v", got)
	}
}

func TestSelector_ResizeResetsGesture(t *testing.T) {
	s := NewSelector(10, 10, discardLogger)
	_ = s.Begin(raster.Pt(1, 1))
	s.Resize(30, 30)
	if s.Current() != StateIdle {
		t.Fatalf("expected idle after resize, got %v", s.Current())
	}
	_ = s.Begin(raster.Pt(25, 25))
	_ = s.End(raster.Pt(29, 29))
	if got, _ := s.Rect(); got != (raster.Rect{X: 25, Y: 25, W: 4, H: 4}) {
		t.Fatalf("unexpected rect on resized surface %v", got)
	}
}

func TestSelector_DispatchRejectsUnknownEvent(t *testing.T) {
	s := NewSelector(10, 10, discardLogger)
	if err := s.Dispatch(nil); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestState_String(t *testing.T) {
	if StateIdle.String() != "idle" || StateSelecting.String() != "selecting" || StateCommitted.String() != "committed" || State(42).String() != "unknown" {
		t.Fatalf("unexpected state names")
	}
}
