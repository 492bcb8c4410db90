package selection

import (
	"errors"

	"github.com/soocke/multiplier-advisor/domain/raster"
)

// State enumerates the phases of one drag gesture.
type State int

const (
	StateIdle State = iota
	StateSelecting
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned when an event does not apply to the current state.
var ErrInvalidTransition = errors.New("selection: invalid transition")

// Event is the closed set of pointer inputs accepted by Dispatch.
type Event interface{ isEvent() }

type (
	PointerDown   struct{ At raster.Point }
	PointerMove   struct{ At raster.Point }
	PointerUp     struct{ At raster.Point }
	PointerCancel struct{}
)

func (PointerDown) isEvent()   {}
func (PointerMove) isEvent()   {}
func (PointerUp) isEvent()     {}
func (PointerCancel) isEvent() {}

// StateListener is called on each successful state transition.
type StateListener func(prev, next State)

// RectListener receives the live rectangle while dragging.
type RectListener func(r raster.Rect)

// RegionReadyListener receives the finalized rectangle on pointer release.
type RegionReadyListener func(r raster.Rect)
