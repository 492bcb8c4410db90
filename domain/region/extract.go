package region

import (
	"errors"
	"fmt"

	"github.com/soocke/multiplier-advisor/domain/raster"
)

// ErrInvalidRegion rejects crops that are degenerate or leave the source frame.
var ErrInvalidRegion = errors.New("invalid region")

// Extract copies the pixels under rect into a new buffer of rect's size.
// The source is never written and the result shares no memory with it.
func Extract(frame *raster.Buffer, rect raster.Rect) (*raster.Buffer, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrInvalidRegion)
	}
	if rect.Empty() {
		return nil, fmt.Errorf("%w: degenerate rect %v", ErrInvalidRegion, rect)
	}
	if !frame.Contains(rect) {
		return nil, fmt.Errorf("%w: rect %v exceeds frame %dx%d", ErrInvalidRegion, rect, frame.Width(), frame.Height())
	}
	return frame.Crop(rect), nil
}
