package capture

import (
	"context"

	"github.com/soocke/multiplier-advisor/domain/raster"
)

// Service acquires one frame per call, either of the persisted selection or
// of the full screen, and records instrumentation.
type Service interface {
	Capture(ctx context.Context) (*raster.Buffer, error)
	SetSelectionProvider(func() *raster.Rect)
	Stats() Stats
}
