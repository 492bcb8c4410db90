package view

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/soocke/multiplier-advisor/domain/raster"
	"github.com/soocke/multiplier-advisor/domain/region"
)

// PreviewWriter keeps the latest display buffer and writes it to a PNG file
// on Flush, scaled down to fit maxW x maxH.
type PreviewWriter struct {
	path       string
	maxW, maxH int
	logger     *slog.Logger
	latest     *image.RGBA
}

func NewPreviewWriter(path string, maxW, maxH int, logger *slog.Logger) *PreviewWriter {
	return &PreviewWriter{path: path, maxW: maxW, maxH: maxH, logger: logger}
}

// ShowPreview copies buf; the caller may recycle it afterwards.
func (w *PreviewWriter) ShowPreview(buf *raster.Buffer) {
	if w == nil || buf == nil {
		return
	}
	w.latest = buf.Image()
}

// Flush writes the latest preview. It is a no-op without a path or a preview.
func (w *PreviewWriter) Flush() error {
	if w == nil || w.path == "" || w.latest == nil {
		return nil
	}
	scaled := region.ScaleToFit(w.latest, w.maxW, w.maxH)
	data, err := region.EncodePNG(raster.FromImage(scaled))
	if err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preview dir: %w", err)
		}
	}
	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return fmt.Errorf("replace preview: %w", err)
	}
	if w.logger != nil {
		b := scaled.Bounds()
		w.logger.Info("preview written", "path", w.path, "width", b.Dx(), "height", b.Dy(), "size", humanize.Bytes(uint64(len(data))))
	}
	return nil
}
