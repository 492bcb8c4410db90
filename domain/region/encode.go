package region

import (
	"bytes"
	"errors"
	"image"

	"github.com/disintegration/imaging"

	"github.com/soocke/multiplier-advisor/domain/raster"
)

// EncodePNG serializes the buffer losslessly for transmission.
func EncodePNG(buf *raster.Buffer) ([]byte, error) {
	if buf == nil || buf.Width() == 0 || buf.Height() == 0 {
		return nil, errors.New("encode png: empty buffer")
	}
	var out bytes.Buffer
	if err := imaging.Encode(&out, buf, imaging.PNG); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// ScaleToFit scales src with nearest-neighbour sampling so it fits within
// maxW x maxH preserving aspect ratio. A source that already fits is returned as is.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	return imaging.Fit(src, maxW, maxH, imaging.NearestNeighbor)
}
