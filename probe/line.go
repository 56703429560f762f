package probe

import (
	"github.com/pkg/errors"

	"github.com/resamplelab/filterprobe/images"
	"github.com/resamplelab/filterprobe/patterns"
)

// AnalyzeLine reconstructs the filter curve from a resized line pattern
// (upscale analysis). The upscaled bright column renders the kernel
// directly as a horizontal intensity sweep, one sample per output column.
func AnalyzeLine(img *images.Image, srgb bool) (*Curve, error) {
	if !img.Valid() || img.Width == 0 || img.Height == 0 {
		return nil, errors.Wrap(ErrInvalidDimensions, "line image is malformed")
	}

	w := img.Width
	h := img.Height
	scale := float64(w) / float64(patterns.LineSrcWidth)
	scanline := h / 2

	points := make([]ScatterPoint, 0, w)
	tot := 0.0

	for i := 0; i < w; i++ {
		// Cycle reads across scanline-1, scanline, scanline+1 (clamped at
		// the boundaries). The three vertical phases smooth row-level
		// quantization noise without a second resize invocation.
		y := scanline
		if h >= 3 {
			y = scanline + i%3 - 1
			if y < 0 {
				y = 0
			} else if y > h-1 {
				y = h - 1
			}
		}

		weight := (img.Sample(i, y, srgb) - images.DarkLevel) / images.Span
		tot += weight

		offset := 0.5 + float64(i) - float64(w)/2.0

		if scale < 1.0 {
			weight /= scale
		} else {
			offset /= scale
		}

		points = append(points, ScatterPoint{Offset: offset, Weight: weight})
	}

	return &Curve{
		Points:      points,
		Area:        tot / scale,
		ScaleFactor: scale,
		Scatter:     false,
		Direction:   Upscale,
	}, nil
}
