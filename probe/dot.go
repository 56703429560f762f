package probe

import (
	"math"

	"github.com/pkg/errors"

	"github.com/resamplelab/filterprobe/images"
	"github.com/resamplelab/filterprobe/patterns"
)

// AnalyzeDot reconstructs the filter curve from a resized dot pattern
// (downscale analysis).
//
// Every strip carries a dot lattice at a different sub-pixel phase, so
// each output column of each strip samples the kernel at a distinct
// offset from its nearest dot center. Summing a strip's rows collapses
// the vertical blur, leaving the horizontal kernel response.
func AnalyzeDot(img *images.Image, srgb bool) (*Curve, error) {
	if !img.Valid() {
		return nil, errors.Wrap(ErrInvalidDimensions, "dot image is malformed")
	}
	if img.Height != patterns.DotDstHeight {
		return nil, errors.Wrapf(ErrInvalidDimensions, "dot image height must be %d, got %d",
			patterns.DotDstHeight, img.Height)
	}

	w := img.Width
	scale := float64(w) / float64(patterns.DotSrcWidth)

	var points []ScatterPoint

	for strip := 0; strip < patterns.DotNumStrips; strip++ {
		for dstpos := 0; dstpos < w; dstpos++ {
			// Nearest zero-point search over this strip's dot lattice.
			// The lattice phase shifts per strip, so this is a scan over
			// candidate dot centers, keeping the signed offset with the
			// smallest magnitude.
			offset := 10000.0
			for k := patterns.DotHCenter + strip; k < patterns.DotSrcWidth-patterns.DotHCenter; k += patterns.DotPixelSpan {
				zp := scale*(float64(k)+0.5-float64(patterns.DotSrcWidth)/2.0) +
					float64(w)/2.0 - 0.5
				if tmp := float64(dstpos) - zp; math.Abs(tmp) < math.Abs(offset) {
					offset = tmp
				}
			}

			// Too far from any dot to carry kernel signal.
			if math.Abs(offset) > scale*float64(patterns.DotHCenter) {
				continue
			}

			// Sum over the strip's rows to undo the vertical blur.
			tot := 0.0
			for row := 0; row < patterns.DotStripHeight; row++ {
				y := patterns.DotStripHeight*strip + row
				tot += img.Sample(dstpos, y, srgb) - images.DarkLevel
			}
			weight := tot / images.Span

			// Keep the curve in source-pixel units regardless of scale
			// direction.
			if scale < 1.0 {
				weight /= scale
			} else {
				offset /= scale
			}

			points = append(points, ScatterPoint{Offset: offset, Weight: weight})
		}
	}

	sortPoints(points)

	return &Curve{
		Points:      points,
		ScaleFactor: scale,
		Scatter:     true,
		Direction:   Downscale,
	}, nil
}
