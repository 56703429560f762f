// Package patterns generates the deterministic calibration images fed to
// the resizer under test. The dot pattern drives downscale analysis, the
// line pattern drives upscale analysis, and the edge pattern drives
// boundary-handling classification. All dimensions and levels are fixed
// compile-time constants; calling a generator twice yields bit-identical
// buffers.
package patterns

import "github.com/resamplelab/filterprobe/images"

// Dot pattern geometry. The pattern is DotNumStrips horizontal bands of
// DotStripHeight rows each; every band carries a dot lattice phase-shifted
// by the band index so that, collectively, the bands sample the kernel at
// DotNumStrips sub-pixel phases.
const (
	// DotSrcWidth is the dot pattern source width.
	DotSrcWidth = 557
	// DotPixelSpan is the horizontal spacing between dots in a strip.
	DotPixelSpan = 25
	// DotNumStrips is the number of phase-shifted strips.
	DotNumStrips = DotPixelSpan
	// DotHCenter is the horizontal margin and the first dot's phase anchor.
	DotHCenter = (DotPixelSpan - 1) / 2 // 12
	// DotStripHeight is the height of one strip in rows.
	DotStripHeight = 11
	// DotVCenter is the dot row within a strip.
	DotVCenter = (DotStripHeight - 1) / 2 // 5
	// DotSrcHeight is the dot pattern source height.
	DotSrcHeight = DotNumStrips * DotStripHeight // 275
	// DotDstWidth is the required destination width for dot analysis:
	// a slight downscale so every output pixel lands at a distinct
	// sub-pixel phase.
	DotDstWidth = DotSrcWidth - 2 // 555
	// DotDstHeight is the required destination height for dot analysis.
	DotDstHeight = DotSrcHeight
)

// Line pattern geometry.
const (
	// LineSrcWidth is the line pattern source width.
	LineSrcWidth = 15
	// LineSrcHeight is the line pattern source height.
	LineSrcHeight = 15
	// LineCenter is the bright column index.
	LineCenter = LineSrcWidth / 2 // 7
	// LineDstWidth is the default destination width for upscale analysis.
	LineDstWidth = 555
	// LineEdgeColumn is the bright column index of the edge pattern.
	LineEdgeColumn = 1
)

// DotPattern generates the downscale calibration image: a dark 557x275
// field where the center row of each 11-row strip carries bright dots
// every 25 columns, phase-shifted by the strip index and confined to the
// interior columns [12, 545).
//
// The placement test uses Go's native truncating modulus, same as the C
// arithmetic this pattern originates from: for columns left of the strip
// index the dividend is negative, the remainder comes out negative, and
// it never equals the (positive) anchor, so no dot is placed there. That
// exclusion is part of the pattern's definition; a floored modulus would
// place extra dots and shift every downstream offset.
func DotPattern() *images.Image {
	img := images.NewUniform(DotSrcWidth, DotSrcHeight, images.DarkLevel)

	for j := 0; j < DotSrcHeight; j++ {
		if j%DotStripHeight != DotVCenter {
			continue
		}
		strip := j / DotStripHeight
		for i := DotHCenter; i < DotSrcWidth-DotHCenter; i++ {
			if (i-strip)%DotPixelSpan == DotHCenter {
				img.Set(i, j, images.BrightLevel)
			}
		}
	}

	return img
}

// LinePattern generates the upscale calibration image: a dark 15x15 field
// with a single bright column at the horizontal center. Upscaling it
// renders the resizer's kernel directly as a horizontal intensity curve.
func LinePattern() *images.Image {
	return columnPattern(LineCenter)
}

// EdgePattern generates the boundary calibration image: like LinePattern
// but with the bright column at x=1, close enough to the left edge that
// any kernel with support past ~1 pixel must sample out of bounds. The
// edge-mode detector reads the resulting boundary response.
func EdgePattern() *images.Image {
	return columnPattern(LineEdgeColumn)
}

func columnPattern(col int) *images.Image {
	img := images.NewUniform(LineSrcWidth, LineSrcHeight, images.DarkLevel)
	for y := 0; y < LineSrcHeight; y++ {
		img.Set(col, y, images.BrightLevel)
	}
	return img
}
