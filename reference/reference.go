// Package reference computes mathematically exact resampling weight
// tables for the catalog filters and applies them as a separable resize.
// It is the scoring ground truth: analyzers are validated against images
// produced here, and callers can compare a real resizer's output against
// the exact output of a chosen filter.
package reference

import (
	"math"

	"github.com/resamplelab/filterprobe/filters"
	"github.com/resamplelab/filterprobe/images"
)

// EdgeRule selects how source samples are extended past the image
// boundary when a kernel's support reaches out of bounds.
// - Clamp: repeats the edge pixel (the common default).
// - Reflect: mirrors coordinates across the boundary.
// - Wrap: tiles the image periodically.
// - Zero: out-of-bounds samples contribute nothing; the kernel weight
//   that falls outside is lost rather than renormalized, dimming edges.
type EdgeRule int

const (
	EdgeClamp EdgeRule = iota
	EdgeReflect
	EdgeWrap
	EdgeZero
)

// WeightEntry is one source pixel's contribution to an output pixel.
type WeightEntry struct {
	// SrcPixel is the in-bounds source pixel index.
	SrcPixel int
	// Weight is the normalized contribution weight.
	Weight float64
}

// PixelWeights is the full contribution list for one output pixel.
type PixelWeights struct {
	Entries []WeightEntry
}

// ComputeWeights returns the exact per-output-pixel weight table for a 1-D
// resize from srcSize to dstSize samples with the given filter, using
// clamp edge handling. Weights for each output pixel sum to 1.
func ComputeWeights(f filters.Filter, srcSize, dstSize int) []PixelWeights {
	return ComputeWeightsEdge(f, srcSize, dstSize, EdgeClamp)
}

// ComputeWeightsEdge is ComputeWeights with an explicit edge rule.
//
// On downscale the kernel is stretched by the inverse scale so its
// support covers the correct source footprint. Out-of-bounds taps are
// remapped per the rule and merged into the entry of the pixel they
// resolve to; under EdgeZero they are dropped, but their weight still
// participates in normalization, so the retained weights sum to less
// than 1 near the boundary.
func ComputeWeightsEdge(f filters.Filter, srcSize, dstSize int, edge EdgeRule) []PixelWeights {
	scale := float64(dstSize) / float64(srcSize)
	filterScale := 1.0
	if scale < 1.0 {
		filterScale = 1.0 / scale
	}
	support := f.Support() * filterScale

	table := make([]PixelWeights, 0, dstSize)

	for dstX := 0; dstX < dstSize; dstX++ {
		// Center of this output pixel in source coordinates.
		center := (float64(dstX)+0.5)/scale - 0.5

		left := int(math.Ceil(center - support))
		right := int(math.Floor(center + support))

		var entries []WeightEntry
		total := 0.0

		for srcX := left; srcX <= right; srcX++ {
			w := f.Evaluate((float64(srcX) - center) / filterScale)
			if math.Abs(w) <= 1e-12 {
				continue
			}
			total += w

			idx, ok := mapSource(srcX, srcSize, edge)
			if !ok {
				continue
			}

			merged := false
			for e := range entries {
				if entries[e].SrcPixel == idx {
					entries[e].Weight += w
					merged = true
					break
				}
			}
			if !merged {
				entries = append(entries, WeightEntry{SrcPixel: idx, Weight: w})
			}
		}

		if math.Abs(total) > 1e-12 {
			for e := range entries {
				entries[e].Weight /= total
			}
		}

		table = append(table, PixelWeights{Entries: entries})
	}

	return table
}

// mapSource resolves a possibly out-of-bounds source index per the edge
// rule. The second return is false when the tap contributes nothing
// (EdgeZero out of bounds).
func mapSource(i, n int, edge EdgeRule) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	switch edge {
	case EdgeReflect:
		// Mirror within [0, n-1] with no double-counting of the edge.
		if n == 1 {
			return 0, true
		}
		for i < 0 || i >= n {
			if i < 0 {
				i = -i - 1
			} else {
				i = 2*n - i - 1
			}
		}
		return i, true
	case EdgeWrap:
		i %= n
		if i < 0 {
			i += n
		}
		return i, true
	case EdgeZero:
		return 0, false
	default:
		if i < 0 {
			return 0, true
		}
		return n - 1, true
	}
}

// PerfectResize resizes src to dstWidth x dstHeight by applying the exact
// weight tables for the given filter, with clamp edge handling.
func PerfectResize(src *images.Image, dstWidth, dstHeight int, f filters.Filter) *images.Image {
	return PerfectResizeEdge(src, dstWidth, dstHeight, f, EdgeClamp)
}

// PerfectResizeEdge is PerfectResize with an explicit edge rule. The
// resize is separable: a horizontal pass over every row, then a vertical
// pass over every column when the height changes. Each pass rounds to
// 8-bit samples, matching how real integer-pipeline resizers accumulate.
func PerfectResizeEdge(src *images.Image, dstWidth, dstHeight int, f filters.Filter, edge EdgeRule) *images.Image {
	hw := ComputeWeightsEdge(f, src.Width, dstWidth, edge)

	temp := images.New(dstWidth, src.Height)
	parallelRows(src.Height, func(rowStart, rowEnd int) {
		for y := rowStart; y < rowEnd; y++ {
			row := src.Pix[y*src.Width : (y+1)*src.Width]
			out := temp.Pix[y*dstWidth : (y+1)*dstWidth]
			for x, pw := range hw {
				out[x] = applyWeights(pw, row, 1)
			}
		}
	})

	if dstHeight == src.Height {
		return temp
	}

	vw := ComputeWeightsEdge(f, src.Height, dstHeight, edge)
	dst := images.New(dstWidth, dstHeight)
	parallelRows(dstWidth, func(colStart, colEnd int) {
		for x := colStart; x < colEnd; x++ {
			col := temp.Pix[x:]
			for y, pw := range vw {
				dst.Pix[y*dstWidth+x] = applyWeights(pw, col, dstWidth)
			}
		}
	})

	return dst
}

// applyWeights accumulates one output sample from a strided sample slice.
func applyWeights(pw PixelWeights, samples []uint8, stride int) uint8 {
	val := 0.0
	for _, e := range pw.Entries {
		val += float64(samples[e.SrcPixel*stride]) * e.Weight
	}
	r := math.Round(val)
	if r < 0 {
		r = 0
	} else if r > 255 {
		r = 255
	}
	return uint8(r)
}
