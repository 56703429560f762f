package probe

import (
	"math"

	"github.com/resamplelab/filterprobe/images"
	"github.com/resamplelab/filterprobe/patterns"
)

// EdgeMode classifies how a resizer extends source samples past the image
// boundary.
type EdgeMode int

const (
	// EdgeUnknown means boundary handling could not be determined: the
	// kernel never meaningfully samples out of bounds, or no candidate
	// rule fit the observed response.
	EdgeUnknown EdgeMode = iota
	// EdgeClamp repeats the boundary sample.
	EdgeClamp
	// EdgeReflect mirrors samples across the boundary.
	EdgeReflect
	// EdgeWrap wraps samples periodically.
	EdgeWrap
	// EdgeZero treats out-of-bounds samples as true zero (black), below
	// the pattern's dark background.
	EdgeZero
)

func (m EdgeMode) String() string {
	switch m {
	case EdgeClamp:
		return "Clamp"
	case EdgeReflect:
		return "Reflect"
	case EdgeWrap:
		return "Wrap"
	case EdgeZero:
		return "Zero"
	default:
		return "Unknown"
	}
}

const (
	// edgeTolerance is the largest RMS discrepancy at which the
	// best-fitting rule is still reported.
	edgeTolerance = 0.08
	// edgeSpreadMin is the minimum disagreement between candidate rules'
	// predictions for the boundary response to be informative at all.
	edgeSpreadMin = 0.02
)

// DetectEdgeMode classifies the resizer's boundary handling.
//
// It resizes the edge pattern (bright column at x=1) and, for each
// candidate rule, synthesizes the boundary response the already
// reconstructed kernel would produce under that rule. The rule with the
// smallest RMS discrepancy from the observed response wins, provided the
// discrepancy is within tolerance and the rules disagree enough to be
// distinguishable; otherwise the result is EdgeUnknown.
//
// The kernel estimate normally comes from the upscale (line) curve. This
// costs one extra resize invocation: the dot and line patterns keep their
// bright features far from the boundary, so they carry no edge signal.
func DetectEdgeMode(resize ResizeFunc, kernel *Curve, cfg Config) (EdgeMode, error) {
	if kernel == nil || len(kernel.Points) == 0 {
		return EdgeUnknown, nil
	}

	w := cfg.lineDstWidth()
	h := patterns.LineSrcHeight
	out := resize(patterns.EdgePattern(), w, h)
	if err := checkDimensions(out, w, h); err != nil {
		return EdgeUnknown, err
	}

	scale := float64(w) / float64(patterns.LineSrcWidth)
	scanline := h / 2

	observed := make([]float64, w)
	for i := range observed {
		observed[i] = (out.Sample(i, scanline, cfg.SRGB) - images.DarkLevel) / images.Span
	}

	k := kernelInterpolator(kernel)
	r := curveSupport(kernel.Points)
	if r <= 0 {
		return EdgeUnknown, nil
	}
	pad := int(math.Ceil(r)) + 1

	// Destination columns whose kernel footprint can cross a boundary.
	var window []int
	for i := 0; i < w; i++ {
		center := (float64(i)+0.5)/scale - 0.5
		if center <= r+1 || center >= float64(patterns.LineSrcWidth-1)-(r+1) {
			window = append(window, i)
		}
	}
	if len(window) == 0 {
		return EdgeUnknown, nil
	}

	rules := []EdgeMode{EdgeClamp, EdgeReflect, EdgeWrap, EdgeZero}
	expected := make([][]float64, len(rules))
	for ri, rule := range rules {
		exp := make([]float64, len(window))
		for wi, i := range window {
			center := (float64(i)+0.5)/scale - 0.5
			sum := 0.0
			for src := -pad; src < patterns.LineSrcWidth+pad; src++ {
				kv := k(float64(src) - center)
				if kv == 0 {
					continue
				}
				sum += sourceLevel(src, rule) * kv
			}
			exp[wi] = sum
		}
		expected[ri] = exp
	}

	// If every rule predicts the same boundary response, the kernel is
	// too narrow to expose the resizer's edge handling.
	spread := 0.0
	for wi := range window {
		lo, hi := math.Inf(1), math.Inf(-1)
		for ri := range rules {
			v := expected[ri][wi]
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		spread = math.Max(spread, hi-lo)
	}
	if spread < edgeSpreadMin {
		return EdgeUnknown, nil
	}

	best := EdgeUnknown
	bestRMS := math.Inf(1)
	for ri, rule := range rules {
		sumSq := 0.0
		for wi, i := range window {
			d := observed[i] - expected[ri][wi]
			sumSq += d * d
		}
		rms := math.Sqrt(sumSq / float64(len(window)))
		logger().Debug("edge rule fit", "rule", rule.String(), "rms", rms)
		if rms < bestRMS {
			bestRMS = rms
			best = rule
		}
	}
	if bestRMS > edgeTolerance {
		return EdgeUnknown, nil
	}
	return best, nil
}

// sourceLevel returns the normalized edge-pattern signal at source column
// src under the given extension rule: 1 at the bright column, 0 on the
// dark background, and the sub-background level where the rule
// substitutes true zero.
func sourceLevel(src int, rule EdgeMode) float64 {
	const n = patterns.LineSrcWidth

	if src < 0 || src >= n {
		switch rule {
		case EdgeReflect:
			for src < 0 || src >= n {
				if src < 0 {
					src = -src - 1
				} else {
					src = 2*n - src - 1
				}
			}
		case EdgeWrap:
			src %= n
			if src < 0 {
				src += n
			}
		case EdgeZero:
			// Raw zero sits DarkLevel below the background baseline.
			return -float64(images.DarkLevel) / images.Span
		default: // clamp
			if src < 0 {
				src = 0
			} else {
				src = n - 1
			}
		}
	}

	if src == patterns.LineEdgeColumn {
		return 1
	}
	return 0
}
