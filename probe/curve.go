package probe

import (
	"math"
	"sort"
)

// Direction tags which pass produced a reconstructed curve.
type Direction int

const (
	// Downscale marks a curve reconstructed from the dot pattern.
	Downscale Direction = iota
	// Upscale marks a curve reconstructed from the line pattern.
	Upscale
)

func (d Direction) String() string {
	if d == Downscale {
		return "downscale"
	}
	return "upscale"
}

// ScatterPoint is one empirical sample of the reconstructed kernel:
// a position relative to the kernel center, in source-pixel units, and
// the kernel's approximate value there.
type ScatterPoint struct {
	Offset float64
	Weight float64
}

// Curve is a full reconstructed filter curve: the scatter points ordered
// by offset, tagged with the direction and scale factor that produced
// them. Curves are immutable once returned.
type Curve struct {
	// Points ordered by ascending offset.
	Points []ScatterPoint
	// Area is the kernel integral, reported for line-pattern curves
	// (~1.0 for a normalized filter). Zero for scatter data, where it is
	// not well defined.
	Area float64
	// ScaleFactor is dstWidth / srcWidth for the resize that produced
	// this curve.
	ScaleFactor float64
	// Scatter is true for dot-pattern curves, whose points are noisy
	// per-strip samples and get binned before scoring, and false for
	// line-pattern curves, which form a dense connected sweep.
	Scatter bool
	// Direction records which analyzer produced the curve.
	Direction Direction
}

// sortPoints orders points by ascending offset in place.
func sortPoints(points []ScatterPoint) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Offset < points[j].Offset
	})
}

// binScatter averages scatter points into uniform offset bins, turning a
// noisy per-strip cloud into a single comparable series. Input need not
// be sorted; output is ordered by bin center.
func binScatter(points []ScatterPoint, binWidth float64) []ScatterPoint {
	if len(points) == 0 {
		return nil
	}

	minX := math.Inf(1)
	maxX := math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.Offset)
		maxX = math.Max(maxX, p.Offset)
	}

	nBins := int(math.Ceil((maxX-minX)/binWidth)) + 1
	sums := make([]float64, nBins)
	counts := make([]int, nBins)

	for _, p := range points {
		bin := int(math.Floor((p.Offset - minX) / binWidth))
		if bin > nBins-1 {
			bin = nBins - 1
		}
		sums[bin] += p.Weight
		counts[bin]++
	}

	out := make([]ScatterPoint, 0, nBins)
	for i, c := range counts {
		if c == 0 {
			continue
		}
		out = append(out, ScatterPoint{
			Offset: minX + (float64(i)+0.5)*binWidth,
			Weight: sums[i] / float64(c),
		})
	}
	return out
}

// kernelInterpolator turns a curve into a callable kernel estimate:
// linear interpolation between neighboring points, zero outside the
// sampled range. Scatter curves are binned first.
func kernelInterpolator(c *Curve) func(x float64) float64 {
	pts := c.Points
	if c.Scatter {
		pts = binScatter(pts, scatterBinWidth)
	}
	return func(x float64) float64 {
		n := len(pts)
		if n == 0 || x < pts[0].Offset || x > pts[n-1].Offset {
			return 0
		}
		i := sort.Search(n, func(i int) bool { return pts[i].Offset >= x })
		if i == 0 {
			return pts[0].Weight
		}
		a, b := pts[i-1], pts[i]
		span := b.Offset - a.Offset
		if span <= 0 {
			return a.Weight
		}
		t := (x - a.Offset) / span
		return a.Weight + t*(b.Weight-a.Weight)
	}
}

// curveSupport estimates where the reconstructed kernel's influence
// vanishes: the largest |offset| among points whose |weight| exceeds
// supportEpsilon.
func curveSupport(points []ScatterPoint) float64 {
	r := 0.0
	for _, p := range points {
		if math.Abs(p.Weight) > supportEpsilon {
			r = math.Max(r, math.Abs(p.Offset))
		}
	}
	return r
}
