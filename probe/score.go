package probe

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/resamplelab/filterprobe/filters"
)

const (
	// scatterBinWidth is the offset bin size used to average dot-pattern
	// scatter clouds before comparison.
	scatterBinWidth = 0.02
	// supportEpsilon is the weight magnitude below which a point is
	// treated as outside the kernel's influence.
	supportEpsilon = 0.02
	// varianceFloor guards correlation against numerically flat series.
	varianceFloor = 1e-15
)

// FilterScore ranks one catalog filter's fit to a reconstructed curve.
type FilterScore struct {
	// Filter is the catalog entry that was evaluated.
	Filter filters.Filter
	// Correlation is the Pearson coefficient between the observed and
	// expected weight series.
	Correlation float64
	// RMSError is sqrt(mean squared observed-expected difference).
	RMSError float64
	// MaxError is the largest absolute observed-expected difference.
	MaxError float64
	// DetectedSupport is the empirical radius where the reconstructed
	// kernel's influence vanishes.
	DetectedSupport float64
	// ExpectedSupport is the filter's nominal support radius.
	ExpectedSupport float64
}

func (s FilterScore) String() string {
	return fmt.Sprintf("%s: r=%.4f rms=%.4f max=%.4f support=%.2f/%.1f",
		s.Filter, s.Correlation, s.RMSError, s.MaxError,
		s.DetectedSupport, s.ExpectedSupport)
}

// ScoreAgainst scores a reconstructed curve against a single catalog
// filter. It returns an error when the comparison series is degenerate:
// fewer than two points, or zero variance in either the observed or the
// expected weights, which leaves the correlation undefined.
func ScoreAgainst(curve *Curve, f filters.Filter) (FilterScore, error) {
	pts := curve.Points
	if curve.Scatter {
		pts = binScatter(pts, scatterBinWidth)
	}
	if len(pts) < 2 {
		return FilterScore{}, errors.Wrapf(ErrDegenerateCurve,
			"%d comparison points for %s", len(pts), f)
	}

	observed := make([]float64, len(pts))
	expected := make([]float64, len(pts))
	for i, p := range pts {
		observed[i] = p.Weight
		expected[i] = f.Evaluate(p.Offset)
	}

	if stat.Variance(observed, nil) < varianceFloor {
		return FilterScore{}, errors.Wrap(ErrDegenerateCurve, "observed weights have no variance")
	}
	if stat.Variance(expected, nil) < varianceFloor {
		return FilterScore{}, errors.Wrapf(ErrDegenerateCurve,
			"%s is flat across the curve's offsets", f)
	}

	r := stat.Correlation(observed, expected, nil)
	if math.IsNaN(r) {
		return FilterScore{}, errors.Wrapf(ErrDegenerateCurve, "correlation undefined for %s", f)
	}

	var sumSq, maxErr float64
	for i := range observed {
		d := observed[i] - expected[i]
		sumSq += d * d
		if ad := math.Abs(d); ad > maxErr {
			maxErr = ad
		}
	}

	return FilterScore{
		Filter:          f,
		Correlation:     r,
		RMSError:        math.Sqrt(sumSq / float64(len(observed))),
		MaxError:        maxErr,
		DetectedSupport: curveSupport(pts),
		ExpectedSupport: f.Support(),
	}, nil
}

// ScoreCurve scores a curve against every named catalog filter and
// returns the results sorted by descending correlation, ties broken by
// ascending RMS error. A filter whose comparison is locally degenerate is
// omitted; if every filter fails, the curve itself is degenerate.
func ScoreCurve(curve *Curve) ([]FilterScore, error) {
	catalog := filters.AllNamed()
	scores := make([]FilterScore, 0, len(catalog))

	for _, f := range catalog {
		s, err := ScoreAgainst(curve, f)
		if err != nil {
			logger().Warn("filter dropped from scoring", "filter", f.String(), "err", err)
			continue
		}
		scores = append(scores, s)
	}

	if len(scores) == 0 {
		return nil, errors.Wrapf(ErrDegenerateCurve,
			"no catalog filter could be scored against the %s curve", curve.Direction)
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Correlation != scores[j].Correlation {
			return scores[i].Correlation > scores[j].Correlation
		}
		return scores[i].RMSError < scores[j].RMSError
	})

	return scores, nil
}
