// Package probe reverse-engineers the resampling kernel of an arbitrary
// image resizer, given only the ability to call it. It generates
// calibrated test patterns, feeds them through the caller-supplied resize
// function, reconstructs the effective kernel from the pixel response,
// matches it against the catalog of known filters, and classifies the
// resizer's boundary handling.
//
// The resize function is treated as an opaque, potentially slow, blocking
// black box. It is invoked once per pattern (twice per full analysis,
// plus once more when edge detection is enabled) and never retried. Each
// analysis call produces an independently owned, immutable Result.
package probe

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"

	"github.com/resamplelab/filterprobe/images"
	"github.com/resamplelab/filterprobe/patterns"
)

// ResizeFunc is the resize adapter contract: resize src to exactly
// dstWidth x dstHeight. Returning any other dimensions aborts the
// analysis with ErrInvalidDimensions.
type ResizeFunc func(src *images.Image, dstWidth, dstHeight int) *images.Image

// ScoringMode selects which reconstructed curve(s) feed the filter
// scorer.
type ScoringMode int

const (
	// ScoreAuto scores the upscale curve, which has the denser and
	// cleaner samples, falling back to the downscale curve if the upscale
	// curve is empty.
	ScoreAuto ScoringMode = iota
	// ScoreUpscale scores only the upscale (line pattern) curve.
	ScoreUpscale
	// ScoreDownscale scores only the downscale (dot pattern) curve.
	ScoreDownscale
	// ScorePooled pools both curves into one series before scoring.
	ScorePooled
)

// Config carries the recognized analysis options. The zero value is a
// valid default configuration.
type Config struct {
	// SRGB linearizes samples before analysis. Set it when the resizer
	// under test filters in linear light.
	SRGB bool
	// DetectEdges enables the boundary-handling classification pass,
	// which costs one extra resize invocation.
	DetectEdges bool
	// LineDstWidth is the destination width for the line pattern resize.
	// Zero selects the default (555). Nonzero values must exceed the
	// 15-pixel source width: the line analyzer needs an upscale.
	LineDstWidth int
	// Scoring selects which curve(s) are scored.
	Scoring ScoringMode
}

// Validate checks the configuration. Violations are reported as
// ErrInvalidConfig by the analysis entry points.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.LineDstWidth, validation.By(validLineDstWidth)),
		validation.Field(&c.Scoring, validation.By(validScoringMode)),
	)
}

func validLineDstWidth(v interface{}) error {
	w := v.(int)
	if w != 0 && w <= patterns.LineSrcWidth {
		return errors.Errorf("must exceed the %d-pixel line source width", patterns.LineSrcWidth)
	}
	return nil
}

func validScoringMode(v interface{}) error {
	m := v.(ScoringMode)
	if m < ScoreAuto || m > ScorePooled {
		return errors.New("unknown scoring mode")
	}
	return nil
}

func (c Config) lineDstWidth() int {
	if c.LineDstWidth == 0 {
		return patterns.LineDstWidth
	}
	return c.LineDstWidth
}

func (c Config) check() error {
	if err := c.Validate(); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

// Result is the complete outcome of probing a resizer.
type Result struct {
	// DownscaleCurve is the curve reconstructed from the dot pattern,
	// nil when the downscale pass was not run.
	DownscaleCurve *Curve
	// UpscaleCurve is the curve reconstructed from the line pattern,
	// nil when the upscale pass was not run.
	UpscaleCurve *Curve
	// Scores holds one entry per scorable catalog filter, ordered by
	// descending correlation.
	Scores []FilterScore
	// EdgeMode is the detected boundary handling, EdgeUnknown when
	// detection was disabled or inconclusive.
	EdgeMode EdgeMode
}

// BestMatch returns the top-ranked score when its correlation clears
// 0.99, or nil when no catalog filter is a convincing match.
func (r *Result) BestMatch() *FilterScore {
	if len(r.Scores) == 0 || r.Scores[0].Correlation <= 0.99 {
		return nil
	}
	return &r.Scores[0]
}

// Analyze runs the full probe: downscale analysis, upscale analysis,
// scoring, and (optionally) edge-mode detection.
func Analyze(resize ResizeFunc, cfg Config) (*Result, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}

	down, err := runDot(resize, cfg)
	if err != nil {
		return nil, err
	}
	up, err := runLine(resize, cfg)
	if err != nil {
		return nil, err
	}

	scores, err := scoreFor(cfg.Scoring, down, up)
	if err != nil {
		return nil, err
	}

	mode := EdgeUnknown
	if cfg.DetectEdges {
		if mode, err = DetectEdgeMode(resize, up, cfg); err != nil {
			return nil, err
		}
	}

	logger().Debug("analysis complete",
		"top", scores[0].String(), "edge", mode.String())

	return &Result{
		DownscaleCurve: down,
		UpscaleCurve:   up,
		Scores:         scores,
		EdgeMode:       mode,
	}, nil
}

// AnalyzeDownscale runs only the dot-pattern pass and scores its curve.
func AnalyzeDownscale(resize ResizeFunc, cfg Config) (*Result, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	down, err := runDot(resize, cfg)
	if err != nil {
		return nil, err
	}
	scores, err := ScoreCurve(down)
	if err != nil {
		return nil, err
	}
	return &Result{DownscaleCurve: down, Scores: scores, EdgeMode: EdgeUnknown}, nil
}

// AnalyzeUpscale runs only the line-pattern pass, scores its curve, and
// optionally detects the edge mode.
func AnalyzeUpscale(resize ResizeFunc, cfg Config) (*Result, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	up, err := runLine(resize, cfg)
	if err != nil {
		return nil, err
	}
	scores, err := ScoreCurve(up)
	if err != nil {
		return nil, err
	}
	mode := EdgeUnknown
	if cfg.DetectEdges {
		if mode, err = DetectEdgeMode(resize, up, cfg); err != nil {
			return nil, err
		}
	}
	return &Result{UpscaleCurve: up, Scores: scores, EdgeMode: mode}, nil
}

func runDot(resize ResizeFunc, cfg Config) (*Curve, error) {
	src := patterns.DotPattern()
	out := resize(src, patterns.DotDstWidth, patterns.DotDstHeight)
	if err := checkDimensions(out, patterns.DotDstWidth, patterns.DotDstHeight); err != nil {
		return nil, errors.WithMessage(err, "dot pattern resize")
	}
	curve, err := AnalyzeDot(out, cfg.SRGB)
	if err != nil {
		return nil, err
	}
	logger().Debug("dot pass done",
		"points", len(curve.Points), "scale", curve.ScaleFactor)
	return curve, nil
}

func runLine(resize ResizeFunc, cfg Config) (*Curve, error) {
	w := cfg.lineDstWidth()
	src := patterns.LinePattern()
	out := resize(src, w, patterns.LineSrcHeight)
	if err := checkDimensions(out, w, patterns.LineSrcHeight); err != nil {
		return nil, errors.WithMessage(err, "line pattern resize")
	}
	curve, err := AnalyzeLine(out, cfg.SRGB)
	if err != nil {
		return nil, err
	}
	logger().Debug("line pass done",
		"points", len(curve.Points), "scale", curve.ScaleFactor, "area", curve.Area)
	return curve, nil
}

// scoreFor picks the scoring series per the configured mode.
func scoreFor(mode ScoringMode, down, up *Curve) ([]FilterScore, error) {
	switch mode {
	case ScoreUpscale:
		return ScoreCurve(up)
	case ScoreDownscale:
		return ScoreCurve(down)
	case ScorePooled:
		pooled := &Curve{
			Points:      make([]ScatterPoint, 0, len(down.Points)+len(up.Points)),
			ScaleFactor: up.ScaleFactor,
			Scatter:     true,
			Direction:   up.Direction,
		}
		pooled.Points = append(pooled.Points, down.Points...)
		pooled.Points = append(pooled.Points, up.Points...)
		sortPoints(pooled.Points)
		return ScoreCurve(pooled)
	default: // ScoreAuto
		if len(up.Points) > 0 {
			return ScoreCurve(up)
		}
		if len(down.Points) > 0 {
			return ScoreCurve(down)
		}
		return nil, errors.Wrap(ErrDegenerateCurve, "both passes produced empty curves")
	}
}
