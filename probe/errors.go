package probe

import (
	"github.com/pkg/errors"

	"github.com/resamplelab/filterprobe/images"
)

// Error kinds surfaced by analysis. Wrapped errors carry context; test
// the kind with errors.Is.
var (
	// ErrInvalidDimensions reports that the resize adapter returned an
	// image with dimensions other than the ones requested. Dimension
	// failures abort the whole analysis: all downstream offset and strip
	// arithmetic assumes exact sizes.
	ErrInvalidDimensions = errors.New("resize adapter returned invalid dimensions")

	// ErrDegenerateCurve reports that a reconstructed curve has too few
	// points, or too little variance, to score against any catalog filter.
	ErrDegenerateCurve = errors.New("reconstructed curve is degenerate")

	// ErrInvalidConfig reports contradictory or out-of-range configuration.
	ErrInvalidConfig = errors.New("invalid analysis config")
)

// checkDimensions validates a resize adapter's output against the
// requested dimensions. The adapter is never retried and its output is
// never corrected; a mismatch is the caller's error.
func checkDimensions(img *images.Image, wantWidth, wantHeight int) error {
	if !img.Valid() {
		return errors.Wrap(ErrInvalidDimensions, "adapter returned a malformed image")
	}
	if img.Width != wantWidth || img.Height != wantHeight {
		return errors.Wrapf(ErrInvalidDimensions, "expected %dx%d, got %dx%d",
			wantWidth, wantHeight, img.Width, img.Height)
	}
	return nil
}
