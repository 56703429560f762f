package probe

import (
	"github.com/pkg/errors"

	"github.com/resamplelab/filterprobe/images"
)

// SSIM computes the structural similarity between two equal-sized
// grayscale images using 8x8 block statistics with the standard
// constants. It exists for cross-validation: compare a real resizer's
// output against the reference resize of the filter the probe detected.
// Images smaller than one block fall back to a single global comparison.
func SSIM(a, b *images.Image) (float64, error) {
	if !a.Valid() || !b.Valid() {
		return 0, errors.Wrap(ErrInvalidDimensions, "ssim input is malformed")
	}
	if a.Width != b.Width || a.Height != b.Height {
		return 0, errors.Wrapf(ErrInvalidDimensions, "ssim inputs differ: %dx%d vs %dx%d",
			a.Width, a.Height, b.Width, b.Height)
	}

	const (
		k1    = 0.01
		k2    = 0.03
		level = 255.0
		block = 8
	)
	c1 := (k1 * level) * (k1 * level)
	c2 := (k2 * level) * (k2 * level)

	if a.Width < block || a.Height < block {
		return blockSSIM(a.Pix, b.Pix, c1, c2), nil
	}

	blocksX := a.Width / block
	blocksY := a.Height / block
	total := 0.0

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			pa := make([]uint8, 0, block*block)
			pb := make([]uint8, 0, block*block)
			for dy := 0; dy < block; dy++ {
				row := (by*block + dy) * a.Width
				pa = append(pa, a.Pix[row+bx*block:row+bx*block+block]...)
				pb = append(pb, b.Pix[row+bx*block:row+bx*block+block]...)
			}
			total += blockSSIM(pa, pb, c1, c2)
		}
	}

	return total / float64(blocksX*blocksY), nil
}

func blockSSIM(a, b []uint8, c1, c2 float64) float64 {
	n := float64(len(a))
	var sumA, sumB, sumAA, sumBB, sumAB float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		sumA += va
		sumB += vb
		sumAA += va * va
		sumBB += vb * vb
		sumAB += va * vb
	}

	meanA := sumA / n
	meanB := sumB / n
	varA := sumAA/n - meanA*meanA
	varB := sumBB/n - meanB*meanB
	cov := sumAB/n - meanA*meanB

	num := (2.0*meanA*meanB + c1) * (2.0*cov + c2)
	den := (meanA*meanA + meanB*meanB + c1) * (varA + varB + c2)
	return num / den
}
