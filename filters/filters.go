// Package filters implements the closed catalog of known resampling
// kernels that reconstructed curves are matched against. Each filter is
// pure data: an evaluation formula plus a nominal support radius, with no
// state and no dispatch beyond a tag switch.
package filters

import (
	"fmt"
	"math"
)

type kind int

const (
	kindBox kind = iota
	kindTriangle
	kindHermite
	kindCatmullRom
	kindMitchell
	kindBSpline
	kindLanczos2
	kindLanczos3
	kindLanczos4
	kindMitchellNetravali
)

// Filter identifies one catalog kernel. The zero value is Box.
//
// The catalog is a fixed set of variants; the only open parameterization
// is the Mitchell-Netravali B/C family, constructed with
// MitchellNetravali.
type Filter struct {
	kind kind
	b, c float64
}

// The named catalog entries.
var (
	Box        = Filter{kind: kindBox}
	Triangle   = Filter{kind: kindTriangle}
	Hermite    = Filter{kind: kindHermite}
	CatmullRom = Filter{kind: kindCatmullRom}
	Mitchell   = Filter{kind: kindMitchell}
	BSpline    = Filter{kind: kindBSpline}
	Lanczos2   = Filter{kind: kindLanczos2}
	Lanczos3   = Filter{kind: kindLanczos3}
	Lanczos4   = Filter{kind: kindLanczos4}
)

// MitchellNetravali returns the cubic filter with the given B and C
// parameters. (0, 0.5) is Catmull-Rom, (1/3, 1/3) is Mitchell, (1, 0) is
// the cubic B-spline.
func MitchellNetravali(b, c float64) Filter {
	return Filter{kind: kindMitchellNetravali, b: b, c: c}
}

// AllNamed returns the named catalog entries scored by default.
// The parameterized Mitchell-Netravali family is excluded; callers score
// specific B/C combinations explicitly.
func AllNamed() []Filter {
	return []Filter{
		Box, Triangle, Hermite, CatmullRom, Mitchell,
		BSpline, Lanczos2, Lanczos3, Lanczos4,
	}
}

// Name returns the filter family name.
func (f Filter) Name() string {
	switch f.kind {
	case kindBox:
		return "Box"
	case kindTriangle:
		return "Triangle"
	case kindHermite:
		return "Hermite"
	case kindCatmullRom:
		return "Catmull-Rom"
	case kindMitchell:
		return "Mitchell"
	case kindBSpline:
		return "B-Spline"
	case kindLanczos2:
		return "Lanczos2"
	case kindLanczos3:
		return "Lanczos3"
	case kindLanczos4:
		return "Lanczos4"
	default:
		return "Mitchell-Netravali"
	}
}

func (f Filter) String() string {
	if f.kind == kindMitchellNetravali {
		return fmt.Sprintf("Mitchell-Netravali(B=%.3f, C=%.3f)", f.b, f.c)
	}
	return f.Name()
}

// Support returns the nominal support radius: the distance beyond which
// Evaluate is zero.
func (f Filter) Support() float64 {
	switch f.kind {
	case kindBox:
		return 0.5
	case kindTriangle, kindHermite:
		return 1.0
	case kindLanczos3:
		return 3.0
	case kindLanczos4:
		return 4.0
	default:
		// Cubic family and Lanczos2.
		return 2.0
	}
}

// Evaluate returns the kernel value at distance x from the center.
func (f Filter) Evaluate(x float64) float64 {
	switch f.kind {
	case kindBox:
		return boxKernel(x)
	case kindTriangle:
		return triangle(x)
	case kindHermite:
		return hermite(x)
	case kindCatmullRom:
		return mitchellNetravali(x, 0, 0.5)
	case kindMitchell:
		return mitchellNetravali(x, 1.0/3.0, 1.0/3.0)
	case kindBSpline:
		return mitchellNetravali(x, 1, 0)
	case kindLanczos2:
		return lanczos(x, 2)
	case kindLanczos3:
		return lanczos(x, 3)
	case kindLanczos4:
		return lanczos(x, 4)
	default:
		return mitchellNetravali(x, f.b, f.c)
	}
}

// Sinc is sin(pi*x)/(pi*x) with Sinc(0) = 1. Exported for custom kernel
// experiments alongside the catalog.
func Sinc(x float64) float64 {
	if math.Abs(x) < 1e-10 {
		return 1.0
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

func boxKernel(x float64) float64 {
	ax := math.Abs(x)
	switch {
	case ax < 0.5:
		return 1.0
	case math.Abs(ax-0.5) < 1e-10:
		// Split the sample exactly on the pixel boundary.
		return 0.5
	default:
		return 0.0
	}
}

func triangle(x float64) float64 {
	ax := math.Abs(x)
	if ax < 1.0 {
		return 1.0 - ax
	}
	return 0.0
}

func hermite(x float64) float64 {
	ax := math.Abs(x)
	if ax < 1.0 {
		return (2.0*ax-3.0)*ax*ax + 1.0
	}
	return 0.0
}

func mitchellNetravali(x, b, c float64) float64 {
	ax := math.Abs(x)
	if ax < 1.0 {
		return ((12.0-9.0*b-6.0*c)*ax*ax*ax +
			(-18.0+12.0*b+6.0*c)*ax*ax +
			(6.0 - 2.0*b)) / 6.0
	}
	if ax < 2.0 {
		return ((-b-6.0*c)*ax*ax*ax +
			(6.0*b+30.0*c)*ax*ax +
			(-12.0*b-48.0*c)*ax +
			(8.0*b + 24.0*c)) / 6.0
	}
	return 0.0
}

func lanczos(x float64, n int) float64 {
	if math.Abs(x) < float64(n) {
		return Sinc(x) * Sinc(x/float64(n))
	}
	return 0.0
}
