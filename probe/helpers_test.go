package probe

import (
	"math"

	"github.com/resamplelab/filterprobe/filters"
	"github.com/resamplelab/filterprobe/images"
	"github.com/resamplelab/filterprobe/reference"
)

// perfectAdapter wraps the reference resizer as a resize adapter.
func perfectAdapter(f filters.Filter) ResizeFunc {
	return func(src *images.Image, w, h int) *images.Image {
		return reference.PerfectResize(src, w, h, f)
	}
}

// edgeAdapter is perfectAdapter with an explicit boundary rule.
func edgeAdapter(f filters.Filter, rule reference.EdgeRule) ResizeFunc {
	return func(src *images.Image, w, h int) *images.Image {
		return reference.PerfectResizeEdge(src, w, h, f, rule)
	}
}

// nnAdapter is a hand-rolled nearest-neighbor resize: the classic
// zero-support resizer whose effective upscale kernel is a box.
func nnAdapter(src *images.Image, dstW, dstH int) *images.Image {
	dst := images.New(dstW, dstH)
	for y := 0; y < dstH; y++ {
		sy := int(math.Round((float64(y)+0.5)*float64(src.Height)/float64(dstH) - 0.5))
		sy = clampInt(sy, 0, src.Height-1)
		for x := 0; x < dstW; x++ {
			sx := int(math.Round((float64(x)+0.5)*float64(src.Width)/float64(dstW) - 0.5))
			sx = clampInt(sx, 0, src.Width-1)
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}

// bilinearAdapter is a hand-rolled bilinear resize with clamped edges.
func bilinearAdapter(src *images.Image, dstW, dstH int) *images.Image {
	dst := images.New(dstW, dstH)
	for y := 0; y < dstH; y++ {
		sy := (float64(y)+0.5)*float64(src.Height)/float64(dstH) - 0.5
		sy0 := clampInt(int(math.Floor(sy)), 0, src.Height-1)
		sy1 := minInt(sy0+1, src.Height-1)
		fy := sy - math.Floor(sy)

		for x := 0; x < dstW; x++ {
			sx := (float64(x)+0.5)*float64(src.Width)/float64(dstW) - 0.5
			sx0 := clampInt(int(math.Floor(sx)), 0, src.Width-1)
			sx1 := minInt(sx0+1, src.Width-1)
			fx := sx - math.Floor(sx)

			p00 := float64(src.At(sx0, sy0))
			p10 := float64(src.At(sx1, sy0))
			p01 := float64(src.At(sx0, sy1))
			p11 := float64(src.At(sx1, sy1))

			v := p00*(1-fx)*(1-fy) + p10*fx*(1-fy) + p01*(1-fx)*fy + p11*fx*fy
			dst.Set(x, y, uint8(clampF(math.Round(v), 0, 255)))
		}
	}
	return dst
}

// linearLightAdapter simulates a resizer that decodes sRGB, filters in
// linear light, and re-encodes. Probing it without the SRGB option sees
// a gamma-distorted kernel.
func linearLightAdapter(f filters.Filter) ResizeFunc {
	return func(src *images.Image, dstW, dstH int) *images.Image {
		lin := make([]float64, len(src.Pix))
		for i, v := range src.Pix {
			lin[i] = srgbDecode(float64(v) / 255.0)
		}

		hw := reference.ComputeWeights(f, src.Width, dstW)
		tmp := make([]float64, dstW*src.Height)
		for y := 0; y < src.Height; y++ {
			for x, pw := range hw {
				s := 0.0
				for _, e := range pw.Entries {
					s += lin[y*src.Width+e.SrcPixel] * e.Weight
				}
				tmp[y*dstW+x] = s
			}
		}

		out := tmp
		if dstH != src.Height {
			vw := reference.ComputeWeights(f, src.Height, dstH)
			out = make([]float64, dstW*dstH)
			for x := 0; x < dstW; x++ {
				for y, pw := range vw {
					s := 0.0
					for _, e := range pw.Entries {
						s += tmp[e.SrcPixel*dstW+x] * e.Weight
					}
					out[y*dstW+x] = s
				}
			}
		}

		dst := images.New(dstW, dstH)
		for i, v := range out {
			dst.Pix[i] = uint8(clampF(math.Round(srgbEncode(v)*255.0), 0, 255))
		}
		return dst
	}
}

func srgbDecode(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func srgbEncode(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// findScore returns the entry for the named filter, or nil.
func findScore(scores []FilterScore, name string) *FilterScore {
	for i := range scores {
		if scores[i].Filter.Name() == name {
			return &scores[i]
		}
	}
	return nil
}
