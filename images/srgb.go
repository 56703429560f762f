package images

import "math"

// srgbToLinear applies the standard piecewise sRGB-to-linear transfer
// function to a value in [0, 1].
func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Linearized reference levels, fixed by the pattern constants.
var (
	linearDark   = srgbToLinear(DarkLevel / 255.0)
	linearBright = srgbToLinear(BrightLevel / 255.0)
)

// Sample reads the pixel at (x, y) as a float64 in the working scale
// where the pattern background reads DarkLevel and the foreground reads
// BrightLevel.
//
// With srgb set, the raw sample is first converted to linear light and
// then remapped so the dark/bright reference levels land back on
// DarkLevel/BrightLevel. Use this when the resizer under test filters in
// linear light; the downstream baseline/span arithmetic stays valid
// either way.
func (m *Image) Sample(x, y int, srgb bool) float64 {
	raw := float64(m.At(x, y))
	if !srgb {
		return raw
	}
	return LinearizeSRGB(raw)
}

// LinearizeSRGB converts a raw 8-bit sample value to linear light and
// rescales it so DarkLevel and BrightLevel map to themselves.
func LinearizeSRGB(raw float64) float64 {
	lin := srgbToLinear(raw / 255.0)
	return (lin-linearDark)*(Span/(linearBright-linearDark)) + DarkLevel
}
