// Package images provides the single-channel image value type shared by
// the pattern generators, the analyzers, and the reference resizer, along
// with the dark/bright reference levels and sRGB-aware sample reads.
package images

// Reference levels used by every test pattern. Weight arithmetic
// downstream subtracts DarkLevel and divides by the dark-to-bright span,
// so a pass-through kernel value of 1.0 reconstructs as weight 1.0.
const (
	// DarkLevel is the background sample value of all test patterns.
	DarkLevel = 50
	// BrightLevel is the foreground (dot/line) sample value.
	BrightLevel = 250
	// Span is the dark-to-bright distance used to normalize weights.
	Span = BrightLevel - DarkLevel
)

// Image is an 8-bit grayscale image stored row-major.
//
// It is a plain value object: analysis never mutates an Image it was
// given, and every producer returns a freshly allocated one.
type Image struct {
	// The width of the image in pixels.
	Width int `json:"width" yaml:"width"`
	// The height of the image in pixels.
	Height int `json:"height" yaml:"height"`
	// The row-major samples; len(Pix) must equal Width*Height.
	Pix []uint8 `json:"pix" yaml:"pix"`
}

// New creates a zero-filled image of the given dimensions.
func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// NewUniform creates an image of the given dimensions with every sample
// set to value.
func NewUniform(width, height int, value uint8) *Image {
	img := New(width, height)
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

// Valid reports whether the sample buffer is consistent with the declared
// dimensions.
func (m *Image) Valid() bool {
	return m != nil && m.Width >= 0 && m.Height >= 0 && len(m.Pix) == m.Width*m.Height
}

// At returns the sample at (x, y). The caller is responsible for bounds;
// the analyzers only ever read coordinates they derived from the image's
// own dimensions.
func (m *Image) At(x, y int) uint8 {
	return m.Pix[y*m.Width+x]
}

// Set writes the sample at (x, y).
func (m *Image) Set(x, y int, v uint8) {
	m.Pix[y*m.Width+x] = v
}
