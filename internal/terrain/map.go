package terrain

import (
	"errors"
	"fmt"
	"image"
)

// HeightScale converts a red channel value into world elevation (0..63.75).
const HeightScale = 0.25

// ErrInvalidImageFormat is returned when pixel data does not match the
// packed 3-byte RGB layout.
var ErrInvalidImageFormat = errors.New("invalid image format")

// RGB is a single map texel
type RGB struct {
	R, G, B uint8
}

// Map is an immutable toroidal lookup table built from a decoded image.
type Map struct {
	width  int
	height int
	texels []RGB
}

// NewMap builds a Map from packed RGB pixels. stride is the byte length of
// one image row and may include padding.
func NewMap(width, height, stride int, pix []byte) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidImageFormat, width, height)
	}
	if stride < width*3 {
		return nil, fmt.Errorf("%w: stride %d shorter than %d pixels", ErrInvalidImageFormat, stride, width)
	}
	if need := (height-1)*stride + width*3; len(pix) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrInvalidImageFormat, len(pix), need)
	}

	texels := make([]RGB, width*height)
	for z := range height {
		row := pix[z*stride:]
		for x := range width {
			p := x * 3
			texels[z*width+x] = RGB{R: row[p], G: row[p+1], B: row[p+2]}
		}
	}

	return &Map{width: width, height: height, texels: texels}, nil
}

// FromImage converts any decoded image into a Map.
func FromImage(img image.Image) (*Map, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidImageFormat)
	}

	pix := make([]byte, w*h*3)
	for y := range h {
		for x := range w {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*w + x) * 3
			pix[i] = uint8(r >> 8)
			pix[i+1] = uint8(g >> 8)
			pix[i+2] = uint8(bl >> 8)
		}
	}
	return NewMap(w, h, w*3, pix)
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

// Sample returns the texel at (x, z), wrapping both axes.
func (m *Map) Sample(x, z int) RGB {
	return m.texels[wrap(z, m.height)*m.width+wrap(x, m.width)]
}

// HeightAt returns the elevation encoded in the red channel at (x, z).
func (m *Map) HeightAt(x, z int) float64 {
	return float64(m.Sample(x, z).R) * HeightScale
}

// wrap is a Euclidean modulus; n is always positive.
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
