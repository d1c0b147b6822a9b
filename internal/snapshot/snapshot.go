package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"earf/internal/render"
)

// Compose turns a column-major BGRA frame into an upright image, blending
// every pixel over fog by its alpha the way the presenter does on screen.
func Compose(frame []byte, screenWidth, screenHeight int, fog color.RGBA) (*image.RGBA, error) {
	if len(frame) != render.FrameSize(screenWidth, screenHeight) {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d", render.ErrFrameSize, len(frame), screenWidth, screenHeight)
	}

	img := image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight))
	for x := range screenWidth {
		for y := range screenHeight {
			px := render.At(frame, screenHeight, x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: blend(px.R, fog.R, px.A),
				G: blend(px.G, fog.G, px.A),
				B: blend(px.B, fog.B, px.A),
				A: 255,
			})
		}
	}
	return img, nil
}

// blend is src*a + dst*(1-a) in 8-bit fixed point, rounded
func blend(src, dst, a uint8) uint8 {
	return uint8((uint32(src)*uint32(a) + uint32(dst)*(255-uint32(a)) + 127) / 255)
}

// WritePNG composes frame and writes it to path.
func WritePNG(path string, frame []byte, screenWidth, screenHeight int, fog color.RGBA) error {
	img, err := Compose(frame, screenWidth, screenHeight, fog)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return f.Close()
}
