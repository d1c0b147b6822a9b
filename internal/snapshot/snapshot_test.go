package snapshot

import (
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"earf/internal/render"
)

func TestComposeRotatesAndBlends(t *testing.T) {
	const w, h = 3, 2
	frame := make([]byte, render.FrameSize(w, h))
	render.Fill(frame, render.Pixel{}) // fully transparent

	// opaque red at screen (2, 1), half-transparent blue at (0, 0)
	i := (2*h + 1) * render.BytesPerPixel
	copy(frame[i:], []byte{0, 0, 255, 255})
	copy(frame[0:], []byte{255, 0, 0, 128})

	fog := color.RGBA{R: 100, G: 150, B: 200, A: 255}
	img, err := Compose(frame, w, h, fog)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Fatalf("bounds = %v", img.Bounds())
	}

	if got := img.RGBAAt(2, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("opaque pixel = %v", got)
	}
	if got := img.RGBAAt(1, 0); got != fog {
		t.Errorf("transparent pixel = %v, want fog %v", got, fog)
	}
	// 255*128/255 + 200*127/255 = 128 + 99.6
	if got := img.RGBAAt(0, 0); got.B != 228 || got.R != 50 {
		t.Errorf("blended pixel = %v", got)
	}
}

func TestComposeRejectsWrongSize(t *testing.T) {
	_, err := Compose(make([]byte, 10), 2, 2, color.RGBA{})
	if !errors.Is(err, render.ErrFrameSize) {
		t.Errorf("expected ErrFrameSize, got %v", err)
	}
}

func TestWritePNG(t *testing.T) {
	const w, h = 4, 3
	frame := make([]byte, render.FrameSize(w, h))
	render.Fill(frame, render.Pixel{B: 30, G: 20, R: 10, A: 255})

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := WritePNG(path, frame, w, h, color.RGBA{A: 255}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := img.At(3, 2).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel = %d,%d,%d, want 10,20,30", r>>8, g>>8, b>>8)
	}
}
