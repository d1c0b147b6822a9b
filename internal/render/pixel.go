package render

// BytesPerPixel is the frame buffer stride per pixel: B, G, R, A.
const BytesPerPixel = 4

// Pixel is one frame buffer entry in buffer byte order.
type Pixel struct {
	B, G, R, A uint8
}

// Fill writes px into every pixel of buf. Used to seed the background
// before a frame since RenderFrame never clears.
func Fill(buf []byte, px Pixel) {
	if len(buf) < BytesPerPixel {
		return
	}
	buf[0], buf[1], buf[2], buf[3] = px.B, px.G, px.R, px.A
	// doubling copy
	for n := BytesPerPixel; n < len(buf); n *= 2 {
		copy(buf[n:], buf[:n])
	}
}

// At reads the pixel at screen (column, row) from a column-major frame of
// the given screen height.
func At(buf []byte, screenHeight, column, row int) Pixel {
	i := (column*screenHeight + row) * BytesPerPixel
	return Pixel{B: buf[i], G: buf[i+1], R: buf[i+2], A: buf[i+3]}
}

// FrameSize is the byte length of a frame for the given screen.
func FrameSize(screenWidth, screenHeight int) int {
	return screenWidth * screenHeight * BytesPerPixel
}
