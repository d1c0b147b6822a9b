package render

import (
	"fmt"
	"math"

	"earf/internal/camera"
	"earf/internal/terrain"
)

// Raycaster paints one screen column at a time.
type Raycaster struct {
	params Params
	// fogSpan is MaxDistance-FogStart, precomputed for the hot loop
	fogSpan float64
}

// NewRaycaster validates p and returns a raycaster using it.
func NewRaycaster(p Params) (*Raycaster, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Raycaster{params: p, fogSpan: p.MaxDistance - p.FogStart}, nil
}

func (rc *Raycaster) Params() Params { return rc.params }

// FogAlpha is the transparency of terrain sampled at distance d, clamped
// to the byte range.
func (rc *Raycaster) FogAlpha(d float64) uint8 {
	fog := 1 - (d-rc.params.FogStart)/rc.fogSpan
	a := math.Floor(fog * 255)
	if a <= 0 {
		return 0
	}
	if a >= 255 {
		return 255
	}
	return uint8(a)
}

// CastColumn marches the ray for column and paints the visible terrain
// spans into out, which holds that column's pixels top to bottom
// (len = ScreenHeight*BytesPerPixel). Rows above the final skyline are left
// untouched; the caller seeds them. It returns the number of rows painted.
func (rc *Raycaster) CastColumn(cam *camera.Camera, heightmap, colormap *terrain.Map, column int, out []byte) int {
	height := cam.ScreenHeight()
	if len(out) != height*BytesPerPixel {
		panic(fmt.Sprintf("render: column buffer is %d bytes, want %d", len(out), height*BytesPerPixel))
	}

	p := rc.params
	ray := cam.RayForColumn(column)
	eye := cam.Eye
	screenH := float64(height)
	scaleY := screenH * 2

	// lowest row not yet painted; only ever moves up
	horizon := height - 1
	painted := 0

	d := p.MinDistance
	for lod := 1; lod < p.LODFactor; lod++ {
		maxD := p.bandLimit(lod)
		step := float64(p.Detail * lod)
		for ; d < maxD; d += step {
			cx := int(math.Floor(eye.X() + ray.X()*d))
			cz := int(math.Floor(eye.Z() + ray.Z()*d))
			h := heightmap.HeightAt(cx, cz)
			y := int(math.Floor(screenH - (((h-eye.Y())*scaleY)/d + screenH)))

			if y < 0 || y >= horizon {
				continue
			}

			c := colormap.Sample(cx, cz)
			alpha := rc.FogAlpha(d)
			for row := horizon; row > y; row-- {
				i := row * BytesPerPixel
				out[i] = c.B
				out[i+1] = c.G
				out[i+2] = c.R
				out[i+3] = alpha
			}
			painted += horizon - y
			horizon = y

			if horizon == 0 {
				return painted
			}
		}
	}
	return painted
}
