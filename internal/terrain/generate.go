package terrain

import (
	"fmt"
	"math"
)

// Procedural maps for running without image files. The noise tiles with
// the map size so the toroidal lookup has no seams.

// GenOptions controls Generate.
type GenOptions struct {
	Size int // width and height in texels
	Seed int64
	// Cells is the number of lattice cells across the map at the base octave.
	Cells       int
	Octaves     int
	Persistence float64
}

// DefaultGenOptions returns a 1024x1024 map with broad hills.
func DefaultGenOptions() GenOptions {
	return GenOptions{
		Size:        1024,
		Seed:        1,
		Cells:       6,
		Octaves:     6,
		Persistence: 0.5,
	}
}

// colour bands by elevation fraction, lowest first
var bands = []struct {
	top   float64
	color RGB
}{
	{0.30, RGB{38, 76, 140}},   // water
	{0.34, RGB{194, 178, 128}}, // sand
	{0.55, RGB{76, 128, 52}},   // grass
	{0.72, RGB{52, 92, 40}},    // forest
	{0.86, RGB{120, 110, 100}}, // rock
	{1.01, RGB{240, 240, 245}}, // snow
}

// Generate builds a matching heightmap and colormap.
func Generate(opts GenOptions) (heightmap, colormap *Map, err error) {
	if opts.Size <= 0 || opts.Cells <= 0 || opts.Octaves <= 0 {
		return nil, nil, fmt.Errorf("%w: generator size %d, cells %d, octaves %d",
			ErrInvalidImageFormat, opts.Size, opts.Cells, opts.Octaves)
	}

	n := opts.Size
	hpix := make([]byte, n*n*3)
	cpix := make([]byte, n*n*3)
	for z := range n {
		for x := range n {
			u := float64(x) / float64(n) * float64(opts.Cells)
			v := float64(z) / float64(n) * float64(opts.Cells)
			e := tiledOctaveNoise(u, v, opts.Cells, opts.Seed, opts.Octaves, opts.Persistence)
			c := bandColor(e)
			// flatten the lowlands into lakes
			if e < bands[0].top {
				e = bands[0].top
			}

			i := (z*n + x) * 3
			r := uint8(math.Round(e * 255))
			hpix[i], hpix[i+1], hpix[i+2] = r, r, r

			jitter := latticeValue(int64(x), int64(z), opts.Seed^0x5bd1e995)*0.2 + 0.9
			cpix[i] = shade(c.R, jitter)
			cpix[i+1] = shade(c.G, jitter)
			cpix[i+2] = shade(c.B, jitter)
		}
	}

	if heightmap, err = NewMap(n, n, n*3, hpix); err != nil {
		return nil, nil, err
	}
	if colormap, err = NewMap(n, n, n*3, cpix); err != nil {
		return nil, nil, err
	}
	return heightmap, colormap, nil
}

func bandColor(e float64) RGB {
	for _, b := range bands {
		if e < b.top {
			return b.color
		}
	}
	return bands[len(bands)-1].color
}

func shade(c uint8, f float64) uint8 {
	return uint8(math.Min(255, math.Round(float64(c)*f)))
}

func fade(t float64) float64 {
	// 6t^5 - 15t^4 + 10t^3
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func hash2(x int64, z int64, seed int64) uint64 {
	// SplitMix64 finaliser
	v := uint64(x) + (uint64(z) << 1) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

// latticeValue maps a lattice point to [0,1]
func latticeValue(x int64, z int64, seed int64) float64 {
	h := hash2(x, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// tiledValueNoise is value noise whose lattice repeats every period cells.
func tiledValueNoise(x, z float64, period int64, seed int64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	fx := fade(x - x0)
	fz := fade(z - z0)

	ix0, iz0 := wrap64(int64(x0), period), wrap64(int64(z0), period)
	ix1, iz1 := wrap64(ix0+1, period), wrap64(iz0+1, period)

	v00 := latticeValue(ix0, iz0, seed)
	v10 := latticeValue(ix1, iz0, seed)
	v01 := latticeValue(ix0, iz1, seed)
	v11 := latticeValue(ix1, iz1, seed)

	return lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fz)
}

// tiledOctaveNoise sums octaves at doubling frequency; each octave's period
// doubles with it so the sum still tiles every cells units. Result in [0,1].
func tiledOctaveNoise(x, z float64, cells int, seed int64, octaves int, persistence float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := range octaves {
		period := int64(cells) << i
		v := tiledValueNoise(x*frequency, z*frequency, period, seed+int64(i*131))
		sum += v * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return sum / norm
}

func wrap64(v, n int64) int64 {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
