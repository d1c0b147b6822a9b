package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	"earf/internal/render"
)

// ErrInvalidConfig is returned by Validate and LoadFile.
var ErrInvalidConfig = errors.New("invalid config")

// Color is an sRGB triple as written in config files
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Settings holds everything needed to build a renderer and its window.
type Settings struct {
	ScreenWidth  int `json:"screen_width"`
	ScreenHeight int `json:"screen_height"`
	// ScreenScale multiplies the window size; the frame is stretched on blit.
	ScreenScale int `json:"screen_scale"`

	MaxDistance float64 `json:"max_distance"`
	MinDistance float64 `json:"min_distance"`
	FogStart    float64 `json:"fog_start"`
	LODFactor   int     `json:"lod_factor"`
	Detail      int     `json:"detail"`
	FogColor    Color   `json:"fog_color"`

	// FOV is the horizontal field of view in degrees
	FOV float64 `json:"fov"`

	// Workers is the in-frame parallelism; 0 means one per CPU, 1 renders
	// sequentially.
	Workers  int  `json:"workers"`
	FPSLimit int  `json:"fps_limit"`
	VSync    bool `json:"vsync"`
}

// Default returns the reference configuration.
func Default() Settings {
	p := render.DefaultParams()
	return Settings{
		ScreenWidth:  640,
		ScreenHeight: 400,
		ScreenScale:  2,
		MaxDistance:  p.MaxDistance,
		MinDistance:  p.MinDistance,
		FogStart:     p.FogStart,
		LODFactor:    p.LODFactor,
		Detail:       p.Detail,
		FogColor:     Color{R: 98, G: 192, B: 255},
		FOV:          60,
		Workers:      0,
		FPSLimit:     0,
		VSync:        true,
	}
}

// Params returns the raycaster constants.
func (s Settings) Params() render.Params {
	return render.Params{
		MaxDistance: s.MaxDistance,
		MinDistance: s.MinDistance,
		FogStart:    s.FogStart,
		LODFactor:   s.LODFactor,
		Detail:      s.Detail,
	}
}

// EffectiveWorkers resolves Workers = 0 to the CPU count.
func (s Settings) EffectiveWorkers() int {
	if s.Workers <= 0 {
		return runtime.NumCPU()
	}
	return s.Workers
}

// Validate rejects settings that would produce an empty or degenerate frame.
func (s Settings) Validate() error {
	if s.ScreenWidth <= 0 || s.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen %dx%d", ErrInvalidConfig, s.ScreenWidth, s.ScreenHeight)
	}
	if s.ScreenScale <= 0 {
		return fmt.Errorf("%w: screen scale %d", ErrInvalidConfig, s.ScreenScale)
	}
	if !(s.FOV > 0 && s.FOV < 180) {
		return fmt.Errorf("%w: fov %v", ErrInvalidConfig, s.FOV)
	}
	if s.FPSLimit < 0 {
		return fmt.Errorf("%w: fps limit %d", ErrInvalidConfig, s.FPSLimit)
	}
	if err := s.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LoadFile reads a JSON settings file. Fields missing from the file keep
// their Default values.
func LoadFile(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("could not read config file: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}
