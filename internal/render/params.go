package render

import (
	"errors"
	"fmt"
)

const (
	DefaultMaxDistance = 1024.0
	DefaultMinDistance = 15.0
	DefaultFogStart    = 100.0
	DefaultLODFactor   = 3
	DefaultDetail      = 1
)

// ErrInvalidParams is returned for marching constants that would render
// nothing or divide by zero.
var ErrInvalidParams = errors.New("invalid raycaster params")

// Params are the tunable marching constants.
type Params struct {
	// MaxDistance bounds the march; fog reaches zero here.
	MaxDistance float64
	// MinDistance is the first sampled distance.
	MinDistance float64
	// FogStart is the distance at which fog alpha begins to fall below 255.
	FogStart float64
	// LODFactor sets the number of detail bands (LODFactor-1).
	LODFactor int
	// Detail is the base step; band n steps by Detail*n.
	Detail int
}

// DefaultParams returns the reference marching constants.
func DefaultParams() Params {
	return Params{
		MaxDistance: DefaultMaxDistance,
		MinDistance: DefaultMinDistance,
		FogStart:    DefaultFogStart,
		LODFactor:   DefaultLODFactor,
		Detail:      DefaultDetail,
	}
}

func (p Params) Validate() error {
	switch {
	case p.LODFactor < 2:
		return fmt.Errorf("%w: lod factor %d must be at least 2", ErrInvalidParams, p.LODFactor)
	case p.Detail < 1:
		return fmt.Errorf("%w: detail %d must be at least 1", ErrInvalidParams, p.Detail)
	case !(p.MinDistance > 0):
		return fmt.Errorf("%w: min distance %v must be positive", ErrInvalidParams, p.MinDistance)
	case !(p.MaxDistance > p.MinDistance):
		return fmt.Errorf("%w: max distance %v must exceed min distance %v", ErrInvalidParams, p.MaxDistance, p.MinDistance)
	case !(p.FogStart < p.MaxDistance):
		return fmt.Errorf("%w: fog start %v must be below max distance %v", ErrInvalidParams, p.FogStart, p.MaxDistance)
	}
	return nil
}

// bandLimit is the distance at which band lod ends.
func (p Params) bandLimit(lod int) float64 {
	return p.MaxDistance / float64(p.LODFactor-lod)
}

// Samples counts the distances one column evaluates when nothing exits early.
func (p Params) Samples() int {
	n := 0
	d := p.MinDistance
	for lod := 1; lod < p.LODFactor; lod++ {
		maxD := p.bandLimit(lod)
		for d < maxD {
			n++
			d += float64(p.Detail * lod)
		}
	}
	return n
}
