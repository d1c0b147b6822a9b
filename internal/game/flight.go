package game

import (
	"math"

	"earf/internal/camera"

	"github.com/go-gl/mathgl/mgl64"
)

// Flight moves the camera along a looping path over the map.
type Flight struct {
	Center mgl64.Vec3
	// Radius of the sweep in map units
	Radius float64
	// Bob is the amplitude of the altitude oscillation
	Bob float64
	// Speed is the phase advance per second
	Speed float64
	// FollowPath turns the camera to face along its motion
	FollowPath bool

	phase float64
}

// NewFlight returns the default sweep over a map centred on (127, 127).
func NewFlight() *Flight {
	return &Flight{
		Center: mgl64.Vec3{127, 94, 127},
		Radius: 512,
		Bob:    10,
		Speed:  0.15,
	}
}

// Phase returns the current path parameter.
func (f *Flight) Phase() float64 { return f.phase }

// Position is the eye position at path parameter t.
func (f *Flight) Position(t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		f.Center.X() + f.Radius*math.Sin(t),
		f.Center.Y() - f.Bob*math.Sin(t*2),
		f.Center.Z() + f.Radius*math.Cos(t*0.8),
	}
}

// Heading is the yaw that faces along the path at t.
func (f *Flight) Heading(t float64) float64 {
	dx := f.Radius * math.Cos(t)
	dz := -0.8 * f.Radius * math.Sin(t*0.8)
	return math.Atan2(dx, dz)
}

// Advance steps the path by dt seconds and applies it to cam.
func (f *Flight) Advance(cam *camera.Camera, dt float64) {
	f.phase += f.Speed * dt
	cam.Eye = f.Position(f.phase)
	if f.FollowPath {
		cam.SetYaw(f.Heading(f.phase))
	}
}
