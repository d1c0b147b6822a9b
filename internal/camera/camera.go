package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidCamera is returned for camera configurations that cannot
// produce a ray for every column.
var ErrInvalidCamera = errors.New("invalid camera")

// Camera maps screen columns to world-space ray directions.
type Camera struct {
	// Eye is moved by the animation driver every frame.
	Eye mgl64.Vec3

	yaw       float64
	fov       float64
	halfWidth float64 // tan(fov/2)
	width     int
	height    int
}

// New creates a camera. fov is the horizontal field of view in degrees.
func New(eye mgl64.Vec3, fov float64, screenWidth, screenHeight int) (*Camera, error) {
	if screenWidth <= 0 || screenHeight <= 0 {
		return nil, fmt.Errorf("%w: screen %dx%d", ErrInvalidCamera, screenWidth, screenHeight)
	}
	if !(fov > 0 && fov < 180) {
		return nil, fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalidCamera, fov)
	}
	return &Camera{
		Eye:       eye,
		fov:       fov,
		halfWidth: math.Tan(mgl64.DegToRad(fov) / 2),
		width:     screenWidth,
		height:    screenHeight,
	}, nil
}

// SetYaw sets the absolute heading in radians.
func (c *Camera) SetYaw(angle float64) { c.yaw = angle }

func (c *Camera) Yaw() float64      { return c.yaw }
func (c *Camera) FOV() float64      { return c.fov }
func (c *Camera) ScreenWidth() int  { return c.width }
func (c *Camera) ScreenHeight() int { return c.height }

// RayForColumn returns the direction for a screen column. The forward
// component is always 1 before rotation, so distances marched along it are
// depths along the view axis. The result does not depend on Eye.
func (c *Camera) RayForColumn(column int) mgl64.Vec3 {
	s := c.halfWidth * (float64(2*column+1)/float64(c.width) - 1)
	return mgl64.Rotate3DY(c.yaw).Mul3x1(mgl64.Vec3{s, 0, 1})
}

// Forward is the direction through the centre of the view.
func (c *Camera) Forward() mgl64.Vec3 {
	return mgl64.Rotate3DY(c.yaw).Mul3x1(mgl64.Vec3{0, 0, 1})
}
