package camera

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// angleFromForward is the signed horizontal angle between the view axis and ray.
func angleFromForward(c *Camera, ray mgl64.Vec3) float64 {
	f := c.Forward()
	return math.Atan2(f.Z()*ray.X()-f.X()*ray.Z(), f.X()*ray.X()+f.Z()*ray.Z())
}

func TestRayForColumnStrictlyMonotonic(t *testing.T) {
	for _, yaw := range []float64{0, 1, -math.Pi, math.Pi / 2, 5.5} {
		c, err := New(mgl64.Vec3{127, 90, 127}, 60, 320, 200)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		c.SetYaw(yaw)

		prev := math.Inf(-1)
		for col := range c.ScreenWidth() {
			a := angleFromForward(c, c.RayForColumn(col))
			if a <= prev {
				t.Fatalf("yaw %v: column %d angle %v not greater than previous %v", yaw, col, a, prev)
			}
			prev = a
		}
	}
}

func TestRayForColumnSpansFieldOfView(t *testing.T) {
	c, err := New(mgl64.Vec3{}, 90, 4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// pixel centres of 4 columns across tan(45deg) = 1
	want := []float64{-0.75, -0.25, 0.25, 0.75}
	for col, x := range want {
		ray := c.RayForColumn(col)
		if math.Abs(ray.X()-x) > 1e-12 || ray.Y() != 0 || math.Abs(ray.Z()-1) > 1e-12 {
			t.Errorf("column %d ray = %v, want {%v 0 1}", col, ray, x)
		}
	}

	// symmetric around the view axis
	left := angleFromForward(c, c.RayForColumn(0))
	right := angleFromForward(c, c.RayForColumn(3))
	if math.Abs(left+right) > 1e-12 {
		t.Errorf("edge angles not symmetric: %v, %v", left, right)
	}
	if right >= math.Pi/4 {
		t.Errorf("edge ray %v outside half fov", right)
	}
}

func TestRayIndependentOfEye(t *testing.T) {
	a, _ := New(mgl64.Vec3{0, 0, 0}, 60, 64, 32)
	b, _ := New(mgl64.Vec3{-500, 90, 1e6}, 60, 64, 32)
	a.SetYaw(0.3)
	b.SetYaw(0.3)

	for col := range 64 {
		if ra, rb := a.RayForColumn(col), b.RayForColumn(col); ra != rb {
			t.Errorf("column %d: ray depends on eye: %v vs %v", col, ra, rb)
		}
	}
}

func TestYawRotatesForward(t *testing.T) {
	c, _ := New(mgl64.Vec3{}, 60, 10, 10)
	c.SetYaw(math.Pi / 2)

	f := c.Forward()
	if f.Sub(mgl64.Vec3{1, 0, 0}).Len() > 1e-12 {
		t.Errorf("forward at yaw pi/2 = %v, want {1 0 0}", f)
	}
	if c.Yaw() != math.Pi/2 {
		t.Errorf("Yaw() = %v", c.Yaw())
	}
}

func TestRaysNeverZeroLength(t *testing.T) {
	c, _ := New(mgl64.Vec3{}, 179, 1, 1)
	if l := c.RayForColumn(0).Len(); l < 1 {
		t.Errorf("single-column ray length %v", l)
	}
}

func TestNewRejectsDegenerateConfig(t *testing.T) {
	tests := []struct {
		name   string
		fov    float64
		width  int
		height int
	}{
		{"zero width", 60, 0, 100},
		{"zero height", 60, 100, 0},
		{"negative height", 60, 100, -1},
		{"zero fov", 0, 100, 100},
		{"straight fov", 180, 100, 100},
		{"nan fov", math.NaN(), 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(mgl64.Vec3{}, tt.fov, tt.width, tt.height); !errors.Is(err, ErrInvalidCamera) {
				t.Errorf("expected ErrInvalidCamera, got %v", err)
			}
		})
	}
}
