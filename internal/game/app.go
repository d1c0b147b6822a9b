package game

import (
	"fmt"
	"log"
	"time"

	"earf/internal/camera"
	"earf/internal/config"
	"earf/internal/profiling"
	"earf/internal/render"
	"earf/internal/terrain"
)

// Surface is where finished frames go. The GL presenter implements it.
type Surface interface {
	ShouldClose() bool
	PollEvents()
	// Present takes a completed column-major BGRA frame.
	Present(frame []byte) error
}

// slowFrame is the 60 Hz budget
const slowFrame = time.Second / 60

// App drives the render loop: one frame is animated, rendered, presented,
// then the next begins.
type App struct {
	surface   Surface
	renderer  *render.FrameRenderer
	camera    *camera.Camera
	heightmap *terrain.Map
	colormap  *terrain.Map
	flight    *Flight

	// Background seeds every frame before casting; its alpha is 0 so the
	// presenter's fog clear colour shows through.
	Background render.Pixel
	// MaxFrames stops Run after this many frames; 0 runs until the surface closes.
	MaxFrames int

	frame      []byte
	frames     int
	fpsLimiter *FPSLimiter
	lastTime   time.Time
}

func NewApp(surface Surface, r *render.FrameRenderer, cam *camera.Camera, heightmap, colormap *terrain.Map, flight *Flight) *App {
	return &App{
		surface:    surface,
		renderer:   r,
		camera:     cam,
		heightmap:  heightmap,
		colormap:   colormap,
		flight:     flight,
		frame:      make([]byte, render.FrameSize(cam.ScreenWidth(), cam.ScreenHeight())),
		fpsLimiter: NewFPSLimiter(),
	}
}

// Frame returns the buffer of the most recent frame.
func (a *App) Frame() []byte { return a.frame }

// Frames returns how many frames have been presented.
func (a *App) Frames() int { return a.frames }

// Run loops until the surface asks to close or MaxFrames is reached.
func (a *App) Run() error {
	a.lastTime = time.Now()
	fpsFrames := 0
	lastFPSCheck := time.Now()

	for !a.surface.ShouldClose() {
		if a.MaxFrames > 0 && a.frames >= a.MaxFrames {
			break
		}
		profiling.ResetFrame()
		now := time.Now()
		dt := now.Sub(a.lastTime).Seconds()
		a.lastTime = now

		func() { defer profiling.Track("surface.PollEvents")(); a.surface.PollEvents() }()

		if err := a.Step(dt); err != nil {
			return err
		}
		fpsFrames++

		if d := time.Since(now); d > slowFrame {
			log.Printf("Slow frame: %v (render %v, present %v). Top tasks: %s",
				d, profiling.SumWithPrefix("render."), profiling.SumWithPrefix("surface."), profiling.TopN(3))
		}
		if time.Since(lastFPSCheck) >= time.Second {
			if config.GetShowFPS() {
				fmt.Println("FPS: ", fpsFrames)
			}
			fpsFrames = 0
			lastFPSCheck = time.Now()
		}

		a.fpsLimiter.Wait()
	}
	return nil
}

// Step advances the camera by dt seconds, renders one frame and presents it.
func (a *App) Step(dt float64) error {
	if a.flight != nil {
		a.flight.Advance(a.camera, dt)
	}

	func() { defer profiling.Track("render.Fill")(); render.Fill(a.frame, a.Background) }()

	if err := a.renderer.RenderFrame(a.camera, a.heightmap, a.colormap, a.frame); err != nil {
		return fmt.Errorf("render frame %d: %w", a.frames, err)
	}

	defer profiling.Track("surface.Present")()
	if err := a.surface.Present(a.frame); err != nil {
		return fmt.Errorf("present frame %d: %w", a.frames, err)
	}
	a.frames++
	return nil
}
