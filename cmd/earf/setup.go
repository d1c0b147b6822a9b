package main

import (
	"fmt"
	"image/color"
	"math"

	"earf/internal/camera"
	"earf/internal/config"
	"earf/internal/game"
	"earf/internal/graphics"
	"earf/internal/render"
	"earf/internal/snapshot"
	"earf/internal/terrain"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"
)

// Scene holds everything the frame loop needs apart from the window
type Scene struct {
	Camera    *camera.Camera
	Heightmap *terrain.Map
	Colormap  *terrain.Map
	Renderer  *render.FrameRenderer
	Flight    *game.Flight
}

func setupScene(s config.Settings, o options) (*Scene, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	heightmap, colormap, err := loadMaps(o)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Loaded heightmap %dx%d, colormap %dx%d\n",
		heightmap.Width(), heightmap.Height(), colormap.Width(), colormap.Height())

	flight := game.NewFlight()
	flight.FollowPath = o.follow

	cam, err := camera.New(mgl64.Vec3{127, 90, 127}, s.FOV, s.ScreenWidth, s.ScreenHeight)
	if err != nil {
		return nil, err
	}
	cam.SetYaw(-math.Pi)

	rc, err := render.NewRaycaster(s.Params())
	if err != nil {
		return nil, err
	}
	workers := s.EffectiveWorkers()
	fmt.Printf("Rendering %dx%d with %d worker(s), %d samples per column\n",
		s.ScreenWidth, s.ScreenHeight, workers, s.Params().Samples())

	return &Scene{
		Camera:    cam,
		Heightmap: heightmap,
		Colormap:  colormap,
		Renderer:  render.NewFrameRenderer(rc, workers),
		Flight:    flight,
	}, nil
}

func loadMaps(o options) (*terrain.Map, *terrain.Map, error) {
	if o.generate {
		gen := terrain.DefaultGenOptions()
		gen.Seed = o.seed
		gen.Size = o.mapSize
		return terrain.Generate(gen)
	}

	heightmap, err := terrain.Load(o.heightmap)
	if err != nil {
		return nil, nil, err
	}
	colormap, err := terrain.Load(o.colormap)
	if err != nil {
		return nil, nil, err
	}
	return heightmap, colormap, nil
}

func runSnapshot(sc *Scene, s config.Settings, path string) error {
	sc.Flight.Advance(sc.Camera, 0)

	frame := make([]byte, render.FrameSize(s.ScreenWidth, s.ScreenHeight))
	render.Fill(frame, render.Pixel{})
	if err := sc.Renderer.RenderFrame(sc.Camera, sc.Heightmap, sc.Colormap, frame); err != nil {
		return err
	}

	fog := color.RGBA{R: s.FogColor.R, G: s.FogColor.G, B: s.FogColor.B, A: 255}
	if err := snapshot.WritePNG(path, frame, s.ScreenWidth, s.ScreenHeight, fog); err != nil {
		return err
	}
	fmt.Println("Wrote", path)
	return nil
}

func runWindowed(sc *Scene, s config.Settings, o options) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	window, err := graphics.OpenWindow(s)
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	defer window.Destroy()

	presenter, err := graphics.NewPresenter(window, s.ScreenWidth, s.ScreenHeight, s.FogColor)
	if err != nil {
		return err
	}
	defer presenter.Dispose()

	app := game.NewApp(presenter, sc.Renderer, sc.Camera, sc.Heightmap, sc.Colormap, sc.Flight)
	app.MaxFrames = o.frames
	if err := app.Run(); err != nil {
		return err
	}
	fmt.Println("Frames rendered:", app.Frames())
	return nil
}
