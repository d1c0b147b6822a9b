package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"earf/internal/config"

	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

type options struct {
	heightmap  string
	colormap   string
	generate   bool
	seed       int64
	mapSize    int
	configPath string
	snapshot   string
	frames     int
	follow     bool
	cpuprofile string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.heightmap, "heightmap", "heightmap.jpg", "grayscale heightmap image (red channel is elevation)")
	flag.StringVar(&o.colormap, "colormap", "colormap.jpg", "color map image")
	flag.BoolVar(&o.generate, "generate", false, "use procedural maps instead of image files")
	flag.Int64Var(&o.seed, "seed", 1, "seed for -generate")
	flag.IntVar(&o.mapSize, "mapsize", 1024, "map size in texels for -generate")
	flag.StringVar(&o.configPath, "config", "", "optional JSON settings file")
	flag.StringVar(&o.snapshot, "snapshot", "", "render one frame to this PNG and exit")
	flag.IntVar(&o.frames, "frames", 0, "quit after this many frames (0 = until closed)")
	flag.BoolVar(&o.follow, "follow", false, "turn the camera to face along its flight path")
	flag.StringVar(&o.cpuprofile, "cpuprofile", "", "write a CPU profile to this file")
	flag.Parse()
	return o
}

func main() {
	o := parseFlags()

	settings := config.Default()
	if o.configPath != "" {
		s, err := config.LoadFile(o.configPath)
		if err != nil {
			closer.Fatalln("Error:", err)
		}
		settings = s
	}
	config.SetFPSLimit(settings.FPSLimit)

	if o.cpuprofile != "" {
		f, err := os.Create(o.cpuprofile)
		if err != nil {
			closer.Fatalln("Error:", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			closer.Fatalln("Error:", err)
		}
		closer.Bind(func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		})
	}

	sc, err := setupScene(settings, o)
	if err != nil {
		closer.Fatalln("Error:", err)
	}
	closer.Bind(sc.Renderer.Shutdown)

	if o.snapshot != "" {
		err = runSnapshot(sc, settings, o.snapshot)
	} else {
		err = runWindowed(sc, settings, o)
	}
	if err != nil {
		closer.Fatalln("Error:", err)
	}

	fmt.Println("Bye")
	closer.Close()
}
