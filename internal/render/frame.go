package render

import (
	"errors"
	"fmt"
	"sync"

	"earf/internal/camera"
	"earf/internal/profiling"
	"earf/internal/terrain"
)

// ErrFrameSize is returned when the frame buffer does not match the screen.
var ErrFrameSize = errors.New("frame buffer size mismatch")

var errPoolClosed = errors.New("render: worker pool shut down")

// bandsPerWorker is the number of column bands queued per worker each frame
const bandsPerWorker = 4

// FrameRenderer fills a whole frame by casting every screen column.
type FrameRenderer struct {
	raycaster *Raycaster
	pool      *WorkerPool // nil renders on the calling goroutine
}

// NewFrameRenderer creates a frame renderer. workers <= 1 renders
// sequentially; otherwise columns are spread over a worker pool.
func NewFrameRenderer(rc *Raycaster, workers int) *FrameRenderer {
	fr := &FrameRenderer{raycaster: rc}
	if workers > 1 {
		fr.pool = NewWorkerPool(rc, workers, workers*bandsPerWorker)
	}
	return fr
}

// Workers returns the degree of parallelism within a frame.
func (fr *FrameRenderer) Workers() int {
	if fr.pool == nil {
		return 1
	}
	return fr.pool.Workers()
}

// RenderFrame paints every column of buf, which is laid out column major
// (see FrameSize). It returns once all columns are done. Unpainted rows keep
// their previous contents.
func (fr *FrameRenderer) RenderFrame(cam *camera.Camera, heightmap, colormap *terrain.Map, buf []byte) error {
	defer profiling.Track("render.RenderFrame")()

	width, height := cam.ScreenWidth(), cam.ScreenHeight()
	if want := FrameSize(width, height); len(buf) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrFrameSize, len(buf), want)
	}
	stride := height * BytesPerPixel

	if fr.pool == nil {
		for col := range width {
			fr.raycaster.CastColumn(cam, heightmap, colormap, col, buf[col*stride:(col+1)*stride])
		}
		return nil
	}

	bands := min(fr.pool.Workers()*bandsPerWorker, width)
	var done sync.WaitGroup
	for b := range bands {
		first := b * width / bands
		last := (b + 1) * width / bands
		done.Add(1)
		job := ColumnJob{
			Camera:    cam,
			Heightmap: heightmap,
			Colormap:  colormap,
			First:     first,
			Last:      last,
			Pixels:    buf[first*stride : last*stride],
			Done:      &done,
		}
		if !fr.pool.Submit(job) {
			// bands already queued still write to buf
			done.Done()
			done.Wait()
			return errPoolClosed
		}
	}
	done.Wait()
	return nil
}

// Shutdown stops the worker pool, if any. A RenderFrame running at the same
// time either completes or returns an error once its queued bands finish.
func (fr *FrameRenderer) Shutdown() {
	if fr.pool != nil {
		fr.pool.Shutdown()
	}
}
