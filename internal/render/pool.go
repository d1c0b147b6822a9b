package render

import (
	"context"
	"sync"

	"earf/internal/camera"
	"earf/internal/terrain"
)

// ColumnJob is a contiguous band of screen columns for one frame.
type ColumnJob struct {
	Camera    *camera.Camera
	Heightmap *terrain.Map
	Colormap  *terrain.Map
	// First and Last bound the band [First, Last).
	First, Last int
	// Pixels holds exactly the band's columns; no other job touches it.
	Pixels []byte
	// Done is signalled once the band is painted
	Done *sync.WaitGroup
}

// WorkerPool runs column bands on a fixed set of goroutines.
type WorkerPool struct {
	raycaster *Raycaster
	jobQueue  chan ColumnJob
	workers   int
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	once      sync.Once

	// mu guards closed; Submit holds it shared while sending
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool starts workers goroutines sharing a queue of queueSize jobs.
func NewWorkerPool(rc *Raycaster, workers int, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		raycaster: rc,
		jobQueue:  make(chan ColumnJob, queueSize),
		workers:   workers,
		ctx:       ctx,
		cancel:    cancel,
	}

	for i := range workers {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int { return p.workers }

// Submit queues a job, blocking while the queue is full. It reports false
// if the pool has been shut down, in which case job.Done is not signalled.
// An accepted job always runs, even if Shutdown follows.
func (p *WorkerPool) Submit(job ColumnJob) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *WorkerPool) run(job ColumnJob) {
	defer job.Done.Done()
	stride := job.Camera.ScreenHeight() * BytesPerPixel
	for col := job.First; col < job.Last; col++ {
		off := (col - job.First) * stride
		p.raycaster.CastColumn(job.Camera, job.Heightmap, job.Colormap, col, job.Pixels[off:off+stride])
	}
}

// Shutdown stops the workers and waits for them to exit. Jobs still queued
// are run on the calling goroutine so their Done is always signalled. Safe
// to call more than once and concurrently with Submit.
func (p *WorkerPool) Shutdown() {
	p.once.Do(func() {
		// cancel first so a Submit blocked on a full queue lets go of mu
		p.cancel()
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		p.wg.Wait()

		for {
			select {
			case job := <-p.jobQueue:
				p.run(job)
			default:
				return
			}
		}
	})
}
