package game

import (
	"time"

	"earf/internal/config"
)

// spinWindow is the tail of each wait spent polling the clock rather than
// sleeping.
const spinWindow = 200 * time.Microsecond

// FPSLimiter paces the frame loop to config.GetFPSLimit.
type FPSLimiter struct {
	deadline time.Time
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// Wait blocks until the next frame slot. A limit of 0 returns at once.
// A frame that overruns its slot by more than a whole frame restarts the
// schedule from now, so a hitch is not followed by a burst of frames.
func (f *FPSLimiter) Wait() {
	limit := config.GetFPSLimit()
	if limit <= 0 {
		f.deadline = time.Time{}
		return
	}
	frame := time.Second / time.Duration(limit)

	now := time.Now()
	if f.deadline.IsZero() || now.Sub(f.deadline) > frame {
		f.deadline = now
	}
	f.deadline = f.deadline.Add(frame)
	sleepUntil(f.deadline)
}

func sleepUntil(deadline time.Time) {
	if d := time.Until(deadline) - spinWindow; d > 0 {
		time.Sleep(d)
	}
	for time.Now().Before(deadline) {
	}
}
