package config

import "sync"

// RuntimeSettings are the knobs the frame loop reads every frame.
type RuntimeSettings struct {
	mu       sync.RWMutex
	fpsLimit int // 0 = uncapped
	showFPS  bool
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit: 0,
	showFPS:  true,
}

// GetFPSLimit returns the frame cap; 0 means uncapped
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame cap
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	// Clamp to reasonable values
	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRuntimeSettings.fpsLimit = limit
}

// GetShowFPS returns whether the console FPS counter is printed
func GetShowFPS() bool {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.showFPS
}

// SetShowFPS toggles the console FPS counter
func SetShowFPS(enabled bool) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.showFPS = enabled
}
