package debug

import (
	"fmt"
	"runtime"
	"time"
)

// Stats is one snapshot of what the overlay shows.
type Stats struct {
	FPS         float64
	FrameTime   time.Duration
	Particles   int
	State       string
	Class       string
	Mode        string
	Allocations int
	Draws       uint64
	Width       int
	Height      int
	Fallback    bool
	HeapAlloc   uint64
	Sys         uint64
	Goroutines  int
}

func mb(b uint64) float64 {
	return float64(b) / 1024 / 1024
}

// Lines formats the snapshot, one entry per overlay row. Rows starting
// with '#' are headers.
func (s Stats) Lines() []string {
	lines := []string{
		"#Timing",
		fmt.Sprintf("FPS: %.1f", s.FPS),
		fmt.Sprintf("Frame Time: %.2f ms", float64(s.FrameTime.Microseconds())/1000),
		"#Ring",
		fmt.Sprintf("Loop: %s", s.State),
		fmt.Sprintf("Viewport: %dx%d (%s)", s.Width, s.Height, s.Class),
		fmt.Sprintf("Cells: %d", s.Particles),
		fmt.Sprintf("Allocations: %d", s.Allocations),
		fmt.Sprintf("Frames Drawn: %d", s.Draws),
		fmt.Sprintf("Mode: %s", s.Mode),
	}
	if s.Fallback {
		lines = append(lines, "Showing fallback image")
	}
	return append(lines,
		"#Memory",
		fmt.Sprintf("Heap Alloc: %.2f MB", mb(s.HeapAlloc)),
		fmt.Sprintf("Process Total: %.2f MB", mb(s.Sys)),
		fmt.Sprintf("Goroutines: %d", s.Goroutines),
	)
}

// sampler averages the frame rate over one second windows and refreshes
// memory statistics at the same cadence.
type sampler struct {
	now      func() time.Time
	last     time.Time
	frames   int
	fps      float64
	memStats runtime.MemStats
}

func newSampler(now func() time.Time) *sampler {
	return &sampler{now: now, last: now()}
}

// tick records one frame and reports whether a new sample was taken.
func (s *sampler) tick() bool {
	s.frames++
	now := s.now()
	elapsed := now.Sub(s.last)
	if elapsed < time.Second {
		return false
	}
	s.fps = float64(s.frames) / elapsed.Seconds()
	s.frames = 0
	s.last = now
	runtime.ReadMemStats(&s.memStats)
	return true
}
