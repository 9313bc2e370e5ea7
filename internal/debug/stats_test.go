package debug

import (
	"slices"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSamplerFPS(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := newSampler(clock.Now)

	for i := 0; i < 59; i++ {
		clock.Advance(time.Second / 60)
		if s.tick() {
			t.Fatalf("Expected no sample before one second, got one at frame %d", i)
		}
	}

	clock.Advance(time.Second)
	if !s.tick() {
		t.Fatal("Expected a sample after one second")
	}
	elapsed := 59*(time.Second/60) + time.Second
	want := 60 / elapsed.Seconds()
	if s.fps < want-1e-9 || s.fps > want+1e-9 {
		t.Errorf("Expected fps %v, got %v", want, s.fps)
	}
	if s.frames != 0 {
		t.Errorf("Expected frame counter reset, got %d", s.frames)
	}
	if s.memStats.Sys == 0 {
		t.Error("Expected memory stats to be read")
	}
}

func TestStatsLines(t *testing.T) {
	s := Stats{
		FPS:         59.94,
		FrameTime:   16600 * time.Microsecond,
		Particles:   1800,
		State:       "running",
		Class:       "desktop",
		Mode:        "normal",
		Allocations: 2,
		Width:       1440,
		Height:      900,
	}

	lines := s.Lines()
	for _, want := range []string{
		"FPS: 59.9",
		"Frame Time: 16.60 ms",
		"Loop: running",
		"Viewport: 1440x900 (desktop)",
		"Cells: 1800",
		"Allocations: 2",
		"Mode: normal",
	} {
		if !slices.Contains(lines, want) {
			t.Errorf("Expected line %q in %v", want, lines)
		}
	}
	if slices.Contains(lines, "Showing fallback image") {
		t.Error("Expected no fallback line")
	}

	s.Fallback = true
	if !slices.Contains(s.Lines(), "Showing fallback image") {
		t.Error("Expected fallback line")
	}
}
