package engine2D

import (
	"image/color"
	"math/rand"
	"testing"

	"cellring/internal/config"
	"cellring/internal/engine2D/particle"
	"cellring/internal/engine2D/sprite"
)

type fakeSurface struct {
	width, height int
	clears        int
	sprites       int
	resets        int
}

func (s *fakeSurface) Size() (int, int) { return s.width, s.height }
func (s *fakeSurface) Clear(color.RGBA) { s.clears++ }
func (s *fakeSurface) DrawSprite(*sprite.Atlas, particle.SpriteDraw) { s.sprites++ }
func (s *fakeSurface) ResetTransform() { s.resets++ }

type fakeHost struct {
	*Scheduler
	width, height int
	surfaceErr    error
	surfaces      []*fakeSurface
}

func newFakeHost(width, height int) *fakeHost {
	return &fakeHost{Scheduler: NewScheduler(), width: width, height: height}
}

func (h *fakeHost) ViewportSize() (int, int) { return h.width, h.height }

func (h *fakeHost) Surface(width, height int) (particle.Surface, error) {
	if h.surfaceErr != nil {
		return nil, h.surfaceErr
	}
	s := &fakeSurface{width: width, height: height}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

func (h *fakeHost) resize(width, height int) {
	h.width, h.height = width, height
	h.DispatchResize(width, height)
}

func (h *fakeHost) lastSurface() *fakeSurface {
	if len(h.surfaces) == 0 {
		return nil
	}
	return h.surfaces[len(h.surfaces)-1]
}

func testTuning() config.Tuning {
	tuning := config.DefaultTuning()
	tuning.TileSize = 16
	return tuning
}

func newTestRing(host *fakeHost, mode Mode) *Ring {
	return NewRing(host, RingOptions{
		Tuning: testTuning(),
		Mode:   mode,
		Rand:   rand.New(rand.NewSource(3)),
	})
}

func TestMountStartsRunning(t *testing.T) {
	host := newFakeHost(1440, 900)
	r := newTestRing(host, ModeNormal)

	if r.State() != Idle {
		t.Fatalf("Expected Idle before mount, got %v", r.State())
	}

	r.Mount()

	if r.State() != Running {
		t.Fatalf("Expected Running after mount, got %v", r.State())
	}
	if r.Field() == nil || r.Field().Len() != 1800 {
		t.Fatalf("Expected 1800 cells, got %v", r.Field())
	}
	if r.Allocations() != 1 {
		t.Errorf("Expected 1 allocation, got %d", r.Allocations())
	}
	if host.PendingFrames() != 1 {
		t.Errorf("Expected 1 pending frame, got %d", host.PendingFrames())
	}
	if host.Listeners() != 2 {
		t.Errorf("Expected 2 listeners, got %d", host.Listeners())
	}
	s := host.lastSurface()
	if s.clears != 1 || s.sprites != 1800 || s.resets != 1 {
		t.Errorf("Expected one synchronous frame of 1800 sprites, got clears=%d sprites=%d resets=%d", s.clears, s.sprites, s.resets)
	}
	if r.Fallback() {
		t.Error("Expected no fallback on desktop width")
	}
}

func TestFramesReschedule(t *testing.T) {
	host := newFakeHost(1440, 900)
	r := newTestRing(host, ModeNormal)
	r.Mount()

	for i := 0; i < 5; i++ {
		if n := host.RunFrames(); n != 1 {
			t.Fatalf("Frame %d: expected 1 callback, got %d", i, n)
		}
	}

	if r.Draws() != 6 {
		t.Errorf("Expected 6 draws, got %d", r.Draws())
	}
	if r.Field().Frames != 6 {
		t.Errorf("Expected 6 simulated frames, got %d", r.Field().Frames)
	}
	if host.PendingFrames() != 1 {
		t.Errorf("Expected 1 pending frame, got %d", host.PendingFrames())
	}
}

func TestNarrowResizeGoesIdle(t *testing.T) {
	host := newFakeHost(1440, 900)
	r := newTestRing(host, ModeNormal)
	r.Mount()

	host.resize(500, 900)

	if r.State() != Idle {
		t.Fatalf("Expected Idle below the mobile breakpoint, got %v", r.State())
	}
	if host.PendingFrames() != 0 {
		t.Errorf("Expected no pending frames, got %d", host.PendingFrames())
	}
	if r.Field().Len() != 250 {
		t.Errorf("Expected 250 cells for mobile, got %d", r.Field().Len())
	}
	if !r.Fallback() {
		t.Error("Expected fallback below the mobile breakpoint")
	}
	if n := host.RunFrames(); n != 0 {
		t.Errorf("Expected no frame callbacks while idle, got %d", n)
	}

	host.resize(1200, 800)

	if r.State() != Running {
		t.Fatalf("Expected Running after widening, got %v", r.State())
	}
	if r.Field().Len() != 1800 {
		t.Errorf("Expected 1800 cells after widening, got %d", r.Field().Len())
	}
	if r.Allocations() != 3 {
		t.Errorf("Expected 3 allocations, got %d", r.Allocations())
	}
	if host.PendingFrames() != 1 {
		t.Errorf("Expected 1 pending frame, got %d", host.PendingFrames())
	}
}

func TestTabletReallocation(t *testing.T) {
	host := newFakeHost(1440, 900)
	r := newTestRing(host, ModeNormal)
	r.Mount()

	host.resize(900, 900)

	if r.Field().Len() != 1000 {
		t.Errorf("Expected 1000 cells for tablet, got %d", r.Field().Len())
	}
	if r.State() != Running {
		t.Errorf("Expected Running on tablet width, got %v", r.State())
	}
}

func TestHeightOnlyResizeIgnored(t *testing.T) {
	host := newFakeHost(1440, 900)
	r := newTestRing(host, ModeNormal)
	r.Mount()
	field := r.Field()
	surfaces := len(host.surfaces)

	host.resize(1440, 640)

	if r.Field() != field {
		t.Error("Expected height-only resize to keep the population")
	}
	if r.Allocations() != 1 {
		t.Errorf("Expected 1 allocation, got %d", r.Allocations())
	}
	if len(host.surfaces) != surfaces {
		t.Errorf("Expected no new surface, got %d", len(host.surfaces))
	}
	if host.PendingFrames() != 1 || r.State() != Running {
		t.Errorf("Expected loop untouched, got state %v with %d pending", r.State(), host.PendingFrames())
	}
}

func TestResizeCancelsPendingFrame(t *testing.T) {
	host := newFakeHost(1440, 900)
	r := newTestRing(host, ModeNormal)
	r.Mount()

	host.resize(1300, 900)
	host.resize(1100, 900)

	if host.PendingFrames() != 1 {
		t.Errorf("Expected exactly 1 pending frame after resizes, got %d", host.PendingFrames())
	}
	if n := host.RunFrames(); n != 1 {
		t.Errorf("Expected 1 callback, got %d", n)
	}
}

func TestTeardownLeavesNothingScheduled(t *testing.T) {
	host := newFakeHost(1440, 900)
	r := newTestRing(host, ModeNormal)
	r.Mount()
	host.RunFrames()

	r.Teardown()

	if host.PendingFrames() != 0 {
		t.Errorf("Expected 0 pending frames, got %d", host.PendingFrames())
	}
	if host.Listeners() != 0 {
		t.Errorf("Expected 0 listeners, got %d", host.Listeners())
	}
	if r.State() != Idle {
		t.Errorf("Expected Idle after teardown, got %v", r.State())
	}

	draws := r.Draws()
	surfaces := len(host.surfaces)
	clears := host.lastSurface().clears

	host.resize(1000, 800)
	host.DispatchPointer(10, 10)
	host.RunFrames()

	if r.Draws() != draws {
		t.Errorf("Expected no draws after teardown, got %d more", r.Draws()-draws)
	}
	if len(host.surfaces) != surfaces || host.lastSurface().clears != clears {
		t.Error("Expected surface untouched after teardown")
	}
}

func TestDegenerateViewportNotReady(t *testing.T) {
	host := newFakeHost(0, 0)
	r := newTestRing(host, ModeNormal)
	r.Mount()

	if r.Field() != nil {
		t.Error("Expected no field for a zero-sized viewport")
	}
	if r.State() != Idle || host.PendingFrames() != 0 {
		t.Errorf("Expected Idle with nothing scheduled, got %v with %d pending", r.State(), host.PendingFrames())
	}
	if len(host.surfaces) != 0 {
		t.Errorf("Expected no surface acquired, got %d", len(host.surfaces))
	}

	// a later height fix with the same width still initializes
	host.resize(0, 900)
	host.resize(1440, 0)
	if r.Field() != nil {
		t.Error("Expected no field for zero height")
	}
	host.resize(1440, 900)
	if r.State() != Running || r.Field() == nil {
		t.Errorf("Expected Running after a valid resize, got %v", r.State())
	}
}

func TestSurfaceUnavailableSkips(t *testing.T) {
	host := newFakeHost(1440, 900)
	host.surfaceErr = ErrNoContext
	r := newTestRing(host, ModeNormal)
	r.Mount()

	if r.Field() == nil {
		t.Fatal("Expected the population to be allocated")
	}
	if r.Draws() != 0 {
		t.Errorf("Expected no draws, got %d", r.Draws())
	}
	if r.State() != Idle || host.PendingFrames() != 0 {
		t.Errorf("Expected Idle with nothing scheduled, got %v with %d pending", r.State(), host.PendingFrames())
	}

	host.surfaceErr = nil
	host.resize(1400, 900)
	if r.State() != Running || r.Draws() != 1 {
		t.Errorf("Expected recovery on next resize, got %v with %d draws", r.State(), r.Draws())
	}
}

func TestHeightOnlyResizeRetriesSurface(t *testing.T) {
	host := newFakeHost(1440, 900)
	host.surfaceErr = ErrNoContext
	r := newTestRing(host, ModeNormal)
	r.Mount()
	field := r.Field()

	host.surfaceErr = nil
	host.resize(1440, 700)

	if r.Field() != field || r.Allocations() != 1 {
		t.Errorf("Expected the population to be kept, got %d allocations", r.Allocations())
	}
	if s := host.lastSurface(); s == nil || s.height != 700 {
		t.Fatalf("Expected a surface for the new height, got %+v", s)
	}
	if r.State() != Running || r.Draws() != 1 || host.PendingFrames() != 1 {
		t.Errorf("Expected Running after 1 draw with 1 pending frame, got %v, %d draws, %d pending", r.State(), r.Draws(), host.PendingFrames())
	}

	host.resize(1440, 650)
	if len(host.surfaces) != 1 {
		t.Errorf("Expected a ready ring to ignore height changes, got %d surfaces", len(host.surfaces))
	}
}

func TestAtlasBuiltOnce(t *testing.T) {
	host := newFakeHost(1440, 900)
	r := newTestRing(host, ModeNormal)
	r.Mount()
	atlas := r.Atlas()
	if atlas == nil {
		t.Fatal("Expected an atlas after mount")
	}

	host.resize(800, 900)
	host.resize(1440, 900)

	if r.Atlas() != atlas {
		t.Error("Expected the atlas to be reused across reallocations")
	}
}

func TestProvidedAtlasUsed(t *testing.T) {
	atlas, err := sprite.Build(sprite.Options{TileSize: 8, Variants: 2})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	host := newFakeHost(1440, 900)
	r := NewRing(host, RingOptions{Tuning: testTuning(), Atlas: atlas})
	r.Mount()

	if r.Atlas() != atlas {
		t.Error("Expected the provided atlas to be used")
	}
}

func TestPointerReachesField(t *testing.T) {
	host := newFakeHost(1440, 900)
	r := newTestRing(host, ModeNormal)
	r.Mount()

	front := r.Field().Particles[r.Field().Len()-1]
	host.DispatchPointer(front.Projected.X, front.Projected.Y)
	host.RunFrames()

	if front.Expansion <= 0 {
		t.Errorf("Expected the nearest cell to expand, got %v", front.Expansion)
	}
}

func TestModeIsInert(t *testing.T) {
	run := func(mode Mode) *particle.Field {
		host := newFakeHost(1440, 900)
		r := newTestRing(host, mode)
		r.Mount()
		for i := 0; i < 10; i++ {
			host.RunFrames()
		}
		if r.Mode() != mode {
			t.Errorf("Expected mode %v, got %v", mode, r.Mode())
		}
		return r.Field()
	}

	a, b := run(ModeNormal), run(ModeActive)
	for i := range a.Particles {
		pa, pb := a.Particles[i], b.Particles[i]
		if pa.Index != pb.Index || pa.Projected != pb.Projected {
			t.Fatalf("Slot %d: expected identical animation across modes", i)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"", ModeNormal, true},
		{"normal", ModeNormal, true},
		{"Active", ModeActive, true},
		{"party", ModeNormal, false},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseMode(%q): expected ok=%v, got err %v", tt.in, tt.ok, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
