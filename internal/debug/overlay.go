package debug

import (
	"math"
	"os"
	"runtime"
	"strings"
	"time"

	"cellring/internal/engine2D"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DebugOverlay is the F8 statistics panel. F9 toggles the shell guides.
type DebugOverlay struct {
	Visible    bool
	ShowGuides bool

	fontHeight int
	lineHeight int
	panelWidth int
	font       rl.Font
	hasFont    bool

	sampler *sampler
}

func NewDebugOverlay() *DebugOverlay {
	monitor := rl.GetCurrentMonitor()
	scale := math.Max(1.0, float64(rl.GetMonitorHeight(monitor))/1080.0)

	d := &DebugOverlay{
		fontHeight: int(16 * scale),
		lineHeight: int(24 * scale),
		panelWidth: int(320 * scale),
		sampler:    newSampler(time.Now),
	}

	fontPaths := []string{
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	}
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			d.font = rl.LoadFontEx(path, 64, nil, 0)
			rl.SetTextureFilter(d.font.Texture, rl.FilterBilinear)
			d.hasFont = true
			break
		}
	}

	return d
}

// Update handles the toggle keys and samples timing. Call it once per loop
// iteration.
func (d *DebugOverlay) Update() {
	if rl.IsKeyPressed(rl.KeyF8) {
		d.Visible = !d.Visible
	}
	if rl.IsKeyPressed(rl.KeyF9) {
		d.ShowGuides = !d.ShowGuides
	}
	d.sampler.tick()
}

func (d *DebugOverlay) collect(ring *engine2D.Ring) Stats {
	s := Stats{
		FPS:         d.sampler.fps,
		FrameTime:   time.Duration(float64(rl.GetFrameTime()) * float64(time.Second)),
		State:       ring.State().String(),
		Mode:        ring.Mode().String(),
		Allocations: ring.Allocations(),
		Draws:       ring.Draws(),
		Fallback:    ring.Fallback(),
		HeapAlloc:   d.sampler.memStats.HeapAlloc,
		Sys:         d.sampler.memStats.Sys,
		Goroutines:  runtime.NumGoroutine(),
	}
	if f := ring.Field(); f != nil {
		s.Particles = f.Len()
		s.Class = f.Class.String()
		s.Width, s.Height = f.Width, f.Height
	}
	return s
}

func (d *DebugOverlay) drawText(text string, x, y int32, col rl.Color) {
	if d.hasFont {
		rl.DrawTextEx(d.font, text, rl.NewVector2(float32(x), float32(y)), float32(d.fontHeight), 1, col)
		return
	}
	rl.DrawText(text, x, y, int32(d.fontHeight), col)
}

// Draw renders the guides and the panel over the presented frame.
func (d *DebugOverlay) Draw(ring *engine2D.Ring, pointerX, pointerY float64) {
	if d.ShowGuides {
		d.drawGuides(ring, pointerX, pointerY)
	}
	if !d.Visible {
		return
	}

	lines := d.collect(ring).Lines()
	height := int32(len(lines)*d.lineHeight + 20)
	rl.DrawRectangle(0, 0, int32(d.panelWidth), height, rl.NewColor(0, 0, 0, 200))

	y := int32(10)
	for _, line := range lines {
		if header, ok := strings.CutPrefix(line, "#"); ok {
			d.drawText(header+":", 10, y, rl.Yellow)
		} else {
			d.drawText(line, 20, y, rl.White)
		}
		y += int32(d.lineHeight)
	}
}

func (d *DebugOverlay) Unload() {
	if d.hasFont {
		rl.UnloadFont(d.font)
		d.hasFont = false
	}
}
