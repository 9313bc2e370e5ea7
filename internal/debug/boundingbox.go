package debug

import (
	"cellring/internal/engine2D"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawGuides outlines the shell, marks its center and shows the pointer
// interaction radius.
func (d *DebugOverlay) drawGuides(ring *engine2D.Ring, pointerX, pointerY float64) {
	f := ring.Field()
	if f == nil || ring.Fallback() {
		return
	}

	cx, cy := f.Center()
	rl.DrawCircleLines(int32(cx), int32(cy), float32(f.SphereRadius*f.Pulse), rl.NewColor(0, 255, 0, 255))
	rl.DrawRectangle(int32(cx-2), int32(cy-2), 4, 4, rl.Red)

	radius := f.Tuning().PointerRadius
	rl.DrawCircleLines(int32(pointerX), int32(pointerY), float32(radius), rl.NewColor(255, 255, 0, 150))
}
