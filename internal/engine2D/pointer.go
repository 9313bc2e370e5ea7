package engine2D

import (
	"fmt"

	"cellring/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PointerSource samples the pointer in window coordinates. ok is false
// when no position is known.
type PointerSource interface {
	Position() (x, y float64, ok bool)
	Close()
}

// WindowPointer reads raylib's mouse position. It only updates while the
// window receives input events.
type WindowPointer struct{}

func (WindowPointer) Position() (float64, float64, bool) {
	if !rl.IsCursorOnScreen() {
		return 0, 0, false
	}
	p := rl.GetMousePosition()
	return float64(p.X), float64(p.Y), true
}

func (WindowPointer) Close() {}

// X11Pointer reads the global X11 pointer and translates it into window
// coordinates.
type X11Pointer struct {
	global *utils.GlobalPointer
	failed bool
}

func NewX11Pointer() (*X11Pointer, error) {
	g, err := utils.NewGlobalPointer()
	if err != nil {
		return nil, err
	}
	return &X11Pointer{global: g}, nil
}

func (p *X11Pointer) Position() (float64, float64, bool) {
	gx, gy, err := p.global.Position()
	if err != nil {
		if !p.failed {
			utils.Warn("X11 pointer query failed: %v", err)
			p.failed = true
		}
		return 0, 0, false
	}
	p.failed = false

	win := rl.GetWindowPosition()
	x, y := rootToWindow(gx, gy, float64(win.X), float64(win.Y))
	return x, y, true
}

func (p *X11Pointer) Close() {
	p.global.Close()
}

func rootToWindow(rootX, rootY int, winX, winY float64) (float64, float64) {
	return float64(rootX) - winX, float64(rootY) - winY
}

// NewPointerSource returns the source named by kind: "window" or "x11".
// An unavailable X server falls back to the window source.
func NewPointerSource(kind string) (PointerSource, error) {
	switch kind {
	case "", "window":
		return WindowPointer{}, nil
	case "x11":
		p, err := NewX11Pointer()
		if err != nil {
			utils.Warn("Falling back to window pointer: %v", err)
			return WindowPointer{}, nil
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown pointer source %q", kind)
}
