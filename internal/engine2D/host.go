package engine2D

import (
	"cellring/internal/engine2D/particle"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// WindowHost drives a Scheduler from the raylib main loop. Resize and
// pointer events are synthesized by polling once per loop iteration.
type WindowHost struct {
	*Scheduler

	pointer PointerSource
	canvas  *Canvas

	width, height int
	lastX, lastY  float64
	havePointer   bool
}

func NewWindowHost(pointer PointerSource) *WindowHost {
	if pointer == nil {
		pointer = WindowPointer{}
	}
	return &WindowHost{
		Scheduler: NewScheduler(),
		pointer:   pointer,
		width:     rl.GetScreenWidth(),
		height:    rl.GetScreenHeight(),
	}
}

func (h *WindowHost) ViewportSize() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Surface returns the canvas for the given size, reallocating it when the
// size changed.
func (h *WindowHost) Surface(width, height int) (particle.Surface, error) {
	if h.canvas != nil && h.canvas.Width == width && h.canvas.Height == height {
		return h.canvas, nil
	}
	if h.canvas != nil {
		h.canvas.Unload()
		h.canvas = nil
	}

	c, err := NewCanvas(width, height)
	if err != nil {
		return nil, err
	}
	h.canvas = c
	return c, nil
}

// Canvas returns the current canvas, or nil.
func (h *WindowHost) Canvas() *Canvas {
	return h.canvas
}

// Pointer returns the last pointer sample.
func (h *WindowHost) Pointer() (x, y float64, ok bool) {
	return h.lastX, h.lastY, h.havePointer
}

// Poll dispatches a resize when the screen size changed, a pointer move
// when the pointer moved, then runs the frame callbacks queued so far.
func (h *WindowHost) Poll() int {
	w, ht := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w != h.width || ht != h.height {
		h.width, h.height = w, ht
		h.DispatchResize(w, ht)
	}

	if x, y, ok := h.pointer.Position(); ok && (!h.havePointer || x != h.lastX || y != h.lastY) {
		h.lastX, h.lastY, h.havePointer = x, y, true
		h.DispatchPointer(x, y)
	}

	return h.RunFrames()
}

func (h *WindowHost) Close() {
	if h.canvas != nil {
		h.canvas.Unload()
		h.canvas = nil
	}
	h.pointer.Close()
}
