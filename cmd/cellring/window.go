package main

import (
	"cellring/internal/convert"
	"cellring/internal/debug"
	"cellring/internal/engine2D"
	"cellring/internal/engine2D/sprite"
	"cellring/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Window struct {
	opts     options
	host     *engine2D.WindowHost
	ring     *engine2D.Ring
	renderer *engine2D.Renderer
	overlay  *debug.DebugOverlay
	saved    bool
}

func NewWindow(opts options) *Window {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.width), int32(opts.height), "Cell Ring")

	pointer, err := engine2D.NewPointerSource(opts.pointer)
	if err != nil {
		utils.Warn("%v", err)
	}

	var atlas *sprite.Atlas
	if opts.atlasIn != "" {
		atlas, err = convert.LoadAtlasSnapshot(opts.atlasIn)
		if err != nil {
			utils.Warn("Failed to load atlas snapshot, building instead: %v", err)
			atlas = nil
		}
	}

	host := engine2D.NewWindowHost(pointer)
	ring := engine2D.NewRing(host, engine2D.RingOptions{
		Tuning: opts.tuning,
		Mode:   opts.mode,
		Atlas:  atlas,
	})

	window := &Window{
		opts:     opts,
		host:     host,
		ring:     ring,
		renderer: &engine2D.Renderer{Host: host, Ring: ring},
		overlay:  debug.NewDebugOverlay(),
	}

	if opts.fallback != "" {
		fallback, err := engine2D.LoadFallbackImage(opts.fallback)
		if err != nil {
			utils.Error("Failed to load fallback image %s: %v", opts.fallback, err)
		} else {
			window.renderer.Fallback = fallback
		}
	}

	return window
}

func (window *Window) Run() {
	rl.SetTargetFPS(int32(window.opts.fps))

	window.ring.Mount()
	utils.Info("Ring mounted (%s mode, %s)", window.ring.Mode(), window.ring.State())

	for !rl.WindowShouldClose() {
		window.Update()

		rl.BeginDrawing()
		window.Draw()
		rl.EndDrawing()
	}
}

func (window *Window) Update() {
	window.host.Poll()
	window.overlay.Update()
	window.saveAtlas()
}

// saveAtlas writes the snapshot once, as soon as an atlas exists.
func (window *Window) saveAtlas() {
	if window.saved || window.opts.atlasOut == "" || window.ring.Atlas() == nil {
		return
	}
	window.saved = true
	if err := convert.SaveAtlasSnapshot(window.opts.atlasOut, window.ring.Atlas()); err != nil {
		utils.Error("Failed to save atlas snapshot: %v", err)
		return
	}
	utils.Info("Atlas snapshot written to %s", window.opts.atlasOut)
}

func (window *Window) Draw() {
	window.renderer.Render()

	x, y, _ := window.host.Pointer()
	window.overlay.Draw(window.ring, x, y)
}

func (window *Window) Close() {
	window.ring.Teardown()
	window.host.Close()
	if window.renderer.Fallback != nil {
		window.renderer.Fallback.Unload()
	}
	window.overlay.Unload()
	rl.CloseWindow()
}
