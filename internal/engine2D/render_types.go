package engine2D

import (
	"cellring/internal/engine2D/sprite"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Canvas is a retained drawing surface backed by a render texture. What
// was drawn last stays visible until the next frame clears it.
type Canvas struct {
	Target rl.RenderTexture2D
	Width  int
	Height int

	atlas    *sprite.Atlas
	atlasTex rl.Texture2D
	drawing  bool
}

// FallbackImage is the static picture shown in place of the animation on
// narrow viewports.
type FallbackImage struct {
	Texture rl.Texture2D
	Opacity float64
	// Fraction of the screen width used, capped at MaxWidth pixels.
	WidthFraction float64
	MaxWidth      float64
}

// Renderer presents the ring canvas, or the fallback image, to the window.
type Renderer struct {
	Host     *WindowHost
	Ring     *Ring
	Fallback *FallbackImage
}
