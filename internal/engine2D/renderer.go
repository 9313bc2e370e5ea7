package engine2D

import (
	"fmt"
	"image/color"
	"math"

	"cellring/internal/convert"
	"cellring/internal/engine2D/particle"
	"cellring/internal/engine2D/sprite"
	"cellring/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	FallbackOpacity       = 0.7
	FallbackWidthFraction = 0.85
	FallbackMaxWidth      = 400
)

// NewCanvas allocates a render texture of the given size. It returns
// ErrNoContext when no window (and so no GL context) exists or the
// allocation fails.
func NewCanvas(width, height int) (*Canvas, error) {
	if !rl.IsWindowReady() {
		return nil, ErrNoContext
	}
	target := rl.LoadRenderTexture(int32(width), int32(height))
	if target.ID == 0 {
		return nil, fmt.Errorf("%w: render texture %dx%d", ErrNoContext, width, height)
	}
	rl.SetTextureFilter(target.Texture, rl.FilterBilinear)
	return &Canvas{Target: target, Width: width, Height: height}, nil
}

func (c *Canvas) Size() (int, int) { return c.Width, c.Height }

func (c *Canvas) begin() {
	if !c.drawing {
		rl.BeginTextureMode(c.Target)
		c.drawing = true
	}
}

func (c *Canvas) Clear(col color.RGBA) {
	c.begin()
	rl.ClearBackground(col)
}

// texture uploads the atlas the first time it is drawn from.
func (c *Canvas) texture(atlas *sprite.Atlas) rl.Texture2D {
	if c.atlas == atlas && c.atlasTex.ID != 0 {
		return c.atlasTex
	}
	if c.atlasTex.ID != 0 {
		rl.UnloadTexture(c.atlasTex)
	}

	img := rl.NewImageFromImage(atlas.Image)
	c.atlasTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(c.atlasTex, rl.FilterBilinear)
	c.atlas = atlas
	utils.Debug("Uploaded atlas texture %dx%d", c.atlasTex.Width, c.atlasTex.Height)
	return c.atlasTex
}

// DrawSprite draws one tile with its transform scoped to this call:
// translate to the projected position, rotate, then flatten.
func (c *Canvas) DrawSprite(atlas *sprite.Atlas, d particle.SpriteDraw) {
	c.begin()
	tex := c.texture(atlas)

	tile := atlas.Tile(d.Tile)
	src := rl.NewRectangle(float32(tile.Min.X), float32(tile.Min.Y), float32(tile.Dx()), float32(tile.Dy()))
	size := float32(d.HalfSize * 2)
	dst := rl.NewRectangle(-size/2, -size/2, size, size)

	rl.PushMatrix()
	rl.Translatef(float32(d.X), float32(d.Y), 0)
	rl.Rotatef(float32(d.Angle*180/math.Pi), 0, 0, 1)
	rl.Scalef(float32(d.ScaleX), float32(d.ScaleY), 1)
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, rl.Fade(rl.White, float32(d.Alpha)))
	rl.PopMatrix()
}

// ResetTransform restores the identity transform and ends drawing into the
// texture.
func (c *Canvas) ResetTransform() {
	if !c.drawing {
		return
	}
	rl.LoadIdentity()
	rl.EndTextureMode()
	c.drawing = false
}

// Present draws the canvas over the whole screen. Render textures are
// stored upside down, hence the negative source height.
func (c *Canvas) Present() {
	src := rl.NewRectangle(0, 0, float32(c.Target.Texture.Width), -float32(c.Target.Texture.Height))
	dst := rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	rl.DrawTexturePro(c.Target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

func (c *Canvas) Unload() {
	c.ResetTransform()
	if c.atlasTex.ID != 0 {
		rl.UnloadTexture(c.atlasTex)
		c.atlasTex = rl.Texture2D{}
	}
	if c.Target.ID != 0 {
		rl.UnloadRenderTexture(c.Target)
		c.Target = rl.RenderTexture2D{}
	}
	c.atlas = nil
}

// LoadFallbackImage loads a .tex, .png or .jpeg picture into a texture.
func LoadFallbackImage(path string) (*FallbackImage, error) {
	img, err := convert.LoadImage(path)
	if err != nil {
		return nil, err
	}

	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	if tex.ID == 0 {
		return nil, fmt.Errorf("%w: fallback texture %s", ErrNoContext, path)
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)

	return &FallbackImage{
		Texture:       tex,
		Opacity:       FallbackOpacity,
		WidthFraction: FallbackWidthFraction,
		MaxWidth:      FallbackMaxWidth,
	}, nil
}

// FallbackRect centers a square box of min(fraction*screenW, maxWidth) on
// the screen and fits an imgW x imgH picture inside it, keeping its aspect
// ratio.
func FallbackRect(screenW, screenH, imgW, imgH int, fraction, maxWidth float64) (x, y, w, h float64) {
	if screenW <= 0 || screenH <= 0 || imgW <= 0 || imgH <= 0 {
		return 0, 0, 0, 0
	}

	box := math.Min(float64(screenW)*fraction, maxWidth)
	scale := math.Min(box/float64(imgW), box/float64(imgH))
	w, h = float64(imgW)*scale, float64(imgH)*scale
	x = (float64(screenW) - w) / 2
	y = (float64(screenH) - h) / 2
	return x, y, w, h
}

func (f *FallbackImage) Draw() {
	x, y, w, h := FallbackRect(rl.GetScreenWidth(), rl.GetScreenHeight(),
		int(f.Texture.Width), int(f.Texture.Height), f.WidthFraction, f.MaxWidth)
	if w <= 0 || h <= 0 {
		return
	}

	src := rl.NewRectangle(0, 0, float32(f.Texture.Width), float32(f.Texture.Height))
	dst := rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
	rl.DrawTexturePro(f.Texture, src, dst, rl.Vector2{}, 0, rl.Fade(rl.White, float32(f.Opacity)))
}

func (f *FallbackImage) Unload() {
	if f.Texture.ID != 0 {
		rl.UnloadTexture(f.Texture)
		f.Texture = rl.Texture2D{}
	}
}

// Render draws the current frame. It must run between rl.BeginDrawing and
// rl.EndDrawing.
func (r *Renderer) Render() {
	rl.ClearBackground(rl.Black)

	if r.Ring.Fallback() && r.Fallback != nil {
		r.Fallback.Draw()
		return
	}

	if c := r.Host.Canvas(); c != nil {
		c.Present()
	}
}
