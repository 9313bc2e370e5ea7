package particle

import (
	"errors"
	"image/color"

	"cellring/internal/config"
	"cellring/internal/engine2D/sprite"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrDegenerateViewport = errors.New("degenerate viewport")

// Background fills the surface before each frame.
var Background = color.RGBA{R: 0, G: 0, B: 0, A: 255}

type Kind = sprite.Kind

const (
	RedCell   = sprite.RedCell
	WhiteCell = sprite.WhiteCell
)

// Projection is the screen-space result of the latest frame.
type Projection struct {
	X, Y  float64
	Depth float64
	Scale float64
	Valid bool
}

type Particle struct {
	Index int
	Kind  Kind

	// shell placement, fixed at creation
	Phi    float64
	Theta  float64
	Radius float64

	Rotation mgl64.Vec3
	Spin     mgl64.Vec3

	BaseSize  float64
	Expansion float64

	Projected Projection
}

// Pointer is the last known pointer position in surface coordinates.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Field is the simulation state of one population. It is replaced, not
// resized, when the surface width changes.
type Field struct {
	Particles    []*Particle
	Class        config.ViewportClass
	Width        int
	Height       int
	SphereRadius float64

	Yaw        float64
	Pitch      float64
	HeartPhase float64
	Pulse      float64
	Frames     uint64

	tuning           config.Tuning
	centerX, centerY float64
}

// SpriteDraw describes one composited sprite. The sprite is centered on
// (X, Y), flattened by (ScaleX, ScaleY), rotated by Angle radians and drawn
// HalfSize pixels out from its center in each direction.
type SpriteDraw struct {
	Tile     int
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Angle    float64
	HalfSize float64
	Alpha    float64
}

// Surface is a 2D drawing target. DrawSprite must not leave its transform
// applied once it returns; ResetTransform restores identity regardless.
type Surface interface {
	Size() (width, height int)
	Clear(c color.RGBA)
	DrawSprite(atlas *sprite.Atlas, d SpriteDraw)
	ResetTransform()
}
