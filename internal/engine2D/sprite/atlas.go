package sprite

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand"
	"time"

	"golang.org/x/image/vector"
)

var ErrInvalidAtlas = errors.New("invalid atlas")

const (
	DefaultTileSize = 128
	DefaultVariants = 10

	bodyRadius     = 0.45
	dimpleRadius   = 0.65
	granuleCount   = 12
	granuleOpacity = 0.3
)

var (
	redCell   = color.NRGBA{R: 230, G: 30, B: 40, A: 255}
	whiteCell = color.NRGBA{R: 245, G: 245, B: 255, A: 255}
)

// Kind selects which half of the strip a tile belongs to.
type Kind int

const (
	RedCell Kind = iota
	WhiteCell
)

func (k Kind) String() string {
	if k == WhiteCell {
		return "white"
	}
	return "red"
}

// Atlas is a horizontal strip of square cell sprites: Variants red-cell
// tiles followed by Variants white-cell tiles. It is never modified after
// Build returns.
type Atlas struct {
	Image    *image.RGBA
	TileSize int
	Variants int
}

type Options struct {
	TileSize int
	Variants int
	// Rand drives white-cell granule placement. Nil seeds from the clock.
	Rand *rand.Rand
}

// Tiles returns the number of tiles in the strip.
func (a *Atlas) Tiles() int {
	return a.Variants * 2
}

// Index maps a kind and a variant slot to a tile index.
func (a *Atlas) Index(kind Kind, slot int) int {
	slot %= a.Variants
	if slot < 0 {
		slot += a.Variants
	}
	if kind == WhiteCell {
		return a.Variants + slot
	}
	return slot
}

// Tile returns the pixel rectangle of tile i inside Image.
func (a *Atlas) Tile(i int) image.Rectangle {
	x := i * a.TileSize
	return image.Rect(x, 0, x+a.TileSize, a.TileSize)
}

// Build renders the sprite strip.
func Build(opts Options) (*Atlas, error) {
	if opts.TileSize == 0 {
		opts.TileSize = DefaultTileSize
	}
	if opts.Variants == 0 {
		opts.Variants = DefaultVariants
	}
	if opts.TileSize < 4 || opts.Variants < 1 {
		return nil, fmt.Errorf("%w: %d variants of %dpx", ErrInvalidAtlas, opts.Variants, opts.TileSize)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	atlas := &Atlas{
		Image:    image.NewRGBA(image.Rect(0, 0, opts.TileSize*opts.Variants*2, opts.TileSize)),
		TileSize: opts.TileSize,
		Variants: opts.Variants,
	}

	p := &painter{
		z:    vector.NewRasterizer(opts.TileSize, opts.TileSize),
		dst:  atlas.Image,
		size: opts.TileSize,
	}
	for i := 0; i < atlas.Tiles(); i++ {
		p.tile = atlas.Tile(i)
		if i < opts.Variants {
			p.redCell()
		} else {
			p.whiteCell(rng)
		}
	}

	return atlas, nil
}

type painter struct {
	z    *vector.Rasterizer
	dst  *image.RGBA
	tile image.Rectangle
	size int
}

// disc fills a circle centered at (x, y) in tile-local coordinates.
func (p *painter) disc(x, y, r float64, src image.Image) {
	const k = 0.5522847498 // cubic Bézier circle constant

	p.z.Reset(p.size, p.size)
	p.z.DrawOp = draw.Over

	cx, cy, rr, kr := float32(x), float32(y), float32(r), float32(r*k)
	p.z.MoveTo(cx+rr, cy)
	p.z.CubeTo(cx+rr, cy+kr, cx+kr, cy+rr, cx, cy+rr)
	p.z.CubeTo(cx-kr, cy+rr, cx-rr, cy+kr, cx-rr, cy)
	p.z.CubeTo(cx-rr, cy-kr, cx-kr, cy-rr, cx, cy-rr)
	p.z.CubeTo(cx+kr, cy-rr, cx+rr, cy-kr, cx+rr, cy)
	p.z.ClosePath()

	p.z.Draw(p.dst, p.tile, src, image.Point{})
}

func (p *painter) redCell() {
	c := float64(p.size) / 2
	radius := float64(p.size) * bodyRadius
	r, g, b := int(redCell.R), int(redCell.G), int(redCell.B)

	p.disc(c, c, radius, &radialGradient{
		fx: c - radius*0.2, fy: c - radius*0.2,
		cx: c, cy: c, r: radius,
		stops: []stop{
			{0, rgb(r+20, g+20, b+20)},
			{0.6, rgb(r, g, b)},
			{1, rgb(r-100, 0, 0)},
		},
	})

	// biconcave dimple
	p.disc(c, c, radius*dimpleRadius, &radialGradient{
		fx: c, fy: c, cx: c, cy: c, r: radius * dimpleRadius,
		stops: []stop{
			{0, rgba(0, 0, 0, 0.6)},
			{0.5, rgba(0, 0, 0, 0.2)},
			{1, rgba(0, 0, 0, 0)},
		},
	})
}

func (p *painter) whiteCell(rng *rand.Rand) {
	c := float64(p.size) / 2
	radius := float64(p.size) * bodyRadius

	p.disc(c, c, radius, &radialGradient{
		fx: c - radius*0.3, fy: c - radius*0.3,
		cx: c, cy: c, r: radius,
		stops: []stop{
			{0, whiteCell},
			{0.7, rgb(220, 220, 230)},
			{1, rgb(160, 160, 180)},
		},
	})

	p.disc(c, c, radius*dimpleRadius, &radialGradient{
		fx: c, fy: c, cx: c, cy: c, r: radius * dimpleRadius,
		stops: []stop{
			{0, rgba(100, 100, 120, 0.4)},
			{0.6, rgba(150, 150, 170, 0.1)},
			{1, rgba(0, 0, 0, 0)},
		},
	})

	granule := image.NewUniform(rgba(180, 180, 220, 0.6*granuleOpacity))
	for i := 0; i < granuleCount; i++ {
		size := radius * (0.04 + rng.Float64()*0.08)
		angle := rng.Float64() * math.Pi * 2
		dist := rng.Float64() * radius * 0.8
		p.disc(c+math.Cos(angle)*dist, c+math.Sin(angle)*dist, size, granule)
	}
}
