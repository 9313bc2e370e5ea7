package sprite

import (
	"image"
	"image/color"
	"math"
)

type stop struct {
	offset float64
	color  color.NRGBA
}

// radialGradient is a two-point radial gradient with a zero start radius:
// the focus sits at (fx, fy) and the end circle is centered on (cx, cy).
// Coordinates are tile-local pixels.
type radialGradient struct {
	fx, fy float64
	cx, cy float64
	r      float64
	stops  []stop
}

func (g *radialGradient) ColorModel() color.Model { return color.NRGBAModel }

func (g *radialGradient) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *radialGradient) At(x, y int) color.Color {
	return g.colorAt(g.offset(float64(x)+0.5, float64(y)+0.5))
}

// offset solves |p - f - t*d| = t*r for the largest t, d being the vector
// from the focus to the end circle center.
func (g *radialGradient) offset(px, py float64) float64 {
	ex, ey := px-g.fx, py-g.fy
	dx, dy := g.cx-g.fx, g.cy-g.fy

	a := dx*dx + dy*dy - g.r*g.r
	ed := ex*dx + ey*dy
	ee := ex*ex + ey*ey

	var t float64
	if math.Abs(a) < 1e-9 {
		if ed == 0 {
			return 1
		}
		t = ee / (2 * ed)
	} else {
		disc := ed*ed - a*ee
		if disc < 0 {
			disc = 0
		}
		t = (ed - math.Sqrt(disc)) / a
	}

	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func (g *radialGradient) colorAt(t float64) color.NRGBA {
	if len(g.stops) == 0 {
		return color.NRGBA{}
	}
	if t <= g.stops[0].offset {
		return g.stops[0].color
	}
	for i := 1; i < len(g.stops); i++ {
		prev, next := g.stops[i-1], g.stops[i]
		if t <= next.offset {
			span := next.offset - prev.offset
			if span <= 0 {
				return next.color
			}
			return lerpColor(prev.color, next.color, (t-prev.offset)/span)
		}
	}
	return g.stops[len(g.stops)-1].color
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func rgb(r, g, b int) color.NRGBA {
	return color.NRGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: 255}
}

func rgba(r, g, b int, a float64) color.NRGBA {
	return color.NRGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: uint8(math.Round(a * 255))}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
