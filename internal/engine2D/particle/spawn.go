package particle

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"cellring/internal/config"
)

// NewField allocates the population for a surface of the given size. A
// zero or negative dimension yields ErrDegenerateViewport and no field.
// A nil rng is seeded from the clock.
func NewField(width, height int, t config.Tuning, rng *rand.Rand) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDegenerateViewport, width, height)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	class := t.Classify(width)
	values := t.Class(class)

	f := &Field{
		Particles:    make([]*Particle, 0, values.Count),
		Class:        class,
		Width:        width,
		Height:       height,
		SphereRadius: math.Min(float64(width), float64(height)) * values.ShellFactor,
		Pulse:        1,
		tuning:       t,
	}

	if class == config.ClassDesktop {
		f.centerX, f.centerY = float64(width)*t.DesktopCenterX, float64(height)*t.DesktopCenterY
	} else {
		f.centerX, f.centerY = float64(width)*t.CenterX, float64(height)*t.CenterY
	}

	for i := 0; i < values.Count; i++ {
		f.spawnParticle(rng, i, values.Count)
	}

	return f, nil
}

func (f *Field) spawnParticle(rng *rand.Rand, i, n int) {
	phi, theta := shellAngles(i, n)
	radius := (f.tuning.RadiusMin + rng.Float64()*f.tuning.RadiusSpread) * f.SphereRadius
	kind := randomKind(rng, f.tuning)

	f.Particles = append(f.Particles, &Particle{
		Index:    i,
		Kind:     kind,
		Phi:      phi,
		Theta:    theta,
		Radius:   radius,
		BaseSize: randomSize(rng, f.tuning, kind, f.Class),
		Rotation: randomRotation(rng),
		Spin:     randomSpin(rng, f.tuning),
	})
}
