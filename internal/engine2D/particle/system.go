package particle

import (
	"cmp"
	"slices"

	"cellring/internal/config"
)

// Step advances the field by one frame: shell rotation and pulse, per-cell
// spin, pointer interaction, projection and the back-to-front sort.
func (f *Field) Step(ptr Pointer) {
	rot := f.advanceShell()

	for _, p := range f.Particles {
		p.Rotation = p.Rotation.Add(p.Spin)
		f.interact(p, ptr)
		f.project(p, rot)
	}

	slices.SortStableFunc(f.Particles, func(a, b *Particle) int {
		return cmp.Compare(b.Projected.Depth, a.Projected.Depth)
	})
	f.Frames++
}

// Len returns the population size.
func (f *Field) Len() int {
	return len(f.Particles)
}

// Center returns the screen position of the shell center.
func (f *Field) Center() (float64, float64) {
	return f.centerX, f.centerY
}

func (f *Field) Tuning() config.Tuning {
	return f.tuning
}
