package particle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// advanceShell moves the global yaw, pitch and heartbeat phase by one frame
// and returns the shell rotation for this frame.
func (f *Field) advanceShell() mgl64.Mat3 {
	f.Yaw += f.tuning.YawStep
	f.Pitch += f.tuning.PitchStep
	f.HeartPhase += f.tuning.PulseStep
	f.Pulse = 1 + math.Pow(math.Sin(f.HeartPhase), 4)*f.tuning.PulseAmplitude

	return shellRotation(f.Yaw, f.Pitch)
}

// project places p on the pulsed shell, rotates it and applies the
// perspective divide.
func (f *Field) project(p *Particle, rot mgl64.Mat3) {
	v := rot.Mul3x1(shellPoint(p.Radius*f.Pulse, p.Phi, p.Theta))

	focal := f.tuning.FocalLength
	scale := focal / (focal + v.Z())
	p.Projected = Projection{
		X:     f.centerX + v.X()*scale,
		Y:     f.centerY + v.Y()*scale,
		Depth: v.Z(),
		Scale: scale,
		Valid: true,
	}
}

// interact grows the expansion of particles close to the pointer and decays
// everything else. Distance is measured against the projection of the
// previous frame.
func (f *Field) interact(p *Particle, ptr Pointer) {
	if ptr.Active && p.Projected.Valid {
		radius := f.tuning.PointerRadius
		dx := ptr.X - p.Projected.X
		dy := ptr.Y - p.Projected.Y
		if math.Abs(dx) < radius && math.Abs(dy) < radius {
			distSq := dx*dx + dy*dy
			if distSq < radius*radius {
				force := (radius - math.Sqrt(distSq)) / radius
				p.Expansion += (force*f.tuning.MaxExpansion - p.Expansion) * f.tuning.ExpansionSmoothing
				return
			}
		}
	}
	p.Expansion *= f.tuning.ExpansionDecay
}
