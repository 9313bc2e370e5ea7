package particle

import (
	"math"
	"math/rand"

	"cellring/internal/config"

	"github.com/go-gl/mathgl/mgl64"
)

// shellAngles spreads index i of n evenly over the sphere.
func shellAngles(i, n int) (phi, theta float64) {
	phi = math.Acos(-1 + 2*float64(i)/float64(n))
	theta = math.Sqrt(float64(n)*math.Pi) * phi
	return phi, theta
}

func randomKind(rng *rand.Rand, t config.Tuning) Kind {
	if rng.Float64() > 1-t.WhiteCellChance {
		return WhiteCell
	}
	return RedCell
}

func randomSize(rng *rand.Rand, t config.Tuning, kind Kind, class config.ViewportClass) float64 {
	multiplier := 1.0
	if class == config.ClassMobile {
		multiplier = t.MobileSizeMultiplier
	}
	if kind == WhiteCell {
		return (t.WhiteSizeMin + rng.Float64()*t.WhiteSizeSpread) * multiplier
	}
	return (t.RedSizeMin + rng.Float64()*t.RedSizeSpread) * multiplier
}

func randomRotation(rng *rand.Rand) mgl64.Vec3 {
	return mgl64.Vec3{rng.Float64() * math.Pi, rng.Float64() * math.Pi, rng.Float64() * math.Pi}
}

func randomSpin(rng *rand.Rand, t config.Tuning) mgl64.Vec3 {
	return mgl64.Vec3{
		(rng.Float64() - 0.5) * t.SpinSpeedRange,
		(rng.Float64() - 0.5) * t.SpinSpeedRange,
		(rng.Float64() - 0.5) * t.SpinSpeedRange,
	}
}
