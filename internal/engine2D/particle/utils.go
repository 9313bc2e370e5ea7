package particle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func shellPoint(radius, phi, theta float64) mgl64.Vec3 {
	return mgl64.Vec3{
		radius * math.Sin(phi) * math.Cos(theta),
		radius * math.Sin(phi) * math.Sin(theta),
		radius * math.Cos(phi),
	}
}

// shellRotation applies yaw first, then pitch. Positive yaw turns +z
// towards +x.
func shellRotation(yaw, pitch float64) mgl64.Mat3 {
	return mgl64.Rotate3DX(pitch).Mul3(mgl64.Rotate3DY(-yaw))
}

func depthOpacity(depth, base, slope, floor float64) float64 {
	return math.Max(floor, base+(depth/1000)*slope)
}

// diskScale flattens the sprite as the cell turns edge-on.
func diskScale(rot mgl64.Vec3, minX, minY float64) (float64, float64) {
	return math.Max(minX, math.Abs(math.Cos(rot.X()))), math.Max(minY, math.Abs(math.Sin(rot.Y())))
}
