package particle

import (
	"cellring/internal/engine2D/sprite"
)

// Draw composites the field in its current (sorted) order. It reports false
// and draws nothing when the surface or the atlas is missing.
func (f *Field) Draw(s Surface, atlas *sprite.Atlas) bool {
	if s == nil || atlas == nil {
		return false
	}

	s.Clear(Background)
	defer s.ResetTransform()

	t := f.tuning
	for i, p := range f.Particles {
		scaleX, scaleY := diskScale(p.Rotation, t.DiskMinX, t.DiskMinY)

		s.DrawSprite(atlas, SpriteDraw{
			// tiles rotate by draw slot, not by particle
			Tile:     atlas.Index(p.Kind, i),
			X:        p.Projected.X,
			Y:        p.Projected.Y,
			ScaleX:   scaleX,
			ScaleY:   scaleY,
			Angle:    p.Rotation.Z(),
			HalfSize: (p.BaseSize + p.Expansion) * p.Projected.Scale,
			Alpha:    depthOpacity(p.Projected.Depth, t.OpacityBase, t.OpacitySlope, t.OpacityFloor),
		})
	}

	return true
}
