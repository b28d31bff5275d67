package scene

import (
	"math"

	"github.com/vknauss/ld53/common"
)

// Transform is a 2D rigid transform (no scale) plus a depth value used for
// draw-order sorting.
type Transform struct {
	Position common.Vec2
	Rotation float64
	Depth    float64
}

// Matrix returns the affine matrix mapping points in this transform's local
// space into its parent frame. The renderer consumes these.
func (t Transform) Matrix() common.Affine {
	c, s := math.Cos(t.Rotation), math.Sin(t.Rotation)
	return common.Affine{
		XX: c, XY: -s, TX: t.Position.X,
		YX: s, YY: c, TY: t.Position.Y,
	}
}

// Apply maps a local-space point through the transform.
func (t Transform) Apply(v common.Vec2) common.Vec2 {
	return common.Rotation(t.Rotation).MulVec(v).Add(t.Position)
}
