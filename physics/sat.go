package physics

import (
	"math"

	"github.com/vknauss/ld53/common"
	"github.com/vknauss/ld53/scene"
)

// collideBoxes runs the separating-axis test for two oriented boxes. The four
// candidate axes are tested in a fixed order (box 0's x and y, then box 1's x
// and y); a later axis replaces the result only on strictly greater depth, so
// the first-found maximum wins ties. Resolution direction depends on that
// tie-break, so the order is load-bearing.
//
// The returned record has Depth < 0 iff the boxes overlap; as soon as any
// axis proves separation (depth > 0) the test stops. Axis always points from
// box 0 toward box 1's side.
func collideBoxes(t0 scene.Transform, e0 common.Vec2, t1 scene.Transform, e1 common.Vec2) CollisionRecord {
	r0 := common.Rotation(t0.Rotation)
	r1 := common.Rotation(t1.Rotation)
	r0t := r0.Transpose()
	r1t := r1.Transpose()
	d := t1.Position.Sub(t0.Position)
	d0 := r0t.MulVec(d) // center offset in box 0's frame
	d1 := r1t.MulVec(d) // center offset in box 1's frame

	// abs of the rotation taking box 1's frame into box 0's projects box
	// 1's half extents onto box 0's axes
	ar10 := r0t.Mul(r1).Abs()
	e10 := ar10.MulVec(e1)

	var rec CollisionRecord

	// box 0 x axis
	depth := math.Abs(d0.X) - e0.X - e10.X
	rec.Depth = depth
	rec.Axis = r0.C0
	if d0.X < 0 {
		rec.Axis = rec.Axis.Neg()
	}
	if depth > 0 {
		return rec
	}

	// box 0 y axis
	depth = math.Abs(d0.Y) - e0.Y - e10.Y
	if depth > rec.Depth {
		rec.Depth = depth
		rec.Axis = r0.C1
		if d0.Y < 0 {
			rec.Axis = rec.Axis.Neg()
		}
		if depth > 0 {
			return rec
		}
	}

	// transposing ar10 gives abs of the box 0 -> box 1 rotation
	ar01 := ar10.Transpose()
	e01 := ar01.MulVec(e0)

	// box 1 x axis
	depth = math.Abs(d1.X) - e1.X - e01.X
	if depth > rec.Depth {
		rec.Depth = depth
		rec.Axis = r1.C0.Neg()
		if d1.X > 0 {
			rec.Axis = rec.Axis.Neg()
		}
		if depth > 0 {
			return rec
		}
	}

	// box 1 y axis
	depth = math.Abs(d1.Y) - e1.Y - e01.Y
	if depth > rec.Depth {
		rec.Depth = depth
		rec.Axis = r1.C1.Neg()
		if d1.Y > 0 {
			rec.Axis = rec.Axis.Neg()
		}
	}

	return rec
}
