package common

import "math"

// Vec2 is a 2D vector. All arithmetic uses value receivers and returns new
// values.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Mat2 is a 2x2 matrix stored as columns.
type Mat2 struct {
	C0, C1 Vec2
}

// Rotation returns the matrix rotating by angle radians counterclockwise.
func Rotation(angle float64) Mat2 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat2{C0: Vec2{X: c, Y: s}, C1: Vec2{X: -s, Y: c}}
}

func (m Mat2) MulVec(v Vec2) Vec2 {
	return m.C0.Scale(v.X).Add(m.C1.Scale(v.Y))
}

func (m Mat2) Mul(o Mat2) Mat2 {
	return Mat2{C0: m.MulVec(o.C0), C1: m.MulVec(o.C1)}
}

func (m Mat2) Transpose() Mat2 {
	return Mat2{
		C0: Vec2{X: m.C0.X, Y: m.C1.X},
		C1: Vec2{X: m.C0.Y, Y: m.C1.Y},
	}
}

// Abs returns the matrix with every element replaced by its absolute value.
func (m Mat2) Abs() Mat2 {
	return Mat2{
		C0: Vec2{X: math.Abs(m.C0.X), Y: math.Abs(m.C0.Y)},
		C1: Vec2{X: math.Abs(m.C1.X), Y: math.Abs(m.C1.Y)},
	}
}

// Affine is a row-major 2x3 affine transform.
type Affine struct {
	XX, XY, TX float64
	YX, YY, TY float64
}

func (a Affine) Apply(v Vec2) Vec2 {
	return Vec2{
		X: a.XX*v.X + a.XY*v.Y + a.TX,
		Y: a.YX*v.X + a.YY*v.Y + a.TY,
	}
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
