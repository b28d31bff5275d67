package common

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestRotation(t *testing.T) {
	cases := []struct {
		name  string
		angle float64
		in    Vec2
		want  Vec2
	}{
		{"identity", 0, Vec2{X: 1, Y: 2}, Vec2{X: 1, Y: 2}},
		{"quarter_turn", math.Pi / 2, Vec2{X: 1, Y: 0}, Vec2{X: 0, Y: 1}},
		{"half_turn", math.Pi, Vec2{X: 1, Y: 1}, Vec2{X: -1, Y: -1}},
		{"negative_quarter", -math.Pi / 2, Vec2{X: 0, Y: 1}, Vec2{X: 1, Y: 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Rotation(c.angle).MulVec(c.in)
			if !almostEqual(got, c.want) {
				t.Fatalf("rotate %v by %v: got %v, want %v", c.in, c.angle, got, c.want)
			}
		})
	}
}

func TestMat2TransposeInverts(t *testing.T) {
	r := Rotation(0.7)
	v := Vec2{X: 3, Y: -2}
	back := r.Transpose().MulVec(r.MulVec(v))
	if !almostEqual(back, v) {
		t.Fatalf("transpose did not invert rotation: got %v, want %v", back, v)
	}
}

func TestMat2MulMatchesComposition(t *testing.T) {
	a, b := Rotation(0.3), Rotation(1.1)
	v := Vec2{X: 1, Y: 4}
	got := a.Mul(b).MulVec(v)
	want := a.MulVec(b.MulVec(v))
	if !almostEqual(got, want) {
		t.Fatalf("matrix product mismatch: got %v, want %v", got, want)
	}
}

func TestMat2Abs(t *testing.T) {
	m := Rotation(math.Pi * 3 / 4).Abs()
	for _, e := range []float64{m.C0.X, m.C0.Y, m.C1.X, m.C1.Y} {
		if e < 0 {
			t.Fatalf("Abs left a negative element: %+v", m)
		}
	}
}

func TestAffineApply(t *testing.T) {
	a := Affine{XX: 0, XY: -1, TX: 5, YX: 1, YY: 0, TY: -3}
	got := a.Apply(Vec2{X: 1, Y: 2})
	want := Vec2{X: 3, Y: -2}
	if !almostEqual(got, want) {
		t.Fatalf("affine apply: got %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	cases := []struct {
		name string
		v    Vec2
		want float64
	}{
		{"zero", Vec2{}, 0},
		{"unit_x", Vec2{X: 1}, 1},
		{"pythagorean", Vec2{X: 3, Y: -4}, 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.Length(); math.Abs(got-c.want) > eps {
				t.Fatalf("|%v| = %v, want %v", c.v, got, c.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 6, 0.25); math.Abs(got-3) > eps {
		t.Fatalf("Lerp(2,6,0.25) = %v, want 3", got)
	}
}
