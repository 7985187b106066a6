package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 0}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", z)
	}
}

func TestVec3ArrayRoundTrip(t *testing.T) {
	v := V3(0.5, -1, 2)
	if got := FromArray(v.Array()); got != v {
		t.Errorf("FromArray(Array()) = %v, want %v", got, v)
	}
}

func TestVec3SubNegate(t *testing.T) {
	a := Vec3{4, 5, 6}
	b := Vec3{1, 2, 3}
	if got := a.Sub(b); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub() = %v", got)
	}
	if got := b.Negate(); got != (Vec3{-1, -2, -3}) {
		t.Errorf("Negate() = %v", got)
	}
}
