package attr

import "github.com/Faultbox/meshattr/pkg/math"

// Values is a dense array of 1 to 4 component float vectors.
// The supported shapes are Float1, Float2, Float3 and Float4.
type Values interface {
	Len() int
	Dimension() int
}

// Float1 holds single-component values.
type Float1 []float32

// Float2 holds two-component values.
type Float2 [][2]float32

// Float3 holds three-component values.
type Float3 [][3]float32

// Float4 holds four-component values.
type Float4 [][4]float32

func (v Float1) Len() int { return len(v) }
func (v Float2) Len() int { return len(v) }
func (v Float3) Len() int { return len(v) }
func (v Float4) Len() int { return len(v) }

func (Float1) Dimension() int { return 1 }
func (Float2) Dimension() int { return 2 }
func (Float3) Dimension() int { return 3 }
func (Float4) Dimension() int { return 4 }

// NewValues allocates a zeroed container of n values with the given
// dimension. It returns nil for dimensions outside 1..4.
func NewValues(dimension, n int) Values {
	switch dimension {
	case 1:
		return make(Float1, n)
	case 2:
		return make(Float2, n)
	case 3:
		return make(Float3, n)
	case 4:
		return make(Float4, n)
	default:
		return nil
	}
}

// Pack stores the leading components of v at index i of vals. Components the
// container has no room for are dropped.
func Pack(vals Values, i int, v math.Vec3) {
	switch c := vals.(type) {
	case Float1:
		c[i] = v.X
	case Float2:
		c[i] = [2]float32{v.X, v.Y}
	case Float3:
		c[i] = v.Array()
	case Float4:
		c[i] = [4]float32{v.X, v.Y, v.Z, 0}
	}
}

// Widen reads value i as a 3-component vector, zero-padding missing
// components. The fourth component of Float4 is discarded; truncated reports
// whether that happened.
func Widen(vals Values, i int) (v math.Vec3, truncated bool) {
	switch c := vals.(type) {
	case Float1:
		return math.Vec3{X: c[i]}, false
	case Float2:
		return math.Vec3{X: c[i][0], Y: c[i][1]}, false
	case Float3:
		return math.FromArray(c[i]), false
	case Float4:
		return math.Vec3{X: c[i][0], Y: c[i][1], Z: c[i][2]}, true
	}
	return math.Vec3{}, false
}

// Castable reports whether vals is one of the supported container shapes.
func Castable(vals Values) bool {
	switch vals.(type) {
	case Float1, Float2, Float3, Float4:
		return true
	default:
		return false
	}
}
