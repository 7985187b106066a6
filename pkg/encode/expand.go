package encode

import (
	gomath "math"

	"github.com/Faultbox/meshattr/pkg/attr"
	"github.com/Faultbox/meshattr/pkg/math"
)

// RequiredDimension returns how many leading components of values carry
// data: 3 if any |z| exceeds epsilon, else 2 if any |y| does, else 1.
func RequiredDimension(values []math.Vec3, epsilon float32) int {
	eps := float64(epsilon)
	required := 1
	for _, v := range values {
		if gomath.Abs(float64(v.Z)) > eps {
			return 3
		}
		if gomath.Abs(float64(v.Y)) > eps {
			required = 2
		}
	}
	return required
}

// ExpandKind widens kind when values use more components than it declares.
// Kinds of dimension 3 or more, and unknown kinds, are returned unchanged.
func ExpandKind(kind attr.Kind, values []math.Vec3, epsilon float32) attr.Kind {
	dim := attr.ComponentDimension(kind)
	if dim < 1 || dim >= 3 {
		return kind
	}
	if required := RequiredDimension(values, epsilon); required > dim {
		return attr.ResolveEquivalentKind(kind, required)
	}
	return kind
}
