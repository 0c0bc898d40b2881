package voxray

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Real = float64

// Vec3 is used both for points/directions and for linear RGB radiance.
type Vec3 = mgl64.Vec3

// norm returns a unit-length version of v, or v itself when it has zero length.
func norm(v Vec3) Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// mulElem is the component-wise (Hadamard) product, used for colour modulation.
func mulElem(a, b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func fract(v Vec3) Vec3 {
	return Vec3{v[0] - math.Floor(v[0]), v[1] - math.Floor(v[1]), v[2] - math.Floor(v[2])}
}

func nearZero(v Vec3) bool {
	const s = 1e-8
	return math.Abs(v[0]) < s && math.Abs(v[1]) < s && math.Abs(v[2]) < s
}

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func isFiniteVec(v Vec3) bool { return isFinite(v[0]) && isFinite(v[1]) && isFinite(v[2]) }

func lenSq(v Vec3) Real { return v.Dot(v) }
