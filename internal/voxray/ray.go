package voxray

import "math"

// Ray is a half-line with a mutable Length that shrinks to the nearest confirmed hit.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Length    Real
	DSign     [3]int // 1 where the direction component has its sign bit set, else 0
}

func NewRay(origin, dir Vec3) Ray {
	return NewRayLen(origin, dir, LengthInf)
}

func NewRayLen(origin, dir Vec3, length Real) Ray {
	r := Ray{Origin: origin, Direction: dir, Length: length}
	for a := 0; a < 3; a++ {
		if math.Signbit(dir[a]) {
			r.DSign[a] = 1
		}
	}
	return r
}

// Intersection is Origin + Length*Direction.
func (r *Ray) Intersection() Vec3 {
	return r.Origin.Add(r.Direction.Mul(r.Length))
}

func (r *Ray) At(t Real) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Reciprocal is the per-axis 1/Direction; zero components give ±Inf.
func (r *Ray) Reciprocal() Vec3 {
	return Vec3{1 / r.Direction[0], 1 / r.Direction[1], 1 / r.Direction[2]}
}

// VoxelNormal reconstructs the face normal of the voxel hit at Intersection()
// in a grid of side n. The face is the axis whose scaled coordinate is closest
// to an integer; ties go to x, then y.
func (r *Ray) VoxelNormal(n int) Vec3 {
	f := fract(r.Intersection().Mul(Real(n)))
	axis, best := 0, math.Inf(1)
	for a := 0; a < 3; a++ {
		d := math.Min(f[a], 1-f[a])
		if d < best {
			axis, best = a, d
		}
	}
	var nv Vec3
	nv[axis] = Real(r.DSign[axis]*2 - 1)
	return nv
}
