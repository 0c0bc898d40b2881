package voxray

import "math"

type AABB struct {
	Min, Max Vec3
}

func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(a.Min[0], b.Min[0]), math.Min(a.Min[1], b.Min[1]), math.Min(a.Min[2], b.Min[2])},
		Max: Vec3{math.Max(a.Max[0], b.Max[0]), math.Max(a.Max[1], b.Max[1]), math.Max(a.Max[2], b.Max[2])},
	}
}

// LongestAxis returns 0, 1 or 2; ties prefer the lower axis.
func (a AABB) LongestAxis() int {
	e := a.Max.Sub(a.Min)
	if e[0] >= e[1] && e[0] >= e[2] {
		return 0
	}
	if e[1] >= e[2] {
		return 1
	}
	return 2
}

func (a AABB) Centroid() Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Cube is the axis-aligned box enclosing the voxel grid; B[0] is min, B[1] is max.
type Cube struct {
	B [2]Vec3
}

func UnitCube() Cube {
	return Cube{B: [2]Vec3{{0, 0, 0}, {1, 1, 1}}}
}

// Contains is inclusive on every face.
func (c Cube) Contains(p Vec3) bool {
	for a := 0; a < 3; a++ {
		if p[a] < c.B[0][a] || p[a] > c.B[1][a] {
			return false
		}
	}
	return true
}

// Intersect returns the entry distance of ray into the cube, or LengthInf on a
// miss or when the cube is entirely behind the origin. Near/far faces per axis
// come from the ray sign vector.
func (c Cube) Intersect(r *Ray) Real {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for a := 0; a < 3; a++ {
		d := r.Direction[a]
		o := r.Origin[a]
		if d == 0 {
			if o < c.B[0][a] || o > c.B[1][a] {
				return LengthInf
			}
			continue
		}
		inv := 1 / d
		t1 := (c.B[r.DSign[a]][a] - o) * inv
		t2 := (c.B[1-r.DSign[a]][a] - o) * inv
		if tmin > t2 || t1 > tmax {
			return LengthInf
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}
	if tmin > 0 && tmin <= tmax {
		return tmin
	}
	return LengthInf
}
