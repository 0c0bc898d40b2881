package voxray

import (
	"math"
	"testing"
)

func TestNewRaySigns(t *testing.T) {
	r := NewRay(Vec3{}, Vec3{math.Copysign(0, -1), 1, -2})
	if r.DSign != [3]int{1, 0, 1} {
		t.Fatalf("DSign = %v", r.DSign)
	}
	if r.Length != LengthInf {
		t.Fatalf("Length = %g", r.Length)
	}
	r = NewRayLen(Vec3{}, Vec3{0, 0, 0}, 3)
	if r.DSign != [3]int{0, 0, 0} || r.Length != 3 {
		t.Fatalf("ray = %+v", r)
	}
}

func TestIntersection(t *testing.T) {
	r := NewRayLen(Vec3{1, 2, 3}, Vec3{0, 0, 2}, 1.5)
	if got := r.Intersection(); got != (Vec3{1, 2, 6}) {
		t.Fatalf("Intersection = %+v", got)
	}
}

func TestVoxelNormal(t *testing.T) {
	r := NewRayLen(Vec3{-1, 0.5, 0.5}, Vec3{1, 0, 0}, 1)
	if got := r.VoxelNormal(1); got != (Vec3{-1, 0, 0}) {
		t.Fatalf("normal = %+v", got)
	}
	// Hits the top face of a voxel in a 4^3 grid, travelling down.
	r = NewRayLen(Vec3{0.3, 2, 0.6}, Vec3{0, -1, 0}, 1)
	if got := r.VoxelNormal(4); got != (Vec3{0, 1, 0}) {
		t.Fatalf("normal = %+v", got)
	}
}

func TestVoxelNormalIsUnitOnEdges(t *testing.T) {
	// Exactly on an edge: x and z are both on a boundary; x wins.
	r := NewRayLen(Vec3{0.5, 0.3, 0.5}, Vec3{1, 0, 1}, 0)
	n := r.VoxelNormal(2)
	if !almostEq(n.Len(), 1) || n != (Vec3{-1, 0, 0}) {
		t.Fatalf("edge normal = %+v", n)
	}
}
