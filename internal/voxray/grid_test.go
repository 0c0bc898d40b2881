package voxray

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

func mustGrid(t *testing.T, n int) *Grid {
	t.Helper()
	g, err := NewGrid(n)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

var white = VoxelData{Material: Diffuse{}, Color: 0xffffff}

func TestNewGridSizes(t *testing.T) {
	for _, n := range []int{1, 2, 16, 64} {
		g := mustGrid(t, n)
		if len(g.Cells) != n*n*n {
			t.Fatalf("N=%d: %d cells", n, len(g.Cells))
		}
	}
	for _, n := range []int{0, -4, 3, 12} {
		_, err := NewGrid(n)
		if !errors.Is(err, ErrGridSize) {
			t.Fatalf("N=%d: err = %v", n, err)
		}
	}
}

func TestGridIndexing(t *testing.T) {
	g := mustGrid(t, 4)
	if g.Index(1, 2, 3) != 1+2*4+3*16 {
		t.Fatalf("Index = %d", g.Index(1, 2, 3))
	}
	x, y, z := g.Coords(g.Index(3, 0, 2))
	if x != 3 || y != 0 || z != 2 {
		t.Fatalf("Coords = %d,%d,%d", x, y, z)
	}
	if g.Set(4, 0, 0, white) || g.Set(0, -1, 0, white) {
		t.Fatal("out of range Set must be ignored")
	}
	if !g.Set(1, 1, 1, VoxelData{Color: 5}) {
		t.Fatal("Set failed")
	}
	if v := g.At(1, 1, 1); v.Color != 5 || v.Material == nil {
		t.Fatalf("At = %+v", v)
	}
	if g.Filled() != 1 {
		t.Fatalf("Filled = %d", g.Filled())
	}
}

func TestUnitCubeScenario(t *testing.T) {
	g := mustGrid(t, 1)
	g.Set(0, 0, 0, white)
	r := NewRay(Vec3{-1, 0.5, 0.5}, Vec3{1, 0, 0})
	var h HitInfo
	idx := g.FindNearest(&r, &h)
	if idx != 0 {
		t.Fatalf("index = %d", idx)
	}
	if !almostEq(r.Length, 1) {
		t.Fatalf("Length = %g", r.Length)
	}
	if !vecAlmostEq(h.Point, Vec3{0, 0.5, 0.5}, 1e-12) || h.Normal != (Vec3{-1, 0, 0}) {
		t.Fatalf("point=%+v normal=%+v", h.Point, h.Normal)
	}
	if h.Color != 0xffffff || !h.FrontFace {
		t.Fatalf("hit = %+v", h)
	}
}

func TestFindNearestMissLeavesRay(t *testing.T) {
	g := mustGrid(t, 1)
	g.Set(0, 0, 0, white)
	r := NewRay(Vec3{-1, 0.5, 0.5}, Vec3{-1, 0, 0})
	var h HitInfo
	if idx := g.FindNearest(&r, &h); idx != NoVoxel {
		t.Fatalf("index = %d", idx)
	}
	if r.Length != LengthInf {
		t.Fatalf("Length = %g", r.Length)
	}
	r = NewRay(Vec3{0.5, 0.5, 0.5}, Vec3{})
	if g.FindNearest(&r, &h) != NoVoxel || g.IsOccluded(r) {
		t.Fatal("zero direction must not traverse")
	}
}

func TestFindNearestPicksClosest(t *testing.T) {
	g := mustGrid(t, 4)
	g.Set(3, 1, 1, VoxelData{Color: 3})
	g.Set(1, 1, 1, VoxelData{Color: 1})
	r := NewRay(Vec3{-0.5, 0.375, 0.375}, Vec3{1, 0, 0})
	var h HitInfo
	if idx := g.FindNearest(&r, &h); idx != g.Index(1, 1, 1) || h.Color != 1 {
		t.Fatalf("idx=%d color=%d", idx, h.Color)
	}
	if !almostEq(r.Length, 0.75) {
		t.Fatalf("Length = %g", r.Length)
	}
	// A shorter existing hit wins over the voxel.
	r = NewRayLen(Vec3{-0.5, 0.375, 0.375}, Vec3{1, 0, 0}, 0.5)
	if idx := g.FindNearest(&r, &h); idx != NoVoxel || r.Length != 0.5 {
		t.Fatalf("idx=%d Length=%g", idx, r.Length)
	}
}

func TestFindNearestFromInside(t *testing.T) {
	g := mustGrid(t, 4)
	g.Set(0, 1, 1, white)
	r := NewRay(Vec3{0.875, 0.375, 0.375}, Vec3{-1, 0, 0})
	var h HitInfo
	if idx := g.FindNearest(&r, &h); idx != g.Index(0, 1, 1) {
		t.Fatalf("idx = %d", idx)
	}
	if !almostEq(r.Length, 0.625) || h.Normal != (Vec3{1, 0, 0}) {
		t.Fatalf("Length=%g normal=%+v", r.Length, h.Normal)
	}
}

func TestHitVoxelIndex(t *testing.T) {
	g := mustGrid(t, 2)
	g.Set(1, 0, 1, white)
	r := NewRay(Vec3{0.75, 2, 0.75}, Vec3{0, -1, 0})
	if idx := g.HitVoxelIndex(r); idx != g.Index(1, 0, 1) {
		t.Fatalf("idx = %d", idx)
	}
	if r.Length != LengthInf {
		t.Fatal("HitVoxelIndex must not modify the caller's ray")
	}
	if idx := g.HitVoxelIndex(NewRay(Vec3{0.25, 2, 0.25}, Vec3{0, -1, 0})); idx != NoVoxel {
		t.Fatalf("idx = %d", idx)
	}
}

func TestIsOccluded(t *testing.T) {
	g := mustGrid(t, 4)
	g.Set(2, 2, 2, white)
	o := Vec3{0.125, 0.625, 0.625}
	if !g.IsOccluded(NewRayLen(o, Vec3{1, 0, 0}, 1)) {
		t.Fatal("expected occlusion")
	}
	if g.IsOccluded(NewRayLen(o, Vec3{1, 0, 0}, 0.3)) {
		t.Fatal("blocker lies beyond the shadow ray length")
	}
	if g.IsOccluded(NewRayLen(o, Vec3{-1, 0, 0}, 1)) {
		t.Fatal("blocker is behind the ray")
	}
	if g.IsOccluded(NewRayLen(Vec3{0.5, 3, 0.5}, Vec3{0, 1, 0}, 10)) {
		t.Fatal("ray away from the grid must not be occluded")
	}
}

func slabHit(o, d, lo, hi Vec3) bool {
	tmin, tmax := 0.0, math.Inf(1)
	for a := 0; a < 3; a++ {
		if d[a] == 0 {
			if o[a] < lo[a] || o[a] > hi[a] {
				return false
			}
			continue
		}
		t1, t2 := (lo[a]-o[a])/d[a], (hi[a]-o[a])/d[a]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin, tmax = math.Max(tmin, t1), math.Min(tmax, t2)
	}
	return tmin <= tmax
}

// A single filled cell is hit exactly when the ray passes through it; rays
// grazing the cell within a small margin are not judged.
func TestSingleCellHitIffRayPassesCell(t *testing.T) {
	const n, margin = 8, 1e-3
	rng := rand.New(rand.NewSource(17))
	center := Vec3{0.5, 0.5, 0.5}
	checked := 0
	for c := 0; c < 200; c++ {
		g := mustGrid(t, n)
		cx, cy, cz := rng.Intn(n), rng.Intn(n), rng.Intn(n)
		g.Set(cx, cy, cz, white)
		lo := Vec3{Real(cx), Real(cy), Real(cz)}.Mul(1.0 / n)
		hi := lo.Add(Vec3{1, 1, 1}.Mul(1.0 / n))
		m := Vec3{margin, margin, margin}
		for i := 0; i < 50; i++ {
			o := center.Add(RandomUnitVector(rng).Mul(2))
			target := Vec3{RandomRange(rng, -0.2, 1.2), RandomRange(rng, -0.2, 1.2), RandomRange(rng, -0.2, 1.2)}
			if rng.Intn(2) == 0 {
				target = lo.Add(hi).Mul(0.5).Add(Vec3{RandomRange(rng, -0.1, 0.1), RandomRange(rng, -0.1, 0.1), RandomRange(rng, -0.1, 0.1)})
			}
			d := norm(target.Sub(o))
			inner := slabHit(o, d, lo.Add(m), hi.Sub(m))
			outer := slabHit(o, d, lo.Sub(m), hi.Add(m))
			r := NewRay(o, d)
			var h HitInfo
			idx := g.FindNearest(&r, &h)
			if inner && idx != g.Index(cx, cy, cz) {
				t.Fatalf("cell (%d,%d,%d) missed: o=%+v d=%+v idx=%d", cx, cy, cz, o, d, idx)
			}
			if !outer && idx != NoVoxel {
				t.Fatalf("cell (%d,%d,%d) hit by a ray that misses it: o=%+v d=%+v", cx, cy, cz, o, d)
			}
			if inner || !outer {
				checked++
			}
		}
	}
	if checked < 9000 {
		t.Fatalf("too few decisive rays: %d", checked)
	}
}

func TestDDAStaysInBounds(t *testing.T) {
	const n = 8
	g := mustGrid(t, n)
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 5000; i++ {
		o := Vec3{RandomRange(rng, -1, 2), RandomRange(rng, -1, 2), RandomRange(rng, -1, 2)}
		d := RandomUnitVector(rng)
		if i%7 == 0 {
			d[rng.Intn(3)] = 0
		}
		r := NewRay(o, d)
		var s ddaState
		if !g.setup(&r, &s) {
			continue
		}
		prev := s.t
		for steps := 0; ; steps++ {
			for a := 0; a < 3; a++ {
				if s.cell[a] < 0 || s.cell[a] >= n {
					t.Fatalf("cell out of range: %v (o=%+v d=%+v)", s.cell, o, d)
				}
			}
			if s.t < prev {
				t.Fatalf("t went backwards: %g < %g", s.t, prev)
			}
			prev = s.t
			if steps > 3*n+3 {
				t.Fatalf("walk did not terminate: o=%+v d=%+v", o, d)
			}
			if !s.advance(n) {
				break
			}
		}
	}
}
