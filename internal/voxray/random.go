package voxray

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// All samplers take an explicit generator; each render worker owns one.

// newRand seeds a generator; zero means time based.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func RandomRange(rng *rand.Rand, lo, hi Real) Real {
	return lo + (hi-lo)*rng.Float64()
}

// RandomInUnitSphere returns a point uniformly distributed inside the unit ball.
func RandomInUnitSphere(rng *rand.Rand) Vec3 {
	for {
		p := Vec3{RandomRange(rng, -1, 1), RandomRange(rng, -1, 1), RandomRange(rng, -1, 1)}
		if l2 := lenSq(p); l2 < 1 && l2 > 1e-12 {
			return p
		}
	}
}

// RandomUnitVector returns a direction uniformly distributed on the unit sphere.
func RandomUnitVector(rng *rand.Rand) Vec3 {
	return norm(RandomInUnitSphere(rng))
}

// RandomPointInDisk samples the unit disk in the XY plane.
func RandomPointInDisk(rng *rand.Rand) mgl64.Vec2 {
	for {
		p := mgl64.Vec2{RandomRange(rng, -1, 1), RandomRange(rng, -1, 1)}
		if p.Dot(p) < 1 {
			return p
		}
	}
}

// RandomPointOnSquare samples [-hx,hx] x [-hy,hy] at z = 0.
func RandomPointOnSquare(rng *rand.Rand, half mgl64.Vec2) Vec3 {
	return Vec3{RandomRange(rng, -half[0], half[0]), RandomRange(rng, -half[1], half[1]), 0}
}

// SampleSquare is the per-pixel anti-aliasing jitter in [-0.5,0.5]^2.
func SampleSquare(rng *rand.Rand) mgl64.Vec2 {
	return mgl64.Vec2{rng.Float64() - 0.5, rng.Float64() - 0.5}
}

// coordinateSystem builds an orthonormal tangent frame around unit n.
func coordinateSystem(n Vec3) (t, b Vec3) {
	if math.Abs(n[0]) > math.Abs(n[1]) {
		t = Vec3{n[2], 0, -n[0]}.Mul(1 / math.Sqrt(n[0]*n[0]+n[2]*n[2]))
	} else {
		t = Vec3{0, -n[2], n[1]}.Mul(1 / math.Sqrt(n[1]*n[1]+n[2]*n[2]))
	}
	b = n.Cross(t)
	return t, b
}

// CosineWeightedSample returns a unit direction in the hemisphere around n with pdf cos/π.
func CosineWeightedSample(rng *rand.Rand, n Vec3) Vec3 {
	n = norm(n)
	t, b := coordinateSystem(n)
	r1, r2 := rng.Float64(), rng.Float64()
	phi := 2 * math.Pi * r1
	sr := math.Sqrt(r2)
	x, y, z := sr*math.Cos(phi), sr*math.Sin(phi), math.Sqrt(1-r2)
	return norm(t.Mul(x).Add(b.Mul(y)).Add(n.Mul(z)))
}
