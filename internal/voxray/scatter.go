package voxray

import (
	"math"
	"math/rand"
)

// opposing returns the hit normal flipped, if needed, to face against the incoming direction.
func opposing(hit *HitInfo) Vec3 {
	if hit.Direction.Dot(hit.Normal) > 0 {
		return hit.Normal.Mul(-1)
	}
	return hit.Normal
}

// dielectricDir picks reflection or refraction through hit.Normal.
// Reflection is forced on total internal reflection, otherwise chosen with Schlick probability.
func dielectricDir(hit *HitInfo, ior Real, rng *rand.Rand) Vec3 {
	ratio := ior
	if hit.FrontFace {
		ratio = 1 / ior
	}
	u := norm(hit.Direction)
	cos := math.Min(u.Mul(-1).Dot(hit.Normal), 1)
	sin := math.Sqrt(math.Max(0, 1-cos*cos))
	if ratio*sin > 1 || schlick(cos, ratio) > rng.Float64() {
		return reflect(u, hit.Normal)
	}
	if d, ok := refract(u, hit.Normal, ratio); ok {
		return d
	}
	return reflect(u, hit.Normal)
}

// ScatterVoxel returns the continuation ray for a voxel hit. Scattered origins
// are pushed Epsilon along the new direction to escape the voxel surface.
func ScatterVoxel(hit *HitInfo, rng *rand.Rand) (Ray, bool) {
	var dir Vec3
	switch m := hit.Material.(type) {
	case Lambertian:
		n := opposing(hit)
		dir = n.Add(RandomInUnitSphere(rng))
		if nearZero(dir) {
			dir = n
		}
	case Mirror:
		dir = reflect(hit.Direction, opposing(hit))
	case Glossy:
		n := opposing(hit)
		dir = reflect(hit.Direction, n).Add(CosineWeightedSample(rng, n).Mul(m.Fuzz))
	case Dielectric:
		dir = dielectricDir(hit, m.IOR, rng)
	default:
		return Ray{}, false
	}
	return NewRay(hit.Point.Add(dir.Mul(Epsilon)), dir), true
}

// ScatterSphere returns the continuation ray for a sphere hit. The origin stays
// on the surface; Sphere.Hit rejects roots below Epsilon instead. Lambertian
// and diffuse spheres are shaded by direct light only.
func ScatterSphere(hit *HitInfo, rng *rand.Rand) (Ray, bool) {
	var dir Vec3
	switch m := hit.Material.(type) {
	case Mirror:
		dir = reflect(hit.Direction, opposing(hit))
	case Glossy:
		dir = reflect(hit.Direction, hit.Normal).Add(RandomUnitVector(rng).Mul(m.Fuzz))
	case Dielectric:
		dir = dielectricDir(hit, m.IOR, rng)
	default:
		return Ray{}, false
	}
	return NewRay(hit.Point, dir), true
}
