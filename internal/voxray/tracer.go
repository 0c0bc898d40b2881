package voxray

import "math/rand"

// Tracer is the recursive integrator. It only reads the scene; one Tracer is
// shared by every render worker.
type Tracer struct {
	Scene    *Scene
	MaxDepth int
	Log      *TraceLog // optional
}

func NewTracer(scene *Scene) *Tracer {
	return &Tracer{Scene: scene, MaxDepth: MaxDepth}
}

func (t *Tracer) record(e TraceEvent) {
	if t.Log != nil {
		t.Log.log(e)
	}
}

// Trace returns the radiance carried back along ray. The voxel grid and the
// sphere BVH are both queried with the same ray; the nearer hit is shaded.
// ray.Length is updated to the distance of the shaded hit.
func (t *Tracer) Trace(ray *Ray, depth int, rng *rand.Rand) Vec3 {
	if t.Log != nil {
		t.Log.visit(depth)
	}
	var voxelHit, sphereHit HitInfo
	vi := t.Scene.Grid.FindNearest(ray, &voxelHit)
	lv := ray.Length
	hs := t.Scene.BVH.Intersect(ray, &sphereHit)
	ls := ray.Length

	if vi == NoVoxel && !hs {
		t.record(TraceEvent{Category: SkyMiss, Depth: depth, Direction: ray.Direction})
		return t.Scene.Sky.Sample(ray.Direction)
	}
	if hs && ls < lv {
		return t.shade(&sphereHit, true, depth, rng)
	}
	return t.shade(&voxelHit, false, depth, rng)
}

func (t *Tracer) shade(hit *HitInfo, sphere bool, depth int, rng *rand.Rand) Vec3 {
	direct := t.Scene.Lights.TotalContribution(hit.Point, hit.Normal, rng)
	surface := mulElem(direct, hit.Color.Normalised())

	var (
		scattered Ray
		ok        bool
	)
	if sphere {
		scattered, ok = ScatterSphere(hit, rng)
	} else {
		scattered, ok = ScatterVoxel(hit, rng)
	}
	if ok {
		if depth+1 > t.MaxDepth {
			t.record(TraceEvent{Category: DepthExhausted, Depth: depth, Point: hit.Point, Direction: hit.Direction, Sphere: sphere})
			return t.Scene.Sky.Sample(hit.Direction)
		}
		return mulElem(surface, t.Trace(&scattered, depth+1, rng))
	}
	if !sphere && hit.Special && depth == 0 {
		t.record(TraceEvent{Category: SpecialHit, Depth: depth, Point: hit.Point, Direction: hit.Direction})
		return hit.SpecialColor.Normalised()
	}
	t.record(TraceEvent{Category: Absorbed, Depth: depth, Point: hit.Point, Direction: hit.Direction, Sphere: sphere})
	return surface
}
