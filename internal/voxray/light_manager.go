package voxray

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Occluder answers shadow-ray queries. Only the voxel grid occludes.
type Occluder interface {
	IsOccluded(ray Ray) bool
}

type LightManager struct {
	Ambient      AmbientLight
	Points       []*PointLight
	Directionals []*DirectionalLight
	Spots        []*SpotLight
	Areas        []*AreaLight
	Stochastic   bool // sample one light per call instead of summing all
	SoftShadow   Real // shadow ray jitter radius
	Occluder     Occluder
}

func NewLightManager(occ Occluder) *LightManager {
	return &LightManager{SoftShadow: SoftShadow, Occluder: occ}
}

func (m *LightManager) Add(l Light) {
	switch v := l.(type) {
	case *PointLight:
		m.Points = append(m.Points, v)
	case *DirectionalLight:
		m.Directionals = append(m.Directionals, v)
	case *SpotLight:
		m.Spots = append(m.Spots, v)
	case *AreaLight:
		m.Areas = append(m.Areas, v)
	}
}

// Remove drops the light with the given ID and reports whether it existed.
func (m *LightManager) Remove(id uuid.UUID) bool {
	before := m.Count()
	m.Points = lo.Filter(m.Points, func(l *PointLight, _ int) bool { return l.ID != id })
	m.Directionals = lo.Filter(m.Directionals, func(l *DirectionalLight, _ int) bool { return l.ID != id })
	m.Spots = lo.Filter(m.Spots, func(l *SpotLight, _ int) bool { return l.ID != id })
	m.Areas = lo.Filter(m.Areas, func(l *AreaLight, _ int) bool { return l.ID != id })
	return m.Count() != before
}

// Count is the number of non-ambient lights.
func (m *LightManager) Count() int {
	return len(m.Points) + len(m.Directionals) + len(m.Spots) + len(m.Areas)
}

// Lights concatenates every non-ambient light in point, directional, spot, area order.
func (m *LightManager) Lights() []Light {
	out := make([]Light, 0, m.Count())
	for _, l := range m.Points {
		out = append(out, l)
	}
	for _, l := range m.Directionals {
		out = append(out, l)
	}
	for _, l := range m.Spots {
		out = append(out, l)
	}
	for _, l := range m.Areas {
		out = append(out, l)
	}
	return out
}

// CastShadow returns 1 when p is visible along dir up to dist, else 0.
// Surfaces facing away from dir are in shadow without casting a ray.
func (m *LightManager) CastShadow(p, n, dir Vec3, dist Real, rng *rand.Rand) Real {
	if n.Dot(dir) < 0 {
		return 0
	}
	if m.Occluder == nil {
		return 1
	}
	d := dir.Add(RandomUnitVector(rng).Mul(m.SoftShadow))
	ray := NewRayLen(p.Add(n.Mul(Epsilon)), d, dist)
	if m.Occluder.IsOccluded(ray) {
		return 0
	}
	return 1
}

func lambert(n, dir Vec3) Real {
	return math.Max(n.Dot(dir), 0)
}

func (m *LightManager) pointContribution(l *PointLight, p, n Vec3, rng *rand.Rand) Vec3 {
	toLight := l.Position.Sub(p)
	dist := toLight.Len()
	if dist == 0 {
		return Vec3{}
	}
	dir := toLight.Mul(1 / dist)
	k := l.Intensity / dist * lambert(n, dir)
	if k == 0 {
		return Vec3{}
	}
	return l.Color.Mul(k * m.CastShadow(p, n, dir, dist, rng))
}

func (m *LightManager) directionalContribution(l *DirectionalLight, p, n Vec3, rng *rand.Rand) Vec3 {
	dir := norm(l.Direction.Mul(-1))
	k := l.Intensity * lambert(n, dir)
	if k == 0 {
		return Vec3{}
	}
	return l.Color.Mul(k * m.CastShadow(p, n, dir, LengthInf, rng))
}

func (m *LightManager) spotContribution(l *SpotLight, p, n Vec3, rng *rand.Rand) Vec3 {
	toLight := l.Position.Sub(p)
	dist := toLight.Len()
	if dist == 0 {
		return Vec3{}
	}
	// Direction points from the light into the cone, as for area lights.
	if norm(p.Sub(l.Position)).Dot(norm(l.Direction)) < math.Cos(mgl64.DegToRad(l.FOV)) {
		return Vec3{}
	}
	dir := toLight.Mul(1 / dist)
	return l.Color.Mul(l.Intensity / dist * m.CastShadow(p, n, dir, dist, rng))
}

func (m *LightManager) areaContribution(l *AreaLight, p, n Vec3, rng *rand.Rand) Vec3 {
	sample := l.Position.Add(RandomPointOnSquare(rng, l.Size))
	toSample := sample.Sub(p)
	dist := toSample.Len()
	if dist == 0 {
		return Vec3{}
	}
	dir := toSample.Mul(1 / dist)
	if dir.Mul(-1).Dot(l.Direction) < 0 {
		return Vec3{}
	}
	k := l.Intensity / dist * lambert(n, dir)
	if k == 0 {
		return Vec3{}
	}
	return l.Color.Mul(k * m.CastShadow(p, n, dir, dist, rng))
}

// Contribution is the shadowed radiance one light delivers to p with normal n.
func (m *LightManager) Contribution(l Light, p, n Vec3, rng *rand.Rand) Vec3 {
	switch v := l.(type) {
	case *PointLight:
		return m.pointContribution(v, p, n, rng)
	case *DirectionalLight:
		return m.directionalContribution(v, p, n, rng)
	case *SpotLight:
		return m.spotContribution(v, p, n, rng)
	case *AreaLight:
		return m.areaContribution(v, p, n, rng)
	}
	return Vec3{}
}

func (m *LightManager) AmbientContribution() Vec3 {
	return m.Ambient.Color.Mul(m.Ambient.Intensity)
}

// DeterministicContribution sums every non-ambient light.
func (m *LightManager) DeterministicContribution(p, n Vec3, rng *rand.Rand) Vec3 {
	var sum Vec3
	for _, l := range m.Points {
		sum = sum.Add(m.pointContribution(l, p, n, rng))
	}
	for _, l := range m.Directionals {
		sum = sum.Add(m.directionalContribution(l, p, n, rng))
	}
	for _, l := range m.Spots {
		sum = sum.Add(m.spotContribution(l, p, n, rng))
	}
	for _, l := range m.Areas {
		sum = sum.Add(m.areaContribution(l, p, n, rng))
	}
	return sum
}

// StochasticContribution picks one light uniformly and scales it by the light
// count, an unbiased estimate of DeterministicContribution.
func (m *LightManager) StochasticContribution(p, n Vec3, rng *rand.Rand) Vec3 {
	count := m.Count()
	if count == 0 {
		return Vec3{}
	}
	i := rng.Intn(count)
	var c Vec3
	switch {
	case i < len(m.Points):
		c = m.pointContribution(m.Points[i], p, n, rng)
	case i < len(m.Points)+len(m.Directionals):
		c = m.directionalContribution(m.Directionals[i-len(m.Points)], p, n, rng)
	case i < len(m.Points)+len(m.Directionals)+len(m.Spots):
		c = m.spotContribution(m.Spots[i-len(m.Points)-len(m.Directionals)], p, n, rng)
	default:
		c = m.areaContribution(m.Areas[i-len(m.Points)-len(m.Directionals)-len(m.Spots)], p, n, rng)
	}
	return c.Mul(Real(count))
}

// TotalContribution is ambient plus either the stochastic or deterministic direct light.
func (m *LightManager) TotalContribution(p, n Vec3, rng *rand.Rand) Vec3 {
	amb := m.AmbientContribution()
	if m.Stochastic && m.Count() > 0 {
		return amb.Add(m.StochasticContribution(p, n, rng))
	}
	return amb.Add(m.DeterministicContribution(p, n, rng))
}
