package voxray

import (
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Sphere struct {
	ID       uuid.UUID
	Center   Vec3
	Radius   Real
	Material Material
	Color    Color
}

func NewSphere(center Vec3, radius Real, mat Material, color Color) (*Sphere, error) {
	if !(radius > 0) || !isFinite(radius) {
		return nil, errors.Errorf("sphere radius must be > 0, got %g", radius)
	}
	if !isFiniteVec(center) {
		return nil, errors.Errorf("sphere center must be finite, got %v", center)
	}
	if mat == nil {
		mat = Diffuse{}
	}
	return &Sphere{ID: uuid.New(), Center: center, Radius: radius, Material: mat, Color: color}, nil
}

func (s *Sphere) Bounds() AABB {
	r := Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

// Hit intersects ray with the sphere, accepting only roots in (Epsilon, rayMax);
// the smaller root is tried first. On success ray.Length and hit are updated.
func (s *Sphere) Hit(ray *Ray, hit *HitInfo, rayMax Real) bool {
	oc := ray.Origin.Sub(s.Center)
	a := lenSq(ray.Direction)
	if a == 0 {
		return false
	}
	halfB := oc.Dot(ray.Direction)
	c := lenSq(oc) - s.Radius*s.Radius
	disc := halfB*halfB - a*c
	if disc < 0 {
		return false
	}
	sq := math.Sqrt(disc)
	root := (-halfB - sq) / a
	if root <= Epsilon || root >= rayMax {
		root = (-halfB + sq) / a
		if root <= Epsilon || root >= rayMax {
			return false
		}
	}
	ray.Length = root
	hit.Point = ray.Intersection()
	hit.Direction = ray.Direction
	hit.SetFaceNormal(ray.Direction, hit.Point.Sub(s.Center).Mul(1/s.Radius))
	hit.Material = s.Material
	hit.Color = s.Color
	hit.Special = false
	hit.SpecialColor = 0
	return true
}
