package voxray

import "math/rand"

// Camera is a pinhole (or thin-lens when Aperture > 0) camera looking at a
// view plane two units in front of Position.
type Camera struct {
	Position    Vec3
	Target      Vec3
	Width       int
	Height      int
	Aperture    Real
	FocalLength Real

	forward, right, up            Vec3
	topLeft, topRight, bottomLeft Vec3
}

func NewCamera(pos, target Vec3, width, height int) *Camera {
	c := &Camera{Position: pos, Target: target, Width: width, Height: height, FocalLength: FocalLength}
	c.Update()
	return c
}

// Update recomputes the view plane after Position or Target changed.
func (c *Camera) Update() {
	aspect := Real(c.Width) / Real(c.Height)
	c.forward = norm(c.Target.Sub(c.Position))
	c.right = norm(Vec3{0, 1, 0}.Cross(c.forward))
	if nearZero(c.right) {
		c.right = Vec3{1, 0, 0}
	}
	c.up = c.forward.Cross(c.right)
	center := c.Position.Add(c.forward.Mul(2))
	c.topLeft = center.Sub(c.right.Mul(aspect)).Add(c.up)
	c.topRight = center.Add(c.right.Mul(aspect)).Add(c.up)
	c.bottomLeft = center.Sub(c.right.Mul(aspect)).Sub(c.up)
}

// PrimaryRay maps continuous pixel coordinates (x right, y down) to a ray.
func (c *Camera) PrimaryRay(x, y Real, rng *rand.Rand) Ray {
	u := x / Real(c.Width)
	v := y / Real(c.Height)
	p := c.topLeft.Add(c.topRight.Sub(c.topLeft).Mul(u)).Add(c.bottomLeft.Sub(c.topLeft).Mul(v))
	dir := norm(p.Sub(c.Position))
	if c.Aperture <= 0 {
		return NewRay(c.Position, dir)
	}
	focus := c.Position.Add(dir.Mul(c.FocalLength))
	d := RandomPointInDisk(rng)
	origin := c.Position.Add(c.right.Mul(d[0] * c.Aperture)).Add(c.up.Mul(d[1] * c.Aperture))
	return NewRay(origin, norm(focus.Sub(origin)))
}
