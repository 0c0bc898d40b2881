package voxray

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Light is implemented by the four positional/directional kinds. Ambient light
// is held separately by the LightManager.
type Light interface {
	LightID() uuid.UUID
	sealedLight()
}

type PointLight struct {
	ID        uuid.UUID
	Position  Vec3
	Color     Vec3
	Intensity Real
}

type DirectionalLight struct {
	ID        uuid.UUID
	Direction Vec3 // direction the light travels
	Color     Vec3
	Intensity Real
}

// SpotLight lights points inside a cone of half-angle FOV degrees around Direction.
type SpotLight struct {
	ID        uuid.UUID
	Position  Vec3
	Direction Vec3
	Color     Vec3
	Intensity Real
	FOV       Real
}

// AreaLight is a rectangle of half-extents Size in the XY plane around Position,
// emitting towards the half-space Direction points into.
type AreaLight struct {
	ID        uuid.UUID
	Position  Vec3
	Direction Vec3
	Color     Vec3
	Intensity Real
	Size      mgl64.Vec2
}

type AmbientLight struct {
	Color     Vec3
	Intensity Real
}

func NewPointLight(pos, color Vec3, intensity Real) *PointLight {
	return &PointLight{ID: uuid.New(), Position: pos, Color: color, Intensity: intensity}
}

func NewDirectionalLight(dir, color Vec3, intensity Real) *DirectionalLight {
	return &DirectionalLight{ID: uuid.New(), Direction: dir, Color: color, Intensity: intensity}
}

func NewSpotLight(pos, dir, color Vec3, intensity, fov Real) *SpotLight {
	return &SpotLight{ID: uuid.New(), Position: pos, Direction: dir, Color: color, Intensity: intensity, FOV: fov}
}

func NewAreaLight(pos, dir, color Vec3, intensity Real, size mgl64.Vec2) *AreaLight {
	return &AreaLight{ID: uuid.New(), Position: pos, Direction: dir, Color: color, Intensity: intensity, Size: size}
}

func (l *PointLight) LightID() uuid.UUID       { return l.ID }
func (l *DirectionalLight) LightID() uuid.UUID { return l.ID }
func (l *SpotLight) LightID() uuid.UUID        { return l.ID }
func (l *AreaLight) LightID() uuid.UUID        { return l.ID }

func (*PointLight) sealedLight()       {}
func (*DirectionalLight) sealedLight() {}
func (*SpotLight) sealedLight()        {}
func (*AreaLight) sealedLight()        {}
