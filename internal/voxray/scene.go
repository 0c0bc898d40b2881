package voxray

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Scene bundles everything a Tracer reads. It must only be mutated between
// frames; use a CommandQueue for changes requested while rendering.
type Scene struct {
	Grid          *Grid
	Spheres       []*Sphere
	BVH           *BVH
	Lights        *LightManager
	Sky           Environment
	SpecialVoxels []int // flat indices of voxels flagged Special
}

func NewScene(grid *Grid, sky Environment) *Scene {
	if sky == nil {
		sky = UniformSky{}
	}
	return &Scene{
		Grid:   grid,
		BVH:    BuildBVH(nil),
		Lights: NewLightManager(grid),
		Sky:    sky,
	}
}

func (s *Scene) RebuildBVH() {
	s.BVH = BuildBVH(s.Spheres)
}

func (s *Scene) AddSphere(sp *Sphere) {
	s.Spheres = append(s.Spheres, sp)
	s.RebuildBVH()
}

func (s *Scene) RemoveSphere(id uuid.UUID) bool {
	n := len(s.Spheres)
	s.Spheres = lo.Filter(s.Spheres, func(sp *Sphere, _ int) bool { return sp.ID != id })
	if len(s.Spheres) == n {
		return false
	}
	s.RebuildBVH()
	return true
}

// SetVoxel stores v and keeps SpecialVoxels in sync.
func (s *Scene) SetVoxel(x, y, z int, v VoxelData) bool {
	if !s.Grid.Set(x, y, z, v) {
		return false
	}
	i := s.Grid.Index(x, y, z)
	s.SpecialVoxels = lo.Without(s.SpecialVoxels, i)
	if v.Special {
		s.SpecialVoxels = append(s.SpecialVoxels, i)
	}
	return true
}

// HitVoxelIndex returns the nearest voxel along ray, or NoVoxel.
func (s *Scene) HitVoxelIndex(ray Ray) int {
	return s.Grid.HitVoxelIndex(ray)
}

// NewDefaultScene builds the demo room on an n^3 grid: a mirrored x=0 wall, a
// sky-blue floor, six special tiles on the floor, two spheres, a point, a spot
// and an area light. Tile positions are laid out for VoxelAmount and scaled to n.
func NewDefaultScene(n int, sky Environment) (*Scene, error) {
	grid, err := NewGrid(n)
	if err != nil {
		return nil, err
	}
	s := NewScene(grid, sky)
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				switch {
				case x == 0:
					s.SetVoxel(x, y, z, VoxelData{Material: Mirror{}, Color: 0xffffff})
				case y == 0:
					s.SetVoxel(x, y, z, VoxelData{Material: Diffuse{}, Color: 0x87ceeb})
				}
			}
		}
	}
	for _, p := range [][2]int{{11, 4}, {11, 8}, {11, 12}, {6, 4}, {6, 8}, {6, 12}} {
		s.SetVoxel(p[0]*n/VoxelAmount, 1, p[1]*n/VoxelAmount, VoxelData{Material: Diffuse{}, Color: 0xffffff, Special: true})
	}

	glass, err := NewSphere(Vec3{0.2, 0.5, 1.5}, 0.2, Dielectric{IOR: 1.5}, 0xffffff)
	if err != nil {
		return nil, err
	}
	glossy, err := NewSphere(Vec3{0.2, 0.5, -0.5}, 0.2, Glossy{Fuzz: 0.1}, 0xffffff)
	if err != nil {
		return nil, err
	}
	s.Spheres = append(s.Spheres, glass, glossy)
	s.RebuildBVH()

	white := Vec3{1, 1, 1}
	s.Lights.Ambient = AmbientLight{Color: white, Intensity: 0}
	s.Lights.Add(NewPointLight(Vec3{-0.3, 0.7, 0.2}, white, 1))
	s.Lights.Add(NewSpotLight(Vec3{-0.6, 0.2, 0.5}, Vec3{1, 0, 0}, white, 1, 30))
	s.Lights.Add(NewAreaLight(Vec3{1.5, 1, 0.5}, Vec3{-1, -1, -1}, white, 1, mgl64.Vec2{1, 1}))
	return s, nil
}
