package voxray

import (
	"math"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrGridSize = errors.New("grid side must be a positive power of two")

type VoxelData struct {
	Material     Material
	Color        Color // 0 means empty
	SpecialColor Color
	Special      bool
}

func (v *VoxelData) Empty() bool { return v.Color == 0 }

// Grid is a dense N^3 voxel volume mapped onto the unit cube.
// Cells are stored flat at x + y*N + z*N*N.
type Grid struct {
	N     int
	Cells []VoxelData
	Cube  Cube
}

func NewGrid(n int) (*Grid, error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, errors.Wrapf(ErrGridSize, "got %d", n)
	}
	return &Grid{N: n, Cells: make([]VoxelData, n*n*n), Cube: UnitCube()}, nil
}

func (g *Grid) Index(x, y, z int) int {
	return x + y*g.N + z*g.N*g.N
}

// Coords is the inverse of Index.
func (g *Grid) Coords(i int) (x, y, z int) {
	return i % g.N, (i / g.N) % g.N, i / (g.N * g.N)
}

func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.N && y >= 0 && y < g.N && z >= 0 && z < g.N
}

// Set stores a voxel; out-of-range coordinates are ignored.
func (g *Grid) Set(x, y, z int, v VoxelData) bool {
	if !g.InBounds(x, y, z) {
		DebugLog("grid set out of range: (%d,%d,%d) N=%d", x, y, z, g.N)
		return false
	}
	if v.Material == nil {
		v.Material = Diffuse{}
	}
	g.Cells[g.Index(x, y, z)] = v
	return true
}

func (g *Grid) At(x, y, z int) VoxelData {
	if !g.InBounds(x, y, z) {
		return VoxelData{}
	}
	return g.Cells[g.Index(x, y, z)]
}

// Filled counts non-empty voxels.
func (g *Grid) Filled() int {
	return lo.CountBy(g.Cells, func(v VoxelData) bool { return !v.Empty() })
}

// ddaState is the transient Amanatides-Woo walker. All t values are ray
// parameters measured from the ray origin.
type ddaState struct {
	cell   [3]int
	step   [3]int
	tMax   [3]Real
	tDelta [3]Real
	t      Real
}

// setup positions s at the first cell the ray touches. It reports false when
// the ray misses the grid or has no direction.
func (g *Grid) setup(ray *Ray, s *ddaState) bool {
	if ray.Direction == (Vec3{}) {
		return false
	}
	t := 0.0
	if !g.Cube.Contains(ray.Origin) {
		t = g.Cube.Intersect(ray)
		if t > missThreshold {
			return false
		}
	}
	n := Real(g.N)
	cell := 1 / n
	pos := ray.At(t + DDANudge).Mul(n)
	recip := ray.Reciprocal()
	for a := 0; a < 3; a++ {
		ds := ray.DSign[a]
		s.step[a] = 1 - 2*ds
		c := int(pos[a])
		if c < 0 {
			c = 0
		} else if c > g.N-1 {
			c = g.N - 1
		}
		s.cell[a] = c
		if ray.Direction[a] == 0 {
			s.tMax[a], s.tDelta[a] = math.Inf(1), math.Inf(1)
			continue
		}
		plane := (math.Ceil(pos[a]) - Real(ds)) * cell
		s.tDelta[a] = cell * Real(s.step[a]) * recip[a]
		s.tMax[a] = (plane - ray.Origin[a]) * recip[a]
	}
	s.t = t
	return true
}

// advance steps into the neighbouring cell with the smallest tMax.
// Ties resolve x vs y first, then the winner vs z. False means the walk left the grid.
func (s *ddaState) advance(n int) bool {
	var a int
	if s.tMax[0] < s.tMax[1] {
		if s.tMax[0] < s.tMax[2] {
			a = 0
		} else {
			a = 2
		}
	} else {
		if s.tMax[1] < s.tMax[2] {
			a = 1
		} else {
			a = 2
		}
	}
	s.t = s.tMax[a]
	s.cell[a] += s.step[a]
	if s.cell[a] < 0 || s.cell[a] >= n {
		return false
	}
	s.tMax[a] += s.tDelta[a]
	return true
}

// FindNearest walks the grid and stops at the first non-empty voxel closer than
// ray.Length. On a hit it shrinks ray.Length, fills hit and returns the flat
// voxel index; otherwise it returns NoVoxel and leaves ray and hit untouched.
func (g *Grid) FindNearest(ray *Ray, hit *HitInfo) int {
	var s ddaState
	if !g.setup(ray, &s) {
		return NoVoxel
	}
	for s.t < ray.Length {
		i := g.Index(s.cell[0], s.cell[1], s.cell[2])
		v := &g.Cells[i]
		if !v.Empty() {
			ray.Length = s.t
			hit.Point = ray.Intersection()
			hit.Normal = ray.VoxelNormal(g.N)
			hit.Direction = ray.Direction
			hit.FrontFace = true
			hit.Color = v.Color
			hit.SpecialColor = v.SpecialColor
			hit.Special = v.Special
			hit.Material = v.Material
			return i
		}
		if !s.advance(g.N) {
			return NoVoxel
		}
	}
	return NoVoxel
}

// IsOccluded reports whether any non-empty voxel lies on the ray before ray.Length.
func (g *Grid) IsOccluded(ray Ray) bool {
	var s ddaState
	if !g.setup(&ray, &s) {
		return false
	}
	for s.t < ray.Length {
		if !g.Cells[g.Index(s.cell[0], s.cell[1], s.cell[2])].Empty() {
			return true
		}
		if !s.advance(g.N) {
			return false
		}
	}
	return false
}

// HitVoxelIndex is the pick query: nearest voxel index along ray, or NoVoxel.
func (g *Grid) HitVoxelIndex(ray Ray) int {
	var hit HitInfo
	return g.FindNearest(&ray, &hit)
}
