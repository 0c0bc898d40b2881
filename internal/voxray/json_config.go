package voxray

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

type MaterialCfg struct {
	Type string `json:"type"`
	Fuzz Real   `json:"fuzz,omitempty"`
	IOR  Real   `json:"ior,omitempty"`
}

// Build validates and constructs the runtime material.
func (mc MaterialCfg) Build() (Material, error) {
	param := mc.Fuzz
	if k := strings.ToLower(mc.Type); k == "dielectric" || k == "glass" {
		param = mc.IOR
	}
	return NewMaterial(mc.Type, param)
}

type VoxelCfg struct {
	At           [3]int      `json:"at"`
	Material     MaterialCfg `json:"material"`
	Color        Color       `json:"color"`
	Special      bool        `json:"special,omitempty"`
	SpecialColor Color       `json:"specialColor,omitempty"`
}

// BoxCfg fills every voxel in the inclusive range [Min, Max].
type BoxCfg struct {
	Min      [3]int      `json:"min"`
	Max      [3]int      `json:"max"`
	Material MaterialCfg `json:"material"`
	Color    Color       `json:"color"`
}

type SphereCfg struct {
	Center   Vec3        `json:"center"`
	Radius   Real        `json:"radius"`
	Material MaterialCfg `json:"material"`
	Color    Color       `json:"color"`
}

func (sc SphereCfg) Build() (*Sphere, error) {
	mat, err := sc.Material.Build()
	if err != nil {
		return nil, err
	}
	return NewSphere(sc.Center, sc.Radius, mat, sc.Color)
}

type LightCfg struct {
	Type      string     `json:"type"` // point, directional, spot, area
	Position  Vec3       `json:"position"`
	Direction Vec3       `json:"direction"`
	Color     Vec3       `json:"color"`
	Intensity Real       `json:"intensity"`
	FOV       Real       `json:"fov,omitempty"`  // spot half-angle, degrees
	Size      mgl64.Vec2 `json:"size,omitempty"` // area half-extents
}

func (lc LightCfg) Build() (Light, error) {
	if lc.Intensity < 0 {
		return nil, errors.Errorf("light intensity must be >= 0, got %g", lc.Intensity)
	}
	col := lc.Color
	if col == (Vec3{}) {
		col = Vec3{1, 1, 1}
	}
	switch strings.ToLower(lc.Type) {
	case "point":
		return NewPointLight(lc.Position, col, lc.Intensity), nil
	case "directional":
		if lc.Direction == (Vec3{}) {
			return nil, errors.New("directional light needs a direction")
		}
		return NewDirectionalLight(lc.Direction, col, lc.Intensity), nil
	case "spot":
		if lc.Direction == (Vec3{}) {
			return nil, errors.New("spot light needs a direction")
		}
		if lc.FOV <= 0 || lc.FOV >= 180 {
			return nil, errors.Errorf("spot fov must be in (0,180), got %g", lc.FOV)
		}
		return NewSpotLight(lc.Position, lc.Direction, col, lc.Intensity, lc.FOV), nil
	case "area":
		if lc.Size[0] <= 0 || lc.Size[1] <= 0 {
			return nil, errors.Errorf("area light size must be > 0, got %v", lc.Size)
		}
		return NewAreaLight(lc.Position, lc.Direction, col, lc.Intensity, lc.Size), nil
	}
	return nil, errors.Errorf("unknown light type %q", lc.Type)
}

type AmbientCfg struct {
	Color     Vec3 `json:"color"`
	Intensity Real `json:"intensity"`
}

type CameraCfg struct {
	Position    Vec3 `json:"position"`
	Target      Vec3 `json:"target"`
	Aperture    Real `json:"aperture,omitempty"`
	FocalLength Real `json:"focalLength,omitempty"`
}

// SkyCfg selects the environment: an image when Image is set, otherwise a
// gradient (or a uniform colour when Zenith is omitted).
type SkyCfg struct {
	Image    string `json:"image,omitempty"`
	MaxWidth int    `json:"maxWidth,omitempty"`
	Scale    Real   `json:"scale,omitempty"`
	Horizon  Vec3   `json:"horizon"`
	Zenith   Vec3   `json:"zenith"`
}

func (sc SkyCfg) Build() (Environment, error) {
	if sc.Image != "" {
		return LoadSkydome(sc.Image, sc.MaxWidth, sc.Scale)
	}
	if sc.Zenith == (Vec3{}) {
		return UniformSky{Color: sc.Horizon}, nil
	}
	return GradientSky{Horizon: sc.Horizon, Zenith: sc.Zenith}, nil
}

type Config struct {
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	Frames       int         `json:"frames"`
	Workers      int         `json:"workers,omitempty"`
	Seed         int64       `json:"seed,omitempty"`
	Gamma        Real        `json:"gamma,omitempty"`
	MaxDepth     int         `json:"maxDepth,omitempty"`
	VoxelAmount  int         `json:"voxelAmount,omitempty"`
	DefaultScene bool        `json:"defaultScene,omitempty"`
	Stochastic   bool        `json:"stochastic,omitempty"`
	SoftShadow   *Real       `json:"softShadow,omitempty"`
	Ambient      *AmbientCfg `json:"ambient,omitempty"`
	Camera       CameraCfg   `json:"camera"`
	Sky          SkyCfg      `json:"sky"`
	Boxes        []BoxCfg    `json:"boxes,omitempty"`
	Voxels       []VoxelCfg  `json:"voxels,omitempty"`
	Spheres      []SphereCfg `json:"spheres,omitempty"`
	Lights       []LightCfg  `json:"lights,omitempty"`
	PNGOut       string      `json:"pngOut,omitempty"`
	GIFOut       string      `json:"gifOut,omitempty"`
	RAWOut       string      `json:"rawOut,omitempty"`
	GIFDelay     int         `json:"gifDelay,omitempty"`
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	// Defaults / validation
	if cfg.Width <= 0 {
		cfg.Width = Width
	}
	if cfg.Height <= 0 {
		cfg.Height = Height
	}
	if cfg.Frames <= 0 {
		cfg.Frames = Frames
	}
	if cfg.Gamma <= 0 {
		cfg.Gamma = Gamma
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = MaxDepth
	}
	if cfg.VoxelAmount <= 0 {
		cfg.VoxelAmount = VoxelAmount
	}
	if cfg.VoxelAmount&(cfg.VoxelAmount-1) != 0 {
		return nil, errors.Wrapf(ErrGridSize, "voxelAmount %d", cfg.VoxelAmount)
	}
	if cfg.Camera.FocalLength <= 0 {
		cfg.Camera.FocalLength = FocalLength
	}
	if cfg.Camera.Position == (Vec3{}) && cfg.Camera.Target == (Vec3{}) {
		cfg.Camera.Position = Vec3{2.5, 1, 0.5}
		cfg.Camera.Target = Vec3{1.5, 0.8, 0.5}
	}
	if cfg.Camera.Position == cfg.Camera.Target {
		return nil, errors.New("camera position and target must differ")
	}
	if cfg.Sky.Scale <= 0 {
		cfg.Sky.Scale = SkyScale
	}
	if cfg.Sky.MaxWidth <= 0 {
		cfg.Sky.MaxWidth = SkyMaxWidth
	}
	if cfg.PNGOut == "" {
		cfg.PNGOut = PNGOut
	}
	if cfg.GIFOut == "" {
		cfg.GIFOut = strings.TrimSuffix(cfg.PNGOut, ".png") + ".gif"
	}
	if cfg.RAWOut == "" {
		cfg.RAWOut = strings.TrimSuffix(cfg.PNGOut, ".png") + ".raw"
	}
	if cfg.GIFDelay <= 0 {
		cfg.GIFDelay = GIFDelay
	}
	return &cfg, nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	DebugLog("Loaded config from %s: %dx%d, frames=%d, voxels=%d, spheres=%d, lights=%d",
		path, cfg.Width, cfg.Height, cfg.Frames, cfg.VoxelAmount, len(cfg.Spheres), len(cfg.Lights))
	return cfg, nil
}

// BuildScene constructs the scene: the default room (on a VoxelAmount grid)
// when DefaultScene is set, otherwise an empty grid, then every configured
// voxel, sphere and light.
func (cfg *Config) BuildScene() (*Scene, error) {
	sky, err := cfg.Sky.Build()
	if err != nil {
		return nil, err
	}
	var s *Scene
	if cfg.DefaultScene {
		s, err = NewDefaultScene(cfg.VoxelAmount, sky)
	} else {
		var g *Grid
		g, err = NewGrid(cfg.VoxelAmount)
		if err == nil {
			s = NewScene(g, sky)
		}
	}
	if err != nil {
		return nil, err
	}

	for i, bc := range cfg.Boxes {
		mat, err := bc.Material.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "box #%d", i)
		}
		for z := bc.Min[2]; z <= bc.Max[2]; z++ {
			for y := bc.Min[1]; y <= bc.Max[1]; y++ {
				for x := bc.Min[0]; x <= bc.Max[0]; x++ {
					s.SetVoxel(x, y, z, VoxelData{Material: mat, Color: bc.Color})
				}
			}
		}
	}
	for i, vc := range cfg.Voxels {
		mat, err := vc.Material.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "voxel #%d", i)
		}
		s.SetVoxel(vc.At[0], vc.At[1], vc.At[2], VoxelData{
			Material: mat, Color: vc.Color, Special: vc.Special, SpecialColor: vc.SpecialColor,
		})
	}
	for i, sc := range cfg.Spheres {
		sp, err := sc.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "sphere #%d", i)
		}
		s.Spheres = append(s.Spheres, sp)
	}
	s.RebuildBVH()
	for i, lc := range cfg.Lights {
		l, err := lc.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "light #%d", i)
		}
		s.Lights.Add(l)
	}
	if cfg.Ambient != nil {
		s.Lights.Ambient = AmbientLight{Color: cfg.Ambient.Color, Intensity: cfg.Ambient.Intensity}
	}
	if cfg.SoftShadow != nil {
		s.Lights.SoftShadow = *cfg.SoftShadow
	}
	s.Lights.Stochastic = cfg.Stochastic || Stochastic
	return s, nil
}
