package voxray

import (
	"image"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Run loads the config, renders the configured number of frames and writes
// the requested outputs.
func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	scene, err := cfg.BuildScene()
	if err != nil {
		return errors.Wrap(err, "build scene")
	}
	DebugLog("Scene: voxels=%d spheres=%d lights=%d special=%d stochastic=%v",
		scene.Grid.Filled(), len(scene.Spheres), scene.Lights.Count(), len(scene.SpecialVoxels), scene.Lights.Stochastic)

	tracer := NewTracer(scene)
	tracer.MaxDepth = cfg.MaxDepth
	if Debug {
		tracer.Log = NewTraceLog(1024)
		scene.BVH.Dump(os.Stdout)
	}

	cam := NewCamera(cfg.Camera.Position, cfg.Camera.Target, cfg.Width, cfg.Height)
	cam.Aperture = cfg.Camera.Aperture
	cam.FocalLength = cfg.Camera.FocalLength
	cam.Update()

	if Estimate {
		estimateAtCenter(scene, cam, cfg.Seed)
	}

	workers := cfg.Workers
	if Workers > 0 {
		workers = Workers
	}
	queue := &CommandQueue{}
	r := NewRenderer(tracer, cam, queue, RenderOptions{Workers: workers, Seed: cfg.Seed})

	var snapshots []image.Image
	start := time.Now()
	for f := 0; f < cfg.Frames; f++ {
		r.RenderFrame()
		if GIF {
			snapshots = append(snapshots, r.Image(cfg.Gamma))
		}
	}
	DebugLog("Rendered %d frames of %dx%d in %s", r.Frames(), r.W, r.H, time.Since(start))

	if tracer.Log != nil {
		tracer.Log.Stats(os.Stdout)
	}

	if PNG {
		if err := SaveImage(r.Image16(cfg.Gamma), cfg.PNGOut); err != nil {
			return err
		}
		DebugLog("Saved PNG: %s", cfg.PNGOut)
	}
	if RAW {
		if err := SaveRawRGB64(cfg.RAWOut, r.W, r.H, r.Frame()); err != nil {
			return errors.Wrap(err, "save raw frame")
		}
		DebugLog("Saved RAW frame: %s", cfg.RAWOut)
	}
	if GIF {
		if err := SaveAnimatedGIF(snapshots, cfg.GIFOut, cfg.GIFDelay); err != nil {
			return err
		}
		DebugLog("Saved animated GIF: %s", cfg.GIFOut)
	}
	return nil
}

// estimateAtCenter compares the stochastic light estimate with the full sum at
// the surface seen through the image centre.
func estimateAtCenter(scene *Scene, cam *Camera, seed int64) {
	rng := newRand(seed)
	ray := cam.PrimaryRay(Real(cam.Width)/2, Real(cam.Height)/2, rng)
	var voxelHit, sphereHit HitInfo
	vi := scene.Grid.FindNearest(&ray, &voxelHit)
	hs := scene.BVH.Intersect(&ray, &sphereHit)
	if vi == NoVoxel && !hs {
		Logger().Info("estimate: centre ray hits nothing")
		return
	}
	hit := voxelHit
	if hs {
		hit = sphereHit
	}
	est := EstimateContribution(scene.Lights, hit.Point, hit.Normal, EstimateRays, seed)
	det := scene.Lights.DeterministicContribution(hit.Point, hit.Normal, rng)
	Logger().Info("estimate", "point", hit.Point, "stochastic", est, "deterministic", det)
}
