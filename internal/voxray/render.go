package voxray

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

type RenderOptions struct {
	Workers int   // 0 means runtime.NumCPU()
	Seed    int64 // 0 means time based
}

// Renderer accumulates one jittered sample per pixel per frame.
type Renderer struct {
	Tracer *Tracer
	Camera *Camera
	Queue  *CommandQueue

	W, H    int
	workers int
	seed    int64
	accum   []Vec3
	frames  int
}

func NewRenderer(tr *Tracer, cam *Camera, q *CommandQueue, opts RenderOptions) *Renderer {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > cam.Height {
		workers = cam.Height
	}
	if workers < 1 {
		workers = 1
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Renderer{
		Tracer:  tr,
		Camera:  cam,
		Queue:   q,
		W:       cam.Width,
		H:       cam.Height,
		workers: workers,
		seed:    seed,
		accum:   make([]Vec3, cam.Width*cam.Height),
	}
}

func (r *Renderer) Frames() int { return r.frames }

// Reset drops the accumulated frames, e.g. after the camera moved.
func (r *Renderer) Reset() {
	for i := range r.accum {
		r.accum[i] = Vec3{}
	}
	r.frames = 0
}

// RenderFrame applies queued scene commands, then traces every pixel once.
// Rows are handed out dynamically; each worker owns its random generator.
func (r *Renderer) RenderFrame() {
	if r.Queue != nil {
		if err := r.Queue.Flush(r.Tracer.Scene); err != nil {
			Logger().Warn("scene command failed", "err", err)
		}
	}
	start := time.Now()
	frame := int64(r.frames)
	var next atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func(wid int) {
			defer wg.Done()
			seed := r.seed ^ (frame << 32) ^ int64(uint64(wid)*0x9e3779b97f4a7c15)
			rng := rand.New(rand.NewSource(seed))
			for {
				y := int(next.Add(1) - 1)
				if y >= r.H {
					return
				}
				r.renderRow(y, rng)
			}
		}(w)
	}
	wg.Wait()
	r.frames++
	DebugLog("Frame %d rendered in %s (%d workers)", r.frames, time.Since(start), r.workers)
}

func (r *Renderer) renderRow(y int, rng *rand.Rand) {
	row := r.accum[y*r.W : (y+1)*r.W]
	for x := range row {
		j := SampleSquare(rng)
		ray := r.Camera.PrimaryRay(Real(x)+0.5+j[0], Real(y)+0.5+j[1], rng)
		c := r.Tracer.Trace(&ray, 0, rng)
		if !isFiniteVec(c) {
			continue
		}
		row[x] = row[x].Add(c)
	}
}

// Frame returns the running mean of all rendered frames.
func (r *Renderer) Frame() []Vec3 {
	out := make([]Vec3, len(r.accum))
	if r.frames == 0 {
		return out
	}
	k := 1 / Real(r.frames)
	for i, v := range r.accum {
		out[i] = v.Mul(k)
	}
	return out
}

// toneMap clamps to [0,1] and applies 1/gamma.
func toneMap(v, gamma Real) Real {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		v = 1
	}
	if gamma != 1 {
		v = math.Pow(v, 1/gamma)
	}
	return v
}

// Image converts the accumulated frame to 8-bit RGB.
func (r *Renderer) Image(gamma Real) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.W, r.H))
	for i, v := range r.Frame() {
		img.SetNRGBA(i%r.W, i/r.W, color.NRGBA{
			R: uint8(math.Round(toneMap(v[0], gamma) * 255)),
			G: uint8(math.Round(toneMap(v[1], gamma) * 255)),
			B: uint8(math.Round(toneMap(v[2], gamma) * 255)),
			A: 255,
		})
	}
	return img
}

// Image16 is Image with 16 bits per channel.
func (r *Renderer) Image16(gamma Real) *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, r.W, r.H))
	for i, v := range r.Frame() {
		img.SetNRGBA64(i%r.W, i/r.W, color.NRGBA64{
			R: uint16(math.Round(toneMap(v[0], gamma) * 65535)),
			G: uint16(math.Round(toneMap(v[1], gamma) * 65535)),
			B: uint16(math.Round(toneMap(v[2], gamma) * 65535)),
			A: 65535,
		})
	}
	return img
}
