package voxray

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"
)

// Environment supplies radiance for rays that escape the scene.
type Environment interface {
	Sample(dir Vec3) Vec3
}

type UniformSky struct {
	Color Vec3
}

func (s UniformSky) Sample(Vec3) Vec3 { return s.Color }

// GradientSky blends Horizon to Zenith with the direction's height.
type GradientSky struct {
	Horizon Vec3
	Zenith  Vec3
}

func (s GradientSky) Sample(dir Vec3) Vec3 {
	t := 0.5 * (norm(dir).Y() + 1)
	return s.Horizon.Mul(1 - t).Add(s.Zenith.Mul(t))
}

// Skydome is an equirectangular environment map stored as linear floats.
type Skydome struct {
	W, H  int
	Pix   []Vec3
	Scale Real
}

// NewSkydome converts img, applying a square-root gamma to every texel.
func NewSkydome(img image.Image, scale Real) (*Skydome, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("sky dome image is empty: %dx%d", w, h)
	}
	s := &Skydome{W: w, H: h, Pix: make([]Vec3, w*h), Scale: scale}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			s.Pix[x+y*w] = Vec3{
				math.Sqrt(Real(r) / 0xffff),
				math.Sqrt(Real(g) / 0xffff),
				math.Sqrt(Real(bl) / 0xffff),
			}
		}
	}
	return s, nil
}

// LoadSkydome decodes an image file (PNG, JPEG, GIF, BMP, TIFF or WebP) and
// scales it down to maxWidth when wider.
func LoadSkydome(path string, maxWidth int, scale Real) (*Skydome, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sky dome %s", path)
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		DebugLog("Resizing sky dome %s from %d to %d px wide", path, img.Bounds().Dx(), maxWidth)
		img = resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)
	}
	s, err := NewSkydome(img, scale)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	DebugLog("Loaded sky dome %s: %dx%d", path, s.W, s.H)
	return s, nil
}

func (s *Skydome) Sample(dir Vec3) Vec3 {
	d := norm(dir)
	w, h := Real(s.W), Real(s.H)
	u := int(w*math.Atan2(d.Z(), d.X())/(2*math.Pi) - 0.5)
	v := int(h*math.Acos(mgl64.Clamp(d.Y(), -1, 1))/math.Pi - 0.5)
	n := s.W * s.H
	idx := (u + v*s.W) % n
	if idx < 0 {
		idx += n
	}
	return s.Pix[idx].Mul(s.Scale)
}
