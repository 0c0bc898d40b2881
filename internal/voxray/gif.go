package voxray

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SaveAnimatedGIF writes one GIF frame per image, e.g. the accumulation
// converging frame by frame. delay is in 100ths of a second.
func SaveAnimatedGIF(frames []image.Image, path string, delay int) error {
	if len(frames) == 0 {
		return errors.New("no frames to save")
	}
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}
	for i, fr := range frames {
		if i%max(1, len(frames)/10) == 0 {
			DebugLog("[GIF] %.2f%%", Real(i+1)*100/Real(len(frames)))
		}
		pimg := image.NewPaletted(fr.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), fr, fr.Bounds().Min)
		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, out); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return nil
}
