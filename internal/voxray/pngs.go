package voxray

import (
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// SaveImage writes img, picking the encoder from the file extension.
// NRGBA64 images saved as PNG keep 16 bits per channel.
func SaveImage(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}
