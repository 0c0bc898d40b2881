package voxray

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SaveRawRGB64 writes a frame as little-endian int32 width, int32 height and
// then width*height RGB triples of float64.
func SaveRawRGB64(path string, w, h int, pix []Vec3) error {
	if w < 0 || h < 0 {
		return errors.Errorf("negative dimensions: w=%d h=%d", w, h)
	}
	if len(pix) != w*h {
		return errors.Errorf("pixel count mismatch: got %d, expected %d (w*h)", len(pix), w*h)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := binary.Write(bw, binary.LittleEndian, [2]int32{int32(w), int32(h)}); err != nil {
		return err
	}
	// Vec3 is [3]float64, so the slice encodes as packed triples.
	if err := binary.Write(bw, binary.LittleEndian, pix); err != nil {
		return err
	}
	return bw.Flush()
}

// LoadRawRGB64 reads a frame written by SaveRawRGB64.
func LoadRawRGB64(r io.Reader) (w, h int, pix []Vec3, err error) {
	var hdr [2]int32
	if err = binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return 0, 0, nil, errors.Wrap(err, "read header")
	}
	if hdr[0] < 0 || hdr[1] < 0 {
		return 0, 0, nil, errors.Errorf("negative dimensions: w=%d h=%d", hdr[0], hdr[1])
	}
	w, h = int(hdr[0]), int(hdr[1])
	pix = make([]Vec3, w*h)
	if err = binary.Read(r, binary.LittleEndian, pix); err != nil {
		return 0, 0, nil, errors.Wrap(err, "read pixels")
	}
	return w, h, pix, nil
}
