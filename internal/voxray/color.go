package voxray

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Color is a packed 0xRRGGBB value. Zero marks an empty voxel.
type Color uint32

func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// Normalised returns the colour as linear components in [0,1].
func (c Color) Normalised() Vec3 {
	return Vec3{Real(c.R()) / 255, Real(c.G()) / 255, Real(c.B()) / 255}
}

func (c Color) String() string { return fmt.Sprintf("#%06x", uint32(c)&0xffffff) }

// ParseColor accepts "#rrggbb", "rrggbb" or "0xrrggbb".
func ParseColor(s string) (Color, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "#")
	t = strings.TrimPrefix(strings.TrimPrefix(t, "0x"), "0X")
	if len(t) != 6 {
		return 0, errors.Errorf("color %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "color %q", s)
	}
	return Color(v), nil
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON takes either a hex string or a plain number.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := ParseColor(s)
		if err != nil {
			return err
		}
		*c = v
		return nil
	}
	var n uint32
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "color must be a hex string or a number")
	}
	*c = Color(n & 0xffffff)
	return nil
}
