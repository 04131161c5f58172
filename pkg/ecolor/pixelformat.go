package ecolor

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// A PixelFormat describes how one pixel is packed into a byte buffer.
type PixelFormat int

const (
	FormatUnknown PixelFormat = iota
	FormatBGRA32              // a.k.a. "Color"; what most GPU readbacks give you
	FormatRGBA32
	FormatBGRX32
	FormatRGBX32
	FormatBGR24
	FormatGray8 // can be smoothed, but carries no color to extract
)

var ErrUnsupportedFormat = errors.New("unsupported pixel format")

type layout struct {
	name    string
	stride  int
	r, g, b int // byte offsets; -1 if the format has no color
}

var layouts = map[PixelFormat]layout{
	FormatBGRA32: {"bgra32", 4, 2, 1, 0},
	FormatRGBA32: {"rgba32", 4, 0, 1, 2},
	FormatBGRX32: {"bgrx32", 4, 2, 1, 0},
	FormatRGBX32: {"rgbx32", 4, 0, 1, 2},
	FormatBGR24:  {"bgr24", 3, 2, 1, 0},
	FormatGray8:  {"gray8", 1, -1, -1, -1},
}

func (pf PixelFormat) String() string {
	if l, exists := layouts[pf]; exists {
		return l.name
	}
	return fmt.Sprintf("PixelFormat(%d)", int(pf))
}

func ParsePixelFormat(s string) (PixelFormat, error) {
	for pf, l := range layouts {
		if l.name == s {
			return pf, nil
		}
	}
	return FormatUnknown, fmt.Errorf("parse '%s': %w", s, ErrUnsupportedFormat)
}

// Stride is the number of bytes per pixel.
func (pf PixelFormat) Stride() (int, error) {
	if l, exists := layouts[pf]; exists {
		return l.stride, nil
	}
	return 0, fmt.Errorf("%s: %w", pf, ErrUnsupportedFormat)
}

// Offsets returns where the red, green and blue bytes live within a
// pixel. Only formats that carry color have offsets.
func (pf PixelFormat) Offsets() (r, g, b int, err error) {
	l, exists := layouts[pf]
	if !exists || l.r < 0 {
		return 0, 0, 0, fmt.Errorf("%s has no color channels: %w", pf, ErrUnsupportedFormat)
	}
	return l.r, l.g, l.b, nil
}

// PixelAt decodes the pixel starting at byte offset i. The returned
// color holds the raw (gamma encoded) channel values in [0,1].
func PixelAt(pf PixelFormat, buf []byte, i int) (colorful.Color, error) {
	r, g, b, err := pf.Offsets()
	if err != nil {
		return colorful.Color{}, err
	}
	return colorful.Color{
		R: float64(buf[i+r]) / 255.0,
		G: float64(buf[i+g]) / 255.0,
		B: float64(buf[i+b]) / 255.0,
	}, nil
}

// SetPixelAt is the inverse of PixelAt, for formats with an alpha or
// padding byte it is set to 0xFF.
func SetPixelAt(pf PixelFormat, buf []byte, i int, r, g, b uint8) error {
	ro, gO, bo, err := pf.Offsets()
	if err != nil {
		return err
	}
	buf[i+ro], buf[i+gO], buf[i+bo] = r, g, b
	if stride, _ := pf.Stride(); stride == 4 {
		buf[i+3] = 0xFF
	}
	return nil
}
