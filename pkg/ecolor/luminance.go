package ecolor

import (
	"github.com/lucasb-eyer/go-colorful"
)

// CIE 1931 relative luminance weights, for linear sRGB primaries.
const (
	LumR = 0.2126
	LumG = 0.7152
	LumB = 0.0722
)

// Luminance gamma-decodes the color, and returns its relative
// luminance as an 8-bit value (truncated).
func Luminance(c colorful.Color) uint8 {
	r, g, b := c.LinearRgb()
	y := LumR*r + LumG*g + LumB*b
	if y >= 1.0 {
		return 255
	} else if y <= 0 {
		return 0
	}
	return uint8(y * 255.0)
}

// Encode8 turns a linear RGB triple (values outside [0,1] are clipped)
// into gamma encoded 8-bit channels.
func Encode8(r, g, b float64) (uint8, uint8, uint8) {
	return colorful.LinearRgb(r, g, b).Clamped().RGB255()
}
