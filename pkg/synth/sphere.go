// Package synth renders a lit sphere for known lighting settings, so that
// a lattice can be trained without an external rendering engine.
package synth

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abworrall/sail/pkg/lighting"
)

const (
	Albedo       = 0.8
	Ambient      = 0.02
	KeyIntensity = 1.0

	// The fill sits this far round from the key, on the same roll.
	fillYawOffset = -90.0
)

var (
	zAxis = r3.Vec{Z: 1}
	yAxis = r3.Vec{Y: 1}
)

// A SphereImage is the linear radiance of a Lambertian sphere, filling
// a square frame, lit by a key and a fill light. Pixels off the sphere
// are not part of the subject.
type SphereImage struct {
	Settings lighting.Settings
	Width    int
	Radius   float64

	key, fill r3.Vec
	fillScale float64
}

func NewSphereImage(s lighting.Settings, width int, radius float64) SphereImage {
	return SphereImage{
		Settings:  s,
		Width:     width,
		Radius:    radius,
		key:       lightDirection(s.KeyRoll, s.KeyYaw),
		fill:      lightDirection(s.KeyRoll, s.KeyYaw+fillYawOffset),
		fillScale: s.Fill,
	}
}

// lightDirection points at a light that has swung yaw degrees round from
// the camera, in the plane rolled roll degrees counterclockwise from the
// +x axis. y is up.
func lightDirection(roll, yaw float64) r3.Vec {
	d := r3.Rotate(zAxis, yaw*math.Pi/180.0, yAxis)
	return r3.Unit(r3.Rotate(d, roll*math.Pi/180.0, zAxis))
}

// Implement golang's image.Image interface
func (si SphereImage) ColorModel() color.Model { return hdrcolor.RGBModel }
func (si SphereImage) Bounds() image.Rectangle { return image.Rect(0, 0, si.Width, si.Width) }
func (si SphereImage) At(x, y int) color.Color { return si.HDRAt(x, y) }

// Implement hdr.Image interface
func (si SphereImage) HDRAt(x, y int) hdrcolor.Color {
	v, _ := si.Radiance(x, y)
	return hdrcolor.RGB{R: v, G: v, B: v}
}
func (si SphereImage) Size() int { return si.Width * si.Width }

func (si SphereImage) String() string {
	return fmt.Sprintf("sphere[%dpx, r=%.1f, %s]", si.Width, si.Radius, si.Settings)
}

// Normal is the surface normal under the pixel, in image coordinates
// (row 0 at the top). ok is false if the pixel misses the sphere.
func (si SphereImage) Normal(x, y int) (n r3.Vec, ok bool) {
	c := float64(si.Width) / 2.0
	n.X = (float64(x) + 0.5 - c) / si.Radius
	n.Y = (c - float64(y) - 0.5) / si.Radius

	d2 := n.X*n.X + n.Y*n.Y
	if d2 >= 1.0 {
		return r3.Vec{}, false
	}
	n.Z = math.Sqrt(1.0 - d2)
	return n, true
}

// Radiance is the gray level leaving the pixel, which may exceed 1 where
// key and fill overlap.
func (si SphereImage) Radiance(x, y int) (float64, bool) {
	n, ok := si.Normal(x, y)
	if !ok {
		return 0, false
	}

	irradiance := Ambient
	irradiance += KeyIntensity * math.Max(r3.Dot(n, si.key), 0)
	irradiance += si.fillScale * math.Max(r3.Dot(n, si.fill), 0)

	return Albedo * irradiance, true
}

var _ hdr.Image = SphereImage{}

func WriteHDR(img hdr.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return rgbe.Encode(writer, img)
	}
}
