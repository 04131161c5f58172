package synth

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/tmo"

	"github.com/abworrall/sail/pkg/ecolor"
	"github.com/abworrall/sail/pkg/extract"
	"github.com/abworrall/sail/pkg/lighting"
)

const DefaultSize = 64

// A Renderer produces 8-bit captures of the sphere, on a background of
// the mask color.
type Renderer struct {
	Size      int
	Radius    float64 // in pixels; zero means just inside the frame
	MaskColor color.RGBA
}

func NewRenderer(size int) Renderer {
	return Renderer{
		Size:      size,
		MaskColor: extract.DefaultMaskColor,
	}
}

func (r Renderer) radius() float64 {
	if r.Radius > 0 {
		return r.Radius
	}
	return float64(r.Size)/2.0 - 1.0
}

func (r Renderer) Sphere(s lighting.Settings) SphereImage {
	return NewSphereImage(s, r.Size, r.radius())
}

// Render captures the sphere as a BGRA32 image. Radiance is clipped to
// [0,1] and gamma encoded, as a camera would.
func (r Renderer) Render(s lighting.Settings) (extract.Image, error) {
	if r.Size <= 0 {
		return extract.Image{}, fmt.Errorf("render: bad size %d", r.Size)
	}

	img, err := extract.NewImage(r.Size, r.Size, ecolor.FormatBGRA32)
	if err != nil {
		return extract.Image{}, err
	}
	img.Fill(r.MaskColor)

	si := r.Sphere(s)
	for y := 0; y < r.Size; y++ {
		for x := 0; x < r.Size; x++ {
			v, ok := si.Radiance(x, y)
			if !ok {
				continue
			}
			cr, cg, cb := ecolor.Encode8(v, v, v)
			img.Set(x, y, color.RGBA{cr, cg, cb, 0xFF})
		}
	}

	return img, nil
}

// Preview tonemaps the radiance into something viewable; unlike Render,
// nothing is clipped.
func Preview(img hdr.Image) image.Image {
	return tmo.NewLinear(img).Perform()
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}
