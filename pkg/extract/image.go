package extract

import (
	"fmt"
	"image"
	"image/color"

	"github.com/abworrall/sail/pkg/ecolor"
)

// DefaultMaskColor marks pixels that are not part of the subject.
var DefaultMaskColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// An Image is a raw capture, as handed over by a renderer or camera. Rows
// run top to bottom.
type Image struct {
	Width  int
	Height int
	Format ecolor.PixelFormat
	Data   []byte
}

func NewImage(w, h int, pf ecolor.PixelFormat) (Image, error) {
	stride, err := pf.Stride()
	if err != nil {
		return Image{}, err
	}
	return Image{Width: w, Height: h, Format: pf, Data: make([]byte, w*h*stride)}, nil
}

func (img Image) String() string {
	return fmt.Sprintf("Image[%dx%d, %s, %d bytes]", img.Width, img.Height, img.Format, len(img.Data))
}

// Validate checks the format is one we can pull color from, and that the
// buffer is big enough for the dimensions.
func (img Image) Validate() error {
	if _, _, _, err := img.Format.Offsets(); err != nil {
		return err
	}
	stride, _ := img.Format.Stride()
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("image has bad dimensions %dx%d", img.Width, img.Height)
	}
	if need := img.Width * img.Height * stride; len(img.Data) < need {
		return fmt.Errorf("image %dx%d %s needs %d bytes, has %d", img.Width, img.Height, img.Format, need, len(img.Data))
	}
	return nil
}

// Fill sets every pixel to one color.
func (img Image) Fill(c color.RGBA) {
	stride, _ := img.Format.Stride()
	for i := 0; i+stride <= len(img.Data); i += stride {
		ecolor.SetPixelAt(img.Format, img.Data, i, c.R, c.G, c.B)
	}
}

func (img Image) Set(x, y int, c color.RGBA) {
	stride, _ := img.Format.Stride()
	ecolor.SetPixelAt(img.Format, img.Data, (y*img.Width+x)*stride, c.R, c.G, c.B)
}

// FromStdImage converts any image.Image into a BGRA32 Image. Fully
// transparent pixels become the mask color.
func FromStdImage(src image.Image, mask color.RGBA) Image {
	b := src.Bounds()
	img, _ := NewImage(b.Dx(), b.Dy(), ecolor.FormatBGRA32)

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if c.A == 0 {
				img.Set(x, y, mask)
			} else {
				img.Set(x, y, color.RGBA{c.R, c.G, c.B, 0xFF})
			}
		}
	}
	return img
}
