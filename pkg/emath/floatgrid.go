package emath

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
)

// A FloatGrid is a grid of floats, used for debug visualizations of
// luminance planes and lattice slices.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (fg *FloatGrid) Set(x, y int, v float64) { fg.values[fg.stride*y+x] = v }
func (fg *FloatGrid) Get(x, y int) float64 { return fg.values[fg.stride*y+x] }
func (fg *FloatGrid) Dx() int { return fg.stride }
func (fg *FloatGrid) Dy() int { return len(fg.values) / fg.stride }

func (fg *FloatGrid) MinMax() (float64, float64) {
	min := math.MaxFloat64
	max := -1.0 * min

	for _, v := range fg.values {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return min, max
}

func (fg *FloatGrid) Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// ToImage renders the grid as grayscale, normalized over the range of
// values in the grid and gamma scaled to look normal for human vision.
// Each cell becomes a scale x scale block of pixels.
func (fg *FloatGrid) ToImage(scale int) *image.RGBA64 {
	if scale < 1 {
		scale = 1
	}
	min, max := fg.MinMax()
	span := max - min
	if span == 0 {
		span = 1
	}

	img := image.NewRGBA64(image.Rectangle{Max: image.Point{fg.Dx() * scale, fg.Dy() * scale}})
	for x := 0; x < img.Bounds().Dx(); x++ {
		for y := 0; y < img.Bounds().Dy(); y++ {
			gray := GammaExpand_F64((fg.Get(x/scale, y/scale) - min) / span)
			g16 := uint16(gray * 65535.0)
			img.Set(x, y, color.RGBA64{g16, g16, g16, 0xFFFF})
		}
	}
	return img
}

// ToImg saves the grid as a PNG, with a title drawn across the top.
func (fg *FloatGrid) ToImg(title, filename string, scale int) error {
	dc := gg.NewContextForImage(fg.ToImage(scale))
	dc.SetRGB(1, 0, 0)
	dc.DrawString(title, 4, 14)
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("FloatGrid.ToImg, write '%s': %v", filename, err)
	}
	return nil
}
