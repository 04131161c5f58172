package extract

import (
	"fmt"
	"image"
	"image/color"

	"github.com/abworrall/sail/pkg/ecolor"
	"github.com/abworrall/sail/pkg/emath"
)

// A Box is an inclusive pixel bounding box.
type Box struct {
	X0, Y0, X1, Y1 int
}

// emptyBox is inside out, so that the first Grow snaps it onto a point.
func emptyBox(w, h int) Box { return Box{X0: w, Y0: h, X1: 0, Y1: 0} }

func (b Box) Empty() bool { return b.X0 > b.X1 || b.Y0 > b.Y1 }
func (b Box) Dx() int { return b.X1 - b.X0 + 1 }
func (b Box) Dy() int { return b.Y1 - b.Y0 + 1 }

func (b Box) Grow(x, y int) Box {
	if x < b.X0 {
		b.X0 = x
	}
	if x > b.X1 {
		b.X1 = x
	}
	if y < b.Y0 {
		b.Y0 = y
	}
	if y > b.Y1 {
		b.Y1 = y
	}
	return b
}

func (b Box) String() string { return fmt.Sprintf("[(%d,%d)-(%d,%d)]", b.X0, b.Y0, b.X1, b.Y1) }

// A MaskedFrame is a capture reduced to smoothed 8-bit luminance, with a
// mask of which pixels belong to the subject. Rows run bottom to top,
// so y grows upwards.
type MaskedFrame struct {
	width, height int
	lum           []uint8
	valid         []bool
	box           Box
	count         int
}

// NewMaskedFrame builds the frame. Pixels whose RGB equals the mask
// color are excluded from everything downstream.
func NewMaskedFrame(img Image, mask color.RGBA) (MaskedFrame, error) {
	if err := img.Validate(); err != nil {
		return MaskedFrame{}, fmt.Errorf("masked frame: %w", err)
	}

	w, h := img.Width, img.Height
	stride, _ := img.Format.Stride()
	pitch := w * stride
	ro, gO, bo, _ := img.Format.Offsets()

	f := MaskedFrame{
		width:  w,
		height: h,
		lum:    make([]uint8, w*h),
		valid:  make([]bool, w*h),
		box:    emptyBox(w, h),
	}

	p := flipRows(img.Data[:h*pitch], pitch, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*pitch + x*stride
			if p[i+ro] == mask.R && p[i+gO] == mask.G && p[i+bo] == mask.B {
				continue
			}
			f.valid[y*w+x] = true
			f.box = f.box.Grow(x, y)
			f.count++
		}
	}

	if f.count > 0 {
		r := image.Rect(f.box.X0, f.box.Y0, f.box.X1, f.box.Y1)
		emath.SmoothBytes(p, pitch, stride, r, emath.NewGaussianCoefficients(emath.RetinexSigma))
	}

	for i := range f.lum {
		c, _ := ecolor.PixelAt(img.Format, p, i*stride)
		f.lum[i] = ecolor.Luminance(c)
	}

	return f, nil
}

func flipRows(src []byte, pitch, h int) []byte {
	dst := make([]byte, len(src))
	for y := 0; y < h; y++ {
		copy(dst[y*pitch:(y+1)*pitch], src[(h-1-y)*pitch:(h-y)*pitch])
	}
	return dst
}

func (f MaskedFrame) Dx() int { return f.width }
func (f MaskedFrame) Dy() int { return f.height }
func (f MaskedFrame) Count() int { return f.count }
func (f MaskedFrame) Bounds() Box { return f.box }
func (f MaskedFrame) IsValid(x, y int) bool { return f.valid[y*f.width+x] }
func (f MaskedFrame) Lum(x, y int) uint8 { return f.lum[y*f.width+x] }

func (f MaskedFrame) String() string {
	return fmt.Sprintf("MaskedFrame[%dx%d, %d valid in %s]", f.width, f.height, f.count, f.box)
}

// ToFloatGrid returns the luminance, with the rows put back top to
// bottom so it looks right when viewed. Invalid pixels read as zero.
func (f MaskedFrame) ToFloatGrid() emath.FloatGrid {
	fg := emath.NewFloatGrid(f.width, f.height)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			if f.IsValid(x, y) {
				fg.Set(x, f.height-1-y, float64(f.Lum(x, y)))
			}
		}
	}
	return fg
}

// Gray returns the luminance as an image, top row first, ignoring the mask.
func (f MaskedFrame) Gray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		copy(g.Pix[y*g.Stride:], f.lum[(f.height-1-y)*f.width:(f.height-y)*f.width])
	}
	return g
}
