package emath

import (
	"image"
	"math"
)

// GaussianPadding is how many samples each recursive pass needs behind
// it before it can produce output; the first few samples along every
// edge of the smoothed region keep a mix of raw and filtered values.
const GaussianPadding = 3

// RetinexSigma is the standard deviation used when smoothing captures
// ahead of feature extraction; a kernel of radius 1 whose tail falls
// below one 8-bit step.
var RetinexSigma = math.Sqrt(-((1.0 + 1.0) * (1.0 + 1.0)) / (2.0 * math.Log(1.0/255.0)))

// GaussianCoefficients parameterize the 4th order recursive Gaussian
// from Young & van Vliet, "Recursive implementation of the Gaussian
// filter", Signal Processing 44 (1995).
type GaussianCoefficients struct {
	B              float64 // normalization
	B0, B1, B2, B3 float64
}

func NewGaussianCoefficients(sigma float64) GaussianCoefficients {
	var q float64
	switch {
	case sigma >= 2.5:
		q = 0.98711*sigma - 0.96330
	case sigma >= 0.5:
		q = 3.97156 - 4.14554*math.Sqrt(1.0-0.26891*sigma)
	default:
		q = 0.1147705
	}

	q2 := q * q
	q3 := q2 * q

	c := GaussianCoefficients{
		B0: 1.57825 + 2.44413*q + 1.4281*q2 + 0.422205*q3,
		B1: 2.44413*q + 2.85619*q2 + 1.26661*q3,
		B2: -(1.4281*q2 + 1.26661*q3),
		B3: 0.422205 * q3,
	}
	c.B = 1.0 - (c.B1+c.B2+c.B3)/c.B0

	return c
}

func (c GaussianCoefficients) apply(v0, v1, v2, v3 float64) float64 {
	return c.B*v0 + (c.B1*v1+c.B2*v2+c.B3*v3)/c.B0
}

// SmoothBytes blurs the pixels of an interleaved byte buffer that lie
// inside r, treating every byte of a pixel as an independent channel.
// Unlike image.Rectangle convention, r.Max is inclusive. pitch is the
// number of bytes per row, stride the number of bytes per pixel (1-4).
//
// The four passes run forward along rows, forward along columns, then
// backward along rows and columns. Everything is accumulated in
// float64 and only truncated back to bytes at the very end.
func SmoothBytes(buf []byte, pitch, stride int, r image.Rectangle, c GaussianCoefficients) {
	a := make([]float64, len(buf))
	b := make([]float64, len(buf))
	for i, v := range buf {
		a[i] = float64(v)
		b[i] = float64(v)
	}

	s1, s2, s3 := stride, 2*stride, 3*stride
	p1, p2, p3 := pitch, 2*pitch, 3*pitch

	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X + GaussianPadding; x <= r.Max.X; x++ {
			i := y*pitch + x*stride
			for j := i; j < i+stride; j++ {
				a[j] = c.apply(float64(buf[j]), a[j-s1], a[j-s2], a[j-s3])
			}
		}
	}

	for x := r.Min.X; x <= r.Max.X; x++ {
		for y := r.Min.Y + GaussianPadding; y <= r.Max.Y; y++ {
			i := y*pitch + x*stride
			for j := i; j < i+stride; j++ {
				a[j] = c.apply(float64(buf[j]), a[j-p1], a[j-p2], a[j-p3])
			}
		}
	}

	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Max.X - GaussianPadding; x >= r.Min.X; x-- {
			i := y*pitch + x*stride
			for j := i; j < i+stride; j++ {
				b[j] = c.apply(a[j], b[j+s1], b[j+s2], b[j+s3])
			}
		}
	}

	for x := r.Min.X; x <= r.Max.X; x++ {
		for y := r.Max.Y - GaussianPadding; y >= r.Min.Y; y-- {
			i := y*pitch + x*stride
			for j := i; j < i+stride; j++ {
				b[j] = c.apply(a[j], b[j+p1], b[j+p2], b[j+p3])
			}
		}
	}

	for i := range buf {
		buf[i] = uint8(Clamp(b[i], 0, 255))
	}
}
