package emath

import "math"

// Some functions that only operate on basic types, that are useful

type Float interface {
	~float32 | ~float64
}

func Clamp[T Float](v, min, max T) T {
	if v < min {
		return min
	} else if v > max {
		return max
	}
	return v
}

// Lerp returns a + (b-a)*t; when a == b the result is exactly a.
func Lerp[T Float](a, b, t T) T {
	return a + (b-a)*t
}

// Unwrap takes two points on a circle with the given period, and
// shifts one of them back by whole periods until they are no more than
// half a period apart. Differences and interpolations of the returned
// pair then take the short way round the circle.
func Unwrap[T Float](a, b, period T) (T, T) {
	half := period / 2
	for a-b > half {
		a -= period
	}
	for b-a > half {
		b -= period
	}
	return a, b
}

// Wrap maps v into [0, period).
func Wrap[T Float](v, period T) T {
	w := T(math.Mod(float64(v), float64(period)))
	if w < 0 {
		w += period
	}
	if w >= period {
		w = 0
	}
	return w
}

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055*math.Pow(f, 1.0/2.4) - 0.055
}
