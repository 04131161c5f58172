package extract

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/sail/pkg/emath"
	"github.com/abworrall/sail/pkg/lighting"
)

const (
	entropyBins    = 30
	rollWindowHalf = 1 // 3x3 window
	minRunLength   = 9
	yawAdjustment  = 1.5
	zeroTolerance  = 1e-6
)

// maxEntropy is the entropy of a perfectly flat histogram.
var maxEntropy = math.Log(entropyBins)

// Extract reduces a frame to its illumination fingerprint. It is a pure
// function of the frame. None of the measures are normalized for the
// size of the subject.
func Extract(f MaskedFrame) lighting.Metrics {
	m := lighting.Metrics{
		MaxIntensity: float32(MaxIntensity(f)),
		Entropy:      float32(Entropy(f)),
		Roll:         float32(Roll(f)),
	}
	m.Yaw = float32(Yaw(f, float64(m.Roll/lighting.RollMax)*360.0))
	return m
}

// eachValid calls fn for every valid pixel inside the bounding box.
func (f MaskedFrame) eachValid(fn func(x, y int, v uint8)) {
	if f.count == 0 {
		return
	}
	for y := f.box.Y0; y <= f.box.Y1; y++ {
		for x := f.box.X0; x <= f.box.X1; x++ {
			if f.IsValid(x, y) {
				fn(x, y, f.Lum(x, y))
			}
		}
	}
}

// MaxIntensity is the brightest valid luminance, in [0,1].
func MaxIntensity(f MaskedFrame) float64 {
	vals := []float64{0}
	f.eachValid(func(x, y int, v uint8) { vals = append(vals, float64(v)) })
	return floats.Max(vals) / 255.0
}

// Histogram buckets valid luminance values into 30 bins.
func Histogram(f MaskedFrame) [entropyBins]int {
	var bins [entropyBins]int
	f.eachValid(func(x, y int, v uint8) {
		bins[int((float64(v)/255.0)*(entropyBins-1))]++
	})
	return bins
}

// Entropy is the Shannon entropy of the luminance histogram, relative
// to that of a flat histogram; in [0,1].
func Entropy(f MaskedFrame) float64 {
	if f.count == 0 {
		return 0
	}
	bins := Histogram(f)
	probs := make([]float64, entropyBins)
	for i, n := range bins {
		probs[i] = float64(n) / float64(f.count)
	}
	return stat.Entropy(probs) / maxEntropy
}

// Roll estimates which way the light falls across the subject. Every
// 3x3 window votes with the sign of the offset from its dark centroid
// to its bright centroid; the averaged vote is turned into an angle,
// and returned scaled into [0,2). With no votes at all the direction
// is undetermined, and the result is 0.
func Roll(f MaskedFrame) float64 {
	b := f.box
	count := 0
	dir := r2.Vec{}

	for y := b.Y0 + rollWindowHalf; y <= b.Y1-rollWindowHalf; y++ {
		for x := b.X0 + rollWindowHalf; x <= b.X1-rollWindowHalf; x++ {
			var darkMass, darkX, darkY, brightMass, brightX, brightY int

			for j := y - rollWindowHalf; j <= y+rollWindowHalf; j++ {
				for i := x - rollWindowHalf; i <= x+rollWindowHalf; i++ {
					if !f.IsValid(i, j) {
						continue
					}
					v := int(f.Lum(i, j))
					darkMass += 255 - v
					darkX += i * (255 - v)
					darkY += j * (255 - v)
					brightMass += v
					brightX += i * v
					brightY += j * v
				}
			}

			if darkMass > 0 && brightMass > 0 {
				dx := float64(brightX)/float64(brightMass) - float64(darkX)/float64(darkMass)
				dy := float64(brightY)/float64(brightMass) - float64(darkY)/float64(darkMass)
				dir = r2.Add(dir, r2.Vec{X: sign(dx), Y: sign(dy)})
				count++
			}
		}
	}

	if count == 0 {
		return 0
	}

	dir = r2.Scale(1.0/float64(count), dir)
	if math.Abs(dir.X) < zeroTolerance {
		dir.X = 0
	}
	if math.Abs(dir.Y) < zeroTolerance {
		dir.Y = 0
	}
	if dir.X == 0 && dir.Y == 0 {
		return 0
	}
	dir = r2.Unit(dir)

	deg := math.Acos(emath.Clamp(dir.X, -1, 1)) * 180.0 / math.Pi
	if dir.Y < -zeroTolerance {
		deg = 360.0 - deg
	}
	if deg >= 360.0 {
		deg = 0
	}
	return deg / 180.0
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Yaw estimates how far round the side of the subject the light sits.
// Rays are marched across the subject in the direction the light
// travels (given by the roll, in degrees), and every long enough run of
// valid samples reports how far its center of brightness sits from its
// middle. The averaged offset is scaled up and clamped into [-1,1].
func Yaw(f MaskedFrame, rollDegrees float64) float64 {
	if f.count == 0 {
		return 0
	}
	b := f.box
	rad := rollDegrees * math.Pi / 180.0
	slope := r2.Vec{X: math.Cos(rad), Y: math.Sin(rad)}

	startX, startY := float64(b.X0), float64(b.Y0)
	if slope.X < -zeroTolerance {
		startX = float64(b.X1)
	}
	if slope.Y < -zeroTolerance {
		startY = float64(b.Y1)
	}

	var acc yawAccumulator
	for x := b.X0; x <= b.X1; x++ {
		acc.march(f, slope, r2.Vec{X: float64(x), Y: startY})
	}
	for y := b.Y0; y <= b.Y1; y++ {
		acc.march(f, slope, r2.Vec{X: startX, Y: float64(y)})
	}

	if acc.count == 0 {
		return 0
	}
	return emath.Clamp((acc.totalCom/float64(acc.count))*yawAdjustment, -1, 1)
}

type yawAccumulator struct {
	totalCom float64
	count    int
	run      []float64
}

func (acc *yawAccumulator) march(f MaskedFrame, slope, pos r2.Vec) {
	acc.run = acc.run[:0]

	for pos.X >= 0 && pos.Y >= 0 {
		x, y := int(pos.X), int(pos.Y)
		if x >= f.width || y >= f.height {
			break
		}

		if f.IsValid(x, y) {
			acc.run = append(acc.run, float64(f.Lum(x, y))/255.0)
		} else if len(acc.run) >= minRunLength {
			acc.addRun()
			acc.run = acc.run[:0]
		}

		pos = r2.Add(pos, slope)
	}

	if len(acc.run) >= minRunLength {
		acc.addRun()
	}
}

// addRun measures the offset of the run's center of mass from its
// middle, as a fraction of half its length.
func (acc *yawAccumulator) addRun() {
	center := len(acc.run) / 2
	com, mass := 0.0, 0.0
	for j, v := range acc.run {
		com += float64(j-center) * v
		mass += v
	}
	if mass > zeroTolerance {
		acc.totalCom += (com / mass) / float64(center)
		acc.count++
	}
}
