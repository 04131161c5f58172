package lighting

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/abworrall/sail/pkg/emath"
)

const (
	RollMax     float32 = 2.0 // Roll is a circle; 2.0 is a full 360 degrees
	HalfRollMax float32 = 1.0
)

// Metrics is the illumination fingerprint of one image. Fields are
// float32 since that is their width on disk.
type Metrics struct {
	MaxIntensity float32 // [0,1]
	Entropy      float32 // [0,1], normalized histogram entropy
	Roll         float32 // [0,2), circular
	Yaw          float32 // [-1,1]
}

func (m Metrics) String() string {
	return fmt.Sprintf("{max:%.4f, entropy:%.4f, roll:%.4f, yaw:%+.4f}", m.MaxIntensity, m.Entropy, m.Roll, m.Yaw)
}

// Sub returns a-b, with the Roll difference taken the short way round.
func Sub(a, b Metrics) Metrics {
	ra, rb := emath.Unwrap(a.Roll, b.Roll, RollMax)
	return Metrics{
		MaxIntensity: a.MaxIntensity - b.MaxIntensity,
		Entropy:      a.Entropy - b.Entropy,
		Roll:         ra - rb,
		Yaw:          a.Yaw - b.Yaw,
	}
}

func Dot(a, b Metrics) float32 {
	return a.MaxIntensity*b.MaxIntensity + a.Entropy*b.Entropy + a.Roll*b.Roll + a.Yaw*b.Yaw
}

// Lerp interpolates between two fingerprints; Roll is interpolated
// along the shorter arc and then wrapped back onto the circle.
func Lerp(a, b Metrics, t float32) Metrics {
	ra, rb := emath.Unwrap(a.Roll, b.Roll, RollMax)

	roll := emath.Wrap(emath.Lerp(ra, rb, t), RollMax)

	return Metrics{
		MaxIntensity: emath.Lerp(a.MaxIntensity, b.MaxIntensity, t),
		Entropy:      emath.Lerp(a.Entropy, b.Entropy, t),
		Roll:         roll,
		Yaw:          emath.Lerp(a.Yaw, b.Yaw, t),
	}
}

// Error is the squared distance between two fingerprints.
func Error(target, m Metrics) float32 {
	d := Sub(target, m)
	return Dot(d, d)
}

func Distance(a, b Metrics) float32 {
	return math32.Sqrt(Error(a, b))
}

// IsValid reports whether every field is a finite number inside its range.
func (m Metrics) IsValid() bool {
	for _, v := range []float32{m.MaxIntensity, m.Entropy, m.Roll, m.Yaw} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return m.MaxIntensity >= 0 && m.MaxIntensity <= 1 &&
		m.Entropy >= 0 && m.Entropy <= 1 &&
		m.Roll >= 0 && m.Roll < RollMax &&
		m.Yaw >= -1 && m.Yaw <= 1
}
