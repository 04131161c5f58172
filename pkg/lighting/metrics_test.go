package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubCircularRoll(t *testing.T) {
	a := Metrics{Roll: 0.1}
	b := Metrics{Roll: 1.9}
	assert.InDelta(t, 0.2, Sub(a, b).Roll, 1e-6)
	assert.InDelta(t, -0.2, Sub(b, a).Roll, 1e-6)
	assert.InDelta(t, 0.04, Error(a, b), 1e-6)
}

func TestLerpAcrossSeam(t *testing.T) {
	a := Metrics{MaxIntensity: 0, Roll: 1.9, Yaw: -1}
	b := Metrics{MaxIntensity: 1, Roll: 0.1, Yaw: 1}

	mid := Lerp(a, b, 0.5)
	assert.InDelta(t, 0.5, mid.MaxIntensity, 1e-6)
	assert.InDelta(t, 0.0, mid.Yaw, 1e-6)
	// Through the seam, not through 1.0
	assert.True(t, mid.Roll < 1e-5 || mid.Roll > 2-1e-5, "roll=%f", mid.Roll)

	q := Lerp(a, b, 0.25)
	assert.InDelta(t, 1.95, q.Roll, 1e-5)
	q = Lerp(a, b, 0.75)
	assert.InDelta(t, 0.05, q.Roll, 1e-5)
}

func TestLerpJustBelowSeamWraps(t *testing.T) {
	// Unwrapping puts a just below zero; adding the period back rounds
	// up to exactly 2 in float32.
	a := Metrics{Roll: float32(1.9999999)}
	b := Metrics{Roll: 0.5}

	m := Lerp(a, b, 0)
	assert.Less(t, m.Roll, RollMax)
	assert.GreaterOrEqual(t, m.Roll, float32(0))
	assert.True(t, m.IsValid(), "%s", m)
}

func TestLerpSameIsExact(t *testing.T) {
	m := Metrics{MaxIntensity: 0.731, Entropy: 0.2222, Roll: 1.3333, Yaw: -0.4567}
	for _, w := range []float32{0, 0.3, 0.5, 1} {
		assert.Equal(t, m, Lerp(m, m, w))
	}
}

func TestDot(t *testing.T) {
	a := Metrics{1, 2, 3, 4}
	assert.Equal(t, float32(30), Dot(a, a))
	assert.InDelta(t, 0, Distance(a, a), 1e-9)
}

func TestIsValid(t *testing.T) {
	assert.True(t, Metrics{0.5, 0.5, 1.99, -1}.IsValid())
	assert.False(t, Metrics{0.5, 0.5, 2.0, 0}.IsValid())
	assert.False(t, Metrics{Yaw: 1.5}.IsValid())
}
