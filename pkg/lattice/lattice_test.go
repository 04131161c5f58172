package lattice

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/sail/pkg/lighting"
)

func randomLattice(seed int64) *Lattice {
	rng := rand.New(rand.NewSource(seed))
	l := New()
	for c := (Cursor{}); !c.Done(); c.Next() {
		l.Set(c, lighting.Metrics{
			MaxIntensity: rng.Float32(),
			Entropy:      rng.Float32(),
			Roll:         rng.Float32() * 1.999,
			Yaw:          rng.Float32()*2 - 1,
		})
	}
	return l
}

// linearLattice has every field a simple function of the grid position.
func linearLattice() *Lattice {
	l := New()
	for c := (Cursor{}); !c.Done(); c.Next() {
		l.Set(c, lighting.Metrics{
			MaxIntensity: float32(c.Fill) / Segments,
			Entropy:      float32(c.Yaw) / Segments,
			Roll:         float32(c.Roll) / (Segments / 2),
		})
	}
	return l
}

func TestSize(t *testing.T) {
	assert.Equal(t, 2028, Size)
	assert.Equal(t, 0, Index(0, 0, 0))
	assert.Equal(t, 1, Index(0, 0, 1))
	assert.Equal(t, 13, Index(0, 1, 0))
	assert.Equal(t, 169, Index(1, 0, 0))
	assert.Equal(t, Size-1, Index(11, 12, 12))
}

func TestGetAtGridPointsIsExact(t *testing.T) {
	l := randomLattice(1)
	n := 0
	for c := (Cursor{}); !c.Done(); c.Next() {
		require.Equal(t, l.At(c), l.Get(c.Settings()), "at %s", c)
		n++
	}
	assert.Equal(t, Size, n)
}

func TestGetInterpolates(t *testing.T) {
	l := linearLattice()

	m := l.Get(lighting.Settings{KeyRoll: 45, Fill: 2.5 * FillFactor, KeyYaw: 6.25 * YawFactor})
	assert.InDelta(t, 2.5/12, m.MaxIntensity, 1e-5)
	assert.InDelta(t, 6.25/12, m.Entropy, 1e-5)
	assert.InDelta(t, 1.5/6, m.Roll, 1e-5)
}

func TestGetWrapsRoll(t *testing.T) {
	l := linearLattice()

	// Halfway between roll 330 (1.8333) and roll 0 (0.0) is 1.9166, not 0.9166
	m := l.Get(lighting.Settings{KeyRoll: 345})
	assert.InDelta(t, 1.91667, m.Roll, 1e-4)

	m = l.Get(lighting.Settings{KeyRoll: -15})
	assert.InDelta(t, 1.91667, m.Roll, 1e-4)
}

func TestGetRollStaysOnCircleAcrossSeam(t *testing.T) {
	l := New()
	l.Set(Cursor{Yaw: 0}, lighting.Metrics{Roll: 1.9994})
	l.Set(Cursor{Yaw: 1}, lighting.Metrics{Roll: 0.0003})

	// Sweep finely across the yaw interval; somewhere near 2/3 of the way
	// the interpolated roll lands a hair below zero.
	for i := 0; i <= 20000; i++ {
		yaw := YawFactor * float64(i) / 20000.0
		m := l.Get(lighting.Settings{KeyYaw: yaw})
		require.GreaterOrEqual(t, m.Roll, float32(0), "yaw %.9f", yaw)
		require.Less(t, m.Roll, lighting.RollMax, "yaw %.9f", yaw)
		require.True(t, m.IsValid(), "yaw %.9f: %s", yaw, m)
	}
}

func TestGetClampsFillAndYaw(t *testing.T) {
	l := randomLattice(2)
	top := l.At(Cursor{Roll: 3, Fill: 12, Yaw: 12})
	assert.Equal(t, top, l.Get(lighting.Settings{KeyRoll: 90, Fill: 4, KeyYaw: 170}))

	bottom := l.At(Cursor{Roll: 3})
	assert.Equal(t, bottom, l.Get(lighting.Settings{KeyRoll: 90, Fill: -1, KeyYaw: -10}))
}

func TestNeighbours(t *testing.T) {
	l := linearLattice()
	on := Cursor{Roll: 0, Fill: 4, Yaw: 12}.Settings()

	// On a grid line, the probes step out either side; roll wraps.
	k0, k1 := l.Neighbours(on, AxisRoll)
	assert.Equal(t, l.At(Cursor{Roll: 11, Fill: 4, Yaw: 12}), k0)
	assert.Equal(t, l.At(Cursor{Roll: 1, Fill: 4, Yaw: 12}), k1)

	k0, k1 = l.Neighbours(on, AxisFill)
	assert.Equal(t, l.At(Cursor{Fill: 3, Yaw: 12}), k0)
	assert.Equal(t, l.At(Cursor{Fill: 5, Yaw: 12}), k1)

	// Yaw is at the top edge, so the upper probe stays put.
	k0, k1 = l.Neighbours(on, AxisYaw)
	assert.Equal(t, l.At(Cursor{Fill: 4, Yaw: 11}), k0)
	assert.Equal(t, l.At(Cursor{Fill: 4, Yaw: 12}), k1)

	// Between grid lines the probes are the lines themselves, with the
	// other axes interpolated.
	between := lighting.Settings{KeyRoll: 0, Fill: 4.5 * FillFactor, KeyYaw: 2.5 * YawFactor}
	k0, k1 = l.Neighbours(between, AxisFill)
	assert.InDelta(t, 4.0/12, k0.MaxIntensity, 1e-6)
	assert.InDelta(t, 5.0/12, k1.MaxIntensity, 1e-6)
	assert.InDelta(t, 2.5/12, k0.Entropy, 1e-6)
}

func TestCursorWalk(t *testing.T) {
	c := Cursor{}
	want := 0
	for {
		require.Equal(t, want, c.Index())
		want++
		if !c.Next() {
			break
		}
	}
	assert.Equal(t, Size, want)
	assert.True(t, c.Done())

	c.Reset()
	assert.Equal(t, Cursor{}, c)
}

func TestSliceGrid(t *testing.T) {
	l := linearLattice()
	fg, err := l.SliceGrid(2, FieldMaxIntensity)
	require.NoError(t, err)
	assert.Equal(t, Points, fg.Dx())
	assert.InDelta(t, 5.0/12, fg.Get(5, 9), 1e-6)

	_, err = l.SliceGrid(0, Field("bogus"))
	assert.Error(t, err)
}
