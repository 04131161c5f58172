package extract

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/sail/pkg/ecolor"
)

func TestEntropyUniformHistogram(t *testing.T) {
	// One pixel in each of the 30 bins.
	values := []int{}
	for v := 0; v < 256 && len(values) < entropyBins; v++ {
		if int((float64(v)/255.0)*(entropyBins-1)) == len(values) {
			values = append(values, v)
		}
	}
	require.Len(t, values, entropyBins)

	f := newTestFrame(entropyBins, 1, func(x, y int) int { return values[x] })
	for _, n := range Histogram(f) {
		require.Equal(t, 1, n)
	}
	assert.InDelta(t, 1.0, Entropy(f), 1e-9)
}

func TestEntropySingleIntensity(t *testing.T) {
	f := newTestFrame(10, 10, func(x, y int) int { return 77 })
	assert.InDelta(t, 0.0, Entropy(f), 1e-12)

	// And through the whole pipeline, smoothing included.
	img := maskedImage(t, 16, 16, ecolor.FormatBGRA32)
	for y := 2; y < 14; y++ {
		for x := 2; x < 14; x++ {
			img.Set(x, y, gray(128))
		}
	}
	m, err := NewExtractor().Extract(img)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, m.Entropy, 1e-6)
}

func TestEntropyTwoBins(t *testing.T) {
	f := newTestFrame(10, 2, func(x, y int) int { return y * 255 })
	assert.InDelta(t, 0.693147/3.401197, Entropy(f), 1e-5) // ln2 / ln30
}

func TestRollDirection(t *testing.T) {
	tests := []struct {
		name string
		lum  func(x, y int) int
		want float64
	}{
		{"brighter to the right", func(x, y int) int { return 20 * x }, 0.0},
		{"brighter above", func(x, y int) int { return 20 * y }, 0.5},
		{"brighter to the left", func(x, y int) int { return 20 * (10 - x) }, 1.0},
		{"brighter below", func(x, y int) int { return 20 * (10 - y) }, 1.5},
		{"brighter up and right", func(x, y int) int { return 10*x + 10*y }, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFrame(11, 11, tt.lum)
			assert.InDelta(t, tt.want, Roll(f), 1e-6)
		})
	}
}

func TestRollUndetermined(t *testing.T) {
	// Flat gray; every window has mass on both sides but no offset.
	f := newTestFrame(8, 8, func(x, y int) int { return 128 })
	assert.Equal(t, 0.0, Roll(f))

	// Too small to hold a single window.
	f = newTestFrame(2, 2, func(x, y int) int { return 10 * x })
	assert.Equal(t, 0.0, Roll(f))
}

func TestYawFollowsTheLight(t *testing.T) {
	f := newTestFrame(24, 12, func(x, y int) int { return 10 * x })

	toward := Yaw(f, 0) // rays run left to right, into the light
	away := Yaw(f, 180) // rays run right to left

	assert.Greater(t, toward, 0.0)
	assert.Less(t, away, 0.0)
	assert.LessOrEqual(t, toward, 1.0)
	assert.GreaterOrEqual(t, away, -1.0)
}

func TestYawShortRunsIgnored(t *testing.T) {
	// Nothing is 9 pixels long, so no run qualifies.
	f := newTestFrame(8, 8, func(x, y int) int { return 10 * x })
	assert.Equal(t, 0.0, Yaw(f, 0))
	assert.Equal(t, 0.0, Yaw(f, 90))
}

func TestMetricsStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := NewExtractor()

	for i := 0; i < 40; i++ {
		w, h := 8+rng.Intn(40), 8+rng.Intn(40)
		img := maskedImage(t, w, h, ecolor.FormatBGRA32)

		cx, cy, r := rng.Intn(w), rng.Intn(h), 2+rng.Intn(20)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if (x-cx)*(x-cx)+(y-cy)*(y-cy) > r*r {
					continue
				}
				img.Set(x, y, gray(uint8(rng.Intn(256))))
			}
		}

		m, err := e.Extract(img)
		require.NoError(t, err)
		assert.True(t, m.IsValid(), "image %d gave %s", i, m)
		assert.GreaterOrEqual(t, m.Roll, float32(0))
		assert.Less(t, m.Roll, float32(2))
		assert.GreaterOrEqual(t, m.Yaw, float32(-1))
		assert.LessOrEqual(t, m.Yaw, float32(1))
	}
}
