package lattice

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lattice.dat")
	l := randomLattice(3)
	require.NoError(t, l.Save(filename))

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Equal(t, int64(Size*16), info.Size(), "four float32s per sample, no header")

	l2, err := Load(filename)
	require.NoError(t, err)
	for c := (Cursor{}); !c.Done(); c.Next() {
		require.Equal(t, l.At(c), l2.At(c), "at %s", c)
	}
}

func TestSaveFieldOrder(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lattice.dat")
	l := New()
	l.Set(Cursor{}, randomLattice(4).At(Cursor{}))
	require.NoError(t, l.Save(filename))

	b, err := os.ReadFile(filename)
	require.NoError(t, err)
	m := l.At(Cursor{})
	for i, v := range []float32{m.Entropy, m.MaxIntensity, m.Roll, m.Yaw} {
		assert.Equal(t, v, float32frombytes(b[i*4:]), "field %d", i)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.dat"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadShortFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "short.dat")
	require.NoError(t, os.WriteFile(filename, make([]byte, 100), 0644))

	_, err := Load(filename)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func float32frombytes(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
