package learner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigYaml(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sail.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("seed: 42\nmotivationweight: 0.5\nmaskcolor: [0, 255, 0]\n"), 0644))

	c, err := LoadConfig(filename)
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.Seed)
	assert.Equal(t, 0.5, c.MotivationWeight)
	assert.Equal(t, 0.3, c.TargetWeight, "defaults survive")
	assert.Equal(t, uint8(255), c.Mask().G)

	c2, err := newConfigFromYaml([]byte(c.AsYaml()))
	require.NoError(t, err)
	assert.Equal(t, c, c2)
}

func TestConfigYamlKeys(t *testing.T) {
	doc := `verbosity: 2
seed: 7
stepsize: 1.5
targetweight: 0.4
motivationweight: 0.6
jitterfactor: 0.5
disablecleanup: true
maskcolor: [0, 255, 0]
dumpfilename: cap.bmp
progressevery: 13
`
	c, err := newConfigFromYaml([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Verbosity:        2,
		Seed:             7,
		StepSize:         1.5,
		TargetWeight:     0.4,
		MotivationWeight: 0.6,
		JitterFactor:     0.5,
		DisableCleanup:   true,
		MaskColor:        [3]uint8{0, 255, 0},
		DumpFilename:     "cap.bmp",
		ProgressEvery:    13,
	}, c)

	out := c.AsYaml()
	for _, key := range []string{"verbosity:", "seed:", "stepsize:", "targetweight:", "motivationweight:",
		"jitterfactor:", "disablecleanup:", "maskcolor:", "dumpfilename:", "progressevery:"} {
		assert.Contains(t, out, key)
	}
}

func TestConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
