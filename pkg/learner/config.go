package learner

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is read from YAML; keys are the lowercased field names
// (stepsize, maskcolor, ...).
type Config struct {
	Verbosity int
	Seed      int64 // for the sampling jitter; 0 picks one from the clock

	StepSize         float64 // controller gain
	TargetWeight     float64 // how hard to pull toward the target fingerprint
	MotivationWeight float64 // ... and toward the motivation fingerprint

	JitterFactor   float64 // sampling jitter, as a fraction of a whole cell
	DisableCleanup bool    // store raw fingerprints, without the occlusion fixups

	MaskColor     [3]uint8
	DumpFilename  string // if set, where the first capture's smoothed grayscale is dumped
	ProgressEvery int    // sweep logs a line every this many cells
}

func NewConfig() Config {
	return Config{
		StepSize:         3.0,
		TargetWeight:     0.3,
		MotivationWeight: 0.7,
		JitterFactor:     0.8,
		MaskColor:        [3]uint8{255, 0, 255},
		ProgressEvery:    169,
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	c, err := newConfigFromYaml(contents)
	if err != nil {
		return c, fmt.Errorf("config parse %s: %v", filename, err)
	}
	return c, nil
}

func (c Config) AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

func (c Config) Mask() color.RGBA {
	return color.RGBA{c.MaskColor[0], c.MaskColor[1], c.MaskColor[2], 0xFF}
}
