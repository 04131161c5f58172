// Package learner fills a lighting lattice from captured images, and
// then uses it to steer a lighting rig toward a desired look.
package learner

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/abworrall/sail/pkg/emath"
	"github.com/abworrall/sail/pkg/extract"
	"github.com/abworrall/sail/pkg/lattice"
	"github.com/abworrall/sail/pkg/lighting"
)

type Learner struct {
	Config

	Lattice *lattice.Lattice
	Cursor  lattice.Cursor // the cell the next Tick will fill

	rng       *rand.Rand
	extractor *extract.Extractor
}

func New(cfg Config) *Learner {
	return NewWithLattice(cfg, lattice.New())
}

// NewWithLattice wraps an existing (e.g. loaded) lattice.
func NewWithLattice(cfg Config, l *lattice.Lattice) *Learner {
	e := extract.NewExtractor()
	e.MaskColor = cfg.Mask()
	e.DumpFilename = cfg.DumpFilename

	return &Learner{
		Config:    cfg,
		Lattice:   l,
		extractor: e,
	}
}

// Init starts a fresh sweep over the lattice, and returns the first
// settings to capture.
func (l *Learner) Init() lighting.Settings {
	seed := l.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	l.rng = rand.New(rand.NewSource(seed))
	l.Cursor.Reset()
	l.Lattice.Reset()

	return l.proposal()
}

// proposal returns settings near the cursor's grid point, jittered
// independently along each axis.
func (l *Learner) proposal() lighting.Settings {
	scale := float64(lattice.Segments) / 24.0 * l.JitterFactor
	jitter := func(factor float64) float64 {
		s := factor * scale
		return l.rng.Float64()*s - 0.5*s
	}

	nominal := l.Cursor.Settings()
	return lighting.Settings{
		KeyRoll: nominal.KeyRoll + jitter(lattice.RollFactor),
		Fill:    nominal.Fill + jitter(lattice.FillFactor),
		KeyYaw:  emath.Clamp(nominal.KeyYaw+jitter(lattice.YawFactor), lighting.MinYaw, lighting.MaxYaw),
	}.Normalize()
}

// Tick fingerprints a capture taken with the given settings, and stores
// it in the current cell. It returns false once the last cell has been
// filled; otherwise the settings are updated to the next ones to
// capture.
func (l *Learner) Tick(img extract.Image, settings *lighting.Settings) (bool, error) {
	if l.rng == nil {
		return false, fmt.Errorf("tick before init")
	}
	if l.Cursor.Done() {
		return false, fmt.Errorf("tick after the sweep completed")
	}

	sample, err := l.extractor.Extract(img)
	if err != nil {
		return false, err
	}

	if !l.DisableCleanup {
		sample = l.cleanup(sample, *settings)
	}

	l.Lattice.Set(l.Cursor, sample)

	if !l.Cursor.Next() {
		return false, nil
	}
	*settings = l.proposal()
	return true, nil
}

// cleanup patches readings in the places where the extractor can't see
// what the rig is doing.
//
// Roll is a controlled variable; the rig knows it better than the image.
// Once the key swings far enough round to be hidden behind the subject,
// the yaw reading falls off where it should keep climbing; likewise
// entropy for a fill that washes out the shading. In both cases the
// reading is replaced by extrapolating the two cells below it.
func (l *Learner) cleanup(sample lighting.Metrics, s lighting.Settings) lighting.Metrics {
	sample.Roll = float32(s.KeyRoll/360.0) * lighting.RollMax
	if sample.Roll >= lighting.RollMax {
		sample.Roll = 0
	}

	if s.KeyYaw-2.0*lattice.YawFactor > lighting.MinYaw {
		s0, s1 := s, s
		s0.KeyYaw -= 2.0 * lattice.YawFactor
		s1.KeyYaw -= 1.0 * lattice.YawFactor
		m0, m1 := l.Lattice.Get(s0), l.Lattice.Get(s1)

		if sample.Yaw < m1.Yaw {
			sample.Yaw = emath.Clamp(m0.Yaw+2.0*(m1.Yaw-m0.Yaw), -1, 1)
		}
	}

	if s.Fill-2.0*lattice.FillFactor > lighting.MinFill {
		s0, s1 := s, s
		s0.Fill -= 2.0 * lattice.FillFactor
		s1.Fill -= 1.0 * lattice.FillFactor
		m0, m1 := l.Lattice.Get(s0), l.Lattice.Get(s1)

		if sample.Entropy < m1.Entropy {
			sample.Entropy = emath.Clamp(m0.Entropy+2.0*(m1.Entropy-m0.Entropy), 0, 1)
		}
	}

	return sample
}
