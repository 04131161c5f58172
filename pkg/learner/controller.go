package learner

import (
	"github.com/abworrall/sail/pkg/emath"
	"github.com/abworrall/sail/pkg/lattice"
	"github.com/abworrall/sail/pkg/lighting"
)

// gradient estimates d(error)/d(axis) from the lattice cells either
// side of the settings.
func (l *Learner) gradient(target lighting.Metrics, s lighting.Settings, axis lattice.Axis) float64 {
	k0, k1 := l.Lattice.Neighbours(s, axis)
	return 0.5 * float64(lighting.Error(target, k1)-lighting.Error(target, k0))
}

func (l *Learner) delta(target, motivation lighting.Metrics, s lighting.Settings, axis lattice.Axis, dt float64) float64 {
	g := l.TargetWeight*l.gradient(target, s, axis) + l.MotivationWeight*l.gradient(motivation, s, axis)
	return l.StepSize * dt * g
}

// Step moves the settings a little way downhill, toward settings whose
// fingerprint matches the target, while also being pulled toward the
// motivation fingerprint. This descends the cached lattice, not the
// live scene, so it can do no better than the lattice resolution.
func (l *Learner) Step(target lighting.Metrics, current lighting.Settings, motivation lighting.Metrics, dt float64) lighting.Settings {
	rollDelta := l.delta(target, motivation, current, lattice.AxisRoll, dt)
	fillDelta := l.delta(target, motivation, current, lattice.AxisFill, dt)
	yawDelta := l.delta(target, motivation, current, lattice.AxisYaw, dt)

	next := current
	next.KeyRoll = emath.Wrap(current.KeyRoll-rollDelta*180.0, 360.0)
	next.Fill = current.Fill - fillDelta*lighting.MaxFill
	if next.Fill < lighting.MinFill {
		next.Fill = lighting.MinFill
	}
	next.KeyYaw = emath.Clamp(current.KeyYaw-lighting.MaxYaw*yawDelta, lighting.MinYaw, lighting.MaxYawLimit)

	return next
}

// StepToward is Step, with the motivation given as settings.
func (l *Learner) StepToward(target lighting.Metrics, current, motivation lighting.Settings, dt float64) lighting.Settings {
	return l.Step(target, current, l.Lattice.Get(motivation), dt)
}
