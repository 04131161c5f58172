// Package lattice caches illumination fingerprints over a grid of three
// point lighting settings, and interpolates between them.
package lattice

import (
	"math"

	"github.com/abworrall/sail/pkg/emath"
	"github.com/abworrall/sail/pkg/lighting"
)

const (
	Segments   = 12           // per axis
	Points     = Segments + 1 // fill and yaw include both endpoints; roll wraps
	pointsSq   = Points * Points
	Size       = Segments * pointsSq
	RollFactor = 360.0 / Segments
	FillFactor = lighting.MaxFill / Segments
	YawFactor  = lighting.MaxYaw / Segments

	// Lattice coordinates this close to a grid line are snapped onto it.
	snapTolerance = 1e-6 * Segments
)

// Index flattens a grid position; roll-major, yaw-minor.
func Index(r, f, y int) int { return r*pointsSq + f*Points + y }

// A Lattice holds one fingerprint per grid point.
type Lattice struct {
	samples [Size]lighting.Metrics
}

func New() *Lattice { return &Lattice{} }

func (l *Lattice) At(c Cursor) lighting.Metrics { return l.samples[c.Index()] }
func (l *Lattice) Set(c Cursor, m lighting.Metrics) { l.samples[c.Index()] = m }
func (l *Lattice) at(r, f, y int) lighting.Metrics { return l.samples[Index(r, f, y)] }

// Reset empties the lattice.
func (l *Lattice) Reset() { l.samples = [Size]lighting.Metrics{} }

func snap(v float64) float64 {
	if n := math.Round(v); math.Abs(v-n) < snapTolerance {
		return n
	}
	return v
}

func wrapRoll(r int) int {
	for r < 0 {
		r += Segments
	}
	for r >= Segments {
		r -= Segments
	}
	return r
}

// coords maps settings onto continuous lattice coordinates. Roll lands
// in [0,12), fill and yaw in [0,12].
func coords(s lighting.Settings) (r, f, y float64) {
	r = snap(emath.Wrap(s.KeyRoll, 360.0) / RollFactor)
	if r >= Segments {
		r -= Segments
	}
	f = snap(emath.Clamp(s.Fill, lighting.MinFill, lighting.MaxFill) / FillFactor)
	y = snap(emath.Clamp(s.KeyYaw, lighting.MinYaw, lighting.MaxYaw) / YawFactor)
	return
}

// span returns the grid lines either side of v, and how far along v is.
func span(v float64) ([2]int, float32) {
	lo, hi := math.Floor(v), math.Ceil(v)
	return [2]int{int(lo), int(hi)}, float32(v - lo)
}

// blend does trilinear interpolation between the given grid lines,
// along yaw first, then fill, then roll.
func (l *Lattice) blend(r, f, y [2]int, rd, fd, yd float32) lighting.Metrics {
	r[0], r[1] = wrapRoll(r[0]), wrapRoll(r[1])

	var k [2]lighting.Metrics
	for i, ri := range r {
		j0 := lighting.Lerp(l.at(ri, f[0], y[0]), l.at(ri, f[0], y[1]), yd)
		j1 := lighting.Lerp(l.at(ri, f[1], y[0]), l.at(ri, f[1], y[1]), yd)
		k[i] = lighting.Lerp(j0, j1, fd)
	}
	return lighting.Lerp(k[0], k[1], rd)
}

// Get interpolates the fingerprint expected for the settings. At a grid
// point it returns exactly what was stored there.
func (l *Lattice) Get(s lighting.Settings) lighting.Metrics {
	r, f, y := coords(s)
	rs, rd := span(r)
	fs, fd := span(f)
	ys, yd := span(y)
	return l.blend(rs, fs, ys, rd, fd, yd)
}

// An Axis of the lattice.
type Axis int

const (
	AxisRoll Axis = iota
	AxisFill
	AxisYaw
)

func (a Axis) String() string {
	switch a {
	case AxisRoll:
		return "roll"
	case AxisFill:
		return "fill"
	case AxisYaw:
		return "yaw"
	}
	return "?"
}

// Neighbours returns the fingerprints at the grid lines either side of
// the settings along one axis, with the other two axes interpolated at
// the settings' own values. If the settings sit exactly on a grid line
// the probes move out one step each side; fill and yaw probes are kept
// inside the lattice, roll probes wrap.
func (l *Lattice) Neighbours(s lighting.Settings, axis Axis) (lighting.Metrics, lighting.Metrics) {
	r, f, y := coords(s)
	rs, rd := span(r)
	fs, fd := span(f)
	ys, yd := span(y)

	widen := func(g [2]int, clamp bool) [2]int {
		if g[0] == g[1] {
			g[0]--
			g[1]++
		}
		if clamp && g[0] < 0 {
			g[0] = 0
		}
		if clamp && g[1] > Segments {
			g[1] = Segments
		}
		return g
	}

	switch axis {
	case AxisRoll:
		rs = widen(rs, false)
		return l.blend([2]int{rs[0], rs[0]}, fs, ys, 0, fd, yd), l.blend([2]int{rs[1], rs[1]}, fs, ys, 0, fd, yd)
	case AxisFill:
		fs = widen(fs, true)
		return l.blend(rs, [2]int{fs[0], fs[0]}, ys, rd, 0, yd), l.blend(rs, [2]int{fs[1], fs[1]}, ys, rd, 0, yd)
	default:
		ys = widen(ys, true)
		return l.blend(rs, fs, [2]int{ys[0], ys[0]}, rd, fd, 0), l.blend(rs, fs, [2]int{ys[1], ys[1]}, rd, fd, 0)
	}
}
