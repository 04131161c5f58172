package lighting

import (
	"fmt"

	"github.com/abworrall/sail/pkg/emath"
)

// The ranges over which a three point rig is sampled. The controller
// may push KeyYaw past MaxYaw, up to MaxYawLimit.
const (
	MinFill     = 0.0
	MaxFill     = 0.5
	MinYaw      = 0.0
	MaxYaw      = 135.0
	MaxYawLimit = 180.0
)

// Settings is one point in the space of three point rigs. The fill
// light follows the key, 90 degrees further round in yaw.
type Settings struct {
	KeyRoll float64 // degrees, around the camera axis; [0,360)
	Fill    float64 // fill intensity relative to the key; >= 0
	KeyYaw  float64 // degrees away from the camera axis; [0,135]
}

func NewSettings(roll, fill, yaw float64) Settings {
	return Settings{KeyRoll: roll, Fill: fill, KeyYaw: yaw}.Normalize()
}

// Normalize wraps KeyRoll into [0,360), and keeps Fill non-negative
// and KeyYaw within [0,180].
func (s Settings) Normalize() Settings {
	s.KeyRoll = emath.Wrap(s.KeyRoll, 360.0)
	if s.Fill < MinFill {
		s.Fill = MinFill
	}
	s.KeyYaw = emath.Clamp(s.KeyYaw, MinYaw, MaxYawLimit)
	return s
}

func (s Settings) String() string {
	return fmt.Sprintf("{roll:%6.2f, fill:%.3f, yaw:%6.2f}", s.KeyRoll, s.Fill, s.KeyYaw)
}

// ParseSettings reads "roll,fill,yaw".
func ParseSettings(str string) (Settings, error) {
	var s Settings
	if _, err := fmt.Sscanf(str, "%f,%f,%f", &s.KeyRoll, &s.Fill, &s.KeyYaw); err != nil {
		return s, fmt.Errorf("parse settings '%s': %v", str, err)
	}
	return s.Normalize(), nil
}

// Approximate makes a rough guess at the settings that produced a
// fingerprint, without consulting any lattice. Good enough to seed a
// controller.
func Approximate(m Metrics) Settings {
	return NewSettings(
		float64(m.Roll/RollMax)*360.0,
		float64(m.Entropy)*MaxFill,
		emath.Clamp(float64(m.Yaw)*MaxYaw, MinYaw, MaxYaw),
	)
}
