package lattice

import (
	"fmt"

	"github.com/abworrall/sail/pkg/lighting"
)

// A Cursor walks every grid point of the lattice, yaw fastest, then
// fill, then roll.
type Cursor struct {
	Roll, Fill, Yaw int
}

func (c Cursor) Index() int { return Index(c.Roll, c.Fill, c.Yaw) }

// Done reports whether the cursor has walked off the end of the lattice.
func (c Cursor) Done() bool { return c.Roll >= Segments }

func (c *Cursor) Reset() { *c = Cursor{} }

// Next advances the cursor, and returns false once every grid point
// has been visited.
func (c *Cursor) Next() bool {
	c.Yaw++
	if c.Yaw >= Points {
		c.Yaw = 0
		c.Fill++
	}
	if c.Fill >= Points {
		c.Fill = 0
		c.Roll++
	}
	return !c.Done()
}

// Settings returns the settings at the cursor's grid point.
func (c Cursor) Settings() lighting.Settings {
	return lighting.Settings{
		KeyRoll: float64(c.Roll) * RollFactor,
		Fill:    float64(c.Fill) * FillFactor,
		KeyYaw:  float64(c.Yaw) * YawFactor,
	}
}

func (c Cursor) String() string {
	return fmt.Sprintf("cell[r=%02d,f=%02d,y=%02d]", c.Roll, c.Fill, c.Yaw)
}
