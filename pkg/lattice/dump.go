package lattice

import (
	"fmt"
	"log"

	"github.com/abworrall/sail/pkg/emath"
	"github.com/abworrall/sail/pkg/lighting"
)

// A Field picks one value out of a fingerprint.
type Field string

const (
	FieldMaxIntensity Field = "max"
	FieldEntropy      Field = "entropy"
	FieldRoll         Field = "roll"
	FieldYaw          Field = "yaw"
)

func (fd Field) Of(m lighting.Metrics) (float64, error) {
	switch fd {
	case FieldMaxIntensity:
		return float64(m.MaxIntensity), nil
	case FieldEntropy:
		return float64(m.Entropy), nil
	case FieldRoll:
		return float64(m.Roll), nil
	case FieldYaw:
		return float64(m.Yaw), nil
	}
	return 0, fmt.Errorf("no fingerprint field named '%s'", fd)
}

// SliceGrid returns one roll slice of the lattice as a grid, with fill
// along x and yaw along y.
func (l *Lattice) SliceGrid(roll int, field Field) (emath.FloatGrid, error) {
	fg := emath.NewFloatGrid(Points, Points)
	for f := 0; f < Points; f++ {
		for y := 0; y < Points; y++ {
			v, err := field.Of(l.at(roll, f, y))
			if err != nil {
				return fg, err
			}
			fg.Set(f, y, v)
		}
	}
	return fg, nil
}

// DumpSlices writes every roll slice of one field as a PNG heatmap,
// named <prefix>-<field>-<roll>.png.
func (l *Lattice) DumpSlices(prefix string, field Field) error {
	for r := 0; r < Segments; r++ {
		fg, err := l.SliceGrid(r, field)
		if err != nil {
			return err
		}
		filename := fmt.Sprintf("%s-%s-%03d.png", prefix, field, r*int(RollFactor))
		title := fmt.Sprintf("%s @ roll %d", field, r*int(RollFactor))
		if err := fg.ToImg(title, filename, 16); err != nil {
			return err
		}
		log.Printf("wrote %s, %s\n", filename, fg.Stats())
	}
	return nil
}
