package extract

import (
	"fmt"
	"io"

	"github.com/rwcarlsen/goexif/exif"
)

type rat64 [2]int64

// An Exposure records how a photograph was exposed, as read from its
// EXIF data. Fingerprints are only comparable between captures made
// with the same exposure, since MaxIntensity depends on it directly.
type Exposure struct {
	ISO          int64 // 100, 800, etc.
	ApertureX10  int64 // f/5.6 is the integer 56.
	ShutterSpeed rat64 // 1/500, 1/1000, etc.
	EV           int   // https://en.wikipedia.org/wiki/Exposure_value, at ISO100
}

var (
	// The sequence of "whole" f-stops from f/1.0 to f/32, as x10 int values
	apertureX10FStops = []int64{10, 14, 20, 28, 40, 56, 80, 110, 160, 220, 320}

	// This sequence isn't quite mathematical
	shutterSpeeds = []rat64{
		{1, 4000}, {1, 2000}, {1, 1000}, {1, 500}, {1, 250}, {1, 125}, {1, 60}, {1, 30}, {1, 15},
		{1, 8}, {1, 4}, {1, 2}, {1, 1}, {2, 1}, {4, 1}, {8, 1}, {16, 1}, {32, 1}, {64, 1},
	}

	isoStops = map[int64]int{100: 0, 200: 1, 400: 2, 800: 3, 1600: 4, 3200: 5, 6400: 6, 12800: 7}
)

// Distances between indices are whole stops.
func closestApertureIndex(apertureX10 int64) int {
	ret := 0
	for i, fstop := range apertureX10FStops {
		if fstop <= apertureX10 {
			ret = i
		}
	}
	return ret
}

func closestShutterSpeedIndex(ssIn rat64) int {
	ret := 0
	for i, ss := range shutterSpeeds {
		if ssIn[0] >= ss[0] && ss[1] >= ssIn[1] {
			ret = i
		}
	}
	return ret
}

func (ev Exposure) String() string {
	s := fmt.Sprintf("f/%.1f", float32(ev.ApertureX10)/10.0)
	if ev.ShutterSpeed[1] != 1 {
		s += fmt.Sprintf(", %d/%d", ev.ShutterSpeed[0], ev.ShutterSpeed[1])
	} else {
		s += fmt.Sprintf(", %d", ev.ShutterSpeed[0])
	}
	return s + fmt.Sprintf(", ISO%d, EV %d", ev.ISO, ev.EV)
}

// Validate works out the EV from the other fields.
func (ev *Exposure) Validate() error {
	// f/5.6 at 1/4000 is EV=17; count how many stops away we are.
	apAdj := closestApertureIndex(56) - closestApertureIndex(ev.ApertureX10)
	ssAdj := closestShutterSpeedIndex(rat64{1, 4000}) - closestShutterSpeedIndex(ev.ShutterSpeed)
	base := 17 - apAdj + ssAdj

	isoAdj, exists := isoStops[ev.ISO]
	if !exists {
		return fmt.Errorf("(%s) had unhandled ISO", ev)
	}

	ev.EV = base - isoAdj
	return nil
}

// ReadExposure pulls the exposure triple out of a file's EXIF data.
func ReadExposure(r io.Reader) (Exposure, error) {
	ev := Exposure{}

	ex, err := exif.Decode(r)
	if err != nil {
		return ev, fmt.Errorf("exif parsing: %v", err)
	}

	if tag, err := ex.Get(exif.ISOSpeedRatings); err != nil {
		return ev, fmt.Errorf("exif ISO: %v", err)
	} else if val, err := tag.Int64(0); err != nil {
		return ev, fmt.Errorf("exif ISO: %v", err)
	} else {
		ev.ISO = val
	}

	if tag, err := ex.Get(exif.FNumber); err != nil {
		return ev, fmt.Errorf("exif FNumber: %v", err)
	} else if num, denom, err := tag.Rat2(0); err != nil {
		return ev, fmt.Errorf("exif FNumber: %v", err)
	} else if denom == 0 {
		return ev, fmt.Errorf("exif FNumber %d/%d", num, denom)
	} else {
		ev.ApertureX10 = num * 10 / denom
	}

	if tag, err := ex.Get(exif.ExposureTime); err != nil {
		return ev, fmt.Errorf("exif ExposureTime: %v", err)
	} else if num, denom, err := tag.Rat2(0); err != nil {
		return ev, fmt.Errorf("exif ExposureTime: %v", err)
	} else {
		ev.ShutterSpeed = rat64{num, denom}
	}

	return ev, ev.Validate()
}
