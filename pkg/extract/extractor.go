package extract

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"sync"

	"golang.org/x/image/bmp"

	"github.com/abworrall/sail/pkg/lighting"
)

const DefaultDumpFilename = "filtered_capture.bmp"

// An Extractor turns captures into fingerprints. If DumpFilename is
// set, the smoothed grayscale of the first capture it sees is written
// out as a BMP, for eyeballing what the extractor is working with.
// It is safe for concurrent use, but must not be copied.
type Extractor struct {
	MaskColor    color.RGBA
	DumpFilename string

	dumpOnce sync.Once
}

func NewExtractor() *Extractor {
	return &Extractor{MaskColor: DefaultMaskColor}
}

func (e *Extractor) Extract(img Image) (lighting.Metrics, error) {
	f, err := NewMaskedFrame(img, e.MaskColor)
	if err != nil {
		return lighting.Metrics{}, err
	}

	if e.DumpFilename != "" {
		e.dumpOnce.Do(func() {
			if err := WriteBMP(f, e.DumpFilename); err != nil {
				log.Printf("debug dump: %v\n", err)
			}
		})
	}

	return Extract(f), nil
}

// WriteBMP saves the frame's luminance, top row first.
func WriteBMP(f MaskedFrame, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return bmp.Encode(writer, f.Gray())
	}
}
