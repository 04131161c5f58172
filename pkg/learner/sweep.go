package learner

import (
	"fmt"
	"log"

	"github.com/abworrall/sail/pkg/extract"
	"github.com/abworrall/sail/pkg/lattice"
	"github.com/abworrall/sail/pkg/lighting"
)

// A Renderer captures the subject as lit by the given settings.
type Renderer interface {
	Render(lighting.Settings) (extract.Image, error)
}

type RendererFunc func(lighting.Settings) (extract.Image, error)

func (f RendererFunc) Render(s lighting.Settings) (extract.Image, error) { return f(s) }

// Sweep fills the whole lattice, asking the renderer for one capture
// per cell.
func (l *Learner) Sweep(r Renderer) error {
	settings := l.Init()
	log.Printf("sweeping %d cells\n", lattice.Size)

	for n := 1; ; n++ {
		img, err := r.Render(settings)
		if err != nil {
			return fmt.Errorf("render %s: %v", settings, err)
		}

		cell := l.Cursor
		more, err := l.Tick(img, &settings)
		if err != nil {
			return fmt.Errorf("tick %s: %w", cell, err)
		}

		if l.Verbosity > 1 {
			log.Printf(" -- %s %s\n", cell, l.Lattice.At(cell))
		} else if l.ProgressEvery > 0 && n%l.ProgressEvery == 0 {
			log.Printf(" -- %4d/%d cells\n", n, lattice.Size)
		}

		if !more {
			return nil
		}
	}
}
