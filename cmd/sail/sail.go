package main

import (
	"errors"
	"flag"
	"log"
	"runtime"

	"github.com/abworrall/sail/pkg/ecolor"
	"github.com/abworrall/sail/pkg/extract"
	"github.com/abworrall/sail/pkg/lattice"
	"github.com/abworrall/sail/pkg/learner"
	"github.com/abworrall/sail/pkg/lighting"
	"github.com/abworrall/sail/pkg/synth"
)

var (
	fVerbosity   int
	fConfigFile  string
	fLatticeFile string

	fTrain      bool
	fSize       int
	fExtract    bool
	fNumWorkers int

	fSteer      bool
	fTarget     string
	fMotivation string
	fStart      string
	fSteps      int
	fDt         float64

	fDumpSlices string
	fHDRFile    string
	fDumpFile   string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fConfigFile, "config", "", "YAML file of learner config")
	flag.StringVar(&fLatticeFile, "lattice", "lattice.dat", "where the lighting lattice lives")

	flag.BoolVar(&fTrain, "train", false, "fill the lattice from synthetic renders, if it doesn't exist yet")
	flag.IntVar(&fSize, "size", synth.DefaultSize, "width of synthetic renders, in pixels")
	flag.BoolVar(&fExtract, "extract", false, "fingerprint each image file (or dir) named in args")
	flag.IntVar(&fNumWorkers, "workers", runtime.NumCPU(), "how many images to fingerprint at once")

	flag.BoolVar(&fSteer, "steer", false, "steer the lights toward the target look")
	flag.StringVar(&fTarget, "target", "180,0.5,45", "settings (roll,fill,yaw) whose look we want")
	flag.StringVar(&fMotivation, "motivation", "90,0,90", "settings (roll,fill,yaw) whose look we also lean toward")
	flag.StringVar(&fStart, "start", "0,0.25,90", "settings (roll,fill,yaw) the rig starts at")
	flag.IntVar(&fSteps, "steps", 20, "how many controller steps to take")
	flag.Float64Var(&fDt, "dt", 0.1, "timestep for each controller step")

	flag.StringVar(&fDumpSlices, "dumpslices", "", "if set, write lattice slice heatmaps with this filename prefix")
	flag.StringVar(&fHDRFile, "hdr", "", "if set, write a synthetic render at the -start settings as Radiance HDR")
	flag.StringVar(&fDumpFile, "dump", "", "if set, where to dump the first smoothed capture (BMP)")
	flag.Parse()

	log.Printf("sail starting\n")
}

func main() {
	cfg := learner.NewConfig()
	if fConfigFile != "" {
		var err error
		if cfg, err = learner.LoadConfig(fConfigFile); err != nil {
			log.Fatal(err)
		}
	}
	if fVerbosity > 0 {
		cfg.Verbosity = fVerbosity
	}
	if fDumpFile != "" {
		cfg.DumpFilename = fDumpFile
	}

	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	start, err := lighting.ParseSettings(fStart)
	if err != nil {
		log.Fatal(err)
	}

	if fTrain {
		train(cfg)
	}
	if fExtract {
		extractFiles(cfg, flag.Args())
	}
	if fSteer {
		steer(cfg, start)
	}
	if fDumpSlices != "" {
		dumpSlices(fDumpSlices)
	}
	if fHDRFile != "" {
		writeHDR(cfg, start, fHDRFile)
	}
}

func train(cfg learner.Config) {
	if _, err := lattice.Load(fLatticeFile); err == nil {
		log.Printf("train: %s already exists, not retraining\n", fLatticeFile)
		return
	} else if !errors.Is(err, lattice.ErrNotFound) {
		log.Fatal(err)
	}

	log.Printf("train: sweeping %dpx synthetic renders into %s\n", fSize, fLatticeFile)

	r := synth.NewRenderer(fSize)
	r.MaskColor = cfg.Mask()

	l := learner.New(cfg)
	if err := l.Sweep(r); err != nil {
		log.Fatalf("train: %v", err)
	}
	if err := l.Lattice.Save(fLatticeFile); err != nil {
		log.Fatalf("train: %v", err)
	}
	log.Printf("train: wrote %s\n", fLatticeFile)
}

func extractFiles(cfg learner.Config, args []string) {
	filenames, err := extract.ListImageFiles(args...)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("extract: fingerprinting %d files with %d workers\n", len(filenames), fNumWorkers)

	e := extract.NewExtractor()
	e.MaskColor = cfg.Mask()
	e.DumpFilename = cfg.DumpFilename

	for _, res := range e.ExtractFiles(filenames, fNumWorkers) {
		if errors.Is(res.Err, ecolor.ErrUnsupportedFormat) {
			log.Fatal(res.Err)
		}
		log.Printf(" %s\n", res)
	}
}

func steer(cfg learner.Config, start lighting.Settings) {
	lat, err := lattice.Load(fLatticeFile)
	if err != nil {
		log.Fatalf("steer: %v (try -train first)", err)
	}

	targetSettings, err := lighting.ParseSettings(fTarget)
	if err != nil {
		log.Fatal(err)
	}
	motivation, err := lighting.ParseSettings(fMotivation)
	if err != nil {
		log.Fatal(err)
	}

	l := learner.NewWithLattice(cfg, lat)
	target := lat.Get(targetSettings)
	log.Printf("steer: from %s toward %s %s, %d steps of %.3f\n", start, targetSettings, target, fSteps, fDt)

	s := start
	for i := 0; i < fSteps; i++ {
		s = l.StepToward(target, s, motivation, fDt)
		log.Printf(" [%03d] %s err=%.5f\n", i, s, lighting.Error(target, lat.Get(s)))
	}
}

func dumpSlices(prefix string) {
	lat, err := lattice.Load(fLatticeFile)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("dumpslices: %s -> %s-*.png\n", fLatticeFile, prefix)

	for _, field := range []lattice.Field{lattice.FieldMaxIntensity, lattice.FieldEntropy, lattice.FieldRoll, lattice.FieldYaw} {
		if err := lat.DumpSlices(prefix, field); err != nil {
			log.Fatal(err)
		}
	}
}

func writeHDR(cfg learner.Config, s lighting.Settings, filename string) {
	r := synth.NewRenderer(fSize)
	si := r.Sphere(s)
	log.Printf("hdr: writing %s to %s\n", si, filename)

	if err := synth.WriteHDR(si, filename); err != nil {
		log.Fatal(err)
	}
	if cfg.Verbosity > 0 {
		if err := synth.WritePNG(synth.Preview(si), filename+".png"); err != nil {
			log.Fatal(err)
		}
	}
}
