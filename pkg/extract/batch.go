package extract

import (
	"fmt"
	"log"
	"sync"

	"github.com/abworrall/sail/pkg/lighting"
)

// A Result is the fingerprint of one file.
type Result struct {
	Capture
	Metrics lighting.Metrics
	Err     error
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Filename, r.Err)
	}
	return fmt.Sprintf("%s: %s", r.Filename, r.Metrics)
}

type extractJob struct {
	index    int
	filename string
}

// ExtractFiles fingerprints each file with e, using a pool of
// goroutines that share it. Results come back in the same order as the
// filenames. Failures are reported per file, in Result.Err.
func (e *Extractor) ExtractFiles(filenames []string, nWorkers int) []Result {
	if nWorkers < 1 {
		nWorkers = 1
	}

	var wg sync.WaitGroup
	jobsChan := make(chan extractJob, len(filenames))
	results := make([]Result, len(filenames))

	for i := 0; i < nWorkers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			for job := range jobsChan {
				results[job.index] = e.extractFile(job.filename)
			}
		}()
	}

	for i, filename := range filenames {
		jobsChan <- extractJob{i, filename}
	}

	close(jobsChan)
	wg.Wait()

	checkExposures(results)

	return results
}

func (e *Extractor) extractFile(filename string) Result {
	c, err := LoadCapture(filename, e.MaskColor)
	if err != nil {
		return Result{Capture: c, Err: err}
	}
	m, err := e.Extract(c.Image)
	if err != nil {
		err = fmt.Errorf("extract '%s': %w", filename, err)
	}
	return Result{Capture: c, Metrics: m, Err: err}
}

// checkExposures warns if the batch mixes exposures, since MaxIntensity
// is then not comparable across it.
func checkExposures(results []Result) {
	var first *Exposure
	for _, r := range results {
		if r.Exposure == nil {
			continue
		}
		if first == nil {
			first = r.Exposure
		} else if r.Exposure.EV != first.EV {
			log.Printf("warning: %s has EV %d, others have EV %d; intensities will not compare\n",
				r.Filename, r.Exposure.EV, first.EV)
		}
	}
}
