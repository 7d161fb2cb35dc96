package images

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/phototools/internal/validation"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the size of the conversion pool
const DefaultWorkers = 4

// ErrSourceNotFound is returned when the input folder does not exist
var ErrSourceNotFound = errors.New("input folder does not exist")

// Options selects what a batch run converts
type Options struct {
	Input   string `validate:"required"`
	Output  string `validate:"required"`
	Quality int
}

// Summary aggregates a batch run
type Summary struct {
	Options Options
	Total   int
	Success int
	Results []Result
}

// Converter runs batch conversions. Progress lines are written to Log by the
// goroutine that called Run; workers never touch it.
type Converter struct {
	Workers int
	Log     io.Writer
}

// NewConverter returns a converter with the default pool size
func NewConverter(log io.Writer) *Converter {
	return &Converter{
		Workers: DefaultWorkers,
		Log:     log,
	}
}

// Run converts every supported image in opts.Input into opts.Output.
// A failing file is counted and logged; it never stops the others.
func (c *Converter) Run(opts Options) (*Summary, error) {
	if err := validation.Struct(opts); err != nil {
		return nil, err
	}
	if err := ValidateQuality(opts.Quality); err != nil {
		return nil, err
	}

	summary := &Summary{Options: opts}

	info, err := os.Stat(opts.Input)
	if err != nil || !info.IsDir() {
		c.logf("Error: Input folder does not exist")
		return summary, fmt.Errorf("%w: %s", ErrSourceNotFound, opts.Input)
	}

	if err := os.MkdirAll(opts.Output, 0755); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}

	c.logf("Starting conversion...")

	files, err := ListSupported(opts.Input)
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		c.logf("No images found for conversion")
		return summary, nil
	}

	workers := c.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	slog.Info("Converting images", "input", opts.Input, "output", opts.Output, "files", len(files), "workers", workers, "quality", opts.Quality)

	results := make(chan Result, len(files))

	go func() {
		var g errgroup.Group
		g.SetLimit(workers)
		for _, name := range files {
			srcPath := filepath.Join(opts.Input, name)
			g.Go(func() error {
				results <- ConvertFile(srcPath, opts.Output, opts.Quality)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	for r := range results {
		summary.Total++
		if r.OK {
			summary.Success++
		} else {
			slog.Warn("Conversion failed", "file", r.Filename, "err", r.Err)
		}
		summary.Results = append(summary.Results, r)
		c.logf("%s", r.Message())
	}

	c.logf("Conversion completed! Successful: %d/%d", summary.Success, summary.Total)
	return summary, nil
}

func (c *Converter) logf(format string, args ...interface{}) {
	if c.Log == nil {
		return
	}
	fmt.Fprintf(c.Log, format+"\n", args...)
}
