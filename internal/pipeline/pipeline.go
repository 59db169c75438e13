package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mynameisevan3/PPMToBMP/internal/bmp"
	"github.com/mynameisevan3/PPMToBMP/internal/fsx"
	"github.com/mynameisevan3/PPMToBMP/internal/ir"
	"github.com/mynameisevan3/PPMToBMP/internal/ppm"
	"github.com/mynameisevan3/PPMToBMP/internal/transfer"
)

// Options controls a single PPM→BMP conversion.
type Options struct {
	InputPath  string           // PPM to read (".zst" is decompressed)
	OutputPath string           // BMP to write (".zst" is compressed)
	Mode       transfer.Mode    // serial or parallel(n)
	Write      fsx.WriteOptions // output compression and permissions
	Observer   func(Stage)      // optional: called as each stage begins
	Logger     *slog.Logger     // optional: defaults to slog.Default()
}

// Timings are the wall-clock durations of each phase. Overhead is whatever
// part of Total is not covered by the other three.
type Timings struct {
	ImageIn   time.Duration // decode + allocate
	Operation time.Duration // pixel transfer only
	ImageOut  time.Duration // encode + write
	Overhead  time.Duration
	Total     time.Duration
}

// Result holds the outcome of a pipeline run.
type Result struct {
	Width   int
	Height  int
	Mode    transfer.Mode
	Timings Timings
}

// Stage names a pipeline phase.
type Stage string

const (
	StageDecode   Stage = "decode"
	StageAllocate Stage = "allocate"
	StageConvert  Stage = "convert"
	StageWrite    Stage = "write"
)

// StageError records which phase failed.
type StageError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// FailedStage returns the stage of a *StageError in err's chain, or "".
func FailedStage(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// Run executes the full pipeline: decode → allocate → convert → write.
func Run(opts Options) (*Result, error) {
	log := opts.logger()
	jobStart := time.Now()

	// 1. Decode PPM
	opts.notify(StageDecode)
	flat, err := ppm.DecodeFile(opts.InputPath)
	if err != nil {
		return nil, &StageError{Stage: StageDecode, Path: opts.InputPath, Err: err}
	}
	log.Debug("decoded input", "path", opts.InputPath, "width", flat.Width, "height", flat.Height)

	return run(flat, opts, jobStart)
}

// RunRaster is Run for a raster that is already in memory; its decode time
// is not counted.
func RunRaster(flat *ir.FlatRaster, opts Options) (*Result, error) {
	if err := flat.Validate(); err != nil {
		return nil, &StageError{Stage: StageDecode, Err: err}
	}
	return run(flat, opts, time.Now())
}

func run(flat *ir.FlatRaster, opts Options, jobStart time.Time) (*Result, error) {
	log := opts.logger()
	imageInStart := jobStart

	// 2. Allocate BMP
	opts.notify(StageAllocate)
	img, err := bmp.New(flat.Width, flat.Height, bmp.Depth)
	if err != nil {
		return nil, &StageError{Stage: StageAllocate, Err: err}
	}
	defer img.Release()
	imageInEnd := time.Now()

	// 3. Transfer pixels
	opts.notify(StageConvert)
	opStart := time.Now()
	transfer.Run(flat, img, opts.Mode)
	opEnd := time.Now()
	log.Debug("converted", "mode", opts.Mode.String(), "duration", opEnd.Sub(opStart))

	// 4. Write BMP
	opts.notify(StageWrite)
	imageOutStart := time.Now()
	if err := img.WriteFile(opts.OutputPath, opts.Write); err != nil {
		return nil, &StageError{Stage: StageWrite, Path: opts.OutputPath, Err: err}
	}
	imageOutEnd := time.Now()
	log.Debug("wrote output", "path", opts.OutputPath, "duration", imageOutEnd.Sub(imageOutStart))

	t := Timings{
		ImageIn:   imageInEnd.Sub(imageInStart),
		Operation: opEnd.Sub(opStart),
		ImageOut:  imageOutEnd.Sub(imageOutStart),
		Total:     time.Since(jobStart),
	}
	t.Overhead = t.Total - t.ImageIn - t.Operation - t.ImageOut

	return &Result{
		Width:   flat.Width,
		Height:  flat.Height,
		Mode:    opts.Mode,
		Timings: t,
	}, nil
}

func (o Options) notify(s Stage) {
	if o.Observer != nil {
		o.Observer(s)
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
