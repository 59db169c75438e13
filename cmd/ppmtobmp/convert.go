package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mynameisevan3/PPMToBMP/internal/config"
	"github.com/mynameisevan3/PPMToBMP/internal/fsx"
	"github.com/mynameisevan3/PPMToBMP/internal/pipeline"
	"github.com/mynameisevan3/PPMToBMP/internal/transfer"
)

const appName = "PPM To BMP"

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output> <cores> <display>",
	Short: "Convert a PPM image to a 24-bit BMP and report timing",
	Long: `Convert a PPM image to a 24-bit BMP and report timing.

  input    input .ppm file (.ppm.zst is decompressed)
  output   desired output filename .bmp (.bmp.zst is compressed)
  cores    number of cores to utilize for parallel operation,
           or zero for a serial baseline run
  display  0 for timing, 1 for full report`,
	Example: "  ppmtobmp convert input.ppm output.bmp 4 1",
	Args:    convertArgs,
	RunE:    runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

// Display selects how much convert prints.
type Display int

const (
	DisplayTiming Display = 0 // conversion time only
	DisplayReport Display = 1 // banner, worker check-in and all phase timings
)

type convertRequest struct {
	Input   string
	Output  string
	Mode    transfer.Mode
	Display Display
}

func convertArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 4 {
		return usageErrorf(cmd, "expected 4 arguments, got %d", len(args))
	}
	return nil
}

func parseConvertArgs(args []string) (convertRequest, error) {
	cores, err := strconv.Atoi(args[2])
	if err != nil {
		return convertRequest{}, fmt.Errorf("cores must be an integer, got %q", args[2])
	}
	mode, err := transfer.ModeFromCores(cores)
	if err != nil {
		return convertRequest{}, err
	}

	display, err := strconv.Atoi(args[3])
	if err != nil {
		return convertRequest{}, fmt.Errorf("display must be an integer, got %q", args[3])
	}
	if Display(display) != DisplayTiming && Display(display) != DisplayReport {
		return convertRequest{}, fmt.Errorf("display must be 0 or 1, got %d", display)
	}

	return convertRequest{
		Input:   args[0],
		Output:  args[1],
		Mode:    mode,
		Display: Display(display),
	}, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	req, err := parseConvertArgs(args)
	if err != nil {
		return usageErrorf(cmd, "%v", err)
	}
	eff, err := config.Merge(settings, config.CLIArgs{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	rep := newReporter(out, req.Display)
	rep.intro(appName, req.Mode)

	result, err := pipeline.Run(pipeline.Options{
		InputPath:  req.Input,
		OutputPath: req.Output,
		Mode:       req.Mode,
		Write:      fsx.WriteOptions{ZstdLevel: eff.ZstdLevel},
		Observer:   rep.stage,
	})
	if err != nil {
		if pipeline.FailedStage(err) == pipeline.StageDecode {
			fmt.Fprintln(os.Stderr, "Failed to Initialize Image")
		}
		return err
	}

	rep.timings(result.Timings)
	return nil
}
