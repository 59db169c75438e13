package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mynameisevan3/PPMToBMP/internal/config"
	"github.com/mynameisevan3/PPMToBMP/internal/fsx"
	"github.com/mynameisevan3/PPMToBMP/internal/ir"
	"github.com/mynameisevan3/PPMToBMP/internal/pipeline"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode raw RGB888 data to BMP",
	Args:  cobra.NoArgs,
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringP("input", "i", "", "Input raw RGB888 file (.zst is decompressed)")
	encodeCmd.Flags().StringP("output", "o", "", "Output BMP file")
	encodeCmd.Flags().Int("width", 0, "Image width")
	encodeCmd.Flags().Int("height", 0, "Image height")
	encodeCmd.Flags().IntP("workers", "w", config.DefaultWorkers, "Parallel workers, 0 for serial (default from config)")
	encodeCmd.MarkFlagRequired("input")
	encodeCmd.MarkFlagRequired("output")
	encodeCmd.MarkFlagRequired("width")
	encodeCmd.MarkFlagRequired("height")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	workers, _ := cmd.Flags().GetInt("workers")

	eff, err := config.Merge(settings, config.CLIArgs{
		Workers:    workers,
		WorkersSet: cmd.Flags().Changed("workers"),
	})
	if err != nil {
		return usageErrorf(cmd, "%v", err)
	}

	pixels, err := fsx.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	flat := &ir.FlatRaster{Width: width, Height: height, Pixels: pixels}
	if err := flat.Validate(); err != nil {
		return err
	}

	result, err := pipeline.RunRaster(flat, pipeline.Options{
		OutputPath: outputPath,
		Mode:       eff.Mode,
		Write:      fsx.WriteOptions{ZstdLevel: eff.ZstdLevel},
	})
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Encoded %dx%d RGB888 → %s (%s, %ss)\n",
		result.Width, result.Height, outputPath, result.Mode, seconds(result.Timings.Operation))
	return nil
}
