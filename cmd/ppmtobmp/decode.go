package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mynameisevan3/PPMToBMP/internal/config"
	"github.com/mynameisevan3/PPMToBMP/internal/fsx"
	"github.com/mynameisevan3/PPMToBMP/internal/ppm"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a PPM to raw RGB888 (raw output + JSON sidecar)",
	Args:  cobra.NoArgs,
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringP("input", "i", "", "Input PPM file")
	decodeCmd.Flags().StringP("output", "o", "", "Output raw RGB888 file (.zst is compressed)")
	decodeCmd.MarkFlagRequired("input")
	decodeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(decodeCmd)
}

type rawMeta struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// sidecarPath maps "x.raw" and "x.raw.zst" to "x.json".
func sidecarPath(outputPath string) string {
	return strings.TrimSuffix(fsx.TrimCompressed(outputPath), ".raw") + ".json"
}

func runDecode(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	eff, err := config.Merge(settings, config.CLIArgs{})
	if err != nil {
		return err
	}

	flat, err := ppm.DecodeFile(inputPath)
	if err != nil {
		return err
	}

	opts := fsx.WriteOptions{ZstdLevel: eff.ZstdLevel}
	if err := fsx.WriteBytes(outputPath, flat.Pixels, opts); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	// Write JSON sidecar
	meta := rawMeta{
		Width:  flat.Width,
		Height: flat.Height,
		Format: "RGB888",
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	metaPath := sidecarPath(outputPath)
	if err := fsx.WriteBytes(metaPath, metaJSON, fsx.WriteOptions{}); err != nil {
		return fmt.Errorf("writing sidecar: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Decoded %dx%d → raw RGB888 (%d bytes)\n", flat.Width, flat.Height, len(flat.Pixels))
	fmt.Fprintf(out, "Sidecar: %s\n", metaPath)
	return nil
}
