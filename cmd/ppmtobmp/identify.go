package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mynameisevan3/PPMToBMP/internal/bmp"
	"github.com/mynameisevan3/PPMToBMP/internal/fsx"
	"github.com/mynameisevan3/PPMToBMP/internal/ppm"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect a PPM or BMP file",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := fsx.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:       %s\n", path)
	if fsx.IsCompressed(path) {
		if fi, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "Stored:     zstd, %d bytes\n", fi.Size())
		}
	}

	switch {
	case bytes.HasPrefix(data, []byte("BM")):
		info, err := bmp.ReadInfo(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		cfg, err := bmp.DecodeConfig(bufio.NewReader(bytes.NewReader(data)))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		fmt.Fprintf(out, "Format:     BMP\n")
		fmt.Fprintf(out, "Dimensions: %d x %d\n", cfg.Width, cfg.Height)
		fmt.Fprintf(out, "Bit depth:  %d\n", info.BitCount)
		fmt.Fprintf(out, "Row order:  %s\n", rowOrder(info.TopDown))
		fmt.Fprintf(out, "Header:     %d bytes, pixel data at offset %d\n", info.HeaderSize, info.DataOffset)
	default:
		cfg, err := ppm.Config(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		fmt.Fprintf(out, "Format:     PPM (%s)\n", data[:2])
		fmt.Fprintf(out, "Dimensions: %d x %d\n", cfg.Width, cfg.Height)
	}
	fmt.Fprintf(out, "File size:  %d bytes (%.1f MB)\n", len(data), float64(len(data))/(1024*1024))
	return nil
}

func rowOrder(topDown bool) string {
	if topDown {
		return "top-down"
	}
	return "bottom-up"
}
