package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mynameisevan3/PPMToBMP/internal/config"
)

var rootCmd = &cobra.Command{
	Use:               "ppmtobmp",
	Short:             "Convert PPM images to 24-bit BMP, serially or across parallel workers",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

// settings is the file configuration loaded before any subcommand runs.
var settings = &config.File{}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML settings file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging on stderr")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{cmd: cmd, err: err}
	})
}

func loadSettings(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	f, err := config.Load(path)
	if err != nil {
		return err
	}
	settings = f

	verbose, _ := cmd.Flags().GetBool("verbose")
	eff, err := config.Merge(settings, config.CLIArgs{
		Verbose:    verbose,
		VerboseSet: cmd.Flags().Changed("verbose"),
	})
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if eff.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// usageError marks bad invocations; they print usage and exit 2.
type usageError struct {
	cmd *cobra.Command
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(cmd *cobra.Command, format string, args ...any) error {
	return &usageError{cmd: cmd, err: fmt.Errorf(format, args...)}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(os.Stderr, "error: %v\n\n", ue.err)
			ue.cmd.SetOut(os.Stderr)
			_ = ue.cmd.Usage()
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
