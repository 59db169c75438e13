// Package config loads the optional YAML settings file and merges it with
// command-line flags.
package config

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v2"

	"github.com/mynameisevan3/PPMToBMP/internal/transfer"
)

// Built-in defaults, used when neither a flag nor the file sets a value.
const (
	DefaultWorkers   = 0 // serial baseline
	DefaultZstdLevel = "default"
)

// File mirrors the YAML settings file.
type File struct {
	Workers   *int   `yaml:"workers"`
	ZstdLevel string `yaml:"zstd_level"`
	Verbose   *bool  `yaml:"verbose"`
}

// CLIArgs carries flag values together with whether they were given
// explicitly, so an explicit flag can override the file even when it
// equals the zero value.
type CLIArgs struct {
	Workers    int
	WorkersSet bool

	Verbose    bool
	VerboseSet bool
}

// Effective is the merged configuration consumed by the commands.
type Effective struct {
	Mode      transfer.Mode
	ZstdLevel zstd.EncoderLevel
	Verbose   bool
}

// Error reports a problem with the settings file.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %q: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Load reads the settings file at path. An empty path yields an empty File.
// Unknown keys are rejected.
func Load(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	if err := f.validate(); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return &f, nil
}

func (f *File) validate() error {
	if f.Workers != nil {
		if _, err := transfer.ModeFromCores(*f.Workers); err != nil {
			return fmt.Errorf("workers: %w", err)
		}
	}
	if f.ZstdLevel != "" {
		if _, err := parseZstdLevel(f.ZstdLevel); err != nil {
			return err
		}
	}
	return nil
}

// Merge applies the precedence flag > file > default.
func Merge(f *File, cli CLIArgs) (Effective, error) {
	if f == nil {
		f = &File{}
	}

	workers := DefaultWorkers
	if f.Workers != nil {
		workers = *f.Workers
	}
	if cli.WorkersSet {
		workers = cli.Workers
	}
	mode, err := transfer.ModeFromCores(workers)
	if err != nil {
		return Effective{}, err
	}

	levelName := DefaultZstdLevel
	if f.ZstdLevel != "" {
		levelName = f.ZstdLevel
	}
	level, err := parseZstdLevel(levelName)
	if err != nil {
		return Effective{}, err
	}

	verbose := false
	if f.Verbose != nil {
		verbose = *f.Verbose
	}
	if cli.VerboseSet {
		verbose = cli.Verbose
	}

	return Effective{Mode: mode, ZstdLevel: level, Verbose: verbose}, nil
}

func parseZstdLevel(s string) (zstd.EncoderLevel, error) {
	ok, level := zstd.EncoderLevelFromString(s)
	if !ok {
		return 0, fmt.Errorf("unknown zstd_level %q (want fastest, default, better or best)", s)
	}
	return level, nil
}
