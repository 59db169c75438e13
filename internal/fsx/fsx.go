// Package fsx holds the file helpers shared by the decoders and encoders:
// atomic replace-writes and transparent zstd for ".zst" paths.
package fsx

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ZstdExt marks a path whose contents are zstd-compressed.
const ZstdExt = ".zst"

// IsCompressed reports whether path names a zstd-compressed file.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ZstdExt)
}

// TrimCompressed strips a trailing ".zst" so callers can inspect the inner
// extension.
func TrimCompressed(path string) string {
	if IsCompressed(path) {
		return path[:len(path)-len(ZstdExt)]
	}
	return path
}

// WriteOptions control how WriteFile stores its output.
type WriteOptions struct {
	// ZstdLevel is used when the destination ends in ".zst".
	// The zero value selects zstd.SpeedDefault.
	ZstdLevel zstd.EncoderLevel
	Perm      os.FileMode
}

// WriteFile atomically replaces path with whatever fn writes: fn writes to
// a temporary file in the same directory which is synced and renamed over
// path only if everything succeeded. A failed write never leaves a
// partial file behind.
func WriteFile(path string, opts WriteOptions, fn func(w io.Writer) error) error {
	if opts.Perm == 0 {
		opts.Perm = 0o644
	}
	if opts.ZstdLevel == 0 {
		opts.ZstdLevel = zstd.SpeedDefault
	}

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	bw := bufio.NewWriter(tmp)
	if IsCompressed(path) {
		zw, err := zstd.NewWriter(bw, zstd.WithEncoderLevel(opts.ZstdLevel))
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		if err := fn(zw); err != nil {
			zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("zstd close: %w", err)
		}
	} else if err := fn(bw); err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return err
	}
	if err := tmp.Chmod(opts.Perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	_ = syncDirBestEffort(dir)
	return nil
}

// WriteBytes is WriteFile for an in-memory payload.
func WriteBytes(path string, data []byte, opts WriteOptions) error {
	return WriteFile(path, opts, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// Open opens path for reading, decompressing ".zst" files on the fly.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !IsCompressed(path) {
		return f, nil
	}

	zr, err := zstd.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	return &zstdFile{Decoder: zr, f: f}, nil
}

// ReadFile reads the whole of path, decompressing ".zst" files.
func ReadFile(path string) ([]byte, error) {
	if !IsCompressed(path) {
		return os.ReadFile(path)
	}
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

type zstdFile struct {
	*zstd.Decoder
	f *os.File
}

func (z *zstdFile) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

func syncDirBestEffort(dir string) error {
	// directory fsync is not supported on windows
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
