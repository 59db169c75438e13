package bmp

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	gobmp "github.com/sergeymakinen/go-bmp"

	"github.com/mynameisevan3/PPMToBMP/internal/fsx"
)

// Info contains the header fields of a BMP file.
type Info struct {
	FileSize    uint32
	DataOffset  uint32
	HeaderSize  uint32
	Width       int
	Height      int
	TopDown     bool
	BitCount    int
	Compression uint32
	ImageSize   uint32
}

// ReadInfo parses the file and info headers from r.
func ReadInfo(r io.Reader) (*Info, error) {
	var fh fileHeader
	if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if fh.Type != [2]byte{'B', 'M'} {
		return nil, errors.New("not a BMP file (bad BM magic)")
	}

	var ih infoHeader
	if err := binary.Read(r, binary.LittleEndian, &ih); err != nil {
		return nil, fmt.Errorf("reading info header: %w", err)
	}

	info := &Info{
		FileSize:    fh.Size,
		DataOffset:  fh.OffBits,
		HeaderSize:  ih.Size,
		Width:       int(ih.Width),
		Height:      int(ih.Height),
		BitCount:    int(ih.BitCount),
		Compression: ih.Compression,
		ImageSize:   ih.SizeImage,
	}
	if info.Height < 0 {
		info.Height = -info.Height
		info.TopDown = true
	}
	return info, nil
}

// Decode reads a BMP of any depth go-bmp understands.
func Decode(r io.Reader) (image.Image, error) {
	img, err := gobmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding BMP: %w", err)
	}
	return img, nil
}

// DecodeConfig returns the dimensions and color model of a BMP.
func DecodeConfig(r io.Reader) (image.Config, error) {
	cfg, err := gobmp.DecodeConfig(r)
	if err != nil {
		return image.Config{}, fmt.Errorf("decoding BMP header: %w", err)
	}
	return cfg, nil
}

// DecodeFile reads a BMP from disk; ".zst" files are decompressed first.
func DecodeFile(path string) (image.Image, error) {
	rc, err := fsx.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Decode(bufio.NewReader(rc))
}
