package bmp

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mynameisevan3/PPMToBMP/internal/fsx"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	headerSize     = fileHeaderSize + infoHeaderSize

	// 72 DPI expressed in pixels per meter
	pixelsPerMeter = 2835
)

// fileHeader is BITMAPFILEHEADER.
type fileHeader struct {
	Type      [2]byte
	Size      uint32
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32
}

// infoHeader is BITMAPINFOHEADER.
type infoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPixelsPerM     int32
	YPixelsPerM     int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

func (m *Image) headers() (fileHeader, infoHeader) {
	imageSize := uint32(len(m.pix))
	fh := fileHeader{
		Type:    [2]byte{'B', 'M'},
		Size:    headerSize + imageSize,
		OffBits: headerSize,
	}
	ih := infoHeader{
		Size:        infoHeaderSize,
		Width:       int32(m.width),
		Height:      int32(m.height),
		Planes:      1,
		BitCount:    Depth,
		SizeImage:   imageSize,
		XPixelsPerM: pixelsPerMeter,
		YPixelsPerM: pixelsPerMeter,
	}
	return fh, ih
}

// Encode writes the image as an uncompressed 24-bit BMP.
func (m *Image) Encode(w io.Writer) error {
	fh, ih := m.headers()
	if err := binary.Write(w, binary.LittleEndian, &fh); err != nil {
		return fmt.Errorf("writing file header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, &ih); err != nil {
		return fmt.Errorf("writing info header: %w", err)
	}
	if _, err := w.Write(m.pix); err != nil {
		return fmt.Errorf("writing pixel array: %w", err)
	}
	return nil
}

// WriteFile encodes the image to path. The file is replaced atomically
// and compressed with zstd when path ends in ".zst".
func (m *Image) WriteFile(path string, opts fsx.WriteOptions) error {
	return fsx.WriteFile(path, opts, m.Encode)
}
