// Package ppm decodes PPM files into flat RGB888 rasters.
package ppm

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	pnm "github.com/jbuchbinder/gopnm"

	"github.com/mynameisevan3/PPMToBMP/internal/fsx"
	"github.com/mynameisevan3/PPMToBMP/internal/ir"
)

var (
	// ErrMalformed is returned when the input is not a readable PPM image.
	ErrMalformed = errors.New("ppm: malformed image")
	// ErrTooLarge is returned when a dimension exceeds ir.MaxDimension.
	ErrTooLarge = errors.New("ppm: image dimensions too large")
)

const (
	plainMagic = "P3"
	rawMagic   = "P6"
)

// header is the part of a PPM preceding the samples.
type header struct {
	magic         string
	width, height int
	maxval        uint32
}

func (h header) String() string {
	return fmt.Sprintf("%s\n%d %d\n%d\n", h.magic, h.width, h.height, h.maxval)
}

// DecodeFile reads and decodes the PPM at path. Files ending in ".zst"
// are decompressed first.
func DecodeFile(path string) (*ir.FlatRaster, error) {
	rc, err := fsx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer rc.Close()

	flat, err := Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return flat, nil
}

// Decode reads a plain (P3) or raw (P6) PPM from r. Samples are scaled
// from 0..maxval to 0..255.
func Decode(r io.Reader) (*ir.FlatRaster, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	if h.magic == rawMagic && h.maxval > 0xFF {
		return decodeRaw16(br, h)
	}

	img, err := decodeSamples(br, h)
	if err != nil {
		return nil, err
	}
	return flatten(img, h.maxval)
}

// readHeader consumes the header and checks the dimensions before any
// pixel storage is allocated.
func readHeader(br *bufio.Reader) (header, error) {
	magic, err := checkMagic(br)
	if err != nil {
		return header{}, err
	}
	c, err := pnm.DecodeConfigPNM(br)
	if err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if c.Width < 0 || c.Height < 0 {
		return header{}, fmt.Errorf("%w: negative dimensions %dx%d", ErrMalformed, c.Width, c.Height)
	}
	if c.Width > ir.MaxDimension || c.Height > ir.MaxDimension {
		return header{}, fmt.Errorf("%w: %dx%d", ErrTooLarge, c.Width, c.Height)
	}
	return header{magic: magic, width: c.Width, height: c.Height, maxval: uint32(c.Maxval)}, nil
}

// decodeSamples hands the body to gopnm behind a re-serialized header,
// since the original one has already been consumed.
func decodeSamples(br *bufio.Reader, h header) (img image.Image, err error) {
	defer func() {
		if p := recover(); p != nil {
			img, err = nil, fmt.Errorf("%w: %v", ErrMalformed, p)
		}
	}()

	img, err = pnm.Decode(io.MultiReader(strings.NewReader(h.String()), br))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return img, nil
}

// decodeRaw16 reads big-endian two-byte samples. gopnm stores these in an
// 8-bit RGBA buffer and loses half the image, so they are read here.
func decodeRaw16(r io.Reader, h header) (*ir.FlatRaster, error) {
	flat := ir.NewFlatRaster(h.width, h.height)
	rowLen := h.width * ir.BytesPerPixel
	row := make([]byte, rowLen*2)
	for y := 0; y < h.height; y++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, y, err)
		}
		out := flat.Pixels[y*rowLen : (y+1)*rowLen]
		for i := range out {
			out[i] = scale(uint32(binary.BigEndian.Uint16(row[i*2:])), h.maxval)
		}
	}
	return flat, nil
}

// flatten converts gopnm's output, which holds samples as they appear in
// the file, into RGB888.
func flatten(img image.Image, maxval uint32) (*ir.FlatRaster, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.RGBA:
		flat := ir.NewFlatRaster(w, h)
		copyRGBX(flat.Pixels, src.Pix, src.Stride, w, h)
		if maxval != 0xFF {
			lut := scaleTable(maxval)
			for i, v := range flat.Pixels {
				flat.Pixels[i] = lut[v]
			}
		}
		return flat, nil
	case *image.RGBA64:
		flat := ir.NewFlatRaster(w, h)
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := src.RGBA64At(x, y)
				flat.Pixels[i] = scale(uint32(c.R), maxval)
				flat.Pixels[i+1] = scale(uint32(c.G), maxval)
				flat.Pixels[i+2] = scale(uint32(c.B), maxval)
				i += 3
			}
		}
		return flat, nil
	default:
		return FromImage(img)
	}
}

// scale maps v in 0..maxval to 0..255, rounding to nearest. Values above
// maxval saturate.
func scale(v, maxval uint32) byte {
	if v >= maxval {
		return 0xFF
	}
	return byte((v*0xFF + maxval/2) / maxval)
}

func scaleTable(maxval uint32) *[256]byte {
	var lut [256]byte
	for v := range lut {
		lut[v] = scale(uint32(v), maxval)
	}
	return &lut
}

// FromImage flattens a decoded image.Image into RGB888. Colors are taken
// from At, so samples wider than 8 bits keep their high byte; alpha, if
// any, is ignored.
func FromImage(img image.Image) (*ir.FlatRaster, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > ir.MaxDimension || h > ir.MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, w, h)
	}

	flat := ir.NewFlatRaster(w, h)
	dst := flat.Pixels

	switch src := img.(type) {
	case *image.RGBA:
		copyRGBX(dst, src.Pix, src.Stride, w, h)
	case *image.NRGBA:
		copyRGBX(dst, src.Pix, src.Stride, w, h)
	default:
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := img.At(x, y).RGBA()
				dst[i] = byte(r >> 8)
				dst[i+1] = byte(g >> 8)
				dst[i+2] = byte(bl >> 8)
				i += 3
			}
		}
	}
	return flat, nil
}

// copyRGBX drops the fourth byte of every pixel of a 4-channel buffer.
func copyRGBX(dst, src []byte, stride, w, h int) {
	for y := 0; y < h; y++ {
		row := src[y*stride : y*stride+w*4]
		out := dst[y*w*3 : (y+1)*w*3]
		for x := 0; x < w; x++ {
			out[x*3] = row[x*4]
			out[x*3+1] = row[x*4+1]
			out[x*3+2] = row[x*4+2]
		}
	}
}

// Config returns the dimensions of a PPM without decoding its pixels.
func Config(r io.Reader) (image.Config, error) {
	br := bufio.NewReader(r)
	if _, err := checkMagic(br); err != nil {
		return image.Config{}, err
	}
	cfg, _, err := image.DecodeConfig(br)
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return cfg, nil
}

// checkMagic accepts only the plain and raw PPM signatures; gopnm would
// also decode PBM and PGM.
func checkMagic(br *bufio.Reader) (string, error) {
	magic, err := br.Peek(2)
	if err != nil {
		return "", fmt.Errorf("%w: reading magic: %v", ErrMalformed, err)
	}
	switch m := string(magic); m {
	case plainMagic, rawMagic:
		return m, nil
	default:
		return "", fmt.Errorf("%w: magic %q is not P3 or P6", ErrMalformed, magic)
	}
}
