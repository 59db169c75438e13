// Package bmp implements the 24-bit BMP raster that the transfer engine
// writes into, plus helpers to inspect BMP files.
package bmp

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/mynameisevan3/PPMToBMP/internal/ir"
)

// Depth is the only bit depth supported.
const Depth = 24

var (
	// ErrDimensions is returned for negative or over-large dimensions.
	ErrDimensions = errors.New("bmp: invalid dimensions")
	// ErrDepth is returned for bit depths other than 24.
	ErrDepth = errors.New("bmp: unsupported bit depth")
)

// Image holds a BMP pixel array exactly as it is laid out on disk:
// rows bottom-up, each pixel B,G,R, each row padded to a multiple of
// four bytes. Callers address pixels by top-down (x, y) coordinates.
//
// SetPixelRGB on distinct rows touches disjoint bytes, so rows may be
// filled from different goroutines without locking.
type Image struct {
	width  int
	height int
	stride int
	pix    []byte
}

var _ image.Image = (*Image)(nil)

// New allocates a zeroed (black) image.
func New(width, height, depth int) (*Image, error) {
	if depth != Depth {
		return nil, fmt.Errorf("%w: %d", ErrDepth, depth)
	}
	if width < 0 || height < 0 || width > ir.MaxDimension || height > ir.MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}

	stride := rowStride(width)
	// the file size field is 32 bits wide
	if uint64(stride)*uint64(height)+headerSize > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %dx%d exceeds the 4 GiB file size limit", ErrDimensions, width, height)
	}
	return &Image{
		width:  width,
		height: height,
		stride: stride,
		pix:    make([]byte, stride*height),
	}, nil
}

// rowStride is the padded size in bytes of one 24-bit row.
func rowStride(width int) int {
	return (width*3 + 3) &^ 3
}

func (m *Image) Width() int { return m.width }
func (m *Image) Height() int { return m.height }

// Stride returns the padded row size in bytes.
func (m *Image) Stride() int { return m.stride }

// PixelArray returns the raw bottom-up BGR pixel array.
func (m *Image) PixelArray() []byte { return m.pix }

// SetPixelRGB stores one pixel. Coordinates outside the image panic.
func (m *Image) SetPixelRGB(x, y int, r, g, b uint8) {
	i := m.offset(x, y)
	p := m.pix[i : i+3 : i+3]
	p[0] = b
	p[1] = g
	p[2] = r
}

// PixelRGB returns the pixel at (x, y).
func (m *Image) PixelRGB(x, y int) (r, g, b uint8) {
	i := m.offset(x, y)
	return m.pix[i+2], m.pix[i+1], m.pix[i]
}

func (m *Image) offset(x, y int) int {
	if uint(x) >= uint(m.width) || uint(y) >= uint(m.height) {
		panic(fmt.Sprintf("bmp: pixel (%d,%d) out of range %dx%d", x, y, m.width, m.height))
	}
	return (m.height-1-y)*m.stride + x*3
}

// Release drops the pixel storage. The image must not be used afterwards.
func (m *Image) Release() {
	m.pix = nil
	m.width, m.height = 0, 0
}

func (m *Image) ColorModel() color.Model { return color.RGBAModel }

func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.width, m.height) }

func (m *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(m.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := m.PixelRGB(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Opaque reports that every pixel is fully opaque.
func (m *Image) Opaque() bool { return true }
