package ir

import "fmt"

// MaxDimension is the largest width or height a raster may have. Both
// PPM sources and BMP sinks are limited to 16-bit dimensions.
const MaxDimension = 0xFFFF

// BytesPerPixel is the size of one RGB888 pixel.
const BytesPerPixel = 3

// FlatRaster is the intermediate representation passed between the PPM
// decoder and the pixel transfer engine. Pixels are stored as interleaved
// R,G,B bytes (3 bytes per pixel, row-major, top row first).
type FlatRaster struct {
	Width  int
	Height int
	Pixels []byte // len = Width * Height * 3
}

// NewFlatRaster allocates a zeroed raster of the given size.
func NewFlatRaster(width, height int) *FlatRaster {
	return &FlatRaster{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*BytesPerPixel),
	}
}

// Validate checks the dimension and buffer-length invariants.
func (f *FlatRaster) Validate() error {
	if f.Width < 0 || f.Height < 0 {
		return fmt.Errorf("negative dimensions %dx%d", f.Width, f.Height)
	}
	if f.Width > MaxDimension || f.Height > MaxDimension {
		return fmt.Errorf("dimensions %dx%d exceed %d", f.Width, f.Height, MaxDimension)
	}
	expected := f.Width * f.Height * BytesPerPixel
	if len(f.Pixels) != expected {
		return fmt.Errorf("expected %d bytes for %dx%d RGB888, got %d", expected, f.Width, f.Height, len(f.Pixels))
	}
	return nil
}
