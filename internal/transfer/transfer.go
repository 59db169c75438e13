// Package transfer copies pixels from a flat RGB888 buffer into a raster
// sink, either on the calling goroutine or split across a fixed set of
// workers by row.
package transfer

import (
	"sync"

	"github.com/mynameisevan3/PPMToBMP/internal/ir"
)

// Sink receives one RGB write per coordinate. Implementations must allow
// concurrent calls for coordinates in different rows.
type Sink interface {
	SetPixelRGB(x, y int, r, g, b uint8)
}

// Serial writes every pixel of src into dst, rows top to bottom and
// columns left to right. src must satisfy ir.FlatRaster's invariants and
// dst must cover src's dimensions; neither is checked here.
func Serial(src *ir.FlatRaster, dst Sink) {
	copyRows(src, dst, 0, src.Height)
}

// Parallel performs the same copy as Serial with rows split into workers
// contiguous blocks (see Partition). Each non-empty block runs on its own
// goroutine and Parallel returns once all of them are done.
func Parallel(src *ir.FlatRaster, dst Sink, workers int) {
	if src.Width == 0 || src.Height == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, r := range Partition(src.Height, workers) {
		if r.Len() == 0 {
			continue
		}
		wg.Add(1)
		go func(r RowRange) {
			defer wg.Done()
			copyRows(src, dst, r.Start, r.End)
		}(r)
	}
	wg.Wait()
}

// Run dispatches to Serial or Parallel according to mode.
func Run(src *ir.FlatRaster, dst Sink, mode Mode) {
	if mode.IsParallel() {
		Parallel(src, dst, mode.Workers())
		return
	}
	Serial(src, dst)
}

// copyRows is the per-pixel loop shared by both modes. Everything it
// declares is local to the calling goroutine.
func copyRows(src *ir.FlatRaster, dst Sink, y0, y1 int) {
	width := src.Width
	pix := src.Pixels
	for y := y0; y < y1; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * ir.BytesPerPixel
			dst.SetPixelRGB(x, y, pix[i], pix[i+1], pix[i+2])
		}
	}
}
