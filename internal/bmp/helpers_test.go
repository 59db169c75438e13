package bmp

import (
	"image"
	"testing"

	"github.com/mynameisevan3/PPMToBMP/internal/ir"
)

func assertPixels(t *testing.T, img image.Image, want *ir.FlatRaster) {
	t.Helper()
	b := img.Bounds()
	if b.Dx() != want.Width || b.Dy() != want.Height {
		t.Fatalf("decoded %dx%d, want %dx%d", b.Dx(), b.Dy(), want.Width, want.Height)
	}
	for y := 0; y < want.Height; y++ {
		for x := 0; x < want.Width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*want.Width + x) * 3
			got := [3]byte{byte(r >> 8), byte(g >> 8), byte(bl >> 8)}
			exp := [3]byte{want.Pixels[i], want.Pixels[i+1], want.Pixels[i+2]}
			if got != exp {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, exp)
			}
		}
	}
}
