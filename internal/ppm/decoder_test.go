package ppm

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	pnm "github.com/jbuchbinder/gopnm"

	"github.com/mynameisevan3/PPMToBMP/internal/fsx"
)

func encodePPM(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := pnm.Encode(&buf, img, pnm.PPM); err != nil {
		t.Fatalf("pnm.Encode: %v", err)
	}
	return buf.Bytes()
}

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 40), G: uint8(y * 60), B: uint8(x + y), A: 0xff})
		}
	}
	return img
}

func TestDecodeEncoded(t *testing.T) {
	data := encodePPM(t, testImage(4, 3))

	flat, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if flat.Width != 4 || flat.Height != 3 {
		t.Fatalf("dimensions %dx%d, want 4x3", flat.Width, flat.Height)
	}
	if err := flat.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			i := (y*4 + x) * 3
			want := []byte{uint8(x * 40), uint8(y * 60), uint8(x + y)}
			if got := flat.Pixels[i : i+3]; !bytes.Equal(got, want) {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDecodePlain(t *testing.T) {
	src := "P3\n# two pixels\n2 1\n255\n255 0 0   0 0 255\n"
	flat, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []byte{255, 0, 0, 0, 0, 255}
	if !bytes.Equal(flat.Pixels, want) {
		t.Errorf("pixels %v, want %v", flat.Pixels, want)
	}
}

func TestDecodeRejectsOtherFormats(t *testing.T) {
	inputs := map[string]string{
		"pgm":   "P5\n1 1\n255\n\x00",
		"bmp":   "BM\x00\x00",
		"empty": "",
	}
	for name, in := range inputs {
		_, err := Decode(strings.NewReader(in))
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: expected ErrMalformed, got %v", name, err)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	data := encodePPM(t, testImage(8, 8))
	_, err := Decode(bytes.NewReader(data[:len(data)/2]))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "missing.ppm"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestDecodeFileCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.ppm.zst")
	if err := fsx.WriteBytes(path, encodePPM(t, testImage(5, 2)), fsx.WriteOptions{}); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	flat, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if flat.Width != 5 || flat.Height != 2 {
		t.Errorf("dimensions %dx%d, want 5x2", flat.Width, flat.Height)
	}
}

func TestFromImageGeneric(t *testing.T) {
	img := image.NewRGBA64(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA64{R: 0x1234, G: 0xABCD, B: 0xFFFF, A: 0xFFFF})

	flat, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if want := []byte{0x12, 0xAB, 0xFF}; !bytes.Equal(flat.Pixels, want) {
		t.Errorf("pixels %x, want %x", flat.Pixels, want)
	}
}

func TestFromImageTooLarge(t *testing.T) {
	// image.Uniform reports a huge bounds rectangle without allocating
	img := image.NewUniform(color.Black)
	if _, err := FromImage(img); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestConfig(t *testing.T) {
	cfg, err := Config(bytes.NewReader(encodePPM(t, testImage(7, 9))))
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Width != 7 || cfg.Height != 9 {
		t.Errorf("config %dx%d, want 7x9", cfg.Width, cfg.Height)
	}
}

func TestDecodeOversizedHeader(t *testing.T) {
	inputs := map[string]string{
		"huge raw":   "P6\n3000000000 3000000000\n255\nabc",
		"wide plain": "P3\n70000 1\n255\n0 0 0\n",
		"tall raw":   "P6\n1 65536\n255\n\x00\x00\x00",
	}
	for name, in := range inputs {
		_, err := Decode(strings.NewReader(in))
		if !errors.Is(err, ErrTooLarge) {
			t.Errorf("%s: expected ErrTooLarge, got %v", name, err)
		}
	}
}

func TestDecodeNegativeDimensions(t *testing.T) {
	_, err := Decode(strings.NewReader("P6\n-1 4\n255\n"))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestDecodeScalesMaxval(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []byte
	}{
		{"plain maxval 15", "P3\n1 1\n15\n15 0 7\n", []byte{255, 0, 119}},
		{"plain maxval 1000", "P3\n1 1\n1000\n1000 500 0\n", []byte{255, 128, 0}},
		{"plain maxval 65535", "P3\n1 1\n65535\n65535 32768 0\n", []byte{255, 128, 0}},
		{"raw maxval 100", "P6\n1 1\n100\n\x64\x32\x00", []byte{255, 128, 0}},
		{"raw maxval 255", "P6\n1 1\n255\n\x01\x80\xfe", []byte{1, 128, 254}},
	}
	for _, tc := range cases {
		flat, err := Decode(strings.NewReader(tc.in))
		if err != nil {
			t.Errorf("%s: Decode: %v", tc.name, err)
			continue
		}
		if !bytes.Equal(flat.Pixels, tc.want) {
			t.Errorf("%s: pixels %v, want %v", tc.name, flat.Pixels, tc.want)
		}
	}
}

func TestDecodeRaw16Bit(t *testing.T) {
	src := "P6\n2 2\n65535\n" +
		"\xff\xff\x80\x00\x00\x00" + "\x00\x00\x01\x01\xff\xff" +
		"\x12\xff\x00\x00\x00\x00" + "\x7f\xff\x7f\xff\x7f\xff"
	flat, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if flat.Width != 2 || flat.Height != 2 {
		t.Fatalf("dimensions %dx%d, want 2x2", flat.Width, flat.Height)
	}
	want := []byte{
		255, 128, 0, 0, 1, 255,
		19, 0, 0, 127, 127, 127,
	}
	if !bytes.Equal(flat.Pixels, want) {
		t.Errorf("pixels %v, want %v", flat.Pixels, want)
	}
}

func TestDecodeRaw16BitTruncated(t *testing.T) {
	_, err := Decode(strings.NewReader("P6\n2 1\n1023\n\x03\xff\x00\x00"))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}
