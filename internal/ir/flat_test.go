package ir

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		f    FlatRaster
		ok   bool
	}{
		{"empty", FlatRaster{}, true},
		{"2x2", FlatRaster{Width: 2, Height: 2, Pixels: make([]byte, 12)}, true},
		{"zero width", FlatRaster{Width: 0, Height: 7}, true},
		{"short buffer", FlatRaster{Width: 2, Height: 2, Pixels: make([]byte, 11)}, false},
		{"long buffer", FlatRaster{Width: 1, Height: 1, Pixels: make([]byte, 4)}, false},
		{"negative", FlatRaster{Width: -1, Height: 1}, false},
		{"too wide", FlatRaster{Width: MaxDimension + 1, Height: 0}, false},
	}
	for _, tc := range cases {
		err := tc.f.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestNewFlatRaster(t *testing.T) {
	f := NewFlatRaster(3, 2)
	if len(f.Pixels) != 18 {
		t.Fatalf("expected 18 bytes, got %d", len(f.Pixels))
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
