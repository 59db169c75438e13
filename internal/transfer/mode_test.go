package transfer

import "testing"

func TestModeFromCores(t *testing.T) {
	m, err := ModeFromCores(0)
	if err != nil {
		t.Fatalf("ModeFromCores(0): %v", err)
	}
	if m.IsParallel() || m.Workers() != 1 || m.String() != "serial" {
		t.Errorf("ModeFromCores(0) = %v, want serial", m)
	}

	m, err = ModeFromCores(4)
	if err != nil {
		t.Fatalf("ModeFromCores(4): %v", err)
	}
	if !m.IsParallel() || m.Workers() != 4 || m.String() != "parallel(4)" {
		t.Errorf("ModeFromCores(4) = %v, want parallel(4)", m)
	}

	// one worker is still the parallel path
	m, _ = ModeFromCores(1)
	if !m.IsParallel() {
		t.Error("ModeFromCores(1) should select the parallel path")
	}

	for _, bad := range []int{-1, MaxWorkers + 1} {
		if _, err := ModeFromCores(bad); err == nil {
			t.Errorf("ModeFromCores(%d): expected error", bad)
		}
	}
}

func TestZeroModeIsSerial(t *testing.T) {
	var m Mode
	if m != SerialMode() {
		t.Error("zero Mode should equal SerialMode()")
	}
	if ParallelMode(0).Workers() != 1 {
		t.Error("ParallelMode(0) should clamp to one worker")
	}
}
