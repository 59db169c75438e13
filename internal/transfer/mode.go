package transfer

import "fmt"

// MaxWorkers bounds the worker count accepted from user input.
const MaxWorkers = 1024

// Mode selects between the serial and parallel transfer paths.
// The zero value is serial.
type Mode struct {
	parallel bool
	workers  int
}

// SerialMode returns the single-goroutine mode.
func SerialMode() Mode {
	return Mode{}
}

// ParallelMode returns a mode that splits rows across workers goroutines.
// workers < 1 is raised to 1.
func ParallelMode(workers int) Mode {
	if workers < 1 {
		workers = 1
	}
	return Mode{parallel: true, workers: workers}
}

// ModeFromCores maps the command-line core count onto a Mode: 0 selects
// the serial baseline, n > 0 selects n parallel workers. 0 never means
// "all available cores".
func ModeFromCores(cores int) (Mode, error) {
	switch {
	case cores < 0:
		return Mode{}, fmt.Errorf("core count must not be negative, got %d", cores)
	case cores > MaxWorkers:
		return Mode{}, fmt.Errorf("core count %d exceeds maximum %d", cores, MaxWorkers)
	case cores == 0:
		return SerialMode(), nil
	default:
		return ParallelMode(cores), nil
	}
}

// IsParallel reports whether the mode uses the parallel path.
func (m Mode) IsParallel() bool {
	return m.parallel
}

// Workers returns the number of workers; 1 for serial.
func (m Mode) Workers() int {
	if !m.parallel {
		return 1
	}
	return m.workers
}

func (m Mode) String() string {
	if !m.parallel {
		return "serial"
	}
	return fmt.Sprintf("parallel(%d)", m.workers)
}
