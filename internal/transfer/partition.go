package transfer

// RowRange is the half-open row interval [Start, End) owned by one worker.
type RowRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r RowRange) Len() int {
	return r.End - r.Start
}

// Partition splits rows [0, rows) into exactly workers contiguous,
// non-overlapping ranges in ascending order. Sizes differ by at most one:
// the first rows%workers ranges get the extra row, the same assignment
// OpenMP's static schedule makes. When workers exceeds rows the trailing
// ranges are empty. workers < 1 is treated as 1.
func Partition(rows, workers int) []RowRange {
	if workers < 1 {
		workers = 1
	}
	if rows < 0 {
		rows = 0
	}

	base, extra := rows/workers, rows%workers
	ranges := make([]RowRange, workers)
	start := 0
	for i := range ranges {
		n := base
		if i < extra {
			n++
		}
		ranges[i] = RowRange{Start: start, End: start + n}
		start += n
	}
	return ranges
}
