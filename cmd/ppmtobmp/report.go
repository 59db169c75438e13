package main

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/mynameisevan3/PPMToBMP/internal/pipeline"
	"github.com/mynameisevan3/PPMToBMP/internal/transfer"
)

// reporter prints the convert command's progress and timing output.
type reporter struct {
	w       io.Writer
	display Display
}

func newReporter(w io.Writer, display Display) *reporter {
	return &reporter{w: w, display: display}
}

func (r *reporter) full() bool { return r.display == DisplayReport }

// intro prints the banner and has every worker check in once, so a full
// report shows the workers actually start before timing begins.
func (r *reporter) intro(name string, mode transfer.Mode) {
	if !r.full() {
		return
	}
	fmt.Fprintf(r.w, "\n   = = =  %s  = = =   \n\n", name)

	if !mode.IsParallel() {
		fmt.Fprintln(r.w, "Running Serial Baseline")
		return
	}

	n := mode.Workers()
	fmt.Fprintf(r.w, "Using %d Cores of Maximum %d Cores Available\nTesting - Report\n", n, runtime.GOMAXPROCS(0))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(r.w, "  Core %d of %d Reporting!\n", i, n)
		}()
	}
	wg.Wait()
}

func (r *reporter) stage(s pipeline.Stage) {
	if !r.full() {
		return
	}
	switch s {
	case pipeline.StageDecode:
		fmt.Fprintln(r.w, "Initializing Image...")
	case pipeline.StageConvert:
		fmt.Fprintf(r.w, "Performing %s Operation...\n", appName)
	case pipeline.StageWrite:
		fmt.Fprintln(r.w, "Writing Image...")
	}
}

func (r *reporter) timings(t pipeline.Timings) {
	if !r.full() {
		fmt.Fprintf(r.w, "%s\n", seconds(t.Operation))
		return
	}
	fmt.Fprint(r.w, "Operation Complete!\n\n")
	fmt.Fprintf(r.w, "=== Timing Data ===\n")
	fmt.Fprintf(r.w, "  Image In:\t\t%s\n", seconds(t.ImageIn))
	fmt.Fprintf(r.w, "  Operation:\t\t%s\n", seconds(t.Operation))
	fmt.Fprintf(r.w, "  Image Out:\t\t%s\n", seconds(t.ImageOut))
	fmt.Fprintf(r.w, "  Overhead:\t\t%s\n", seconds(t.Overhead))
	fmt.Fprintf(r.w, "  Total Job Time:\t%s\n\n", seconds(t.Total))
}

// seconds formats d with seven decimal digits.
func seconds(d time.Duration) string {
	return fmt.Sprintf("%0.7f", d.Seconds())
}
