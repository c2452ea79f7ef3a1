// Package parallel provides chunked loop parallelism for CPU kernels.
package parallel

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Config controls how For splits work across goroutines.
type Config struct {
	Enabled bool // run chunks concurrently
	Workers int  // goroutines used when Enabled
	MinWork int  // element count below which For runs inline
}

// DefaultConfig detects a worker count for this machine. Physical cores are
// preferred over hyperthreads because the kernels this package serves are
// memory bound. AXIAL_NUM_WORKERS overrides the detected value.
func DefaultConfig() Config {
	n := cpuid.CPU.PhysicalCores
	if n <= 0 || n > runtime.NumCPU() {
		n = runtime.NumCPU()
	}
	if s := os.Getenv("AXIAL_NUM_WORKERS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			n = v
		}
	}
	return Config{
		Enabled: n > 1,
		Workers: n,
		MinWork: 4096,
	}
}

// Scaled returns a copy of c with MinWork divided by itemCost, for loops
// whose iterations each cover itemCost elements of work.
func (c Config) Scaled(itemCost int) Config {
	if itemCost > 1 {
		c.MinWork = max(1, c.MinWork/itemCost)
	}
	return c
}

// For splits [0, n) into contiguous chunks and runs fn on each chunk from
// its own goroutine, returning when all chunks are done. Ranges below
// cfg.MinWork run inline on the calling goroutine.
//
// fn must be safe to call concurrently for disjoint ranges.
func For(n int, fn func(lo, hi int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinWork || cfg.Workers <= 1 {
		fn(0, n)
		return
	}

	workers := min(cfg.Workers, n)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
