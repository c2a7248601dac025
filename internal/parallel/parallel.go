// Package parallel splits independent work items (image planes) across
// goroutines and waits for all of them before returning.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Upper bound on goroutines per call.
	MinWork    int  // Minimum elements touched per goroutine to pay for its start-up.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinWork:    1 << 14,
	}
}

// Sequential returns a Config that always runs on the calling goroutine.
func Sequential() Config {
	return Config{}
}

// chunkSize returns how many items each goroutine takes, or 0 for sequential.
func (cfg Config) chunkSize(n, cost int) int {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2 {
		return 0
	}
	cost = max(cost, 1)
	perWorker := (n + cfg.NumWorkers - 1) / cfg.NumWorkers
	minItems := (cfg.MinWork + cost - 1) / cost
	size := max(perWorker, minItems, 1)
	if size >= n {
		return 0
	}
	return size
}

// For executes f(i) for i in [0, n). cost is the number of elements each item
// touches; it decides whether splitting is worth it. Falls back to sequential
// execution if parallelism is disabled or the work is too small.
func For(n, cost int, f func(i int), cfg Config) {
	chunk := cfg.chunkSize(n, cost)
	if chunk == 0 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForBatch runs f over every (batch, channel) pair of an NCHW tensor.
// cost is the plane size (H*W of the output).
func ForBatch(batch, channels, cost int, f func(b, c int), cfg Config) {
	if channels == 0 {
		return
	}
	For(batch*channels, cost, func(k int) {
		f(k/channels, k%channels)
	}, cfg)
}
