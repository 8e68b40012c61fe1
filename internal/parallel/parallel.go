// Package parallel splits index ranges across goroutines with a fixed,
// reproducible partition.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Maximum number of worker goroutines.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 16,
	}
}

// Range is the half-open interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of items in r.
func (r Range) Len() int { return r.End - r.Start }

// Chunks partitions [0, n) into contiguous ranges, one per worker.
//
// The partition depends only on n and cfg, never on scheduling, so results
// reduced in chunk order are reproducible. A disabled config or a small n
// yields a single chunk; n <= 0 yields none.
func Chunks(n int, cfg Config) []Range {
	if n <= 0 {
		return nil
	}
	workers := cfg.NumWorkers
	if !cfg.Enabled || workers < 2 || n < 2*max(cfg.MinChunkSize, 1) {
		return []Range{{0, n}}
	}

	chunkSize := max((n+workers-1)/workers, cfg.MinChunkSize, 1)
	chunks := make([]Range, 0, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		chunks = append(chunks, Range{start, min(start+chunkSize, n)})
	}
	return chunks
}

// ForChunks runs f once per chunk of Chunks(n, cfg), each on its own
// goroutine, and waits for all of them. chunk is the chunk's position in
// the partition. A single chunk runs on the calling goroutine.
func ForChunks(n int, cfg Config, f func(chunk int, r Range)) {
	chunks := Chunks(n, cfg)
	if len(chunks) == 1 {
		f(0, chunks[0])
		return
	}

	var wg sync.WaitGroup
	for i, r := range chunks {
		wg.Add(1)
		go func(i int, r Range) {
			defer wg.Done()
			f(i, r)
		}(i, r)
	}
	wg.Wait()
}
