package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.NumWorkers = 4
	cfg.MinWork = 1

	var counter int64
	n := 1000

	For(n, 1, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForBatch(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinWork: 1}

	batch, channels := 4, 8
	results := make([][]bool, batch)
	for b := range results {
		results[b] = make([]bool, channels)
	}

	ForBatch(batch, channels, 100, func(b, c int) {
		results[b][c] = true
	}, cfg)

	for b := 0; b < batch; b++ {
		for c := 0; c < channels; c++ {
			if !results[b][c] {
				t.Errorf("Missing result at [%d][%d]", b, c)
			}
		}
	}
}

func TestForBatch_ZeroChannels(t *testing.T) {
	called := false
	ForBatch(3, 0, 10, func(_, _ int) { called = true }, DefaultConfig())
	if called {
		t.Error("ForBatch with zero channels should not call f")
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Sequential()

	order := make([]int, 0, 100)
	For(100, 1<<20, func(i int) {
		order = append(order, i) // safe: sequential config runs on this goroutine
	}, cfg)

	if len(order) != 100 {
		t.Fatalf("Expected 100 calls, got %d", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("sequential order broken at %d: got %d", i, v)
		}
	}
}

func TestChunkSize(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinWork: 1000}

	tests := []struct {
		name    string
		n, cost int
		want    int
	}{
		{"too little work", 3, 10, 0},
		{"split by workers", 8, 1000, 2},
		{"min work dominates", 8, 300, 4},
		{"single item", 1, 1 << 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.chunkSize(tt.n, tt.cost); got != tt.want {
				t.Errorf("chunkSize(%d, %d) = %d, want %d", tt.n, tt.cost, got, tt.want)
			}
		})
	}
}

func BenchmarkForBatch(b *testing.B) {
	cfg := DefaultConfig()
	batch, channels := 16, 64

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			ForBatch(batch, channels, 4096, func(bc, c int) {
				atomic.AddInt64(&sum, int64(bc*channels+c))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			ForBatch(batch, channels, 4096, func(bc, c int) {
				atomic.AddInt64(&sum, int64(bc*channels+c))
			}, Sequential())
		}
	})
}
