// Package matrix_test provides benchmarks for Multiply across worker counts
// and execution paths, using deterministic random fill.
package matrix_test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/katalvlaran/threadmul/matrix"
	"github.com/katalvlaran/threadmul/workerpool"
)

// benchSizes are the square matrix sizes to benchmark.
var benchSizes = []int{64, 256, 512}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkR [][]float64
)

func benchThreads() []int {
	out := []int{1, 2, 4}
	if n := runtime.GOMAXPROCS(0); n > 4 {
		out = append(out, n)
	}

	return out
}

func BenchmarkMultiply(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		A := mustRandom(b, n, n, 1337)
		B := mustRandom(b, n, n, 4242)
		for _, threads := range benchThreads() {
			b.Run(fmt.Sprintf("n=%d/threads=%d", n, threads), func(b *testing.B) {
				b.SetBytes(int64(8 * n * n))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					m, err := matrix.Multiply(A, B, matrix.WithThreads(threads))
					if err != nil {
						b.Fatal(err)
					}
					sinkM = m
				}
			})
		}
	}
}

func BenchmarkMultiplyPooled(b *testing.B) {
	b.ReportAllocs()
	pool := workerpool.New(0)
	defer pool.Close()

	for _, n := range []int{16, 64, 256} {
		A := mustRandom(b, n, n, 11)
		B := mustRandom(b, n, n, 22)
		threads := pool.NumWorkers()
		b.Run(fmt.Sprintf("n=%d/spawn", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				m, err := matrix.Multiply(A, B, matrix.WithThreads(threads))
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
		b.Run(fmt.Sprintf("n=%d/pool", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				m, err := matrix.Multiply(A, B, matrix.WithThreads(threads), matrix.WithPool(pool))
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkMultiplyF64(b *testing.B) {
	b.ReportAllocs()
	x := mustRandom(b, 128, 128, 5).ToRows()
	y := mustRandom(b, 128, 128, 6).ToRows()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r, err := matrix.MultiplyF64(x, y, 4)
		if err != nil {
			b.Fatal(err)
		}
		sinkR = r
	}
}
