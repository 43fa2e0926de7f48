// Package matrix multiplies dense float64 matrices on a bounded set of
// goroutines.
//
// The package provides:
//
//   - Dense, a row-major float64 matrix; empty shapes (0×N, N×0) are legal.
//   - Multiply, which validates shapes, splits the output rows into balanced
//     contiguous blocks and computes each block on its own worker.
//   - MultiplyF64, the same operation over [][]float64 with an explicit
//     worker count.
//
// The product is exact with respect to a sequential triple loop: every cell
// is summed left to right over the inner dimension, so the worker count
// changes the wall time and nothing else.
//
//	a, _ := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
//	b, _ := matrix.NewDenseFromRows([][]float64{{5, 6}, {7, 8}})
//	c, err := matrix.Multiply(a, b, matrix.WithThreads(2))
//	// c = [[19, 22], [43, 50]]
//
// Errors are sentinels (ErrDimensionMismatch, ErrInvalidThreadCount,
// ErrAllocationFailure, ErrWorkerFailure, ...) matched with errors.Is; the
// typed errors carry the offending shapes and values for errors.As.
package matrix
