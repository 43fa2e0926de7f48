// Package threadmul multiplies dense float64 matrices across a bounded set
// of goroutines and returns exactly the product a sequential triple loop
// would compute.
//
// 🚀 What is in threadmul?
//
//   - matrix/       Dense matrices, the shape validator and the parallel
//     multiplication engine (Multiply, MultiplyF64)
//   - workerpool/   a persistent fork-join pool, selectable per call with
//     matrix.WithPool
//   - config/       YAML + THREADMUL_* environment settings for the tools
//   - cmd/matbench  sweep timings over sizes × {1, N} workers and verify
//     every worker count against the sequential product
//
// ✨ Guarantees
//
//   - The worker count changes wall time only: every result cell is summed
//     over the inner dimension in ascending order whatever the partition.
//   - Shape errors, invalid worker counts and allocation failures are
//     reported before any worker starts; a failing worker fails the call
//     and no partial product escapes.
//   - Inputs are never mutated; independent calls may run concurrently.
//
// Quick start:
//
//	a, _ := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
//	b, _ := matrix.NewDenseFromRows([][]float64{{5, 6}, {7, 8}})
//	c, err := matrix.Multiply(a, b, matrix.WithThreads(2))
//	// c = [[19, 22], [43, 50]]
package threadmul
