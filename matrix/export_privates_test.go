// SPDX-License-Identifier: MIT

package matrix

// Test bridge (white-box) for matrix_test.
//
// Purpose:
//   - Swap the row-block kernel to inject failures or count invocations.
//   - Expose the resolved worker count of an option set.
//
// Compiled only with the package tests; invisible in production builds.

// RowKernelFunc is the signature of the row-block kernel.
type RowKernelFunc func(a, b *Dense, dst []float64, item WorkItem)

// SetRowKernelForTest replaces the kernel and returns a restore func.
// Tests that call it must not run in parallel with each other.
func SetRowKernelForTest(fn RowKernelFunc) (restore func()) {
	prev := rowKernel
	rowKernel = fn

	return func() { rowKernel = prev }
}

// DenseRowKernel is the production kernel, for wrapping in tests.
func DenseRowKernel(a, b *Dense, dst []float64, item WorkItem) { mulRows(a, b, dst, item) }

// ResolvedThreads returns the worker count Multiply would use for opts.
func ResolvedThreads(opts ...Option) int { return gatherOptions(opts...).threads }

// FailureKind exposes the metric label chosen for err.
func FailureKind(err error) string { return failureKind(err) }
