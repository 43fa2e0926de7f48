// SPDX-License-Identifier: MIT

package matrix

// MultiplyF64 multiplies two matrices given as slices of rows with exactly
// numThreads workers and returns the product as slices of rows.
//
// Unlike Multiply there is no implicit default: numThreads < 1 fails with
// ErrInvalidThreadCount. Pass DefaultThreads() for the available parallelism.
//
// Errors:
//   - ErrBadShape when x or y has ragged rows.
//   - Everything Multiply returns.
//
// Notes:
//   - A nil or empty slice is a 0×0 matrix, so multiplying an empty x by
//     anything with rows fails with ErrDimensionMismatch.
func MultiplyF64(x, y [][]float64, numThreads int) ([][]float64, error) {
	if err := ValidateThreadCount(numThreads); err != nil {
		return nil, matrixErrorf(opMultiplyF64, err)
	}
	a, err := NewDenseFromRows(x)
	if err != nil {
		return nil, matrixErrorf(opMultiplyF64, err)
	}
	b, err := NewDenseFromRows(y)
	if err != nil {
		return nil, matrixErrorf(opMultiplyF64, err)
	}
	c, err := Multiply(a, b, WithThreads(numThreads))
	if err != nil {
		return nil, matrixErrorf(opMultiplyF64, err)
	}

	return c.ToRows(), nil
}
