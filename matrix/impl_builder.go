// SPDX-License-Identifier: MIT

// Package matrix - builders for well-known and synthetic matrices.
//
// Purpose:
//   - Identity and Zeros back the identity and zero laws of Multiply.
//   - RandomDense produces reproducible operands for benchmarks and
//     thread-count comparisons: the same (rows, cols, seed) always yields the
//     same bits.
package matrix

import (
	"fmt"
	"math/rand"
)

// Identity returns the n×n identity matrix.
// Errors: ErrBadShape when n < 0.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("Identity(%d): %w", n, err)
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Zeros returns an r×c matrix of zeros. It is NewDense under a name that
// reads well at call sites.
func Zeros(rows, cols int) (*Dense, error) { return NewDense(rows, cols) }

// RandomDense returns an r×c matrix filled with uniform values in [0, 1)
// from a math/rand source seeded with seed. Fill order is row-major.
func RandomDense(rows, cols int, seed int64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("RandomDense(%d,%d): %w", rows, cols, err)
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range m.data {
		m.data[i] = rng.Float64()
	}

	return m, nil
}

// Ramp returns an r×c matrix whose element at flat index i is float64(i).
// Integer-valued products stay exact, so results can be checked by hand.
func Ramp(rows, cols int) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("Ramp(%d,%d): %w", rows, cols, err)
	}
	for i := range m.data {
		m.data[i] = float64(i)
	}

	return m, nil
}
