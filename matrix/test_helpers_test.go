// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures and a reference multiply.
//   - Keep all fixture data finite unless a test explicitly needs NaN/Inf.

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/threadmul/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the snapshot path for non-Dense operands.
type hide struct{ matrix.Matrix }

// phantom reports an arbitrary shape and holds no data. Only usable when
// no element is ever read (cols == 0 or an early failure).
type phantom struct{ r, c int }

func (p phantom) Rows() int                     { return p.r }
func (p phantom) Cols() int                     { return p.c }
func (p phantom) At(i, j int) (float64, error)  { return 0, matrix.ErrOutOfRange }
func (p phantom) Set(i, j int, v float64) error { return matrix.ErrOutOfRange }
func (p phantom) Clone() matrix.Matrix          { return p }

// boxed is a pointer-receiver Matrix; (*boxed)(nil) is a typed nil that is
// not a *Dense.
type boxed struct{ matrix.Matrix }

// mustDense allocates an r×c *Dense or fails the test.
func mustDense(tb testing.TB, r, c int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(tb, err)

	return m
}

// mustRows builds a *Dense from literal rows or fails the test.
func mustRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(tb, err)

	return m
}

// mustRandom builds a seeded random r×c *Dense or fails the test.
func mustRandom(tb testing.TB, r, c int, seed int64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.RandomDense(r, c, seed)
	require.NoError(tb, err)

	return m
}

// referenceMultiply is the plain i→j→k triple loop every engine path must
// reproduce bit for bit.
func referenceMultiply(tb testing.TB, a, b *matrix.Dense) *matrix.Dense {
	tb.Helper()
	r, n := a.Shape()
	_, p := b.Shape()
	ad, bd := a.Data(), b.Data()
	out := make([]float64, r*p)
	var i, j, k int
	for i = 0; i < r; i++ {
		for j = 0; j < p; j++ {
			sum := 0.0
			for k = 0; k < n; k++ {
				sum += float64(ad[i*n+k] * bd[k*p+j])
			}
			out[i*p+j] = sum
		}
	}
	c, err := matrix.NewDenseFrom(r, p, out)
	require.NoError(tb, err)

	return c
}

// requireBitEqual asserts identical shapes and identical float64 bit patterns.
func requireBitEqual(tb testing.TB, want, got *matrix.Dense) {
	tb.Helper()
	require.NotNil(tb, got)
	wr, wc := want.Shape()
	gr, gc := got.Shape()
	require.Equal(tb, [2]int{wr, wc}, [2]int{gr, gc}, "shape")
	wd, gd := want.Data(), got.Data()
	for idx := range wd {
		if math.Float64bits(wd[idx]) != math.Float64bits(gd[idx]) {
			tb.Fatalf("element %d (%d,%d): want %v (%#x), got %v (%#x)",
				idx, idx/wc, idx%wc, wd[idx], math.Float64bits(wd[idx]), gd[idx], math.Float64bits(gd[idx]))
		}
	}
}
