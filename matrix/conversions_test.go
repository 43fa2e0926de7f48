// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/threadmul/matrix"
)

func TestMultiplyF64(t *testing.T) {
	x := [][]float64{{1, 2}, {3, 4}}
	y := [][]float64{{5, 6}, {7, 8}}

	for _, n := range []int{1, 2, 4} {
		got, err := matrix.MultiplyF64(x, y, n)
		require.NoError(t, err)
		require.Equal(t, [][]float64{{19, 22}, {43, 50}}, got)
	}

	// inputs stay untouched
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, x)
}

func TestMultiplyF64_Errors(t *testing.T) {
	_, err := matrix.MultiplyF64([][]float64{{1}}, [][]float64{{1}}, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidThreadCount)

	_, err = matrix.MultiplyF64([][]float64{{1, 2}, {3}}, [][]float64{{1}}, 1)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.MultiplyF64([][]float64{{1, 2}}, [][]float64{{1, 2}}, 2)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	// empty x is 0x0; y has one row
	_, err = matrix.MultiplyF64(nil, [][]float64{{1}}, 1)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMultiplyF64_Empty(t *testing.T) {
	got, err := matrix.MultiplyF64(nil, nil, 3)
	require.NoError(t, err)
	require.Empty(t, got)
}
