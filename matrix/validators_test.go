// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/threadmul/matrix"
	"github.com/stretchr/testify/require"
)

func TestValidateNotNil(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)

	var typedNil *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(typedNil), matrix.ErrNilMatrix)

	var otherNil *boxed
	require.ErrorIs(t, matrix.ValidateNotNil(otherNil), matrix.ErrNilMatrix)

	require.NoError(t, matrix.ValidateNotNil(mustDense(t, 1, 1)))
	require.NoError(t, matrix.ValidateNotNil(&boxed{mustDense(t, 1, 1)}))
	require.NoError(t, matrix.ValidateNotNil(phantom{r: 1, c: 1}))
}

func TestValidateShape(t *testing.T) {
	require.NoError(t, matrix.ValidateShape(mustDense(t, 0, 3)))
	require.NoError(t, matrix.ValidateShape(phantom{r: 2, c: 0}))
	require.ErrorIs(t, matrix.ValidateShape(phantom{r: -1, c: 2}), matrix.ErrBadShape)
	require.ErrorIs(t, matrix.ValidateShape(phantom{r: 2, c: -1}), matrix.ErrBadShape)
}

func TestValidateMulCompatible(t *testing.T) {
	for _, tc := range []struct {
		name    string
		a, b    matrix.Matrix
		wantErr error
	}{
		{"1x2 * 2x2", mustDense(t, 1, 2), mustDense(t, 2, 2), nil},
		{"1x2 * 1x2", mustDense(t, 1, 2), mustDense(t, 1, 2), matrix.ErrDimensionMismatch},
		{"0x3 * 3x0", mustDense(t, 0, 3), mustDense(t, 3, 0), nil},
		{"4x0 * 0x5", mustDense(t, 4, 0), mustDense(t, 0, 5), nil},
		{"3x0 * 1x3", mustDense(t, 3, 0), mustDense(t, 1, 3), matrix.ErrDimensionMismatch},
		{"generic operand", hide{mustDense(t, 2, 3)}, mustDense(t, 3, 1), nil},
		{"nil a", nil, mustDense(t, 2, 2), matrix.ErrNilMatrix},
		{"nil b", mustDense(t, 2, 2), nil, matrix.ErrNilMatrix},
		{"typed nil b", mustDense(t, 2, 2), (*boxed)(nil), matrix.ErrNilMatrix},
		{"negative rows a", phantom{r: -1, c: 2}, mustDense(t, 2, 3), matrix.ErrBadShape},
		{"negative b", mustDense(t, 2, 3), phantom{r: 3, c: -2}, matrix.ErrBadShape},
		{"negative both", phantom{r: -2, c: -3}, phantom{r: -3, c: -2}, matrix.ErrBadShape},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateMulCompatible(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestDimensionMismatchCarriesShapes checks the payload of the typed error.
func TestDimensionMismatchCarriesShapes(t *testing.T) {
	err := matrix.ValidateMulCompatible(mustDense(t, 1, 2), mustDense(t, 3, 4))

	var dme *matrix.DimensionMismatchError
	require.ErrorAs(t, err, &dme)
	require.Equal(t, matrix.Shape{Rows: 1, Cols: 2}, dme.A)
	require.Equal(t, matrix.Shape{Rows: 3, Cols: 4}, dme.B)
	require.Contains(t, err.Error(), "1x2")
	require.Contains(t, err.Error(), "3x4")
}

func TestValidateThreadCount(t *testing.T) {
	for _, n := range []int{1, 2, 64} {
		require.NoError(t, matrix.ValidateThreadCount(n))
	}
	for _, n := range []int{0, -1, -100} {
		err := matrix.ValidateThreadCount(n)
		require.ErrorIs(t, err, matrix.ErrInvalidThreadCount)

		var ite *matrix.InvalidThreadCountError
		require.ErrorAs(t, err, &ite)
		require.Equal(t, n, ite.Value)
	}
}
