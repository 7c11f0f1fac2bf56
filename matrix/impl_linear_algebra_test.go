// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/hsic/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsTight = 1e-12

func TestAddSub_FastEqualsFallback(t *testing.T) {
	t.Parallel()

	A := RandFilledDense(t, 4, 3, 1)
	B := RandFilledDense(t, 4, 3, 2)

	sum, err := matrix.Add(A, B)
	require.NoError(t, err)
	sumSlow, err := matrix.Add(hide{A}, B)
	require.NoError(t, err)
	CompareClose(t, sum, sumSlow, 0, 0)

	diff, err := matrix.Sub(sum, B)
	require.NoError(t, err)
	CompareClose(t, diff, A, 0, epsTight)

	_, err = matrix.Add(A, MustDense(t, 3, 4))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(nil, A)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMul_AgainstNaive(t *testing.T) {
	t.Parallel()

	A := RandFilledDense(t, 5, 3, 3)
	B := RandFilledDense(t, 3, 4, 4)
	want := naiveMul(t, A, B)

	got, err := matrix.Mul(A, B)
	require.NoError(t, err)
	CompareClose(t, got, want, 0, epsTight)

	gotSlow, err := matrix.Mul(hide{A}, hide{B})
	require.NoError(t, err)
	CompareClose(t, gotSlow, want, 0, epsTight)

	_, err = matrix.Mul(A, A)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestTransposeScaleHadamard(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	At, err := matrix.Transpose(A)
	require.NoError(t, err)
	CompareClose(t, At, NewFilledDense(t, 3, 2, []float64{1, 4, 2, 5, 3, 6}), 0, 0)
	AtSlow, err := matrix.Transpose(hide{A})
	require.NoError(t, err)
	CompareClose(t, AtSlow, At, 0, 0)

	S, err := matrix.Scale(A, -2)
	require.NoError(t, err)
	assert.Equal(t, -12.0, MustAt(t, S, 1, 2))

	H, err := matrix.Hadamard(A, A)
	require.NoError(t, err)
	CompareClose(t, H, NewFilledDense(t, 2, 3, []float64{1, 4, 9, 16, 25, 36}), 0, 0)

	hs, err := matrix.HadamardSum(A, A)
	require.NoError(t, err)
	assert.Equal(t, 91.0, hs)
	hsSlow, err := matrix.HadamardSum(hide{A}, A)
	require.NoError(t, err)
	assert.Equal(t, hs, hsSlow)
}

func TestMatVecTrace(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	y, err := matrix.MatVec(A, []float64{1, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1}, y)
	ySlow, err := matrix.MatVec(hide{A}, []float64{1, -1})
	require.NoError(t, err)
	assert.Equal(t, y, ySlow)

	_, err = matrix.MatVec(A, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	tr, err := matrix.Trace(A)
	require.NoError(t, err)
	assert.Equal(t, 5.0, tr)
	_, err = matrix.Trace(MustDense(t, 2, 3))
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestHadamardSumEqualsTraceOfProductForSymmetric(t *testing.T) {
	t.Parallel()

	A := RandSymmetric(t, 6, 11)
	B := RandSymmetric(t, 6, 12)
	AB, err := matrix.Mul(A, B)
	require.NoError(t, err)
	tr, err := matrix.Trace(AB)
	require.NoError(t, err)
	hs, err := matrix.HadamardSum(A, B)
	require.NoError(t, err)
	assert.InDelta(t, tr, hs, 1e-12)
}
