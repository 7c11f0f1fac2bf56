// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/hsic/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	t.Parallel()

	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 3}} {
		_, err := matrix.NewDense(dims[0], dims[1])
		assert.ErrorIs(t, err, matrix.ErrInvalidDimensions, "dims %v", dims)
	}
}

func TestDense_AtSetBounds(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 2, 3)
	require.NoError(t, m.Set(1, 2, 4.5))
	assert.Equal(t, 4.5, MustAt(t, m, 1, 2))

	_, err := m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
}

func TestFromRows(t *testing.T) {
	t.Parallel()

	m, err := matrix.FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	r, c := m.Shape()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 6.0, MustAt(t, m, 2, 1))

	_, err = matrix.FromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.FromRows(nil)
	assert.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.FromRows([][]float64{{1, math.Inf(1)}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	// Policy override admits non-finite values.
	_, err = matrix.FromRows([][]float64{{1, math.Inf(1)}}, matrix.WithNoValidateNaNInf())
	assert.NoError(t, err)
}

func TestNewDenseFrom_CopiesInput(t *testing.T) {
	t.Parallel()

	src := []float64{1, 2, 3, 4}
	m, err := matrix.NewDenseFrom(2, 2, src)
	require.NoError(t, err)
	src[0] = 100
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))

	_, err = matrix.NewDenseFrom(2, 3, src)
	assert.ErrorIs(t, err, matrix.ErrBadShape)
}

func TestNewColumn(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewColumn([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 4, m.Rows())
	assert.Equal(t, 1, m.Cols())
	assert.Equal(t, 3.0, MustAt(t, m, 2, 0))
}

func TestDense_CloneIndependent(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 9))
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))
	assert.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}

func TestDense_Row(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, row)
	_, err = m.Row(2)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_Induced(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	sub, err := m.Induced([]int{2, 0}, []int{1, 1})
	require.NoError(t, err)
	CompareClose(t, sub, NewFilledDense(t, 2, 2, []float64{8, 8, 2, 2}), 0, 0)

	_, err = m.Induced([]int{3}, []int{0})
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_PermuteSymmetric(t *testing.T) {
	t.Parallel()

	A := RandSymmetric(t, 5, 7)
	perm := []int{3, 0, 4, 1, 2}
	P, err := A.PermuteSymmetric(perm)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			assert.Equal(t, MustAt(t, A, perm[i], perm[j]), MustAt(t, P, i, j))
		}
	}
	require.NoError(t, matrix.ValidateSymmetric(P, 0))

	// Into variant writes the same values into a reusable buffer.
	dst := MustDense(t, 5, 5)
	require.NoError(t, A.PermuteSymmetricInto(dst, perm))
	CompareClose(t, dst, P, 0, 0)

	_, err = A.PermuteSymmetric([]int{0, 0, 1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrBadPermutation)
	assert.ErrorIs(t, A.PermuteSymmetricInto(MustDense(t, 4, 4), perm), matrix.ErrDimensionMismatch)
	_, err = MustDense(t, 2, 3).PermuteSymmetric([]int{0, 1})
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestDense_PermuteRows(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 3, 2, []float64{1, 2, 3, 4, 5, 6})
	p, err := m.PermuteRows([]int{2, 0, 1})
	require.NoError(t, err)
	CompareClose(t, p, NewFilledDense(t, 3, 2, []float64{5, 6, 1, 2, 3, 4}), 0, 0)

	_, err = m.PermuteRows([]int{0, 1})
	assert.ErrorIs(t, err, matrix.ErrBadPermutation)
}

func TestDense_DoApply(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	var visited int
	m.Do(func(i, j int, v float64) bool {
		visited++
		return v < 2
	})
	assert.Equal(t, 2, visited, "Do stops when the callback returns false")

	require.NoError(t, m.Apply(func(i, j int, v float64) float64 { return v * 10 }))
	assert.Equal(t, 40.0, MustAt(t, m, 1, 1))

	err := m.Apply(func(i, j int, v float64) float64 { return math.Inf(1) })
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}
