// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures and utilities for kernel tests.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/hsic/matrix"
	"github.com/stretchr/testify/require"
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the non-*Dense (fallback) paths.
type hide struct{ matrix.Matrix }

// MustDense ALLOCATES an r×c *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// NewFilledDense BUILDS an r×c *Dense from a row-major slice.
func NewFilledDense(t testing.TB, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err, "NewDenseFrom(%d,%d)", r, c)

	return m
}

// RandFilledDense RETURNS an r×c *Dense with entries in [-1,1) from a fixed seed.
func RandFilledDense(t testing.TB, r, c int, seed uint64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	vals := make([]float64, r*c)
	for k := range vals {
		vals[k] = 2*rng.Float64() - 1
	}

	return NewFilledDense(t, r, c, vals)
}

// RandSymmetric RETURNS an n×n symmetric *Dense with entries in [-1,1).
func RandSymmetric(t testing.TB, n int, seed uint64) *matrix.Dense {
	t.Helper()
	A := RandFilledDense(t, n, n, seed)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			v := MustAt(t, A, i, j)
			require.NoError(t, A.Set(j, i, v))
		}
	}

	return A
}

// MustAt READS m[i,j] or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// CompareClose ASSERTS AllClose(a, b, rtol, atol).
func CompareClose(t testing.TB, a, b matrix.Matrix, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, rtol, atol)
	require.NoError(t, err)
	require.True(t, ok, "AllClose=false (rtol=%g, atol=%g)\na=%v\nb=%v", rtol, atol, a, b)
}

// sliceClose ASSERTS |a[i]-b[i]| ≤ atol + rtol·|b[i]| for every i.
func sliceClose(t testing.TB, a, b []float64, rtol, atol float64) {
	t.Helper()
	require.Len(t, a, len(b))
	for i := range a {
		tol := atol + rtol*math.Abs(b[i])
		require.InDelta(t, b[i], a[i], tol, "index %d", i)
	}
}

// naiveMul is the textbook triple loop used as an oracle.
func naiveMul(t testing.TB, a, b matrix.Matrix) *matrix.Dense {
	t.Helper()
	out := MustDense(t, a.Rows(), b.Cols())
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < b.Cols(); j++ {
			var s float64
			for k := 0; k < a.Cols(); k++ {
				s += MustAt(t, a, i, k) * MustAt(t, b, k, j)
			}
			require.NoError(t, out.Set(i, j, s))
		}
	}

	return out
}
