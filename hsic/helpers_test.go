// SPDX-License-Identifier: MIT

package hsic_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/hsic/kernel"
	"github.com/katalvlaran/hsic/matrix"
	"github.com/stretchr/testify/require"
)

// Frozen regression data: X=[1,2,3,4], Y=[1,1,2,6], σx = σy = 1.
var (
	frozenX = []float64{1, 2, 3, 4}
	frozenY = []float64{1, 1, 2, 6}
)

const (
	frozenBiased   = 0.100790283313007
	frozenUnbiased = 0.0504660153799836
	frozenMean     = 1.23021083386701
	frozenVariance = 0.0747471762330176
	frozenSkewness = -0.0347928140996016
	frozenT        = 1.6126445330081
	frozenPearsonP = 0.0800835800013682
)

// column builds an m×1 sample.
func column(t testing.TB, v ...float64) *matrix.Dense {
	t.Helper()
	x, err := matrix.NewColumn(v)
	require.NoError(t, err)
	return x
}

// gram builds an RBF Gram matrix with a fixed bandwidth.
func gram(t testing.TB, sigma float64, x *matrix.Dense) *matrix.Dense {
	t.Helper()
	K, err := kernel.RBF(sigma, x)
	require.NoError(t, err)
	return K
}

// centered returns HGH.
func centered(t testing.TB, G *matrix.Dense) *matrix.Dense {
	t.Helper()
	Gc, err := matrix.DoubleCenter(G)
	require.NoError(t, err)
	return Gc
}

// normalSample draws an m×d standard-normal sample from a seeded PCG stream.
func normalSample(t testing.TB, m, d int, seed uint64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 0x5eed))
	data := make([]float64, m*d)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	x, err := matrix.NewDenseFrom(m, d, data)
	require.NoError(t, err)
	return x
}

// randomSymmetric draws an n×n symmetric matrix, optionally double-centered.
func randomSymmetric(t testing.TB, n int, seed uint64, center bool) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 7))
	A, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := rng.NormFloat64()
			require.NoError(t, A.Set(i, j, v))
			require.NoError(t, A.Set(j, i, v))
		}
	}
	if center {
		return centered(t, A)
	}
	return A
}

// permutedStatistic returns Σᵢⱼ A[i,j]·B[π(i),π(j)].
func permutedStatistic(A, B *matrix.Dense, perm []int) float64 {
	n := A.Rows()
	a, b := A.RawData(), B.RawData()
	var s float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s += a[i*n+j] * b[perm[i]*n+perm[j]]
		}
	}
	return s
}

// bruteMoments enumerates all n! permutations (Heap's algorithm).
func bruteMoments(A, B *matrix.Dense) (mean, variance, skew float64) {
	n := A.Rows()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	var vals []float64
	c := make([]int, n)
	vals = append(vals, permutedStatistic(A, B, perm))
	for i := 0; i < n; {
		if c[i] < i {
			if i%2 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[c[i]], perm[i] = perm[i], perm[c[i]]
			}
			vals = append(vals, permutedStatistic(A, B, perm))
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	var m2, m3 float64
	for _, v := range vals {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	variance = m2 / float64(len(vals))
	skew = m3 / float64(len(vals)) / math.Pow(variance, 1.5)
	return mean, variance, skew
}

// josseVariance is the closed-form permutation variance of tr(W1·W2) for
// double-centered W1, W2 (Kazi-Aoual et al.; Josse et al. 2008).
func josseVariance(W1, W2 *matrix.Dense) float64 {
	n := float64(W1.Rows())
	parts := func(W *matrix.Dense) (b, tau, tr2 float64) {
		tr, _ := matrix.Trace(W)
		tr2, _ = matrix.HadamardSum(W, W)
		b = tr * tr / tr2
		var sd float64
		for i := 0; i < W.Rows(); i++ {
			v, _ := W.At(i, i)
			sd += v * v
		}
		tau = (n - 1) / ((n - 3) * (n - 1 - b)) * (n*(n+1)*sd/tr2 - (n-1)*(b+2))
		return b, tau, tr2
	}
	bx, tx, t2x := parts(W1)
	by, ty, t2y := parts(W2)
	vRV := 2 * (n - 1 - bx) * (n - 1 - by) / ((n + 1) * (n - 1) * (n - 1) * (n - 2)) *
		(1 + (n-3)/(2*n*(n-1))*tx*ty)
	return vRV * t2x * t2y
}
