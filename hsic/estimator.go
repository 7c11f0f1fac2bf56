// SPDX-License-Identifier: MIT

package hsic

import (
	"fmt"

	"github.com/katalvlaran/hsic/matrix"
	"gonum.org/v1/gonum/floats"
)

const (
	opStatistic         = "hsic.Statistic"
	opStatisticCentered = "hsic.StatisticCentered"
)

// MinUnbiasedSamples is the smallest m accepted by the unbiased estimator.
const MinUnbiasedSamples = 4

// Statistic computes HSIC from two raw Gram matrices.
//
// Implementation:
//   - Biased: Kc = HKH, Lc = HLH; return sum(Kc∘Lc)/m².
//   - Unbiased: K̃, L̃ = K, L with zero diagonal;
//     return [tr(K̃L̃) + 1ᵀK̃1·1ᵀL̃1/((m−1)(m−2)) − 2·1ᵀK̃L̃1/(m−2)] / (m(m−3)).
//
// Behavior highlights:
//   - Exactly symmetric: Statistic(K, L, e) == Statistic(L, K, e).
//   - Inputs are never modified.
//
// Errors:
//   - ErrInvalidInput (nil, non-square, shape mismatch, NaN/Inf).
//   - ErrInsufficientSamples (unbiased with m < 4).
//   - ErrUnsupportedConfiguration (unknown estimator).
//
// Complexity:
//   - Time O(m²), Space O(m²).
func Statistic(K, L matrix.Matrix, est Estimator) (float64, error) {
	if err := validateGramPair(opStatistic, K, L); err != nil {
		return 0, err
	}
	g, err := newGramStatistic(opStatistic, K, est)
	if err != nil {
		return 0, err
	}

	return g.eval(L)
}

// StatisticCentered computes the biased HSIC from already double-centered
// matrices: sum(Kc∘Lc)/m². The unbiased estimator needs the raw diagonals and
// is rejected.
//
// Errors: ErrInvalidInput, ErrUnsupportedConfiguration.
// Complexity: O(m²) time, O(1) space.
func StatisticCentered(Kc, Lc matrix.Matrix, est Estimator) (float64, error) {
	if est != Biased {
		return 0, hsicErrorf(opStatisticCentered,
			fmt.Errorf("%w: %s estimator needs raw Gram matrices", ErrUnsupportedConfiguration, est))
	}
	if err := validateGramPair(opStatisticCentered, Kc, Lc); err != nil {
		return 0, err
	}
	s, err := matrix.HadamardSum(Kc, Lc)
	if err != nil {
		return 0, invalidInput(opStatisticCentered, err)
	}
	m := float64(Kc.Rows())

	return s / (m * m), nil
}

// validateGramPair checks shape and finiteness of a (K, L) pair.
func validateGramPair(op string, K, L matrix.Matrix) error {
	if err := matrix.ValidateGramPair(K, L); err != nil {
		return invalidInput(op, err)
	}
	if err := matrix.ValidateFinite(K); err != nil {
		return invalidInput(op, err)
	}
	if err := matrix.ValidateFinite(L); err != nil {
		return invalidInput(op, err)
	}

	return nil
}

// gramStatistic caches the K-side terms of an estimator so that resampling
// loops only pay for the L side on every iteration.
type gramStatistic struct {
	op  string
	est Estimator
	m   int

	kc *matrix.Dense // Biased: HKH

	kz     *matrix.Dense // Unbiased: K with zero diagonal
	kzRows []float64     // Unbiased: K̃1
	kzSum  float64       // Unbiased: 1ᵀK̃1
}

// newGramStatistic prepares the K side. K is assumed validated.
func newGramStatistic(op string, K matrix.Matrix, est Estimator) (*gramStatistic, error) {
	g := &gramStatistic{op: op, est: est, m: K.Rows()}
	var err error
	switch est {
	case Biased:
		if g.kc, err = matrix.DoubleCenter(K); err != nil {
			return nil, invalidInput(op, err)
		}
	case Unbiased:
		if g.m < MinUnbiasedSamples {
			return nil, hsicErrorf(op, fmt.Errorf("%w: unbiased estimator needs m >= %d, got %d",
				ErrInsufficientSamples, MinUnbiasedSamples, g.m))
		}
		if g.kz, g.kzRows, g.kzSum, err = zeroDiagonalSums(K); err != nil {
			return nil, invalidInput(op, err)
		}
	default:
		return nil, hsicErrorf(op, fmt.Errorf("%w: %s", ErrUnsupportedConfiguration, est))
	}

	return g, nil
}

// eval returns the estimator value for the pair (K, L).
// L must be square with the same order as K.
func (g *gramStatistic) eval(L matrix.Matrix) (float64, error) {
	m := float64(g.m)
	if g.est == Biased {
		Lc, err := matrix.DoubleCenter(L)
		if err != nil {
			return 0, invalidInput(g.op, err)
		}
		s, err := matrix.HadamardSum(g.kc, Lc)
		if err != nil {
			return 0, invalidInput(g.op, err)
		}

		return s / (m * m), nil
	}

	lz, lzRows, lzSum, err := zeroDiagonalSums(L)
	if err != nil {
		return 0, invalidInput(g.op, err)
	}
	tr, err := matrix.HadamardSum(g.kz, lz) // tr(K̃L̃) for symmetric operands
	if err != nil {
		return 0, invalidInput(g.op, err)
	}
	cross := floats.Dot(g.kzRows, lzRows) // 1ᵀK̃L̃1
	h := tr + g.kzSum*lzSum/((m-1)*(m-2)) - 2*cross/(m-2)

	return h / (m * (m - 3)), nil
}

// zeroDiagonalSums returns K̃ = K with zero diagonal, its row sums and total.
func zeroDiagonalSums(K matrix.Matrix) (*matrix.Dense, []float64, float64, error) {
	kz, err := matrix.ZeroDiagonal(K)
	if err != nil {
		return nil, nil, 0, err
	}
	rows, err := matrix.RowSums(kz)
	if err != nil {
		return nil, nil, 0, err
	}

	return kz, rows, floats.Sum(rows), nil
}
