// SPDX-License-Identifier: MIT

package hsic

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hsic/matrix"
	"gonum.org/v1/gonum/stat/distuv"
)

const opPearson = "hsic.Pearson"

// MinPearsonSamples is the smallest m accepted by the pearson method.
const MinPearsonSamples = 4

// normalSkew is the |skewness| below which the Pearson type III tail is
// replaced by the standard normal tail.
const normalSkew = 1e-8

// PearsonPValue returns the upper-tail probability P(Z ≥ z) of a
// standardized Pearson type III variable with skewness skew.
//
// Implementation:
//   - skew > 0: Z = G − 2/γ with G ~ Gamma(shape 4/γ², rate 2/γ).
//   - skew < 0: Z = 2/|γ| − G with G ~ Gamma(shape 4/γ², rate 2/|γ|).
//   - |skew| < 1e-8: Z ~ N(0, 1).
//
// Complexity: O(1).
func PearsonPValue(z, skew float64) float64 {
	if math.Abs(skew) < normalSkew {
		return distuv.UnitNormal.Survival(z)
	}
	a := math.Abs(skew)
	g := distuv.Gamma{Alpha: 4 / (skew * skew), Beta: 2 / a}
	if skew > 0 {
		return g.Survival(z + 2/a)
	}

	return g.CDF(-z + 2/a)
}

// pearsonTest standardizes T = sum(Kc∘Lc) with the exact permutation moments
// and maps it through the Pearson type III tail. The returned statistic is the
// biased HSIC T/m².
func pearsonTest(K, L matrix.Matrix) (stat, p float64, mom Moments, err error) {
	m := K.Rows()
	if m < MinPearsonSamples {
		return 0, 0, Moments{}, hsicErrorf(opPearson,
			fmt.Errorf("%w: pearson needs m >= %d, got %d", ErrInsufficientSamples, MinPearsonSamples, m))
	}
	Kc, err := matrix.DoubleCenter(K)
	if err != nil {
		return 0, 0, Moments{}, invalidInput(opPearson, err)
	}
	Lc, err := matrix.DoubleCenter(L)
	if err != nil {
		return 0, 0, Moments{}, invalidInput(opPearson, err)
	}
	T, err := matrix.HadamardSum(Kc, Lc)
	if err != nil {
		return 0, 0, Moments{}, invalidInput(opPearson, err)
	}
	if mom, err = PermutationMoments(Kc, Lc); err != nil {
		return 0, 0, Moments{}, hsicErrorf(opPearson, err)
	}

	fm := float64(m)
	stat = T / (fm * fm)
	if mom.Variance <= 0 {
		return stat, 1, mom, nil
	}
	z := (T - mom.Mean) / math.Sqrt(mom.Variance)

	return stat, clampUnit(PearsonPValue(z, mom.Skewness)), mom, nil
}

// clampUnit limits p to [0, 1].
func clampUnit(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 1
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
