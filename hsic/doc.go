// SPDX-License-Identifier: MIT

// Package hsic implements kernel independence testing with the
// Hilbert-Schmidt Independence Criterion.
//
// Given paired samples X (m×p) and Y (m×q), Test evaluates H0: X and Y are
// independent. Gaussian Gram matrices K and L are built by package kernel;
// the statistic is
//
//	Biased:   HSIC_b = sum(Kc∘Lc)/m²,   Kc = HKH, Lc = HLH, H = I − J/m
//	Unbiased: HSIC_u = [tr(K̃L̃) + 1ᵀK̃1·1ᵀL̃1/((m−1)(m−2)) − 2·1ᵀK̃L̃1/(m−2)] / (m(m−3))
//
// with K̃, L̃ the Gram matrices with zeroed diagonals.
//
// Methods:
//
//   - pearson   : exact mean, variance and skewness of the permutation
//     distribution (PermutationMoments) matched by a Pearson type III tail.
//     No resampling. Default.
//   - gamma     : two-moment Gamma fit of Gretton et al. Legacy.
//   - perm      : permutes the centered Kc; biased only.
//   - perm-gram : permutes the raw L and recomputes HSIC; both estimators.
//   - perm-brute: permutes the rows of Y and rebuilds L; both estimators.
//
// Permutation p-values are (1 + #{boot > stat})/(1 + nboot). Resampling runs
// on a worker pool; the ensemble depends only on Config.Seed.
//
// The RV coefficient (RV) is provided as a linear-dependence companion.
//
// Example:
//
//	cfg := hsic.DefaultConfig()
//	cfg.Method = hsic.PermGram
//	res, err := hsic.Test(ctx, x, y, cfg)
//	if err != nil {
//		// errors.Is(err, hsic.ErrInsufficientSamples) …
//	}
//	fmt.Println(res.Statistic, res.PValue)
package hsic
