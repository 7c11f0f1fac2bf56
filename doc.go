// Package hsic is a toolkit for kernel independence testing with the
// Hilbert-Schmidt Independence Criterion.
//
// Given paired samples X (m×dx) and Y (m×dy), it measures how far the joint
// distribution is from the product of its marginals, in the feature spaces
// of two RBF kernels, and turns that measure into a p-value for H0: X ⟂ Y.
//
// What is inside:
//
//	matrix/  : dense row-major matrices, centering, traces and validators
//	kernel/  : RBF Gram matrices and the median-distance bandwidth heuristic
//	resample/: seeded, worker-parallel permutation ensembles (ants pool)
//	hsic/    : biased/unbiased estimators, exact permutation moments,
//	           Pearson III / gamma / permutation nulls, RV coefficient
//	cmd/hsic : CLI over CSV samples with TOML config and zap logging
//
// Quick start:
//
//	res, err := hsic.Test(ctx, x, y, hsic.DefaultConfig())
//	if err != nil { ... }
//	fmt.Println(res.Statistic, res.PValue)
//
// Methods trade speed for exactness: pearson needs one O(m³) moment pass,
// gamma only O(m²), while perm, perm-gram and perm-brute draw nboot
// relabellings of Y (perm-brute rebuilds the Y kernel each time).
//
// See examples/ for runnable walkthroughs.
//
//	go get github.com/katalvlaran/hsic
package hsic
