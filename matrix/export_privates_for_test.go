// SPDX-License-Identifier: MIT

package matrix

// Test-Bridge (White-Box) for private kernels and the options snapshot.
//
// Purpose:
//   - Expose UNEXPORTED ew* micro-kernels and the resolved Options to matrix_test ONLY.
//   - Let tests compare the *Dense fast path with the generic Matrix fallback
//     without widening the production API.
//
// Build Policy:
//   - The _test.go suffix keeps this file out of non-test builds.
//
// AI-Hints:
//   - If a private helper changes signature, mirror the change here once, not across many tests.

// EwBroadcastSubCols_TestOnly exposes ewBroadcastSubCols.
func EwBroadcastSubCols_TestOnly(X Matrix, colMeans []float64) (*Dense, error) {
	return ewBroadcastSubCols(X, colMeans)
}

// EwBroadcastSubRows_TestOnly exposes ewBroadcastSubRows.
func EwBroadcastSubRows_TestOnly(X Matrix, rowMeans []float64) (*Dense, error) {
	return ewBroadcastSubRows(X, rowMeans)
}

// EwBroadcastCenter_TestOnly exposes ewBroadcastCenter.
func EwBroadcastCenter_TestOnly(X Matrix, rowMeans, colMeans []float64, grand float64) (*Dense, error) {
	return ewBroadcastCenter(X, rowMeans, colMeans, grand)
}

// Marginals_TestOnly exposes marginals.
func Marginals_TestOnly(X Matrix) (rowSums, colSums []float64, err error) {
	return marginals(X)
}

// OptionsSnapshot is a read-only view of the resolved Options.
type OptionsSnapshot struct {
	Eps            float64
	ValidateNaNInf bool
}

func snapshotOf(o Options) OptionsSnapshot {
	return OptionsSnapshot{Eps: o.eps, ValidateNaNInf: o.validateNaNInf}
}

// NewMatrixOptionsSnapshot_TestOnly returns the defaults as a snapshot.
func NewMatrixOptionsSnapshot_TestOnly() OptionsSnapshot {
	return snapshotOf(gatherOptions())
}

// GatherOptionsSnapshot_TestOnly resolves opts and returns a snapshot.
func GatherOptionsSnapshot_TestOnly(opts ...Option) OptionsSnapshot {
	return snapshotOf(gatherOptions(opts...))
}
