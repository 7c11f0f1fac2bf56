// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication: each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock fast-paths in kernels (flat-slice loops).
//   - DoubleCenter is the O(n²) route to H·G·H; NewCentering exists for tests
//     and for algebra that needs H explicitly.

package matrix

const opCentering = "NewCentering"

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// Thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n²) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// NewCentering returns the centering matrix H = I - J/n, where J is all-ones.
// H is symmetric and idempotent; H·v removes the mean of v.
// Errors: ErrInvalidDimensions for n ≤ 0.
// Complexity: O(n²).
func NewCentering(n int) (*Dense, error) {
	H, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCentering, err)
	}
	inv := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			H.data[i*n+j] = -inv
		}
		H.data[i*n+i] += 1.0
	}

	return H, nil
}

// ---------- Reductions ----------

// RowSums returns vector r where r[i] = Σ_j m[i,j].
// Complexity: O(rc).
//
// AI-Hints: On a Gram matrix this is K·1, the building block of 1ᵀK̃L̃1.
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	rs, _, err := marginals(m)
	if err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}

	return rs, nil
}

// ColSums returns vector c where c[j] = Σ_i m[i,j].
// Complexity: O(rc).
func ColSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opColSums, err)
	}
	_, cs, err := marginals(m)
	if err != nil {
		return nil, matrixErrorf(opColSums, err)
	}

	return cs, nil
}

// GrandSum returns 1ᵀ·m·1 (the sum of all elements).
// Complexity: O(rc).
func GrandSum(m Matrix) (float64, error) {
	rs, err := RowSums(m)
	if err != nil {
		return 0, err
	}
	var s float64
	for _, v := range rs {
		s += v
	}

	return s, nil
}

// HadamardSum returns Σ_ij a[i,j]·b[i,j] without materializing a∘b.
// For symmetric operands this equals tr(a·b).
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(rc) time, O(1) space.
func HadamardSum(a, b Matrix) (float64, error) { return ewHadamardSum(a, b) }

// ---------- Statistics (thin wrappers → impl_statistics.go) ----------

// CenterColumns returns a copy of X with each column's mean subtracted, plus the means.
// Complexity: O(r*c).
func CenterColumns(X Matrix) (*Dense, []float64, error) { return centerColumns(X) }

// CenterRows returns a copy of X with each row's mean subtracted, plus the means.
// Complexity: O(r*c).
func CenterRows(X Matrix) (*Dense, []float64, error) { return centerRows(X) }

// DoubleCenter returns H·G·H for square G, computed in O(n²) via marginal means.
// Errors: ErrNilMatrix, ErrNonSquare.
func DoubleCenter(G Matrix) (*Dense, error) { return doubleCenter(G) }

// LinearGram returns X·Xᵀ, the linear-kernel Gram matrix of an m×d sample.
func LinearGram(X Matrix) (*Dense, error) { return linearGram(X) }

// ZeroDiagonal returns a copy of square m with its diagonal set to zero.
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n²).
func ZeroDiagonal(m Matrix) (*Dense, error) { return ewZeroDiagonal(m) }

// ---------- Numeric compare ----------

// AllClose reports whether |a-b| ≤ atol + rtol·|b| elementwise.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (bad tolerances).
// Complexity: O(r*c).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) { return ewAllClose(a, b, rtol, atol) }
