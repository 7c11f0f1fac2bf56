// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise and broadcast kernels (ew*) to avoid
//     duplicating tight loops across higher-level ops (statistics, kernels).
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Design:
//   - All ew* are UNEXPORTED (internal micro-kernels).
//   - Public API uses these via thin wrappers in api.go and impl_statistics.go.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - Dense fast-path operates on a single flat buffer (row-major).
//   - No hidden allocations beyond the output Dense.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock the flat-slice fast path.
//   - Keep broadcast arrays (colMeans/rowMeans) precomputed and reused across calls.

package matrix

import "math"

const (
	opBroadcastSubCols = "broadcastSubCols"
	opBroadcastSubRows = "broadcastSubRows"
	opBroadcastCenter  = "broadcastCenter"
	opZeroDiagonal     = "ZeroDiagonal"
	opAllClose         = "AllClose"
	opHadamardSum      = "HadamardSum"
)

// ewBroadcastSubCols computes out[i,j] = X[i,j] - colMeans[j].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
//
// AI-Hint: Use for column-centering of samples.
func ewBroadcastSubCols(X Matrix, colMeans []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opBroadcastSubCols, err)
	}
	r, c := X.Rows(), X.Cols()
	if len(colMeans) != c {
		return nil, matrixErrorf(opBroadcastSubCols, ErrDimensionMismatch)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opBroadcastSubCols, err)
	}

	// Dense fast-path: single pass over the flat row-major buffer.
	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			for j := 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] - colMeans[j]
			}
		}
		return out, nil
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf(opBroadcastSubCols, e)
			}
			out.data[i*c+j] = v - colMeans[j]
		}
	}

	return out, nil
}

// ewBroadcastSubRows computes out[i,j] = X[i,j] - rowMeans[i].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
func ewBroadcastSubRows(X Matrix, rowMeans []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opBroadcastSubRows, err)
	}
	r, c := X.Rows(), X.Cols()
	if len(rowMeans) != r {
		return nil, matrixErrorf(opBroadcastSubRows, ErrDimensionMismatch)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opBroadcastSubRows, err)
	}

	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			mu := rowMeans[i]
			for j := 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] - mu
			}
		}
		return out, nil
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf(opBroadcastSubRows, e)
			}
			out.data[i*c+j] = v - rowMeans[i]
		}
	}

	return out, nil
}

// ewBroadcastCenter computes out[i,j] = X[i,j] - rowMeans[i] - colMeans[j] + grand.
// This is the two-sided broadcast behind double centering (H·X·H for square X).
// Time: O(r*c). Space: O(r*c).
func ewBroadcastCenter(X Matrix, rowMeans, colMeans []float64, grand float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opBroadcastCenter, err)
	}
	r, c := X.Rows(), X.Cols()
	if len(rowMeans) != r || len(colMeans) != c {
		return nil, matrixErrorf(opBroadcastCenter, ErrDimensionMismatch)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opBroadcastCenter, err)
	}

	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			shift := grand - rowMeans[i]
			for j := 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] - colMeans[j] + shift
			}
		}
		return out, nil
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf(opBroadcastCenter, e)
			}
			out.data[i*c+j] = v - rowMeans[i] - colMeans[j] + grand
		}
	}

	return out, nil
}

// ewZeroDiagonal returns a copy of square X with X[i,i] = 0.
// Time: O(n²). Space: O(n²).
func ewZeroDiagonal(X Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(X); err != nil {
		return nil, matrixErrorf(opZeroDiagonal, err)
	}
	out, err := toDense(X)
	if err != nil {
		return nil, matrixErrorf(opZeroDiagonal, err)
	}
	n := out.r
	for i := 0; i < n; i++ {
		out.data[i*n+i] = 0
	}

	return out, nil
}

// ewHadamardSum returns Σ_ij a[i,j]·b[i,j] (Frobenius inner product ⟨A,B⟩_F).
// Equal to tr(AᵀB); for symmetric A, B it equals tr(AB).
// Time: O(r*c). Space: O(1).
func ewHadamardSum(a, b Matrix) (float64, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return 0, matrixErrorf(opHadamardSum, err)
	}
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var s float64
			for k, v := range da.data {
				s += v * db.data[k]
			}
			return s, nil
		}
	}

	r, c := a.Rows(), a.Cols()
	var s, av, bv float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return 0, matrixErrorf(opHadamardSum, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return 0, matrixErrorf(opHadamardSum, err)
			}
			s += av * bv
		}
	}

	return s, nil
}

// ewAllClose reports whether |a-b| ≤ atol + rtol*|b| holds elementwise.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx, av := range da.data {
				bv := db.data[idx]
				if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
					return false, nil
				}
			}
			return true, nil
		}
	}

	r, c := a.Rows(), a.Cols()
	var av, bv float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			av, _ = a.At(i, j)
			bv, _ = b.At(i, j)
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}

// toDense returns an independent *Dense copy of any Matrix.
// Time: O(r*c). Space: O(r*c).
func toDense(X Matrix) (*Dense, error) {
	if d, ok := X.(*Dense); ok {
		return d.copyDense(), nil
	}
	r, c := X.Rows(), X.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, e
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}
