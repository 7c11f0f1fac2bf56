// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the statistical transforms used on samples and Gram matrices
//     (column/row centering, double centering, marginal sums, linear Gram)
//     as deterministic compositions over ew* micro-kernels.
//
// Exposed API (via api.go):
//   - CenterColumns(X) -> (Xc, means)  // subtract per-column mean
//   - CenterRows(X)    -> (Xc, means)  // subtract per-row mean
//   - DoubleCenter(G)  -> Gc           // G - rowMean - colMean + grandMean (≡ H·G·H)
//   - RowSums/ColSums/GrandSum         // marginal and total sums
//   - LinearGram(X)    -> X·Xᵀ
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths avoid At/Set and operate on row-major flat buffers.

package matrix

const (
	opCenterColumns = "CenterColumns"
	opCenterRows    = "CenterRows"
	opDoubleCenter  = "DoubleCenter"
	opRowSums       = "RowSums"
	opColSums       = "ColSums"
	opLinearGram    = "LinearGram"
)

// marginals returns row sums and column sums in one deterministic pass.
// Time O(r*c), Space O(r+c).
func marginals(X Matrix) (rowSums, colSums []float64, err error) {
	r, c := X.Rows(), X.Cols()
	rowSums = make([]float64, r)
	colSums = make([]float64, c)
	var i, j, base int
	var v float64

	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				v = d.data[base+j]
				rowSums[i] += v
				colSums[j] += v
			}
		}
		return rowSums, colSums, nil
	}
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, nil, err
			}
			rowSums[i] += v
			colSums[j] += v
		}
	}

	return rowSums, colSums, nil
}

// centerColumns subtracts the per-column mean from every element.
// Implementation:
//   - Stage 1: Validate X (non-nil).
//   - Stage 2: Compute column means in a deterministic pass.
//   - Stage 3: Apply ewBroadcastSubCols to produce a centered copy.
//
// Returns:
//   - *Dense: centered copy (r×c).
//   - []float64: column means (len=c).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func centerColumns(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	_, means, err := marginals(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	invR := 1.0 / float64(X.Rows())
	for j := range means {
		means[j] *= invR
	}
	Xc, err := ewBroadcastSubCols(X, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	return Xc, means, nil
}

// centerRows subtracts the per-row mean from every element.
// Complexity: Time O(r*c), Space O(r*c).
func centerRows(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}
	means, _, err := marginals(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}
	invC := 1.0 / float64(X.Cols())
	for i := range means {
		means[i] *= invC
	}
	Xc, err := ewBroadcastSubRows(X, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}

	return Xc, means, nil
}

// doubleCenter computes Gc[i,j] = G[i,j] - r̄_i - c̄_j + ḡ for square G.
// Implementation:
//   - Stage 1: Validate G is non-nil and square.
//   - Stage 2: One pass for row and column sums; derive means and the grand mean.
//   - Stage 3: ewBroadcastCenter writes the centered copy.
//
// Behavior highlights:
//   - Algebraically identical to H·G·H with H = I - J/n, without the two O(n³) products.
//   - Every row and column of Gc sums to zero up to rounding.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - Time O(n²), Space O(n²).
func doubleCenter(G Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(G); err != nil {
		return nil, matrixErrorf(opDoubleCenter, err)
	}
	rowMeans, colMeans, err := marginals(G)
	if err != nil {
		return nil, matrixErrorf(opDoubleCenter, err)
	}
	n := G.Rows()
	inv := 1.0 / float64(n)
	var total float64
	for i := 0; i < n; i++ {
		total += rowMeans[i]
		rowMeans[i] *= inv
		colMeans[i] *= inv
	}
	grand := total * inv * inv

	Gc, err := ewBroadcastCenter(G, rowMeans, colMeans, grand)
	if err != nil {
		return nil, matrixErrorf(opDoubleCenter, err)
	}

	return Gc, nil
}

// linearGram returns X·Xᵀ (m×m) for an m×d sample.
// Complexity: Time O(m²·d), Space O(m²).
func linearGram(X Matrix) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opLinearGram, err)
	}
	Xt, err := Transpose(X)
	if err != nil {
		return nil, matrixErrorf(opLinearGram, err)
	}
	G, err := Mul(X, Xt)
	if err != nil {
		return nil, matrixErrorf(opLinearGram, err)
	}

	return G, nil
}
