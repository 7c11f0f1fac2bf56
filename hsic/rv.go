// SPDX-License-Identifier: MIT

package hsic

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hsic/matrix"
)

const opRV = "hsic.RV"

// RV returns the RV coefficient of two paired samples, a matrix correlation
// measuring linear dependence:
//
//	RV = tr(Wx·Wy) / sqrt(tr(Wx²)·tr(Wy²)),  Wx = XcXcᵀ, Wy = YcYcᵀ,
//
// where Xc, Yc are the column-centered samples. The value lies in [0, 1];
// a constant sample yields 0.
//
// Errors: ErrInvalidInput (nil, mismatched rows, NaN/Inf).
// Complexity: O(m²·(p+q)).
func RV(x, y *matrix.Dense) (float64, error) {
	if x == nil || y == nil {
		return 0, invalidInput(opRV, matrix.ErrNilMatrix)
	}
	if x.Rows() != y.Rows() {
		return 0, invalidInput(opRV,
			fmt.Errorf("%w: x has %d rows, y has %d", matrix.ErrDimensionMismatch, x.Rows(), y.Rows()))
	}
	Wx, err := centeredGram(x)
	if err != nil {
		return 0, invalidInput(opRV, err)
	}
	Wy, err := centeredGram(y)
	if err != nil {
		return 0, invalidInput(opRV, err)
	}

	// Wx, Wy are symmetric, so tr(A·B) = sum(A∘B).
	num, _ := matrix.HadamardSum(Wx, Wy)
	xx, _ := matrix.HadamardSum(Wx, Wx)
	yy, _ := matrix.HadamardSum(Wy, Wy)
	den := math.Sqrt(xx * yy)
	if den == 0 {
		return 0, nil
	}

	return math.Min(1, math.Max(0, num/den)), nil
}

func centeredGram(x *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateFinite(x); err != nil {
		return nil, err
	}
	xc, _, err := matrix.CenterColumns(x)
	if err != nil {
		return nil, err
	}

	return matrix.LinearGram(xc)
}
