// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Bridge *Dense with gonum's mat.Dense so heavy products can run on
//     gonum's blocked kernels while the rest of the package keeps its own
//     validation and numeric policy.
//
// Determinism:
//   - Both sides are row-major; conversion is a straight copy.

package matrix

import "gonum.org/v1/gonum/mat"

const (
	opToGonum   = "ToGonum"
	opFromGonum = "FromGonum"
)

// ToGonum copies m into a new gonum *mat.Dense.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opToGonum, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opToGonum, err)
	}

	// toDense already produced a private copy, so the buffer can be handed over.
	return mat.NewDense(d.r, d.c, d.data), nil
}

// FromGonum copies a gonum matrix into a new *Dense under the default
// numeric policy.
// Errors: ErrInvalidDimensions (empty matrix), ErrNaNInf.
// Complexity: O(r*c).
func FromGonum(g mat.Matrix) (*Dense, error) {
	r, c := g.Dims()
	if r == 0 || c == 0 {
		return nil, matrixErrorf(opFromGonum, ErrInvalidDimensions)
	}
	flat := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			flat = append(flat, g.At(i, j))
		}
	}
	out, err := NewDenseFrom(r, c, flat)
	if err != nil {
		return nil, matrixErrorf(opFromGonum, err)
	}

	return out, nil
}
