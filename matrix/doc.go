// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric substrate for kernel statistics.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-only numeric policy.
//   - Validators (nil, shape, square, symmetry, permutation) returning
//     sentinel errors that callers match with errors.Is.
//   - Linear algebra kernels: Add, Sub, Mul, Transpose, Scale, Hadamard,
//     MatVec, Trace, HadamardSum.
//   - Statistics: CenterColumns, CenterRows, DoubleCenter (H·G·H in O(n²)),
//     RowSums, ColSums, GrandSum, LinearGram, ZeroDiagonal.
//   - Reindexing for resampling: PermuteSymmetric / PermuteSymmetricInto
//     (relabel the observations of a Gram matrix) and PermuteRows.
//   - Interop with gonum via ToGonum/FromGonum.
//
// Every kernel has a *Dense fast path over the flat buffer and a generic
// fallback through the Matrix interface with the same loop order, so results
// are deterministic run to run.
package matrix
