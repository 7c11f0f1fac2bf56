// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Support copy-based reindexing: Induced submatrices and the symmetric
//     permutations used by resampling tests.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// AI-Hints:
//   - Prefer fast-paths on *Dense in hot kernels: operate on the flat data slice directly.
//   - PermuteSymmetricInto reuses a caller-owned buffer; use it inside resampling loops.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Induced/Permute*: O(r'*c').

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt          = "At"
	ctxSet         = "Set"
	ctxApply       = "Apply"
	ctxInduce      = "Induced"
	ctxPermuteSym  = "PermuteSymmetric"
	ctxPermuteRows = "PermuteRows"
	ctxFromRows    = "FromRows"
	ctxFromData    = "NewDenseFrom"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Behavior highlights:
//   - Stable, human-friendly messages; preserves sentinel via %w.
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and initialize policy from defaults.
//
// Inputs:
//   - rows: positive number of rows
//   - cols: positive number of columns
//
// Returns:
//   - *Dense: newly allocated matrix.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseFrom copies a flat row-major slice into a new rows×cols Dense.
// Implementation:
//   - Stage 1: validate shape and len(data) == rows*cols.
//   - Stage 2: resolve options; when the finite policy is on, reject NaN/Inf.
//   - Stage 3: copy data (the caller's slice is never aliased).
//
// Errors:
//   - ErrInvalidDimensions, ErrBadShape (length mismatch), ErrNaNInf.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(ctxFromData, ErrInvalidDimensions)
	}
	if len(data) != rows*cols {
		return nil, matrixErrorf(ctxFromData, ErrBadShape)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		for k, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf(ctxFromData, k/cols, k%cols, ErrNaNInf)
			}
		}
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dense{r: rows, c: cols, data: buf, validateNaNInf: o.validateNaNInf}, nil
}

// FromRows builds a Dense from a slice of equal-length rows.
// Implementation:
//   - Stage 1: reject empty input or ragged rows (ErrBadShape).
//   - Stage 2: flatten into row-major order under the resolved numeric policy.
//
// Behavior highlights:
//   - Deterministic copy; input rows are never retained.
//
// Inputs:
//   - rows: r rows of c values each (r≥1, c≥1).
//   - opts: numeric policy overrides (WithNoValidateNaNInf, ...).
//
// Errors:
//   - ErrBadShape for empty/ragged input; ErrNaNInf for non-finite values under policy.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - A 1-D sample of m scalars is FromRows with m rows of length 1, or NewColumn.
func FromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, matrixErrorf(ctxFromRows, ErrBadShape)
	}
	r, c := len(rows), len(rows[0])
	flat := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w", ctxFromRows, i, len(rows[i]), c, ErrBadShape)
		}
		flat = append(flat, rows[i]...)
	}

	return NewDenseFrom(r, c, flat, opts...)
}

// NewColumn wraps a vector of m observations as an m×1 sample.
// Complexity: O(m).
func NewColumn(v []float64, opts ...Option) (*Dense, error) {
	return NewDenseFrom(len(v), 1, v, opts...)
}

// Rows returns the row count. No side effects.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods (At/Set) wrap the sentinel with coordinates and method name.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: enforce numeric policy (reject NaN/±Inf when enabled).
//   - Stage 3: write into flat buffer.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for invalid numbers.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	return m.copyDense()
}

// copyDense is Clone with the concrete return type.
func (m *Dense) copyDense() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, validateNaNInf: m.validateNaNInf}
}

// RawData exposes the row-major backing slice (len == Rows*Cols).
// The slice is shared storage: writes bypass the numeric policy and are
// visible through At. Callers outside hot loops should prefer At/Set.
func (m *Dense) RawData() []float64 { return m.data }

// Row returns a copy of row i.
// Errors: ErrOutOfRange.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxAt, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// String HUMAN-READABLE dump of rows for diagnostics.
// Complexity: O(r*c). Not for hot paths.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Induced materializes a copy submatrix using explicit index sets.
// Implementation:
//   - Stage 1: reject empty index sets (a Dense always has positive shape).
//   - Stage 2: nested loops with direct offset math; bounds-check each index.
//
// Behavior highlights:
//   - Policy is preserved from the base (validateNaNInf).
//   - Duplicates in index sets are allowed (repeated rows/cols in the result).
//
// Errors:
//   - ErrInvalidDimensions (empty index set), ErrOutOfRange (index outside bounds).
//
// Complexity:
//   - Time O(rp*cp), Space O(rp*cp).
func (m *Dense) Induced(rowsIdx, colsIdx []int) (*Dense, error) {
	rp, cp := len(rowsIdx), len(colsIdx)
	res, err := NewDense(rp, cp)
	if err != nil {
		return nil, matrixErrorf(ctxInduce, err)
	}
	res.validateNaNInf = m.validateNaNInf

	var i, j, ri, cj int
	for i = 0; i < rp; i++ {
		ri = rowsIdx[i]
		if ri < 0 || ri >= m.r {
			return nil, fmt.Errorf("Dense.%s: row index %d: %w", ctxInduce, ri, ErrOutOfRange)
		}
		for j = 0; j < cp; j++ {
			cj = colsIdx[j]
			if cj < 0 || cj >= m.c {
				return nil, fmt.Errorf("Dense.%s: col index %d: %w", ctxInduce, cj, ErrOutOfRange)
			}
			res.data[i*cp+j] = m.data[ri*m.c+cj]
		}
	}

	return res, nil
}

// PermuteSymmetric returns P·A·Pᵀ for the permutation perm:
// out[i,j] = A[perm[i], perm[j]].
// Implementation:
//   - Stage 1: require a square receiver and a valid permutation of 0..n-1.
//   - Stage 2: allocate and delegate to PermuteSymmetricInto.
//
// Behavior highlights:
//   - Relabels the observations of a Gram matrix; symmetry and the multiset of
//     entries are preserved.
//
// Errors:
//   - ErrNonSquare, ErrBadPermutation.
//
// Complexity:
//   - Time O(n²) (+O(n) permutation check), Space O(n²).
func (m *Dense) PermuteSymmetric(perm []int) (*Dense, error) {
	if m.r != m.c {
		return nil, matrixErrorf(ctxPermuteSym, ErrNonSquare)
	}
	if err := ValidatePermutation(perm, m.r); err != nil {
		return nil, matrixErrorf(ctxPermuteSym, err)
	}
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data)), validateNaNInf: m.validateNaNInf}
	permuteSymmetric(out.data, m.data, m.r, perm)

	return out, nil
}

// PermuteSymmetricInto writes P·A·Pᵀ into dst, reusing its storage.
// dst must be a distinct n×n Dense; perm is trusted to be a permutation
// (validate once with ValidatePermutation when it comes from user input).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch (len(perm) or dst shape).
//
// Complexity:
//   - Time O(n²), Space O(1).
//
// AI-Hints:
//   - Allocate one dst per worker and reuse it across resampling iterations.
func (m *Dense) PermuteSymmetricInto(dst *Dense, perm []int) error {
	if dst == nil {
		return matrixErrorf(ctxPermuteSym, ErrNilMatrix)
	}
	if m.r != m.c {
		return matrixErrorf(ctxPermuteSym, ErrNonSquare)
	}
	if dst.r != m.r || dst.c != m.c || len(perm) != m.r {
		return matrixErrorf(ctxPermuteSym, ErrDimensionMismatch)
	}
	permuteSymmetric(dst.data, m.data, m.r, perm)

	return nil
}

// permuteSymmetric is the flat kernel shared by the PermuteSymmetric variants.
func permuteSymmetric(dst, src []float64, n int, perm []int) {
	var i, j, rowDst, rowSrc int
	for i = 0; i < n; i++ {
		rowDst = i * n
		rowSrc = perm[i] * n
		for j = 0; j < n; j++ {
			dst[rowDst+j] = src[rowSrc+perm[j]]
		}
	}
}

// PermuteRows returns a copy with out[i,·] = A[perm[i],·].
// Used to shuffle one sample against the other while keeping feature columns intact.
//
// Errors:
//   - ErrBadPermutation.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func (m *Dense) PermuteRows(perm []int) (*Dense, error) {
	if err := ValidatePermutation(perm, m.r); err != nil {
		return nil, matrixErrorf(ctxPermuteRows, err)
	}
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data)), validateNaNInf: m.validateNaNInf}
	for i := 0; i < m.r; i++ {
		copy(out.data[i*m.c:(i+1)*m.c], m.data[perm[i]*m.c:(perm[i]+1)*m.c])
	}

	return out, nil
}

// Do visits each element (i,j) in row-major order and calls f(i,j,v).
// Stops early when f returns false.
// Complexity: O(r*c), Space O(1).
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// Apply replaces each element with f(i,j,v) in-place.
// Implementation:
//   - Stage 1: nested loops over rows then cols; compute new value via f.
//   - Stage 2: reject NaN/Inf if policy enabled; write back.
//
// Behavior highlights:
//   - Early error aborts; elements written before the error remain updated.
//
// Errors:
//   - ErrNaNInf when transformer produced non-finite (if policy ON).
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	var i, j, base int
	var nv float64
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			nv = f(i, j, m.data[base+j])
			if m.validateNaNInf && (math.IsNaN(nv) || math.IsInf(nv, 0)) {
				return denseErrorf(ctxApply, i, j, ErrNaNInf)
			}
			m.data[base+j] = nv
		}
	}

	return nil
}
