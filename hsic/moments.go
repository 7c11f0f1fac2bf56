// SPDX-License-Identifier: MIT

package hsic

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hsic/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const opMoments = "hsic.PermutationMoments"

// maxMomentOrder is the highest raw moment the pattern engine evaluates.
// An order-p moment has p edges, so every contraction graph is a forest
// plus at most one triangle.
const maxMomentOrder = 3

// PermutationMoments returns the exact mean, variance and skewness of
//
//	T(π) = Σᵢⱼ Kc[i,j]·Lc[π(i),π(j)]
//
// over all m! permutations π, without enumerating them.
//
// Implementation:
//   - Stage 1: validate; copy both matrices and symmetrize them.
//   - Stage 2: mean = E[T] from the order-1 expansion on the inputs.
//   - Stage 3: shift A' = A − c·H with c = tr(A)/(m−1) (H the centering
//     matrix). T' = T − const, so central moments are unchanged while the
//     raw moments of T' lose their large common offset.
//   - Stage 4: E[T'^p] for p = 2, 3 by the index-pattern expansion
//     E[T^p] = Σ_P S_A(P)·S_B(P)/(m)_|P|, over set partitions P of the 2p
//     index positions. S(P) sums Π A over assignments with distinct values
//     per block and is obtained from unrestricted contractions by Möbius
//     inversion over the partition lattice.
//   - Stage 5: variance, third central moment, skewness.
//
// Behavior highlights:
//   - Mean equals tr(Kc)·tr(Lc)/(m−1) for centered input.
//   - Works for any symmetric input; centering is not required.
//   - Variance is clamped at 0; a zero variance yields zero skewness.
//
// Errors:
//   - ErrInvalidInput (nil, non-square, mismatch, NaN/Inf, asymmetric).
//   - ErrInsufficientSamples (m < 2).
//
// Complexity:
//   - Time O(m³) (one dense product per matrix for tr(A³)), Space O(m²).
func PermutationMoments(Kc, Lc matrix.Matrix) (Moments, error) {
	if err := validateGramPair(opMoments, Kc, Lc); err != nil {
		return Moments{}, err
	}
	m := Kc.Rows()
	if m < 2 {
		return Moments{}, hsicErrorf(opMoments, fmt.Errorf("%w: need m >= 2, got %d", ErrInsufficientSamples, m))
	}
	a, err := symmetrized(Kc)
	if err != nil {
		return Moments{}, invalidInput(opMoments, err)
	}
	b, err := symmetrized(Lc)
	if err != nil {
		return Moments{}, invalidInput(opMoments, err)
	}

	mean := newPatternSums(a, m).rawMoment(newPatternSums(b, m), 1)

	pa := newPatternSums(shiftByCentering(a, m), m)
	pb := newPatternSums(shiftByCentering(b, m), m)
	m1 := pa.rawMoment(pb, 1)
	m2 := pa.rawMoment(pb, 2)
	m3 := pa.rawMoment(pb, 3)

	variance := m2 - m1*m1
	if variance < 0 {
		variance = 0
	}
	mu3 := m3 - 3*m1*m2 + 2*m1*m1*m1
	var skew float64
	if variance > 0 {
		skew = mu3 / math.Pow(variance, 1.5)
	}

	return Moments{Mean: mean, Variance: variance, Skewness: skew}, nil
}

// symmetrized returns (A + Aᵀ)/2 as a flat row-major slice. Inputs that are
// asymmetric beyond rounding are rejected.
func symmetrized(A matrix.Matrix) ([]float64, error) {
	n := A.Rows()
	var scale float64
	src := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, err := A.At(i, j)
			if err != nil {
				return nil, err
			}
			src[i*n+j] = v
			if av := math.Abs(v); av > scale {
				scale = av
			}
		}
	}
	tol := 1e-9 * math.Max(scale, 1)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			u, v := src[i*n+j], src[j*n+i]
			if math.Abs(u-v) > tol {
				return nil, fmt.Errorf("(%d,%d): %w", i, j, matrix.ErrAsymmetry)
			}
			avg := 0.5 * (u + v)
			src[i*n+j], src[j*n+i] = avg, avg
		}
	}

	return src, nil
}

// shiftByCentering returns A − c·H with c = tr(A)/(n−1) and H = I − J/n.
// The permutation statistic of the result differs from the original by a
// constant, and for centered A, B that constant is exactly the mean.
func shiftByCentering(a []float64, n int) []float64 {
	var tr float64
	for i := 0; i < n; i++ {
		tr += a[i*n+i]
	}
	c := tr / float64(n-1)
	off := c / float64(n)
	out := make([]float64, len(a))
	for k, v := range a {
		out[k] = v + off
	}
	for i := 0; i < n; i++ {
		out[i*n+i] -= c
	}

	return out
}

// patternSums evaluates index-pattern sums of one symmetric matrix A.
//
// For a labelling of the 2p positions (i₁, j₁, …, i_p, j_p) into blocks, the
// unrestricted sum Σ Π_k A[v(i_k), v(j_k)] runs over all block values; the
// distinct sum additionally requires different blocks to take different
// values. Results are cached by canonical RGS key.
type patternSums struct {
	n        int
	a        []float64
	diag     []float64
	powers   map[int][]float64 // Hadamard powers A^∘k
	trCube   float64
	haveCube bool
	free     map[uint64]float64
	distinct map[uint64]float64
}

func newPatternSums(a []float64, n int) *patternSums {
	diag := make([]float64, n)
	for i := range diag {
		diag[i] = a[i*n+i]
	}

	return &patternSums{
		n:        n,
		a:        a,
		diag:     diag,
		powers:   map[int][]float64{1: a},
		free:     make(map[uint64]float64),
		distinct: make(map[uint64]float64),
	}
}

// rawMoment returns E[T^p] for T(π) = Σ A[i,j]·B[π(i),π(j)], p ≤ maxMomentOrder.
func (s *patternSums) rawMoment(o *patternSums, p int) float64 {
	if p < 1 || p > maxMomentOrder {
		return math.NaN()
	}
	parts := restrictedGrowth(2 * p)
	terms := make([]float64, 0, len(parts))
	for _, P := range parts {
		k := blockCount(P)
		if k > s.n {
			continue // no injective assignment exists
		}
		da := s.distinctSum(P)
		if da == 0 {
			continue
		}
		terms = append(terms, da*o.distinctSum(P)/fallingFactorial(s.n, k))
	}

	return floats.SumCompensated(terms)
}

// distinctSum returns the distinct-values pattern sum for RGS P via
// S_d(P) = Σ_{Q ≥ P} μ(P, Q)·S_u(Q).
func (s *patternSums) distinctSum(P []int) float64 {
	key := partitionKey(P)
	if v, ok := s.distinct[key]; ok {
		return v
	}
	k := blockCount(P)
	coarse := restrictedGrowth(k)
	terms := make([]float64, 0, len(coarse))
	Q := make([]int, len(P))
	for _, q := range coarse {
		for pos, b := range P {
			Q[pos] = q[b]
		}
		terms = append(terms, mobius(q)*s.freeSum(Q))
	}
	v := floats.SumCompensated(terms)
	s.distinct[key] = v

	return v
}

// contraction edge between two distinct blocks; weight is A^∘mult.
type edge struct {
	u, v int
	w    []float64
}

// freeSum returns the unrestricted pattern sum for RGS Q.
//
// Blocks become vertices and each position pair (i_k, j_k) an edge. Loops
// multiply a vertex weight by diag(A); parallel edges merge into a Hadamard
// power. Each connected component is then reduced by leaf elimination
// (message w_v ∘= E·w_u) down to one vertex or a triangle.
func (s *patternSums) freeSum(Q []int) float64 {
	key := partitionKey(Q)
	if v, ok := s.free[key]; ok {
		return v
	}

	nv := blockCount(Q)
	weights := make([][]float64, nv) // nil means all ones
	mult := make(map[[2]int]int)
	for e := 0; e+1 < len(Q); e += 2 {
		u, v := Q[e], Q[e+1]
		if u == v {
			weights[u] = hadamardInto(weights[u], s.diag)
			continue
		}
		if u > v {
			u, v = v, u
		}
		mult[[2]int{u, v}]++
	}
	edges := make([]edge, 0, len(mult))
	// deterministic order: scan vertex pairs, not the map
	for u := 0; u < nv; u++ {
		for v := u + 1; v < nv; v++ {
			if k := mult[[2]int{u, v}]; k > 0 {
				edges = append(edges, edge{u: u, v: v, w: s.power(k)})
			}
		}
	}

	result := 1.0
	for _, comp := range components(nv, edges) {
		result *= s.reduceComponent(comp, weights, edges)
	}
	s.free[key] = result

	return result
}

// reduceComponent contracts one connected component.
func (s *patternSums) reduceComponent(verts []int, weights [][]float64, edges []edge) float64 {
	alive := make(map[int]bool, len(verts))
	for _, v := range verts {
		alive[v] = true
	}
	live := make([]bool, len(edges))
	for i, e := range edges {
		live[i] = alive[e.u]
	}

	for len(alive) > 1 {
		leaf, via := -1, -1
		for _, v := range verts {
			if !alive[v] {
				continue
			}
			deg, last := 0, -1
			for i, e := range edges {
				if live[i] && (e.u == v || e.v == v) {
					deg++
					last = i
				}
			}
			if deg == 1 {
				leaf, via = v, last
				break
			}
		}
		if leaf < 0 {
			break
		}
		e := edges[via]
		other := e.u
		if other == leaf {
			other = e.v
		}
		weights[other] = hadamardInto(weights[other], s.matVec(e.w, weights[leaf]))
		live[via] = false
		delete(alive, leaf)
	}

	if len(alive) == 1 {
		for v := range alive {
			return s.sum(weights[v])
		}
	}

	// Only a triangle survives leaf elimination when there are at most three edges.
	var tri []edge
	for i, e := range edges {
		if live[i] {
			tri = append(tri, e)
		}
	}
	if len(alive) != 3 || len(tri) != 3 {
		return math.NaN()
	}

	return s.triangle(tri, weights)
}

// triangle returns Σ_{x,y,z} w_a(x)w_b(y)w_c(z)·E_ab(x,y)·E_bc(y,z)·E_ac(x,z)
// for the three edges of a triangle on vertices a, b, c.
func (s *patternSums) triangle(tri []edge, weights [][]float64) float64 {
	// Vertex a is shared by tri[0] and tri[2]; find the labels.
	ab, bc, ac := tri[0], tri[1], tri[2]
	a, b := ab.u, ab.v
	if bc.u == a || bc.v == a {
		a, b = b, a
	}
	c := bc.u
	if c == b {
		c = bc.v
	}
	// Unweighted triangles are all tr(A³) for the single matrix in play.
	if weights[a] == nil && weights[b] == nil && weights[c] == nil &&
		sameSlice(ab.w, s.a) && sameSlice(bc.w, s.a) && sameSlice(ac.w, s.a) {
		return s.traceCube()
	}

	n := s.n
	left := make([]float64, n*n)
	copy(left, ab.w)
	if wb := weights[b]; wb != nil {
		for x := 0; x < n; x++ {
			floats.Mul(left[x*n:(x+1)*n], wb)
		}
	}
	var M mat.Dense
	M.Mul(mat.NewDense(n, n, left), mat.NewDense(n, n, bc.w))
	raw := M.RawMatrix()
	rowTerms := make([]float64, n)
	for x := 0; x < n; x++ {
		row := raw.Data[x*raw.Stride : x*raw.Stride+n]
		acRow := ac.w[x*n : (x+1)*n]
		var acc float64
		for z := 0; z < n; z++ {
			t := row[z] * acRow[z]
			if wc := weights[c]; wc != nil {
				t *= wc[z]
			}
			acc += t
		}
		if wa := weights[a]; wa != nil {
			acc *= wa[x]
		}
		rowTerms[x] = acc
	}

	return floats.SumCompensated(rowTerms)
}

// traceCube returns tr(A³) = Σ (A²)∘A using a gonum dense product.
func (s *patternSums) traceCube() float64 {
	if s.haveCube {
		return s.trCube
	}
	A := mat.NewDense(s.n, s.n, s.a)
	var A2 mat.Dense
	A2.Mul(A, A)
	s.trCube = floats.Dot(A2.RawMatrix().Data, s.a)
	s.haveCube = true

	return s.trCube
}

// power returns the cached Hadamard power A^∘k.
func (s *patternSums) power(k int) []float64 {
	if p, ok := s.powers[k]; ok {
		return p
	}
	base := s.power(k - 1)
	p := make([]float64, len(base))
	floats.MulTo(p, base, s.a)
	s.powers[k] = p

	return p
}

// matVec returns E·w for symmetric E (w nil means all ones).
func (s *patternSums) matVec(E, w []float64) []float64 {
	n := s.n
	out := make([]float64, n)
	for y := 0; y < n; y++ {
		row := E[y*n : (y+1)*n]
		if w == nil {
			out[y] = floats.Sum(row)
		} else {
			out[y] = floats.Dot(row, w)
		}
	}

	return out
}

// sum returns Σ w (n when w is nil).
func (s *patternSums) sum(w []float64) float64 {
	if w == nil {
		return float64(s.n)
	}

	return floats.SumCompensated(w)
}

// hadamardInto returns dst∘src, allocating when dst is nil (all ones).
func hadamardInto(dst, src []float64) []float64 {
	if dst == nil {
		return append([]float64(nil), src...)
	}
	floats.Mul(dst, src)

	return dst
}

// sameSlice reports whether a and b share their backing array start.
func sameSlice(a, b []float64) bool {
	return len(a) == len(b) && len(a) > 0 && &a[0] == &b[0]
}

// components groups vertices 0..nv-1 into connected components.
func components(nv int, edges []edge) [][]int {
	parent := make([]int, nv)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for _, e := range edges {
		ru, rv := find(e.u), find(e.v)
		if ru != rv {
			parent[ru] = rv
		}
	}
	index := make(map[int]int)
	var out [][]int
	for v := 0; v < nv; v++ {
		r := find(v)
		i, ok := index[r]
		if !ok {
			i = len(out)
			index[r] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], v)
	}

	return out
}
