// SPDX-License-Identifier: MIT

package hsic

// Set partitions of index positions, encoded as restricted growth strings
// (RGS): labels[0] = 0 and labels[i] ≤ 1 + max(labels[:i]). Every set
// partition has exactly one RGS, so the string doubles as a canonical key.

// maxPositions bounds the RGS length; keys pack 3 bits per label.
const maxPositions = 8

// restrictedGrowth enumerates every set partition of k items in lexicographic
// RGS order. There are Bell(k) of them.
func restrictedGrowth(k int) [][]int {
	if k == 0 {
		return [][]int{{}}
	}
	var (
		out [][]int
		cur = make([]int, k)
		rec func(i, top int)
	)
	rec = func(i, top int) {
		if i == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for v := 0; v <= top+1; v++ {
			cur[i] = v
			next := top
			if v > top {
				next = v
			}
			rec(i+1, next)
		}
	}
	rec(1, 0)

	return out
}

// blockCount returns the number of blocks of an RGS.
func blockCount(rgs []int) int {
	top := -1
	for _, v := range rgs {
		if v > top {
			top = v
		}
	}

	return top + 1
}

// partitionKey packs an RGS of length ≤ maxPositions into a map key.
// The length is stored in the top bits so equal prefixes of different
// lengths never collide.
func partitionKey(rgs []int) uint64 {
	key := uint64(len(rgs)) << 60
	for i, v := range rgs {
		key |= uint64(v) << (3 * uint(i))
	}

	return key
}

// mobius returns μ(P, Q) for the refinement P ≤ Q described by q, an RGS
// over the blocks of P: Π over blocks of Q of (−1)^(s−1)·(s−1)!, where s is
// the number of P-blocks merged into that Q-block.
func mobius(q []int) float64 {
	sizes := make([]int, blockCount(q))
	for _, b := range q {
		sizes[b]++
	}
	mu := 1.0
	for _, s := range sizes {
		for f := 2; f < s; f++ {
			mu *= float64(f)
		}
		if s%2 == 0 {
			mu = -mu
		}
	}

	return mu
}

// fallingFactorial returns n·(n−1)·…·(n−k+1).
func fallingFactorial(n, k int) float64 {
	r := 1.0
	for i := 0; i < k; i++ {
		r *= float64(n - i)
	}

	return r
}
