// SPDX-License-Identifier: MIT

// Package kernel builds Gaussian (RBF) Gram matrices from samples.
//
// A sample is an m×d *matrix.Dense: m observations (rows) of d features.
// The Gram matrix K of a sample has entries
//
//	K[i,j] = exp(-‖xᵢ − xⱼ‖² / (2σ²)),
//
// with unit diagonal and exact symmetry. When no bandwidth σ is supplied the
// median heuristic is used:
//
//	σ = sqrt(0.5 · median{‖xᵢ − xⱼ‖² : i < j}).
//
// The bandwidth is derived once per sample and reported back in Gram.Sigma so
// resampling code can rebuild kernels with exactly the same width.
//
// Usage:
//
//	x, _ := matrix.FromRows([][]float64{{1}, {2}, {3}, {4}})
//	g, err := kernel.BuildGram(x, kernel.DefaultConfig())
//	// g.K is 4×4, g.Sigma ≈ 1.118034
package kernel
