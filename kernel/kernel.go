// SPDX-License-Identifier: MIT

package kernel

import (
	"math"

	"github.com/katalvlaran/hsic/matrix"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Operation tags for error wrapping.
const (
	opPairwise  = "PairwiseSqDistances"
	opDistances = "SqDistanceMatrix"
	opMedian    = "MedianBandwidth"
	opRBF       = "RBF"
	opBuild     = "BuildGram"
)

// FallbackBandwidth is used when the median heuristic yields zero
// (at least half of the pairs coincide).
const FallbackBandwidth = 1.0

// Config holds the options consumed by the Gram builder.
// Sigma == 0 selects the median heuristic.
type Config struct {
	Sigma float64
}

// DefaultConfig returns a Config that derives the bandwidth from the data.
func DefaultConfig() Config { return Config{} }

// Gram is a raw RBF Gram matrix together with the bandwidth that built it.
type Gram struct {
	K     *matrix.Dense
	Sigma float64
}

// validateSample enforces the sample contract: non-nil, m ≥ 2, finite.
func validateSample(op string, x *matrix.Dense) error {
	if x == nil {
		return kernelErrorf(op, ErrInvalidInput)
	}
	if x.Rows() < 2 {
		return kernelErrorf(op, ErrInvalidInput)
	}
	if err := matrix.ValidateFinite(x); err != nil {
		return kernelErrorf(op, errJoin(ErrInvalidInput, err))
	}

	return nil
}

// PairwiseSqDistances returns the m(m-1)/2 squared Euclidean distances
// ‖xᵢ − xⱼ‖² for i < j, in row-major pair order (0,1), (0,2), …, (m-2,m-1).
//
// Errors: ErrInvalidInput.
// Complexity: O(m²·d) time, O(m² + d) space.
func PairwiseSqDistances(x *matrix.Dense) ([]float64, error) {
	if err := validateSample(opPairwise, x); err != nil {
		return nil, err
	}
	m, d := x.Shape()
	data := x.RawData()
	out := make([]float64, 0, m*(m-1)/2)
	diff := make([]float64, d)
	var i, j int
	for i = 0; i < m; i++ {
		xi := data[i*d : (i+1)*d]
		for j = i + 1; j < m; j++ {
			out = append(out, sqDist(diff, xi, data[j*d:(j+1)*d]))
		}
	}

	return out, nil
}

// SqDistanceMatrix returns the full symmetric m×m matrix of squared
// Euclidean distances with a zero diagonal.
//
// Errors: ErrInvalidInput.
// Complexity: O(m²·d).
func SqDistanceMatrix(x *matrix.Dense) (*matrix.Dense, error) {
	if err := validateSample(opDistances, x); err != nil {
		return nil, err
	}

	return sqDistanceMatrix(x), nil
}

// sqDistanceMatrix fills the upper triangle once and mirrors it.
func sqDistanceMatrix(x *matrix.Dense) *matrix.Dense {
	m, d := x.Shape()
	data := x.RawData()
	D, _ := matrix.NewDense(m, m)
	dd := D.RawData()
	diff := make([]float64, d)
	var i, j int
	var v float64
	for i = 0; i < m; i++ {
		xi := data[i*d : (i+1)*d]
		for j = i + 1; j < m; j++ {
			v = sqDist(diff, xi, data[j*d:(j+1)*d])
			dd[i*m+j] = v
			dd[j*m+i] = v
		}
	}

	return D
}

// sqDist computes ‖a − b‖² using diff as scratch.
func sqDist(diff, a, b []float64) float64 {
	floats.SubTo(diff, a, b)

	return floats.Dot(diff, diff)
}

// MedianBandwidth returns sqrt(0.5 · median of squared pairwise distances).
// A zero median falls back to FallbackBandwidth.
//
// Errors: ErrInvalidInput.
// Complexity: O(m²·d + m² log m).
func MedianBandwidth(x *matrix.Dense) (float64, error) {
	d2, err := PairwiseSqDistances(x)
	if err != nil {
		return 0, kernelErrorf(opMedian, err)
	}
	med, err := stats.Median(stats.Float64Data(d2))
	if err != nil {
		return 0, kernelErrorf(opMedian, errJoin(ErrInvalidInput, err))
	}
	if med <= 0 {
		return FallbackBandwidth, nil
	}

	return math.Sqrt(0.5 * med), nil
}

// RBF evaluates the Gaussian kernel exp(-‖xᵢ − xⱼ‖²/(2σ²)) over all pairs.
// The result is exactly symmetric with a unit diagonal.
//
// Errors: ErrInvalidInput, ErrInvalidBandwidth.
// Complexity: O(m²·d).
func RBF(sigma float64, x *matrix.Dense) (*matrix.Dense, error) {
	if !validBandwidth(sigma) || sigma == 0 {
		return nil, kernelErrorf(opRBF, ErrInvalidBandwidth)
	}
	if err := validateSample(opRBF, x); err != nil {
		return nil, err
	}

	return rbfFromDistances(sqDistanceMatrix(x), sigma), nil
}

// rbfFromDistances maps a squared-distance matrix through the kernel in place.
func rbfFromDistances(D *matrix.Dense, sigma float64) *matrix.Dense {
	gamma := 1 / (2 * sigma * sigma)
	n := D.Rows()
	dd := D.RawData()
	for k := range dd {
		dd[k] = math.Exp(-gamma * dd[k])
	}
	for i := 0; i < n; i++ {
		dd[i*n+i] = 1
	}

	return D
}

// BuildGram builds the RBF Gram matrix of x with the bandwidth chosen by cfg.
// cfg.Sigma == 0 applies the median heuristic; the bandwidth actually used is
// returned in Gram.Sigma.
//
// Errors: ErrInvalidInput, ErrInvalidBandwidth.
// Complexity: O(m²·d) (+O(m² log m) for the heuristic).
func BuildGram(x *matrix.Dense, cfg Config) (Gram, error) {
	if !validBandwidth(cfg.Sigma) {
		return Gram{}, kernelErrorf(opBuild, ErrInvalidBandwidth)
	}
	if err := validateSample(opBuild, x); err != nil {
		return Gram{}, err
	}
	sigma := cfg.Sigma
	if sigma == 0 {
		var err error
		if sigma, err = MedianBandwidth(x); err != nil {
			return Gram{}, kernelErrorf(opBuild, err)
		}
	}

	return Gram{K: rbfFromDistances(sqDistanceMatrix(x), sigma), Sigma: sigma}, nil
}

// ZeroDiagonal returns a copy of m with its diagonal set to zero.
func ZeroDiagonal(m matrix.Matrix) (*matrix.Dense, error) { return matrix.ZeroDiagonal(m) }

// validBandwidth accepts 0 (heuristic) and finite positive values.
func validBandwidth(s float64) bool {
	return s >= 0 && !math.IsInf(s, 0) && !math.IsNaN(s)
}
