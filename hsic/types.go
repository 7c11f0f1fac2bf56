// SPDX-License-Identifier: MIT

package hsic

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/hsic/kernel"
	"go.uber.org/zap"
)

// Estimator selects the HSIC formula.
//
//   - Biased  : sum(Kc∘Lc)/m² on double-centered Gram matrices (V-statistic).
//   - Unbiased: the Song et al. U-statistic on diagonal-zeroed raw Gram
//     matrices. Requires m ≥ 4 and raw (non-centered) input.
type Estimator int

const (
	// Biased is the centered inner-product estimator.
	Biased Estimator = iota

	// Unbiased is the U-statistic estimator.
	Unbiased
)

// String implements fmt.Stringer.
func (e Estimator) String() string {
	switch e {
	case Biased:
		return "biased"
	case Unbiased:
		return "unbiased"
	default:
		return fmt.Sprintf("Estimator(%d)", int(e))
	}
}

// Method selects how the statistic is turned into a p-value.
//
//   - Pearson  : exact permutation moments + Pearson type III tail (default).
//   - Gamma    : two-moment Gamma fit (legacy; kept for comparison).
//   - Perm     : resample by permuting the centered Kc.
//   - PermGram : resample by permuting the raw L and recomputing HSIC.
//   - PermBrute: resample by permuting the rows of Y and rebuilding L.
type Method int

const (
	Pearson Method = iota
	Gamma
	Perm
	PermGram
	PermBrute
)

var methodNames = [...]string{
	Pearson:   "pearson",
	Gamma:     "gamma",
	Perm:      "perm",
	PermGram:  "perm-gram",
	PermBrute: "perm-brute",
}

// String returns the canonical method name.
func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Resampling reports whether the method draws a permutation ensemble.
func (m Method) Resampling() bool {
	return m == Perm || m == PermGram || m == PermBrute
}

// ParseMethod maps a method name (case-insensitive) to its Method.
//
// Errors: ErrUnrecognizedMethod.
func ParseMethod(name string) (Method, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	for i, n := range methodNames {
		if n == s {
			return Method(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedMethod, name)
}

// KernelConfig holds the bandwidth options of both samples.
type KernelConfig struct {
	X kernel.Config
	Y kernel.Config
}

// Config composes the options of one independence test.
//
// Fields:
//   - Kernel   : bandwidths for X and Y (0 = median heuristic).
//   - Estimator: Biased or Unbiased.
//   - Method   : null approximation; see Method.
//   - NBoot    : ensemble size for resampling methods; ignored otherwise.
//   - Seed     : seed of the per-iteration permutation streams.
//   - Workers  : resampling parallelism; <= 0 uses GOMAXPROCS.
//   - Logger   : debug logging; nil disables it.
type Config struct {
	Kernel    KernelConfig
	Estimator Estimator
	Method    Method
	NBoot     int
	Seed      uint64
	Workers   int
	Logger    *zap.Logger
}

// Defaults applied by DefaultConfig.
const (
	DefaultMethod = Pearson
	DefaultNBoot  = 999
	DefaultSeed   = 1
)

// DefaultConfig returns the pearson method with biased estimator,
// median-heuristic bandwidths and nboot = 999.
func DefaultConfig() Config {
	return Config{
		Kernel:    KernelConfig{X: kernel.DefaultConfig(), Y: kernel.DefaultConfig()},
		Estimator: Biased,
		Method:    DefaultMethod,
		NBoot:     DefaultNBoot,
		Seed:      DefaultSeed,
	}
}

// Moments are the first three moments of the permutation distribution of
// T(π) = Σᵢⱼ Kc[i,j]·Lc[π(i),π(j)].
type Moments struct {
	Mean     float64
	Variance float64
	Skewness float64
}

// Result is the outcome of Test.
//
// Statistic is the HSIC value of the chosen estimator. Boot holds the
// resampled statistics in iteration order and is empty for pearson/gamma.
// Moments is set for the pearson method only.
type Result struct {
	PValue    float64
	Statistic float64
	Boot      []float64
	Method    Method
	Estimator Estimator
	SigmaX    float64
	SigmaY    float64
	Moments   *Moments
}
