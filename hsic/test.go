// SPDX-License-Identifier: MIT

package hsic

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/hsic/kernel"
	"github.com/katalvlaran/hsic/matrix"
	"go.uber.org/zap"
)

const (
	opTest     = "hsic.Test"
	opTestGram = "hsic.TestGram"
)

// Test runs an HSIC independence test of H0: x ⟂ y.
//
// Implementation:
//   - Stage 1: validate the configuration and both samples (no work is done
//     before every check passed).
//   - Stage 2: build the RBF Gram matrices K, L; bandwidths default to the
//     median heuristic and are computed once per sample.
//   - Stage 3: dispatch on cfg.Method.
//
// Behavior highlights:
//   - Result.Boot is empty for pearson and gamma.
//   - For a fixed cfg.Seed the ensemble does not depend on cfg.Workers.
//   - ctx is checked between resampling iterations.
//
// Errors:
//   - ErrInvalidInput: nil/empty samples, mismatched row counts, NaN/Inf,
//     invalid bandwidths.
//   - ErrInsufficientSamples: m too small for the estimator or method.
//   - ErrUnsupportedConfiguration: unbiased with pearson/gamma/perm,
//     NBoot <= 0 for a resampling method, unknown estimator.
//   - ErrUnrecognizedMethod: unknown method.
//
// Complexity:
//   - pearson O(m³), gamma O(m²), perm/perm-gram O(nboot·m²),
//     perm-brute O(nboot·m²·q).
func Test(ctx context.Context, x, y *matrix.Dense, cfg Config) (Result, error) {
	if err := validateConfig(opTest, cfg); err != nil {
		return Result{}, err
	}
	if x == nil || y == nil {
		return Result{}, invalidInput(opTest, matrix.ErrNilMatrix)
	}
	if x.Rows() != y.Rows() {
		return Result{}, invalidInput(opTest,
			fmt.Errorf("%w: x has %d rows, y has %d", matrix.ErrDimensionMismatch, x.Rows(), y.Rows()))
	}
	gx, err := kernel.BuildGram(x, cfg.Kernel.X)
	if err != nil {
		return Result{}, invalidInput(opTest, err)
	}
	gy, err := kernel.BuildGram(y, cfg.Kernel.Y)
	if err != nil {
		return Result{}, invalidInput(opTest, err)
	}

	res, err := run(ctx, opTest, permInput{K: gx.K, L: gy.K, y: y, sigmaY: gy.Sigma}, cfg)
	if err != nil {
		return Result{}, err
	}
	res.SigmaX, res.SigmaY = gx.Sigma, gy.Sigma

	return res, nil
}

// TestGram runs the test on precomputed Gram matrices K and L. PermBrute is
// unavailable because it needs the raw Y sample.
//
// Errors: as Test, plus ErrUnsupportedConfiguration for PermBrute.
func TestGram(ctx context.Context, K, L matrix.Matrix, cfg Config) (Result, error) {
	if err := validateConfig(opTestGram, cfg); err != nil {
		return Result{}, err
	}
	if cfg.Method == PermBrute {
		return Result{}, hsicErrorf(opTestGram,
			fmt.Errorf("%w: perm-brute needs raw samples", ErrUnsupportedConfiguration))
	}
	if err := validateGramPair(opTestGram, K, L); err != nil {
		return Result{}, err
	}
	kd, err := asDense(K)
	if err != nil {
		return Result{}, invalidInput(opTestGram, err)
	}
	ld, err := asDense(L)
	if err != nil {
		return Result{}, invalidInput(opTestGram, err)
	}

	return run(ctx, opTestGram, permInput{K: kd, L: ld}, cfg)
}

// run dispatches a validated configuration on validated Gram matrices.
func run(ctx context.Context, op string, in permInput, cfg Config) (Result, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("hsic")
	start := time.Now()

	res := Result{Method: cfg.Method, Estimator: cfg.Estimator}
	var err error
	switch cfg.Method {
	case Pearson:
		var mom Moments
		res.Statistic, res.PValue, mom, err = pearsonTest(in.K, in.L)
		if err == nil {
			res.Moments = &mom
		}
	case Gamma:
		res.Statistic, res.PValue, err = gammaTest(in.K, in.L)
	case Perm, PermGram, PermBrute:
		res.Statistic, res.PValue, res.Boot, err = permutationTest(ctx, in, cfg)
	default:
		err = fmt.Errorf("%w: %s", ErrUnrecognizedMethod, cfg.Method)
	}
	if err != nil {
		return Result{}, hsicErrorf(op, err)
	}

	log.Debug("independence test finished",
		zap.Stringer("method", cfg.Method),
		zap.Stringer("estimator", cfg.Estimator),
		zap.Int("m", in.K.Rows()),
		zap.Float64("statistic", res.Statistic),
		zap.Float64("p_value", res.PValue),
		zap.Int("nboot", len(res.Boot)),
		zap.Duration("elapsed", time.Since(start)))

	return res, nil
}

// validateConfig rejects unknown and incompatible option combinations.
func validateConfig(op string, cfg Config) error {
	if cfg.Method < Pearson || cfg.Method > PermBrute {
		return hsicErrorf(op, fmt.Errorf("%w: %s", ErrUnrecognizedMethod, cfg.Method))
	}
	switch cfg.Estimator {
	case Biased:
	case Unbiased:
		if cfg.Method == Pearson || cfg.Method == Gamma || cfg.Method == Perm {
			return hsicErrorf(op, fmt.Errorf("%w: %s method works on centered Gram matrices, unbiased estimator needs raw ones",
				ErrUnsupportedConfiguration, cfg.Method))
		}
	default:
		return hsicErrorf(op, fmt.Errorf("%w: %s", ErrUnsupportedConfiguration, cfg.Estimator))
	}
	if cfg.Method.Resampling() && cfg.NBoot <= 0 {
		return hsicErrorf(op, fmt.Errorf("%w: %s needs nboot > 0, got %d",
			ErrUnsupportedConfiguration, cfg.Method, cfg.NBoot))
	}

	return nil
}

// asDense returns m as *matrix.Dense, copying foreign implementations.
func asDense(m matrix.Matrix) (*matrix.Dense, error) {
	if d, ok := m.(*matrix.Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			data = append(data, v)
		}
	}

	return matrix.NewDenseFrom(r, c, data)
}
