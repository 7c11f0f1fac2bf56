// SPDX-License-Identifier: MIT

package hsic

import (
	"context"
	"fmt"

	"github.com/katalvlaran/hsic/kernel"
	"github.com/katalvlaran/hsic/matrix"
	"github.com/katalvlaran/hsic/resample"
)

const opPermutation = "hsic.Permutation"

// permInput carries what the resampling variants may need. y and sigmaY are
// only used by PermBrute.
type permInput struct {
	K, L   *matrix.Dense
	y      *matrix.Dense
	sigmaY float64
}

// permutationTest computes the observed statistic and its resampled ensemble.
//
// Variants:
//   - Perm:      boot_b = sum(Kc[π,π]∘L)/m² (biased only).
//   - PermGram:  boot_b = Statistic(K, L[π,π], est).
//   - PermBrute: boot_b = Statistic(K, RBF(σy, Y[π,·]), est).
//
// p = (1 + #{boot_b > stat}) / (1 + nboot).
func permutationTest(ctx context.Context, in permInput, cfg Config) (stat, p float64, boot []float64, err error) {
	g, err := newGramStatistic(opPermutation, in.K, cfg.Estimator)
	if err != nil {
		return 0, 0, nil, err
	}
	if stat, err = g.eval(in.L); err != nil {
		return 0, 0, nil, err
	}

	m := in.K.Rows()
	var factory resample.Factory
	switch cfg.Method {
	case Perm:
		factory = permCenteredFactory(g.kc, in.L)
	case PermGram:
		factory = permGramFactory(g, in.L)
	case PermBrute:
		if in.y == nil {
			return 0, 0, nil, hsicErrorf(opPermutation,
				fmt.Errorf("%w: perm-brute needs the raw Y sample", ErrUnsupportedConfiguration))
		}
		factory = permBruteFactory(g, in.y, in.sigmaY)
	default:
		return 0, 0, nil, hsicErrorf(opPermutation, fmt.Errorf("%w: %s", ErrUnrecognizedMethod, cfg.Method))
	}

	runner := resample.New(resample.Config{Seed: cfg.Seed, Workers: cfg.Workers, Logger: cfg.Logger})
	if boot, err = runner.Run(ctx, cfg.NBoot, m, factory); err != nil {
		return 0, 0, nil, hsicErrorf(opPermutation, err)
	}

	return stat, resample.PValue(boot, stat), boot, nil
}

// permCenteredFactory relabels the centered Kc and pairs it with the raw L.
// Σ Kc[π,π]∘L equals Σ Kc[π,π]∘Lc because Kc[π,π] is itself centered.
func permCenteredFactory(Kc, L *matrix.Dense) resample.Factory {
	m := Kc.Rows()
	norm := float64(m) * float64(m)
	return func() resample.Statistic {
		buf, _ := matrix.NewDense(m, m)
		return func(perm []int) (float64, error) {
			if err := Kc.PermuteSymmetricInto(buf, perm); err != nil {
				return 0, err
			}
			s, err := matrix.HadamardSum(buf, L)
			if err != nil {
				return 0, err
			}
			return s / norm, nil
		}
	}
}

// permGramFactory relabels the raw L and re-evaluates the estimator.
func permGramFactory(g *gramStatistic, L *matrix.Dense) resample.Factory {
	m := L.Rows()
	return func() resample.Statistic {
		buf, _ := matrix.NewDense(m, m)
		return func(perm []int) (float64, error) {
			if err := L.PermuteSymmetricInto(buf, perm); err != nil {
				return 0, err
			}
			return g.eval(buf)
		}
	}
}

// permBruteFactory shuffles the rows of Y and rebuilds L from scratch with
// the bandwidth fixed at sigmaY.
func permBruteFactory(g *gramStatistic, y *matrix.Dense, sigmaY float64) resample.Factory {
	return func() resample.Statistic {
		return func(perm []int) (float64, error) {
			yp, err := y.PermuteRows(perm)
			if err != nil {
				return 0, err
			}
			Lp, err := kernel.RBF(sigmaY, yp)
			if err != nil {
				return 0, err
			}
			return g.eval(Lp)
		}
	}
}
