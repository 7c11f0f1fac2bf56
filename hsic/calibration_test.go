// SPDX-License-Identifier: MIT

package hsic_test

import (
	"context"
	"sort"
	"testing"

	"github.com/katalvlaran/hsic/hsic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

// uniformGrid is a fine deterministic stand-in for U(0,1) in KS distances.
func uniformGrid(n int) []float64 {
	g := make([]float64, n)
	for i := range g {
		g[i] = (float64(i) + 0.5) / float64(n)
	}
	return g
}

// TestCalibration_UnderIndependence checks that p-values are close to
// uniform when X and Y are independent Gaussian noise.
func TestCalibration_UnderIndependence(t *testing.T) {
	if testing.Short() {
		t.Skip("calibration runs hundreds of tests")
	}
	t.Parallel()

	const (
		trials = 300
		m      = 20
	)
	// At n = 300 the one-sample KS critical value at α = 0.001 is ≈ 0.113.
	const maxKS = 0.12

	for _, method := range []hsic.Method{hsic.Perm, hsic.Pearson} {
		method := method
		t.Run(method.String(), func(t *testing.T) {
			t.Parallel()
			cfg := hsic.DefaultConfig()
			cfg.Method = method
			cfg.NBoot = 199
			ps := make([]float64, trials)
			for i := range ps {
				cfg.Seed = uint64(i + 1)
				x := normalSample(t, m, 2, uint64(1000+2*i))
				y := normalSample(t, m, 2, uint64(1001+2*i))
				res, err := hsic.Test(context.Background(), x, y, cfg)
				require.NoError(t, err)
				ps[i] = res.PValue
			}
			sort.Float64s(ps)
			d := stat.KolmogorovSmirnov(ps, nil, uniformGrid(2000), nil)
			assert.Less(t, d, maxKS, "KS distance to U(0,1)")
		})
	}
}
