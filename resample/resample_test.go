// SPDX-License-Identifier: MIT

package resample_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/katalvlaran/hsic/resample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// firstIndex reports perm[0] so the ensemble encodes which permutation ran.
func firstIndex() resample.Statistic {
	return func(perm []int) (float64, error) { return float64(perm[0]*100 + perm[1]), nil }
}

func TestPermutation_IsPermutation(t *testing.T) {
	t.Parallel()

	for i := 0; i < 20; i++ {
		p := resample.Permutation(42, i, 9)
		s := append([]int(nil), p...)
		sort.Ints(s)
		for k := range s {
			require.Equal(t, k, s[k])
		}
	}
	assert.Equal(t, resample.Permutation(3, 5, 12), resample.Permutation(3, 5, 12))
	assert.NotEqual(t, resample.Permutation(3, 5, 12), resample.Permutation(3, 6, 12))
}

func TestRun_IndependentOfWorkerCount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var ref []float64
	for _, w := range []int{1, 2, 3, 8, 64} {
		r := resample.New(resample.Config{Seed: 11, Workers: w, Logger: zaptest.NewLogger(t)})
		boot, err := r.Run(ctx, 50, 10, firstIndex)
		require.NoError(t, err)
		require.Len(t, boot, 50)
		if ref == nil {
			ref = boot
			continue
		}
		assert.Equal(t, ref, boot, "workers=%d", w)
	}

	for i, v := range ref {
		p := resample.Permutation(11, i, 10)
		assert.Equal(t, float64(p[0]*100+p[1]), v)
	}
}

func TestRun_FactoryPerChunk(t *testing.T) {
	t.Parallel()

	r := resample.New(resample.Config{Seed: 1, Workers: 4})
	assert.Equal(t, 4, r.Workers())
	boot, err := r.Run(context.Background(), 40, 5, func() resample.Statistic {
		calls := 0 // chunk-local; would race if shared
		return func(perm []int) (float64, error) {
			calls++
			return float64(calls), nil
		}
	})
	require.NoError(t, err)
	// Four chunks of ten: each counts 1..10.
	for i, v := range boot {
		assert.Equal(t, float64(i%10+1), v)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	r := resample.New(resample.Config{Seed: 1, Workers: 2})

	_, err := r.Run(context.Background(), 0, 5, firstIndex)
	assert.ErrorIs(t, err, resample.ErrInvalidCount)

	boom := errors.New("boom")
	_, err = r.Run(context.Background(), 10, 5, func() resample.Statistic {
		return func([]int) (float64, error) { return 0, boom }
	})
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx, 10, 5, firstIndex)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = r.Run(context.Background(), 10, 5, func() resample.Statistic {
		return func([]int) (float64, error) { panic("bad") }
	})
	assert.ErrorIs(t, err, resample.ErrWorkerPanic)
}

func TestPValue(t *testing.T) {
	t.Parallel()

	boot := []float64{0.1, 0.5, 0.5, 0.9}
	assert.Equal(t, 1.0/5, resample.PValue(boot, 1))
	assert.Equal(t, 2.0/5, resample.PValue(boot, 0.5), "ties do not count")
	assert.Equal(t, 1.0, resample.PValue(boot, 0))
	assert.Equal(t, 1.0, resample.PValue(nil, 0))
}
