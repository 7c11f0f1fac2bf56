// SPDX-License-Identifier: MIT

// Package resample runs seeded permutation loops in parallel.
//
// Iteration i of a run draws its permutation from its own PCG stream keyed by
// (Seed, i). The ensemble is therefore a pure function of the seed: it does
// not depend on the number of workers nor on scheduling order. Work is split
// into contiguous chunks, one per worker, and each chunk owns the scratch
// state returned by its Factory.
//
// Usage:
//
//	r := resample.New(resample.Config{Seed: 7, Workers: 4})
//	boot, err := r.Run(ctx, 999, m, func() resample.Statistic {
//		buf := make([]float64, m*m) // per-worker scratch
//		return func(perm []int) (float64, error) { ... }
//	})
package resample

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCount is returned when nboot or the permutation length is not positive.
	ErrInvalidCount = errors.New("resample: iteration count and permutation length must be positive")

	// ErrWorkerPanic wraps a panic recovered from a Statistic.
	ErrWorkerPanic = errors.New("resample: statistic panicked")
)

// Statistic evaluates one resampled statistic for a permutation.
// perm is only valid for the duration of the call.
type Statistic func(perm []int) (float64, error)

// Factory builds a Statistic together with the scratch state it closes over.
// It is called once per chunk, so returned closures are never shared.
type Factory func() Statistic

// Config controls a Runner.
type Config struct {
	Seed    uint64      // PCG seed shared by every iteration stream
	Workers int         // <= 0 selects runtime.GOMAXPROCS(0)
	Logger  *zap.Logger // nil disables logging
}

// Runner executes resampling loops on an ants worker pool.
type Runner struct {
	cfg Config
	log *zap.Logger
}

// New returns a Runner for cfg.
func New(cfg Config) *Runner {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	return &Runner{cfg: cfg, log: log.Named("resample")}
}

// Workers reports the effective worker count.
func (r *Runner) Workers() int { return r.cfg.Workers }

// Permutation returns the permutation of 0..n-1 used by iteration i.
func Permutation(seed uint64, i, n int) []int {
	perm := make([]int, n)
	fillPermutation(perm, seed, i)

	return perm
}

// fillPermutation writes a uniform permutation into perm using the stream (seed, i).
func fillPermutation(perm []int, seed uint64, i int) {
	for k := range perm {
		perm[k] = k
	}
	rng := rand.New(rand.NewPCG(seed, uint64(i)))
	rng.Shuffle(len(perm), func(a, b int) { perm[a], perm[b] = perm[b], perm[a] })
}

// Run evaluates nboot statistics over permutations of length n and returns
// them in iteration order. The first error (or a canceled ctx) aborts the run.
//
// Errors: ErrInvalidCount, ErrWorkerPanic, ctx.Err(), or the Statistic's error.
// Complexity: nboot calls of the Statistic plus O(nboot·n) for permutations.
func (r *Runner) Run(ctx context.Context, nboot, n int, newStat Factory) ([]float64, error) {
	if nboot <= 0 || n <= 0 {
		return nil, ErrInvalidCount
	}
	workers := r.cfg.Workers
	if workers > nboot {
		workers = nboot
	}

	var (
		out      = make([]float64, nboot)
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		start    = time.Now()
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true), ants.WithNonblocking(false))
	if err != nil {
		return nil, fmt.Errorf("resample: pool: %w", err)
	}
	defer pool.Release()

	chunk := (nboot + workers - 1) / workers
	for lo := 0; lo < nboot; lo += chunk {
		hi := lo + chunk
		if hi > nboot {
			hi = nboot
		}
		lo := lo
		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					r.log.Error("statistic panicked", zap.Int("chunk_start", lo), zap.Any("panic", p))
					fail(fmt.Errorf("%w: %v", ErrWorkerPanic, p))
				}
			}()
			stat := newStat()
			perm := make([]int, n)
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					fail(err)
					return
				}
				if failed() {
					return
				}
				fillPermutation(perm, r.cfg.Seed, i)
				v, err := stat(perm)
				if err != nil {
					fail(fmt.Errorf("resample: iteration %d: %w", i, err))
					return
				}
				out[i] = v
			}
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			fail(fmt.Errorf("resample: submit: %w", err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	r.log.Debug("resampling finished",
		zap.Int("nboot", nboot),
		zap.Int("n", n),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)))

	return out, nil
}

// PValue returns (1 + #{b ∈ boot : b > stat}) / (1 + len(boot)).
// The result lies in [1/(1+len(boot)), 1].
func PValue(boot []float64, stat float64) float64 {
	var above int
	for _, b := range boot {
		if b > stat {
			above++
		}
	}

	return float64(1+above) / float64(1+len(boot))
}
