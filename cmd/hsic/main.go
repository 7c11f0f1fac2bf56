// SPDX-License-Identifier: MIT

// Command hsic runs kernel independence tests on CSV samples.
//
// Usage:
//
//	hsic test --x x.csv --y y.csv [--method pearson] [--nboot 999] [--unbiased]
//	          [--sigmax 0] [--sigmay 0] [--seed 1] [--workers 0] [--json]
//	hsic rv   --x x.csv --y y.csv [--json]
//
// Global flags: --config hsic.toml (method, nboot, unbiased, sigmax, sigmay,
// seed, workers; flags win over file values) and --verbose (debug logging).
//
// Each CSV holds one observation per row and one feature per column; a
// non-numeric first row is treated as a header. Both files must have the same
// number of observations.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCommand(newApp(os.Stdout, os.Stderr))
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
