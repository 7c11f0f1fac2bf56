// SPDX-License-Identifier: MIT

package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the process-level dependencies shared by all subcommands.
type app struct {
	out    io.Writer
	errOut io.Writer

	// newLogger builds the logger once flags are parsed.
	newLogger func(verbose bool) (*zap.Logger, error)

	configPath string
	verbose    bool
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut, newLogger: newLogger}
}

// newLogger returns a production logger, or a development logger at debug
// level when verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	return cfg.Build()
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hsic",
		Short:         "Kernel (HSIC) independence tests on CSV samples",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML file with default test options")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newTestCommand(a))
	cmd.AddCommand(newRVCommand(a))

	return cmd
}
