// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/katalvlaran/hsic/hsic"
	"github.com/spf13/cobra"
)

func newRVCommand(a *app) *cobra.Command {
	var xPath, yPath string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "rv",
		Short: "RV coefficient of two samples",
		Long:  "Compute the RV coefficient (linear-kernel analogue of normalized HSIC) between --x and --y.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, err := readSampleFile(xPath)
			if err != nil {
				return err
			}
			y, err := readSampleFile(yPath)
			if err != nil {
				return err
			}
			rv, err := hsic.RV(x, y)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rvReport{M: x.Rows(), RV: rv})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "rv: %.6f\n", rv)

			return err
		},
	}
	cmd.Flags().StringVar(&xPath, "x", "", "CSV file with the first sample")
	cmd.Flags().StringVar(&yPath, "y", "", "CSV file with the second sample")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}
