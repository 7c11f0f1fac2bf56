// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/hsic/hsic"
)

type testReport struct {
	Method    string       `json:"method"`
	Estimator string       `json:"estimator"`
	M         int          `json:"m"`
	SigmaX    float64      `json:"sigma_x"`
	SigmaY    float64      `json:"sigma_y"`
	Statistic float64      `json:"statistic"`
	PValue    float64      `json:"p_value"`
	NBoot     int          `json:"nboot,omitempty"`
	Moments   *nullMoments `json:"moments,omitempty"`
}

type nullMoments struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Skewness float64 `json:"skewness"`
}

type rvReport struct {
	M  int     `json:"m"`
	RV float64 `json:"rv"`
}

func newTestReport(res hsic.Result, m int, cfg hsic.Config) testReport {
	r := testReport{
		Method:    res.Method.String(),
		Estimator: res.Estimator.String(),
		M:         m,
		SigmaX:    res.SigmaX,
		SigmaY:    res.SigmaY,
		Statistic: res.Statistic,
		PValue:    res.PValue,
	}
	if mo := res.Moments; mo != nil {
		r.Moments = &nullMoments{Mean: mo.Mean, Variance: mo.Variance, Skewness: mo.Skewness}
	}
	if res.Method.Resampling() {
		r.NBoot = cfg.NBoot
	}

	return r
}

func (r testReport) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "method:\t%s\n", r.Method)
	fmt.Fprintf(tw, "estimator:\t%s\n", r.Estimator)
	fmt.Fprintf(tw, "m:\t%d\n", r.M)
	fmt.Fprintf(tw, "sigma_x:\t%.6g\n", r.SigmaX)
	fmt.Fprintf(tw, "sigma_y:\t%.6g\n", r.SigmaY)
	if r.NBoot > 0 {
		fmt.Fprintf(tw, "nboot:\t%d\n", r.NBoot)
	}
	if r.Moments != nil {
		fmt.Fprintf(tw, "null mean:\t%.6g\n", r.Moments.Mean)
		fmt.Fprintf(tw, "null variance:\t%.6g\n", r.Moments.Variance)
		fmt.Fprintf(tw, "null skewness:\t%.6g\n", r.Moments.Skewness)
	}
	fmt.Fprintf(tw, "statistic:\t%.6g\n", r.Statistic)
	fmt.Fprintf(tw, "p_value:\t%.6g\n", r.PValue)

	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
