// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/hsic/hsic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	xCSV = "x\n1\n2\n3\n4\n"
	yCSV = "y\n1\n1\n2\n6\n"

	// unit-bandwidth reference values for the samples above
	frozenBiased  = 0.100790283313007
	frozenPearson = 0.0800835800013682
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := newApp(&out, &errOut)
	a.newLogger = func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }
	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestReadSample(t *testing.T) {
	t.Run("header and comments", func(t *testing.T) {
		x, err := readSample(strings.NewReader("a,b\n# note\n1,2\n3, 4\n5,6\n"))
		require.NoError(t, err)
		assert.Equal(t, 3, x.Rows())
		assert.Equal(t, 2, x.Cols())
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, x.RawData())
	})
	t.Run("no header", func(t *testing.T) {
		x, err := readSample(strings.NewReader("1.5\n-2e1\n"))
		require.NoError(t, err)
		assert.Equal(t, []float64{1.5, -20}, x.RawData())
	})
	t.Run("empty", func(t *testing.T) {
		_, err := readSample(strings.NewReader("only,header\n"))
		assert.ErrorIs(t, err, ErrEmptySample)
	})
	t.Run("bad value after header", func(t *testing.T) {
		_, err := readSample(strings.NewReader("1\nabc\n"))
		assert.Error(t, err)
	})
	t.Run("ragged rows", func(t *testing.T) {
		_, err := readSample(strings.NewReader("1,2\n3\n"))
		assert.Error(t, err)
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, hsic.DefaultConfig(), cfg)

	p := writeFile(t, dir, "hsic.toml", `
method   = "perm-gram"
nboot    = 199
unbiased = true
sigmax   = 0.5
seed     = 7
workers  = 2
`)
	cfg, err = loadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, hsic.PermGram, cfg.Method)
	assert.Equal(t, 199, cfg.NBoot)
	assert.Equal(t, hsic.Unbiased, cfg.Estimator)
	assert.Equal(t, 0.5, cfg.Kernel.X.Sigma)
	assert.Equal(t, 0.0, cfg.Kernel.Y.Sigma)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 2, cfg.Workers)

	_, err = loadConfig(writeFile(t, dir, "bad.toml", `method = "bogus"`))
	assert.ErrorIs(t, err, hsic.ErrUnrecognizedMethod)

	_, err = loadConfig(writeFile(t, dir, "extra.toml", `alpha = 0.05`))
	assert.ErrorIs(t, err, ErrUnknownConfigKey)

	_, err = loadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestTestCommandJSON(t *testing.T) {
	dir := t.TempDir()
	x := writeFile(t, dir, "x.csv", xCSV)
	y := writeFile(t, dir, "y.csv", yCSV)

	out, err := execute(t, "test", "--x", x, "--y", y, "--sigmax", "1", "--sigmay", "1", "--json")
	require.NoError(t, err)

	var rep testReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "pearson", rep.Method)
	assert.Equal(t, "biased", rep.Estimator)
	assert.Equal(t, 4, rep.M)
	assert.InDelta(t, frozenBiased, rep.Statistic, 1e-12)
	assert.InDelta(t, frozenPearson, rep.PValue, 1e-9)
	require.NotNil(t, rep.Moments)
	assert.InDelta(t, 1.23021083386701, rep.Moments.Mean, 1e-10)
	assert.Zero(t, rep.NBoot)
}

func TestTestCommandText(t *testing.T) {
	dir := t.TempDir()
	x := writeFile(t, dir, "x.csv", xCSV)
	y := writeFile(t, dir, "y.csv", yCSV)

	out, err := execute(t, "test", "--x", x, "--y", y, "--method", "perm", "--nboot", "99", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "method:")
	assert.Contains(t, out, "perm")
	assert.Contains(t, out, "nboot:")
	assert.Contains(t, out, "p_value:")
	assert.NotContains(t, out, "null mean")
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	x := writeFile(t, dir, "x.csv", xCSV)
	y := writeFile(t, dir, "y.csv", yCSV)
	conf := writeFile(t, dir, "hsic.toml", "method = \"perm-gram\"\nnboot = 49\nsigmax = 1\nsigmay = 1\n")

	out, err := execute(t, "--config", conf, "test", "--x", x, "--y", y, "--method", "pearson", "--json")
	require.NoError(t, err)

	var rep testReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "pearson", rep.Method)
	assert.Equal(t, 1.0, rep.SigmaX)
	assert.InDelta(t, frozenPearson, rep.PValue, 1e-9)

	out, err = execute(t, "--config", conf, "test", "--x", x, "--y", y, "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "perm-gram", rep.Method)
	assert.Equal(t, 49, rep.NBoot)
}

func TestTestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	x := writeFile(t, dir, "x.csv", xCSV)
	y := writeFile(t, dir, "y.csv", yCSV)
	short := writeFile(t, dir, "short.csv", "1\n2\n3\n")

	_, err := execute(t, "test", "--x", x)
	assert.Error(t, err, "missing --y")

	_, err = execute(t, "test", "--x", x, "--y", y, "--method", "exact")
	assert.ErrorIs(t, err, hsic.ErrUnrecognizedMethod)

	_, err = execute(t, "test", "--x", x, "--y", short)
	assert.ErrorIs(t, err, hsic.ErrInvalidInput)

	_, err = execute(t, "test", "--x", x, "--y", y, "--method", "perm", "--unbiased")
	assert.ErrorIs(t, err, hsic.ErrUnsupportedConfiguration)

	_, err = execute(t, "test", "--x", filepath.Join(dir, "nope.csv"), "--y", y)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRVCommand(t *testing.T) {
	dir := t.TempDir()
	x := writeFile(t, dir, "x.csv", xCSV)
	y := writeFile(t, dir, "y.csv", "2\n4\n6\n8\n")

	out, err := execute(t, "rv", "--x", x, "--y", y, "--json")
	require.NoError(t, err)

	var rep rvReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 4, rep.M)
	assert.InDelta(t, 1.0, rep.RV, 1e-12)

	out, err = execute(t, "rv", "--x", x, "--y", y)
	require.NoError(t, err)
	assert.Equal(t, "rv: 1.000000\n", out)
}
